package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/one-love/onelove/internal/errdef"
	"github.com/one-love/onelove/pkg/model"

	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) create(ctx context.Context, provision *model.Provision) error {
	// only use ctx for values (logging) and not cancellation signals on cud operations for now. ctx
	// cancellation can lead to rollbacks which we should decide individually.
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Create(provision).Error
}

func (r repository) findAll(ctx context.Context) ([]model.Provision, error) {
	var provisions []model.Provision
	err := r.db.
		WithContext(ctx).
		Preload("Logs").
		Order("created_at desc").
		Find(&provisions).Error
	return provisions, err
}

func (r repository) findById(ctx context.Context, id uint) (*model.Provision, error) {
	var provision *model.Provision
	err := r.db.
		WithContext(ctx).
		Preload("Logs").
		First(&provision, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("provision does not exist")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find provision: %v", err)
	}

	return provision, nil
}

// appendLog stores a new log entry and moves the provision to the status the
// entry reports.
func (r repository) appendLog(ctx context.Context, provision *model.Provision, log *model.ProvisionLog) error {
	ctx = context.WithoutCancel(ctx)

	log.ProvisionID = provision.ID
	err := r.db.WithContext(ctx).Create(log).Error
	if err != nil {
		return err
	}

	return r.db.
		WithContext(ctx).
		Model(provision).
		Update("status", log.Status).Error
}
