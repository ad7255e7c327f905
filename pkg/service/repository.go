package service

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

func (r repository) create(ctx context.Context, service *model.Service) error {
	// only use ctx for values (logging) and not cancellation signals on cud operations for now. ctx
	// cancellation can lead to rollbacks which we should decide individually.
	ctx = context.WithoutCancel(ctx)

	err := r.db.WithContext(ctx).Create(service).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("service name already exists")
	}
	return err
}

func (r repository) save(ctx context.Context, service *model.Service) error {
	ctx = context.WithoutCancel(ctx)

	err := r.db.WithContext(ctx).Save(service).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("service name already exists")
	}
	return err
}

func (r repository) findAll(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	err := r.db.WithContext(ctx).Order("name").Find(&services).Error
	return services, err
}

func (r repository) findById(ctx context.Context, id uint) (*model.Service, error) {
	var service *model.Service
	err := r.db.WithContext(ctx).First(&service, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("service does not exist")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find service: %v", err)
	}

	return service, nil
}

func (r repository) delete(ctx context.Context, id uint) error {
	ctx = context.WithoutCancel(ctx)

	db := r.db.WithContext(ctx).Unscoped().Delete(&model.Service{}, id)
	if db.Error != nil {
		return db.Error
	}
	if db.RowsAffected < 1 {
		return errdef.NewNotFound("service does not exist")
	}
	return nil
}
