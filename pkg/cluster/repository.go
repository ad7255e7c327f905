package cluster

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

func (r repository) find(ctx context.Context, id uint) (*model.Cluster, error) {
	var cluster *model.Cluster
	err := r.db.
		WithContext(ctx).
		Preload("Roles").
		Preload("Providers.Hosts").
		Preload("Services").
		First(&cluster, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("no such cluster")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find cluster: %v", err)
	}

	return cluster, nil
}

func (r repository) findAll(ctx context.Context) ([]model.Cluster, error) {
	var clusters []model.Cluster
	err := r.db.
		WithContext(ctx).
		Preload("Roles").
		Preload("Providers.Hosts").
		Preload("Services").
		Order("updated_at desc").
		Find(&clusters).Error
	return clusters, err
}

func (r repository) save(ctx context.Context, cluster *model.Cluster) error {
	// only use ctx for values (logging) and not cancellation signals on cud operations for now. ctx
	// cancellation can lead to rollbacks which we should decide individually.
	ctx = context.WithoutCancel(ctx)

	err := r.db.WithContext(ctx).Save(cluster).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("cluster name already exists: %s", err)
	}

	return err
}

func (r repository) delete(ctx context.Context, cluster *model.Cluster) error {
	ctx = context.WithoutCancel(ctx)

	// Select(clause.Associations) would also delete the service join rows but
	// roles, providers and hosts are already covered by the foreign key
	// constraints. Only the join table needs explicit cleanup.
	if err := r.db.WithContext(ctx).Model(cluster).Association("Services").Clear(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(cluster).Error
}

func (r repository) addService(ctx context.Context, cluster *model.Cluster, service *model.Service) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Model(cluster).Association("Services").Append(service)
}

func (r repository) removeService(ctx context.Context, cluster *model.Cluster, service *model.Service) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Model(cluster).Association("Services").Delete(service)
}

// saveProvider persists a changed provider and its hosts, then the owning
// cluster, in that order. If the provider save fails the cluster save is not
// attempted.
func (r repository) saveProvider(ctx context.Context, provider *model.Provider, cluster *model.Cluster) error {
	ctx = context.WithoutCancel(ctx)

	err := r.db.
		WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(provider).Error
	if err != nil {
		return fmt.Errorf("failed to save provider %q: %v", provider.Name, err)
	}

	return r.db.WithContext(ctx).Save(cluster).Error
}

func (r repository) deleteProvider(ctx context.Context, provider *model.Provider, cluster *model.Cluster) error {
	ctx = context.WithoutCancel(ctx)

	err := r.db.WithContext(ctx).Delete(provider).Error
	if err != nil {
		return fmt.Errorf("failed to delete provider %q: %v", provider.Name, err)
	}

	return r.db.WithContext(ctx).Save(cluster).Error
}

// deleteHost removes a host row and then persists the owning provider and
// cluster, child first, so their timestamps reflect the change.
func (r repository) deleteHost(ctx context.Context, host *model.Host, provider *model.Provider, cluster *model.Cluster) error {
	ctx = context.WithoutCancel(ctx)

	err := r.db.WithContext(ctx).Delete(host).Error
	if err != nil {
		return fmt.Errorf("failed to delete host %q: %v", host.Hostname, err)
	}

	return r.saveProvider(ctx, provider, cluster)
}
