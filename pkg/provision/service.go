package provision

import (
	"context"
	"strconv"

	"github.com/one-love/onelove/pkg/model"
)

// ProvisionQueue carries newly created provision ids to the external task
// executor.
const ProvisionQueue = "provision"

func NewService(repository provisionRepository, clusterService clusterService, serviceService serviceService, publisher publisher) Service {
	return Service{
		repository:     repository,
		clusterService: clusterService,
		serviceService: serviceService,
		publisher:      publisher,
	}
}

type provisionRepository interface {
	create(ctx context.Context, provision *model.Provision) error
	findAll(ctx context.Context) ([]model.Provision, error)
	findById(ctx context.Context, id uint) (*model.Provision, error)
	appendLog(ctx context.Context, provision *model.Provision, log *model.ProvisionLog) error
}

type clusterService interface {
	Find(ctx context.Context, clusterId string) (*model.Cluster, error)
}

type serviceService interface {
	FindById(ctx context.Context, id uint) (*model.Service, error)
}

type publisher interface {
	PublishJSON(ctx context.Context, queue string, payload any) error
}

type Service struct {
	repository     provisionRepository
	clusterService clusterService
	serviceService serviceService
	publisher      publisher
}

// Create stores a pending provision of the service onto the cluster and hands
// its id to the task executor. Both the cluster and the service have to exist.
func (s Service) Create(ctx context.Context, userId, clusterId, serviceId uint) (*model.Provision, error) {
	_, err := s.clusterService.Find(ctx, strconv.FormatUint(uint64(clusterId), 10))
	if err != nil {
		return nil, err
	}

	_, err = s.serviceService.FindById(ctx, serviceId)
	if err != nil {
		return nil, err
	}

	provision := &model.Provision{
		ClusterID: clusterId,
		ServiceID: serviceId,
		UserID:    userId,
		Status:    model.ProvisionStatusPending,
	}

	err = s.repository.create(ctx, provision)
	if err != nil {
		return nil, err
	}

	err = s.publisher.PublishJSON(ctx, ProvisionQueue, struct{ ID uint }{provision.ID})
	if err != nil {
		return nil, err
	}

	return provision, nil
}

func (s Service) FindAll(ctx context.Context) ([]model.Provision, error) {
	return s.repository.findAll(ctx)
}

func (s Service) FindById(ctx context.Context, id uint) (*model.Provision, error) {
	return s.repository.findById(ctx, id)
}
