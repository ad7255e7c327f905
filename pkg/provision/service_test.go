package provision

import (
	"context"
	"testing"

	"github.com/one-love/onelove/internal/errdef"
	"github.com/one-love/onelove/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_Create(t *testing.T) {
	t.Run("created and queued", func(t *testing.T) {
		repository := &mockProvisionRepository{}
		repository.
			On("create", mock.Anything, mock.AnythingOfType("*model.Provision")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.Provision).ID = 9
			}).
			Return(nil)
		clusterService := &mockClusterService{}
		clusterService.
			On("Find", mock.Anything, "1").
			Return(&model.Cluster{ID: 1}, nil)
		serviceService := &mockServiceService{}
		serviceService.
			On("FindById", mock.Anything, uint(7)).
			Return(&model.Service{ID: 7}, nil)
		publisher := &mockPublisher{}
		publisher.
			On("PublishJSON", mock.Anything, ProvisionQueue, struct{ ID uint }{9}).
			Return(nil)
		service := NewService(repository, clusterService, serviceService, publisher)

		provision, err := service.Create(context.Background(), 42, 1, 7)

		require.NoError(t, err)
		assert.Equal(t, model.ProvisionStatusPending, provision.Status)
		assert.Equal(t, uint(42), provision.UserID)
		repository.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("unknown cluster", func(t *testing.T) {
		repository := &mockProvisionRepository{}
		clusterService := &mockClusterService{}
		clusterService.
			On("Find", mock.Anything, "1").
			Return(nil, errdef.NewNotFound("no such cluster"))
		service := NewService(repository, clusterService, &mockServiceService{}, &mockPublisher{})

		provision, err := service.Create(context.Background(), 42, 1, 7)

		require.Nil(t, provision)
		require.True(t, errdef.IsNotFound(err))
		repository.AssertNotCalled(t, "create")
	})

	t.Run("unknown service", func(t *testing.T) {
		repository := &mockProvisionRepository{}
		clusterService := &mockClusterService{}
		clusterService.
			On("Find", mock.Anything, "1").
			Return(&model.Cluster{ID: 1}, nil)
		serviceService := &mockServiceService{}
		serviceService.
			On("FindById", mock.Anything, uint(7)).
			Return(nil, errdef.NewNotFound("service does not exist"))
		service := NewService(repository, clusterService, serviceService, &mockPublisher{})

		provision, err := service.Create(context.Background(), 42, 1, 7)

		require.Nil(t, provision)
		require.True(t, errdef.IsNotFound(err))
		repository.AssertNotCalled(t, "create")
	})
}

type mockProvisionRepository struct{ mock.Mock }

func (m *mockProvisionRepository) create(ctx context.Context, provision *model.Provision) error {
	return m.Called(ctx, provision).Error(0)
}

func (m *mockProvisionRepository) findAll(ctx context.Context) ([]model.Provision, error) {
	called := m.Called(ctx)
	provisions, _ := called.Get(0).([]model.Provision)
	return provisions, called.Error(1)
}

func (m *mockProvisionRepository) findById(ctx context.Context, id uint) (*model.Provision, error) {
	called := m.Called(ctx, id)
	provision, _ := called.Get(0).(*model.Provision)
	return provision, called.Error(1)
}

func (m *mockProvisionRepository) appendLog(ctx context.Context, provision *model.Provision, log *model.ProvisionLog) error {
	return m.Called(ctx, provision, log).Error(0)
}

type mockClusterService struct{ mock.Mock }

func (m *mockClusterService) Find(ctx context.Context, clusterId string) (*model.Cluster, error) {
	called := m.Called(ctx, clusterId)
	cluster, _ := called.Get(0).(*model.Cluster)
	return cluster, called.Error(1)
}

type mockServiceService struct{ mock.Mock }

func (m *mockServiceService) FindById(ctx context.Context, id uint) (*model.Service, error) {
	called := m.Called(ctx, id)
	service, _ := called.Get(0).(*model.Service)
	return service, called.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishJSON(ctx context.Context, queue string, payload any) error {
	return m.Called(ctx, queue, payload).Error(0)
}
