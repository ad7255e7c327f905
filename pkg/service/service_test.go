package service

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
	t.Run("created with owner", func(t *testing.T) {
		repository := &mockServiceRepository{}
		repository.
			On("create", mock.Anything, mock.AnythingOfType("*model.Service")).
			Return(nil)
		service := NewService(repository)

		created, err := service.Create(context.Background(), "mongodb", 42)

		require.NoError(t, err)
		assert.Equal(t, "mongodb", created.Name)
		assert.Equal(t, uint(42), created.UserID)
		repository.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		repository := &mockServiceRepository{}
		repository.
			On("create", mock.Anything, mock.AnythingOfType("*model.Service")).
			Return(errdef.NewDuplicated("service name already exists"))
		service := NewService(repository)

		created, err := service.Create(context.Background(), "mongodb", 42)

		require.Nil(t, created)
		require.True(t, errdef.IsDuplicated(err))
	})
}

func TestService_Update(t *testing.T) {
	t.Run("empty name keeps current value", func(t *testing.T) {
		existing := &model.Service{ID: 7, Name: "mongodb", UserID: 42}
		repository := &mockServiceRepository{}
		repository.
			On("findById", mock.Anything, uint(7)).
			Return(existing, nil)
		repository.
			On("save", mock.Anything, existing).
			Return(nil)
		service := NewService(repository)

		updated, err := service.Update(context.Background(), 7, UpdateServiceInput{})

		require.NoError(t, err)
		assert.Equal(t, "mongodb", updated.Name)
		repository.AssertExpectations(t)
	})

	t.Run("name updated", func(t *testing.T) {
		existing := &model.Service{ID: 7, Name: "mongodb", UserID: 42}
		repository := &mockServiceRepository{}
		repository.
			On("findById", mock.Anything, uint(7)).
			Return(existing, nil)
		repository.
			On("save", mock.Anything, existing).
			Return(nil)
		service := NewService(repository)

		updated, err := service.Update(context.Background(), 7, UpdateServiceInput{Name: "postgres"})

		require.NoError(t, err)
		assert.Equal(t, "postgres", updated.Name)
	})

	t.Run("unknown service", func(t *testing.T) {
		repository := &mockServiceRepository{}
		repository.
			On("findById", mock.Anything, uint(7)).
			Return(nil, errdef.NewNotFound("service does not exist"))
		service := NewService(repository)

		updated, err := service.Update(context.Background(), 7, UpdateServiceInput{Name: "postgres"})

		require.Nil(t, updated)
		require.True(t, errdef.IsNotFound(err))
		repository.AssertNotCalled(t, "save")
	})
}

type mockServiceRepository struct{ mock.Mock }

func (m *mockServiceRepository) create(ctx context.Context, service *model.Service) error {
	return m.Called(ctx, service).Error(0)
}

func (m *mockServiceRepository) save(ctx context.Context, service *model.Service) error {
	return m.Called(ctx, service).Error(0)
}

func (m *mockServiceRepository) findAll(ctx context.Context) ([]model.Service, error) {
	called := m.Called(ctx)
	services, _ := called.Get(0).([]model.Service)
	return services, called.Error(1)
}

func (m *mockServiceRepository) findById(ctx context.Context, id uint) (*model.Service, error) {
	called := m.Called(ctx, id)
	service, _ := called.Get(0).(*model.Service)
	return service, called.Error(1)
}

func (m *mockServiceRepository) delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
