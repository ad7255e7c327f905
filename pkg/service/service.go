package service

import (
	"context"

	"github.com/one-love/onelove/pkg/model"
)

func NewService(repository serviceRepository) Service {
	return Service{repository}
}

type serviceRepository interface {
	create(ctx context.Context, service *model.Service) error
	save(ctx context.Context, service *model.Service) error
	findAll(ctx context.Context) ([]model.Service, error)
	findById(ctx context.Context, id uint) (*model.Service, error)
	delete(ctx context.Context, id uint) error
}

type Service struct {
	repository serviceRepository
}

// Create registers a new service owned by the given user. Service names are
// unique across the system.
func (s Service) Create(ctx context.Context, name string, userId uint) (*model.Service, error) {
	service := &model.Service{
		Name:   name,
		UserID: userId,
	}

	err := s.repository.create(ctx, service)
	if err != nil {
		return nil, err
	}

	return service, nil
}

func (s Service) FindAll(ctx context.Context) ([]model.Service, error) {
	return s.repository.findAll(ctx)
}

func (s Service) FindById(ctx context.Context, id uint) (*model.Service, error) {
	return s.repository.findById(ctx, id)
}

// UpdateServiceInput carries the updatable service fields. Empty fields keep
// the current value.
type UpdateServiceInput struct {
	Name string
}

func (s Service) Update(ctx context.Context, id uint, input UpdateServiceInput) (*model.Service, error) {
	service, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		service.Name = input.Name
	}

	err = s.repository.save(ctx, service)
	if err != nil {
		return nil, err
	}

	return service, nil
}

func (s Service) Delete(ctx context.Context, id uint) error {
	return s.repository.delete(ctx, id)
}
