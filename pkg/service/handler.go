package service

import (
	"context"
	"net/http"

	"github.com/one-love/onelove/internal/handler"
	"github.com/one-love/onelove/pkg/model"

	"github.com/gin-gonic/gin"
)

func NewHandler(serviceService serviceService) Handler {
	return Handler{serviceService}
}

type Handler struct {
	serviceService serviceService
}

type serviceService interface {
	Create(ctx context.Context, name string, userId uint) (*model.Service, error)
	FindAll(ctx context.Context) ([]model.Service, error)
	FindById(ctx context.Context, id uint) (*model.Service, error)
	Update(ctx context.Context, id uint, input UpdateServiceInput) (*model.Service, error)
	Delete(ctx context.Context, id uint) error
}

type CreateServiceRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create service
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /services createService
	//
	// Create service
	//
	// Create a service owned by the requesting user
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Service
	//   400: Error
	//   401: Error
	//   409: Error
	var request CreateServiceRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	service, err := h.serviceService.Create(c.Request.Context(), request.Name, user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, service)
}

// FindAll services
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /services findAllServices
	//
	// Find services
	//
	// Find all services
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Service
	//   401: Error
	services, err := h.serviceService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, services)
}

// FindById service
func (h Handler) FindById(c *gin.Context) {
	// swagger:route GET /services/{id} findServiceById
	//
	// Find service
	//
	// Find a service by its id
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Service
	//   400: Error
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	service, err := h.serviceService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, service)
}

type UpdateServiceRequest struct {
	Name string `json:"name"`
}

// Update service
func (h Handler) Update(c *gin.Context) {
	// swagger:route PATCH /services/{id} updateService
	//
	// Update service
	//
	// Update a service. Omitted or empty fields keep their current value.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Service
	//   400: Error
	//   401: Error
	//   404: Error
	//   409: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request UpdateServiceRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	service, err := h.serviceService.Update(c.Request.Context(), id, UpdateServiceInput{Name: request.Name})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, service)
}

// Delete service
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /services/{id} deleteService
	//
	// Delete service
	//
	// Delete a service. Clusters referencing it lose the reference.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   202:
	//   400: Error
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	err := h.serviceService.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusAccepted)
}
