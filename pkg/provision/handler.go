package provision

import (
	"context"
	"net/http"

	"github.com/one-love/onelove/internal/handler"
	"github.com/one-love/onelove/pkg/model"

	"github.com/gin-gonic/gin"
)

func NewHandler(provisionService provisionService) Handler {
	return Handler{provisionService}
}

type Handler struct {
	provisionService provisionService
}

type provisionService interface {
	Create(ctx context.Context, userId, clusterId, serviceId uint) (*model.Provision, error)
	FindAll(ctx context.Context) ([]model.Provision, error)
	FindById(ctx context.Context, id uint) (*model.Provision, error)
}

type CreateProvisionRequest struct {
	ClusterID uint `json:"cluster_id" binding:"required"`
	ServiceID uint `json:"service_id" binding:"required"`
}

// Create provision
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /provisions createProvision
	//
	// Create provision
	//
	// Queue a provision of a service onto a cluster
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Provision
	//   400: Error
	//   401: Error
	//   404: Error
	var request CreateProvisionRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	provision, err := h.provisionService.Create(c.Request.Context(), user.ID, request.ClusterID, request.ServiceID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, provision)
}

// FindAll provisions
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /provisions findAllProvisions
	//
	// Find provisions
	//
	// Find all provisions along with their log entries
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Provision
	//   401: Error
	provisions, err := h.provisionService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, provisions)
}

// FindById provision
func (h Handler) FindById(c *gin.Context) {
	// swagger:route GET /provisions/{id} findProvisionById
	//
	// Find provision
	//
	// Find a provision by its id
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Provision
	//   400: Error
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	provision, err := h.provisionService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, provision)
}
