package cluster

import (
	"context"
	"net/http"

	"github.com/one-love/onelove/internal/handler"
	"github.com/one-love/onelove/pkg/model"

	"github.com/gin-gonic/gin"
)

func NewHandler(clusterService clusterService) Handler {
	return Handler{clusterService}
}

type Handler struct {
	clusterService clusterService
}

type clusterService interface {
	Find(ctx context.Context, clusterId string) (*model.Cluster, error)
	FindAll(ctx context.Context) ([]model.Cluster, error)
	Create(ctx context.Context, name, username string, sshKey []byte) (*model.Cluster, error)
	Update(ctx context.Context, clusterId string, input UpdateClusterInput) (*model.Cluster, error)
	Delete(ctx context.Context, clusterId string) (*model.Cluster, error)

	ListServices(ctx context.Context, clusterId string) ([]model.Service, error)
	AttachService(ctx context.Context, clusterId string, serviceId uint) (*model.Service, error)
	DetachService(ctx context.Context, clusterId string, serviceId uint) (*model.Service, error)

	ListProviders(ctx context.Context, clusterId string) ([]model.Provider, error)
	CreateProvider(ctx context.Context, clusterId string, name string) (*model.Provider, error)
	DeleteProvider(ctx context.Context, clusterId string, name string) (*model.Provider, error)

	ListHosts(ctx context.Context, clusterId string, providerName string) ([]model.Host, error)
	CreateHost(ctx context.Context, clusterId string, providerName string, hostname string, ip string) (*model.Host, error)
	GetHost(ctx context.Context, clusterId string, providerName string, hostname string) (*model.Host, error)
	UpdateHost(ctx context.Context, clusterId string, providerName string, hostname string, input UpdateHostInput) (*model.Host, error)
	DeleteHost(ctx context.Context, clusterId string, providerName string, hostname string) (*model.Host, error)
}

type CreateClusterRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	SSHKey   []byte `json:"sshKey"`
}

// Create cluster
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /clusters createCluster
	//
	// Create cluster
	//
	// Create a cluster along with its two generated roles
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Cluster
	//   400: Error
	//   401: Error
	//   409: Error
	var request CreateClusterRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	cluster, err := h.clusterService.Create(c.Request.Context(), request.Name, request.Username, request.SSHKey)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, cluster)
}

// FindAll clusters
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /clusters findAllClusters
	//
	// Find clusters
	//
	// Find all clusters
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Cluster
	//   401: Error
	clusters, err := h.clusterService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, clusters)
}

// Find cluster
func (h Handler) Find(c *gin.Context) {
	// swagger:route GET /clusters/{id} findCluster
	//
	// Find cluster
	//
	// Find a cluster by its id
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Cluster
	//   401: Error
	//   404: Error
	cluster, err := h.clusterService.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cluster)
}

type UpdateClusterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	SSHKey   []byte `json:"sshKey"`
}

// Update cluster
func (h Handler) Update(c *gin.Context) {
	// swagger:route PATCH /clusters/{id} updateCluster
	//
	// Update cluster
	//
	// Update a cluster. Omitted or empty fields keep their current value.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Cluster
	//   400: Error
	//   401: Error
	//   404: Error
	//   409: Error
	var request UpdateClusterRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	cluster, err := h.clusterService.Update(c.Request.Context(), c.Param("id"), UpdateClusterInput{
		Name:     request.Name,
		Username: request.Username,
		SSHKey:   request.SSHKey,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cluster)
}

// Delete cluster
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /clusters/{id} deleteCluster
	//
	// Delete cluster
	//
	// Delete a cluster, its roles, providers and hosts. Attached services are
	// detached but not deleted.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Cluster
	//   401: Error
	//   404: Error
	cluster, err := h.clusterService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cluster)
}

// ListServices cluster services
func (h Handler) ListServices(c *gin.Context) {
	// swagger:route GET /clusters/{id}/services listClusterServices
	//
	// List cluster services
	//
	// List the services attached to the cluster
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Service
	//   401: Error
	//   404: Error
	services, err := h.clusterService.ListServices(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, services)
}

type AttachServiceRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
}

// AttachService cluster service
func (h Handler) AttachService(c *gin.Context) {
	// swagger:route POST /clusters/{id}/services attachService
	//
	// Attach service
	//
	// Attach an existing service to the cluster
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Service
	//   400: Error
	//   401: Error
	//   404: Error
	//   409: Error
	var request AttachServiceRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	service, err := h.clusterService.AttachService(c.Request.Context(), c.Param("id"), request.ServiceID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, service)
}

// DetachService cluster service
func (h Handler) DetachService(c *gin.Context) {
	// swagger:route DELETE /clusters/{id}/services/{serviceId} detachService
	//
	// Detach service
	//
	// Detach a service from the cluster. The service itself is not deleted.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Service
	//   400: Error
	//   401: Error
	//   404: Error
	serviceId, ok := handler.GetPathParameter(c, "serviceId")
	if !ok {
		return
	}

	service, err := h.clusterService.DetachService(c.Request.Context(), c.Param("id"), serviceId)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, service)
}

// ListProviders cluster providers
func (h Handler) ListProviders(c *gin.Context) {
	// swagger:route GET /clusters/{id}/providers listProviders
	//
	// List providers
	//
	// List the providers owned by the cluster
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Provider
	//   401: Error
	//   404: Error
	providers, err := h.clusterService.ListProviders(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, providers)
}

type CreateProviderRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateProvider cluster provider
func (h Handler) CreateProvider(c *gin.Context) {
	// swagger:route POST /clusters/{id}/providers createProvider
	//
	// Create provider
	//
	// Create a provider owned by the cluster
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Provider
	//   400: Error
	//   401: Error
	//   404: Error
	//   409: Error
	var request CreateProviderRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	provider, err := h.clusterService.CreateProvider(c.Request.Context(), c.Param("id"), request.Name)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, provider)
}

// DeleteProvider cluster provider
func (h Handler) DeleteProvider(c *gin.Context) {
	// swagger:route DELETE /clusters/{id}/providers/{name} deleteProvider
	//
	// Delete provider
	//
	// Delete a provider and the hosts it owns
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Provider
	//   401: Error
	//   404: Error
	provider, err := h.clusterService.DeleteProvider(c.Request.Context(), c.Param("id"), c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, provider)
}

// ListHosts provider hosts
func (h Handler) ListHosts(c *gin.Context) {
	// swagger:route GET /clusters/{id}/providers/{name}/hosts listHosts
	//
	// List hosts
	//
	// List the hosts of the named provider
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Host
	//   401: Error
	//   404: Error
	hosts, err := h.clusterService.ListHosts(c.Request.Context(), c.Param("id"), c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, hosts)
}

type CreateHostRequest struct {
	Hostname string `json:"hostname"`
	IP       string `json:"ip"`
}

// CreateHost provider host
func (h Handler) CreateHost(c *gin.Context) {
	// swagger:route POST /clusters/{id}/providers/{name}/hosts createHost
	//
	// Create host
	//
	// Create a host under the named provider, hostname and ip are required
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Host
	//   400: Error
	//   401: Error
	//   404: Error
	//   422: Error
	var request CreateHostRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	host, err := h.clusterService.CreateHost(c.Request.Context(), c.Param("id"), c.Param("name"), request.Hostname, request.IP)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, host)
}

// GetHost provider host
func (h Handler) GetHost(c *gin.Context) {
	// swagger:route GET /clusters/{id}/providers/{name}/hosts/{hostname} getHost
	//
	// Get host
	//
	// Get the first host of the named provider matching hostname
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Host
	//   401: Error
	//   404: Error
	host, err := h.clusterService.GetHost(c.Request.Context(), c.Param("id"), c.Param("name"), c.Param("hostname"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, host)
}

type UpdateHostRequest struct {
	Hostname *string `json:"hostname"`
	IP       *string `json:"ip"`
}

// UpdateHost provider host
func (h Handler) UpdateHost(c *gin.Context) {
	// swagger:route PATCH /clusters/{id}/providers/{name}/hosts/{hostname} updateHost
	//
	// Update host
	//
	// Partially update a host. Omitted or empty fields keep their current
	// value.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Host
	//   400: Error
	//   401: Error
	//   404: Error
	var request UpdateHostRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	host, err := h.clusterService.UpdateHost(c.Request.Context(), c.Param("id"), c.Param("name"), c.Param("hostname"), UpdateHostInput{
		Hostname: request.Hostname,
		IP:       request.IP,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, host)
}

// DeleteHost provider host
func (h Handler) DeleteHost(c *gin.Context) {
	// swagger:route DELETE /clusters/{id}/providers/{name}/hosts/{hostname} deleteHost
	//
	// Delete host
	//
	// Delete the first host of the named provider matching hostname
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Host
	//   401: Error
	//   404: Error
	host, err := h.clusterService.DeleteHost(c.Request.Context(), c.Param("id"), c.Param("name"), c.Param("hostname"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, host)
}
