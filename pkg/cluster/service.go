package cluster

import (
	"context"
	"fmt"
	"strconv"

	"github.com/one-love/onelove/internal/errdef"
	"github.com/one-love/onelove/pkg/model"

	"github.com/gosimple/slug"
)

func NewService(clusterRepository clusterRepository, serviceService serviceService) Service {
	return Service{
		clusterRepository: clusterRepository,
		serviceService:    serviceService,
	}
}

type clusterRepository interface {
	find(ctx context.Context, id uint) (*model.Cluster, error)
	findAll(ctx context.Context) ([]model.Cluster, error)
	save(ctx context.Context, cluster *model.Cluster) error
	delete(ctx context.Context, cluster *model.Cluster) error
	addService(ctx context.Context, cluster *model.Cluster, service *model.Service) error
	removeService(ctx context.Context, cluster *model.Cluster, service *model.Service) error
	saveProvider(ctx context.Context, provider *model.Provider, cluster *model.Cluster) error
	deleteProvider(ctx context.Context, provider *model.Provider, cluster *model.Cluster) error
	deleteHost(ctx context.Context, host *model.Host, provider *model.Provider, cluster *model.Cluster) error
}

type serviceService interface {
	FindById(ctx context.Context, id uint) (*model.Service, error)
}

type Service struct {
	clusterRepository clusterRepository
	serviceService    serviceService
}

// Find resolves a cluster by its id path parameter. It is the single admission
// point for every cluster scoped operation. A malformed id and a missing
// cluster collapse into the same not found error.
func (s Service) Find(ctx context.Context, clusterId string) (*model.Cluster, error) {
	id, err := strconv.ParseUint(clusterId, 10, 32)
	if err != nil {
		return nil, errdef.NewNotFound("no such cluster")
	}

	return s.clusterRepository.find(ctx, uint(id))
}

func (s Service) FindAll(ctx context.Context) ([]model.Cluster, error) {
	return s.clusterRepository.findAll(ctx)
}

// Create saves a new cluster along with its two generated roles, one for
// admins and one for regular users.
func (s Service) Create(ctx context.Context, name, username string, sshKey []byte) (*model.Cluster, error) {
	cluster := &model.Cluster{
		Name:     name,
		Username: username,
		SSHKey:   sshKey,
		Roles: []model.Role{
			{
				Name:        fmt.Sprintf("admin_%s", slug.Make(name)),
				Description: fmt.Sprintf("Cluster %s admin", name),
				Admin:       true,
			},
			{
				Name:        fmt.Sprintf("user_%s", slug.Make(name)),
				Description: fmt.Sprintf("Cluster %s users", name),
				Admin:       false,
			},
		},
	}

	err := s.clusterRepository.save(ctx, cluster)
	if err != nil {
		return nil, err
	}

	return cluster, nil
}

// UpdateClusterInput carries the updatable cluster fields. Empty fields keep
// the current value.
type UpdateClusterInput struct {
	Name     string
	Username string
	SSHKey   []byte
}

func (s Service) Update(ctx context.Context, clusterId string, input UpdateClusterInput) (*model.Cluster, error) {
	cluster, err := s.Find(ctx, clusterId)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		cluster.Name = input.Name
	}
	if input.Username != "" {
		cluster.Username = input.Username
	}
	if input.SSHKey != nil {
		cluster.SSHKey = input.SSHKey
	}

	err = s.clusterRepository.save(ctx, cluster)
	if err != nil {
		return nil, err
	}

	return cluster, nil
}

// Delete removes the cluster and everything it owns. Attached services are
// only detached, never deleted.
func (s Service) Delete(ctx context.Context, clusterId string) (*model.Cluster, error) {
	cluster, err := s.Find(ctx, clusterId)
	if err != nil {
		return nil, err
	}

	err = s.clusterRepository.delete(ctx, cluster)
	if err != nil {
		return nil, err
	}

	return cluster, nil
}

// ListServices returns the services attached to the cluster.
func (s Service) ListServices(ctx context.Context, clusterId string) ([]model.Service, error) {
	cluster, err := s.Find(ctx, clusterId)
	if err != nil {
		return nil, err
	}

	return cluster.Services, nil
}

// AttachService appends a reference to an existing service to the cluster. The
// service itself is never mutated.
func (s Service) AttachService(ctx context.Context, clusterId string, serviceId uint) (*model.Service, error) {
	cluster, err := s.Find(ctx, clusterId)
	if err != nil {
		return nil, err
	}

	service, err := s.serviceService.FindById(ctx, serviceId)
	if err != nil {
		return nil, err
	}

	for _, attached := range cluster.Services {
		if attached.ID == serviceId {
			return nil, errdef.NewConflict("service %d is already part of cluster %q", serviceId, cluster.Name)
		}
	}

	err = s.clusterRepository.addService(ctx, cluster, service)
	if err != nil {
		return nil, err
	}

	return service, nil
}

// DetachService removes the reference to the service from the cluster. The
// service itself is left untouched.
func (s Service) DetachService(ctx context.Context, clusterId string, serviceId uint) (*model.Service, error) {
	cluster, err := s.Find(ctx, clusterId)
	if err != nil {
		return nil, err
	}

	for i := range cluster.Services {
		if cluster.Services[i].ID == serviceId {
			service := cluster.Services[i]
			err = s.clusterRepository.removeService(ctx, cluster, &service)
			if err != nil {
				return nil, err
			}
			return &service, nil
		}
	}

	return nil, errdef.NewNotFound("service %d not found", serviceId)
}

// ListProviders returns the providers owned by the cluster.
func (s Service) ListProviders(ctx context.Context, clusterId string) ([]model.Provider, error) {
	cluster, err := s.Find(ctx, clusterId)
	if err != nil {
		return nil, err
	}

	return cluster.Providers, nil
}

// CreateProvider adds a new empty provider to the cluster. Provider names are
// unique within a cluster since host lookups are by provider name.
func (s Service) CreateProvider(ctx context.Context, clusterId string, name string) (*model.Provider, error) {
	cluster, err := s.Find(ctx, clusterId)
	if err != nil {
		return nil, err
	}

	if cluster.FindProvider(name) != nil {
		return nil, errdef.NewConflict("provider %q already exists in cluster %q", name, cluster.Name)
	}

	provider := &model.Provider{
		ClusterID: cluster.ID,
		Name:      name,
	}

	err = s.clusterRepository.saveProvider(ctx, provider, cluster)
	if err != nil {
		return nil, err
	}

	return provider, nil
}

// DeleteProvider removes the provider and the hosts it owns from the cluster.
func (s Service) DeleteProvider(ctx context.Context, clusterId string, name string) (*model.Provider, error) {
	cluster, err := s.Find(ctx, clusterId)
	if err != nil {
		return nil, err
	}

	provider := cluster.FindProvider(name)
	if provider == nil {
		return nil, errdef.NewNotFound("no such provider")
	}

	err = s.clusterRepository.deleteProvider(ctx, provider, cluster)
	if err != nil {
		return nil, err
	}

	return provider, nil
}

// ListHosts returns the hosts of the named provider, possibly empty.
func (s Service) ListHosts(ctx context.Context, clusterId string, providerName string) ([]model.Host, error) {
	cluster, err := s.Find(ctx, clusterId)
	if err != nil {
		return nil, err
	}

	provider := cluster.FindProvider(providerName)
	if provider == nil {
		return nil, errdef.NewNotFound("no such provider")
	}

	return provider.Hosts, nil
}

// CreateHost adds a new host to the named provider. Hostnames aren't required
// to be unique, a provider may hold several hosts with the same hostname.
func (s Service) CreateHost(ctx context.Context, clusterId string, providerName string, hostname string, ip string) (*model.Host, error) {
	if hostname == "" || ip == "" {
		return nil, errdef.NewUnprocessable("hostname and ip are required")
	}

	cluster, err := s.Find(ctx, clusterId)
	if err != nil {
		return nil, err
	}

	provider := cluster.FindProvider(providerName)
	if provider == nil {
		return nil, errdef.NewNotFound("no such provider")
	}

	host := model.Host{
		ProviderID: provider.ID,
		Hostname:   hostname,
		IP:         ip,
	}
	provider.Hosts = append(provider.Hosts, host)

	err = s.clusterRepository.saveProvider(ctx, provider, cluster)
	if err != nil {
		return nil, err
	}

	return &provider.Hosts[len(provider.Hosts)-1], nil
}

// GetHost returns the first host of the named provider matching hostname.
func (s Service) GetHost(ctx context.Context, clusterId string, providerName string, hostname string) (*model.Host, error) {
	cluster, err := s.Find(ctx, clusterId)
	if err != nil {
		return nil, err
	}

	provider := cluster.FindProvider(providerName)
	if provider == nil {
		return nil, errdef.NewNotFound("no such provider")
	}

	host := provider.FindHost(hostname)
	if host == nil {
		return nil, errdef.NewNotFound("no such host")
	}

	return host, nil
}

// UpdateHostInput carries the host patch. A nil field was not supplied, an
// empty string keeps the current value. Clearing a field to the empty string
// is not possible.
type UpdateHostInput struct {
	Hostname *string
	IP       *string
}

func (s Service) UpdateHost(ctx context.Context, clusterId string, providerName string, hostname string, input UpdateHostInput) (*model.Host, error) {
	cluster, err := s.Find(ctx, clusterId)
	if err != nil {
		return nil, err
	}

	provider := cluster.FindProvider(providerName)
	if provider == nil {
		return nil, errdef.NewNotFound("no such provider")
	}

	host := provider.FindHost(hostname)
	if host == nil {
		return nil, errdef.NewNotFound("no such host")
	}

	if input.Hostname != nil && *input.Hostname != "" {
		host.Hostname = *input.Hostname
	}
	if input.IP != nil && *input.IP != "" {
		host.IP = *input.IP
	}

	err = s.clusterRepository.saveProvider(ctx, provider, cluster)
	if err != nil {
		return nil, err
	}

	return host, nil
}

// DeleteHost removes the first host of the named provider matching hostname.
func (s Service) DeleteHost(ctx context.Context, clusterId string, providerName string, hostname string) (*model.Host, error) {
	cluster, err := s.Find(ctx, clusterId)
	if err != nil {
		return nil, err
	}

	provider := cluster.FindProvider(providerName)
	if provider == nil {
		return nil, errdef.NewNotFound("no such provider")
	}

	host := provider.FindHost(hostname)
	if host == nil {
		return nil, errdef.NewNotFound("no such host")
	}

	removed := *host
	for i := range provider.Hosts {
		if provider.Hosts[i].ID == removed.ID {
			provider.Hosts = append(provider.Hosts[:i], provider.Hosts[i+1:]...)
			break
		}
	}

	err = s.clusterRepository.deleteHost(ctx, &removed, provider, cluster)
	if err != nil {
		return nil, err
	}

	return &removed, nil
}
