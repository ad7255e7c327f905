package model

import "time"

// Cluster domain object defining a cluster of hosted applications. A cluster
// exclusively owns its roles, providers and their hosts. Services are only
// referenced, a service survives the cluster it's attached to.
type Cluster struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Name      string     `gorm:"uniqueIndex" json:"name"`
	Username  string     `json:"username"`
	SSHKey    []byte     `json:"sshKey"`
	Roles     []Role     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"roles"`
	Providers []Provider `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"providers"`
	Services  []Service  `gorm:"many2many:cluster_services;" json:"services"`
}

// FindProvider returns the first provider matching name, nil if there's none.
func (c *Cluster) FindProvider(name string) *Provider {
	for i := range c.Providers {
		if c.Providers[i].Name == name {
			return &c.Providers[i]
		}
	}
	return nil
}

// Role domain object defining a cluster role. Two roles are generated when a
// cluster is created, one for admins and one for regular users.
type Role struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	ClusterID   uint   `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Admin       bool   `json:"admin"`
}

// Provider domain object defining an infrastructure source owned by a cluster.
type Provider struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	ClusterID uint   `json:"-"`
	Name      string `json:"name"`
	Hosts     []Host `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"hosts"`
}

// FindHost returns the first host matching hostname, nil if there's none.
// Hostnames aren't unique within a provider, lookups are first match.
func (p *Provider) FindHost(hostname string) *Host {
	for i := range p.Hosts {
		if p.Hosts[i].Hostname == hostname {
			return &p.Hosts[i]
		}
	}
	return nil
}

// Host domain object defining a machine owned by a provider.
type Host struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	ProviderID uint   `json:"-"`
	Hostname   string `json:"hostname"`
	IP         string `json:"ip"`
}
