package model

import "time"

const (
	ProvisionStatusPending = "PENDING"
	ProvisionStatusRunning = "RUNNING"
	ProvisionStatusSuccess = "SUCCESS"
	ProvisionStatusFailed  = "FAILED"
)

// Provision domain object tracking a deployment run of a service against a
// cluster. Status transitions and log entries are driven by the external task
// executor via the provision-log queue.
type Provision struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	ClusterID uint           `json:"clusterId"`
	ServiceID uint           `json:"serviceId"`
	UserID    uint           `json:"userId"`
	Status    string         `gorm:"default:PENDING" json:"status"`
	Logs      []ProvisionLog `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"logs"`
}

// ProvisionLog is a single append-only log entry of a provision run.
type ProvisionLog struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	ProvisionID uint   `json:"-"`
	Status      string `json:"status"`
	Host        string `json:"host"`
	Task        string `json:"task"`
	Timestamp   string `json:"timestamp"`
	Message     string `json:"message"`
}
