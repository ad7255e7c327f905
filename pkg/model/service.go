package model

import "time"

// Service domain object defining a deployable unit. Services are independently
// owned by a user and optionally attached to clusters, detaching never deletes
// the service itself.
type Service struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"uniqueIndex" json:"name"`
	UserID    uint      `json:"userId"`
}
