package model

import (
	"time"

	"github.com/google/uuid"
)

// User domain object defining a user. A user is created inactive holding a
// single-use registration token. Confirming the token activates the user and
// clears the token, there is no way back to the pending state.
type User struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Email         string    `gorm:"uniqueIndex" json:"email"`
	Username      string    `json:"username"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Password      string    `json:"-"`
	Active        bool      `json:"active"`
	RegisterToken uuid.UUID `gorm:"index" json:"-"`
}
