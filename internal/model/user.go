package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Name           string    `gorm:"not null"`
	Role           string    `gorm:"not null;default:'user';check:role IN ('user', 'admin')"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// User roles
const (
	RoleUser  = "user"  // regular account, sees own and assigned tasks
	RoleAdmin = "admin" // full access to all tasks, teams and users
)

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
