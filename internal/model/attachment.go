package model

import (
	"github.com/google/uuid"
)

type Attachment struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID  uuid.UUID `gorm:"type:uuid;not null;index"`
	FileURL string    `gorm:"not null"`

	Task Task `gorm:"foreignKey:TaskID"`
}
