package model

import (
	"github.com/google/uuid"
)

type SubTask struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ChecklistID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	IsCompleted bool      `gorm:"not null;default:false"`
	Status      string    `gorm:"not null;default:'todo';check:status IN ('todo', 'in_progress', 'completed')"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`

	Checklist Checklist `gorm:"foreignKey:ChecklistID"`
	Creator   User      `gorm:"foreignKey:CreatedBy"`
}
