package model

import (
	"github.com/google/uuid"
)

type ChecklistGroup struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title      string     `gorm:"not null"`
	AssignedTo *uuid.UUID `gorm:"type:uuid"`

	Task       Task        `gorm:"foreignKey:TaskID"`
	Assignee   *User       `gorm:"foreignKey:AssignedTo"`
	Checklists []Checklist `gorm:"foreignKey:GroupID"`
}
