package model

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Task priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string     `gorm:"not null"`
	Description string
	Priority    string     `gorm:"not null;default:'medium';check:priority IN ('low', 'medium', 'high')"`
	Status      string     `gorm:"not null;default:'todo';check:status IN ('todo', 'in_progress', 'completed')"`
	StartDate   *time.Time
	DueDate     *time.Time
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Creator     User             `gorm:"foreignKey:CreatedBy"`
	Checklists  []Checklist      `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Groups      []ChecklistGroup `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Attachments []Attachment     `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Assignees   []User           `gorm:"many2many:task_assignments"`
}
