package model

import (
	"github.com/google/uuid"
)

// Checklist is a single checklist item on a task. Items with a nil GroupID
// are "flat" items; only flat items participate in task status derivation.
type Checklist struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	GroupID     *uuid.UUID `gorm:"type:uuid;index"`
	Title       string     `gorm:"not null"`
	IsCompleted bool       `gorm:"not null;default:false"`
	Status      string     `gorm:"check:status IN ('', 'todo', 'in_progress', 'completed')"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid"`
	Position    int        `gorm:"not null;default:0"`

	Task     Task            `gorm:"foreignKey:TaskID"`
	Group    *ChecklistGroup `gorm:"foreignKey:GroupID"`
	Assignee *User           `gorm:"foreignKey:AssignedTo"`
	SubTasks []SubTask       `gorm:"foreignKey:ChecklistID;constraint:OnDelete:CASCADE"`
}

// EffectiveCompleted reports whether the item counts as completed. The
// status column is authoritative when set; the legacy is_completed flag
// only applies to rows written before the status column existed.
func (c *Checklist) EffectiveCompleted() bool {
	if c.Status != "" {
		return c.Status == StatusCompleted
	}
	return c.IsCompleted
}
