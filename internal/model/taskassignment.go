package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskAssignment is the join row between a task and an assigned user. The
// (task_id, user_id) pair is unique: re-assigning an assigned user is a no-op.
type TaskAssignment struct {
	TaskID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Task Task `gorm:"foreignKey:TaskID"`
	User User `gorm:"foreignKey:UserID"`
}
