package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *TaskRepository) WithTx(tx *gorm.DB) *TaskRepository {
	return &TaskRepository{db: tx}
}

// TaskFilter narrows List results. VisibleTo restricts to tasks the user
// created or is assigned to; nil means no visibility restriction (admin).
type TaskFilter struct {
	VisibleTo *uuid.UUID
	Status    string
	Priority  string
}

// TaskStats holds aggregate counts over a visibility scope.
type TaskStats struct {
	Total      int64 `json:"total"`
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Overdue    int64 `json:"overdue"`
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID without associations
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetWithChildren retrieves a task with all of its owned collections loaded
func (r *TaskRepository) GetWithChildren(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Checklists", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Checklists.SubTasks").
		Preload("Groups").
		Preload("Groups.Checklists", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Attachments").
		Preload("Assignees").
		First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// List retrieves tasks matching the filter, newest first
func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Model(&model.Task{})

	if filter.VisibleTo != nil {
		query = query.Where(
			"created_by = ? OR id IN (SELECT task_id FROM task_assignments WHERE user_id = ?)",
			*filter.VisibleTo, *filter.VisibleTo,
		)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	var tasks []model.Task
	result := query.
		Preload("Creator").
		Preload("Assignees").
		Order("created_at DESC").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// UpdateFields applies a partial scalar update to a task
func (r *TaskRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// UpdateStatus writes a new task status
func (r *TaskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by its ID; child rows go with it via FK cascade
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// AddAssignments inserts assignment rows for the given users. The unique
// (task_id, user_id) pair makes duplicate inserts a no-op.
func (r *TaskRepository) AddAssignments(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID) error {
	for _, userID := range userIDs {
		err := r.db.WithContext(ctx).Exec(
			"INSERT INTO task_assignments (task_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			taskID, userID,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// ReplaceAssignees swaps the full assignment set of a task
func (r *TaskRepository) ReplaceAssignees(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.TaskAssignment{}).Error; err != nil {
			return err
		}
		return r.WithTx(tx).AddAssignments(ctx, taskID, userIDs)
	})
}

// ReplaceAttachments swaps the full attachment set of a task
func (r *TaskRepository) ReplaceAttachments(ctx context.Context, taskID uuid.UUID, fileURLs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.Attachment{}).Error; err != nil {
			return err
		}
		for _, url := range fileURLs {
			attachment := model.Attachment{TaskID: taskID, FileURL: url}
			if err := tx.Create(&attachment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Stats computes aggregate counts over the tasks visible to a user
func (r *TaskRepository) Stats(ctx context.Context, visibleTo *uuid.UUID) (TaskStats, error) {
	query := r.db.WithContext(ctx).Model(&model.Task{})
	if visibleTo != nil {
		query = query.Where(
			"created_by = ? OR id IN (SELECT task_id FROM task_assignments WHERE user_id = ?)",
			*visibleTo, *visibleTo,
		)
	}

	var stats TaskStats
	err := query.
		Select(
			"COUNT(*) AS total, "+
				"COUNT(*) FILTER (WHERE status = ?) AS todo, "+
				"COUNT(*) FILTER (WHERE status = ?) AS in_progress, "+
				"COUNT(*) FILTER (WHERE status = ?) AS completed, "+
				"COUNT(*) FILTER (WHERE due_date < ? AND status <> ?) AS overdue",
			model.StatusTodo, model.StatusInProgress, model.StatusCompleted,
			time.Now(), model.StatusCompleted,
		).
		Scan(&stats).Error
	return stats, err
}
