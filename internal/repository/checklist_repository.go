package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow/internal/model"
)

type ChecklistRepository struct {
	db *gorm.DB
}

func NewChecklistRepository(db *gorm.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ChecklistRepository) WithTx(tx *gorm.DB) *ChecklistRepository {
	return &ChecklistRepository{db: tx}
}

// GetByID retrieves a checklist item by its ID
func (r *ChecklistRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Checklist, error) {
	var item model.Checklist
	result := r.db.WithContext(ctx).First(&item, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrChecklistNotFound
		}
		return nil, result.Error
	}
	return &item, nil
}

// ListFlatByTask retrieves the task's checklist items that belong to no
// group. Task status derivation runs over exactly this set.
func (r *ChecklistRepository) ListFlatByTask(ctx context.Context, taskID uuid.UUID) ([]model.Checklist, error) {
	var items []model.Checklist
	result := r.db.WithContext(ctx).
		Where("task_id = ? AND group_id IS NULL", taskID).
		Order("position").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

// UpdateStatus writes a new status to a checklist item. The legacy
// is_completed flag is kept in sync so pre-status readers stay correct.
func (r *ChecklistRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).Model(&model.Checklist{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"is_completed": status == model.StatusCompleted,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChecklistNotFound
	}
	return nil
}

// ReplaceForTask swaps the entire checklist of a task: every existing group
// and item is deleted, then the provided set is inserted. Sub-tasks ride in
// on their parent items.
func (r *ChecklistRepository) ReplaceForTask(ctx context.Context, taskID uuid.UUID, groups []model.ChecklistGroup, items []model.Checklist) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.Checklist{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&model.ChecklistGroup{}).Error; err != nil {
			return err
		}
		for i := range groups {
			groups[i].TaskID = taskID
			if err := tx.Create(&groups[i]).Error; err != nil {
				return err
			}
		}
		for i := range items {
			items[i].TaskID = taskID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
