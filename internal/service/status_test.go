package service_test

import (
	"testing"

	"taskflow/internal/model"
	"taskflow/internal/service"

	"github.com/stretchr/testify/assert"
)

func item(status string) model.Checklist {
	return model.Checklist{Title: "item", Status: status}
}

func legacyItem(isCompleted bool) model.Checklist {
	return model.Checklist{Title: "item", IsCompleted: isCompleted}
}

func TestDeriveTaskStatus(t *testing.T) {
	tests := []struct {
		name       string
		items      []model.Checklist
		wantStatus string
		wantOK     bool
	}{
		{
			name:   "no items leaves status untouched",
			items:  nil,
			wantOK: false,
		},
		{
			name:       "all todo",
			items:      []model.Checklist{item(model.StatusTodo), item(model.StatusTodo), item(model.StatusTodo)},
			wantStatus: model.StatusTodo,
			wantOK:     true,
		},
		{
			name:       "some completed",
			items:      []model.Checklist{item(model.StatusCompleted), item(model.StatusTodo), item(model.StatusTodo)},
			wantStatus: model.StatusInProgress,
			wantOK:     true,
		},
		{
			name:       "all completed",
			items:      []model.Checklist{item(model.StatusCompleted), item(model.StatusCompleted)},
			wantStatus: model.StatusCompleted,
			wantOK:     true,
		},
		{
			name:       "single completed item",
			items:      []model.Checklist{item(model.StatusCompleted)},
			wantStatus: model.StatusCompleted,
			wantOK:     true,
		},
		{
			name:       "in_progress items do not count as completed",
			items:      []model.Checklist{item(model.StatusInProgress), item(model.StatusInProgress)},
			wantStatus: model.StatusTodo,
			wantOK:     true,
		},
		{
			name:       "legacy flag counts when status is empty",
			items:      []model.Checklist{legacyItem(true), legacyItem(true)},
			wantStatus: model.StatusCompleted,
			wantOK:     true,
		},
		{
			name:       "status wins over a stale legacy flag",
			items:      []model.Checklist{{Title: "item", Status: model.StatusTodo, IsCompleted: true}},
			wantStatus: model.StatusTodo,
			wantOK:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ok := service.DeriveTaskStatus(tt.items)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantStatus, status)
			}
		})
	}
}

// Walks a checklist through the lifecycle from the task's point of view:
// 3 open items, completing them one by one, then dropping one.
func TestDeriveTaskStatus_Lifecycle(t *testing.T) {
	items := []model.Checklist{item(model.StatusTodo), item(model.StatusTodo), item(model.StatusTodo)}

	status, ok := service.DeriveTaskStatus(items)
	assert.True(t, ok)
	assert.Equal(t, model.StatusTodo, status)

	items[0].Status = model.StatusCompleted
	status, _ = service.DeriveTaskStatus(items)
	assert.Equal(t, model.StatusInProgress, status)

	items[1].Status = model.StatusCompleted
	items[2].Status = model.StatusCompleted
	status, _ = service.DeriveTaskStatus(items)
	assert.Equal(t, model.StatusCompleted, status)

	// Removing an item re-derives from what remains: both still completed.
	status, _ = service.DeriveTaskStatus(items[1:])
	assert.Equal(t, model.StatusCompleted, status)
}

// Derivation is a pure function of the item set: order never matters.
func TestDeriveTaskStatus_OrderIndependent(t *testing.T) {
	forward := []model.Checklist{item(model.StatusCompleted), item(model.StatusTodo)}
	backward := []model.Checklist{item(model.StatusTodo), item(model.StatusCompleted)}

	s1, _ := service.DeriveTaskStatus(forward)
	s2, _ := service.DeriveTaskStatus(backward)
	assert.Equal(t, s1, s2)
	assert.Equal(t, model.StatusInProgress, s1)
}
