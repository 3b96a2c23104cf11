package service

import (
	"taskflow/internal/model"
)

// DeriveTaskStatus computes a task's aggregate status from its flat
// checklist items. The second return is false when the item set is empty,
// in which case the task status must be left untouched.
//
// The rule is a pure function of the current item set: completed when every
// item is completed, in_progress when at least one is, todo otherwise.
func DeriveTaskStatus(items []model.Checklist) (string, bool) {
	if len(items) == 0 {
		return "", false
	}

	completed := 0
	for i := range items {
		if items[i].EffectiveCompleted() {
			completed++
		}
	}

	switch {
	case completed == len(items):
		return model.StatusCompleted, true
	case completed > 0:
		return model.StatusInProgress, true
	default:
		return model.StatusTodo, true
	}
}
