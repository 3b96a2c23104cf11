// Package policy holds the pure authorization rules of the application.
// Every function decides from already-loaded rows; existence checks happen
// before these run, so callers can distinguish 404 from 403.
package policy

import (
	"github.com/google/uuid"

	"taskflow/internal/model"
)

// CanAccessTask reports whether the actor may read a task. Admins see
// everything; others need to be the creator or appear in the assignment set.
func CanAccessTask(actor *model.User, task *model.Task, assigneeIDs []uuid.UUID) bool {
	if actor.IsAdmin() {
		return true
	}
	if task.CreatedBy == actor.ID {
		return true
	}
	for _, id := range assigneeIDs {
		if id == actor.ID {
			return true
		}
	}
	return false
}

// CanModifyTask reports whether the actor may update or delete a task.
// Assignment alone grants no write access, only creators and admins modify.
func CanModifyTask(actor *model.User, task *model.Task) bool {
	return actor.IsAdmin() || task.CreatedBy == actor.ID
}

// CanUpdateChecklistItem reports whether the actor may change the status of
// a single checklist item: unassigned items are open to anyone who can see
// the task, assigned items only to their assignee, the task creator, or an
// admin.
func CanUpdateChecklistItem(actor *model.User, task *model.Task, item *model.Checklist) bool {
	if actor.IsAdmin() || task.CreatedBy == actor.ID {
		return true
	}
	return item.AssignedTo == nil || *item.AssignedTo == actor.ID
}

// CanManageTeam reports whether the actor may modify or delete a team.
func CanManageTeam(actor *model.User, team *model.Team) bool {
	return actor.IsAdmin() || team.CreatedBy == actor.ID
}

// CanDeleteUser reports whether the actor may delete the target user.
// Self-deletion is forbidden unconditionally, admins included.
func CanDeleteUser(actor *model.User, targetID uuid.UUID) bool {
	if actor.ID == targetID {
		return false
	}
	return actor.IsAdmin()
}
