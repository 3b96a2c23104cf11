package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow/internal/model"
	"taskflow/internal/policy"
	"taskflow/internal/repository"
)

// TaskService orchestrates a task together with its owned collections
// (checklists, groups, attachments, assignments) as one unit. Child
// collection updates are full replacements: the provided set overwrites
// whatever was stored, inside a single transaction.
type TaskService struct {
	db         *gorm.DB
	tasks      *repository.TaskRepository
	checklists *repository.ChecklistRepository
	users      *repository.UserRepository
}

func NewTaskService(
	db *gorm.DB,
	tasks *repository.TaskRepository,
	checklists *repository.ChecklistRepository,
	users *repository.UserRepository,
) *TaskService {
	return &TaskService{
		db:         db,
		tasks:      tasks,
		checklists: checklists,
		users:      users,
	}
}

type SubTaskInput struct {
	Title       string
	IsCompleted bool
	Status      string
}

type ChecklistItemInput struct {
	Title       string
	IsCompleted bool
	Status      string
	AssignedTo  *uuid.UUID
	SubTasks    []SubTaskInput
}

type ChecklistGroupInput struct {
	Title      string
	AssignedTo *uuid.UUID
	Items      []ChecklistItemInput
}

type CreateTaskInput struct {
	Title           string
	Description     string
	Priority        string
	Status          string
	StartDate       *time.Time
	DueDate         *time.Time
	Checklists      []ChecklistItemInput
	Groups          []ChecklistGroupInput
	AssignedUserIDs []uuid.UUID
	Attachments     []string
}

// UpdateTaskInput carries a partial update. Nil scalar pointers and nil
// slices mean "absent, leave as is"; a non-nil empty slice replaces the
// child collection with nothing.
type UpdateTaskInput struct {
	Title           *string
	Description     *string
	Priority        *string
	Status          *string
	StartDate       *time.Time
	DueDate         *time.Time
	Checklists      []ChecklistItemInput
	Groups          []ChecklistGroupInput
	AssignedUserIDs []uuid.UUID
	Attachments     []string
}

var validStatuses = map[string]bool{
	model.StatusTodo:       true,
	model.StatusInProgress: true,
	model.StatusCompleted:  true,
}

var validPriorities = map[string]bool{
	model.PriorityLow:    true,
	model.PriorityMedium: true,
	model.PriorityHigh:   true,
}

// validateChecklistInputs rejects unknown status strings on nested items and
// sub-tasks before anything reaches the store; an empty status is legal (the
// legacy isCompleted flag covers it).
func validateChecklistInputs(groups []ChecklistGroupInput, items []ChecklistItemInput) error {
	for _, in := range items {
		if err := validateChecklistItem(in); err != nil {
			return err
		}
	}
	for _, g := range groups {
		for _, in := range g.Items {
			if err := validateChecklistItem(in); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateChecklistItem(in ChecklistItemInput) error {
	if in.Status != "" && !validStatuses[in.Status] {
		return fmt.Errorf("%w: invalid checklist status %q", ErrValidation, in.Status)
	}
	for _, st := range in.SubTasks {
		if st.Status != "" && !validStatuses[st.Status] {
			return fmt.Errorf("%w: invalid sub-task status %q", ErrValidation, st.Status)
		}
	}
	return nil
}

func (s *TaskService) resolveActor(ctx context.Context, actorID uuid.UUID) (*model.User, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, fmt.Errorf("%w: actor", ErrNotFound)
	}
	return actor, nil
}

// Create persists a new task with its nested children and returns the
// fully loaded aggregate.
func (s *TaskService) Create(ctx context.Context, actorID uuid.UUID, input CreateTaskInput) (*model.Task, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if input.Priority == "" {
		input.Priority = model.PriorityMedium
	}
	if input.Status == "" {
		input.Status = model.StatusTodo
	}
	if !validPriorities[input.Priority] {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, input.Priority)
	}
	if !validStatuses[input.Status] {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, input.Status)
	}
	if err := validateChecklistInputs(input.Groups, input.Checklists); err != nil {
		return nil, err
	}

	task := &model.Task{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      input.Status,
		StartDate:   input.StartDate,
		DueDate:     input.DueDate,
		CreatedBy:   actor.ID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.tasks.WithTx(tx).Create(ctx, task); err != nil {
			return err
		}

		groups, items := buildChecklistRows(task.ID, actor.ID, input.Groups, input.Checklists)
		if len(groups) > 0 || len(items) > 0 {
			if err := s.checklists.WithTx(tx).ReplaceForTask(ctx, task.ID, groups, items); err != nil {
				return err
			}
		}

		// Duplicate IDs in the input are not de-duplicated here; the unique
		// (task_id, user_id) pair collapses them at the store.
		if len(input.AssignedUserIDs) > 0 {
			if err := s.tasks.WithTx(tx).AddAssignments(ctx, task.ID, input.AssignedUserIDs); err != nil {
				return err
			}
		}

		if len(input.Attachments) > 0 {
			if err := s.tasks.WithTx(tx).ReplaceAttachments(ctx, task.ID, input.Attachments); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.tasks.GetWithChildren(ctx, task.ID)
}

// Get returns a task with its children if the actor may see it.
func (s *TaskService) Get(ctx context.Context, actorID, taskID uuid.UUID) (*model.Task, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.GetWithChildren(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, fmt.Errorf("%w: task", ErrNotFound)
		}
		return nil, err
	}

	assigneeIDs := make([]uuid.UUID, len(task.Assignees))
	for i, u := range task.Assignees {
		assigneeIDs[i] = u.ID
	}
	if !policy.CanAccessTask(actor, task, assigneeIDs) {
		return nil, fmt.Errorf("%w: task", ErrForbidden)
	}

	return task, nil
}

// List returns the tasks visible to the actor, optionally narrowed by
// status and priority, newest first.
func (s *TaskService) List(ctx context.Context, actorID uuid.UUID, status, priority string) ([]model.Task, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if status != "" && !validStatuses[status] {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}
	if priority != "" && !validPriorities[priority] {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, priority)
	}

	filter := repository.TaskFilter{Status: status, Priority: priority}
	if !actor.IsAdmin() {
		filter.VisibleTo = &actor.ID
	}
	return s.tasks.List(ctx, filter)
}

// Stats returns aggregate counts over the actor's visibility scope.
func (s *TaskService) Stats(ctx context.Context, actorID uuid.UUID) (repository.TaskStats, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return repository.TaskStats{}, err
	}

	var visibleTo *uuid.UUID
	if !actor.IsAdmin() {
		visibleTo = &actor.ID
	}
	return s.tasks.Stats(ctx, visibleTo)
}

// Update applies scalar changes and full child-collection replacements in
// one transaction, then re-derives the task status if the checklist set
// changed.
func (s *TaskService) Update(ctx context.Context, actorID, taskID uuid.UUID, input UpdateTaskInput) (*model.Task, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, fmt.Errorf("%w: task", ErrNotFound)
		}
		return nil, err
	}
	if !policy.CanModifyTask(actor, task) {
		return nil, fmt.Errorf("%w: task", ErrForbidden)
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		if *input.Title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrValidation)
		}
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Priority != nil {
		if !validPriorities[*input.Priority] {
			return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, *input.Priority)
		}
		fields["priority"] = *input.Priority
	}
	if input.Status != nil {
		if !validStatuses[*input.Status] {
			return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, *input.Status)
		}
		fields["status"] = *input.Status
	}
	if input.StartDate != nil {
		fields["start_date"] = *input.StartDate
	}
	if input.DueDate != nil {
		fields["due_date"] = *input.DueDate
	}
	if input.Checklists != nil || input.Groups != nil {
		if err := validateChecklistInputs(input.Groups, input.Checklists); err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskRepo := s.tasks.WithTx(tx)
		checklistRepo := s.checklists.WithTx(tx)

		if len(fields) > 0 {
			if err := taskRepo.UpdateFields(ctx, taskID, fields); err != nil {
				return err
			}
		}

		if input.Checklists != nil || input.Groups != nil {
			groups, items := buildChecklistRows(taskID, actor.ID, input.Groups, input.Checklists)
			if err := checklistRepo.ReplaceForTask(ctx, taskID, groups, items); err != nil {
				return err
			}
			if err := s.recomputeStatus(ctx, taskRepo, checklistRepo, taskID); err != nil {
				return err
			}
		}

		if input.AssignedUserIDs != nil {
			if err := taskRepo.ReplaceAssignees(ctx, taskID, input.AssignedUserIDs); err != nil {
				return err
			}
		}

		if input.Attachments != nil {
			if err := taskRepo.ReplaceAttachments(ctx, taskID, input.Attachments); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.tasks.GetWithChildren(ctx, taskID)
}

// Delete removes a task; children go with it via the declared FK cascades.
func (s *TaskService) Delete(ctx context.Context, actorID, taskID uuid.UUID) error {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return err
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return fmt.Errorf("%w: task", ErrNotFound)
		}
		return err
	}
	if !policy.CanModifyTask(actor, task) {
		return fmt.Errorf("%w: task", ErrForbidden)
	}

	return s.tasks.Delete(ctx, taskID)
}

// UpdateChecklistItemStatus writes a new status to a single checklist item
// and re-derives the task status. Returns the task with refreshed children.
func (s *TaskService) UpdateChecklistItemStatus(ctx context.Context, actorID, taskID, checklistID uuid.UUID, status string) (*model.Task, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if !validStatuses[status] {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, fmt.Errorf("%w: task", ErrNotFound)
		}
		return nil, err
	}

	item, err := s.checklists.GetByID(ctx, checklistID)
	if err != nil {
		if errors.Is(err, repository.ErrChecklistNotFound) {
			return nil, fmt.Errorf("%w: checklist item", ErrNotFound)
		}
		return nil, err
	}
	if item.TaskID != taskID {
		return nil, fmt.Errorf("%w: checklist item", ErrNotFound)
	}

	if !policy.CanUpdateChecklistItem(actor, task, item) {
		return nil, fmt.Errorf("%w: checklist item", ErrForbidden)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskRepo := s.tasks.WithTx(tx)
		checklistRepo := s.checklists.WithTx(tx)

		if err := checklistRepo.UpdateStatus(ctx, checklistID, status); err != nil {
			return err
		}
		return s.recomputeStatus(ctx, taskRepo, checklistRepo, taskID)
	})
	if err != nil {
		return nil, err
	}

	return s.tasks.GetWithChildren(ctx, taskID)
}

// recomputeStatus applies the derivation rule to a task. Only flat
// (ungrouped) checklist items drive the task status; grouped items are
// deliberately excluded. The asymmetry is long-standing observed behavior
// and is preserved as is.
func (s *TaskService) recomputeStatus(ctx context.Context, tasks *repository.TaskRepository, checklists *repository.ChecklistRepository, taskID uuid.UUID) error {
	items, err := checklists.ListFlatByTask(ctx, taskID)
	if err != nil {
		return err
	}

	status, ok := DeriveTaskStatus(items)
	if !ok {
		// No flat items: no inference, status stays as is.
		return nil
	}

	task, err := tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.Status == status {
		return nil
	}

	return tasks.UpdateStatus(ctx, taskID, status)
}

// buildChecklistRows turns checklist input into model rows. Group IDs are
// generated up front so grouped items can reference their parent before
// anything is inserted.
func buildChecklistRows(taskID, createdBy uuid.UUID, groupInputs []ChecklistGroupInput, itemInputs []ChecklistItemInput) ([]model.ChecklistGroup, []model.Checklist) {
	groups := make([]model.ChecklistGroup, 0, len(groupInputs))
	items := make([]model.Checklist, 0, len(itemInputs))

	for i, in := range itemInputs {
		items = append(items, checklistRow(taskID, createdBy, nil, i, in))
	}

	for _, g := range groupInputs {
		group := model.ChecklistGroup{
			ID:         uuid.New(),
			TaskID:     taskID,
			Title:      g.Title,
			AssignedTo: g.AssignedTo,
		}
		groups = append(groups, group)

		for i, in := range g.Items {
			groupID := group.ID
			items = append(items, checklistRow(taskID, createdBy, &groupID, i, in))
		}
	}

	return groups, items
}

func checklistRow(taskID, createdBy uuid.UUID, groupID *uuid.UUID, position int, in ChecklistItemInput) model.Checklist {
	item := model.Checklist{
		ID:          uuid.New(),
		TaskID:      taskID,
		GroupID:     groupID,
		Title:       in.Title,
		IsCompleted: in.IsCompleted,
		Status:      in.Status,
		AssignedTo:  in.AssignedTo,
		Position:    position,
	}
	for _, st := range in.SubTasks {
		status := st.Status
		if status == "" {
			status = model.StatusTodo
		}
		item.SubTasks = append(item.SubTasks, model.SubTask{
			ChecklistID: item.ID,
			Title:       st.Title,
			IsCompleted: st.IsCompleted,
			Status:      status,
			CreatedBy:   createdBy,
		})
	}
	return item
}
