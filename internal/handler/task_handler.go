package handler

import (
	"net/http"
	"time"

	"taskflow/internal/model"
	"taskflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// SubTaskRequest is a sub-task nested under a checklist item
type SubTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	IsCompleted bool   `json:"isCompleted"`
	Status      string `json:"status"`
}

// ChecklistItemRequest is a checklist item in a task payload
type ChecklistItemRequest struct {
	Title       string           `json:"title" binding:"required"`
	IsCompleted bool             `json:"isCompleted"`
	Status      string           `json:"status"`
	AssignedTo  *string          `json:"assignedTo"`
	SubTasks    []SubTaskRequest `json:"subTasks"`
}

// ChecklistGroupRequest is a checklist group with its own items
type ChecklistGroupRequest struct {
	Title      string                 `json:"title" binding:"required"`
	AssignedTo *string                `json:"assignedTo"`
	Checklists []ChecklistItemRequest `json:"checklists"`
}

// CreateTaskRequest is the body of POST /tasks
type CreateTaskRequest struct {
	Title           string                  `json:"title" binding:"required"`
	Description     string                  `json:"description"`
	Priority        string                  `json:"priority"`
	Status          string                  `json:"status"`
	StartDate       *time.Time              `json:"startDate"`
	DueDate         *time.Time              `json:"dueDate"`
	Checklists      []ChecklistItemRequest  `json:"checklists"`
	ChecklistGroups []ChecklistGroupRequest `json:"checklistGroups"`
	AssignedUserIDs []string                `json:"assignedUserIds"`
	Attachments     []string                `json:"attachments"`
}

// UpdateTaskRequest is the body of PUT /tasks/:id. A child collection key
// that is present, even as an empty array, replaces that collection
// wholesale; an absent key leaves it untouched.
type UpdateTaskRequest struct {
	Title           *string                 `json:"title"`
	Description     *string                 `json:"description"`
	Priority        *string                 `json:"priority"`
	Status          *string                 `json:"status"`
	StartDate       *time.Time              `json:"startDate"`
	DueDate         *time.Time              `json:"dueDate"`
	Checklists      []ChecklistItemRequest  `json:"checklists"`
	ChecklistGroups []ChecklistGroupRequest `json:"checklistGroups"`
	AssignedUserIDs []string                `json:"assignedUserIds"`
	Attachments     []string                `json:"attachments"`
}

// UpdateChecklistItemRequest is the body of PUT /tasks/:id/checklists/:checklist_id
type UpdateChecklistItemRequest struct {
	Status      *string `json:"status"`
	IsCompleted *bool   `json:"isCompleted"`
}

// SubTaskResponse mirrors a stored sub-task
type SubTaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
	Status      string `json:"status"`
}

// ChecklistItemResponse mirrors a stored checklist item
type ChecklistItemResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	IsCompleted bool              `json:"isCompleted"`
	Status      string            `json:"status,omitempty"`
	AssignedTo  *string           `json:"assignedTo,omitempty"`
	SubTasks    []SubTaskResponse `json:"subTasks,omitempty"`
}

// ChecklistGroupResponse mirrors a stored checklist group
type ChecklistGroupResponse struct {
	ID         string                  `json:"id"`
	Title      string                  `json:"title"`
	AssignedTo *string                 `json:"assignedTo,omitempty"`
	Checklists []ChecklistItemResponse `json:"checklists"`
}

// TaskResponse is the full task aggregate
type TaskResponse struct {
	ID              string                   `json:"id"`
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	Priority        string                   `json:"priority"`
	Status          string                   `json:"status"`
	StartDate       *string                  `json:"startDate,omitempty"`
	DueDate         *string                  `json:"dueDate,omitempty"`
	CreatedBy       string                   `json:"createdBy"`
	CreatorName     string                   `json:"creatorName,omitempty"`
	CreatedAt       string                   `json:"createdAt"`
	Checklists      []ChecklistItemResponse  `json:"checklists,omitempty"`
	ChecklistGroups []ChecklistGroupResponse `json:"checklistGroups,omitempty"`
	Attachments     []string                 `json:"attachments,omitempty"`
	AssignedUsers   []UserResponse           `json:"assignedUsers,omitempty"`
}

func parseOptionalUserID(s *string) (*uuid.UUID, bool) {
	if s == nil {
		return nil, true
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, false
	}
	return &id, true
}

func parseUserIDs(ids []string) ([]uuid.UUID, bool) {
	if ids == nil {
		return nil, true
	}
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, s := range ids {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, false
		}
		parsed = append(parsed, id)
	}
	return parsed, true
}

func checklistInputs(reqs []ChecklistItemRequest) ([]service.ChecklistItemInput, bool) {
	if reqs == nil {
		return nil, true
	}
	items := make([]service.ChecklistItemInput, 0, len(reqs))
	for _, req := range reqs {
		assignedTo, ok := parseOptionalUserID(req.AssignedTo)
		if !ok {
			return nil, false
		}
		item := service.ChecklistItemInput{
			Title:       req.Title,
			IsCompleted: req.IsCompleted,
			Status:      req.Status,
			AssignedTo:  assignedTo,
		}
		for _, st := range req.SubTasks {
			item.SubTasks = append(item.SubTasks, service.SubTaskInput{
				Title:       st.Title,
				IsCompleted: st.IsCompleted,
				Status:      st.Status,
			})
		}
		items = append(items, item)
	}
	return items, true
}

func groupInputs(reqs []ChecklistGroupRequest) ([]service.ChecklistGroupInput, bool) {
	if reqs == nil {
		return nil, true
	}
	groups := make([]service.ChecklistGroupInput, 0, len(reqs))
	for _, req := range reqs {
		assignedTo, ok := parseOptionalUserID(req.AssignedTo)
		if !ok {
			return nil, false
		}
		items, ok := checklistInputs(req.Checklists)
		if !ok {
			return nil, false
		}
		if items == nil {
			items = []service.ChecklistItemInput{}
		}
		groups = append(groups, service.ChecklistGroupInput{
			Title:      req.Title,
			AssignedTo: assignedTo,
			Items:      items,
		})
	}
	return groups, true
}

func checklistItemResponse(item *model.Checklist) ChecklistItemResponse {
	resp := ChecklistItemResponse{
		ID:          item.ID.String(),
		Title:       item.Title,
		IsCompleted: item.IsCompleted,
		Status:      item.Status,
	}
	if item.AssignedTo != nil {
		s := item.AssignedTo.String()
		resp.AssignedTo = &s
	}
	for i := range item.SubTasks {
		st := &item.SubTasks[i]
		resp.SubTasks = append(resp.SubTasks, SubTaskResponse{
			ID:          st.ID.String(),
			Title:       st.Title,
			IsCompleted: st.IsCompleted,
			Status:      st.Status,
		})
	}
	return resp
}

func taskResponse(task *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
		CreatedBy:   task.CreatedBy.String(),
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
	}
	if task.Creator.ID != uuid.Nil {
		resp.CreatorName = task.Creator.Name
	}
	if task.StartDate != nil {
		s := task.StartDate.Format(time.RFC3339)
		resp.StartDate = &s
	}
	if task.DueDate != nil {
		s := task.DueDate.Format(time.RFC3339)
		resp.DueDate = &s
	}
	for i := range task.Checklists {
		item := &task.Checklists[i]
		if item.GroupID != nil {
			continue // grouped items are rendered under their group
		}
		resp.Checklists = append(resp.Checklists, checklistItemResponse(item))
	}
	for i := range task.Groups {
		group := &task.Groups[i]
		groupResp := ChecklistGroupResponse{
			ID:         group.ID.String(),
			Title:      group.Title,
			Checklists: []ChecklistItemResponse{},
		}
		if group.AssignedTo != nil {
			s := group.AssignedTo.String()
			groupResp.AssignedTo = &s
		}
		for j := range group.Checklists {
			groupResp.Checklists = append(groupResp.Checklists, checklistItemResponse(&group.Checklists[j]))
		}
		resp.ChecklistGroups = append(resp.ChecklistGroups, groupResp)
	}
	for _, a := range task.Attachments {
		resp.Attachments = append(resp.Attachments, a.FileURL)
	}
	for i := range task.Assignees {
		resp.AssignedUsers = append(resp.AssignedUsers, userResponse(&task.Assignees[i]))
	}
	return resp
}

// Create creates a new task with its nested children
// @Summary      Create a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateTaskRequest true "Task data"
// @Success      201 {object} TaskResponse
// @Failure      400 {object} map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	assignedIDs, ok := parseUserIDs(req.AssignedUserIDs)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}
	items, ok := checklistInputs(req.Checklists)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}
	groups, ok := groupInputs(req.ChecklistGroups)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), actorID, service.CreateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		Priority:        req.Priority,
		Status:          req.Status,
		StartDate:       req.StartDate,
		DueDate:         req.DueDate,
		Checklists:      items,
		Groups:          groups,
		AssignedUserIDs: assignedIDs,
		Attachments:     req.Attachments,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, taskResponse(task))
}

// List returns the tasks visible to the authenticated user
// @Summary      List tasks
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Status filter"
// @Param        priority query string false "Priority filter"
// @Success      200 {array} TaskResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), actorID, c.Query("status"), c.Query("priority"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = taskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, response)
}

// StatsResponse holds the aggregate counts of GET /tasks/stats
type StatsResponse struct {
	Total      int64 `json:"total"`
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Overdue    int64 `json:"overdue"`
}

// Stats returns aggregate counts over the visible task set
// @Summary      Task statistics
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} StatsResponse
// @Router       /tasks/stats [get]
func (h *TaskHandler) Stats(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.tasks.Stats(c.Request.Context(), actorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		Total:      stats.Total,
		Todo:       stats.Todo,
		InProgress: stats.InProgress,
		Completed:  stats.Completed,
		Overdue:    stats.Overdue,
	})
}

// GetByID returns a single task with its children
// @Summary      Get a task
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Success      200 {object} TaskResponse
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), actorID, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

// Update applies a partial update with full child-collection replacement
// @Summary      Update a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Param        request body UpdateTaskRequest true "Changed fields"
// @Success      200 {object} TaskResponse
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	assignedIDs, ok := parseUserIDs(req.AssignedUserIDs)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}
	items, ok := checklistInputs(req.Checklists)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}
	groups, ok := groupInputs(req.ChecklistGroups)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), actorID, taskID, service.UpdateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		Priority:        req.Priority,
		Status:          req.Status,
		StartDate:       req.StartDate,
		DueDate:         req.DueDate,
		Checklists:      items,
		Groups:          groups,
		AssignedUserIDs: assignedIDs,
		Attachments:     req.Attachments,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

// Delete removes a task and everything it owns
// @Summary      Delete a task
// @Tags         Tasks
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Success      204
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), actorID, taskID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateChecklistItem changes the status of one checklist item and
// re-derives the task status from the flat item set
// @Summary      Update a checklist item status
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Param        checklist_id path string true "Checklist item ID"
// @Param        request body UpdateChecklistItemRequest true "New status"
// @Success      200 {object} TaskResponse
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /tasks/{id}/checklists/{checklist_id} [put]
func (h *TaskHandler) UpdateChecklistItem(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}
	checklistID, err := uuid.Parse(c.Param("checklist_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checklist ID format"})
		return
	}

	var req UpdateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// The legacy isCompleted flag is still accepted and translated.
	var status string
	switch {
	case req.Status != nil:
		status = *req.Status
	case req.IsCompleted != nil && *req.IsCompleted:
		status = model.StatusCompleted
	case req.IsCompleted != nil:
		status = model.StatusTodo
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either status or isCompleted is required"})
		return
	}

	task, err := h.tasks.UpdateChecklistItemStatus(c.Request.Context(), actorID, taskID, checklistID, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}
