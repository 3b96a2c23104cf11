package handler

import (
	"net/http"

	"taskflow/internal/middleware"
	"taskflow/internal/model"
	"taskflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminUserHandler covers the /admin/users surface. Routes using it sit
// behind middleware.AdminRequired, which leaves the loaded admin user in
// the request context.
type AdminUserHandler struct {
	users *service.UserService
}

func NewAdminUserHandler(users *service.UserService) *AdminUserHandler {
	return &AdminUserHandler{users: users}
}

type UpdateUserRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
}

func adminActor(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(middleware.UserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}
	actor, ok := value.(*model.User)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user in context"})
		return nil, false
	}
	return actor, true
}

// List returns all user accounts
// @Summary      List users
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} UserResponse
// @Router       /admin/users [get]
func (h *AdminUserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make([]UserResponse, len(users))
	for i := range users {
		response[i] = userResponse(&users[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID returns a single user account
// @Summary      Get a user
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200 {object} UserResponse
// @Failure      404 {object} map[string]string
// @Router       /admin/users/{id} [get]
func (h *AdminUserHandler) GetByID(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	user, err := h.users.Get(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}

// Update changes a user's name or role
// @Summary      Update a user
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body UpdateUserRequest true "Changed fields"
// @Success      200 {object} UserResponse
// @Failure      404 {object} map[string]string
// @Router       /admin/users/{id} [put]
func (h *AdminUserHandler) Update(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.users.Update(c.Request.Context(), userID, service.UpdateUserInput{
		Name: req.Name,
		Role: req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}

// Delete removes a user account. Deleting your own account is rejected.
// @Summary      Delete a user
// @Tags         Admin
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      204
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /admin/users/{id} [delete]
func (h *AdminUserHandler) Delete(c *gin.Context) {
	actor, ok := adminActor(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := h.users.Delete(c.Request.Context(), actor, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
