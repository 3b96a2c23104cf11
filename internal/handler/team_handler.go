package handler

import (
	"net/http"

	"taskflow/internal/model"
	"taskflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TeamHandler struct {
	teams *service.TeamService
}

func NewTeamHandler(teams *service.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

type CreateTeamRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"memberIds"`
}

// UpdateTeamRequest replaces the member list wholesale when memberIds is
// present, even as an empty array.
type UpdateTeamRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	MemberIDs   []string `json:"memberIds"`
}

type TeamResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedBy   string         `json:"createdBy"`
	Members     []UserResponse `json:"members"`
}

func teamResponse(team *model.Team) TeamResponse {
	resp := TeamResponse{
		ID:          team.ID.String(),
		Name:        team.Name,
		Description: team.Description,
		CreatedBy:   team.CreatedBy.String(),
		Members:     []UserResponse{},
	}
	for i := range team.Members {
		resp.Members = append(resp.Members, userResponse(&team.Members[i]))
	}
	return resp
}

// Create creates a new team
// @Summary      Create a team
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateTeamRequest true "Team data"
// @Success      201 {object} TeamResponse
// @Failure      400 {object} map[string]string
// @Router       /teams [post]
func (h *TeamHandler) Create(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	memberIDs, ok := parseUserIDs(req.MemberIDs)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	team, err := h.teams.Create(c.Request.Context(), actorID, service.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   memberIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, teamResponse(team))
}

// List returns all teams
// @Summary      List teams
// @Tags         Teams
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} TeamResponse
// @Router       /teams [get]
func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.teams.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make([]TeamResponse, len(teams))
	for i := range teams {
		response[i] = teamResponse(&teams[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID returns a single team with its members
// @Summary      Get a team
// @Tags         Teams
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Team ID"
// @Success      200 {object} TeamResponse
// @Failure      404 {object} map[string]string
// @Router       /teams/{id} [get]
func (h *TeamHandler) GetByID(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
		return
	}

	team, err := h.teams.Get(c.Request.Context(), teamID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, teamResponse(team))
}

// Update changes team fields and, when present, replaces the member list
// @Summary      Update a team
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Team ID"
// @Param        request body UpdateTeamRequest true "Changed fields"
// @Success      200 {object} TeamResponse
// @Failure      404 {object} map[string]string
// @Router       /teams/{id} [put]
func (h *TeamHandler) Update(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	memberIDs, ok := parseUserIDs(req.MemberIDs)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	team, err := h.teams.Update(c.Request.Context(), actorID, teamID, service.UpdateTeamInput{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   memberIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, teamResponse(team))
}

// Delete removes a team and its membership rows
// @Summary      Delete a team
// @Tags         Teams
// @Security     BearerAuth
// @Param        id path string true "Team ID"
// @Success      204
// @Failure      404 {object} map[string]string
// @Router       /teams/{id} [delete]
func (h *TeamHandler) Delete(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
		return
	}

	if err := h.teams.Delete(c.Request.Context(), actorID, teamID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
