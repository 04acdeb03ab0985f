package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/percentquiz/scoring-backend/internal/models"
	"github.com/percentquiz/scoring-backend/internal/services"
)

// TeamHandler handles team management
type TeamHandler struct {
	teams services.TeamService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teams services.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

type createTeamRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// CreateTeam adds a team to the game named by :id
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	gameID, ok := pathID(c)
	if !ok {
		return
	}

	var req createTeamRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, writeTimeout)
	defer cancel()

	team, err := h.teams.CreateTeam(ctx, gameID, req.Name, req.Color)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

// UpdateTeam applies any subset of name, color and points
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.TeamUpdate
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, writeTimeout)
	defer cancel()

	team, err := h.teams.UpdateTeam(ctx, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// DeleteTeam removes a team and its answers
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, writeTimeout)
	defer cancel()

	if err := h.teams.DeleteTeam(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, "Team deleted")
}
