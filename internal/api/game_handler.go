package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/percentquiz/scoring-backend/internal/services"
)

// GameHandler handles game lifecycle, result visibility and standings
type GameHandler struct {
	games services.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(games services.GameService) *GameHandler {
	return &GameHandler{games: games}
}

type createGameRequest struct {
	Name *string `json:"name"`
}

type showResultRequest struct {
	Show bool `json:"show"`
}

// ListGames returns all games, newest first
func (h *GameHandler) ListGames(c *gin.Context) {
	ctx, cancel := requestContext(c, readTimeout)
	defer cancel()

	games, err := h.games.ListGames(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, games)
}

// CreateGame creates an empty game
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, writeTimeout)
	defer cancel()

	game, err := h.games.CreateGame(ctx, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": game.ID, "name": game.Name})
}

// GetGame returns a game with its teams and questions
func (h *GameHandler) GetGame(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, readTimeout)
	defer cancel()

	game, err := h.games.GetGame(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, game)
}

// DeleteGame removes a game and everything it owns
func (h *GameHandler) DeleteGame(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, writeTimeout)
	defer cancel()

	if err := h.games.DeleteGame(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, "Game deleted")
}

// ResetGame restores points, clears answers and hides results
func (h *GameHandler) ResetGame(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, writeTimeout)
	defer cancel()

	if err := h.games.ResetGame(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, "Game reset")
}

// GetResultStatus reports whether results are shown
func (h *GameHandler) GetResultStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, readTimeout)
	defer cancel()

	show, err := h.games.GetResultStatus(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"show_result": show})
}

// SetResultStatus shows or hides results. A missing "show" hides them.
func (h *GameHandler) SetResultStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req showResultRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := requestContext(c, readTimeout)
	defer cancel()

	show, err := h.games.SetResultStatus(ctx, id, req.Show)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"show_result": show})
}

// GetStandings returns the game's teams ranked by points
func (h *GameHandler) GetStandings(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c, readTimeout)
	defer cancel()

	standings, err := h.games.GetStandings(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, standings)
}
