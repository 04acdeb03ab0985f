package api

import (
	"github.com/gin-gonic/gin"
	"github.com/percentquiz/scoring-backend/internal/services"
	"github.com/percentquiz/scoring-backend/pkg/config"
)

// SetupRoutes configures all API routes under cfg.APIBasePath
func SetupRoutes(r *gin.Engine, svcs *services.Services, db HealthChecker, cfg *config.Config) {
	healthHandler := NewHealthHandler(db)
	gameHandler := NewGameHandler(svcs.Game)
	teamHandler := NewTeamHandler(svcs.Team)
	questionHandler := NewQuestionHandler(svcs.Question)

	api := r.Group(cfg.APIBasePath)
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/health/db", healthHandler.DatabaseHealth)

		// Games
		api.GET("/games", gameHandler.ListGames)
		api.POST("/games", gameHandler.CreateGame)
		api.GET("/games/:id", gameHandler.GetGame)
		api.DELETE("/games/:id", gameHandler.DeleteGame)
		api.POST("/games/:id/reset", gameHandler.ResetGame)
		api.GET("/games/:id/result-status", gameHandler.GetResultStatus)
		api.POST("/games/:id/show-result", gameHandler.SetResultStatus)
		api.GET("/games/:id/standings", gameHandler.GetStandings)

		// Teams
		api.POST("/games/:id/teams", teamHandler.CreateTeam)
		api.PUT("/teams/:id", teamHandler.UpdateTeam)
		api.DELETE("/teams/:id", teamHandler.DeleteTeam)

		// Questions and scoring
		api.POST("/games/:id/questions", questionHandler.CreateQuestion)
		api.PUT("/questions/:id", questionHandler.UpdateQuestion)
		api.DELETE("/questions/:id", questionHandler.DeleteQuestion)
		api.POST("/questions/:id/submit", questionHandler.SubmitAnswers)
	}

	r.NoRoute(func(c *gin.Context) {
		respondNotFound(c)
	})
}
