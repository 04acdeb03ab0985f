package services

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/percentquiz/scoring-backend/internal/errors"
	"github.com/percentquiz/scoring-backend/internal/logger"
	"github.com/percentquiz/scoring-backend/internal/models"
	"github.com/percentquiz/scoring-backend/internal/repository"
)

// Services contains all application services
type Services struct {
	Game     GameService
	Team     TeamService
	Question QuestionService
}

// GameService defines the game lifecycle, result visibility and standings
type GameService interface {
	CreateGame(ctx context.Context, name *string) (*models.Game, error)
	ListGames(ctx context.Context) ([]models.GameSummary, error)
	GetGame(ctx context.Context, id int64) (*models.GameDetail, error)
	DeleteGame(ctx context.Context, id int64) error
	ResetGame(ctx context.Context, id int64) error

	GetResultStatus(ctx context.Context, id int64) (bool, error)
	SetResultStatus(ctx context.Context, id int64, show bool) (bool, error)

	GetStandings(ctx context.Context, id int64) ([]models.Standing, error)
}

// TeamService defines team management
type TeamService interface {
	CreateTeam(ctx context.Context, gameID int64, name, color *string) (*models.Team, error)
	UpdateTeam(ctx context.Context, id int64, update models.TeamUpdate) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int64) error
}

// QuestionService defines question management and answer submission
type QuestionService interface {
	CreateQuestion(ctx context.Context, gameID int64, text *string, correctAnswer *int) (*models.Question, error)
	UpdateQuestion(ctx context.Context, id int64, update models.QuestionUpdate) (*models.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
	SubmitAnswers(ctx context.Context, questionID int64, answers []models.AnswerInput) (*models.Submission, error)
}

// NewServices creates a new Services instance backed by Postgres
func NewServices(db *sql.DB, log logger.Logger) *Services {
	return New(repository.NewRepositories(db), NewMemoryVisibilityStore(), log)
}

// New wires the services over an arbitrary repository set
func New(repos *repository.Repositories, visibility ResultVisibilityStore, log logger.Logger) *Services {
	return &Services{
		Game:     newGameService(repos, visibility, log),
		Team:     newTeamService(repos, log),
		Question: newQuestionService(repos, log),
	}
}

// classify converts a repository error into an AppError. Errors that are
// already AppErrors pass through untouched; nil stays nil.
func classify(err error, notFoundMsg, operation string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(notFoundMsg, err).WithOperation(operation)
	}
	return apperrors.DatabaseError("database operation failed", err).WithOperation(operation)
}
