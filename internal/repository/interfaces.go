package repository

import (
	"context"
	"errors"

	"github.com/percentquiz/scoring-backend/internal/models"
)

// ErrNotFound is returned (wrapped) when a row does not exist
var ErrNotFound = errors.New("not found")

// GameRepository defines the interface for game data access
type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id int64) (*models.Game, error)
	List(ctx context.Context) ([]models.GameSummary, error)
	Delete(ctx context.Context, id int64) error

	// LockByID takes a row lock on the game for the rest of the enclosing
	// transaction. Writers that derive values from a game's children
	// (team count, max order_num) lock the parent first.
	LockByID(ctx context.Context, id int64) error
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int64) (*models.Team, error)
	ListByGame(ctx context.Context, gameID int64) ([]models.Team, error)
	CountByGame(ctx context.Context, gameID int64) (int, error)
	// Update writes only the fields present in update and returns the row
	Update(ctx context.Context, id int64, update models.TeamUpdate) (*models.Team, error)
	Delete(ctx context.Context, id int64) error

	// DeductPoints lowers a team's points by difference, flooring at zero,
	// and returns the new total.
	DeductPoints(ctx context.Context, id int64, difference int) (int, error)
	ResetPointsByGame(ctx context.Context, gameID int64, points int) error
}

// QuestionRepository defines the interface for question data access
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id int64) (*models.Question, error)
	ListByGame(ctx context.Context, gameID int64) ([]models.Question, error)
	MaxOrderNum(ctx context.Context, gameID int64) (int, error)
	// Update writes only the fields present in update and returns the row
	Update(ctx context.Context, id int64, update models.QuestionUpdate) (*models.Question, error)
	Delete(ctx context.Context, id int64) error
	MarkAnswered(ctx context.Context, id int64) error
	ResetAnsweredByGame(ctx context.Context, gameID int64) error
}

// AnswerRepository defines the interface for team answer data access
type AnswerRepository interface {
	// Upsert inserts the answer or overwrites the existing row for the
	// same (team, question) pair. ID is set on return.
	Upsert(ctx context.Context, answer *models.TeamAnswer) error
	DeleteByGame(ctx context.Context, gameID int64) (int64, error)
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(repos *Repositories) error) error
}

// Repositories groups all repository interfaces
type Repositories struct {
	Game     GameRepository
	Team     TeamRepository
	Question QuestionRepository
	Answer   AnswerRepository
	Tx       TransactionManager
}
