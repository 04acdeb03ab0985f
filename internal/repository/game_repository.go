package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/percentquiz/scoring-backend/internal/models"
)

// gameRepository implements GameRepository
type gameRepository struct {
	db dbExecutor
}

// NewGameRepository creates a new game repository
func NewGameRepository(db dbExecutor) GameRepository {
	return &gameRepository{db: db}
}

// Create inserts a game and fills in its ID and creation time
func (r *gameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (name, created_at)
		VALUES ($1, NOW() AT TIME ZONE 'UTC')
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, game.Name).Scan(&game.ID, &game.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

// GetByID retrieves a game by ID
func (r *gameRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	query := `SELECT id, name, created_at FROM games WHERE id = $1`

	game := &models.Game{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&game.ID, &game.Name, &game.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("game %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// List returns all games newest first with their team and question counts
func (r *gameRepository) List(ctx context.Context) ([]models.GameSummary, error) {
	query := `
		SELECT g.id, g.name, g.created_at,
		       (SELECT COUNT(*) FROM teams t WHERE t.game_id = g.id),
		       (SELECT COUNT(*) FROM questions q WHERE q.game_id = g.id)
		FROM games g
		ORDER BY g.created_at DESC, g.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	games := []models.GameSummary{}
	for rows.Next() {
		var g models.GameSummary
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.TeamCount, &g.QuestionCount); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	return games, nil
}

// Delete removes a game; teams, questions and answers go with it via ON DELETE CASCADE
func (r *gameRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return requireAffected(result, "game", id)
}

// LockByID locks the game row until the enclosing transaction ends. Outside
// a transaction the lock is released as soon as the statement completes.
func (r *gameRepository) LockByID(ctx context.Context, id int64) error {
	var locked int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM games WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("game %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to lock game: %w", err)
	}
	return nil
}
