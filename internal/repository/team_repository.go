package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/percentquiz/scoring-backend/internal/models"
)

// teamRepository implements TeamRepository
type teamRepository struct {
	db dbExecutor
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db dbExecutor) TeamRepository {
	return &teamRepository{db: db}
}

// Create inserts a team and fills in its ID
func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (game_id, name, points, color)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, team.GameID, team.Name, team.Points, team.Color).Scan(&team.ID)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}

	return nil
}

// GetByID retrieves a team by ID
func (r *teamRepository) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	query := `SELECT id, game_id, name, points, color FROM teams WHERE id = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID, &team.GameID, &team.Name, &team.Points, &team.Color,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("team %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return team, nil
}

// ListByGame returns a game's teams in creation (id) order
func (r *teamRepository) ListByGame(ctx context.Context, gameID int64) ([]models.Team, error) {
	query := `
		SELECT id, game_id, name, points, color
		FROM teams
		WHERE game_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.GameID, &t.Name, &t.Points, &t.Color); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}

	return teams, nil
}

// CountByGame returns the number of teams in a game
func (r *teamRepository) CountByGame(ctx context.Context, gameID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams WHERE game_id = $1`, gameID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}
	return count, nil
}

// Update writes the fields present in update in a single statement.
// Absent fields keep their stored value, so a rename never overwrites a
// deduction committed since the caller last read the team.
func (r *teamRepository) Update(ctx context.Context, id int64, update models.TeamUpdate) (*models.Team, error) {
	query := `
		UPDATE teams SET
			name = COALESCE($2, name),
			color = COALESCE($3, color),
			points = COALESCE($4, points)
		WHERE id = $1
		RETURNING id, game_id, name, points, color
	`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query,
		id, nullString(update.Name), nullString(update.Color), nullInt(update.Points),
	).Scan(&team.ID, &team.GameID, &team.Name, &team.Points, &team.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("team %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return team, nil
}

// Delete removes a team and, via ON DELETE CASCADE, its answers
func (r *teamRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	return requireAffected(result, "team", id)
}

// DeductPoints applies the deduction in a single statement so concurrent
// submissions cannot lose each other's updates.
func (r *teamRepository) DeductPoints(ctx context.Context, id int64, difference int) (int, error) {
	query := `
		UPDATE teams SET points = GREATEST(0, points - $2)
		WHERE id = $1
		RETURNING points
	`

	var points int
	err := r.db.QueryRowContext(ctx, query, id, difference).Scan(&points)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("team %d: %w", id, ErrNotFound)
		}
		return 0, fmt.Errorf("failed to deduct points: %w", err)
	}

	return points, nil
}

// ResetPointsByGame sets every team in a game to the given points
func (r *teamRepository) ResetPointsByGame(ctx context.Context, gameID int64, points int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE teams SET points = $2 WHERE game_id = $1`, gameID, points)
	if err != nil {
		return fmt.Errorf("failed to reset team points: %w", err)
	}
	return nil
}
