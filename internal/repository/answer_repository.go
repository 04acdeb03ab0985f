package repository

import (
	"context"
	"fmt"

	"github.com/percentquiz/scoring-backend/internal/models"
)

// answerRepository implements AnswerRepository
type answerRepository struct {
	db dbExecutor
}

// NewAnswerRepository creates a new team answer repository
func NewAnswerRepository(db dbExecutor) AnswerRepository {
	return &answerRepository{db: db}
}

// Upsert stores a team's answer, replacing any earlier one for the same question
func (r *answerRepository) Upsert(ctx context.Context, a *models.TeamAnswer) error {
	query := `
		INSERT INTO team_answers (team_id, question_id, answer, difference)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (team_id, question_id)
		DO UPDATE SET
			answer = EXCLUDED.answer,
			difference = EXCLUDED.difference
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, a.TeamID, a.QuestionID, a.Answer, a.Difference).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to store team answer: %w", err)
	}

	return nil
}

// DeleteByGame removes every answer given by the game's teams
func (r *answerRepository) DeleteByGame(ctx context.Context, gameID int64) (int64, error) {
	query := `
		DELETE FROM team_answers
		WHERE team_id IN (SELECT id FROM teams WHERE game_id = $1)
	`

	result, err := r.db.ExecContext(ctx, query, gameID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete team answers: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}
