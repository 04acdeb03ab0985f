package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/percentquiz/scoring-backend/internal/models"
)

// questionRepository implements QuestionRepository
type questionRepository struct {
	db dbExecutor
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db dbExecutor) QuestionRepository {
	return &questionRepository{db: db}
}

// Create inserts a question and fills in its ID
func (r *questionRepository) Create(ctx context.Context, q *models.Question) error {
	query := `
		INSERT INTO questions (game_id, question_text, correct_answer, order_num, is_answered)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		q.GameID, q.QuestionText, q.CorrectAnswer, q.OrderNum, q.IsAnswered,
	).Scan(&q.ID)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}

	return nil
}

// GetByID retrieves a question by ID
func (r *questionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	query := `
		SELECT id, game_id, question_text, correct_answer, order_num, is_answered
		FROM questions WHERE id = $1
	`

	q := &models.Question{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID, &q.GameID, &q.QuestionText, &q.CorrectAnswer, &q.OrderNum, &q.IsAnswered,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("question %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	return q, nil
}

// ListByGame returns a game's questions by order_num
func (r *questionRepository) ListByGame(ctx context.Context, gameID int64) ([]models.Question, error) {
	query := `
		SELECT id, game_id, question_text, correct_answer, order_num, is_answered
		FROM questions
		WHERE game_id = $1
		ORDER BY order_num
	`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.GameID, &q.QuestionText, &q.CorrectAnswer, &q.OrderNum, &q.IsAnswered); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}

	return questions, nil
}

// MaxOrderNum returns the highest order_num in a game, or 0 if it has no questions
func (r *questionRepository) MaxOrderNum(ctx context.Context, gameID int64) (int, error) {
	var max int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(order_num), 0) FROM questions WHERE game_id = $1`, gameID,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to get max order number: %w", err)
	}
	return max, nil
}

// Update writes the fields present in update; absent fields keep their stored value
func (r *questionRepository) Update(ctx context.Context, id int64, update models.QuestionUpdate) (*models.Question, error) {
	query := `
		UPDATE questions SET
			question_text = COALESCE($2, question_text),
			correct_answer = COALESCE($3, correct_answer)
		WHERE id = $1
		RETURNING id, game_id, question_text, correct_answer, order_num, is_answered
	`

	q := &models.Question{}
	err := r.db.QueryRowContext(ctx, query,
		id, nullString(update.QuestionText), nullInt(update.CorrectAnswer),
	).Scan(&q.ID, &q.GameID, &q.QuestionText, &q.CorrectAnswer, &q.OrderNum, &q.IsAnswered)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("question %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	return q, nil
}

// Delete removes a question and, via ON DELETE CASCADE, its answers
func (r *questionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	return requireAffected(result, "question", id)
}

// MarkAnswered flags a question as answered
func (r *questionRepository) MarkAnswered(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE questions SET is_answered = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark question answered: %w", err)
	}

	return requireAffected(result, "question", id)
}

// ResetAnsweredByGame clears is_answered on every question of a game
func (r *questionRepository) ResetAnsweredByGame(ctx context.Context, gameID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE questions SET is_answered = FALSE WHERE game_id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("failed to reset questions: %w", err)
	}
	return nil
}
