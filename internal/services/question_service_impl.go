package services

import (
	"context"
	"errors"

	"github.com/percentquiz/scoring-backend/internal/logger"
	"github.com/percentquiz/scoring-backend/internal/models"
	"github.com/percentquiz/scoring-backend/internal/repository"
	"github.com/percentquiz/scoring-backend/internal/scoring"
)

// questionServiceImpl implements QuestionService
type questionServiceImpl struct {
	repos  *repository.Repositories
	logger logger.Logger
}

func newQuestionService(repos *repository.Repositories, log logger.Logger) QuestionService {
	return &questionServiceImpl{repos: repos, logger: log}
}

// CreateQuestion appends a question to a game. order_num is one past the
// current maximum, so numbers freed by deletes are never reused.
func (s *questionServiceImpl) CreateQuestion(ctx context.Context, gameID int64, text *string, correctAnswer *int) (*models.Question, error) {
	var question *models.Question
	err := s.repos.Tx.WithTransaction(ctx, func(repos *repository.Repositories) error {
		if err := repos.Game.LockByID(ctx, gameID); err != nil {
			return classify(err, "game not found", "CreateQuestion")
		}

		maxOrder, err := repos.Question.MaxOrderNum(ctx, gameID)
		if err != nil {
			return classify(err, "game not found", "CreateQuestion")
		}

		question = &models.Question{
			GameID:        gameID,
			CorrectAnswer: models.DefaultCorrectAnswer,
			OrderNum:      maxOrder + 1,
		}
		if text != nil {
			question.QuestionText = *text
		}
		if correctAnswer != nil {
			question.CorrectAnswer = scoring.Clamp(*correctAnswer)
		}

		return classify(repos.Question.Create(ctx, question), "game not found", "CreateQuestion")
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Question created", "game_id", gameID, "question_id", question.ID, "order_num", question.OrderNum)
	return question, nil
}

// UpdateQuestion applies a partial update; correct_answer is clamped to [0,100]
func (s *questionServiceImpl) UpdateQuestion(ctx context.Context, id int64, update models.QuestionUpdate) (*models.Question, error) {
	if update.CorrectAnswer != nil {
		correct := scoring.Clamp(*update.CorrectAnswer)
		update.CorrectAnswer = &correct
	}

	question, err := s.repos.Question.Update(ctx, id, update)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("Failed to update question", err, "question_id", id)
		}
		return nil, classify(err, "question not found", "UpdateQuestion")
	}

	s.logger.Info("Question updated", "question_id", id)
	return question, nil
}

// DeleteQuestion removes a question and its answers
func (s *questionServiceImpl) DeleteQuestion(ctx context.Context, id int64) error {
	if err := s.repos.Question.Delete(ctx, id); err != nil {
		return classify(err, "question not found", "DeleteQuestion")
	}

	s.logger.Info("Question deleted", "question_id", id)
	return nil
}

// SubmitAnswers scores a batch of team answers for one question.
//
// Entries are processed in the order given. Unknown team ids are skipped.
// Each answer is clamped, its difference from the correct answer stored
// (replacing any earlier answer by the same team) and deducted from the
// team's current points. Resubmitting therefore deducts again. The
// question is marked answered and everything commits in one transaction.
func (s *questionServiceImpl) SubmitAnswers(ctx context.Context, questionID int64, answers []models.AnswerInput) (*models.Submission, error) {
	var submission *models.Submission
	err := s.repos.Tx.WithTransaction(ctx, func(repos *repository.Repositories) error {
		question, err := repos.Question.GetByID(ctx, questionID)
		if err != nil {
			return classify(err, "question not found", "SubmitAnswers")
		}

		results := make([]models.SubmissionResult, 0, len(answers))
		for _, in := range answers {
			team, err := repos.Team.GetByID(ctx, in.TeamID)
			if errors.Is(err, repository.ErrNotFound) {
				s.logger.Debug("Skipping answer for unknown team", "question_id", questionID, "team_id", in.TeamID)
				continue
			}
			if err != nil {
				return classify(err, "team not found", "SubmitAnswers")
			}

			answer := scoring.Clamp(in.Answer)
			difference := scoring.Difference(answer, question.CorrectAnswer)

			record := &models.TeamAnswer{
				TeamID:     team.ID,
				QuestionID: question.ID,
				Answer:     answer,
				Difference: difference,
			}
			if err := repos.Answer.Upsert(ctx, record); err != nil {
				return classify(err, "question not found", "SubmitAnswers")
			}

			points, err := repos.Team.DeductPoints(ctx, team.ID, difference)
			if err != nil {
				return classify(err, "team not found", "SubmitAnswers")
			}

			results = append(results, models.SubmissionResult{
				TeamID:        team.ID,
				TeamName:      team.Name,
				Answer:        answer,
				CorrectAnswer: question.CorrectAnswer,
				Difference:    difference,
				NewPoints:     points,
			})
		}

		if err := repos.Question.MarkAnswered(ctx, question.ID); err != nil {
			return classify(err, "question not found", "SubmitAnswers")
		}

		submission = &models.Submission{
			QuestionID:    question.ID,
			CorrectAnswer: question.CorrectAnswer,
			Results:       results,
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to submit answers", err, "question_id", questionID)
		return nil, err
	}

	s.logger.Info("Answers submitted", "question_id", questionID, "scored", len(submission.Results), "received", len(answers))
	return submission, nil
}
