package services

import (
	"context"

	"github.com/percentquiz/scoring-backend/internal/logger"
	"github.com/percentquiz/scoring-backend/internal/models"
	"github.com/percentquiz/scoring-backend/internal/repository"
	"github.com/percentquiz/scoring-backend/internal/scoring"
)

// gameServiceImpl implements GameService
type gameServiceImpl struct {
	repos      *repository.Repositories
	visibility ResultVisibilityStore
	logger     logger.Logger
}

func newGameService(repos *repository.Repositories, visibility ResultVisibilityStore, log logger.Logger) GameService {
	return &gameServiceImpl{
		repos:      repos,
		visibility: visibility,
		logger:     log,
	}
}

// CreateGame creates an empty game. A nil name means "New Game".
func (s *gameServiceImpl) CreateGame(ctx context.Context, name *string) (*models.Game, error) {
	game := &models.Game{Name: models.DefaultGameName}
	if name != nil {
		game.Name = *name
	}

	if err := s.repos.Game.Create(ctx, game); err != nil {
		s.logger.Error("Failed to create game", err, "name", game.Name)
		return nil, classify(err, "game not found", "CreateGame")
	}

	s.logger.Info("Game created", "game_id", game.ID, "name", game.Name)
	return game, nil
}

// ListGames returns every game newest first
func (s *gameServiceImpl) ListGames(ctx context.Context) ([]models.GameSummary, error) {
	games, err := s.repos.Game.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list games", err)
		return nil, classify(err, "game not found", "ListGames")
	}
	return games, nil
}

// GetGame returns a game with its teams and questions
func (s *gameServiceImpl) GetGame(ctx context.Context, id int64) (*models.GameDetail, error) {
	game, err := s.repos.Game.GetByID(ctx, id)
	if err != nil {
		return nil, classify(err, "game not found", "GetGame")
	}

	teams, err := s.repos.Team.ListByGame(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load teams", err, "game_id", id)
		return nil, classify(err, "game not found", "GetGame")
	}

	questions, err := s.repos.Question.ListByGame(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load questions", err, "game_id", id)
		return nil, classify(err, "game not found", "GetGame")
	}

	return &models.GameDetail{
		ID:        game.ID,
		Name:      game.Name,
		Teams:     teams,
		Questions: questions,
	}, nil
}

// DeleteGame removes a game with all of its teams, questions and answers
func (s *gameServiceImpl) DeleteGame(ctx context.Context, id int64) error {
	if err := s.repos.Game.Delete(ctx, id); err != nil {
		return classify(err, "game not found", "DeleteGame")
	}

	s.visibility.Delete(id)
	s.logger.Info("Game deleted", "game_id", id)
	return nil
}

// ResetGame puts every team back to full points, drops all answers, marks
// every question unanswered and hides results. The store changes commit
// together.
func (s *gameServiceImpl) ResetGame(ctx context.Context, id int64) error {
	var deleted int64
	err := s.repos.Tx.WithTransaction(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.Game.GetByID(ctx, id); err != nil {
			return classify(err, "game not found", "ResetGame")
		}

		if err := repos.Team.ResetPointsByGame(ctx, id, scoring.InitialPoints); err != nil {
			return classify(err, "game not found", "ResetGame")
		}

		n, err := repos.Answer.DeleteByGame(ctx, id)
		if err != nil {
			return classify(err, "game not found", "ResetGame")
		}
		deleted = n

		return classify(repos.Question.ResetAnsweredByGame(ctx, id), "game not found", "ResetGame")
	})
	if err != nil {
		s.logger.Error("Failed to reset game", err, "game_id", id)
		return err
	}

	s.visibility.Set(id, false)
	s.logger.Info("Game reset", "game_id", id, "answers_deleted", deleted)
	return nil
}

// GetResultStatus reports whether results are currently shown for a game
func (s *gameServiceImpl) GetResultStatus(ctx context.Context, id int64) (bool, error) {
	if _, err := s.repos.Game.GetByID(ctx, id); err != nil {
		return false, classify(err, "game not found", "GetResultStatus")
	}
	return s.visibility.Get(id), nil
}

// SetResultStatus shows or hides results for a game
func (s *gameServiceImpl) SetResultStatus(ctx context.Context, id int64, show bool) (bool, error) {
	if _, err := s.repos.Game.GetByID(ctx, id); err != nil {
		return false, classify(err, "game not found", "SetResultStatus")
	}

	s.visibility.Set(id, show)
	s.logger.Debug("Result visibility changed", "game_id", id, "show_result", show)
	return show, nil
}

// GetStandings ranks a game's teams by points
func (s *gameServiceImpl) GetStandings(ctx context.Context, id int64) ([]models.Standing, error) {
	if _, err := s.repos.Game.GetByID(ctx, id); err != nil {
		return nil, classify(err, "game not found", "GetStandings")
	}

	teams, err := s.repos.Team.ListByGame(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load teams for standings", err, "game_id", id)
		return nil, classify(err, "game not found", "GetStandings")
	}

	return scoring.RankTeams(teams), nil
}
