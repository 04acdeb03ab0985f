package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/percentquiz/scoring-backend/internal/logger"
	"github.com/percentquiz/scoring-backend/internal/models"
	"github.com/percentquiz/scoring-backend/internal/repository"
	"github.com/percentquiz/scoring-backend/internal/scoring"
)

// teamServiceImpl implements TeamService
type teamServiceImpl struct {
	repos  *repository.Repositories
	logger logger.Logger
}

func newTeamService(repos *repository.Repositories, log logger.Logger) TeamService {
	return &teamServiceImpl{repos: repos, logger: log}
}

// CreateTeam adds a team to a game. Without a name it becomes "Team N";
// without a color it takes the next palette color. Colors are fixed at
// creation, so games with more than eight teams reuse colors.
func (s *teamServiceImpl) CreateTeam(ctx context.Context, gameID int64, name, color *string) (*models.Team, error) {
	var team *models.Team
	err := s.repos.Tx.WithTransaction(ctx, func(repos *repository.Repositories) error {
		if err := repos.Game.LockByID(ctx, gameID); err != nil {
			return classify(err, "game not found", "CreateTeam")
		}

		count, err := repos.Team.CountByGame(ctx, gameID)
		if err != nil {
			return classify(err, "game not found", "CreateTeam")
		}

		team = &models.Team{
			GameID: gameID,
			Name:   fmt.Sprintf("Team %d", count+1),
			Points: scoring.InitialPoints,
			Color:  scoring.ColorFor(count),
		}
		if name != nil {
			team.Name = *name
		}
		if color != nil {
			team.Color = *color
		}

		return classify(repos.Team.Create(ctx, team), "game not found", "CreateTeam")
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Team created", "game_id", gameID, "team_id", team.ID, "name", team.Name)
	return team, nil
}

// UpdateTeam applies a partial update; points are clamped to [0,100].
// Only the fields present are written.
func (s *teamServiceImpl) UpdateTeam(ctx context.Context, id int64, update models.TeamUpdate) (*models.Team, error) {
	if update.Points != nil {
		points := scoring.Clamp(*update.Points)
		update.Points = &points
	}

	team, err := s.repos.Team.Update(ctx, id, update)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("Failed to update team", err, "team_id", id)
		}
		return nil, classify(err, "team not found", "UpdateTeam")
	}

	s.logger.Info("Team updated", "team_id", id, "points", team.Points)
	return team, nil
}

// DeleteTeam removes a team and its answers
func (s *teamServiceImpl) DeleteTeam(ctx context.Context, id int64) error {
	if err := s.repos.Team.Delete(ctx, id); err != nil {
		return classify(err, "team not found", "DeleteTeam")
	}

	s.logger.Info("Team deleted", "team_id", id)
	return nil
}
