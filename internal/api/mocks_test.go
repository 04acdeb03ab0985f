package api

import (
	"context"
	"errors"
	"time"

	"github.com/percentquiz/scoring-backend/internal/database"
	apperrors "github.com/percentquiz/scoring-backend/internal/errors"
	"github.com/percentquiz/scoring-backend/internal/models"
	"github.com/percentquiz/scoring-backend/internal/scoring"
)

var errMock = errors.New("mock error")

// mockGameService implements services.GameService for testing
type mockGameService struct {
	games       map[int64]*models.GameDetail
	visible     map[int64]bool
	shouldError bool
	lastName    *string
	resetCalls  int
}

func newMockGameService() *mockGameService {
	return &mockGameService{
		games: map[int64]*models.GameDetail{
			1: {
				ID:   1,
				Name: "Quiz night",
				Teams: []models.Team{
					{ID: 1, Name: "A", Points: 80, Color: "#FF6B6B"},
					{ID: 2, Name: "B", Points: 95, Color: "#4ECDC4"},
					{ID: 3, Name: "C", Points: 80, Color: "#45B7D1"},
				},
				Questions: []models.Question{
					{ID: 10, QuestionText: "Share of water?", CorrectAnswer: 71, OrderNum: 1},
				},
			},
		},
		visible: map[int64]bool{},
	}
}

func (m *mockGameService) lookup(id int64) (*models.GameDetail, error) {
	if m.shouldError {
		return nil, apperrors.DatabaseError("database operation failed", errMock)
	}
	g, ok := m.games[id]
	if !ok {
		return nil, apperrors.NotFound("game not found", nil)
	}
	return g, nil
}

func (m *mockGameService) CreateGame(ctx context.Context, name *string) (*models.Game, error) {
	if m.shouldError {
		return nil, apperrors.DatabaseError("database operation failed", errMock)
	}
	m.lastName = name
	n := models.DefaultGameName
	if name != nil {
		n = *name
	}
	return &models.Game{ID: 2, Name: n, CreatedAt: time.Now()}, nil
}

func (m *mockGameService) ListGames(ctx context.Context) ([]models.GameSummary, error) {
	if m.shouldError {
		return nil, apperrors.DatabaseError("database operation failed", errMock)
	}
	return []models.GameSummary{
		{ID: 1, Name: "Quiz night", CreatedAt: time.Date(2024, 5, 1, 19, 30, 0, 0, time.UTC), TeamCount: 3, QuestionCount: 1},
	}, nil
}

func (m *mockGameService) GetGame(ctx context.Context, id int64) (*models.GameDetail, error) {
	return m.lookup(id)
}

func (m *mockGameService) DeleteGame(ctx context.Context, id int64) error {
	if _, err := m.lookup(id); err != nil {
		return err
	}
	delete(m.games, id)
	return nil
}

func (m *mockGameService) ResetGame(ctx context.Context, id int64) error {
	if _, err := m.lookup(id); err != nil {
		return err
	}
	m.resetCalls++
	m.visible[id] = false
	return nil
}

func (m *mockGameService) GetResultStatus(ctx context.Context, id int64) (bool, error) {
	if _, err := m.lookup(id); err != nil {
		return false, err
	}
	return m.visible[id], nil
}

func (m *mockGameService) SetResultStatus(ctx context.Context, id int64, show bool) (bool, error) {
	if _, err := m.lookup(id); err != nil {
		return false, err
	}
	m.visible[id] = show
	return show, nil
}

func (m *mockGameService) GetStandings(ctx context.Context, id int64) ([]models.Standing, error) {
	g, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return scoring.RankTeams(g.Teams), nil
}

// mockTeamService implements services.TeamService for testing
type mockTeamService struct {
	teams      map[int64]*models.Team
	lastUpdate models.TeamUpdate
}

func newMockTeamService() *mockTeamService {
	return &mockTeamService{teams: map[int64]*models.Team{
		5: {ID: 5, GameID: 1, Name: "Team 1", Points: 100, Color: "#FF6B6B"},
	}}
}

func (m *mockTeamService) CreateTeam(ctx context.Context, gameID int64, name, color *string) (*models.Team, error) {
	if gameID != 1 {
		return nil, apperrors.NotFound("game not found", nil)
	}
	team := &models.Team{ID: 6, GameID: gameID, Name: "Team 2", Points: 100, Color: scoring.ColorFor(1)}
	if name != nil {
		team.Name = *name
	}
	if color != nil {
		team.Color = *color
	}
	return team, nil
}

func (m *mockTeamService) UpdateTeam(ctx context.Context, id int64, update models.TeamUpdate) (*models.Team, error) {
	m.lastUpdate = update
	team, ok := m.teams[id]
	if !ok {
		return nil, apperrors.NotFound("team not found", nil)
	}
	if update.Name != nil {
		team.Name = *update.Name
	}
	if update.Color != nil {
		team.Color = *update.Color
	}
	if update.Points != nil {
		team.Points = scoring.Clamp(*update.Points)
	}
	return team, nil
}

func (m *mockTeamService) DeleteTeam(ctx context.Context, id int64) error {
	if _, ok := m.teams[id]; !ok {
		return apperrors.NotFound("team not found", nil)
	}
	delete(m.teams, id)
	return nil
}

// mockQuestionService implements services.QuestionService for testing
type mockQuestionService struct {
	lastAnswers []models.AnswerInput
}

func (m *mockQuestionService) CreateQuestion(ctx context.Context, gameID int64, text *string, correctAnswer *int) (*models.Question, error) {
	if gameID != 1 {
		return nil, apperrors.NotFound("game not found", nil)
	}
	q := &models.Question{ID: 11, GameID: gameID, CorrectAnswer: models.DefaultCorrectAnswer, OrderNum: 2}
	if text != nil {
		q.QuestionText = *text
	}
	if correctAnswer != nil {
		q.CorrectAnswer = scoring.Clamp(*correctAnswer)
	}
	return q, nil
}

func (m *mockQuestionService) UpdateQuestion(ctx context.Context, id int64, update models.QuestionUpdate) (*models.Question, error) {
	if id != 10 {
		return nil, apperrors.NotFound("question not found", nil)
	}
	q := &models.Question{ID: 10, QuestionText: "Share of water?", CorrectAnswer: 71, OrderNum: 1}
	if update.QuestionText != nil {
		q.QuestionText = *update.QuestionText
	}
	if update.CorrectAnswer != nil {
		q.CorrectAnswer = scoring.Clamp(*update.CorrectAnswer)
	}
	return q, nil
}

func (m *mockQuestionService) DeleteQuestion(ctx context.Context, id int64) error {
	if id != 10 {
		return apperrors.NotFound("question not found", nil)
	}
	return nil
}

func (m *mockQuestionService) SubmitAnswers(ctx context.Context, questionID int64, answers []models.AnswerInput) (*models.Submission, error) {
	if questionID != 10 {
		return nil, apperrors.NotFound("question not found", nil)
	}
	m.lastAnswers = answers
	sub := &models.Submission{QuestionID: 10, CorrectAnswer: 71, Results: []models.SubmissionResult{}}
	for _, a := range answers {
		answer := scoring.Clamp(a.Answer)
		diff := scoring.Difference(answer, 71)
		sub.Results = append(sub.Results, models.SubmissionResult{
			TeamID: a.TeamID, TeamName: "T", Answer: answer, CorrectAnswer: 71,
			Difference: diff, NewPoints: scoring.Deduct(100, diff),
		})
	}
	return sub, nil
}

// mockHealthChecker implements HealthChecker for testing
type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) HealthCheckContext(ctx context.Context) error { return m.err }

func (m *mockHealthChecker) GetStats() database.Stats {
	return database.Stats{MaxOpenConnections: 25, OpenConnections: 2, InUse: 1, Idle: 1}
}
