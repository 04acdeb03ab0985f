package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/percentquiz/scoring-backend/internal/models"
	"github.com/percentquiz/scoring-backend/internal/repository"
	"github.com/percentquiz/scoring-backend/internal/scoring"
)

// memStore is an in-memory stand-in for the Postgres schema, including
// ON DELETE CASCADE and the (team_id, question_id) uniqueness.
type memStore struct {
	mu        sync.Mutex
	nextID    int64
	clock     time.Time
	games     map[int64]models.Game
	teams     map[int64]models.Team
	questions map[int64]models.Question
	answers   map[int64]models.TeamAnswer

	// rowLocks emulates SELECT ... FOR UPDATE on games
	rowLocks map[int64]*sync.Mutex

	// failOn makes the named operation return the error
	failOn map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		clock:     time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		games:     map[int64]models.Game{},
		teams:     map[int64]models.Team{},
		questions: map[int64]models.Question{},
		answers:   map[int64]models.TeamAnswer{},
		rowLocks:  map[int64]*sync.Mutex{},
		failOn:    map[string]error{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) fail(op string) error {
	return m.failOn[op]
}

func (m *memStore) repositories() *repository.Repositories {
	return m.repositoriesFor(nil)
}

func (m *memStore) repositoriesFor(tx *mockTx) *repository.Repositories {
	return &repository.Repositories{
		Game:     &mockGameRepository{m: m, tx: tx},
		Team:     &mockTeamRepository{m},
		Question: &mockQuestionRepository{m},
		Answer:   &mockAnswerRepository{m},
		Tx:       &mockTransactionManager{m},
	}
}

func (m *memStore) answerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.answers)
}

func (m *memStore) answersFor(teamID, questionID int64) []models.TeamAnswer {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.TeamAnswer
	for _, a := range m.answers {
		if a.TeamID == teamID && a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	return out
}

func notFound(what string, id int64) error {
	return fmt.Errorf("%s %d: %w", what, id, repository.ErrNotFound)
}

// mockTx tracks the row locks a transaction holds until it ends
type mockTx struct {
	held map[int64]*sync.Mutex
}

// MockTransactionManager snapshots the store and restores it when fn fails
type mockTransactionManager struct{ m *memStore }

func (tm *mockTransactionManager) WithTransaction(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	tx := &mockTx{held: map[int64]*sync.Mutex{}}
	defer func() {
		for _, l := range tx.held {
			l.Unlock()
		}
	}()

	tm.m.mu.Lock()
	games, teams, questions, answers := copyMap(tm.m.games), copyMap(tm.m.teams), copyMap(tm.m.questions), copyMap(tm.m.answers)
	tm.m.mu.Unlock()

	if err := fn(tm.m.repositoriesFor(tx)); err != nil {
		tm.m.mu.Lock()
		tm.m.games, tm.m.teams, tm.m.questions, tm.m.answers = games, teams, questions, answers
		tm.m.mu.Unlock()
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

func copyMap[V any](in map[int64]V) map[int64]V {
	out := make(map[int64]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// MockGameRepository implements GameRepository for testing
type mockGameRepository struct {
	m  *memStore
	tx *mockTx
}

func (r *mockGameRepository) Create(ctx context.Context, game *models.Game) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("Game.Create"); err != nil {
		return err
	}
	r.m.clock = r.m.clock.Add(time.Second)
	game.ID = r.m.id()
	game.CreatedAt = r.m.clock
	r.m.games[game.ID] = *game
	return nil
}

func (r *mockGameRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	g, ok := r.m.games[id]
	if !ok {
		return nil, notFound("game", id)
	}
	return &g, nil
}

func (r *mockGameRepository) List(ctx context.Context) ([]models.GameSummary, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("Game.List"); err != nil {
		return nil, err
	}
	out := []models.GameSummary{}
	for _, g := range r.m.games {
		s := models.GameSummary{ID: g.ID, Name: g.Name, CreatedAt: g.CreatedAt}
		for _, t := range r.m.teams {
			if t.GameID == g.ID {
				s.TeamCount++
			}
		}
		for _, q := range r.m.questions {
			if q.GameID == g.ID {
				s.QuestionCount++
			}
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *mockGameRepository) Delete(ctx context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.games[id]; !ok {
		return notFound("game", id)
	}
	delete(r.m.games, id)
	for tid, t := range r.m.teams {
		if t.GameID == id {
			r.m.deleteTeamLocked(tid)
		}
	}
	for qid, q := range r.m.questions {
		if q.GameID == id {
			r.m.deleteQuestionLocked(qid)
		}
	}
	return nil
}

func (r *mockGameRepository) LockByID(ctx context.Context, id int64) error {
	r.m.mu.Lock()
	if _, ok := r.m.games[id]; !ok {
		r.m.mu.Unlock()
		return notFound("game", id)
	}
	l, ok := r.m.rowLocks[id]
	if !ok {
		l = &sync.Mutex{}
		r.m.rowLocks[id] = l
	}
	r.m.mu.Unlock()

	if r.tx == nil {
		return nil
	}
	if _, held := r.tx.held[id]; !held {
		l.Lock()
		r.tx.held[id] = l
	}
	return nil
}

func (m *memStore) deleteTeamLocked(id int64) {
	delete(m.teams, id)
	for aid, a := range m.answers {
		if a.TeamID == id {
			delete(m.answers, aid)
		}
	}
}

func (m *memStore) deleteQuestionLocked(id int64) {
	delete(m.questions, id)
	for aid, a := range m.answers {
		if a.QuestionID == id {
			delete(m.answers, aid)
		}
	}
}

// MockTeamRepository implements TeamRepository for testing
type mockTeamRepository struct{ m *memStore }

func (r *mockTeamRepository) Create(ctx context.Context, team *models.Team) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.games[team.GameID]; !ok {
		return fmt.Errorf("foreign key violation on game %d", team.GameID)
	}
	team.ID = r.m.id()
	r.m.teams[team.ID] = *team
	return nil
}

func (r *mockTeamRepository) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("Team.GetByID"); err != nil {
		return nil, err
	}
	t, ok := r.m.teams[id]
	if !ok {
		return nil, notFound("team", id)
	}
	return &t, nil
}

func (r *mockTeamRepository) ListByGame(ctx context.Context, gameID int64) ([]models.Team, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.Team{}
	for _, t := range r.m.teams {
		if t.GameID == gameID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *mockTeamRepository) CountByGame(ctx context.Context, gameID int64) (int, error) {
	teams, err := r.ListByGame(ctx, gameID)
	return len(teams), err
}

func (r *mockTeamRepository) Update(ctx context.Context, id int64, update models.TeamUpdate) (*models.Team, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.teams[id]
	if !ok {
		return nil, notFound("team", id)
	}
	if update.Name != nil {
		t.Name = *update.Name
	}
	if update.Color != nil {
		t.Color = *update.Color
	}
	if update.Points != nil {
		t.Points = *update.Points
	}
	r.m.teams[id] = t
	return &t, nil
}

func (r *mockTeamRepository) Delete(ctx context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.teams[id]; !ok {
		return notFound("team", id)
	}
	r.m.deleteTeamLocked(id)
	return nil
}

func (r *mockTeamRepository) DeductPoints(ctx context.Context, id int64, difference int) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.fail("Team.DeductPoints"); err != nil {
		return 0, err
	}
	t, ok := r.m.teams[id]
	if !ok {
		return 0, notFound("team", id)
	}
	t.Points = scoring.Deduct(t.Points, difference)
	r.m.teams[id] = t
	return t.Points, nil
}

func (r *mockTeamRepository) ResetPointsByGame(ctx context.Context, gameID int64, points int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, t := range r.m.teams {
		if t.GameID == gameID {
			t.Points = points
			r.m.teams[id] = t
		}
	}
	return nil
}

// MockQuestionRepository implements QuestionRepository for testing
type mockQuestionRepository struct{ m *memStore }

func (r *mockQuestionRepository) Create(ctx context.Context, q *models.Question) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.questions {
		if existing.GameID == q.GameID && existing.OrderNum == q.OrderNum {
			return fmt.Errorf("unique violation on (game_id, order_num)")
		}
	}
	q.ID = r.m.id()
	r.m.questions[q.ID] = *q
	return nil
}

func (r *mockQuestionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	q, ok := r.m.questions[id]
	if !ok {
		return nil, notFound("question", id)
	}
	return &q, nil
}

func (r *mockQuestionRepository) ListByGame(ctx context.Context, gameID int64) ([]models.Question, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.Question{}
	for _, q := range r.m.questions {
		if q.GameID == gameID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNum < out[j].OrderNum })
	return out, nil
}

func (r *mockQuestionRepository) MaxOrderNum(ctx context.Context, gameID int64) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	max := 0
	for _, q := range r.m.questions {
		if q.GameID == gameID && q.OrderNum > max {
			max = q.OrderNum
		}
	}
	return max, nil
}

func (r *mockQuestionRepository) Update(ctx context.Context, id int64, update models.QuestionUpdate) (*models.Question, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	q, ok := r.m.questions[id]
	if !ok {
		return nil, notFound("question", id)
	}
	if update.QuestionText != nil {
		q.QuestionText = *update.QuestionText
	}
	if update.CorrectAnswer != nil {
		q.CorrectAnswer = *update.CorrectAnswer
	}
	r.m.questions[id] = q
	return &q, nil
}

func (r *mockQuestionRepository) Delete(ctx context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.questions[id]; !ok {
		return notFound("question", id)
	}
	r.m.deleteQuestionLocked(id)
	return nil
}

func (r *mockQuestionRepository) MarkAnswered(ctx context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	q, ok := r.m.questions[id]
	if !ok {
		return notFound("question", id)
	}
	q.IsAnswered = true
	r.m.questions[id] = q
	return nil
}

func (r *mockQuestionRepository) ResetAnsweredByGame(ctx context.Context, gameID int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, q := range r.m.questions {
		if q.GameID == gameID {
			q.IsAnswered = false
			r.m.questions[id] = q
		}
	}
	return nil
}

// MockAnswerRepository implements AnswerRepository for testing
type mockAnswerRepository struct{ m *memStore }

func (r *mockAnswerRepository) Upsert(ctx context.Context, a *models.TeamAnswer) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, existing := range r.m.answers {
		if existing.TeamID == a.TeamID && existing.QuestionID == a.QuestionID {
			a.ID = id
			r.m.answers[id] = *a
			return nil
		}
	}
	a.ID = r.m.id()
	r.m.answers[a.ID] = *a
	return nil
}

func (r *mockAnswerRepository) DeleteByGame(ctx context.Context, gameID int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var deleted int64
	for id, a := range r.m.answers {
		if t, ok := r.m.teams[a.TeamID]; ok && t.GameID == gameID {
			delete(r.m.answers, id)
			deleted++
		}
	}
	return deleted, nil
}
