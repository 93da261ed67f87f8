package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilereveal/tilereveal/internal/bank"
	"github.com/tilereveal/tilereveal/internal/db/repository"
	"github.com/tilereveal/tilereveal/internal/leaderboard"
	"github.com/tilereveal/tilereveal/internal/puzzle"
	"github.com/tilereveal/tilereveal/internal/scoring"
)

type stubStore struct {
	states    map[uuid.UUID]State
	used      map[uuid.UUID]puzzle.UsedSet
	savedIDs  []string
	streak    int
	streakDay string
}

func newStubStore() *stubStore {
	return &stubStore{
		states: make(map[uuid.UUID]State),
		used:   make(map[uuid.UUID]puzzle.UsedSet),
		streak: 1,
	}
}

func (s *stubStore) StoreState(_ context.Context, state State) error {
	s.states[state.SessionID] = state
	return nil
}

func (s *stubStore) GetState(_ context.Context, sessionID uuid.UUID) (State, error) {
	state, ok := s.states[sessionID]
	if !ok {
		return State{}, ErrStateNotFound
	}
	return state, nil
}

func (s *stubStore) DeleteState(_ context.Context, sessionID uuid.UUID) error {
	delete(s.states, sessionID)
	return nil
}

func (s *stubStore) LoadUsedIDs(_ context.Context, userID uuid.UUID) (puzzle.UsedSet, error) {
	if existing, ok := s.used[userID]; ok {
		return existing, nil
	}
	used := make(puzzle.UsedSet)
	s.used[userID] = used
	return used, nil
}

func (s *stubStore) SaveUsedIDs(_ context.Context, _ uuid.UUID, ids []string) error {
	s.savedIDs = append(s.savedIDs, ids...)
	return nil
}

func (s *stubStore) BumpStreak(_ context.Context, _ uuid.UUID, day string) (int, error) {
	s.streakDay = day
	return s.streak, nil
}

type stubSubmitter struct {
	calls   int
	userID  uuid.UUID
	score   int
	outcome leaderboard.SubmitOutcome
}

func (s *stubSubmitter) Submit(_ context.Context, userID uuid.UUID, _ string, _ uuid.UUID, score int, _ string) (leaderboard.SubmitOutcome, error) {
	s.calls++
	s.userID = userID
	s.score = score
	s.outcome.Score = score
	return s.outcome, nil
}

type stubPuzzles struct {
	puzzles map[uuid.UUID]repository.Puzzle
}

func (s *stubPuzzles) GetByID(_ context.Context, id uuid.UUID) (repository.Puzzle, error) {
	p, ok := s.puzzles[id]
	if !ok {
		return repository.Puzzle{}, repository.ErrPuzzleNotFound
	}
	return p, nil
}

type stubSolves struct {
	inserted []repository.Solve
}

func (s *stubSolves) Insert(_ context.Context, solve repository.Solve) (repository.Solve, error) {
	s.inserted = append(s.inserted, solve)
	return solve, nil
}

type fixture struct {
	service *Service
	store   *stubStore
	lb      *stubSubmitter
	solves  *stubSolves
	puzzle  repository.Puzzle
}

func newFixture(t *testing.T, gridSize int) *fixture {
	t.Helper()

	p := repository.Puzzle{
		ID:       uuid.New(),
		Title:    "hidden landmark",
		GridSize: gridSize,
		Active:   true,
	}
	store := newStubStore()
	lb := &stubSubmitter{outcome: leaderboard.SubmitOutcome{Applied: true}}
	solves := &stubSolves{}
	puzzles := &stubPuzzles{puzzles: map[uuid.UUID]repository.Puzzle{p.ID: p}}

	service := NewService(
		store, lb, puzzles, solves,
		puzzle.NewSelector(bank.Build()),
		scoring.NewEngine(scoring.DefaultConfig()),
		"test-salt",
		zerolog.Nop(),
	)
	return &fixture{service: service, store: store, lb: lb, solves: solves, puzzle: p}
}

func TestStartAssignsFullGrid(t *testing.T) {
	f := newFixture(t, 3)
	userID := uuid.New()

	resp, err := f.service.Start(context.Background(), userID, StartRequest{PuzzleID: f.puzzle.ID})
	require.NoError(t, err)

	assert.Equal(t, f.puzzle.ID, resp.PuzzleID)
	assert.Equal(t, 3, resp.GridSize)
	require.Len(t, resp.Tiles, 9)
	for i, tile := range resp.Tiles {
		assert.Equal(t, i, tile.TileIndex)
		assert.NotEmpty(t, tile.Text)
		assert.Len(t, tile.Options, bank.OptionCount)
	}

	state, ok := f.store.states[resp.SessionID]
	require.True(t, ok, "state should be stored")
	assert.Equal(t, userID, state.UserID)
	assert.Len(t, state.Assignments, 9)
}

func TestStartUnknownPuzzle(t *testing.T) {
	f := newFixture(t, 3)

	_, err := f.service.Start(context.Background(), uuid.New(), StartRequest{PuzzleID: uuid.New()})
	assert.ErrorIs(t, err, repository.ErrPuzzleNotFound)
}

func TestStartInactivePuzzle(t *testing.T) {
	f := newFixture(t, 3)
	f.puzzle.Active = false
	f.service.puzzles.(*stubPuzzles).puzzles[f.puzzle.ID] = f.puzzle

	_, err := f.service.Start(context.Background(), uuid.New(), StartRequest{PuzzleID: f.puzzle.ID})
	assert.ErrorIs(t, err, ErrPuzzleInactive)
}

func TestStartDailySeedGivesSameBoardToEveryone(t *testing.T) {
	f1 := newFixture(t, 4)
	f2 := newFixture(t, 4)
	f2.puzzle = f1.puzzle
	f2.service.puzzles.(*stubPuzzles).puzzles[f1.puzzle.ID] = f1.puzzle

	resp1, err := f1.service.Start(context.Background(), uuid.New(), StartRequest{PuzzleID: f1.puzzle.ID, Daily: true})
	require.NoError(t, err)
	resp2, err := f2.service.Start(context.Background(), uuid.New(), StartRequest{PuzzleID: f1.puzzle.ID, Daily: true})
	require.NoError(t, err)

	require.Len(t, resp2.Tiles, len(resp1.Tiles))
	for i := range resp1.Tiles {
		assert.Equal(t, resp1.Tiles[i].QuestionID, resp2.Tiles[i].QuestionID)
		assert.Equal(t, resp1.Tiles[i].Options, resp2.Tiles[i].Options)
	}
}

func TestCompleteScoresAndSubmits(t *testing.T) {
	f := newFixture(t, 3)
	userID := uuid.New()

	resp, err := f.service.Start(context.Background(), userID, StartRequest{PuzzleID: f.puzzle.ID})
	require.NoError(t, err)

	result, err := f.service.Complete(context.Background(), userID, "ada", CompleteRequest{
		SessionID:   resp.SessionID,
		Hearts:      5,
		TimeSeconds: 25,
	})
	require.NoError(t, err)

	// 100 base + 75 hearts + 0 grid + 80 speed + 10 streak
	assert.Equal(t, 265, result.Breakdown.TotalScore)
	assert.False(t, result.Rejected)
	assert.Equal(t, 1, result.StreakDays)

	require.NotNil(t, result.Leaderboard)
	assert.Equal(t, 1, f.lb.calls)
	assert.Equal(t, userID, f.lb.userID)
	assert.Equal(t, 265, f.lb.score)

	require.Len(t, f.solves.inserted, 1)
	assert.Equal(t, 265, f.solves.inserted[0].Score)
	assert.Equal(t, resp.SessionID, f.solves.inserted[0].SessionID)

	_, stillThere := f.store.states[resp.SessionID]
	assert.False(t, stillThere, "state should be deleted after completion")
}

func TestCompleteTooFastIsRejected(t *testing.T) {
	f := newFixture(t, 3)
	userID := uuid.New()

	resp, err := f.service.Start(context.Background(), userID, StartRequest{PuzzleID: f.puzzle.ID})
	require.NoError(t, err)

	result, err := f.service.Complete(context.Background(), userID, "ada", CompleteRequest{
		SessionID:   resp.SessionID,
		Hearts:      5,
		TimeSeconds: 3,
	})
	require.NoError(t, err)

	assert.True(t, result.Rejected)
	assert.Equal(t, 0, result.Breakdown.TotalScore)
	assert.Nil(t, result.Leaderboard)
	assert.Equal(t, 0, f.lb.calls, "rejected scores never reach the leaderboard")

	require.Len(t, f.solves.inserted, 1, "rejected solves are still recorded")
	assert.Equal(t, 0, f.solves.inserted[0].Score)
}

func TestCompleteUnknownSession(t *testing.T) {
	f := newFixture(t, 3)

	_, err := f.service.Complete(context.Background(), uuid.New(), "ada", CompleteRequest{SessionID: uuid.New()})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCompleteWrongOwner(t *testing.T) {
	f := newFixture(t, 3)
	owner := uuid.New()

	resp, err := f.service.Start(context.Background(), owner, StartRequest{PuzzleID: f.puzzle.ID})
	require.NoError(t, err)

	_, err = f.service.Complete(context.Background(), uuid.New(), "eve", CompleteRequest{SessionID: resp.SessionID})
	assert.ErrorIs(t, err, ErrNotSessionOwner)
}

func TestCompleteNegativeHearts(t *testing.T) {
	f := newFixture(t, 3)
	userID := uuid.New()

	resp, err := f.service.Start(context.Background(), userID, StartRequest{PuzzleID: f.puzzle.ID})
	require.NoError(t, err)

	_, err = f.service.Complete(context.Background(), userID, "ada", CompleteRequest{
		SessionID:   resp.SessionID,
		Hearts:      -1,
		TimeSeconds: 40,
	})
	assert.ErrorIs(t, err, ErrIncompleteSession)
}

func TestDailySeedIsStablePerDayAndSalt(t *testing.T) {
	assert.Equal(t, DailySeed("2026-08-28", "salt"), DailySeed("2026-08-28", "salt"))
	assert.NotEqual(t, DailySeed("2026-08-28", "salt"), DailySeed("2026-08-29", "salt"))
	assert.NotEqual(t, DailySeed("2026-08-28", "salt"), DailySeed("2026-08-28", "other"))
}
