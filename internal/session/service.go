package session

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/tilereveal/tilereveal/internal/db/repository"
	"github.com/tilereveal/tilereveal/internal/leaderboard"
	"github.com/tilereveal/tilereveal/internal/puzzle"
	"github.com/tilereveal/tilereveal/internal/scoring"
)

var (
	ErrUnsupportedGridSize = errors.New("unsupported grid size")
	ErrPuzzleInactive      = errors.New("puzzle is not active")
	ErrBankExhausted       = errors.New("question bank exhausted")
	ErrSessionNotFound     = errors.New("session not found")
	ErrNotSessionOwner     = errors.New("session belongs to another user")
	ErrIncompleteSession   = errors.New("puzzle not completed")
)

var (
	sessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tilereveal_sessions_started_total",
		Help: "Number of puzzle sessions started.",
	})
	sessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tilereveal_sessions_completed_total",
		Help: "Number of puzzle sessions completed.",
	})
	sessionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tilereveal_sessions_rejected_total",
		Help: "Number of completions rejected by anti-cheat checks.",
	})
)

// Store is the session state persistence the service depends on.
type Store interface {
	StoreState(ctx context.Context, state State) error
	GetState(ctx context.Context, sessionID uuid.UUID) (State, error)
	DeleteState(ctx context.Context, sessionID uuid.UUID) error
	LoadUsedIDs(ctx context.Context, userID uuid.UUID) (puzzle.UsedSet, error)
	SaveUsedIDs(ctx context.Context, userID uuid.UUID, ids []string) error
	BumpStreak(ctx context.Context, userID uuid.UUID, day string) (int, error)
}

// Submitter applies completed scores to the leaderboard.
type Submitter interface {
	Submit(ctx context.Context, userID uuid.UUID, displayName string, puzzleID uuid.UUID, score int, day string) (leaderboard.SubmitOutcome, error)
}

// PuzzleStore resolves puzzles.
type PuzzleStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (repository.Puzzle, error)
}

// SolveStore persists completed solves.
type SolveStore interface {
	Insert(ctx context.Context, s repository.Solve) (repository.Solve, error)
}

// Service runs the session lifecycle: assign questions at start, score and
// record at completion.
type Service struct {
	store    Store
	lb       Submitter
	puzzles  PuzzleStore
	solves   SolveStore
	selector *puzzle.Selector
	engine   *scoring.Engine
	seedSalt string
	logger   zerolog.Logger
}

// NewService wires the session service.
func NewService(store Store, lb Submitter, puzzles PuzzleStore, solves SolveStore, selector *puzzle.Selector, engine *scoring.Engine, seedSalt string, logger zerolog.Logger) *Service {
	return &Service{
		store:    store,
		lb:       lb,
		puzzles:  puzzles,
		solves:   solves,
		selector: selector,
		engine:   engine,
		seedSalt: seedSalt,
		logger:   logger,
	}
}

// StartRequest asks for a new session on a puzzle. Seed forces a specific
// layout; Daily derives the shared seed for today so every player gets
// the same board.
type StartRequest struct {
	PuzzleID uuid.UUID `json:"puzzle_id"`
	Seed     *int64    `json:"seed,omitempty"`
	Daily    bool      `json:"daily,omitempty"`
}

// TileView is a tile as the client sees it. The correct answer index
// stays server-side.
type TileView struct {
	TileIndex  int      `json:"tile_index"`
	QuestionID string   `json:"question_id"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Category   string   `json:"category"`
	Difficulty int      `json:"difficulty"`
}

// StartResponse describes the assigned board.
type StartResponse struct {
	SessionID uuid.UUID  `json:"session_id"`
	PuzzleID  uuid.UUID  `json:"puzzle_id"`
	GridSize  int        `json:"grid_size"`
	Tiles     []TileView `json:"tiles"`
}

// Start assigns questions to every tile of the puzzle's grid and stores
// the answer key server-side.
func (s *Service) Start(ctx context.Context, userID uuid.UUID, req StartRequest) (StartResponse, error) {
	p, err := s.puzzles.GetByID(ctx, req.PuzzleID)
	if err != nil {
		return StartResponse{}, err
	}
	if !p.Active {
		return StartResponse{}, ErrPuzzleInactive
	}
	if p.GridSize < 3 || p.GridSize > 5 {
		return StartResponse{}, ErrUnsupportedGridSize
	}

	used, err := s.store.LoadUsedIDs(ctx, userID)
	if err != nil {
		return StartResponse{}, err
	}

	seed := req.Seed
	if req.Daily {
		daily := DailySeed(today(), s.seedSalt)
		seed = &daily
	}

	assignments := s.selector.Select(p.GridSize, used, seed)
	if len(assignments) < p.GridSize*p.GridSize {
		return StartResponse{}, ErrBankExhausted
	}

	state := State{
		SessionID:   uuid.New(),
		UserID:      userID,
		PuzzleID:    p.ID,
		GridSize:    p.GridSize,
		Assignments: assignments,
		StartedAt:   time.Now().UTC(),
	}
	if seed != nil {
		state.Seed = *seed
	}
	if err := s.store.StoreState(ctx, state); err != nil {
		return StartResponse{}, err
	}

	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		if !a.Question.Reusable {
			ids = append(ids, a.Question.ID)
		}
	}
	if err := s.store.SaveUsedIDs(ctx, userID, ids); err != nil {
		return StartResponse{}, err
	}

	sessionsStarted.Inc()
	s.logger.Info().
		Str("session_id", state.SessionID.String()).
		Str("puzzle_id", p.ID.String()).
		Int("grid_size", p.GridSize).
		Msg("session started")

	return StartResponse{
		SessionID: state.SessionID,
		PuzzleID:  p.ID,
		GridSize:  p.GridSize,
		Tiles:     toTileViews(assignments),
	}, nil
}

// CompleteRequest reports how a session ended.
type CompleteRequest struct {
	SessionID   uuid.UUID `json:"session_id"`
	Hearts      int       `json:"hearts"`
	TimeSeconds int       `json:"time_seconds"`
}

// CompleteResponse carries the score breakdown and the leaderboard
// outcome.
type CompleteResponse struct {
	Breakdown   scoring.Breakdown          `json:"breakdown"`
	StreakDays  int                        `json:"streak_days"`
	Rejected    bool                       `json:"rejected"`
	Leaderboard *leaderboard.SubmitOutcome `json:"leaderboard,omitempty"`
}

// Complete scores a finished session, records the solve and submits the
// score. Completions that fail validation score zero and never reach the
// leaderboard, but are still recorded.
func (s *Service) Complete(ctx context.Context, userID uuid.UUID, displayName string, req CompleteRequest) (CompleteResponse, error) {
	state, err := s.store.GetState(ctx, req.SessionID)
	if errors.Is(err, ErrStateNotFound) {
		return CompleteResponse{}, ErrSessionNotFound
	}
	if err != nil {
		return CompleteResponse{}, err
	}
	if state.UserID != userID {
		return CompleteResponse{}, ErrNotSessionOwner
	}

	if v := s.engine.ValidateScore(req.Hearts, req.TimeSeconds); !v.Valid {
		if req.Hearts < 0 {
			return CompleteResponse{}, ErrIncompleteSession
		}
		// Too-fast runs fall through: the engine zeroes them and they
		// are recorded, just never ranked.
	}

	day := today()
	streak, err := s.store.BumpStreak(ctx, userID, day)
	if err != nil {
		return CompleteResponse{}, err
	}

	breakdown := s.engine.CalculateScore(req.Hearts, state.GridSize, req.TimeSeconds, streak)
	resp := CompleteResponse{
		Breakdown:  breakdown,
		StreakDays: streak,
		Rejected:   breakdown.Rejected(),
	}

	if resp.Rejected {
		sessionsRejected.Inc()
		s.logger.Warn().
			Str("session_id", req.SessionID.String()).
			Int("time_seconds", req.TimeSeconds).
			Msg("completion rejected as too fast")
	} else {
		outcome, err := s.lb.Submit(ctx, userID, displayName, state.PuzzleID, breakdown.TotalScore, day)
		if err != nil {
			return CompleteResponse{}, err
		}
		resp.Leaderboard = &outcome
	}

	_, err = s.solves.Insert(ctx, repository.Solve{
		PuzzleID:    state.PuzzleID,
		UserID:      userID,
		SessionID:   req.SessionID,
		Score:       breakdown.TotalScore,
		Hearts:      req.Hearts,
		TimeSeconds: req.TimeSeconds,
		StreakDays:  streak,
		Day:         day,
	})
	if err != nil {
		return CompleteResponse{}, err
	}

	if err := s.store.DeleteState(ctx, req.SessionID); err != nil {
		s.logger.Warn().Err(err).Str("session_id", req.SessionID.String()).Msg("session state cleanup failed")
	}

	sessionsCompleted.Inc()
	return resp, nil
}

func toTileViews(assignments []puzzle.TileAssignment) []TileView {
	tiles := make([]TileView, len(assignments))
	for i, a := range assignments {
		tiles[i] = TileView{
			TileIndex:  a.TileIndex,
			QuestionID: a.Question.ID,
			Text:       a.Question.Text,
			Options:    a.Question.Options,
			Category:   string(a.Question.Category),
			Difficulty: a.Question.Difficulty,
		}
	}
	return tiles
}

// DailySeed derives the shared layout seed for a day. Salting keeps the
// seed unpredictable to clients.
func DailySeed(day, salt string) int64 {
	sum := sha256.Sum256([]byte(day + ":" + salt))
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}
