package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tilereveal/tilereveal/internal/puzzle"
)

var ErrStateNotFound = errors.New("session state not found")

// State is the server-side record of an in-flight session. It keeps the
// correct answers, which are never sent to the client.
type State struct {
	SessionID   uuid.UUID               `json:"session_id"`
	UserID      uuid.UUID               `json:"user_id"`
	PuzzleID    uuid.UUID               `json:"puzzle_id"`
	GridSize    int                     `json:"grid_size"`
	Seed        int64                   `json:"seed"`
	Assignments []puzzle.TileAssignment `json:"assignments"`
	StartedAt   time.Time               `json:"started_at"`
}

// StateManager keeps session state and per-user question history in
// Redis. State is a JSON blob with a TTL; abandoned sessions expire on
// their own.
type StateManager struct {
	redis  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewStateManager creates a Redis-backed state manager.
func NewStateManager(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *StateManager {
	return &StateManager{redis: client, ttl: ttl, logger: logger}
}

func stateKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func usedKey(userID uuid.UUID) string {
	return fmt.Sprintf("used:%s", userID)
}

func streakKey(userID uuid.UUID) string {
	return fmt.Sprintf("streak:%s", userID)
}

// StoreState saves session state with the configured TTL.
func (m *StateManager) StoreState(ctx context.Context, state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	if err := m.redis.Set(ctx, stateKey(state.SessionID), data, m.ttl).Err(); err != nil {
		return fmt.Errorf("store session state: %w", err)
	}
	return nil
}

// GetState loads session state.
func (m *StateManager) GetState(ctx context.Context, sessionID uuid.UUID) (State, error) {
	data, err := m.redis.Get(ctx, stateKey(sessionID)).Bytes()
	if err == redis.Nil {
		return State{}, ErrStateNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("load session state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("unmarshal session state: %w", err)
	}
	return state, nil
}

// DeleteState removes session state after completion.
func (m *StateManager) DeleteState(ctx context.Context, sessionID uuid.UUID) error {
	return m.redis.Del(ctx, stateKey(sessionID)).Err()
}

// LoadUsedIDs returns the IDs of non-reusable questions the user has
// already seen.
func (m *StateManager) LoadUsedIDs(ctx context.Context, userID uuid.UUID) (puzzle.UsedSet, error) {
	ids, err := m.redis.SMembers(ctx, usedKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load used questions: %w", err)
	}

	used := make(puzzle.UsedSet, len(ids))
	for _, id := range ids {
		used.Add(id)
	}
	return used, nil
}

// SaveUsedIDs records question IDs as consumed for the user.
func (m *StateManager) SaveUsedIDs(ctx context.Context, userID uuid.UUID, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	if err := m.redis.SAdd(ctx, usedKey(userID), members...).Err(); err != nil {
		return fmt.Errorf("save used questions: %w", err)
	}
	return nil
}

// BumpStreak updates the user's consecutive-day streak for day (a
// YYYY-MM-DD date) and returns the current streak length. Playing again
// on the same day keeps the streak, playing the day after extends it, and
// any gap resets it to one.
func (m *StateManager) BumpStreak(ctx context.Context, userID uuid.UUID, day string) (int, error) {
	key := streakKey(userID)
	fields, err := m.redis.HGetAll(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("load streak: %w", err)
	}

	days := m.streakDays(fields["days"], userID)
	lastDay := fields["last_day"]

	switch {
	case lastDay == day:
		// already counted today
	case days > 0 && lastDay == previousDay(day):
		days++
	default:
		days = 1
	}

	if err := m.redis.HSet(ctx, key, "days", days, "last_day", day).Err(); err != nil {
		return 0, fmt.Errorf("save streak: %w", err)
	}
	return days, nil
}

// streakDays parses the stored counter. A corrupt value resets the
// streak and is logged rather than silently zeroed.
func (m *StateManager) streakDays(raw string, userID uuid.UUID) int {
	if raw == "" {
		return 0
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		m.logger.Warn().Err(err).
			Str("user_id", userID.String()).
			Str("days", raw).
			Msg("corrupt streak counter, resetting")
		return 0
	}
	return days
}

func previousDay(day string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format("2006-01-02")
}
