package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tilereveal/tilereveal/pkg/http/ws"
)

const (
	keyPrefix     = "lb"
	updateChannel = "lb:updates"

	WindowDaily   = "daily"
	WindowWeekly  = "weekly"
	WindowMonthly = "monthly"
	WindowAllTime = "all_time"
)

// Windows lists every supported ranking window.
var Windows = []string{WindowDaily, WindowWeekly, WindowMonthly, WindowAllTime}

// ValidWindow reports whether w names a supported window.
func ValidWindow(w string) bool {
	for _, known := range Windows {
		if w == known {
			return true
		}
	}
	return false
}

// bestScoreScript records a user's best score for one puzzle on one day.
// It only overwrites when the new score is strictly greater. Returns the
// previous best (0 when none) on success, -1 when the score is not an
// improvement.
var bestScoreScript = redis.NewScript(`
local prev = redis.call('GET', KEYS[1])
local score = tonumber(ARGV[1])
if prev and tonumber(prev) >= score then
    return -1
end
redis.call('SET', KEYS[1], ARGV[1], 'EX', ARGV[2])
if prev then
    return tonumber(prev)
end
return 0
`)

// Entry is one ranked row.
type Entry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	Solves      int    `json:"solves"`
}

// SubmitOutcome reports whether a score changed the standings.
type SubmitOutcome struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
	Score   int    `json:"score"`
}

// Service maintains ranked standings in Redis sorted sets, one per
// window, with per-user metadata in hashes.
type Service struct {
	redis   *redis.Client
	logger  zerolog.Logger
	bestTTL time.Duration
}

// NewService creates a leaderboard service.
func NewService(client *redis.Client, logger zerolog.Logger) *Service {
	return &Service{
		redis:   client,
		logger:  logger,
		bestTTL: 48 * time.Hour,
	}
}

// Submit applies a completed solve to every window. Only the user's best
// score per puzzle per day counts; a lower or equal replay is ignored.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, displayName string, puzzleID uuid.UUID, score int, day string) (SubmitOutcome, error) {
	bestKey := fmt.Sprintf("%s:best:%s:%s:%s", keyPrefix, userID, puzzleID, day)

	prev, err := bestScoreScript.Run(ctx, s.redis, []string{bestKey},
		score, int(s.bestTTL.Seconds())).Int()
	if err != nil {
		return SubmitOutcome{}, fmt.Errorf("record best score: %w", err)
	}
	if prev < 0 {
		return SubmitOutcome{Applied: false, Reason: "lower score ignored", Score: score}, nil
	}

	delta := float64(score - prev)
	firstSolve := prev == 0

	now := time.Now().UTC()
	pipe := s.redis.Pipeline()
	for _, window := range Windows {
		key, ttl := windowKey(window, now)
		pipe.ZIncrBy(ctx, key, delta, userID.String())
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
	}

	metaKey := fmt.Sprintf("%s:meta:%s", keyPrefix, userID)
	pipe.HSet(ctx, metaKey, "display_name", displayName)
	if firstSolve {
		pipe.HIncrBy(ctx, metaKey, "solves", 1)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return SubmitOutcome{}, fmt.Errorf("apply score: %w", err)
	}

	s.publishUpdate(ctx, WindowDaily, puzzleID)

	return SubmitOutcome{Applied: true, Score: score}, nil
}

// Top returns the highest-ranked entries for a window.
func (s *Service) Top(ctx context.Context, window string, limit int) ([]Entry, error) {
	if !ValidWindow(window) {
		return nil, fmt.Errorf("unknown window %q", window)
	}

	key, _ := windowKey(window, time.Now().UTC())
	members, err := s.redis.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read window %s: %w", window, err)
	}

	entries := make([]Entry, 0, len(members))
	for i, member := range members {
		userID, _ := member.Member.(string)
		entries = append(entries, Entry{
			Rank:   i + 1,
			UserID: userID,
			Score:  int(member.Score),
		})
	}
	if err := s.fillMeta(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// fillMeta resolves display names and solve counts for ranked entries.
func (s *Service) fillMeta(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	pipe := s.redis.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(entries))
	for i, entry := range entries {
		cmds[i] = pipe.HGetAll(ctx, fmt.Sprintf("%s:meta:%s", keyPrefix, entry.UserID))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return fmt.Errorf("read meta: %w", err)
	}

	for i := range entries {
		meta := cmds[i].Val()
		entries[i].DisplayName = meta["display_name"]
		entries[i].Solves = s.solveCount(meta["solves"], entries[i].UserID)
	}
	return nil
}

// solveCount parses the meta-hash counter. A corrupt value reads as zero
// and is logged rather than silently dropped.
func (s *Service) solveCount(raw, userID string) int {
	if raw == "" {
		return 0
	}
	solves, err := strconv.Atoi(raw)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("user_id", userID).
			Str("solves", raw).
			Msg("corrupt solve counter in meta hash")
		return 0
	}
	return solves
}

// publishUpdate pushes the refreshed window to the update channel.
// Failures are logged, never surfaced to the submitter.
func (s *Service) publishUpdate(ctx context.Context, window string, puzzleID uuid.UUID) {
	top, err := s.Top(ctx, window, 10)
	if err != nil {
		s.logger.Warn().Err(err).Str("window", window).Msg("leaderboard update read failed")
		return
	}

	payload, err := json.Marshal(ws.LeaderboardUpdatePayload{
		Window:   window,
		PuzzleID: puzzleID.String(),
		Top:      toWSEntries(top),
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("leaderboard update marshal failed")
		return
	}

	if err := s.redis.Publish(ctx, updateChannel, payload).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("leaderboard update publish failed")
	}
}

// windowKey returns the Redis key and retention for a window at t.
func windowKey(window string, t time.Time) (string, time.Duration) {
	switch window {
	case WindowDaily:
		return fmt.Sprintf("%s:%s:%s", keyPrefix, window, t.Format("2006-01-02")), 48 * time.Hour
	case WindowWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%s:%s:%d-W%02d", keyPrefix, window, year, week), 14 * 24 * time.Hour
	case WindowMonthly:
		return fmt.Sprintf("%s:%s:%s", keyPrefix, window, t.Format("2006-01")), 62 * 24 * time.Hour
	default:
		return fmt.Sprintf("%s:%s", keyPrefix, WindowAllTime), 0
	}
}
