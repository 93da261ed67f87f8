package leaderboard

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/tilereveal/tilereveal/pkg/http/ws"
)

func TestValidWindow(t *testing.T) {
	for _, window := range Windows {
		assert.True(t, ValidWindow(window), window)
	}
	assert.False(t, ValidWindow("hourly"))
	assert.False(t, ValidWindow(""))
	assert.False(t, ValidWindow("Daily"))
}

func TestWindowKeyBucketsByPeriod(t *testing.T) {
	at := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

	daily, dailyTTL := windowKey(WindowDaily, at)
	assert.Equal(t, "lb:daily:2026-08-28", daily)
	assert.Equal(t, 48*time.Hour, dailyTTL)

	weekly, _ := windowKey(WindowWeekly, at)
	assert.Equal(t, "lb:weekly:2026-W35", weekly)

	monthly, _ := windowKey(WindowMonthly, at)
	assert.Equal(t, "lb:monthly:2026-08", monthly)

	allTime, allTTL := windowKey(WindowAllTime, at)
	assert.Equal(t, "lb:all_time", allTime)
	assert.Equal(t, time.Duration(0), allTTL, "all_time never expires")
}

func TestWindowKeySeparatesDays(t *testing.T) {
	d1, _ := windowKey(WindowDaily, time.Date(2026, time.August, 28, 23, 59, 0, 0, time.UTC))
	d2, _ := windowKey(WindowDaily, time.Date(2026, time.August, 29, 0, 1, 0, 0, time.UTC))
	assert.NotEqual(t, d1, d2)
}

func TestSolveCountParsesAndLogsCorruption(t *testing.T) {
	var logs bytes.Buffer
	svc := &Service{logger: zerolog.New(&logs)}

	assert.Equal(t, 12, svc.solveCount("12", "u1"))
	assert.Equal(t, 0, svc.solveCount("", "u1"))
	assert.Empty(t, logs.String(), "clean values log nothing")

	assert.Equal(t, 0, svc.solveCount("not-a-number", "u1"))
	assert.Contains(t, logs.String(), "corrupt solve counter")
	assert.Contains(t, logs.String(), "u1")
}

func TestToWSEntries(t *testing.T) {
	entries := []Entry{
		{Rank: 1, UserID: "u1", DisplayName: "ada", Score: 900, Solves: 4},
		{Rank: 2, UserID: "u2", DisplayName: "kay", Score: 750, Solves: 2},
	}

	out := toWSEntries(entries)
	assert.Equal(t, []ws.LeaderboardEntry{
		{Rank: 1, UserID: "u1", DisplayName: "ada", Score: 900, Solves: 4},
		{Rank: 2, UserID: "u2", DisplayName: "kay", Score: 750, Solves: 2},
	}, out)
}
