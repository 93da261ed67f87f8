package leaderboard

import "github.com/tilereveal/tilereveal/pkg/http/ws"

func toWSEntries(entries []Entry) []ws.LeaderboardEntry {
	out := make([]ws.LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = ws.LeaderboardEntry{
			Rank:        e.Rank,
			UserID:      e.UserID,
			DisplayName: e.DisplayName,
			Score:       e.Score,
			Solves:      e.Solves,
		}
	}
	return out
}
