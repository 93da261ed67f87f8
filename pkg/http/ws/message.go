package ws

import "encoding/json"

// MessageType constants for the WebSocket protocol. The socket is a
// one-way feed today: clients subscribe and receive leaderboard pushes.
const (
	// Client -> Server
	TypePing = "ping"

	// Server -> Client
	TypePong              = "pong"
	TypeLeaderboardUpdate = "leaderboard_update"
	TypeError             = "error"
)

// Message wraps all WebSocket payloads with a type tag.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// LeaderboardUpdatePayload carries fresh standings after a score lands.
type LeaderboardUpdatePayload struct {
	Window   string             `json:"window"`
	PuzzleID string             `json:"puzzle_id,omitempty"`
	Top      []LeaderboardEntry `json:"top"`
}

// LeaderboardEntry is one row of a pushed or fetched leaderboard.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	Solves      int    `json:"solves"`
}

// ErrorPayload reports a protocol-level problem to the client.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
