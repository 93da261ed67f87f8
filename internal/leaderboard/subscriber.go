package leaderboard

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tilereveal/tilereveal/pkg/http/ws"
)

// Broadcaster relays leaderboard updates from the Redis channel to every
// WebSocket client. Running it on each instance keeps clients in sync no
// matter which instance applied the score.
type Broadcaster struct {
	redis  *redis.Client
	hub    *ws.Hub
	logger zerolog.Logger
}

// NewBroadcaster creates a pub/sub broadcaster.
func NewBroadcaster(client *redis.Client, hub *ws.Hub, logger zerolog.Logger) *Broadcaster {
	return &Broadcaster{redis: client, hub: hub, logger: logger}
}

// Run subscribes to the update channel and forwards messages until ctx is
// cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	sub := b.redis.Subscribe(ctx, updateChannel)
	defer sub.Close()

	b.logger.Info().Str("channel", updateChannel).Msg("leaderboard broadcaster started")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("leaderboard broadcaster stopped")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			b.forward([]byte(msg.Payload))
		}
	}
}

func (b *Broadcaster) forward(payload []byte) {
	if !json.Valid(payload) {
		b.logger.Warn().Msg("dropping malformed leaderboard update")
		return
	}

	err := b.hub.BroadcastAll(ws.Message{
		Type:    ws.TypeLeaderboardUpdate,
		Payload: payload,
	})
	if err != nil {
		b.logger.Warn().Err(err).Msg("leaderboard broadcast delivery incomplete")
	}
}
