package leaderboard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/tilereveal/tilereveal/internal/db/repository"
)

// SnapshotStore persists leaderboard snapshots.
type SnapshotStore interface {
	Insert(ctx context.Context, s repository.Snapshot) (repository.Snapshot, error)
	LatestHash(ctx context.Context, window string) (string, error)
}

// SnapshotWorker periodically copies live standings into Postgres so they
// survive a Redis flush.
type SnapshotWorker struct {
	service  *Service
	store    SnapshotStore
	interval time.Duration
	topN     int
	logger   zerolog.Logger
}

// NewSnapshotWorker creates a snapshot worker.
func NewSnapshotWorker(service *Service, store SnapshotStore, interval time.Duration, topN int, logger zerolog.Logger) *SnapshotWorker {
	return &SnapshotWorker{
		service:  service,
		store:    store,
		interval: interval,
		topN:     topN,
		logger:   logger,
	}
}

// Run snapshots every window on a ticker until ctx is cancelled.
func (w *SnapshotWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Msg("snapshot worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("snapshot worker stopped")
			return
		case <-ticker.C:
			for _, window := range Windows {
				if err := w.snapshot(ctx, window); err != nil {
					w.logger.Warn().Err(err).Str("window", window).Msg("snapshot failed")
				}
			}
		}
	}
}

// snapshot persists one window, skipping the write when the standings
// have not changed since the last snapshot.
func (w *SnapshotWorker) snapshot(ctx context.Context, window string) error {
	entries, err := w.service.Top(ctx, window, w.topN)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	lastHash, err := w.store.LatestHash(ctx, window)
	if err != nil {
		return err
	}
	if lastHash == hash {
		return nil
	}

	_, err = w.store.Insert(ctx, repository.Snapshot{
		Window:     window,
		Data:       data,
		SourceHash: hash,
	})
	if err != nil {
		return err
	}

	w.logger.Debug().Str("window", window).Int("entries", len(entries)).Msg("snapshot persisted")
	return nil
}
