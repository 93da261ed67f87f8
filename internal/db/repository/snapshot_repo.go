package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is a periodic durable copy of a leaderboard window, kept so
// standings survive a Redis flush and can back historical queries.
type Snapshot struct {
	ID         uuid.UUID
	Window     string
	Data       []byte
	SourceHash string
	CreatedAt  time.Time
}

// SnapshotRepo persists leaderboard snapshots in Postgres.
type SnapshotRepo struct {
	pool *pgxpool.Pool
}

func NewSnapshotRepo(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// Insert stores a snapshot.
func (r *SnapshotRepo) Insert(ctx context.Context, s Snapshot) (Snapshot, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	const q = `
		INSERT INTO leaderboard_snapshots (id, window_name, data, source_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.pool.QueryRow(ctx, q, s.ID, s.Window, s.Data, s.SourceHash).Scan(&s.CreatedAt)
	if err != nil {
		return Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}
	return s, nil
}

// LatestByWindow returns the most recent snapshot for a window.
func (r *SnapshotRepo) LatestByWindow(ctx context.Context, window string) (Snapshot, error) {
	const q = `
		SELECT id, window_name, data, source_hash, created_at
		FROM leaderboard_snapshots
		WHERE window_name = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var s Snapshot
	err := r.pool.QueryRow(ctx, q, window).
		Scan(&s.ID, &s.Window, &s.Data, &s.SourceHash, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Snapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("select snapshot: %w", err)
	}
	return s, nil
}

// LatestHash returns only the source hash of the newest snapshot, used to
// skip writes when nothing changed.
func (r *SnapshotRepo) LatestHash(ctx context.Context, window string) (string, error) {
	const q = `
		SELECT source_hash
		FROM leaderboard_snapshots
		WHERE window_name = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var hash string
	err := r.pool.QueryRow(ctx, q, window).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("select snapshot hash: %w", err)
	}
	return hash, nil
}
