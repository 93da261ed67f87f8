package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Solve is one completed session's durable record.
type Solve struct {
	ID          uuid.UUID
	PuzzleID    uuid.UUID
	UserID      uuid.UUID
	SessionID   uuid.UUID
	Score       int
	Hearts      int
	TimeSeconds int
	StreakDays  int
	Day         string
	CreatedAt   time.Time
}

// SolveRepo persists completed solves in Postgres.
type SolveRepo struct {
	pool *pgxpool.Pool
}

func NewSolveRepo(pool *pgxpool.Pool) *SolveRepo {
	return &SolveRepo{pool: pool}
}

// Insert stores a solve row. Session IDs are unique, replays are rejected
// by the database.
func (r *SolveRepo) Insert(ctx context.Context, s Solve) (Solve, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	const q = `
		INSERT INTO puzzle_solves (id, puzzle_id, user_id, session_id, score, hearts, time_seconds, streak_days, day)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	err := r.pool.QueryRow(ctx, q,
		s.ID, s.PuzzleID, s.UserID, s.SessionID,
		s.Score, s.Hearts, s.TimeSeconds, s.StreakDays, s.Day,
	).Scan(&s.CreatedAt)
	if err != nil {
		return Solve{}, fmt.Errorf("insert solve: %w", err)
	}
	return s, nil
}

// CountByUserAndDay returns how many puzzles the user solved on a day.
func (r *SolveRepo) CountByUserAndDay(ctx context.Context, userID uuid.UUID, day string) (int, error) {
	const q = `SELECT COUNT(*) FROM puzzle_solves WHERE user_id = $1 AND day = $2`

	var count int
	if err := r.pool.QueryRow(ctx, q, userID, day).Scan(&count); err != nil {
		return 0, fmt.Errorf("count solves: %w", err)
	}
	return count, nil
}
