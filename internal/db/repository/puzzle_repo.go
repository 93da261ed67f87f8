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

var ErrPuzzleNotFound = errors.New("puzzle not found")

// Puzzle is a published reveal-image puzzle.
type Puzzle struct {
	ID        uuid.UUID
	CreatorID uuid.UUID
	Title     string
	ImageURL  string
	GridSize  int
	Active    bool
	CreatedAt time.Time
}

// PuzzleRepo persists puzzles in Postgres.
type PuzzleRepo struct {
	pool *pgxpool.Pool
}

func NewPuzzleRepo(pool *pgxpool.Pool) *PuzzleRepo {
	return &PuzzleRepo{pool: pool}
}

// Create inserts a new puzzle and returns it with generated fields set.
func (r *PuzzleRepo) Create(ctx context.Context, p Puzzle) (Puzzle, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	const q = `
		INSERT INTO puzzles (id, creator_id, title, image_url, grid_size, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.pool.QueryRow(ctx, q, p.ID, p.CreatorID, p.Title, p.ImageURL, p.GridSize, p.Active).
		Scan(&p.CreatedAt)
	if err != nil {
		return Puzzle{}, fmt.Errorf("insert puzzle: %w", err)
	}
	return p, nil
}

// GetByID fetches a single puzzle.
func (r *PuzzleRepo) GetByID(ctx context.Context, id uuid.UUID) (Puzzle, error) {
	const q = `
		SELECT id, creator_id, title, image_url, grid_size, active, created_at
		FROM puzzles
		WHERE id = $1`

	var p Puzzle
	err := r.pool.QueryRow(ctx, q, id).
		Scan(&p.ID, &p.CreatorID, &p.Title, &p.ImageURL, &p.GridSize, &p.Active, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Puzzle{}, ErrPuzzleNotFound
	}
	if err != nil {
		return Puzzle{}, fmt.Errorf("select puzzle: %w", err)
	}
	return p, nil
}

// ListActive returns active puzzles, newest first.
func (r *PuzzleRepo) ListActive(ctx context.Context, limit int) ([]Puzzle, error) {
	const q = `
		SELECT id, creator_id, title, image_url, grid_size, active, created_at
		FROM puzzles
		WHERE active
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list puzzles: %w", err)
	}
	defer rows.Close()

	var puzzles []Puzzle
	for rows.Next() {
		var p Puzzle
		if err := rows.Scan(&p.ID, &p.CreatorID, &p.Title, &p.ImageURL, &p.GridSize, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan puzzle: %w", err)
		}
		puzzles = append(puzzles, p)
	}
	return puzzles, rows.Err()
}

// CreatorStats aggregates play activity on a creator's puzzles.
type CreatorStats struct {
	CreatorID   uuid.UUID
	PuzzleCount int
	SolveCount  int
	TotalScore  int64
}

// StatsByCreator summarizes solves across all puzzles of one creator.
func (r *PuzzleRepo) StatsByCreator(ctx context.Context, creatorID uuid.UUID) (CreatorStats, error) {
	const q = `
		SELECT COUNT(DISTINCT p.id),
		       COUNT(s.id),
		       COALESCE(SUM(s.score), 0)
		FROM puzzles p
		LEFT JOIN puzzle_solves s ON s.puzzle_id = p.id
		WHERE p.creator_id = $1`

	stats := CreatorStats{CreatorID: creatorID}
	err := r.pool.QueryRow(ctx, q, creatorID).
		Scan(&stats.PuzzleCount, &stats.SolveCount, &stats.TotalScore)
	if err != nil {
		return CreatorStats{}, fmt.Errorf("creator stats: %w", err)
	}
	return stats, nil
}
