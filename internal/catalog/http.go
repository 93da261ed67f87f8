// Package catalog exposes the puzzle library: creators publish boards,
// players browse what is playable.
package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tilereveal/tilereveal/internal/auth"
	"github.com/tilereveal/tilereveal/internal/db/repository"
	httperrors "github.com/tilereveal/tilereveal/pkg/http/errors"
)

const listLimit = 50

// PuzzleStore is the persistence the catalog needs.
type PuzzleStore interface {
	Create(ctx context.Context, p repository.Puzzle) (repository.Puzzle, error)
	ListActive(ctx context.Context, limit int) ([]repository.Puzzle, error)
	StatsByCreator(ctx context.Context, creatorID uuid.UUID) (repository.CreatorStats, error)
}

// Handler serves puzzle catalog endpoints.
type Handler struct {
	puzzles PuzzleStore
	logger  zerolog.Logger
}

// NewHandler creates a catalog handler.
func NewHandler(puzzles PuzzleStore, logger zerolog.Logger) *Handler {
	return &Handler{puzzles: puzzles, logger: logger}
}

type puzzleView struct {
	ID        uuid.UUID `json:"id"`
	CreatorID uuid.UUID `json:"creator_id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	GridSize  int       `json:"grid_size"`
	CreatedAt time.Time `json:"created_at"`
}

func toView(p repository.Puzzle) puzzleView {
	return puzzleView{
		ID:        p.ID,
		CreatorID: p.CreatorID,
		Title:     p.Title,
		ImageURL:  p.ImageURL,
		GridSize:  p.GridSize,
		CreatedAt: p.CreatedAt,
	}
}

type createRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	GridSize int    `json:"grid_size"`
}

// HandleCreate serves POST /v1/puzzles.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "authentication required")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.ImageURL == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "title and image_url are required")
		return
	}
	if req.GridSize < 3 || req.GridSize > 5 {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeUnsupportedGridSize, "grid size must be 3, 4 or 5")
		return
	}

	p, err := h.puzzles.Create(r.Context(), repository.Puzzle{
		CreatorID: identity.UserID,
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		GridSize:  req.GridSize,
		Active:    true,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("puzzle create failed")
		httperrors.RespondInternalError(w, "could not create puzzle")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toView(p))
}

// HandleList serves GET /v1/puzzles.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	puzzles, err := h.puzzles.ListActive(r.Context(), listLimit)
	if err != nil {
		h.logger.Error().Err(err).Msg("puzzle list failed")
		httperrors.RespondInternalError(w, "could not list puzzles")
		return
	}

	views := make([]puzzleView, len(puzzles))
	for i, p := range puzzles {
		views[i] = toView(p)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]puzzleView{"puzzles": views})
}

// HandleCreatorStats serves GET /v1/puzzles/stats for the current user.
func (h *Handler) HandleCreatorStats(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "authentication required")
		return
	}

	stats, err := h.puzzles.StatsByCreator(r.Context(), identity.UserID)
	if err != nil {
		h.logger.Error().Err(err).Msg("creator stats failed")
		httperrors.RespondInternalError(w, "could not load creator stats")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"creator_id":   stats.CreatorID,
		"puzzle_count": stats.PuzzleCount,
		"solve_count":  stats.SolveCount,
		"total_score":  stats.TotalScore,
	})
}
