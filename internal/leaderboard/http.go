package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tilereveal/tilereveal/internal/db/repository"
	httperrors "github.com/tilereveal/tilereveal/pkg/http/errors"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// SnapshotReader loads persisted standings when Redis has none.
type SnapshotReader interface {
	LatestByWindow(ctx context.Context, window string) (repository.Snapshot, error)
}

// Handler serves leaderboard reads over HTTP.
type Handler struct {
	service   *Service
	snapshots SnapshotReader
	logger    zerolog.Logger
}

// NewHandler creates a leaderboard HTTP handler.
func NewHandler(service *Service, snapshots SnapshotReader, logger zerolog.Logger) *Handler {
	return &Handler{service: service, snapshots: snapshots, logger: logger}
}

type topResponse struct {
	Window  string  `json:"window"`
	Entries []Entry `json:"entries"`
	Source  string  `json:"source"`
}

// HandleTop serves GET /v1/leaderboards/{window}.
func (h *Handler) HandleTop(w http.ResponseWriter, r *http.Request) {
	window := strings.TrimPrefix(r.URL.Path, "/v1/leaderboards/")
	if !ValidWindow(window) {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeUnknownWindow, "unknown leaderboard window")
		return
	}

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "limit must be a positive integer")
			return
		}
		if parsed > maxLimit {
			parsed = maxLimit
		}
		limit = parsed
	}

	entries, err := h.service.Top(r.Context(), window, limit)
	if err != nil {
		h.logger.Warn().Err(err).Str("window", window).Msg("live leaderboard read failed")
		entries = nil
	}

	source := "live"
	if len(entries) == 0 {
		snapshot, snapErr := h.snapshots.LatestByWindow(r.Context(), window)
		if snapErr == nil {
			if jsonErr := json.Unmarshal(snapshot.Data, &entries); jsonErr == nil {
				source = "snapshot"
				if len(entries) > limit {
					entries = entries[:limit]
				}
			}
		}
	}
	if entries == nil && err != nil {
		httperrors.RespondError(w, http.StatusServiceUnavailable,
			httperrors.ErrCodeLeaderboardFetchFailed, "leaderboard temporarily unavailable")
		return
	}
	if entries == nil {
		entries = []Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(topResponse{Window: window, Entries: entries, Source: source})
}
