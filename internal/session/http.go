package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tilereveal/tilereveal/internal/auth"
	"github.com/tilereveal/tilereveal/internal/db/repository"
	httperrors "github.com/tilereveal/tilereveal/pkg/http/errors"
)

// Handler serves the session lifecycle over HTTP.
type Handler struct {
	service *Service
	logger  zerolog.Logger
}

// NewHandler creates a session HTTP handler.
func NewHandler(service *Service, logger zerolog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleStart serves POST /v1/sessions.
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "authentication required")
		return
	}

	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid request body")
		return
	}

	resp, err := h.service.Start(r.Context(), identity.UserID, req)
	if err != nil {
		h.respondStartError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) respondStartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrPuzzleNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodePuzzleNotFound, "puzzle not found")
	case errors.Is(err, ErrPuzzleInactive), errors.Is(err, ErrUnsupportedGridSize):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeUnsupportedGridSize, err.Error())
	case errors.Is(err, ErrBankExhausted):
		httperrors.RespondError(w, http.StatusConflict, httperrors.ErrCodeBankExhausted, "not enough unused questions for this grid")
	default:
		h.logger.Error().Err(err).Msg("session start failed")
		httperrors.RespondInternalError(w, "could not start session")
	}
}

// HandleComplete serves POST /v1/sessions/complete.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "authentication required")
		return
	}

	var req CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid request body")
		return
	}

	resp, err := h.service.Complete(r.Context(), identity.UserID, identity.DisplayName, req)
	if err != nil {
		h.respondCompleteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) respondCompleteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeSessionNotFound, "session not found or expired")
	case errors.Is(err, ErrNotSessionOwner):
		httperrors.RespondError(w, http.StatusForbidden, httperrors.ErrCodeUnauthorized, "session belongs to another user")
	case errors.Is(err, ErrIncompleteSession):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "puzzle not completed")
	default:
		h.logger.Error().Err(err).Msg("session completion failed")
		httperrors.RespondInternalError(w, "could not complete session")
	}
}
