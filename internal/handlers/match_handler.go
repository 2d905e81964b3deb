package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lifeconnect/backend/internal/middleware"
	"github.com/lifeconnect/backend/internal/services"
)

// ProjectMatcher abstracts the matching engine.
type ProjectMatcher interface {
	MatchProjects(ctx context.Context, userID uuid.UUID) ([]*services.ProjectMatch, error)
}

// MatchHandler serves GET /api/v1/matches.
type MatchHandler struct {
	Matcher ProjectMatcher
	Logger  *slog.Logger
}

type matchesResponse struct {
	Matches []*services.ProjectMatch `json:"matches"`
}

func (h *MatchHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromCtx(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	matches, err := h.Matcher.MatchProjects(r.Context(), profile.ID)
	if err != nil {
		h.Logger.Error("match projects", "user_id", profile.ID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if matches == nil {
		matches = []*services.ProjectMatch{}
	}
	h.Logger.Info("matched projects", "user_id", profile.ID, "count", len(matches))
	writeJSON(w, http.StatusOK, matchesResponse{Matches: matches})
}
