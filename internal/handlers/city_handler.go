package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lifeconnect/backend/internal/middleware"
	"github.com/lifeconnect/backend/internal/models"
	"github.com/lifeconnect/backend/internal/services"
)

// FundLister reads city development funds.
type FundLister interface {
	List(ctx context.Context) ([]*models.CityFund, error)
}

// CityProjectLister reads city projects.
type CityProjectLister interface {
	List(ctx context.Context) ([]*models.CityProject, error)
}

// VoteCaster records votes.
type VoteCaster interface {
	CastVote(ctx context.Context, userID, cityProjectID uuid.UUID, vote bool) error
	ListUserVotes(ctx context.Context, userID uuid.UUID) ([]*models.Vote, error)
}

// CityHandler serves the city-development endpoints: fund balances, project
// proposals, and voting.
type CityHandler struct {
	Funds        FundLister
	CityProjects CityProjectLister
	Voting       VoteCaster
	Logger       *slog.Logger
}

func (h *CityHandler) ListFunds(w http.ResponseWriter, r *http.Request) {
	funds, err := h.Funds.List(r.Context())
	if err != nil {
		h.Logger.Error("list funds", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, funds)
}

func (h *CityHandler) ListCityProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.CityProjects.List(r.Context())
	if err != nil {
		h.Logger.Error("list city projects", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

type castVoteRequest struct {
	Vote bool `json:"vote"`
}

// CastVote handles POST /api/v1/city-projects/{id}/vote.
func (h *CityHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromCtx(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	cityProjectID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid city project id")
		return
	}
	var req castVoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.Voting.CastVote(r.Context(), profile.ID, cityProjectID, req.Vote); err != nil {
		switch {
		case errors.Is(err, services.ErrCityProjectNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrAlreadyVoted):
			writeError(w, http.StatusConflict, err.Error())
		default:
			h.Logger.Error("cast vote", "city_project_id", cityProjectID, "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// ListMyVotes handles GET /api/v1/votes: the caller's votes, used by the UI
// to grey out already-voted projects.
func (h *CityHandler) ListMyVotes(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromCtx(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	votes, err := h.Voting.ListUserVotes(r.Context(), profile.ID)
	if err != nil {
		h.Logger.Error("list votes", "user_id", profile.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, votes)
}
