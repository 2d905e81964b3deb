package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lifeconnect/backend/internal/middleware"
	"github.com/lifeconnect/backend/internal/services"
)

// IncomeDistributor abstracts the distribution engine.
type IncomeDistributor interface {
	Distribute(ctx context.Context, projectID uuid.UUID, amount float64) (*services.Distribution, error)
}

// IncomeHandler serves POST /api/v1/projects/{id}/income.
type IncomeHandler struct {
	Distributor IncomeDistributor
	Logger      *slog.Logger
}

type distributeRequest struct {
	Amount float64 `json:"amount"`
}

type distributeResponse struct {
	Success      bool                   `json:"success"`
	Distribution *services.Distribution `json:"distribution"`
}

func (h *IncomeHandler) ProcessIncome(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromCtx(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	projectID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var req distributeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	dist, err := h.Distributor.Distribute(r.Context(), projectID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAmountNotPositive):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNoMemberContribution):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, pgx.ErrNoRows):
			writeError(w, http.StatusNotFound, "project not found")
		default:
			h.Logger.Error("process income", "project_id", projectID, "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	h.Logger.Info("processed income", "project_id", projectID, "amount", req.Amount,
		"team", dist.Team, "city", dist.City, "platform", dist.Platform)
	writeJSON(w, http.StatusOK, distributeResponse{Success: true, Distribution: dist})
}
