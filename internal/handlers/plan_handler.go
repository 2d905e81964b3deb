package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lifeconnect/backend/internal/middleware"
	"github.com/lifeconnect/backend/internal/models"
	"github.com/lifeconnect/backend/internal/planner"
)

// PlanProjectRepo resolves the project a plan is requested for.
type PlanProjectRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
}

// PlanGenerator abstracts the text-generation collaborator.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, project *models.Project) (*planner.Plan, error)
}

// PlanHandler serves POST /api/v1/projects/{id}/plan.
type PlanHandler struct {
	ProjectRepo PlanProjectRepo
	Planner     PlanGenerator
	Logger      *slog.Logger
}

func (h *PlanHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
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
	project, err := h.ProjectRepo.GetByID(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		h.Logger.Error("load project for plan", "project_id", projectID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	plan, err := h.Planner.GeneratePlan(r.Context(), project)
	if err != nil {
		h.Logger.Error("generate plan", "project_id", projectID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
