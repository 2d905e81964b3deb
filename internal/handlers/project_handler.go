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
)

// ProjectRepoForHandler is the subset of the project repository the handler needs.
type ProjectRepoForHandler interface {
	Create(ctx context.Context, p *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListActive(ctx context.Context) ([]*models.Project, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*models.Project, error)
	AddMember(ctx context.Context, m *models.ProjectMember) error
	ListMembers(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMember, error)
}

// TransactionLister reads income transactions for projects and users.
type TransactionLister interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.IncomeTransaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.IncomeTransaction, error)
}

// ProjectHandler serves the /api/v1/projects endpoints.
type ProjectHandler struct {
	Repo         ProjectRepoForHandler
	Transactions TransactionLister
	Logger       *slog.Logger
}

type createProjectRequest struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	Location          string   `json:"location"`
	RequiredSkills    []string `json:"required_skills"`
	RequiredResources []string `json:"required_resources"`
	EstimatedBudget   float64  `json:"estimated_budget"`
}

// CreateProject handles POST /api/v1/projects. New projects start in planning.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromCtx(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Title == "" || req.Description == "" || req.Category == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	project := &models.Project{
		CreatorID:         profile.ID,
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Location:          req.Location,
		RequiredSkills:    req.RequiredSkills,
		RequiredResources: req.RequiredResources,
		EstimatedBudget:   req.EstimatedBudget,
		Status:            models.ProjectStatusPlanning,
	}
	if err := h.Repo.Create(r.Context(), project); err != nil {
		h.Logger.Error("create project", "error", err)
		writeError(w, http.StatusInternalServerError, "create project failed")
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// ListProjects handles GET /api/v1/projects. With ?mine=true it returns the
// caller's projects (any status); otherwise the active ones.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("mine") == "true" {
		profile := middleware.ProfileFromCtx(r.Context())
		if profile == nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		list, err := h.Repo.ListByCreator(r.Context(), profile.ID)
		if err != nil {
			h.Logger.Error("list own projects", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}
	list, err := h.Repo.ListActive(r.Context())
	if err != nil {
		h.Logger.Error("list active projects", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	project, err := h.Repo.GetByID(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		h.Logger.Error("get project", "project_id", projectID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

type addMemberRequest struct {
	UserID                 string  `json:"user_id"`
	Role                   string  `json:"role"`
	ContributionPercentage float64 `json:"contribution_percentage"`
}

// AddMember handles POST /api/v1/projects/{id}/members. Only the project
// creator can add members. Contribution percentages are weights, not
// validated to sum to 100.
func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
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
	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user_id")
		return
	}
	if req.Role == "" {
		writeError(w, http.StatusBadRequest, "missing role")
		return
	}
	if req.ContributionPercentage < 0 || req.ContributionPercentage > 100 {
		writeError(w, http.StatusBadRequest, "contribution_percentage must be between 0 and 100")
		return
	}

	project, err := h.Repo.GetByID(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		h.Logger.Error("get project", "project_id", projectID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if project.CreatorID != profile.ID {
		writeError(w, http.StatusForbidden, "only the project creator can add members")
		return
	}

	member := &models.ProjectMember{
		ProjectID:              projectID,
		UserID:                 userID,
		Role:                   req.Role,
		ContributionPercentage: req.ContributionPercentage,
	}
	if err := h.Repo.AddMember(r.Context(), member); err != nil {
		h.Logger.Error("add member", "project_id", projectID, "error", err)
		writeError(w, http.StatusInternalServerError, "add member failed")
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (h *ProjectHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	members, err := h.Repo.ListMembers(r.Context(), projectID)
	if err != nil {
		h.Logger.Error("list members", "project_id", projectID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// ListProjectTransactions handles GET /api/v1/projects/{id}/transactions.
func (h *ProjectHandler) ListProjectTransactions(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	list, err := h.Transactions.ListByProject(r.Context(), projectID)
	if err != nil {
		h.Logger.Error("list project transactions", "project_id", projectID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ListUserTransactions handles GET /api/v1/transactions: the caller's income rows.
func (h *ProjectHandler) ListUserTransactions(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromCtx(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	list, err := h.Transactions.ListByUser(r.Context(), profile.ID)
	if err != nil {
		h.Logger.Error("list user transactions", "user_id", profile.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}
