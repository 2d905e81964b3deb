package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lifeconnect/backend/internal/middleware"
	"github.com/lifeconnect/backend/internal/models"
)

// ProfileRepoForHandler is the subset of the profile repository the handler needs.
type ProfileRepoForHandler interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpdateDetails(ctx context.Context, p *models.Profile) error
}

// ProfileHandler serves GET/PATCH /api/v1/profiles/me.
type ProfileHandler struct {
	Repo   ProfileRepoForHandler
	Logger *slog.Logger
}

func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromCtx(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type updateProfileRequest struct {
	FullName  *string   `json:"full_name"`
	Skills    *[]string `json:"skills"`
	Resources *[]string `json:"resources"`
	Location  *string   `json:"location"`
	Bio       *string   `json:"bio"`
	Phone     *string   `json:"phone"`
	AvatarURL *string   `json:"avatar_url"`
}

// UpdateMe applies a partial update: only fields present in the body change.
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromCtx(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	current, err := h.Repo.GetByID(r.Context(), profile.ID)
	if err != nil {
		h.Logger.Error("load profile", "user_id", profile.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if current == nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}

	if req.FullName != nil {
		current.FullName = *req.FullName
	}
	if req.Skills != nil {
		current.Skills = *req.Skills
	}
	if req.Resources != nil {
		current.Resources = *req.Resources
	}
	if req.Location != nil {
		current.Location = *req.Location
	}
	if req.Bio != nil {
		current.Bio = *req.Bio
	}
	if req.Phone != nil {
		current.Phone = *req.Phone
	}
	if req.AvatarURL != nil {
		current.AvatarURL = *req.AvatarURL
	}

	if err := h.Repo.UpdateDetails(r.Context(), current); err != nil {
		h.Logger.Error("update profile", "user_id", profile.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	writeJSON(w, http.StatusOK, current)
}
