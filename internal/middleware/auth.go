package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/lifeconnect/backend/internal/auth"
	"github.com/lifeconnect/backend/internal/models"
)

type contextKey string

const ctxProfileKey contextKey = "profile"

// ProfileLookup resolves the authenticated user's profile row. GetByID
// returns (nil, nil) when no profile exists; the request still proceeds with
// only the user id set, since matching treats a missing profile as empty.
type ProfileLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// JWTAuth authenticates requests by validating the Bearer token and loading
// the caller's profile into the request context.
func JWTAuth(authSvc auth.Service, profiles ProfileLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractBearer(r)
			if raw == "" {
				http.Error(w, `{"error":"missing or malformed Authorization header"}`, http.StatusUnauthorized)
				return
			}
			userID, err := authSvc.ValidateToken(r.Context(), raw)
			if err != nil || userID == uuid.Nil {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}

			profile, err := profiles.GetByID(r.Context(), userID)
			if err != nil {
				http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
				return
			}
			if profile == nil {
				profile = &models.Profile{ID: userID}
			}
			next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), profile)))
		})
	}
}

// ProfileFromCtx returns the authenticated profile or nil.
func ProfileFromCtx(ctx context.Context) *models.Profile {
	p, _ := ctx.Value(ctxProfileKey).(*models.Profile)
	return p
}

// WithProfile returns a context carrying the given profile.
func WithProfile(ctx context.Context, p *models.Profile) context.Context {
	return context.WithValue(ctx, ctxProfileKey, p)
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
