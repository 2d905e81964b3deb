package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/lifeconnect/backend/internal/middleware"
	"github.com/lifeconnect/backend/internal/models"
	"github.com/lifeconnect/backend/internal/services"
)

type mockVoteCaster struct {
	castErr error

	gotUserID uuid.UUID
	gotCityID uuid.UUID
	gotVote   bool
	casts     int
}

func (m *mockVoteCaster) CastVote(_ context.Context, userID, cityProjectID uuid.UUID, vote bool) error {
	m.casts++
	m.gotUserID = userID
	m.gotCityID = cityProjectID
	m.gotVote = vote
	return m.castErr
}

func (m *mockVoteCaster) ListUserVotes(_ context.Context, _ uuid.UUID) ([]*models.Vote, error) {
	return nil, nil
}

func voteRequest(cityProjectID string, userID uuid.UUID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/city-projects/"+cityProjectID+"/vote", strings.NewReader(body))
	req.SetPathValue("id", cityProjectID)
	ctx := middleware.WithProfile(req.Context(), &models.Profile{ID: userID})
	return req.WithContext(ctx)
}

func TestCastVoteHandler(t *testing.T) {
	userID := uuid.New()
	cityProjectID := uuid.New()
	m := &mockVoteCaster{}
	h := &CityHandler{Voting: m, Logger: discardLogger()}

	rec := httptest.NewRecorder()
	h.CastVote(rec, voteRequest(cityProjectID.String(), userID, `{"vote": true}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if m.gotUserID != userID || m.gotCityID != cityProjectID || !m.gotVote {
		t.Errorf("vote recorded with wrong arguments: user=%s city=%s vote=%t",
			m.gotUserID, m.gotCityID, m.gotVote)
	}
}

func TestCastVoteHandlerErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unknown city project", services.ErrCityProjectNotFound, http.StatusNotFound},
		{"duplicate vote", services.ErrAlreadyVoted, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := &CityHandler{Voting: &mockVoteCaster{castErr: tc.err}, Logger: discardLogger()}
			rec := httptest.NewRecorder()
			h.CastVote(rec, voteRequest(uuid.NewString(), uuid.New(), `{"vote": false}`))
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d: %s", tc.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCastVoteHandlerBadInput(t *testing.T) {
	m := &mockVoteCaster{}
	h := &CityHandler{Voting: m, Logger: discardLogger()}

	t.Run("invalid id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.CastVote(rec, voteRequest("nope", uuid.New(), `{"vote": true}`))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.CastVote(rec, voteRequest(uuid.NewString(), uuid.New(), `{"vote"`))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	if m.casts != 0 {
		t.Errorf("expected no votes cast on bad input, got %d", m.casts)
	}
}
