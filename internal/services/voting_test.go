package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lifeconnect/backend/internal/models"
	"github.com/lifeconnect/backend/internal/tally"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type voteKey struct {
	user        uuid.UUID
	cityProject uuid.UUID
}

type mockVoteStore struct {
	votes  map[voteKey]bool
	lastTx *fakeTx
}

func newMockVoteStore() *mockVoteStore {
	return &mockVoteStore{votes: make(map[voteKey]bool)}
}

func (m *mockVoteStore) Begin(_ context.Context) (pgx.Tx, error) {
	m.lastTx = &fakeTx{}
	return m.lastTx, nil
}

// InsertTx mirrors the ON CONFLICT DO NOTHING contract: a duplicate key is a
// no-op reported through inserted=false.
func (m *mockVoteStore) InsertTx(_ context.Context, _ pgx.Tx, userID, cityProjectID uuid.UUID, vote bool) (bool, error) {
	k := voteKey{user: userID, cityProject: cityProjectID}
	if _, ok := m.votes[k]; ok {
		return false, nil
	}
	m.votes[k] = vote
	return true, nil
}

func (m *mockVoteStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Vote, error) {
	var out []*models.Vote
	for k, v := range m.votes {
		if k.user == userID {
			out = append(out, &models.Vote{UserID: k.user, CityProjectID: k.cityProject, Vote: v})
		}
	}
	return out, nil
}

type mockCityProjects struct {
	projects map[uuid.UUID]*models.CityProject
}

func (m *mockCityProjects) GetByID(_ context.Context, id uuid.UUID) (*models.CityProject, error) {
	return m.projects[id], nil
}

type recountRecorder struct {
	enqueued []tally.RecountVotesJobArgs
}

func (r *recountRecorder) insert(_ context.Context, _ pgx.Tx, args tally.RecountVotesJobArgs) error {
	r.enqueued = append(r.enqueued, args)
	return nil
}

func votingFixture(cityProjects ...*models.CityProject) (*VotingService, *mockVoteStore, *recountRecorder) {
	store := newMockVoteStore()
	projects := &mockCityProjects{projects: make(map[uuid.UUID]*models.CityProject)}
	for _, p := range cityProjects {
		projects.projects[p.ID] = p
	}
	recorder := &recountRecorder{}
	return NewVotingService(store, projects, recorder.insert), store, recorder
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCastVote(t *testing.T) {
	cityProject := &models.CityProject{ID: uuid.New(), Title: "New park"}
	svc, store, recorder := votingFixture(cityProject)
	userID := uuid.New()

	if err := svc.CastVote(context.Background(), userID, cityProject.ID, true); err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if !store.lastTx.committed {
		t.Error("vote transaction was not committed")
	}
	if len(recorder.enqueued) != 1 || recorder.enqueued[0].CityProjectID != cityProject.ID {
		t.Fatalf("expected one recount job for the city project, got %+v", recorder.enqueued)
	}

	votes, err := svc.ListUserVotes(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListUserVotes: %v", err)
	}
	if len(votes) != 1 || !votes[0].Vote {
		t.Fatalf("expected one vote in favor, got %+v", votes)
	}
}

func TestCastVoteTwiceRejected(t *testing.T) {
	cityProject := &models.CityProject{ID: uuid.New()}
	svc, _, recorder := votingFixture(cityProject)
	userID := uuid.New()

	if err := svc.CastVote(context.Background(), userID, cityProject.ID, true); err != nil {
		t.Fatalf("first CastVote: %v", err)
	}
	// Voting the other way does not help; one vote per (user, project).
	err := svc.CastVote(context.Background(), userID, cityProject.ID, false)
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
	if len(recorder.enqueued) != 1 {
		t.Errorf("duplicate vote must not enqueue a recount, got %d jobs", len(recorder.enqueued))
	}
}

func TestCastVoteUnknownProject(t *testing.T) {
	svc, store, _ := votingFixture()
	err := svc.CastVote(context.Background(), uuid.New(), uuid.New(), true)
	if !errors.Is(err, ErrCityProjectNotFound) {
		t.Fatalf("expected ErrCityProjectNotFound, got %v", err)
	}
	if len(store.votes) != 0 {
		t.Error("no vote row should be written for a missing project")
	}
}

func TestDifferentUsersCanVote(t *testing.T) {
	cityProject := &models.CityProject{ID: uuid.New()}
	svc, store, _ := votingFixture(cityProject)

	for i := 0; i < 3; i++ {
		if err := svc.CastVote(context.Background(), uuid.New(), cityProject.ID, i%2 == 0); err != nil {
			t.Fatalf("CastVote %d: %v", i, err)
		}
	}
	if len(store.votes) != 3 {
		t.Fatalf("expected 3 vote rows, got %d", len(store.votes))
	}
}
