package tally

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

type stubCounter struct {
	votesFor     int
	votesAgainst int
	err          error
}

func (s *stubCounter) CountVotes(_ context.Context, _ uuid.UUID) (int, int, error) {
	return s.votesFor, s.votesAgainst, s.err
}

type stubWriter struct {
	updatedID    uuid.UUID
	votesFor     int
	votesAgainst int
	err          error
}

func (s *stubWriter) UpdateVoteCounts(_ context.Context, id uuid.UUID, votesFor, votesAgainst int) error {
	s.updatedID = id
	s.votesFor = votesFor
	s.votesAgainst = votesAgainst
	return s.err
}

func TestRecountVotesWork(t *testing.T) {
	counter := &stubCounter{votesFor: 7, votesAgainst: 3}
	writer := &stubWriter{}
	worker := NewRecountVotesWorker(counter, writer)

	id := uuid.New()
	job := &river.Job[RecountVotesJobArgs]{Args: RecountVotesJobArgs{CityProjectID: id}}
	if err := worker.Work(context.Background(), job); err != nil {
		t.Fatalf("Work: %v", err)
	}
	if writer.updatedID != id {
		t.Errorf("expected update for %s, got %s", id, writer.updatedID)
	}
	if writer.votesFor != 7 || writer.votesAgainst != 3 {
		t.Errorf("expected tallies 7/3, got %d/%d", writer.votesFor, writer.votesAgainst)
	}
}

func TestRecountVotesCountError(t *testing.T) {
	counter := &stubCounter{err: errors.New("boom")}
	writer := &stubWriter{}
	worker := NewRecountVotesWorker(counter, writer)

	job := &river.Job[RecountVotesJobArgs]{Args: RecountVotesJobArgs{CityProjectID: uuid.New()}}
	if err := worker.Work(context.Background(), job); err == nil {
		t.Fatal("expected error so River retries the job")
	}
	if writer.updatedID != uuid.Nil {
		t.Error("no update should happen when counting fails")
	}
}
