package tally

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

// RecountVotesJobArgs asks the worker to rebuild one city project's vote
// counters from the votes table.
type RecountVotesJobArgs struct {
	CityProjectID uuid.UUID `json:"city_project_id"`
}

func (RecountVotesJobArgs) Kind() string { return "recount_votes" }

// VoteCounter tallies the vote rows for a city project. The vote rows are the
// source of truth; votes_for/votes_against on the city project are derived
// from them here.
type VoteCounter interface {
	CountVotes(ctx context.Context, cityProjectID uuid.UUID) (votesFor, votesAgainst int, err error)
}

// TallyWriter stores the recounted tallies on the city project.
type TallyWriter interface {
	UpdateVoteCounts(ctx context.Context, cityProjectID uuid.UUID, votesFor, votesAgainst int) error
}

type RecountVotesWorker struct {
	river.WorkerDefaults[RecountVotesJobArgs]
	votes    VoteCounter
	projects TallyWriter
}

func NewRecountVotesWorker(votes VoteCounter, projects TallyWriter) *RecountVotesWorker {
	return &RecountVotesWorker{votes: votes, projects: projects}
}

func (w *RecountVotesWorker) Work(ctx context.Context, job *river.Job[RecountVotesJobArgs]) error {
	id := job.Args.CityProjectID
	votesFor, votesAgainst, err := w.votes.CountVotes(ctx, id)
	if err != nil {
		return fmt.Errorf("count votes for city project %s: %w", id, err)
	}
	if err := w.projects.UpdateVoteCounts(ctx, id, votesFor, votesAgainst); err != nil {
		return fmt.Errorf("update vote counts for city project %s: %w", id, err)
	}
	return nil
}
