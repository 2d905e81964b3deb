package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lifeconnect/backend/internal/models"
	"github.com/lifeconnect/backend/internal/tally"
)

var (
	// ErrAlreadyVoted is returned when the user has a vote on the city project.
	ErrAlreadyVoted = errors.New("already voted on this project")
	// ErrCityProjectNotFound is returned when the city project does not exist.
	ErrCityProjectNotFound = errors.New("city project not found")
)

// VotingVoteRepo is the vote store interface used by voting.
type VotingVoteRepo interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	InsertTx(ctx context.Context, tx pgx.Tx, userID, cityProjectID uuid.UUID, vote bool) (inserted bool, err error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Vote, error)
}

// VotingCityProjectRepo resolves vote targets.
type VotingCityProjectRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.CityProject, error)
}

// InsertRecountVotesTxFunc enqueues a recount job within the given
// transaction. Provided by main using river.Client.InsertTx.
type InsertRecountVotesTxFunc func(ctx context.Context, tx pgx.Tx, args tally.RecountVotesJobArgs) error

// VotingService records votes on city projects. The vote insert and the
// recount job enqueue commit together, so the counters converge to the vote
// rows even if the process dies right after the commit.
type VotingService struct {
	votes         VotingVoteRepo
	cityProjects  VotingCityProjectRepo
	insertRecount InsertRecountVotesTxFunc
}

// NewVotingService creates a voting service. insertRecount is typically a
// closure over river.Client.InsertTx.
func NewVotingService(votes VotingVoteRepo, cityProjects VotingCityProjectRepo, insertRecount InsertRecountVotesTxFunc) *VotingService {
	return &VotingService{votes: votes, cityProjects: cityProjects, insertRecount: insertRecount}
}

// CastVote records one vote per (user, city project). A second vote by the
// same user returns ErrAlreadyVoted.
func (s *VotingService) CastVote(ctx context.Context, userID, cityProjectID uuid.UUID, vote bool) error {
	project, err := s.cityProjects.GetByID(ctx, cityProjectID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrCityProjectNotFound
	}

	tx, err := s.votes.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	inserted, err := s.votes.InsertTx(ctx, tx, userID, cityProjectID, vote)
	if err != nil {
		return err
	}
	if !inserted {
		return ErrAlreadyVoted
	}
	if err := s.insertRecount(ctx, tx, tally.RecountVotesJobArgs{CityProjectID: cityProjectID}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListUserVotes returns the caller's votes, newest first.
func (s *VotingService) ListUserVotes(ctx context.Context, userID uuid.UUID) ([]*models.Vote, error) {
	return s.votes.ListByUser(ctx, userID)
}
