package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lifeconnect/backend/internal/models"
)

// Distribution split: 85% team pool, 10% city development fund, 5% platform.
const (
	teamShareRate     = 0.85
	cityShareRate     = 0.10
	platformShareRate = 0.05
)

// defaultFundLocation keys the city fund for projects with no location.
const defaultFundLocation = "Global"

var (
	// ErrAmountNotPositive is returned when the gross amount is zero or negative.
	ErrAmountNotPositive = errors.New("amount must be positive")
	// ErrNoMemberContribution is returned when the project's members carry a
	// zero total contribution percentage (or the project has no members), so
	// the team pool has no denominator to split by.
	ErrNoMemberContribution = errors.New("project members have no recorded contribution")
)

// DistributionProjectRepo is the project interface used by distribution. All
// methods run inside the distribution transaction.
type DistributionProjectRepo interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	GetByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Project, error)
	ListMembersTx(ctx context.Context, tx pgx.Tx, projectID uuid.UUID) ([]*models.ProjectMember, error)
	AddIncomeTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount float64) error
}

// DistributionFundRepo is the city fund interface used by distribution.
type DistributionFundRepo interface {
	UpsertByLocationTx(ctx context.Context, tx pgx.Tx, location string) (*models.CityFund, error)
	AddContributionTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount float64) error
}

// DistributionTransactionRepo appends income transaction rows.
type DistributionTransactionRepo interface {
	CreateTx(ctx context.Context, tx pgx.Tx, t *models.IncomeTransaction) error
}

// Distribution is the top-level split of one income event.
type Distribution struct {
	Team     float64 `json:"team"`
	City     float64 `json:"city"`
	Platform float64 `json:"platform"`
}

// DistributionService partitions a project's gross income into the team pool,
// the location's city fund contribution, and the platform fee, and persists
// one transaction row per recipient. The whole write sequence commits as a
// single transaction.
type DistributionService struct {
	ProjectRepo     DistributionProjectRepo
	FundRepo        DistributionFundRepo
	TransactionRepo DistributionTransactionRepo
}

// NewDistributionService returns a new DistributionService.
func NewDistributionService(projectRepo DistributionProjectRepo, fundRepo DistributionFundRepo, txRepo DistributionTransactionRepo) *DistributionService {
	return &DistributionService{ProjectRepo: projectRepo, FundRepo: fundRepo, TransactionRepo: txRepo}
}

// Distribute splits amount across the project's team members, the city fund
// keyed by the project's location, and the platform, then increments the
// project's total income by the full gross amount. Repeating a call with the
// same inputs appends new rows and increments the balances again; the
// operation is deliberately not idempotent.
func (s *DistributionService) Distribute(ctx context.Context, projectID uuid.UUID, amount float64) (*Distribution, error) {
	if amount <= 0 {
		return nil, ErrAmountNotPositive
	}

	tx, err := s.ProjectRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	project, err := s.ProjectRepo.GetByIDTx(ctx, tx, projectID)
	if err != nil {
		return nil, err
	}
	members, err := s.ProjectRepo.ListMembersTx(ctx, tx, projectID)
	if err != nil {
		return nil, err
	}
	totalContribution := 0.0
	for _, m := range members {
		totalContribution += m.ContributionPercentage
	}
	if totalContribution <= 0 {
		return nil, ErrNoMemberContribution
	}

	dist := &Distribution{
		Team:     amount * teamShareRate,
		City:     amount * cityShareRate,
		Platform: amount * platformShareRate,
	}

	location := project.Location
	if location == "" {
		location = defaultFundLocation
	}
	fund, err := s.FundRepo.UpsertByLocationTx(ctx, tx, location)
	if err != nil {
		return nil, err
	}
	if err := s.FundRepo.AddContributionTx(ctx, tx, fund.ID, dist.City); err != nil {
		return nil, err
	}

	if err := s.TransactionRepo.CreateTx(ctx, tx, &models.IncomeTransaction{
		ProjectID:       projectID,
		Amount:          dist.City,
		TransactionType: models.TransactionCityContribution,
		Description:     fmt.Sprintf("City fund contribution from project: %s", project.Title),
	}); err != nil {
		return nil, err
	}
	if err := s.TransactionRepo.CreateTx(ctx, tx, &models.IncomeTransaction{
		ProjectID:       projectID,
		Amount:          dist.Platform,
		TransactionType: models.TransactionPlatformFee,
		Description:     fmt.Sprintf("Platform fee from project: %s", project.Title),
	}); err != nil {
		return nil, err
	}

	for _, member := range members {
		share := dist.Team * (member.ContributionPercentage / totalContribution)
		userID := member.UserID
		if err := s.TransactionRepo.CreateTx(ctx, tx, &models.IncomeTransaction{
			ProjectID:       projectID,
			UserID:          &userID,
			Amount:          share,
			TransactionType: models.TransactionProjectIncome,
			Description:     fmt.Sprintf("Income from project: %s", project.Title),
		}); err != nil {
			return nil, err
		}
	}

	if err := s.ProjectRepo.AddIncomeTx(ctx, tx, projectID, amount); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return dist, nil
}
