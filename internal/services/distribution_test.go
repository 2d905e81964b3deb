package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lifeconnect/backend/internal/models"
)

const epsilon = 1e-9

// ---------------------------------------------------------------------------
// In-memory mocks. These let us test the real DistributionService logic
// without a database.
// ---------------------------------------------------------------------------

// fakeTx satisfies pgx.Tx for the two methods the service calls; everything
// else panics via the embedded nil interface.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(_ context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type mockDistProjects struct {
	project     *models.Project
	members     []*models.ProjectMember
	lastTx      *fakeTx
	incomeAdded float64
}

func (m *mockDistProjects) Begin(_ context.Context) (pgx.Tx, error) {
	m.lastTx = &fakeTx{}
	return m.lastTx, nil
}

func (m *mockDistProjects) GetByIDTx(_ context.Context, _ pgx.Tx, id uuid.UUID) (*models.Project, error) {
	if m.project == nil || m.project.ID != id {
		return nil, pgx.ErrNoRows
	}
	return m.project, nil
}

func (m *mockDistProjects) ListMembersTx(_ context.Context, _ pgx.Tx, _ uuid.UUID) ([]*models.ProjectMember, error) {
	return m.members, nil
}

func (m *mockDistProjects) AddIncomeTx(_ context.Context, _ pgx.Tx, _ uuid.UUID, amount float64) error {
	m.incomeAdded += amount
	return nil
}

type mockDistFunds struct {
	funds         map[string]*models.CityFund
	contributions map[uuid.UUID]float64
}

func newMockDistFunds() *mockDistFunds {
	return &mockDistFunds{
		funds:         make(map[string]*models.CityFund),
		contributions: make(map[uuid.UUID]float64),
	}
}

func (m *mockDistFunds) UpsertByLocationTx(_ context.Context, _ pgx.Tx, location string) (*models.CityFund, error) {
	if f, ok := m.funds[location]; ok {
		return f, nil
	}
	f := &models.CityFund{ID: uuid.New(), Location: location}
	m.funds[location] = f
	return f, nil
}

func (m *mockDistFunds) AddContributionTx(_ context.Context, _ pgx.Tx, id uuid.UUID, amount float64) error {
	m.contributions[id] += amount
	return nil
}

type mockDistTransactions struct {
	entries []*models.IncomeTransaction
}

func (m *mockDistTransactions) CreateTx(_ context.Context, _ pgx.Tx, t *models.IncomeTransaction) error {
	cp := *t
	m.entries = append(m.entries, &cp)
	return nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func member(pct float64) *models.ProjectMember {
	return &models.ProjectMember{ID: uuid.New(), UserID: uuid.New(), Role: "member", ContributionPercentage: pct}
}

func distFixture(location string, members ...*models.ProjectMember) (*DistributionService, *mockDistProjects, *mockDistFunds, *mockDistTransactions, uuid.UUID) {
	project := &models.Project{
		ID:       uuid.New(),
		Title:    "Community Workshop",
		Location: location,
		Status:   models.ProjectStatusActive,
	}
	projects := &mockDistProjects{project: project, members: members}
	funds := newMockDistFunds()
	txs := &mockDistTransactions{}
	svc := NewDistributionService(projects, funds, txs)
	return svc, projects, funds, txs, project.ID
}

func (m *mockDistTransactions) byType(txType string) []*models.IncomeTransaction {
	var out []*models.IncomeTransaction
	for _, e := range m.entries {
		if e.TransactionType == txType {
			out = append(out, e)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestSharesSumToAmount(t *testing.T) {
	for _, amount := range []float64{1, 0.03, 99.99, 1000, 123456.78} {
		svc, _, _, _, projectID := distFixture("Lagos", member(100))
		dist, err := svc.Distribute(context.Background(), projectID, amount)
		if err != nil {
			t.Fatalf("Distribute(%v): %v", amount, err)
		}
		if diff := math.Abs(dist.Team + dist.City + dist.Platform - amount); diff > epsilon {
			t.Errorf("amount %v: shares sum off by %v", amount, diff)
		}
	}
}

func TestSingleMemberScenario(t *testing.T) {
	// amount=1000, one member at 100%: team 850, city 100, platform 50.
	svc, projects, funds, txs, projectID := distFixture("Lagos", member(100))

	dist, err := svc.Distribute(context.Background(), projectID, 1000)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if math.Abs(dist.Team-850) > epsilon || math.Abs(dist.City-100) > epsilon || math.Abs(dist.Platform-50) > epsilon {
		t.Fatalf("unexpected distribution: %+v", dist)
	}

	income := txs.byType(models.TransactionProjectIncome)
	if len(income) != 1 || math.Abs(income[0].Amount-850) > epsilon {
		t.Fatalf("expected one 850.00 project_income row, got %+v", income)
	}
	if income[0].UserID == nil {
		t.Error("project_income row must carry the member's user id")
	}

	city := txs.byType(models.TransactionCityContribution)
	if len(city) != 1 || math.Abs(city[0].Amount-100) > epsilon {
		t.Fatalf("expected one 100.00 city_contribution row, got %+v", city)
	}
	if city[0].UserID != nil {
		t.Error("city_contribution row must have no user id")
	}

	platform := txs.byType(models.TransactionPlatformFee)
	if len(platform) != 1 || math.Abs(platform[0].Amount-50) > epsilon {
		t.Fatalf("expected one 50.00 platform_fee row, got %+v", platform)
	}

	fund := funds.funds["Lagos"]
	if fund == nil {
		t.Fatal("expected a Lagos fund")
	}
	if got := funds.contributions[fund.ID]; math.Abs(got-100) > epsilon {
		t.Errorf("expected fund contribution 100, got %v", got)
	}
	if projects.incomeAdded != 1000 {
		t.Errorf("project total_income should grow by the full gross amount, got %v", projects.incomeAdded)
	}
	if !projects.lastTx.committed {
		t.Error("distribution transaction was not committed")
	}
}

func TestTwoMemberSplit(t *testing.T) {
	// amount=1000, members at 60%/40%: 510.00 and 340.00.
	a := member(60)
	b := member(40)
	svc, _, _, txs, projectID := distFixture("Lagos", a, b)

	dist, err := svc.Distribute(context.Background(), projectID, 1000)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}

	income := txs.byType(models.TransactionProjectIncome)
	if len(income) != 2 {
		t.Fatalf("expected 2 project_income rows, got %d", len(income))
	}
	shares := map[uuid.UUID]float64{}
	sum := 0.0
	for _, e := range income {
		shares[*e.UserID] = e.Amount
		sum += e.Amount
	}
	if math.Abs(shares[a.UserID]-510) > epsilon {
		t.Errorf("member A share: expected 510, got %v", shares[a.UserID])
	}
	if math.Abs(shares[b.UserID]-340) > epsilon {
		t.Errorf("member B share: expected 340, got %v", shares[b.UserID])
	}
	if math.Abs(sum-dist.Team) > epsilon {
		t.Errorf("member shares sum %v != team share %v", sum, dist.Team)
	}
}

func TestWeightsNeedNotSumTo100(t *testing.T) {
	// 30/30 splits the team pool 50/50 even though the weights sum to 60.
	a := member(30)
	b := member(30)
	svc, _, _, txs, projectID := distFixture("Lagos", a, b)

	if _, err := svc.Distribute(context.Background(), projectID, 1000); err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	for _, e := range txs.byType(models.TransactionProjectIncome) {
		if math.Abs(e.Amount-425) > epsilon {
			t.Errorf("expected each member share 425, got %v", e.Amount)
		}
	}
}

func TestZeroContributionRejected(t *testing.T) {
	svc, projects, funds, txs, projectID := distFixture("Lagos", member(0), member(0))

	_, err := svc.Distribute(context.Background(), projectID, 1000)
	if !errors.Is(err, ErrNoMemberContribution) {
		t.Fatalf("expected ErrNoMemberContribution, got %v", err)
	}
	if len(txs.entries) != 0 {
		t.Error("no transaction rows should be written")
	}
	if len(funds.contributions) != 0 {
		t.Error("no fund contribution should be written")
	}
	if projects.incomeAdded != 0 {
		t.Error("project total_income should be untouched")
	}
	if !projects.lastTx.rolledBack {
		t.Error("transaction should roll back")
	}
}

func TestNoMembersRejected(t *testing.T) {
	svc, _, _, _, projectID := distFixture("Lagos")
	if _, err := svc.Distribute(context.Background(), projectID, 1000); !errors.Is(err, ErrNoMemberContribution) {
		t.Fatalf("expected ErrNoMemberContribution, got %v", err)
	}
}

func TestAmountMustBePositive(t *testing.T) {
	svc, _, _, txs, projectID := distFixture("Lagos", member(100))
	for _, amount := range []float64{0, -1, -1000} {
		if _, err := svc.Distribute(context.Background(), projectID, amount); !errors.Is(err, ErrAmountNotPositive) {
			t.Fatalf("amount %v: expected ErrAmountNotPositive, got %v", amount, err)
		}
	}
	if len(txs.entries) != 0 {
		t.Error("rejected amounts must not write rows")
	}
}

func TestUnknownProjectFails(t *testing.T) {
	svc, _, _, _, _ := distFixture("Lagos", member(100))
	if _, err := svc.Distribute(context.Background(), uuid.New(), 1000); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows, got %v", err)
	}
}

func TestEmptyLocationUsesGlobalFund(t *testing.T) {
	svc, _, funds, _, projectID := distFixture("", member(100))
	if _, err := svc.Distribute(context.Background(), projectID, 1000); err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if funds.funds["Global"] == nil {
		t.Fatalf("expected contribution to the Global fund, funds: %v", funds.funds)
	}
}

func TestRepeatDistributionAccumulates(t *testing.T) {
	// The operation is not idempotent: a second identical call appends more
	// rows and grows the balances again.
	svc, projects, funds, txs, projectID := distFixture("Lagos", member(100))

	for i := 0; i < 2; i++ {
		if _, err := svc.Distribute(context.Background(), projectID, 1000); err != nil {
			t.Fatalf("Distribute run %d: %v", i+1, err)
		}
	}
	if len(txs.entries) != 6 {
		t.Errorf("expected 6 transaction rows after two runs, got %d", len(txs.entries))
	}
	if projects.incomeAdded != 2000 {
		t.Errorf("expected total_income growth 2000, got %v", projects.incomeAdded)
	}
	fund := funds.funds["Lagos"]
	if got := funds.contributions[fund.ID]; math.Abs(got-200) > epsilon {
		t.Errorf("expected fund contribution 200 after two runs, got %v", got)
	}
}

func TestTransactionDescriptions(t *testing.T) {
	svc, _, _, txs, projectID := distFixture("Lagos", member(100))
	if _, err := svc.Distribute(context.Background(), projectID, 1000); err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	want := map[string]string{
		models.TransactionCityContribution: "City fund contribution from project: Community Workshop",
		models.TransactionPlatformFee:      "Platform fee from project: Community Workshop",
		models.TransactionProjectIncome:    "Income from project: Community Workshop",
	}
	for txType, desc := range want {
		rows := txs.byType(txType)
		if len(rows) == 0 {
			t.Fatalf("no %s row", txType)
		}
		if rows[0].Description != desc {
			t.Errorf("%s description: expected %q, got %q", txType, desc, rows[0].Description)
		}
	}
}
