package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifeconnect/backend/internal/models"
)

type FundRepo struct {
	pool *pgxpool.Pool
}

func NewFundRepo(pool *pgxpool.Pool) *FundRepo {
	return &FundRepo{pool: pool}
}

const fundColumns = `id, location, total_amount, allocated_amount, available_amount, updated_at`

func scanFund(row pgx.Row) (*models.CityFund, error) {
	var f models.CityFund
	err := row.Scan(&f.ID, &f.Location, &f.TotalAmount, &f.AllocatedAmount, &f.AvailableAmount, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// UpsertByLocationTx returns the fund for the location, creating it with zero
// balances when absent. The ON CONFLICT no-op update makes the insert-or-get
// atomic, so two first contributions to a new location cannot race into
// duplicate funds.
func (r *FundRepo) UpsertByLocationTx(ctx context.Context, tx pgx.Tx, location string) (*models.CityFund, error) {
	return scanFund(tx.QueryRow(ctx, `
		INSERT INTO city_development_funds (location, total_amount, allocated_amount, available_amount)
		VALUES ($1, 0, 0, 0)
		ON CONFLICT (location) DO UPDATE SET location = EXCLUDED.location
		RETURNING `+fundColumns+`
	`, location))
}

// AddContributionTx increments the fund's total and available balances in
// place.
func (r *FundRepo) AddContributionTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount float64) error {
	_, err := tx.Exec(ctx, `
		UPDATE city_development_funds
		SET total_amount = total_amount + $1, available_amount = available_amount + $1, updated_at = now()
		WHERE id = $2
	`, amount, id)
	return err
}

func (r *FundRepo) List(ctx context.Context) ([]*models.CityFund, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+fundColumns+` FROM city_development_funds ORDER BY total_amount DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.CityFund
	for rows.Next() {
		f, err := scanFund(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
