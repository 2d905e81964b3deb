package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifeconnect/backend/internal/models"
)

type CityProjectRepo struct {
	pool *pgxpool.Pool
}

func NewCityProjectRepo(pool *pgxpool.Pool) *CityProjectRepo {
	return &CityProjectRepo{pool: pool}
}

const cityProjectColumns = `id, fund_id, title, description, category, requested_amount,
	COALESCE(allocated_amount, 0), COALESCE(votes_for, 0), COALESCE(votes_against, 0),
	status, created_at, updated_at`

func scanCityProject(row pgx.Row) (*models.CityProject, error) {
	var p models.CityProject
	err := row.Scan(&p.ID, &p.FundID, &p.Title, &p.Description, &p.Category, &p.RequestedAmount,
		&p.AllocatedAmount, &p.VotesFor, &p.VotesAgainst,
		&p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID returns the city project, or (nil, nil) when no row exists.
func (r *CityProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CityProject, error) {
	p, err := scanCityProject(r.pool.QueryRow(ctx, `
		SELECT `+cityProjectColumns+` FROM city_projects WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *CityProjectRepo) List(ctx context.Context) ([]*models.CityProject, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+cityProjectColumns+` FROM city_projects ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.CityProject
	for rows.Next() {
		p, err := scanCityProject(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateVoteCounts writes the recounted tallies.
func (r *CityProjectRepo) UpdateVoteCounts(ctx context.Context, id uuid.UUID, votesFor, votesAgainst int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE city_projects SET votes_for = $1, votes_against = $2, updated_at = now() WHERE id = $3
	`, votesFor, votesAgainst, id)
	return err
}
