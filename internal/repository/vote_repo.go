package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifeconnect/backend/internal/models"
)

type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

func (r *VoteRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// InsertTx records a vote. The (user_id, city_project_id) uniqueness
// constraint makes double voting a DO NOTHING no-op instead of a
// read-then-check race; inserted reports whether the vote was new.
func (r *VoteRepo) InsertTx(ctx context.Context, tx pgx.Tx, userID, cityProjectID uuid.UUID, vote bool) (inserted bool, err error) {
	result, err := tx.Exec(ctx, `
		INSERT INTO votes (user_id, city_project_id, vote)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, city_project_id) DO NOTHING
	`, userID, cityProjectID, vote)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *VoteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Vote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, city_project_id, vote, created_at
		FROM votes WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.UserID, &v.CityProjectID, &v.Vote, &v.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// CountVotes tallies the vote rows for a city project.
func (r *VoteRepo) CountVotes(ctx context.Context, cityProjectID uuid.UUID) (votesFor, votesAgainst int, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE vote), COUNT(*) FILTER (WHERE NOT vote)
		FROM votes WHERE city_project_id = $1
	`, cityProjectID).Scan(&votesFor, &votesAgainst)
	return votesFor, votesAgainst, err
}
