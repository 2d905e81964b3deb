package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifeconnect/backend/internal/models"
)

type TransactionRepo struct {
	pool *pgxpool.Pool
}

func NewTransactionRepo(pool *pgxpool.Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// CreateTx appends one income transaction inside the caller's transaction.
func (r *TransactionRepo) CreateTx(ctx context.Context, tx pgx.Tx, t *models.IncomeTransaction) error {
	return tx.QueryRow(ctx, `
		INSERT INTO income_transactions (project_id, user_id, amount, transaction_type, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, t.ProjectID, t.UserID, t.Amount, t.TransactionType, t.Description).Scan(&t.ID, &t.CreatedAt)
}

func (r *TransactionRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.IncomeTransaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, user_id, amount, transaction_type, COALESCE(description, ''), created_at
		FROM income_transactions WHERE project_id = $1 ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

func (r *TransactionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.IncomeTransaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, user_id, amount, transaction_type, COALESCE(description, ''), created_at
		FROM income_transactions WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]*models.IncomeTransaction, error) {
	defer rows.Close()
	var list []*models.IncomeTransaction
	for rows.Next() {
		var t models.IncomeTransaction
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.UserID, &t.Amount, &t.TransactionType, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
