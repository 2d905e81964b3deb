package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifeconnect/backend/internal/models"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new profile and returns it.
func (r *Repository) Create(ctx context.Context, email, passwordHash, fullName string) (*models.Profile, error) {
	p := &models.Profile{
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		Skills:       []string{},
		Resources:    []string{},
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (email, password_hash, full_name, skills, resources, verified)
		VALUES ($1, $2, $3, '{}', '{}', FALSE)
		RETURNING id, created_at, updated_at
	`, email, passwordHash, fullName)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByEmail returns the profile and password hash for login. Returns nil if not found.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.Profile, string, error) {
	var p models.Profile
	var passwordHash string
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, full_name, password_hash FROM profiles WHERE email = $1
	`, email)
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &passwordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &p, passwordHash, nil
}
