package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifeconnect/backend/internal/models"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileColumns = `id, full_name, email, password_hash,
	COALESCE(skills, '{}'), COALESCE(resources, '{}'),
	COALESCE(location, ''), COALESCE(bio, ''), COALESCE(phone, ''), COALESCE(avatar_url, ''),
	COALESCE(verified, FALSE), created_at, updated_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.PasswordHash,
		&p.Skills, &p.Resources, &p.Location, &p.Bio, &p.Phone, &p.AvatarURL,
		&p.Verified, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID returns the profile, or (nil, nil) when no row exists. Matching
// treats an absent profile as one with empty skills/resources/location/bio.
func (r *ProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	p, err := scanProfile(r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	p, err := scanProfile(r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE email = $1
	`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateDetails overwrites the mutable profile fields. Email, password and the
// verified flag are managed elsewhere.
func (r *ProfileRepo) UpdateDetails(ctx context.Context, p *models.Profile) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET full_name = $2, skills = $3, resources = $4, location = $5, bio = $6, phone = $7, avatar_url = $8, updated_at = now()
		WHERE id = $1
	`, p.ID, p.FullName, p.Skills, p.Resources, p.Location, p.Bio, p.Phone, p.AvatarURL)
	return err
}
