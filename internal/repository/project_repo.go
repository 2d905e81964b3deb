package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifeconnect/backend/internal/models"
)

type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

func (r *ProjectRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

const projectColumns = `id, creator_id, title, description, category, COALESCE(location, ''),
	COALESCE(required_skills, '{}'), COALESCE(required_resources, '{}'),
	COALESCE(estimated_budget, 0), COALESCE(actual_budget, 0), status,
	COALESCE(total_income, 0), start_date, end_date, created_at, updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.CreatorID, &p.Title, &p.Description, &p.Category, &p.Location,
		&p.RequiredSkills, &p.RequiredResources,
		&p.EstimatedBudget, &p.ActualBudget, &p.Status,
		&p.TotalIncome, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProjects(rows pgx.Rows) ([]*models.Project, error) {
	defer rows.Close()
	var list []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProjectRepo) Create(ctx context.Context, p *models.Project) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO projects (creator_id, title, description, category, location, required_skills, required_resources, estimated_budget, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, p.CreatorID, p.Title, p.Description, p.Category, p.Location, p.RequiredSkills, p.RequiredResources, p.EstimatedBudget, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return scanProject(r.pool.QueryRow(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE id = $1
	`, id))
}

// GetByIDTx reads the project inside the caller's transaction. Used by income
// distribution so the project row it reads belongs to the same snapshot as
// the rows it writes.
func (r *ProjectRepo) GetByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Project, error) {
	return scanProject(tx.QueryRow(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE id = $1
	`, id))
}

// ListActiveExcluding returns active projects not created by the given user,
// ordered by id so equal-score matches rank deterministically.
func (r *ProjectRepo) ListActiveExcluding(ctx context.Context, creatorID uuid.UUID) ([]*models.Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+projectColumns+` FROM projects
		WHERE status = $1 AND creator_id <> $2
		ORDER BY id
	`, models.ProjectStatusActive, creatorID)
	if err != nil {
		return nil, err
	}
	return scanProjects(rows)
}

func (r *ProjectRepo) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*models.Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE creator_id = $1 ORDER BY created_at DESC
	`, creatorID)
	if err != nil {
		return nil, err
	}
	return scanProjects(rows)
}

func (r *ProjectRepo) ListActive(ctx context.Context) ([]*models.Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE status = $1 ORDER BY created_at DESC
	`, models.ProjectStatusActive)
	if err != nil {
		return nil, err
	}
	return scanProjects(rows)
}

// AddIncomeTx increments total_income in place so concurrent distributions
// never lose an update.
func (r *ProjectRepo) AddIncomeTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount float64) error {
	_, err := tx.Exec(ctx, `
		UPDATE projects SET total_income = COALESCE(total_income, 0) + $1, updated_at = now() WHERE id = $2
	`, amount, id)
	return err
}

func (r *ProjectRepo) AddMember(ctx context.Context, m *models.ProjectMember) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO project_members (project_id, user_id, role, contribution_percentage)
		VALUES ($1, $2, $3, $4)
		RETURNING id, joined_at
	`, m.ProjectID, m.UserID, m.Role, m.ContributionPercentage).Scan(&m.ID, &m.JoinedAt)
}

func (r *ProjectRepo) ListMembers(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMember, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, user_id, role, COALESCE(contribution_percentage, 0), joined_at
		FROM project_members WHERE project_id = $1 ORDER BY joined_at
	`, projectID)
	if err != nil {
		return nil, err
	}
	return scanMembers(rows)
}

func (r *ProjectRepo) ListMembersTx(ctx context.Context, tx pgx.Tx, projectID uuid.UUID) ([]*models.ProjectMember, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, project_id, user_id, role, COALESCE(contribution_percentage, 0), joined_at
		FROM project_members WHERE project_id = $1 ORDER BY joined_at
	`, projectID)
	if err != nil {
		return nil, err
	}
	return scanMembers(rows)
}

func scanMembers(rows pgx.Rows) ([]*models.ProjectMember, error) {
	defer rows.Close()
	var list []*models.ProjectMember
	for rows.Next() {
		var m models.ProjectMember
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.ContributionPercentage, &m.JoinedAt); err != nil {
			return nil, err
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
