package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/domain/project"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type postgresProjectRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProjectRepo(db *pgxpool.Pool, logger logger.Logger) project.Repository {
	return &postgresProjectRepo{db: db, logger: logger}
}

const projectColumns = `id, user_id, title, description, sector, category, skills_used, technologies, outcomes,
	impact, metrics, start_date, end_date, status, team_size, role, is_public, repository_url, live_url,
	created_at, updated_at`

func scanProject(row pgx.Row, l logger.Logger) (*project.Project, error) {
	p := &project.Project{}
	var metricsBytes []byte

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Description,
		&p.Sector,
		&p.Category,
		&p.SkillsUsed,
		&p.Technologies,
		&p.Outcomes,
		&p.Impact,
		&metricsBytes,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.TeamSize,
		&p.Role,
		&p.IsPublic,
		&p.RepositoryURL,
		&p.LiveURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("project", "")
		}
		return nil, apperror.NewInternal("failed to scan project row", err)
	}

	if err := json.Unmarshal(metricsBytes, &p.Metrics); err != nil {
		l.Warn("Failed to unmarshal project metrics", zap.String("project_id", p.ID.String()), zap.Error(err))
		p.Metrics = map[string]any{}
	}
	p.SkillsUsed = nonNil(p.SkillsUsed)
	p.Technologies = nonNil(p.Technologies)

	return p, nil
}

func scanProjects(rows pgx.Rows, l logger.Logger) ([]*project.Project, error) {
	defer rows.Close()
	projects := make([]*project.Project, 0)

	for rows.Next() {
		p, err := scanProject(rows, l)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating project rows", err)
	}
	return projects, nil
}

func (r *postgresProjectRepo) Save(ctx context.Context, p *project.Project) error {
	metricsBytes, err := json.Marshal(p.Metrics)
	if err != nil {
		return apperror.NewInternal("failed to marshal project metrics", err)
	}

	query := `
		INSERT INTO projects (id, user_id, title, description, sector, category, skills_used, technologies, outcomes,
		                      impact, metrics, start_date, end_date, status, team_size, role, is_public,
		                      repository_url, live_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`
	_, err = r.db.Exec(ctx, query,
		p.ID, p.UserID, p.Title, p.Description, p.Sector, p.Category, nonNil(p.SkillsUsed), nonNil(p.Technologies),
		p.Outcomes, p.Impact, metricsBytes, p.StartDate, p.EndDate, p.Status, p.TeamSize, p.Role, p.IsPublic,
		p.RepositoryURL, p.LiveURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save project", err)
	}
	return nil
}

func (r *postgresProjectRepo) Update(ctx context.Context, p *project.Project) error {
	metricsBytes, err := json.Marshal(p.Metrics)
	if err != nil {
		return apperror.NewInternal("failed to marshal project metrics for update", err)
	}

	query := `
		UPDATE projects SET
			title = $3, description = $4, sector = $5, category = $6, skills_used = $7, technologies = $8,
			outcomes = $9, impact = $10, metrics = $11, start_date = $12, end_date = $13, status = $14,
			team_size = $15, role = $16, is_public = $17, repository_url = $18, live_url = $19, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	cmdTag, err := r.db.Exec(ctx, query,
		p.ID, p.UserID, p.Title, p.Description, p.Sector, p.Category, nonNil(p.SkillsUsed), nonNil(p.Technologies),
		p.Outcomes, p.Impact, metricsBytes, p.StartDate, p.EndDate, p.Status,
		p.TeamSize, p.Role, p.IsPublic, p.RepositoryURL, p.LiveURL,
	)
	if err != nil {
		return apperror.NewInternal("failed to update project", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("project", p.ID.String())
	}
	return nil
}

func (r *postgresProjectRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperror.NewInternal("failed to delete project", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("project", id.String())
	}
	return nil
}

func (r *postgresProjectRepo) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*project.Project, error) {
	row := r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	p, err := scanProject(row, r.logger)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("project", id.String())
	}
	return p, err
}

func (r *postgresProjectRepo) List(ctx context.Context, f project.Filter) ([]*project.Project, error) {
	limit, offset := page(f.Limit, f.Offset)
	builder := psql.Select(projectColumns).
		From("projects").
		Where(sq.Eq{"user_id": f.UserID}).
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(offset)

	if f.Sector != "" {
		builder = builder.Where(sq.Eq{"sector": f.Sector})
	}
	if f.Category != "" {
		builder = builder.Where(sq.Expr("LOWER(category) = LOWER(?)", f.Category))
	}
	if f.Status != "" {
		builder = builder.Where(sq.Eq{"status": f.Status})
	}
	if f.Search != "" {
		builder = builder.Where(sq.Or{
			containsFold("title", f.Search),
			containsFold("description", f.Search),
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list projects query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query projects", err)
	}
	return scanProjects(rows, r.logger)
}
