package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/skillfolio/internal/domain/skill"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type postgresSkillRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSkillRepo(db *pgxpool.Pool, logger logger.Logger) skill.Repository {
	return &postgresSkillRepo{db: db, logger: logger}
}

const skillColumns = `id, user_id, name, category, sector, proficiency_level, verified, verification_source,
	tags, description, years_of_experience, last_used, endorsements, created_at, updated_at`

func scanSkill(row pgx.Row) (*skill.Skill, error) {
	s := &skill.Skill{}
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Name,
		&s.Category,
		&s.Sector,
		&s.ProficiencyLevel,
		&s.Verified,
		&s.VerificationSource,
		&s.Tags,
		&s.Description,
		&s.YearsOfExperience,
		&s.LastUsed,
		&s.Endorsements,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("skill", "")
		}
		return nil, apperror.NewInternal("failed to scan skill row", err)
	}
	s.Tags = nonNil(s.Tags)
	return s, nil
}

func scanSkills(rows pgx.Rows) ([]*skill.Skill, error) {
	defer rows.Close()
	skills := make([]*skill.Skill, 0)

	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating skill rows", err)
	}
	return skills, nil
}

func (r *postgresSkillRepo) Save(ctx context.Context, s *skill.Skill) error {
	query := `
		INSERT INTO skills (id, user_id, name, category, sector, proficiency_level, verified, verification_source,
		                    tags, description, years_of_experience, last_used, endorsements, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.UserID, s.Name, s.Category, s.Sector, s.ProficiencyLevel, s.Verified, s.VerificationSource,
		nonNil(s.Tags), s.Description, s.YearsOfExperience, s.LastUsed, s.Endorsements, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save skill", err)
	}
	return nil
}

// Update never touches verified or verification_source; those only change
// through MarkVerified.
func (r *postgresSkillRepo) Update(ctx context.Context, s *skill.Skill) error {
	query := `
		UPDATE skills SET
			name = $3, category = $4, sector = $5, proficiency_level = $6, tags = $7, description = $8,
			years_of_experience = $9, last_used = $10, endorsements = $11, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	cmdTag, err := r.db.Exec(ctx, query,
		s.ID, s.UserID, s.Name, s.Category, s.Sector, s.ProficiencyLevel, nonNil(s.Tags), s.Description,
		s.YearsOfExperience, s.LastUsed, s.Endorsements,
	)
	if err != nil {
		return apperror.NewInternal("failed to update skill", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("skill", s.ID.String())
	}
	return nil
}

func (r *postgresSkillRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperror.NewInternal("failed to delete skill", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("skill", id.String())
	}
	return nil
}

func (r *postgresSkillRepo) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*skill.Skill, error) {
	row := r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1 AND user_id = $2`, id, userID)
	s, err := scanSkill(row)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("skill", id.String())
	}
	return s, err
}

func (r *postgresSkillRepo) Get(ctx context.Context, id uuid.UUID) (*skill.Skill, error) {
	row := r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id)
	s, err := scanSkill(row)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("skill", id.String())
	}
	return s, err
}

func (r *postgresSkillRepo) List(ctx context.Context, f skill.Filter) ([]*skill.Skill, error) {
	limit, offset := page(f.Limit, f.Offset)
	builder := psql.Select(skillColumns).
		From("skills").
		Where(sq.Eq{"user_id": f.UserID}).
		OrderBy("verified DESC", "proficiency_level DESC", "created_at DESC").
		Limit(limit).
		Offset(offset)

	if f.Sector != "" {
		builder = builder.Where(sq.Eq{"sector": f.Sector})
	}
	if f.Category != "" {
		builder = builder.Where(sq.Eq{"category": f.Category})
	}
	if f.Search != "" {
		builder = builder.Where(containsFold("name", f.Search))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list skills query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query skills", err)
	}
	return scanSkills(rows)
}

func (r *postgresSkillRepo) MarkVerified(ctx context.Context, id uuid.UUID, source string) error {
	return markSkillVerified(ctx, r.db, id, source)
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func markSkillVerified(ctx context.Context, db execer, id uuid.UUID, source string) error {
	cmdTag, err := db.Exec(ctx,
		`UPDATE skills SET verified = TRUE, verification_source = $2, updated_at = NOW() WHERE id = $1`,
		id, source,
	)
	if err != nil {
		return apperror.NewInternal("failed to mark skill verified", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("skill", id.String())
	}
	return nil
}
