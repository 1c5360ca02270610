package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/skillfolio/internal/domain/certification"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type postgresCertificationRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresCertificationRepo(db *pgxpool.Pool, logger logger.Logger) certification.Repository {
	return &postgresCertificationRepo{db: db, logger: logger}
}

const certificationColumns = `id, user_id, name, issuing_organization, sector, credential_id, credential_url,
	issue_date, expiry_date, never_expires, related_skills, created_at, updated_at`

func scanCertification(row pgx.Row) (*certification.Certification, error) {
	c := &certification.Certification{}
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.IssuingOrganization,
		&c.Sector,
		&c.CredentialID,
		&c.CredentialURL,
		&c.IssueDate,
		&c.ExpiryDate,
		&c.NeverExpires,
		&c.RelatedSkills,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("certification", "")
		}
		return nil, apperror.NewInternal("failed to scan certification row", err)
	}
	c.RelatedSkills = nonNil(c.RelatedSkills)
	return c, nil
}

func scanCertifications(rows pgx.Rows) ([]*certification.Certification, error) {
	defer rows.Close()
	certs := make([]*certification.Certification, 0)

	for rows.Next() {
		c, err := scanCertification(rows)
		if err != nil {
			return nil, err
		}
		certs = append(certs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating certification rows", err)
	}
	return certs, nil
}

func (r *postgresCertificationRepo) Save(ctx context.Context, c *certification.Certification) error {
	query := `
		INSERT INTO certifications (id, user_id, name, issuing_organization, sector, credential_id, credential_url,
		                            issue_date, expiry_date, never_expires, related_skills, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.UserID, c.Name, c.IssuingOrganization, c.Sector, c.CredentialID, c.CredentialURL,
		c.IssueDate, c.ExpiryDate, c.NeverExpires, nonNil(c.RelatedSkills), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save certification", err)
	}
	return nil
}

func (r *postgresCertificationRepo) Update(ctx context.Context, c *certification.Certification) error {
	query := `
		UPDATE certifications SET
			name = $3, issuing_organization = $4, sector = $5, credential_id = $6, credential_url = $7,
			issue_date = $8, expiry_date = $9, never_expires = $10, related_skills = $11, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	cmdTag, err := r.db.Exec(ctx, query,
		c.ID, c.UserID, c.Name, c.IssuingOrganization, c.Sector, c.CredentialID, c.CredentialURL,
		c.IssueDate, c.ExpiryDate, c.NeverExpires, nonNil(c.RelatedSkills),
	)
	if err != nil {
		return apperror.NewInternal("failed to update certification", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("certification", c.ID.String())
	}
	return nil
}

func (r *postgresCertificationRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM certifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return apperror.NewInternal("failed to delete certification", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("certification", id.String())
	}
	return nil
}

func (r *postgresCertificationRepo) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*certification.Certification, error) {
	row := r.db.QueryRow(ctx, `SELECT `+certificationColumns+` FROM certifications WHERE id = $1 AND user_id = $2`, id, userID)
	c, err := scanCertification(row)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("certification", id.String())
	}
	return c, err
}

func (r *postgresCertificationRepo) List(ctx context.Context, f certification.Filter) ([]*certification.Certification, error) {
	limit, offset := page(f.Limit, f.Offset)
	builder := psql.Select(certificationColumns).
		From("certifications").
		Where(sq.Eq{"user_id": f.UserID}).
		OrderBy("issue_date DESC").
		Limit(limit).
		Offset(offset)

	if f.Sector != "" {
		builder = builder.Where(sq.Eq{"sector": f.Sector})
	}
	if f.Search != "" {
		builder = builder.Where(sq.Or{
			containsFold("name", f.Search),
			containsFold("issuing_organization", f.Search),
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list certifications query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query certifications", err)
	}
	return scanCertifications(rows)
}
