package persistence

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/skillfolio/internal/domain/mentor"
	"github.com/khoahotran/skillfolio/pkg/apperror"
)

type postgresMentorRepo struct {
	db *pgxpool.Pool
}

func NewPostgresMentorRepo(db *pgxpool.Pool) mentor.Repository {
	return &postgresMentorRepo{db: db}
}

const mentorColumns = `m.user_id, u.name, m.sectors, m.organization, m.title, m.bio, m.contact_email,
	m.is_approved, m.approved_at, m.created_at, m.updated_at`

func scanMentor(row pgx.Row) (*mentor.Profile, error) {
	p := &mentor.Profile{}
	err := row.Scan(
		&p.UserID,
		&p.Name,
		&p.Sectors,
		&p.Organization,
		&p.Title,
		&p.Bio,
		&p.ContactEmail,
		&p.IsApproved,
		&p.ApprovedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("mentor profile", "")
		}
		return nil, apperror.NewInternal("failed to scan mentor profile", err)
	}
	p.Sectors = nonNil(p.Sectors)
	return p, nil
}

func (r *postgresMentorRepo) Get(ctx context.Context, userID uuid.UUID) (*mentor.Profile, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+mentorColumns+`
		FROM mentor_profiles m
		JOIN users u ON u.id = m.user_id
		WHERE m.user_id = $1
	`, userID)
	p, err := scanMentor(row)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("mentor profile", userID.String())
	}
	return p, err
}

// Upsert writes the self-managed fields only; approval is owned by SetApproval.
func (r *postgresMentorRepo) Upsert(ctx context.Context, p *mentor.Profile) error {
	query := `
		INSERT INTO mentor_profiles (user_id, sectors, organization, title, bio, contact_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			sectors = EXCLUDED.sectors,
			organization = EXCLUDED.organization,
			title = EXCLUDED.title,
			bio = EXCLUDED.bio,
			contact_email = EXCLUDED.contact_email,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query,
		p.UserID, nonNil(p.Sectors), p.Organization, p.Title, p.Bio, p.ContactEmail, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NewNotFound("user", p.UserID.String())
		}
		return apperror.NewInternal("failed to upsert mentor profile", err)
	}
	return nil
}

func (r *postgresMentorRepo) SetApproval(ctx context.Context, userID uuid.UUID, approved bool, at time.Time) error {
	var approvedAt *time.Time
	if approved {
		approvedAt = &at
	}
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE mentor_profiles SET is_approved = $2, approved_at = $3, updated_at = NOW() WHERE user_id = $1`,
		userID, approved, approvedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to update mentor approval", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("mentor profile", userID.String())
	}
	return nil
}

func (r *postgresMentorRepo) List(ctx context.Context, f mentor.Filter) ([]*mentor.Profile, error) {
	builder := psql.Select(mentorColumns).
		From("mentor_profiles m").
		Join("users u ON u.id = m.user_id").
		Where(sq.Eq{"u.is_active": true}).
		OrderBy("u.name ASC")

	if f.Approved != nil {
		builder = builder.Where(sq.Eq{"m.is_approved": *f.Approved})
	}
	if f.Sector != "" {
		builder = builder.Where(sq.Expr("? = ANY(m.sectors)", string(f.Sector)))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list mentors query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query mentors", err)
	}
	defer rows.Close()

	mentors := make([]*mentor.Profile, 0)
	for rows.Next() {
		p, err := scanMentor(rows)
		if err != nil {
			return nil, err
		}
		mentors = append(mentors, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating mentor rows", err)
	}
	return mentors, nil
}
