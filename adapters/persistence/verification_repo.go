package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/skillfolio/internal/domain/verification"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type postgresVerificationRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresVerificationRepo(db *pgxpool.Pool, logger logger.Logger) verification.Repository {
	return &postgresVerificationRepo{db: db, logger: logger}
}

const requestColumns = `v.id, v.skill_id, v.requester_id, v.reviewer_id, v.status, v.message, v.evidence_url,
	v.decision_note, v.created_at, v.decided_at`

const viewColumns = requestColumns + `, s.name, s.sector, rq.name, rv.name`

func requestDest(r *verification.Request) []any {
	return []any{
		&r.ID,
		&r.SkillID,
		&r.RequesterID,
		&r.ReviewerID,
		&r.Status,
		&r.Message,
		&r.EvidenceURL,
		&r.DecisionNote,
		&r.CreatedAt,
		&r.DecidedAt,
	}
}

func scanRequest(row pgx.Row) (*verification.Request, error) {
	r := &verification.Request{}
	if err := row.Scan(requestDest(r)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, verification.ErrNotFound(uuid.Nil)
		}
		return nil, apperror.NewInternal("failed to scan verification request", err)
	}
	return r, nil
}

func scanView(row pgx.Row) (*verification.View, error) {
	v := &verification.View{}
	dest := append(requestDest(&v.Request), &v.SkillName, &v.SkillSector, &v.RequesterName, &v.ReviewerName)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, verification.ErrNotFound(uuid.Nil)
		}
		return nil, apperror.NewInternal("failed to scan verification request view", err)
	}
	return v, nil
}

func viewQuery() sq.SelectBuilder {
	return psql.Select(viewColumns).
		From("verification_requests v").
		Join("skills s ON s.id = v.skill_id").
		Join("users rq ON rq.id = v.requester_id").
		Join("users rv ON rv.id = v.reviewer_id")
}

func (r *postgresVerificationRepo) Create(ctx context.Context, req *verification.Request) error {
	query := `
		INSERT INTO verification_requests (id, skill_id, requester_id, reviewer_id, status, message, evidence_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		req.ID, req.SkillID, req.RequesterID, req.ReviewerID, req.Status, req.Message, req.EvidenceURL, req.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return verification.ErrDuplicatePendingRequest()
		}
		if isForeignKeyViolation(err) {
			return verification.ErrSkillNotFound(req.SkillID)
		}
		return apperror.NewInternal("failed to create verification request", err)
	}
	return nil
}

func (r *postgresVerificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*verification.Request, error) {
	row := r.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM verification_requests v WHERE v.id = $1`, id)
	req, err := scanRequest(row)
	if errors.Is(err, verification.KindNotFound) {
		return nil, verification.ErrNotFound(id)
	}
	return req, err
}

func (r *postgresVerificationRepo) GetView(ctx context.Context, id uuid.UUID) (*verification.View, error) {
	sql, args, err := viewQuery().Where(sq.Eq{"v.id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build verification view query", err)
	}
	v, err := scanView(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, verification.KindNotFound) {
		return nil, verification.ErrNotFound(id)
	}
	return v, err
}

func (r *postgresVerificationRepo) HasPending(ctx context.Context, skillID, requesterID, reviewerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM verification_requests
			WHERE skill_id = $1 AND requester_id = $2 AND reviewer_id = $3 AND status = 'PENDING'
		)
	`, skillID, requesterID, reviewerID).Scan(&exists)
	if err != nil {
		return false, apperror.NewInternal("failed to check pending verification requests", err)
	}
	return exists, nil
}

func (r *postgresVerificationRepo) listViews(ctx context.Context, where sq.Sqlizer, status verification.Status) ([]*verification.View, error) {
	builder := viewQuery().Where(where).OrderBy("v.created_at DESC")
	if status != "" {
		builder = builder.Where(sq.Eq{"v.status": status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list verification requests query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query verification requests", err)
	}
	defer rows.Close()

	views := make([]*verification.View, 0)
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating verification request rows", err)
	}
	return views, nil
}

func (r *postgresVerificationRepo) ListByRequester(ctx context.Context, requesterID uuid.UUID, status verification.Status) ([]*verification.View, error) {
	return r.listViews(ctx, sq.Eq{"v.requester_id": requesterID}, status)
}

func (r *postgresVerificationRepo) ListByReviewer(ctx context.Context, reviewerID uuid.UUID, status verification.Status) ([]*verification.View, error) {
	return r.listViews(ctx, sq.Eq{"v.reviewer_id": reviewerID}, status)
}

// UpdateDecision moves a PENDING request to its new state. The status guard in
// the WHERE clause makes concurrent decisions race safely: only one wins.
func (r *postgresVerificationRepo) UpdateDecision(ctx context.Context, req *verification.Request) error {
	return r.updateDecision(ctx, r.db, req)
}

func (r *postgresVerificationRepo) updateDecision(ctx context.Context, db execer, req *verification.Request) error {
	cmdTag, err := db.Exec(ctx, `
		UPDATE verification_requests
		SET status = $2, decision_note = $3, decided_at = $4
		WHERE id = $1 AND status = 'PENDING'
	`, req.ID, req.Status, req.DecisionNote, req.DecidedAt)
	if err != nil {
		return apperror.NewInternal("failed to update verification request", err)
	}
	if cmdTag.RowsAffected() == 1 {
		return nil
	}

	current, err := r.FindByID(ctx, req.ID)
	if err != nil {
		return err
	}
	return verification.ErrNotPending(req.ID, current.Status)
}

// Approve records the decision and marks the skill verified in one transaction.
func (r *postgresVerificationRepo) Approve(ctx context.Context, req *verification.Request, verificationSource string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.NewInternal("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if err := r.updateDecision(ctx, tx, req); err != nil {
		return err
	}
	if err := markSkillVerified(ctx, tx, req.SkillID, verificationSource); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return verification.ErrSkillNotFound(req.SkillID)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewInternal("failed to commit verification approval", err)
	}
	return nil
}

func (r *postgresVerificationRepo) ListApprovedUnverified(ctx context.Context, limit int) ([]*verification.Request, error) {
	l, _ := page(limit, 0)
	sql, args, err := psql.Select(requestColumns).
		From("verification_requests v").
		Join("skills s ON s.id = v.skill_id").
		Where(sq.Eq{"v.status": verification.StatusApproved, "s.verified": false}).
		OrderBy("v.decided_at ASC").
		Limit(l).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build approved-unverified query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query approved verification requests", err)
	}
	defer rows.Close()

	out := make([]*verification.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating verification request rows", err)
	}
	return out, nil
}
