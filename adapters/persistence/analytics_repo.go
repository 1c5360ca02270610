package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/domain/analytics"
	"github.com/khoahotran/skillfolio/internal/domain/scoring"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type postgresAnalyticsRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresAnalyticsRepo(db *pgxpool.Pool, logger logger.Logger) analytics.Repository {
	return &postgresAnalyticsRepo{db: db, logger: logger}
}

const analyticsColumns = `id, user_id, sector, overall_score, career_readiness, industry_alignment,
	skill_gaps, strengths, recommendations, suggested_roles, data_points, calculated_at`

func scanAnalytics(row pgx.Row, l logger.Logger) (*analytics.SkillAnalytics, error) {
	a := &analytics.SkillAnalytics{}
	var gapsBytes, strengthsBytes, recsBytes, rolesBytes []byte

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Sector,
		&a.OverallScore,
		&a.CareerReadiness,
		&a.IndustryAlignment,
		&gapsBytes,
		&strengthsBytes,
		&recsBytes,
		&rolesBytes,
		&a.DataPoints,
		&a.CalculatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("skill analytics", "")
		}
		return nil, apperror.NewInternal("failed to scan skill analytics row", err)
	}

	fields := []zap.Field{zap.String("analytics_id", a.ID.String())}
	if err := json.Unmarshal(gapsBytes, &a.SkillGaps); err != nil {
		l.Warn("Failed to unmarshal skill_gaps", append(fields, zap.Error(err))...)
		a.SkillGaps = []scoring.SkillGap{}
	}
	if err := json.Unmarshal(strengthsBytes, &a.Strengths); err != nil {
		l.Warn("Failed to unmarshal strengths", append(fields, zap.Error(err))...)
		a.Strengths = []scoring.Strength{}
	}
	if err := json.Unmarshal(recsBytes, &a.Recommendations); err != nil {
		l.Warn("Failed to unmarshal recommendations", append(fields, zap.Error(err))...)
		a.Recommendations = []scoring.Recommendation{}
	}
	if err := json.Unmarshal(rolesBytes, &a.SuggestedRoles); err != nil {
		l.Warn("Failed to unmarshal suggested_roles", append(fields, zap.Error(err))...)
		a.SuggestedRoles = []scoring.SuggestedRole{}
	}

	return a, nil
}

// Upsert replaces the (user, sector) row in place and keeps its id.
func (r *postgresAnalyticsRepo) Upsert(ctx context.Context, a *analytics.SkillAnalytics) (*analytics.SkillAnalytics, error) {
	gapsBytes, err := json.Marshal(a.SkillGaps)
	if err != nil {
		return nil, apperror.NewInternal("failed to marshal skill_gaps", err)
	}
	strengthsBytes, err := json.Marshal(a.Strengths)
	if err != nil {
		return nil, apperror.NewInternal("failed to marshal strengths", err)
	}
	recsBytes, err := json.Marshal(a.Recommendations)
	if err != nil {
		return nil, apperror.NewInternal("failed to marshal recommendations", err)
	}
	rolesBytes, err := json.Marshal(a.SuggestedRoles)
	if err != nil {
		return nil, apperror.NewInternal("failed to marshal suggested_roles", err)
	}

	query := `
		INSERT INTO skill_analytics (id, user_id, sector, overall_score, career_readiness, industry_alignment,
		                             skill_gaps, strengths, recommendations, suggested_roles, data_points, calculated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id, sector) DO UPDATE SET
			overall_score = EXCLUDED.overall_score,
			career_readiness = EXCLUDED.career_readiness,
			industry_alignment = EXCLUDED.industry_alignment,
			skill_gaps = EXCLUDED.skill_gaps,
			strengths = EXCLUDED.strengths,
			recommendations = EXCLUDED.recommendations,
			suggested_roles = EXCLUDED.suggested_roles,
			data_points = EXCLUDED.data_points,
			calculated_at = EXCLUDED.calculated_at
		RETURNING ` + analyticsColumns
	row := r.db.QueryRow(ctx, query,
		a.ID, a.UserID, a.Sector, a.OverallScore, a.CareerReadiness, a.IndustryAlignment,
		gapsBytes, strengthsBytes, recsBytes, rolesBytes, a.DataPoints, a.CalculatedAt,
	)
	stored, err := scanAnalytics(row, r.logger)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && isForeignKeyViolation(appErr.Err) {
			return nil, apperror.NewNotFound("user", a.UserID.String())
		}
		return nil, err
	}
	return stored, nil
}

func (r *postgresAnalyticsRepo) Get(ctx context.Context, userID uuid.UUID, s sector.Sector) (*analytics.SkillAnalytics, error) {
	row := r.db.QueryRow(ctx, `SELECT `+analyticsColumns+` FROM skill_analytics WHERE user_id = $1 AND sector = $2`, userID, s)
	a, err := scanAnalytics(row, r.logger)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("skill analytics", string(s))
	}
	return a, err
}

func (r *postgresAnalyticsRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*analytics.SkillAnalytics, error) {
	rows, err := r.db.Query(ctx, `SELECT `+analyticsColumns+` FROM skill_analytics WHERE user_id = $1 ORDER BY sector`, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query skill analytics", err)
	}
	defer rows.Close()

	out := make([]*analytics.SkillAnalytics, 0)
	for rows.Next() {
		a, err := scanAnalytics(rows, r.logger)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating skill analytics rows", err)
	}
	return out, nil
}
