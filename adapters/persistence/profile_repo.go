package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/domain/profile"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func (r *postgresProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT user_id, bio, phone, location, website, linkedin_url, github_url,
		       education, experience, interests, target_sectors, learning_preferences, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	p := &profile.Profile{}
	var educationBytes, experienceBytes, preferencesBytes []byte

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.Bio,
		&p.Phone,
		&p.Location,
		&p.Website,
		&p.LinkedInURL,
		&p.GithubURL,
		&educationBytes,
		&experienceBytes,
		&p.Interests,
		&p.TargetSectors,
		&preferencesBytes,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Empty(userID), nil
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	if err := json.Unmarshal(educationBytes, &p.Education); err != nil {
		r.logger.Warn("Failed to unmarshal education", zap.String("user_id", userID.String()), zap.Error(err))
		p.Education = []profile.Education{}
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil {
		r.logger.Warn("Failed to unmarshal experience", zap.String("user_id", userID.String()), zap.Error(err))
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(preferencesBytes, &p.LearningPreferences); err != nil {
		r.logger.Warn("Failed to unmarshal learning_preferences", zap.String("user_id", userID.String()), zap.Error(err))
		p.LearningPreferences = map[string]any{}
	}
	p.Interests = nonNil(p.Interests)
	p.TargetSectors = nonNil(p.TargetSectors)

	return p, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	educationBytes, err := json.Marshal(p.Education)
	if err != nil {
		return apperror.NewInternal("failed to marshal education", err)
	}
	experienceBytes, err := json.Marshal(p.Experience)
	if err != nil {
		return apperror.NewInternal("failed to marshal experience", err)
	}
	preferencesBytes, err := json.Marshal(p.LearningPreferences)
	if err != nil {
		return apperror.NewInternal("failed to marshal learning_preferences", err)
	}

	query := `
		INSERT INTO profiles (user_id, bio, phone, location, website, linkedin_url, github_url,
		                      education, experience, interests, target_sectors, learning_preferences, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			bio = EXCLUDED.bio,
			phone = EXCLUDED.phone,
			location = EXCLUDED.location,
			website = EXCLUDED.website,
			linkedin_url = EXCLUDED.linkedin_url,
			github_url = EXCLUDED.github_url,
			education = EXCLUDED.education,
			experience = EXCLUDED.experience,
			interests = EXCLUDED.interests,
			target_sectors = EXCLUDED.target_sectors,
			learning_preferences = EXCLUDED.learning_preferences,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.Exec(ctx, query,
		p.UserID, p.Bio, p.Phone, p.Location, p.Website, p.LinkedInURL, p.GithubURL,
		educationBytes, experienceBytes, nonNil(p.Interests), nonNil(p.TargetSectors), preferencesBytes, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NewNotFound("user", p.UserID.String())
		}
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}

// nonNil keeps NOT NULL TEXT[] columns from receiving SQL NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
