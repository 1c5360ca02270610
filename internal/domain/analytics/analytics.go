package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/scoring"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
)

// SkillAnalytics is the cached assessment of one user in one sector. It is
// only refreshed by an explicit generate call.
type SkillAnalytics struct {
	ID                uuid.UUID                `json:"id"`
	UserID            uuid.UUID                `json:"userId"`
	Sector            sector.Sector            `json:"sector"`
	OverallScore      int                      `json:"overallScore"`
	CareerReadiness   int                      `json:"careerReadiness"`
	IndustryAlignment int                      `json:"industryAlignment"`
	SkillGaps         []scoring.SkillGap       `json:"skillGaps"`
	Strengths         []scoring.Strength       `json:"strengths"`
	Recommendations   []scoring.Recommendation `json:"recommendations"`
	SuggestedRoles    []scoring.SuggestedRole  `json:"suggestedRoles"`
	DataPoints        int                      `json:"dataPoints"`
	CalculatedAt      time.Time                `json:"calculatedAt"`
}

func FromAssessment(userID uuid.UUID, a scoring.Assessment) *SkillAnalytics {
	return &SkillAnalytics{
		ID:                uuid.New(),
		UserID:            userID,
		Sector:            a.Sector,
		OverallScore:      a.OverallScore,
		CareerReadiness:   a.CareerReadiness,
		IndustryAlignment: a.IndustryAlignment,
		SkillGaps:         a.SkillGaps,
		Strengths:         a.Strengths,
		Recommendations:   a.Recommendations,
		SuggestedRoles:    a.SuggestedRoles,
		DataPoints:        a.DataPoints,
		CalculatedAt:      a.CalculatedAt,
	}
}

type Repository interface {
	// Upsert inserts or replaces the row keyed by (user, sector) and returns
	// the stored row.
	Upsert(ctx context.Context, a *SkillAnalytics) (*SkillAnalytics, error)
	Get(ctx context.Context, userID uuid.UUID, s sector.Sector) (*SkillAnalytics, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*SkillAnalytics, error)
}

const EventGenerated = "analytics.generated"

type Event struct {
	Type         string        `json:"type"`
	UserID       uuid.UUID     `json:"user_id"`
	Sector       sector.Sector `json:"sector"`
	OverallScore int           `json:"overall_score"`
	OccurredAt   time.Time     `json:"occurred_at"`
}
