package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/application/service"
	"github.com/khoahotran/skillfolio/internal/application/usecase/assessment"
	"github.com/khoahotran/skillfolio/internal/domain/analytics"
	"github.com/khoahotran/skillfolio/internal/domain/scoring"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

var tracer = otel.Tracer("analytics_usecase")

type AnalyticsUseCase struct {
	repo      analytics.Repository
	loader    *assessment.SnapshotLoader
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewAnalyticsUseCase(r analytics.Repository, loader *assessment.SnapshotLoader, p service.EventPublisher, log logger.Logger) *AnalyticsUseCase {
	return &AnalyticsUseCase{repo: r, loader: loader, publisher: p, logger: log}
}

// Generate recomputes and stores the analytics row for (user, sector).
func (uc *AnalyticsUseCase) Generate(ctx context.Context, userID uuid.UUID, sec sector.Sector) (*analytics.SkillAnalytics, error) {
	ctx, span := tracer.Start(ctx, "AnalyticsUseCase.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID.String()), attribute.String("sector", string(sec)))

	snap, err := uc.loader.Load(ctx, userID, sec)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	stored, err := uc.repo.Upsert(ctx, analytics.FromAssessment(userID, scoring.Assess(snap, time.Now().UTC())))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("analytics.data_points", stored.DataPoints))

	if uc.publisher != nil {
		evt := analytics.Event{
			Type:         analytics.EventGenerated,
			UserID:       userID,
			Sector:       sec,
			OverallScore: stored.OverallScore,
			OccurredAt:   stored.CalculatedAt,
		}
		go func() {
			pctx, cancel := context.WithTimeout(context.Background(), service.PublishTimeout)
			defer cancel()
			if err := uc.publisher.PublishAnalyticsEvent(pctx, evt); err != nil {
				uc.logger.Error("Failed to publish analytics event", err, zap.String("user_id", userID.String()))
			}
		}()
	}
	return stored, nil
}

// Get returns the last generated analytics; it never recomputes.
func (uc *AnalyticsUseCase) Get(ctx context.Context, userID uuid.UUID, sec sector.Sector) (*analytics.SkillAnalytics, error) {
	return uc.repo.Get(ctx, userID, sec)
}

type SectorSummary struct {
	Sector            sector.Sector `json:"sector"`
	Generated         bool          `json:"generated"`
	OverallScore      int           `json:"overallScore"`
	CareerReadiness   int           `json:"careerReadiness"`
	IndustryAlignment int           `json:"industryAlignment"`
	DataPoints        int           `json:"dataPoints"`
	CalculatedAt      *time.Time    `json:"calculatedAt"`
}

type CrossSectorOverview struct {
	Sectors         []SectorSummary `json:"sectors"`
	StrongestSector *sector.Sector  `json:"strongestSector"`
	AverageScore    int             `json:"averageScore"`
}

// Overview summarises the stored analytics of every sector. Sectors never
// generated are listed with Generated=false and excluded from the average.
func (uc *AnalyticsUseCase) Overview(ctx context.Context, userID uuid.UUID) (*CrossSectorOverview, error) {
	rows, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	bySector := make(map[sector.Sector]*analytics.SkillAnalytics, len(rows))
	for _, r := range rows {
		bySector[r.Sector] = r
	}

	out := &CrossSectorOverview{Sectors: make([]SectorSummary, 0, len(sector.All))}
	total, generated, best := 0, 0, -1
	for _, s := range sector.All {
		summary := SectorSummary{Sector: s}
		if r, ok := bySector[s]; ok {
			at := r.CalculatedAt
			summary.Generated = true
			summary.OverallScore = r.OverallScore
			summary.CareerReadiness = r.CareerReadiness
			summary.IndustryAlignment = r.IndustryAlignment
			summary.DataPoints = r.DataPoints
			summary.CalculatedAt = &at

			total += r.OverallScore
			generated++
			if r.OverallScore > best {
				best = r.OverallScore
				strongest := s
				out.StrongestSector = &strongest
			}
		}
		out.Sectors = append(out.Sectors, summary)
	}
	if generated > 0 {
		out.AverageScore = scoring.Clamp(float64(total) / float64(generated))
	}
	return out, nil
}
