package recommendation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/application/service"
	"github.com/khoahotran/skillfolio/internal/application/usecase/assessment"
	"github.com/khoahotran/skillfolio/internal/domain/guidance"
	"github.com/khoahotran/skillfolio/internal/domain/profile"
	"github.com/khoahotran/skillfolio/internal/domain/scoring"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/pkg/logger"
	"github.com/khoahotran/skillfolio/pkg/metrics"
)

const (
	SourceAI       = "ai"
	SourceCatalog  = "catalog"
	SourceCache    = "cache"
	SourceFallback = "fallback"

	DefaultCourseLimit = 10
	MaxCourseLimit     = 20
	maxRecommendations = 5
)

type RecommendationUseCase struct {
	loader      *assessment.SnapshotLoader
	profiles    profile.Repository
	recommender service.RecommendationService
	catalog     service.CourseCatalog
	cache       service.Cache
	courseTTL   time.Duration
	logger      logger.Logger
}

// NewRecommendationUseCase accepts nil for recommender, catalog and cache;
// a missing provider is served from the static fallback content.
func NewRecommendationUseCase(
	loader *assessment.SnapshotLoader,
	profiles profile.Repository,
	recommender service.RecommendationService,
	catalog service.CourseCatalog,
	cache service.Cache,
	courseTTL time.Duration,
	log logger.Logger,
) *RecommendationUseCase {
	return &RecommendationUseCase{
		loader:      loader,
		profiles:    profiles,
		recommender: recommender,
		catalog:     catalog,
		cache:       cache,
		courseTTL:   courseTTL,
		logger:      log,
	}
}

type RecommendationsOutput struct {
	Sector          sector.Sector             `json:"sector"`
	OverallScore    int                       `json:"overallScore"`
	Band            guidance.Band             `json:"band"`
	Source          string                    `json:"source"`
	Recommendations []guidance.Recommendation `json:"recommendations"`
}

// Recommendations never fails because of the upstream provider: any provider
// error yields the static list for the user's (sector, band).
func (uc *RecommendationUseCase) Recommendations(ctx context.Context, userID uuid.UUID, sec sector.Sector) (*RecommendationsOutput, error) {
	snap, err := uc.loader.Load(ctx, userID, sec)
	if err != nil {
		return nil, err
	}
	a := scoring.Assess(snap, time.Now().UTC())
	band := guidance.BandFor(a.OverallScore)
	out := &RecommendationsOutput{Sector: sec, OverallScore: a.OverallScore, Band: band}

	if uc.recommender == nil {
		metrics.UpstreamFallbacksTotal.WithLabelValues(metrics.ProviderRecommender).Inc()
		out.Source = SourceFallback
		out.Recommendations = guidance.FallbackRecommendations(sec, band)
		return out, nil
	}

	req := service.RecommendationRequest{
		Sector:       sec,
		Band:         band,
		OverallScore: a.OverallScore,
		MaxResults:   maxRecommendations,
	}
	for _, g := range a.SkillGaps {
		req.SkillGaps = append(req.SkillGaps, sector.HumanizeCategory(g.Category))
	}
	for _, s := range a.Strengths {
		req.Strengths = append(req.Strengths, s.Skill)
	}
	for _, r := range a.SuggestedRoles {
		req.TargetRoles = append(req.TargetRoles, r.Role)
	}
	if p, err := uc.profiles.GetByUserID(ctx, userID); err == nil {
		req.Interests = p.Interests
	} else {
		uc.logger.Warn("Failed to load profile for recommendations", zap.String("user_id", userID.String()), zap.Error(err))
	}

	start := time.Now()
	recs, err := uc.recommender.Recommend(ctx, req)
	if err != nil || len(recs) == 0 {
		metrics.UpstreamRequestDuration.WithLabelValues(metrics.ProviderRecommender, "error").Observe(time.Since(start).Seconds())
		metrics.UpstreamFallbacksTotal.WithLabelValues(metrics.ProviderRecommender).Inc()
		uc.logger.Warn("Recommendation provider failed, serving fallback",
			zap.String("sector", string(sec)), zap.Error(err))
		out.Source = SourceFallback
		out.Recommendations = guidance.FallbackRecommendations(sec, band)
		return out, nil
	}
	metrics.UpstreamRequestDuration.WithLabelValues(metrics.ProviderRecommender, "ok").Observe(time.Since(start).Seconds())

	out.Source = SourceAI
	out.Recommendations = recs
	return out, nil
}

type CoursesOutput struct {
	Sector  sector.Sector     `json:"sector"`
	Query   string            `json:"query"`
	Source  string            `json:"source"`
	Courses []guidance.Course `json:"courses"`
}

// Courses searches the catalog for a sector. Catalog results are cached per
// (sector, query) for the configured TTL.
func (uc *RecommendationUseCase) Courses(ctx context.Context, sec sector.Sector, query string, limit int) (*CoursesOutput, error) {
	if limit <= 0 {
		limit = DefaultCourseLimit
	}
	if limit > MaxCourseLimit {
		limit = MaxCourseLimit
	}
	query = strings.TrimSpace(query)
	searchTerm := query
	if searchTerm == "" {
		searchTerm = sector.HumanizeCategory(string(sec))
	} else {
		searchTerm = sector.HumanizeCategory(string(sec)) + " " + query
	}
	out := &CoursesOutput{Sector: sec, Query: query}

	key := courseCacheKey(sec, query)
	if uc.cache != nil {
		var cached []guidance.Course
		hit, err := uc.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			uc.logger.Warn("Course cache read failed", zap.String("key", key), zap.Error(err))
		}
		if hit {
			out.Source = SourceCache
			out.Courses = truncate(cached, limit)
			return out, nil
		}
	}

	if uc.catalog == nil {
		return uc.courseFallback(out, limit), nil
	}

	start := time.Now()
	courses, err := uc.catalog.Search(ctx, searchTerm, MaxCourseLimit)
	if err != nil || len(courses) == 0 {
		metrics.UpstreamRequestDuration.WithLabelValues(metrics.ProviderCourses, "error").Observe(time.Since(start).Seconds())
		uc.logger.Warn("Course catalog failed, serving fallback", zap.String("sector", string(sec)), zap.Error(err))
		return uc.courseFallback(out, limit), nil
	}
	metrics.UpstreamRequestDuration.WithLabelValues(metrics.ProviderCourses, "ok").Observe(time.Since(start).Seconds())

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, key, courses, uc.courseTTL); err != nil {
			uc.logger.Warn("Course cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	out.Source = SourceCatalog
	out.Courses = truncate(courses, limit)
	return out, nil
}

func (uc *RecommendationUseCase) courseFallback(out *CoursesOutput, limit int) *CoursesOutput {
	metrics.UpstreamFallbacksTotal.WithLabelValues(metrics.ProviderCourses).Inc()
	out.Source = SourceFallback
	out.Courses = guidance.FallbackCourses(out.Sector, limit)
	return out
}

func courseCacheKey(sec sector.Sector, query string) string {
	return fmt.Sprintf("courses:%s:%s", sec.Slug(), strings.ToLower(query))
}

func truncate(courses []guidance.Course, limit int) []guidance.Course {
	if len(courses) > limit {
		return courses[:limit]
	}
	return courses
}
