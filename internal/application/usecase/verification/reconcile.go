package verification

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/domain/skill"
	"github.com/khoahotran/skillfolio/internal/domain/user"
	"github.com/khoahotran/skillfolio/internal/domain/verification"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

const defaultSweepLimit = 100

// ReapplyApprovedUseCase makes sure the skill behind an APPROVED request is
// marked verified. Re-running it is harmless.
type ReapplyApprovedUseCase struct {
	requests verification.Repository
	skills   skill.Repository
	users    user.Repository
	logger   logger.Logger
}

func NewReapplyApprovedUseCase(r verification.Repository, s skill.Repository, u user.Repository, log logger.Logger) *ReapplyApprovedUseCase {
	return &ReapplyApprovedUseCase{requests: r, skills: s, users: u, logger: log}
}

// Execute reconciles a single request and reports whether the skill changed.
func (uc *ReapplyApprovedUseCase) Execute(ctx context.Context, requestID uuid.UUID) (bool, error) {
	ctx, span := tracer.Start(ctx, "ReapplyApprovedUseCase.Execute")
	defer span.End()
	span.SetAttributes(attribute.String("request.id", requestID.String()))

	req, err := uc.requests.FindByID(ctx, requestID)
	if err != nil {
		return false, err
	}
	changed, err := uc.apply(ctx, req)
	if err != nil {
		span.RecordError(err)
	}
	return changed, err
}

// Sweep reconciles every approved request whose skill is still unverified and
// returns how many skills it fixed.
func (uc *ReapplyApprovedUseCase) Sweep(ctx context.Context, limit int) (int, error) {
	ctx, span := tracer.Start(ctx, "ReapplyApprovedUseCase.Sweep")
	defer span.End()

	if limit <= 0 {
		limit = defaultSweepLimit
	}
	reqs, err := uc.requests.ListApprovedUnverified(ctx, limit)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	fixed := 0
	for _, req := range reqs {
		changed, err := uc.apply(ctx, req)
		if err != nil {
			uc.logger.Warn("Failed to reapply approved verification",
				zap.String("request_id", req.ID.String()), zap.Error(err))
			continue
		}
		if changed {
			fixed++
		}
	}
	span.SetAttributes(attribute.Int("reconcile.fixed", fixed))
	if fixed > 0 {
		uc.logger.Info("Reapplied approved verifications", zap.Int("count", fixed))
	}
	return fixed, nil
}

func (uc *ReapplyApprovedUseCase) apply(ctx context.Context, req *verification.Request) (bool, error) {
	if req.Status != verification.StatusApproved {
		return false, nil
	}
	s, err := uc.skills.Get(ctx, req.SkillID)
	if err != nil {
		return false, err
	}
	if s.Verified {
		return false, nil
	}

	reviewer, err := uc.users.FindByID(ctx, req.ReviewerID)
	if err != nil {
		return false, err
	}
	if err := uc.skills.MarkVerified(ctx, s.ID, VerificationSource(reviewer.Name)); err != nil {
		return false, err
	}
	return true, nil
}
