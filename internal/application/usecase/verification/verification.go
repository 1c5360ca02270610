package verification

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/application/service"
	"github.com/khoahotran/skillfolio/internal/domain/mentor"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/internal/domain/skill"
	"github.com/khoahotran/skillfolio/internal/domain/user"
	"github.com/khoahotran/skillfolio/internal/domain/verification"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
	"github.com/khoahotran/skillfolio/pkg/metrics"
)

var tracer = otel.Tracer("verification_usecase")

type VerificationUseCase struct {
	requests  verification.Repository
	skills    skill.Repository
	mentors   mentor.Repository
	users     user.Repository
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewVerificationUseCase(
	requests verification.Repository,
	skills skill.Repository,
	mentors mentor.Repository,
	users user.Repository,
	publisher service.EventPublisher,
	log logger.Logger,
) *VerificationUseCase {
	return &VerificationUseCase{
		requests:  requests,
		skills:    skills,
		mentors:   mentors,
		users:     users,
		publisher: publisher,
		logger:    log,
	}
}

type CreateRequestInput struct {
	SkillID     uuid.UUID
	RequesterID uuid.UUID
	ReviewerID  uuid.UUID
	Message     *string
	EvidenceURL *string
}

// Create opens a PENDING request. Preconditions are checked in a fixed order
// so the first failing one determines the error kind.
func (uc *VerificationUseCase) Create(ctx context.Context, in CreateRequestInput) (*verification.View, error) {
	ctx, span := tracer.Start(ctx, "VerificationUseCase.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("skill.id", in.SkillID.String()),
		attribute.String("reviewer.id", in.ReviewerID.String()),
	)

	s, err := uc.skills.Get(ctx, in.SkillID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, verification.ErrSkillNotFound(in.SkillID)
		}
		span.RecordError(err)
		return nil, err
	}
	if s.UserID != in.RequesterID {
		return nil, verification.ErrNotSkillOwner(in.SkillID)
	}
	if s.Verified {
		return nil, verification.ErrAlreadyVerified(in.SkillID)
	}
	if in.RequesterID == in.ReviewerID {
		return nil, verification.ErrSelfReview()
	}

	if _, err := uc.eligibleReviewer(ctx, in.ReviewerID, s.Sector); err != nil {
		span.RecordError(err)
		return nil, err
	}

	pending, err := uc.requests.HasPending(ctx, in.SkillID, in.RequesterID, in.ReviewerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if pending {
		return nil, verification.ErrDuplicatePendingRequest()
	}

	req := &verification.Request{
		ID:          uuid.New(),
		SkillID:     in.SkillID,
		RequesterID: in.RequesterID,
		ReviewerID:  in.ReviewerID,
		Status:      verification.StatusPending,
		Message:     trimmed(in.Message),
		EvidenceURL: trimmed(in.EvidenceURL),
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.requests.Create(ctx, req); err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.logger.Info("Verification requested",
		zap.String("request_id", req.ID.String()), zap.String("skill_id", req.SkillID.String()))
	uc.publish(verification.EventCreated, req)
	return uc.requests.GetView(ctx, req.ID)
}

// eligibleReviewer resolves the reviewer to an active, approved mentor who
// covers sec. It runs on create and again on decide, since approval and
// sectors can change while a request is pending.
func (uc *VerificationUseCase) eligibleReviewer(ctx context.Context, reviewerID uuid.UUID, sec sector.Sector) (*user.User, error) {
	m, err := uc.mentors.Get(ctx, reviewerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, verification.ErrReviewerNotApprovedMentor(reviewerID)
		}
		return nil, err
	}
	if !m.IsApproved {
		return nil, verification.ErrReviewerNotApprovedMentor(reviewerID)
	}
	u, err := uc.users.FindByID(ctx, reviewerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, verification.ErrReviewerNotApprovedMentor(reviewerID)
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, verification.ErrReviewerNotApprovedMentor(reviewerID)
	}
	if !m.CanReview(string(sec)) {
		return nil, verification.ErrReviewerSectorMismatch(string(sec))
	}
	return u, nil
}

func (uc *VerificationUseCase) Cancel(ctx context.Context, requestID, requesterID uuid.UUID) (*verification.View, error) {
	req, err := uc.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := req.Cancel(requesterID, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := uc.requests.UpdateDecision(ctx, req); err != nil {
		return nil, err
	}

	metrics.VerificationDecisionsTotal.WithLabelValues(string(req.Status)).Inc()
	uc.publish(verification.EventCancelled, req)
	return uc.requests.GetView(ctx, req.ID)
}

type DecideInput struct {
	RequestID  uuid.UUID
	ReviewerID uuid.UUID
	Decision   string
	Note       *string
}

// Decide records APPROVED or REJECTED. Approval and the skill's verified
// flag are written together by the repository.
func (uc *VerificationUseCase) Decide(ctx context.Context, in DecideInput) (*verification.View, error) {
	ctx, span := tracer.Start(ctx, "VerificationUseCase.Decide")
	defer span.End()
	span.SetAttributes(attribute.String("request.id", in.RequestID.String()))

	req, err := uc.requests.FindByID(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}
	decision := verification.Status(strings.ToUpper(strings.TrimSpace(in.Decision)))
	if err := req.Decide(in.ReviewerID, decision, trimmed(in.Note), time.Now().UTC()); err != nil {
		return nil, err
	}

	sk, err := uc.skills.Get(ctx, req.SkillID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, verification.ErrSkillNotFound(req.SkillID)
		}
		span.RecordError(err)
		return nil, err
	}
	reviewer, err := uc.eligibleReviewer(ctx, in.ReviewerID, sk.Sector)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if req.Status == verification.StatusApproved {
		err = uc.requests.Approve(ctx, req, VerificationSource(reviewer.Name))
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
	} else if err := uc.requests.UpdateDecision(ctx, req); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("request.status", string(req.Status)))
	metrics.VerificationDecisionsTotal.WithLabelValues(string(req.Status)).Inc()
	uc.logger.Info("Verification decided",
		zap.String("request_id", req.ID.String()), zap.String("status", string(req.Status)))
	uc.publish(verification.EventDecided, req)
	return uc.requests.GetView(ctx, req.ID)
}

func (uc *VerificationUseCase) ListSent(ctx context.Context, requesterID uuid.UUID, status string) ([]*verification.View, error) {
	st, err := verification.ParseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	return uc.requests.ListByRequester(ctx, requesterID, st)
}

func (uc *VerificationUseCase) ListReceived(ctx context.Context, reviewerID uuid.UUID, status string) ([]*verification.View, error) {
	st, err := verification.ParseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	return uc.requests.ListByReviewer(ctx, reviewerID, st)
}

// Get returns a request to one of its two parties. Anyone else sees a
// not-found error.
func (uc *VerificationUseCase) Get(ctx context.Context, requestID, userID uuid.UUID) (*verification.View, error) {
	v, err := uc.requests.GetView(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if v.RequesterID != userID && v.ReviewerID != userID {
		return nil, verification.ErrNotFound(requestID)
	}
	return v, nil
}

func (uc *VerificationUseCase) publish(eventType string, req *verification.Request) {
	if uc.publisher == nil {
		return
	}
	evt := verification.NewEvent(eventType, req, time.Now().UTC())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), service.PublishTimeout)
		defer cancel()
		if err := uc.publisher.PublishVerificationEvent(ctx, evt); err != nil {
			uc.logger.Error("Failed to publish verification event", err,
				zap.String("request_id", evt.RequestID.String()), zap.String("event_type", eventType))
		}
	}()
}

// VerificationSource is the provenance text stored on a skill approved by
// the named reviewer.
func VerificationSource(reviewerName string) string {
	return "Verified by " + reviewerName
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
