package verification

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/application/service"
	"github.com/khoahotran/skillfolio/internal/domain/mentor"
	"github.com/khoahotran/skillfolio/internal/domain/user"
	"github.com/khoahotran/skillfolio/internal/domain/verification"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

// RenderFunc turns the parts of a notification into an HTML body.
type RenderFunc func(heading, skillName, counterpart, detail string) string

// ProcessVerificationEventUseCase handles verification events in the worker:
// it e-mails the party that has to act or learn about the change, and makes
// sure an approved request left its skill verified.
type ProcessVerificationEventUseCase struct {
	requests verification.Repository
	mentors  mentor.Repository
	users    user.Repository
	notifier service.Notifier
	reapply  *ReapplyApprovedUseCase
	render   RenderFunc
	logger   logger.Logger
}

func NewProcessVerificationEventUseCase(
	requests verification.Repository,
	mentors mentor.Repository,
	users user.Repository,
	notifier service.Notifier,
	reapply *ReapplyApprovedUseCase,
	render RenderFunc,
	log logger.Logger,
) *ProcessVerificationEventUseCase {
	if render == nil {
		render = plainBody
	}
	return &ProcessVerificationEventUseCase{
		requests: requests,
		mentors:  mentors,
		users:    users,
		notifier: notifier,
		reapply:  reapply,
		render:   render,
		logger:   log,
	}
}

// Execute is safe to run more than once for the same event. A request that no
// longer exists is skipped without error so the message can be committed.
func (uc *ProcessVerificationEventUseCase) Execute(ctx context.Context, e verification.Event) error {
	view, err := uc.requests.GetView(ctx, e.RequestID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			uc.logger.Warn("Verification request not found, skip", zap.String("request_id", e.RequestID.String()))
			return nil
		}
		return fmt.Errorf("load verification request: %w", err)
	}

	switch e.Type {
	case verification.EventCreated:
		uc.notifyReviewer(ctx, view)
	case verification.EventCancelled:
		uc.notifyRequester(ctx, view, "Verification request cancelled",
			"The request was cancelled before a decision was made.")
	case verification.EventDecided:
		if e.Status == verification.StatusApproved {
			if _, err := uc.reapply.Execute(ctx, e.RequestID); err != nil {
				return fmt.Errorf("reapply approval: %w", err)
			}
		}
		detail := fmt.Sprintf("Your request was %s.", view.Status)
		if view.DecisionNote != nil && *view.DecisionNote != "" {
			detail += " Reviewer note: " + *view.DecisionNote
		}
		uc.notifyRequester(ctx, view, "Verification request "+string(view.Status), detail)
	default:
		uc.logger.Debug("Ignoring verification event", zap.String("type", e.Type))
	}
	return nil
}

func (uc *ProcessVerificationEventUseCase) notifyReviewer(ctx context.Context, view *verification.View) {
	to := ""
	if m, err := uc.mentors.Get(ctx, view.ReviewerID); err == nil && m.ContactEmail != "" {
		to = m.ContactEmail
	} else if u, err := uc.users.FindByID(ctx, view.ReviewerID); err == nil {
		to = u.Email
	}
	detail := "A learner asked you to verify one of their skills."
	if view.Message != nil && *view.Message != "" {
		detail += " Message: " + *view.Message
	}
	uc.send(ctx, to, "New verification request", view.SkillName, view.RequesterName, detail)
}

func (uc *ProcessVerificationEventUseCase) notifyRequester(ctx context.Context, view *verification.View, subject, detail string) {
	to := ""
	if u, err := uc.users.FindByID(ctx, view.RequesterID); err == nil {
		to = u.Email
	}
	uc.send(ctx, to, subject, view.SkillName, view.ReviewerName, detail)
}

// send logs delivery failures and never returns them.
func (uc *ProcessVerificationEventUseCase) send(ctx context.Context, to, subject, skillName, counterpart, detail string) {
	if uc.notifier == nil {
		return
	}
	if to == "" {
		uc.logger.Warn("No recipient for verification notification", zap.String("subject", subject))
		return
	}
	if err := uc.notifier.Send(ctx, to, subject, uc.render(subject, skillName, counterpart, detail)); err != nil {
		uc.logger.Error("Failed to send verification notification", err, zap.String("to", to))
	}
}

func plainBody(heading, skillName, counterpart, detail string) string {
	return fmt.Sprintf("%s\nSkill: %s\nWith: %s\n%s", heading, skillName, counterpart, detail)
}
