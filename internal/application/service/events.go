package service

import (
	"context"
	"time"

	"github.com/khoahotran/skillfolio/internal/domain/analytics"
	"github.com/khoahotran/skillfolio/internal/domain/skill"
	"github.com/khoahotran/skillfolio/internal/domain/verification"
)

// EventPublisher emits domain events. Publishing is best effort: callers log
// failures and never fail the request because of them.
type EventPublisher interface {
	PublishSkillEvent(ctx context.Context, e skill.Event) error
	PublishVerificationEvent(ctx context.Context, e verification.Event) error
	PublishAnalyticsEvent(ctx context.Context, e analytics.Event) error
}

// PublishTimeout bounds fire-and-forget publishing goroutines.
const PublishTimeout = 5 * time.Second
