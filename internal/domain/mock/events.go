package mock

import (
	"context"
	"sync"

	"github.com/khoahotran/skillfolio/internal/domain/analytics"
	"github.com/khoahotran/skillfolio/internal/domain/skill"
	"github.com/khoahotran/skillfolio/internal/domain/verification"
)

// Publisher records published events. Set Err to make every publish fail.
type Publisher struct {
	mu                 sync.Mutex
	Err                error
	SkillEvents        []skill.Event
	VerificationEvents []verification.Event
	AnalyticsEvents    []analytics.Event
}

func (p *Publisher) PublishSkillEvent(_ context.Context, e skill.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.SkillEvents = append(p.SkillEvents, e)
	return p.Err
}

func (p *Publisher) PublishVerificationEvent(_ context.Context, e verification.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.VerificationEvents = append(p.VerificationEvents, e)
	return p.Err
}

func (p *Publisher) PublishAnalyticsEvent(_ context.Context, e analytics.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.AnalyticsEvents = append(p.AnalyticsEvents, e)
	return p.Err
}

// VerificationEventTypes returns the recorded verification event types in order.
func (p *Publisher) VerificationEventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.VerificationEvents))
	for i, e := range p.VerificationEvents {
		out[i] = e.Type
	}
	return out
}

func (p *Publisher) SkillEventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.SkillEvents))
	for i, e := range p.SkillEvents {
		out[i] = e.Type
	}
	return out
}

func (p *Publisher) AnalyticsEventCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.AnalyticsEvents)
}
