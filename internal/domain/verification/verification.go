package verification

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// ParseStatusFilter accepts an empty string as "any status".
func ParseStatusFilter(s string) (Status, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return st, nil
	}
	return "", ErrInvalidStatus(s)
}

// ParseDecision accepts only the two reviewer outcomes.
func ParseDecision(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusApproved, StatusRejected:
		return st, nil
	}
	return "", ErrInvalidDecision(s)
}

type Request struct {
	ID           uuid.UUID  `json:"id"`
	SkillID      uuid.UUID  `json:"skill_id"`
	RequesterID  uuid.UUID  `json:"requester_id"`
	ReviewerID   uuid.UUID  `json:"reviewer_id"`
	Status       Status     `json:"status"`
	Message      *string    `json:"message"`
	EvidenceURL  *string    `json:"evidence_url"`
	DecisionNote *string    `json:"decision_note"`
	CreatedAt    time.Time  `json:"created_at"`
	DecidedAt    *time.Time `json:"decided_at"`
}

// Cancel moves a pending request to CANCELLED on behalf of its requester.
func (r *Request) Cancel(requesterID uuid.UUID, now time.Time) error {
	if r.RequesterID != requesterID {
		return ErrNotOwner(r.ID)
	}
	if r.Status != StatusPending {
		return ErrNotPending(r.ID, r.Status)
	}
	r.Status = StatusCancelled
	r.DecidedAt = &now
	return nil
}

// Decide records the reviewer's outcome on a pending request.
func (r *Request) Decide(reviewerID uuid.UUID, decision Status, note *string, now time.Time) error {
	if r.ReviewerID != reviewerID {
		return ErrNotReviewer(r.ID)
	}
	if r.Status != StatusPending {
		return ErrNotPending(r.ID, r.Status)
	}
	if decision != StatusApproved && decision != StatusRejected {
		return ErrInvalidDecision(string(decision))
	}
	r.Status = decision
	r.DecisionNote = note
	r.DecidedAt = &now
	return nil
}

// View is a request joined with the names a client needs to render it.
type View struct {
	Request
	SkillName     string `json:"skill_name"`
	SkillSector   string `json:"skill_sector"`
	RequesterName string `json:"requester_name"`
	ReviewerName  string `json:"reviewer_name"`
}

type Repository interface {
	// Create maps a pending-uniqueness violation to DUPLICATE_PENDING_REQUEST.
	Create(ctx context.Context, r *Request) error
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)
	GetView(ctx context.Context, id uuid.UUID) (*View, error)
	HasPending(ctx context.Context, skillID, requesterID, reviewerID uuid.UUID) (bool, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID, status Status) ([]*View, error)
	ListByReviewer(ctx context.Context, reviewerID uuid.UUID, status Status) ([]*View, error)
	// UpdateDecision persists a terminal status only if the stored row is
	// still PENDING; otherwise it returns NOT_PENDING.
	UpdateDecision(ctx context.Context, r *Request) error
	// Approve persists an APPROVED decision and marks the skill verified in
	// one transaction.
	Approve(ctx context.Context, r *Request, verificationSource string) error
	// ListApprovedUnverified returns approved requests whose skill is not
	// currently verified.
	ListApprovedUnverified(ctx context.Context, limit int) ([]*Request, error)
}

const (
	EventCreated   = "verification.created"
	EventCancelled = "verification.cancelled"
	EventDecided   = "verification.decided"
)

// Event is published on every state change of a request.
type Event struct {
	Type        string    `json:"type"`
	RequestID   uuid.UUID `json:"request_id"`
	SkillID     uuid.UUID `json:"skill_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	ReviewerID  uuid.UUID `json:"reviewer_id"`
	Status      Status    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, r *Request, now time.Time) Event {
	return Event{
		Type:        eventType,
		RequestID:   r.ID,
		SkillID:     r.SkillID,
		RequesterID: r.RequesterID,
		ReviewerID:  r.ReviewerID,
		Status:      r.Status,
		OccurredAt:  now,
	}
}
