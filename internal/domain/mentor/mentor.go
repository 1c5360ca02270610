package mentor

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/sector"
)

type Profile struct {
	UserID       uuid.UUID  `json:"user_id"`
	Name         string     `json:"name"`
	Sectors      []string   `json:"sectors"`
	Organization string     `json:"organization"`
	Title        string     `json:"title"`
	Bio          string     `json:"bio"`
	ContactEmail string     `json:"contact_email"`
	IsApproved   bool       `json:"is_approved"`
	ApprovedAt   *time.Time `json:"approved_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

var (
	ErrNoSectors    = errors.New("a mentor must cover at least one sector")
	ErrInvalidEmail = errors.New("contact email is not valid")
)

// CoversSector compares case-insensitively.
func (p *Profile) CoversSector(s string) bool {
	for _, own := range p.Sectors {
		if sector.Equal(own, s) {
			return true
		}
	}
	return false
}

// CanReview reports whether the mentor may verify a skill of the given sector.
func (p *Profile) CanReview(s string) bool {
	return p.IsApproved && p.CoversSector(s)
}

func (p *Profile) Validate() error {
	if len(p.Sectors) == 0 {
		return ErrNoSectors
	}
	seen := make(map[sector.Sector]bool, len(p.Sectors))
	normalized := make([]string, 0, len(p.Sectors))
	for i, s := range p.Sectors {
		parsed, err := sector.Parse(s)
		if err != nil {
			return fmt.Errorf("sectors[%d]: %w", i, err)
		}
		if !seen[parsed] {
			seen[parsed] = true
			normalized = append(normalized, string(parsed))
		}
	}
	p.Sectors = normalized
	if email := strings.TrimSpace(p.ContactEmail); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return ErrInvalidEmail
		}
	}
	return nil
}

type Filter struct {
	Sector   sector.Sector
	Approved *bool
}

type Repository interface {
	Get(ctx context.Context, userID uuid.UUID) (*Profile, error)
	// Upsert writes the self-editable fields and never changes approval.
	Upsert(ctx context.Context, p *Profile) error
	SetApproval(ctx context.Context, userID uuid.UUID, approved bool, at time.Time) error
	List(ctx context.Context, f Filter) ([]*Profile, error)
}
