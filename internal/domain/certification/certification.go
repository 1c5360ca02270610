package certification

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/sector"
)

type Certification struct {
	ID                  uuid.UUID     `json:"id"`
	UserID              uuid.UUID     `json:"user_id"`
	Name                string        `json:"name"`
	IssuingOrganization string        `json:"issuing_organization"`
	Sector              sector.Sector `json:"sector"`
	CredentialID        *string       `json:"credential_id"`
	CredentialURL       *string       `json:"credential_url"`
	IssueDate           time.Time     `json:"issue_date"`
	ExpiryDate          *time.Time    `json:"expiry_date"`
	NeverExpires        bool          `json:"never_expires"`
	RelatedSkills       []string      `json:"related_skills"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

var (
	ErrNameRequired         = errors.New("certification name is required")
	ErrOrganizationRequired = errors.New("issuing organization is required")
	ErrIssueDateRequired    = errors.New("issue date is required")
	ErrExpiryBeforeIssue    = errors.New("expiry date cannot precede issue date")
)

// Active reports whether the certification is still valid at now.
func (c *Certification) Active(now time.Time) bool {
	if c.NeverExpires {
		return true
	}
	return c.ExpiryDate != nil && c.ExpiryDate.After(now)
}

func (c *Certification) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(c.IssuingOrganization) == "" {
		return ErrOrganizationRequired
	}
	if !c.Sector.Valid() {
		return sector.ErrUnknownSector
	}
	if c.IssueDate.IsZero() {
		return ErrIssueDateRequired
	}
	if c.NeverExpires {
		c.ExpiryDate = nil
	}
	if c.ExpiryDate != nil && c.ExpiryDate.Before(c.IssueDate) {
		return ErrExpiryBeforeIssue
	}
	if c.RelatedSkills == nil {
		c.RelatedSkills = []string{}
	}
	return nil
}

type Filter struct {
	UserID uuid.UUID
	Sector sector.Sector
	Search string
	Limit  int
	Offset int
}

type Repository interface {
	Save(ctx context.Context, c *Certification) error
	Update(ctx context.Context, c *Certification) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Certification, error)
	List(ctx context.Context, f Filter) ([]*Certification, error)
}
