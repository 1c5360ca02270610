package skill

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/sector"
)

const (
	MinProficiency = 1
	MaxProficiency = 5
)

type Skill struct {
	ID                 uuid.UUID     `json:"id"`
	UserID             uuid.UUID     `json:"user_id"`
	Name               string        `json:"name"`
	Category           string        `json:"category"`
	Sector             sector.Sector `json:"sector"`
	ProficiencyLevel   int           `json:"proficiency_level"`
	Verified           bool          `json:"verified"`
	VerificationSource *string       `json:"verification_source"`
	Tags               []string      `json:"tags"`
	Description        string        `json:"description"`
	YearsOfExperience  float64       `json:"years_of_experience"`
	LastUsed           *time.Time    `json:"last_used"`
	Endorsements       int           `json:"endorsements"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

var (
	ErrNameRequired        = errors.New("skill name is required")
	ErrInvalidProficiency  = errors.New("proficiency level must be between 1 and 5")
	ErrInvalidCategory     = errors.New("category is not valid for the skill's sector")
	ErrNegativeExperience  = errors.New("years of experience cannot be negative")
	ErrNegativeEndorsement = errors.New("endorsements cannot be negative")
)

func (s *Skill) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrNameRequired
	}
	if !s.Sector.Valid() {
		return sector.ErrUnknownSector
	}
	if s.ProficiencyLevel < MinProficiency || s.ProficiencyLevel > MaxProficiency {
		return ErrInvalidProficiency
	}
	s.Category = strings.ToUpper(strings.TrimSpace(s.Category))
	if !sector.ValidCategory(s.Sector, s.Category) {
		return ErrInvalidCategory
	}
	if s.YearsOfExperience < 0 {
		return ErrNegativeExperience
	}
	if s.Endorsements < 0 {
		return ErrNegativeEndorsement
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	return nil
}

// Filter narrows an owner's skill list. Zero values mean "no filter".
type Filter struct {
	UserID   uuid.UUID
	Sector   sector.Sector
	Category string
	Search   string
	Limit    int
	Offset   int
}

type Repository interface {
	Save(ctx context.Context, s *Skill) error
	Update(ctx context.Context, s *Skill) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Skill, error)
	// Get loads a skill regardless of owner, for workflows that check
	// ownership themselves.
	Get(ctx context.Context, id uuid.UUID) (*Skill, error)
	List(ctx context.Context, f Filter) ([]*Skill, error)
	// MarkVerified sets verified=true and the verification source. It is
	// idempotent.
	MarkVerified(ctx context.Context, id uuid.UUID, source string) error
}

const (
	EventCreated = "skill.created"
	EventUpdated = "skill.updated"
	EventDeleted = "skill.deleted"
)

type Event struct {
	Type       string        `json:"type"`
	SkillID    uuid.UUID     `json:"skill_id"`
	UserID     uuid.UUID     `json:"user_id"`
	Sector     sector.Sector `json:"sector"`
	OccurredAt time.Time     `json:"occurred_at"`
}
