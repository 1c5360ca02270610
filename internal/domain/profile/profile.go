package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/sector"
)

type Education struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartYear    int    `json:"startYear,omitempty"`
	EndYear      int    `json:"endYear,omitempty"`
}

type Experience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current"`
}

type Profile struct {
	UserID              uuid.UUID      `json:"user_id"`
	Bio                 string         `json:"bio"`
	Phone               string         `json:"phone"`
	Location            string         `json:"location"`
	Website             string         `json:"website"`
	LinkedInURL         string         `json:"linkedin_url"`
	GithubURL           string         `json:"github_url"`
	Education           []Education    `json:"education"`
	Experience          []Experience   `json:"experience"`
	Interests           []string       `json:"interests"`
	TargetSectors       []string       `json:"target_sectors"`
	LearningPreferences map[string]any `json:"learning_preferences"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// Empty is the profile every user starts with.
func Empty(userID uuid.UUID) *Profile {
	return &Profile{
		UserID:              userID,
		Education:           []Education{},
		Experience:          []Experience{},
		Interests:           []string{},
		TargetSectors:       []string{},
		LearningPreferences: map[string]any{},
		UpdatedAt:           time.Now().UTC(),
	}
}

func (p *Profile) Validate() error {
	for i, s := range p.TargetSectors {
		parsed, err := sector.Parse(s)
		if err != nil {
			return fmt.Errorf("target_sectors[%d]: %w", i, err)
		}
		p.TargetSectors[i] = string(parsed)
	}
	if len(p.Bio) > 2000 {
		return fmt.Errorf("bio must be at most 2000 characters")
	}
	return nil
}

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) error
}
