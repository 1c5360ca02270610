package project

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/sector"
)

type Status string

const (
	StatusPlanned    Status = "PLANNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusOnHold     Status = "ON_HOLD"
)

type Project struct {
	ID            uuid.UUID      `json:"id"`
	UserID        uuid.UUID      `json:"user_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Sector        sector.Sector  `json:"sector"`
	Category      string         `json:"category"`
	SkillsUsed    []string       `json:"skills_used"`
	Technologies  []string       `json:"technologies"`
	Outcomes      string         `json:"outcomes"`
	Impact        string         `json:"impact"`
	Metrics       map[string]any `json:"metrics"`
	StartDate     *time.Time     `json:"start_date"`
	EndDate       *time.Time     `json:"end_date"`
	Status        Status         `json:"status"`
	TeamSize      int            `json:"team_size"`
	Role          string         `json:"role"`
	IsPublic      bool           `json:"is_public"`
	RepositoryURL *string        `json:"repository_url"`
	LiveURL       *string        `json:"live_url"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

var (
	ErrTitleRequired   = errors.New("project title is required")
	ErrInvalidStatus   = errors.New("status must be one of PLANNED, IN_PROGRESS, COMPLETED, ON_HOLD")
	ErrInvalidTeamSize = errors.New("team size must be at least 1")
	ErrEndBeforeStart  = errors.New("end date cannot precede start date")
)

func ParseStatus(s string) (Status, error) {
	if strings.TrimSpace(s) == "" {
		return StatusInProgress, nil
	}
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusOnHold:
		return st, nil
	}
	return "", ErrInvalidStatus
}

func (p *Project) Completed() bool {
	return p.Status == StatusCompleted
}

func (p *Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}
	if !p.Sector.Valid() {
		return sector.ErrUnknownSector
	}
	st, err := ParseStatus(string(p.Status))
	if err != nil {
		return err
	}
	p.Status = st
	if p.TeamSize == 0 {
		p.TeamSize = 1
	}
	if p.TeamSize < 1 {
		return ErrInvalidTeamSize
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return ErrEndBeforeStart
	}
	if p.SkillsUsed == nil {
		p.SkillsUsed = []string{}
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	if p.Metrics == nil {
		p.Metrics = map[string]any{}
	}
	return nil
}

type Filter struct {
	UserID   uuid.UUID
	Sector   sector.Sector
	Category string
	Status   Status
	Search   string
	Limit    int
	Offset   int
}

type Repository interface {
	Save(ctx context.Context, project *Project) error
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Project, error)
	List(ctx context.Context, f Filter) ([]*Project, error)
}
