package project

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/project"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/pkg/apperror"
)

type UpdateProjectUseCase struct {
	projectRepo project.Repository
}

func NewUpdateProjectUseCase(pRepo project.Repository) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{projectRepo: pRepo}
}

// UpdateProjectInput is a partial update; nil fields keep their stored value.
type UpdateProjectInput struct {
	ProjectID     uuid.UUID
	UserID        uuid.UUID
	Sector        sector.Sector
	Title         *string
	Description   *string
	Category      *string
	SkillsUsed    *[]string
	Technologies  *[]string
	Outcomes      *string
	Impact        *string
	Metrics       map[string]any
	StartDate     *time.Time
	EndDate       *time.Time
	Status        *string
	TeamSize      *int
	Role          *string
	IsPublic      *bool
	RepositoryURL *string
	LiveURL       *string
}

func (uc *UpdateProjectUseCase) Execute(ctx context.Context, input UpdateProjectInput) (*project.Project, error) {
	p, err := findScoped(ctx, uc.projectRepo, input.ProjectID, input.UserID, input.Sector)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Category != nil {
		p.Category = *input.Category
	}
	if input.SkillsUsed != nil {
		p.SkillsUsed = *input.SkillsUsed
	}
	if input.Technologies != nil {
		p.Technologies = *input.Technologies
	}
	if input.Outcomes != nil {
		p.Outcomes = *input.Outcomes
	}
	if input.Impact != nil {
		p.Impact = *input.Impact
	}
	if input.Metrics != nil {
		p.Metrics = input.Metrics
	}
	if input.StartDate != nil {
		p.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		p.EndDate = input.EndDate
	}
	if input.Status != nil {
		p.Status = project.Status(*input.Status)
	}
	if input.TeamSize != nil {
		p.TeamSize = *input.TeamSize
	}
	if input.Role != nil {
		p.Role = *input.Role
	}
	if input.IsPublic != nil {
		p.IsPublic = *input.IsPublic
	}
	if input.RepositoryURL != nil {
		p.RepositoryURL = input.RepositoryURL
	}
	if input.LiveURL != nil {
		p.LiveURL = input.LiveURL
	}

	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.projectRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
