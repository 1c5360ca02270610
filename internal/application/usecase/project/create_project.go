package project

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/project"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/pkg/apperror"
)

type CreateProjectUseCase struct {
	projectRepo project.Repository
}

func NewCreateProjectUseCase(pRepo project.Repository) *CreateProjectUseCase {
	return &CreateProjectUseCase{projectRepo: pRepo}
}

type CreateProjectInput struct {
	UserID        uuid.UUID
	Title         string
	Description   string
	Sector        string
	Category      string
	SkillsUsed    []string
	Technologies  []string
	Outcomes      string
	Impact        string
	Metrics       map[string]any
	StartDate     *time.Time
	EndDate       *time.Time
	Status        string
	TeamSize      int
	Role          string
	IsPublic      bool
	RepositoryURL *string
	LiveURL       *string
}

func (uc *CreateProjectUseCase) Execute(ctx context.Context, input CreateProjectInput) (*project.Project, error) {
	sec, err := sector.Parse(input.Sector)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	now := time.Now().UTC()
	newProject := &project.Project{
		ID:            uuid.New(),
		UserID:        input.UserID,
		Title:         input.Title,
		Description:   input.Description,
		Sector:        sec,
		Category:      input.Category,
		SkillsUsed:    input.SkillsUsed,
		Technologies:  input.Technologies,
		Outcomes:      input.Outcomes,
		Impact:        input.Impact,
		Metrics:       input.Metrics,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Status:        project.Status(input.Status),
		TeamSize:      input.TeamSize,
		Role:          input.Role,
		IsPublic:      input.IsPublic,
		RepositoryURL: input.RepositoryURL,
		LiveURL:       input.LiveURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := newProject.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	if err := uc.projectRepo.Save(ctx, newProject); err != nil {
		return nil, err
	}
	return newProject, nil
}
