package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/project"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/pkg/apperror"
)

type GetProjectUseCase struct {
	projectRepo project.Repository
}

func NewGetProjectUseCase(pRepo project.Repository) *GetProjectUseCase {
	return &GetProjectUseCase{projectRepo: pRepo}
}

type GetProjectInput struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Sector    sector.Sector
}

func (uc *GetProjectUseCase) Execute(ctx context.Context, input GetProjectInput) (*project.Project, error) {
	return findScoped(ctx, uc.projectRepo, input.ProjectID, input.UserID, input.Sector)
}

// findScoped loads an owned project, hiding it when the route's sector differs.
func findScoped(ctx context.Context, repo project.Repository, id, userID uuid.UUID, scope sector.Sector) (*project.Project, error) {
	p, err := repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if scope != "" && p.Sector != scope {
		return nil, apperror.NewNotFound("project", id.String())
	}
	return p, nil
}
