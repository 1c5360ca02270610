package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/project"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
)

type DeleteProjectUseCase struct {
	projectRepo project.Repository
}

func NewDeleteProjectUseCase(pRepo project.Repository) *DeleteProjectUseCase {
	return &DeleteProjectUseCase{projectRepo: pRepo}
}

type DeleteProjectInput struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Sector    sector.Sector
}

func (uc *DeleteProjectUseCase) Execute(ctx context.Context, input DeleteProjectInput) error {
	if _, err := findScoped(ctx, uc.projectRepo, input.ProjectID, input.UserID, input.Sector); err != nil {
		return err
	}
	return uc.projectRepo.Delete(ctx, input.ProjectID, input.UserID)
}
