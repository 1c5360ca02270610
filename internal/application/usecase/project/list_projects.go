package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/project"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type ListProjectsUseCase struct {
	projectRepo project.Repository
	logger      logger.Logger
}

func NewListProjectsUseCase(pRepo project.Repository, log logger.Logger) *ListProjectsUseCase {
	return &ListProjectsUseCase{projectRepo: pRepo, logger: log}
}

type ListProjectsInput struct {
	UserID   uuid.UUID
	Sector   sector.Sector
	Category string
	Status   string
	Search   string
	Page     int
	Limit    int
}

func (uc *ListProjectsUseCase) Execute(ctx context.Context, input ListProjectsInput) ([]*project.Project, error) {
	if input.Limit <= 0 {
		input.Limit = 50
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	if input.Page <= 0 {
		input.Page = 1
	}
	offset := (input.Page - 1) * input.Limit

	f := project.Filter{
		UserID:   input.UserID,
		Sector:   input.Sector,
		Category: input.Category,
		Search:   input.Search,
		Limit:    input.Limit,
		Offset:   offset,
	}
	if input.Status != "" {
		st, err := project.ParseStatus(input.Status)
		if err != nil {
			return nil, apperror.NewInvalidInput(err.Error(), err)
		}
		f.Status = st
	}
	return uc.projectRepo.List(ctx, f)
}
