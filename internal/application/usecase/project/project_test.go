package project

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/skillfolio/internal/domain/mock"
	"github.com/khoahotran/skillfolio/internal/domain/project"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

func TestProjectUseCases(t *testing.T) {
	repo := mock.NewStore().Projects()
	ctx := context.Background()
	userID := uuid.New()

	created, err := NewCreateProjectUseCase(repo).Execute(ctx, CreateProjectInput{
		UserID:       userID,
		Title:        "Drip irrigation pilot",
		Sector:       "agriculture",
		Technologies: []string{"IoT"},
	})
	require.NoError(t, err)
	assert.Equal(t, project.StatusInProgress, created.Status)
	assert.Equal(t, 1, created.TeamSize)
	assert.Equal(t, map[string]any{}, created.Metrics)

	status := "completed"
	public := true
	updated, err := NewUpdateProjectUseCase(repo).Execute(ctx, UpdateProjectInput{
		ProjectID: created.ID, UserID: userID, Sector: sector.Agriculture, Status: &status, IsPublic: &public,
	})
	require.NoError(t, err)
	assert.True(t, updated.Completed())
	assert.Equal(t, "Drip irrigation pilot", updated.Title)

	list, err := NewListProjectsUseCase(repo, logger.NewNopLogger()).Execute(ctx, ListProjectsInput{
		UserID: userID, Status: "COMPLETED",
	})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = NewGetProjectUseCase(repo).Execute(ctx, GetProjectInput{ProjectID: created.ID, UserID: userID, Sector: sector.Urban})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	err = NewDeleteProjectUseCase(repo).Execute(ctx, DeleteProjectInput{ProjectID: created.ID, UserID: uuid.New()})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	require.NoError(t, NewDeleteProjectUseCase(repo).Execute(ctx, DeleteProjectInput{ProjectID: created.ID, UserID: userID}))
}

func TestProjectValidation(t *testing.T) {
	repo := mock.NewStore().Projects()
	ctx := context.Background()
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)

	cases := map[string]CreateProjectInput{
		"missing title":  {Sector: "URBAN"},
		"bad status":     {Title: "Bike lanes", Sector: "URBAN", Status: "ABANDONED"},
		"negative team":  {Title: "Bike lanes", Sector: "URBAN", TeamSize: -2},
		"end before":     {Title: "Bike lanes", Sector: "URBAN", StartDate: &start, EndDate: &end},
		"unknown sector": {Title: "Bike lanes", Sector: "MARINE"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			in.UserID = uuid.New()
			_, err := NewCreateProjectUseCase(repo).Execute(ctx, in)
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		})
	}

	_, err := NewListProjectsUseCase(repo, logger.NewNopLogger()).Execute(ctx, ListProjectsInput{UserID: uuid.New(), Status: "DONE"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
