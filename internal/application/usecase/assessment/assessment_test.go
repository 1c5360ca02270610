package assessment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/skillfolio/internal/domain/certification"
	"github.com/khoahotran/skillfolio/internal/domain/mock"
	"github.com/khoahotran/skillfolio/internal/domain/project"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/internal/domain/skill"
)

func newUseCase(store *mock.Store) *AssessmentUseCase {
	return NewAssessmentUseCase(NewSnapshotLoader(store.Skills(), store.Certifications(), store.Projects()))
}

func TestAssess_EmptyAgriculture(t *testing.T) {
	uc := newUseCase(mock.NewStore())

	a, err := uc.Assess(context.Background(), uuid.New(), sector.Agriculture)
	require.NoError(t, err)
	require.NotNil(t, a.InnovationScore)
	assert.Zero(t, *a.InnovationScore)
	assert.Zero(t, a.TotalSkills)
	assert.Zero(t, a.Certifications)
	assert.Zero(t, a.CompletedProjects)
	assert.Equal(t, "0.00", a.AverageProficiency)
}

func TestAssess_HealthcareOnlyCountsOwnSectorRows(t *testing.T) {
	store := mock.NewStore()
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	for i, cat := range []string{"CLINICAL_SKILLS", "PATIENT_CARE", "PHARMACOLOGY", "PUBLIC_HEALTH", "MEDICAL_TECHNOLOGY"} {
		require.NoError(t, store.Skills().Save(ctx, &skill.Skill{
			ID: uuid.New(), UserID: userID, Name: fmt.Sprintf("skill %d", i), Category: cat,
			Sector: sector.Healthcare, ProficiencyLevel: 5, CreatedAt: now,
		}))
	}
	require.NoError(t, store.Skills().Save(ctx, &skill.Skill{
		ID: uuid.New(), UserID: userID, Name: "Soil", Category: "SOIL_SCIENCE",
		Sector: sector.Agriculture, ProficiencyLevel: 1, CreatedAt: now,
	}))
	for i := 0; i < 2; i++ {
		require.NoError(t, store.Certifications().Save(ctx, &certification.Certification{
			ID: uuid.New(), UserID: userID, Name: "BLS", IssuingOrganization: "Red Cross",
			Sector: sector.Healthcare, IssueDate: now, NeverExpires: true,
		}))
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Projects().Save(ctx, &project.Project{
			ID: uuid.New(), UserID: userID, Title: "Ward rotation", Sector: sector.Healthcare,
			Status: project.StatusCompleted, TeamSize: 1, CreatedAt: now,
		}))
	}

	uc := newUseCase(store)
	a, err := uc.Assess(ctx, userID, sector.Healthcare)
	require.NoError(t, err)
	assert.Equal(t, 5, a.TotalSkills)
	assert.Equal(t, 78, a.OverallScore)
	assert.NotEmpty(t, a.ReadinessLevel)
	assert.NotEmpty(t, a.CompetencyBreakdown)

	again, err := uc.Assess(ctx, userID, sector.Healthcare)
	require.NoError(t, err)
	assert.Equal(t, a.OverallScore, again.OverallScore)
	assert.Equal(t, a.CareerReadiness, again.CareerReadiness)

	pathways, err := uc.CareerPathways(ctx, userID, sector.Healthcare)
	require.NoError(t, err)
	require.NotEmpty(t, pathways)
	for i := 1; i < len(pathways); i++ {
		assert.GreaterOrEqual(t, pathways[i-1].MatchScore, pathways[i].MatchScore)
	}
}

func TestLoadAll_PagesUntilShortBatch(t *testing.T) {
	calls := 0
	items, err := loadAll(func(offset int) ([]int, error) {
		calls++
		if offset >= 2*batchSize {
			return make([]int, 7), nil
		}
		return make([]int, batchSize), nil
	})
	require.NoError(t, err)
	assert.Len(t, items, 2*batchSize+7)
	assert.Equal(t, 3, calls)
}
