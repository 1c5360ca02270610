package scoring

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/skillfolio/internal/domain/certification"
	"github.com/khoahotran/skillfolio/internal/domain/project"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/internal/domain/skill"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sk(name, category string, level int, verified bool) *skill.Skill {
	return &skill.Skill{ID: uuid.New(), Name: name, Category: category, ProficiencyLevel: level, Verified: verified}
}

func cert(active bool) *certification.Certification {
	c := &certification.Certification{ID: uuid.New(), Name: "cert", IssueDate: now.AddDate(-1, 0, 0)}
	exp := now.AddDate(1, 0, 0)
	if !active {
		exp = now.AddDate(0, -1, 0)
	}
	c.ExpiryDate = &exp
	return c
}

func proj(status project.Status, public bool, tech ...string) *project.Project {
	return &project.Project{ID: uuid.New(), Title: "p", Status: status, IsPublic: public, Technologies: tech}
}

func TestAssess_HealthcareScenarioB(t *testing.T) {
	snap := Snapshot{
		Sector: sector.Healthcare,
		Skills: []*skill.Skill{
			sk("Triage", "CLINICAL_SKILLS", 5, false),
			sk("Bedside", "PATIENT_CARE", 5, false),
			sk("EHR", "HEALTH_INFORMATICS", 5, false),
			sk("Imaging", "MEDICAL_TECHNOLOGY", 5, false),
			sk("Epidemiology", "PUBLIC_HEALTH", 5, false),
		},
		Certifications: []*certification.Certification{cert(true), cert(true)},
		Projects: []*project.Project{
			proj(project.StatusCompleted, false),
			proj(project.StatusCompleted, false),
			proj(project.StatusCompleted, false),
		},
	}

	a := Assess(snap, now)

	assert.Equal(t, 78, a.OverallScore)
	assert.Equal(t, 20, a.CareerReadiness)
	// 5/10*30 + 30 + min(24,25) = 69
	assert.Equal(t, 69, a.IndustryAlignment)
	assert.Empty(t, a.SkillGaps)
	assert.Len(t, a.Strengths, 5)
	assert.Equal(t, "5.00", a.AverageProficiency)
	assert.Equal(t, "Beginner", a.ReadinessLevel)
	assert.Len(t, a.CompetencyBreakdown, len(sector.CatalogFor(sector.Healthcare).Categories))
	assert.Equal(t, 10, a.DataPoints)
}

func TestAssess_EmptyAgriculture(t *testing.T) {
	a := Assess(Snapshot{Sector: sector.Agriculture}, now)

	require.NotNil(t, a.InnovationScore)
	assert.Equal(t, 0, *a.InnovationScore)
	assert.Equal(t, 0, a.TotalSkills)
	assert.Equal(t, 0, a.Certifications)
	assert.Equal(t, 0, a.CompletedProjects)
	assert.Equal(t, "0.00", a.AverageProficiency)
	assert.Equal(t, 0, a.OverallScore)
	assert.Equal(t, 0, a.CareerReadiness)
	assert.Len(t, a.SkillGaps, 4)
	assert.Nil(t, a.ImpactScore)
}

func TestScoresAreBoundedAndDeterministic(t *testing.T) {
	skills := make([]*skill.Skill, 0, 40)
	for i := 0; i < 40; i++ {
		skills = append(skills, sk("s", "URBAN_PLANNING", 5, true))
	}
	certs := []*certification.Certification{cert(true), cert(true), cert(true), cert(true), cert(true), cert(true)}
	projects := make([]*project.Project, 0, 10)
	for i := 0; i < 10; i++ {
		projects = append(projects, proj(project.StatusCompleted, true, "qgis"))
	}
	snap := Snapshot{Sector: sector.Urban, Skills: skills, Certifications: certs, Projects: projects}

	first := Assess(snap, now)
	second := Assess(snap, now)
	assert.Equal(t, first, second)

	for _, v := range []int{first.OverallScore, first.CareerReadiness, first.IndustryAlignment, *first.ImpactScore} {
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 100)
	}
	assert.Equal(t, 100, first.OverallScore)
	assert.Equal(t, 100, first.IndustryAlignment)
	for _, p := range CareerPathways(snap) {
		assert.LessOrEqual(t, p.MatchScore, 100)
	}
}

func TestClampRoundsHalfUp(t *testing.T) {
	assert.Equal(t, 3, Clamp(2.5))
	assert.Equal(t, 2, Clamp(2.49))
	assert.Equal(t, 100, Clamp(180))
	assert.Equal(t, 0, Clamp(-3))
}

func TestCareerReadiness_ExpiredCertsDoNotCount(t *testing.T) {
	c := Count(Snapshot{
		Sector:         sector.Healthcare,
		Skills:         []*skill.Skill{sk("a", "PATIENT_CARE", 3, true), sk("b", "PATIENT_CARE", 3, false)},
		Certifications: []*certification.Certification{cert(true), cert(false)},
	}, now)

	assert.Equal(t, 1, c.ActiveCertifications)
	// 1/2*50 + 10
	assert.Equal(t, 35, CareerReadiness(c))
}

func TestSkillGaps(t *testing.T) {
	gaps := SkillGaps(Snapshot{
		Sector: sector.Healthcare,
		Skills: []*skill.Skill{sk("Triage", "CLINICAL_SKILLS", 3, false)},
	})

	require.Len(t, gaps, 4)
	assert.Equal(t, "PATIENT_CARE", gaps[0].Category)
	assert.Equal(t, "high", gaps[0].Importance)
	assert.Equal(t, "Consider learning patient care", gaps[0].Recommendation)
}

func TestStrengths_SortedStableAndCapped(t *testing.T) {
	skills := []*skill.Skill{
		sk("a", "X", 4, false),
		sk("b", "X", 5, false),
		sk("c", "X", 4, false),
		sk("d", "X", 3, false),
		sk("e", "X", 5, false),
		sk("f", "X", 4, false),
		sk("g", "X", 4, false),
	}

	got := Strengths(skills)

	require.Len(t, got, 5)
	names := []string{got[0].Skill, got[1].Skill, got[2].Skill, got[3].Skill, got[4].Skill}
	assert.Equal(t, []string{"b", "e", "a", "c", "f"}, names)
}

func TestRecommendations_Order(t *testing.T) {
	snap := Snapshot{
		Sector: sector.Agriculture,
		Skills: []*skill.Skill{sk("Soil", "SOIL_SCIENCE", 2, false)},
	}
	recs := Recommendations(snap, SkillGaps(snap))

	require.Len(t, recs, 3)
	assert.Equal(t, "skill_gap", recs[0].Type)
	assert.Contains(t, recs[0].Description, "crop management, precision agriculture, sustainable farming")
	assert.Equal(t, "skill_improvement", recs[1].Type)
	assert.Equal(t, "medium", recs[1].Priority)
	assert.Equal(t, "certification", recs[2].Type)
}

func TestRecommendations_NoneWhenComplete(t *testing.T) {
	snap := Snapshot{
		Sector: sector.Urban,
		Skills: []*skill.Skill{
			sk("a", "URBAN_PLANNING", 4, false),
			sk("b", "SMART_CITY_TECH", 4, false),
			sk("c", "GIS_MAPPING", 4, false),
			sk("d", "INFRASTRUCTURE", 4, false),
		},
		Certifications: []*certification.Certification{cert(true), cert(true)},
	}
	assert.Empty(t, Recommendations(snap, SkillGaps(snap)))
}

func TestCareerPathways_MatchScore(t *testing.T) {
	snap := Snapshot{
		Sector: sector.Agriculture,
		Skills: []*skill.Skill{
			sk("Crops", "CROP_MANAGEMENT", 4, false),
			sk("Soil", "SOIL_SCIENCE", 4, false),
		},
	}

	pathways := CareerPathways(snap)
	require.NotEmpty(t, pathways)

	// Agronomist: 2/2 matched -> 100*0.7 + 80*0.3 = 94
	assert.Equal(t, "Agronomist", pathways[0].Role)
	assert.Equal(t, 94, pathways[0].MatchScore)
	assert.Empty(t, pathways[0].MissingCategories)

	for i := 1; i < len(pathways); i++ {
		assert.GreaterOrEqual(t, pathways[i-1].MatchScore, pathways[i].MatchScore)
	}

	roles := SuggestedRoles(pathways, 3)
	assert.Len(t, roles, 3)
	assert.Equal(t, "Agronomist", roles[0].Role)

	// Sustainability Consultant and Farm Operations Manager both match one of
	// three categories at level 4 (47) and keep their table order.
	assert.Equal(t, []string{"Agronomist", "Sustainability Consultant", "Farm Operations Manager", "Precision Agriculture Specialist"},
		pathwayRoles(pathways))
	assert.Equal(t, []int{94, 47, 47, 0}, pathwayScores(pathways))
}

func TestCareerPathways_ClampedTiesKeepTableOrder(t *testing.T) {
	snap := Snapshot{Sector: sector.Healthcare}
	for i := 0; i < 5; i++ {
		snap.Skills = append(snap.Skills, sk("Clinical", "CLINICAL_SKILLS", 5, false))
	}

	pathways := CareerPathways(snap)

	// Five skills in one required category push both matching pathways past
	// 100 before the clamp.
	assert.Equal(t, []string{"Clinical Nurse Specialist", "Biomedical Equipment Technician", "Health Informatics Specialist", "Public Health Analyst"},
		pathwayRoles(pathways))
	assert.Equal(t, []int{100, 100, 0, 0}, pathwayScores(pathways))
}

func pathwayRoles(pathways []PathwayMatch) []string {
	roles := make([]string, len(pathways))
	for i, p := range pathways {
		roles[i] = p.Role
	}
	return roles
}

func pathwayScores(pathways []PathwayMatch) []int {
	scores := make([]int, len(pathways))
	for i, p := range pathways {
		scores[i] = p.MatchScore
	}
	return scores
}
