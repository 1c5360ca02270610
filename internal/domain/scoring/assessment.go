package scoring

import (
	"fmt"
	"time"

	"github.com/khoahotran/skillfolio/internal/domain/sector"
)

const suggestedRoleCount = 3

// Assessment is the full computed view of one sector snapshot.
type Assessment struct {
	Sector               sector.Sector        `json:"sector"`
	TotalSkills          int                  `json:"totalSkills"`
	VerifiedSkills       int                  `json:"verifiedSkills"`
	Certifications       int                  `json:"certifications"`
	ActiveCertifications int                  `json:"activeCertifications"`
	CompletedProjects    int                  `json:"completedProjects"`
	PublicProjects       int                  `json:"publicProjects"`
	AverageProficiency   string               `json:"averageProficiency"`
	OverallScore         int                  `json:"overallScore"`
	CareerReadiness      int                  `json:"careerReadiness"`
	IndustryAlignment    int                  `json:"industryAlignment"`
	SkillGaps            []SkillGap           `json:"skillGaps"`
	Strengths            []Strength           `json:"strengths"`
	Recommendations      []Recommendation     `json:"recommendations"`
	SuggestedRoles       []SuggestedRole      `json:"suggestedRoles"`
	CompetencyBreakdown  []CategoryCompetency `json:"competencyBreakdown,omitempty"`
	ReadinessLevel       string               `json:"readinessLevel,omitempty"`
	InnovationScore      *int                 `json:"innovationScore,omitempty"`
	ImpactScore          *int                 `json:"impactScore,omitempty"`
	DataPoints           int                  `json:"dataPoints"`
	CalculatedAt         time.Time            `json:"calculatedAt"`
}

func Assess(s Snapshot, now time.Time) Assessment {
	c := Count(s, now)
	gaps := SkillGaps(s)
	pathways := CareerPathways(s)

	a := Assessment{
		Sector:               s.Sector,
		TotalSkills:          c.TotalSkills,
		VerifiedSkills:       c.VerifiedSkills,
		Certifications:       c.Certifications,
		ActiveCertifications: c.ActiveCertifications,
		CompletedProjects:    c.CompletedProjects,
		PublicProjects:       c.PublicProjects,
		AverageProficiency:   fmt.Sprintf("%.2f", c.AverageProficiency),
		OverallScore:         OverallScore(c),
		CareerReadiness:      CareerReadiness(c),
		IndustryAlignment:    IndustryAlignment(c),
		SkillGaps:            gaps,
		Strengths:            Strengths(s.Skills),
		Recommendations:      Recommendations(s, gaps),
		SuggestedRoles:       SuggestedRoles(pathways, suggestedRoleCount),
		DataPoints:           len(s.Skills) + len(s.Certifications) + len(s.Projects),
		CalculatedAt:         now,
	}

	switch s.Sector {
	case sector.Healthcare:
		a.CompetencyBreakdown = CompetencyBreakdown(s)
		a.ReadinessLevel = ReadinessLevel(a.CareerReadiness)
	case sector.Agriculture:
		v := InnovationScore(c)
		a.InnovationScore = &v
	case sector.Urban:
		v := ImpactScore(c)
		a.ImpactScore = &v
	}
	return a
}
