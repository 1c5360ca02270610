// Package scoring turns a user's skills, certifications and projects in one
// sector into the scores, gaps and pathway matches shown on assessments.
// Everything here is pure and deterministic for a given snapshot and clock.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/khoahotran/skillfolio/internal/domain/certification"
	"github.com/khoahotran/skillfolio/internal/domain/project"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/internal/domain/skill"
)

const maxStrengths = 5

// Snapshot holds the rows of a single user in a single sector.
type Snapshot struct {
	Sector         sector.Sector
	Skills         []*skill.Skill
	Certifications []*certification.Certification
	Projects       []*project.Project
}

type SkillGap struct {
	Category       string `json:"category"`
	Importance     string `json:"importance"`
	Recommendation string `json:"recommendation"`
}

type Strength struct {
	Skill    string `json:"skill"`
	Category string `json:"category"`
	Level    int    `json:"level"`
	Verified bool   `json:"verified"`
}

type Recommendation struct {
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type PathwayMatch struct {
	sector.Pathway
	MatchScore        int      `json:"matchScore"`
	MatchedCategories []string `json:"matchedCategories"`
	MissingCategories []string `json:"missingCategories"`
}

type SuggestedRole struct {
	Role       string `json:"role"`
	MatchScore int    `json:"matchScore"`
}

type CategoryCompetency struct {
	Category           string  `json:"category"`
	SkillCount         int     `json:"skillCount"`
	AverageProficiency float64 `json:"averageProficiency"`
	HasSkills          bool    `json:"hasSkills"`
}

// Counts are the raw aggregates every score is derived from.
type Counts struct {
	TotalSkills          int
	VerifiedSkills       int
	Certifications       int
	ActiveCertifications int
	CompletedProjects    int
	PublicProjects       int
	TechnologyProjects   int
	AverageProficiency   float64
}

func Count(s Snapshot, now time.Time) Counts {
	c := Counts{
		TotalSkills:    len(s.Skills),
		Certifications: len(s.Certifications),
	}
	sum := 0
	for _, sk := range s.Skills {
		sum += sk.ProficiencyLevel
		if sk.Verified {
			c.VerifiedSkills++
		}
	}
	if c.TotalSkills > 0 {
		c.AverageProficiency = float64(sum) / float64(c.TotalSkills)
	}
	for _, cert := range s.Certifications {
		if cert.Active(now) {
			c.ActiveCertifications++
		}
	}
	for _, p := range s.Projects {
		if p.Completed() {
			c.CompletedProjects++
		}
		if p.IsPublic {
			c.PublicProjects++
		}
		if len(p.Technologies) > 0 {
			c.TechnologyProjects++
		}
	}
	return c
}

// Clamp rounds half-up and bounds the result to [0, 100].
func Clamp(x float64) int {
	r := math.Floor(x + 0.5)
	if r > 100 {
		return 100
	}
	if r < 0 {
		return 0
	}
	return int(r)
}

func OverallScore(c Counts) int {
	return Clamp(c.AverageProficiency/5*40 +
		math.Min(float64(c.Certifications)*10, 30) +
		math.Min(float64(c.CompletedProjects)*6, 30))
}

func CareerReadiness(c Counts) int {
	denom := c.TotalSkills
	if denom < 1 {
		denom = 1
	}
	return Clamp(float64(c.VerifiedSkills)/float64(denom)*50 +
		math.Min(float64(c.ActiveCertifications)*10, 50))
}

func IndustryAlignment(c Counts) int {
	return Clamp(float64(c.TotalSkills)/10*30 +
		c.AverageProficiency/5*30 +
		math.Min(float64(c.CompletedProjects)*8, 25) +
		math.Min(float64(c.PublicProjects)*5, 15))
}

// InnovationScore is the agriculture headline score.
func InnovationScore(c Counts) int {
	return Clamp(c.AverageProficiency/5*40 +
		math.Min(float64(c.CompletedProjects)*10, 30) +
		math.Min(float64(c.TechnologyProjects)*10, 30))
}

// ImpactScore is the urban headline score.
func ImpactScore(c Counts) int {
	return Clamp(c.AverageProficiency/5*30 +
		math.Min(float64(c.CompletedProjects)*10, 40) +
		math.Min(float64(c.PublicProjects)*10, 30))
}

// ReadinessLevel labels a career readiness score.
func ReadinessLevel(readiness int) string {
	switch {
	case readiness >= 70:
		return "Ready"
	case readiness >= 40:
		return "Developing"
	}
	return "Beginner"
}

func SkillGaps(s Snapshot) []SkillGap {
	have := categorySet(s.Skills)
	gaps := make([]SkillGap, 0)
	for _, req := range sector.CatalogFor(s.Sector).RequiredCategories {
		if have[req] {
			continue
		}
		gaps = append(gaps, SkillGap{
			Category:       req,
			Importance:     "high",
			Recommendation: "Consider learning " + sector.HumanizeCategory(req),
		})
	}
	return gaps
}

func Strengths(skills []*skill.Skill) []Strength {
	strong := make([]*skill.Skill, 0, len(skills))
	for _, sk := range skills {
		if sk.ProficiencyLevel >= 4 {
			strong = append(strong, sk)
		}
	}
	sort.SliceStable(strong, func(i, j int) bool {
		return strong[i].ProficiencyLevel > strong[j].ProficiencyLevel
	})
	if len(strong) > maxStrengths {
		strong = strong[:maxStrengths]
	}
	out := make([]Strength, len(strong))
	for i, sk := range strong {
		out[i] = Strength{Skill: sk.Name, Category: sk.Category, Level: sk.ProficiencyLevel, Verified: sk.Verified}
	}
	return out
}

// Recommendations emits, in order: gap filling, skill improvement, certification.
func Recommendations(s Snapshot, gaps []SkillGap) []Recommendation {
	recs := make([]Recommendation, 0, 3)
	if len(gaps) > 0 {
		names := make([]string, 0, 3)
		for i, g := range gaps {
			if i == 3 {
				break
			}
			names = append(names, sector.HumanizeCategory(g.Category))
		}
		recs = append(recs, Recommendation{
			Type:        "skill_gap",
			Priority:    "high",
			Title:       "Fill critical skill gaps",
			Description: "Focus on developing skills in: " + strings.Join(names, ", "),
		})
	}
	for _, sk := range s.Skills {
		if sk.ProficiencyLevel < 3 {
			recs = append(recs, Recommendation{
				Type:        "skill_improvement",
				Priority:    "medium",
				Title:       "Strengthen existing skills",
				Description: "Raise the proficiency of skills currently rated below 3 through practice and coursework",
			})
			break
		}
	}
	if len(s.Certifications) < 2 {
		recs = append(recs, Recommendation{
			Type:        "certification",
			Priority:    "high",
			Title:       "Earn industry certifications",
			Description: fmt.Sprintf("Add recognised %s certifications to validate your expertise", sector.HumanizeCategory(string(s.Sector))),
		})
	}
	return recs
}

func CareerPathways(s Snapshot) []PathwayMatch {
	pathways := sector.CatalogFor(s.Sector).Pathways
	out := make([]PathwayMatch, 0, len(pathways))
	for _, p := range pathways {
		required := make(map[string]bool, len(p.RequiredCategories))
		for _, c := range p.RequiredCategories {
			required[c] = true
		}
		matchedSkills, profSum := 0, 0
		matched := map[string]bool{}
		for _, sk := range s.Skills {
			if required[sk.Category] {
				matchedSkills++
				profSum += sk.ProficiencyLevel
				matched[sk.Category] = true
			}
		}
		matchPct := 0.0
		if len(p.RequiredCategories) > 0 {
			matchPct = float64(matchedSkills) / float64(len(p.RequiredCategories)) * 100
		}
		avgMatched := 0.0
		if matchedSkills > 0 {
			avgMatched = float64(profSum) / float64(matchedSkills)
		}

		pm := PathwayMatch{
			Pathway:           p,
			MatchScore:        Clamp(matchPct*0.7 + avgMatched/5*100*0.3),
			MatchedCategories: []string{},
			MissingCategories: []string{},
		}
		for _, c := range p.RequiredCategories {
			if matched[c] {
				pm.MatchedCategories = append(pm.MatchedCategories, c)
			} else {
				pm.MissingCategories = append(pm.MissingCategories, c)
			}
		}
		out = append(out, pm)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchScore > out[j].MatchScore })
	return out
}

func SuggestedRoles(pathways []PathwayMatch, n int) []SuggestedRole {
	if len(pathways) < n {
		n = len(pathways)
	}
	roles := make([]SuggestedRole, n)
	for i := 0; i < n; i++ {
		roles[i] = SuggestedRole{Role: pathways[i].Role, MatchScore: pathways[i].MatchScore}
	}
	return roles
}

func CompetencyBreakdown(s Snapshot) []CategoryCompetency {
	cats := sector.CatalogFor(s.Sector).Categories
	out := make([]CategoryCompetency, len(cats))
	for i, c := range cats {
		count, sum := 0, 0
		for _, sk := range s.Skills {
			if sk.Category == c {
				count++
				sum += sk.ProficiencyLevel
			}
		}
		cc := CategoryCompetency{Category: c, SkillCount: count, HasSkills: count > 0}
		if count > 0 {
			cc.AverageProficiency = math.Round(float64(sum)/float64(count)*100) / 100
		}
		out[i] = cc
	}
	return out
}

func categorySet(skills []*skill.Skill) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, sk := range skills {
		set[sk.Category] = true
	}
	return set
}
