// Package guidance holds the static content served when recommendation,
// course or chat providers are unavailable.
package guidance

import (
	"strings"

	"github.com/khoahotran/skillfolio/internal/domain/sector"
)

type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// BandFor buckets an overall score: <=40 low, 41-70 medium, >70 high.
func BandFor(score int) Band {
	switch {
	case score <= 40:
		return BandLow
	case score <= 70:
		return BandMedium
	}
	return BandHigh
}

type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Type        string   `json:"type"`
	Resources   []string `json:"resources"`
}

type Course struct {
	Title       string  `json:"title"`
	Provider    string  `json:"provider"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
	Level       string  `json:"level"`
	Duration    string  `json:"duration"`
	Rating      float64 `json:"rating"`
	Price       string  `json:"price"`
}

type bandKey struct {
	sector sector.Sector
	band   Band
}

var fallbackRecommendations = map[bandKey][]Recommendation{
	{sector.Healthcare, BandLow}: {
		{Title: "Build clinical foundations", Description: "Start with basic life support and patient care fundamentals.", Priority: "high", Type: "course", Resources: []string{"BLS certification", "Introduction to Patient Care"}},
		{Title: "Learn health informatics basics", Description: "Get familiar with electronic health records and data privacy rules.", Priority: "medium", Type: "course", Resources: []string{"Health Informatics 101"}},
	},
	{sector.Healthcare, BandMedium}: {
		{Title: "Specialise your clinical practice", Description: "Pick a speciality and pursue a recognised certification in it.", Priority: "high", Type: "certification", Resources: []string{"Specialty nursing certification"}},
		{Title: "Add data skills", Description: "Learn to analyse clinical outcomes data.", Priority: "medium", Type: "course", Resources: []string{"Healthcare Data Analytics"}},
	},
	{sector.Healthcare, BandHigh}: {
		{Title: "Move into leadership", Description: "Prepare for supervisory or clinical lead roles.", Priority: "medium", Type: "career", Resources: []string{"Healthcare Leadership Programme"}},
		{Title: "Mentor others", Description: "Register as a mentor and verify junior colleagues' skills.", Priority: "low", Type: "community", Resources: []string{}},
	},
	{sector.Agriculture, BandLow}: {
		{Title: "Learn crop and soil basics", Description: "Understand soil health, irrigation and crop rotation.", Priority: "high", Type: "course", Resources: []string{"Soil Science Fundamentals"}},
		{Title: "Explore sustainable practices", Description: "Study regenerative and low-input farming methods.", Priority: "medium", Type: "course", Resources: []string{"Sustainable Agriculture"}},
	},
	{sector.Agriculture, BandMedium}: {
		{Title: "Adopt precision agriculture", Description: "Learn GPS guidance, remote sensing and yield mapping.", Priority: "high", Type: "course", Resources: []string{"Precision Agriculture Technologies"}},
		{Title: "Strengthen agribusiness skills", Description: "Cover farm finance, markets and supply chains.", Priority: "medium", Type: "course", Resources: []string{"Agribusiness Management"}},
	},
	{sector.Agriculture, BandHigh}: {
		{Title: "Lead innovation projects", Description: "Run a pilot with drones, sensors or data platforms on a working farm.", Priority: "medium", Type: "project", Resources: []string{}},
		{Title: "Pursue advisory roles", Description: "Consider agronomy consulting or extension services.", Priority: "low", Type: "career", Resources: []string{"Certified Crop Adviser"}},
	},
	{sector.Urban, BandLow}: {
		{Title: "Study urban planning principles", Description: "Learn zoning, land use and community engagement basics.", Priority: "high", Type: "course", Resources: []string{"Introduction to Urban Planning"}},
		{Title: "Learn GIS", Description: "Spatial analysis is used across every urban role.", Priority: "high", Type: "course", Resources: []string{"GIS Fundamentals"}},
	},
	{sector.Urban, BandMedium}: {
		{Title: "Add smart city technology", Description: "Study IoT, urban data platforms and digital twins.", Priority: "high", Type: "course", Resources: []string{"Smart Cities"}},
		{Title: "Build a public portfolio project", Description: "Publish a mobility or housing analysis for your city.", Priority: "medium", Type: "project", Resources: []string{}},
	},
	{sector.Urban, BandHigh}: {
		{Title: "Pursue professional accreditation", Description: "Prepare for a chartered or certified planner credential.", Priority: "medium", Type: "certification", Resources: []string{"AICP"}},
		{Title: "Lead multi-stakeholder projects", Description: "Coordinate infrastructure or policy initiatives.", Priority: "low", Type: "career", Resources: []string{}},
	},
}

var fallbackCourses = map[sector.Sector][]Course{
	sector.Healthcare: {
		{Title: "Health Informatics on FHIR", Provider: "Coursera", URL: "https://www.coursera.org/learn/fhir", Description: "Interoperable health data with HL7 FHIR.", Level: "Intermediate", Duration: "4 weeks", Rating: 4.6, Price: "Free to audit"},
		{Title: "Introduction to Clinical Data Science", Provider: "Coursera", URL: "https://www.coursera.org/learn/introduction-clinical-data", Description: "Working with EHR data for research.", Level: "Beginner", Duration: "5 weeks", Rating: 4.5, Price: "Free to audit"},
		{Title: "Global Health: An Interdisciplinary Overview", Provider: "Coursera", URL: "https://www.coursera.org/learn/global-health-overview", Description: "Public health challenges and systems.", Level: "Beginner", Duration: "6 weeks", Rating: 4.7, Price: "Free to audit"},
	},
	sector.Agriculture: {
		{Title: "Sustainable Food Production", Provider: "edX", URL: "https://www.edx.org/learn/sustainable-development", Description: "Farming systems that protect soil and water.", Level: "Beginner", Duration: "6 weeks", Rating: 4.5, Price: "Free to audit"},
		{Title: "Digital Agriculture", Provider: "Coursera", URL: "https://www.coursera.org/learn/digital-agriculture", Description: "Sensors, data and automation on the farm.", Level: "Intermediate", Duration: "4 weeks", Rating: 4.4, Price: "Free to audit"},
		{Title: "Soil Science Basics", Provider: "Alison", URL: "https://alison.com/course/soil-science", Description: "Soil structure, fertility and management.", Level: "Beginner", Duration: "3 hours", Rating: 4.3, Price: "Free"},
	},
	sector.Urban: {
		{Title: "Designing Cities", Provider: "Coursera", URL: "https://www.coursera.org/learn/designing-cities", Description: "Principles of city design and planning.", Level: "Beginner", Duration: "8 weeks", Rating: 4.7, Price: "Free to audit"},
		{Title: "Smart Cities", Provider: "edX", URL: "https://www.edx.org/learn/smart-cities", Description: "Technology and data for urban management.", Level: "Intermediate", Duration: "7 weeks", Rating: 4.5, Price: "Free to audit"},
		{Title: "GIS, Mapping and Spatial Analysis", Provider: "Coursera", URL: "https://www.coursera.org/specializations/gis-mapping-spatial-analysis", Description: "Hands-on GIS with open tools.", Level: "Beginner", Duration: "4 months", Rating: 4.6, Price: "Subscription"},
	},
}

// FallbackRecommendations returns a copy of the static list for the sector and band.
func FallbackRecommendations(s sector.Sector, b Band) []Recommendation {
	src := fallbackRecommendations[bandKey{s, b}]
	out := make([]Recommendation, len(src))
	copy(out, src)
	return out
}

// FallbackCourses returns up to limit static courses for the sector.
func FallbackCourses(s sector.Sector, limit int) []Course {
	src := fallbackCourses[s]
	if limit > 0 && limit < len(src) {
		src = src[:limit]
	}
	out := make([]Course, len(src))
	copy(out, src)
	return out
}

var relevanceKeywords = []string{
	"career", "job", "skill", "certif", "course", "learn", "study", "train", "mentor",
	"interview", "resume", "cv", "salary", "role", "portfolio", "project", "experience",
	"health", "medical", "nurse", "clinic", "hospital", "patient",
	"agricultur", "farm", "crop", "soil", "livestock",
	"urban", "city", "cities", "planning", "transport", "gis", "infrastructure",
}

// IsRelevant reports whether a chat message is about careers, skills or one
// of the supported sectors.
func IsRelevant(message string) bool {
	m := strings.ToLower(message)
	for _, kw := range relevanceKeywords {
		if strings.Contains(m, kw) {
			return true
		}
	}
	return false
}

type cannedReply struct {
	keywords []string
	reply    string
}

var cannedReplies = []cannedReply{
	{
		keywords: []string{"health", "medical", "nurse", "clinic", "hospital", "patient"},
		reply: "Healthcare careers value clinical skills, patient care and growing health informatics expertise. " +
			"Add your healthcare skills, then open the healthcare assessment to see which gaps to close first.",
	},
	{
		keywords: []string{"agricultur", "farm", "crop", "soil", "livestock"},
		reply: "Agriculture is shifting towards precision and sustainable farming. " +
			"Focus on crop management and soil science, then add technology such as sensors or drones to stand out.",
	},
	{
		keywords: []string{"urban", "city", "cities", "planning", "transport", "gis"},
		reply: "Urban development roles combine planning, GIS mapping and smart city technology. " +
			"A public portfolio project analysing your own city is a strong way to show these skills.",
	},
	{
		keywords: []string{"certif"},
		reply: "Certifications help employers trust your skills. Aim for at least two active, recognised certifications in your target sector.",
	},
	{
		keywords: []string{"mentor", "verif"},
		reply: "You can ask an approved mentor in your sector to verify a skill. Verified skills raise your career readiness score.",
	},
	{
		keywords: []string{"skill", "learn", "course"},
		reply: "Start by recording your current skills with honest proficiency levels. " +
			"Your assessment will then highlight missing categories and suggest courses to fill them.",
	},
	{
		keywords: []string{"career", "job", "role", "salary"},
		reply: "Check the career pathways for your sector: each role lists the skill categories it needs and how well you match today.",
	},
}

const defaultReply = "I can help with career planning in healthcare, agriculture and urban development. " +
	"Ask me about skills to learn, certifications to earn or roles that fit your profile."

// FallbackReply picks a canned answer by keyword match on the user message.
func FallbackReply(message string) string {
	m := strings.ToLower(message)
	for _, c := range cannedReplies {
		for _, kw := range c.keywords {
			if strings.Contains(m, kw) {
				return c.reply
			}
		}
	}
	return defaultReply
}
