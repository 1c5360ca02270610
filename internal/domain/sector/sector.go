package sector

import (
	"errors"
	"strings"
)

type Sector string

const (
	Healthcare  Sector = "HEALTHCARE"
	Agriculture Sector = "AGRICULTURE"
	Urban       Sector = "URBAN"
)

var ErrUnknownSector = errors.New("sector must be one of HEALTHCARE, AGRICULTURE, URBAN")

// All lists the supported sectors in display order.
var All = []Sector{Healthcare, Agriculture, Urban}

// Parse accepts any casing, e.g. "healthcare" from a route parameter.
func Parse(s string) (Sector, error) {
	switch Sector(strings.ToUpper(strings.TrimSpace(s))) {
	case Healthcare:
		return Healthcare, nil
	case Agriculture:
		return Agriculture, nil
	case Urban:
		return Urban, nil
	}
	return "", ErrUnknownSector
}

func (s Sector) Valid() bool {
	_, err := Parse(string(s))
	return err == nil
}

// Equal compares sectors case-insensitively.
func Equal(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (s Sector) Slug() string {
	return strings.ToLower(string(s))
}

// Pathway is a career role a sector offers, with the skill categories it needs.
type Pathway struct {
	Role               string   `json:"role"`
	Description        string   `json:"description"`
	RequiredCategories []string `json:"requiredCategories"`
	SalaryRange        string   `json:"salaryRange"`
	Demand             string   `json:"demand"`
}

// Catalog is the static description of a sector used by validation and scoring.
type Catalog struct {
	Sector             Sector
	Categories         []string
	RequiredCategories []string
	Pathways           []Pathway
}

// CrossSectorCategories are accepted for a skill in any sector.
var CrossSectorCategories = []string{
	"DATA_ANALYSIS",
	"PROJECT_MANAGEMENT",
	"COMMUNICATION",
	"LEADERSHIP",
	"RESEARCH",
	"PROGRAMMING",
}

var catalogs = map[Sector]Catalog{
	Healthcare: {
		Sector: Healthcare,
		Categories: []string{
			"CLINICAL_SKILLS", "PATIENT_CARE", "MEDICAL_TECHNOLOGY", "HEALTH_INFORMATICS",
			"PHARMACOLOGY", "PUBLIC_HEALTH", "MEDICAL_RESEARCH", "HEALTHCARE_ADMINISTRATION",
		},
		RequiredCategories: []string{
			"CLINICAL_SKILLS", "PATIENT_CARE", "MEDICAL_TECHNOLOGY", "HEALTH_INFORMATICS", "PUBLIC_HEALTH",
		},
		Pathways: []Pathway{
			{
				Role:               "Clinical Nurse Specialist",
				Description:        "Advanced practice nursing focused on direct patient outcomes.",
				RequiredCategories: []string{"CLINICAL_SKILLS", "PATIENT_CARE", "PHARMACOLOGY"},
				SalaryRange:        "$75,000 - $110,000",
				Demand:             "High",
			},
			{
				Role:               "Health Informatics Specialist",
				Description:        "Manages clinical data systems and electronic health records.",
				RequiredCategories: []string{"HEALTH_INFORMATICS", "MEDICAL_TECHNOLOGY", "DATA_ANALYSIS"},
				SalaryRange:        "$70,000 - $105,000",
				Demand:             "Very High",
			},
			{
				Role:               "Public Health Analyst",
				Description:        "Designs and evaluates community health programmes.",
				RequiredCategories: []string{"PUBLIC_HEALTH", "DATA_ANALYSIS", "RESEARCH"},
				SalaryRange:        "$60,000 - $90,000",
				Demand:             "Medium",
			},
			{
				Role:               "Biomedical Equipment Technician",
				Description:        "Installs, maintains and calibrates medical devices.",
				RequiredCategories: []string{"MEDICAL_TECHNOLOGY", "CLINICAL_SKILLS"},
				SalaryRange:        "$50,000 - $80,000",
				Demand:             "High",
			},
		},
	},
	Agriculture: {
		Sector: Agriculture,
		Categories: []string{
			"CROP_MANAGEMENT", "SOIL_SCIENCE", "PRECISION_AGRICULTURE", "AGRIBUSINESS",
			"LIVESTOCK_MANAGEMENT", "SUSTAINABLE_FARMING", "AGRICULTURAL_TECHNOLOGY", "FOOD_SAFETY",
		},
		RequiredCategories: []string{
			"CROP_MANAGEMENT", "SOIL_SCIENCE", "PRECISION_AGRICULTURE", "SUSTAINABLE_FARMING",
		},
		Pathways: []Pathway{
			{
				Role:               "Precision Agriculture Specialist",
				Description:        "Applies sensors, drones and data to optimise yields.",
				RequiredCategories: []string{"PRECISION_AGRICULTURE", "AGRICULTURAL_TECHNOLOGY", "DATA_ANALYSIS"},
				SalaryRange:        "$60,000 - $95,000",
				Demand:             "Very High",
			},
			{
				Role:               "Agronomist",
				Description:        "Advises on crop production and soil health.",
				RequiredCategories: []string{"CROP_MANAGEMENT", "SOIL_SCIENCE"},
				SalaryRange:        "$55,000 - $85,000",
				Demand:             "High",
			},
			{
				Role:               "Sustainability Consultant",
				Description:        "Helps farms adopt regenerative and low-impact practices.",
				RequiredCategories: []string{"SUSTAINABLE_FARMING", "SOIL_SCIENCE", "RESEARCH"},
				SalaryRange:        "$58,000 - $92,000",
				Demand:             "High",
			},
			{
				Role:               "Farm Operations Manager",
				Description:        "Runs day-to-day production, staff and budgets.",
				RequiredCategories: []string{"AGRIBUSINESS", "CROP_MANAGEMENT", "PROJECT_MANAGEMENT"},
				SalaryRange:        "$50,000 - $80,000",
				Demand:             "Medium",
			},
		},
	},
	Urban: {
		Sector: Urban,
		Categories: []string{
			"URBAN_PLANNING", "TRANSPORTATION", "SMART_CITY_TECH", "ENVIRONMENTAL_DESIGN",
			"INFRASTRUCTURE", "GIS_MAPPING", "COMMUNITY_DEVELOPMENT", "HOUSING_POLICY",
		},
		RequiredCategories: []string{
			"URBAN_PLANNING", "SMART_CITY_TECH", "GIS_MAPPING", "INFRASTRUCTURE",
		},
		Pathways: []Pathway{
			{
				Role:               "Urban Planner",
				Description:        "Shapes land use, zoning and long-range city plans.",
				RequiredCategories: []string{"URBAN_PLANNING", "GIS_MAPPING", "COMMUNITY_DEVELOPMENT"},
				SalaryRange:        "$60,000 - $95,000",
				Demand:             "High",
			},
			{
				Role:               "Smart City Engineer",
				Description:        "Builds connected infrastructure and city data platforms.",
				RequiredCategories: []string{"SMART_CITY_TECH", "INFRASTRUCTURE", "PROGRAMMING"},
				SalaryRange:        "$80,000 - $125,000",
				Demand:             "Very High",
			},
			{
				Role:               "Transportation Analyst",
				Description:        "Models traffic and transit to improve mobility.",
				RequiredCategories: []string{"TRANSPORTATION", "DATA_ANALYSIS", "GIS_MAPPING"},
				SalaryRange:        "$62,000 - $98,000",
				Demand:             "High",
			},
			{
				Role:               "GIS Specialist",
				Description:        "Produces spatial analyses and maps for planning decisions.",
				RequiredCategories: []string{"GIS_MAPPING", "DATA_ANALYSIS"},
				SalaryRange:        "$55,000 - $85,000",
				Demand:             "Medium",
			},
		},
	},
}

// CatalogFor returns the static table for a sector. The zero Catalog is
// returned for unknown sectors.
func CatalogFor(s Sector) Catalog {
	return catalogs[s]
}

// ValidCategory reports whether category may be used by a skill in sector s.
func ValidCategory(s Sector, category string) bool {
	c := strings.ToUpper(strings.TrimSpace(category))
	for _, known := range CrossSectorCategories {
		if known == c {
			return true
		}
	}
	for _, known := range catalogs[s].Categories {
		if known == c {
			return true
		}
	}
	return false
}

// HumanizeCategory turns CLINICAL_SKILLS into "clinical skills".
func HumanizeCategory(category string) string {
	return strings.ToLower(strings.ReplaceAll(category, "_", " "))
}
