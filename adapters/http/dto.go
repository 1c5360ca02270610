package http

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/khoahotran/skillfolio/internal/application/service"
	"github.com/khoahotran/skillfolio/internal/domain/profile"
)

// Date accepts "2006-01-02" as well as RFC 3339 timestamps.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t.UTC()
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t.UTC()
	return nil
}

func (d *Date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// Auth DTOs

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Profile DTOs

type UpdateProfileRequest struct {
	Bio                 *string               `json:"bio"`
	Phone               *string               `json:"phone"`
	Location            *string               `json:"location"`
	Website             *string               `json:"website"`
	LinkedInURL         *string               `json:"linkedin_url"`
	GithubURL           *string               `json:"github_url"`
	Education           *[]profile.Education  `json:"education"`
	Experience          *[]profile.Experience `json:"experience"`
	Interests           *[]string             `json:"interests"`
	TargetSectors       *[]string             `json:"target_sectors"`
	LearningPreferences map[string]any        `json:"learning_preferences"`
}

// Skill DTOs

type CreateSkillRequest struct {
	Name              string   `json:"name" binding:"required"`
	Category          string   `json:"category" binding:"required"`
	Sector            string   `json:"sector"`
	ProficiencyLevel  int      `json:"proficiency_level"`
	Tags              []string `json:"tags"`
	Description       string   `json:"description"`
	YearsOfExperience float64  `json:"years_of_experience"`
	LastUsed          *Date    `json:"last_used"`
	Endorsements      int      `json:"endorsements"`
}

// UpdateSkillRequest has no verified field: verification only changes
// through the verification workflow.
type UpdateSkillRequest struct {
	Name              *string   `json:"name"`
	Category          *string   `json:"category"`
	ProficiencyLevel  *int      `json:"proficiency_level"`
	Tags              *[]string `json:"tags"`
	Description       *string   `json:"description"`
	YearsOfExperience *float64  `json:"years_of_experience"`
	LastUsed          *Date     `json:"last_used"`
	Endorsements      *int      `json:"endorsements"`
}

// Certification DTOs

type CreateCertificationRequest struct {
	Name                string   `json:"name" binding:"required"`
	IssuingOrganization string   `json:"issuing_organization" binding:"required"`
	CredentialID        *string  `json:"credential_id"`
	CredentialURL       *string  `json:"credential_url"`
	IssueDate           Date     `json:"issue_date"`
	ExpiryDate          *Date    `json:"expiry_date"`
	NeverExpires        bool     `json:"never_expires"`
	RelatedSkills       []string `json:"related_skills"`
}

type UpdateCertificationRequest struct {
	Name                *string   `json:"name"`
	IssuingOrganization *string   `json:"issuing_organization"`
	CredentialID        *string   `json:"credential_id"`
	CredentialURL       *string   `json:"credential_url"`
	IssueDate           *Date     `json:"issue_date"`
	ExpiryDate          *Date     `json:"expiry_date"`
	NeverExpires        *bool     `json:"never_expires"`
	RelatedSkills       *[]string `json:"related_skills"`
}

// Project DTOs

type CreateProjectRequest struct {
	Title         string         `json:"title" binding:"required"`
	Description   string         `json:"description"`
	Category      string         `json:"category"`
	SkillsUsed    []string       `json:"skills_used"`
	Technologies  []string       `json:"technologies"`
	Outcomes      string         `json:"outcomes"`
	Impact        string         `json:"impact"`
	Metrics       map[string]any `json:"metrics"`
	StartDate     *Date          `json:"start_date"`
	EndDate       *Date          `json:"end_date"`
	Status        string         `json:"status"`
	TeamSize      int            `json:"team_size"`
	Role          string         `json:"role"`
	IsPublic      bool           `json:"is_public"`
	RepositoryURL *string        `json:"repository_url"`
	LiveURL       *string        `json:"live_url"`
}

type UpdateProjectRequest struct {
	Title         *string        `json:"title"`
	Description   *string        `json:"description"`
	Category      *string        `json:"category"`
	SkillsUsed    *[]string      `json:"skills_used"`
	Technologies  *[]string      `json:"technologies"`
	Outcomes      *string        `json:"outcomes"`
	Impact        *string        `json:"impact"`
	Metrics       map[string]any `json:"metrics"`
	StartDate     *Date          `json:"start_date"`
	EndDate       *Date          `json:"end_date"`
	Status        *string        `json:"status"`
	TeamSize      *int           `json:"team_size"`
	Role          *string        `json:"role"`
	IsPublic      *bool          `json:"is_public"`
	RepositoryURL *string        `json:"repository_url"`
	LiveURL       *string        `json:"live_url"`
}

// Mentor DTOs

type UpsertMentorRequest struct {
	Sectors      []string `json:"sectors" binding:"required"`
	Organization string   `json:"organization"`
	Title        string   `json:"title"`
	Bio          string   `json:"bio"`
	ContactEmail string   `json:"contact_email"`
}

// Verification DTOs

type CreateVerificationRequest struct {
	ReviewerID  string  `json:"reviewer_id" binding:"required"`
	Message     *string `json:"message"`
	EvidenceURL *string `json:"evidence_url"`
}

type DecisionRequest struct {
	Decision string  `json:"decision" binding:"required"`
	Note     *string `json:"note"`
}

// Chat DTOs

type ChatRequest struct {
	Message             string                `json:"message"`
	ConversationHistory []service.ChatMessage `json:"conversationHistory"`
}

type ChatValidateRequest struct {
	Message string `json:"message"`
}
