package service

import (
	"context"

	"github.com/khoahotran/skillfolio/internal/domain/guidance"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
)

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMService answers a conversation with the assistant's next message.
type LLMService interface {
	GenerateChatResponse(ctx context.Context, messages []ChatMessage) (string, error)
}

type RecommendationRequest struct {
	Sector       sector.Sector
	Band         guidance.Band
	OverallScore int
	SkillGaps    []string
	Strengths    []string
	TargetRoles  []string
	Interests    []string
	MaxResults   int
}

// RecommendationService produces learning recommendations for a profile.
type RecommendationService interface {
	Recommend(ctx context.Context, req RecommendationRequest) ([]guidance.Recommendation, error)
}

// CourseCatalog searches an external course provider.
type CourseCatalog interface {
	Search(ctx context.Context, query string, limit int) ([]guidance.Course, error)
}
