package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/qri-io/jsonschema"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/application/service"
	"github.com/khoahotran/skillfolio/internal/config"
	"github.com/khoahotran/skillfolio/internal/domain/guidance"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

const defaultMaxRecommendations = 5

// recommendationSchema is the only response shape accepted from the model.
var recommendationSchema = []byte(`{
	"type": "object",
	"required": ["recommendations"],
	"properties": {
		"recommendations": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["title", "description", "priority", "type"],
				"properties": {
					"title": {"type": "string", "minLength": 1},
					"description": {"type": "string"},
					"priority": {"type": "string", "enum": ["high", "medium", "low"]},
					"type": {"type": "string", "minLength": 1},
					"resources": {"type": "array", "items": {"type": "string"}}
				}
			}
		}
	}
}`)

type recommendationResponse struct {
	Recommendations []guidance.Recommendation `json:"recommendations"`
}

type recommenderAdapter struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	schema  *jsonschema.Schema
	log     logger.Logger
}

func NewRecommenderAdapter(cfg config.UpstreamConfig, log logger.Logger) (service.RecommendationService, error) {
	client, timeout, err := newClient(cfg, "recommender")
	if err != nil {
		return nil, err
	}

	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(recommendationSchema, rs); err != nil {
		return nil, fmt.Errorf("compile recommendation schema: %w", err)
	}

	log.Info("Recommendation (LLM) Adapter initialized", zap.String("model", cfg.Model))
	return &recommenderAdapter{client: client, model: cfg.Model, timeout: timeout, schema: rs, log: log}, nil
}

func (a *recommenderAdapter) Recommend(ctx context.Context, req service.RecommendationRequest) ([]guidance.Recommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	limit := req.MaxResults
	if limit <= 0 {
		limit = defaultMaxRecommendations
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: recommenderSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildRecommendationPrompt(req, limit)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("recommendation request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("recommendation upstream returned no choices")
	}

	recs, err := a.parse(ctx, resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (a *recommenderAdapter) parse(ctx context.Context, content string) ([]guidance.Recommendation, error) {
	raw := []byte(stripCodeFence(content))

	keyErrs, err := a.schema.ValidateBytes(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("recommendation response is not valid JSON: %w", err)
	}
	if len(keyErrs) > 0 {
		return nil, fmt.Errorf("recommendation response failed schema validation: %s", keyErrs[0].Error())
	}

	var out recommendationResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode recommendation response: %w", err)
	}
	for i := range out.Recommendations {
		if out.Recommendations[i].Resources == nil {
			out.Recommendations[i].Resources = []string{}
		}
	}
	return out.Recommendations, nil
}

// stripCodeFence removes a ```json fence some models wrap around JSON output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

const recommenderSystemPrompt = `You are a career development advisor for students entering healthcare, agriculture and urban development careers.
Respond with JSON only, shaped as {"recommendations":[{"title":"","description":"","priority":"high|medium|low","type":"","resources":[""]}]}.`

func buildRecommendationPrompt(req service.RecommendationRequest, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sector: %s\n", req.Sector.Slug())
	fmt.Fprintf(&b, "Overall score: %d/100 (%s)\n", req.OverallScore, req.Band)
	if len(req.SkillGaps) > 0 {
		fmt.Fprintf(&b, "Skill gaps: %s\n", strings.Join(req.SkillGaps, ", "))
	}
	if len(req.Strengths) > 0 {
		fmt.Fprintf(&b, "Strengths: %s\n", strings.Join(req.Strengths, ", "))
	}
	if len(req.TargetRoles) > 0 {
		fmt.Fprintf(&b, "Target roles: %s\n", strings.Join(req.TargetRoles, ", "))
	}
	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, "Interests: %s\n", strings.Join(req.Interests, ", "))
	}
	fmt.Fprintf(&b, "Give at most %d personalised learning recommendations.", limit)
	return b.String()
}
