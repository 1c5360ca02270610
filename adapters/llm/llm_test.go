package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/skillfolio/internal/application/service"
	"github.com/khoahotran/skillfolio/internal/config"
	"github.com/khoahotran/skillfolio/internal/domain/guidance"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

func completion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "test-model",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	}
}

func upstream(t *testing.T, status int, body any) (*httptest.Server, *string) {
	t.Helper()
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &auth
}

func upstreamConfig(url string) config.UpstreamConfig {
	return config.UpstreamConfig{BaseURL: url, APIKey: "test-key", Model: "test-model", Timeout: 2 * time.Second}
}

func TestNewChatAdapter_RequiresAPIKey(t *testing.T) {
	_, err := NewChatAdapter(config.UpstreamConfig{Model: "m"}, logger.NewNopLogger())
	assert.ErrorContains(t, err, "api_key")
}

func TestChatAdapter_ReturnsReply(t *testing.T) {
	srv, auth := upstream(t, http.StatusOK, completion("  Consider a nursing assistant course.  "))
	a, err := NewChatAdapter(upstreamConfig(srv.URL), logger.NewNopLogger())
	require.NoError(t, err)

	reply, err := a.GenerateChatResponse(context.Background(), []service.ChatMessage{
		{Role: service.ChatRoleSystem, Content: "be helpful"},
		{Role: service.ChatRoleUser, Content: "How do I start in healthcare?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Consider a nursing assistant course.", reply)
	assert.Equal(t, "Bearer test-key", *auth)
}

func TestChatAdapter_UpstreamError(t *testing.T) {
	srv, _ := upstream(t, http.StatusInternalServerError, map[string]any{"error": map[string]any{"message": "boom"}})
	a, err := NewChatAdapter(upstreamConfig(srv.URL), logger.NewNopLogger())
	require.NoError(t, err)

	_, err = a.GenerateChatResponse(context.Background(), []service.ChatMessage{{Role: service.ChatRoleUser, Content: "hi"}})
	assert.Error(t, err)
}

func TestChatAdapter_EmptyReplyIsError(t *testing.T) {
	srv, _ := upstream(t, http.StatusOK, completion("   "))
	a, err := NewChatAdapter(upstreamConfig(srv.URL), logger.NewNopLogger())
	require.NoError(t, err)

	_, err = a.GenerateChatResponse(context.Background(), []service.ChatMessage{{Role: service.ChatRoleUser, Content: "hi"}})
	assert.Error(t, err)
}

func TestRecommenderAdapter_ValidResponse(t *testing.T) {
	body := `{"recommendations":[
		{"title":"Learn GIS","description":"Take a GIS course","priority":"high","type":"course"},
		{"title":"Join a planning project","description":"Volunteer","priority":"medium","type":"project","resources":["City council"]}
	]}`
	srv, _ := upstream(t, http.StatusOK, completion("```json\n"+body+"\n```"))
	a, err := NewRecommenderAdapter(upstreamConfig(srv.URL), logger.NewNopLogger())
	require.NoError(t, err)

	recs, err := a.Recommend(context.Background(), service.RecommendationRequest{
		Sector:       sector.Urban,
		Band:         guidance.BandLow,
		OverallScore: 20,
		SkillGaps:    []string{"Gis Mapping"},
		MaxResults:   1,
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Learn GIS", recs[0].Title)
	assert.NotNil(t, recs[0].Resources)
}

func TestRecommenderAdapter_RejectsSchemaViolation(t *testing.T) {
	srv, _ := upstream(t, http.StatusOK, completion(`{"recommendations":[{"title":"x","priority":"urgent"}]}`))
	a, err := NewRecommenderAdapter(upstreamConfig(srv.URL), logger.NewNopLogger())
	require.NoError(t, err)

	_, err = a.Recommend(context.Background(), service.RecommendationRequest{Sector: sector.Healthcare})
	assert.ErrorContains(t, err, "schema")
}

func TestRecommenderAdapter_RejectsNonJSON(t *testing.T) {
	srv, _ := upstream(t, http.StatusOK, completion("Sure! Here are some ideas..."))
	a, err := NewRecommenderAdapter(upstreamConfig(srv.URL), logger.NewNopLogger())
	require.NoError(t, err)

	_, err = a.Recommend(context.Background(), service.RecommendationRequest{Sector: sector.Agriculture})
	assert.Error(t, err)
}

func TestBuildRecommendationPrompt(t *testing.T) {
	p := buildRecommendationPrompt(service.RecommendationRequest{
		Sector:       sector.Agriculture,
		Band:         guidance.BandMedium,
		OverallScore: 55,
		Strengths:    []string{"Soil testing"},
	}, 3)
	assert.Contains(t, p, "agriculture")
	assert.Contains(t, p, "55/100 (medium)")
	assert.Contains(t, p, "Soil testing")
	assert.Contains(t, p, "at most 3")
	assert.NotContains(t, p, "Skill gaps")
}
