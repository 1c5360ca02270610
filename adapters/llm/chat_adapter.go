package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/application/service"
	"github.com/khoahotran/skillfolio/internal/config"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type chatAdapter struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     logger.Logger
}

func NewChatAdapter(cfg config.UpstreamConfig, log logger.Logger) (service.LLMService, error) {
	client, timeout, err := newClient(cfg, "chat")
	if err != nil {
		return nil, err
	}

	log.Info("Chat (LLM) Adapter initialized", zap.String("model", cfg.Model))
	return &chatAdapter{client: client, model: cfg.Model, timeout: timeout, log: log}, nil
}

func toOpenAIRole(role string) string {
	switch role {
	case service.ChatRoleSystem:
		return openai.ChatMessageRoleSystem
	case service.ChatRoleAssistant:
		return openai.ChatMessageRoleAssistant
	}
	return openai.ChatMessageRoleUser
}

func (a *chatAdapter) GenerateChatResponse(ctx context.Context, messages []service.ChatMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		Temperature: 0.7,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    toOpenAIRole(m.Role),
			Content: m.Content,
		})
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat upstream returned no choices")
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("chat upstream returned an empty reply")
	}
	return reply, nil
}
