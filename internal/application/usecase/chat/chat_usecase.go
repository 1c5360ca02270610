package chat

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/application/service"
	"github.com/khoahotran/skillfolio/internal/domain/guidance"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
	"github.com/khoahotran/skillfolio/pkg/metrics"
)

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"

	// MaxHistoryTurns bounds how much prior conversation is forwarded.
	MaxHistoryTurns = 10
	maxMessageLen   = 4000
)

const systemPrompt = "You are Skillfolio's career guidance assistant. You help students and professionals " +
	"plan careers in healthcare, agriculture and urban development: which skills to learn, which " +
	"certifications to earn, which projects to build and which roles fit them. Keep answers short, " +
	"practical and encouraging. Politely steer unrelated questions back to career topics."

type ChatUseCase struct {
	llm    service.LLMService
	logger logger.Logger
}

// NewChatUseCase accepts a nil llm; every message is then answered from the
// canned replies.
func NewChatUseCase(llm service.LLMService, log logger.Logger) *ChatUseCase {
	return &ChatUseCase{
		llm:    llm,
		logger: log,
	}
}

type ChatInput struct {
	Message string
	History []service.ChatMessage
}

type ChatOutput struct {
	Reply  string `json:"reply"`
	Source string `json:"source"`
}

// Execute always produces a reply. Provider failures are logged and answered
// with a keyword-matched canned reply.
func (uc *ChatUseCase) Execute(ctx context.Context, input ChatInput) (*ChatOutput, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, apperror.NewInvalidInput("message is required", nil)
	}
	if len(message) > maxMessageLen {
		return nil, apperror.NewInvalidInput("message is too long", nil)
	}

	if uc.llm == nil {
		return uc.fallback(message), nil
	}

	start := time.Now()
	reply, err := uc.llm.GenerateChatResponse(ctx, buildConversation(message, input.History))
	if err != nil || strings.TrimSpace(reply) == "" {
		metrics.UpstreamRequestDuration.WithLabelValues(metrics.ProviderChat, "error").Observe(time.Since(start).Seconds())
		uc.logger.Warn("Chat provider failed, serving canned reply", zap.Error(err))
		return uc.fallback(message), nil
	}
	metrics.UpstreamRequestDuration.WithLabelValues(metrics.ProviderChat, "ok").Observe(time.Since(start).Seconds())

	return &ChatOutput{Reply: strings.TrimSpace(reply), Source: SourceAI}, nil
}

// Validate reports whether a message is on-topic without calling a provider.
func (uc *ChatUseCase) Validate(message string) bool {
	return guidance.IsRelevant(message)
}

func (uc *ChatUseCase) fallback(message string) *ChatOutput {
	metrics.UpstreamFallbacksTotal.WithLabelValues(metrics.ProviderChat).Inc()
	return &ChatOutput{Reply: guidance.FallbackReply(message), Source: SourceFallback}
}

// buildConversation keeps the last MaxHistoryTurns user/assistant messages,
// dropping empty ones and any client-supplied system messages.
func buildConversation(message string, history []service.ChatMessage) []service.ChatMessage {
	kept := make([]service.ChatMessage, 0, len(history))
	for _, m := range history {
		role := strings.ToLower(strings.TrimSpace(m.Role))
		if role != service.ChatRoleUser && role != service.ChatRoleAssistant {
			continue
		}
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		kept = append(kept, service.ChatMessage{Role: role, Content: m.Content})
	}
	if len(kept) > MaxHistoryTurns {
		kept = kept[len(kept)-MaxHistoryTurns:]
	}

	msgs := make([]service.ChatMessage, 0, len(kept)+2)
	msgs = append(msgs, service.ChatMessage{Role: service.ChatRoleSystem, Content: systemPrompt})
	msgs = append(msgs, kept...)
	msgs = append(msgs, service.ChatMessage{Role: service.ChatRoleUser, Content: message})
	return msgs
}
