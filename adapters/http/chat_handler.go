package http

import (
	"github.com/gin-gonic/gin"

	chatUC "github.com/khoahotran/skillfolio/internal/application/usecase/chat"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type ChatHandler struct {
	chatUseCase *chatUC.ChatUseCase
	logger      logger.Logger
}

func NewChatHandler(uc *chatUC.ChatUseCase, log logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatUseCase: uc,
		logger:      log,
	}
}

// Message answers with 200 whenever the input is valid, even if the chat
// provider is down.
func (h *ChatHandler) Message(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body", err))
		return
	}

	output, err := h.chatUseCase.Execute(c.Request.Context(), chatUC.ChatInput{
		Message: req.Message,
		History: req.ConversationHistory,
	})
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, output)
}

func (h *ChatHandler) Validate(c *gin.Context) {
	var req ChatValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body", err))
		return
	}
	respondOK(c, gin.H{"isRelevant": h.chatUseCase.Validate(req.Message)})
}
