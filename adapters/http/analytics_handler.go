package http

import (
	"github.com/gin-gonic/gin"

	analyticsUC "github.com/khoahotran/skillfolio/internal/application/usecase/analytics"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type AnalyticsHandler struct {
	analyticsUseCase *analyticsUC.AnalyticsUseCase
	logger           logger.Logger
}

func NewAnalyticsHandler(uc *analyticsUC.AnalyticsUseCase, log logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUseCase: uc, logger: log}
}

func (h *AnalyticsHandler) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sec, ok := sectorParam(c)
	if !ok {
		return
	}
	a, err := h.analyticsUseCase.Generate(c.Request.Context(), userID, sec)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, a)
}

// Get returns the stored analytics; it is 404 until Generate has run once.
func (h *AnalyticsHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sec, ok := sectorParam(c)
	if !ok {
		return
	}
	a, err := h.analyticsUseCase.Get(c.Request.Context(), userID, sec)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, a)
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	out, err := h.analyticsUseCase.Overview(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, out)
}
