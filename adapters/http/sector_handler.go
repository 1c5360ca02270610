package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/skillfolio/internal/application/usecase/assessment"
	"github.com/khoahotran/skillfolio/internal/application/usecase/recommendation"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

// SectorHandler serves the computed per-sector views. One handler covers all
// three sectors; sector-specific fields come from the scoring package.
type SectorHandler struct {
	assessmentUseCase     *assessment.AssessmentUseCase
	recommendationUseCase *recommendation.RecommendationUseCase
	logger                logger.Logger
}

func NewSectorHandler(assessUC *assessment.AssessmentUseCase, recUC *recommendation.RecommendationUseCase, log logger.Logger) *SectorHandler {
	return &SectorHandler{assessmentUseCase: assessUC, recommendationUseCase: recUC, logger: log}
}

func (h *SectorHandler) Assessment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sec, ok := sectorParam(c)
	if !ok {
		return
	}
	a, err := h.assessmentUseCase.Assess(c.Request.Context(), userID, sec)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, a)
}

func (h *SectorHandler) CareerPathways(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sec, ok := sectorParam(c)
	if !ok {
		return
	}
	pathways, err := h.assessmentUseCase.CareerPathways(c.Request.Context(), userID, sec)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, gin.H{"sector": sec, "pathways": pathways})
}

func (h *SectorHandler) Recommendations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sec, ok := sectorParam(c)
	if !ok {
		return
	}
	out, err := h.recommendationUseCase.Recommendations(c.Request.Context(), userID, sec)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, out)
}

func (h *SectorHandler) Courses(c *gin.Context) {
	sec, ok := sectorParam(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := h.recommendationUseCase.Courses(c.Request.Context(), sec, c.Query("q"), limit)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, out)
}
