package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	skillUC "github.com/khoahotran/skillfolio/internal/application/usecase/skill"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

// SkillHandler serves both /sectors/:sector/skills and the sector-agnostic
// /skills routes. Under a sector route the sector comes from the path and a
// skill from another sector is reported as not found.
type SkillHandler struct {
	skillUseCase *skillUC.SkillUseCase
	logger       logger.Logger
}

func NewSkillHandler(uc *skillUC.SkillUseCase, log logger.Logger) *SkillHandler {
	return &SkillHandler{skillUseCase: uc, logger: log}
}

func (h *SkillHandler) ListSkills(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	scope, ok := routeScope(c)
	if !ok {
		return
	}
	in := skillUC.ListSkillsInput{
		UserID:   userID,
		Sector:   string(scope),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if scope == "" {
		in.Sector = c.Query("sector")
	}
	in.Page, in.Limit = pageQuery(c)

	skills, err := h.skillUseCase.ListSkills(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, skills)
}

func (h *SkillHandler) CreateSkill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	scope, ok := routeScope(c)
	if !ok {
		return
	}
	var req CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	sec := req.Sector
	if scope != "" {
		sec = string(scope)
	}

	s, err := h.skillUseCase.CreateSkill(c.Request.Context(), skillUC.CreateSkillInput{
		UserID:            userID,
		Name:              req.Name,
		Category:          req.Category,
		Sector:            sec,
		ProficiencyLevel:  req.ProficiencyLevel,
		Tags:              req.Tags,
		Description:       req.Description,
		YearsOfExperience: req.YearsOfExperience,
		LastUsed:          req.LastUsed.ptr(),
		Endorsements:      req.Endorsements,
	})
	if err != nil {
		c.Error(err)
		return
	}
	respondCreated(c, s)
}

func (h *SkillHandler) GetSkill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	scope, ok := routeScope(c)
	if !ok {
		return
	}
	skillID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	s, err := h.skillUseCase.GetSkill(c.Request.Context(), skillID, userID, scope)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, s)
}

func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	scope, ok := routeScope(c)
	if !ok {
		return
	}
	skillID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	s, err := h.skillUseCase.UpdateSkill(c.Request.Context(), skillUC.UpdateSkillInput{
		SkillID:           skillID,
		UserID:            userID,
		Sector:            scope,
		Name:              req.Name,
		Category:          req.Category,
		ProficiencyLevel:  req.ProficiencyLevel,
		Tags:              req.Tags,
		Description:       req.Description,
		YearsOfExperience: req.YearsOfExperience,
		LastUsed:          req.LastUsed.ptr(),
		Endorsements:      req.Endorsements,
	})
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, s)
}

func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	scope, ok := routeScope(c)
	if !ok {
		return
	}
	skillID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.skillUseCase.DeleteSkill(c.Request.Context(), skillID, userID, scope); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
