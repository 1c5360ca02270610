package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	mentorUC "github.com/khoahotran/skillfolio/internal/application/usecase/mentor"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type MentorHandler struct {
	mentorUseCase *mentorUC.MentorUseCase
	logger        logger.Logger
}

func NewMentorHandler(uc *mentorUC.MentorUseCase, log logger.Logger) *MentorHandler {
	return &MentorHandler{mentorUseCase: uc, logger: log}
}

// ListApproved is the mentor directory shown when picking a reviewer.
func (h *MentorHandler) ListApproved(c *gin.Context) {
	mentors, err := h.mentorUseCase.ListApproved(c.Request.Context(), c.Query("sector"))
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, mentors)
}

func (h *MentorHandler) GetMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	p, err := h.mentorUseCase.GetMine(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, p)
}

func (h *MentorHandler) UpsertMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req UpsertMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("sectors are required", err))
		return
	}

	p, err := h.mentorUseCase.UpsertMine(c.Request.Context(), mentorUC.UpsertMentorInput{
		UserID:       userID,
		Sectors:      req.Sectors,
		Organization: req.Organization,
		Title:        req.Title,
		Bio:          req.Bio,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, p)
}

func (h *MentorHandler) ListForAdmin(c *gin.Context) {
	var approved *bool
	if raw := c.Query("approved"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.Error(apperror.NewInvalidInput("approved must be true or false", err))
			return
		}
		approved = &v
	}
	mentors, err := h.mentorUseCase.ListForAdmin(c.Request.Context(), approved)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, mentors)
}

func (h *MentorHandler) Approve(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}
	p, err := h.mentorUseCase.Approve(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, p)
}

func (h *MentorHandler) Revoke(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}
	p, err := h.mentorUseCase.Revoke(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, p)
}
