package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	verificationUC "github.com/khoahotran/skillfolio/internal/application/usecase/verification"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type VerificationHandler struct {
	verificationUseCase *verificationUC.VerificationUseCase
	reapplyUseCase      *verificationUC.ReapplyApprovedUseCase
	logger              logger.Logger
}

func NewVerificationHandler(uc *verificationUC.VerificationUseCase, reapplyUC *verificationUC.ReapplyApprovedUseCase, log logger.Logger) *VerificationHandler {
	return &VerificationHandler{verificationUseCase: uc, reapplyUseCase: reapplyUC, logger: log}
}

func (h *VerificationHandler) CreateRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	skillID, ok := uuidParam(c, "skillId")
	if !ok {
		return
	}
	var req CreateVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("reviewer_id is required", err))
		return
	}
	reviewerID, err := uuid.Parse(req.ReviewerID)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid reviewer_id", err))
		return
	}

	view, err := h.verificationUseCase.Create(c.Request.Context(), verificationUC.CreateRequestInput{
		SkillID:     skillID,
		RequesterID: userID,
		ReviewerID:  reviewerID,
		Message:     req.Message,
		EvidenceURL: req.EvidenceURL,
	})
	if err != nil {
		c.Error(err)
		return
	}
	respondCreated(c, view)
}

func (h *VerificationHandler) ListSent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	views, err := h.verificationUseCase.ListSent(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, views)
}

func (h *VerificationHandler) ListReceived(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	views, err := h.verificationUseCase.ListReceived(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, views)
}

func (h *VerificationHandler) GetRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, "requestId")
	if !ok {
		return
	}
	view, err := h.verificationUseCase.Get(c.Request.Context(), requestID, userID)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, view)
}

func (h *VerificationHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, "requestId")
	if !ok {
		return
	}
	view, err := h.verificationUseCase.Cancel(c.Request.Context(), requestID, userID)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, view)
}

func (h *VerificationHandler) Decide(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, "requestId")
	if !ok {
		return
	}
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("decision is required", err))
		return
	}

	view, err := h.verificationUseCase.Decide(c.Request.Context(), verificationUC.DecideInput{
		RequestID:  requestID,
		ReviewerID: userID,
		Decision:   req.Decision,
		Note:       req.Note,
	})
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, view)
}

// Reconcile re-applies approvals whose skill was left unverified.
func (h *VerificationHandler) Reconcile(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	n, err := h.reapplyUseCase.Sweep(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, gin.H{"reapplied": n})
}
