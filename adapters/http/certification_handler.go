package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	certUC "github.com/khoahotran/skillfolio/internal/application/usecase/certification"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type CertificationHandler struct {
	certificationUseCase *certUC.CertificationUseCase
	logger               logger.Logger
}

func NewCertificationHandler(uc *certUC.CertificationUseCase, log logger.Logger) *CertificationHandler {
	return &CertificationHandler{certificationUseCase: uc, logger: log}
}

func (h *CertificationHandler) ListCertifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sec, ok := sectorParam(c)
	if !ok {
		return
	}
	page, limit := pageQuery(c)
	certs, err := h.certificationUseCase.ListCertifications(c.Request.Context(), userID, sec, c.Query("search"), page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, certs)
}

func (h *CertificationHandler) CreateCertification(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sec, ok := sectorParam(c)
	if !ok {
		return
	}
	var req CreateCertificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	cert, err := h.certificationUseCase.CreateCertification(c.Request.Context(), certUC.CreateCertificationInput{
		UserID:              userID,
		Name:                req.Name,
		IssuingOrganization: req.IssuingOrganization,
		Sector:              string(sec),
		CredentialID:        req.CredentialID,
		CredentialURL:       req.CredentialURL,
		IssueDate:           req.IssueDate.Time,
		ExpiryDate:          req.ExpiryDate.ptr(),
		NeverExpires:        req.NeverExpires,
		RelatedSkills:       req.RelatedSkills,
	})
	if err != nil {
		c.Error(err)
		return
	}
	respondCreated(c, cert)
}

func (h *CertificationHandler) GetCertification(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sec, ok := sectorParam(c)
	if !ok {
		return
	}
	certID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	cert, err := h.certificationUseCase.GetCertification(c.Request.Context(), certID, userID, sec)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, cert)
}

func (h *CertificationHandler) UpdateCertification(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sec, ok := sectorParam(c)
	if !ok {
		return
	}
	certID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateCertificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	in := certUC.UpdateCertificationInput{
		CertificationID:     certID,
		UserID:              userID,
		Sector:              sec,
		Name:                req.Name,
		IssuingOrganization: req.IssuingOrganization,
		CredentialID:        req.CredentialID,
		CredentialURL:       req.CredentialURL,
		ExpiryDate:          req.ExpiryDate.ptr(),
		NeverExpires:        req.NeverExpires,
		RelatedSkills:       req.RelatedSkills,
	}
	in.IssueDate = req.IssueDate.ptr()

	cert, err := h.certificationUseCase.UpdateCertification(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, cert)
}

func (h *CertificationHandler) DeleteCertification(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sec, ok := sectorParam(c)
	if !ok {
		return
	}
	certID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.certificationUseCase.DeleteCertification(c.Request.Context(), certID, userID, sec); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
