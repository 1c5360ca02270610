package http

import (
	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/skillfolio/internal/application/usecase/profile"
	"github.com/khoahotran/skillfolio/pkg/apperror"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
}

func NewProfileHandler(uc *profileUC.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profileUseCase: uc}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	p, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, p)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	p, err := h.profileUseCase.ExecuteUpdateProfile(c.Request.Context(), profileUC.UpdateProfileInput{
		UserID:              userID,
		Bio:                 req.Bio,
		Phone:               req.Phone,
		Location:            req.Location,
		Website:             req.Website,
		LinkedInURL:         req.LinkedInURL,
		GithubURL:           req.GithubURL,
		Education:           req.Education,
		Experience:          req.Experience,
		Interests:           req.Interests,
		TargetSectors:       req.TargetSectors,
		LearningPreferences: req.LearningPreferences,
	})
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, p)
}
