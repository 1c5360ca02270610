package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userUC "github.com/khoahotran/skillfolio/internal/application/usecase/user"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type UserHandler struct {
	uploadAvatarUseCase *userUC.UploadAvatarUseCase
	deactivateUseCase   *userUC.DeactivateUseCase
	logger              logger.Logger
}

func NewUserHandler(avatarUC *userUC.UploadAvatarUseCase, deactivateUC *userUC.DeactivateUseCase, log logger.Logger) *UserHandler {
	return &UserHandler{uploadAvatarUseCase: avatarUC, deactivateUseCase: deactivateUC, logger: log}
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.Error(apperror.NewInvalidInput("multipart field 'avatar' is required", err))
		return
	}
	if fileHeader.Size > userUC.MaxAvatarBytes {
		c.Error(apperror.NewInvalidInput("avatar must be at most 5 MB", nil))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot read uploaded file", err))
		return
	}
	defer file.Close()

	u, err := h.uploadAvatarUseCase.Execute(c.Request.Context(), userUC.UploadAvatarInput{
		UserID:      userID,
		File:        file,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, gin.H{"user": u})
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.deactivateUseCase.Execute(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
