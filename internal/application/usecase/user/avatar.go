package user

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/application/service"
	"github.com/khoahotran/skillfolio/internal/domain/user"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

const MaxAvatarBytes = 5 << 20

const avatarPublicID = "avatar"

func avatarFolder(userID uuid.UUID) string {
	return fmt.Sprintf("users/%s/avatar", userID.String())
}

type UploadAvatarUseCase struct {
	userRepo user.Repository
	uploader service.Uploader
	logger   logger.Logger
}

func NewUploadAvatarUseCase(r user.Repository, u service.Uploader, log logger.Logger) *UploadAvatarUseCase {
	return &UploadAvatarUseCase{userRepo: r, uploader: u, logger: log}
}

type UploadAvatarInput struct {
	UserID      uuid.UUID
	File        io.Reader
	ContentType string
}

// Execute buffers at most MaxAvatarBytes, checks the payload is an image and
// only then writes to storage.
func (uc *UploadAvatarUseCase) Execute(ctx context.Context, input UploadAvatarInput) (*user.User, error) {
	if uc.uploader == nil {
		return nil, apperror.NewInternal("avatar storage is not configured", nil)
	}
	if input.ContentType != "" && !strings.HasPrefix(input.ContentType, "image/") {
		return nil, apperror.NewInvalidInput("avatar must be an image", nil)
	}

	data, err := io.ReadAll(io.LimitReader(input.File, MaxAvatarBytes+1))
	if err != nil {
		return nil, apperror.NewInvalidInput("failed to read avatar upload", err)
	}
	if len(data) == 0 {
		return nil, apperror.NewInvalidInput("avatar file is empty", nil)
	}
	if len(data) > MaxAvatarBytes {
		return nil, apperror.NewInvalidInput("avatar must be at most 5 MB", nil)
	}
	if sniffed := http.DetectContentType(data); !strings.HasPrefix(sniffed, "image/") {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("avatar content type %q is not an image", sniffed), nil)
	}

	u, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	url, err := uc.uploader.Upload(ctx, bytes.NewReader(data), avatarFolder(input.UserID), avatarPublicID)
	if err != nil {
		return nil, apperror.NewInternal("failed to upload avatar", err)
	}

	if err := uc.userRepo.UpdateAvatar(ctx, input.UserID, url); err != nil {
		uc.logger.Error("Uploaded avatar but failed to store its URL", err, zap.String("user_id", input.UserID.String()))
		return nil, err
	}

	u.AvatarURL = &url
	return u, nil
}
