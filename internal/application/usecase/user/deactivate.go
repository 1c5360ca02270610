package user

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/application/service"
	"github.com/khoahotran/skillfolio/internal/domain/user"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type DeactivateUseCase struct {
	userRepo user.Repository
	uploader service.Uploader
	logger   logger.Logger
}

// NewDeactivateUseCase accepts a nil uploader; stored avatars are then left in place.
func NewDeactivateUseCase(r user.Repository, u service.Uploader, log logger.Logger) *DeactivateUseCase {
	return &DeactivateUseCase{userRepo: r, uploader: u, logger: log}
}

// Execute soft-deletes the account; existing tokens stop working at the auth
// middleware. The avatar asset is removed afterwards and a storage failure
// only gets logged.
func (uc *DeactivateUseCase) Execute(ctx context.Context, userID uuid.UUID) error {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := uc.userRepo.Deactivate(ctx, userID); err != nil {
		return err
	}
	uc.logger.Info("User deactivated", zap.String("user_id", userID.String()))

	if uc.uploader != nil && u.AvatarURL != nil {
		if err := uc.uploader.Delete(ctx, avatarFolder(userID)+"/"+avatarPublicID); err != nil {
			uc.logger.Error("Failed to delete avatar of deactivated user", err, zap.String("user_id", userID.String()))
		}
	}
	return nil
}
