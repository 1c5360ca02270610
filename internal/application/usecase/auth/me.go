package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/user"
	"github.com/khoahotran/skillfolio/pkg/apperror"
)

type GetMeUseCase struct {
	userRepo user.Repository
}

func NewGetMeUseCase(repo user.Repository) *GetMeUseCase {
	return &GetMeUseCase{userRepo: repo}
}

// Execute loads the caller. A deactivated account is treated as signed out.
func (uc *GetMeUseCase) Execute(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, apperror.NewUnauthorized("account is deactivated", nil)
	}
	return u, nil
}
