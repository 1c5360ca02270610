package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/domain/user"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/auth"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

const CodeEmailTaken = "EMAIL_TAKEN"

type RegisterUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewRegisterUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{userRepo: repo, jwtSvc: jwtSvc, logger: log}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*Output, error) {
	ctx, span := tracer.Start(ctx, "Register")
	defer span.End()

	role, err := user.ParseRole(input.Role)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if len(input.Password) < auth.MinPasswordLength {
		return nil, apperror.NewInvalidInput("password must be at least 8 characters", nil)
	}

	now := time.Now().UTC()
	u := &user.User{
		ID:        uuid.New(),
		Email:     user.NormalizeEmail(input.Email),
		Name:      input.Name,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}
	u.PasswordHash = hash

	if err := uc.userRepo.Save(ctx, u); err != nil {
		span.RecordError(err)
		if errors.Is(err, apperror.ErrConflict) {
			e := apperror.NewConflict("user", "email", u.Email).WithCode(CodeEmailTaken)
			e.Message = "Email is already registered"
			return nil, e
		}
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	span.SetAttributes(attribute.String("user_id", u.ID.String()), attribute.String("role", string(u.Role)))
	uc.logger.Info("User registered", zap.String("user_id", u.ID.String()), zap.String("role", string(u.Role)))
	return &Output{User: u, Token: token}, nil
}
