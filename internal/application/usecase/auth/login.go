package auth

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/domain/user"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/auth"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type LoginUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewLoginUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

// Output is returned by both login and registration.
type Output struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

var tracer = otel.Tracer("auth_usecase")

func invalidCredentials() error {
	return apperror.NewUnauthorized("email or password is incorrect", nil)
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*Output, error) {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	email := user.NormalizeEmail(input.Email)
	if email == "" || strings.TrimSpace(input.Password) == "" {
		err := apperror.NewInvalidInput("email and password are required", nil)
		span.RecordError(err)
		return nil, err
	}

	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		err := invalidCredentials()
		span.RecordError(err)
		return nil, err
	}
	if !u.IsActive {
		err := apperror.NewUnauthorized("account is deactivated", nil)
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("user_id", u.ID.String()), attribute.String("role", string(u.Role)))
	return &Output{User: u, Token: token}, nil
}
