package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/skillfolio/internal/domain/mock"
	"github.com/khoahotran/skillfolio/internal/domain/user"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/auth"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

func setup() (*RegisterUseCase, *LoginUseCase, *GetMeUseCase, user.Repository) {
	store := mock.NewStore()
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	log := logger.NewNopLogger()
	repo := store.Users()
	return NewRegisterUseCase(repo, jwtSvc, log), NewLoginUseCase(repo, jwtSvc, log), NewGetMeUseCase(repo), repo
}

func TestRegister_DefaultsToStudentAndIssuesToken(t *testing.T) {
	reg, _, _, _ := setup()

	out, err := reg.Execute(context.Background(), RegisterInput{
		Email:    "  Ana@Example.COM ",
		Password: "password123",
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", out.User.Email)
	assert.Equal(t, user.RoleStudent, out.User.Role)
	assert.True(t, out.User.IsActive)
	assert.NotEmpty(t, out.Token)
	assert.NotEqual(t, "password123", out.User.PasswordHash)
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	reg, _, _, _ := setup()

	_, err := reg.Execute(context.Background(), RegisterInput{
		Email: "root@example.com", Password: "password123", Name: "Root", Role: "ADMIN",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestRegister_ShortPassword(t *testing.T) {
	reg, _, _, _ := setup()

	_, err := reg.Execute(context.Background(), RegisterInput{Email: "a@example.com", Password: "short", Name: "A"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	reg, _, _, _ := setup()
	in := RegisterInput{Email: "dup@example.com", Password: "password123", Name: "Dup"}

	_, err := reg.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = reg.Execute(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.ErrorIs(t, err, apperror.Kind(CodeEmailTaken))
}

func TestLogin(t *testing.T) {
	reg, login, _, repo := setup()
	ctx := context.Background()
	registered, err := reg.Execute(ctx, RegisterInput{Email: "lee@example.com", Password: "password123", Name: "Lee", Role: "educator"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		out, err := login.Execute(ctx, LoginInput{Email: "LEE@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, out.User.ID)
		assert.Equal(t, user.RoleEducator, out.User.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := login.Execute(ctx, LoginInput{Email: "lee@example.com", Password: "nope-nope"})
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := login.Execute(ctx, LoginInput{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("deactivated", func(t *testing.T) {
		require.NoError(t, repo.Deactivate(ctx, registered.User.ID))
		_, err := login.Execute(ctx, LoginInput{Email: "lee@example.com", Password: "password123"})
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestGetMe_Deactivated(t *testing.T) {
	reg, _, me, repo := setup()
	ctx := context.Background()
	out, err := reg.Execute(ctx, RegisterInput{Email: "m@example.com", Password: "password123", Name: "M"})
	require.NoError(t, err)

	u, err := me.Execute(ctx, out.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "M", u.Name)

	require.NoError(t, repo.Deactivate(ctx, out.User.ID))
	_, err = me.Execute(ctx, out.User.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
