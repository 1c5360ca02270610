package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent  Role = "STUDENT"
	RoleEducator Role = "EDUCATOR"
	RoleEmployer Role = "EMPLOYER"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	AvatarURL    *string   `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var (
	ErrInvalidEmail = errors.New("email is not valid")
	ErrNameRequired = errors.New("name is required")
	ErrInvalidRole  = errors.New("role must be one of STUDENT, EDUCATOR, EMPLOYER")
)

// ParseRole validates a role requested at registration. ADMIN is never
// self-assignable.
func ParseRole(s string) (Role, error) {
	if strings.TrimSpace(s) == "" {
		return RoleStudent, nil
	}
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleStudent, RoleEducator, RoleEmployer:
		return r, nil
	}
	return "", ErrInvalidRole
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) Validate() error {
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(u.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// CanMentor reports whether the user's role allows a mentor profile.
func (u *User) CanMentor() bool {
	return u.Role == RoleEducator || u.Role == RoleAdmin
}

type Repository interface {
	Save(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}
