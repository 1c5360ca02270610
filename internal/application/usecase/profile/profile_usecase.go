package profile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/profile"
	"github.com/khoahotran/skillfolio/pkg/apperror"
)

type ProfileUseCase struct {
	profileRepo profile.Repository
}

func NewProfileUseCase(repo profile.Repository) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
	}
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// UpdateProfileInput carries a partial update: nil fields are left as stored.
type UpdateProfileInput struct {
	UserID              uuid.UUID
	Bio                 *string
	Phone               *string
	Location            *string
	Website             *string
	LinkedInURL         *string
	GithubURL           *string
	Education           *[]profile.Education
	Experience          *[]profile.Experience
	Interests           *[]string
	TargetSectors       *[]string
	LearningPreferences map[string]any
}

func (uc *ProfileUseCase) ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	setString(&p.Bio, input.Bio)
	setString(&p.Phone, input.Phone)
	setString(&p.Location, input.Location)
	setString(&p.Website, input.Website)
	setString(&p.LinkedInURL, input.LinkedInURL)
	setString(&p.GithubURL, input.GithubURL)
	if input.Education != nil {
		p.Education = *input.Education
	}
	if input.Experience != nil {
		p.Experience = *input.Experience
	}
	if input.Interests != nil {
		p.Interests = *input.Interests
	}
	if input.TargetSectors != nil {
		p.TargetSectors = append([]string{}, *input.TargetSectors...)
	}
	if input.LearningPreferences != nil {
		p.LearningPreferences = input.LearningPreferences
	}

	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
