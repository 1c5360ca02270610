package mentor

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/domain/mentor"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/internal/domain/user"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type MentorUseCase struct {
	mentorRepo mentor.Repository
	userRepo   user.Repository
	logger     logger.Logger
}

func NewMentorUseCase(m mentor.Repository, u user.Repository, log logger.Logger) *MentorUseCase {
	return &MentorUseCase{mentorRepo: m, userRepo: u, logger: log}
}

func (uc *MentorUseCase) GetMine(ctx context.Context, userID uuid.UUID) (*mentor.Profile, error) {
	return uc.mentorRepo.Get(ctx, userID)
}

type UpsertMentorInput struct {
	UserID       uuid.UUID
	Sectors      []string
	Organization string
	Title        string
	Bio          string
	ContactEmail string
}

// UpsertMine creates or replaces the caller's mentor profile. Approval state
// is kept as stored; a new profile always starts unapproved.
func (uc *MentorUseCase) UpsertMine(ctx context.Context, in UpsertMentorInput) (*mentor.Profile, error) {
	u, err := uc.userRepo.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !u.CanMentor() {
		return nil, apperror.NewPermissionDenied("only educators can hold a mentor profile")
	}

	now := time.Now().UTC()
	p := &mentor.Profile{
		UserID:       in.UserID,
		Sectors:      in.Sectors,
		Organization: strings.TrimSpace(in.Organization),
		Title:        strings.TrimSpace(in.Title),
		Bio:          in.Bio,
		ContactEmail: strings.TrimSpace(in.ContactEmail),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.mentorRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return uc.mentorRepo.Get(ctx, in.UserID)
}

// ListApproved is the public mentor directory, optionally narrowed to a sector.
func (uc *MentorUseCase) ListApproved(ctx context.Context, sectorFilter string) ([]*mentor.Profile, error) {
	approved := true
	f := mentor.Filter{Approved: &approved}
	if sectorFilter != "" {
		sec, err := sector.Parse(sectorFilter)
		if err != nil {
			return nil, apperror.NewInvalidInput(err.Error(), err)
		}
		f.Sector = sec
	}
	return uc.mentorRepo.List(ctx, f)
}

// ListForAdmin returns every mentor profile, or only those matching approved
// when it is non-nil.
func (uc *MentorUseCase) ListForAdmin(ctx context.Context, approved *bool) ([]*mentor.Profile, error) {
	return uc.mentorRepo.List(ctx, mentor.Filter{Approved: approved})
}

func (uc *MentorUseCase) Approve(ctx context.Context, userID uuid.UUID) (*mentor.Profile, error) {
	return uc.setApproval(ctx, userID, true)
}

func (uc *MentorUseCase) Revoke(ctx context.Context, userID uuid.UUID) (*mentor.Profile, error) {
	return uc.setApproval(ctx, userID, false)
}

func (uc *MentorUseCase) setApproval(ctx context.Context, userID uuid.UUID, approved bool) (*mentor.Profile, error) {
	if err := uc.mentorRepo.SetApproval(ctx, userID, approved, time.Now().UTC()); err != nil {
		return nil, err
	}
	uc.logger.Info("Mentor approval changed", zap.String("user_id", userID.String()), zap.Bool("approved", approved))
	return uc.mentorRepo.Get(ctx, userID)
}
