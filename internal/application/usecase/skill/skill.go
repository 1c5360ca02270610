package skill

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/application/service"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/internal/domain/skill"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

type SkillUseCase struct {
	repo      skill.Repository
	publisher service.EventPublisher
	logger    logger.Logger
}

// NewSkillUseCase accepts a nil publisher when no broker is configured.
func NewSkillUseCase(r skill.Repository, p service.EventPublisher, log logger.Logger) *SkillUseCase {
	return &SkillUseCase{repo: r, publisher: p, logger: log}
}

type CreateSkillInput struct {
	UserID            uuid.UUID
	Name              string
	Category          string
	Sector            string
	ProficiencyLevel  int
	Tags              []string
	Description       string
	YearsOfExperience float64
	LastUsed          *time.Time
	Endorsements      int
}

func (uc *SkillUseCase) CreateSkill(ctx context.Context, in CreateSkillInput) (*skill.Skill, error) {
	sec, err := sector.Parse(in.Sector)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	now := time.Now().UTC()
	s := &skill.Skill{
		ID:                uuid.New(),
		UserID:            in.UserID,
		Name:              in.Name,
		Category:          in.Category,
		Sector:            sec,
		ProficiencyLevel:  in.ProficiencyLevel,
		Tags:              in.Tags,
		Description:       in.Description,
		YearsOfExperience: in.YearsOfExperience,
		LastUsed:          in.LastUsed,
		Endorsements:      in.Endorsements,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	if err := uc.repo.Save(ctx, s); err != nil {
		return nil, err
	}

	uc.publish(skill.EventCreated, s)
	return s, nil
}

// UpdateSkillInput is a partial update. Sector scopes the lookup when set, so
// a skill cannot be edited through another sector's route.
type UpdateSkillInput struct {
	SkillID           uuid.UUID
	UserID            uuid.UUID
	Sector            sector.Sector
	Name              *string
	Category          *string
	ProficiencyLevel  *int
	Tags              *[]string
	Description       *string
	YearsOfExperience *float64
	LastUsed          *time.Time
	Endorsements      *int
}

func (uc *SkillUseCase) UpdateSkill(ctx context.Context, in UpdateSkillInput) (*skill.Skill, error) {
	s, err := uc.GetSkill(ctx, in.SkillID, in.UserID, in.Sector)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.Category != nil {
		s.Category = *in.Category
	}
	if in.ProficiencyLevel != nil {
		s.ProficiencyLevel = *in.ProficiencyLevel
	}
	if in.Tags != nil {
		s.Tags = *in.Tags
	}
	if in.Description != nil {
		s.Description = *in.Description
	}
	if in.YearsOfExperience != nil {
		s.YearsOfExperience = *in.YearsOfExperience
	}
	if in.LastUsed != nil {
		s.LastUsed = in.LastUsed
	}
	if in.Endorsements != nil {
		s.Endorsements = *in.Endorsements
	}

	if err := s.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	s.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	uc.publish(skill.EventUpdated, s)
	return s, nil
}

func (uc *SkillUseCase) DeleteSkill(ctx context.Context, id, userID uuid.UUID, scope sector.Sector) error {
	s, err := uc.GetSkill(ctx, id, userID, scope)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	uc.publish(skill.EventDeleted, s)
	return nil
}

// GetSkill loads an owned skill. A non-empty scope that does not match the
// skill's sector is reported as not found.
func (uc *SkillUseCase) GetSkill(ctx context.Context, id, userID uuid.UUID, scope sector.Sector) (*skill.Skill, error) {
	s, err := uc.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if scope != "" && s.Sector != scope {
		return nil, apperror.NewNotFound("skill", id.String())
	}
	return s, nil
}

type ListSkillsInput struct {
	UserID   uuid.UUID
	Sector   string
	Category string
	Search   string
	Page     int
	Limit    int
}

func (uc *SkillUseCase) ListSkills(ctx context.Context, in ListSkillsInput) ([]*skill.Skill, error) {
	// Categories are stored upper-cased by Validate.
	f := skill.Filter{UserID: in.UserID, Category: strings.ToUpper(strings.TrimSpace(in.Category)), Search: in.Search}
	if in.Sector != "" {
		sec, err := sector.Parse(in.Sector)
		if err != nil {
			return nil, apperror.NewInvalidInput(err.Error(), err)
		}
		f.Sector = sec
	}
	f.Limit, f.Offset = pageWindow(in.Page, in.Limit)
	return uc.repo.List(ctx, f)
}

func (uc *SkillUseCase) publish(eventType string, s *skill.Skill) {
	if uc.publisher == nil {
		return
	}
	evt := skill.Event{
		Type:       eventType,
		SkillID:    s.ID,
		UserID:     s.UserID,
		Sector:     s.Sector,
		OccurredAt: time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), service.PublishTimeout)
		defer cancel()
		if err := uc.publisher.PublishSkillEvent(ctx, evt); err != nil {
			uc.logger.Error("Failed to publish skill event", err,
				zap.String("skill_id", evt.SkillID.String()), zap.String("event_type", eventType))
		}
	}()
}

func pageWindow(page, limit int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}
