package assessment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/certification"
	"github.com/khoahotran/skillfolio/internal/domain/project"
	"github.com/khoahotran/skillfolio/internal/domain/scoring"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/internal/domain/skill"
)

// batchSize matches the largest page the repositories hand out.
const batchSize = 100

// SnapshotLoader reads every row a user has in one sector.
type SnapshotLoader struct {
	skills         skill.Repository
	certifications certification.Repository
	projects       project.Repository
}

func NewSnapshotLoader(s skill.Repository, c certification.Repository, p project.Repository) *SnapshotLoader {
	return &SnapshotLoader{skills: s, certifications: c, projects: p}
}

func (l *SnapshotLoader) Load(ctx context.Context, userID uuid.UUID, sec sector.Sector) (scoring.Snapshot, error) {
	snap := scoring.Snapshot{Sector: sec}

	skills, err := loadAll(func(offset int) ([]*skill.Skill, error) {
		return l.skills.List(ctx, skill.Filter{UserID: userID, Sector: sec, Limit: batchSize, Offset: offset})
	})
	if err != nil {
		return snap, err
	}
	certs, err := loadAll(func(offset int) ([]*certification.Certification, error) {
		return l.certifications.List(ctx, certification.Filter{UserID: userID, Sector: sec, Limit: batchSize, Offset: offset})
	})
	if err != nil {
		return snap, err
	}
	projects, err := loadAll(func(offset int) ([]*project.Project, error) {
		return l.projects.List(ctx, project.Filter{UserID: userID, Sector: sec, Limit: batchSize, Offset: offset})
	})
	if err != nil {
		return snap, err
	}

	snap.Skills = skills
	snap.Certifications = certs
	snap.Projects = projects
	return snap, nil
}

func loadAll[T any](fetch func(offset int) ([]T, error)) ([]T, error) {
	var all []T
	for offset := 0; ; offset += batchSize {
		batch, err := fetch(offset)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < batchSize {
			return all, nil
		}
	}
}

type AssessmentUseCase struct {
	loader *SnapshotLoader
	now    func() time.Time
}

func NewAssessmentUseCase(loader *SnapshotLoader) *AssessmentUseCase {
	return &AssessmentUseCase{loader: loader, now: func() time.Time { return time.Now().UTC() }}
}

// Assess computes the sector assessment live; nothing is persisted.
func (uc *AssessmentUseCase) Assess(ctx context.Context, userID uuid.UUID, sec sector.Sector) (*scoring.Assessment, error) {
	snap, err := uc.loader.Load(ctx, userID, sec)
	if err != nil {
		return nil, err
	}
	a := scoring.Assess(snap, uc.now())
	return &a, nil
}

func (uc *AssessmentUseCase) CareerPathways(ctx context.Context, userID uuid.UUID, sec sector.Sector) ([]scoring.PathwayMatch, error) {
	snap, err := uc.loader.Load(ctx, userID, sec)
	if err != nil {
		return nil, err
	}
	return scoring.CareerPathways(snap), nil
}
