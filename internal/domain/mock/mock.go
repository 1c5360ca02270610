// Package mock provides in-memory implementations of the domain repositories
// for use-case and handler tests.
package mock

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/internal/domain/analytics"
	"github.com/khoahotran/skillfolio/internal/domain/certification"
	"github.com/khoahotran/skillfolio/internal/domain/mentor"
	"github.com/khoahotran/skillfolio/internal/domain/profile"
	"github.com/khoahotran/skillfolio/internal/domain/project"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/internal/domain/skill"
	"github.com/khoahotran/skillfolio/internal/domain/user"
	"github.com/khoahotran/skillfolio/internal/domain/verification"
	"github.com/khoahotran/skillfolio/pkg/apperror"
)

// Store backs every repository so cross-entity operations (joins,
// transactions) behave like the database.
type Store struct {
	mu             sync.Mutex
	users          map[uuid.UUID]*user.User
	profiles       map[uuid.UUID]*profile.Profile
	skills         map[uuid.UUID]*skill.Skill
	certifications map[uuid.UUID]*certification.Certification
	projects       map[uuid.UUID]*project.Project
	mentors        map[uuid.UUID]*mentor.Profile
	requests       map[uuid.UUID]*verification.Request
	analytics      map[string]*analytics.SkillAnalytics
}

func NewStore() *Store {
	return &Store{
		users:          map[uuid.UUID]*user.User{},
		profiles:       map[uuid.UUID]*profile.Profile{},
		skills:         map[uuid.UUID]*skill.Skill{},
		certifications: map[uuid.UUID]*certification.Certification{},
		projects:       map[uuid.UUID]*project.Project{},
		mentors:        map[uuid.UUID]*mentor.Profile{},
		requests:       map[uuid.UUID]*verification.Request{},
		analytics:      map[string]*analytics.SkillAnalytics{},
	}
}

func (s *Store) Users() user.Repository                   { return &userRepo{s} }
func (s *Store) Profiles() profile.Repository             { return &profileRepo{s} }
func (s *Store) Skills() skill.Repository                 { return &skillRepo{s} }
func (s *Store) Certifications() certification.Repository { return &certRepo{s} }
func (s *Store) Projects() project.Repository             { return &projectRepo{s} }
func (s *Store) Mentors() mentor.Repository               { return &mentorRepo{s} }
func (s *Store) Verifications() verification.Repository   { return &verificationRepo{s} }
func (s *Store) Analytics() analytics.Repository          { return &analyticsRepo{s} }

func paginate[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func containsFold(haystack, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// users

type userRepo struct{ s *Store }

func (r *userRepo) Save(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return apperror.NewConflict("user", "email", u.Email)
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperror.NewNotFound("user", id.String())
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) UpdateAvatar(_ context.Context, id uuid.UUID, avatarURL string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return apperror.NewNotFound("user", id.String())
	}
	u.AvatarURL = &avatarURL
	return nil
}

func (r *userRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return apperror.NewNotFound("user", id.String())
	}
	u.IsActive = false
	return nil
}

// profiles

type profileRepo struct{ s *Store }

func (r *profileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*profile.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[userID]
	if !ok {
		return profile.Empty(userID), nil
	}
	cp := *p
	return &cp, nil
}

func (r *profileRepo) Upsert(_ context.Context, p *profile.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.profiles[p.UserID] = &cp
	return nil
}

// skills

type skillRepo struct{ s *Store }

func (r *skillRepo) Save(_ context.Context, sk *skill.Skill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sk
	r.s.skills[sk.ID] = &cp
	return nil
}

func (r *skillRepo) Update(_ context.Context, sk *skill.Skill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.skills[sk.ID]
	if !ok || existing.UserID != sk.UserID {
		return apperror.NewNotFound("skill", sk.ID.String())
	}
	cp := *sk
	cp.Verified = existing.Verified
	cp.VerificationSource = existing.VerificationSource
	r.s.skills[sk.ID] = &cp
	return nil
}

func (r *skillRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.skills[id]
	if !ok || existing.UserID != userID {
		return apperror.NewNotFound("skill", id.String())
	}
	delete(r.s.skills, id)
	return nil
}

func (r *skillRepo) FindByID(_ context.Context, id, userID uuid.UUID) (*skill.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sk, ok := r.s.skills[id]
	if !ok || sk.UserID != userID {
		return nil, apperror.NewNotFound("skill", id.String())
	}
	cp := *sk
	return &cp, nil
}

func (r *skillRepo) Get(_ context.Context, id uuid.UUID) (*skill.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sk, ok := r.s.skills[id]
	if !ok {
		return nil, apperror.NewNotFound("skill", id.String())
	}
	cp := *sk
	return &cp, nil
}

func (r *skillRepo) List(_ context.Context, f skill.Filter) ([]*skill.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*skill.Skill, 0)
	for _, sk := range r.s.skills {
		if sk.UserID != f.UserID {
			continue
		}
		if f.Sector != "" && sk.Sector != f.Sector {
			continue
		}
		if f.Category != "" && sk.Category != f.Category {
			continue
		}
		if !containsFold(sk.Name, f.Search) {
			continue
		}
		cp := *sk
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Verified != b.Verified {
			return a.Verified
		}
		if a.ProficiencyLevel != b.ProficiencyLevel {
			return a.ProficiencyLevel > b.ProficiencyLevel
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return paginate(out, f.Limit, f.Offset), nil
}

func (r *skillRepo) MarkVerified(_ context.Context, id uuid.UUID, source string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.markVerifiedLocked(id, source)
}

func (s *Store) markVerifiedLocked(id uuid.UUID, source string) error {
	sk, ok := s.skills[id]
	if !ok {
		return apperror.NewNotFound("skill", id.String())
	}
	sk.Verified = true
	sk.VerificationSource = &source
	sk.UpdatedAt = time.Now().UTC()
	return nil
}

// certifications

type certRepo struct{ s *Store }

func (r *certRepo) Save(_ context.Context, c *certification.Certification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.certifications[c.ID] = &cp
	return nil
}

func (r *certRepo) Update(_ context.Context, c *certification.Certification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.certifications[c.ID]
	if !ok || existing.UserID != c.UserID {
		return apperror.NewNotFound("certification", c.ID.String())
	}
	cp := *c
	r.s.certifications[c.ID] = &cp
	return nil
}

func (r *certRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.certifications[id]
	if !ok || existing.UserID != userID {
		return apperror.NewNotFound("certification", id.String())
	}
	delete(r.s.certifications, id)
	return nil
}

func (r *certRepo) FindByID(_ context.Context, id, userID uuid.UUID) (*certification.Certification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.certifications[id]
	if !ok || c.UserID != userID {
		return nil, apperror.NewNotFound("certification", id.String())
	}
	cp := *c
	return &cp, nil
}

func (r *certRepo) List(_ context.Context, f certification.Filter) ([]*certification.Certification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*certification.Certification, 0)
	for _, c := range r.s.certifications {
		if c.UserID != f.UserID || (f.Sector != "" && c.Sector != f.Sector) || !(containsFold(c.Name, f.Search) || containsFold(c.IssuingOrganization, f.Search)) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IssueDate.After(out[j].IssueDate) })
	return paginate(out, f.Limit, f.Offset), nil
}

// projects

type projectRepo struct{ s *Store }

func (r *projectRepo) Save(_ context.Context, p *project.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.projects[p.ID] = &cp
	return nil
}

func (r *projectRepo) Update(_ context.Context, p *project.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.projects[p.ID]
	if !ok || existing.UserID != p.UserID {
		return apperror.NewNotFound("project", p.ID.String())
	}
	cp := *p
	r.s.projects[p.ID] = &cp
	return nil
}

func (r *projectRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.projects[id]
	if !ok || existing.UserID != userID {
		return apperror.NewNotFound("project", id.String())
	}
	delete(r.s.projects, id)
	return nil
}

func (r *projectRepo) FindByID(_ context.Context, id, userID uuid.UUID) (*project.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	if !ok || p.UserID != userID {
		return nil, apperror.NewNotFound("project", id.String())
	}
	cp := *p
	return &cp, nil
}

func (r *projectRepo) List(_ context.Context, f project.Filter) ([]*project.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*project.Project, 0)
	for _, p := range r.s.projects {
		if p.UserID != f.UserID || (f.Sector != "" && p.Sector != f.Sector) {
			continue
		}
		if (f.Category != "" && !strings.EqualFold(p.Category, f.Category)) || (f.Status != "" && p.Status != f.Status) {
			continue
		}
		if !containsFold(p.Title, f.Search) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.Limit, f.Offset), nil
}

// mentors

type mentorRepo struct{ s *Store }

func (r *mentorRepo) Get(_ context.Context, userID uuid.UUID) (*mentor.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.mentors[userID]
	if !ok {
		return nil, apperror.NewNotFound("mentor profile", userID.String())
	}
	cp := *m
	if u, ok := r.s.users[userID]; ok {
		cp.Name = u.Name
	}
	return &cp, nil
}

func (r *mentorRepo) Upsert(_ context.Context, p *mentor.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	if existing, ok := r.s.mentors[p.UserID]; ok {
		cp.IsApproved = existing.IsApproved
		cp.ApprovedAt = existing.ApprovedAt
		cp.CreatedAt = existing.CreatedAt
	} else {
		cp.IsApproved = false
		cp.ApprovedAt = nil
	}
	r.s.mentors[p.UserID] = &cp
	return nil
}

func (r *mentorRepo) SetApproval(_ context.Context, userID uuid.UUID, approved bool, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.mentors[userID]
	if !ok {
		return apperror.NewNotFound("mentor profile", userID.String())
	}
	m.IsApproved = approved
	if approved {
		m.ApprovedAt = &at
	} else {
		m.ApprovedAt = nil
	}
	return nil
}

func (r *mentorRepo) List(_ context.Context, f mentor.Filter) ([]*mentor.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*mentor.Profile, 0)
	for _, m := range r.s.mentors {
		if f.Approved != nil && m.IsApproved != *f.Approved {
			continue
		}
		if f.Sector != "" && !m.CoversSector(string(f.Sector)) {
			continue
		}
		cp := *m
		if u, ok := r.s.users[m.UserID]; ok {
			cp.Name = u.Name
		}
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// verification requests

type verificationRepo struct{ s *Store }

func (r *verificationRepo) Create(_ context.Context, req *verification.Request) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.requests {
		if existing.Status == verification.StatusPending && existing.SkillID == req.SkillID &&
			existing.RequesterID == req.RequesterID && existing.ReviewerID == req.ReviewerID {
			return verification.ErrDuplicatePendingRequest()
		}
	}
	cp := *req
	r.s.requests[req.ID] = &cp
	return nil
}

func (r *verificationRepo) FindByID(_ context.Context, id uuid.UUID) (*verification.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, verification.ErrNotFound(id)
	}
	cp := *req
	return &cp, nil
}

func (r *verificationRepo) GetView(_ context.Context, id uuid.UUID) (*verification.View, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, verification.ErrNotFound(id)
	}
	return r.s.viewLocked(req), nil
}

func (s *Store) viewLocked(req *verification.Request) *verification.View {
	v := &verification.View{Request: *req}
	if sk, ok := s.skills[req.SkillID]; ok {
		v.SkillName = sk.Name
		v.SkillSector = string(sk.Sector)
	}
	if u, ok := s.users[req.RequesterID]; ok {
		v.RequesterName = u.Name
	}
	if u, ok := s.users[req.ReviewerID]; ok {
		v.ReviewerName = u.Name
	}
	return v
}

func (r *verificationRepo) HasPending(_ context.Context, skillID, requesterID, reviewerID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range r.s.requests {
		if req.Status == verification.StatusPending && req.SkillID == skillID &&
			req.RequesterID == requesterID && req.ReviewerID == reviewerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *verificationRepo) list(match func(*verification.Request) bool, status verification.Status) []*verification.View {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*verification.View, 0)
	for _, req := range r.s.requests {
		if !match(req) || (status != "" && req.Status != status) {
			continue
		}
		out = append(out, r.s.viewLocked(req))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *verificationRepo) ListByRequester(_ context.Context, requesterID uuid.UUID, status verification.Status) ([]*verification.View, error) {
	return r.list(func(req *verification.Request) bool { return req.RequesterID == requesterID }, status), nil
}

func (r *verificationRepo) ListByReviewer(_ context.Context, reviewerID uuid.UUID, status verification.Status) ([]*verification.View, error) {
	return r.list(func(req *verification.Request) bool { return req.ReviewerID == reviewerID }, status), nil
}

func (r *verificationRepo) UpdateDecision(_ context.Context, req *verification.Request) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.updateDecisionLocked(req)
}

func (s *Store) updateDecisionLocked(req *verification.Request) error {
	stored, ok := s.requests[req.ID]
	if !ok {
		return verification.ErrNotFound(req.ID)
	}
	if stored.Status != verification.StatusPending {
		return verification.ErrNotPending(req.ID, stored.Status)
	}
	cp := *req
	s.requests[req.ID] = &cp
	return nil
}

func (r *verificationRepo) Approve(_ context.Context, req *verification.Request, source string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.skills[req.SkillID]; !ok {
		return verification.ErrSkillNotFound(req.SkillID)
	}
	if err := r.s.updateDecisionLocked(req); err != nil {
		return err
	}
	return r.s.markVerifiedLocked(req.SkillID, source)
}

func (r *verificationRepo) ListApprovedUnverified(_ context.Context, limit int) ([]*verification.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*verification.Request, 0)
	for _, req := range r.s.requests {
		if req.Status != verification.StatusApproved {
			continue
		}
		if sk, ok := r.s.skills[req.SkillID]; ok && !sk.Verified {
			cp := *req
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, 0), nil
}

// analytics

type analyticsRepo struct{ s *Store }

func analyticsKey(userID uuid.UUID, s sector.Sector) string {
	return userID.String() + "/" + string(s)
}

func (r *analyticsRepo) Upsert(_ context.Context, a *analytics.SkillAnalytics) (*analytics.SkillAnalytics, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := analyticsKey(a.UserID, a.Sector)
	cp := *a
	if existing, ok := r.s.analytics[key]; ok {
		cp.ID = existing.ID
	}
	r.s.analytics[key] = &cp
	out := cp
	return &out, nil
}

func (r *analyticsRepo) Get(_ context.Context, userID uuid.UUID, s sector.Sector) (*analytics.SkillAnalytics, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.analytics[analyticsKey(userID, s)]
	if !ok {
		return nil, apperror.NewNotFound("skill analytics", string(s))
	}
	cp := *a
	return &cp, nil
}

func (r *analyticsRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*analytics.SkillAnalytics, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*analytics.SkillAnalytics, 0)
	for _, a := range r.s.analytics {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sector < out[j].Sector })
	return out, nil
}
