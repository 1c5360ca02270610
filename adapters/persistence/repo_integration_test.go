package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	skillUC "github.com/khoahotran/skillfolio/internal/application/usecase/skill"
	"github.com/khoahotran/skillfolio/internal/domain/analytics"
	"github.com/khoahotran/skillfolio/internal/domain/mentor"
	"github.com/khoahotran/skillfolio/internal/domain/profile"
	"github.com/khoahotran/skillfolio/internal/domain/scoring"
	"github.com/khoahotran/skillfolio/internal/domain/sector"
	"github.com/khoahotran/skillfolio/internal/domain/skill"
	"github.com/khoahotran/skillfolio/internal/domain/user"
	"github.com/khoahotran/skillfolio/internal/domain/verification"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type RepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	testLogger  logger.Logger

	userRepo         user.Repository
	profileRepo      profile.Repository
	skillRepo        skill.Repository
	mentorRepo       mentor.Repository
	verificationRepo verification.Repository
	analyticsRepo    analytics.Repository

	student  *user.User
	educator *user.User
}

func (s *RepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool
	s.testLogger = logger.NewNopLogger()

	s.userRepo = NewPostgresUserRepo(pool)
	s.profileRepo = NewPostgresProfileRepo(pool, s.testLogger)
	s.skillRepo = NewPostgresSkillRepo(pool, s.testLogger)
	s.mentorRepo = NewPostgresMentorRepo(pool)
	s.verificationRepo = NewPostgresVerificationRepo(pool, s.testLogger)
	s.analyticsRepo = NewPostgresAnalyticsRepo(pool, s.testLogger)

	s.student = s.seedUser("student@example.com", "Sam Student", user.RoleStudent)
	s.educator = s.seedUser("educator@example.com", "Erin Educator", user.RoleEducator)
}

func (s *RepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(RepoIntegrationTestSuite))
}

func (s *RepoIntegrationTestSuite) seedUser(email, name string, role user.Role) *user.User {
	now := time.Now().UTC()
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: "hashedpassword",
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.Require().NoError(s.userRepo.Save(context.Background(), u))
	return u
}

func (s *RepoIntegrationTestSuite) newSkill(name string, level int, createdAt time.Time) *skill.Skill {
	return &skill.Skill{
		ID:               uuid.New(),
		UserID:           s.student.ID,
		Name:             name,
		Category:         "CLINICAL_SKILLS",
		Sector:           sector.Healthcare,
		ProficiencyLevel: level,
		Tags:             []string{"ward"},
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
}

func (s *RepoIntegrationTestSuite) Test_User_DuplicateEmail_Conflicts() {
	now := time.Now().UTC()
	dup := &user.User{
		ID:           uuid.New(),
		Email:        s.student.Email,
		Name:         "Someone Else",
		PasswordHash: "x",
		Role:         user.RoleStudent,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := s.userRepo.Save(context.Background(), dup)
	s.Require().Error(err)
	s.ErrorIs(err, apperror.ErrConflict)
}

func (s *RepoIntegrationTestSuite) Test_Profile_CreatedEmptyOnRegistration() {
	p, err := s.profileRepo.GetByUserID(context.Background(), s.student.ID)
	s.Require().NoError(err)
	s.Equal(s.student.ID, p.UserID)
	s.Empty(p.Bio)
	s.NotNil(p.Education)
	s.NotNil(p.TargetSectors)

	p.Bio = "Nursing student"
	p.TargetSectors = []string{"HEALTHCARE"}
	p.Education = []profile.Education{{Institution: "City College", Degree: "BSc"}}
	p.UpdatedAt = time.Now().UTC()
	s.Require().NoError(s.profileRepo.Upsert(context.Background(), p))

	got, err := s.profileRepo.GetByUserID(context.Background(), s.student.ID)
	s.Require().NoError(err)
	s.Equal("Nursing student", got.Bio)
	s.Equal([]string{"HEALTHCARE"}, got.TargetSectors)
	s.Len(got.Education, 1)
}

func (s *RepoIntegrationTestSuite) Test_Skill_ListOrdering() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	low := s.newSkill("Order triage", 2, base)
	high := s.newSkill("Order phlebotomy", 5, base.Add(time.Minute))
	verified := s.newSkill("Order wound care", 1, base.Add(2*time.Minute))
	for _, sk := range []*skill.Skill{low, high, verified} {
		s.Require().NoError(s.skillRepo.Save(ctx, sk))
	}
	s.Require().NoError(s.skillRepo.MarkVerified(ctx, verified.ID, "Verified by test"))

	list, err := s.skillRepo.List(ctx, skill.Filter{UserID: s.student.ID, Search: "order "})
	s.Require().NoError(err)

	ids := make([]uuid.UUID, 0, len(list))
	for _, sk := range list {
		ids = append(ids, sk.ID)
	}
	s.Equal([]uuid.UUID{verified.ID, high.ID, low.ID}, ids)
}

func (s *RepoIntegrationTestSuite) Test_Skill_CategoryFilterIgnoresCase() {
	ctx := context.Background()
	sk := s.newSkill("Category suturing", 3, time.Now().UTC())
	s.Require().NoError(s.skillRepo.Save(ctx, sk))

	uc := skillUC.NewSkillUseCase(s.skillRepo, nil, s.testLogger)
	list, err := uc.ListSkills(ctx, skillUC.ListSkillsInput{
		UserID: s.student.ID, Category: "clinical_skills", Search: "category suturing",
	})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(sk.ID, list[0].ID)
}

func (s *RepoIntegrationTestSuite) Test_Skill_SearchTreatsWildcardsLiterally() {
	ctx := context.Background()
	sk := s.newSkill("Wildcard IV_line", 3, time.Now().UTC())
	s.Require().NoError(s.skillRepo.Save(ctx, sk))

	list, err := s.skillRepo.List(ctx, skill.Filter{UserID: s.student.ID, Search: "iv_line"})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(sk.ID, list[0].ID)

	list, err = s.skillRepo.List(ctx, skill.Filter{UserID: s.student.ID, Search: "ivXline"})
	s.Require().NoError(err)
	s.Empty(list)

	list, err = s.skillRepo.List(ctx, skill.Filter{UserID: s.student.ID, Search: "%"})
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *RepoIntegrationTestSuite) Test_Skill_OwnerScoped() {
	ctx := context.Background()
	sk := s.newSkill("Ownership", 3, time.Now().UTC())
	s.Require().NoError(s.skillRepo.Save(ctx, sk))

	_, err := s.skillRepo.FindByID(ctx, sk.ID, s.educator.ID)
	s.ErrorIs(err, apperror.ErrNotFound)

	err = s.skillRepo.Delete(ctx, sk.ID, s.educator.ID)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *RepoIntegrationTestSuite) Test_Verification_DuplicatePendingAndApprove() {
	ctx := context.Background()
	now := time.Now().UTC()

	s.Require().NoError(s.mentorRepo.Upsert(ctx, &mentor.Profile{
		UserID:    s.educator.ID,
		Sectors:   []string{"HEALTHCARE"},
		CreatedAt: now,
		UpdatedAt: now,
	}))
	s.Require().NoError(s.mentorRepo.SetApproval(ctx, s.educator.ID, true, now))

	sk := s.newSkill("Patient intake", 3, now)
	s.Require().NoError(s.skillRepo.Save(ctx, sk))

	req := &verification.Request{
		ID:          uuid.New(),
		SkillID:     sk.ID,
		RequesterID: s.student.ID,
		ReviewerID:  s.educator.ID,
		Status:      verification.StatusPending,
		CreatedAt:   now,
	}
	s.Require().NoError(s.verificationRepo.Create(ctx, req))

	dup := *req
	dup.ID = uuid.New()
	err := s.verificationRepo.Create(ctx, &dup)
	s.ErrorIs(err, verification.KindDuplicatePendingRequest)

	pending, err := s.verificationRepo.HasPending(ctx, sk.ID, s.student.ID, s.educator.ID)
	s.Require().NoError(err)
	s.True(pending)

	s.Require().NoError(req.Decide(s.educator.ID, verification.StatusApproved, nil, now))
	s.Require().NoError(s.verificationRepo.Approve(ctx, req, "Verified by Erin Educator"))

	stored, err := s.skillRepo.Get(ctx, sk.ID)
	s.Require().NoError(err)
	s.True(stored.Verified)
	s.Require().NotNil(stored.VerificationSource)
	s.Equal("Verified by Erin Educator", *stored.VerificationSource)

	err = s.verificationRepo.UpdateDecision(ctx, req)
	s.ErrorIs(err, verification.KindNotPending)

	views, err := s.verificationRepo.ListByReviewer(ctx, s.educator.ID, verification.StatusApproved)
	s.Require().NoError(err)
	s.Require().NotEmpty(views)
	s.Equal("Patient intake", views[0].SkillName)
	s.Equal("Sam Student", views[0].RequesterName)

	mentors, err := s.mentorRepo.List(ctx, mentor.Filter{Sector: sector.Healthcare})
	s.Require().NoError(err)
	s.Require().Len(mentors, 1)
	s.Equal("Erin Educator", mentors[0].Name)
}

func (s *RepoIntegrationTestSuite) Test_Analytics_UpsertKeepsOneRowPerSector() {
	ctx := context.Background()
	first := &analytics.SkillAnalytics{
		ID:           uuid.New(),
		UserID:       s.student.ID,
		Sector:       sector.Urban,
		OverallScore: 10,
		SkillGaps:    []scoring.SkillGap{},
		CalculatedAt: time.Now().UTC(),
	}
	stored, err := s.analyticsRepo.Upsert(ctx, first)
	s.Require().NoError(err)

	second := *first
	second.ID = uuid.New()
	second.OverallScore = 55
	again, err := s.analyticsRepo.Upsert(ctx, &second)
	s.Require().NoError(err)
	s.Equal(stored.ID, again.ID)
	s.Equal(55, again.OverallScore)

	all, err := s.analyticsRepo.ListByUser(ctx, s.student.ID)
	s.Require().NoError(err)
	count := 0
	for _, a := range all {
		if a.Sector == sector.Urban {
			count++
		}
	}
	s.Equal(1, count)

	_, err = s.analyticsRepo.Get(ctx, s.student.ID, sector.Agriculture)
	s.ErrorIs(err, apperror.ErrNotFound)
}
