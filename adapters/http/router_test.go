package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	analyticsUC "github.com/khoahotran/skillfolio/internal/application/usecase/analytics"
	"github.com/khoahotran/skillfolio/internal/application/usecase/assessment"
	authUC "github.com/khoahotran/skillfolio/internal/application/usecase/auth"
	certUC "github.com/khoahotran/skillfolio/internal/application/usecase/certification"
	chatUC "github.com/khoahotran/skillfolio/internal/application/usecase/chat"
	mentorUC "github.com/khoahotran/skillfolio/internal/application/usecase/mentor"
	profileUC "github.com/khoahotran/skillfolio/internal/application/usecase/profile"
	projectUC "github.com/khoahotran/skillfolio/internal/application/usecase/project"
	"github.com/khoahotran/skillfolio/internal/application/usecase/recommendation"
	skillUC "github.com/khoahotran/skillfolio/internal/application/usecase/skill"
	userUC "github.com/khoahotran/skillfolio/internal/application/usecase/user"
	verificationUC "github.com/khoahotran/skillfolio/internal/application/usecase/verification"
	"github.com/khoahotran/skillfolio/internal/domain/mock"
	"github.com/khoahotran/skillfolio/internal/domain/user"
	"github.com/khoahotran/skillfolio/pkg/auth"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type RouterTestSuite struct {
	suite.Suite
	store  *mock.Store
	jwtSvc *auth.JWTService
	router *gin.Engine
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := logger.NewNopLogger()
	s.store = mock.NewStore()
	s.jwtSvc = auth.NewJWTService("router-test-secret", time.Hour)
	publisher := &mock.Publisher{}

	users := s.store.Users()
	loader := assessment.NewSnapshotLoader(s.store.Skills(), s.store.Certifications(), s.store.Projects())
	projects := s.store.Projects()

	h := Handlers{
		Auth: NewAuthHandler(
			authUC.NewRegisterUseCase(users, s.jwtSvc, log),
			authUC.NewLoginUseCase(users, s.jwtSvc, log),
			authUC.NewGetMeUseCase(users),
			log,
		),
		User: NewUserHandler(
			userUC.NewUploadAvatarUseCase(users, nil, log),
			userUC.NewDeactivateUseCase(users, nil, log),
			log,
		),
		Profile:       NewProfileHandler(profileUC.NewProfileUseCase(s.store.Profiles())),
		Skill:         NewSkillHandler(skillUC.NewSkillUseCase(s.store.Skills(), publisher, log), log),
		Certification: NewCertificationHandler(certUC.NewCertificationUseCase(s.store.Certifications(), log), log),
		Project: NewProjectHandler(
			projectUC.NewCreateProjectUseCase(projects),
			projectUC.NewListProjectsUseCase(projects, log),
			projectUC.NewGetProjectUseCase(projects),
			projectUC.NewUpdateProjectUseCase(projects),
			projectUC.NewDeleteProjectUseCase(projects),
			log,
		),
		Sector: NewSectorHandler(
			assessment.NewAssessmentUseCase(loader),
			recommendation.NewRecommendationUseCase(loader, s.store.Profiles(), nil, nil, nil, time.Hour, log),
			log,
		),
		Analytics: NewAnalyticsHandler(analyticsUC.NewAnalyticsUseCase(s.store.Analytics(), loader, publisher, log), log),
		Mentor:    NewMentorHandler(mentorUC.NewMentorUseCase(s.store.Mentors(), users, log), log),
		Verification: NewVerificationHandler(
			verificationUC.NewVerificationUseCase(s.store.Verifications(), s.store.Skills(), s.store.Mentors(), users, publisher, log),
			verificationUC.NewReapplyApprovedUseCase(s.store.Verifications(), s.store.Skills(), users, log),
			log,
		),
		Chat: NewChatHandler(chatUC.NewChatUseCase(nil, log), log),
	}

	s.router = NewRouter(RouterConfig{CORSOrigins: []string{"http://localhost:3000"}}, h, s.jwtSvc, users, log)
}

func (s *RouterTestSuite) seedUser(name string, role user.Role) (*user.User, string) {
	u := &user.User{
		ID:        uuid.New(),
		Email:     name + "@example.com",
		Name:      name,
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(s.T(), s.store.Users().Save(context.Background(), u))
	token, err := s.jwtSvc.GenerateToken(u.ID, u.Email, string(u.Role))
	require.NoError(s.T(), err)
	return u, token
}

type envelopeResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (s *RouterTestSuite) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelopeResponse) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	var env envelopeResponse
	if rr.Body.Len() > 0 {
		_ = json.Unmarshal(rr.Body.Bytes(), &env)
	}
	return rr, env
}

func (s *RouterTestSuite) TestHealthIsPublic() {
	rr, _ := s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(s.T(), http.StatusOK, rr.Code)
}

func (s *RouterTestSuite) TestMissingTokenIsUnauthorized() {
	rr, env := s.do(http.MethodGet, "/api/profile", "", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)
	assert.False(s.T(), env.Success)
	assert.Equal(s.T(), "UNAUTHORIZED", env.Error)

	rr, _ = s.do(http.MethodGet, "/api/profile", "not-a-jwt", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)
}

func (s *RouterTestSuite) TestDeactivatedAccountTokenStopsWorking() {
	_, token := s.seedUser("leaving", user.RoleStudent)

	rr, _ := s.do(http.MethodGet, "/api/profile", token, nil)
	require.Equal(s.T(), http.StatusOK, rr.Code, rr.Body.String())

	rr, _ = s.do(http.MethodDelete, "/api/users/me", token, nil)
	require.Equal(s.T(), http.StatusNoContent, rr.Code)

	for _, path := range []string{"/api/profile", "/api/auth/me", "/api/skills"} {
		rr, env := s.do(http.MethodGet, path, token, nil)
		assert.Equal(s.T(), http.StatusUnauthorized, rr.Code, path)
		assert.Equal(s.T(), "UNAUTHORIZED", env.Error, path)
	}

	// A well-signed token for an account that does not exist.
	ghost, err := s.jwtSvc.GenerateToken(uuid.New(), "ghost@example.com", string(user.RoleStudent))
	require.NoError(s.T(), err)
	rr, _ = s.do(http.MethodGet, "/api/profile", ghost, nil)
	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)
}

func (s *RouterTestSuite) TestRegisterLoginMe() {
	body := gin.H{"email": "Ana@Example.com", "password": "correct-horse", "name": "Ana", "role": "STUDENT"}
	rr, env := s.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(s.T(), http.StatusCreated, rr.Code, rr.Body.String())
	assert.True(s.T(), env.Success)

	rr, env = s.do(http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(s.T(), http.StatusConflict, rr.Code)
	assert.Equal(s.T(), authUC.CodeEmailTaken, env.Error)

	rr, _ = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@example.com", "password": "wrong-password"})
	assert.Equal(s.T(), http.StatusUnauthorized, rr.Code)

	rr, env = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@example.com", "password": "correct-horse"})
	require.Equal(s.T(), http.StatusOK, rr.Code)
	var out struct {
		Token string     `json:"token"`
		User  *user.User `json:"user"`
	}
	require.NoError(s.T(), json.Unmarshal(env.Data, &out))
	require.NotEmpty(s.T(), out.Token)
	assert.Equal(s.T(), user.RoleStudent, out.User.Role)

	rr, env = s.do(http.MethodGet, "/api/auth/me", out.Token, nil)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), string(env.Data), "ana@example.com")
}

func (s *RouterTestSuite) TestRegisterCannotClaimAdmin() {
	rr, env := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "eve@example.com", "password": "correct-horse", "name": "Eve", "role": "ADMIN",
	})
	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)
	assert.Equal(s.T(), "VALIDATION_ERROR", env.Error)
}

func (s *RouterTestSuite) TestRoleGates() {
	_, student := s.seedUser("student", user.RoleStudent)
	_, educator := s.seedUser("educator", user.RoleEducator)

	rr, env := s.do(http.MethodGet, "/api/verification/requests/received", student, nil)
	assert.Equal(s.T(), http.StatusForbidden, rr.Code)
	assert.Equal(s.T(), "FORBIDDEN", env.Error)

	rr, _ = s.do(http.MethodGet, "/api/verification/requests/received", educator, nil)
	assert.Equal(s.T(), http.StatusOK, rr.Code)

	rr, _ = s.do(http.MethodGet, "/api/admin/mentors", educator, nil)
	assert.Equal(s.T(), http.StatusForbidden, rr.Code)

	rr, _ = s.do(http.MethodPut, "/api/mentors/me", student, gin.H{"sectors": []string{"URBAN"}})
	assert.Equal(s.T(), http.StatusForbidden, rr.Code)
}

func (s *RouterTestSuite) TestSkillValidationAndScoping() {
	_, token := s.seedUser("sam", user.RoleStudent)

	rr, env := s.do(http.MethodPost, "/api/sectors/healthcare/skills", token, gin.H{
		"name": "Triage", "category": "CLINICAL_SKILLS", "proficiency_level": 7,
	})
	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)
	assert.Equal(s.T(), "VALIDATION_ERROR", env.Error)

	rr, env = s.do(http.MethodGet, "/api/sectors/healthcare/skills", token, nil)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.JSONEq(s.T(), "[]", string(env.Data))

	rr, env = s.do(http.MethodPost, "/api/sectors/HealthCare/skills", token, gin.H{
		"name": "Triage", "category": "clinical_skills", "proficiency_level": 4,
	})
	require.Equal(s.T(), http.StatusCreated, rr.Code, rr.Body.String())
	var created struct {
		ID     uuid.UUID `json:"id"`
		Sector string    `json:"sector"`
	}
	require.NoError(s.T(), json.Unmarshal(env.Data, &created))
	assert.Equal(s.T(), "HEALTHCARE", created.Sector)

	rr, _ = s.do(http.MethodGet, "/api/sectors/urban/skills/"+created.ID.String(), token, nil)
	assert.Equal(s.T(), http.StatusNotFound, rr.Code)

	rr, _ = s.do(http.MethodGet, "/api/skills/"+created.ID.String(), token, nil)
	assert.Equal(s.T(), http.StatusOK, rr.Code)

	_, other := s.seedUser("other", user.RoleStudent)
	rr, _ = s.do(http.MethodGet, "/api/skills/"+created.ID.String(), other, nil)
	assert.Equal(s.T(), http.StatusNotFound, rr.Code)

	rr, env = s.do(http.MethodGet, "/api/sectors/mining/skills", token, nil)
	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)
	assert.Equal(s.T(), "VALIDATION_ERROR", env.Error)

	rr, _ = s.do(http.MethodDelete, "/api/skills/"+created.ID.String(), token, nil)
	assert.Equal(s.T(), http.StatusNoContent, rr.Code)
}

func (s *RouterTestSuite) TestAssessmentAndAnalytics() {
	_, token := s.seedUser("ada", user.RoleStudent)

	rr, env := s.do(http.MethodGet, "/api/sectors/agriculture/assessment", token, nil)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	var a struct {
		InnovationScore    *int   `json:"innovationScore"`
		AverageProficiency string `json:"averageProficiency"`
	}
	require.NoError(s.T(), json.Unmarshal(env.Data, &a))
	require.NotNil(s.T(), a.InnovationScore)
	assert.Equal(s.T(), 0, *a.InnovationScore)
	assert.Equal(s.T(), "0.00", a.AverageProficiency)

	rr, _ = s.do(http.MethodGet, "/api/analytics/urban", token, nil)
	assert.Equal(s.T(), http.StatusNotFound, rr.Code)

	rr, _ = s.do(http.MethodPost, "/api/analytics/generate/urban", token, nil)
	assert.Equal(s.T(), http.StatusOK, rr.Code)

	rr, _ = s.do(http.MethodGet, "/api/analytics/urban", token, nil)
	assert.Equal(s.T(), http.StatusOK, rr.Code)

	rr, _ = s.do(http.MethodGet, "/api/analytics/cross-sector/overview", token, nil)
	assert.Equal(s.T(), http.StatusOK, rr.Code)
}

func (s *RouterTestSuite) TestUnconfiguredProvidersServeFallbacks() {
	_, token := s.seedUser("fay", user.RoleStudent)

	rr, env := s.do(http.MethodPost, "/api/chat/message", token, gin.H{"message": "How do I become a nurse?"})
	require.Equal(s.T(), http.StatusOK, rr.Code)
	var reply chatUC.ChatOutput
	require.NoError(s.T(), json.Unmarshal(env.Data, &reply))
	assert.NotEmpty(s.T(), reply.Reply)
	assert.Equal(s.T(), chatUC.SourceFallback, reply.Source)

	rr, env = s.do(http.MethodGet, "/api/sectors/urban/recommendations", token, nil)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.Contains(s.T(), string(env.Data), `"source":"fallback"`)

	rr, env = s.do(http.MethodGet, "/api/sectors/healthcare/courses?q=nursing&limit=2", token, nil)
	require.Equal(s.T(), http.StatusOK, rr.Code)
	var courses recommendation.CoursesOutput
	require.NoError(s.T(), json.Unmarshal(env.Data, &courses))
	assert.Len(s.T(), courses.Courses, 2)

	rr, env = s.do(http.MethodPost, "/api/chat/validate", token, gin.H{"message": "Which certification should I get?"})
	require.Equal(s.T(), http.StatusOK, rr.Code)
	assert.JSONEq(s.T(), `{"isRelevant":true}`, string(env.Data))
}

func (s *RouterTestSuite) TestVerificationSectorMismatchOverHTTP() {
	_, admin := s.seedUser("admin", user.RoleAdmin)
	mentorUser, educator := s.seedUser("mentor", user.RoleEducator)
	_, student := s.seedUser("learner", user.RoleStudent)

	rr, _ := s.do(http.MethodPut, "/api/mentors/me", educator, gin.H{"sectors": []string{"healthcare"}})
	require.Equal(s.T(), http.StatusOK, rr.Code, rr.Body.String())
	rr, _ = s.do(http.MethodPost, "/api/admin/mentors/"+mentorUser.ID.String()+"/approve", admin, nil)
	require.Equal(s.T(), http.StatusOK, rr.Code)

	rr, env := s.do(http.MethodPost, "/api/sectors/agriculture/skills", student, gin.H{
		"name": "Drip irrigation", "category": "CROP_MANAGEMENT", "proficiency_level": 3,
	})
	require.Equal(s.T(), http.StatusCreated, rr.Code)
	var sk struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(s.T(), json.Unmarshal(env.Data, &sk))

	rr, env = s.do(http.MethodPost, "/api/verification/skills/"+sk.ID.String()+"/requests", student,
		gin.H{"reviewer_id": mentorUser.ID.String()})
	assert.Equal(s.T(), http.StatusBadRequest, rr.Code)
	assert.Equal(s.T(), "REVIEWER_SECTOR_MISMATCH", env.Error)
}

func (s *RouterTestSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/api/profile", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	assert.Equal(s.T(), http.StatusNoContent, rr.Code)
	assert.Equal(s.T(), "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}
