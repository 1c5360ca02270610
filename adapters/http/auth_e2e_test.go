package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/skillfolio/adapters/persistence"
	authUC "github.com/khoahotran/skillfolio/internal/application/usecase/auth"
	"github.com/khoahotran/skillfolio/internal/config"
	"github.com/khoahotran/skillfolio/pkg/auth"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type AuthE2ETestSuite struct {
	suite.Suite
	Router   *gin.Engine
	dbPool   *pgxpool.Pool
	email    string
	password string
}

func (s *AuthE2ETestSuite) SetupSuite() {
	cfg, err := config.LoadConfig("../..")
	if err != nil {
		s.T().Fatalf("Failed to load config for E2E test: %v", err)
	}

	s.dbPool, err = pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		s.T().Fatalf("E2E test failed to connect postgres: %v", err)
	}

	appLogger := logger.NewZapLogger("development", "debug")
	s.email = fmt.Sprintf("e2e_%d@example.com", time.Now().UnixNano())
	s.password = "e2e_test_password_123"

	userRepo := persistence.NewPostgresUserRepo(s.dbPool)
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	authHandler := NewAuthHandler(
		authUC.NewRegisterUseCase(userRepo, jwtSvc, appLogger),
		authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger),
		authUC.NewGetMeUseCase(userRepo),
		appLogger,
	)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(appLogger))

	api := router.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", AuthMiddleware(jwtSvc, userRepo, appLogger), authHandler.Me)
	}

	s.Router = router
}

func (s *AuthE2ETestSuite) TearDownSuite() {
	if s.dbPool == nil {
		return
	}
	_, _ = s.dbPool.Exec(context.Background(), `DELETE FROM users WHERE email = $1`, s.email)
	s.dbPool.Close()
}

func TestAuthE2E(t *testing.T) {
	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("Skipping E2E tests. Set E2E_TESTS=1 to run.")
	}
	suite.Run(t, new(AuthE2ETestSuite))
}

func (s *AuthE2ETestSuite) post(path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func (s *AuthE2ETestSuite) Test_Register_Login_Me_Flow() {
	rrReg := s.post("/api/auth/register", gin.H{"email": s.email, "password": s.password, "name": "E2E User"})
	assert.Equal(s.T(), http.StatusCreated, rrReg.Code)

	rrDup := s.post("/api/auth/register", gin.H{"email": s.email, "password": s.password, "name": "E2E User"})
	assert.Equal(s.T(), http.StatusConflict, rrDup.Code)

	rrBad := s.post("/api/auth/login", gin.H{"email": s.email, "password": "wrongpassword"})
	assert.Equal(s.T(), http.StatusUnauthorized, rrBad.Code)

	rrGood := s.post("/api/auth/login", gin.H{"email": s.email, "password": s.password})
	assert.Equal(s.T(), http.StatusOK, rrGood.Code)

	var loginResponse struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	_ = json.Unmarshal(rrGood.Body.Bytes(), &loginResponse)
	accessToken := loginResponse.Data.Token
	assert.NotEmpty(s.T(), accessToken)

	reqMe := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	reqMe.Header.Set("Authorization", "Bearer "+accessToken)
	rrMe := httptest.NewRecorder()
	s.Router.ServeHTTP(rrMe, reqMe)
	assert.Equal(s.T(), http.StatusOK, rrMe.Code)

	reqNoAuth := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rrNoAuth := httptest.NewRecorder()
	s.Router.ServeHTTP(rrNoAuth, reqNoAuth)
	assert.Equal(s.T(), http.StatusUnauthorized, rrNoAuth.Code)
}
