package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/khoahotran/skillfolio/internal/domain/user"
	"github.com/khoahotran/skillfolio/pkg/auth"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	User          *UserHandler
	Profile       *ProfileHandler
	Skill         *SkillHandler
	Certification *CertificationHandler
	Project       *ProjectHandler
	Sector        *SectorHandler
	Analytics     *AnalyticsHandler
	Mentor        *MentorHandler
	Verification  *VerificationHandler
	Chat          *ChatHandler
}

type RouterConfig struct {
	ServiceName string
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig, h Handlers, jwtSvc *auth.JWTService, accounts AccountLookup, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	router.Use(CORSMiddleware(cfg.CORSOrigins))
	router.Use(MetricsMiddleware())
	router.Use(RequestLogger(log))
	router.Use(ErrorMiddleware(log))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := AuthMiddleware(jwtSvc, accounts, log)
	mentorRoles := RequireRoles(user.RoleEducator, user.RoleAdmin)
	adminOnly := RequireRoles(user.RoleAdmin)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		authGroup := api.Group("/auth")
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", authMiddleware, h.Auth.Me)

		private := api.Group("")
		private.Use(authMiddleware)
		{
			private.PUT("/users/me/avatar", h.User.UploadAvatar)
			private.DELETE("/users/me", h.User.Deactivate)

			private.GET("/profile", h.Profile.GetProfile)
			private.PUT("/profile", h.Profile.UpdateProfile)

			skills := private.Group("/skills")
			{
				skills.GET("", h.Skill.ListSkills)
				skills.POST("", h.Skill.CreateSkill)
				skills.GET("/:id", h.Skill.GetSkill)
				skills.PUT("/:id", h.Skill.UpdateSkill)
				skills.DELETE("/:id", h.Skill.DeleteSkill)
			}

			sectors := private.Group("/sectors/:sector")
			{
				sectors.GET("/skills", h.Skill.ListSkills)
				sectors.POST("/skills", h.Skill.CreateSkill)
				sectors.GET("/skills/:id", h.Skill.GetSkill)
				sectors.PUT("/skills/:id", h.Skill.UpdateSkill)
				sectors.DELETE("/skills/:id", h.Skill.DeleteSkill)

				sectors.GET("/certifications", h.Certification.ListCertifications)
				sectors.POST("/certifications", h.Certification.CreateCertification)
				sectors.GET("/certifications/:id", h.Certification.GetCertification)
				sectors.PUT("/certifications/:id", h.Certification.UpdateCertification)
				sectors.DELETE("/certifications/:id", h.Certification.DeleteCertification)

				sectors.GET("/projects", h.Project.ListProjects)
				sectors.POST("/projects", h.Project.CreateProject)
				sectors.GET("/projects/:id", h.Project.GetProject)
				sectors.PUT("/projects/:id", h.Project.UpdateProject)
				sectors.DELETE("/projects/:id", h.Project.DeleteProject)

				sectors.GET("/assessment", h.Sector.Assessment)
				sectors.GET("/career-pathways", h.Sector.CareerPathways)
				sectors.GET("/recommendations", h.Sector.Recommendations)
				sectors.GET("/courses", h.Sector.Courses)
			}

			analytics := private.Group("/analytics")
			{
				analytics.POST("/generate/:sector", h.Analytics.Generate)
				analytics.GET("/cross-sector/overview", h.Analytics.Overview)
				analytics.GET("/:sector", h.Analytics.Get)
			}

			mentors := private.Group("/mentors")
			{
				mentors.GET("", h.Mentor.ListApproved)
				mentors.GET("/me", h.Mentor.GetMine)
				mentors.PUT("/me", mentorRoles, h.Mentor.UpsertMine)
			}

			verification := private.Group("/verification")
			{
				verification.POST("/skills/:skillId/requests", h.Verification.CreateRequest)
				verification.GET("/requests/sent", h.Verification.ListSent)
				verification.GET("/requests/received", mentorRoles, h.Verification.ListReceived)
				verification.GET("/requests/:requestId", h.Verification.GetRequest)
				verification.POST("/requests/:requestId/cancel", h.Verification.Cancel)
				verification.POST("/requests/:requestId/decision", mentorRoles, h.Verification.Decide)
			}

			admin := private.Group("/admin")
			admin.Use(adminOnly)
			{
				admin.GET("/mentors", h.Mentor.ListForAdmin)
				admin.POST("/mentors/:userId/approve", h.Mentor.Approve)
				admin.POST("/mentors/:userId/revoke", h.Mentor.Revoke)
				admin.POST("/verification/reconcile", h.Verification.Reconcile)
			}

			chat := private.Group("/chat")
			{
				chat.POST("/message", h.Chat.Message)
				chat.POST("/validate", h.Chat.Validate)
			}
		}
	}

	return router
}
