package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/khoahotran/skillfolio/internal/domain/user"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/auth"
	"github.com/khoahotran/skillfolio/pkg/logger"
	"github.com/khoahotran/skillfolio/pkg/metrics"
)

const (
	GinContextKeyUserID = "userID"
	GinContextKeyRole   = "userRole"
)

// AccountLookup resolves the account behind a token.
type AccountLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// AuthMiddleware rejects tokens of deactivated or deleted accounts, so a
// token stops working as soon as its account is deactivated.
func AuthMiddleware(jwtSvc *auth.JWTService, accounts AccountLookup, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperror.NewUnauthorized("authorization header is required", nil))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			abortWithError(c, apperror.NewUnauthorized("invalid token format", nil))
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			log.Debug("Rejected token", zap.Error(err))
			abortWithError(c, apperror.NewUnauthorized("invalid or expired token", err))
			return
		}

		account, err := accounts.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				abortWithError(c, apperror.NewUnauthorized("account no longer exists", err))
				return
			}
			log.Error("Failed to load account for token", err, zap.String("user_id", claims.UserID.String()))
			abortWithError(c, apperror.NewInternal("failed to load account", err))
			return
		}
		if !account.IsActive {
			abortWithError(c, apperror.NewUnauthorized("account is deactivated", nil))
			return
		}

		c.Set(GinContextKeyUserID, claims.UserID)
		c.Set(GinContextKeyRole, user.Role(claims.Role))

		c.Next()
	}
}

// RequireRoles must run after AuthMiddleware.
func RequireRoles(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := GetRoleFromGinContext(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		abortWithError(c, apperror.NewPermissionDenied("role "+string(role)+" may not access this resource"))
	}
}

func GetUserIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(GinContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetRoleFromGinContext(c *gin.Context) (user.Role, bool) {
	v, ok := c.Get(GinContextKeyRole)
	if !ok {
		return "", false
	}
	role, ok := v.(user.Role)
	return role, ok
}

// ErrorMiddleware renders the last error a handler attached with c.Error.
// Server errors are logged in full and reported to the client generically.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unhandled error", err)
		}
		status := apperror.ToHTTPStatus(appErr)

		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err,
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("details", appErr.Details))
			c.JSON(status, errorBody(apperror.CodeInternal, "An internal server error occurred"))
			return
		}

		c.JSON(status, errorBody(appErr.Code, clientMessage(appErr)))
	}
}

// clientMessage prefers the details of validation errors that only carry the
// generic message, so clients learn which field was wrong.
func clientMessage(e *apperror.AppError) string {
	if e.Details != "" && (e.Message == genericInvalidInput || e.Code == apperror.CodeUnauthorized || e.Code == apperror.CodePermission) {
		return e.Details
	}
	return e.Message
}

const genericInvalidInput = "Invalid input provided"

func abortWithError(c *gin.Context, err *apperror.AppError) {
	c.AbortWithStatusJSON(apperror.ToHTTPStatus(err), errorBody(err.Code, clientMessage(err)))
}

// MetricsMiddleware records request counts and latency per matched route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
		}
		log.Info("HTTP request", fields...)
	}
}

// CORSMiddleware allows the configured origins; an empty list or "*" allows
// any origin without credentials.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
