package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/logging"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Auth resolves the Authorization header into an Identity. A missing header
// is treated exactly like an invalid token.
func Auth(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := common.ExtractBearer(c.GetHeader("Authorization"))

		identity, err := users.Resolve(c.Request.Context(), token)
		if err != nil {
			HandleServiceError(c, err)
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func identityFrom(c *gin.Context) *models.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*models.Identity)
	return id
}

// RateLimit rejects clients that exceed the limiter's budget with 429.
func RateLimit(l Limiter, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Error(c.Request.Context(), "rate limiter failed", "error", err)
			ErrorResponse(c, http.StatusInternalServerError, "rate limiting error")
			c.Abort()
			return
		}
		if !ok {
			ErrorResponse(c, http.StatusTooManyRequests, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoggerMiddleware logs one line per request, at a level chosen by status.
func LoggerMiddleware(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}
		args := []any{
			"status_code", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"path", path,
		}
		if errs := c.Errors.String(); errs != "" {
			args = append(args, "errors", errs)
		}

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			log.Error(ctx, "Server error", args...)
		case status >= 400:
			log.Warn(ctx, "Client error", args...)
		default:
			log.Info(ctx, "Request handled", args...)
		}
	}
}
