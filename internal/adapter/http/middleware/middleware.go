package middleware

import (
	"net/http"
	"time"

	"agent-settlement/internal/core/ports"
	"agent-settlement/pkg/apperror"
	"agent-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// HeaderAdminKey carries the operator API key for guarded endpoints.
	HeaderAdminKey = "X-Admin-Api-Key"

	// CtxRequestID is the per-request correlation ID context key.
	CtxRequestID = "request_id"
)

// RequestID assigns each request a correlation ID, honoring one supplied by
// the caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(CtxRequestID, id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(CtxRequestID)).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// MaxBodySize returns middleware that limits the request body size.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// AdminAuth guards operator endpoints with an Argon2id-hashed API key.
// An empty configured hash disables the guard entirely.
func AdminAuth(keyHash string, verifier ports.APIKeyVerifier, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			c.Next()
			return
		}

		key := c.GetHeader(HeaderAdminKey)
		if key == "" {
			response.Error(c, apperror.ErrInvalidAdminKey())
			c.Abort()
			return
		}

		ok, err := verifier.Verify(key, keyHash)
		if err != nil {
			log.Error().Err(err).Msg("admin key verification failed")
			response.Error(c, apperror.InternalError(err))
			c.Abort()
			return
		}
		if !ok {
			response.Error(c, apperror.ErrInvalidAdminKey())
			c.Abort()
			return
		}
		c.Next()
	}
}
