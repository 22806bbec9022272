package handler

import (
	"net/http"

	"agent-settlement/internal/core/ports"
	"agent-settlement/internal/service"

	"github.com/gin-gonic/gin"
)

// KeysHandler publishes the verification keys as a JWK set.
type KeysHandler struct {
	ring *service.KeyRing
}

// NewKeysHandler creates a new KeysHandler.
func NewKeysHandler(ring *service.KeyRing) *KeysHandler {
	return &KeysHandler{ring: ring}
}

// JWKS handles GET /.well-known/jwks.json.
func (h *KeysHandler) JWKS(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"keys": h.ring.JWKS()})
}

// HealthCheck handles GET /health — deep health check verifying all dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
