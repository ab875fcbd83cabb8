package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse is returned by GET /api/health
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// RegisterHealthRoutes registers health check endpoints.
func RegisterHealthRoutes(r *gin.Engine) {
	started := time.Now()
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status: "ok",
			Uptime: time.Since(started).Truncate(time.Second).String(),
		})
	})
}
