package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/cookiefetch/cookies"
	"github.com/use-agent/cookiefetch/models"
)

// Health returns a handler for GET /api/v1/health.
func Health(startTime time.Time, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supported := cookies.Supported()
		names := make([]string, len(supported))
		for i, id := range supported {
			names[i] = string(id)
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:            "healthy",
			Uptime:            time.Since(startTime).Round(time.Second).String(),
			Version:           version,
			SupportedBrowsers: names,
		})
	}
}
