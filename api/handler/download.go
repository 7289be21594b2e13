package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/cookiefetch/fetcher"
	"github.com/use-agent/cookiefetch/models"
)

// Download returns a handler for POST /api/v1/download.
func Download(o *fetcher.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.DownloadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.DownloadResponse{
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		resp, err := o.Download(c.Request.Context(), &req)
		if err != nil {
			status, detail := errorToDetail(err)
			c.JSON(status, models.DownloadResponse{Error: detail})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
