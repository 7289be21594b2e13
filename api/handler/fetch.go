package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/cookiefetch/fetcher"
	"github.com/use-agent/cookiefetch/models"
)

// Fetch returns a handler for POST /api/v1/fetch.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Orchestrator.Fetch runs the full state machine: cookies → request →
//     classify → (optional) wait-for-login → retry.
//  3. Success, login_required and error outcomes each map to a structured
//     JSON response.
func Fetch(o *fetcher.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.FetchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.FetchResponse{
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		resp, err := o.Fetch(c.Request.Context(), &req)
		if err != nil {
			status, detail := errorToDetail(err)
			c.JSON(status, models.FetchResponse{Error: detail})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// errorToDetail maps an internal error to an HTTP status and API detail.
// Unexpected errors never leak internals beyond their message.
func errorToDetail(err error) (int, *models.ErrorDetail) {
	var accessErr *models.AccessError
	if !errors.As(err, &accessErr) {
		accessErr = models.NewAccessError(models.ErrCodeInternal, err.Error(), err)
	}
	return mapErrorToStatus(accessErr), accessErr.ToDetail()
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.AccessError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput, models.ErrCodeInvalidBrowserInfo:
		return http.StatusBadRequest // 400
	case models.ErrCodeUnsupportedBrowser:
		return http.StatusUnprocessableEntity // 422
	case models.ErrCodeLoginTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeFetchFailed, models.ErrCodeDownloadFailed:
		return http.StatusBadGateway // 502
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
