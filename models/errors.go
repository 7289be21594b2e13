package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeInvalidBrowserInfo = "INVALID_BROWSER_INFO"
	ErrCodeExtractionFailed   = "COOKIE_EXTRACTION_FAILED"
	ErrCodeUnsupportedBrowser = "UNSUPPORTED_BROWSER"
	ErrCodeLoginTimeout       = "LOGIN_TIMEOUT"
	ErrCodeFetchFailed        = "FETCH_FAILED"
	ErrCodeDownloadFailed     = "DOWNLOAD_FAILED"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AccessError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type AccessError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *AccessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// NewAccessError creates a new AccessError.
func NewAccessError(code, message string, err error) *AccessError {
	return &AccessError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *AccessError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}
