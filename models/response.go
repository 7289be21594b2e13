package models

// FetchResponse is the response for POST /api/v1/fetch.
type FetchResponse struct {
	// Success indicates whether the fetch delivered the resource.
	// False for both errors and login_required outcomes.
	Success bool `json:"success"`

	// Status is the HTTP status code of the delivered response. Zero when
	// the outcome is login_required (see LoginRequired) or an error.
	Status     int    `json:"status,omitempty"`
	StatusText string `json:"status_text,omitempty"`

	// Headers holds the delivered response headers (first value per key).
	Headers map[string]string `json:"headers,omitempty"`

	// Body is the response body, verbatim.
	Body string `json:"body,omitempty"`

	// Title is the page <title>, when the body is HTML. Metadata only.
	Title string `json:"title,omitempty"`

	// FinalURL is the URL after following all redirects.
	FinalURL string `json:"final_url,omitempty"`

	// CookiesUsed is the number of cookies sent with the request.
	CookiesUsed int `json:"cookies_used"`

	// LoginRequired is set when the response was classified as a login
	// challenge and no automatic retry was performed.
	LoginRequired bool   `json:"login_required,omitempty"`
	LoginURL      string `json:"login_url,omitempty"`
	OriginalURL   string `json:"original_url,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false and the outcome is
	// not login_required.
	Error *ErrorDetail `json:"error,omitempty"`
}

// DownloadResponse is the response for POST /api/v1/download.
type DownloadResponse struct {
	Success bool `json:"success"`

	// Status is "success" or "login_required".
	Status string `json:"status,omitempty"`

	// Filename is the path the resource was written to, relative to the
	// working directory.
	Filename string `json:"filename,omitempty"`

	// Size is the number of bytes written.
	Size int64 `json:"size,omitempty"`

	// SizeHuman is Size formatted for humans, e.g. "4.2 MB".
	SizeHuman string `json:"size_human,omitempty"`

	// DurationMs is the transfer duration in milliseconds.
	DurationMs int64 `json:"duration_ms,omitempty"`

	// AverageSpeed is bytes per second over the transfer.
	AverageSpeed float64 `json:"average_speed,omitempty"`

	// AverageSpeedHuman is AverageSpeed formatted for humans, e.g. "1.3 MB/s".
	AverageSpeedHuman string `json:"average_speed_human,omitempty"`

	// CookiesUsed is the number of cookies sent with the request.
	CookiesUsed int `json:"cookies_used"`

	LoginURL    string `json:"login_url,omitempty"`
	OriginalURL string `json:"original_url,omitempty"`

	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// CookieMs is the time spent reading browser cookie stores.
	CookieMs int64 `json:"cookie_ms"`

	// RequestMs is the time spent on outbound HTTP, excluding login waits.
	RequestMs int64 `json:"request_ms"`

	// LoginWaitMs is the time spent waiting for interactive login, if any.
	LoginWaitMs int64 `json:"login_wait_ms,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status            string   `json:"status"` // always "healthy"
	Uptime            string   `json:"uptime"`
	Version           string   `json:"version"`
	SupportedBrowsers []string `json:"supported_browsers"`
}
