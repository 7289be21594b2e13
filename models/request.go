package models

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// FetchRequest is the payload for POST /api/v1/fetch.
type FetchRequest struct {
	// URL is the resource to fetch. Required; http or https only.
	URL string `json:"url" binding:"required"`

	// Browser selects which browser's cookie store to read.
	// One of "chrome", "edge", "brave", "opera", "firefox", "safari",
	// or "default" to use the system default browser.
	// Default: "default".
	Browser string `json:"browser,omitempty"`

	// AutoLogin controls whether a detected login challenge opens the
	// browser and waits for interactive re-authentication before retrying.
	// Default: true.
	AutoLogin *bool `json:"auto_login,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *FetchRequest) Defaults() {
	if r.Browser == "" {
		r.Browser = "default"
	}
	if r.AutoLogin == nil {
		t := true
		r.AutoLogin = &t
	}
}

// Validate checks the URL before any I/O is attempted.
func (r *FetchRequest) Validate() error {
	return ValidateURL(r.URL)
}

// DownloadRequest is the payload for POST /api/v1/download.
type DownloadRequest struct {
	// URL is the resource to download. Required; http or https only.
	URL string `json:"url" binding:"required"`

	// OutputPath is the destination file, relative to the working
	// directory. Optional; when empty the filename is derived from the
	// Content-Disposition header or the URL.
	OutputPath string `json:"output_path,omitempty"`

	// Browser selects which browser's cookie store to read. Default: "default".
	Browser string `json:"browser,omitempty"`

	// AutoLogin controls the wait-and-retry login flow. Default: true.
	AutoLogin *bool `json:"auto_login,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *DownloadRequest) Defaults() {
	if r.Browser == "" {
		r.Browser = "default"
	}
	if r.AutoLogin == nil {
		t := true
		r.AutoLogin = &t
	}
}

// Validate checks the URL and output path before any I/O is attempted.
func (r *DownloadRequest) Validate() error {
	if err := ValidateURL(r.URL); err != nil {
		return err
	}
	if r.OutputPath != "" {
		if _, err := ResolveOutputPath(r.OutputPath); err != nil {
			return err
		}
	}
	return nil
}

// ValidateURL accepts exactly http and https URLs that parse cleanly.
func ValidateURL(raw string) error {
	if raw == "" {
		return NewAccessError(ErrCodeInvalidInput, "url is required", nil)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return NewAccessError(ErrCodeInvalidInput, fmt.Sprintf("invalid url: %v", err), err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewAccessError(ErrCodeInvalidInput,
			fmt.Sprintf("unsupported url scheme %q (http and https only)", u.Scheme), nil)
	}
	if u.Host == "" {
		return NewAccessError(ErrCodeInvalidInput, "url has no host", nil)
	}
	return nil
}

// ResolveOutputPath resolves path against the current working directory and
// rejects anything that escapes it. Returns the absolute destination path.
func ResolveOutputPath(path string) (string, error) {
	cwd, err := filepath.Abs(".")
	if err != nil {
		return "", NewAccessError(ErrCodeInternal, "resolve working directory", err)
	}
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(cwd, abs)
	}
	abs = filepath.Clean(abs)
	if abs != cwd && !strings.HasPrefix(abs, cwd+string(filepath.Separator)) {
		return "", NewAccessError(ErrCodeInvalidInput,
			fmt.Sprintf("output_path %q escapes the working directory", path), nil)
	}
	if abs == cwd {
		return "", NewAccessError(ErrCodeInvalidInput, "output_path is a directory", nil)
	}
	return abs, nil
}
