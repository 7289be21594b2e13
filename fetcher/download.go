package fetcher

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/use-agent/cookiefetch/cookies"
	"github.com/use-agent/cookiefetch/models"
)

// classifySampleBytes caps how much of a download body is buffered for
// login-page classification. The full body still reaches the file.
const classifySampleBytes = 1 << 20

// fallbackFilename is used when neither the caller, the response headers,
// nor the URL yield a usable name.
const fallbackFilename = "download"

// Download satisfies one download request end to end. It shares the fetch
// state machine up to the Delivered transition, where the body is streamed
// to disk instead of buffered.
func (o *Orchestrator) Download(ctx context.Context, req *models.DownloadRequest) (*models.DownloadResponse, error) {
	req.Defaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	target, err := url.Parse(req.URL)
	if err != nil {
		return nil, models.NewAccessError(models.ErrCodeInvalidInput, "invalid url", err)
	}

	id, err := o.resolveBrowser(req.Browser)
	if err != nil {
		return nil, err
	}
	cs, err := o.readCookies(ctx, id, target)
	if err != nil {
		return nil, err
	}

	resp, sample, challenge, err := o.streamAttempt(ctx, target, cookies.Header(cs), true)
	if err != nil {
		return nil, models.NewAccessError(models.ErrCodeDownloadFailed, "request failed", err)
	}

	if challenge {
		if !*req.AutoLogin {
			return &models.DownloadResponse{
				Status:      "login_required",
				LoginURL:    resp.FinalURL,
				OriginalURL: req.URL,
				CookiesUsed: len(cs),
			}, nil
		}

		if err := o.open(target.String(), id); err != nil {
			o.log.Debug("browser launch failed", "browser", id, "error", err)
		}
		o.log.Info("waiting for interactive login",
			"browser", id, "url", target.String(), "login_url", resp.FinalURL)

		waiter := &LoginWaiter{Interval: o.cfg.PollInterval, Ceiling: o.cfg.WaitCeiling, Clock: o.clock}
		outcome, werr := waiter.Wait(ctx, func(ctx context.Context) (bool, error) {
			probeCookies, err := o.store.Cookies(ctx, id, target)
			if err != nil || len(probeCookies) == 0 {
				return false, err
			}
			att, err := o.attempt(ctx, target, cookies.Header(probeCookies), true)
			if err != nil {
				return false, err
			}
			return !att.challenge, nil
		})
		if werr != nil {
			return nil, models.NewAccessError(models.ErrCodeDownloadFailed, "login wait cancelled", werr)
		}
		if outcome == TimedOut {
			return nil, models.NewAccessError(models.ErrCodeLoginTimeout,
				"timed out waiting for interactive login", nil)
		}

		if cs, err = o.readCookies(ctx, id, target); err != nil {
			cs = nil
		}
		resp, sample, _, err = o.streamAttempt(ctx, target, cookies.Header(cs), false)
		if err != nil {
			return nil, models.NewAccessError(models.ErrCodeDownloadFailed, "retry after login failed", err)
		}
	}

	dest, err := resolveFilename(req.OutputPath, resp.Header, target)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}

	size, elapsed, err := writeFile(dest, sample, resp.Body)
	if err != nil {
		return nil, models.NewAccessError(models.ErrCodeDownloadFailed, "write "+dest, err)
	}

	speed := float64(size)
	if secs := elapsed.Seconds(); secs > 0 {
		speed = float64(size) / secs
	}
	display := dest
	if cwd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(cwd, dest); err == nil {
			display = rel
		}
	}
	o.log.Info("download complete", "file", display, "bytes", size,
		"duration", elapsed.Round(time.Millisecond), "cookies", len(cs))

	return &models.DownloadResponse{
		Success:           true,
		Status:            "success",
		Filename:          display,
		Size:              size,
		SizeHuman:         humanBytes(float64(size)),
		DurationMs:        elapsed.Milliseconds(),
		AverageSpeed:      speed,
		AverageSpeedHuman: humanBytes(speed) + "/s",
		CookiesUsed:       len(cs),
	}, nil
}

// streamAttempt issues the request and classifies it from a bounded body
// sample, leaving the rest of the body unread for streaming. On a
// challenge outcome the body is closed and only the response metadata is
// meaningful.
func (o *Orchestrator) streamAttempt(ctx context.Context, target *url.URL, cookieHeader string, classify bool) (*Response, []byte, bool, error) {
	resp, err := o.client.Do(ctx, target.String(), cookieHeader)
	if err != nil {
		return nil, nil, false, err
	}

	if resp.StatusCode == http.StatusForbidden {
		resp.Body.Close()
		return resp, nil, true, nil
	}

	sample, err := io.ReadAll(io.LimitReader(resp.Body, classifySampleBytes))
	if err != nil {
		resp.Body.Close()
		return nil, nil, false, err
	}

	if classify {
		finalURL, perr := url.Parse(resp.FinalURL)
		if perr != nil {
			finalURL = target
		}
		if IsLoginPage(target, finalURL, string(sample)) {
			resp.Body.Close()
			return resp, nil, true, nil
		}
	}
	return resp, sample, false, nil
}

// resolveFilename picks the destination path, in order: the caller's
// output path (validated against the working directory), the
// Content-Disposition filename, the last path segment of the request URL,
// then a fixed fallback. Derived names are re-validated so a hostile
// header cannot escape the working directory either.
func resolveFilename(outputPath string, header http.Header, requestURL *url.URL) (string, error) {
	if outputPath != "" {
		return models.ResolveOutputPath(outputPath)
	}

	if cd := header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := filepath.Base(params["filename"]); usableName(name) {
				return models.ResolveOutputPath(name)
			}
		}
	}

	if name := path.Base(requestURL.Path); usableName(name) {
		return models.ResolveOutputPath(name)
	}

	return models.ResolveOutputPath(fallbackFilename)
}

func usableName(name string) bool {
	switch name {
	case "", ".", "..", "/", `\`:
		return false
	}
	return true
}

// writeFile streams sample followed by the remaining body into dest,
// returning bytes written and elapsed transfer time.
func writeFile(dest string, sample []byte, body io.ReadCloser) (int64, time.Duration, error) {
	defer body.Close()
	start := time.Now()

	f, err := os.Create(dest)
	if err != nil {
		return 0, 0, err
	}

	var written int64
	n, err := f.Write(sample)
	written += int64(n)
	if err == nil {
		var m int64
		m, err = io.Copy(f, body)
		written += m
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return 0, 0, err
	}
	return written, time.Since(start), nil
}

// humanBytes renders a byte count the way a person reads one.
func humanBytes(n float64) string {
	const unit = 1024.0
	if n < unit {
		return fmt.Sprintf("%.0f B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", n/div, "KMGTPE"[exp])
}
