// Package fetcher drives authenticated resource access: it reads cookies
// from the selected browser, issues the request with a browser-grade TLS
// fingerprint, classifies login challenges, and when allowed, pauses for
// interactive re-authentication and retries with refreshed cookies.
package fetcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/use-agent/cookiefetch/browser"
	"github.com/use-agent/cookiefetch/cookies"
	"github.com/use-agent/cookiefetch/models"
)

// CookieSource reads cookies for a concrete browser. Satisfied by
// *cookies.Store.
type CookieSource interface {
	Cookies(ctx context.Context, id browser.ID, u *url.URL) ([]cookies.Cookie, error)
}

// Config controls the orchestrator's timing and limits.
type Config struct {
	// RequestTimeout bounds a single outbound request including the
	// buffered body read. Streaming downloads are bounded by the caller's
	// context instead.
	RequestTimeout time.Duration

	// MaxBodyBytes caps buffered body reads (fetch responses and login
	// classification samples).
	MaxBodyBytes int64

	// PollInterval and WaitCeiling parameterize the login wait loop.
	PollInterval time.Duration
	WaitCeiling  time.Duration
}

// Orchestrator is the top-level state machine for one fetch or download.
// It holds no per-request state; concurrent requests share it freely.
type Orchestrator struct {
	store  CookieSource
	client Doer
	clock  Clock
	detect func() (*browser.Info, error)
	open   func(url string, id browser.ID) error
	cfg    Config
	log    *slog.Logger
}

// New creates an orchestrator wired to the real cookie store, HTTP client,
// clock, and OS browser integration.
func New(store CookieSource, client Doer, cfg Config, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		store:  store,
		client: client,
		clock:  realClock{},
		detect: browser.Detect,
		open:   browser.Open,
		cfg:    cfg,
		log:    logger,
	}
}

// Fetch satisfies one fetch request end to end.
func (o *Orchestrator) Fetch(ctx context.Context, req *models.FetchRequest) (*models.FetchResponse, error) {
	start := time.Now()
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

	cookieStart := time.Now()
	cs, err := o.readCookies(ctx, id, target)
	if err != nil {
		return nil, err
	}
	timing := models.TimingInfo{CookieMs: time.Since(cookieStart).Milliseconds()}

	reqStart := time.Now()
	att, err := o.attempt(ctx, target, cookies.Header(cs), true)
	timing.RequestMs = time.Since(reqStart).Milliseconds()
	if err != nil {
		return nil, models.NewAccessError(models.ErrCodeFetchFailed, "request failed", err)
	}

	if !att.challenge {
		timing.TotalMs = time.Since(start).Milliseconds()
		return deliverFetch(att, len(cs), timing), nil
	}

	if !*req.AutoLogin {
		timing.TotalMs = time.Since(start).Milliseconds()
		return &models.FetchResponse{
			LoginRequired: true,
			LoginURL:      att.resp.FinalURL,
			OriginalURL:   req.URL,
			CookiesUsed:   len(cs),
			Timing:        timing,
		}, nil
	}

	waitStart := time.Now()
	final, count, err := o.waitAndRetry(ctx, id, target, att.resp.FinalURL)
	timing.LoginWaitMs = time.Since(waitStart).Milliseconds()
	if err != nil {
		return nil, err
	}
	timing.TotalMs = time.Since(start).Milliseconds()
	return deliverFetch(final, count, timing), nil
}

// waitAndRetry opens the browser at the original URL, waits for the login
// to complete, then re-issues the request with refreshed cookies. The
// returned attempt is terminal: the successful probe is trusted and the
// challenge check is not re-run.
func (o *Orchestrator) waitAndRetry(ctx context.Context, id browser.ID, target *url.URL, loginURL string) (*attempt, int, error) {
	// Fire and forget: the wait loop below is the actual gate, so a
	// launch failure only gets a log line.
	if err := o.open(target.String(), id); err != nil {
		o.log.Debug("browser launch failed", "browser", id, "error", err)
	}
	o.log.Info("waiting for interactive login",
		"browser", id, "url", target.String(), "login_url", loginURL)

	waiter := &LoginWaiter{
		Interval: o.cfg.PollInterval,
		Ceiling:  o.cfg.WaitCeiling,
		Clock:    o.clock,
	}
	outcome, err := waiter.Wait(ctx, func(ctx context.Context) (bool, error) {
		cs, err := o.store.Cookies(ctx, id, target)
		if err != nil || len(cs) == 0 {
			return false, err
		}
		att, err := o.attempt(ctx, target, cookies.Header(cs), true)
		if err != nil {
			return false, err
		}
		return !att.challenge, nil
	})
	if err != nil {
		return nil, 0, models.NewAccessError(models.ErrCodeFetchFailed, "login wait cancelled", err)
	}
	if outcome == TimedOut {
		return nil, 0, models.NewAccessError(models.ErrCodeLoginTimeout,
			"timed out waiting for interactive login", nil)
	}

	// Fresh cookies for the terminal request; a successful probe means
	// extraction errors here are unexpected, so degrade to zero cookies.
	cs, err := o.readCookies(ctx, id, target)
	if err != nil {
		cs = nil
	}
	att, aerr := o.attempt(ctx, target, cookies.Header(cs), false)
	if aerr != nil {
		return nil, 0, models.NewAccessError(models.ErrCodeFetchFailed, "retry after login failed", aerr)
	}
	return att, len(cs), nil
}

// attempt is one Requested→classified transition: issue the request and,
// unless the status alone decides, read the body once and classify it.
type attempt struct {
	resp      *Response
	body      []byte
	challenge bool
}

func (o *Orchestrator) attempt(ctx context.Context, target *url.URL, cookieHeader string, classify bool) (*attempt, error) {
	rctx := ctx
	if o.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(ctx, o.cfg.RequestTimeout)
		defer cancel()
	}

	resp, err := o.client.Do(rctx, target.String(), cookieHeader)
	if err != nil {
		return nil, err
	}

	// 403 is a login challenge unconditionally, and the body stays
	// unread: no point buffering a denial that may be large or binary.
	if resp.StatusCode == http.StatusForbidden {
		resp.Body.Close()
		return &attempt{resp: resp, challenge: true}, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, o.cfg.MaxBodyBytes))
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	att := &attempt{resp: resp, body: body}
	if classify {
		finalURL, perr := url.Parse(resp.FinalURL)
		if perr != nil {
			finalURL = target
		}
		att.challenge = IsLoginPage(target, finalURL, string(body))
	}
	return att, nil
}

// deliverFetch builds the Delivered terminal response.
func deliverFetch(att *attempt, cookieCount int, timing models.TimingInfo) *models.FetchResponse {
	headers := make(map[string]string, len(att.resp.Header))
	for k := range att.resp.Header {
		headers[k] = att.resp.Header.Get(k)
	}
	return &models.FetchResponse{
		Success:     true,
		Status:      att.resp.StatusCode,
		StatusText:  att.resp.Status,
		Headers:     headers,
		Body:        string(att.body),
		Title:       extractTitle(att.body),
		FinalURL:    att.resp.FinalURL,
		CookiesUsed: cookieCount,
		Timing:      timing,
	}
}

// resolveBrowser turns the request's browser selector into a concrete ID.
// "default" goes through OS detection and the resolver; a failed detection
// lands on the resolver's fallback rather than erroring.
func (o *Orchestrator) resolveBrowser(selector string) (browser.ID, error) {
	id, err := browser.ParseID(selector)
	if err != nil {
		return "", models.NewAccessError(models.ErrCodeInvalidInput, err.Error(), err)
	}
	if id != browser.Default {
		return id, nil
	}

	info, err := o.detect()
	if err != nil {
		o.log.Debug("default browser detection failed", "error", err)
		return browser.Chrome, nil
	}
	resolved, err := browser.Resolve(info)
	if err != nil {
		return "", models.NewAccessError(models.ErrCodeInvalidBrowserInfo, err.Error(), err)
	}
	return resolved, nil
}

// readCookies reads the browser's cookies for target. Extraction failures
// degrade to zero cookies; only an unsupported browser selection is fatal.
func (o *Orchestrator) readCookies(ctx context.Context, id browser.ID, target *url.URL) ([]cookies.Cookie, error) {
	cs, err := o.store.Cookies(ctx, id, target)
	if err != nil {
		if errors.Is(err, cookies.ErrUnsupported) {
			return nil, models.NewAccessError(models.ErrCodeUnsupportedBrowser,
				"browser "+string(id)+" is not supported on this platform", err)
		}
		o.log.Warn("cookie extraction failed, continuing without cookies",
			"code", models.ErrCodeExtractionFailed,
			"browser", id, "host", target.Hostname(), "error", err)
		return nil, nil
	}
	o.log.Debug("cookies read", "browser", id, "host", target.Hostname(), "count", len(cs))
	return cs, nil
}
