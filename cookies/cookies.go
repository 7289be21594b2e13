// Package cookies reads cookies for a target origin from the browsers
// installed on the local machine.
//
// Each browser family is one Provider implementation. A missing browser or
// an origin with no cookies yields an empty result, never an error; hard
// failures (unreadable store, unsupported platform) surface as errors so
// the caller can decide how degraded to run.
package cookies

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/use-agent/cookiefetch/browser"
)

// Cookie is a single cookie as read from a browser store. Values are
// immutable once returned and live only for the request that asked.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Expires  time.Time // zero for session cookies
	Secure   bool
	SameSite string // "", "lax", "strict", "none"
}

// ErrUnsupported is returned when a browser's cookie store cannot be read
// on this platform at all, as opposed to being installed with no cookies.
var ErrUnsupported = errors.New("browser cookie store not supported on this platform")

// Provider reads the cookies one browser family holds for a URL's origin.
type Provider interface {
	// Cookies returns the cookies stored for u's hostname, including
	// parent-domain cookies. An empty slice means "none stored"; an
	// error means the store could not be read.
	Cookies(ctx context.Context, u *url.URL) ([]Cookie, error)
}

// Store routes cookie lookups to the per-browser Provider.
type Store struct {
	providers map[browser.ID]Provider
}

// NewStore wires the default adapters for every supported browser.
func NewStore() *Store {
	return &Store{
		providers: map[browser.ID]Provider{
			browser.Chrome:  newChromiumProvider(browser.Chrome),
			browser.Edge:    newChromiumProvider(browser.Edge),
			browser.Brave:   newChromiumProvider(browser.Brave),
			browser.Opera:   newChromiumProvider(browser.Opera),
			browser.Firefox: &firefoxProvider{},
			browser.Safari:  &safariProvider{},
		},
	}
}

// Cookies reads the cookies id's store holds for u. The id must be a
// concrete browser, never browser.Default.
func (s *Store) Cookies(ctx context.Context, id browser.ID, u *url.URL) ([]Cookie, error) {
	p, ok := s.providers[id]
	if !ok {
		return nil, fmt.Errorf("no cookie provider for browser %q", id)
	}
	return p.Cookies(ctx, u)
}

// Header serializes cookies into a Cookie request header value, joining
// name=value pairs in the given order. No de-duplication or normalization
// is performed; the provider's order is the wire order.
func Header(cs []Cookie) string {
	if len(cs) == 0 {
		return ""
	}
	pairs := make([]string, len(cs))
	for i, c := range cs {
		pairs[i] = c.Name + "=" + c.Value
	}
	return strings.Join(pairs, "; ")
}

// domainMatch reports whether a cookie stored for domain applies to host:
// either an exact match or host is a subdomain of it. A leading dot on the
// stored domain is ignored, per RFC 6265 semantics.
func domainMatch(host, domain string) bool {
	host = strings.ToLower(host)
	domain = strings.ToLower(strings.TrimPrefix(domain, "."))
	if domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// expired reports whether the cookie is past its expiry. Session cookies
// (zero expiry) never expire here.
func expired(c Cookie, now time.Time) bool {
	return !c.Expires.IsZero() && c.Expires.Before(now)
}
