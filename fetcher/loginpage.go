package fetcher

import (
	"net/url"
	"strings"
)

// loginIndicators are URL fragments that mark identity-provider and
// sign-in endpoints. Matched against the lowercased final URL.
var loginIndicators = []string{
	"sso",
	"oauth",
	"saml",
	"login",
	"signin",
	"sign-in",
	"authenticate",
	"auth0",
	"okta",
	"identity",
}

// loginFormMarkers are body substrings that, together with an input
// element, suggest a credential form.
var loginFormMarkers = []string{"password", "username", "email"}

// IsLoginPage decides whether a response represents an authentication
// challenge rather than the requested content. Two independent signals,
// either of which suffices:
//
//  1. The request was redirected to a different host AND the final URL
//     contains a login indicator. A same-domain redirect to /login does
//     not trigger this; plenty of sites route everything through their
//     own paths.
//  2. The body contains an <input element and a credential marker.
//
// Signal 2 is substring matching, not HTML parsing, so marketing copy
// mentioning "email" next to a search box will be flagged. That
// over-approximation is intended: pausing for a login that turns out to
// be unnecessary is cheaper than handing back a stale denial.
func IsLoginPage(originalURL, finalURL *url.URL, body string) bool {
	if originalURL != nil && finalURL != nil &&
		!strings.EqualFold(originalURL.Hostname(), finalURL.Hostname()) {
		lowered := strings.ToLower(finalURL.String())
		for _, ind := range loginIndicators {
			if strings.Contains(lowered, ind) {
				return true
			}
		}
	}

	lowered := strings.ToLower(body)
	if strings.Contains(lowered, "<input") {
		for _, marker := range loginFormMarkers {
			if strings.Contains(lowered, marker) {
				return true
			}
		}
	}
	return false
}
