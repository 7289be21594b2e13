// Package browser identifies, detects and launches the user's installed
// web browsers.
package browser

import (
	"errors"
	"fmt"
	"strings"
)

// ID is a supported browser identifier.
type ID string

const (
	Chrome  ID = "chrome"
	Edge    ID = "edge"
	Brave   ID = "brave"
	Opera   ID = "opera"
	Firefox ID = "firefox"
	Safari  ID = "safari"

	// Default is the pseudo-identifier for "whatever the system default
	// browser is". It must be resolved to a concrete ID before cookie
	// lookup.
	Default ID = "default"
)

// IDs lists every concrete browser identifier.
var IDs = []ID{Chrome, Edge, Brave, Opera, Firefox, Safari}

// Info is a detected browser as reported by the operating system:
// an opaque identifier (bundle id, desktop entry, ProgId) plus a
// human-readable name.
type Info struct {
	ID   string
	Name string
}

// ErrInvalidBrowserInfo is returned by Resolve for structurally invalid
// input. Unrecognized-but-present browser info never produces an error.
var ErrInvalidBrowserInfo = errors.New("invalid browser info")

// resolveOrder maps canonical tokens to IDs in precedence order.
// First match wins; "edge" must be tested before generic tokens since
// identifiers like "msedge" carry no other marker.
var resolveOrder = []struct {
	tokens []string
	id     ID
}{
	{[]string{"chrome"}, Chrome},
	{[]string{"msedge", "edge"}, Edge},
	{[]string{"firefox"}, Firefox},
	{[]string{"safari"}, Safari},
	{[]string{"brave"}, Brave},
	{[]string{"opera"}, Opera},
}

// Resolve maps detected browser info to a supported ID by case-insensitive
// substring matching against each browser's canonical tokens, in fixed
// precedence order. Unrecognized input resolves to Chrome rather than
// failing; only a nil Info is an error.
func Resolve(info *Info) (ID, error) {
	if info == nil {
		return "", ErrInvalidBrowserInfo
	}
	haystack := strings.ToLower(info.ID + " " + info.Name)
	for _, entry := range resolveOrder {
		for _, tok := range entry.tokens {
			if strings.Contains(haystack, tok) {
				return entry.id, nil
			}
		}
	}
	return Chrome, nil
}

// ParseID validates a caller-supplied browser selector. It accepts the six
// concrete identifiers plus "default", case-insensitively.
func ParseID(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if id == Default {
		return Default, nil
	}
	for _, known := range IDs {
		if id == known {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown browser %q", s)
}
