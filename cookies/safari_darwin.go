//go:build darwin

package cookies

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	safaristore "github.com/browserutils/kooky/browser/safari"
)

// safariProvider parses Safari's Cookies.binarycookies. Available on macOS
// only; reading the file additionally requires Full Disk Access, which
// surfaces here as a permission error rather than an empty result.
type safariProvider struct{}

func (p *safariProvider) Cookies(ctx context.Context, u *url.URL) ([]Cookie, error) {
	path, err := safariCookiesFile()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}

	raw, err := safaristore.ReadCookies(path)
	if err != nil {
		return nil, fmt.Errorf("read safari cookie store: %w", err)
	}

	host := u.Hostname()
	now := time.Now()
	var out []Cookie
	for _, kc := range raw {
		c := fromKooky(kc)
		if domainMatch(host, c.Domain) && !expired(c, now) {
			out = append(out, c)
		}
	}
	return out, nil
}

func safariCookiesFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	candidates := []string{
		filepath.Join(home, "Library", "Containers", "com.apple.Safari",
			"Data", "Library", "Cookies", "Cookies.binarycookies"),
		filepath.Join(home, "Library", "Cookies", "Cookies.binarycookies"),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", nil
}
