package cookies

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/browserutils/kooky"
	chromestore "github.com/browserutils/kooky/browser/chrome"

	"github.com/use-agent/cookiefetch/browser"
)

// chromiumProvider reads the encrypted Cookies database of one
// Chromium-family browser. Profile resolution is strictly scoped to the
// requested browser: a missing Chrome profile never falls back to Edge.
// Decryption (DPAPI, Keychain, keyring) is delegated to kooky.
type chromiumProvider struct {
	id browser.ID
}

func newChromiumProvider(id browser.ID) *chromiumProvider {
	return &chromiumProvider{id: id}
}

func (p *chromiumProvider) Cookies(ctx context.Context, u *url.URL) ([]Cookie, error) {
	root, err := p.profileRoot()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(root); err != nil {
		// Browser not installed: absence, not failure.
		return nil, nil
	}

	path := chromiumCookiesFile(root)
	if path == "" {
		return nil, nil
	}

	raw, err := chromestore.ReadCookies(path)
	if err != nil {
		return nil, fmt.Errorf("read %s cookie store: %w", p.id, err)
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

// profileRoot returns the user-data directory of the requested browser on
// the current platform.
func (p *chromiumProvider) profileRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		base := filepath.Join(home, "Library", "Application Support")
		switch p.id {
		case browser.Chrome:
			return filepath.Join(base, "Google", "Chrome"), nil
		case browser.Edge:
			return filepath.Join(base, "Microsoft Edge"), nil
		case browser.Brave:
			return filepath.Join(base, "BraveSoftware", "Brave-Browser"), nil
		case browser.Opera:
			return filepath.Join(base, "com.operasoftware.Opera"), nil
		}
	case "windows":
		local := os.Getenv("LOCALAPPDATA")
		if local == "" {
			local = filepath.Join(home, "AppData", "Local")
		}
		switch p.id {
		case browser.Chrome:
			return filepath.Join(local, "Google", "Chrome", "User Data"), nil
		case browser.Edge:
			return filepath.Join(local, "Microsoft", "Edge", "User Data"), nil
		case browser.Brave:
			return filepath.Join(local, "BraveSoftware", "Brave-Browser", "User Data"), nil
		case browser.Opera:
			roaming := os.Getenv("APPDATA")
			if roaming == "" {
				roaming = filepath.Join(home, "AppData", "Roaming")
			}
			return filepath.Join(roaming, "Opera Software", "Opera Stable"), nil
		}
	default: // linux and friends
		base := filepath.Join(home, ".config")
		switch p.id {
		case browser.Chrome:
			return filepath.Join(base, "google-chrome"), nil
		case browser.Edge:
			return filepath.Join(base, "microsoft-edge"), nil
		case browser.Brave:
			return filepath.Join(base, "BraveSoftware", "Brave-Browser"), nil
		case browser.Opera:
			return filepath.Join(base, "opera"), nil
		}
	}
	return "", fmt.Errorf("no chromium profile mapping for %q on %s", p.id, runtime.GOOS)
}

// chromiumCookiesFile locates the Cookies database under a user-data root.
// Newer Chromium keeps it under Default/Network; Opera stores the profile
// at the root itself. Returns "" when no candidate exists.
func chromiumCookiesFile(root string) string {
	candidates := []string{
		filepath.Join(root, "Default", "Network", "Cookies"),
		filepath.Join(root, "Default", "Cookies"),
		filepath.Join(root, "Network", "Cookies"),
		filepath.Join(root, "Cookies"),
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// fromKooky converts a kooky cookie to the transport-facing model.
func fromKooky(kc *kooky.Cookie) Cookie {
	var sameSite string
	switch kc.SameSite {
	case http.SameSiteLaxMode:
		sameSite = "lax"
	case http.SameSiteStrictMode:
		sameSite = "strict"
	case http.SameSiteNoneMode:
		sameSite = "none"
	}
	return Cookie{
		Name:     kc.Name,
		Value:    kc.Value,
		Domain:   kc.Domain,
		Path:     kc.Path,
		Expires:  kc.Expires,
		Secure:   kc.Secure,
		SameSite: sameSite,
	}
}
