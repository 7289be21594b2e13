package cookies

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// firefoxProvider reads cookies.sqlite from the default Firefox profile.
// The database is opened read-only and immutable so a running Firefox
// holding the write lock does not block us.
type firefoxProvider struct{}

func (p *firefoxProvider) Cookies(ctx context.Context, u *url.URL) ([]Cookie, error) {
	profile, err := defaultFirefoxProfile()
	if err != nil {
		return nil, err
	}
	if profile == "" {
		// No Firefox profiles on this machine.
		return nil, nil
	}

	dbPath := filepath.Join(profile, "cookies.sqlite")
	if _, err := os.Stat(dbPath); err != nil {
		return nil, nil
	}
	return queryFirefoxCookies(ctx, dbPath, u.Hostname())
}

// defaultFirefoxProfile finds the profile directory, preferring one whose
// name contains "default", otherwise the first available. Empty string
// means Firefox is not installed.
func defaultFirefoxProfile() (string, error) {
	root, err := firefoxProfilesRoot()
	if err != nil {
		return "", err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("list firefox profiles: %w", err)
	}

	first := ""
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if strings.Contains(strings.ToLower(e.Name()), "default") {
			return filepath.Join(root, e.Name()), nil
		}
		if first == "" {
			first = e.Name()
		}
	}
	if first == "" {
		return "", nil
	}
	return filepath.Join(root, first), nil
}

func firefoxProfilesRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Firefox", "Profiles"), nil
	case "windows":
		roaming := os.Getenv("APPDATA")
		if roaming == "" {
			roaming = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(roaming, "Mozilla", "Firefox", "Profiles"), nil
	default:
		return filepath.Join(home, ".mozilla", "firefox"), nil
	}
}

// queryFirefoxCookies selects cookies whose host column equals the target
// hostname or its dotted form, which is how Firefox records parent-domain
// cookies.
func queryFirefoxCookies(ctx context.Context, dbPath, host string) ([]Cookie, error) {
	dsn := "file:" + dbPath + "?mode=ro&immutable=1"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open firefox cookie store: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT name, value, host, path, expiry, isSecure, sameSite
		   FROM moz_cookies
		  WHERE host = ? OR host = ?`,
		host, "."+host)
	if err != nil {
		return nil, fmt.Errorf("query firefox cookies: %w", err)
	}
	defer rows.Close()

	var out []Cookie
	now := time.Now()
	for rows.Next() {
		var (
			c        Cookie
			expiry   int64
			isSecure int64
			sameSite int64
		)
		if err := rows.Scan(&c.Name, &c.Value, &c.Domain, &c.Path, &expiry, &isSecure, &sameSite); err != nil {
			return nil, fmt.Errorf("scan firefox cookie: %w", err)
		}
		if expiry > 0 {
			c.Expires = time.Unix(expiry, 0)
		}
		c.Secure = isSecure != 0
		switch sameSite {
		case 1:
			c.SameSite = "lax"
		case 2:
			c.SameSite = "strict"
		}
		if expired(c, now) {
			continue
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
