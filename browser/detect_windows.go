//go:build windows

package browser

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// Detect reads the ProgId the user chose for https URLs
// (e.g. "ChromeHTML", "MSEdgeHTM", "FirefoxURL-...").
func Detect() (*Info, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER,
		`Software\Microsoft\Windows\Shell\Associations\UrlAssociations\https\UserChoice`,
		registry.QUERY_VALUE)
	if err != nil {
		return nil, fmt.Errorf("open UserChoice key: %w", err)
	}
	defer key.Close()

	progID, _, err := key.GetStringValue("ProgId")
	if err != nil {
		return nil, fmt.Errorf("read ProgId: %w", err)
	}
	return &Info{ID: progID, Name: progID}, nil
}
