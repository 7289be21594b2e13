//go:build linux

package browser

import (
	"fmt"
	"os/exec"
	"strings"
)

// Detect asks the desktop environment for the default web browser's
// desktop entry (e.g. "google-chrome.desktop", "firefox.desktop").
func Detect() (*Info, error) {
	out, err := exec.Command("xdg-settings", "get", "default-web-browser").Output()
	if err != nil {
		return nil, fmt.Errorf("xdg-settings: %w", err)
	}
	entry := strings.TrimSpace(string(out))
	if entry == "" {
		return nil, fmt.Errorf("xdg-settings returned no default browser")
	}
	return &Info{ID: entry, Name: strings.TrimSuffix(entry, ".desktop")}, nil
}
