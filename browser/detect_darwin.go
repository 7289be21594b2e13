//go:build darwin

package browser

import (
	"fmt"
	"os/exec"
	"strings"
)

// Detect reads the https URL handler from the LaunchServices preferences.
// macOS has no direct query command, so this parses the `defaults` dump of
// the secure handler list and picks the bundle id registered for https.
func Detect() (*Info, error) {
	out, err := exec.Command("defaults", "read",
		"com.apple.LaunchServices/com.apple.launchservices.secure",
		"LSHandlers").Output()
	if err != nil {
		return nil, fmt.Errorf("read launchservices handlers: %w", err)
	}

	if bundle := httpsHandlerBundle(string(out)); bundle != "" {
		return &Info{ID: bundle, Name: bundle}, nil
	}

	// No explicit handler registered means the factory default.
	return &Info{ID: "com.apple.safari", Name: "Safari"}, nil
}

// httpsHandlerBundle extracts the LSHandlerRoleAll bundle id from the
// handler block whose LSHandlerURLScheme is https.
func httpsHandlerBundle(dump string) string {
	for _, block := range strings.Split(dump, "}") {
		if !strings.Contains(block, "LSHandlerURLScheme = https;") {
			continue
		}
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if rest, ok := strings.CutPrefix(line, "LSHandlerRoleAll = "); ok {
				return strings.Trim(strings.TrimSuffix(rest, ";"), `"`)
			}
		}
	}
	return ""
}
