//go:build linux

package browser

import "os/exec"

// Candidate executable names per browser, tried in order.
var execNames = map[ID][]string{
	Chrome:  {"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"},
	Edge:    {"microsoft-edge", "microsoft-edge-stable"},
	Brave:   {"brave-browser", "brave"},
	Opera:   {"opera"},
	Firefox: {"firefox"},
}

// Open opens url in the named browser when its executable is on PATH,
// falling back to xdg-open. The launch is fire-and-forget.
func Open(url string, id ID) error {
	for _, name := range execNames[id] {
		if path, err := exec.LookPath(name); err == nil {
			return exec.Command(path, url).Start()
		}
	}
	return exec.Command("xdg-open", url).Start()
}
