//go:build windows

package browser

import "os/exec"

var startNames = map[ID]string{
	Chrome:  "chrome",
	Edge:    "msedge",
	Brave:   "brave",
	Opera:   "opera",
	Firefox: "firefox",
}

// Open opens url in the named browser via the shell's `start`, falling
// back to the default https handler. The launch is fire-and-forget.
func Open(url string, id ID) error {
	if name, ok := startNames[id]; ok {
		return exec.Command("cmd", "/c", "start", name, url).Start()
	}
	return exec.Command("cmd", "/c", "start", "", url).Start()
}
