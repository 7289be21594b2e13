//go:build darwin

package browser

import "os/exec"

var appNames = map[ID]string{
	Chrome:  "Google Chrome",
	Edge:    "Microsoft Edge",
	Brave:   "Brave Browser",
	Opera:   "Opera",
	Firefox: "Firefox",
	Safari:  "Safari",
}

// Open opens url in the named browser application, falling back to the
// system default handler when the application name is unknown. The launch
// is fire-and-forget: the process is started and not waited on.
func Open(url string, id ID) error {
	if app, ok := appNames[id]; ok {
		return exec.Command("open", "-a", app, url).Start()
	}
	return exec.Command("open", url).Start()
}
