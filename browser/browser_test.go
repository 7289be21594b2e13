package browser

import (
	"errors"
	"testing"
)

func TestResolve_PriorityOrder(t *testing.T) {
	cases := []struct {
		name string
		info Info
		want ID
	}{
		{"chrome bundle id", Info{ID: "com.google.chrome", Name: "Google Chrome"}, Chrome},
		{"edge bundle id", Info{ID: "com.microsoft.edgemac", Name: "Microsoft Edge"}, Edge},
		{"msedge progid", Info{ID: "MSEdgeHTM", Name: ""}, Edge},
		{"firefox desktop entry", Info{ID: "firefox.desktop", Name: "firefox"}, Firefox},
		{"safari", Info{ID: "com.apple.safari", Name: "Safari"}, Safari},
		{"brave", Info{ID: "brave-browser.desktop", Name: "Brave"}, Brave},
		{"opera", Info{ID: "com.operasoftware.Opera", Name: "Opera"}, Opera},
		{"case insensitive", Info{ID: "CHROMEHTML", Name: ""}, Chrome},
		// "chrome" outranks "edge" when both tokens appear.
		{"chrome wins over edge", Info{ID: "chrome-edge-hybrid", Name: ""}, Chrome},
	}
	for _, tc := range cases {
		got, err := Resolve(&tc.info)
		if err != nil {
			t.Errorf("%s: Resolve returned error: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: Resolve = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestResolve_UnrecognizedFallsBackToChrome(t *testing.T) {
	for _, info := range []Info{
		{ID: "org.kde.konqueror", Name: "Konqueror"},
		{ID: "", Name: ""},
		{ID: "lynx", Name: "Lynx"},
	} {
		got, err := Resolve(&info)
		if err != nil {
			t.Errorf("Resolve(%+v) returned error: %v", info, err)
			continue
		}
		if got != Chrome {
			t.Errorf("Resolve(%+v) = %q, want chrome fallback", info, got)
		}
	}
}

func TestResolve_NilIsInvalid(t *testing.T) {
	if _, err := Resolve(nil); !errors.Is(err, ErrInvalidBrowserInfo) {
		t.Errorf("Resolve(nil) error = %v, want ErrInvalidBrowserInfo", err)
	}
}

func TestParseID(t *testing.T) {
	for _, s := range []string{"chrome", "edge", "brave", "opera", "firefox", "safari", "default", "Chrome", " firefox "} {
		if _, err := ParseID(s); err != nil {
			t.Errorf("ParseID(%q) = %v, want nil", s, err)
		}
	}
	for _, s := range []string{"netscape", "ie", "chromium"} {
		if _, err := ParseID(s); err == nil {
			t.Errorf("ParseID(%q) = nil, want error", s)
		}
	}
}
