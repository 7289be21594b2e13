package models

import (
	"path/filepath"
	"testing"
)

func TestValidateURL_Accepts(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://example.com",
		"https://example.com:8443/path?q=1#frag",
		"http://10.0.0.1:8080/deep/path",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q) = %v, want nil", u, err)
		}
	}
}

func TestValidateURL_Rejects(t *testing.T) {
	invalid := []string{
		"",
		"ftp://example.com/file",
		"file:///etc/passwd",
		"javascript:alert(1)",
		"://missing-scheme",
		"http://",
		"not a url at all",
	}
	for _, u := range invalid {
		err := ValidateURL(u)
		if err == nil {
			t.Errorf("ValidateURL(%q) = nil, want error", u)
			continue
		}
		accessErr, ok := err.(*AccessError)
		if !ok {
			t.Errorf("ValidateURL(%q) returned %T, want *AccessError", u, err)
			continue
		}
		if accessErr.Code != ErrCodeInvalidInput {
			t.Errorf("ValidateURL(%q) code = %s, want %s", u, accessErr.Code, ErrCodeInvalidInput)
		}
	}
}

func TestResolveOutputPath_WithinWorkingDir(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	abs, err := ResolveOutputPath("report.pdf")
	if err != nil {
		t.Fatalf("ResolveOutputPath: %v", err)
	}
	if filepath.Dir(abs) != tmp {
		t.Errorf("resolved to %q, want inside %q", abs, tmp)
	}

	if _, err := ResolveOutputPath(filepath.Join("sub", "dir", "report.pdf")); err != nil {
		t.Errorf("nested relative path rejected: %v", err)
	}
}

func TestResolveOutputPath_RejectsEscapes(t *testing.T) {
	t.Chdir(t.TempDir())

	escapes := []string{
		"../evil.txt",
		"../../evil.txt",
		"sub/../../evil.txt",
		"/etc/passwd",
		".",
	}
	for _, p := range escapes {
		if _, err := ResolveOutputPath(p); err == nil {
			t.Errorf("ResolveOutputPath(%q) = nil, want error", p)
		}
	}
}

func TestFetchRequestDefaults(t *testing.T) {
	var req FetchRequest
	req.Defaults()
	if req.Browser != "default" {
		t.Errorf("Browser default = %q, want %q", req.Browser, "default")
	}
	if req.AutoLogin == nil || !*req.AutoLogin {
		t.Error("AutoLogin should default to true")
	}
}
