package cookies

import (
	"net/url"
	"testing"
	"time"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestHeader_JoinsInProviderOrder(t *testing.T) {
	cs := []Cookie{
		{Name: "session", Value: "abc"},
		{Name: "csrf", Value: "xyz"},
		{Name: "session", Value: "dup"}, // duplicates are preserved as-is
	}
	got := Header(cs)
	want := "session=abc; csrf=xyz; session=dup"
	if got != want {
		t.Errorf("Header = %q, want %q", got, want)
	}
}

func TestHeader_Empty(t *testing.T) {
	if got := Header(nil); got != "" {
		t.Errorf("Header(nil) = %q, want empty", got)
	}
}

func TestDomainMatch(t *testing.T) {
	cases := []struct {
		host, domain string
		want         bool
	}{
		{"example.com", "example.com", true},
		{"example.com", ".example.com", true},
		{"sub.example.com", "example.com", true},
		{"sub.example.com", ".example.com", true},
		{"deep.sub.example.com", "example.com", true},
		{"example.com", "sub.example.com", false},
		{"notexample.com", "example.com", false},
		{"example.com.evil.org", "example.com", false},
		{"EXAMPLE.com", "example.COM", true},
		{"example.com", "", false},
	}
	for _, tc := range cases {
		if got := domainMatch(tc.host, tc.domain); got != tc.want {
			t.Errorf("domainMatch(%q, %q) = %v, want %v", tc.host, tc.domain, got, tc.want)
		}
	}
}

func TestExpired(t *testing.T) {
	now := time.Now()
	if expired(Cookie{}, now) {
		t.Error("session cookie (zero expiry) reported expired")
	}
	if !expired(Cookie{Expires: now.Add(-time.Hour)}, now) {
		t.Error("past expiry not reported expired")
	}
	if expired(Cookie{Expires: now.Add(time.Hour)}, now) {
		t.Error("future expiry reported expired")
	}
}
