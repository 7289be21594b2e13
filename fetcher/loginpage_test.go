package fetcher

import (
	"net/url"
	"testing"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestIsLoginPage_CrossDomainRedirect(t *testing.T) {
	orig := mustParse(t, "https://app.example.com/report")

	cases := []struct {
		name  string
		final string
		body  string
		want  bool
	}{
		{
			name:  "redirect to sso host",
			final: "https://sso.corp-idp.com/authorize?client=x",
			body:  "redirecting",
			want:  true,
		},
		{
			name:  "redirect to okta",
			final: "https://corp.okta.com/app/signon",
			body:  "",
			want:  true,
		},
		{
			name: "same-domain redirect to /login does not trigger",
			// Path contains an indicator but the host is unchanged and the
			// body carries no credential form.
			final: "https://app.example.com/login?next=/report",
			body:  "<html><p>please wait</p></html>",
			want:  false,
		},
		{
			name:  "cross-domain without indicator",
			final: "https://cdn.example.net/asset.js",
			body:  "var x = 1;",
			want:  false,
		},
	}
	for _, tc := range cases {
		got := IsLoginPage(orig, mustParse(t, tc.final), tc.body)
		if got != tc.want {
			t.Errorf("%s: IsLoginPage = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsLoginPage_CredentialForm(t *testing.T) {
	u := mustParse(t, "https://example.com/page")

	cases := []struct {
		name string
		body string
		want bool
	}{
		{
			name: "password form",
			body: `<form><input type="password" name="pw"></form>`,
			want: true,
		},
		{
			name: "username form, any domain",
			body: `<INPUT name="Username">`,
			want: true,
		},
		{
			// Coarse on purpose: substrings anywhere flag the page.
			name: "marketing copy with input and email",
			body: `<input type="search"> Subscribe with your email address!`,
			want: true,
		},
		{
			name: "input without credential markers",
			body: `<input type="search" placeholder="find products">`,
			want: false,
		},
		{
			name: "credential words without input element",
			body: `We never ask for your password over the phone.`,
			want: false,
		},
	}
	for _, tc := range cases {
		// Same host for both URLs so only the form signal is in play.
		if got := IsLoginPage(u, u, tc.body); got != tc.want {
			t.Errorf("%s: IsLoginPage = %v, want %v", tc.name, got, tc.want)
		}
	}
}
