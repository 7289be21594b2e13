//go:build !darwin

package cookies

import (
	"context"
	"net/url"
)

// safariProvider on non-macOS platforms: the binarycookies store only
// exists on macOS, so any lookup is a hard unsupported error. This is
// deliberately distinct from "installed but no cookies".
type safariProvider struct{}

func (p *safariProvider) Cookies(ctx context.Context, u *url.URL) ([]Cookie, error) {
	return nil, ErrUnsupported
}
