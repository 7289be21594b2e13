package fetcher

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	tls2 "github.com/refraction-networking/utls"
)

// UserAgent identifies outbound requests. Fixed and descriptive: the
// cookies are the credential, the agent string is not.
const UserAgent = "cookiefetch/1.0 (local authenticated resource fetcher)"

// Response is the transport-level result of one outbound request, after
// all redirects have been followed.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	FinalURL   string
	Body       io.ReadCloser
}

// Doer issues one GET with an optional serialized cookie header.
type Doer interface {
	Do(ctx context.Context, targetURL, cookieHeader string) (*Response, error)
}

// Client performs HTTP requests with a Chrome TLS fingerprint (utls), so
// cookie-bearing requests present the same handshake as the browser that
// minted the cookies. Redirects are followed transparently.
type Client struct {
	hc *http.Client
}

// NewClient creates a client. proxy, if non-empty, is an http/https proxy
// URL applied to all requests.
func NewClient(proxy string) *Client {
	transport := &http.Transport{
		DialTLSContext: dialTLSChrome,
	}
	if proxy != "" {
		if proxyURL, err := url.Parse(proxy); err == nil &&
			(proxyURL.Scheme == "http" || proxyURL.Scheme == "https") {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}
	return &Client{hc: &http.Client{Transport: transport}}
}

// Do issues the request. The caller owns the returned body.
func (c *Client) Do(ctx context.Context, targetURL, cookieHeader string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if cookieHeader != "" {
		req.Header.Set("Cookie", cookieHeader)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		FinalURL:   resp.Request.URL.String(),
		Body:       resp.Body,
	}, nil
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint via utls.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls2.UClient(rawConn, &tls2.Config{
		ServerName: host,
	}, tls2.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}
