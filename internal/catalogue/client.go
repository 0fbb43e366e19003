package catalogue

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

const (
	// DefaultURL is the gzip-compressed full catalogue published by the
	// Open Exoplanet Catalogue project.
	DefaultURL = "https://github.com/OpenExoplanetCatalogue/oec_gzip/raw/master/systems.xml.gz"

	// DefaultTimeout bounds a whole download, including redirects.
	DefaultTimeout = 2 * time.Minute

	// DefaultUserAgent identifies the fetcher to the catalogue host.
	DefaultUserAgent = "exotimeline (+https://github.com/nao1215/exotimeline)"

	// DefaultMaxBodySize caps the downloaded document. The compressed
	// catalogue is a few megabytes.
	DefaultMaxBodySize int64 = 64 << 20

	maxRedirects = 10
)

// Client downloads catalogue documents.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	maxBodySize int64
	logger      *slog.Logger

	timeout  time.Duration
	proxyURL string
	headers  map[string]string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the timeout of a whole download.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithProxy routes downloads through a SOCKS5 proxy, given either as
// "host:port" or "socks5://[user:pass@]host:port".
func WithProxy(proxyURL string) ClientOption {
	return func(c *Client) {
		c.proxyURL = proxyURL
	}
}

// WithHeaders adds headers to every request, e.g. an authorization token
// for a private mirror.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		c.headers = headers
	}
}

// WithMaxBodySize caps the size of a downloaded document.
func WithMaxBodySize(n int64) ClientOption {
	return func(c *Client) {
		c.maxBodySize = n
	}
}

// WithClientLogger sets the logger.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a catalogue client.
// No connection is made until Download is called.
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		logger:      slog.Default(),
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // DefaultTransport is always *http.Transport
	if c.proxyURL != "" {
		dialer, err := newSOCKS5Dialer(c.proxyURL)
		if err != nil {
			return nil, err
		}
		transport.Proxy = nil
		transport.DialContext = dialContext(dialer)
	}

	var rt http.RoundTripper = transport
	if len(c.headers) > 0 {
		rt = &headerInjectingTransport{base: transport, headers: c.headers}
	}

	c.httpClient = &http.Client{
		Transport: rt,
		Timeout:   c.timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
	return c, nil
}

// newSOCKS5Dialer parses the proxy address and builds the dialer.
func newSOCKS5Dialer(raw string) (proxy.Dialer, error) {
	if !strings.Contains(raw, "://") {
		raw = "socks5://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProxyAddress, err)
	}
	if u.Scheme != "socks5" && u.Scheme != "socks5h" {
		return nil, ErrInvalidProxyAddress
	}
	if !isValidProxyAddress(u.Host) {
		return nil, ErrInvalidProxyAddress
	}

	var auth *proxy.Auth
	if u.User != nil {
		password, _ := u.User.Password()
		auth = &proxy.Auth{User: u.User.Username(), Password: password}
	}

	dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
	}
	return dialer, nil
}

// isValidProxyAddress checks for a non-empty host and a port in 1..65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	return err == nil && n >= 1 && n <= 65535
}

// dialContext adapts a proxy.Dialer, preferring its context-aware variant.
func dialContext(d proxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		type dialResult struct {
			conn net.Conn
			err  error
		}
		resultCh := make(chan dialResult, 1)
		go func() {
			conn, err := d.Dial(network, addr)
			resultCh <- dialResult{conn, err}
		}()
		select {
		case r := <-resultCh:
			return r.conn, r.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Download fetches the document at rawURL and returns its bytes as served.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("downloading catalogue", "url", rawURL, "proxy", c.proxyURL, c.headerGroup())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download catalogue: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}
	if int64(len(data)) > c.maxBodySize {
		return nil, fmt.Errorf("%w (%d bytes)", ErrBodyTooLarge, c.maxBodySize)
	}

	c.logger.Debug("catalogue downloaded", "bytes", len(data), "elapsed", time.Since(start))
	return data, nil
}

// headerGroup logs the injected headers one attribute per header, so the
// secure handler can mask credentials by header name.
func (c *Client) headerGroup() slog.Attr {
	keys := slices.Sorted(maps.Keys(c.headers))
	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.String(k, c.headers[k]))
	}
	return slog.Group("headers", attrs...)
}

// headerInjectingTransport sets configured headers on every request,
// including redirects.
type headerInjectingTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for key, value := range t.headers {
		clone.Header.Set(key, value)
	}
	return t.base.RoundTrip(clone)
}
