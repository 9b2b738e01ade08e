package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/textproto"
	"strconv"
	"time"

	"golang.org/x/net/proxy"
)

// maxBodyBytes caps how much of a response body is read. Reputation
// payloads are tiny; anything larger aborts the exchange rather than
// being passed on truncated.
const maxBodyBytes = 1 << 20

// Request describes one exchange for an Invoker. Path is sent verbatim
// including the query string.
type Request struct {
	Method  string // defaults to GET
	Host    string
	Port    int
	Path    string
	Headers map[string]string
}

// Response is the framed outcome of one completed exchange. It is
// produced once per request and discarded after parsing.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
	Complete   bool
}

// Header returns the named header value, case-insensitively.
func (r *Response) Header(name string) string {
	return r.Headers[textproto.CanonicalMIMEHeaderKey(name)]
}

// Invoker performs exactly one HTTP exchange and settles exactly once:
// a framed Response or an Error, never both, never a partial body.
// Production implementations cover the plain and TLS channels; tests
// substitute in-memory fakes.
type Invoker interface {
	Invoke(ctx context.Context, req Request, timeout time.Duration) (*Response, error)
}

// HTTPInvoker is the production Invoker. The plain and TLS variants
// share this implementation and differ only in scheme and TLS setup.
type HTTPInvoker struct {
	scheme string
	client *http.Client
}

type settings struct {
	tlsConfig *tls.Config
	socksAddr string
	socksAuth *proxy.Auth
}

// Option adjusts how the invoker's channel is built.
type Option func(*settings)

// WithTLSConfig overrides the TLS configuration of the encrypted
// variant. The plain variant ignores it.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(s *settings) { s.tlsConfig = cfg }
}

// WithSOCKS5 routes the exchange through a SOCKS5 proxy. user and pass
// may be empty for an unauthenticated proxy.
func WithSOCKS5(addr, user, pass string) Option {
	return func(s *settings) {
		s.socksAddr = addr
		s.socksAuth = nil
		if user != "" || pass != "" {
			s.socksAuth = &proxy.Auth{User: user, Password: pass}
		}
	}
}

// NewPlain builds the cleartext variant.
func NewPlain(opts ...Option) (*HTTPInvoker, error) {
	return build("http", nil, opts)
}

// NewTLS builds the encrypted variant.
func NewTLS(opts ...Option) (*HTTPInvoker, error) {
	return build("https", &tls.Config{MinVersion: tls.VersionTLS12}, opts)
}

func build(scheme string, defaultTLS *tls.Config, opts []Option) (*HTTPInvoker, error) {
	s := settings{tlsConfig: defaultTLS}
	for _, opt := range opts {
		opt(&s)
	}

	dialContext := (&net.Dialer{KeepAlive: 30 * time.Second}).DialContext
	if s.socksAddr != "" {
		var err error
		dialContext, err = socks5DialContext(s.socksAddr, s.socksAuth)
		if err != nil {
			return nil, fmt.Errorf("build socks5 dialer: %w", err)
		}
	}

	// The per-call timer passed to Invoke is the only deadline; the
	// transport carries no fixed timeouts of its own. HTTP/2 stays
	// off so the connection header reaches the wire unchanged.
	tr := &http.Transport{
		DialContext:     dialContext,
		TLSClientConfig: s.tlsConfig,
	}

	return &HTTPInvoker{
		scheme: scheme,
		client: &http.Client{
			Transport: tr,
			// A 3xx is a completed exchange like any other: frame it,
			// never follow it. One call is one request.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// socks5DialContext wraps an x/net SOCKS5 dialer into the DialContext
// shape http.Transport wants.
func socks5DialContext(addr string, auth *proxy.Auth) (func(ctx context.Context, network, address string) (net.Conn, error), error) {
	dialer, err := proxy.SOCKS5("tcp", addr, auth, &net.Dialer{KeepAlive: 30 * time.Second})
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, network, address string) (net.Conn, error) {
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			return cd.DialContext(ctx, network, address)
		}
		return dialer.Dial(network, address)
	}, nil
}

// Encrypted reports whether this invoker speaks TLS.
func (v *HTTPInvoker) Encrypted() bool { return v.scheme == "https" }

// Invoke performs one GET exchange. The timer armed here is the single
// cancellation trigger: expiry aborts the in-flight request and the
// call settles with a TimeoutError.
func (v *HTTPInvoker) Invoke(ctx context.Context, req Request, timeout time.Duration) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	u := fmt.Sprintf("%s://%s%s", v.scheme, net.JoinHostPort(req.Host, strconv.Itoa(req.Port)), req.Path)
	httpReq, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, &ConnectionError{Cause: err}
	}
	for k, val := range req.Headers {
		httpReq.Header.Set(k, val)
	}

	resp, err := v.client.Do(httpReq)
	if err != nil {
		return nil, classify(err, timeout)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, classify(err, timeout)
	}
	if len(body) > maxBodyBytes {
		return nil, &ConnectionError{Cause: fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)}
	}

	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       string(body),
		Complete:   true,
	}, nil
}
