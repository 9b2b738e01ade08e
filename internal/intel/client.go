package intel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/August26/ipintel-go/internal/transport"
)

// Defaults applied by New when no option overrides them.
const (
	DefaultHost    = "check.getipintel.net"
	DefaultPort    = 443
	DefaultContact = "anonymous@anonymous.com"
	DefaultTimeout = 6000 * time.Millisecond
)

// userAgent is the fixed client identifier sent with every query.
const userAgent = "ipintel-go/1.0"

// encryptedPort selects the TLS channel.
const encryptedPort = 443

// LastStatus is the diagnostic outcome of the most recent call: the
// HTTP status code when an exchange completed, or the transport error
// when none did. Concurrent calls overwrite it in completion order.
type LastStatus struct {
	Code int
	Err  error
}

// Client performs reputation lookups against one configured service.
// Build it once and share it; calls are independent and may run
// concurrently. The only mutable state is the advisory LastStatus.
type Client struct {
	host    string
	port    int
	contact string
	timeout time.Duration

	socksAddr string
	socksUser string
	socksPass string

	invoker transport.Invoker

	mu   sync.Mutex
	last LastStatus
}

// New builds a Client. Without options it talks TLS to the default
// service with the default contact and timeout.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		host:    DefaultHost,
		port:    DefaultPort,
		contact: DefaultContact,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.invoker == nil {
		var topts []transport.Option
		if c.socksAddr != "" {
			topts = append(topts, transport.WithSOCKS5(c.socksAddr, c.socksUser, c.socksPass))
		}
		var err error
		if c.port == encryptedPort {
			c.invoker, err = transport.NewTLS(topts...)
		} else {
			c.invoker, err = transport.NewPlain(topts...)
		}
		if err != nil {
			return nil, fmt.Errorf("build transport: %w", err)
		}
	}

	return c, nil
}

// Query looks up one IP with no extra query flags.
func (c *Client) Query(ctx context.Context, ip string) (*Result, error) {
	return c.QueryWithFlags(ctx, ip, "")
}

// QueryWithFlags looks up one IP, passing the caller's flags through
// to the service untouched. One request, one outcome; failures are
// classified, never retried here.
func (c *Client) QueryWithFlags(ctx context.Context, ip, flags string) (*Result, error) {
	if ip == "" {
		return nil, ErrEmptyIP
	}

	resp, err := c.invoker.Invoke(ctx, c.buildRequest(ip, flags), c.timeout)
	if err != nil {
		// Injected invokers may fail with untyped errors; fold those
		// into the transport taxonomy so callers see one error family.
		var terr transport.Error
		if !errors.As(err, &terr) {
			err = &transport.ConnectionError{Cause: err}
		}
		c.setLast(LastStatus{Err: err})
		return nil, err
	}
	if !resp.Complete {
		terr := &transport.IncompleteResponseError{}
		c.setLast(LastStatus{Err: terr})
		return nil, terr
	}

	c.setLast(LastStatus{Code: resp.StatusCode})

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode}
	}
	if ct := resp.Header("Content-Type"); !jsonContentType(ct) {
		return nil, &UnexpectedContentTypeError{Received: ct}
	}
	return parseResult(resp.Body)
}

// LastStatus reports the HTTP status or transport error observed by
// the most recent call. Diagnostic only; per-call outcomes come from
// the returned error, never from here.
func (c *Client) LastStatus() LastStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *Client) setLast(s LastStatus) {
	c.mu.Lock()
	c.last = s
	c.mu.Unlock()
}

// buildRequest assembles the query path and headers. Only the contact
// value is URL-encoded; the output-flag pair is fixed verbatim and the
// caller's flags pass through untouched, so the path is formatted
// directly instead of going through url.Values.
func (c *Client) buildRequest(ip, flags string) transport.Request {
	path := fmt.Sprintf("/check.php?ip=%s&contact=%s&format=json&oflags=coflags=b&flags=%s",
		NormalizeIP(ip), url.QueryEscape(c.contact), flags)

	return transport.Request{
		Method: http.MethodGet,
		Host:   c.host,
		Port:   c.port,
		Path:   path,
		Headers: map[string]string{
			"cache-control": "no-cache",
			"user-agent":    userAgent,
			"connection":    "keep-alive",
		},
	}
}

// NormalizeIP rewrites colon or dash separated notations to dotted
// form. Query applies it automatically before transmission.
func NormalizeIP(ip string) string {
	return strings.NewReplacer(":", ".", "-", ".").Replace(ip)
}

// jsonContentType reports whether the content type names
// application/json. The match is a case-sensitive prefix, so charset
// parameters are tolerated and case variants are not.
func jsonContentType(ct string) bool {
	return strings.HasPrefix(ct, "application/json")
}
