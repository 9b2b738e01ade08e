package intel

import (
	"time"

	"github.com/August26/ipintel-go/internal/transport"
)

// Option configures a Client during New.
type Option func(*Client)

// WithHost sets the service host.
func WithHost(host string) Option {
	return func(c *Client) { c.host = host }
}

// WithPort sets the service port. The port selects the channel: 443
// uses TLS, anything else the plain variant.
func WithPort(port int) Option {
	return func(c *Client) { c.port = port }
}

// WithContact sets the contact identifier sent with every query.
func WithContact(contact string) Option {
	return func(c *Client) { c.contact = contact }
}

// WithTimeout sets the per-call budget covering the whole exchange.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithSOCKS5 routes lookups through a SOCKS5 proxy. user and pass may
// be empty for an unauthenticated proxy.
func WithSOCKS5(addr, user, pass string) Option {
	return func(c *Client) {
		c.socksAddr, c.socksUser, c.socksPass = addr, user, pass
	}
}

// WithInvoker substitutes the transport, overriding the port-based
// selection. Tests use it to inject fakes.
func WithInvoker(inv transport.Invoker) Option {
	return func(c *Client) { c.invoker = inv }
}
