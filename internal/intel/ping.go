package intel

import (
	"context"
	"fmt"
	"net"
	"strconv"
)

// Ping dials the configured service address once to verify it is
// reachable before spending lookups. No HTTP exchange is performed,
// so no lookup quota is consumed.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	addr := net.JoinHostPort(c.host, strconv.Itoa(c.port))
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("service unreachable at %s: %w", addr, err)
	}
	return conn.Close()
}
