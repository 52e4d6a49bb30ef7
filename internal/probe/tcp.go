package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"
)

// TCPProber measures the time to complete a TCP handshake. It works without
// raw socket privileges.
type TCPProber struct {
	addr   string
	dialer net.Dialer
}

// NewTCPProber returns a prober dialing host:port.
func NewTCPProber(host string, port int) *TCPProber {
	return &TCPProber{addr: net.JoinHostPort(host, strconv.Itoa(port))}
}

func (p *TCPProber) Probe(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	conn, err := p.dialer.DialContext(ctx, "tcp", p.addr)
	latency := time.Since(start)
	if err != nil {
		return 0, fmt.Errorf("tcp dial %s: %w", p.addr, err)
	}
	conn.Close()
	return latency, nil
}
