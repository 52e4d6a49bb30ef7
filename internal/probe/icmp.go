package probe

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

const defaultICMPSize = 32

// ICMPProber sends one ICMP echo request per probe.
type ICMPProber struct {
	addr       string
	privileged bool
}

// NewICMPProber returns a prober for addr. Unprivileged mode uses UDP ICMP
// sockets, which on Linux requires net.ipv4.ping_group_range to include the
// current group.
func NewICMPProber(addr string, privileged bool) *ICMPProber {
	return &ICMPProber{addr: addr, privileged: privileged}
}

func (p *ICMPProber) Probe(ctx context.Context) (time.Duration, error) {
	pinger, err := probing.NewPinger(p.addr)
	if err != nil {
		return 0, fmt.Errorf("create pinger: %w", err)
	}
	defer pinger.Stop()
	pinger.SetPrivileged(p.privileged)
	pinger.Count = 1
	pinger.Size = defaultICMPSize
	if deadline, ok := ctx.Deadline(); ok {
		rem := time.Until(deadline)
		if rem <= 0 {
			return 0, context.DeadlineExceeded
		}
		pinger.Timeout = rem
	}

	if err := pinger.RunWithContext(ctx); err != nil {
		return 0, fmt.Errorf("ping %s: %w", p.addr, err)
	}
	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return 0, ErrNoReply
	}
	return stats.MaxRtt, nil
}
