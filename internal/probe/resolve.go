package probe

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const resolveRetries = 3

// Lookuper resolves host names. *net.Resolver satisfies it.
type Lookuper interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// Resolve returns the address to probe for host, preferring IPv4. Literal
// addresses are returned as-is; lookups are retried with exponential
// backoff.
func Resolve(ctx context.Context, log *slog.Logger, lookup Lookuper, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		return ip.String(), nil
	}
	if lookup == nil {
		lookup = net.DefaultResolver
	}

	var addrs []net.IPAddr
	op := func() error {
		var err error
		addrs, err = lookup.LookupIPAddr(ctx, host)
		if err != nil {
			return err
		}
		if len(addrs) == 0 {
			return backoff.Permanent(fmt.Errorf("no addresses for %s", host))
		}
		return nil
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	notify := func(err error, wait time.Duration) {
		if log != nil {
			log.Warn("resolve failed, retrying", "host", host, "error", err, "wait", wait)
		}
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(b, resolveRetries), ctx), notify); err != nil {
		return "", fmt.Errorf("resolve %s: %w", host, err)
	}

	for _, a := range addrs {
		if a.IP.To4() != nil {
			return a.IP.String(), nil
		}
	}
	return addrs[0].IP.String(), nil
}
