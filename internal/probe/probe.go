// Package probe measures round-trip latency to a host and feeds the results
// into a sample store.
package probe

import (
	"context"
	"errors"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/olivier-w/pingtrace/internal/samples"
)

// ErrNoReply is returned when a probe completes without a response.
var ErrNoReply = errors.New("no reply")

// Prober sends a single probe and returns its round-trip time. The caller
// bounds the probe with a context deadline.
type Prober interface {
	Probe(ctx context.Context) (time.Duration, error)
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context) (time.Duration, error)

func (f ProberFunc) Probe(ctx context.Context) (time.Duration, error) {
	return f(ctx)
}

// StatusOf maps a probe error to the status stored with the sample.
func StatusOf(err error) samples.Status {
	if err == nil {
		return samples.StatusSuccess
	}
	if errors.Is(err, ErrNoReply) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, os.ErrDeadlineExceeded) {
		return samples.StatusTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return samples.StatusTimeout
	}
	if errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return samples.StatusUnreachable
	}
	return samples.StatusError
}
