package samples

import "time"

// Status is the outcome of a single probe.
type Status uint8

const (
	StatusSuccess Status = iota
	StatusTimeout
	StatusUnreachable
	StatusError
)

// String returns the name shown in hover hints and metric labels.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusTimeout:
		return "TimedOut"
	case StatusUnreachable:
		return "DestinationUnreachable"
	default:
		return "Error"
	}
}

// Sample is one probe result. RTT is only meaningful when Status is
// StatusSuccess.
type Sample struct {
	StartTime time.Time
	RTT       time.Duration
	Status    Status
}

// OK reports whether the probe got a reply.
func (s Sample) OK() bool {
	return s.Status == StatusSuccess
}

// Millis returns the round-trip time in whole milliseconds.
func (s Sample) Millis() int {
	return int(s.RTT / time.Millisecond)
}
