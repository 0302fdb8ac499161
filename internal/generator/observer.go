package generator

import "sync/atomic"

// Observer receives one-way progress and status notifications. The
// producer never blocks on the observer; implementations must return
// promptly. A nil observer silently drops events.
type Observer interface {
	OnProgress(fraction float64, message string)
	OnStatus(message string)
}

// StopToken is the cooperative cancellation flag for a run. It is
// polled between variations only, so cancellation latency is bounded
// by one variation's generation time.
type StopToken struct {
	stopped atomic.Bool
}

// NewStopToken returns an unset token.
func NewStopToken() *StopToken { return &StopToken{} }

// Stop requests cancellation. Safe to call from any goroutine, and
// more than once.
func (t *StopToken) Stop() { t.stopped.Store(true) }

// Stopped reports whether cancellation was requested.
func (t *StopToken) Stopped() bool {
	if t == nil {
		return false
	}
	return t.stopped.Load()
}

// notifier wraps an optional Observer with nil-safety and tracks the
// last emitted fraction so terminal events can repeat it.
type notifier struct {
	obs  Observer
	last float64
}

func (n *notifier) progress(fraction float64, message string) {
	n.last = fraction
	if n.obs != nil {
		n.obs.OnProgress(fraction, message)
	}
}

func (n *notifier) status(message string) {
	if n.obs != nil {
		n.obs.OnStatus(message)
	}
}
