package reveal

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus or
// StatsD. Implement this interface to receive callbacks on reloader events.
type MetricsProvider interface {
	// OnStateChange is called when the reloader transitions between states.
	OnStateChange(from, to State)

	// OnProcessSuccess is called when a document is committed. Duration is
	// the time taken to decode, validate, and apply.
	OnProcessSuccess(duration time.Duration)

	// OnProcessFailure is called when processing fails. Stage is where the
	// failure occurred: "decode", "validate", or "apply".
	OnProcessFailure(stage string, duration time.Duration)

	// OnChangeReceived is called when raw bytes arrive from the watcher.
	OnChangeReceived()
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider. Embed it
// to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnStateChange(_, _ State)                   {}
func (NoOpMetricsProvider) OnProcessSuccess(_ time.Duration)           {}
func (NoOpMetricsProvider) OnProcessFailure(_ string, _ time.Duration) {}
func (NoOpMetricsProvider) OnChangeReceived()                          {}
