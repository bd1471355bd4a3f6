package reveal

import (
	"context"
	"time"

	"github.com/zoobzio/pipz"
)

// Update carries a staged configuration change through the reloader
// pipeline. The store commits Current only after the whole pipeline
// succeeds.
type Update struct {
	// Previous is the last committed snapshot. On initial load it holds the
	// factory defaults.
	Previous Snapshot

	// Current is the staged snapshot that will be committed if the pipeline
	// succeeds.
	Current Snapshot

	// Raw contains the original document bytes from the watcher.
	Raw []byte
}

// Option configures the reloader's update pipeline, wrapping the apply
// callback with middleware such as retry or timeout.
type Option func(pipz.Chainable[*Update]) pipz.Chainable[*Update]

// applyID names the terminal pipeline stage.
const applyID = pipz.Name("apply")

// buildPipeline wraps the terminal stage with pipeline options.
func buildPipeline(terminal pipz.Chainable[*Update], opts []Option) pipz.Chainable[*Update] {
	pipeline := terminal
	for _, opt := range opts {
		pipeline = opt(pipeline)
	}
	return pipeline
}

// WithRetry wraps the pipeline with retry logic. Failed updates are retried
// immediately up to maxAttempts times.
func WithRetry(maxAttempts int) Option {
	return func(p pipz.Chainable[*Update]) pipz.Chainable[*Update] {
		return pipz.NewRetry("retry", p, maxAttempts)
	}
}

// WithBackoff wraps the pipeline with exponential backoff retry logic:
// baseDelay, 2*baseDelay, 4*baseDelay, and so on.
func WithBackoff(maxAttempts int, baseDelay time.Duration) Option {
	return func(p pipz.Chainable[*Update]) pipz.Chainable[*Update] {
		return pipz.NewBackoff("backoff", p, maxAttempts, baseDelay)
	}
}

// WithTimeout wraps the pipeline with a deadline. Updates that take longer
// fail with a timeout error and the store keeps its previous state.
func WithTimeout(d time.Duration) Option {
	return func(p pipz.Chainable[*Update]) pipz.Chainable[*Update] {
		return pipz.NewTimeout("timeout", p, d)
	}
}

// WithMiddleware wraps the pipeline with a sequence of processors executed
// in order before the apply callback. Use the Use* adapters to build
// processors, or provide pipz.Chainable implementations directly.
func WithMiddleware(processors ...pipz.Chainable[*Update]) Option {
	return func(p pipz.Chainable[*Update]) pipz.Chainable[*Update] {
		all := make([]pipz.Chainable[*Update], 0, len(processors)+1)
		all = append(all, processors...)
		all = append(all, p)
		return pipz.NewSequence("middleware", all...)
	}
}

// UseEffect creates a processor that performs a side effect. The update
// passes through unchanged; an error aborts the commit.
func UseEffect(name string, fn func(context.Context, *Update) error) pipz.Chainable[*Update] {
	return pipz.Effect(pipz.Name(name), fn)
}

// UseApply creates a processor that can inspect the update and fail. Use
// for host-side checks that go beyond the engine's own validation, such as
// rejecting documents that disable every tier.
func UseApply(name string, fn func(context.Context, *Update) (*Update, error)) pipz.Chainable[*Update] {
	return pipz.Apply(pipz.Name(name), fn)
}
