package reveal

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

// DefaultDebounce is the default debounce duration for document processing.
const DefaultDebounce = 100 * time.Millisecond

// Reloader watches a source for declarative configuration documents and
// applies them to a Store with automatic rollback on failure.
//
// Each document is processed through the same pipeline:
//
//	Source → Decode → Stage → Pipeline → Commit
//
// If any step fails the store keeps its last-known-good configuration and
// the Reloader enters a degraded state while continuing to watch for valid
// updates.
type Reloader struct {
	store          *Store
	watcher        Watcher
	callback       func(ctx context.Context, prev, curr Snapshot) error
	pipeline       pipz.Chainable[*Update]
	debounce       time.Duration
	startupTimeout time.Duration
	syncMode       bool
	clock          clockz.Clock
	codec          Codec
	metrics        MetricsProvider
	onStop         func(State)

	state     atomic.Int32
	committed atomic.Bool
	lastError atomic.Pointer[error]

	mu      sync.Mutex
	started bool

	// For sync mode: channel to receive changes
	changes <-chan []byte
}

// NewReloader creates a Reloader that applies watched documents to the
// given store.
//
// The callback is invoked with the previous and staged snapshots after the
// document validates and before the store commits; returning an error
// aborts the commit. A nil callback accepts every valid document.
//
// Pipeline options (With*) wrap the callback with middleware. Instance
// configuration uses chainable methods before calling Start():
//
//	reloader := reveal.NewReloader(store, reveal.NewFileWatcher("reveal.yaml"),
//	    func(ctx context.Context, prev, curr reveal.Snapshot) error {
//	        log.Printf("dev: %v -> %v", prev.Config.Dev, curr.Config.Dev)
//	        return nil
//	    },
//	    reveal.WithRetry(3),
//	).Codec(reveal.YAMLCodec{}).Debounce(200 * time.Millisecond)
func NewReloader(
	store *Store,
	watcher Watcher,
	fn func(ctx context.Context, prev, curr Snapshot) error,
	opts ...Option,
) *Reloader {
	terminal := pipz.Effect(applyID, func(ctx context.Context, u *Update) error {
		if fn == nil {
			return nil
		}
		return fn(ctx, u.Previous, u.Current)
	})

	r := &Reloader{
		store:    store,
		watcher:  watcher,
		callback: fn,
		pipeline: buildPipeline(terminal, opts),
		debounce: DefaultDebounce,
		clock:    clockz.RealClock,
		codec:    JSONCodec{},
	}
	r.state.Store(int32(StateLoading))

	return r
}

// Debounce sets the debounce duration for document processing. Changes
// arriving within this window are coalesced into a single update.
// Default: 100ms. Must be called before Start().
func (r *Reloader) Debounce(d time.Duration) *Reloader {
	r.debounce = d
	return r
}

// SyncMode enables synchronous processing for testing. Changes are
// processed immediately without debouncing or goroutines, making tests
// deterministic. Must be called before Start().
func (r *Reloader) SyncMode() *Reloader {
	r.syncMode = true
	return r
}

// Clock sets a custom clock for time operations. Use clockz.FakeClock for
// deterministic debounce testing. Must be called before Start().
func (r *Reloader) Clock(clock clockz.Clock) *Reloader {
	r.clock = clock
	return r
}

// Codec sets the codec for decoding documents. Default: JSONCodec.
// Must be called before Start().
func (r *Reloader) Codec(codec Codec) *Reloader {
	r.codec = codec
	return r
}

// StartupTimeout sets the maximum time to wait for the initial document
// from the watcher. Default: wait indefinitely. Must be called before
// Start().
func (r *Reloader) StartupTimeout(d time.Duration) *Reloader {
	r.startupTimeout = d
	return r
}

// Metrics sets a metrics provider for observability integration.
// Must be called before Start().
func (r *Reloader) Metrics(provider MetricsProvider) *Reloader {
	r.metrics = provider
	return r
}

// OnStop sets a callback invoked with the final state when the reloader
// stops watching. Must be called before Start().
func (r *Reloader) OnStop(fn func(State)) *Reloader {
	r.onStop = fn
	return r
}

// State returns the current state of the Reloader.
func (r *Reloader) State() State {
	return State(r.state.Load())
}

// LastError returns the last error encountered, or nil.
func (r *Reloader) LastError() error {
	ptr := r.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// Start begins watching for documents. It blocks until the first document
// is processed (success or failure), then continues watching
// asynchronously.
//
// If the initial document fails, Start returns the error but keeps
// watching in the background for valid updates.
//
// In sync mode, Start only processes the initial value; use Process() to
// trigger processing of subsequent values.
//
// Start can only be called once.
func (r *Reloader) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return fmt.Errorf("reloader already started")
	}
	r.started = true
	r.mu.Unlock()

	capitan.Emit(ctx, ReloaderStarted,
		KeyDebounce.Field(r.debounce),
	)

	changes, err := r.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	var initialErr error

	startupCtx := ctx
	if r.startupTimeout > 0 {
		var cancel context.CancelFunc
		startupCtx, cancel = r.clock.WithTimeout(ctx, r.startupTimeout)
		defer cancel()
	}

	select {
	case <-startupCtx.Done():
		if r.startupTimeout > 0 && startupCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("startup timeout: watcher did not emit initial document within %v", r.startupTimeout)
		}
		return startupCtx.Err()
	case raw, ok := <-changes:
		if !ok {
			return fmt.Errorf("watcher closed before emitting initial document")
		}
		capitan.Emit(ctx, ReloaderChangeReceived)
		if r.metrics != nil {
			r.metrics.OnChangeReceived()
		}
		initialErr = r.process(ctx, raw)
	}

	if r.syncMode {
		r.changes = changes
		return initialErr
	}

	go r.watch(ctx, changes)

	return initialErr
}

// Process reads and processes the next document from the watcher. Only
// available in sync mode; returns false if no value is pending or the
// channel is closed.
func (r *Reloader) Process(ctx context.Context) bool {
	if !r.syncMode {
		return false
	}

	select {
	case raw, ok := <-r.changes:
		if !ok {
			return false
		}
		capitan.Emit(ctx, ReloaderChangeReceived)
		if r.metrics != nil {
			r.metrics.OnChangeReceived()
		}
		_ = r.process(ctx, raw) //nolint:errcheck // Errors stored via setError
		return true
	default:
		return false
	}
}

// process decodes, stages, pipelines, and commits a single document.
func (r *Reloader) process(ctx context.Context, raw []byte) error {
	start := r.clock.Now()
	oldState := r.State()

	var doc Document
	if err := r.codec.Unmarshal(raw, &doc); err != nil {
		r.setError(err)
		r.transitionState(ctx, oldState, r.failureState())
		capitan.Emit(ctx, ReloaderDecodeFailed,
			KeyError.Field(err.Error()),
		)
		if r.metrics != nil {
			r.metrics.OnProcessFailure("decode", r.clock.Since(start))
		}
		return fmt.Errorf("decode failed: %w", err)
	}

	prev := r.store.Snapshot()
	staged, err := r.store.Preview(doc)
	if err != nil {
		r.setError(err)
		r.transitionState(ctx, oldState, r.failureState())
		capitan.Emit(ctx, ReloaderValidationFailed,
			KeyError.Field(err.Error()),
		)
		if r.metrics != nil {
			r.metrics.OnProcessFailure("validate", r.clock.Since(start))
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	u := &Update{Previous: prev, Current: staged, Raw: raw}
	if _, err := r.pipeline.Process(ctx, u); err != nil {
		r.setError(err)
		r.transitionState(ctx, oldState, r.failureState())
		capitan.Emit(ctx, ReloaderApplyFailed,
			KeyError.Field(err.Error()),
		)
		if r.metrics != nil {
			r.metrics.OnProcessFailure("apply", r.clock.Since(start))
		}
		return fmt.Errorf("apply failed: %w", err)
	}

	if _, err := r.store.Apply(doc); err != nil {
		// Store state moved between Preview and Apply; treat as apply failure.
		r.setError(err)
		r.transitionState(ctx, oldState, r.failureState())
		capitan.Emit(ctx, ReloaderApplyFailed,
			KeyError.Field(err.Error()),
		)
		if r.metrics != nil {
			r.metrics.OnProcessFailure("apply", r.clock.Since(start))
		}
		return fmt.Errorf("apply failed: %w", err)
	}

	r.committed.Store(true)
	r.lastError.Store(nil)
	r.transitionState(ctx, oldState, StateHealthy)
	capitan.Emit(ctx, ReloaderApplySucceeded)
	if r.metrics != nil {
		r.metrics.OnProcessSuccess(r.clock.Since(start))
	}

	return nil
}

// failureState returns the appropriate failure state based on whether this
// reloader has ever committed a document.
func (r *Reloader) failureState() State {
	if !r.committed.Load() {
		return StateEmpty
	}
	return StateDegraded
}

// transitionState updates the state and emits a change event if changed.
func (r *Reloader) transitionState(ctx context.Context, oldState, newState State) {
	if oldState == newState {
		return
	}
	r.state.Store(int32(newState))
	capitan.Emit(ctx, ReloaderStateChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
	if r.metrics != nil {
		r.metrics.OnStateChange(oldState, newState)
	}
}

// setError stores an error atomically.
func (r *Reloader) setError(err error) {
	e := err
	r.lastError.Store(&e)
}

// watch processes changes from the watcher channel with debouncing.
func (r *Reloader) watch(ctx context.Context, changes <-chan []byte) {
	defer func() {
		finalState := r.State()
		capitan.Emit(ctx, ReloaderStopped,
			KeyState.Field(finalState.String()),
		)
		if r.onStop != nil {
			r.onStop(finalState)
		}
	}()

	var (
		timer      clockz.Timer
		pending    []byte
		hasPending bool
	)

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case raw, ok := <-changes:
			if !ok {
				// Channel closed, process any pending change
				if hasPending {
					_ = r.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				}
				return
			}

			capitan.Emit(ctx, ReloaderChangeReceived)
			if r.metrics != nil {
				r.metrics.OnChangeReceived()
			}
			pending = raw
			hasPending = true

			// Reset or start debounce timer
			if timer == nil {
				timer = r.clock.NewTimer(r.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(r.debounce)
			}

		case <-timerC:
			if hasPending {
				_ = r.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				hasPending = false
			}
		}
	}
}
