package reveal

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestReloader_InitialDocument(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 1)
	store := NewStore()

	var prevDev, currDev bool
	reloader := NewReloader(store, NewSyncChannelWatcher(ch),
		func(_ context.Context, prev, curr Snapshot) error {
			prevDev = prev.Config.Dev
			currDev = curr.Config.Dev
			return nil
		},
	).SyncMode()

	ch <- []byte(`{"dev": true}`)

	if err := reloader.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if !store.Config().Dev {
		t.Error("expected dev=true committed to store")
	}
	if prevDev || !currDev {
		t.Errorf("expected callback prev=false curr=true, got prev=%v curr=%v", prevDev, currDev)
	}
	if reloader.State() != StateHealthy {
		t.Errorf("expected healthy, got %s", reloader.State())
	}
}

func TestReloader_YAMLDocument(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 1)
	store := NewStore()

	reloader := NewReloader(store, NewSyncChannelWatcher(ch), nil).
		SyncMode().Codec(YAMLCodec{})

	ch <- []byte("once: true\nresponsive:\n  tablet:\n    enabled: false\n    breakpoint: 800\ndefaults:\n  duration: 400\n")

	if err := reloader.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	cfg := store.Config()
	if !cfg.Once {
		t.Error("expected once=true")
	}
	if got := cfg.Responsive[Tablet]; got.Enabled || got.Breakpoint != 800 {
		t.Errorf("expected tablet {false 800}, got %+v", got)
	}
	if d := store.Defaults().Duration; d != 400 {
		t.Errorf("expected default duration 400, got %v", d)
	}
}

func TestReloader_InvalidInitialDocument(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 1)
	store := NewStore()

	reloader := NewReloader(store, NewSyncChannelWatcher(ch), nil).SyncMode()

	ch <- []byte(`{"responsive": {"mobile": {"enabled": true, "breakpoint": 9999}}}`)

	err := reloader.Start(ctx)
	if !errors.Is(err, ErrInvalidBreakpoints) {
		t.Fatalf("expected ErrInvalidBreakpoints, got %v", err)
	}
	if reloader.State() != StateEmpty {
		t.Errorf("expected empty, got %s", reloader.State())
	}
	if bp := store.Config().Responsive[Mobile].Breakpoint; bp != 425 {
		t.Errorf("expected store to keep factory breakpoint 425, got %d", bp)
	}
}

func TestReloader_DegradedRetainsPrevious(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 2)
	store := NewStore()

	reloader := NewReloader(store, NewSyncChannelWatcher(ch), nil).SyncMode()

	ch <- []byte(`{"dev": true}`)
	if err := reloader.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	ch <- []byte(`{"observer": {"rootMargin": "10xyz"}}`)
	if !reloader.Process(ctx) {
		t.Fatal("expected Process to consume the pending document")
	}

	if reloader.State() != StateDegraded {
		t.Errorf("expected degraded, got %s", reloader.State())
	}
	if !errors.Is(reloader.LastError(), ErrRootMarginSyntax) {
		t.Errorf("expected ErrRootMarginSyntax, got %v", reloader.LastError())
	}
	if !store.Config().Dev {
		t.Error("expected previous valid config retained")
	}
	if margin := store.Config().Observer.RootMargin; margin != "0px 0px 0px 0px" {
		t.Errorf("expected rootMargin untouched, got %q", margin)
	}
}

func TestReloader_RecoversAfterDegraded(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 3)
	store := NewStore()

	reloader := NewReloader(store, NewSyncChannelWatcher(ch), nil).SyncMode()

	ch <- []byte(`{"dev": true}`)
	if err := reloader.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	ch <- []byte(`{bad json`)
	reloader.Process(ctx)
	if reloader.State() != StateDegraded {
		t.Fatalf("expected degraded after decode failure, got %s", reloader.State())
	}

	ch <- []byte(`{"once": true}`)
	reloader.Process(ctx)
	if reloader.State() != StateHealthy {
		t.Errorf("expected healthy after recovery, got %s", reloader.State())
	}
	if reloader.LastError() != nil {
		t.Errorf("expected error cleared, got %v", reloader.LastError())
	}
	if !store.Config().Once {
		t.Error("expected recovered document committed")
	}
}

func TestReloader_CallbackAbortsCommit(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 1)
	store := NewStore()

	reloader := NewReloader(store, NewSyncChannelWatcher(ch),
		func(_ context.Context, _, _ Snapshot) error {
			return fmt.Errorf("host rejected")
		},
	).SyncMode()

	ch <- []byte(`{"dev": true}`)

	if err := reloader.Start(ctx); err == nil {
		t.Fatal("expected Start to surface the callback error")
	}
	if store.Config().Dev {
		t.Error("expected commit aborted by callback failure")
	}
	if reloader.State() != StateEmpty {
		t.Errorf("expected empty, got %s", reloader.State())
	}
}

func TestReloader_WithRetry(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 1)
	store := NewStore()

	attempts := 0
	reloader := NewReloader(store, NewSyncChannelWatcher(ch),
		func(_ context.Context, _, _ Snapshot) error {
			attempts++
			if attempts < 3 {
				return fmt.Errorf("transient failure %d", attempts)
			}
			return nil
		},
		WithRetry(3),
	).SyncMode()

	ch <- []byte(`{"dev": true}`)

	if err := reloader.Start(ctx); err != nil {
		t.Fatalf("expected retries to succeed, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if !store.Config().Dev {
		t.Error("expected document committed after retry")
	}
}

func TestReloader_WithMiddleware(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 1)
	store := NewStore()

	var sawStagedOnce bool
	reloader := NewReloader(store, NewSyncChannelWatcher(ch), nil,
		WithMiddleware(
			UseEffect("audit", func(_ context.Context, u *Update) error {
				sawStagedOnce = u.Current.Config.Once
				return nil
			}),
		),
	).SyncMode()

	ch <- []byte(`{"once": true}`)

	if err := reloader.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !sawStagedOnce {
		t.Error("expected middleware to observe the staged snapshot")
	}
}

func TestReloader_MetricsStages(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 2)
	store := NewStore()

	m := &recordingMetrics{}
	reloader := NewReloader(store, NewSyncChannelWatcher(ch), nil).
		SyncMode().Metrics(m)

	ch <- []byte(`{"dev": true}`)
	if err := reloader.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	ch <- []byte(`{nope`)
	reloader.Process(ctx)

	if m.successes != 1 {
		t.Errorf("expected 1 success, got %d", m.successes)
	}
	if len(m.failures) != 1 || m.failures[0] != "decode" {
		t.Errorf("expected one decode failure, got %v", m.failures)
	}
	if m.changes != 2 {
		t.Errorf("expected 2 change notifications, got %d", m.changes)
	}
}

func TestReloader_ProcessOutsideSyncMode(t *testing.T) {
	store := NewStore()
	reloader := NewReloader(store, NewSyncChannelWatcher(make(chan []byte)), nil)

	if reloader.Process(context.Background()) {
		t.Error("expected Process to be a no-op outside sync mode")
	}
}

func TestReloader_StartTwice(t *testing.T) {
	ctx := context.Background()
	ch := make(chan []byte, 1)
	store := NewStore()

	reloader := NewReloader(store, NewSyncChannelWatcher(ch), nil).SyncMode()

	ch <- []byte(`{}`)
	if err := reloader.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := reloader.Start(ctx); err == nil {
		t.Error("expected second Start to fail")
	}
}

func TestReloader_WatcherClosedBeforeInitial(t *testing.T) {
	ch := make(chan []byte)
	close(ch)

	reloader := NewReloader(NewStore(), NewSyncChannelWatcher(ch), nil).SyncMode()

	if err := reloader.Start(context.Background()); err == nil {
		t.Error("expected Start to fail when watcher closes early")
	}
}

// recordingMetrics captures reloader metrics callbacks for assertions.
type recordingMetrics struct {
	NoOpMetricsProvider
	successes int
	failures  []string
	changes   int
}

func (m *recordingMetrics) OnProcessSuccess(_ time.Duration) {
	m.successes++
}

func (m *recordingMetrics) OnProcessFailure(stage string, _ time.Duration) {
	m.failures = append(m.failures, stage)
}

func (m *recordingMetrics) OnChangeReceived() {
	m.changes++
}
