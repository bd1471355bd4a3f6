/*
Package reveal provides the configuration engine for scroll-triggered reveal
effects: global config, per-element option resolution, and responsive
breakpoint handling.

The core type is Store, which holds the global configuration (dev mode, once
mode, responsive device map, intersection observer settings) and the default
per-element options. Every mutation follows the same discipline:

	Clone → Apply → Validate → Commit

If validation fails, the live state is untouched and the error is returned.
Readers never observe a partially-applied or invalid configuration.

# Basic Usage

Create a store and adjust the global configuration:

	store := reveal.NewStore()

	if _, err := store.SetDeviceBreakpoint(reveal.Tablet, 800); err != nil {
	    log.Fatal(err)
	}
	if _, err := store.SetObserverThreshold(0.25); err != nil {
	    log.Fatal(err)
	}

Resolve per-element options by overlaying a partial record onto the stored
defaults:

	blur := 8.0
	opts, err := store.ResolveOptions(reveal.OptionsPatch{Blur: &blur})
	if err != nil {
	    log.Fatal(err) // invalid options
	}

The returned record is total: every field is defined, every callback resolves
to a callable. Mutating it never affects the stored defaults.

# Device Resolution

The responsive map assigns each device tier a minimum viewport width. The
active tier for a given width is the widest tier whose breakpoint does not
exceed it:

	device, ok := store.ActiveDevice(1024) // Tablet, true
	run := store.Active(1024)              // false if the tier is disabled

# Hot Reload

Reloader watches a source for declarative configuration documents and applies
them to a Store with automatic rollback on failure:

	reloader := reveal.NewReloader(store, reveal.NewFileWatcher("reveal.yaml"),
	    reveal.WithRetry(3),
	).Codec(reveal.YAMLCodec{})

	if err := reloader.Start(ctx); err != nil {
	    log.Printf("initial config failed: %v", err)
	}

If a document fails to decode, validate, or apply, the store keeps its
last-known-good configuration and the Reloader enters a degraded state while
continuing to watch for valid updates.

# Observability

Store commits, rejections, and Reloader state transitions emit capitan
signals. Hook them for logging or metrics:

	capitan.Hook(reveal.StoreConfigRejected, func(_ context.Context, e *capitan.Event) {
	    msg, _ := reveal.KeyError.From(e)
	    log.Printf("config rejected: %s", msg)
	})
*/
package reveal
