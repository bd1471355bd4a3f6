package reveal

import "github.com/zoobzio/capitan"

// Store signals.
var (
	// StoreConfigUpdated is emitted when a global config change commits.
	StoreConfigUpdated = capitan.NewSignal(
		"reveal.store.config.updated",
		"Global config committed",
	)

	// StoreConfigRejected is emitted when a global config change fails
	// validation and is discarded.
	StoreConfigRejected = capitan.NewSignal(
		"reveal.store.config.rejected",
		"Global config change rejected",
	)

	// StoreDefaultsUpdated is emitted when new default element options commit.
	StoreDefaultsUpdated = capitan.NewSignal(
		"reveal.store.defaults.updated",
		"Default element options committed",
	)

	// StoreDefaultsRejected is emitted when a default-options change fails
	// validation and is discarded.
	StoreDefaultsRejected = capitan.NewSignal(
		"reveal.store.defaults.rejected",
		"Default element options rejected",
	)

	// StoreOptionsRejected is emitted when a per-element options record
	// fails validation during resolution.
	StoreOptionsRejected = capitan.NewSignal(
		"reveal.store.options.rejected",
		"Per-element options rejected",
	)
)

// Reloader lifecycle signals.
var (
	// ReloaderStarted is emitted when a Reloader begins watching.
	ReloaderStarted = capitan.NewSignal(
		"reveal.reloader.started",
		"Reloader watching started",
	)

	// ReloaderStopped is emitted when a Reloader stops watching.
	ReloaderStopped = capitan.NewSignal(
		"reveal.reloader.stopped",
		"Reloader watching stopped",
	)

	// ReloaderStateChanged is emitted when a Reloader transitions between states.
	ReloaderStateChanged = capitan.NewSignal(
		"reveal.reloader.state.changed",
		"Reloader state transition",
	)
)

// Document processing signals.
var (
	// ReloaderChangeReceived is emitted when raw bytes arrive from the watcher.
	ReloaderChangeReceived = capitan.NewSignal(
		"reveal.reloader.change.received",
		"Raw change received from watcher",
	)

	// ReloaderDecodeFailed is emitted when a document fails to decode.
	ReloaderDecodeFailed = capitan.NewSignal(
		"reveal.reloader.decode.failed",
		"Document decode failed",
	)

	// ReloaderValidationFailed is emitted when a staged document fails
	// validation against the store.
	ReloaderValidationFailed = capitan.NewSignal(
		"reveal.reloader.validation.failed",
		"Document validation failed",
	)

	// ReloaderApplyFailed is emitted when the update pipeline or commit fails.
	ReloaderApplyFailed = capitan.NewSignal(
		"reveal.reloader.apply.failed",
		"Document apply failed",
	)

	// ReloaderApplySucceeded is emitted when a document is committed.
	ReloaderApplySucceeded = capitan.NewSignal(
		"reveal.reloader.apply.succeeded",
		"Document applied successfully",
	)
)
