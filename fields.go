package reveal

import "github.com/zoobzio/capitan"

// Field keys for store and reloader events.
var (
	// KeyError is the error message when a change is rejected or apply fails.
	KeyError = capitan.NewStringKey("error")

	// KeyState is the final state of a stopping Reloader.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyDebounce is the configured debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")
)
