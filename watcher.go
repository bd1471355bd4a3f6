package reveal

import "context"

// Watcher observes a source of configuration documents and emits raw bytes
// on a channel when the source changes.
type Watcher interface {
	// Watch begins observing the source and returns a channel that emits
	// raw document bytes when changes occur. The channel is closed when the
	// context is canceled or an unrecoverable error occurs.
	//
	// Implementations should emit the current value immediately so the
	// initial configuration loads without waiting for a change.
	Watch(ctx context.Context) (<-chan []byte, error)
}
