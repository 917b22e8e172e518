// Package progress carries byte-level transfer progress from the acquisition
// engine to a display. Updates flow through an injected Sink so concurrent
// transfers can each own an independent reporter without shared globals.
package progress

// Update is a single progress event for one transfer.
type Update struct {
	// Name is the logical name of the transfer ("snapshot", "part 3").
	Name string
	// Position is the current byte position, including bytes already on
	// disk from a resumed attempt.
	Position int64
	// Total is the remote object size in bytes, 0 when unknown.
	Total int64
}

// Sink consumes progress updates. Implementations must be cheap relative to
// the transfer's I/O; an Update is emitted after every chunk written.
type Sink func(Update)

// Discard is a Sink that drops all updates.
func Discard(Update) {}
