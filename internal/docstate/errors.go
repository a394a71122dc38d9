package docstate

import "errors"

// Operation failures returned to the dispatcher. Parser-reported syntax
// problems are never among them: those flow exclusively into the
// diagnostics channel.
var (
	// ErrUnresolvableLocator: the locator could not be resolved to a
	// canonical path.
	ErrUnresolvableLocator = errors.New("unresolvable document locator")

	// ErrAlreadyOpen: open was called for a document the client
	// already owns.
	ErrAlreadyOpen = errors.New("document already open")

	// ErrNotOpen: a change or close targeted a document the client
	// does not own.
	ErrNotOpen = errors.New("document not open")

	// ErrRangeOutOfBounds: a change range did not resolve against the
	// current buffer content. Prior changes in the same batch remain
	// applied.
	ErrRangeOutOfBounds = errors.New("change range outside document")
)
