package ledger

import "errors"

var (
	// ErrReentrantCall indicates a mutating entry point was invoked while
	// another call was already in flight, typically through a callback from
	// an external payment ledger.
	ErrReentrantCall = errors.New("ledger: reentrant call")

	// ErrSystemPaused indicates the global pause flag is set; all mutating
	// entry points are rejected until the pause is lifted.
	ErrSystemPaused = errors.New("ledger: system paused")

	// ErrNilResolver indicates the ledger was constructed without a payment
	// resolver.
	ErrNilResolver = errors.New("ledger: payment resolver must not be nil")
)
