package revenue

import "errors"

var (
	// ErrZeroAmount indicates a zero revenue or distribution amount.
	ErrZeroAmount = errors.New("revenue: amount must be positive")

	// ErrNoOwnership indicates the asset has no active ownership record.
	ErrNoOwnership = errors.New("revenue: asset has no active ownership record")

	// ErrNotOwner indicates the caller is not an owner of the asset.
	ErrNotOwner = errors.New("revenue: caller is not an owner of this asset")

	// ErrInsufficientAccumulated indicates the requested distribution
	// exceeds the accumulated undistributed revenue.
	ErrInsufficientAccumulated = errors.New("revenue: insufficient accumulated revenue")

	// ErrBelowMinimum indicates the distribution amount is below the
	// account's minimum-distribution floor.
	ErrBelowMinimum = errors.New("revenue: distribution below minimum")

	// ErrNothingPending indicates the owner has no pending balance to withdraw.
	ErrNothingPending = errors.New("revenue: nothing to withdraw")
)
