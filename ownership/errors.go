package ownership

import "errors"

var (
	// ErrLengthMismatch indicates the owners, percentages, and weights
	// slices do not have equal lengths.
	ErrLengthMismatch = errors.New("ownership: owners, percentages, and weights must have equal lengths")

	// ErrNoOwners indicates an empty owner list was supplied.
	ErrNoOwners = errors.New("ownership: owner list must not be empty")

	// ErrPercentageSum indicates the supplied percentages do not sum to exactly 100.
	ErrPercentageSum = errors.New("ownership: percentages must sum to exactly 100")

	// ErrDuplicateOwner indicates the same address appears twice in a registration.
	ErrDuplicateOwner = errors.New("ownership: duplicate owner address")

	// ErrEmptyAddress indicates a blank owner address.
	ErrEmptyAddress = errors.New("ownership: empty owner address")

	// ErrEmptyAssetID indicates a blank asset ID.
	ErrEmptyAssetID = errors.New("ownership: empty asset id")

	// ErrAssetExists indicates an asset with this ID is already registered.
	ErrAssetExists = errors.New("ownership: asset already registered")

	// ErrAssetNotFound indicates the asset has no ownership record.
	ErrAssetNotFound = errors.New("ownership: asset not found")

	// ErrNotOwner indicates the address holds no membership in the asset.
	ErrNotOwner = errors.New("ownership: address is not an owner of this asset")

	// ErrInsufficientShare indicates the sender's percentage is smaller
	// than the amount being transferred.
	ErrInsufficientShare = errors.New("ownership: insufficient percentage to transfer")

	// ErrZeroPercentage indicates a transfer of zero percent.
	ErrZeroPercentage = errors.New("ownership: transfer percentage must be positive")

	// ErrSelfTransfer indicates sender and recipient are the same address.
	ErrSelfTransfer = errors.New("ownership: cannot transfer share to self")
)
