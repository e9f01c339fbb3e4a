package governance

import "errors"

var (
	// ErrNotOwner indicates the caller is not an owner of the asset.
	ErrNotOwner = errors.New("governance: caller is not an owner of the asset")

	// ErrNotProposer indicates the caller did not create the proposal.
	ErrNotProposer = errors.New("governance: caller is not the proposer")

	// ErrProposalNotFound indicates the proposal ID is not registered.
	ErrProposalNotFound = errors.New("governance: proposal not found")

	// ErrPayloadMismatch indicates the payload does not match the
	// proposal category, or more than one payload field is set.
	ErrPayloadMismatch = errors.New("governance: payload does not match category")

	// ErrInvalidAction indicates an unrecognized emergency action.
	ErrInvalidAction = errors.New("governance: invalid emergency action")

	// ErrMissingLicense indicates a suspend-license action without a license ID.
	ErrMissingLicense = errors.New("governance: emergency action requires a license id")

	// ErrZeroSuspension indicates a suspend action without a positive duration.
	ErrZeroSuspension = errors.New("governance: suspension duration must be positive")

	// ErrEmptyCurrency indicates a revenue-policy payload without a currency.
	ErrEmptyCurrency = errors.New("governance: currency must not be empty")

	// ErrAlreadyVoted indicates the caller already voted on this proposal.
	ErrAlreadyVoted = errors.New("governance: already voted")

	// ErrVotingClosed indicates the voting deadline has passed.
	ErrVotingClosed = errors.New("governance: voting window closed")

	// ErrVotingOpen indicates the voting window is still open.
	ErrVotingOpen = errors.New("governance: voting window still open")

	// ErrExecutionWindowPassed indicates the execution deadline has passed.
	ErrExecutionWindowPassed = errors.New("governance: execution window passed")

	// ErrProposalClosed indicates the proposal was already executed or cancelled.
	ErrProposalClosed = errors.New("governance: proposal already executed or cancelled")

	// ErrProposalRejected indicates quorum or majority was not reached.
	ErrProposalRejected = errors.New("governance: proposal did not pass")

	// ErrCategoryMismatch indicates execution was attempted through the
	// wrong category's execute entry point.
	ErrCategoryMismatch = errors.New("governance: wrong category for this execution")
)
