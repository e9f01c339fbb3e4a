package license

import "errors"

var (
	// ErrNotFound indicates the license ID is not registered.
	ErrNotFound = errors.New("license: license not found")

	// ErrRoyaltyRateTooHigh indicates a royalty rate above 10000 bps.
	ErrRoyaltyRateTooHigh = errors.New("license: royalty rate exceeds 10000 bps")

	// ErrEmptyLicensee indicates a blank licensee address.
	ErrEmptyLicensee = errors.New("license: licensee must not be empty")

	// ErrNotOwner indicates the caller is not an owner of the underlying asset.
	ErrNotOwner = errors.New("license: caller is not an owner of the asset")

	// ErrNotLicensee indicates the caller is not the license's licensee.
	ErrNotLicensee = errors.New("license: caller is not the licensee")

	// ErrApprovalNotPending indicates approval is not required or is
	// already resolved.
	ErrApprovalNotPending = errors.New("license: approval not pending")

	// ErrNotApproved indicates the license has not been approved.
	ErrNotApproved = errors.New("license: not approved")

	// ErrAlreadyActive indicates the license is already active.
	ErrAlreadyActive = errors.New("license: already active")

	// ErrNotActive indicates the operation requires an active license.
	ErrNotActive = errors.New("license: not active")

	// ErrRevoked indicates the license was revoked; revocation is terminal.
	ErrRevoked = errors.New("license: revoked")

	// ErrExpired indicates the license term has ended.
	ErrExpired = errors.New("license: expired")

	// ErrSuspendedState indicates the license is suspended.
	ErrSuspendedState = errors.New("license: suspended")

	// ErrNotSuspended indicates the license is not suspended.
	ErrNotSuspended = errors.New("license: not suspended")

	// ErrWrongAsset indicates the license does not belong to the asset the
	// caller's authority is scoped to.
	ErrWrongAsset = errors.New("license: license belongs to a different asset")

	// ErrSuspensionActive indicates the suspension window has not elapsed.
	ErrSuspensionActive = errors.New("license: suspension window not elapsed")

	// ErrZeroDuration indicates a zero suspension duration.
	ErrZeroDuration = errors.New("license: suspension duration must be positive")

	// ErrUsageCapExceeded indicates the reported usage would exceed the cap.
	ErrUsageCapExceeded = errors.New("license: usage cap exceeded")

	// ErrZeroAmount indicates a zero payment amount.
	ErrZeroAmount = errors.New("license: amount must be positive")

	// ErrSameLicensee indicates a transfer to the current licensee.
	ErrSameLicensee = errors.New("license: recipient is already the licensee")

	// ErrProposalNotFound indicates the license proposal ID is not registered.
	ErrProposalNotFound = errors.New("license: proposal not found")

	// ErrAlreadyVoted indicates the caller already voted on this proposal.
	ErrAlreadyVoted = errors.New("license: already voted")

	// ErrVotingClosed indicates the proposal's voting window has ended.
	ErrVotingClosed = errors.New("license: voting window closed")

	// ErrVotingOpen indicates the proposal's voting window is still open.
	ErrVotingOpen = errors.New("license: voting window still open")

	// ErrExecutionWindowPassed indicates the execution window has elapsed.
	ErrExecutionWindowPassed = errors.New("license: execution window passed")

	// ErrProposalClosed indicates the proposal was already executed or cancelled.
	ErrProposalClosed = errors.New("license: proposal already executed or cancelled")

	// ErrProposalRejected indicates quorum or majority was not reached.
	ErrProposalRejected = errors.New("license: proposal did not pass")
)
