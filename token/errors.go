package token

import "errors"

var (
	// ErrUnknownCurrency indicates no payment ledger is registered for the currency.
	ErrUnknownCurrency = errors.New("token: unknown currency")

	// ErrInsufficientBalance indicates the payer's balance is too low.
	ErrInsufficientBalance = errors.New("token: insufficient balance")

	// ErrInsufficientAllowance indicates the payer has not approved enough
	// funds for the pool to pull.
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")

	// ErrInsufficientPoolFunds indicates the pool holds less than the payout.
	ErrInsufficientPoolFunds = errors.New("token: insufficient pool funds")

	// ErrZeroAmount indicates a zero-value transfer.
	ErrZeroAmount = errors.New("token: amount must be positive")
)
