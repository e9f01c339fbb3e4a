// Package token defines the external token-ledger collaborators of the
// engine: per-currency payment ledgers used for all monetary transfers, and
// the asset-token minter invoked on registration and supply mints.
//
// The engine only needs these narrow interfaces; in-memory implementations
// are provided for tests and for embedders that do not bring their own.
// All amounts are integers in the token's native smallest unit.
package token

import "github.com/coiporg/libcoip-go/ownership"

// PaymentLedger moves one currency between external parties and the pool.
type PaymentLedger interface {
	// TransferFrom pulls amount from payer into the pool. The payer must
	// have granted the pool a sufficient allowance beforehand.
	TransferFrom(payer ownership.Address, amount uint64) error

	// Transfer pays amount out of the pool to recipient.
	Transfer(recipient ownership.Address, amount uint64) error

	// BalanceOf reports an address's balance.
	BalanceOf(addr ownership.Address) uint64
}

// Resolver maps a currency code to its payment ledger instance.
type Resolver interface {
	Ledger(currency string) (PaymentLedger, error)
}

// AssetMinter mints fungible asset-token balances. Balances are read-only
// from this core's perspective; only minting crosses the boundary.
type AssetMinter interface {
	Mint(recipient ownership.Address, asset ownership.AssetID, amount uint64) error
}
