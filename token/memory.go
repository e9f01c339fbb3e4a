package token

import (
	"fmt"

	"github.com/coiporg/libcoip-go/ownership"
)

// MemoryLedger is an in-memory PaymentLedger for one currency.
type MemoryLedger struct {
	balances   map[ownership.Address]uint64
	allowances map[ownership.Address]uint64 // allowance granted to the pool
	pool       uint64
}

var _ PaymentLedger = (*MemoryLedger)(nil)

// NewMemoryLedger creates an empty in-memory payment ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances:   make(map[ownership.Address]uint64),
		allowances: make(map[ownership.Address]uint64),
	}
}

// Credit adds funds to an address (test/faucet helper).
func (m *MemoryLedger) Credit(addr ownership.Address, amount uint64) {
	m.balances[addr] += amount
}

// Approve grants the pool an allowance to pull from addr.
func (m *MemoryLedger) Approve(addr ownership.Address, amount uint64) {
	m.allowances[addr] = amount
}

// TransferFrom pulls amount from payer into the pool.
func (m *MemoryLedger) TransferFrom(payer ownership.Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	if m.allowances[payer] < amount {
		return fmt.Errorf("%w: have %d, want %d", ErrInsufficientAllowance, m.allowances[payer], amount)
	}
	if m.balances[payer] < amount {
		return fmt.Errorf("%w: have %d, want %d", ErrInsufficientBalance, m.balances[payer], amount)
	}
	m.allowances[payer] -= amount
	m.balances[payer] -= amount
	m.pool += amount
	return nil
}

// Transfer pays amount out of the pool to recipient.
func (m *MemoryLedger) Transfer(recipient ownership.Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	if m.pool < amount {
		return fmt.Errorf("%w: have %d, want %d", ErrInsufficientPoolFunds, m.pool, amount)
	}
	m.pool -= amount
	m.balances[recipient] += amount
	return nil
}

// BalanceOf reports an address's balance.
func (m *MemoryLedger) BalanceOf(addr ownership.Address) uint64 {
	return m.balances[addr]
}

// PoolBalance reports the funds currently held by the pool.
func (m *MemoryLedger) PoolBalance() uint64 {
	return m.pool
}

// MemoryResolver maps currency codes to MemoryLedgers.
type MemoryResolver struct {
	ledgers map[string]*MemoryLedger
}

var _ Resolver = (*MemoryResolver)(nil)

// NewMemoryResolver creates an empty resolver.
func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{ledgers: make(map[string]*MemoryLedger)}
}

// Register installs a ledger for a currency code and returns it.
func (r *MemoryResolver) Register(currency string) *MemoryLedger {
	l := NewMemoryLedger()
	r.ledgers[currency] = l
	return l
}

// Ledger resolves the payment ledger for a currency.
func (r *MemoryResolver) Ledger(currency string) (PaymentLedger, error) {
	l, ok := r.ledgers[currency]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, currency)
	}
	return l, nil
}

// Memory returns the concrete in-memory ledger for a currency (test helper).
func (r *MemoryResolver) Memory(currency string) *MemoryLedger {
	return r.ledgers[currency]
}

// MemoryMinter records minted asset-token balances in memory.
type MemoryMinter struct {
	minted map[ownership.AssetID]map[ownership.Address]uint64
}

var _ AssetMinter = (*MemoryMinter)(nil)

// NewMemoryMinter creates an empty minter.
func NewMemoryMinter() *MemoryMinter {
	return &MemoryMinter{minted: make(map[ownership.AssetID]map[ownership.Address]uint64)}
}

// Mint credits recipient with amount units of the asset token.
func (m *MemoryMinter) Mint(recipient ownership.Address, asset ownership.AssetID, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	if m.minted[asset] == nil {
		m.minted[asset] = make(map[ownership.Address]uint64)
	}
	m.minted[asset][recipient] += amount
	return nil
}

// Minted reports the minted balance for (asset, recipient).
func (m *MemoryMinter) Minted(asset ownership.AssetID, recipient ownership.Address) uint64 {
	return m.minted[asset][recipient]
}
