// Package revenue implements the multi-currency revenue pool: per
// (asset, currency) accounting of received, accumulated, and distributed
// funds, per-owner pending balances, and pro-rata distribution driven by
// the ownership ledger.
//
// Pro-rata splits use floor division; the rounding residue stays in the
// pool's accumulated balance rather than being credited to any owner.
package revenue

import (
	"fmt"

	"github.com/coiporg/libcoip-go/ownership"
	"github.com/coiporg/libcoip-go/token"
)

// Account is the per (asset, currency) revenue account.
// Accumulated equals TotalReceived minus TotalDistributed, reconciled at
// each distribution.
type Account struct {
	TotalReceived       uint64
	TotalDistributed    uint64
	Accumulated         uint64
	MinimumDistribution uint64
	DistributionCount   uint64
}

// Balance is an owner's per (asset, currency) withdrawal account.
type Balance struct {
	Pending        uint64
	TotalEarned    uint64
	TotalWithdrawn uint64
}

// AccountKey identifies a revenue account.
type AccountKey struct {
	Asset    ownership.AssetID
	Currency string
}

// BalanceKey identifies an owner's pending balance.
type BalanceKey struct {
	Asset    ownership.AssetID
	Owner    ownership.Address
	Currency string
}

// Pool is the revenue pool for all assets and currencies.
type Pool struct {
	owners   *ownership.Ledger
	payments token.Resolver
	accounts map[AccountKey]*Account
	balances map[BalanceKey]*Balance
}

// NewPool creates an empty revenue pool reading owner splits from owners
// and moving funds through payments.
func NewPool(owners *ownership.Ledger, payments token.Resolver) *Pool {
	return &Pool{
		owners:   owners,
		payments: payments,
		accounts: make(map[AccountKey]*Account),
		balances: make(map[BalanceKey]*Balance),
	}
}

// account returns the revenue account, creating it lazily.
func (p *Pool) account(asset ownership.AssetID, currency string) *Account {
	k := AccountKey{Asset: asset, Currency: currency}
	a, ok := p.accounts[k]
	if !ok {
		a = &Account{}
		p.accounts[k] = a
	}
	return a
}

// balance returns the owner's balance record, creating it lazily.
func (p *Pool) balance(asset ownership.AssetID, owner ownership.Address, currency string) *Balance {
	k := BalanceKey{Asset: asset, Owner: owner, Currency: currency}
	b, ok := p.balances[k]
	if !ok {
		b = &Balance{}
		p.balances[k] = b
	}
	return b
}

// Receive pulls amount of currency from the caller into the pool and
// credits the asset's revenue account.
func (p *Pool) Receive(caller ownership.Address, asset ownership.AssetID, currency string, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	if !p.owners.Exists(asset) || p.owners.OwnerCount(asset) == 0 {
		return fmt.Errorf("%w: %s", ErrNoOwnership, asset)
	}
	pay, err := p.payments.Ledger(currency)
	if err != nil {
		return err
	}
	if err := pay.TransferFrom(caller, amount); err != nil {
		return err
	}
	a := p.account(asset, currency)
	a.TotalReceived += amount
	a.Accumulated += amount
	return nil
}

// Distribute splits amount pro-rata across the asset's owners, crediting
// each owner's pending balance with floor(amount * percentage / 100).
// Accumulated decreases by the sum of the floor shares, so rounding residue
// stays in the pool. Caller must be an owner; amount must not exceed the
// accumulated balance and must meet the minimum-distribution floor.
func (p *Pool) Distribute(caller ownership.Address, asset ownership.AssetID, currency string, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	if !p.owners.IsOwner(asset, caller) {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	a := p.account(asset, currency)
	if amount > a.Accumulated {
		return fmt.Errorf("%w: accumulated %d, requested %d", ErrInsufficientAccumulated, a.Accumulated, amount)
	}
	if amount < a.MinimumDistribution {
		return fmt.Errorf("%w: minimum %d, requested %d", ErrBelowMinimum, a.MinimumDistribution, amount)
	}

	distributed := p.split(asset, currency, amount)
	a.Accumulated -= distributed
	a.TotalDistributed += distributed
	a.DistributionCount++
	return nil
}

// DistributeAll distributes the entire accumulated balance. Owner-gated;
// a zero accumulated balance is a no-op.
func (p *Pool) DistributeAll(caller ownership.Address, asset ownership.AssetID, currency string) error {
	if !p.owners.IsOwner(asset, caller) {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	a, ok := p.accounts[AccountKey{Asset: asset, Currency: currency}]
	if !ok || a.Accumulated == 0 {
		return nil
	}
	return p.Distribute(caller, asset, currency, a.Accumulated)
}

// Withdraw pays out the caller's entire pending balance. The pending
// balance is zeroed and the withdrawal recorded only after the payment
// ledger accepts the transfer.
func (p *Pool) Withdraw(caller ownership.Address, asset ownership.AssetID, currency string) (uint64, error) {
	if !p.owners.IsOwner(asset, caller) {
		return 0, fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	b := p.balance(asset, caller, currency)
	if b.Pending == 0 {
		return 0, ErrNothingPending
	}
	pay, err := p.payments.Ledger(currency)
	if err != nil {
		return 0, err
	}
	amount := b.Pending
	if err := pay.Transfer(caller, amount); err != nil {
		return 0, err
	}
	b.Pending = 0
	b.TotalWithdrawn += amount
	return amount, nil
}

// SetMinimumDistribution sets the dust-prevention floor consulted by
// Distribute. Owner-gated; fee routing bypasses the floor.
func (p *Pool) SetMinimumDistribution(caller ownership.Address, asset ownership.AssetID, currency string, amount uint64) error {
	if !p.owners.IsOwner(asset, caller) {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	p.account(asset, currency).MinimumDistribution = amount
	return nil
}

// ApplyMinimumDistribution sets the floor on behalf of a passed
// revenue-policy proposal. Authorization was established by the vote.
func (p *Pool) ApplyMinimumDistribution(asset ownership.AssetID, currency string, amount uint64) {
	p.account(asset, currency).MinimumDistribution = amount
}

// RouteFee splits a fee or royalty payment pro-rata among the asset's
// owners. The funds are assumed to already sit in the pool (the license
// registry pulls them before routing). The minimum-distribution floor does
// not apply: routing is not owner-initiated.
func (p *Pool) RouteFee(asset ownership.AssetID, currency string, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	if !p.owners.Exists(asset) || p.owners.OwnerCount(asset) == 0 {
		return fmt.Errorf("%w: %s", ErrNoOwnership, asset)
	}
	a := p.account(asset, currency)
	distributed := p.split(asset, currency, amount)
	a.TotalReceived += amount
	a.TotalDistributed += distributed
	a.Accumulated += amount - distributed
	a.DistributionCount++
	return nil
}

// split credits floor(amount * pct / 100) to every owner's pending balance
// and returns the distributed total, which never exceeds amount.
func (p *Pool) split(asset ownership.AssetID, currency string, amount uint64) uint64 {
	var distributed uint64
	for _, owner := range p.owners.Owners(asset) {
		share := amount * p.owners.Percentage(asset, owner) / 100
		if share == 0 {
			continue
		}
		b := p.balance(asset, owner, currency)
		b.Pending += share
		b.TotalEarned += share
		distributed += share
	}
	return distributed
}

// AccountInfo returns a copy of the (asset, currency) revenue account.
func (p *Pool) AccountInfo(asset ownership.AssetID, currency string) Account {
	if a, ok := p.accounts[AccountKey{Asset: asset, Currency: currency}]; ok {
		return *a
	}
	return Account{}
}

// BalanceInfo returns a copy of the owner's (asset, currency) balance.
func (p *Pool) BalanceInfo(asset ownership.AssetID, owner ownership.Address, currency string) Balance {
	if b, ok := p.balances[BalanceKey{Asset: asset, Owner: owner, Currency: currency}]; ok {
		return *b
	}
	return Balance{}
}

// Pending returns the owner's pending balance.
func (p *Pool) Pending(asset ownership.AssetID, owner ownership.Address, currency string) uint64 {
	return p.BalanceInfo(asset, owner, currency).Pending
}
