package revenue

// PoolState exports the pool's full state for persistence.
type PoolState struct {
	Accounts map[AccountKey]Account
	Balances map[BalanceKey]Balance
}

// Snapshot exports the pool state.
func (p *Pool) Snapshot() PoolState {
	s := PoolState{
		Accounts: make(map[AccountKey]Account, len(p.accounts)),
		Balances: make(map[BalanceKey]Balance, len(p.balances)),
	}
	for k, a := range p.accounts {
		s.Accounts[k] = *a
	}
	for k, b := range p.balances {
		s.Balances[k] = *b
	}
	return s
}

// Restore replaces the pool state with a previously exported snapshot.
func (p *Pool) Restore(s PoolState) {
	p.accounts = make(map[AccountKey]*Account, len(s.Accounts))
	p.balances = make(map[BalanceKey]*Balance, len(s.Balances))
	for k, a := range s.Accounts {
		acct := a
		p.accounts[k] = &acct
	}
	for k, b := range s.Balances {
		bal := b
		p.balances[k] = &bal
	}
}
