package ledger

import (
	"github.com/coiporg/libcoip-go/governance"
	"github.com/coiporg/libcoip-go/license"
	"github.com/coiporg/libcoip-go/ownership"
	"github.com/coiporg/libcoip-go/revenue"
)

// State exports the full engine state for persistence.
type State struct {
	Ownership  map[ownership.AssetID]ownership.AssetState
	Revenue    revenue.PoolState
	Licenses   license.RegistryState
	Governance governance.EngineState
	Paused     bool
}

// Snapshot exports the engine state. Rejected while a call is in flight.
func (l *Ledger) Snapshot() (State, error) {
	if l.inflight {
		return State{}, ErrReentrantCall
	}
	return State{
		Ownership:  l.owners.Snapshot(),
		Revenue:    l.pool.Snapshot(),
		Licenses:   l.licenses.Snapshot(),
		Governance: l.gov.Snapshot(),
		Paused:     l.paused,
	}, nil
}

// Restore replaces the engine state with a previously exported snapshot.
// Works while paused, so a paused engine can be reopened as paused.
func (l *Ledger) Restore(s State) error {
	if l.inflight {
		return ErrReentrantCall
	}
	l.owners.Restore(s.Ownership)
	l.pool.Restore(s.Revenue)
	l.licenses.Restore(s.Licenses)
	l.gov.Restore(s.Governance)
	l.paused = s.Paused
	return nil
}
