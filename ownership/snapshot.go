package ownership

// Snapshot exports the full ledger state for persistence.
func (l *Ledger) Snapshot() map[AssetID]AssetState {
	out := make(map[AssetID]AssetState, len(l.assets))
	for id, a := range l.assets {
		entries := make(map[Address]OwnerEntry, len(l.entries[id]))
		for addr, e := range l.entries[id] {
			entries[addr] = *e
		}
		order := make([]Address, len(l.order[id]))
		copy(order, l.order[id])
		out[id] = AssetState{Asset: *a, Entries: entries, Order: order}
	}
	return out
}

// Restore replaces the ledger state with a previously exported snapshot.
func (l *Ledger) Restore(state map[AssetID]AssetState) {
	l.assets = make(map[AssetID]*Asset, len(state))
	l.entries = make(map[AssetID]map[Address]*OwnerEntry, len(state))
	l.order = make(map[AssetID][]Address, len(state))
	for id, s := range state {
		a := s.Asset
		l.assets[id] = &a
		entries := make(map[Address]*OwnerEntry, len(s.Entries))
		for addr, e := range s.Entries {
			entry := e
			entries[addr] = &entry
		}
		l.entries[id] = entries
		order := make([]Address, len(s.Order))
		copy(order, s.Order)
		l.order[id] = order
	}
}
