package ownership

import "fmt"

// Ledger is the ownership table for all registered assets.
//
// The ledger is not safe for concurrent use on its own; the embedding
// aggregate serializes access (see the ledger package).
type Ledger struct {
	assets  map[AssetID]*Asset
	entries map[AssetID]map[Address]*OwnerEntry
	order   map[AssetID][]Address
}

// NewLedger creates an empty ownership ledger.
func NewLedger() *Ledger {
	return &Ledger{
		assets:  make(map[AssetID]*Asset),
		entries: make(map[AssetID]map[Address]*OwnerEntry),
		order:   make(map[AssetID][]Address),
	}
}

// CreateAsset records a new asset. The asset starts with no owners;
// RegisterOwnership installs the initial split.
func (l *Ledger) CreateAsset(asset Asset) error {
	if asset.ID == "" {
		return ErrEmptyAssetID
	}
	if _, ok := l.assets[asset.ID]; ok {
		return fmt.Errorf("%w: %s", ErrAssetExists, asset.ID)
	}
	a := asset
	l.assets[asset.ID] = &a
	l.entries[asset.ID] = make(map[Address]*OwnerEntry)
	return nil
}

// ValidateOwnerSet checks an owner-set registration input without touching
// the ledger: equal slice lengths, at least one owner, no empty addresses or
// duplicates, and percentages summing to exactly 100.
func ValidateOwnerSet(owners []Address, percentages, weights []uint64) error {
	if len(owners) != len(percentages) || len(owners) != len(weights) {
		return ErrLengthMismatch
	}
	if len(owners) == 0 {
		return ErrNoOwners
	}

	var sum uint64
	seen := make(map[Address]bool, len(owners))
	for i, addr := range owners {
		if addr == "" {
			return ErrEmptyAddress
		}
		if seen[addr] {
			return fmt.Errorf("%w: %s", ErrDuplicateOwner, addr)
		}
		seen[addr] = true
		sum += percentages[i]
	}
	if sum != 100 {
		return fmt.Errorf("%w: got %d", ErrPercentageSum, sum)
	}
	return nil
}

// RegisterOwnership replaces the asset's entire owner set atomically.
// The input must pass ValidateOwnerSet; on any validation failure nothing
// is written.
func (l *Ledger) RegisterOwnership(asset AssetID, owners []Address, percentages, weights []uint64) error {
	if _, ok := l.assets[asset]; !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, asset)
	}
	if err := ValidateOwnerSet(owners, percentages, weights); err != nil {
		return err
	}

	// All preconditions hold; replace the set.
	entries := make(map[Address]*OwnerEntry, len(owners))
	order := make([]Address, len(owners))
	for i, addr := range owners {
		entries[addr] = &OwnerEntry{
			Percentage: percentages[i],
			Weight:     weights[i],
			Member:     true,
		}
		order[i] = addr
	}
	l.entries[asset] = entries
	l.order[asset] = order
	return nil
}

// TransferShare moves percentage points of economic share from one owner to
// another. Governance weight moves proportionally:
//
//	weightMoved = floor(fromWeight * percentage / fromPercentageBefore)
//
// The total percentage across all owners of the asset is unchanged.
func (l *Ledger) TransferShare(asset AssetID, from, to Address, percentage uint64) error {
	entries, ok := l.entries[asset]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, asset)
	}
	if percentage == 0 {
		return ErrZeroPercentage
	}
	if to == "" {
		return ErrEmptyAddress
	}
	if from == to {
		return ErrSelfTransfer
	}
	sender, ok := entries[from]
	if !ok || !sender.Member {
		return fmt.Errorf("%w: %s", ErrNotOwner, from)
	}
	if sender.Percentage < percentage {
		return fmt.Errorf("%w: have %d, want %d", ErrInsufficientShare, sender.Percentage, percentage)
	}

	weightMoved := sender.Weight * percentage / sender.Percentage

	recipient, ok := entries[to]
	if !ok {
		recipient = &OwnerEntry{Member: true}
		entries[to] = recipient
		l.order[asset] = append(l.order[asset], to)
	}

	sender.Percentage -= percentage
	sender.Weight -= weightMoved
	recipient.Percentage += percentage
	recipient.Weight += weightMoved
	return nil
}

// SetMetadata updates the asset's metadata reference and hash.
func (l *Ledger) SetMetadata(asset AssetID, ref, hash string) error {
	a, ok := l.assets[asset]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, asset)
	}
	a.MetadataRef = ref
	a.MetadataHash = hash
	return nil
}

// SetComplianceStatus updates the cached compliance-status tag.
// The verification workflow itself lives outside this core.
func (l *Ledger) SetComplianceStatus(asset AssetID, status string) error {
	a, ok := l.assets[asset]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, asset)
	}
	a.ComplianceStatus = status
	return nil
}

// AddSupply raises the asset's recorded nominal supply.
func (l *Ledger) AddSupply(asset AssetID, amount uint64) error {
	a, ok := l.assets[asset]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, asset)
	}
	a.TotalSupply += amount
	return nil
}

// Asset returns a copy of the asset record.
func (l *Ledger) Asset(asset AssetID) (Asset, error) {
	a, ok := l.assets[asset]
	if !ok {
		return Asset{}, fmt.Errorf("%w: %s", ErrAssetNotFound, asset)
	}
	return *a, nil
}

// Exists reports whether the asset is registered.
func (l *Ledger) Exists(asset AssetID) bool {
	_, ok := l.assets[asset]
	return ok
}

// IsOwner reports whether addr holds membership in the asset. Owners whose
// percentage has been transferred down to zero retain membership.
func (l *Ledger) IsOwner(asset AssetID, addr Address) bool {
	e, ok := l.entries[asset][addr]
	return ok && e.Member
}

// HasGovernanceRights reports whether addr is a member with positive
// governance weight.
func (l *Ledger) HasGovernanceRights(asset AssetID, addr Address) bool {
	e, ok := l.entries[asset][addr]
	return ok && e.Member && e.Weight > 0
}

// Percentage returns addr's economic percentage of the asset.
func (l *Ledger) Percentage(asset AssetID, addr Address) uint64 {
	if e, ok := l.entries[asset][addr]; ok {
		return e.Percentage
	}
	return 0
}

// Weight returns addr's current governance weight for the asset.
func (l *Ledger) Weight(asset AssetID, addr Address) uint64 {
	if e, ok := l.entries[asset][addr]; ok {
		return e.Weight
	}
	return 0
}

// TotalWeight sums the governance weight over the asset's owner set.
// Governance snapshots this as the quorum denominator at proposal creation.
func (l *Ledger) TotalWeight(asset AssetID) uint64 {
	var total uint64
	for _, addr := range l.order[asset] {
		total += l.entries[asset][addr].Weight
	}
	return total
}

// Owners returns the asset's owner enumeration in registration order.
// The slice is a copy; zero-percentage owners are included.
func (l *Ledger) Owners(asset AssetID) []Address {
	order := l.order[asset]
	out := make([]Address, len(order))
	copy(out, order)
	return out
}

// OwnerCount returns the number of enumerated owners.
func (l *Ledger) OwnerCount(asset AssetID) int {
	return len(l.order[asset])
}

// Assets lists all registered asset IDs.
func (l *Ledger) Assets() []AssetID {
	out := make([]AssetID, 0, len(l.assets))
	for id := range l.assets {
		out = append(out, id)
	}
	return out
}
