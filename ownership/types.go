// Package ownership implements the fractional ownership ledger for
// collectively-owned intangible assets.
//
// It owns the canonical mapping of asset to owner entries (economic
// percentage plus governance weight) and the owner-set enumeration that
// every other subsystem reads from. Economic percentages are integers in
// [0, 100] and always sum to exactly 100 per asset.
package ownership

// Address identifies a party interacting with the ledger.
type Address string

// AssetID identifies a registered asset.
type AssetID string

// Asset is the registry record for a collectively-owned asset.
// Metadata and compliance fields are mutable by owners or by governance
// execution; the record is never deleted.
type Asset struct {
	ID               AssetID
	Type             string
	MetadataRef      string
	MetadataHash     string // opaque BLAKE2b-256 hash of MetadataRef, hex
	TotalSupply      uint64
	CreatedAt        int64 // unix seconds
	ComplianceStatus string
}

// OwnerEntry records one owner's stake in one asset.
type OwnerEntry struct {
	Percentage uint64 // economic share, 0..100
	Weight     uint64 // governance voting weight
	Member     bool   // set on first entry; never cleared (append-only owner sets)
}

// AssetState bundles everything the ledger tracks for one asset.
// Used by Snapshot/Restore and the persistence layer.
type AssetState struct {
	Asset   Asset
	Entries map[Address]OwnerEntry
	Order   []Address // enumeration order; zero-percentage owners are retained
}
