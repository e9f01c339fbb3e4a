// Package governance implements the weighted proposal engine: asset
// management, revenue policy, and emergency proposals, voted by owners
// with their governance weight against a quorum snapshotted at proposal
// creation.
package governance

import "github.com/coiporg/libcoip-go/ownership"

// Category classifies a proposal.
type Category uint8

const (
	CategoryAssetManagement Category = iota
	CategoryRevenuePolicy
	CategoryEmergency
)

// String returns the category tag.
func (c Category) String() string {
	switch c {
	case CategoryAssetManagement:
		return "asset-management"
	case CategoryRevenuePolicy:
		return "revenue-policy"
	case CategoryEmergency:
		return "emergency"
	default:
		return "unknown"
	}
}

// EmergencyAction selects what a passed emergency proposal does.
type EmergencyAction uint8

const (
	// ActionSuspendLicense suspends a single license.
	ActionSuspendLicense EmergencyAction = iota
	// ActionSuspendAllLicenses suspends every active license of the asset.
	ActionSuspendAllLicenses
	// ActionPauseSystem trips the global pause flag, halting all mutating
	// operations until explicitly lifted.
	ActionPauseSystem
)

// String returns the action tag.
func (a EmergencyAction) String() string {
	switch a {
	case ActionSuspendLicense:
		return "suspend-license"
	case ActionSuspendAllLicenses:
		return "suspend-all-licenses"
	case ActionPauseSystem:
		return "pause-system"
	default:
		return "unknown"
	}
}

// AssetManagementPayload carries metadata and/or compliance changes.
// Empty fields are left unchanged on execution.
type AssetManagementPayload struct {
	MetadataRef      string
	ComplianceStatus string
}

// RevenuePolicyPayload carries a new minimum-distribution floor.
type RevenuePolicyPayload struct {
	Currency            string
	MinimumDistribution uint64
}

// EmergencyPayload describes an emergency action.
type EmergencyPayload struct {
	Action             EmergencyAction
	LicenseID          string // for ActionSuspendLicense
	SuspensionDuration int64  // seconds, for the suspend actions
}

// Payload is the category-specific proposal payload. Exactly the field
// matching the proposal's category must be set.
type Payload struct {
	AssetManagement *AssetManagementPayload
	RevenuePolicy   *RevenuePolicyPayload
	Emergency       *EmergencyPayload
}

// Proposal is a governance proposal. Immutable after creation except for
// votes and the outcome flags; never deleted.
type Proposal struct {
	ID          string
	Asset       ownership.AssetID
	Proposer    ownership.Address
	Category    Category
	Payload     Payload
	Description string

	VotesFor     uint64
	VotesAgainst uint64
	// TotalWeight snapshots the asset's total governance weight at
	// creation; it is the quorum denominator. Votes cast later use each
	// voter's weight at voting time.
	TotalWeight       uint64
	Quorum            uint64
	VotingDeadline    int64
	ExecutionDeadline int64

	Executed  bool
	Cancelled bool
	Voted     map[ownership.Address]bool
}

// Settings are the per-asset governance settings. Defaults from the engine
// parameters apply until explicitly set.
type Settings struct {
	DefaultQuorumBps        uint64
	EmergencyQuorumBps      uint64
	LicenseQuorumBps        uint64
	VotingDuration          int64
	EmergencyVotingDuration int64
	ExecutionDelay          int64
}
