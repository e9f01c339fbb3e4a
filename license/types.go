// Package license implements the per-asset license registry: a state
// machine covering offer, approval, activation, suspension, expiry,
// revocation, and transfer, plus royalty accrual and a lightweight
// asset-scoped proposal flow that mints new licenses by collective vote.
package license

import "github.com/coiporg/libcoip-go/ownership"

// Type classifies a license grant.
type Type uint8

const (
	TypeNonExclusive Type = iota
	TypeExclusive
	TypeSoleExclusive
)

// String returns the type tag.
func (t Type) String() string {
	switch t {
	case TypeNonExclusive:
		return "non-exclusive"
	case TypeExclusive:
		return "exclusive"
	case TypeSoleExclusive:
		return "sole-exclusive"
	default:
		return "unknown"
	}
}

// needsApproval reports whether the type alone forces owner approval.
func (t Type) needsApproval() bool {
	return t == TypeExclusive || t == TypeSoleExclusive
}

// Status is the derived lifecycle state of a license.
type Status uint8

const (
	StatusPendingApproval Status = iota
	StatusInactive
	StatusSuspended
	StatusSuspensionExpired
	StatusExpired
	StatusActive
)

// String returns the status tag.
func (s Status) String() string {
	switch s {
	case StatusPendingApproval:
		return "pending-approval"
	case StatusInactive:
		return "inactive"
	case StatusSuspended:
		return "suspended"
	case StatusSuspensionExpired:
		return "suspension-expired"
	case StatusExpired:
		return "expired"
	case StatusActive:
		return "active"
	default:
		return "unknown"
	}
}

// License is a registry record. The composite lifecycle status is derived
// from the flag and timestamp fields; see Registry.Status.
type License struct {
	ID          string
	Asset       ownership.AssetID
	Licensor    ownership.Address
	Licensee    ownership.Address
	Type        Type
	UsageRights string
	Territory   string
	Fee         uint64
	// RoyaltyRateBps is the royalty rate in parts per ten thousand.
	RoyaltyRateBps uint64
	StartTime      int64
	EndTime        int64 // 0 = perpetual
	Currency       string
	TermsRef       string
	TermsHash      string // opaque hash of TermsRef
	MetadataRef    string
	CreatedAt      int64

	RequiresApproval bool
	ApprovalResolved bool
	Approved         bool
	Active           bool
	Suspended        bool
	SuspensionEnd    int64
	Revoked          bool
	RevokeReason     string
}

// Terms holds the usage constraints attached one-to-one to a license.
type Terms struct {
	UsageCap            uint64 // 0 = unlimited
	UsageCount          uint64
	Attribution         bool
	ModificationAllowed bool
	NoticePeriod        int64
}

// RoyaltySchedule tracks royalty accrual for an active license.
type RoyaltySchedule struct {
	TotalReported   uint64
	TotalPaid       uint64
	PaymentInterval int64
	NextDue         int64
}

// Offer carries the parameters of a new license offer.
type Offer struct {
	Asset          ownership.AssetID
	Licensee       ownership.Address
	Type           Type
	UsageRights    string
	Territory      string
	Fee            uint64
	RoyaltyRateBps uint64
	Duration       int64 // seconds; 0 = perpetual
	Currency       string
	TermsRef       string
	MetadataRef    string
	Terms          Terms
}
