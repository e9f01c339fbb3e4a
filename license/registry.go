package license

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/coiporg/libcoip-go/config"
	"github.com/coiporg/libcoip-go/ownership"
	"github.com/coiporg/libcoip-go/revenue"
	"github.com/coiporg/libcoip-go/token"
)

// QuorumSource supplies the license-approval quorum fraction for an asset.
// The governance engine implements this; the registry falls back to the
// configured default when no source is set.
type QuorumSource interface {
	LicenseQuorumBps(asset ownership.AssetID) uint64
}

// Registry is the license registry for all assets.
type Registry struct {
	owners   *ownership.Ledger
	pool     *revenue.Pool
	payments token.Resolver
	params   config.Params
	quorums  QuorumSource

	licenses  map[string]*License
	terms     map[string]*Terms
	royalties map[string]*RoyaltySchedule
	proposals map[string]*Proposal
}

// NewRegistry creates an empty license registry.
func NewRegistry(owners *ownership.Ledger, pool *revenue.Pool, payments token.Resolver, params config.Params) *Registry {
	return &Registry{
		owners:    owners,
		pool:      pool,
		payments:  payments,
		params:    params,
		licenses:  make(map[string]*License),
		terms:     make(map[string]*Terms),
		royalties: make(map[string]*RoyaltySchedule),
		proposals: make(map[string]*Proposal),
	}
}

// SetQuorumSource wires the governance settings into the proposal flow.
func (r *Registry) SetQuorumSource(qs QuorumSource) { r.quorums = qs }

// CreateOffer registers a new license offer in pending state. The caller
// must be an owner of the asset and becomes the licensor. Exclusive and
// sole-exclusive types, and fees above the approval threshold, require
// owner approval; all other offers are self-approved.
func (r *Registry) CreateOffer(caller ownership.Address, offer Offer, now int64) (string, error) {
	if !r.owners.IsOwner(offer.Asset, caller) {
		return "", fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	if offer.Licensee == "" {
		return "", ErrEmptyLicensee
	}
	if offer.RoyaltyRateBps > 10000 {
		return "", fmt.Errorf("%w: %d", ErrRoyaltyRateTooHigh, offer.RoyaltyRateBps)
	}

	requiresApproval := offer.Type.needsApproval() || offer.Fee > r.params.ApprovalFeeThreshold

	var endTime int64
	if offer.Duration > 0 {
		endTime = now + offer.Duration
	}

	lic := &License{
		ID:               uuid.New().String(),
		Asset:            offer.Asset,
		Licensor:         caller,
		Licensee:         offer.Licensee,
		Type:             offer.Type,
		UsageRights:      offer.UsageRights,
		Territory:        offer.Territory,
		Fee:              offer.Fee,
		RoyaltyRateBps:   offer.RoyaltyRateBps,
		StartTime:        now,
		EndTime:          endTime,
		Currency:         offer.Currency,
		TermsRef:         offer.TermsRef,
		TermsHash:        ownership.HashText(offer.TermsRef),
		MetadataRef:      offer.MetadataRef,
		CreatedAt:        now,
		RequiresApproval: requiresApproval,
		ApprovalResolved: !requiresApproval,
		Approved:         !requiresApproval,
	}
	r.licenses[lic.ID] = lic

	terms := offer.Terms
	r.terms[lic.ID] = &terms
	return lic.ID, nil
}

// Approve resolves a pending approval. Only valid while approval is
// required and unresolved; the caller must be an owner of the asset.
func (r *Registry) Approve(caller ownership.Address, id string, approve bool) error {
	lic, ok := r.licenses[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !lic.RequiresApproval || lic.ApprovalResolved {
		return ErrApprovalNotPending
	}
	if !r.owners.IsOwner(lic.Asset, caller) {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	lic.ApprovalResolved = true
	lic.Approved = approve
	return nil
}

// Execute activates an approved license. The caller must be the licensee.
// A non-zero fee is pulled from the licensee and routed pro-rata to the
// asset's owners. Activation creates the royalty schedule with the first
// due date one payment interval out.
func (r *Registry) Execute(caller ownership.Address, id string, now int64) error {
	lic, ok := r.licenses[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if caller != lic.Licensee {
		return fmt.Errorf("%w: %s", ErrNotLicensee, caller)
	}
	if lic.Revoked {
		return ErrRevoked
	}
	if !lic.Approved {
		return ErrNotApproved
	}
	if lic.Active {
		return ErrAlreadyActive
	}
	if lic.Suspended {
		return ErrSuspendedState
	}
	if lic.EndTime > 0 && now > lic.EndTime {
		return ErrExpired
	}

	if lic.Fee > 0 {
		pay, err := r.payments.Ledger(lic.Currency)
		if err != nil {
			return err
		}
		if err := pay.TransferFrom(lic.Licensee, lic.Fee); err != nil {
			return err
		}
		if err := r.pool.RouteFee(lic.Asset, lic.Currency, lic.Fee); err != nil {
			return err
		}
	}

	lic.Active = true
	r.royalties[id] = &RoyaltySchedule{
		PaymentInterval: r.params.RoyaltyInterval,
		NextDue:         now + r.params.RoyaltyInterval,
	}
	return nil
}

// Revoke permanently deactivates an active license. Owner-gated; not
// reversible through this registry.
func (r *Registry) Revoke(caller ownership.Address, id, reason string) error {
	lic, ok := r.licenses[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !r.owners.IsOwner(lic.Asset, caller) {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	if !lic.Active {
		return ErrNotActive
	}
	lic.Active = false
	lic.Revoked = true
	lic.RevokeReason = reason
	return nil
}

// Suspend pauses an active license for duration seconds. Owner-gated.
func (r *Registry) Suspend(caller ownership.Address, id string, duration, now int64) error {
	lic, ok := r.licenses[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !r.owners.IsOwner(lic.Asset, caller) {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	return r.suspend(lic, duration, now)
}

// suspend applies the suspension; shared with emergency execution, which
// carries its own authority.
func (r *Registry) suspend(lic *License, duration, now int64) error {
	if duration <= 0 {
		return ErrZeroDuration
	}
	if !lic.Active {
		return ErrNotActive
	}
	lic.Active = false
	lic.Suspended = true
	lic.SuspensionEnd = now + duration
	return nil
}

// EmergencySuspend suspends a license on behalf of a passed emergency
// proposal. The vote's authority is scoped to its asset, so the license
// must belong to it.
func (r *Registry) EmergencySuspend(asset ownership.AssetID, id string, duration, now int64) error {
	lic, ok := r.licenses[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if lic.Asset != asset {
		return fmt.Errorf("%w: %s", ErrWrongAsset, id)
	}
	return r.suspend(lic, duration, now)
}

// EmergencySuspendAll suspends every currently active license of the asset
// and returns the IDs it touched.
func (r *Registry) EmergencySuspendAll(asset ownership.AssetID, duration, now int64) ([]string, error) {
	if duration <= 0 {
		return nil, ErrZeroDuration
	}
	var suspended []string
	for id, lic := range r.licenses {
		if lic.Asset != asset || !lic.Active {
			continue
		}
		lic.Active = false
		lic.Suspended = true
		lic.SuspensionEnd = now + duration
		suspended = append(suspended, id)
	}
	return suspended, nil
}

// CheckAndReactivate reactivates a suspended license once its suspension
// window has elapsed. Permissionless.
func (r *Registry) CheckAndReactivate(id string, now int64) error {
	lic, ok := r.licenses[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !lic.Suspended {
		return ErrNotSuspended
	}
	if now < lic.SuspensionEnd {
		return fmt.Errorf("%w: until %d", ErrSuspensionActive, lic.SuspensionEnd)
	}
	lic.Suspended = false
	lic.SuspensionEnd = 0
	lic.Active = true
	return nil
}

// ManualReactivate lifts a suspension before its window elapses. Owner-gated.
func (r *Registry) ManualReactivate(caller ownership.Address, id string) error {
	lic, ok := r.licenses[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !r.owners.IsOwner(lic.Asset, caller) {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	if !lic.Suspended {
		return ErrNotSuspended
	}
	lic.Suspended = false
	lic.SuspensionEnd = 0
	lic.Active = true
	return nil
}

// Transfer hands the license to a new licensee. Caller must be the current
// licensee and the license must be active. The royalty schedule follows the
// license.
func (r *Registry) Transfer(caller ownership.Address, id string, newLicensee ownership.Address) error {
	lic, ok := r.licenses[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if caller != lic.Licensee {
		return fmt.Errorf("%w: %s", ErrNotLicensee, caller)
	}
	if !lic.Active {
		return ErrNotActive
	}
	if newLicensee == "" {
		return ErrEmptyLicensee
	}
	if newLicensee == lic.Licensee {
		return ErrSameLicensee
	}
	lic.Licensee = newLicensee
	return nil
}

// Status derives the license's lifecycle state at time now.
func (r *Registry) Status(id string, now int64) (Status, error) {
	lic, ok := r.licenses[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	switch {
	case lic.RequiresApproval && !lic.ApprovalResolved:
		return StatusPendingApproval, nil
	case lic.Suspended && now < lic.SuspensionEnd:
		return StatusSuspended, nil
	case lic.Suspended:
		return StatusSuspensionExpired, nil
	case !lic.Active:
		return StatusInactive, nil
	case lic.EndTime > 0 && now > lic.EndTime:
		return StatusExpired, nil
	default:
		return StatusActive, nil
	}
}

// Get returns a copy of the license record.
func (r *Registry) Get(id string) (License, error) {
	lic, ok := r.licenses[id]
	if !ok {
		return License{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *lic, nil
}

// GetTerms returns a copy of the license's usage terms.
func (r *Registry) GetTerms(id string) (Terms, error) {
	t, ok := r.terms[id]
	if !ok {
		return Terms{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *t, nil
}

// ByAsset lists the IDs of all licenses registered against an asset.
func (r *Registry) ByAsset(asset ownership.AssetID) []string {
	var out []string
	for id, lic := range r.licenses {
		if lic.Asset == asset {
			out = append(out, id)
		}
	}
	return out
}
