// Package ledger is the aggregate business-logic layer: it composes the
// ownership ledger, revenue pool, license registry, and governance engine
// behind one set of public entry points.
//
// Every mutating entry point passes through a single pre-call check that
// rejects reentrant calls and honors the global pause flag. The subsystems
// themselves carry no such guard, so internal cross-subsystem calls (a
// license fee routed into the revenue pool, an emergency proposal suspending
// a license) never trip it. The aggregate is not safe for concurrent use;
// the in-flight marker detects reentry, it is not a lock.
package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/coiporg/libcoip-go/config"
	"github.com/coiporg/libcoip-go/governance"
	"github.com/coiporg/libcoip-go/license"
	"github.com/coiporg/libcoip-go/ownership"
	"github.com/coiporg/libcoip-go/revenue"
	"github.com/coiporg/libcoip-go/token"
)

// Ledger is the collective-asset engine.
type Ledger struct {
	owners   *ownership.Ledger
	pool     *revenue.Pool
	licenses *license.Registry
	gov      *governance.Engine

	payments token.Resolver
	minter   token.AssetMinter
	params   config.Params

	// Clock supplies the current Unix time for every deadline and window
	// check. Overridable in tests.
	Clock func() int64

	inflight bool
	paused   bool
}

// New constructs an engine with empty state. payments resolves currency
// codes to payment ledgers and must not be nil. minter may be nil; asset
// registration and supply mints then keep only the internal record.
func New(payments token.Resolver, minter token.AssetMinter, params config.Params) (*Ledger, error) {
	if payments == nil {
		return nil, ErrNilResolver
	}
	if err := config.ValidateParams(params); err != nil {
		return nil, err
	}

	l := &Ledger{
		payments: payments,
		minter:   minter,
		params:   params,
		Clock:    func() int64 { return time.Now().Unix() },
	}
	l.owners = ownership.NewLedger()
	l.pool = revenue.NewPool(l.owners, payments)
	l.licenses = license.NewRegistry(l.owners, l.pool, payments, params)
	l.gov = governance.NewEngine(l.owners, l.licenses, l.pool, l, params)
	l.licenses.SetQuorumSource(l.gov)
	return l, nil
}

// begin is the uniform pre-call check for mutating entry points. It sets
// the in-flight marker and returns the release func, or rejects the call.
func (l *Ledger) begin() (func(), error) {
	if l.inflight {
		return nil, ErrReentrantCall
	}
	if l.paused {
		return nil, ErrSystemPaused
	}
	l.inflight = true
	return func() { l.inflight = false }, nil
}

// SetPaused sets or lifts the global pause. Implements governance.Pauser;
// the emergency-pause proposal path calls it with the in-flight marker held,
// so it deliberately bypasses begin. Lifting the pause is the administrative
// action of the embedder.
func (l *Ledger) SetPaused(paused bool) { l.paused = paused }

// Paused reports the global pause flag.
func (l *Ledger) Paused() bool { return l.paused }

var _ governance.Pauser = (*Ledger)(nil)

// Subsystem accessors expose the read-only query surface. Callers must not
// mutate through them; all writes go through the entry points below.

// Ownership returns the ownership ledger.
func (l *Ledger) Ownership() *ownership.Ledger { return l.owners }

// Revenue returns the revenue pool.
func (l *Ledger) Revenue() *revenue.Pool { return l.pool }

// Licenses returns the license registry.
func (l *Ledger) Licenses() *license.Registry { return l.licenses }

// Governance returns the governance engine.
func (l *Ledger) Governance() *governance.Engine { return l.gov }

// mintProRata mints amount of the asset's tokens across the current owner
// split, floor(amount * pct / 100) each. No-op without a minter.
func (l *Ledger) mintProRata(asset ownership.AssetID, amount uint64) error {
	if l.minter == nil || amount == 0 {
		return nil
	}
	for _, owner := range l.owners.Owners(asset) {
		share := amount * l.owners.Percentage(asset, owner) / 100
		if share == 0 {
			continue
		}
		if err := l.minter.Mint(owner, asset, share); err != nil {
			return err
		}
	}
	return nil
}

// RegisterAsset creates a new asset with its initial owner split and mints
// the nominal supply pro-rata. The owner set must pass validation before
// anything is recorded.
func (l *Ledger) RegisterAsset(assetType, metadataRef string, totalSupply uint64, owners []ownership.Address, percentages, weights []uint64) (ownership.AssetID, error) {
	done, err := l.begin()
	if err != nil {
		return "", err
	}
	defer done()

	if err := ownership.ValidateOwnerSet(owners, percentages, weights); err != nil {
		return "", err
	}

	id := ownership.AssetID(uuid.New().String())
	asset := ownership.Asset{
		ID:               id,
		Type:             assetType,
		MetadataRef:      metadataRef,
		MetadataHash:     ownership.HashText(metadataRef),
		TotalSupply:      totalSupply,
		CreatedAt:        l.Clock(),
		ComplianceStatus: "pending",
	}
	if err := l.owners.CreateAsset(asset); err != nil {
		return "", err
	}
	if err := l.owners.RegisterOwnership(id, owners, percentages, weights); err != nil {
		return "", err
	}
	if err := l.mintProRata(id, totalSupply); err != nil {
		return "", err
	}
	return id, nil
}

// MintAdditionalSupply mints extra supply pro-rata across the current owner
// split and raises the recorded total. Owner-gated.
func (l *Ledger) MintAdditionalSupply(caller ownership.Address, asset ownership.AssetID, amount uint64) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()

	if !l.owners.IsOwner(asset, caller) {
		return ownership.ErrNotOwner
	}
	if err := l.owners.AddSupply(asset, amount); err != nil {
		return err
	}
	return l.mintProRata(asset, amount)
}

// TransferShare moves percentage points of the caller's economic share to
// the recipient; governance weight moves proportionally.
func (l *Ledger) TransferShare(caller ownership.Address, asset ownership.AssetID, to ownership.Address, percentage uint64) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.owners.TransferShare(asset, caller, to, percentage)
}

// UpdateAssetMetadata replaces the asset's metadata reference and re-derives
// its hash. Owner-gated; the governance path is ExecuteAssetManagement.
func (l *Ledger) UpdateAssetMetadata(caller ownership.Address, asset ownership.AssetID, metadataRef string) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()

	if !l.owners.IsOwner(asset, caller) {
		return ownership.ErrNotOwner
	}
	return l.owners.SetMetadata(asset, metadataRef, ownership.HashText(metadataRef))
}

// SetComplianceStatus updates the asset's compliance tag. Owner-gated.
func (l *Ledger) SetComplianceStatus(caller ownership.Address, asset ownership.AssetID, status string) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()

	if !l.owners.IsOwner(asset, caller) {
		return ownership.ErrNotOwner
	}
	return l.owners.SetComplianceStatus(asset, status)
}

// ReceiveRevenue pulls amount of currency from the caller into the asset's
// revenue account.
func (l *Ledger) ReceiveRevenue(caller ownership.Address, asset ownership.AssetID, currency string, amount uint64) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.pool.Receive(caller, asset, currency, amount)
}

// DistributeRevenue splits amount of accumulated revenue pro-rata into the
// owners' pending balances.
func (l *Ledger) DistributeRevenue(caller ownership.Address, asset ownership.AssetID, currency string, amount uint64) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.pool.Distribute(caller, asset, currency, amount)
}

// DistributeAllRevenue distributes the entire accumulated balance.
func (l *Ledger) DistributeAllRevenue(caller ownership.Address, asset ownership.AssetID, currency string) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.pool.DistributeAll(caller, asset, currency)
}

// WithdrawPendingRevenue pays out the caller's entire pending balance and
// returns the amount paid.
func (l *Ledger) WithdrawPendingRevenue(caller ownership.Address, asset ownership.AssetID, currency string) (uint64, error) {
	done, err := l.begin()
	if err != nil {
		return 0, err
	}
	defer done()
	return l.pool.Withdraw(caller, asset, currency)
}

// SetMinimumDistribution sets the dust-prevention distribution floor.
func (l *Ledger) SetMinimumDistribution(caller ownership.Address, asset ownership.AssetID, currency string, amount uint64) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.pool.SetMinimumDistribution(caller, asset, currency, amount)
}

// CreateLicenseOffer registers a new license offer and returns its ID.
func (l *Ledger) CreateLicenseOffer(caller ownership.Address, offer license.Offer) (string, error) {
	done, err := l.begin()
	if err != nil {
		return "", err
	}
	defer done()
	return l.licenses.CreateOffer(caller, offer, l.Clock())
}

// ApproveLicense resolves a pending license approval, positively or
// negatively.
func (l *Ledger) ApproveLicense(caller ownership.Address, id string, approve bool) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.licenses.Approve(caller, id, approve)
}

// ExecuteLicense activates an approved license as the licensee, paying the
// fee if one is set.
func (l *Ledger) ExecuteLicense(caller ownership.Address, id string) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.licenses.Execute(caller, id, l.Clock())
}

// RevokeLicense permanently deactivates an active license.
func (l *Ledger) RevokeLicense(caller ownership.Address, id, reason string) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.licenses.Revoke(caller, id, reason)
}

// SuspendLicense pauses an active license for duration seconds.
func (l *Ledger) SuspendLicense(caller ownership.Address, id string, duration int64) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.licenses.Suspend(caller, id, duration, l.Clock())
}

// CheckAndReactivateLicense reactivates a suspended license once its window
// has elapsed. Permissionless.
func (l *Ledger) CheckAndReactivateLicense(id string) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.licenses.CheckAndReactivate(id, l.Clock())
}

// ReactivateLicense lifts a suspension before its window elapses. Owner-gated.
func (l *Ledger) ReactivateLicense(caller ownership.Address, id string) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.licenses.ManualReactivate(caller, id)
}

// TransferLicense hands an active license to a new licensee.
func (l *Ledger) TransferLicense(caller ownership.Address, id string, newLicensee ownership.Address) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.licenses.Transfer(caller, id, newLicensee)
}

// ReportUsage records licensee-reported usage and revenue.
func (l *Ledger) ReportUsage(caller ownership.Address, id string, revenueAmount, usageCount uint64) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.licenses.ReportUsage(caller, id, revenueAmount, usageCount, l.Clock())
}

// PayRoyalties pulls a royalty payment from the licensee and routes it
// pro-rata to the asset's owners.
func (l *Ledger) PayRoyalties(caller ownership.Address, id string, amount uint64) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.licenses.PayRoyalties(caller, id, amount, l.Clock())
}

// ProposeLicenseTerms opens an asset-scoped license proposal.
func (l *Ledger) ProposeLicenseTerms(caller ownership.Address, asset ownership.AssetID, bp license.Blueprint, description string) (string, error) {
	done, err := l.begin()
	if err != nil {
		return "", err
	}
	defer done()
	return l.licenses.ProposeTerms(caller, asset, bp, description, l.Clock())
}

// VoteOnLicenseProposal casts the caller's current weight on a license
// proposal.
func (l *Ledger) VoteOnLicenseProposal(caller ownership.Address, id string, inFavor bool) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.licenses.VoteOnProposal(caller, id, inFavor, l.Clock())
}

// ExecuteLicenseProposal creates the proposed license once the vote has
// passed and returns the new license ID.
func (l *Ledger) ExecuteLicenseProposal(id string) (string, error) {
	done, err := l.begin()
	if err != nil {
		return "", err
	}
	defer done()
	return l.licenses.ExecuteProposal(id, l.Clock())
}

// CreateProposal opens a governance proposal and returns its ID.
func (l *Ledger) CreateProposal(caller ownership.Address, asset ownership.AssetID, category governance.Category, payload governance.Payload, votingDuration int64, description string) (string, error) {
	done, err := l.begin()
	if err != nil {
		return "", err
	}
	defer done()
	return l.gov.CreateProposal(caller, asset, category, payload, votingDuration, description, l.Clock())
}

// VoteOnProposal casts the caller's current weight on a governance proposal.
func (l *Ledger) VoteOnProposal(caller ownership.Address, id string, inFavor bool) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.gov.Vote(caller, id, inFavor, l.Clock())
}

// CancelProposal withdraws a proposal before its voting deadline.
// Proposer-gated.
func (l *Ledger) CancelProposal(caller ownership.Address, id string) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.gov.Cancel(caller, id, l.Clock())
}

// ExecuteAssetManagement applies a passed asset-management proposal and
// reports which fields actually changed.
func (l *Ledger) ExecuteAssetManagement(id string) (metadataChanged, complianceChanged bool, err error) {
	done, err := l.begin()
	if err != nil {
		return false, false, err
	}
	defer done()
	return l.gov.ExecuteAssetManagement(id, l.Clock())
}

// ExecuteRevenuePolicy applies a passed revenue-policy proposal.
func (l *Ledger) ExecuteRevenuePolicy(id string) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.gov.ExecuteRevenuePolicy(id, l.Clock())
}

// ExecuteEmergency dispatches a passed emergency proposal. An emergency
// pause takes effect for the next call; the executing call completes.
func (l *Ledger) ExecuteEmergency(id string) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.gov.ExecuteEmergency(id, l.Clock())
}

// SetGovernanceSettings overrides the asset's governance settings.
// Owner-gated.
func (l *Ledger) SetGovernanceSettings(caller ownership.Address, asset ownership.AssetID, s governance.Settings) error {
	done, err := l.begin()
	if err != nil {
		return err
	}
	defer done()
	return l.gov.SetSettings(caller, asset, s)
}
