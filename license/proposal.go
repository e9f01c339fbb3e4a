package license

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/coiporg/libcoip-go/ownership"
)

// Blueprint describes the license a proposal will create when it passes.
type Blueprint struct {
	Licensee       ownership.Address
	Type           Type
	UsageRights    string
	Territory      string
	Fee            uint64
	RoyaltyRateBps uint64
	Duration       int64 // seconds; 0 = perpetual
	Currency       string
	TermsRef       string
	Terms          Terms
}

// Proposal is an asset-scoped license proposal: a weighted vote that mints
// a new license from its blueprint once it passes a simple majority with
// quorum inside the voting window, then executes within the execution
// window. Immutable after creation except for votes and the outcome flags.
type Proposal struct {
	ID          string
	Asset       ownership.AssetID
	Proposer    ownership.Address
	Blueprint   Blueprint
	Description string

	VotesFor          uint64
	VotesAgainst      uint64
	TotalWeight       uint64 // snapshot at creation; the quorum denominator
	Quorum            uint64
	VotingDeadline    int64
	ExecutionDeadline int64

	Executed       bool
	Cancelled      bool
	Voted          map[ownership.Address]bool
	CreatedLicense string
}

// ProposeTerms opens a license proposal. The caller must be an owner of the
// asset. The quorum denominator snapshots the current total governance
// weight; individual votes later use each voter's weight at voting time.
func (r *Registry) ProposeTerms(caller ownership.Address, asset ownership.AssetID, bp Blueprint, description string, now int64) (string, error) {
	if !r.owners.IsOwner(asset, caller) {
		return "", fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	if bp.Licensee == "" {
		return "", ErrEmptyLicensee
	}
	if bp.RoyaltyRateBps > 10000 {
		return "", fmt.Errorf("%w: %d", ErrRoyaltyRateTooHigh, bp.RoyaltyRateBps)
	}

	total := r.owners.TotalWeight(asset)
	quorumBps := r.params.LicenseQuorumBps
	if r.quorums != nil {
		quorumBps = r.quorums.LicenseQuorumBps(asset)
	}

	p := &Proposal{
		ID:                uuid.New().String(),
		Asset:             asset,
		Proposer:          caller,
		Blueprint:         bp,
		Description:       description,
		TotalWeight:       total,
		Quorum:            total * quorumBps / 10000,
		VotingDeadline:    now + r.params.LicenseVotingWindow,
		ExecutionDeadline: now + r.params.LicenseVotingWindow + r.params.LicenseExecutionWindow,
		Voted:             make(map[ownership.Address]bool),
	}
	r.proposals[p.ID] = p
	return p.ID, nil
}

// VoteOnProposal casts the caller's current governance weight for or
// against the proposal. One vote per owner, strictly before the deadline.
func (r *Registry) VoteOnProposal(caller ownership.Address, id string, inFavor bool, now int64) error {
	p, ok := r.proposals[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrProposalNotFound, id)
	}
	if p.Executed || p.Cancelled {
		return ErrProposalClosed
	}
	if !r.owners.IsOwner(p.Asset, caller) {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	if p.Voted[caller] {
		return fmt.Errorf("%w: %s", ErrAlreadyVoted, caller)
	}
	if now >= p.VotingDeadline {
		return ErrVotingClosed
	}

	weight := r.owners.Weight(p.Asset, caller)
	if inFavor {
		p.VotesFor += weight
	} else {
		p.VotesAgainst += weight
	}
	p.Voted[caller] = true
	return nil
}

// ExecuteProposal creates the proposed license once the vote has passed.
// Executable strictly after the voting deadline and at or before the
// execution deadline, with quorum reached and a simple majority in favor.
// The created license is approval-resolved by the vote itself; activation
// still requires the licensee to execute it.
func (r *Registry) ExecuteProposal(id string, now int64) (string, error) {
	p, ok := r.proposals[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrProposalNotFound, id)
	}
	if p.Executed || p.Cancelled {
		return "", ErrProposalClosed
	}
	if now <= p.VotingDeadline {
		return "", ErrVotingOpen
	}
	if now > p.ExecutionDeadline {
		return "", ErrExecutionWindowPassed
	}
	if p.VotesFor+p.VotesAgainst < p.Quorum || p.VotesFor <= p.VotesAgainst {
		return "", fmt.Errorf("%w: for=%d against=%d quorum=%d", ErrProposalRejected, p.VotesFor, p.VotesAgainst, p.Quorum)
	}

	bp := p.Blueprint
	var endTime int64
	if bp.Duration > 0 {
		endTime = now + bp.Duration
	}
	lic := &License{
		ID:             uuid.New().String(),
		Asset:          p.Asset,
		Licensor:       p.Proposer,
		Licensee:       bp.Licensee,
		Type:           bp.Type,
		UsageRights:    bp.UsageRights,
		Territory:      bp.Territory,
		Fee:            bp.Fee,
		RoyaltyRateBps: bp.RoyaltyRateBps,
		StartTime:      now,
		EndTime:        endTime,
		Currency:       bp.Currency,
		TermsRef:       bp.TermsRef,
		TermsHash:      ownership.HashText(bp.TermsRef),
		CreatedAt:      now,
		// The collective vote is the approval.
		RequiresApproval: bp.Type.needsApproval() || bp.Fee > r.params.ApprovalFeeThreshold,
		ApprovalResolved: true,
		Approved:         true,
	}
	r.licenses[lic.ID] = lic
	terms := bp.Terms
	r.terms[lic.ID] = &terms

	p.Executed = true
	p.CreatedLicense = lic.ID
	return lic.ID, nil
}

// GetProposal returns a copy of the proposal (without the voter set).
func (r *Registry) GetProposal(id string) (Proposal, error) {
	p, ok := r.proposals[id]
	if !ok {
		return Proposal{}, fmt.Errorf("%w: %s", ErrProposalNotFound, id)
	}
	out := *p
	out.Voted = nil
	return out, nil
}
