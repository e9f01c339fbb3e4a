package governance

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/coiporg/libcoip-go/config"
	"github.com/coiporg/libcoip-go/license"
	"github.com/coiporg/libcoip-go/ownership"
	"github.com/coiporg/libcoip-go/revenue"
)

// Pauser controls the global pause flag. The ledger aggregate implements it.
type Pauser interface {
	SetPaused(paused bool)
}

// Engine is the governance engine for all assets.
type Engine struct {
	owners   *ownership.Ledger
	licenses *license.Registry
	pool     *revenue.Pool
	pauser   Pauser
	params   config.Params

	proposals map[string]*Proposal
	settings  map[ownership.AssetID]Settings
}

// NewEngine creates a governance engine. pauser may be nil if the embedder
// handles pausing itself; emergency pause proposals then fail at execution.
func NewEngine(owners *ownership.Ledger, licenses *license.Registry, pool *revenue.Pool, pauser Pauser, params config.Params) *Engine {
	return &Engine{
		owners:    owners,
		licenses:  licenses,
		pool:      pool,
		pauser:    pauser,
		params:    params,
		proposals: make(map[string]*Proposal),
		settings:  make(map[ownership.AssetID]Settings),
	}
}

// defaultSettings derives the default per-asset settings from the engine
// parameters.
func (e *Engine) defaultSettings() Settings {
	return Settings{
		DefaultQuorumBps:        e.params.DefaultQuorumBps,
		EmergencyQuorumBps:      e.params.EmergencyQuorumBps,
		LicenseQuorumBps:        e.params.LicenseQuorumBps,
		VotingDuration:          e.params.DefaultVotingDuration,
		EmergencyVotingDuration: e.params.EmergencyVotingDuration,
		ExecutionDelay:          e.params.ExecutionDelay,
	}
}

// GetSettings returns the asset's governance settings, falling back to the
// defaults when none were set.
func (e *Engine) GetSettings(asset ownership.AssetID) Settings {
	if s, ok := e.settings[asset]; ok {
		return s
	}
	return e.defaultSettings()
}

// SetSettings overrides the asset's governance settings. Owner-gated.
// The emergency quorum must not exceed the default quorum and the execution
// delay must be at least one hour.
func (e *Engine) SetSettings(caller ownership.Address, asset ownership.AssetID, s Settings) error {
	if !e.owners.IsOwner(asset, caller) {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	if s.DefaultQuorumBps > 10000 || s.EmergencyQuorumBps > 10000 || s.LicenseQuorumBps > 10000 {
		return config.ErrQuorumOutOfRange
	}
	if s.EmergencyQuorumBps > s.DefaultQuorumBps {
		return config.ErrEmergencyQuorumTooHigh
	}
	if s.ExecutionDelay < config.MinExecutionDelay {
		return fmt.Errorf("%w: minimum %d seconds", config.ErrExecutionDelayTooShort, config.MinExecutionDelay)
	}
	if s.VotingDuration <= 0 || s.EmergencyVotingDuration <= 0 {
		return config.ErrInvalidVotingDuration
	}
	e.settings[asset] = s
	return nil
}

// LicenseQuorumBps implements license.QuorumSource.
func (e *Engine) LicenseQuorumBps(asset ownership.AssetID) uint64 {
	return e.GetSettings(asset).LicenseQuorumBps
}

var _ license.QuorumSource = (*Engine)(nil)

// validatePayload checks the payload against the category.
func validatePayload(category Category, payload Payload) error {
	set := 0
	if payload.AssetManagement != nil {
		set++
	}
	if payload.RevenuePolicy != nil {
		set++
	}
	if payload.Emergency != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("%w: %d payload fields set", ErrPayloadMismatch, set)
	}

	switch category {
	case CategoryAssetManagement:
		if payload.AssetManagement == nil {
			return ErrPayloadMismatch
		}
	case CategoryRevenuePolicy:
		if payload.RevenuePolicy == nil {
			return ErrPayloadMismatch
		}
		if payload.RevenuePolicy.Currency == "" {
			return ErrEmptyCurrency
		}
	case CategoryEmergency:
		p := payload.Emergency
		if p == nil {
			return ErrPayloadMismatch
		}
		switch p.Action {
		case ActionSuspendLicense:
			if p.LicenseID == "" {
				return ErrMissingLicense
			}
			if p.SuspensionDuration <= 0 {
				return ErrZeroSuspension
			}
		case ActionSuspendAllLicenses:
			if p.SuspensionDuration <= 0 {
				return ErrZeroSuspension
			}
		case ActionPauseSystem:
			// no extra fields
		default:
			return fmt.Errorf("%w: %d", ErrInvalidAction, p.Action)
		}
	default:
		return fmt.Errorf("%w: category %d", ErrPayloadMismatch, category)
	}
	return nil
}

// CreateProposal opens a proposal. The caller must be an owner of the
// asset. votingDuration = 0 selects the category default; emergency
// proposals default to the shorter emergency duration. The quorum
// denominator snapshots the asset's current total governance weight.
func (e *Engine) CreateProposal(caller ownership.Address, asset ownership.AssetID, category Category, payload Payload, votingDuration int64, description string, now int64) (string, error) {
	if !e.owners.IsOwner(asset, caller) {
		return "", fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	if err := validatePayload(category, payload); err != nil {
		return "", err
	}

	settings := e.GetSettings(asset)
	if votingDuration <= 0 {
		if category == CategoryEmergency {
			votingDuration = settings.EmergencyVotingDuration
		} else {
			votingDuration = settings.VotingDuration
		}
	}
	quorumBps := settings.DefaultQuorumBps
	if category == CategoryEmergency {
		quorumBps = settings.EmergencyQuorumBps
	}

	total := e.owners.TotalWeight(asset)
	p := &Proposal{
		ID:                uuid.New().String(),
		Asset:             asset,
		Proposer:          caller,
		Category:          category,
		Payload:           payload,
		Description:       description,
		TotalWeight:       total,
		Quorum:            total * quorumBps / 10000,
		VotingDeadline:    now + votingDuration,
		ExecutionDeadline: now + votingDuration + settings.ExecutionDelay,
		Voted:             make(map[ownership.Address]bool),
	}
	e.proposals[p.ID] = p
	return p.ID, nil
}

// Vote casts the caller's current governance weight for or against the
// proposal. One vote per owner, strictly before the voting deadline.
func (e *Engine) Vote(caller ownership.Address, id string, inFavor bool, now int64) error {
	p, ok := e.proposals[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrProposalNotFound, id)
	}
	if p.Executed || p.Cancelled {
		return ErrProposalClosed
	}
	if !e.owners.IsOwner(p.Asset, caller) {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	if p.Voted[caller] {
		return fmt.Errorf("%w: %s", ErrAlreadyVoted, caller)
	}
	if now >= p.VotingDeadline {
		return ErrVotingClosed
	}

	weight := e.owners.Weight(p.Asset, caller)
	if inFavor {
		p.VotesFor += weight
	} else {
		p.VotesAgainst += weight
	}
	p.Voted[caller] = true
	return nil
}

// Cancel withdraws a proposal before its voting deadline. Proposer-gated.
func (e *Engine) Cancel(caller ownership.Address, id string, now int64) error {
	p, ok := e.proposals[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrProposalNotFound, id)
	}
	if p.Executed || p.Cancelled {
		return ErrProposalClosed
	}
	if caller != p.Proposer {
		return fmt.Errorf("%w: %s", ErrNotProposer, caller)
	}
	if now >= p.VotingDeadline {
		return ErrVotingClosed
	}
	p.Cancelled = true
	return nil
}

// CanExecute reports whether the proposal can execute at time now: not yet
// executed or cancelled, strictly after the voting deadline, at or before
// the execution deadline, quorum reached, and a strict majority in favor.
func (e *Engine) CanExecute(id string, now int64) bool {
	p, ok := e.proposals[id]
	if !ok {
		return false
	}
	return !p.Executed && !p.Cancelled &&
		now > p.VotingDeadline && now <= p.ExecutionDeadline &&
		p.VotesFor+p.VotesAgainst >= p.Quorum &&
		p.VotesFor > p.VotesAgainst
}

// executable fetches the proposal and enforces the execution conditions,
// returning the specific failure reason.
func (e *Engine) executable(id string, category Category, now int64) (*Proposal, error) {
	p, ok := e.proposals[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProposalNotFound, id)
	}
	if p.Category != category {
		return nil, fmt.Errorf("%w: proposal is %s", ErrCategoryMismatch, p.Category)
	}
	if p.Executed || p.Cancelled {
		return nil, ErrProposalClosed
	}
	if now <= p.VotingDeadline {
		return nil, ErrVotingOpen
	}
	if now > p.ExecutionDeadline {
		return nil, ErrExecutionWindowPassed
	}
	if p.VotesFor+p.VotesAgainst < p.Quorum || p.VotesFor <= p.VotesAgainst {
		return nil, fmt.Errorf("%w: for=%d against=%d quorum=%d", ErrProposalRejected, p.VotesFor, p.VotesAgainst, p.Quorum)
	}
	return p, nil
}

// ExecuteAssetManagement applies the metadata and/or compliance changes and
// reports which fields actually changed.
func (e *Engine) ExecuteAssetManagement(id string, now int64) (metadataChanged, complianceChanged bool, err error) {
	p, err := e.executable(id, CategoryAssetManagement, now)
	if err != nil {
		return false, false, err
	}
	payload := p.Payload.AssetManagement

	asset, err := e.owners.Asset(p.Asset)
	if err != nil {
		return false, false, err
	}
	if payload.MetadataRef != "" && payload.MetadataRef != asset.MetadataRef {
		if err := e.owners.SetMetadata(p.Asset, payload.MetadataRef, ownership.HashText(payload.MetadataRef)); err != nil {
			return false, false, err
		}
		metadataChanged = true
	}
	if payload.ComplianceStatus != "" && payload.ComplianceStatus != asset.ComplianceStatus {
		if err := e.owners.SetComplianceStatus(p.Asset, payload.ComplianceStatus); err != nil {
			return false, false, err
		}
		complianceChanged = true
	}
	p.Executed = true
	return metadataChanged, complianceChanged, nil
}

// ExecuteRevenuePolicy applies the new minimum-distribution floor.
func (e *Engine) ExecuteRevenuePolicy(id string, now int64) error {
	p, err := e.executable(id, CategoryRevenuePolicy, now)
	if err != nil {
		return err
	}
	payload := p.Payload.RevenuePolicy
	e.pool.ApplyMinimumDistribution(p.Asset, payload.Currency, payload.MinimumDistribution)
	p.Executed = true
	return nil
}

// ExecuteEmergency dispatches the emergency action: suspend one license,
// suspend every license of the asset, or trip the global pause.
func (e *Engine) ExecuteEmergency(id string, now int64) error {
	p, err := e.executable(id, CategoryEmergency, now)
	if err != nil {
		return err
	}
	payload := p.Payload.Emergency

	switch payload.Action {
	case ActionSuspendLicense:
		if err := e.licenses.EmergencySuspend(p.Asset, payload.LicenseID, payload.SuspensionDuration, now); err != nil {
			return err
		}
	case ActionSuspendAllLicenses:
		if _, err := e.licenses.EmergencySuspendAll(p.Asset, payload.SuspensionDuration, now); err != nil {
			return err
		}
	case ActionPauseSystem:
		if e.pauser == nil {
			return fmt.Errorf("%w: no pause control wired", ErrInvalidAction)
		}
		e.pauser.SetPaused(true)
	default:
		return fmt.Errorf("%w: %d", ErrInvalidAction, payload.Action)
	}
	p.Executed = true
	return nil
}

// GetProposal returns a copy of the proposal (without the voter set).
func (e *Engine) GetProposal(id string) (Proposal, error) {
	p, ok := e.proposals[id]
	if !ok {
		return Proposal{}, fmt.Errorf("%w: %s", ErrProposalNotFound, id)
	}
	out := *p
	out.Voted = nil
	return out, nil
}

// HasVoted reports whether addr already voted on the proposal.
func (e *Engine) HasVoted(id string, addr ownership.Address) bool {
	p, ok := e.proposals[id]
	return ok && p.Voted[addr]
}
