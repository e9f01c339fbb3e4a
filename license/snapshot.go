package license

import "github.com/coiporg/libcoip-go/ownership"

// RegistryState exports the registry's full state for persistence.
type RegistryState struct {
	Licenses  map[string]License
	Terms     map[string]Terms
	Royalties map[string]RoyaltySchedule
	Proposals map[string]Proposal
}

// Snapshot exports the registry state.
func (r *Registry) Snapshot() RegistryState {
	s := RegistryState{
		Licenses:  make(map[string]License, len(r.licenses)),
		Terms:     make(map[string]Terms, len(r.terms)),
		Royalties: make(map[string]RoyaltySchedule, len(r.royalties)),
		Proposals: make(map[string]Proposal, len(r.proposals)),
	}
	for id, lic := range r.licenses {
		s.Licenses[id] = *lic
	}
	for id, t := range r.terms {
		s.Terms[id] = *t
	}
	for id, roy := range r.royalties {
		s.Royalties[id] = *roy
	}
	for id, p := range r.proposals {
		cp := *p
		voted := make(map[ownership.Address]bool, len(p.Voted))
		for addr, v := range p.Voted {
			voted[addr] = v
		}
		cp.Voted = voted
		s.Proposals[id] = cp
	}
	return s
}

// Restore replaces the registry state with a previously exported snapshot.
func (r *Registry) Restore(s RegistryState) {
	r.licenses = make(map[string]*License, len(s.Licenses))
	r.terms = make(map[string]*Terms, len(s.Terms))
	r.royalties = make(map[string]*RoyaltySchedule, len(s.Royalties))
	r.proposals = make(map[string]*Proposal, len(s.Proposals))
	for id, lic := range s.Licenses {
		cp := lic
		r.licenses[id] = &cp
	}
	for id, t := range s.Terms {
		cp := t
		r.terms[id] = &cp
	}
	for id, roy := range s.Royalties {
		cp := roy
		r.royalties[id] = &cp
	}
	for id, p := range s.Proposals {
		cp := p
		if cp.Voted == nil {
			cp.Voted = make(map[ownership.Address]bool)
		}
		r.proposals[id] = &cp
	}
}
