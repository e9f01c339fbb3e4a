package governance

import "github.com/coiporg/libcoip-go/ownership"

// EngineState exports the engine's full state for persistence.
type EngineState struct {
	Proposals map[string]Proposal
	Settings  map[ownership.AssetID]Settings
}

// Snapshot exports the engine state.
func (e *Engine) Snapshot() EngineState {
	s := EngineState{
		Proposals: make(map[string]Proposal, len(e.proposals)),
		Settings:  make(map[ownership.AssetID]Settings, len(e.settings)),
	}
	for id, p := range e.proposals {
		cp := *p
		voted := make(map[ownership.Address]bool, len(p.Voted))
		for addr, v := range p.Voted {
			voted[addr] = v
		}
		cp.Voted = voted
		s.Proposals[id] = cp
	}
	for asset, settings := range e.settings {
		s.Settings[asset] = settings
	}
	return s
}

// Restore replaces the engine state with a previously exported snapshot.
func (e *Engine) Restore(s EngineState) {
	e.proposals = make(map[string]*Proposal, len(s.Proposals))
	e.settings = make(map[ownership.AssetID]Settings, len(s.Settings))
	for id, p := range s.Proposals {
		cp := p
		if cp.Voted == nil {
			cp.Voted = make(map[ownership.Address]bool)
		}
		e.proposals[id] = &cp
	}
	for asset, settings := range s.Settings {
		e.settings[asset] = settings
	}
}
