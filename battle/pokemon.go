package battle

import (
	"calcdex/dex"
	"calcdex/mechanics"
	"calcdex/stats"
)

// Pokemon is one creature in a player's party (or standalone in sandbox
// mode). Fields with the dual revealed/dirty pattern use Overridable; derived
// fields (AbilityToggled, AutoBoostMap, SpreadStats) are recomputed by the
// orchestrator whenever their inputs change.
type Pokemon struct {
	CalcdexID string    `json:"calcdexId"`
	Source    Source    `json:"source,omitempty"`
	PlayerKey PlayerKey `json:"playerKey,omitempty"`
	Slot      int       `json:"slot"`

	SpeciesForme     string `json:"speciesForme"`
	TransformedForme string `json:"transformedForme,omitempty"`
	Level            int    `json:"level"`

	Types         Overridable[[]dex.Type] `json:"types"`
	TeraType      Overridable[dex.Type]   `json:"teraType"`
	Terastallized bool                    `json:"terastallized,omitempty"`

	Ability     Overridable[string] `json:"ability"`
	AbilityPool []string            `json:"abilityPool,omitempty"`
	Item        Overridable[string] `json:"item"`

	Nature    stats.Nature             `json:"nature,omitempty"`
	IVs       stats.Table              `json:"ivs"`
	EVs       stats.Table              `json:"evs"`
	BaseStats Overridable[stats.Table] `json:"baseStats"`

	HP     Overridable[int]    `json:"hp"`
	MaxHP  int                 `json:"maxHp"`
	Status Overridable[string] `json:"status"`

	FaintCounter Overridable[int]          `json:"faintCounter"`
	Boosts       Overridable[stats.Boosts] `json:"boosts"`
	BoostedStat  Overridable[string]       `json:"boostedStat"`

	Moves            []string                          `json:"moves,omitempty"`
	ServerMoves      []string                          `json:"serverMoves,omitempty"`
	RevealedMoves    []string                          `json:"revealedMoves,omitempty"`
	TransformedMoves []string                          `json:"transformedMoves,omitempty"`
	AltMoves         []string                          `json:"altMoves,omitempty"`
	MoveOverrides    map[string]mechanics.MoveOverride `json:"moveOverrides,omitempty"`
	CritOverride     bool                              `json:"critOverride,omitempty"`

	PresetID     string   `json:"presetId,omitempty"`
	PresetSource Source   `json:"presetSource,omitempty"`
	Presets      []Preset `json:"presets,omitempty"`

	AbilityToggled bool                       `json:"abilityToggled"`
	AutoBoostMap   map[string]AutoBoostEffect `json:"autoBoostMap,omitempty"`
	SpreadStats    stats.Table                `json:"spreadStats"`

	ShowDetails bool `json:"showDetails,omitempty"`
}

// Clone deep-copies the Pokémon.
func (p Pokemon) Clone() Pokemon {
	cloned := p
	cloned.Types = p.Types.CloneWith(cloneTypes)
	cloned.TeraType = p.TeraType.CloneWith(nil)
	cloned.Ability = p.Ability.CloneWith(nil)
	cloned.Item = p.Item.CloneWith(nil)
	cloned.BaseStats = p.BaseStats.CloneWith(nil)
	cloned.HP = p.HP.CloneWith(nil)
	cloned.Status = p.Status.CloneWith(nil)
	cloned.FaintCounter = p.FaintCounter.CloneWith(nil)
	cloned.Boosts = p.Boosts.CloneWith(nil)
	cloned.BoostedStat = p.BoostedStat.CloneWith(nil)
	cloned.AbilityPool = append([]string(nil), p.AbilityPool...)
	cloned.Moves = append([]string(nil), p.Moves...)
	cloned.ServerMoves = append([]string(nil), p.ServerMoves...)
	cloned.RevealedMoves = append([]string(nil), p.RevealedMoves...)
	cloned.TransformedMoves = append([]string(nil), p.TransformedMoves...)
	cloned.AltMoves = append([]string(nil), p.AltMoves...)
	if p.MoveOverrides != nil {
		cloned.MoveOverrides = make(map[string]mechanics.MoveOverride, len(p.MoveOverrides))
		for k, v := range p.MoveOverrides {
			cloned.MoveOverrides[k] = v
		}
	}
	if p.AutoBoostMap != nil {
		cloned.AutoBoostMap = make(map[string]AutoBoostEffect, len(p.AutoBoostMap))
		for k, v := range p.AutoBoostMap {
			cloned.AutoBoostMap[k] = v
		}
	}
	cloned.Presets = append([]Preset(nil), p.Presets...)
	return cloned
}

func cloneTypes(types []dex.Type) []dex.Type {
	return append([]dex.Type(nil), types...)
}

// ClonePokemonList deep-copies a party array.
func ClonePokemonList(list []Pokemon) []Pokemon {
	if list == nil {
		return nil
	}
	cloned := make([]Pokemon, len(list))
	for i := range list {
		cloned[i] = list[i].Clone()
	}
	return cloned
}

// EffectiveForme returns the forme used for lookups: the transformed forme
// when the Pokémon has transformed, the species forme otherwise.
func (p Pokemon) EffectiveForme() string {
	if p.TransformedForme != "" {
		return p.TransformedForme
	}
	return p.SpeciesForme
}

// FaintedAllies counts how many of the Pokémon's teammates have fainted, for
// Supreme Overlord style effects; it reads the effective faint counter.
func (p Pokemon) FaintedAllies() int {
	return p.FaintCounter.Effective()
}

// Snapshot projects the narrow view the mechanics evaluators consume.
func (p Pokemon) Snapshot() mechanics.Snapshot {
	return mechanics.Snapshot{
		SpeciesForme:  p.EffectiveForme(),
		Ability:       p.Ability.Effective(),
		Item:          p.Item.Effective(),
		Types:         p.Types.Effective(),
		TeraType:      p.TeraType.Effective(),
		Terastallized: p.Terastallized,
		HP:            p.HP.Effective(),
		MaxHP:         p.MaxHP,
		Status:        p.Status.Effective(),
		Boosts:        p.Boosts.Effective(),
		Stats:         p.SpreadStats,
		Moves:         append([]string(nil), p.Moves...),
		Slot:          p.Slot,
		FaintedAllies: p.FaintedAllies(),
		CritOverride:  p.CritOverride,
	}
}

// RecalcSpreadStats recomputes the derived stat table from the current base
// stats, spread, and level. Legacy generations sanitize IVs first so the
// shared special stat and parity HP DV stay consistent.
func (p *Pokemon) RecalcSpreadStats(gen int) {
	if dex.LegacyGen(gen) {
		p.IVs = stats.LegacySanitizeIVs(p.IVs)
	}
	nature := p.Nature
	if dex.LegacyGen(gen) {
		nature = ""
	}
	base := p.BaseStats.Effective()
	p.SpreadStats = stats.SpreadStats(gen, base, p.IVs, p.EVs, p.Level, nature)
	p.MaxHP = p.SpreadStats[stats.HP]
}
