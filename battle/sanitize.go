package battle

import (
	"calcdex/dex"
	"calcdex/mechanics"
	"calcdex/stats"
)

// SanitizedSpecies is the canonical data merged into a Pokémon's revealed
// fields after a species change. Dirty fields are never touched by the merge.
type SanitizedSpecies struct {
	Types     []dex.Type
	Abilities []string
	BaseStats stats.Table
}

// SanitizePokemon looks up canonical species data for the Pokémon's effective
// forme in the format's generation. A lookup miss returns ok=false and the
// caller leaves the entity untouched.
func SanitizePokemon(speciesForme, format string) (SanitizedSpecies, bool) {
	species, ok := dex.ForFormat(format).Species(speciesForme)
	if !ok {
		return SanitizedSpecies{}, false
	}
	return SanitizedSpecies{
		Types:     species.Types,
		Abilities: species.Abilities,
		BaseStats: species.BaseStats,
	}, true
}

// applySanitizedSpecies merges canonical species data into the revealed slots
// and reconciles overrides that became redundant.
func applySanitizedSpecies(p *Pokemon, sanitized SanitizedSpecies) {
	p.Types.SetRevealed(sanitized.Types, typesEqual)
	p.BaseStats.SetRevealed(sanitized.BaseStats, statTablesEqual)
	p.AbilityPool = append([]string(nil), sanitized.Abilities...)
	if p.Ability.Revealed == "" && len(sanitized.Abilities) > 0 {
		p.Ability.SetRevealed(sanitized.Abilities[0], stringsEqual)
	}
}

// SyncPlayer installs a simulator-reported roster into the aggregate,
// running the full entity sanitizer over every party member: identity and
// slot assignment, canonical species merge, default spread fill, spread-stat
// recomputation, and the derived side resync.
func (s *State) SyncPlayer(key PlayerKey, incoming Player) *Player {
	incoming.Key = key
	incoming.Active = true
	for i := range incoming.Pokemon {
		mon := &incoming.Pokemon[i]
		mon.PlayerKey = key
		mon.Slot = i
		if mon.CalcdexID == "" {
			mon.CalcdexID = NewID()
		}
		if mon.Level <= 0 {
			mon.Level = dex.DefaultLevel(s.Format)
		}
		if sanitized, ok := SanitizePokemon(mon.EffectiveForme(), s.Format); ok {
			applySanitizedSpecies(mon, sanitized)
		}
		if mon.IVs == (stats.Table{}) {
			mon.IVs = stats.DefaultIVs()
		}
		mon.RecalcSpreadStats(s.Gen)
	}
	incoming.PresetNonce = PresetNonce(incoming.Pokemon)
	incoming.Side = SanitizePlayerSide(s.Gen, &incoming)
	s.Players[key] = &incoming
	return s.Players[key]
}

// SanitizePlayerSide derives the side-level conditions from the player's
// current party and condition counters. For generation 1 the screen fields
// are volatile on the active Pokémon and resync every call; later generations
// keep whatever screens the side already tracks (they persist independently
// of per-turn sync).
func SanitizePlayerSide(gen int, player *Player) PlayerSide {
	side := player.Side.Clone()

	if player.Side.Conditions != nil {
		side.Spikes = player.Side.Conditions["spikes"]
		side.ToxicSpikes = player.Side.Conditions["toxicspikes"]
		side.StealthRock = player.Side.Conditions["stealthrock"] > 0
		side.StickyWeb = player.Side.Conditions["stickyweb"] > 0
	}

	if gen == 1 {
		side.Reflect = false
		side.LightScreen = false
		for _, idx := range activeSlots(player) {
			if idx < 0 || idx >= len(player.Pokemon) {
				continue
			}
			switch player.Pokemon[idx].Status.Effective() {
			case "reflect":
				side.Reflect = true
			case "lightscreen":
				side.LightScreen = true
			}
		}
	}

	if mechanics.RuinGen(gen) {
		sword, beads, tablets, vessel := ruinCounts(player.Pokemon)
		side.RuinSwordCount = sword
		side.RuinBeadsCount = beads
		side.RuinTabletsCount = tablets
		side.RuinVesselCount = vessel
	}

	return side
}

// activeSlots resolves which party slots count as on the field.
func activeSlots(player *Player) []int {
	if len(player.ActiveIndices) > 0 {
		return player.ActiveIndices
	}
	if player.SelectionIndex >= 0 {
		return []int{player.SelectionIndex}
	}
	return nil
}

// ruinCounts tallies the party members whose ruin ability is currently
// toggled active.
func ruinCounts(party []Pokemon) (sword, beads, tablets, vessel int) {
	for i := range party {
		if !party[i].AbilityToggled {
			continue
		}
		switch dex.ToID(party[i].Ability.Effective()) {
		case "swordofruin":
			sword++
		case "beadsofruin":
			beads++
		case "tabletsofruin":
			tablets++
		case "vesselofruin":
			vessel++
		}
	}
	return
}
