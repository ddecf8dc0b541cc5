package presets

import (
	"calcdex/battle"
	"calcdex/dex"
	"calcdex/mechanics"
	"calcdex/stats"
)

// Applied records which attribute groups an Apply call actually wrote, plus
// the auto-conditions the new ability would set so the caller can resync the
// field when the target is the on-field slot.
type Applied struct {
	Fields      []string
	AutoWeather string
	AutoTerrain string
}

// Apply writes a resolved preset onto the Pokémon. Preset values land in the
// revealed slots, which clears any dirty override that just became redundant.
// Move data revealed through play is ground truth: with four revealed moves
// the preset's move list is skipped entirely.
func Apply(gen int, format string, resolution Resolution, mon *battle.Pokemon) Applied {
	preset := resolution.Preset
	applied := Applied{}
	touch := func(name string) { applied.Fields = append(applied.Fields, name) }

	if resolution.InsertOwned {
		insertOwnedPreset(mon, preset)
	}

	// The terminal default-reset branch clears everything a stale preset may
	// have left behind and flags the slot for manual entry.
	if resolution.ForceOpenEditor {
		mon.ShowDetails = true
		if len(mon.Moves) > 0 || len(mon.AltMoves) > 0 {
			mon.Moves = nil
			mon.AltMoves = nil
			touch("moves")
		}
		mon.AbilityPool = nil
	}

	if preset.Level > 0 && preset.Level != mon.Level {
		mon.Level = preset.Level
		touch("level")
	}
	if preset.Ability != "" {
		mon.Ability.SetRevealed(preset.Ability, func(a, b string) bool { return dex.ToID(a) == dex.ToID(b) })
		touch("ability")
	}
	if preset.Item != "" {
		mon.Item.SetRevealed(preset.Item, func(a, b string) bool { return dex.ToID(a) == dex.ToID(b) })
		touch("item")
	}
	if !dex.LegacyGen(gen) && preset.Nature != "" {
		mon.Nature = preset.Nature
		touch("nature")
	}
	if preset.IVs != (stats.Table{}) {
		mon.IVs = preset.IVs
		touch("ivs")
	}
	if preset.EVs != (stats.Table{}) || !dex.LegacyGen(gen) {
		mon.EVs = preset.EVs
		touch("evs")
	}
	if len(preset.TeraTypes) > 0 && mon.TeraType.Revealed == "" {
		mon.TeraType.SetRevealed(preset.TeraTypes[0], func(a, b dex.Type) bool { return a == b })
		touch("teraType")
	}

	if len(preset.Moves) > 0 && len(mon.RevealedMoves) < 4 {
		mon.Moves = append([]string(nil), preset.Moves...)
		mon.AltMoves = append([]string(nil), preset.AltMoves...)
		touch("moves")
	}

	mon.PresetID = preset.CalcdexID
	mon.PresetSource = preset.Source
	mon.RecalcSpreadStats(gen)

	snap := mon.Snapshot()
	applied.AutoWeather = mechanics.DetermineWeather(snap, format)
	applied.AutoTerrain = mechanics.DetermineTerrain(snap)
	return applied
}

// insertOwnedPreset front-inserts the reconstructed owned set into the
// Pokémon's candidate list, once.
func insertOwnedPreset(mon *battle.Pokemon, preset battle.Preset) {
	for _, existing := range mon.Presets {
		if existing.CalcdexID == preset.CalcdexID {
			return
		}
		if existing.Source == battle.SourceServer && existing.Name == preset.Name {
			return
		}
	}
	mon.Presets = append([]battle.Preset{preset}, mon.Presets...)
}
