package presets

import (
	"testing"

	"calcdex/battle"
	"calcdex/dex"
	"calcdex/mechanics"
	"calcdex/stats"
)

func TestApplyPreset(t *testing.T) {
	mon := &battle.Pokemon{
		CalcdexID:    "mon-a",
		SpeciesForme: "Garchomp",
		Level:        100,
	}
	mon.BaseStats.Revealed = garchompBase
	mon.IVs = stats.DefaultIVs()
	// An override the preset is about to make redundant.
	mon.Item.SetDirty("Leftovers")

	preset := formatGarchomp()
	preset.Item = "Leftovers"
	preset.TeraTypes = []dex.Type{"Steel", "Fire"}
	preset = preset.Finalize()

	applied := Apply(9, "gen9ou", Resolution{Preset: preset}, mon)

	if mon.Item.Effective() != "Leftovers" || mon.Item.HasDirty() {
		t.Fatalf("redundant item override should be cleared: %+v", mon.Item)
	}
	if mon.Ability.Effective() != "Rough Skin" {
		t.Fatalf("ability = %q", mon.Ability.Effective())
	}
	if mon.Nature != "Jolly" {
		t.Fatalf("nature = %q", mon.Nature)
	}
	if mon.EVs != (stats.Table{0, 252, 0, 0, 4, 252}) {
		t.Fatalf("evs = %v", mon.EVs)
	}
	if mon.TeraType.Effective() != "Steel" {
		t.Fatalf("tera type = %q, want the pool's first entry", mon.TeraType.Effective())
	}
	if len(mon.Moves) != 4 || mon.Moves[0] != "Swords Dance" {
		t.Fatalf("moves = %v", mon.Moves)
	}
	if mon.PresetID != preset.CalcdexID || mon.PresetSource != preset.Source {
		t.Fatalf("preset stamp missing: %q/%q", mon.PresetID, mon.PresetSource)
	}
	// Spread stats recompute in the same pass.
	if mon.MaxHP != 357 {
		t.Fatalf("max hp = %d, want the Jolly line's 357", mon.MaxHP)
	}
	if len(applied.Fields) == 0 {
		t.Fatalf("applied field list should record the writes")
	}
	if applied.AutoWeather != "" || applied.AutoTerrain != "" {
		t.Fatalf("Rough Skin sets no auto-conditions: %+v", applied)
	}
}

func TestApplyPresetRespectsRevealedMoves(t *testing.T) {
	mon := &battle.Pokemon{
		CalcdexID:     "mon-b",
		SpeciesForme:  "Garchomp",
		Level:         100,
		Moves:         []string{"Earthquake", "Dragon Claw", "Stone Edge", "Protect"},
		RevealedMoves: []string{"Earthquake", "Dragon Claw", "Stone Edge", "Protect"},
	}
	mon.BaseStats.Revealed = garchompBase
	mon.IVs = stats.DefaultIVs()
	mon.TeraType.Revealed = "Ground"

	preset := formatGarchomp()
	preset.TeraTypes = []dex.Type{"Steel"}
	preset = preset.Finalize()

	Apply(9, "gen9ou", Resolution{Preset: preset}, mon)

	if mon.Moves[0] != "Earthquake" {
		t.Fatalf("four revealed moves are ground truth, got %v", mon.Moves)
	}
	if mon.TeraType.Effective() != "Ground" {
		t.Fatalf("revealed tera type must not be displaced, got %q", mon.TeraType.Effective())
	}
}

func TestApplyPresetAutoConditions(t *testing.T) {
	mon := &battle.Pokemon{
		CalcdexID:    "mon-c",
		SpeciesForme: "Garchomp",
		Level:        100,
	}
	mon.BaseStats.Revealed = garchompBase
	mon.IVs = stats.DefaultIVs()

	preset := formatGarchomp()
	preset.Ability = "Drought"
	preset = preset.Finalize()

	applied := Apply(9, "gen9ou", Resolution{Preset: preset}, mon)
	if applied.AutoWeather != mechanics.WeatherSun {
		t.Fatalf("auto weather = %q, want %q", applied.AutoWeather, mechanics.WeatherSun)
	}
}

func TestApplyInsertOwnedOnce(t *testing.T) {
	mon := &battle.Pokemon{
		CalcdexID:    "mon-d",
		SpeciesForme: "Garchomp",
		Level:        100,
	}
	mon.BaseStats.Revealed = garchompBase
	mon.IVs = stats.DefaultIVs()
	existing := formatGarchomp()
	mon.Presets = []battle.Preset{existing}

	yours := formatGarchomp()
	yours.Name = "Yours"
	yours.Source = battle.SourceServer
	yours = yours.Finalize()

	Apply(9, "gen9ou", Resolution{Preset: yours, InsertOwned: true}, mon)
	if len(mon.Presets) != 2 || mon.Presets[0].Name != "Yours" {
		t.Fatalf("owned set should front-insert: %v", presetNames(mon.Presets))
	}

	Apply(9, "gen9ou", Resolution{Preset: yours, InsertOwned: true}, mon)
	if len(mon.Presets) != 2 {
		t.Fatalf("owned set should insert once: %v", presetNames(mon.Presets))
	}
}

func TestApplyDefaultReset(t *testing.T) {
	mon := &battle.Pokemon{
		CalcdexID:    "mon-e",
		SpeciesForme: "Garchomp",
		Level:        100,
		Moves:        []string{"Tackle"},
		AltMoves:     []string{"Growl"},
		AbilityPool:  []string{"Sand Veil", "Rough Skin"},
	}
	mon.BaseStats.Revealed = garchompBase
	mon.IVs = stats.DefaultIVs()

	resolution := Resolve(9, mon, Context{Format: "gen9ou"})
	if !resolution.ForceOpenEditor {
		t.Fatalf("empty pools must land on the default-reset branch")
	}
	Apply(9, "gen9ou", resolution, mon)

	if !mon.ShowDetails {
		t.Fatalf("the reset slot must flag manual entry")
	}
	if mon.Moves != nil || mon.AltMoves != nil || mon.AbilityPool != nil {
		t.Fatalf("stale pools survived the reset: moves %v alt %v abilities %v",
			mon.Moves, mon.AltMoves, mon.AbilityPool)
	}
	if mon.Nature != "Hardy" {
		t.Fatalf("nature = %q, want the neutral Hardy", mon.Nature)
	}
	if mon.EVs != (stats.Table{}) || mon.IVs != stats.DefaultIVs() {
		t.Fatalf("spread not reset: ivs %v evs %v", mon.IVs, mon.EVs)
	}
	if mon.PresetID == "" || mon.PresetSource != battle.SourceUser {
		t.Fatalf("reset stamp missing: %q/%q", mon.PresetID, mon.PresetSource)
	}
}

func presetNames(presets []battle.Preset) []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}
