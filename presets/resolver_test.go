package presets

import (
	"testing"

	"calcdex/battle"
	"calcdex/stats"
)

var garchompBase = stats.Table{108, 130, 95, 80, 85, 102}

// jollySpread is the 252 Atk / 4 SpD / 252 Spe Jolly line at level 100.
var jollySpread = stats.Table{357, 359, 226, 176, 207, 333}

func serverGarchomp() *battle.Pokemon {
	mon := &battle.Pokemon{
		CalcdexID:    "mon-1",
		Source:       battle.SourceServer,
		PlayerKey:    battle.PlayerP1,
		SpeciesForme: "Garchomp",
		Level:        100,
		ServerMoves:  []string{"Swords Dance", "Earthquake", "Scale Shot", "Fire Fang"},
	}
	mon.Ability.Revealed = "Rough Skin"
	mon.Item.Revealed = "Leftovers"
	mon.BaseStats.Revealed = garchompBase
	mon.SpreadStats = jollySpread
	return mon
}

func formatGarchomp() battle.Preset {
	return battle.Preset{
		Name:         "Swords Dance",
		Source:       battle.SourceFormat,
		Gen:          9,
		Format:       "gen9ou",
		SpeciesForme: "Garchomp",
		Ability:      "Rough Skin",
		AltItems:     []string{"Leftovers", "Loaded Dice"},
		Nature:       "Jolly",
		IVs:          stats.DefaultIVs(),
		EVs:          stats.Table{0, 252, 0, 0, 4, 252},
		Moves:        []string{"Swords Dance", "Earthquake", "Scale Shot", "Fire Fang"},
	}.Finalize()
}

func TestResolveOwnedFromCandidate(t *testing.T) {
	mon := serverGarchomp()
	ctx := Context{Format: "gen9ou", Pools: Pools{Formats: []battle.Preset{formatGarchomp()}}}

	resolution := Resolve(9, mon, ctx)
	if !resolution.InsertOwned {
		t.Fatalf("owned reconstruction should flag the front-insert")
	}
	if resolution.ForceOpenEditor {
		t.Fatalf("owned reconstruction is not the default-reset branch")
	}
	preset := resolution.Preset
	if preset.Name != "Yours" || preset.Source != battle.SourceServer {
		t.Fatalf("unexpected preset identity: %q/%q", preset.Name, preset.Source)
	}
	if preset.Ability != "Rough Skin" || preset.Item != "Leftovers" {
		t.Fatalf("revealed slots not carried over: %+v", preset)
	}
	// The matching candidate donates its exact spread.
	if preset.Nature != "Jolly" {
		t.Fatalf("nature = %q, want the candidate's Jolly", preset.Nature)
	}
	if preset.EVs != (stats.Table{0, 252, 0, 0, 4, 252}) {
		t.Fatalf("evs = %v", preset.EVs)
	}
	if preset.CalcdexID == "" {
		t.Fatalf("reconstructed preset must be finalized")
	}
}

func TestResolveOwnedSpreadGuess(t *testing.T) {
	mon := serverGarchomp()
	// No candidate pool: the resolver must reverse the reported stat line.
	resolution := Resolve(9, mon, Context{Format: "gen9ou"})
	if !resolution.InsertOwned {
		t.Fatalf("owned reconstruction should still apply without candidates")
	}
	preset := resolution.Preset
	if preset.Nature != "Jolly" {
		t.Fatalf("nature = %q, want the guessed Jolly", preset.Nature)
	}
	if preset.EVs != (stats.Table{0, 252, 0, 0, 4, 252}) {
		t.Fatalf("guessed evs = %v", preset.EVs)
	}
}

func TestResolveOwnedRequiresServerMoves(t *testing.T) {
	mon := serverGarchomp()
	mon.ServerMoves = nil
	resolution := Resolve(9, mon, Context{Format: "gen9ou", Pools: Pools{Formats: []battle.Preset{formatGarchomp()}}})
	if resolution.InsertOwned {
		t.Fatalf("owned reconstruction needs the server move list")
	}
	// Rule 3 picks the format preset instead.
	if resolution.Preset.Name != "Swords Dance" {
		t.Fatalf("fallback preset = %q", resolution.Preset.Name)
	}
}

func TestResolveSheet(t *testing.T) {
	mon := &battle.Pokemon{
		CalcdexID:    "mon-2",
		Source:       battle.SourceClient,
		PlayerKey:    battle.PlayerP2,
		SpeciesForme: "Garchomp",
		Level:        100,
	}

	partial := battle.Preset{
		Name: "Open Sheet", Source: battle.SourceSheet, PlayerKey: battle.PlayerP2,
		Gen: 9, Format: "gen9ou", SpeciesForme: "Garchomp",
	}.Finalize()
	otherPlayer := formatGarchomp()
	otherPlayer.Source = battle.SourceSheet
	otherPlayer.PlayerKey = battle.PlayerP1
	otherPlayer = otherPlayer.Finalize()
	complete := formatGarchomp()
	complete.Name = "Full Sheet"
	complete.Source = battle.SourceSheet
	complete.PlayerKey = battle.PlayerP2
	complete = complete.Finalize()

	ctx := Context{Format: "gen9ou", Pools: Pools{Sheets: []battle.Preset{partial, otherPlayer, complete}}}
	resolution := Resolve(9, mon, ctx)
	if resolution.Preset.Name != "Full Sheet" {
		t.Fatalf("preset = %q, want the complete same-player sheet", resolution.Preset.Name)
	}
	if resolution.InsertOwned || resolution.ForceOpenEditor {
		t.Fatalf("unexpected flags: %+v", resolution)
	}
}

func TestResolveFormatPool(t *testing.T) {
	mon := &battle.Pokemon{
		CalcdexID: "mon-3", Source: battle.SourceClient, SpeciesForme: "Garchomp", Level: 100,
	}

	otherFormat := formatGarchomp()
	otherFormat.Name = "Old Gen Set"
	otherFormat.Format = "gen8ou"
	otherFormat = otherFormat.Finalize()

	t.Run("format-restricted match wins", func(t *testing.T) {
		ctx := Context{Format: "gen9ou", Pools: Pools{Formats: []battle.Preset{otherFormat, formatGarchomp()}}}
		resolution := Resolve(9, mon, ctx)
		if resolution.Preset.Name != "Swords Dance" {
			t.Fatalf("preset = %q, want the gen9ou set", resolution.Preset.Name)
		}
	})

	t.Run("broadens to any format", func(t *testing.T) {
		ctx := Context{Format: "gen9ou", Pools: Pools{Formats: []battle.Preset{otherFormat}}}
		resolution := Resolve(9, mon, ctx)
		if resolution.Preset.Name != "Old Gen Set" {
			t.Fatalf("preset = %q, want the cross-format fallback", resolution.Preset.Name)
		}
	})
}

func TestResolveUsagePreference(t *testing.T) {
	mon := &battle.Pokemon{
		CalcdexID: "mon-4", Source: battle.SourceClient, SpeciesForme: "Garchomp", Level: 100,
	}
	usage := battle.Preset{
		Name: "Usage", Source: battle.SourceUsage, Gen: 9, Format: "gen9ou",
		SpeciesForme: "Garchomp", Usage: 0.41,
	}.Finalize()

	t.Run("usage wins when nothing format-restricted exists", func(t *testing.T) {
		ctx := Context{Format: "gen9ou", Pools: Pools{Usages: []battle.Preset{usage}}}
		resolution := Resolve(9, mon, ctx)
		if resolution.Preset.Name != "Usage" {
			t.Fatalf("preset = %q, want the usage entry", resolution.Preset.Name)
		}
		if resolution.Usage == nil || resolution.Usage.Usage != 0.41 {
			t.Fatalf("usage pairing missing: %+v", resolution.Usage)
		}
	})

	t.Run("prioritize-usage displaces a non-owned format set", func(t *testing.T) {
		ctx := Context{
			Format:   "gen9ou",
			Settings: Settings{PrioritizeUsage: true},
			Pools:    Pools{Formats: []battle.Preset{formatGarchomp()}, Usages: []battle.Preset{usage}},
		}
		resolution := Resolve(9, mon, ctx)
		if resolution.Preset.Name != "Usage" {
			t.Fatalf("preset = %q, want the prioritized usage entry", resolution.Preset.Name)
		}
	})

	t.Run("format set wins without the setting", func(t *testing.T) {
		ctx := Context{Format: "gen9ou", Pools: Pools{Formats: []battle.Preset{formatGarchomp()}, Usages: []battle.Preset{usage}}}
		resolution := Resolve(9, mon, ctx)
		if resolution.Preset.Name != "Swords Dance" {
			t.Fatalf("preset = %q, want the format set", resolution.Preset.Name)
		}
		if resolution.Usage == nil {
			t.Fatalf("the chosen set still pairs with its usage entry")
		}
	})

	t.Run("randomized formats never prefer usage over sets", func(t *testing.T) {
		randomsSet := formatGarchomp()
		randomsSet.Name = "Randoms Role"
		randomsSet.Format = "gen9randombattle"
		randomsSet = randomsSet.Finalize()
		ctx := Context{
			Format:   "gen9randombattle",
			Settings: Settings{PrioritizeUsage: true},
			Pools:    Pools{Formats: []battle.Preset{randomsSet}, Usages: []battle.Preset{usage}},
		}
		resolution := Resolve(9, mon, ctx)
		if resolution.Preset.Name != "Randoms Role" {
			t.Fatalf("preset = %q, want the randoms set", resolution.Preset.Name)
		}
	})
}

func TestResolveDefaultReset(t *testing.T) {
	mon := &battle.Pokemon{
		CalcdexID: "mon-5", Source: battle.SourceClient, SpeciesForme: "Garchomp",
	}
	resolution := Resolve(9, mon, Context{Format: "gen9ou"})
	if !resolution.ForceOpenEditor {
		t.Fatalf("empty pools must land on the default-reset branch")
	}
	preset := resolution.Preset
	if preset.Name != "Default" || preset.Source != battle.SourceUser {
		t.Fatalf("unexpected default preset: %q/%q", preset.Name, preset.Source)
	}
	if preset.Level != 100 {
		t.Fatalf("level = %d, want the format default 100", preset.Level)
	}
	if preset.Nature != "Hardy" {
		t.Fatalf("nature = %q, want neutral Hardy", preset.Nature)
	}
	if preset.IVs != stats.DefaultIVs() || preset.EVs != (stats.Table{}) {
		t.Fatalf("spread = %v / %v", preset.IVs, preset.EVs)
	}
	if preset.CalcdexID == "" {
		t.Fatalf("default preset must be finalized")
	}
}

func TestResolveDefaultResetLevelSetting(t *testing.T) {
	mon := &battle.Pokemon{
		CalcdexID: "mon-9", Source: battle.SourceClient, SpeciesForme: "Garchomp",
	}
	resolution := Resolve(9, mon, Context{
		Format:   "gen9ou",
		Settings: Settings{DefaultLevel: 50},
	})
	if resolution.Preset.Level != 50 {
		t.Fatalf("level = %d, want the configured fallback", resolution.Preset.Level)
	}
}

func TestResolveDefaultResetLegacy(t *testing.T) {
	mon := &battle.Pokemon{
		CalcdexID: "mon-6", Source: battle.SourceClient, SpeciesForme: "Alakazam",
	}
	resolution := Resolve(1, mon, Context{Format: "gen1ou"})
	preset := resolution.Preset
	if preset.Nature != "" {
		t.Fatalf("legacy default carries no nature, got %q", preset.Nature)
	}
	if preset.IVs != (stats.Table{30, 30, 30, 30, 30, 30}) {
		t.Fatalf("legacy default DVs = %v", preset.IVs)
	}
	if preset.EVs != (stats.Table{252, 252, 252, 252, 252, 252}) {
		t.Fatalf("legacy default stat experience = %v", preset.EVs)
	}
}

func TestPairUsageFuzzyMatch(t *testing.T) {
	mon := &battle.Pokemon{
		CalcdexID: "mon-7", Source: battle.SourceClient, SpeciesForme: "Garchomp", Level: 100,
	}
	breaker := battle.Preset{
		Name: "Wallbreaker", Source: battle.SourceUsage, Gen: 9,
		Format: "gen9randombattle", SpeciesForme: "Garchomp", Usage: 0.6,
	}.Finalize()
	dance := battle.Preset{
		Name: "Swords Dance", Source: battle.SourceUsage, Gen: 9,
		Format: "gen9randombattle", SpeciesForme: "Garchomp", Usage: 0.4,
	}.Finalize()
	randomsSet := formatGarchomp()
	randomsSet.Format = "gen9randombattle"
	randomsSet = randomsSet.Finalize()

	ctx := Context{
		Format: "gen9randombattle",
		Pools:  Pools{Formats: []battle.Preset{randomsSet}, Usages: []battle.Preset{breaker, dance}},
	}
	resolution := Resolve(9, mon, ctx)
	if resolution.Preset.Name != "Swords Dance" {
		t.Fatalf("preset = %q", resolution.Preset.Name)
	}
	if resolution.Usage == nil || resolution.Usage.Name != "Swords Dance" {
		t.Fatalf("fuzzy pairing picked %+v, want the matching role", resolution.Usage)
	}
}
