package mechanics

import (
	"testing"

	"calcdex/dex"
	"calcdex/stats"
)

func TestAlwaysCriticalHits(t *testing.T) {
	cases := []struct {
		move   string
		format string
		want   bool
	}{
		{"Frost Breath", "gen9ou", true},
		{"Storm Throw", "gen9ou", true},
		{"Wicked Blow", "gen9ou", true},
		{"Surging Strikes", "gen9ou", true},
		{"Flower Trick", "gen9ou", true},
		{"Earthquake", "gen9ou", false},
		{"Toxic", "gen9ou", false},
	}
	for _, tc := range cases {
		if got := AlwaysCriticalHits(tc.move, tc.format); got != tc.want {
			t.Fatalf("AlwaysCriticalHits(%q) = %v, want %v", tc.move, got, tc.want)
		}
	}
}

func TestDetermineCriticalHit(t *testing.T) {
	if !DetermineCriticalHit(Snapshot{}, "Flower Trick", "gen9ou", CritContext{}) {
		t.Fatalf("guaranteed crit should apply")
	}
	if DetermineCriticalHit(Snapshot{}, "Flower Trick", "gen9ou", CritContext{UseMax: true}) {
		t.Fatalf("Max form should suppress the guaranteed crit")
	}
	if DetermineCriticalHit(Snapshot{}, "Frost Breath", "gen7ou", CritContext{UseZ: true}) {
		t.Fatalf("Z form should suppress the guaranteed crit")
	}
	if !DetermineCriticalHit(Snapshot{CritOverride: true}, "Earthquake", "gen9ou", CritContext{UseMax: true}) {
		t.Fatalf("user override must always win")
	}
}

func TestMoveOverrideDefaults(t *testing.T) {
	t.Run("plain physical move", func(t *testing.T) {
		override := MoveOverrideDefaults("gen9ou", Snapshot{SpeciesForme: "Garchomp"}, "Earthquake", nil)
		if override.Type != "Ground" || override.Category != dex.Physical {
			t.Fatalf("unexpected identity %+v", override)
		}
		if override.OffensiveStat != stats.Atk || override.DefensiveStat != stats.Def {
			t.Fatalf("unexpected stat pair %+v", override)
		}
		if override.Hits != 1 {
			t.Fatalf("hits = %d, want 1", override.Hits)
		}
	})

	t.Run("psyshock targets defense", func(t *testing.T) {
		override := MoveOverrideDefaults("gen9ou", Snapshot{}, "Psyshock", nil)
		if override.OffensiveStat != stats.SpA || override.DefensiveStat != stats.Def {
			t.Fatalf("unexpected stat pair %+v", override)
		}
	})

	t.Run("body press attacks off defense", func(t *testing.T) {
		override := MoveOverrideDefaults("gen9ou", Snapshot{}, "Body Press", nil)
		if override.OffensiveStat != stats.Def || override.DefensiveStat != stats.Def {
			t.Fatalf("unexpected stat pair %+v", override)
		}
	})

	t.Run("status move keeps sentinel stat pair", func(t *testing.T) {
		override := MoveOverrideDefaults("gen9ou", Snapshot{}, "Toxic", nil)
		if override.OffensiveStat != dex.NoStat || override.DefensiveStat != dex.NoStat {
			t.Fatalf("unexpected stat pair %+v", override)
		}
	})

	t.Run("lookup miss is neutral", func(t *testing.T) {
		override := MoveOverrideDefaults("gen9ou", Snapshot{}, "Made Up Move", nil)
		if !override.Empty() {
			t.Fatalf("miss should produce the empty override, got %+v", override)
		}
	})

	t.Run("gmax forme swaps max base power", func(t *testing.T) {
		override := MoveOverrideDefaults("gen8ou", Snapshot{SpeciesForme: "Charizard-Gmax"}, "Flamethrower", nil)
		if override.MaxBasePower != 160 {
			t.Fatalf("max base power = %d, want the exclusive move's 160", override.MaxBasePower)
		}
	})

	t.Run("gmax swap requires matching type", func(t *testing.T) {
		override := MoveOverrideDefaults("gen8ou", Snapshot{SpeciesForme: "Charizard-Gmax"}, "Earthquake", nil)
		if override.MaxBasePower != 130 {
			t.Fatalf("max base power = %d, want the generic band 130", override.MaxBasePower)
		}
	})

	t.Run("variable power keeps sentinel", func(t *testing.T) {
		override := MoveOverrideDefaults("gen9ou", Snapshot{}, "Ruination", nil)
		if override.BasePower != 1 {
			t.Fatalf("base power = %d, want sentinel 1", override.BasePower)
		}
	})
}

func TestDefaultHits(t *testing.T) {
	cases := []struct {
		name string
		src  Snapshot
		move string
		want int
	}{
		{"single hit", Snapshot{}, "Earthquake", 1},
		{"fixed triple", Snapshot{}, "Surging Strikes", 3},
		{"variable expected roll", Snapshot{}, "Bullet Seed", 3},
		{"loaded dice floor", Snapshot{Item: "Loaded Dice"}, "Bullet Seed", 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			override := MoveOverrideDefaults("gen9ou", tc.src, tc.move, nil)
			if override.Hits != tc.want {
				t.Fatalf("hits = %d, want %d", override.Hits, tc.want)
			}
		})
	}
}
