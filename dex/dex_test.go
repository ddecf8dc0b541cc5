package dex

import (
	"testing"

	"calcdex/stats"
)

func TestToID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Flabébé", "flabebe"},
		{"Nidoran♀", "nidoran"},
		{"Zacian-Crowned", "zaciancrowned"},
		{"Behemoth Sword", "behemothsword"},
		{"  G-Max Wildfire ", "gmaxwildfire"},
		{"Paldean Wooper", "paldeanwooper"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ToID(tc.in); got != tc.want {
			t.Fatalf("ToID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGenFromFormat(t *testing.T) {
	cases := []struct {
		format string
		want   int
	}{
		{"gen9ou", 9},
		{"gen4randombattle", 4},
		{"gen1ou", 1},
		{"GEN9VGC2024", 9},
		{"doublesou", CurrentGen},
		{"gen42weird", CurrentGen},
	}
	for _, tc := range cases {
		if got := GenFromFormat(tc.format); got != tc.want {
			t.Fatalf("GenFromFormat(%q) = %d, want %d", tc.format, got, tc.want)
		}
	}
}

func TestRandomsFormat(t *testing.T) {
	if !RandomsFormat("gen9randombattle") {
		t.Fatalf("gen9randombattle should be a randomized format")
	}
	if RandomsFormat("gen9ou") {
		t.Fatalf("gen9ou should not be a randomized format")
	}
}

func TestSpeciesGenGating(t *testing.T) {
	if _, ok := ForGen(8).Species("Great Tusk"); ok {
		t.Fatalf("paradox species should miss in gen 8")
	}
	species, ok := ForGen(9).Species("Great Tusk")
	if !ok {
		t.Fatalf("Great Tusk should resolve in gen 9")
	}
	if len(species.Abilities) == 0 {
		t.Fatalf("modern lookup should carry abilities")
	}
}

func TestSpeciesLegacyLookup(t *testing.T) {
	species, ok := ForGen(1).Species("Alakazam")
	if !ok {
		t.Fatalf("Alakazam should resolve in gen 1")
	}
	if species.Abilities != nil {
		t.Fatalf("legacy lookup should strip abilities, got %v", species.Abilities)
	}
	if species.BaseStats[stats.SpD] != species.BaseStats[stats.SpA] {
		t.Fatalf("gen 1 should mirror the special stat: SpA %d SpD %d",
			species.BaseStats[stats.SpA], species.BaseStats[stats.SpD])
	}
}

func TestMoveZMaxGating(t *testing.T) {
	move, ok := ForGen(7).Move("Earthquake")
	if !ok {
		t.Fatalf("Earthquake should resolve in gen 7")
	}
	if move.ZBasePower != 180 {
		t.Fatalf("gen 7 Z base power = %d, want 180", move.ZBasePower)
	}
	if move.MaxBasePower != 0 {
		t.Fatalf("gen 7 should zero max base power, got %d", move.MaxBasePower)
	}

	move, ok = ForGen(8).Move("Earthquake")
	if !ok {
		t.Fatalf("Earthquake should resolve in gen 8")
	}
	if move.ZBasePower != 0 {
		t.Fatalf("gen 8 should zero Z base power, got %d", move.ZBasePower)
	}
	if move.MaxBasePower != 130 {
		t.Fatalf("gen 8 max base power = %d, want 130", move.MaxBasePower)
	}

	move, ok = ForGen(9).Move("Earthquake")
	if !ok {
		t.Fatalf("Earthquake should resolve in gen 9")
	}
	if move.ZBasePower != 0 || move.MaxBasePower != 0 {
		t.Fatalf("gen 9 should zero both banded powers, got Z %d Max %d", move.ZBasePower, move.MaxBasePower)
	}
}

func TestMoveStatOverrides(t *testing.T) {
	move, ok := ForGen(9).Move("Psyshock")
	if !ok {
		t.Fatalf("Psyshock should resolve")
	}
	if move.OverrideDefensiveStat != stats.Def {
		t.Fatalf("Psyshock should target Defense, got %v", move.OverrideDefensiveStat)
	}

	move, ok = ForGen(9).Move("Body Press")
	if !ok {
		t.Fatalf("Body Press should resolve")
	}
	if move.OverrideOffensiveStat != stats.Def {
		t.Fatalf("Body Press should attack off Defense, got %v", move.OverrideOffensiveStat)
	}
}

func TestAbilityLegacyMiss(t *testing.T) {
	if _, ok := ForGen(2).Ability("Intimidate"); ok {
		t.Fatalf("abilities should miss below generation 3")
	}
	if _, ok := ForGen(9).Ability("Intimidate"); !ok {
		t.Fatalf("Intimidate should resolve in gen 9")
	}
}

func TestItemGenGating(t *testing.T) {
	if _, ok := ForGen(1).Item("Leftovers"); ok {
		t.Fatalf("items should miss in gen 1")
	}
	if _, ok := ForGen(9).Item("Booster Energy"); !ok {
		t.Fatalf("Booster Energy should resolve in gen 9")
	}
	if _, ok := ForGen(8).Item("Booster Energy"); ok {
		t.Fatalf("Booster Energy should miss before gen 9")
	}
}

func TestDefaultLevel(t *testing.T) {
	if got := DefaultLevel("gen9vgc2024"); got != 50 {
		t.Fatalf("vgc default level = %d, want 50", got)
	}
	if got := DefaultLevel("gen9ou"); got != 100 {
		t.Fatalf("ou default level = %d, want 100", got)
	}
}
