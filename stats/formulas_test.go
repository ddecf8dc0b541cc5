package stats

import "testing"

func TestCalcStatModern(t *testing.T) {
	cases := []struct {
		name   string
		stat   Stat
		base   int
		iv     int
		ev     int
		level  int
		nature Nature
		want   int
	}{
		{"max attack boosted", Atk, 130, 31, 252, 100, "Adamant", 394},
		{"max speed boosted", Spe, 102, 31, 252, 100, "Jolly", 333},
		{"hindered attack", Atk, 80, 0, 0, 100, "Modest", 148},
		{"neutral level 50", Atk, 130, 31, 0, 50, "Serious", 150},
		{"hp ignores nature", HP, 108, 31, 252, 100, "Adamant", 420},
		{"hp no investment", HP, 108, 31, 0, 100, "", 357},
		{"shedinja fixed hp", HP, 1, 31, 252, 100, "", 1},
		{"zero base is a miss", Atk, 0, 31, 252, 100, "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalcStat(9, tc.stat, tc.base, tc.iv, tc.ev, tc.level, tc.nature)
			if got != tc.want {
				t.Fatalf("CalcStat(%v) = %d, want %d", tc.name, got, tc.want)
			}
		})
	}
}

func TestCalcStatLegacy(t *testing.T) {
	// Max DVs and full stat experience: dv=15, sqrt(65535)=255, bonus 63.
	got := CalcStat(1, Atk, 100, 30, 65535, 100, "")
	want := (2*(100+15)+63)*100/100 + 5
	if got != want {
		t.Fatalf("legacy attack = %d, want %d", got, want)
	}

	gotHP := CalcStat(1, HP, 100, 30, 65535, 100, "")
	wantHP := (2*(100+15)+63)*100/100 + 100 + 10
	if gotHP != wantHP {
		t.Fatalf("legacy hp = %d, want %d", gotHP, wantHP)
	}

	// Natures never apply below the cutoff.
	if boosted := CalcStat(2, Atk, 100, 30, 0, 100, "Adamant"); boosted != CalcStat(2, Atk, 100, 30, 0, 100, "") {
		t.Fatalf("legacy stat changed with nature: %d", boosted)
	}
}

func TestLegacyHPDV(t *testing.T) {
	cases := []struct {
		name string
		ivs  Table
		want int
	}{
		{"all max dvs", Table{0, 31, 31, 31, 0, 31}, 15},
		{"all even dvs", Table{0, 28, 28, 28, 0, 28}, 0},
		{"attack parity only", Table{0, 31, 28, 28, 0, 28}, 8},
		{"special parity only", Table{0, 28, 28, 31, 0, 28}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LegacyHPDV(tc.ivs); got != tc.want {
				t.Fatalf("LegacyHPDV = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestLegacySanitizeIVs(t *testing.T) {
	sanitized := LegacySanitizeIVs(Table{7, 31, 31, 25, 31, 31})
	if sanitized[SpD] != sanitized[SpA] {
		t.Fatalf("special stats diverge after sanitize: %d vs %d", sanitized[SpA], sanitized[SpD])
	}
	if sanitized[SpD] != 25 {
		t.Fatalf("SpD = %d, want the shared special 25", sanitized[SpD])
	}
	wantHP := LegacyHPDV(sanitized) * 2
	if sanitized[HP] != wantHP {
		t.Fatalf("HP iv = %d, want parity-derived %d", sanitized[HP], wantHP)
	}
}

func TestSpreadStats(t *testing.T) {
	base := Table{108, 130, 95, 80, 85, 102}
	spread := SpreadStats(9, base, DefaultIVs(), Table{0, 252, 0, 0, 4, 252}, 100, "Jolly")
	if spread[Atk] != 359 {
		t.Fatalf("Atk = %d, want 359", spread[Atk])
	}
	if spread[Spe] != 333 {
		t.Fatalf("Spe = %d, want 333", spread[Spe])
	}
	if spread[SpA] != 176 {
		t.Fatalf("SpA = %d, want hindered 176", spread[SpA])
	}
}

func TestCurrentHP(t *testing.T) {
	cases := []struct {
		name       string
		maxHP      int
		value      float64
		percentage bool
		want       int
	}{
		{"half percentage", 404, 0.5, true, 202},
		{"full percentage", 404, 1.0, true, 404},
		{"exact value", 404, 120, false, 120},
		{"exact above max clamps", 404, 900, false, 404},
		{"negative clamps to zero", 404, -5, false, 0},
		{"zero max", 0, 0.5, true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CurrentHP(tc.maxHP, tc.value, tc.percentage); got != tc.want {
				t.Fatalf("CurrentHP = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTableMerge(t *testing.T) {
	base := Table{31, 31, 31, 31, 31, 31}
	merged := base.Merge(Table{-1, 0, -1, -1, -1, 4})
	want := Table{31, 0, 31, 31, 31, 4}
	if merged != want {
		t.Fatalf("Merge = %v, want %v", merged, want)
	}
}
