// Package dex provides generation-aware lookup of canonical species, move,
// ability, and item metadata. Lookups never panic: a miss reports ok=false and
// callers treat the zero value as "no effect".
package dex

import "strings"

// Type names an elemental type.
type Type string

// Category buckets a move's damage calculation.
type Category string

const (
	Physical Category = "Physical"
	Special  Category = "Special"
	Status   Category = "Status"
)

// Dex scopes every lookup to one generation.
type Dex struct {
	Gen int
}

// ForGen returns a Dex scoped to the given generation. Out-of-range values
// clamp into the supported window rather than failing.
func ForGen(gen int) Dex {
	if gen < 1 {
		gen = 1
	}
	if gen > CurrentGen {
		gen = CurrentGen
	}
	return Dex{Gen: gen}
}

// CurrentGen is the newest generation the data tables cover.
const CurrentGen = 9

// GenFromFormat extracts the generation from a format id like "gen9ou" or
// "gen4randombattle". Unparseable formats default to the current generation.
func GenFromFormat(format string) int {
	id := ToID(format)
	if !strings.HasPrefix(id, "gen") {
		return CurrentGen
	}
	rest := id[len("gen"):]
	gen := 0
	for _, r := range rest {
		if r < '0' || r > '9' {
			break
		}
		gen = gen*10 + int(r-'0')
	}
	if gen < 1 || gen > CurrentGen {
		return CurrentGen
	}
	return gen
}

// ForFormat returns a Dex scoped to the format's generation.
func ForFormat(format string) Dex {
	return ForGen(GenFromFormat(format))
}

// RandomsFormat reports whether the format id names a randomized-teams format.
func RandomsFormat(format string) bool {
	id := ToID(format)
	return strings.Contains(id, "random") || strings.Contains(id, "randbats")
}

// DefaultLevel returns the level assumed when a format never reported one.
// Flat-rules formats play at 50, everything else at 100.
func DefaultLevel(format string) int {
	id := ToID(format)
	if strings.Contains(id, "vgc") || strings.Contains(id, "battlestadium") || strings.Contains(id, "bss") {
		return 50
	}
	return 100
}

// LegacyGen reports whether the generation predates abilities and natures.
func LegacyGen(gen int) bool {
	return gen < 3
}
