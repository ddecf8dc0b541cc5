// Package mechanics holds the pure rules evaluators: given narrow snapshots of
// a Pokémon and its surroundings, each function computes one derived fact
// (auto-boost effects, ability toggles, invoked weather/terrain, guaranteed
// crits, move-override defaults). Nothing here mutates state, and every
// function is total: lookup misses and missing context produce neutral
// sentinels, never errors.
package mechanics

import (
	"calcdex/dex"
	"calcdex/stats"
)

// Snapshot is the read view of one Pokémon that the evaluators consume.
// Callers project it from their richer state; the evaluators never see the
// full battle aggregate.
type Snapshot struct {
	SpeciesForme   string
	Ability        string
	Item           string
	Types          []dex.Type
	TeraType       dex.Type
	Terastallized  bool
	HP             int
	MaxHP          int
	Status         string
	Boosts         stats.Boosts
	Stats          stats.Table
	Moves          []string
	Slot           int
	FaintedAllies  int
	JustSwitchedIn bool
	CritOverride   bool
}

// FullHP reports whether the Pokémon is at (or assumed at) full HP. Unknown
// HP counts as full, matching how unrevealed opponents are displayed.
func (s Snapshot) FullHP() bool {
	return s.MaxHP <= 0 || s.HP >= s.MaxHP
}

// FieldSnapshot is the read view of battle-wide conditions.
type FieldSnapshot struct {
	Weather string
	Terrain string
}

// GameType distinguishes singles from doubles for toggle evaluation.
type GameType string

const (
	Singles GameType = "Singles"
	Doubles GameType = "Doubles"
)
