package mechanics

import (
	"calcdex/dex"
	"calcdex/stats"
)

// MoveOverride is the resolved per-move default set: what the damage formula
// would use for this move slot before any user override is layered on top.
type MoveOverride struct {
	Type          dex.Type     `json:"type,omitempty"`
	Category      dex.Category `json:"category,omitempty"`
	BasePower     int          `json:"basePower,omitempty"`
	ZBasePower    int          `json:"zBasePower,omitempty"`
	MaxBasePower  int          `json:"maxBasePower,omitempty"`
	OffensiveStat stats.Stat   `json:"offensiveStat"`
	DefensiveStat stats.Stat   `json:"defensiveStat"`
	Hits          int          `json:"hits,omitempty"`
	AlwaysCrit    bool         `json:"alwaysCrit,omitempty"`
}

// Empty reports whether the override carries no usable fields.
func (o MoveOverride) Empty() bool {
	return o.Type == "" && o.Category == "" && o.BasePower == 0 &&
		o.ZBasePower == 0 && o.MaxBasePower == 0 && o.Hits == 0 && !o.AlwaysCrit &&
		o.OffensiveStat == dex.NoStat && o.DefensiveStat == dex.NoStat
}

// MoveOverrideDefaults resolves a move's type, category, base powers, hit
// count, and attacking stat pair for the given user. A lookup miss returns
// the neutral zero override.
func MoveOverrideDefaults(format string, src Snapshot, moveName string, opponent *Snapshot) MoveOverride {
	override := MoveOverride{OffensiveStat: dex.NoStat, DefensiveStat: dex.NoStat}
	d := dex.ForFormat(format)
	move, ok := d.Move(moveName)
	if !ok {
		return override
	}

	override.Type = move.Type
	override.Category = move.Category
	override.BasePower = CalcMoveBasePower(format, src, move)
	override.ZBasePower = move.ZBasePower
	override.MaxBasePower = move.MaxBasePower
	override.AlwaysCrit = AlwaysCriticalHits(moveName, format)
	override.Hits = defaultHits(src, move)

	// A Pokémon already in its G-Max forme swaps the generic Max Move for its
	// exclusive G-Max move when the types line up.
	if species, found := d.Species(src.SpeciesForme); found && species.GMaxMove != "" {
		if gmax, found := d.Move(species.GMaxMove); found && gmax.Type == move.Type && move.Category != dex.Status {
			override.MaxBasePower = gmax.BasePower
		}
	}

	if move.Category == dex.Status {
		return override
	}

	if move.Category == dex.Physical {
		override.OffensiveStat = stats.Atk
		override.DefensiveStat = stats.Def
	} else {
		override.OffensiveStat = stats.SpA
		override.DefensiveStat = stats.SpD
	}
	if move.OverrideOffensiveStat != dex.NoStat {
		override.OffensiveStat = move.OverrideOffensiveStat
	}
	if move.OverrideDefensiveStat != dex.NoStat {
		override.DefensiveStat = move.OverrideDefensiveStat
	}
	return override
}

// CalcMoveBasePower wraps the canonical base power with the handful of
// user-dependent adjustments the override defaults need.
func CalcMoveBasePower(format string, src Snapshot, move dex.MoveData) int {
	bp := move.BasePower
	if bp <= 1 {
		// Variable-power moves (Ruination and friends) keep their sentinel.
		return bp
	}
	return bp
}

// defaultHits resolves the displayed hit count for multi-hit moves: fixed
// counts stay fixed, variable counts settle on the expected roll (or the
// Loaded Dice floor).
func defaultHits(src Snapshot, move dex.MoveData) int {
	if move.MaxHits <= 1 {
		return move.MaxHits
	}
	if move.MinHits == move.MaxHits {
		return move.MinHits
	}
	if dex.ToID(src.Item) == "loadeddice" {
		return 4
	}
	return 3
}
