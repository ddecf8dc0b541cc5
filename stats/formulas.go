package stats

import "math"

// LegacyGenCutoff is the first generation with natures, abilities, and the
// modern stat formula. Generations below it run on DVs and stat experience.
const LegacyGenCutoff = 3

// CalcStat computes one stat from its inputs using the formula for the given
// generation. Nature is ignored for HP and for legacy generations.
func CalcStat(gen int, stat Stat, base, iv, ev, level int, nature Nature) int {
	if base <= 0 || level <= 0 {
		return 0
	}
	if gen < LegacyGenCutoff {
		return legacyStat(stat, base, iv, ev, level)
	}
	if stat == HP {
		if base == 1 {
			// Shedinja's fixed 1 HP.
			return 1
		}
		return (2*base+iv+ev/4)*level/100 + level + 10
	}
	value := (2*base+iv+ev/4)*level/100 + 5
	num, den := nature.multiplierNumerator(stat)
	return value * num / den
}

// legacyStat applies the DV-based gen 1-2 formula. The incoming iv uses the
// modern 0-31 scale and is halved into a 0-15 DV; ev carries stat experience
// capped at 65535.
func legacyStat(stat Stat, base, iv, ev, level int) int {
	dv := clampInt(iv, 0, 31) / 2
	exp := clampInt(ev, 0, 65535)
	expBonus := int(math.Sqrt(float64(exp))) / 4
	value := (2*(base+dv) + expBonus) * level / 100
	if stat == HP {
		return value + level + 10
	}
	return value + 5
}

// SpreadStats recomputes the full stat table. For legacy generations the
// SpA/SpD slots both derive from the special stat, so the caller is expected
// to have run LegacySanitizeIVs first (SpreadStats tolerates either way).
func SpreadStats(gen int, base, ivs, evs Table, level int, nature Nature) Table {
	var spread Table
	for i := 0; i < NumStats; i++ {
		spread[i] = CalcStat(gen, Stat(i), base[i], ivs[i], evs[i], level, nature)
	}
	return spread
}

// LegacyHPDV derives the HP DV from the parity bits of the other DVs, the way
// the original games did.
func LegacyHPDV(ivs Table) int {
	atk := ivs[Atk] / 2
	def := ivs[Def] / 2
	spe := ivs[Spe] / 2
	spc := ivs[SpA] / 2
	return (atk&1)<<3 | (def&1)<<2 | (spe&1)<<1 | spc&1
}

// LegacySanitizeIVs normalizes an IV table for legacy play: the special stat
// is shared (SpA mirrors into SpD) and HP is always recomputed from the DV
// parity formula, never taken from user input.
func LegacySanitizeIVs(ivs Table) Table {
	sanitized := ivs
	sanitized[SpD] = sanitized[SpA]
	sanitized[HP] = LegacyHPDV(sanitized) * 2
	return sanitized
}

// MaxHP computes the HP stat for the given inputs.
func MaxHP(gen, base, iv, ev, level int) int {
	return CalcStat(gen, HP, base, iv, ev, level, "")
}

// CurrentHP resolves a reported HP value into hit points. In percentage mode
// the value is a 0-1 fraction of max (typical for unowned Pokémon); in exact
// mode it is already hit points.
func CurrentHP(maxHP int, value float64, percentage bool) int {
	if maxHP <= 0 {
		return 0
	}
	var hp int
	if percentage {
		hp = int(math.Round(value * float64(maxHP)))
	} else {
		hp = int(math.Round(value))
	}
	return clampInt(hp, 0, maxHP)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
