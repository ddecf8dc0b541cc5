package presets

import (
	"calcdex/battle"
	"calcdex/dex"
	"calcdex/stats"
)

// GuessSpread runs the constrained nature x IV/EV search that reproduces a
// server-reported stat line. Natures are tried neutral-first so an ambiguous
// line resolves to the least surprising spread. Returns ok=false when no
// legal combination reproduces every stat.
func GuessSpread(gen int, base stats.Table, level int, reported stats.Table) (battle.Spread, bool) {
	if level <= 0 || base == (stats.Table{}) {
		return battle.Spread{}, false
	}
	for _, nature := range natureSearchOrder(gen) {
		spread, ok := solveSpread(gen, base, level, reported, nature)
		if !ok {
			continue
		}
		return spread, true
	}
	return battle.Spread{}, false
}

// natureSearchOrder yields Hardy first, then the rest of the table. Legacy
// generations have no natures, so only the neutral entry is tried.
func natureSearchOrder(gen int) []stats.Nature {
	if dex.LegacyGen(gen) {
		return []stats.Nature{""}
	}
	names := stats.NatureNames()
	order := make([]stats.Nature, 0, len(names)+1)
	order = append(order, "Hardy")
	for _, name := range names {
		if name != "Hardy" {
			order = append(order, name)
		}
	}
	return order
}

func solveSpread(gen int, base stats.Table, level int, reported stats.Table, nature stats.Nature) (battle.Spread, bool) {
	spread := battle.Spread{Nature: nature}
	evBudget := 510
	for stat := stats.HP; stat <= stats.Spe; stat++ {
		if reported[stat] <= 0 {
			spread.IVs[stat] = 31
			continue
		}
		iv, ev, ok := solveStat(gen, stat, base[stat], level, reported[stat], nature)
		if !ok {
			return battle.Spread{}, false
		}
		spread.IVs[stat] = iv
		spread.EVs[stat] = ev
		evBudget -= ev
	}
	if !dex.LegacyGen(gen) && evBudget < 0 {
		return battle.Spread{}, false
	}
	return spread, true
}

// solveStat finds an (iv, ev) pair reproducing one reported stat. IVs are
// scanned max-first and EVs in legal increments of 4, so a stat reachable
// with max IVs and no EVs resolves to exactly that.
func solveStat(gen int, stat stats.Stat, base, level, reported int, nature stats.Nature) (int, int, bool) {
	maxEV := 252
	if dex.LegacyGen(gen) {
		maxEV = 255
	}
	for iv := 31; iv >= 0; iv-- {
		for ev := 0; ev <= maxEV; ev += 4 {
			if stats.CalcStat(gen, stat, base, iv, ev, level, nature) == reported {
				return iv, ev, true
			}
		}
	}
	return 0, 0, false
}

// defaultIVs is the spread applied on the default-reset branch.
func defaultIVs(gen int) stats.Table {
	if dex.LegacyGen(gen) {
		// Max DVs, expressed on the IV scale.
		return stats.Table{30, 30, 30, 30, 30, 30}
	}
	return stats.DefaultIVs()
}

// defaultEVs maxes stat experience for legacy generations, where every stat
// can be fully trained at once.
func defaultEVs(gen int) stats.Table {
	if dex.LegacyGen(gen) {
		return stats.Table{252, 252, 252, 252, 252, 252}
	}
	return stats.DefaultEVs()
}
