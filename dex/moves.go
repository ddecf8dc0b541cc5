package dex

import "calcdex/stats"

// MoveData carries the canonical per-move record. OverrideOffensiveStat and
// OverrideDefensiveStat mark the canonical stat-pair exceptions (a special
// move hitting physical Defense and the like); stats.Stat(-1) means "no
// override".
type MoveData struct {
	Name                 string
	Gen                  int
	Type                 Type
	Category             Category
	BasePower            int
	ZBasePower           int
	MaxBasePower         int
	OverrideOffensiveStat stats.Stat
	OverrideDefensiveStat stats.Stat
	WillCrit             bool
	MinHits              int
	MaxHits              int
	Desc                 string
}

// NoStat is the sentinel for an absent stat override.
const NoStat = stats.Stat(-1)

// Move resolves a move by display name or id, scoped to the dex generation.
// Z and Max base powers are zeroed outside the generations that support them.
func (d Dex) Move(name string) (MoveData, bool) {
	data, ok := moveTable[ToID(name)]
	if !ok || data.Gen > d.Gen {
		return MoveData{}, false
	}
	out := data
	if out.ZBasePower == 0 {
		out.ZBasePower = zBasePower(out.BasePower)
	}
	if out.MaxBasePower == 0 {
		out.MaxBasePower = maxBasePower(out.Type, out.BasePower)
	}
	if d.Gen != 7 {
		out.ZBasePower = 0
	}
	if d.Gen != 8 {
		out.MaxBasePower = 0
	}
	return out, true
}

// zBasePower maps a base power onto the standard Z-move power band.
func zBasePower(bp int) int {
	switch {
	case bp <= 0:
		return 0
	case bp <= 55:
		return 100
	case bp <= 65:
		return 120
	case bp <= 75:
		return 140
	case bp <= 85:
		return 160
	case bp <= 95:
		return 175
	case bp <= 100:
		return 180
	case bp <= 110:
		return 185
	case bp <= 125:
		return 190
	case bp <= 130:
		return 195
	default:
		return 200
	}
}

// maxBasePower maps a base power onto the Max Move band. Fighting and Poison
// share a weaker band than the other types.
func maxBasePower(typ Type, bp int) int {
	if bp <= 0 {
		return 0
	}
	weak := typ == "Fighting" || typ == "Poison"
	switch {
	case bp <= 40:
		if weak {
			return 70
		}
		return 90
	case bp <= 50:
		if weak {
			return 75
		}
		return 100
	case bp <= 60:
		if weak {
			return 80
		}
		return 110
	case bp <= 70:
		if weak {
			return 85
		}
		return 120
	case bp <= 100:
		if weak {
			return 90
		}
		return 130
	case bp <= 140:
		if weak {
			return 95
		}
		return 140
	default:
		if weak {
			return 100
		}
		return 150
	}
}

func move(name string, gen int, typ Type, cat Category, bp int) MoveData {
	return MoveData{Name: name, Gen: gen, Type: typ, Category: cat, BasePower: bp,
		OverrideOffensiveStat: NoStat, OverrideDefensiveStat: NoStat, MinHits: 1, MaxHits: 1}
}

func statusMove(name string, gen int, typ Type) MoveData {
	return move(name, gen, typ, Status, 0)
}

var moveTable = buildMoveTable()

func buildMoveTable() map[string]MoveData {
	list := []MoveData{
		move("Tackle", 1, "Normal", Physical, 40),
		move("Body Slam", 1, "Normal", Physical, 85),
		move("Hyper Beam", 1, "Normal", Special, 150),
		move("Earthquake", 1, "Ground", Physical, 100),
		move("Thunderbolt", 1, "Electric", Special, 90),
		move("Surf", 1, "Water", Special, 90),
		move("Ice Beam", 1, "Ice", Special, 90),
		move("Blizzard", 1, "Ice", Special, 110),
		move("Flamethrower", 1, "Fire", Special, 90),
		move("Fire Blast", 1, "Fire", Special, 110),
		move("Psychic", 1, "Psychic", Special, 90),
		move("Rock Slide", 1, "Rock", Physical, 75),
		statusMove("Rest", 1, "Psychic"),
		statusMove("Recover", 1, "Normal"),
		statusMove("Thunder Wave", 1, "Electric"),
		statusMove("Reflect", 1, "Psychic"),
		statusMove("Light Screen", 1, "Psychic"),
		statusMove("Toxic", 1, "Poison"),
		statusMove("Protect", 2, "Normal"),
		statusMove("Spikes", 2, "Ground"),
		statusMove("Stealth Rock", 4, "Rock"),
		statusMove("Toxic Spikes", 4, "Poison"),
		statusMove("Sticky Web", 6, "Bug"),
		statusMove("Swords Dance", 1, "Normal"),
		statusMove("Nasty Plot", 4, "Dark"),
		statusMove("Will-O-Wisp", 3, "Fire"),
		statusMove("Knock Off", 3, "Dark"),
		move("U-turn", 4, "Bug", Physical, 70),
		move("Close Combat", 4, "Fighting", Physical, 120),
		move("Iron Head", 4, "Steel", Physical, 80),
		move("Shadow Ball", 2, "Ghost", Special, 80),
		move("Moonblast", 6, "Fairy", Special, 95),
		move("Play Rough", 6, "Fairy", Physical, 90),
		move("Draco Meteor", 4, "Dragon", Special, 130),
		move("Dragon Claw", 3, "Dragon", Physical, 80),
		move("Leech Seed", 1, "Grass", Status, 0),
		move("Giga Drain", 2, "Grass", Special, 75),
		move("Wood Hammer", 4, "Grass", Physical, 120),
		move("Grassy Glide", 8, "Grass", Physical, 55),
		move("Volt Switch", 5, "Electric", Special, 70),
		move("Headlong Rush", 9, "Ground", Physical, 120),
		move("Ruination", 9, "Dark", Special, 1),
		move("Kowtow Cleave", 9, "Dark", Physical, 85),
		move("Sucker Punch", 4, "Dark", Physical, 70),
		move("Ivy Cudgel", 9, "Grass", Physical, 100),
	}

	// Stat-pair exceptions: special moves that calculate against Defense, and
	// Body Press attacking off the user's own Defense.
	psyshock := move("Psyshock", 5, "Psychic", Special, 80)
	psyshock.OverrideDefensiveStat = stats.Def
	psyshock.Desc = "Deals damage to the target based on its Defense instead of Special Defense."
	psystrike := move("Psystrike", 5, "Psychic", Special, 100)
	psystrike.OverrideDefensiveStat = stats.Def
	secretSword := move("Secret Sword", 5, "Fighting", Special, 85)
	secretSword.OverrideDefensiveStat = stats.Def
	bodyPress := move("Body Press", 8, "Fighting", Physical, 80)
	bodyPress.OverrideOffensiveStat = stats.Def
	bodyPress.Desc = "Damage is calculated using the user's Defense stat."

	// Guaranteed critical hits, both flagged and description-only.
	frostBreath := move("Frost Breath", 5, "Ice", Special, 60)
	frostBreath.WillCrit = true
	frostBreath.Desc = "This move is always a critical hit unless the target is protected from them."
	stormThrow := move("Storm Throw", 5, "Fighting", Physical, 60)
	stormThrow.WillCrit = true
	stormThrow.Desc = "This move is always a critical hit unless the target is protected from them."
	wickedBlow := move("Wicked Blow", 8, "Dark", Physical, 75)
	wickedBlow.Desc = "This move is always a critical hit unless the target has a crit-preventing ability."
	surgingStrikes := move("Surging Strikes", 8, "Water", Physical, 25)
	surgingStrikes.MinHits, surgingStrikes.MaxHits = 3, 3
	surgingStrikes.Desc = "Hits three times. This move is always a critical hit."
	flowerTrick := move("Flower Trick", 9, "Grass", Physical, 70)
	flowerTrick.WillCrit = true
	flowerTrick.Desc = "Never misses. Always results in a critical hit."

	// Crowned signature moves swap with the wielder's forme.
	behemothSword := move("Behemoth Sword", 8, "Steel", Physical, 100)
	behemothBash := move("Behemoth Bash", 8, "Steel", Physical, 100)

	bulletSeed := move("Bullet Seed", 3, "Grass", Physical, 25)
	bulletSeed.MinHits, bulletSeed.MaxHits = 2, 5
	rockBlast := move("Rock Blast", 3, "Rock", Physical, 25)
	rockBlast.MinHits, rockBlast.MaxHits = 2, 5

	gmaxWildfire := move("G-Max Wildfire", 8, "Fire", Physical, 160)

	list = append(list, psyshock, psystrike, secretSword, bodyPress, frostBreath,
		stormThrow, wickedBlow, surgingStrikes, flowerTrick, behemothSword,
		behemothBash, bulletSeed, rockBlast, gmaxWildfire)

	table := make(map[string]MoveData, len(list))
	for _, m := range list {
		table[ToID(m.Name)] = m
	}
	return table
}
