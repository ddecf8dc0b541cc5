package dex

import "calcdex/stats"

// SpeciesData carries the canonical per-forme species record.
type SpeciesData struct {
	Name        string
	Num         int
	Gen         int
	Types       []Type
	BaseStats   stats.Table
	Abilities   []string
	BaseSpecies string
	Forme       string
	IsMega      bool
	GMaxMove    string
}

// Species resolves a species or forme by display name or id, scoped to the
// dex generation. Formes introduced after the dex generation are misses, and
// legacy generations report no ability pool.
func (d Dex) Species(name string) (SpeciesData, bool) {
	data, ok := speciesTable[ToID(name)]
	if !ok || data.Gen > d.Gen {
		return SpeciesData{}, false
	}
	out := data
	out.Types = append([]Type(nil), data.Types...)
	if LegacyGen(d.Gen) {
		out.Abilities = nil
	} else {
		out.Abilities = append([]string(nil), data.Abilities...)
	}
	if d.Gen == 1 {
		// Gen 1 has a single special stat.
		out.BaseStats[stats.SpD] = out.BaseStats[stats.SpA]
	}
	return out, true
}

func bs(hp, atk, def, spa, spd, spe int) stats.Table {
	return stats.Table{hp, atk, def, spa, spd, spe}
}

var speciesTable = map[string]SpeciesData{
	"venusaur":  {Name: "Venusaur", Num: 3, Gen: 1, Types: []Type{"Grass", "Poison"}, BaseStats: bs(80, 82, 83, 100, 100, 80), Abilities: []string{"Overgrow", "Chlorophyll"}},
	"charizard": {Name: "Charizard", Num: 6, Gen: 1, Types: []Type{"Fire", "Flying"}, BaseStats: bs(78, 84, 78, 109, 85, 100), Abilities: []string{"Blaze", "Solar Power"}},
	"charizardgmax": {Name: "Charizard-Gmax", Num: 6, Gen: 8, Types: []Type{"Fire", "Flying"}, BaseStats: bs(78, 84, 78, 109, 85, 100),
		Abilities: []string{"Blaze", "Solar Power"}, BaseSpecies: "Charizard", Forme: "Gmax", GMaxMove: "G-Max Wildfire"},
	"blastoise": {Name: "Blastoise", Num: 9, Gen: 1, Types: []Type{"Water"}, BaseStats: bs(79, 83, 100, 85, 105, 78), Abilities: []string{"Torrent", "Rain Dish"}},
	"pikachu":   {Name: "Pikachu", Num: 25, Gen: 1, Types: []Type{"Electric"}, BaseStats: bs(35, 55, 40, 50, 50, 90), Abilities: []string{"Static", "Lightning Rod"}},
	"dugtrio":   {Name: "Dugtrio", Num: 51, Gen: 1, Types: []Type{"Ground"}, BaseStats: bs(35, 100, 50, 50, 70, 120), Abilities: []string{"Sand Veil", "Arena Trap", "Sand Force"}},
	"alakazam":  {Name: "Alakazam", Num: 65, Gen: 1, Types: []Type{"Psychic"}, BaseStats: bs(55, 50, 45, 135, 95, 120), Abilities: []string{"Synchronize", "Inner Focus", "Magic Guard"}},
	"gengar":    {Name: "Gengar", Num: 94, Gen: 1, Types: []Type{"Ghost", "Poison"}, BaseStats: bs(60, 65, 60, 130, 75, 110), Abilities: []string{"Cursed Body"}},
	"gengarmega": {Name: "Gengar-Mega", Num: 94, Gen: 6, Types: []Type{"Ghost", "Poison"}, BaseStats: bs(60, 65, 80, 170, 95, 130),
		Abilities: []string{"Shadow Tag"}, BaseSpecies: "Gengar", Forme: "Mega", IsMega: true},
	"chansey":   {Name: "Chansey", Num: 113, Gen: 1, Types: []Type{"Normal"}, BaseStats: bs(250, 5, 5, 35, 105, 50), Abilities: []string{"Natural Cure", "Serene Grace", "Healer"}},
	"tauros":    {Name: "Tauros", Num: 128, Gen: 1, Types: []Type{"Normal"}, BaseStats: bs(75, 100, 95, 40, 70, 110), Abilities: []string{"Intimidate", "Anger Point", "Sheer Force"}},
	"snorlax":   {Name: "Snorlax", Num: 143, Gen: 1, Types: []Type{"Normal"}, BaseStats: bs(160, 110, 65, 65, 110, 30), Abilities: []string{"Immunity", "Thick Fat", "Gluttony"}},
	"dragonite": {Name: "Dragonite", Num: 149, Gen: 1, Types: []Type{"Dragon", "Flying"}, BaseStats: bs(91, 134, 95, 100, 100, 80), Abilities: []string{"Inner Focus", "Multiscale"}},
	"mewtwo":    {Name: "Mewtwo", Num: 150, Gen: 1, Types: []Type{"Psychic"}, BaseStats: bs(106, 110, 90, 154, 90, 130), Abilities: []string{"Pressure", "Unnerve"}},
	"zapdos":    {Name: "Zapdos", Num: 145, Gen: 1, Types: []Type{"Electric", "Flying"}, BaseStats: bs(90, 90, 85, 125, 90, 100), Abilities: []string{"Pressure", "Static"}},

	"espeon":    {Name: "Espeon", Num: 196, Gen: 2, Types: []Type{"Psychic"}, BaseStats: bs(65, 65, 60, 130, 95, 110), Abilities: []string{"Synchronize", "Magic Bounce"}},
	"skarmory":  {Name: "Skarmory", Num: 227, Gen: 2, Types: []Type{"Steel", "Flying"}, BaseStats: bs(65, 80, 140, 40, 70, 70), Abilities: []string{"Keen Eye", "Sturdy", "Weak Armor"}},
	"politoed":  {Name: "Politoed", Num: 186, Gen: 2, Types: []Type{"Water"}, BaseStats: bs(90, 75, 75, 90, 100, 70), Abilities: []string{"Water Absorb", "Damp", "Drizzle"}},
	"tyranitar": {Name: "Tyranitar", Num: 248, Gen: 2, Types: []Type{"Rock", "Dark"}, BaseStats: bs(100, 134, 110, 95, 100, 61), Abilities: []string{"Sand Stream", "Unnerve"}},
	"blissey":   {Name: "Blissey", Num: 242, Gen: 2, Types: []Type{"Normal"}, BaseStats: bs(255, 10, 10, 75, 135, 55), Abilities: []string{"Natural Cure", "Serene Grace", "Healer"}},

	"gardevoir":  {Name: "Gardevoir", Num: 282, Gen: 3, Types: []Type{"Psychic", "Fairy"}, BaseStats: bs(68, 65, 65, 125, 115, 80), Abilities: []string{"Synchronize", "Trace", "Telepathy"}},
	"salamence":  {Name: "Salamence", Num: 373, Gen: 3, Types: []Type{"Dragon", "Flying"}, BaseStats: bs(95, 135, 80, 110, 80, 100), Abilities: []string{"Intimidate", "Moxie"}},
	"salamencemega": {Name: "Salamence-Mega", Num: 373, Gen: 6, Types: []Type{"Dragon", "Flying"}, BaseStats: bs(95, 145, 130, 120, 90, 120),
		Abilities: []string{"Aerilate"}, BaseSpecies: "Salamence", Forme: "Mega", IsMega: true},
	"torkoal":  {Name: "Torkoal", Num: 324, Gen: 3, Types: []Type{"Fire"}, BaseStats: bs(70, 85, 140, 85, 70, 20), Abilities: []string{"White Smoke", "Drought", "Shell Armor"}},
	"pelipper": {Name: "Pelipper", Num: 279, Gen: 3, Types: []Type{"Water", "Flying"}, BaseStats: bs(60, 50, 100, 95, 70, 65), Abilities: []string{"Keen Eye", "Drizzle", "Rain Dish"}},

	"garchomp":   {Name: "Garchomp", Num: 445, Gen: 4, Types: []Type{"Dragon", "Ground"}, BaseStats: bs(108, 130, 95, 80, 85, 102), Abilities: []string{"Sand Veil", "Rough Skin"}},
	"heatran":    {Name: "Heatran", Num: 485, Gen: 4, Types: []Type{"Fire", "Steel"}, BaseStats: bs(91, 90, 106, 130, 106, 77), Abilities: []string{"Flash Fire", "Flame Body"}},
	"gliscor":    {Name: "Gliscor", Num: 472, Gen: 4, Types: []Type{"Ground", "Flying"}, BaseStats: bs(75, 95, 125, 45, 75, 95), Abilities: []string{"Hyper Cutter", "Sand Veil", "Poison Heal"}},
	"abomasnow":  {Name: "Abomasnow", Num: 460, Gen: 4, Types: []Type{"Grass", "Ice"}, BaseStats: bs(90, 92, 75, 92, 85, 60), Abilities: []string{"Snow Warning", "Soundproof"}},
	"rotomwash":  {Name: "Rotom-Wash", Num: 479, Gen: 4, Types: []Type{"Electric", "Water"}, BaseStats: bs(50, 65, 107, 105, 107, 86), Abilities: []string{"Levitate"}, BaseSpecies: "Rotom", Forme: "Wash"},
	"ferrothorn": {Name: "Ferrothorn", Num: 598, Gen: 5, Types: []Type{"Grass", "Steel"}, BaseStats: bs(74, 94, 131, 54, 116, 20), Abilities: []string{"Iron Barbs", "Anticipation"}},
	"excadrill":  {Name: "Excadrill", Num: 530, Gen: 5, Types: []Type{"Ground", "Steel"}, BaseStats: bs(110, 135, 60, 50, 65, 88), Abilities: []string{"Sand Rush", "Sand Force", "Mold Breaker"}},
	"landorustherian": {Name: "Landorus-Therian", Num: 645, Gen: 5, Types: []Type{"Ground", "Flying"}, BaseStats: bs(89, 145, 90, 105, 80, 91),
		Abilities: []string{"Intimidate"}, BaseSpecies: "Landorus", Forme: "Therian"},

	"gumshoos":  {Name: "Gumshoos", Num: 735, Gen: 7, Types: []Type{"Normal"}, BaseStats: bs(88, 110, 60, 55, 60, 45), Abilities: []string{"Stakeout", "Strong Jaw", "Adaptability"}},
	"tapukoko":  {Name: "Tapu Koko", Num: 785, Gen: 7, Types: []Type{"Electric", "Fairy"}, BaseStats: bs(70, 115, 85, 95, 75, 130), Abilities: []string{"Electric Surge", "Telepathy"}},
	"tapulele":  {Name: "Tapu Lele", Num: 786, Gen: 7, Types: []Type{"Psychic", "Fairy"}, BaseStats: bs(70, 85, 75, 130, 115, 95), Abilities: []string{"Psychic Surge", "Telepathy"}},
	"incineroar": {Name: "Incineroar", Num: 727, Gen: 7, Types: []Type{"Fire", "Dark"}, BaseStats: bs(95, 115, 90, 80, 90, 60), Abilities: []string{"Blaze", "Intimidate"}},

	"rillaboom": {Name: "Rillaboom", Num: 812, Gen: 8, Types: []Type{"Grass"}, BaseStats: bs(100, 125, 90, 60, 70, 85), Abilities: []string{"Overgrow", "Grassy Surge"}},
	"indeedee":  {Name: "Indeedee", Num: 876, Gen: 8, Types: []Type{"Psychic", "Normal"}, BaseStats: bs(60, 65, 55, 105, 95, 95), Abilities: []string{"Inner Focus", "Synchronize", "Psychic Surge"}},
	"urshifu":   {Name: "Urshifu", Num: 892, Gen: 8, Types: []Type{"Fighting", "Dark"}, BaseStats: bs(100, 130, 100, 63, 60, 97), Abilities: []string{"Unseen Fist"}},
	"zacian": {Name: "Zacian", Num: 888, Gen: 8, Types: []Type{"Fairy"}, BaseStats: bs(92, 120, 115, 80, 115, 138), Abilities: []string{"Intrepid Sword"}},
	"zaciancrowned": {Name: "Zacian-Crowned", Num: 888, Gen: 8, Types: []Type{"Fairy", "Steel"}, BaseStats: bs(92, 150, 115, 80, 115, 148),
		Abilities: []string{"Intrepid Sword"}, BaseSpecies: "Zacian", Forme: "Crowned"},
	"zamazenta": {Name: "Zamazenta", Num: 889, Gen: 8, Types: []Type{"Fighting"}, BaseStats: bs(92, 120, 115, 80, 115, 138), Abilities: []string{"Dauntless Shield"}},
	"zamazentacrowned": {Name: "Zamazenta-Crowned", Num: 889, Gen: 8, Types: []Type{"Fighting", "Steel"}, BaseStats: bs(92, 120, 140, 80, 140, 128),
		Abilities: []string{"Dauntless Shield"}, BaseSpecies: "Zamazenta", Forme: "Crowned"},

	"greattusk":   {Name: "Great Tusk", Num: 984, Gen: 9, Types: []Type{"Ground", "Fighting"}, BaseStats: bs(115, 131, 131, 53, 53, 87), Abilities: []string{"Protosynthesis"}},
	"fluttermane": {Name: "Flutter Mane", Num: 987, Gen: 9, Types: []Type{"Ghost", "Fairy"}, BaseStats: bs(55, 55, 55, 135, 135, 135), Abilities: []string{"Protosynthesis"}},
	"ironvaliant": {Name: "Iron Valiant", Num: 1006, Gen: 9, Types: []Type{"Fairy", "Fighting"}, BaseStats: bs(74, 130, 90, 120, 60, 116), Abilities: []string{"Quark Drive"}},
	"ironmoth":    {Name: "Iron Moth", Num: 994, Gen: 9, Types: []Type{"Fire", "Poison"}, BaseStats: bs(80, 70, 60, 140, 110, 110), Abilities: []string{"Quark Drive"}},
	"wochien":     {Name: "Wo-Chien", Num: 1001, Gen: 9, Types: []Type{"Dark", "Grass"}, BaseStats: bs(85, 85, 100, 95, 135, 70), Abilities: []string{"Tablets of Ruin"}},
	"chienpao":    {Name: "Chien-Pao", Num: 1002, Gen: 9, Types: []Type{"Dark", "Ice"}, BaseStats: bs(80, 120, 80, 90, 65, 135), Abilities: []string{"Sword of Ruin"}},
	"tinglu":      {Name: "Ting-Lu", Num: 1003, Gen: 9, Types: []Type{"Dark", "Ground"}, BaseStats: bs(155, 110, 125, 55, 80, 45), Abilities: []string{"Vessel of Ruin"}},
	"chiyu":       {Name: "Chi-Yu", Num: 1004, Gen: 9, Types: []Type{"Dark", "Fire"}, BaseStats: bs(55, 80, 80, 135, 120, 100), Abilities: []string{"Beads of Ruin"}},
	"kingambit":   {Name: "Kingambit", Num: 983, Gen: 9, Types: []Type{"Dark", "Steel"}, BaseStats: bs(100, 135, 120, 60, 85, 50), Abilities: []string{"Defiant", "Supreme Overlord", "Pressure"}},
	"koraidon":    {Name: "Koraidon", Num: 1007, Gen: 9, Types: []Type{"Fighting", "Dragon"}, BaseStats: bs(100, 135, 115, 85, 100, 135), Abilities: []string{"Orichalcum Pulse"}},
	"miraidon":    {Name: "Miraidon", Num: 1008, Gen: 9, Types: []Type{"Electric", "Dragon"}, BaseStats: bs(100, 85, 100, 135, 115, 135), Abilities: []string{"Hadron Engine"}},
	"ogerpon": {Name: "Ogerpon", Num: 1017, Gen: 9, Types: []Type{"Grass"}, BaseStats: bs(80, 120, 84, 60, 96, 110), Abilities: []string{"Defiant"}},
	"ogerponwellspring": {Name: "Ogerpon-Wellspring", Num: 1017, Gen: 9, Types: []Type{"Grass", "Water"}, BaseStats: bs(80, 120, 84, 60, 96, 110),
		Abilities: []string{"Water Absorb", "Embody Aspect (Wellspring)"}, BaseSpecies: "Ogerpon", Forme: "Wellspring"},
	"ogerponhearthflame": {Name: "Ogerpon-Hearthflame", Num: 1017, Gen: 9, Types: []Type{"Grass", "Fire"}, BaseStats: bs(80, 120, 84, 60, 96, 110),
		Abilities: []string{"Mold Breaker", "Embody Aspect (Hearthflame)"}, BaseSpecies: "Ogerpon", Forme: "Hearthflame"},
	"ogerponcornerstone": {Name: "Ogerpon-Cornerstone", Num: 1017, Gen: 9, Types: []Type{"Grass", "Rock"}, BaseStats: bs(80, 120, 84, 60, 96, 110),
		Abilities: []string{"Sturdy", "Embody Aspect (Cornerstone)"}, BaseSpecies: "Ogerpon", Forme: "Cornerstone"},
	"dondozo": {Name: "Dondozo", Num: 977, Gen: 9, Types: []Type{"Water"}, BaseStats: bs(150, 100, 115, 65, 65, 35), Abilities: []string{"Unaware", "Oblivious", "Water Veil"}},
}
