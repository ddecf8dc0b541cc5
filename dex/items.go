package dex

// ItemData carries the canonical per-item record.
type ItemData struct {
	Name string
	Gen  int
}

// Item resolves a held item by display name or id, scoped to the dex
// generation. Generation 1 has no held items.
func (d Dex) Item(name string) (ItemData, bool) {
	if d.Gen < 2 {
		return ItemData{}, false
	}
	data, ok := itemTable[ToID(name)]
	if !ok || data.Gen > d.Gen {
		return ItemData{}, false
	}
	return data, true
}

func item(name string, gen int) ItemData {
	return ItemData{Name: name, Gen: gen}
}

var itemTable = buildItemTable()

func buildItemTable() map[string]ItemData {
	list := []ItemData{
		item("Leftovers", 2),
		item("Heavy-Duty Boots", 8),
		item("Choice Band", 3),
		item("Choice Specs", 4),
		item("Choice Scarf", 4),
		item("Life Orb", 4),
		item("Focus Sash", 4),
		item("Assault Vest", 6),
		item("Eviolite", 5),
		item("Light Ball", 2),
		item("Booster Energy", 9),
		item("Electric Seed", 7),
		item("Grassy Seed", 7),
		item("Psychic Seed", 7),
		item("Misty Seed", 7),
		item("Clear Amulet", 9),
		item("Covert Cloak", 9),
		item("Rusted Sword", 8),
		item("Rusted Shield", 8),
		item("Rocky Helmet", 5),
		item("Black Sludge", 4),
		item("Air Balloon", 5),
		item("Toxic Orb", 4),
		item("Flame Orb", 4),
		item("Expert Belt", 4),
		item("Weakness Policy", 6),
		item("Loaded Dice", 9),
	}
	table := make(map[string]ItemData, len(list))
	for _, i := range list {
		table[ToID(i.Name)] = i
	}
	return table
}
