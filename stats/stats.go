package stats

// Stat indexes the six battle stats in canonical order.
type Stat int

const (
	HP Stat = iota
	Atk
	Def
	SpA
	SpD
	Spe

	NumStats int = 6
)

var statIDs = [NumStats]string{"hp", "atk", "def", "spa", "spd", "spe"}

func (s Stat) String() string {
	if s < 0 || int(s) >= NumStats {
		return "???"
	}
	return statIDs[s]
}

// StatFromID resolves a lowercase stat id back to its index. Unknown ids
// report ok=false so callers can skip malformed payload keys.
func StatFromID(id string) (Stat, bool) {
	for i, candidate := range statIDs {
		if candidate == id {
			return Stat(i), true
		}
	}
	return 0, false
}

// Table holds one integer per stat: base stats, IVs, EVs, or computed spreads.
type Table [NumStats]int

// Boosts holds per-stat stage deltas in the -6..+6 range. The HP slot is
// carried for uniform indexing but never boosted.
type Boosts [NumStats]int

// Merge overlays the non-negative entries of patch onto t, returning the
// result. Negative entries mean "leave unchanged" so partial IV/EV patches can
// ride the same shape as full tables.
func (t Table) Merge(patch Table) Table {
	merged := t
	for i := 0; i < NumStats; i++ {
		if patch[i] >= 0 {
			merged[i] = patch[i]
		}
	}
	return merged
}

// Unset returns a table with every slot negative, the sentinel for "no entry"
// in partial patches.
func Unset() Table {
	var t Table
	for i := range t {
		t[i] = -1
	}
	return t
}

// DefaultIVs returns the table applied when no spread information exists:
// maxed IVs for modern play.
func DefaultIVs() Table {
	return Table{31, 31, 31, 31, 31, 31}
}

// DefaultEVs returns the zeroed EV table.
func DefaultEVs() Table {
	return Table{}
}
