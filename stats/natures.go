package stats

// Nature names a stat-bending nature. Neutral natures raise and lower the same
// stat, leaving every multiplier at 1.
type Nature string

type natureData struct {
	Plus  Stat
	Minus Stat
}

var natures = map[Nature]natureData{
	"Adamant": {Atk, SpA},
	"Bashful": {SpA, SpA},
	"Bold":    {Def, Atk},
	"Brave":   {Atk, Spe},
	"Calm":    {SpD, Atk},
	"Careful": {SpD, SpA},
	"Docile":  {Def, Def},
	"Gentle":  {SpD, Def},
	"Hardy":   {Atk, Atk},
	"Hasty":   {Spe, Def},
	"Impish":  {Def, SpA},
	"Jolly":   {Spe, SpA},
	"Lax":     {Def, SpD},
	"Lonely":  {Atk, Def},
	"Mild":    {SpA, Def},
	"Modest":  {SpA, Atk},
	"Naive":   {Spe, SpD},
	"Naughty": {Atk, SpD},
	"Quiet":   {SpA, Spe},
	"Quirky":  {SpD, SpD},
	"Rash":    {SpA, SpD},
	"Relaxed": {Def, Spe},
	"Sassy":   {SpD, Spe},
	"Serious": {Spe, Spe},
	"Timid":   {Spe, Atk},
}

// KnownNature reports whether name is a recognized nature.
func KnownNature(name Nature) bool {
	_, ok := natures[name]
	return ok
}

// NatureNames lists every recognized nature in no particular order.
func NatureNames() []Nature {
	names := make([]Nature, 0, len(natures))
	for name := range natures {
		names = append(names, name)
	}
	return names
}

// NeutralNature reports whether the nature applies no multiplier.
func (n Nature) Neutral() bool {
	data, ok := natures[n]
	return ok && data.Plus == data.Minus
}

// DefaultNature returns the neutral nature applied when a spread carries none.
// Legacy generations have no natures at all; callers gate on that before use.
func DefaultNature() Nature {
	return "Hardy"
}

func (n Nature) multiplierNumerator(stat Stat) (num, den int) {
	data, ok := natures[n]
	if !ok || data.Plus == data.Minus || stat == HP {
		return 1, 1
	}
	switch stat {
	case data.Plus:
		return 11, 10
	case data.Minus:
		return 9, 10
	}
	return 1, 1
}
