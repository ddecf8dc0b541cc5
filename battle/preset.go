package battle

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"calcdex/dex"
	"calcdex/stats"
)

// Spread is one statistical variant under a named set.
type Spread struct {
	Nature stats.Nature `json:"nature"`
	IVs    stats.Table  `json:"ivs"`
	EVs    stats.Table  `json:"evs"`
	Usage  float64      `json:"usage,omitempty"`
}

// Preset is an immutable, named bundle of ability/item/nature/spread/move
// choices for one species forme. Its CalcdexID is a checksum of the defining
// content, so two structurally identical presets share an identity.
type Preset struct {
	CalcdexID    string       `json:"calcdexId"`
	Name         string       `json:"name"`
	Source       Source       `json:"source"`
	PlayerKey    PlayerKey    `json:"playerKey,omitempty"`
	Gen          int          `json:"gen"`
	Format       string       `json:"format,omitempty"`
	SpeciesForme string       `json:"speciesForme"`
	Level        int          `json:"level,omitempty"`
	Ability      string       `json:"ability,omitempty"`
	AltAbilities []string     `json:"altAbilities,omitempty"`
	Item         string       `json:"item,omitempty"`
	AltItems     []string     `json:"altItems,omitempty"`
	Nature       stats.Nature `json:"nature,omitempty"`
	IVs          stats.Table  `json:"ivs"`
	EVs          stats.Table  `json:"evs"`
	Moves        []string     `json:"moves,omitempty"`
	AltMoves     []string     `json:"altMoves,omitempty"`
	TeraTypes    []dex.Type   `json:"teraTypes,omitempty"`
	Spreads      []Spread     `json:"spreads,omitempty"`
	Usage        float64      `json:"usage,omitempty"`
}

// Finalize stamps the content-derived id and returns the preset. Call after
// construction; presets are treated as immutable afterwards.
func (p Preset) Finalize() Preset {
	p.CalcdexID = p.contentID()
	return p
}

// contentID hashes the defining fields with stable ordering. Alt pools are
// sorted so authoring order never changes the identity.
func (p Preset) contentID() string {
	h := fnv.New64a()
	write := func(parts ...string) {
		for _, part := range parts {
			h.Write([]byte(part))
			h.Write([]byte{0})
		}
	}
	write(p.Name, string(p.Source), string(p.PlayerKey), p.Format, p.SpeciesForme,
		p.Ability, p.Item, string(p.Nature))
	write(fmt.Sprintf("%d|%d", p.Gen, p.Level))
	write(tableKey(p.IVs), tableKey(p.EVs))
	write(sortedKey(p.AltAbilities), sortedKey(p.AltItems))
	write(strings.Join(p.Moves, ","), sortedKey(p.AltMoves))
	teras := make([]string, len(p.TeraTypes))
	for i, t := range p.TeraTypes {
		teras[i] = string(t)
	}
	write(sortedKey(teras))
	for _, spread := range p.Spreads {
		write(string(spread.Nature), tableKey(spread.IVs), tableKey(spread.EVs))
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func tableKey(t stats.Table) string {
	return fmt.Sprintf("%d/%d/%d/%d/%d/%d", t[0], t[1], t[2], t[3], t[4], t[5])
}

func sortedKey(values []string) string {
	if len(values) == 0 {
		return ""
	}
	copied := append([]string(nil), values...)
	sort.Strings(copied)
	return strings.Join(copied, ",")
}

// CompleteSpread reports whether the preset pins an exact nature and a full
// IV/EV line, as opposed to a partial open-team-sheet reveal.
func (p Preset) CompleteSpread() bool {
	if !stats.KnownNature(p.Nature) {
		return false
	}
	ivs := false
	evs := 0
	for i := 0; i < stats.NumStats; i++ {
		if p.IVs[i] > 0 {
			ivs = true
		}
		evs += p.EVs[i]
	}
	return ivs && evs > 0
}

// MatchesSpecies reports whether the preset targets the given forme.
func (p Preset) MatchesSpecies(speciesForme string) bool {
	return dex.ToID(p.SpeciesForme) == dex.ToID(speciesForme)
}

// pool returns the full candidate pool for a slot: the primary choice plus
// alternates.
func pool(primary string, alts []string) []string {
	if primary == "" {
		return alts
	}
	out := make([]string, 0, len(alts)+1)
	out = append(out, primary)
	for _, alt := range alts {
		if !strings.EqualFold(alt, primary) {
			out = append(out, alt)
		}
	}
	return out
}

// AbilityPool lists the preset's candidate abilities.
func (p Preset) AbilityPool() []string { return pool(p.Ability, p.AltAbilities) }

// ItemPool lists the preset's candidate items.
func (p Preset) ItemPool() []string { return pool(p.Item, p.AltItems) }

// MovePool lists the preset's candidate moves.
func (p Preset) MovePool() []string { return pool("", append(append([]string(nil), p.Moves...), p.AltMoves...)) }
