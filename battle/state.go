// Package battle owns the normalized battle-state model and the mutation
// orchestrator layered on top of it: players, Pokémon, field conditions,
// preset bookkeeping, change detection, and the partial-update patches every
// operation emits. The canonical simulator-owned battle object is never
// mutated here; snapshots flow in, patches flow out.
package battle

import (
	"crypto/rand"
	"encoding/hex"

	"calcdex/dex"
	"calcdex/mechanics"
	"calcdex/stats"
)

// PlayerKey identifies one of the four fixed player slots.
type PlayerKey string

const (
	PlayerP1 PlayerKey = "p1"
	PlayerP2 PlayerKey = "p2"
	PlayerP3 PlayerKey = "p3"
	PlayerP4 PlayerKey = "p4"
)

// PlayerKeys lists the slots in canonical order.
var PlayerKeys = []PlayerKey{PlayerP1, PlayerP2, PlayerP3, PlayerP4}

// ValidPlayerKey reports whether key names a known slot.
func ValidPlayerKey(key PlayerKey) bool {
	switch key {
	case PlayerP1, PlayerP2, PlayerP3, PlayerP4:
		return true
	}
	return false
}

// Source tags where a Pokémon's (or preset's) data originated.
type Source string

const (
	SourceServer Source = "server"
	SourceClient Source = "client"
	SourceSheet  Source = "sheet"
	SourceFormat Source = "smogon"
	SourceUsage  Source = "usage"
	SourceImport Source = "import"
	SourceStored Source = "storage"
	SourceUser   Source = "user"
)

// AuthoritativeSource reports whether the source carries ground truth that
// automatic resolution must never displace.
func AuthoritativeSource(source Source) bool {
	return source == SourceServer || source == SourceSheet
}

// State is the root aggregate for one battle session.
type State struct {
	BattleID    string                `json:"battleId"`
	Format      string                `json:"format"`
	Gen         int                   `json:"gen"`
	Legacy      bool                  `json:"legacy"`
	GameType    mechanics.GameType    `json:"gameType"`
	Turn        int                   `json:"turn"`
	Players     map[PlayerKey]*Player `json:"players"`
	PlayerKey   PlayerKey             `json:"playerKey,omitempty"`
	OpponentKey PlayerKey             `json:"opponentKey,omitempty"`
	Field       Field                 `json:"field"`
	Sheets      []Preset              `json:"sheets,omitempty"`
	SheetsNonce string                `json:"sheetsNonce,omitempty"`
}

// NewState builds an empty session for the given battle and format.
func NewState(battleID, format string) *State {
	gen := dex.GenFromFormat(format)
	gameType := mechanics.Singles
	if dex.ToID(format) != "" && containsDoubles(format) {
		gameType = mechanics.Doubles
	}
	return &State{
		BattleID: battleID,
		Format:   format,
		Gen:      gen,
		Legacy:   dex.LegacyGen(gen),
		GameType: gameType,
		Players:  make(map[PlayerKey]*Player, 4),
	}
}

func containsDoubles(format string) bool {
	id := dex.ToID(format)
	for i := 0; i+7 <= len(id); i++ {
		if id[i:i+7] == "doubles" {
			return true
		}
	}
	return id == "gen9vgc2024" || id == "gen9vgc2025"
}

// Valid reports whether the aggregate carries the identity every operation
// requires.
func (s *State) Valid() bool {
	return s != nil && s.BattleID != "" && s.Format != ""
}

// Player is one side of the battle.
type Player struct {
	Key            PlayerKey  `json:"key"`
	Name           string     `json:"name,omitempty"`
	Active         bool       `json:"active"`
	Pokemon        []Pokemon  `json:"pokemon"`
	ActiveIndices  []int      `json:"activeIndices"`
	SelectionIndex int        `json:"selectionIndex"`
	AutoSelect     bool       `json:"autoSelect"`
	Side           PlayerSide `json:"side"`
	UsedMax        bool       `json:"usedMax,omitempty"`
	UsedTera       bool       `json:"usedTera,omitempty"`
	PresetNonce    string     `json:"presetNonce,omitempty"`
}

// Clone deep-copies the player.
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	cloned := *p
	cloned.Pokemon = ClonePokemonList(p.Pokemon)
	cloned.ActiveIndices = append([]int(nil), p.ActiveIndices...)
	cloned.Side = p.Side.Clone()
	return &cloned
}

// PokemonByID finds a party member by stable identity.
func (p *Player) PokemonByID(calcdexID string) (int, bool) {
	for i := range p.Pokemon {
		if p.Pokemon[i].CalcdexID == calcdexID {
			return i, true
		}
	}
	return -1, false
}

// OnField reports whether the party slot is currently out, falling back to
// the selection index when no active indices were reported.
func (p *Player) OnField(slot int) bool {
	if len(p.ActiveIndices) > 0 {
		for _, idx := range p.ActiveIndices {
			if idx == slot {
				return true
			}
		}
		return false
	}
	return slot >= 0 && slot == p.SelectionIndex
}

// PlayerSide holds the field-adjacent conditions owned by one player.
type PlayerSide struct {
	Spikes           int            `json:"spikes,omitempty"`
	ToxicSpikes      int            `json:"toxicSpikes,omitempty"`
	StealthRock      bool           `json:"stealthRock,omitempty"`
	StickyWeb        bool           `json:"stickyWeb,omitempty"`
	Reflect          bool           `json:"reflect,omitempty"`
	LightScreen      bool           `json:"lightScreen,omitempty"`
	AuroraVeil       bool           `json:"auroraVeil,omitempty"`
	RuinSwordCount   int            `json:"ruinSwordCount,omitempty"`
	RuinBeadsCount   int            `json:"ruinBeadsCount,omitempty"`
	RuinTabletsCount int            `json:"ruinTabletsCount,omitempty"`
	RuinVesselCount  int            `json:"ruinVesselCount,omitempty"`
	Conditions       map[string]int `json:"conditions,omitempty"`
}

// Clone deep-copies the side.
func (s PlayerSide) Clone() PlayerSide {
	cloned := s
	if s.Conditions != nil {
		cloned.Conditions = make(map[string]int, len(s.Conditions))
		for k, v := range s.Conditions {
			cloned.Conditions[k] = v
		}
	}
	return cloned
}

// Field holds the battle-wide conditions shared by every side.
type Field struct {
	Weather Overridable[string] `json:"weather"`
	Terrain Overridable[string] `json:"terrain"`
}

// AutoBoostEffect records one applied (or blocked) stage-boost effect. A
// non-nil Turn means the battle reported it; nil means the user invoked it.
type AutoBoostEffect struct {
	mechanics.AutoBoostEffect
	SourceKey PlayerKey `json:"sourceKey,omitempty"`
	SourcePID string    `json:"sourcePid,omitempty"`
	Turn      *int      `json:"turn,omitempty"`
}

// NewID returns a fresh stable identity for entities created locally.
func NewID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "calcdex-fallback-id"
	}
	return hex.EncodeToString(buf)
}

// statTablesEqual is the equality used by base-stat reconciliation.
func statTablesEqual(a, b stats.Table) bool {
	return a == b
}

// typesEqual compares type lists in order.
func typesEqual(a, b []dex.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func stringsEqual(a, b string) bool { return a == b }

func intsEqual(a, b int) bool { return a == b }
