// Package bridge connects the engine to the outside world: a websocket feed
// of simulator snapshot frames coming in, and a broadcast hub pushing emitted
// update patches out to subscribed consumers.
package bridge

import (
	"encoding/json"

	"calcdex/battle"
)

// SnapshotFrame is one inbound message from the simulator feed. Exactly one
// of the payload fields is set, keyed by Type.
type SnapshotFrame struct {
	Type     string          `json:"type"`
	BattleID string          `json:"battleId"`
	Turn     int             `json:"turn,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// Inbound frame types.
const (
	FrameBattleInit  = "battle.init"
	FramePlayerSync  = "player.sync"
	FramePokemonSync = "pokemon.sync"
	FrameFieldSync   = "field.sync"
	FrameSheetSync   = "sheet.sync"
	FrameBattleEnd   = "battle.end"
)

// BattleInitPayload seeds a new battle state.
type BattleInitPayload struct {
	Format      string           `json:"format"`
	PlayerKey   battle.PlayerKey `json:"playerKey"`
	OpponentKey battle.PlayerKey `json:"opponentKey"`
}

// PlayerSyncPayload carries one player's roster as reported by the simulator.
type PlayerSyncPayload struct {
	Key            battle.PlayerKey `json:"key"`
	Name           string           `json:"name,omitempty"`
	Pokemon        []battle.Pokemon `json:"pokemon"`
	ActiveIndices  []int            `json:"activeIndices,omitempty"`
	SelectionIndex int              `json:"selectionIndex"`
	Conditions     map[string]int   `json:"conditions,omitempty"`
}

// PokemonSyncPayload carries a partial update for one party member.
type PokemonSyncPayload struct {
	Key   battle.PlayerKey `json:"key"`
	Patch json.RawMessage  `json:"patch"`
}

// FieldSyncPayload carries the simulator-reported field conditions.
type FieldSyncPayload struct {
	Weather string `json:"weather"`
	Terrain string `json:"terrain"`
}

// UpdateFrame is one outbound message: an atomic patch set consumers must
// apply whole.
type UpdateFrame struct {
	Type   string        `json:"type"`
	Update battle.Update `json:"update"`
}

// FrameUpdate is the outbound frame type.
const FrameUpdate = "calcdex.update"
