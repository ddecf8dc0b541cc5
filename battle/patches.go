package battle

import "fmt"

// PatchKind identifies the type of diff entry an operation emits.
type PatchKind string

const (
	// PatchPlayerPokemon replaces a player's whole party array.
	PatchPlayerPokemon PatchKind = "player_pokemon"
	// PatchPlayerSide shallow-merges onto a player's side conditions.
	PatchPlayerSide PatchKind = "player_side"
	// PatchPlayerActives replaces a player's active slot indices.
	PatchPlayerActives PatchKind = "player_active_indices"
	// PatchPlayerSelection moves a player's selected party slot.
	PatchPlayerSelection PatchKind = "player_selection"
	// PatchPlayerAutoSelect flips a player's auto-select flag.
	PatchPlayerAutoSelect PatchKind = "player_auto_select"
	// PatchPlayerPresetNonce updates the missing-preset fingerprint.
	PatchPlayerPresetNonce PatchKind = "player_preset_nonce"
	// PatchBattleRoles reassigns the player/opponent role keys.
	PatchBattleRoles PatchKind = "battle_roles"
	// PatchField replaces the battle-wide field conditions.
	PatchField PatchKind = "field"
)

// Patch is one diff entry. PlayerKey is empty for battle-scoped kinds.
type Patch struct {
	Kind      PatchKind `json:"kind"`
	PlayerKey PlayerKey `json:"playerKey,omitempty"`
	Payload   any       `json:"payload,omitempty"`
}

// PokemonPayload carries a whole-array party replacement.
type PokemonPayload struct {
	Pokemon []Pokemon `json:"pokemon"`
}

// SidePayload carries a recomputed side. Conditions are merged, the rest is
// replaced.
type SidePayload struct {
	Side PlayerSide `json:"side"`
}

// ActivesPayload carries the new active slot indices.
type ActivesPayload struct {
	ActiveIndices []int `json:"activeIndices"`
}

// SelectionPayload carries the new selected slot.
type SelectionPayload struct {
	SelectionIndex int `json:"selectionIndex"`
}

// AutoSelectPayload carries the auto-select flag.
type AutoSelectPayload struct {
	Enabled bool `json:"enabled"`
}

// PresetNoncePayload carries the missing-preset fingerprint.
type PresetNoncePayload struct {
	Nonce string `json:"nonce"`
}

// RolesPayload carries both role keys; they are always applied together so
// they can never collide.
type RolesPayload struct {
	PlayerKey   PlayerKey `json:"playerKey"`
	OpponentKey PlayerKey `json:"opponentKey"`
}

// FieldPayload carries the merged field conditions.
type FieldPayload struct {
	Field Field `json:"field"`
}

// Update is one atomic emission: every entity an operation touched, in one
// payload. Consumers must apply it whole.
type Update struct {
	BattleID string  `json:"battleId"`
	Op       string  `json:"op"`
	Patches  []Patch `json:"patches"`
}

// Empty reports whether the update carries no diff entries.
func (u Update) Empty() bool {
	return len(u.Patches) == 0
}

// ApplyUpdate replays an update onto a state at the stated granularity:
// whole-array replacement for parties, merge for sides, assignment for the
// rest. Returns an error on structural mismatches (unknown player, bad
// payload type) so replay bugs surface in tests.
func ApplyUpdate(state *State, update Update) error {
	if state == nil {
		return fmt.Errorf("apply update: nil state")
	}
	for _, patch := range update.Patches {
		if err := applyPatch(state, patch); err != nil {
			return err
		}
	}
	return nil
}

func applyPatch(state *State, patch Patch) error {
	switch patch.Kind {
	case PatchBattleRoles:
		payload, ok := patch.Payload.(RolesPayload)
		if !ok {
			return badPayload(patch)
		}
		state.PlayerKey = payload.PlayerKey
		state.OpponentKey = payload.OpponentKey
		return nil
	case PatchField:
		payload, ok := patch.Payload.(FieldPayload)
		if !ok {
			return badPayload(patch)
		}
		state.Field = payload.Field
		return nil
	}

	player, ok := state.Players[patch.PlayerKey]
	if !ok || player == nil {
		return fmt.Errorf("apply update: unknown player %q for kind %q", patch.PlayerKey, patch.Kind)
	}

	switch patch.Kind {
	case PatchPlayerPokemon:
		payload, ok := patch.Payload.(PokemonPayload)
		if !ok {
			return badPayload(patch)
		}
		player.Pokemon = ClonePokemonList(payload.Pokemon)
	case PatchPlayerSide:
		payload, ok := patch.Payload.(SidePayload)
		if !ok {
			return badPayload(patch)
		}
		merged := payload.Side.Clone()
		if player.Side.Conditions != nil {
			if merged.Conditions == nil {
				merged.Conditions = make(map[string]int, len(player.Side.Conditions))
			}
			for k, v := range player.Side.Conditions {
				if _, exists := merged.Conditions[k]; !exists {
					merged.Conditions[k] = v
				}
			}
		}
		player.Side = merged
	case PatchPlayerActives:
		payload, ok := patch.Payload.(ActivesPayload)
		if !ok {
			return badPayload(patch)
		}
		player.ActiveIndices = append([]int(nil), payload.ActiveIndices...)
	case PatchPlayerSelection:
		payload, ok := patch.Payload.(SelectionPayload)
		if !ok {
			return badPayload(patch)
		}
		player.SelectionIndex = payload.SelectionIndex
	case PatchPlayerAutoSelect:
		payload, ok := patch.Payload.(AutoSelectPayload)
		if !ok {
			return badPayload(patch)
		}
		player.AutoSelect = payload.Enabled
	case PatchPlayerPresetNonce:
		payload, ok := patch.Payload.(PresetNoncePayload)
		if !ok {
			return badPayload(patch)
		}
		player.PresetNonce = payload.Nonce
	default:
		return fmt.Errorf("apply update: unsupported patch kind %q", patch.Kind)
	}
	return nil
}

func badPayload(patch Patch) error {
	return fmt.Errorf("apply update: unexpected payload %T for %q", patch.Payload, patch.Kind)
}
