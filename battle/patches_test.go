package battle

import "testing"

func TestApplyUpdateReplay(t *testing.T) {
	state := newTestState()
	update := Update{Patches: []Patch{
		{Kind: PatchBattleRoles, Payload: RolesPayload{PlayerKey: PlayerP1, OpponentKey: PlayerP2}},
		{Kind: PatchPlayerActives, PlayerKey: PlayerP1, Payload: ActivesPayload{ActiveIndices: []int{2}}},
		{Kind: PatchPlayerSelection, PlayerKey: PlayerP1, Payload: SelectionPayload{SelectionIndex: 2}},
		{Kind: PatchPlayerAutoSelect, PlayerKey: PlayerP2, Payload: AutoSelectPayload{Enabled: true}},
		{Kind: PatchPlayerPresetNonce, PlayerKey: PlayerP2, Payload: PresetNoncePayload{Nonce: "1,"}},
	}}
	if err := ApplyUpdate(state, update); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if state.PlayerKey != PlayerP1 || state.OpponentKey != PlayerP2 {
		t.Fatalf("roles = %s/%s, want p1/p2", state.PlayerKey, state.OpponentKey)
	}
	first := state.Players[PlayerP1]
	if !SimilarInts(first.ActiveIndices, []int{2}) || first.SelectionIndex != 2 {
		t.Fatalf("selection state not replayed: %v / %d", first.ActiveIndices, first.SelectionIndex)
	}
	second := state.Players[PlayerP2]
	if !second.AutoSelect || second.PresetNonce != "1," {
		t.Fatalf("player flags not replayed: %+v", second)
	}
}

func TestApplyUpdatePartyReplacement(t *testing.T) {
	state := newTestState()
	party := ClonePokemonList(state.Players[PlayerP1].Pokemon)
	party[0].AbilityToggled = true

	update := Update{Patches: []Patch{{
		Kind:      PatchPlayerPokemon,
		PlayerKey: PlayerP1,
		Payload:   PokemonPayload{Pokemon: party},
	}}}
	if err := ApplyUpdate(state, update); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !state.Players[PlayerP1].Pokemon[0].AbilityToggled {
		t.Fatalf("party replacement not applied")
	}

	// The replayed party is a clone; mutating the payload afterwards must not
	// reach the aggregate.
	party[0].Level = 1
	if state.Players[PlayerP1].Pokemon[0].Level == 1 {
		t.Fatalf("aggregate shares the payload party")
	}
}

func TestApplyUpdateSideMerge(t *testing.T) {
	state := newTestState()
	player := state.Players[PlayerP1]
	player.Side.Conditions = map[string]int{"tailwind": 2}

	update := Update{Patches: []Patch{{
		Kind:      PatchPlayerSide,
		PlayerKey: PlayerP1,
		Payload:   SidePayload{Side: PlayerSide{Spikes: 1, Conditions: map[string]int{"trickroom": 5}}},
	}}}
	if err := ApplyUpdate(state, update); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	side := state.Players[PlayerP1].Side
	if side.Spikes != 1 {
		t.Fatalf("spikes = %d, want 1", side.Spikes)
	}
	if side.Conditions["trickroom"] != 5 {
		t.Fatalf("new condition missing: %v", side.Conditions)
	}
	if side.Conditions["tailwind"] != 2 {
		t.Fatalf("pre-existing condition dropped by the merge: %v", side.Conditions)
	}
}

func TestApplyUpdateStructuralErrors(t *testing.T) {
	state := newTestState()

	if err := ApplyUpdate(nil, Update{}); err == nil {
		t.Fatalf("nil state must error")
	}

	unknown := Update{Patches: []Patch{{
		Kind:      PatchPlayerSelection,
		PlayerKey: PlayerP3,
		Payload:   SelectionPayload{SelectionIndex: 0},
	}}}
	if err := ApplyUpdate(state, unknown); err == nil {
		t.Fatalf("unknown player must error")
	}

	badPayload := Update{Patches: []Patch{{
		Kind:    PatchField,
		Payload: SelectionPayload{SelectionIndex: 0},
	}}}
	if err := ApplyUpdate(state, badPayload); err == nil {
		t.Fatalf("mismatched payload type must error")
	}

	badKind := Update{Patches: []Patch{{
		Kind:      PatchKind("made_up"),
		PlayerKey: PlayerP1,
	}}}
	if err := ApplyUpdate(state, badKind); err == nil {
		t.Fatalf("unsupported patch kind must error")
	}
}
