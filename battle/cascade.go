package battle

import (
	"fmt"
	"strings"

	"calcdex/mechanics"
)

// Cross-entity recomputation passes. Each pass is bounded and explicitly
// enumerated: no pass re-invokes a top-level operation, so cascades always
// terminate.

// fieldRetogglePatches re-evaluates abilityToggled for every on-field
// Pokémon with a toggleable ability under the new weather/terrain, returning
// one whole-party patch per side that actually flipped. Benched Pokémon are
// not recomputed.
func (o *Orchestrator) fieldRetogglePatches(weather, terrain string) []Patch {
	var patches []Patch
	for _, key := range PlayerKeys {
		player, ok := o.state.Players[key]
		if !ok || player == nil || !player.Active {
			continue
		}
		var cloned []Pokemon
		for i := range player.Pokemon {
			if !player.OnField(i) {
				continue
			}
			mon := &player.Pokemon[i]
			if !mechanics.ToggleableAbility(mon.Ability.Effective()) {
				continue
			}
			toggled := mechanics.DetectToggledAbility(mon.Snapshot(), mechanics.ToggleContext{
				GameType:       o.state.GameType,
				SelectionIndex: player.SelectionIndex,
				ActiveIndices:  player.ActiveIndices,
				Weather:        weather,
				Terrain:        terrain,
			})
			if toggled == mon.AbilityToggled {
				continue
			}
			if cloned == nil {
				cloned = ClonePokemonList(player.Pokemon)
			}
			cloned[i].AbilityToggled = toggled
		}
		if cloned != nil {
			patches = append(patches, Patch{
				Kind:      PatchPlayerPokemon,
				PlayerKey: key,
				Payload:   PokemonPayload{Pokemon: cloned},
			})
		}
	}
	return patches
}

// recomputeRuinCascade re-evaluates ruin-family toggles across the party
// (mutating it in place) and returns whether anything flipped.
func (o *Orchestrator) recomputeRuinCascade(player *Player, party []Pokemon, selectionIndex int) bool {
	changed := false
	for i := range party {
		if !mechanics.RuinAbility(party[i].Ability.Effective()) {
			continue
		}
		toggled := mechanics.DetectToggledAbility(party[i].Snapshot(), mechanics.ToggleContext{
			GameType:       o.state.GameType,
			SelectionIndex: selectionIndex,
			ActiveIndices:  player.ActiveIndices,
			Weather:        o.state.Field.Weather.Effective(),
			Terrain:        o.state.Field.Terrain.Effective(),
		})
		if toggled != party[i].AbilityToggled {
			party[i].AbilityToggled = toggled
			changed = true
		}
	}
	return changed
}

// ruinCountPatches recomputes every other active player's ruin counts. A
// single ability change can move counts visible to all sides.
func (o *Orchestrator) ruinCountPatches(except PlayerKey) []Patch {
	var patches []Patch
	for _, key := range PlayerKeys {
		if key == except {
			continue
		}
		player, ok := o.state.Players[key]
		if !ok || player == nil || !player.Active {
			continue
		}
		side := SanitizePlayerSide(o.state.Gen, player)
		if sidesEqual(player.Side, side) {
			continue
		}
		patches = append(patches, Patch{
			Kind:      PatchPlayerSide,
			PlayerKey: key,
			Payload:   SidePayload{Side: side},
		})
	}
	return patches
}

// counterpart resolves the designated opponent of a role-holding player key.
func (o *Orchestrator) counterpart(key PlayerKey) (PlayerKey, bool) {
	switch key {
	case o.state.PlayerKey:
		return o.state.OpponentKey, o.state.OpponentKey != ""
	case o.state.OpponentKey:
		return o.state.PlayerKey, o.state.PlayerKey != ""
	}
	return "", false
}

// SelectPokemon moves the player's UI selection to the given party slot and
// runs the selection cascades: ruin toggles and counts for the selecting
// side, a side resync, and the cross-player switch-in auto-toggle pass for
// both the selector and their designated opponent.
func (o *Orchestrator) SelectPokemon(key PlayerKey, pokemonIndex int) (Update, Outcome) {
	start := o.clock.Now()
	const op = "SelectPokemon"
	player, outcome := o.guard(key)
	if outcome != OutcomeDispatched {
		return o.finish(op, outcome, Update{}, start)
	}
	if pokemonIndex < 0 || pokemonIndex >= len(player.Pokemon) {
		return o.finish(op, OutcomeInvalidArgs, Update{}, start)
	}
	if pokemonIndex == player.SelectionIndex {
		return o.finish(op, OutcomeNoChange, Update{}, start)
	}

	party := ClonePokemonList(player.Pokemon)
	partyChanged := false

	if o.state.GameType == mechanics.Singles && mechanics.RuinGen(o.state.Gen) {
		if o.recomputeRuinCascade(player, party, pokemonIndex) {
			partyChanged = true
		}
	}

	// Resync the side off the recomputed party. The selection shift is
	// applied on a scratch player so the sanitizer sees the new world.
	scratch := *player
	scratch.Pokemon = party
	scratch.SelectionIndex = pokemonIndex
	side := SanitizePlayerSide(o.state.Gen, &scratch)

	update := Update{Patches: []Patch{{
		Kind:      PatchPlayerSelection,
		PlayerKey: key,
		Payload:   SelectionPayload{SelectionIndex: pokemonIndex},
	}}}
	if !sidesEqual(player.Side, side) {
		update.Patches = append(update.Patches, Patch{
			Kind:      PatchPlayerSide,
			PlayerKey: key,
			Payload:   SidePayload{Side: side},
		})
	}

	// Cross-player switch-in pass: the newly selected Pokémon is the one that
	// "just became active", so Stakeout-style toggles re-evaluate on both
	// sides against the other side's now-current active.
	selectorActive := party[pokemonIndex].Snapshot()
	selectorActive.JustSwitchedIn = true
	opponentActive := o.opponentActiveSnapshot(key)
	if o.switchInRetoggle(key, party, pokemonIndex, opponentActive) {
		partyChanged = true
	}
	if o.deriveAutoBoost(&party[pokemonIndex], key, opponentActive) {
		partyChanged = true
	}
	if partyChanged {
		update.Patches = append(update.Patches, Patch{
			Kind:      PatchPlayerPokemon,
			PlayerKey: key,
			Payload:   PokemonPayload{Pokemon: party},
		})
	}

	if opponentKey, ok := o.counterpart(key); ok {
		if opponent, exists := o.state.Players[opponentKey]; exists && opponent != nil && opponent.Active {
			var opponentParty []Pokemon
			for i := range opponent.Pokemon {
				mon := &opponent.Pokemon[i]
				ability := mon.Ability.Effective()
				if !mechanics.ToggleableAbility(ability) || mechanics.RuinAbility(ability) {
					continue
				}
				toggled := mechanics.DetectToggledAbility(mon.Snapshot(), mechanics.ToggleContext{
					GameType:       o.state.GameType,
					SelectionIndex: opponent.SelectionIndex,
					ActiveIndices:  opponent.ActiveIndices,
					Weather:        o.state.Field.Weather.Effective(),
					Terrain:        o.state.Field.Terrain.Effective(),
					Opponent:       &selectorActive,
				})
				if toggled == mon.AbilityToggled {
					continue
				}
				if opponentParty == nil {
					opponentParty = ClonePokemonList(opponent.Pokemon)
				}
				opponentParty[i].AbilityToggled = toggled
			}
			if opponentParty != nil {
				update.Patches = append(update.Patches, Patch{
					Kind:      PatchPlayerPokemon,
					PlayerKey: opponentKey,
					Payload:   PokemonPayload{Pokemon: opponentParty},
				})
			}
		}
	}

	return o.finish(op, OutcomeDispatched, update, start)
}

// opponentActiveSnapshot resolves the first on-field Pokémon of the player's
// designated opponent, or nil when no opponent side is live.
func (o *Orchestrator) opponentActiveSnapshot(key PlayerKey) *mechanics.Snapshot {
	opponentKey, ok := o.counterpart(key)
	if !ok {
		return nil
	}
	opponent, exists := o.state.Players[opponentKey]
	if !exists || opponent == nil || !opponent.Active {
		return nil
	}
	for _, idx := range activeSlots(opponent) {
		if idx >= 0 && idx < len(opponent.Pokemon) {
			snap := opponent.Pokemon[idx].Snapshot()
			return &snap
		}
	}
	return nil
}

// deriveAutoBoost evaluates the switch-in stage-boost effect for the newly
// selected Pokémon against the opponent's active and caches it in the
// selector's auto-boost map. A once-per-battle effect keeps its first
// recorded application.
func (o *Orchestrator) deriveAutoBoost(mon *Pokemon, key PlayerKey, opponentActive *mechanics.Snapshot) bool {
	effect := mechanics.DetermineAutoBoostEffect(mon.Snapshot(), mechanics.BoostContext{
		Format: o.state.Format,
		Target: opponentActive,
		Field: &mechanics.FieldSnapshot{
			Weather: o.state.Field.Weather.Effective(),
			Terrain: o.state.Field.Terrain.Effective(),
		},
	})
	if !effect.Active() {
		return false
	}
	if existing, ok := mon.AutoBoostMap[effect.Name]; ok && existing.Once {
		return false
	}
	if mon.AutoBoostMap == nil {
		mon.AutoBoostMap = make(map[string]AutoBoostEffect, 1)
	}
	turn := o.state.Turn
	mon.AutoBoostMap[effect.Name] = AutoBoostEffect{
		AutoBoostEffect: effect,
		SourceKey:       key,
		SourcePID:       mon.CalcdexID,
		Turn:            &turn,
	}
	return true
}

// switchInRetoggle re-evaluates the selector's own non-ruin toggleable
// abilities against their opponent's current active Pokémon, mutating the
// already-cloned party in place. Returns whether anything flipped.
func (o *Orchestrator) switchInRetoggle(key PlayerKey, party []Pokemon, selectionIndex int, opponentActive *mechanics.Snapshot) bool {
	changed := false
	for i := range party {
		ability := party[i].Ability.Effective()
		if !mechanics.ToggleableAbility(ability) || mechanics.RuinAbility(ability) {
			continue
		}
		toggled := mechanics.DetectToggledAbility(party[i].Snapshot(), mechanics.ToggleContext{
			GameType:       o.state.GameType,
			SelectionIndex: selectionIndex,
			ActiveIndices:  nil,
			Weather:        o.state.Field.Weather.Effective(),
			Terrain:        o.state.Field.Terrain.Effective(),
			Opponent:       opponentActive,
		})
		if toggled != party[i].AbilityToggled {
			party[i].AbilityToggled = toggled
			changed = true
		}
	}
	return changed
}

// PresetNonce fingerprints which party members still lack an applied preset,
// so re-running resolution with no new information gates out as a no-op.
func PresetNonce(party []Pokemon) string {
	var b strings.Builder
	for i := range party {
		if party[i].PresetID == "" {
			fmt.Fprintf(&b, "%d,", i)
		}
	}
	return b.String()
}
