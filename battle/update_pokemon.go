package battle

import (
	"reflect"

	"calcdex/dex"
	"calcdex/mechanics"
	"calcdex/stats"
)

// PokemonPatch is the partial-update shape for UpdatePokemon. Nil pointers
// leave fields untouched. IV/EV/dirty-base-stat tables use the negative
// sentinel for "no entry" so partial spreads merge instead of replacing.
type PokemonPatch struct {
	CalcdexID string `json:"calcdexId"`

	SpeciesForme     *string `json:"speciesForme,omitempty"`
	TransformedForme *string `json:"transformedForme,omitempty"`
	Level            *int    `json:"level,omitempty"`
	Terastallized    *bool   `json:"terastallized,omitempty"`

	Types           []dex.Type `json:"types,omitempty"`
	DirtyTypes      []dex.Type `json:"dirtyTypes,omitempty"`
	ClearDirtyTypes bool       `json:"clearDirtyTypes,omitempty"`
	TeraType        *dex.Type  `json:"teraType,omitempty"`
	DirtyTeraType   *dex.Type  `json:"dirtyTeraType,omitempty"`

	Ability      *string `json:"ability,omitempty"`
	DirtyAbility *string `json:"dirtyAbility,omitempty"`
	Item         *string `json:"item,omitempty"`
	DirtyItem    *string `json:"dirtyItem,omitempty"`

	Nature         *stats.Nature `json:"nature,omitempty"`
	IVs            *stats.Table  `json:"ivs,omitempty"`
	EVs            *stats.Table  `json:"evs,omitempty"`
	BaseStats      *stats.Table  `json:"baseStats,omitempty"`
	DirtyBaseStats *stats.Table  `json:"dirtyBaseStats,omitempty"`

	HP                *int    `json:"hp,omitempty"`
	DirtyHP           *int    `json:"dirtyHp,omitempty"`
	MaxHP             *int    `json:"maxHp,omitempty"`
	Status            *string `json:"status,omitempty"`
	DirtyStatus       *string `json:"dirtyStatus,omitempty"`
	FaintCounter      *int    `json:"faintCounter,omitempty"`
	DirtyFaintCounter *int    `json:"dirtyFaintCounter,omitempty"`

	Boosts           *stats.Boosts `json:"boosts,omitempty"`
	DirtyBoosts      *stats.Boosts `json:"dirtyBoosts,omitempty"`
	BoostedStat      *string       `json:"boostedStat,omitempty"`
	DirtyBoostedStat *string       `json:"dirtyBoostedStat,omitempty"`

	Moves         []string                           `json:"moves,omitempty"`
	ServerMoves   []string                           `json:"serverMoves,omitempty"`
	RevealedMoves []string                           `json:"revealedMoves,omitempty"`
	AltMoves      []string                           `json:"altMoves,omitempty"`
	MoveOverrides map[string]*mechanics.MoveOverride `json:"moveOverrides,omitempty"`
	CritOverride  *bool                              `json:"critOverride,omitempty"`

	PresetID     *string  `json:"presetId,omitempty"`
	PresetSource *Source  `json:"presetSource,omitempty"`
	Presets      []Preset `json:"presets,omitempty"`

	AutoBoostMap map[string]AutoBoostEffect `json:"autoBoostMap,omitempty"`
	ShowDetails  *bool                      `json:"showDetails,omitempty"`
}

// UpdatePokemon merges a patch onto the identified party member, runs the
// post-merge correction passes, and emits the combined update (party
// replacement plus any ruin-count side patches across all active players).
func (o *Orchestrator) UpdatePokemon(key PlayerKey, patch PokemonPatch) (Update, Outcome) {
	start := o.clock.Now()
	const op = "UpdatePokemon"
	player, outcome := o.guard(key)
	if outcome != OutcomeDispatched {
		return o.finish(op, outcome, Update{}, start)
	}
	if patch.CalcdexID == "" {
		return o.finish(op, OutcomeInvalidArgs, Update{}, start)
	}
	slot, found := player.PokemonByID(patch.CalcdexID)
	if !found {
		return o.finish(op, OutcomeInvalidArgs, Update{}, start)
	}

	before := player.Pokemon[slot]
	mon := before.Clone()
	o.mergePokemonPatch(&mon, patch)

	if reflect.DeepEqual(before, mon) {
		return o.finish(op, OutcomeNoChange, Update{}, start)
	}

	party := ClonePokemonList(player.Pokemon)
	party[slot] = mon
	update := Update{Patches: []Patch{{
		Kind:      PatchPlayerPokemon,
		PlayerKey: key,
		Payload:   PokemonPayload{Pokemon: party},
	}}}

	if nonce := PresetNonce(party); nonce != player.PresetNonce {
		update.Patches = append(update.Patches, Patch{
			Kind:      PatchPlayerPresetNonce,
			PlayerKey: key,
			Payload:   PresetNoncePayload{Nonce: nonce},
		})
	}

	if mechanics.RuinGen(o.state.Gen) {
		// The toggle flip on this Pokémon moves this side's counts, and any
		// ability change here can move counts visible to every other side.
		scratch := *player
		scratch.Pokemon = party
		side := SanitizePlayerSide(o.state.Gen, &scratch)
		if !sidesEqual(player.Side, side) {
			update.Patches = append(update.Patches, Patch{
				Kind:      PatchPlayerSide,
				PlayerKey: key,
				Payload:   SidePayload{Side: side},
			})
		}
		update.Patches = append(update.Patches, o.ruinCountPatches(key)...)
	}

	return o.finish(op, OutcomeDispatched, update, start)
}

// mergePokemonPatch applies the patch and the ordered correction passes to a
// cloned Pokémon.
func (o *Orchestrator) mergePokemonPatch(mon *Pokemon, patch PokemonPatch) {
	formeChanged := false
	if patch.SpeciesForme != nil && *patch.SpeciesForme != mon.SpeciesForme {
		o.applyFormeChange(mon, *patch.SpeciesForme)
		formeChanged = true
	}
	if patch.TransformedForme != nil {
		mon.TransformedForme = *patch.TransformedForme
	}
	if patch.Level != nil && *patch.Level > 0 {
		mon.Level = *patch.Level
	}
	if patch.Terastallized != nil {
		mon.Terastallized = *patch.Terastallized
	}

	if patch.Types != nil {
		mon.Types.SetRevealed(append([]dex.Type(nil), patch.Types...), typesEqual)
	}
	if patch.ClearDirtyTypes {
		mon.Types.ClearDirty()
	} else if patch.DirtyTypes != nil {
		mon.Types.SetDirty(append([]dex.Type(nil), patch.DirtyTypes...))
	}
	if patch.TeraType != nil {
		mon.TeraType.SetRevealed(*patch.TeraType, func(a, b dex.Type) bool { return a == b })
	}
	if patch.DirtyTeraType != nil {
		if *patch.DirtyTeraType == "" {
			mon.TeraType.ClearDirty()
		} else {
			mon.TeraType.SetDirty(*patch.DirtyTeraType)
		}
	}

	itemChanged := false
	if patch.Ability != nil {
		mon.Ability.SetRevealed(*patch.Ability, stringsEqual)
	}
	if patch.DirtyAbility != nil {
		if *patch.DirtyAbility == "" {
			mon.Ability.ClearDirty()
		} else {
			mon.Ability.SetDirty(*patch.DirtyAbility)
		}
	}
	if patch.Item != nil {
		mon.Item.SetRevealed(*patch.Item, stringsEqual)
		itemChanged = true
	}
	if patch.DirtyItem != nil {
		if *patch.DirtyItem == "" {
			mon.Item.ClearDirty()
		} else {
			mon.Item.SetDirty(*patch.DirtyItem)
		}
		itemChanged = true
	}

	if patch.Nature != nil {
		mon.Nature = *patch.Nature
	}
	if patch.IVs != nil {
		mon.IVs = mon.IVs.Merge(*patch.IVs)
	}
	if patch.EVs != nil {
		mon.EVs = mon.EVs.Merge(*patch.EVs)
	}
	if patch.BaseStats != nil {
		mon.BaseStats.SetRevealed(mon.BaseStats.Revealed.Merge(*patch.BaseStats), statTablesEqual)
	}
	if patch.DirtyBaseStats != nil {
		dirty := mon.BaseStats.Revealed
		if mon.BaseStats.HasDirty() {
			dirty = *mon.BaseStats.Dirty
		}
		mon.BaseStats.SetDirty(dirty.Merge(*patch.DirtyBaseStats))
	}

	if patch.MaxHP != nil && *patch.MaxHP > 0 {
		mon.MaxHP = *patch.MaxHP
	}
	if patch.HP != nil {
		mon.HP.SetRevealed(*patch.HP, intsEqual)
	}
	if patch.DirtyHP != nil {
		mon.HP.SetDirty(*patch.DirtyHP)
	}
	if patch.Status != nil {
		mon.Status.SetRevealed(*patch.Status, stringsEqual)
	}
	if patch.DirtyStatus != nil {
		if *patch.DirtyStatus == "" {
			mon.Status.ClearDirty()
		} else {
			mon.Status.SetDirty(*patch.DirtyStatus)
		}
	}
	if patch.FaintCounter != nil {
		mon.FaintCounter.SetRevealed(*patch.FaintCounter, intsEqual)
	}
	if patch.DirtyFaintCounter != nil {
		mon.FaintCounter.SetDirty(*patch.DirtyFaintCounter)
	}

	if patch.Boosts != nil {
		mon.Boosts.SetRevealed(*patch.Boosts, func(a, b stats.Boosts) bool { return a == b })
	}
	if patch.DirtyBoosts != nil {
		mon.Boosts.SetDirty(*patch.DirtyBoosts)
	}
	if patch.BoostedStat != nil {
		mon.BoostedStat.SetRevealed(*patch.BoostedStat, stringsEqual)
	}
	if patch.DirtyBoostedStat != nil {
		if *patch.DirtyBoostedStat == "" {
			mon.BoostedStat.ClearDirty()
		} else {
			mon.BoostedStat.SetDirty(*patch.DirtyBoostedStat)
		}
	}

	movesChanged := false
	if patch.Moves != nil {
		mon.Moves = append([]string(nil), patch.Moves...)
		movesChanged = true
	}
	if patch.ServerMoves != nil {
		mon.ServerMoves = append([]string(nil), patch.ServerMoves...)
	}
	if patch.RevealedMoves != nil {
		mon.RevealedMoves = append([]string(nil), patch.RevealedMoves...)
	}
	if patch.AltMoves != nil {
		mon.AltMoves = append([]string(nil), patch.AltMoves...)
	}
	if patch.MoveOverrides != nil {
		mergeMoveOverrides(mon, patch.MoveOverrides)
	}
	if patch.CritOverride != nil {
		mon.CritOverride = *patch.CritOverride
	}

	if patch.PresetID != nil {
		mon.PresetID = *patch.PresetID
	}
	if patch.PresetSource != nil {
		mon.PresetSource = *patch.PresetSource
	}
	if patch.Presets != nil {
		mon.Presets = append([]Preset(nil), patch.Presets...)
	}
	if patch.AutoBoostMap != nil {
		mon.AutoBoostMap = make(map[string]AutoBoostEffect, len(patch.AutoBoostMap))
		for k, v := range patch.AutoBoostMap {
			mon.AutoBoostMap[k] = v
		}
	}
	if patch.ShowDetails != nil {
		mon.ShowDetails = *patch.ShowDetails
	}

	// Correction passes, in order.
	if o.state.Legacy {
		applyLegacyCorrections(o.state.Gen, mon)
	}
	reconcileDirtyFields(mon)
	pruneStaleAutoBoosts(mon)
	if itemChanged {
		applyBoosterEnergyCoupling(mon)
	}
	if formeChanged || itemChanged || patch.Ability != nil || patch.DirtyAbility != nil ||
		patch.Types != nil || patch.DirtyTypes != nil || movesChanged {
		o.retoggleAbility(mon)
	}
	mon.RecalcSpreadStats(o.state.Gen)
}

// applyFormeChange re-sanitizes the Pokémon for its new forme and handles the
// cascades a species switch drags along: Crowned signature-move swaps, dirty
// type cleanup, and preset continuity.
func (o *Orchestrator) applyFormeChange(mon *Pokemon, newForme string) {
	oldForme := mon.SpeciesForme
	mon.SpeciesForme = newForme

	if sanitized, ok := SanitizePokemon(mon.EffectiveForme(), o.state.Format); ok {
		applySanitizedSpecies(mon, sanitized)
	}

	mon.Moves = swapCrownedSignature(newForme, mon.Moves)
	mon.AltMoves = swapCrownedSignature(newForme, mon.AltMoves)

	// Preset continuity survives authoritative sources and mega transitions;
	// anything else is stale for the new forme.
	if mon.PresetID != "" && !AuthoritativeSource(mon.PresetSource) &&
		!o.megaForme(oldForme) && !o.megaForme(newForme) {
		mon.PresetID = ""
		mon.PresetSource = ""
	}
}

func (o *Orchestrator) megaForme(speciesForme string) bool {
	species, ok := dex.ForFormat(o.state.Format).Species(speciesForme)
	return ok && species.IsMega
}

// swapCrownedSignature enforces the mutually-exclusive Crowned signature
// moves: the sword wielder's slot becomes the shield bearer's (and vice
// versa), and dropping back to a base forme reverts to Iron Head.
func swapCrownedSignature(speciesForme string, moves []string) []string {
	var want, others []string
	switch dex.ToID(speciesForme) {
	case "zaciancrowned":
		want, others = []string{"Behemoth Sword"}, []string{"Behemoth Bash", "Iron Head"}
	case "zamazentacrowned":
		want, others = []string{"Behemoth Bash"}, []string{"Behemoth Sword", "Iron Head"}
	case "zacian", "zamazenta":
		want, others = []string{"Iron Head"}, []string{"Behemoth Sword", "Behemoth Bash"}
	default:
		return moves
	}
	out := append([]string(nil), moves...)
	for i, name := range out {
		for _, other := range others {
			if dex.ToID(name) == dex.ToID(other) {
				out[i] = want[0]
			}
		}
	}
	return out
}

// applyLegacyCorrections strips the fields legacy generations never carry and
// forces the shared special stat.
func applyLegacyCorrections(gen int, mon *Pokemon) {
	mon.Ability = Overridable[string]{}
	mon.AbilityPool = nil
	mon.Nature = ""
	if gen == 1 {
		mon.Item = Overridable[string]{}
	}
	mon.IVs = stats.LegacySanitizeIVs(mon.IVs)
	mon.EVs[stats.SpD] = mon.EVs[stats.SpA]
}

// reconcileDirtyFields clears every override that now equals its revealed
// counterpart. HP uses the rounding tolerance; boosts reconcile per-stat and
// only when revealed boosts are non-empty.
func reconcileDirtyFields(mon *Pokemon) {
	mon.Types.Reconcile(typesEqual)
	mon.TeraType.Reconcile(func(a, b dex.Type) bool { return a == b })
	mon.Ability.Reconcile(stringsEqual)
	mon.Item.Reconcile(stringsEqual)
	mon.BaseStats.Reconcile(statTablesEqual)
	mon.Status.Reconcile(stringsEqual)
	mon.FaintCounter.Reconcile(intsEqual)
	mon.BoostedStat.Reconcile(stringsEqual)

	tolerance := HPTolerance(mon.MaxHP)
	mon.HP.Reconcile(func(a, b int) bool { return WithinTolerance(a, b, tolerance) })

	// Dirty boosts only reconcile against a non-empty revealed stage table;
	// an all-zero revealed table usually means the stages simply have not
	// synced yet.
	if mon.Boosts.Revealed != (stats.Boosts{}) {
		mon.Boosts.Reconcile(func(a, b stats.Boosts) bool { return a == b })
	}
}

// pruneStaleAutoBoosts drops cached switch-in effects whose source ability or
// item is no longer held. User-invoked entries under other names stay.
func pruneStaleAutoBoosts(mon *Pokemon) {
	if len(mon.AutoBoostMap) == 0 {
		return
	}
	ability := dex.ToID(mon.Ability.Effective())
	item := dex.ToID(mon.Item.Effective())
	for name, effect := range mon.AutoBoostMap {
		switch effect.Dict {
		case mechanics.DictAbilities:
			if mechanics.HasAutoBoostAbility(name) && dex.ToID(name) != ability {
				delete(mon.AutoBoostMap, name)
			}
		case mechanics.DictItems:
			if mechanics.HasAutoBoostItem(name) && dex.ToID(name) != item {
				delete(mon.AutoBoostMap, name)
			}
		}
	}
}

// applyBoosterEnergyCoupling keeps the paradox-ability stat boost in sync
// with the held item: gaining Booster Energy turns the effect on, losing it
// turns the effect back off (unless weather/terrain keeps it alive, which
// retoggleAbility resolves right after).
func applyBoosterEnergyCoupling(mon *Pokemon) {
	ability := dex.ToID(mon.Ability.Effective())
	if ability != "protosynthesis" && ability != "quarkdrive" {
		return
	}
	if dex.ToID(mon.Item.Effective()) == "boosterenergy" {
		if mon.BoostedStat.Effective() == "" {
			mon.BoostedStat.SetRevealed(highestStatID(mon.SpreadStats), stringsEqual)
		}
		return
	}
	mon.BoostedStat = Overridable[string]{}
}

func highestStatID(spread stats.Table) string {
	best := stats.Atk
	for s := stats.Def; s <= stats.Spe; s++ {
		if spread[s] > spread[best] {
			best = s
		}
	}
	return best.String()
}

// retoggleAbility recomputes the derived toggle after any input it depends on
// changed.
func (o *Orchestrator) retoggleAbility(mon *Pokemon) {
	player := o.state.Players[mon.PlayerKey]
	ctx := mechanics.ToggleContext{
		GameType: o.state.GameType,
		Weather:  o.state.Field.Weather.Effective(),
		Terrain:  o.state.Field.Terrain.Effective(),
	}
	if player != nil {
		ctx.SelectionIndex = player.SelectionIndex
		ctx.ActiveIndices = player.ActiveIndices
	}
	mon.AbilityToggled = mechanics.DetectToggledAbility(mon.Snapshot(), ctx)
}

// mergeMoveOverrides deep-merges per-move override patches. A patch entry
// with no valid fields (or a nil entry) clears that move's overrides.
func mergeMoveOverrides(mon *Pokemon, patches map[string]*mechanics.MoveOverride) {
	if mon.MoveOverrides == nil {
		mon.MoveOverrides = make(map[string]mechanics.MoveOverride, len(patches))
	}
	for moveName, patch := range patches {
		if patch == nil || patch.Empty() {
			delete(mon.MoveOverrides, moveName)
			continue
		}
		existing, ok := mon.MoveOverrides[moveName]
		if !ok {
			existing = mechanics.MoveOverride{OffensiveStat: dex.NoStat, DefensiveStat: dex.NoStat}
		}
		if patch.Type != "" {
			existing.Type = patch.Type
		}
		if patch.Category != "" {
			existing.Category = patch.Category
		}
		if patch.BasePower != 0 {
			existing.BasePower = patch.BasePower
		}
		if patch.ZBasePower != 0 {
			existing.ZBasePower = patch.ZBasePower
		}
		if patch.MaxBasePower != 0 {
			existing.MaxBasePower = patch.MaxBasePower
		}
		if patch.Hits != 0 {
			existing.Hits = patch.Hits
		}
		if patch.AlwaysCrit {
			existing.AlwaysCrit = true
		}
		if patch.OffensiveStat != dex.NoStat {
			existing.OffensiveStat = patch.OffensiveStat
		}
		if patch.DefensiveStat != dex.NoStat {
			existing.DefensiveStat = patch.DefensiveStat
		}
		mon.MoveOverrides[moveName] = existing
	}
}
