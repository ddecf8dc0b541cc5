package presets

import (
	"strings"

	"calcdex/battle"
	"calcdex/dex"
)

// Settings carries the user knobs the resolver and its callers consult.
type Settings struct {
	// PrioritizeUsage prefers a usage-statistics preset over a non-owned
	// format preset when both exist.
	PrioritizeUsage bool
	// AutoImportSheets feeds revealed open-team-sheet presets into the
	// candidate pools as they arrive.
	AutoImportSheets bool
	// DefaultLevel overrides the format-derived level fallback when positive.
	DefaultLevel int
}

// Pools holds every candidate source the resolver can draw from, already
// fetched. The resolver itself never blocks on IO.
type Pools struct {
	// Sheets are open-team-sheet presets revealed by the simulator.
	Sheets []battle.Preset
	// Formats is the set repository across all formats and generations.
	Formats []battle.Preset
	// Usages are usage-statistics presets (possibly several named roles per
	// species in randomized formats).
	Usages []battle.Preset
}

// Context is the immutable input to one resolution pass.
type Context struct {
	Format   string
	Settings Settings
	Pools    Pools
}

// Resolution is the outcome of a resolution pass. Found is false only on the
// terminal default-reset branch, which still carries the safe-default preset.
type Resolution struct {
	Preset battle.Preset
	// Usage is the usage entry paired with the preset, when one applies.
	Usage *battle.Preset
	// InsertOwned signals that Preset is a freshly reconstructed owned set
	// the caller should front-insert into the Pokémon's candidate list.
	InsertOwned bool
	// ForceOpenEditor flags the default-reset branch: nothing matched and
	// the Pokémon was reset to safe defaults, so manual entry is required.
	ForceOpenEditor bool
}

// Resolve picks the preset for a Pokémon under the precedence order: owned
// reconstruction, complete open sheet, format pool (with the usage
// preference), bare usage, then the safe-default reset. Later rules run only
// when every earlier rule produced nothing.
func Resolve(gen int, pokemon *battle.Pokemon, ctx Context) Resolution {
	if preset, ok := resolveOwned(gen, pokemon, ctx); ok {
		return pairUsage(ctx, Resolution{Preset: preset, InsertOwned: true})
	}
	if preset, ok := resolveSheet(pokemon, ctx); ok {
		return pairUsage(ctx, Resolution{Preset: preset})
	}
	if preset, ok := resolveFormat(pokemon, ctx); ok {
		return pairUsage(ctx, Resolution{Preset: preset})
	}
	if preset, ok := firstUsage(pokemon, ctx); ok {
		return pairUsage(ctx, Resolution{Preset: preset})
	}
	return Resolution{Preset: defaultReset(gen, pokemon, ctx), ForceOpenEditor: true}
}

// resolveOwned reconstructs the "Yours" preset for an authoritative-source
// Pokémon with exact revealed data. A transformed Pokémon matches candidates
// for its transformed forme against its transformed moves instead.
func resolveOwned(gen int, pokemon *battle.Pokemon, ctx Context) (battle.Preset, bool) {
	if !battle.AuthoritativeSource(pokemon.Source) {
		return battle.Preset{}, false
	}
	forme := pokemon.SpeciesForme
	moves := pokemon.ServerMoves
	if pokemon.TransformedForme != "" {
		forme = pokemon.TransformedForme
		moves = pokemon.TransformedMoves
	}
	if len(moves) == 0 {
		return battle.Preset{}, false
	}

	yours := battle.Preset{
		Name:         "Yours",
		Source:       battle.SourceServer,
		PlayerKey:    pokemon.PlayerKey,
		Gen:          gen,
		Format:       ctx.Format,
		SpeciesForme: forme,
		Level:        pokemon.Level,
		Ability:      pokemon.Ability.Revealed,
		Item:         pokemon.Item.Revealed,
		Moves:        append([]string(nil), moves...),
	}

	if match, ok := matchRevealed(pokemon, forme, moves, ctx); ok {
		yours.Nature = match.Nature
		yours.IVs = match.IVs
		yours.EVs = match.EVs
	} else if guess, ok := GuessSpread(gen, pokemon.BaseStats.Effective(), pokemon.Level, pokemon.SpreadStats); ok {
		yours.Nature = guess.Nature
		yours.IVs = guess.IVs
		yours.EVs = guess.EVs
	} else {
		return battle.Preset{}, false
	}
	return yours.Finalize(), true
}

// matchRevealed finds a candidate whose ability/item/move pools are fully
// consistent with what the server revealed.
func matchRevealed(pokemon *battle.Pokemon, forme string, moves []string, ctx Context) (battle.Preset, bool) {
	candidates := make([]battle.Preset, 0, len(pokemon.Presets)+len(ctx.Pools.Formats))
	candidates = append(candidates, pokemon.Presets...)
	candidates = append(candidates, ctx.Pools.Formats...)
	for _, candidate := range candidates {
		if !candidate.MatchesSpecies(forme) {
			continue
		}
		if pokemon.Ability.Revealed != "" && !poolContains(candidate.AbilityPool(), pokemon.Ability.Revealed) {
			continue
		}
		if pokemon.Item.Revealed != "" && !poolContains(candidate.ItemPool(), pokemon.Item.Revealed) {
			continue
		}
		if !poolCovers(candidate.MovePool(), moves) {
			continue
		}
		return candidate, true
	}
	return battle.Preset{}, false
}

// resolveSheet picks an open-team-sheet preset, requiring a complete stat
// line. Partial OTS reveals never qualify. Non-transformed Pokémon must also
// match on owning player.
func resolveSheet(pokemon *battle.Pokemon, ctx Context) (battle.Preset, bool) {
	for _, sheet := range ctx.Pools.Sheets {
		if !sheet.MatchesSpecies(pokemon.EffectiveForme()) {
			continue
		}
		if pokemon.TransformedForme == "" && sheet.PlayerKey != "" && sheet.PlayerKey != pokemon.PlayerKey {
			continue
		}
		if !sheet.CompleteSpread() {
			continue
		}
		return sheet, true
	}
	return battle.Preset{}, false
}

// resolveFormat searches the format-restricted pool, applies the usage
// preference, then broadens to all formats.
func resolveFormat(pokemon *battle.Pokemon, ctx Context) (battle.Preset, bool) {
	forme := pokemon.EffectiveForme()
	formatID := dex.ToID(ctx.Format)

	var found *battle.Preset
	for i := range ctx.Pools.Formats {
		candidate := &ctx.Pools.Formats[i]
		if candidate.MatchesSpecies(forme) && dex.ToID(candidate.Format) == formatID {
			found = candidate
			break
		}
	}

	if usage, ok := firstUsage(pokemon, ctx); ok && !dex.RandomsFormat(ctx.Format) {
		if found == nil || (ctx.Settings.PrioritizeUsage && !battle.AuthoritativeSource(found.Source)) {
			return usage, true
		}
	}
	if found != nil {
		return *found, true
	}

	// Any format, any generation, as long as the species matches.
	for _, candidate := range ctx.Pools.Formats {
		if candidate.MatchesSpecies(forme) {
			return candidate, true
		}
	}
	return battle.Preset{}, false
}

func firstUsage(pokemon *battle.Pokemon, ctx Context) (battle.Preset, bool) {
	for _, usage := range ctx.Pools.Usages {
		if usage.MatchesSpecies(pokemon.EffectiveForme()) {
			return usage, true
		}
	}
	return battle.Preset{}, false
}

// pairUsage attaches the usage entry accompanying the chosen preset. For
// randomized formats with multiple named roles per species, the pairing is a
// fuzzy name-containment match so each role keeps its own weighting.
func pairUsage(ctx Context, resolution Resolution) Resolution {
	var matches []*battle.Preset
	for i := range ctx.Pools.Usages {
		usage := &ctx.Pools.Usages[i]
		if usage.MatchesSpecies(resolution.Preset.SpeciesForme) {
			matches = append(matches, usage)
		}
	}
	switch {
	case len(matches) == 0:
		return resolution
	case len(matches) == 1:
		resolution.Usage = matches[0]
		return resolution
	}
	presetName := dex.ToID(resolution.Preset.Name)
	for _, usage := range matches {
		usageName := dex.ToID(usage.Name)
		if usageName == "" || presetName == "" {
			continue
		}
		if strings.Contains(presetName, usageName) || strings.Contains(usageName, presetName) {
			resolution.Usage = usage
			return resolution
		}
	}
	resolution.Usage = matches[0]
	return resolution
}

// defaultReset builds the safe-default preset for the terminal branch:
// nothing matched, so the Pokémon gets a neutral, fully-populated spread and
// cleared pools instead of staying unset.
func defaultReset(gen int, pokemon *battle.Pokemon, ctx Context) battle.Preset {
	level := pokemon.Level
	if level <= 0 {
		if ctx.Settings.DefaultLevel > 0 {
			level = ctx.Settings.DefaultLevel
		} else {
			level = dex.DefaultLevel(ctx.Format)
		}
	}
	preset := battle.Preset{
		Name:         "Default",
		Source:       battle.SourceUser,
		Gen:          gen,
		Format:       ctx.Format,
		SpeciesForme: pokemon.SpeciesForme,
		Level:        level,
		IVs:          defaultIVs(gen),
		EVs:          defaultEVs(gen),
	}
	if !dex.LegacyGen(gen) {
		preset.Nature = "Hardy"
	}
	return preset.Finalize()
}

func poolContains(pool []string, name string) bool {
	id := dex.ToID(name)
	for _, entry := range pool {
		if dex.ToID(entry) == id {
			return true
		}
	}
	return false
}

func poolCovers(pool []string, moves []string) bool {
	for _, move := range moves {
		if !poolContains(pool, move) {
			return false
		}
	}
	return true
}
