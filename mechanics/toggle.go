package mechanics

import "calcdex/dex"

// ToggleContext carries the surroundings DetectToggledAbility needs. Zero
// values mean "unknown": no weather, no terrain, no opponent.
type ToggleContext struct {
	GameType       GameType
	SelectionIndex int
	ActiveIndices  []int
	Weather        string
	Terrain        string
	Opponent       *Snapshot
}

// ruinAbilities stack by count of active instances across the whole field.
var ruinAbilities = map[string]bool{
	"swordofruin":   true,
	"beadsofruin":   true,
	"tabletsofruin": true,
	"vesselofruin":  true,
}

// toggleAbilities is the full family of conditionally-active abilities.
var toggleAbilities = map[string]bool{
	"protosynthesis":  true,
	"quarkdrive":      true,
	"multiscale":      true,
	"shadowshield":    true,
	"stakeout":        true,
	"slowstart":       true,
	"defeatist":       true,
	"flashfire":       true,
	"supremeoverlord": true,
	"swordofruin":     true,
	"beadsofruin":     true,
	"tabletsofruin":   true,
	"vesselofruin":    true,
}

// RuinAbility reports whether the ability belongs to the ruin family.
func RuinAbility(ability string) bool {
	return ruinAbilities[dex.ToID(ability)]
}

// ToggleableAbility reports whether the ability's activity is conditional at
// all. Non-toggleable abilities are always considered active.
func ToggleableAbility(ability string) bool {
	return toggleAbilities[dex.ToID(ability)]
}

// RuinGen reports whether the generation supports ruin-style count-based
// abilities.
func RuinGen(gen int) bool {
	return gen > 8
}

// DetectToggledAbility determines whether the Pokémon's ability is currently
// active for damage-calculation purposes. Abilities outside the toggleable
// family are always active.
func DetectToggledAbility(src Snapshot, ctx ToggleContext) bool {
	id := dex.ToID(src.Ability)
	if !toggleAbilities[id] {
		return true
	}
	switch id {
	case "protosynthesis":
		return ctx.Weather == WeatherSun || dex.ToID(src.Item) == "boosterenergy"
	case "quarkdrive":
		return ctx.Terrain == TerrainElectric || dex.ToID(src.Item) == "boosterenergy"
	case "multiscale", "shadowshield":
		return src.FullHP()
	case "stakeout":
		return ctx.Opponent != nil && ctx.Opponent.JustSwitchedIn
	case "slowstart":
		return true
	case "defeatist":
		return src.MaxHP > 0 && src.HP*2 <= src.MaxHP
	case "flashfire":
		// Only activates when hit by a Fire move; left to the user toggle.
		return false
	case "supremeoverlord":
		return src.FaintedAllies > 0
	}
	if ruinAbilities[id] {
		return onField(src, ctx)
	}
	return false
}

// onField reports whether the snapshot's party slot is currently out. Doubles
// reports active slots explicitly; singles falls back to the selection index.
func onField(src Snapshot, ctx ToggleContext) bool {
	if len(ctx.ActiveIndices) > 0 {
		for _, idx := range ctx.ActiveIndices {
			if idx == src.Slot {
				return true
			}
		}
		return false
	}
	return ctx.SelectionIndex >= 0 && src.Slot == ctx.SelectionIndex
}
