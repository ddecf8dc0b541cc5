package mechanics

import (
	"calcdex/dex"
	"calcdex/stats"
)

// AutoBoostEffect describes one stage-boost effect invoked by an ability,
// forme, or held item. A zero-boost effect with a Reffect names what blocked
// it. Boosts is never nil.
type AutoBoostEffect struct {
	Name        string              `json:"name,omitempty"`
	Dict        string              `json:"dict,omitempty"`
	Boosts      map[stats.Stat]int  `json:"boosts"`
	Reffect     string              `json:"reffect,omitempty"`
	ReffectDict string              `json:"reffectDict,omitempty"`
	Once        bool                `json:"once,omitempty"`
}

// Active reports whether the effect carries a name (blocked effects are still
// active in this sense: they record that the trigger fired).
func (e AutoBoostEffect) Active() bool {
	return e.Name != ""
}

// Effect dictionaries referenced by Dict/ReffectDict.
const (
	DictAbilities = "abilities"
	DictItems     = "items"
	DictSpecies   = "species"
)

// BoostContext carries the optional surroundings for DetermineAutoBoostEffect.
type BoostContext struct {
	Format  string
	Target  *Snapshot
	Actives []Snapshot
	Field   *FieldSnapshot
}

// boostRule is one entry of a dispatch table. eval returns the stage deltas
// plus any reactive counter-effect; applied=false means the trigger did not
// fire at all (as opposed to firing and being blocked).
type boostRule struct {
	once bool
	eval func(src Snapshot, ctx BoostContext) (boosts map[stats.Stat]int, reffect, reffectDict string, applied bool)
}

func fixedBoost(deltas map[stats.Stat]int) func(Snapshot, BoostContext) (map[stats.Stat]int, string, string, bool) {
	return func(Snapshot, BoostContext) (map[stats.Stat]int, string, string, bool) {
		out := make(map[stats.Stat]int, len(deltas))
		for stat, delta := range deltas {
			out[stat] = delta
		}
		return out, "", "", true
	}
}

var abilityBoostRules = map[string]boostRule{
	"intrepidsword":   {once: true, eval: fixedBoost(map[stats.Stat]int{stats.Atk: 1})},
	"dauntlessshield": {once: true, eval: fixedBoost(map[stats.Stat]int{stats.Def: 1})},
	"intimidate":      {once: true, eval: evalIntimidate},
	"download":        {once: true, eval: evalDownload},

	"embodyaspectteal":        {once: true, eval: fixedBoost(map[stats.Stat]int{stats.Spe: 1})},
	"embodyaspectwellspring":  {once: true, eval: fixedBoost(map[stats.Stat]int{stats.SpD: 1})},
	"embodyaspecthearthflame": {once: true, eval: fixedBoost(map[stats.Stat]int{stats.Atk: 1})},
	"embodyaspectcornerstone": {once: true, eval: fixedBoost(map[stats.Stat]int{stats.Def: 1})},
}

// evalIntimidate lowers the target's Attack unless the target carries one of
// the canonical blockers. Contrary inverts the drop; Defiant and Competitive
// let it land but record the retaliation.
func evalIntimidate(src Snapshot, ctx BoostContext) (map[stats.Stat]int, string, string, bool) {
	drop := map[stats.Stat]int{stats.Atk: -1}
	target := ctx.Target
	if target == nil {
		return drop, "", "", true
	}
	switch dex.ToID(target.Ability) {
	case "innerfocus", "owntempo", "oblivious", "scrappy", "guarddog", "mirrorarmor",
		"hypercutter", "clearbody", "whitesmoke", "fullmetalbody":
		return map[stats.Stat]int{}, target.Ability, DictAbilities, true
	case "contrary":
		return map[stats.Stat]int{stats.Atk: 1}, target.Ability, DictAbilities, true
	case "defiant", "competitive":
		return drop, target.Ability, DictAbilities, true
	}
	if dex.ToID(target.Item) == "clearamulet" {
		return map[stats.Stat]int{}, target.Item, DictItems, true
	}
	return drop, "", "", true
}

// evalDownload raises Attack or Special Attack depending on which of the
// target's defenses is lower, defaulting to Special Attack when no target is
// known.
func evalDownload(src Snapshot, ctx BoostContext) (map[stats.Stat]int, string, string, bool) {
	if ctx.Target == nil || ctx.Target.Stats == (stats.Table{}) {
		return map[stats.Stat]int{stats.SpA: 1}, "", "", true
	}
	def := ctx.Target.Stats[stats.Def]
	spd := ctx.Target.Stats[stats.SpD]
	if def < spd {
		return map[stats.Stat]int{stats.Atk: 1}, "", "", true
	}
	return map[stats.Stat]int{stats.SpA: 1}, "", "", true
}

// itemBoostRules hold the terrain seeds: each consumes itself for a one-time
// boost when its terrain is up.
var itemBoostRules = map[string]boostRule{
	"electricseed": {once: true, eval: seedBoost("Electric", map[stats.Stat]int{stats.Def: 1})},
	"grassyseed":   {once: true, eval: seedBoost("Grassy", map[stats.Stat]int{stats.Def: 1})},
	"psychicseed":  {once: true, eval: seedBoost("Psychic", map[stats.Stat]int{stats.SpD: 1})},
	"mistyseed":    {once: true, eval: seedBoost("Misty", map[stats.Stat]int{stats.SpD: 1})},
}

func seedBoost(terrain string, deltas map[stats.Stat]int) func(Snapshot, BoostContext) (map[stats.Stat]int, string, string, bool) {
	fixed := fixedBoost(deltas)
	return func(src Snapshot, ctx BoostContext) (map[stats.Stat]int, string, string, bool) {
		if ctx.Field == nil || ctx.Field.Terrain != terrain {
			return nil, "", "", false
		}
		return fixed(src, ctx)
	}
}

// embodyAspectForForme maps an Ogerpon forme onto its mask ability.
func embodyAspectForForme(forme string) string {
	switch forme {
	case "Wellspring", "Hearthflame", "Cornerstone":
		return "Embody Aspect (" + forme + ")"
	default:
		return "Embody Aspect (Teal)"
	}
}

// DetermineAutoBoostEffect evaluates the ability, forme, and item dispatch
// tables in sequence. Later tables only fill in when the earlier stages
// produced no effect; the forme table is the exception and forces its fixed
// result when the current forme demands an ability effect that is not the
// reported ability (Ogerpon's masks while Terastallized). The result is never
// a nil-ish value: Boosts is always at least an empty map.
func DetermineAutoBoostEffect(src Snapshot, ctx BoostContext) AutoBoostEffect {
	effect := AutoBoostEffect{Boosts: map[stats.Stat]int{}}
	d := dex.ForFormat(ctx.Format)

	if rule, ok := abilityBoostRules[dex.ToID(src.Ability)]; ok {
		if _, known := d.Ability(src.Ability); known {
			if boosts, reffect, reffectDict, applied := rule.eval(src, ctx); applied {
				effect.Name = src.Ability
				effect.Dict = DictAbilities
				effect.Once = rule.once
				effect.Reffect = reffect
				effect.ReffectDict = reffectDict
				if boosts != nil {
					effect.Boosts = boosts
				}
			}
		}
	}

	if forced, ok := formeForcedEffect(d, src); ok {
		return forced
	}

	if !effect.Active() {
		if rule, ok := itemBoostRules[dex.ToID(src.Item)]; ok {
			if _, known := d.Item(src.Item); known {
				if boosts, reffect, reffectDict, applied := rule.eval(src, ctx); applied {
					effect.Name = src.Item
					effect.Dict = DictItems
					effect.Once = rule.once
					effect.Reffect = reffect
					effect.ReffectDict = reffectDict
					if boosts != nil {
						effect.Boosts = boosts
					}
				}
			}
		}
	}

	return effect
}

// formeForcedEffect implements the forme table: a Terastallized Ogerpon mask
// forme always carries its Embody Aspect boost, even when the simulator has
// not reported the ability swap yet.
func formeForcedEffect(d dex.Dex, src Snapshot) (AutoBoostEffect, bool) {
	species, ok := d.Species(src.SpeciesForme)
	if !ok {
		return AutoBoostEffect{}, false
	}
	base := species.BaseSpecies
	if base == "" {
		base = species.Name
	}
	if base != "Ogerpon" || !src.Terastallized {
		return AutoBoostEffect{}, false
	}
	aspect := embodyAspectForForme(species.Forme)
	if dex.ToID(src.Ability) == dex.ToID(aspect) {
		return AutoBoostEffect{}, false
	}
	rule, ok := abilityBoostRules[dex.ToID(aspect)]
	if !ok {
		return AutoBoostEffect{}, false
	}
	boosts, _, _, _ := rule.eval(src, BoostContext{})
	if boosts == nil {
		boosts = map[stats.Stat]int{}
	}
	return AutoBoostEffect{
		Name:   aspect,
		Dict:   DictSpecies,
		Boosts: boosts,
		Once:   true,
	}, true
}

// HasAutoBoostAbility reports whether the ability participates in the
// auto-boost table.
func HasAutoBoostAbility(ability string) bool {
	_, ok := abilityBoostRules[dex.ToID(ability)]
	return ok
}

// HasAutoBoostItem reports whether the item participates in the auto-boost
// table.
func HasAutoBoostItem(item string) bool {
	_, ok := itemBoostRules[dex.ToID(item)]
	return ok
}
