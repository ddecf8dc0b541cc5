package mechanics

import (
	"strings"

	"calcdex/dex"
)

// alwaysCritMoves is the hardcoded exception list checked before falling back
// to description matching.
var alwaysCritMoves = map[string]bool{
	"frostbreath":    true,
	"stormthrow":     true,
	"wickedblow":     true,
	"surgingstrikes": true,
	"flowertrick":    true,
}

// critPhrases are the rules-text fragments that indicate a guaranteed
// critical hit.
var critPhrases = []string{
	"always a critical hit",
	"always results in a critical hit",
	"always result in a critical hit",
}

// AlwaysCriticalHits reports whether the move crits on every use in this
// format, checking the exception list first and the move's rules text second.
func AlwaysCriticalHits(moveName, format string) bool {
	if alwaysCritMoves[dex.ToID(moveName)] {
		return true
	}
	move, ok := dex.ForFormat(format).Move(moveName)
	if !ok {
		return false
	}
	if move.WillCrit {
		return true
	}
	desc := strings.ToLower(move.Desc)
	for _, phrase := range critPhrases {
		if strings.Contains(desc, phrase) {
			return true
		}
	}
	return false
}

// CritContext flags whether the move is being evaluated in an alternate form
// that suppresses guaranteed crits.
type CritContext struct {
	UseZ   bool
	UseMax bool
}

// DetermineCriticalHit resolves the effective crit flag for one move slot:
// guaranteed crits apply unless the move is in its Z/Max form, and the user's
// manual override always wins.
func DetermineCriticalHit(src Snapshot, moveName, format string, ctx CritContext) bool {
	if src.CritOverride {
		return true
	}
	return AlwaysCriticalHits(moveName, format) && !ctx.UseZ && !ctx.UseMax
}
