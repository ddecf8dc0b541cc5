package battle

import (
	"context"
	"time"

	"calcdex/logging"
	"calcdex/mechanics"
)

// Outcome classifies how an operation ended. Everything except
// OutcomeDispatched is a silent early-return: nothing emitted, nothing
// mutated.
type Outcome int

const (
	OutcomeDispatched Outcome = iota
	OutcomeBadState
	OutcomeInvalidArgs
	OutcomeBadEntity
	OutcomeNoChange
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDispatched:
		return "dispatched"
	case OutcomeBadState:
		return "bad state"
	case OutcomeInvalidArgs:
		return "invalid args"
	case OutcomeBadEntity:
		return "bad entity state"
	case OutcomeNoChange:
		return "no change"
	default:
		return "unknown"
	}
}

// Consumer receives each dispatched update. Updates must be applied
// atomically; partial application breaks the consistency guarantee.
type Consumer func(Update)

// Orchestrator exposes the state-mutating operations. Each operation reads
// the current state, clones only what it touches, runs the rules evaluators,
// and emits one combined update through the change-detection gate. Operations
// run synchronously to completion; the clone-then-patch discipline is the
// only concurrency control.
type Orchestrator struct {
	state     *State
	publisher logging.Publisher
	consumer  Consumer
	clock     logging.Clock
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPublisher routes diagnostic events to the given publisher.
func WithPublisher(p logging.Publisher) Option {
	return func(o *Orchestrator) {
		if p != nil {
			o.publisher = p
		}
	}
}

// WithConsumer registers the emitted-patch consumer.
func WithConsumer(c Consumer) Option {
	return func(o *Orchestrator) { o.consumer = c }
}

// WithClock overrides the diagnostic clock (tests).
func WithClock(c logging.Clock) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.clock = c
		}
	}
}

// NewOrchestrator wraps a state aggregate.
func NewOrchestrator(state *State, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		state:     state,
		publisher: logging.NopPublisher(),
		clock:     logging.ClockFunc(time.Now),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State exposes the normalized aggregate (read-only by convention).
func (o *Orchestrator) State() *State {
	return o.state
}

// finish publishes the operation diagnostic and, for dispatched outcomes,
// applies the update to the local aggregate and hands it to the consumer.
func (o *Orchestrator) finish(op string, outcome Outcome, update Update, start time.Time) (Update, Outcome) {
	severity := logging.SeverityDebug
	if outcome == OutcomeDispatched {
		severity = logging.SeverityInfo
	}
	battleID := ""
	if o.state != nil {
		battleID = o.state.BattleID
	}
	o.publisher.Publish(context.Background(), logging.Event{
		Type:     logging.EventOperation,
		BattleID: battleID,
		Actor:    logging.EntityRef{ID: battleID, Kind: logging.EntityKindBattle},
		Severity: severity,
		Op:       op,
		Reason:   outcome.String(),
		Duration: o.clock.Now().Sub(start),
	})
	if outcome != OutcomeDispatched {
		return Update{}, outcome
	}
	update.BattleID = battleID
	update.Op = op
	if err := ApplyUpdate(o.state, update); err != nil {
		// Structural replay failures indicate an engine bug; degrade to a
		// no-op rather than leaving a half-applied aggregate.
		o.publisher.Publish(context.Background(), logging.Event{
			Type:     logging.EventOperation,
			BattleID: battleID,
			Severity: logging.SeverityError,
			Op:       op,
			Reason:   "apply failed",
			Payload:  err.Error(),
		})
		return Update{}, OutcomeBadState
	}
	if o.consumer != nil {
		o.consumer(update)
	}
	return update, OutcomeDispatched
}

// guard runs the shared preconditions: aggregate identity, known player key,
// active player.
func (o *Orchestrator) guard(key PlayerKey) (*Player, Outcome) {
	if !o.state.Valid() {
		return nil, OutcomeBadState
	}
	if !ValidPlayerKey(key) {
		return nil, OutcomeInvalidArgs
	}
	player, ok := o.state.Players[key]
	if !ok || player == nil {
		return nil, OutcomeInvalidArgs
	}
	if !player.Active {
		return nil, OutcomeBadEntity
	}
	return player, OutcomeDispatched
}

// ActivatePokemon replaces the player's active slot indices. Order-sensitive
// equality: the same values in the same order is a no-op.
func (o *Orchestrator) ActivatePokemon(key PlayerKey, activeIndices []int) (Update, Outcome) {
	start := o.clock.Now()
	const op = "ActivatePokemon"
	player, outcome := o.guard(key)
	if outcome != OutcomeDispatched {
		return o.finish(op, outcome, Update{}, start)
	}
	for _, idx := range activeIndices {
		if idx < 0 || idx >= len(player.Pokemon) {
			return o.finish(op, OutcomeInvalidArgs, Update{}, start)
		}
	}
	if SimilarInts(player.ActiveIndices, activeIndices) {
		return o.finish(op, OutcomeNoChange, Update{}, start)
	}
	update := Update{Patches: []Patch{{
		Kind:      PatchPlayerActives,
		PlayerKey: key,
		Payload:   ActivesPayload{ActiveIndices: append([]int(nil), activeIndices...)},
	}}}
	return o.finish(op, OutcomeDispatched, update, start)
}

// AutoSelectPokemon flips the player's auto-select flag.
func (o *Orchestrator) AutoSelectPokemon(key PlayerKey, enabled bool) (Update, Outcome) {
	start := o.clock.Now()
	const op = "AutoSelectPokemon"
	player, outcome := o.guard(key)
	if outcome != OutcomeDispatched {
		return o.finish(op, outcome, Update{}, start)
	}
	if player.AutoSelect == enabled {
		return o.finish(op, OutcomeNoChange, Update{}, start)
	}
	update := Update{Patches: []Patch{{
		Kind:      PatchPlayerAutoSelect,
		PlayerKey: key,
		Payload:   AutoSelectPayload{Enabled: enabled},
	}}}
	return o.finish(op, OutcomeDispatched, update, start)
}

// AssignPlayer points the viewer role at the given key. If the key already
// holds the opponent role the two roles swap, so they never collide.
func (o *Orchestrator) AssignPlayer(key PlayerKey) (Update, Outcome) {
	return o.assignRole("AssignPlayer", key, true)
}

// AssignOpponent points the opponent role at the given key, swapping roles
// on collision like AssignPlayer.
func (o *Orchestrator) AssignOpponent(key PlayerKey) (Update, Outcome) {
	return o.assignRole("AssignOpponent", key, false)
}

func (o *Orchestrator) assignRole(op string, key PlayerKey, viewer bool) (Update, Outcome) {
	start := o.clock.Now()
	if !o.state.Valid() {
		return o.finish(op, OutcomeBadState, Update{}, start)
	}
	if !ValidPlayerKey(key) {
		return o.finish(op, OutcomeInvalidArgs, Update{}, start)
	}
	playerKey, opponentKey := o.state.PlayerKey, o.state.OpponentKey
	if viewer {
		if playerKey == key {
			return o.finish(op, OutcomeNoChange, Update{}, start)
		}
		if opponentKey == key {
			opponentKey = playerKey
		}
		playerKey = key
	} else {
		if opponentKey == key {
			return o.finish(op, OutcomeNoChange, Update{}, start)
		}
		if playerKey == key {
			playerKey = opponentKey
		}
		opponentKey = key
	}
	update := Update{Patches: []Patch{{
		Kind:    PatchBattleRoles,
		Payload: RolesPayload{PlayerKey: playerKey, OpponentKey: opponentKey},
	}}}
	return o.finish(op, OutcomeDispatched, update, start)
}

// SidePatch is the partial-update shape for UpdateSide. Nil pointers leave
// the field untouched; Conditions entries merge into the existing map.
type SidePatch struct {
	Spikes      *int
	ToxicSpikes *int
	StealthRock *bool
	StickyWeb   *bool
	Reflect     *bool
	LightScreen *bool
	AuroraVeil  *bool
	Conditions  map[string]int
}

func (p SidePatch) empty() bool {
	return p.Spikes == nil && p.ToxicSpikes == nil && p.StealthRock == nil &&
		p.StickyWeb == nil && p.Reflect == nil && p.LightScreen == nil &&
		p.AuroraVeil == nil && len(p.Conditions) == 0
}

// UpdateSide shallow-merges a patch onto the player's side; the nested
// conditions map is merged rather than replaced.
func (o *Orchestrator) UpdateSide(key PlayerKey, patch SidePatch) (Update, Outcome) {
	start := o.clock.Now()
	const op = "UpdateSide"
	player, outcome := o.guard(key)
	if outcome != OutcomeDispatched {
		return o.finish(op, outcome, Update{}, start)
	}
	if patch.empty() {
		return o.finish(op, OutcomeInvalidArgs, Update{}, start)
	}
	merged := player.Side.Clone()
	if patch.Spikes != nil {
		merged.Spikes = *patch.Spikes
	}
	if patch.ToxicSpikes != nil {
		merged.ToxicSpikes = *patch.ToxicSpikes
	}
	if patch.StealthRock != nil {
		merged.StealthRock = *patch.StealthRock
	}
	if patch.StickyWeb != nil {
		merged.StickyWeb = *patch.StickyWeb
	}
	if patch.Reflect != nil {
		merged.Reflect = *patch.Reflect
	}
	if patch.LightScreen != nil {
		merged.LightScreen = *patch.LightScreen
	}
	if patch.AuroraVeil != nil {
		merged.AuroraVeil = *patch.AuroraVeil
	}
	if len(patch.Conditions) > 0 {
		if merged.Conditions == nil {
			merged.Conditions = make(map[string]int, len(patch.Conditions))
		}
		for k, v := range patch.Conditions {
			merged.Conditions[k] = v
		}
	}
	if sidesEqual(player.Side, merged) {
		return o.finish(op, OutcomeNoChange, Update{}, start)
	}
	update := Update{Patches: []Patch{{
		Kind:      PatchPlayerSide,
		PlayerKey: key,
		Payload:   SidePayload{Side: merged},
	}}}
	return o.finish(op, OutcomeDispatched, update, start)
}

func sidesEqual(a, b PlayerSide) bool {
	if a.Spikes != b.Spikes || a.ToxicSpikes != b.ToxicSpikes ||
		a.StealthRock != b.StealthRock || a.StickyWeb != b.StickyWeb ||
		a.Reflect != b.Reflect || a.LightScreen != b.LightScreen ||
		a.AuroraVeil != b.AuroraVeil ||
		a.RuinSwordCount != b.RuinSwordCount || a.RuinBeadsCount != b.RuinBeadsCount ||
		a.RuinTabletsCount != b.RuinTabletsCount || a.RuinVesselCount != b.RuinVesselCount {
		return false
	}
	if len(a.Conditions) != len(b.Conditions) {
		return false
	}
	for k, v := range a.Conditions {
		if b.Conditions[k] != v {
			return false
		}
	}
	return true
}

// FieldPatch is the partial-update shape for UpdateField. Dirty pointers set
// the user override; pointing at the empty string clears it.
type FieldPatch struct {
	Weather      *string
	Terrain      *string
	DirtyWeather *string
	DirtyTerrain *string
}

func (p FieldPatch) empty() bool {
	return p.Weather == nil && p.Terrain == nil && p.DirtyWeather == nil && p.DirtyTerrain == nil
}

// UpdateField shallow-merges field conditions. When the effective weather or
// terrain changes in a generation with field-dependent ability toggles, every
// on-field Pokémon with a toggleable ability is re-evaluated and the flipped
// parties ride along in the same emission.
func (o *Orchestrator) UpdateField(patch FieldPatch) (Update, Outcome) {
	start := o.clock.Now()
	const op = "UpdateField"
	if !o.state.Valid() {
		return o.finish(op, OutcomeBadState, Update{}, start)
	}
	if patch.empty() {
		return o.finish(op, OutcomeInvalidArgs, Update{}, start)
	}

	field := o.state.Field
	prevWeather := field.Weather.Effective()
	prevTerrain := field.Terrain.Effective()
	if patch.Weather != nil {
		field.Weather.SetRevealed(*patch.Weather, stringsEqual)
	}
	if patch.DirtyWeather != nil {
		if *patch.DirtyWeather == "" {
			field.Weather.ClearDirty()
		} else {
			field.Weather.SetDirty(*patch.DirtyWeather)
			field.Weather.Reconcile(stringsEqual)
		}
	}
	if patch.Terrain != nil {
		field.Terrain.SetRevealed(*patch.Terrain, stringsEqual)
	}
	if patch.DirtyTerrain != nil {
		if *patch.DirtyTerrain == "" {
			field.Terrain.ClearDirty()
		} else {
			field.Terrain.SetDirty(*patch.DirtyTerrain)
			field.Terrain.Reconcile(stringsEqual)
		}
	}

	if fieldsEqual(o.state.Field, field) {
		return o.finish(op, OutcomeNoChange, Update{}, start)
	}

	update := Update{Patches: []Patch{{Kind: PatchField, Payload: FieldPayload{Field: field}}}}

	weather := field.Weather.Effective()
	terrain := field.Terrain.Effective()
	conditionsChanged := weather != prevWeather || terrain != prevTerrain
	if conditionsChanged && mechanics.RuinGen(o.state.Gen) {
		update.Patches = append(update.Patches, o.fieldRetogglePatches(weather, terrain)...)
	}

	return o.finish(op, OutcomeDispatched, update, start)
}

func fieldsEqual(a, b Field) bool {
	return a.Weather.Revealed == b.Weather.Revealed &&
		a.Terrain.Revealed == b.Terrain.Revealed &&
		pointersEqual(a.Weather.Dirty, b.Weather.Dirty) &&
		pointersEqual(a.Terrain.Dirty, b.Terrain.Dirty)
}

func pointersEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
