package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"calcdex/battle"
	"calcdex/logging"
	"calcdex/presets"
)

// Session binds the snapshot feed to one live battle: frames come in, the
// sanitizer normalizes them, preset resolution fills the gaps, and the
// orchestrator's updates flow out through the consumer.
type Session struct {
	publisher logging.Publisher
	consumer  battle.Consumer
	settings  presets.Settings
	catalog   *presets.Catalog
	store     presets.Store

	mu           sync.Mutex
	orchestrator *battle.Orchestrator
	sheets       []battle.Preset
	usages       []battle.Preset
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithCatalog supplies the authored preset pool.
func WithCatalog(catalog *presets.Catalog) SessionOption {
	return func(s *Session) { s.catalog = catalog }
}

// WithStore supplies the persistent preset cache.
func WithStore(store presets.Store) SessionOption {
	return func(s *Session) { s.store = store }
}

// WithSettings supplies the resolution settings.
func WithSettings(settings presets.Settings) SessionOption {
	return func(s *Session) { s.settings = settings }
}

// NewSession wires a session emitting updates to the consumer.
func NewSession(publisher logging.Publisher, consumer battle.Consumer, opts ...SessionOption) *Session {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	s := &Session{
		publisher: publisher,
		consumer:  consumer,
		settings:  presets.Settings{AutoImportSheets: true},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Orchestrator returns the live orchestrator, or nil outside a battle.
func (s *Session) Orchestrator() *battle.Orchestrator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orchestrator
}

// HandleFrame dispatches one inbound frame. Unknown frame types are logged
// and skipped so feed version drift never wedges the session.
func (s *Session) HandleFrame(ctx context.Context, frame SnapshotFrame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch frame.Type {
	case FrameBattleInit:
		return s.handleInit(frame)
	case FramePlayerSync:
		return s.handlePlayerSync(frame)
	case FramePokemonSync:
		return s.handlePokemonSync(frame)
	case FrameFieldSync:
		return s.handleFieldSync(frame)
	case FrameSheetSync:
		return s.handleSheetSync(frame)
	case FrameBattleEnd:
		s.orchestrator = nil
		s.sheets = nil
		return nil
	default:
		s.publisher.Publish(ctx, logging.Event{
			Type:     logging.EventBridge,
			Time:     time.Now(),
			BattleID: frame.BattleID,
			Severity: logging.SeverityDebug,
			Reason:   "unknown frame type",
			Extra:    map[string]any{"frameType": frame.Type},
		})
		return nil
	}
}

func (s *Session) handleInit(frame SnapshotFrame) error {
	var payload BattleInitPayload
	if err := json.Unmarshal(frame.Payload, &payload); err != nil {
		return fmt.Errorf("bridge: decode init payload: %w", err)
	}
	state := battle.NewState(frame.BattleID, payload.Format)
	if payload.PlayerKey != "" {
		state.PlayerKey = payload.PlayerKey
	}
	if payload.OpponentKey != "" {
		state.OpponentKey = payload.OpponentKey
	}
	s.orchestrator = battle.NewOrchestrator(state,
		battle.WithPublisher(s.publisher),
		battle.WithConsumer(s.consumer),
	)
	return nil
}

func (s *Session) handlePlayerSync(frame SnapshotFrame) error {
	if s.orchestrator == nil {
		return fmt.Errorf("bridge: player sync before battle init")
	}
	var payload PlayerSyncPayload
	if err := json.Unmarshal(frame.Payload, &payload); err != nil {
		return fmt.Errorf("bridge: decode player sync: %w", err)
	}
	state := s.orchestrator.State()
	state.Turn = frame.Turn

	if s.settings.DefaultLevel > 0 {
		for i := range payload.Pokemon {
			if payload.Pokemon[i].Level <= 0 {
				payload.Pokemon[i].Level = s.settings.DefaultLevel
			}
		}
	}

	player := state.SyncPlayer(payload.Key, battle.Player{
		Name:           payload.Name,
		Pokemon:        payload.Pokemon,
		ActiveIndices:  payload.ActiveIndices,
		SelectionIndex: payload.SelectionIndex,
		Side:           battle.PlayerSide{Conditions: payload.Conditions},
	})

	s.resolvePresets(state, player)

	// The sync step seeds the aggregate directly; consumers still get one
	// atomic update describing the new roster.
	update := battle.Update{
		BattleID: state.BattleID,
		Op:       "SyncPlayer",
		Patches: []battle.Patch{
			{
				Kind:      battle.PatchPlayerPokemon,
				PlayerKey: payload.Key,
				Payload:   battle.PokemonPayload{Pokemon: battle.ClonePokemonList(player.Pokemon)},
			},
			{
				Kind:      battle.PatchPlayerSide,
				PlayerKey: payload.Key,
				Payload:   battle.SidePayload{Side: player.Side},
			},
		},
	}
	if s.consumer != nil {
		s.consumer(update)
	}
	return nil
}

// resolvePresets runs the resolution engine over every party member still
// lacking a preset. The per-player nonce gates redundant re-resolution.
func (s *Session) resolvePresets(state *battle.State, player *battle.Player) {
	nonce := battle.PresetNonce(player.Pokemon)
	if nonce == "" {
		return
	}
	ctx := presets.Context{
		Format:   state.Format,
		Settings: s.settings,
		Pools: presets.Pools{
			Sheets:  s.sheets,
			Formats: s.formatPool(state.Format, player),
			Usages:  s.usages,
		},
	}
	for i := range player.Pokemon {
		mon := &player.Pokemon[i]
		if mon.PresetID != "" {
			continue
		}
		resolution := presets.Resolve(state.Gen, mon, ctx)
		applied := presets.Apply(state.Gen, state.Format, resolution, mon)
		s.publishPreset(state.BattleID, mon, resolution, applied)
	}
	player.PresetNonce = battle.PresetNonce(player.Pokemon)
}

// formatPool gathers format-repository candidates: the cache first, the
// authored catalog as fallback. Cache misses warm from the catalog so the
// next session hits even when the authored file moves out from under it.
func (s *Session) formatPool(format string, player *battle.Player) []battle.Preset {
	var pool []battle.Preset
	if s.store != nil {
		for i := range player.Pokemon {
			forme := player.Pokemon[i].SpeciesForme
			cached, ok, err := s.store.Get(format, forme)
			if err != nil {
				s.publishCache("cache read failed", err)
				continue
			}
			if ok {
				pool = append(pool, cached...)
				continue
			}
			if s.catalog != nil {
				if authored := s.catalog.ForSpecies(forme); len(authored) > 0 {
					if err := s.store.Put(format, forme, authored); err != nil {
						s.publishCache("cache write failed", err)
					}
				}
			}
		}
	}
	if s.catalog != nil {
		pool = append(pool, s.catalog.Presets()...)
	}
	return pool
}

func (s *Session) publishCache(reason string, err error) {
	s.publisher.Publish(context.Background(), logging.Event{
		Type:     logging.EventPreset,
		Time:     time.Now(),
		Severity: logging.SeverityWarn,
		Reason:   reason,
		Extra:    map[string]any{"detail": err.Error()},
	})
}

func (s *Session) handlePokemonSync(frame SnapshotFrame) error {
	if s.orchestrator == nil {
		return fmt.Errorf("bridge: pokemon sync before battle init")
	}
	var payload PokemonSyncPayload
	if err := json.Unmarshal(frame.Payload, &payload); err != nil {
		return fmt.Errorf("bridge: decode pokemon sync: %w", err)
	}
	var patch battle.PokemonPatch
	if err := json.Unmarshal(payload.Patch, &patch); err != nil {
		return fmt.Errorf("bridge: decode pokemon patch: %w", err)
	}
	s.orchestrator.UpdatePokemon(payload.Key, patch)
	return nil
}

func (s *Session) handleFieldSync(frame SnapshotFrame) error {
	if s.orchestrator == nil {
		return fmt.Errorf("bridge: field sync before battle init")
	}
	var payload FieldSyncPayload
	if err := json.Unmarshal(frame.Payload, &payload); err != nil {
		return fmt.Errorf("bridge: decode field sync: %w", err)
	}
	s.orchestrator.UpdateField(battle.FieldPatch{
		Weather: &payload.Weather,
		Terrain: &payload.Terrain,
	})
	return nil
}

func (s *Session) handleSheetSync(frame SnapshotFrame) error {
	if s.orchestrator == nil {
		return fmt.Errorf("bridge: sheet sync before battle init")
	}
	var sheets []battle.Preset
	if err := json.Unmarshal(frame.Payload, &sheets); err != nil {
		return fmt.Errorf("bridge: decode sheets: %w", err)
	}
	for i := range sheets {
		sheets[i] = sheets[i].Finalize()
	}
	// Sheets always land on the aggregate as revealed data; they only join
	// the resolution pools when the import setting allows.
	if s.settings.AutoImportSheets {
		s.sheets = sheets
	}
	state := s.orchestrator.State()
	state.Sheets = sheets
	ids := make([]string, len(sheets))
	for i := range sheets {
		ids[i] = sheets[i].CalcdexID
	}
	state.SheetsNonce = strings.Join(ids, ",")
	return nil
}

func (s *Session) publishPreset(battleID string, mon *battle.Pokemon, resolution presets.Resolution, applied presets.Applied) {
	reason := "preset applied"
	if resolution.ForceOpenEditor {
		reason = "default reset"
	}
	s.publisher.Publish(context.Background(), logging.Event{
		Type:     logging.EventPreset,
		Time:     time.Now(),
		BattleID: battleID,
		Actor:    logging.EntityRef{ID: mon.CalcdexID, Kind: logging.EntityKindPokemon},
		Severity: logging.SeverityInfo,
		Reason:   reason,
		Extra: map[string]any{
			"preset": resolution.Preset.Name,
			"source": string(resolution.Preset.Source),
			"fields": applied.Fields,
		},
	})
}
