package bridge

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"calcdex/battle"
	"calcdex/presets"
)

func frame(frameType, battleID string, payload string) SnapshotFrame {
	return SnapshotFrame{
		Type:     frameType,
		BattleID: battleID,
		Payload:  json.RawMessage(payload),
	}
}

func TestSessionLifecycle(t *testing.T) {
	var received []battle.Update
	session := NewSession(nil, func(u battle.Update) {
		received = append(received, u)
	})
	ctx := context.Background()

	if err := session.HandleFrame(ctx, frame(FramePlayerSync, "b-1", `{}`)); err == nil {
		t.Fatalf("player sync before init must error")
	}

	if err := session.HandleFrame(ctx, frame(FrameBattleInit, "b-1",
		`{"format":"gen9ou","playerKey":"p1","opponentKey":"p2"}`)); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	orchestrator := session.Orchestrator()
	if orchestrator == nil {
		t.Fatalf("init should build the orchestrator")
	}
	state := orchestrator.State()
	if state.BattleID != "b-1" || state.Format != "gen9ou" || state.Gen != 9 {
		t.Fatalf("unexpected state identity: %+v", state)
	}
	if state.PlayerKey != battle.PlayerP1 || state.OpponentKey != battle.PlayerP2 {
		t.Fatalf("roles not seeded: %s/%s", state.PlayerKey, state.OpponentKey)
	}

	if err := session.HandleFrame(ctx, frame(FramePlayerSync, "b-1", `{
		"key": "p1",
		"name": "trainer-one",
		"pokemon": [
			{"calcdexId": "m1", "speciesForme": "Garchomp"},
			{"calcdexId": "m2", "speciesForme": "Dragonite"}
		]
	}`)); err != nil {
		t.Fatalf("player sync failed: %v", err)
	}
	if len(received) != 1 || received[0].Op != "SyncPlayer" {
		t.Fatalf("consumer should get one roster update, got %+v", received)
	}
	player := state.Players[battle.PlayerP1]
	if player == nil || len(player.Pokemon) != 2 {
		t.Fatalf("roster not installed")
	}
	mon := player.Pokemon[0]
	if mon.Level != 100 || mon.MaxHP == 0 {
		t.Fatalf("sanitizer should fill level and spread stats: %+v", mon)
	}
	// With no candidate pools every slot lands on the default reset, so the
	// missing-preset nonce drains.
	if mon.PresetID == "" || player.PresetNonce != "" {
		t.Fatalf("preset resolution did not run: id %q nonce %q", mon.PresetID, player.PresetNonce)
	}

	if err := session.HandleFrame(ctx, frame(FramePokemonSync, "b-1",
		`{"key":"p1","patch":{"calcdexId":"m1","dirtyItem":"Leftovers"}}`)); err != nil {
		t.Fatalf("pokemon sync failed: %v", err)
	}
	if got := state.Players[battle.PlayerP1].Pokemon[0].Item.Effective(); got != "Leftovers" {
		t.Fatalf("item = %q, want the synced override", got)
	}
	if len(received) != 2 || received[1].Op != "UpdatePokemon" {
		t.Fatalf("consumer should get the dispatched patch, got %d updates", len(received))
	}

	if err := session.HandleFrame(ctx, frame(FrameFieldSync, "b-1",
		`{"weather":"Rain","terrain":""}`)); err != nil {
		t.Fatalf("field sync failed: %v", err)
	}
	if got := state.Field.Weather.Effective(); got != "Rain" {
		t.Fatalf("weather = %q, want Rain", got)
	}

	if err := session.HandleFrame(ctx, frame(FrameSheetSync, "b-1", `[
		{"name":"Full Sheet","source":"sheet","gen":9,"format":"gen9ou","speciesForme":"Garchomp",
		 "playerKey":"p1","nature":"Jolly","ivs":[31,31,31,31,31,31],"evs":[0,252,0,0,4,252]}
	]`)); err != nil {
		t.Fatalf("sheet sync failed: %v", err)
	}
	if len(state.Sheets) != 1 || state.Sheets[0].CalcdexID == "" {
		t.Fatalf("sheets not finalized: %+v", state.Sheets)
	}
	if state.SheetsNonce == "" {
		t.Fatalf("sheet nonce should fingerprint the revealed sheets")
	}

	if err := session.HandleFrame(ctx, frame("made.up", "b-1", `{}`)); err != nil {
		t.Fatalf("unknown frame types are skipped, got %v", err)
	}

	if err := session.HandleFrame(ctx, frame(FrameBattleEnd, "b-1", ``)); err != nil {
		t.Fatalf("battle end failed: %v", err)
	}
	if session.Orchestrator() != nil {
		t.Fatalf("battle end should drop the session state")
	}
}

// recordingStore is an in-memory presets.Store for asserting cache traffic.
type recordingStore struct {
	pools map[string][]battle.Preset
}

func newRecordingStore() *recordingStore {
	return &recordingStore{pools: make(map[string][]battle.Preset)}
}

func (r *recordingStore) Put(format, speciesForme string, pool []battle.Preset) error {
	r.pools[format+"/"+speciesForme] = pool
	return nil
}

func (r *recordingStore) Get(format, speciesForme string) ([]battle.Preset, bool, error) {
	pool, ok := r.pools[format+"/"+speciesForme]
	return pool, ok, nil
}

func (r *recordingStore) Prune() (int64, error) { return 0, nil }
func (r *recordingStore) Close() error          { return nil }

func loadTestCatalog(t *testing.T) *presets.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sets.json")
	contents := `[{
		"name": "Swords Dance", "format": "gen9ou", "speciesForme": "Garchomp",
		"ability": "Rough Skin", "nature": "Jolly",
		"evs": {"atk": 252, "spd": 4, "spe": 252},
		"moves": ["Swords Dance", "Earthquake", "Scale Shot", "Fire Fang"]
	}]`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write catalog fixture: %v", err)
	}
	catalog, err := presets.LoadCatalog(path)
	if err != nil {
		t.Fatalf("load catalog fixture: %v", err)
	}
	return catalog
}

func TestSessionWarmsPresetCache(t *testing.T) {
	store := newRecordingStore()
	session := NewSession(nil, nil,
		WithCatalog(loadTestCatalog(t)),
		WithStore(store),
	)
	ctx := context.Background()

	if err := session.HandleFrame(ctx, frame(FrameBattleInit, "b-3", `{"format":"gen9ou"}`)); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := session.HandleFrame(ctx, frame(FramePlayerSync, "b-3", `{
		"key": "p1",
		"pokemon": [{"calcdexId": "m1", "speciesForme": "Garchomp"}]
	}`)); err != nil {
		t.Fatalf("player sync failed: %v", err)
	}

	mon := session.Orchestrator().State().Players[battle.PlayerP1].Pokemon[0]
	if mon.PresetSource != battle.SourceStored {
		t.Fatalf("preset source = %q, want the authored pool", mon.PresetSource)
	}
	warmed, ok := store.pools["gen9ou/Garchomp"]
	if !ok || len(warmed) != 1 || warmed[0].Name != "Swords Dance" {
		t.Fatalf("cache miss should warm from the catalog, got %+v", store.pools)
	}
}

func TestSessionSheetImportSetting(t *testing.T) {
	sheetPayload := `[
		{"name":"Full Sheet","source":"sheet","gen":9,"format":"gen9ou","speciesForme":"Garchomp",
		 "playerKey":"p1","nature":"Jolly","ivs":[31,31,31,31,31,31],"evs":[0,252,0,0,4,252]}
	]`
	rosterPayload := `{"key":"p1","pokemon":[{"calcdexId":"m1","speciesForme":"Garchomp"}]}`

	t.Run("enabled", func(t *testing.T) {
		session := NewSession(nil, nil)
		ctx := context.Background()
		if err := session.HandleFrame(ctx, frame(FrameBattleInit, "b-4", `{"format":"gen9ou"}`)); err != nil {
			t.Fatalf("init failed: %v", err)
		}
		if err := session.HandleFrame(ctx, frame(FrameSheetSync, "b-4", sheetPayload)); err != nil {
			t.Fatalf("sheet sync failed: %v", err)
		}
		if err := session.HandleFrame(ctx, frame(FramePlayerSync, "b-4", rosterPayload)); err != nil {
			t.Fatalf("player sync failed: %v", err)
		}
		mon := session.Orchestrator().State().Players[battle.PlayerP1].Pokemon[0]
		if mon.PresetSource != battle.SourceSheet {
			t.Fatalf("preset source = %q, want the revealed sheet", mon.PresetSource)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		session := NewSession(nil, nil, WithSettings(presets.Settings{}))
		ctx := context.Background()
		if err := session.HandleFrame(ctx, frame(FrameBattleInit, "b-5", `{"format":"gen9ou"}`)); err != nil {
			t.Fatalf("init failed: %v", err)
		}
		if err := session.HandleFrame(ctx, frame(FrameSheetSync, "b-5", sheetPayload)); err != nil {
			t.Fatalf("sheet sync failed: %v", err)
		}
		if err := session.HandleFrame(ctx, frame(FramePlayerSync, "b-5", rosterPayload)); err != nil {
			t.Fatalf("player sync failed: %v", err)
		}
		state := session.Orchestrator().State()
		mon := state.Players[battle.PlayerP1].Pokemon[0]
		if mon.PresetSource == battle.SourceSheet {
			t.Fatalf("sheets must stay out of resolution when imports are off")
		}
		if !mon.ShowDetails || mon.PresetSource != battle.SourceUser {
			t.Fatalf("slot should land on the default reset, got %q", mon.PresetSource)
		}
		// The sheet is still recorded on the aggregate as revealed data.
		if len(state.Sheets) != 1 {
			t.Fatalf("sheets = %d, want the revealed one kept", len(state.Sheets))
		}
	})
}

func TestSessionDefaultLevelOverride(t *testing.T) {
	session := NewSession(nil, nil, WithSettings(presets.Settings{
		AutoImportSheets: true,
		DefaultLevel:     5,
	}))
	ctx := context.Background()
	if err := session.HandleFrame(ctx, frame(FrameBattleInit, "b-6", `{"format":"gen9ou"}`)); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := session.HandleFrame(ctx, frame(FramePlayerSync, "b-6",
		`{"key":"p1","pokemon":[{"calcdexId":"m1","speciesForme":"Garchomp"}]}`)); err != nil {
		t.Fatalf("player sync failed: %v", err)
	}
	mon := session.Orchestrator().State().Players[battle.PlayerP1].Pokemon[0]
	if mon.Level != 5 {
		t.Fatalf("level = %d, want the configured fallback", mon.Level)
	}
}

func TestSessionBadPayloads(t *testing.T) {
	session := NewSession(nil, nil)
	ctx := context.Background()

	if err := session.HandleFrame(ctx, frame(FrameBattleInit, "b-2", `not json`)); err == nil {
		t.Fatalf("malformed init payload must error")
	}
	if err := session.HandleFrame(ctx, frame(FrameBattleInit, "b-2", `{"format":"gen9ou"}`)); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := session.HandleFrame(ctx, frame(FramePokemonSync, "b-2", `{"key":"p1","patch":"nope"}`)); err == nil {
		t.Fatalf("malformed patch payload must error")
	}
}
