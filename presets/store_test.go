package presets

import (
	"path/filepath"
	"testing"
	"time"

	"calcdex/battle"
)

func openTestStore(t *testing.T, maxStaleness time.Duration) *sqliteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := OpenStore(path, maxStaleness)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store.(*sqliteStore)
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t, time.Hour)

	pool := []battle.Preset{formatGarchomp()}
	if err := store.Put("gen9ou", "Garchomp", pool); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	// Key lookup canonicalizes, so the forme spelling may drift.
	got, ok, err := store.Get("gen9ou", "garchomp")
	if err != nil || !ok {
		t.Fatalf("get = %v, %v, want a hit", ok, err)
	}
	if len(got) != 1 || got[0].Name != pool[0].Name || got[0].CalcdexID != pool[0].CalcdexID {
		t.Fatalf("cached pool = %+v, want the stored one", got)
	}

	if _, ok, err := store.Get("gen9ou", "Dragonite"); err != nil || ok {
		t.Fatalf("unknown species should miss, got %v, %v", ok, err)
	}

	// A second Put for the same key replaces the row instead of duplicating.
	updated := formatGarchomp()
	updated.Name = "Bulky Pivot"
	updated = updated.Finalize()
	if err := store.Put("gen9ou", "Garchomp", []battle.Preset{updated}); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, ok, err = store.Get("gen9ou", "Garchomp")
	if err != nil || !ok {
		t.Fatalf("get after overwrite = %v, %v, want a hit", ok, err)
	}
	if len(got) != 1 || got[0].Name != "Bulky Pivot" {
		t.Fatalf("overwrite kept the old pool: %+v", got)
	}
}

func TestStoreStaleness(t *testing.T) {
	store := openTestStore(t, time.Hour)

	if err := store.Put("gen9ou", "Garchomp", []battle.Preset{formatGarchomp()}); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if _, ok, err := store.Get("gen9ou", "Garchomp"); err != nil || !ok {
		t.Fatalf("fresh row should hit, got %v, %v", ok, err)
	}

	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, ok, err := store.Get("gen9ou", "Garchomp"); err != nil || ok {
		t.Fatalf("stale row must read as a miss, got %v, %v", ok, err)
	}

	pruned, err := store.Prune()
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if pruned != 1 {
		t.Fatalf("pruned = %d, want the one stale row", pruned)
	}
}
