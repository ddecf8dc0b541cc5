package presets

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"calcdex/battle"
	"calcdex/dex"
)

// Store caches fetched preset pools between sessions, keyed by format and
// species. Rows older than the staleness window are treated as absent so a
// new session refetches instead of trusting month-old sets.
type Store interface {
	Put(format, speciesForme string, presets []battle.Preset) error
	Get(format, speciesForme string) ([]battle.Preset, bool, error)
	Prune() (int64, error)
	Close() error
}

// cachedPool is the persisted row. Presets are stored as a JSON blob; the
// cache is an opaque fetch accelerator, not a queryable dataset.
type cachedPool struct {
	ID        uint   `gorm:"primaryKey"`
	Format    string `gorm:"index:idx_pool_key,unique"`
	SpeciesID string `gorm:"index:idx_pool_key,unique"`
	Payload   []byte
	FetchedAt time.Time
}

func (cachedPool) TableName() string { return "preset_pools" }

type sqliteStore struct {
	db           *gorm.DB
	maxStaleness time.Duration
	now          func() time.Time
}

// OpenStore opens (or creates) the sqlite-backed preset cache at path.
// maxStaleness bounds how old a cached pool may be before Get reports a miss.
func OpenStore(path string, maxStaleness time.Duration) (Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("presets: open cache %s: %w", path, err)
	}
	if err := db.AutoMigrate(&cachedPool{}); err != nil {
		return nil, fmt.Errorf("presets: migrate cache: %w", err)
	}
	return &sqliteStore{db: db, maxStaleness: maxStaleness, now: time.Now}, nil
}

func (s *sqliteStore) Put(format, speciesForme string, presets []battle.Preset) error {
	payload, err := json.Marshal(presets)
	if err != nil {
		return fmt.Errorf("presets: encode pool: %w", err)
	}
	row := cachedPool{
		Format:    dex.ToID(format),
		SpeciesID: dex.ToID(speciesForme),
		Payload:   payload,
		FetchedAt: s.now(),
	}

	var existing cachedPool
	err = s.db.Where("format = ? AND species_id = ?", row.Format, row.SpeciesID).First(&existing).Error
	switch {
	case err == nil:
		existing.Payload = row.Payload
		existing.FetchedAt = row.FetchedAt
		return s.db.Save(&existing).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.db.Create(&row).Error
	default:
		return fmt.Errorf("presets: cache lookup: %w", err)
	}
}

func (s *sqliteStore) Get(format, speciesForme string) ([]battle.Preset, bool, error) {
	var row cachedPool
	err := s.db.Where("format = ? AND species_id = ?", dex.ToID(format), dex.ToID(speciesForme)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("presets: cache lookup: %w", err)
	}
	if s.now().Sub(row.FetchedAt) > s.maxStaleness {
		return nil, false, nil
	}
	var presets []battle.Preset
	if err := json.Unmarshal(row.Payload, &presets); err != nil {
		return nil, false, fmt.Errorf("presets: decode pool: %w", err)
	}
	return presets, true, nil
}

// Prune deletes rows past the staleness window and reports how many went.
func (s *sqliteStore) Prune() (int64, error) {
	cutoff := s.now().Add(-s.maxStaleness)
	result := s.db.Where("fetched_at < ?", cutoff).Delete(&cachedPool{})
	if result.Error != nil {
		return 0, fmt.Errorf("presets: prune cache: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *sqliteStore) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
