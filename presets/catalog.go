package presets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"calcdex/battle"
	"calcdex/dex"
	"calcdex/stats"
)

// PresetDocument models one authored set as it appears on disk. The struct is
// exported so tooling (e.g. the schema generator) can reflect over the file
// contract shared with data authors.
type PresetDocument struct {
	Name         string       `json:"name" jsonschema:"title=Set name,minLength=1,required,description=Display name for the set"`
	Format       string       `json:"format" jsonschema:"title=Format id,pattern=^gen[0-9]+[a-z0-9]*$,required,description=Format the set was authored for"`
	SpeciesForme string       `json:"speciesForme" jsonschema:"title=Species forme,minLength=1,required,description=Exact species forme the set targets"`
	Level        int          `json:"level,omitempty" jsonschema:"minimum=1,maximum=100"`
	Ability      string       `json:"ability,omitempty"`
	AltAbilities []string     `json:"altAbilities,omitempty" jsonschema:"description=Alternative abilities in preference order"`
	Item         string       `json:"item,omitempty"`
	AltItems     []string     `json:"altItems,omitempty"`
	Nature       string       `json:"nature,omitempty"`
	IVs          map[string]int `json:"ivs,omitempty" jsonschema:"description=Per-stat IVs keyed by stat id; omitted stats default to 31"`
	EVs          map[string]int `json:"evs,omitempty" jsonschema:"description=Per-stat EVs keyed by stat id; omitted stats default to 0"`
	Moves        []string     `json:"moves,omitempty"`
	AltMoves     []string     `json:"altMoves,omitempty"`
	TeraTypes    []string     `json:"teraTypes,omitempty"`
	Usage        float64      `json:"usage,omitempty" jsonschema:"minimum=0,maximum=1"`
}

// CatalogFile represents the contents of an authored preset file. Loaders
// accept either the canonical array format or an object keyed by set name.
type CatalogFile []PresetDocument

type catalogSource interface {
	Load() ([]byte, error)
	Path() string
}

type catalogFileSource struct {
	path string
}

func (f catalogFileSource) Load() ([]byte, error) {
	return os.ReadFile(f.path)
}

func (f catalogFileSource) Path() string {
	return f.path
}

// Catalog merges one or more authored preset sources into a stable pool.
// Call Reload to pick up on-disk changes.
type Catalog struct {
	mu      sync.RWMutex
	sources []catalogSource
	presets []battle.Preset
}

// DefaultCatalogPaths returns the canonical preset file locations relative to
// the module root.
func DefaultCatalogPaths() []string {
	return []string{
		filepath.Join("config", "presets", "sets.json"),
		filepath.Join("..", "config", "presets", "sets.json"),
	}
}

// LoadCatalog constructs a Catalog from file paths. Missing files are
// skipped so overlay paths stay optional.
func LoadCatalog(paths ...string) (*Catalog, error) {
	sources := make([]catalogSource, 0, len(paths))
	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		sources = append(sources, catalogFileSource{path: trimmed})
	}
	return newCatalog(sources...)
}

func newCatalog(sources ...catalogSource) (*Catalog, error) {
	c := &Catalog{sources: append([]catalogSource(nil), sources...)}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-parses all sources. Later sources append after earlier ones, so
// overlays lose precedence ties to the base file.
func (c *Catalog) Reload() error {
	if c == nil {
		return nil
	}
	var presets []battle.Preset
	for _, src := range c.sources {
		data, err := src.Load()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("presets: failed loading %s: %w", src.Path(), err)
		}
		documents, err := decodeCatalog(data)
		if err != nil {
			return fmt.Errorf("presets: failed parsing %s: %w", src.Path(), err)
		}
		for i, doc := range documents {
			preset, err := doc.toPreset()
			if err != nil {
				return fmt.Errorf("presets: entry %d in %s: %w", i, src.Path(), err)
			}
			presets = append(presets, preset)
		}
	}

	c.mu.Lock()
	c.presets = presets
	c.mu.Unlock()
	return nil
}

// Presets returns a snapshot of the loaded pool.
func (c *Catalog) Presets() []battle.Preset {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]battle.Preset(nil), c.presets...)
}

// ForSpecies returns the loaded presets targeting the given forme.
func (c *Catalog) ForSpecies(speciesForme string) []battle.Preset {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []battle.Preset
	for _, preset := range c.presets {
		if preset.MatchesSpecies(speciesForme) {
			out = append(out, preset)
		}
	}
	return out
}

func (d PresetDocument) toPreset() (battle.Preset, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return battle.Preset{}, fmt.Errorf("missing name")
	}
	if strings.TrimSpace(d.SpeciesForme) == "" {
		return battle.Preset{}, fmt.Errorf("set %q missing speciesForme", name)
	}
	gen := dex.GenFromFormat(d.Format)
	if !strings.HasPrefix(dex.ToID(d.Format), "gen") {
		return battle.Preset{}, fmt.Errorf("set %q has unparseable format %q", name, d.Format)
	}
	if d.Nature != "" && !stats.KnownNature(stats.Nature(d.Nature)) {
		return battle.Preset{}, fmt.Errorf("set %q names unknown nature %q", name, d.Nature)
	}

	ivs, err := statTableFromMap(d.IVs, 31, 31)
	if err != nil {
		return battle.Preset{}, fmt.Errorf("set %q ivs: %w", name, err)
	}
	evs, err := statTableFromMap(d.EVs, 0, 252)
	if err != nil {
		return battle.Preset{}, fmt.Errorf("set %q evs: %w", name, err)
	}

	teras := make([]dex.Type, len(d.TeraTypes))
	for i, t := range d.TeraTypes {
		teras[i] = dex.Type(t)
	}

	return battle.Preset{
		Name:         name,
		Source:       battle.SourceStored,
		Gen:          gen,
		Format:       d.Format,
		SpeciesForme: d.SpeciesForme,
		Level:        d.Level,
		Ability:      d.Ability,
		AltAbilities: append([]string(nil), d.AltAbilities...),
		Item:         d.Item,
		AltItems:     append([]string(nil), d.AltItems...),
		Nature:       stats.Nature(d.Nature),
		IVs:          ivs,
		EVs:          evs,
		Moves:        append([]string(nil), d.Moves...),
		AltMoves:     append([]string(nil), d.AltMoves...),
		TeraTypes:    teras,
		Usage:        d.Usage,
	}.Finalize(), nil
}

func statTableFromMap(values map[string]int, fill, max int) (stats.Table, error) {
	table := stats.Table{}
	for i := range table {
		table[i] = fill
	}
	for key, value := range values {
		stat, ok := stats.StatFromID(key)
		if !ok {
			return stats.Table{}, fmt.Errorf("unknown stat id %q", key)
		}
		if value < 0 || value > max {
			return stats.Table{}, fmt.Errorf("stat %q value %d out of range", key, value)
		}
		table[stat] = value
	}
	return table, nil
}

func decodeCatalog(data []byte) ([]PresetDocument, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	switch trimmed[0] {
	case '[':
		var documents []PresetDocument
		if err := json.Unmarshal(trimmed, &documents); err != nil {
			return nil, err
		}
		return documents, nil
	case '{':
		var object map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &object); err != nil {
			return nil, err
		}
		names := make([]string, 0, len(object))
		for name := range object {
			names = append(names, name)
		}
		sort.Strings(names)
		documents := make([]PresetDocument, 0, len(names))
		for _, name := range names {
			var doc PresetDocument
			if err := json.Unmarshal(object[name], &doc); err != nil {
				return nil, fmt.Errorf("set %q: %w", name, err)
			}
			if doc.Name == "" {
				doc.Name = name
			}
			documents = append(documents, doc)
		}
		return documents, nil
	default:
		return nil, fmt.Errorf("unexpected json token %q", string(trimmed[:1]))
	}
}
