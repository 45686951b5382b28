package biome

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed biome_tracks.json
var embeddedCatalog []byte

// Daypart selects the day or night track pool.
type Daypart string

const (
	Day   Daypart = "day"
	Night Daypart = "night"
)

// Tracks holds one biome's music pools in original file order.
type Tracks struct {
	Day   []string `json:"day"`
	Night []string `json:"night"`
}

// Ref identifies a biome by category and name, e.g. surface/forest.
type Ref struct {
	Category string
	Name     string
}

// Key returns the canonical "category/name" catalog key.
func (r Ref) Key() string { return r.Category + "/" + r.Name }

func (r Ref) String() string { return r.Key() }

// ParseRef splits a "category/name" key into a Ref.
func ParseRef(key string) (Ref, error) {
	parts := strings.SplitN(strings.TrimSpace(key), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Ref{}, fmt.Errorf("biome ref %q: want category/name", key)
	}
	return Ref{Category: parts[0], Name: parts[1]}, nil
}

// Catalog maps "category/biome" keys to vanilla track pools.
type Catalog struct {
	entries map[string]Tracks
}

// Embedded returns the catalog compiled into the binary.
func Embedded() (*Catalog, error) {
	return parseCatalog(embeddedCatalog)
}

// Load reads a regenerated catalog from path, falling back to the
// embedded data when path is empty.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Embedded()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read biome catalog: %w", err)
	}
	return parseCatalog(raw)
}

func parseCatalog(raw []byte) (*Catalog, error) {
	var entries map[string]Tracks
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse biome catalog: %w", err)
	}
	return &Catalog{entries: entries}, nil
}

// NewCatalog builds a catalog from explicit entries. Used by callers that
// assemble track pools programmatically and in tests.
func NewCatalog(entries map[string]Tracks) *Catalog {
	cp := make(map[string]Tracks, len(entries))
	for k, v := range entries {
		cp[k] = v
	}
	return &Catalog{entries: cp}
}

// All returns every known biome sorted by key.
func (c *Catalog) All() []Ref {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	refs := make([]Ref, 0, len(keys))
	for _, k := range keys {
		ref, err := ParseRef(k)
		if err != nil {
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

// Contains reports whether the biome is known to the catalog.
func (c *Catalog) Contains(ref Ref) bool {
	_, ok := c.entries[ref.Key()]
	return ok
}

// VanillaTracks returns the biome's pools in original order. Unknown
// biomes yield empty pools.
func (c *Catalog) VanillaTracks(ref Ref) Tracks {
	t := c.entries[ref.Key()]
	out := Tracks{
		Day:   append([]string(nil), t.Day...),
		Night: append([]string(nil), t.Night...),
	}
	return out
}

// PoolSize returns the number of vanilla tracks in one daypart pool.
func (c *Catalog) PoolSize(ref Ref, part Daypart) int {
	t := c.entries[ref.Key()]
	if part == Night {
		return len(t.Night)
	}
	return len(t.Day)
}

// TrackAt returns the vanilla track ID (an asset path like
// /music/foo.ogg) at the given pool index, if present.
func (c *Catalog) TrackAt(ref Ref, part Daypart, index int) (string, bool) {
	t := c.entries[ref.Key()]
	pool := t.Day
	if part == Night {
		pool = t.Night
	}
	if index < 0 || index >= len(pool) {
		return "", false
	}
	return pool[index], true
}
