package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AHSpire/StarSound/internal/fileutil"
)

// Preference keys remembered between runs.
const (
	PrefLastProject   = "last_project"
	PrefLastPatchMode = "last_patch_mode"
	PrefLastAudioDir  = "last_audio_dir"
	PrefLastModFolder = "last_mod_folder"
)

var knownPrefKeys = map[string]struct{}{
	PrefLastProject:   {},
	PrefLastPatchMode: {},
	PrefLastAudioDir:  {},
	PrefLastModFolder: {},
}

// Prefs is the key-value preferences tier backed by a single JSON file.
// A missing or corrupt file behaves as empty.
type Prefs struct {
	path   string
	values map[string]string
}

// OpenPrefs loads settings.json from dir.
func OpenPrefs(dir string) (*Prefs, error) {
	path := filepath.Join(dir, "settings.json")
	prefs := &Prefs{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return prefs, nil
		}
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		// Corrupt preferences are not worth failing a build over.
		return prefs, nil
	}
	prefs.values = values
	return prefs, nil
}

// IsKnownKey reports whether the key is one StarSound reads back.
func IsKnownKey(key string) bool {
	_, ok := knownPrefKeys[key]
	return ok
}

// Get returns the stored value for key, empty when unset.
func (p *Prefs) Get(key string) string {
	return p.values[key]
}

// Set stores a value and persists the file. An empty value removes the key.
func (p *Prefs) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("preference key is required")
	}
	if value == "" {
		delete(p.values, key)
	} else {
		p.values[key] = value
	}
	return p.flush()
}

// Keys returns the stored keys in sorted order.
func (p *Prefs) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for key := range p.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (p *Prefs) flush() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	data, err := json.MarshalIndent(p.values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := fileutil.WriteFileAtomic(p.path, data, 0o644); err != nil {
		return &StoreWriteError{Path: p.path, Err: err}
	}
	return nil
}
