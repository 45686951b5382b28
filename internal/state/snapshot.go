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
	"time"

	"github.com/AHSpire/StarSound/internal/fileutil"
	"github.com/AHSpire/StarSound/internal/patch"
	"github.com/AHSpire/StarSound/internal/procconfig"
)

const snapshotExt = ".project.json"

// SourceFile records one input audio file and the segment identifiers it
// produced, preserving split lineage across save and load.
type SourceFile struct {
	Path       string   `json:"path"`
	SegmentIDs []string `json:"segmentIds,omitempty"`
}

// ProjectSnapshot captures everything needed to rebuild a mod: inputs,
// biome selections, and processing settings.
type ProjectSnapshot struct {
	Name       string                          `json:"name"`
	SavedAt    time.Time                       `json:"savedAt"`
	ModFolder  string                          `json:"modFolder,omitempty"`
	PatchMode  string                          `json:"patchMode"`
	Sources    []SourceFile                    `json:"sources,omitempty"`
	Selections []patch.BiomeSelection          `json:"selections,omitempty"`
	Processing procconfig.Config               `json:"processing"`
	Overrides  map[string]procconfig.Overrides `json:"overrides,omitempty"`
}

// SnapshotSummary describes a stored project without its full payload.
type SnapshotSummary struct {
	Name    string
	SavedAt time.Time
	Path    string
}

// SnapshotStore persists named project snapshots as JSON files.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore constructs a store rooted at dir.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

// Save writes a snapshot atomically. The snapshot must carry a name; the
// saved timestamp is stamped here.
func (s *SnapshotStore) Save(snapshot *ProjectSnapshot) error {
	if snapshot == nil {
		return errors.New("snapshot is nil")
	}
	name := strings.TrimSpace(snapshot.Name)
	if name == "" {
		return errors.New("snapshot name is required")
	}
	snapshot.Name = name
	snapshot.SavedAt = time.Now().UTC()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create projects dir: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	path := s.pathFor(name)
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return &StoreWriteError{Path: path, Err: err}
	}
	return nil
}

// Load reads a snapshot by name.
func (s *SnapshotStore) Load(name string) (*ProjectSnapshot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("snapshot name is required")
	}
	data, err := os.ReadFile(s.pathFor(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Kind: "project", Name: name}
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snapshot ProjectSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse snapshot %q: %w", name, err)
	}
	return &snapshot, nil
}

// List returns summaries of every readable snapshot, newest first.
// Corrupt files are skipped so one bad snapshot cannot hide the rest.
func (s *SnapshotStore) List() ([]SnapshotSummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read projects dir: %w", err)
	}

	var summaries []SnapshotSummary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), snapshotExt) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var snapshot ProjectSnapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			continue
		}
		if strings.TrimSpace(snapshot.Name) == "" {
			continue
		}
		summaries = append(summaries, SnapshotSummary{
			Name:    snapshot.Name,
			SavedAt: snapshot.SavedAt,
			Path:    path,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].SavedAt.After(summaries[j].SavedAt)
	})
	return summaries, nil
}

// Delete removes a snapshot by name.
func (s *SnapshotStore) Delete(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("snapshot name is required")
	}
	err := os.Remove(s.pathFor(name))
	if errors.Is(err, fs.ErrNotExist) {
		return &NotFoundError{Kind: "project", Name: name}
	}
	return err
}

func (s *SnapshotStore) pathFor(name string) string {
	return filepath.Join(s.dir, fileutil.SanitizeName(name)+snapshotExt)
}
