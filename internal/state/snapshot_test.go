package state_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AHSpire/StarSound/internal/biome"
	"github.com/AHSpire/StarSound/internal/patch"
	"github.com/AHSpire/StarSound/internal/procconfig"
	"github.com/AHSpire/StarSound/internal/state"
)

func TestSnapshotRoundTrip(t *testing.T) {
	store := state.NewSnapshotStore(t.TempDir())

	overrides := procconfig.Overrides{}
	mono := true
	overrides.Mono = &mono

	original := &state.ProjectSnapshot{
		Name:      "Garden Ambience",
		ModFolder: "/mods/garden_ambience",
		PatchMode: "both",
		Sources: []state.SourceFile{
			{Path: "/music/long_mix.mp3", SegmentIDs: []string{"long_mix_part1", "long_mix_part2"}},
		},
		Selections: []patch.BiomeSelection{
			{
				Biome: biome.Ref{Category: "surface", Name: "garden"},
				Day:   patch.TrackSet{Add: []string{"long_mix_part1.ogg"}},
				Night: patch.TrackSet{Replace: map[int]string{0: "long_mix_part2.ogg"}},
			},
		},
		Processing: procconfig.Default(),
		Overrides:  map[string]procconfig.Overrides{"long_mix_part1": overrides},
	}

	if err := store.Save(original); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if original.SavedAt.IsZero() {
		t.Fatal("expected SavedAt to be stamped")
	}

	loaded, err := store.Load("Garden Ambience")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "Garden Ambience" || loaded.PatchMode != "both" {
		t.Fatalf("unexpected snapshot: %+v", loaded)
	}
	if len(loaded.Sources) != 1 || len(loaded.Sources[0].SegmentIDs) != 2 {
		t.Fatalf("sources lost in round trip: %+v", loaded.Sources)
	}
	if len(loaded.Selections) != 1 {
		t.Fatalf("selections lost in round trip: %+v", loaded.Selections)
	}
	if loaded.Selections[0].Night.Replace[0] != "long_mix_part2.ogg" {
		t.Fatalf("replace map lost: %+v", loaded.Selections[0].Night)
	}
	got, ok := loaded.Overrides["long_mix_part1"]
	if !ok || got.Mono == nil || !*got.Mono {
		t.Fatalf("overrides lost: %+v", loaded.Overrides)
	}
}

func TestSnapshotSaveRequiresName(t *testing.T) {
	store := state.NewSnapshotStore(t.TempDir())
	if err := store.Save(&state.ProjectSnapshot{Name: "   "}); err == nil {
		t.Fatal("expected error for unnamed snapshot")
	}
}

func TestSnapshotLoadMissing(t *testing.T) {
	store := state.NewSnapshotStore(t.TempDir())
	_, err := store.Load("ghost")
	var notFound *state.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestSnapshotListSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	store := state.NewSnapshotStore(dir)

	for _, name := range []string{"alpha", "beta"} {
		if err := store.Save(&state.ProjectSnapshot{Name: name, PatchMode: "add"}); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}
	corrupt := filepath.Join(dir, "broken.project.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	summaries, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d: %+v", len(summaries), summaries)
	}
	// Newest first.
	if summaries[0].SavedAt.Before(summaries[1].SavedAt) {
		t.Fatalf("summaries not sorted newest first: %+v", summaries)
	}
}

func TestSnapshotDelete(t *testing.T) {
	store := state.NewSnapshotStore(t.TempDir())
	if err := store.Save(&state.ProjectSnapshot{Name: "alpha", PatchMode: "add"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete("alpha"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var notFound *state.NotFoundError
	if err := store.Delete("alpha"); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError on second delete, got %v", err)
	}
}
