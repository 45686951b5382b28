package biome

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedCatalog(t *testing.T) {
	cat, err := Embedded()
	if err != nil {
		t.Fatal(err)
	}
	refs := cat.All()
	if len(refs) == 0 {
		t.Fatal("embedded catalog is empty")
	}
	if !cat.Contains(Ref{Category: "surface", Name: "forest"}) {
		t.Fatal("embedded catalog missing surface/forest")
	}
	if !cat.Contains(Ref{Category: "underground", Name: "underground0a"}) {
		t.Fatal("embedded catalog missing underground/underground0a")
	}
}

func TestCatalogOrderPreserved(t *testing.T) {
	cat := NewCatalog(map[string]Tracks{
		"surface/forest": {
			Day:   []string{"/music/b.ogg", "/music/a.ogg", "/music/c.ogg"},
			Night: []string{"/music/z.ogg"},
		},
	})

	got := cat.VanillaTracks(Ref{Category: "surface", Name: "forest"})
	want := []string{"/music/b.ogg", "/music/a.ogg", "/music/c.ogg"}
	if !reflect.DeepEqual(got.Day, want) {
		t.Fatalf("day pool reordered: %v", got.Day)
	}
}

func TestTrackAt(t *testing.T) {
	ref := Ref{Category: "surface", Name: "desert"}
	cat := NewCatalog(map[string]Tracks{
		ref.Key(): {Day: []string{"/music/one.ogg", "/music/two.ogg"}},
	})

	track, ok := cat.TrackAt(ref, Day, 1)
	if !ok || track != "/music/two.ogg" {
		t.Fatalf("got %q (ok=%v)", track, ok)
	}
	if _, ok := cat.TrackAt(ref, Day, 2); ok {
		t.Fatal("out-of-range index must miss")
	}
	if _, ok := cat.TrackAt(ref, Night, 0); ok {
		t.Fatal("empty night pool must miss")
	}
}

func TestParseRef(t *testing.T) {
	ref, err := ParseRef("surface/forest")
	if err != nil {
		t.Fatal(err)
	}
	if ref.Category != "surface" || ref.Name != "forest" {
		t.Fatalf("got %+v", ref)
	}
	for _, bad := range []string{"", "surface", "/forest", "surface/"} {
		if _, err := ParseRef(bad); err == nil {
			t.Fatalf("ParseRef(%q) must fail", bad)
		}
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	payload := `{"surface/custom": {"day": ["/music/x.ogg"], "night": []}}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cat.PoolSize(Ref{Category: "surface", Name: "custom"}, Day) != 1 {
		t.Fatal("loaded catalog missing entry")
	}
}

func TestReadBiomeFileStripsComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "forest.biome")
	payload := `{
  // vanilla forest definition
  "name" : "forest",
  "musicTrack" : {
    "day" : {
      "tracks" : [ "/music/epsilon-indi.ogg", "/music/b.ogg" ] // day pool
    },
    "night" : {
      "tracks" : [ "/music/m54.ogg" ]
    }
  }
}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	name, tracks, err := ReadBiomeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if name != "forest" {
		t.Fatalf("name: %q", name)
	}
	if len(tracks.Day) != 2 || tracks.Day[0] != "/music/epsilon-indi.ogg" {
		t.Fatalf("day tracks: %v", tracks.Day)
	}
	if len(tracks.Night) != 1 {
		t.Fatalf("night tracks: %v", tracks.Night)
	}
}

func TestStripCommentsPreservesStrings(t *testing.T) {
	src := `{"path": "/music//odd.ogg"} // trailing`
	got := StripComments(src)
	want := `{"path": "/music//odd.ogg"} `
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
