package patch

import (
	"encoding/json"
	"strings"
	"testing"

	difflib "github.com/pmezard/go-difflib/difflib"

	"github.com/AHSpire/StarSound/internal/biome"
)

func diffStrings(t *testing.T, got, want string) string {
	t.Helper()
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		t.Fatal(err)
	}
	return text
}

func TestEncodeAddDocument(t *testing.T) {
	docs, err := Build(ModeAdd, []BiomeSelection{{
		Biome: forest,
		Day:   TrackSet{Add: []string{"one.ogg"}},
		Night: TrackSet{Add: []string{"two.ogg"}},
	}}, forestCatalog())
	if err != nil {
		t.Fatal(err)
	}

	raw, err := Encode(docs[0])
	if err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		`[`,
		`{"op":"add", "path": "/musicTrack/day/tracks/-", "value":"/music/one.ogg"},`,
		``,
		`{"op":"add", "path": "/musicTrack/night/tracks/-", "value":"/music/two.ogg"}`,
		`]`,
	}, "\n")
	if string(raw) != want {
		t.Fatalf("encoded document mismatch:\n%s", diffStrings(t, string(raw), want))
	}
}

func TestEncodeOutputIsStrictJSON(t *testing.T) {
	docs, err := Build(ModeRemove, []BiomeSelection{{
		Biome: forest,
		Day:   TrackSet{Add: []string{"a.ogg", "b.ogg"}},
		Night: TrackSet{Add: []string{"c.ogg"}},
	}}, forestCatalog())
	if err != nil {
		t.Fatal(err)
	}

	raw, err := Encode(docs[0])
	if err != nil {
		t.Fatal(err)
	}

	var ops []Operation
	if err := json.Unmarshal(raw, &ops); err != nil {
		t.Fatalf("encoded patch is not valid JSON: %v\n%s", err, raw)
	}
	if len(ops) != len(docs[0].Ops) {
		t.Fatalf("round-trip lost operations: %d vs %d", len(ops), len(docs[0].Ops))
	}
	if ops[0].Op != OpReplace || ops[0].Path != "/musicTrack/day/tracks" {
		t.Fatalf("first op after round-trip: %+v", ops[0])
	}
}

func TestEncodeNoBlankLineForSinglePart(t *testing.T) {
	docs, err := Build(ModeAdd, []BiomeSelection{{
		Biome: forest,
		Day:   TrackSet{Add: []string{"solo.ogg"}},
	}}, forestCatalog())
	if err != nil {
		t.Fatal(err)
	}

	raw, err := Encode(docs[0])
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "\n\n") {
		t.Fatalf("single-part document must have no blank separator:\n%s", raw)
	}
}

func TestFileNameAndRelPath(t *testing.T) {
	ref := biome.Ref{Category: "underground", Name: "underground0a"}
	if got := FileName(ref); got != "underground0a.biome.patch" {
		t.Fatalf("FileName: %q", got)
	}
	if got := RelPath(ref); got != "biomes/underground/underground0a.biome.patch" {
		t.Fatalf("RelPath: %q", got)
	}
}
