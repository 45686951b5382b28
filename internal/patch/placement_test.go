package patch

import "testing"

func TestPlacementsAddMode(t *testing.T) {
	placements, err := Placements(ModeAdd, []BiomeSelection{{
		Biome: forest,
		Day:   TrackSet{Add: []string{"/home/u/songs/one.ogg", "two.ogg"}},
		Night: TrackSet{Add: []string{"two.ogg"}},
	}}, forestCatalog())
	if err != nil {
		t.Fatal(err)
	}
	if len(placements) != 2 {
		t.Fatalf("expected deduplicated placements, got %+v", placements)
	}
	if placements[0].RelPath != "music/one.ogg" || placements[0].Track != "/home/u/songs/one.ogg" {
		t.Fatalf("unexpected placement: %+v", placements[0])
	}
	if placements[1].RelPath != "music/two.ogg" {
		t.Fatalf("unexpected placement: %+v", placements[1])
	}
}

func TestPlacementsReplaceTakesVanillaName(t *testing.T) {
	placements, err := Placements(ModeReplace, []BiomeSelection{{
		Biome: forest,
		Day:   TrackSet{Replace: map[int]string{1: "/home/u/replacement.ogg"}},
	}}, forestCatalog())
	if err != nil {
		t.Fatal(err)
	}
	if len(placements) != 1 {
		t.Fatalf("expected 1 placement, got %+v", placements)
	}
	if placements[0].RelPath != "music_replacers/hymn-to-the-stars.ogg" {
		t.Fatalf("expected vanilla slot name, got %q", placements[0].RelPath)
	}
	if placements[0].Track != "/home/u/replacement.ogg" {
		t.Fatalf("unexpected source track: %q", placements[0].Track)
	}
}

func TestPlacementsBothModeSplitsDirectories(t *testing.T) {
	placements, err := Placements(ModeBoth, []BiomeSelection{{
		Biome: forest,
		Day: TrackSet{
			Add:     []string{"extra.ogg"},
			Replace: map[int]string{0: "swap.ogg"},
		},
	}}, forestCatalog())
	if err != nil {
		t.Fatal(err)
	}
	if len(placements) != 2 {
		t.Fatalf("expected 2 placements, got %+v", placements)
	}
	if placements[0].RelPath != "music/extra.ogg" {
		t.Fatalf("unexpected add placement: %+v", placements[0])
	}
	if placements[1].RelPath != "music_add_and_replace/epsilon-indi.ogg" {
		t.Fatalf("unexpected replace placement: %+v", placements[1])
	}
}

func TestPlacementsRejectsUnknownMode(t *testing.T) {
	if _, err := Placements(Mode("shuffle"), nil, nil); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
