package patch

import (
	"path"
	"sort"

	"github.com/AHSpire/StarSound/internal/biome"
)

// Placement maps one selected track to the mod-relative path the emitted
// operations reference. Replace placements take the vanilla filename so
// the new audio lands in the slot the game already points at.
type Placement struct {
	Track   string
	RelPath string
}

// Placements returns the file copies a mod tree needs for the given mode
// and selections, deduplicated and sorted by destination. The same
// catalog must be passed to Build so values and copies stay aligned.
func Placements(mode Mode, selections []BiomeSelection, catalog *biome.Catalog) ([]Placement, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	seen := make(map[string]Placement)
	record := func(track, dir, destName string) {
		rel := path.Join(dir, destName)
		seen[rel] = Placement{Track: track, RelPath: rel}
	}

	for _, sel := range selections {
		dayparts := []struct {
			part biome.Daypart
			set  TrackSet
		}{
			{biome.Day, sel.Day},
			{biome.Night, sel.Night},
		}
		for _, dp := range dayparts {
			if mode == ModeAdd || mode == ModeRemove || mode == ModeBoth {
				for _, track := range dp.set.Add {
					record(track, MusicDir, TrackBase(track))
				}
			}
			if mode == ModeReplace || mode == ModeBoth {
				dir := ReplacersDir
				if mode == ModeBoth {
					dir = AddAndReplaceDir
				}
				for _, idx := range dp.set.replaceIndices() {
					track := dp.set.Replace[idx]
					name := TrackBase(track)
					if catalog != nil {
						if vanilla, ok := catalog.TrackAt(sel.Biome, dp.part, idx); ok {
							name = TrackBase(vanilla)
						}
					}
					record(track, dir, name)
				}
			}
		}
	}

	placements := make([]Placement, 0, len(seen))
	for _, placement := range seen {
		placements = append(placements, placement)
	}
	sort.Slice(placements, func(i, j int) bool {
		return placements[i].RelPath < placements[j].RelPath
	})
	return placements, nil
}
