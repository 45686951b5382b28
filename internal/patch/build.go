package patch

import (
	"fmt"
	"strings"

	"github.com/AHSpire/StarSound/internal/biome"
)

// Mod-relative directories the pipeline copies audio into. Replace-phase
// values point at a dedicated folder per strategy so a built mod makes the
// provenance of each file obvious on disk.
const (
	MusicDir         = "music"
	ReplacersDir     = "music_replacers"
	AddAndReplaceDir = "music_add_and_replace"
)

// Build compiles selections into one operation document per affected
// biome. The vanilla catalog supplies pool lengths for replace-index
// validation and the vanilla file names replace values are keyed to.
//
// Fail-closed: any invalid replace index aborts the whole build with an
// IndexOutOfRangeError and no partial result. A selection that contains
// nothing the mode can operate on yields ErrEmptySelection.
func Build(mode Mode, selections []BiomeSelection, catalog *biome.Catalog) ([]Document, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	var docs []Document
	for _, sel := range selections {
		ops, err := buildBiome(mode, sel, catalog)
		if err != nil {
			return nil, err
		}
		if len(ops) == 0 {
			continue
		}
		docs = append(docs, Document{Biome: sel.Biome, Ops: ops})
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: mode %s has nothing to patch", ErrEmptySelection, mode)
	}
	return docs, nil
}

func buildBiome(mode Mode, sel BiomeSelection, catalog *biome.Catalog) ([]Operation, error) {
	dayparts := []struct {
		part biome.Daypart
		set  TrackSet
	}{
		{biome.Day, sel.Day},
		{biome.Night, sel.Night},
	}

	var ops []Operation
	switch mode {
	case ModeAdd:
		for _, dp := range dayparts {
			for _, track := range dp.set.Add {
				ops = append(ops, Operation{Op: OpAdd, Path: appendPath(dp.part), Value: musicValue(track)})
			}
		}

	case ModeReplace:
		for _, dp := range dayparts {
			replaceOps, err := replaceOps(sel.Biome, dp.part, dp.set, catalog, ReplacersDir)
			if err != nil {
				return nil, err
			}
			ops = append(ops, replaceOps...)
		}

	case ModeRemove:
		hasTracks := len(sel.Day.Add)+len(sel.Night.Add) > 0
		if !hasTracks {
			return nil, nil
		}
		// Clear both vanilla pools in one operation each, then repopulate
		// with sequential indices. The clears must come first: applied
		// after an add they would erase it.
		ops = append(ops,
			Operation{Op: OpReplace, Path: poolPath(biome.Day), Value: []string{}},
			Operation{Op: OpReplace, Path: poolPath(biome.Night), Value: []string{}},
		)
		for _, dp := range dayparts {
			for i, track := range dp.set.Add {
				ops = append(ops, Operation{Op: OpAdd, Path: indexPath(dp.part, i), Value: musicValue(track)})
			}
		}

	case ModeBoth:
		// Replace phase strictly precedes the add phase for every pool.
		for _, dp := range dayparts {
			replaceOps, err := replaceOps(sel.Biome, dp.part, dp.set, catalog, AddAndReplaceDir)
			if err != nil {
				return nil, err
			}
			ops = append(ops, replaceOps...)
		}
		for _, dp := range dayparts {
			for _, track := range dp.set.Add {
				ops = append(ops, Operation{Op: OpAdd, Path: appendPath(dp.part), Value: musicValue(track)})
			}
		}
	}

	return ops, nil
}

func replaceOps(ref biome.Ref, part biome.Daypart, set TrackSet, catalog *biome.Catalog, dir string) ([]Operation, error) {
	if len(set.Replace) == 0 {
		return nil, nil
	}

	poolSize := 0
	if catalog != nil {
		poolSize = catalog.PoolSize(ref, part)
	}

	ops := make([]Operation, 0, len(set.Replace))
	for _, idx := range set.replaceIndices() {
		if idx < 0 || idx >= poolSize {
			return nil, &IndexOutOfRangeError{Biome: ref, Part: part, Index: idx, Length: poolSize}
		}
		name := TrackBase(set.Replace[idx])
		// Keep the vanilla filename when known so the replacement drops
		// into the slot the game already references.
		if catalog != nil {
			if vanilla, ok := catalog.TrackAt(ref, part, idx); ok {
				name = TrackBase(vanilla)
			}
		}
		ops = append(ops, Operation{
			Op:    OpReplace,
			Path:  indexPath(part, idx),
			Value: "/" + dir + "/" + name,
		})
	}
	return ops, nil
}

func poolPath(part biome.Daypart) string {
	return "/musicTrack/" + string(part) + "/tracks"
}

func appendPath(part biome.Daypart) string {
	return poolPath(part) + "/-"
}

func indexPath(part biome.Daypart, index int) string {
	return fmt.Sprintf("%s/%d", poolPath(part), index)
}

func musicValue(track string) string {
	return "/" + MusicDir + "/" + TrackBase(track)
}

// TrackBase strips directories from a track reference, tolerating both
// separator styles since selections may carry paths recorded on Windows.
func TrackBase(track string) string {
	track = strings.TrimSpace(track)
	if idx := strings.LastIndexAny(track, `/\`); idx >= 0 {
		track = track[idx+1:]
	}
	return track
}
