package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/AHSpire/StarSound/internal/biome"
	"github.com/AHSpire/StarSound/internal/codec"
	"github.com/AHSpire/StarSound/internal/config"
	"github.com/AHSpire/StarSound/internal/fileutil"
	"github.com/AHSpire/StarSound/internal/logging"
	"github.com/AHSpire/StarSound/internal/media/ffprobe"
	"github.com/AHSpire/StarSound/internal/patch"
	"github.com/AHSpire/StarSound/internal/procconfig"
	"github.com/AHSpire/StarSound/internal/provenance"
	"github.com/AHSpire/StarSound/internal/segmentplan"
)

// Pipeline drives the plan, convert, and assemble stages for one build.
type Pipeline struct {
	cfg     *config.Config
	catalog *biome.Catalog
	runner  *codec.Runner
	logger  *slog.Logger
	probe   func(ctx context.Context, path string) (float64, error)
}

// New constructs a pipeline from loaded configuration.
func New(cfg *config.Config, catalog *biome.Catalog, logger *slog.Logger) *Pipeline {
	runner := codec.NewRunner(codec.Options{
		FFmpeg:           cfg.FFmpegBinary(),
		FFprobe:          cfg.FFprobeBinary(),
		Bitrate:          cfg.Audio.Bitrate,
		ShortOutputFloor: cfg.Segments.ShortOutputFloorSeconds,
		MaxInputBytes:    cfg.MaxInputBytes(),
	}, logger)
	ffprobeBin := cfg.FFprobeBinary()
	return &Pipeline{
		cfg:     cfg,
		catalog: catalog,
		runner:  runner,
		logger:  logging.NewComponentLogger(logger, "pipeline"),
		probe: func(ctx context.Context, path string) (float64, error) {
			result, err := ffprobe.Inspect(ctx, ffprobeBin, path)
			if err != nil {
				return 0, err
			}
			return result.DurationSeconds(), nil
		},
	}
}

// Runner exposes the codec runner for test injection.
func (p *Pipeline) Runner() *codec.Runner {
	return p.runner
}

// WithProbe allows injecting a custom duration probe for tests.
func (p *Pipeline) WithProbe(probe func(ctx context.Context, path string) (float64, error)) {
	if p != nil && probe != nil {
		p.probe = probe
	}
}

// PlanResult pairs the planned segments with the split lineage registry.
type PlanResult struct {
	Segments []Segment
	Registry *provenance.Registry
}

// SegmentGroup is one source's planned segments in cut order.
type SegmentGroup struct {
	Source   string
	Split    bool
	Segments []Segment
}

// Grouped enumerates the planned segments grouped by origin. Split parts
// are contiguous under their source and ordered by the registry's sequence
// index, not by slice position.
func (pr *PlanResult) Grouped() []SegmentGroup {
	if pr == nil || pr.Registry == nil {
		return nil
	}
	ids := make([]string, 0, len(pr.Segments))
	byID := make(map[string]Segment, len(pr.Segments))
	for _, seg := range pr.Segments {
		ids = append(ids, seg.ID)
		byID[seg.ID] = seg
	}

	var groups []SegmentGroup
	for _, group := range pr.Registry.Groups(ids) {
		sg := SegmentGroup{Source: group.Source, Split: group.Split}
		for _, id := range group.Members {
			if seg, ok := byID[id]; ok {
				sg.Segments = append(sg.Segments, seg)
			}
		}
		groups = append(groups, sg)
	}
	return groups
}

// Plan probes every input, splits those above the segment ceiling, and
// records the lineage of each resulting segment. Segment order follows
// input order, with split parts in ascending position.
func (p *Pipeline) Plan(ctx context.Context, inputs []string) (*PlanResult, error) {
	if len(inputs) == 0 {
		return nil, errors.New("no input files")
	}

	registry := provenance.NewRegistry()
	var segments []Segment
	maxSeconds := p.cfg.MaxSegmentSeconds()

	for _, input := range inputs {
		if err := p.runner.ValidateInput(input); err != nil {
			return nil, err
		}
		duration, err := p.probe(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("probe %s: %w", input, err)
		}
		if duration <= 0 {
			return nil, fmt.Errorf("input %s has no measurable duration", input)
		}

		source := sourceID(input)
		if duration <= maxSeconds {
			registry.Record(source, source)
			segments = append(segments, Segment{
				ID:     source,
				Source: input,
				Span:   segmentplan.Span{Start: 0, End: duration},
			})
			continue
		}

		spans, err := segmentplan.Plan(duration, maxSeconds, segmentplan.Options{
			MinTailSeconds: p.cfg.Segments.MinTailSeconds,
		})
		if err != nil {
			return nil, fmt.Errorf("plan %s: %w", input, err)
		}
		for i, span := range spans {
			id := partID(source, i+1)
			registry.Record(id, source)
			segments = append(segments, Segment{
				ID:     id,
				Source: input,
				Span:   span,
				Split:  true,
			})
		}
		p.logger.Info("source split into segments",
			logging.String("source", input),
			logging.Int("segments", len(spans)),
			logging.Float64("duration", duration),
		)
	}

	return &PlanResult{Segments: segments, Registry: registry}, nil
}

// Convert encodes every planned segment in parallel, bounded by the
// configured worker count. Output order matches plan order. A failed
// segment is recorded and excluded without aborting the batch.
func (p *Pipeline) Convert(ctx context.Context, plan *PlanResult, global procconfig.Config, overrides map[string]procconfig.Overrides) Outcome {
	resolver := procconfig.NewResolver(plan.Registry)

	type slot struct {
		converted ConvertedSegment
		err       error
	}
	slots := make([]slot, len(plan.Segments))

	workers := p.cfg.Audio.ConvertWorkers
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				seg := plan.Segments[idx]
				var segOverrides *procconfig.Overrides
				if o, ok := overrides[seg.ID]; ok {
					segOverrides = &o
				}
				resolved := resolver.Resolve(seg.ID, global, segOverrides)
				converted, err := p.convertOne(ctx, seg, resolved)
				slots[idx] = slot{converted: converted, err: err}
			}
		}()
	}

dispatch:
	for i := range plan.Segments {
		select {
		case <-ctx.Done():
			for j := i; j < len(plan.Segments); j++ {
				slots[j] = slot{err: ctx.Err()}
			}
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	var outcome Outcome
	for i, s := range slots {
		if s.err != nil {
			outcome.Failed = append(outcome.Failed, SegmentFailure{
				SegmentID: plan.Segments[i].ID,
				Err:       s.err,
			})
			p.logger.Warn("segment excluded from build",
				logging.String("segment", plan.Segments[i].ID),
				logging.Error(s.err),
			)
			continue
		}
		outcome.Converted = append(outcome.Converted, s.converted)
	}
	return outcome
}

func (p *Pipeline) convertOne(ctx context.Context, seg Segment, resolved procconfig.Config) (ConvertedSegment, error) {
	input := seg.Source
	if seg.Split {
		wav := filepath.Join(p.cfg.Paths.WorkspaceDir, "extracted", seg.ID+".wav")
		if err := p.runner.Extract(ctx, seg.Source, seg.Span, wav); err != nil {
			return ConvertedSegment{}, err
		}
		if !p.cfg.Audio.KeepIntermediates {
			defer os.Remove(wav)
		}
		input = wav
	}

	output := filepath.Join(p.cfg.Paths.WorkspaceDir, "converted", seg.OutputName())
	result, err := p.runner.Convert(ctx, codec.ConvertJob{
		Input:           input,
		Output:          output,
		Filter:          procconfig.FilterChain(resolved),
		ExpectedSeconds: seg.Span.Length(),
	})
	if err != nil {
		return ConvertedSegment{}, err
	}
	return ConvertedSegment{
		Segment:         seg,
		OutputPath:      result.Output,
		DurationSeconds: result.DurationSeconds,
	}, nil
}

// AssembleRequest describes the mod tree to produce from converted
// segments and finalized selections.
type AssembleRequest struct {
	ModFolder  string
	Mode       patch.Mode
	Selections []patch.BiomeSelection
	Converted  []ConvertedSegment
}

// AssembleResult reports what landed in the mod folder.
type AssembleResult struct {
	PatchFiles   []string
	TracksPlaced int
}

// Assemble copies converted audio into the mod tree and writes one patch
// file per selected biome. Every selected track must exist among the
// converted segments.
func (p *Pipeline) Assemble(req AssembleRequest) (*AssembleResult, error) {
	if req.ModFolder == "" {
		return nil, errors.New("mod folder is required")
	}

	byName := make(map[string]string, len(req.Converted))
	for _, converted := range req.Converted {
		byName[converted.Segment.OutputName()] = converted.OutputPath
	}

	placements, err := patch.Placements(req.Mode, req.Selections, p.catalog)
	if err != nil {
		return nil, err
	}

	for _, placement := range placements {
		source, ok := byName[patch.TrackBase(placement.Track)]
		if !ok {
			return nil, fmt.Errorf("selected track %q has no converted segment", placement.Track)
		}
		dest := filepath.Join(req.ModFolder, filepath.FromSlash(placement.RelPath))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return nil, fmt.Errorf("create mod directory: %w", err)
		}
		if err := fileutil.CopyFile(source, dest); err != nil {
			return nil, fmt.Errorf("copy %s: %w", placement.RelPath, err)
		}
	}

	docs, err := patch.Build(req.Mode, req.Selections, p.catalog)
	if err != nil {
		return nil, err
	}

	result := &AssembleResult{TracksPlaced: len(placements)}
	for _, doc := range docs {
		data, err := patch.Encode(doc)
		if err != nil {
			return nil, err
		}
		rel := patch.RelPath(doc.Biome)
		dest := filepath.Join(req.ModFolder, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return nil, fmt.Errorf("create patch directory: %w", err)
		}
		if err := fileutil.WriteFileAtomic(dest, data, 0o644); err != nil {
			return nil, fmt.Errorf("write patch %s: %w", rel, err)
		}
		result.PatchFiles = append(result.PatchFiles, rel)
		p.logger.Info("patch written",
			logging.String(logging.FieldBiome, doc.Biome.Key()),
			logging.String("file", rel),
			logging.Int("ops", len(doc.Ops)),
		)
	}
	return result, nil
}

// PruneSelections drops tracks whose segments failed conversion. Biomes
// left with no selection disappear entirely.
func PruneSelections(selections []patch.BiomeSelection, failed []SegmentFailure) []patch.BiomeSelection {
	if len(failed) == 0 {
		return selections
	}
	excluded := make(map[string]struct{}, len(failed))
	for _, failure := range failed {
		excluded[failure.SegmentID+".ogg"] = struct{}{}
	}

	pruneSet := func(set patch.TrackSet) patch.TrackSet {
		var out patch.TrackSet
		for _, track := range set.Add {
			if _, gone := excluded[patch.TrackBase(track)]; gone {
				continue
			}
			out.Add = append(out.Add, track)
		}
		for idx, track := range set.Replace {
			if _, gone := excluded[patch.TrackBase(track)]; gone {
				continue
			}
			if out.Replace == nil {
				out.Replace = make(map[int]string)
			}
			out.Replace[idx] = track
		}
		return out
	}

	var pruned []patch.BiomeSelection
	for _, sel := range selections {
		next := patch.BiomeSelection{
			Biome: sel.Biome,
			Day:   pruneSet(sel.Day),
			Night: pruneSet(sel.Night),
		}
		if next.IsZero() {
			continue
		}
		pruned = append(pruned, next)
	}
	return pruned
}
