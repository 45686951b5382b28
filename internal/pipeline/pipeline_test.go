package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AHSpire/StarSound/internal/biome"
	"github.com/AHSpire/StarSound/internal/codec"
	"github.com/AHSpire/StarSound/internal/config"
	"github.com/AHSpire/StarSound/internal/logging"
	"github.com/AHSpire/StarSound/internal/patch"
	"github.com/AHSpire/StarSound/internal/pipeline"
	"github.com/AHSpire/StarSound/internal/procconfig"
	"github.com/AHSpire/StarSound/internal/provenance"
	"github.com/AHSpire/StarSound/internal/state"
	"github.com/AHSpire/StarSound/internal/testsupport"
)

var garden = biome.Ref{Category: "surface", Name: "garden"}

func gardenCatalog() *biome.Catalog {
	return biome.NewCatalog(map[string]biome.Tracks{
		garden.Key(): {
			Day:   []string{"/music/epsilon-indi.ogg", "/music/hymn-to-the-stars.ogg"},
			Night: []string{"/music/m54.ogg"},
		},
	})
}

// newTestPipeline wires a pipeline whose ffmpeg invocations stub out the
// output file and whose probes report scripted durations.
func newTestPipeline(t *testing.T, cfg *config.Config, inputSeconds map[string]float64, outputSeconds func(path string) (float64, error)) *pipeline.Pipeline {
	t.Helper()

	p := pipeline.New(cfg, gardenCatalog(), logging.NewNop())
	p.WithProbe(func(_ context.Context, path string) (float64, error) {
		duration, ok := inputSeconds[filepath.Base(path)]
		if !ok {
			t.Fatalf("unexpected input probe for %s", path)
		}
		return duration, nil
	})
	p.Runner().WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		output := args[len(args)-1]
		return os.WriteFile(output, []byte("audio"), 0o644)
	})
	p.Runner().WithProbe(func(_ context.Context, path string) (float64, error) {
		return outputSeconds(path)
	})
	return p
}

func fullLength(path string) (float64, error) { return 100, nil }

func TestPlanSplitsLongSources(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	long := filepath.Join(base, "long mix.mp3")
	short := filepath.Join(base, "short.mp3")
	testsupport.WriteFile(t, long, 1024)
	testsupport.WriteFile(t, short, 1024)

	p := newTestPipeline(t, cfg, map[string]float64{
		"long mix.mp3": 2838,
		"short.mp3":    120,
	}, fullLength)

	plan, err := p.Plan(context.Background(), []string{long, short})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(plan.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %+v", plan.Segments)
	}
	if plan.Segments[0].ID != "long_mix_part1" || plan.Segments[1].ID != "long_mix_part2" {
		t.Fatalf("unexpected split ids: %+v", plan.Segments)
	}
	if !plan.Segments[0].Split || plan.Segments[2].Split {
		t.Fatalf("unexpected split flags: %+v", plan.Segments)
	}
	if plan.Segments[2].ID != "short" {
		t.Fatalf("unexpected whole-file id: %q", plan.Segments[2].ID)
	}
	if got := plan.Segments[1].Span; got.Start != 1500 || got.End != 2838 {
		t.Fatalf("unexpected second span: %+v", got)
	}
	if !plan.Registry.IsSplitSegment("long_mix_part1") {
		t.Fatal("registry missing split lineage")
	}
	if plan.Registry.IsSplitSegment("short") {
		t.Fatal("whole file marked as split")
	}
}

func TestPlanRejectsOversizeInput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Audio.MaxInputMegabytes = 1
	input := filepath.Join(testsupport.BaseDir(cfg), "big.wav")
	testsupport.WriteFile(t, input, 2*1024*1024)

	p := newTestPipeline(t, cfg, map[string]float64{"big.wav": 60}, fullLength)

	_, err := p.Plan(context.Background(), []string{input})
	var tooLarge *codec.InputTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected InputTooLargeError, got %v", err)
	}
}

func TestConvertPreservesOrderAndExcludesFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithConvertWorkers(3))
	base := testsupport.BaseDir(cfg)
	long := filepath.Join(base, "long.mp3")
	testsupport.WriteFile(t, long, 1024)

	p := newTestPipeline(t, cfg, map[string]float64{"long.mp3": 4500},
		func(path string) (float64, error) {
			if strings.Contains(path, "part2") {
				return 0.05, nil
			}
			return 100, nil
		})

	plan, err := p.Plan(context.Background(), []string{long})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(plan.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(plan.Segments))
	}

	outcome := p.Convert(context.Background(), plan, procconfig.Default(), nil)
	if len(outcome.Converted) != 2 {
		t.Fatalf("expected 2 converted, got %+v", outcome)
	}
	if outcome.Converted[0].Segment.ID != "long_part1" || outcome.Converted[1].Segment.ID != "long_part3" {
		t.Fatalf("order not preserved: %+v", outcome.Converted)
	}
	if len(outcome.Failed) != 1 || outcome.Failed[0].SegmentID != "long_part2" {
		t.Fatalf("unexpected failures: %+v", outcome.Failed)
	}
	var shortErr *codec.ShortOutputError
	if !errors.As(outcome.Failed[0].Err, &shortErr) {
		t.Fatalf("expected ShortOutputError, got %v", outcome.Failed[0].Err)
	}
	for _, converted := range outcome.Converted {
		if _, err := os.Stat(converted.OutputPath); err != nil {
			t.Fatalf("converted output missing: %v", err)
		}
	}
}

func TestAssembleBuildsModTree(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := newTestPipeline(t, cfg, nil, fullLength)

	convertedDir := filepath.Join(cfg.Paths.WorkspaceDir, "converted")
	songPath := filepath.Join(convertedDir, "song.ogg")
	testsupport.WriteFile(t, songPath, 64)

	modFolder := filepath.Join(testsupport.BaseDir(cfg), "mod")
	result, err := p.Assemble(pipeline.AssembleRequest{
		ModFolder: modFolder,
		Mode:      patch.ModeAdd,
		Selections: []patch.BiomeSelection{{
			Biome: garden,
			Day:   patch.TrackSet{Add: []string{"song.ogg"}},
		}},
		Converted: []pipeline.ConvertedSegment{{
			Segment:    pipeline.Segment{ID: "song"},
			OutputPath: songPath,
		}},
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if result.TracksPlaced != 1 || len(result.PatchFiles) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	if _, err := os.Stat(filepath.Join(modFolder, "music", "song.ogg")); err != nil {
		t.Fatalf("music copy missing: %v", err)
	}
	patchPath := filepath.Join(modFolder, "biomes", "surface", "garden.biome.patch")
	data, err := os.ReadFile(patchPath)
	if err != nil {
		t.Fatalf("patch file missing: %v", err)
	}
	if !strings.Contains(string(data), `"/music/song.ogg"`) {
		t.Fatalf("patch lacks track value: %s", data)
	}
}

func TestAssembleRejectsUnconvertedSelection(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := newTestPipeline(t, cfg, nil, fullLength)

	_, err := p.Assemble(pipeline.AssembleRequest{
		ModFolder: filepath.Join(testsupport.BaseDir(cfg), "mod"),
		Mode:      patch.ModeAdd,
		Selections: []patch.BiomeSelection{{
			Biome: garden,
			Day:   patch.TrackSet{Add: []string{"ghost.ogg"}},
		}},
	})
	if err == nil || !strings.Contains(err.Error(), "ghost.ogg") {
		t.Fatalf("expected unconverted track error, got %v", err)
	}
}

func TestPruneSelections(t *testing.T) {
	selections := []patch.BiomeSelection{
		{
			Biome: garden,
			Day:   patch.TrackSet{Add: []string{"keep.ogg", "gone.ogg"}},
			Night: patch.TrackSet{Replace: map[int]string{0: "gone.ogg"}},
		},
		{
			Biome: biome.Ref{Category: "surface", Name: "desert"},
			Day:   patch.TrackSet{Add: []string{"gone.ogg"}},
		},
	}
	failed := []pipeline.SegmentFailure{{SegmentID: "gone", Err: errors.New("too short")}}

	pruned := pipeline.PruneSelections(selections, failed)
	if len(pruned) != 1 {
		t.Fatalf("expected desert pruned away, got %+v", pruned)
	}
	if len(pruned[0].Day.Add) != 1 || pruned[0].Day.Add[0] != "keep.ogg" {
		t.Fatalf("unexpected surviving tracks: %+v", pruned[0].Day)
	}
	if len(pruned[0].Night.Replace) != 0 {
		t.Fatalf("failed replace entry survived: %+v", pruned[0].Night)
	}

	same := pipeline.PruneSelections(selections, nil)
	if len(same) != 2 {
		t.Fatal("no failures should leave selections untouched")
	}
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	input := filepath.Join(base, "mix.mp3")
	testsupport.WriteFile(t, input, 1024)

	p := newTestPipeline(t, cfg, map[string]float64{"mix.mp3": 2838}, fullLength)
	ledger := testsupport.MustOpenLedger(t, cfg)

	modFolder := filepath.Join(base, "mod")
	result, err := p.Run(context.Background(), ledger, pipeline.RunRequest{
		Project:   "garden-ambience",
		Inputs:    []string{input},
		Mode:      patch.ModeAdd,
		ModFolder: modFolder,
		Selections: []patch.BiomeSelection{{
			Biome: garden,
			Day:   patch.TrackSet{Add: []string{"mix_part1.ogg"}},
			Night: patch.TrackSet{Add: []string{"mix_part2.ogg"}},
		}},
		Processing: procconfig.Default(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Job == nil {
		t.Fatal("expected ledgered job")
	}
	job, err := ledger.GetByID(context.Background(), result.Job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if job.Status != state.StatusCompleted {
		t.Fatalf("unexpected job status: %s (%s)", job.Status, job.ErrorMessage)
	}
	if job.SegmentsPlanned != 2 || job.SegmentsConverted != 2 {
		t.Fatalf("unexpected segment counts: %+v", job)
	}
	if len(result.Assembled.PatchFiles) != 1 {
		t.Fatalf("unexpected patches: %+v", result.Assembled)
	}
	if _, err := os.Stat(filepath.Join(modFolder, "biomes", "surface", "garden.biome.patch")); err != nil {
		t.Fatalf("patch missing: %v", err)
	}
}

func TestGroupedRestoresCutOrder(t *testing.T) {
	registry := provenance.NewRegistry()
	registry.Record("mix_part1", "mix")
	registry.Record("mix_part2", "mix")
	registry.Record("solo", "solo")

	plan := &pipeline.PlanResult{
		Segments: []pipeline.Segment{
			{ID: "mix_part2", Split: true},
			{ID: "solo"},
			{ID: "mix_part1", Split: true},
		},
		Registry: registry,
	}

	groups := plan.Grouped()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %+v", groups)
	}
	if groups[0].Source != "mix" || !groups[0].Split {
		t.Fatalf("group 0: %+v", groups[0])
	}
	if len(groups[0].Segments) != 2 ||
		groups[0].Segments[0].ID != "mix_part1" ||
		groups[0].Segments[1].ID != "mix_part2" {
		t.Fatalf("split parts out of cut order: %+v", groups[0].Segments)
	}
	if groups[1].Source != "solo" || groups[1].Split {
		t.Fatalf("group 1: %+v", groups[1])
	}
}
