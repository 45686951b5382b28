package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AHSpire/StarSound/internal/biome"
	"github.com/AHSpire/StarSound/internal/config"
	"github.com/AHSpire/StarSound/internal/patch"
	"github.com/AHSpire/StarSound/internal/pipeline"
	"github.com/AHSpire/StarSound/internal/procconfig"
	"github.com/AHSpire/StarSound/internal/state"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var (
		projectName string
		modeFlag    string
		biomeFlags  []string
		outFlag     string
		daypartFlag string
		saveAs      string
	)

	cmd := &cobra.Command{
		Use:   "build [audio-file]...",
		Short: "Convert audio and assemble a biome music mod",
		Long: `Build converts the given audio files into game-ready Ogg Vorbis
segments and assembles a mod folder with the biome patch files that wire
them into the game.

With audio files, tracks are appended to every --biome (add and remove
modes). Replace selections need an exact index-to-track mapping, so the
replace and both modes replay a saved project instead:

    starsound build --project my-mod`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			catalog, err := ctx.catalog()
			if err != nil {
				return err
			}
			snapshots, err := ctx.snapshots()
			if err != nil {
				return err
			}

			var req pipeline.RunRequest
			if len(args) == 0 {
				if strings.TrimSpace(projectName) == "" {
					return errors.New("either audio files or --project is required")
				}
				req, err = requestFromSnapshot(snapshots, projectName, outFlag)
				if err != nil {
					return err
				}
			} else {
				req, err = requestFromFlags(cfg, catalog, args, projectName, modeFlag, biomeFlags, outFlag, daypartFlag)
				if err != nil {
					return err
				}
			}

			ledger, err := state.OpenLedger(cfg.Paths.WorkspaceDir)
			if err != nil {
				return err
			}
			defer ledger.Close()

			p := pipeline.New(cfg, catalog, logger)
			result, err := p.Run(cmd.Context(), ledger, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, failure := range result.Outcome.Failed {
				fmt.Fprintf(out, "skipped %s: %v\n", failure.SegmentID, failure.Err)
			}
			fmt.Fprintf(out, "Converted %d segment(s), wrote %d patch file(s) to %s\n",
				len(result.Outcome.Converted), len(result.Assembled.PatchFiles), req.ModFolder)

			if name := strings.TrimSpace(saveAs); name != "" {
				if err := saveSnapshot(snapshots, name, req, result); err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved project %q\n", name)
			}
			rememberBuild(ctx, req)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectName, "project", "p", "", "Saved project to replay or name for this build")
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "add", "Patch mode: add, replace, remove, or both")
	cmd.Flags().StringArrayVarP(&biomeFlags, "biome", "b", nil, "Target biome as category/name (repeatable)")
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Mod folder to assemble into")
	cmd.Flags().StringVar(&daypartFlag, "daypart", "both", "Dayparts to fill: day, night, or both")
	cmd.Flags().StringVar(&saveAs, "save-as", "", "Save the build as a named project")
	return cmd
}

func requestFromFlags(cfg *config.Config, catalog *biome.Catalog, inputs []string, project, modeFlag string, biomeFlags []string, outFlag, daypartFlag string) (pipeline.RunRequest, error) {
	mode, err := patch.ParseMode(modeFlag)
	if err != nil {
		return pipeline.RunRequest{}, err
	}
	if mode == patch.ModeReplace || mode == patch.ModeBoth {
		return pipeline.RunRequest{}, fmt.Errorf("mode %s needs per-slot mappings: save them in a project and run with --project", mode)
	}
	if len(biomeFlags) == 0 {
		return pipeline.RunRequest{}, errors.New("at least one --biome is required")
	}
	modFolder := strings.TrimSpace(outFlag)
	if modFolder == "" {
		return pipeline.RunRequest{}, errors.New("--out mod folder is required")
	}
	modFolder, err = config.ExpandPath(modFolder)
	if err != nil {
		return pipeline.RunRequest{}, err
	}

	refs := make([]biome.Ref, 0, len(biomeFlags))
	for _, raw := range biomeFlags {
		ref, err := biome.ParseRef(raw)
		if err != nil {
			return pipeline.RunRequest{}, err
		}
		if !catalog.Contains(ref) {
			return pipeline.RunRequest{}, fmt.Errorf("unknown biome %q", raw)
		}
		refs = append(refs, ref)
	}

	day, night, err := parseDaypart(daypartFlag)
	if err != nil {
		return pipeline.RunRequest{}, err
	}

	if strings.TrimSpace(project) == "" {
		project = filepath.Base(modFolder)
	}
	return pipeline.RunRequest{
		Project:   project,
		Inputs:    inputs,
		Mode:      mode,
		ModFolder: modFolder,
		Select: func(plan *pipeline.PlanResult) []patch.BiomeSelection {
			return pipeline.AutoSelections(plan, refs, day, night)
		},
		Processing: procconfig.Default(),
	}, nil
}

func requestFromSnapshot(snapshots *state.SnapshotStore, name, outFlag string) (pipeline.RunRequest, error) {
	snapshot, err := snapshots.Load(name)
	if err != nil {
		return pipeline.RunRequest{}, err
	}
	mode, err := patch.ParseMode(snapshot.PatchMode)
	if err != nil {
		return pipeline.RunRequest{}, fmt.Errorf("project %q: %w", name, err)
	}

	inputs := make([]string, 0, len(snapshot.Sources))
	for _, source := range snapshot.Sources {
		inputs = append(inputs, source.Path)
	}
	if len(inputs) == 0 {
		return pipeline.RunRequest{}, fmt.Errorf("project %q has no source files", name)
	}

	modFolder := snapshot.ModFolder
	if strings.TrimSpace(outFlag) != "" {
		modFolder = outFlag
	}
	if strings.TrimSpace(modFolder) == "" {
		return pipeline.RunRequest{}, fmt.Errorf("project %q has no mod folder: pass --out", name)
	}
	modFolder, err = config.ExpandPath(modFolder)
	if err != nil {
		return pipeline.RunRequest{}, err
	}

	return pipeline.RunRequest{
		Project:    snapshot.Name,
		Inputs:     inputs,
		Mode:       mode,
		ModFolder:  modFolder,
		Selections: snapshot.Selections,
		Processing: snapshot.Processing,
		Overrides:  snapshot.Overrides,
	}, nil
}

func saveSnapshot(snapshots *state.SnapshotStore, name string, req pipeline.RunRequest, result *pipeline.RunResult) error {
	snapshot := &state.ProjectSnapshot{
		Name:       name,
		ModFolder:  req.ModFolder,
		PatchMode:  string(req.Mode),
		Processing: req.Processing,
		Overrides:  req.Overrides,
	}
	for _, input := range req.Inputs {
		source := state.SourceFile{Path: input}
		for _, converted := range result.Outcome.Converted {
			if converted.Segment.Source == input {
				source.SegmentIDs = append(source.SegmentIDs, converted.Segment.ID)
			}
		}
		snapshot.Sources = append(snapshot.Sources, source)
	}
	selections := req.Selections
	if selections == nil && req.Select != nil {
		selections = req.Select(result.Plan)
	}
	snapshot.Selections = selections
	return snapshots.Save(snapshot)
}

func rememberBuild(ctx *commandContext, req pipeline.RunRequest) {
	prefs, err := ctx.prefs()
	if err != nil {
		return
	}
	_ = prefs.Set(state.PrefLastProject, req.Project)
	_ = prefs.Set(state.PrefLastPatchMode, string(req.Mode))
	_ = prefs.Set(state.PrefLastModFolder, req.ModFolder)
	if len(req.Inputs) > 0 {
		_ = prefs.Set(state.PrefLastAudioDir, filepath.Dir(req.Inputs[0]))
	}
}

func parseDaypart(value string) (day, night bool, err error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "day":
		return true, false, nil
	case "night":
		return false, true, nil
	case "", "both":
		return true, true, nil
	default:
		return false, false, fmt.Errorf("daypart %q is not day, night, or both", value)
	}
}
