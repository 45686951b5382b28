package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/AHSpire/StarSound/internal/logging"
	"github.com/AHSpire/StarSound/internal/patch"
	"github.com/AHSpire/StarSound/internal/procconfig"
	"github.com/AHSpire/StarSound/internal/state"
)

// RunRequest describes one end-to-end build. Selections may be given up
// front, or computed from the plan via Select when track names are not
// known until segments exist.
type RunRequest struct {
	Project    string
	Inputs     []string
	Mode       patch.Mode
	ModFolder  string
	Selections []patch.BiomeSelection
	Select     func(*PlanResult) []patch.BiomeSelection
	Processing procconfig.Config
	Overrides  map[string]procconfig.Overrides
}

// RunResult reports the artifacts of a completed build.
type RunResult struct {
	Job       *state.Job
	Plan      *PlanResult
	Outcome   Outcome
	Assembled *AssembleResult
}

// Run executes plan, convert, and assemble as one ledgered job. Failed
// segments are pruned from the selections rather than failing the build;
// the build fails only when nothing selectable survives.
func (p *Pipeline) Run(ctx context.Context, ledger *state.Ledger, req RunRequest) (*RunResult, error) {
	job, err := p.openJob(ctx, ledger, req)
	if err != nil {
		return nil, err
	}
	result := &RunResult{Job: job}

	fail := func(stage string, cause error) (*RunResult, error) {
		p.setStatus(ctx, ledger, job, state.StatusFailed, cause.Error())
		return result, fmt.Errorf("%s: %w", stage, cause)
	}

	p.setStatus(ctx, ledger, job, state.StatusPlanning, "")
	plan, err := p.Plan(ctx, req.Inputs)
	if err != nil {
		return fail("plan", err)
	}
	result.Plan = plan
	if job != nil {
		job.SegmentsPlanned = len(plan.Segments)
	}

	p.setStatus(ctx, ledger, job, state.StatusConverting, "")
	outcome := p.Convert(ctx, plan, req.Processing, req.Overrides)
	result.Outcome = outcome
	if job != nil {
		job.SegmentsConverted = len(outcome.Converted)
	}
	if ctx.Err() != nil {
		return fail("convert", ctx.Err())
	}
	if len(outcome.Converted) == 0 {
		return fail("convert", fmt.Errorf("no segments survived conversion (%d failed)", len(outcome.Failed)))
	}

	selections := req.Selections
	if selections == nil && req.Select != nil {
		selections = req.Select(plan)
	}
	selections = PruneSelections(selections, outcome.Failed)

	p.setStatus(ctx, ledger, job, state.StatusPatching, "")
	assembled, err := p.Assemble(AssembleRequest{
		ModFolder:  req.ModFolder,
		Mode:       req.Mode,
		Selections: selections,
		Converted:  outcome.Converted,
	})
	if err != nil {
		return fail("assemble", err)
	}
	result.Assembled = assembled

	p.setStatus(ctx, ledger, job, state.StatusCompleted, "")
	p.logger.Info("build completed",
		logging.String(logging.FieldProject, req.Project),
		logging.Int("segments", len(outcome.Converted)),
		logging.Int("failed", len(outcome.Failed)),
		logging.Int("patches", len(assembled.PatchFiles)),
	)
	return result, nil
}

func (p *Pipeline) openJob(ctx context.Context, ledger *state.Ledger, req RunRequest) (*state.Job, error) {
	if ledger == nil {
		return nil, nil
	}
	source := strings.Join(req.Inputs, ";")
	job, err := ledger.NewJob(ctx, req.Project, source, string(req.Mode))
	if err != nil {
		return nil, fmt.Errorf("record job: %w", err)
	}
	return job, nil
}

func (p *Pipeline) setStatus(ctx context.Context, ledger *state.Ledger, job *state.Job, status state.Status, message string) {
	if ledger == nil || job == nil {
		return
	}
	job.Status = status
	job.ErrorMessage = message
	if err := ledger.Update(ctx, job); err != nil {
		p.logger.Warn("job update failed",
			logging.String(logging.FieldJob, job.ID),
			logging.Error(err),
		)
	}
}
