package app

import (
	"context"
	"fmt"

	"github.com/norclim/caserig/internal/archive"
	"github.com/norclim/caserig/internal/config"
	"github.com/norclim/caserig/internal/ctxlog"
	"github.com/norclim/caserig/internal/history"
	"github.com/norclim/caserig/internal/machine"
	"github.com/norclim/caserig/internal/pipeline"
	"github.com/norclim/caserig/internal/toolchain"
)

// Run executes one invocation: load and validate the case file, resolve the
// machine, then either print the plan, build the postprocess manifest, or
// run the configuration pipeline.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.", "case_file", a.config.CasePath)

	model, err := a.loader.Load(ctx, a.config.CasePath)
	if err != nil {
		return fmt.Errorf("failed to load case file: %w", err)
	}
	run := model.Run

	registry, err := machine.Load(a.config.MachinesPath)
	if err != nil {
		return err
	}
	mach, err := registry.Lookup(run.Machine)
	if err != nil {
		return fmt.Errorf("case %q targets an unknown machine (registered: %v): %w",
			run.CaseName, registry.Names(), err)
	}

	if run.Project == "" {
		run.Project = mach.DefaultProject
	}
	if run.Project == "" {
		return fmt.Errorf("case %q sets no project and machine %q has no default_project", run.CaseName, mach.Name)
	}

	if err := run.Validate(); err != nil {
		return err
	}
	a.logger.Debug("Case configuration validated.", "case", run.CaseName, "machine", mach.Name)

	if a.config.Manifest {
		return a.writeManifest(mach, run)
	}

	builder := pipeline.NewBuilder(toolchain.New(a.runner, mach.ScriptsRoot), mach)
	steps := builder.Plan(run)

	if a.config.DryRun {
		a.printPlan(builder.CasePath(run), steps)
		return nil
	}

	recorder, finish, err := a.openRecorder(ctx, run)
	if err != nil {
		return err
	}

	runErr := pipeline.NewExecutor(recorder).Execute(ctx, steps)
	finish(runErr)
	if runErr != nil {
		return fmt.Errorf("case configuration failed: %w", runErr)
	}
	return nil
}

// writeManifest builds the postprocess manifest against the machine's
// archive root and writes it to the configured destination (stdout when
// none is set).
func (a *App) writeManifest(mach machine.Machine, run *config.RunConfig) error {
	if mach.ArchiveRoot == "" {
		return fmt.Errorf("machine %q has no archive_root configured", mach.Name)
	}

	manifest, err := archive.BuildManifest(mach.ArchiveRoot, run)
	if err != nil {
		return err
	}

	if a.config.ManifestOut == "" {
		data, err := manifest.Marshal()
		if err != nil {
			return err
		}
		_, err = a.outW.Write(data)
		return err
	}

	a.logger.Info("Writing postprocess manifest.", "path", a.config.ManifestOut)
	return manifest.Write(a.config.ManifestOut)
}

// printPlan lists the steps a real invocation would execute.
func (a *App) printPlan(casePath string, steps []pipeline.Step) {
	fmt.Fprintf(a.outW, "Plan for case directory %s (%d steps):\n", casePath, len(steps))
	for i, step := range steps {
		fmt.Fprintf(a.outW, "  %2d. %-28s %s\n", i+1, step.ID, step.Description)
	}
}

// openRecorder wires the optional history ledger. The returned finish
// function finalizes the run entry and closes the store; it is a no-op when
// recording is disabled.
func (a *App) openRecorder(ctx context.Context, run *config.RunConfig) (pipeline.Recorder, func(error), error) {
	if a.config.HistoryDB == "" {
		return nil, func(error) {}, nil
	}

	store, err := history.Open(a.config.HistoryDB)
	if err != nil {
		return nil, nil, err
	}

	runID, err := store.BeginRun(ctx, run)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	a.logger.Info("Recording run in history ledger.", "run_id", runID, "db", a.config.HistoryDB)

	finish := func(runErr error) {
		if err := store.FinishRun(ctx, runID, runErr); err != nil {
			a.logger.Warn("Failed to finalize history entry.", "run_id", runID, "error", err)
		}
		_ = store.Close()
	}
	return store.Recorder(runID), finish, nil
}
