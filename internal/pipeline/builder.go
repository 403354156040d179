package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/norclim/caserig/internal/config"
	"github.com/norclim/caserig/internal/fsutil"
	"github.com/norclim/caserig/internal/machine"
	"github.com/norclim/caserig/internal/namelist"
	"github.com/norclim/caserig/internal/toolchain"
)

// Builder turns a validated run configuration into the ordered step plan.
type Builder struct {
	tool    *toolchain.Tool
	machine machine.Machine
}

// NewBuilder creates a plan builder for one machine's toolchain.
func NewBuilder(tool *toolchain.Tool, m machine.Machine) *Builder {
	return &Builder{tool: tool, machine: m}
}

// CasePath returns the directory the case will be created in.
func (b *Builder) CasePath(run *config.RunConfig) string {
	return filepath.Join(b.machine.CaseRoot, run.CaseName)
}

// Plan builds the strict step order of the configuration procedure:
// scrub, create_newcase, the xmlchange sequence, case.setup, then one
// namelist append per block. The xmlchange steps are mutually independent
// but all must follow case creation, so they keep declaration order.
func (b *Builder) Plan(run *config.RunConfig) []Step {
	casePath := b.CasePath(run)

	steps := []Step{
		{
			ID:          "scrub",
			Description: fmt.Sprintf("remove pre-existing case directory %s", casePath),
			Run: func(ctx context.Context) error {
				return fsutil.EnsureAbsent(casePath)
			},
		},
		{
			ID: "create_newcase",
			Description: fmt.Sprintf("create case %s (compset %s, res %s, machine %s)",
				run.CaseName, run.Compset, run.Resolution, run.Machine),
			Run: func(ctx context.Context) error {
				return b.tool.CreateNewcase(ctx, casePath, run.Compset, run.Resolution, run.Machine, run.Project)
			},
		},
	}

	for _, kv := range scheduleChanges(run.Schedule) {
		kv := kv
		steps = append(steps, Step{
			ID:          "xmlchange " + kv.key,
			Description: fmt.Sprintf("set %s=%s", kv.key, kv.value),
			Run: func(ctx context.Context) error {
				return b.tool.XMLChange(ctx, casePath, kv.key, kv.value)
			},
		})
	}

	steps = append(steps, Step{
		ID:          "case.setup",
		Description: "run case.setup to generate run scripts and namelists",
		Run: func(ctx context.Context) error {
			return b.tool.Setup(ctx, casePath)
		},
	})

	for _, nl := range run.Namelists {
		nl := nl
		steps = append(steps, Step{
			ID:          "namelist " + nl.Component,
			Description: fmt.Sprintf("append %d line(s) to %s", len(nl.Lines), namelist.FileName(nl.Component)),
			Run: func(ctx context.Context) error {
				return namelist.Append(casePath, nl.Component, nl.Lines)
			},
		})
	}

	return steps
}

type keyValue struct {
	key   string
	value string
}

// scheduleChanges maps the schedule onto the toolchain's XML variables in
// the order the original workflow applied them.
func scheduleChanges(s config.Schedule) []keyValue {
	return []keyValue{
		{"STOP_OPTION", s.StopOption},
		{"STOP_N", strconv.Itoa(s.StopN)},
		{"RUN_STARTDATE", s.RunStartDate},
		{"REST_OPTION", s.RestOption},
		{"REST_N", strconv.Itoa(s.RestN)},
		{"JOB_WALLCLOCK_TIME", s.Wallclock},
		{"CALENDAR", s.Calendar},
	}
}
