// Package toolchain is the boundary to the external case-management
// commands: create_newcase, xmlchange, and case.setup. The toolchain's
// behavior and parameter schemas are opaque to this tool; only argv
// construction and exit-status handling live here.
package toolchain

import (
	"context"
	"fmt"
	"path/filepath"
)

// Runner executes one external command in a working directory and returns an
// error iff the command could not be started or exited non-zero. The
// production implementation is ExecRunner; tests substitute fakes.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// Tool builds the command invocations for one case against one machine's
// toolchain installation.
type Tool struct {
	runner      Runner
	scriptsRoot string
}

// New creates a Tool rooted at the machine's scripts directory.
func New(runner Runner, scriptsRoot string) *Tool {
	return &Tool{runner: runner, scriptsRoot: scriptsRoot}
}

// CreateNewcase invokes create_newcase for the given case. The pre-existing
// directory policy is handled by the scrub step before this runs; the
// --run-unsupported flag matches the original workflow, which targets
// machine/compset combinations outside the toolchain's supported matrix.
func (t *Tool) CreateNewcase(ctx context.Context, casePath, compset, resolution, machineName, project string) error {
	args := []string{
		"--case", casePath,
		"--compset", compset,
		"--res", resolution,
		"--machine", machineName,
		"--project", project,
		"--run-unsupported",
	}
	return t.runner.Run(ctx, t.scriptsRoot, filepath.Join(t.scriptsRoot, "create_newcase"), args...)
}

// XMLChange applies a single key=value configuration update inside the case
// directory. One invocation per key, as the toolchain requires.
func (t *Tool) XMLChange(ctx context.Context, casePath, key, value string) error {
	return t.runner.Run(ctx, casePath, "./xmlchange", fmt.Sprintf("%s=%s", key, value))
}

// Setup runs case.setup inside the case directory, generating the run
// scripts and the user_nl_* namelist files.
func (t *Tool) Setup(ctx context.Context, casePath string) error {
	return t.runner.Run(ctx, casePath, "./case.setup")
}
