package toolchain

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/norclim/caserig/internal/ctxlog"
)

// ExternalCommandError is the single failure kind for toolchain calls: the
// command could not be started or exited non-zero. No recovery is attempted;
// the pipeline halts at the first occurrence.
type ExternalCommandError struct {
	Command string
	Dir     string
	Err     error
}

func (e *ExternalCommandError) Error() string {
	return fmt.Sprintf("external command %q failed in %s: %v", e.Command, e.Dir, e.Err)
}

func (e *ExternalCommandError) Unwrap() error { return e.Err }

// ExecRunner runs external commands with os/exec, streaming their combined
// output line by line through the context logger. The commands' own
// diagnostics are the user-visible error text; nothing is synthesized on top.
type ExecRunner struct{}

// NewExecRunner creates the production command runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args in dir, blocking until it exits.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	logger := ctxlog.FromContext(ctx).With("command", name, "dir", dir)
	logger.Info("▶️ Running external command", "args", args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &ExternalCommandError{Command: name, Dir: dir, Err: err}
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return &ExternalCommandError{Command: name, Dir: dir, Err: err}
	}

	// Drain the pipe to EOF no matter what the tool prints: if draining
	// stops early the child blocks on write and Wait never returns.
	// ReadString tolerates lines of any length.
	reader := bufio.NewReader(stdout)
	for {
		line, readErr := reader.ReadString('\n')
		if len(line) > 0 {
			logger.Info(strings.TrimRight(line, "\n"))
		}
		if readErr != nil {
			if readErr != io.EOF {
				logger.Warn("Output stream ended abnormally.", "error", readErr)
			}
			break
		}
	}

	if err := cmd.Wait(); err != nil {
		logger.Error("Command failed.", "error", err)
		return &ExternalCommandError{Command: name, Dir: dir, Err: err}
	}

	logger.Info("✅ Command finished")
	return nil
}
