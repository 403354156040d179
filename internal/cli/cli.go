package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/norclim/caserig/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("caserig", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
caserig - declarative case configuration for CESM/CIME-style climate models.

Usage:
  caserig [options] [CASE_PATH]

Arguments:
  CASE_PATH
    Path to the .hcl case file describing the run.

Options:
`)
		flagSet.PrintDefaults()
	}

	caseFlag := flagSet.String("case", "", "Path to the case file.")
	cFlag := flagSet.String("c", "", "Path to the case file (shorthand).")
	machinesFlag := flagSet.String("machines", "machines.yaml", "Path to the YAML machine registry.")
	historyFlag := flagSet.String("history-db", "", "Path to the SQLite run ledger. Empty disables recording.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Print the execution plan without invoking the toolchain.")
	manifestFlag := flagSet.Bool("hist", false, "Build the postprocess manifest for the case's archive instead of configuring.")
	manifestOutFlag := flagSet.String("manifest-out", "", "Destination for the postprocess manifest. Empty writes to stdout.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	if *caseFlag != "" {
		path = *caseFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *manifestOutFlag != "" && !*manifestFlag {
		return nil, false, &ExitError{Code: 2, Message: "-manifest-out requires -hist"}
	}

	config, err := app.NewConfig(app.Config{
		CasePath:     path,
		MachinesPath: *machinesFlag,
		HistoryDB:    *historyFlag,
		DryRun:       *dryRunFlag,
		Manifest:     *manifestFlag,
		ManifestOut:  *manifestOutFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
