package config

import "context"

// Model is the unified representation of one parsed case file.
type Model struct {
	Run *RunConfig
}

// RunConfig describes a single case run: identity, schedule, namelist
// additions, and optional archive settings. All identity and schedule
// fields are required; Validate enforces that no field is silently
// defaulted.
type RunConfig struct {
	// Identity, passed verbatim to create_newcase.
	CaseName   string
	Compset    string
	Resolution string
	Machine    string
	Project    string

	Schedule Schedule

	// Namelists holds the user_nl_* additions in file declaration order.
	Namelists []NamelistBlock

	// Archive is nil when the case file has no archive block.
	Archive *ArchiveConfig
}

// Schedule carries the xmlchange run-length and restart settings. Values are
// kept as strings: the external toolchain owns their schemas and this tool
// deliberately does not re-validate them.
type Schedule struct {
	StopOption   string // STOP_OPTION, e.g. "nyears"
	StopN        int    // STOP_N
	RunStartDate string // RUN_STARTDATE, e.g. "2009-01-01"
	RestOption   string // REST_OPTION
	RestN        int    // REST_N
	Wallclock    string // JOB_WALLCLOCK_TIME, e.g. "47:00:00"
	Calendar     string // CALENDAR, e.g. "GREGORIAN"
}

// NamelistBlock is the set of literal lines to append to one generated
// user_nl_<component> file after case.setup.
type NamelistBlock struct {
	Component string // e.g. "cam", "clm"
	Lines     []string
}

// ArchiveConfig controls post-run history discovery and the postprocess
// manifest.
type ArchiveConfig struct {
	Alias        string // short case alias used in output file names
	Components   []string
	HistoryField string // e.g. "h0"
	SpinupMonths int
}

// Loader is the interface for a format-specific case file loader.
type Loader interface {
	// Load reads the case file at path and translates it into the model.
	Load(ctx context.Context, path string) (*Model, error)
}
