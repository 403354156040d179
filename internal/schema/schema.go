// Package schema holds the gohcl-tagged structs that mirror the case file
// format. These are HCL-specific; the loader in internal/hcl translates them
// into the format-agnostic model in internal/config.
package schema

import "github.com/hashicorp/hcl/v2"

// Root is the top-level structure of a case file.
type Root struct {
	Cases []*Case  `hcl:"case,block"`
	Body  hcl.Body `hcl:",remain"`
}

// Case represents a `case "<name>"` block: one simulation experiment.
type Case struct {
	Name       string `hcl:"name,label"`
	Compset    string `hcl:"compset"`
	Resolution string `hcl:"resolution"`
	Machine    string `hcl:"machine"`
	Project    string `hcl:"project,optional"`

	Schedule  *Schedule   `hcl:"schedule,block"`
	Namelists []*Namelist `hcl:"namelist,block"`
	Archive   *Archive    `hcl:"archive,block"`
}

// Schedule represents the `schedule` block: run length, restart cadence,
// batch wallclock, and calendar, all forwarded verbatim to xmlchange.
type Schedule struct {
	StopOption   string `hcl:"stop_option"`
	StopN        int    `hcl:"stop_n"`
	RunStartDate string `hcl:"run_startdate"`
	RestOption   string `hcl:"rest_option"`
	RestN        int    `hcl:"rest_n"`
	Wallclock    string `hcl:"wallclock"`
	Calendar     string `hcl:"calendar"`
}

// Namelist represents a `namelist "<component>"` block: literal lines to
// append to the generated user_nl_<component> file.
type Namelist struct {
	Component string   `hcl:"component,label"`
	Lines     []string `hcl:"lines"`
}

// Archive represents the optional `archive` block controlling post-run
// history discovery.
type Archive struct {
	Alias        string   `hcl:"alias"`
	Components   []string `hcl:"components"`
	HistoryField string   `hcl:"history_field,optional"`
	SpinupMonths int      `hcl:"spinup_months,optional"`
}
