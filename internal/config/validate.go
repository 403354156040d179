package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that every required field of the run configuration is set.
// Missing fields are reported together in a single error so the user fixes
// the case file in one pass. Field values are not checked against the
// external toolchain's schemas.
func (r *RunConfig) Validate() error {
	if r == nil {
		return errors.New("case file contains no case block")
	}

	var missing []string
	requireString := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}

	// Project is resolved against the machine registry's default_project by
	// the caller, so it is not required here.
	requireString("name", r.CaseName)
	requireString("compset", r.Compset)
	requireString("resolution", r.Resolution)
	requireString("machine", r.Machine)

	requireString("schedule.stop_option", r.Schedule.StopOption)
	requireString("schedule.run_startdate", r.Schedule.RunStartDate)
	requireString("schedule.rest_option", r.Schedule.RestOption)
	requireString("schedule.wallclock", r.Schedule.Wallclock)
	requireString("schedule.calendar", r.Schedule.Calendar)
	if r.Schedule.StopN <= 0 {
		missing = append(missing, "schedule.stop_n")
	}
	if r.Schedule.RestN <= 0 {
		missing = append(missing, "schedule.rest_n")
	}

	for i, nl := range r.Namelists {
		if strings.TrimSpace(nl.Component) == "" {
			missing = append(missing, fmt.Sprintf("namelist[%d].component", i))
		}
	}

	if r.Archive != nil {
		if strings.TrimSpace(r.Archive.Alias) == "" {
			missing = append(missing, "archive.alias")
		}
		if len(r.Archive.Components) == 0 {
			missing = append(missing, "archive.components")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("case configuration is missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
