package hcl

import (
	"github.com/norclim/caserig/internal/config"
	"github.com/norclim/caserig/internal/schema"
)

// translateCase converts the HCL-specific case schema into the agnostic model.
func translateCase(c *schema.Case) *config.RunConfig {
	run := &config.RunConfig{
		CaseName:   c.Name,
		Compset:    c.Compset,
		Resolution: c.Resolution,
		Machine:    c.Machine,
		Project:    c.Project,
	}

	if c.Schedule != nil {
		run.Schedule = config.Schedule{
			StopOption:   c.Schedule.StopOption,
			StopN:        c.Schedule.StopN,
			RunStartDate: c.Schedule.RunStartDate,
			RestOption:   c.Schedule.RestOption,
			RestN:        c.Schedule.RestN,
			Wallclock:    c.Schedule.Wallclock,
			Calendar:     c.Schedule.Calendar,
		}
	}

	for _, nl := range c.Namelists {
		run.Namelists = append(run.Namelists, config.NamelistBlock{
			Component: nl.Component,
			Lines:     nl.Lines,
		})
	}

	if c.Archive != nil {
		hfield := c.Archive.HistoryField
		if hfield == "" {
			hfield = "h0" // monthly history files, the original workflow's default
		}
		run.Archive = &config.ArchiveConfig{
			Alias:        c.Archive.Alias,
			Components:   c.Archive.Components,
			HistoryField: hfield,
			SpinupMonths: c.Archive.SpinupMonths,
		}
	}

	return run
}
