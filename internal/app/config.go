package app

import "errors"

// Config holds everything an App instance needs for one invocation.
type Config struct {
	CasePath     string // the .hcl case file
	MachinesPath string // the YAML machine registry
	HistoryDB    string // SQLite run ledger; empty disables recording

	DryRun      bool   // print the plan without executing
	Manifest    bool   // build the postprocess manifest instead of configuring
	ManifestOut string // manifest destination; empty writes to stdout

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config. The case file path is the only field with no
// usable zero value.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.CasePath == "" {
		return nil, errors.New("CasePath is a required configuration field and cannot be empty")
	}
	if cfg.MachinesPath == "" {
		return nil, errors.New("MachinesPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
