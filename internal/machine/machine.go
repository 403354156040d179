// Package machine loads the YAML machine registry: per-cluster paths for
// the case-management toolchain, case roots, input data, and archives. The
// registry replaces the ad-hoc environment reads of the original workflow
// with one declared file per site.
package machine

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownMachine is returned by Registry.Lookup for names that are not in
// the registry file.
var ErrUnknownMachine = errors.New("machine not found in registry")

// Machine describes one target cluster.
type Machine struct {
	Name           string `yaml:"name"`
	ScriptsRoot    string `yaml:"scripts_root"`    // directory holding create_newcase
	CaseRoot       string `yaml:"case_root"`       // directory under which cases are created
	InputDataRoot  string `yaml:"input_data_root"` // shared model input data
	ArchiveRoot    string `yaml:"archive_root"`    // short-term archive with raw history files
	DefaultProject string `yaml:"default_project,omitempty"`
}

// Registry is the set of machines loaded from one YAML file.
type Registry struct {
	machines map[string]Machine
}

type registryFile struct {
	Machines []Machine `yaml:"machines"`
}

// Load reads and validates a machine registry file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine registry: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse machine registry %s: %w", path, err)
	}
	if len(file.Machines) == 0 {
		return nil, fmt.Errorf("machine registry %s defines no machines", path)
	}

	machines := make(map[string]Machine, len(file.Machines))
	for i, m := range file.Machines {
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("machine registry %s: entry %d has no name", path, i)
		}
		if m.ScriptsRoot == "" || m.CaseRoot == "" {
			return nil, fmt.Errorf("machine registry %s: machine %q must set scripts_root and case_root", path, m.Name)
		}
		if _, dup := machines[m.Name]; dup {
			return nil, fmt.Errorf("machine registry %s: duplicate machine %q", path, m.Name)
		}
		machines[m.Name] = m
	}

	return &Registry{machines: machines}, nil
}

// Lookup returns the machine with the given name.
func (r *Registry) Lookup(name string) (Machine, error) {
	m, ok := r.machines[name]
	if !ok {
		return Machine{}, fmt.Errorf("%w: %q", ErrUnknownMachine, name)
	}
	return m, nil
}

// Names returns the registered machine names in sorted order, so
// diagnostics that embed them are stable.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.machines))
	for name := range r.machines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
