package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/norclim/caserig/internal/config"
)

// Manifest describes the postprocessing work for one completed case: which
// raw history files exist and which per-category output files to produce
// from them.
type Manifest struct {
	Case         string              `yaml:"case"`
	Alias        string              `yaml:"alias"`
	HistoryField string              `yaml:"history_field"`
	SpinupMonths int                 `yaml:"spinup_months"`
	Components   []ComponentManifest `yaml:"components"`
}

// ComponentManifest covers one model component of the case.
type ComponentManifest struct {
	Component    string       `yaml:"component"`
	Model        string       `yaml:"model"`
	HistoryFiles []string     `yaml:"history_files"`
	Outputs      []OutputFile `yaml:"outputs,omitempty"`
}

// OutputFile is one postprocessed file to produce.
type OutputFile struct {
	Name      string   `yaml:"name"`
	Category  string   `yaml:"category"`
	Variables []string `yaml:"variables"`
}

// BuildManifest discovers the case's history files and assembles the
// manifest according to its archive configuration. Components with no
// history files yet still appear, with empty file lists, so the manifest
// doubles as a completeness check.
func BuildManifest(archiveRoot string, run *config.RunConfig) (*Manifest, error) {
	if run.Archive == nil {
		return nil, fmt.Errorf("case %q has no archive block", run.CaseName)
	}
	arch := run.Archive

	m := &Manifest{
		Case:         run.CaseName,
		Alias:        arch.Alias,
		HistoryField: arch.HistoryField,
		SpinupMonths: arch.SpinupMonths,
	}

	bvoc := BVOCInteractive(run.CaseName)
	for _, comp := range arch.Components {
		model, err := ModelName(comp)
		if err != nil {
			return nil, err
		}

		files, err := DiscoverHistory(archiveRoot, run.CaseName, comp, arch.HistoryField)
		if err != nil {
			return nil, fmt.Errorf("history discovery failed for component %s: %w", comp, err)
		}

		cm := ComponentManifest{Component: comp, Model: model, HistoryFiles: files}

		// Monthly history means one file per month, so the spinup is
		// dropped by skipping files before naming the output span.
		span := yearSpan(trimSpinup(files, arch.SpinupMonths))
		if span != "" {
			cm.Outputs = outputsFor(comp, arch.Alias, span, bvoc)
		}

		m.Components = append(m.Components, cm)
	}

	return m, nil
}

// Marshal serializes the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize manifest: %w", err)
	}
	return data, nil
}

// Write serializes the manifest as YAML to path.
func (m *Manifest) Write(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return nil
}

// outputsFor names the postprocessed files of one component. TURBFLUXES is
// folded into the RADIATIVE output together with the derived Ghan fields,
// matching the analysis stack's file layout.
func outputsFor(component, alias, span string, bvoc bool) []OutputFile {
	always := AlwaysInclude(component)

	var outputs []OutputFile
	cats := Categories(component, bvoc)
	for _, cat := range cats {
		if cat.Name == "TURBFLUXES" {
			continue
		}

		vars := append(append([]string(nil), always...), cat.Variables...)
		if cat.Name == "RADIATIVE" {
			vars = append(vars, GhanVariables...)
			for _, c := range cats {
				if c.Name == "TURBFLUXES" {
					vars = append(vars, c.Variables...)
				}
			}
		}

		outputs = append(outputs, OutputFile{
			Name:      fmt.Sprintf("%s_%s_%s.nc", alias, cat.Name, span),
			Category:  cat.Name,
			Variables: vars,
		})
	}
	return outputs
}

func trimSpinup(files []string, spinupMonths int) []string {
	if spinupMonths <= 0 {
		return files
	}
	if spinupMonths >= len(files) {
		return nil
	}
	return files[spinupMonths:]
}

// yearSpan derives the "<firstyear><lastyear>" tag from the history file
// names, which embed the simulation date as <case>.<model>.<hfield>.YYYY-MM.nc.
func yearSpan(files []string) string {
	if len(files) == 0 {
		return ""
	}
	first := yearOf(files[0])
	last := yearOf(files[len(files)-1])
	if first == "" || last == "" {
		return ""
	}
	return first + last
}

func yearOf(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), ".nc")
	parts := strings.Split(base, ".")
	date := parts[len(parts)-1]
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}
