package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/norclim/caserig/internal/config"
	"github.com/norclim/caserig/internal/ctxlog"
	"github.com/norclim/caserig/internal/schema"
)

// Loader is the HCL implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a case file loader backed by the process environment.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// NewLoaderWithEnviron creates a loader with an explicit environment source.
// Tests use this to pin the env object seen by case file expressions.
func NewLoaderWithEnviron(environ func() []string) *Loader {
	return &Loader{environ: environ}
}

// Load parses the case file at path and translates it into the model.
// Case file attributes may reference env.<NAME>; unset variables surface as
// ordinary HCL evaluation errors at the referencing attribute.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse case file %s: %w", path, diags)
	}

	var root schema.Root
	diags = gohcl.DecodeBody(hclFile.Body, l.evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode case file %s: %w", path, diags)
	}

	if len(root.Cases) == 0 {
		return nil, fmt.Errorf("case file %s defines no case block", path)
	}
	if len(root.Cases) > 1 {
		return nil, fmt.Errorf("case file %s defines %d case blocks, expected exactly one", path, len(root.Cases))
	}

	model := &config.Model{Run: translateCase(root.Cases[0])}
	logger.Debug("Case file loaded.", "case", model.Run.CaseName, "namelists", len(model.Run.Namelists))
	return model, nil
}

// evalContext builds the root evaluation context for case files. The process
// environment is exposed as a single `env` object value.
func (l *Loader) evalContext() *hcl.EvalContext {
	envMap := make(map[string]cty.Value)
	for _, e := range l.environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 && pair[0] != "" {
			envMap[pair[0]] = cty.StringVal(pair[1])
		}
	}

	env := cty.EmptyObjectVal
	if len(envMap) > 0 {
		env = cty.ObjectVal(envMap)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}
