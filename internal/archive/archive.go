// Package archive discovers the raw history files a completed case left in
// the short-term archive and builds the postprocessing manifest consumed by
// the downstream analysis stack. Reading the netCDF payloads is out of
// scope; only file discovery and variable selection happen here.
package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/norclim/caserig/internal/fsutil"
)

// ModelName maps a component to the model whose history files it produces.
func ModelName(component string) (string, error) {
	switch component {
	case "atm":
		return "cam", nil
	case "lnd":
		return "clm2", nil
	default:
		return "", fmt.Errorf("unsupported component %q: choose \"atm\" or \"lnd\"", component)
	}
}

// HistoryDir returns the directory holding a component's raw history files:
// <archiveRoot>/<case>/<component>/hist.
func HistoryDir(archiveRoot, caseName, component string) string {
	return filepath.Join(archiveRoot, caseName, component, "hist")
}

// DiscoverHistory finds a component's history files for one history field,
// sorted chronologically. File names follow the toolchain's pattern
// <case>.<model>.<hfield>.<date>.nc. A missing history directory yields an
// empty slice, not an error: the case may simply not have run yet.
func DiscoverHistory(archiveRoot, caseName, component, historyField string) ([]string, error) {
	model, err := ModelName(component)
	if err != nil {
		return nil, err
	}

	dir := HistoryDir(archiveRoot, caseName, component)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	prefix := fmt.Sprintf("%s.%s.%s.", caseName, model, historyField)
	return fsutil.FindFilesByPrefix(dir, prefix, ".nc")
}
