// Package namelist appends literal configuration lines to the user_nl_*
// files generated by case.setup. Existing content is never parsed or
// rewritten; the external model owns the namelist format.
package namelist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName returns the generated namelist file name for a model component,
// e.g. "user_nl_cam" for "cam".
func FileName(component string) string {
	return "user_nl_" + component
}

// Append writes the given lines, in order, to the end of the component's
// namelist file inside the case directory. The file is created if case.setup
// did not generate one. The write is scoped: the file is flushed and closed
// on every exit path, and a trailing newline is guaranteed after each line.
func Append(caseDir, component string, lines []string) (err error) {
	if len(lines) == 0 {
		return nil
	}

	path := filepath.Join(caseDir, FileName(component))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open namelist %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close namelist %s: %w", path, cerr)
		}
	}()

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to append to namelist %s: %w", path, err)
	}
	return nil
}
