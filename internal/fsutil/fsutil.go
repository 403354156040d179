// Package fsutil provides the file system primitives shared by the scrub
// step and the archive discovery code.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EnsureAbsent removes the directory tree (or file) at path if it exists.
// A path that never existed is not an error; the scrub step relies on this
// being safe to run against any prior state of the case directory.
func EnsureAbsent(path string) error {
	if path == "" || path == string(filepath.Separator) {
		panic("fsutil: refusing to remove empty or root path")
	}
	return os.RemoveAll(path)
}

// FindFilesByPrefix recursively searches root for files whose base name starts
// with prefix and ends with suffix, returning their full paths sorted
// lexically. History files embed the simulation date in the name, so lexical
// order is chronological order.
func FindFilesByPrefix(root, prefix, suffix string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
