// Package files locates source workbooks on disk. The working files live in
// synced document libraries whose local mount point differs between
// machines, so each workbook is searched for across an ordered list of
// candidate directories.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ierrors "cspspay/internal/errors"
)

// LocateWorkbook probes the candidate directories in order and returns the
// full path of the first one containing fileName. This is an ordered probe,
// not a retry: each directory is tried exactly once.
func LocateWorkbook(dirs []string, fileName string) (string, error) {
	if len(dirs) == 0 {
		return "", ierrors.New(ierrors.CodePrecondition, "no candidate directories supplied")
	}

	var tried []string
	for _, dir := range dirs {
		path := filepath.Join(dir, fileName)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		tried = append(tried, path)
	}

	return "", ierrors.Newf(ierrors.CodeSourceUnavailable,
		"workbook %s not found; tried: %s", fileName, strings.Join(tried, ", "))
}

// ListWorkbooks returns the Excel files directly under dir, for diagnostics
// when a workbook cannot be located.
func ListWorkbooks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(strings.ToLower(name), ".xlsx") ||
			strings.HasSuffix(strings.ToLower(name), ".xls") {
			names = append(names, name)
		}
	}
	return names, nil
}
