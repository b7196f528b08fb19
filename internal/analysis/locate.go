package analysis

import (
	"os"
	"path/filepath"
)

// Candidate directories under the build output root, in scan order.
// These mirror cargo's layout: the primary save-analysis directory and
// the dependency subdirectory. A project may legitimately populate only
// one of the two.
var candidateDirs = []string{
	filepath.Join("target", "debug", "save-analysis"),
	filepath.Join("target", "debug", "deps", "save-analysis"),
}

// Locate scans the fixed candidate directories under root and returns
// every regular file found, primary directory first. Directories are
// listed non-recursively; an absent or unlistable candidate directory is
// skipped silently.
func Locate(root string) []string {
	var files []string
	for _, dir := range candidateDirs {
		entries, err := os.ReadDir(filepath.Join(root, dir))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				files = append(files, filepath.Join(root, dir, entry.Name()))
			}
		}
	}
	return files
}
