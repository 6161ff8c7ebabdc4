//go:build !windows

package install

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// dirWritable probes dir, or its nearest existing ancestor when dir does not
// exist yet, with access(2) W_OK.
func dirWritable(dir string) bool {
	probe := existingAncestor(dir)
	if probe == "" {
		return false
	}
	return unix.Access(probe, unix.W_OK) == nil
}

// existingAncestor returns dir or the closest parent that exists.
func existingAncestor(dir string) string {
	current := filepath.Clean(dir)
	for {
		if _, err := os.Stat(current); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}
