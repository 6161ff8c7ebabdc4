//go:build windows

package install

import (
	"os"
	"path/filepath"
)

// dirWritable probes by creating and removing a temporary file in dir or its
// nearest existing ancestor. Windows ACLs do not map onto access(2).
func dirWritable(dir string) bool {
	current := filepath.Clean(dir)
	for {
		if info, err := os.Stat(current); err == nil && info.IsDir() {
			f, err := os.CreateTemp(current, ".tsdl-probe-*")
			if err != nil {
				return false
			}
			name := f.Name()
			_ = f.Close()
			_ = os.Remove(name)
			return true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return false
		}
		current = parent
	}
}
