package install

import (
	"strings"
)

// PathStore reads and writes a persisted, ';'-separated user PATH.
type PathStore interface {
	Read() (string, error)
	Write(value string) error
}

// AppendPathEntry appends dir to a ';'-separated PATH value unless dir is
// already a case-insensitive substring of it. Reports whether it changed.
func AppendPathEntry(current, dir string) (string, bool) {
	if containsPathEntry(current, dir) {
		return current, false
	}
	if current == "" {
		return dir, true
	}
	return current + ";" + dir, true
}

// RemovePathEntry drops every ';'-separated entry equal to dir, ignoring case
// and trailing separators. Reports whether it changed.
func RemovePathEntry(current, dir string) (string, bool) {
	if current == "" {
		return current, false
	}

	want := normalizeEntry(dir)
	entries := strings.Split(current, ";")
	kept := entries[:0]
	for _, entry := range entries {
		if normalizeEntry(entry) == want {
			continue
		}
		kept = append(kept, entry)
	}
	if len(kept) == len(entries) {
		return current, false
	}
	return strings.Join(kept, ";"), true
}

// containsPathEntry is the containment check used before appending.
func containsPathEntry(current, dir string) bool {
	return strings.Contains(strings.ToLower(current), strings.ToLower(dir))
}

// normalizeEntry lowercases and trims trailing slashes and backslashes.
func normalizeEntry(entry string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(entry), `\/`))
}

// onUnixPath reports whether dir is an entry of a ':'-separated PATH.
func onUnixPath(pathValue, dir string) bool {
	want := strings.TrimRight(dir, "/")
	for entry := range strings.SplitSeq(pathValue, ":") {
		if strings.TrimRight(entry, "/") == want {
			return true
		}
	}
	return false
}

// MemoryPathStore is a PathStore held in memory.
type MemoryPathStore struct {
	Value    string
	ReadErr  error
	WriteErr error
	Writes   int
}

// Read implements PathStore.
func (m *MemoryPathStore) Read() (string, error) {
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	return m.Value, nil
}

// Write implements PathStore.
func (m *MemoryPathStore) Write(value string) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Value = value
	m.Writes++
	return nil
}
