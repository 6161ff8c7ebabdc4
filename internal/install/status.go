package install

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// Status is the observed installation state.
type Status struct {
	Plan           *Plan  `json:"plan"`
	SourcePresent  bool   `json:"source_present"`
	Installed      bool   `json:"installed"`
	Executable     bool   `json:"executable"`
	UpToDate       bool   `json:"up_to_date"`
	WrapperPresent bool   `json:"wrapper_present,omitempty"`
	OnPath         bool   `json:"on_path"`
	PathError      string `json:"path_error,omitempty"`
}

// Status inspects the destination resolved by Plan without changing it.
func (i *Installer) Status() (*Status, error) {
	plan, err := i.Plan()
	if err != nil {
		return nil, err
	}

	status := &Status{
		Plan:          plan,
		SourcePresent: fileExists(i.fs, plan.Source),
	}

	if info, err := i.fs.Stat(plan.Target); err == nil && !info.IsDir() {
		status.Installed = true
		status.Executable = plan.Platform == PlatformWindows || info.Mode().Perm()&0o555 == 0o555
	}

	if status.Installed && status.SourcePresent {
		same, err := sameContent(i.fs, plan.Source, plan.Target)
		if err != nil {
			return nil, err
		}
		status.UpToDate = same
	}

	if plan.Platform == PlatformWindows {
		status.WrapperPresent = i.wrapperCurrent(plan)
		i.checkStoredPath(status)
	} else {
		status.OnPath = onUnixPath(getenv(i.opts.Env, "PATH"), plan.Dir)
	}

	return status, nil
}

// wrapperCurrent reports whether tsdl.cmd exists with the expected content.
func (i *Installer) wrapperCurrent(plan *Plan) bool {
	data, err := afero.ReadFile(i.fs, plan.Wrapper)
	if err != nil {
		return false
	}
	return string(data) == WrapperContent(plan.Target)
}

// checkStoredPath fills OnPath from the user PATH store.
func (i *Installer) checkStoredPath(status *Status) {
	if i.opts.PathStore == nil {
		status.PathError = "user PATH is not available on this system"
		return
	}
	current, err := i.opts.PathStore.Read()
	if err != nil {
		status.PathError = err.Error()
		return
	}
	status.OnPath = containsPathEntry(current, status.Plan.Dir)
}

// sameContent compares two files by SHA-256.
func sameContent(fsys afero.Fs, a, b string) (bool, error) {
	sumA, err := fileSum(fsys, a)
	if err != nil {
		return false, err
	}
	sumB, err := fileSum(fsys, b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(sumA, sumB), nil
}

func fileSum(fsys afero.Fs, path string) ([]byte, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("hashing %s: %w", path, err)
	}
	return h.Sum(nil), nil
}
