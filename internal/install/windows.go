package install

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/gorewood/tsdl-install/internal/output"
)

// windowsMode is applied best-effort for bash environments such as Git Bash.
const windowsMode = 0o755

// WrapperContent returns the tsdl.cmd launcher that runs target through bash
// and forwards every argument.
func WrapperContent(target string) string {
	return "@echo off\r\nbash \"" + target + "\" %*\r\n"
}

// planWindows resolves %LOCALAPPDATA%\tsdl-tool, falling back to the
// working directory when LOCALAPPDATA is unset.
func (i *Installer) planWindows() *Plan {
	base := getenv(i.opts.Env, "LOCALAPPDATA")
	if base == "" {
		base = i.opts.WorkDir
	}
	dir := filepath.Join(base, WindowsDirName)
	return &Plan{
		Platform:   PlatformWindows,
		Source:     i.sourcePath(),
		Dir:        dir,
		Target:     filepath.Join(dir, ArtifactName),
		Wrapper:    filepath.Join(dir, WrapperName),
		UpdatePath: i.pathUpdateEnabled(),
	}
}

// InstallWindows copies the artifact, writes the tsdl.cmd wrapper and adds
// the directory to the user PATH. PATH failures become Result.PathWarning.
func (i *Installer) InstallWindows(_ context.Context) (*Result, error) {
	plan := i.planWindows()
	result := &Result{Plan: plan}

	if err := i.fs.MkdirAll(plan.Dir, windowsMode); err != nil {
		return nil, output.NewSystemErrorWithCause("installation failed on Windows",
			fmt.Errorf("creating %s: %w", plan.Dir, err))
	}

	if err := copyExecutable(i.fs, plan.Source, plan.Target, windowsMode, false); err != nil {
		return nil, copyFailure("installation failed on Windows", err)
	}

	if err := afero.WriteFile(i.fs, plan.Wrapper, []byte(WrapperContent(plan.Target)), 0o644); err != nil {
		return nil, output.NewSystemErrorWithCause("installation failed on Windows",
			fmt.Errorf("writing %s: %w", plan.Wrapper, err))
	}
	i.log.Debug("installed", zap.String("target", plan.Target), zap.String("wrapper", plan.Wrapper))

	if !plan.UpdatePath {
		if !i.opts.SkipPathUpdate {
			result.PathWarning = "updating the user PATH is not supported on this system"
		}
		return result, nil
	}

	updated, err := i.exposeOnPath(plan.Dir)
	if err != nil {
		result.PathWarning = err.Error()
		i.log.Debug("PATH update failed", zap.Error(err))
		return result, nil
	}
	result.PathUpdated = updated
	return result, nil
}

// exposeOnPath appends dir to the stored user PATH unless it is already
// present (case-insensitive).
func (i *Installer) exposeOnPath(dir string) (bool, error) {
	current, err := i.opts.PathStore.Read()
	if err != nil {
		return false, fmt.Errorf("reading user PATH: %w", err)
	}

	next, changed := AppendPathEntry(current, dir)
	if !changed {
		i.log.Debug("PATH already contains destination", zap.String("dir", dir))
		return false, nil
	}

	if err := i.opts.PathStore.Write(next); err != nil {
		return false, fmt.Errorf("writing user PATH: %w", err)
	}
	i.log.Debug("PATH updated", zap.String("dir", dir))
	return true, nil
}
