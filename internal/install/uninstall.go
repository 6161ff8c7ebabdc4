package install

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/gorewood/tsdl-install/internal/output"
)

// UninstallResult reports what Uninstall removed, or would remove.
type UninstallResult struct {
	Plan           *Plan  `json:"plan"`
	DryRun         bool   `json:"dry_run,omitempty"`
	RemovedTarget  bool   `json:"removed_target"`
	RemovedWrapper bool   `json:"removed_wrapper,omitempty"`
	PathUpdated    bool   `json:"path_updated,omitempty"`
	PathWarning    string `json:"path_warning,omitempty"`
	Escalated      bool   `json:"escalated,omitempty"`
	ChildExitCode  int    `json:"child_exit_code,omitempty"`
}

// Uninstall removes the installed artifact (and on Windows the wrapper and
// the PATH entry). Missing files are not an error. With dryRun nothing is
// changed and the result lists what exists.
func (i *Installer) Uninstall(ctx context.Context, dryRun bool) (*UninstallResult, error) {
	plan, err := i.Plan()
	if err != nil {
		return nil, err
	}
	result := &UninstallResult{Plan: plan, DryRun: dryRun}

	if dryRun {
		result.RemovedTarget = fileExists(i.fs, plan.Target)
		if plan.Wrapper != "" {
			result.RemovedWrapper = fileExists(i.fs, plan.Wrapper)
		}
		if plan.UpdatePath {
			current, err := i.opts.PathStore.Read()
			if err == nil {
				_, result.PathUpdated = RemovePathEntry(current, plan.Dir)
			}
		}
		return result, nil
	}

	if plan.NeedsEscalation && fileExists(i.fs, plan.Target) {
		inner := &Result{Plan: plan}
		args := append([]string{"uninstall"}, i.escalationArgs(plan)...)
		err := i.escalate(ctx, plan, inner, args)
		result.Escalated = inner.Escalated
		result.ChildExitCode = inner.ChildExitCode
		return result, err
	}

	if result.RemovedTarget, err = i.removeIfExists(plan.Target); err != nil {
		return nil, output.NewSystemErrorWithCause("uninstall failed", err)
	}
	if plan.Wrapper != "" {
		if result.RemovedWrapper, err = i.removeIfExists(plan.Wrapper); err != nil {
			return nil, output.NewSystemErrorWithCause("uninstall failed", err)
		}
	}

	if plan.UpdatePath {
		updated, err := i.withdrawFromPath(plan.Dir)
		if err != nil {
			result.PathWarning = err.Error()
		}
		result.PathUpdated = updated
	}

	return result, nil
}

// removeIfExists removes path and reports whether it was there.
func (i *Installer) removeIfExists(path string) (bool, error) {
	if _, err := i.fs.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err := i.fs.Remove(path); err != nil {
		return false, fmt.Errorf("removing %s: %w", path, err)
	}
	i.log.Debug("removed", zap.String("path", path))
	return true, nil
}

// withdrawFromPath removes dir from the stored user PATH.
func (i *Installer) withdrawFromPath(dir string) (bool, error) {
	current, err := i.opts.PathStore.Read()
	if err != nil {
		return false, fmt.Errorf("reading user PATH: %w", err)
	}
	next, changed := RemovePathEntry(current, dir)
	if !changed {
		return false, nil
	}
	if err := i.opts.PathStore.Write(next); err != nil {
		return false, fmt.Errorf("writing user PATH: %w", err)
	}
	return true, nil
}
