package install

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/gorewood/tsdl-install/internal/output"
)

// unixMode is rwxr-xr-x.
const unixMode = 0o755

// planUnix resolves $PREFIX/bin and decides between a direct install, the
// sandbox ~/bin fallback, and privilege escalation.
func (i *Installer) planUnix() (*Plan, error) {
	prefix := i.unixPrefix()
	dir := filepath.Join(prefix, "bin")
	plan := &Plan{
		Platform: PlatformUnix,
		Source:   i.sourcePath(),
		prefix:   prefix,
	}

	if !i.opts.Writable(dir) {
		if hasenv(i.opts.Env, SandboxMarker) {
			home, err := i.homeDir()
			if err != nil {
				return nil, output.NewSystemErrorWithCause("installation failed on Unix", err)
			}
			dir = filepath.Join(home, "bin")
			plan.Fallback = true
			i.log.Debug("destination not writable, using sandbox fallback",
				zap.String("prefix", prefix), zap.String("dir", dir))
		} else {
			plan.NeedsEscalation = true
			i.log.Debug("destination not writable, escalation required", zap.String("dir", dir))
		}
	}

	plan.Dir = dir
	plan.Target = filepath.Join(dir, ArtifactName)
	return plan, nil
}

// unixPrefix applies --prefix, then $PREFIX, then config, then /usr/local.
func (i *Installer) unixPrefix() string {
	if i.opts.Prefix != "" {
		return i.opts.Prefix
	}
	if prefix := getenv(i.opts.Env, "PREFIX"); prefix != "" {
		return prefix
	}
	if i.opts.ConfigPrefix != "" {
		return i.opts.ConfigPrefix
	}
	return DefaultUnixPrefix
}

// InstallUnix copies the artifact into the resolved bin directory with mode
// 0755, re-invoking itself elevated when the directory is not writable.
func (i *Installer) InstallUnix(ctx context.Context) (*Result, error) {
	plan, err := i.planUnix()
	if err != nil {
		return nil, err
	}
	result := &Result{Plan: plan}

	if plan.NeedsEscalation {
		args := append([]string{"--source", plan.Source}, i.escalationArgs(plan)...)
		return result, i.escalate(ctx, plan, result, args)
	}

	if err := i.fs.MkdirAll(plan.Dir, unixMode); err != nil {
		return nil, output.NewSystemErrorWithCause("installation failed on Unix",
			fmt.Errorf("creating %s: %w", plan.Dir, err))
	}

	if err := copyExecutable(i.fs, plan.Source, plan.Target, unixMode, true); err != nil {
		return nil, copyFailure("installation failed on Unix", err)
	}

	i.log.Debug("installed", zap.String("target", plan.Target))
	return result, nil
}
