package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"github.com/gorewood/tsdl-install/internal/output"
)

// Escalator re-runs this program with elevated privileges and waits for it.
type Escalator interface {
	// Run executes the program with args and returns the child's exit code.
	// err is non-nil only when the child could not be started.
	Run(ctx context.Context, args []string) (exitCode int, err error)

	// Name identifies the helper in messages ("sudo").
	Name() string
}

// ExecEscalator runs `<Helper> <Program> args...` with the terminal attached,
// so the helper can prompt for a password.
type ExecEscalator struct {
	// Helper is the escalation command (default "sudo").
	Helper string

	// Program is the binary to re-run (default os.Executable()).
	Program string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Name implements Escalator.
func (e *ExecEscalator) Name() string {
	if e.Helper == "" {
		return DefaultEscalator
	}
	return e.Helper
}

// Run implements Escalator. The child also gets EscalatedMarker in its
// environment for helpers that preserve it.
func (e *ExecEscalator) Run(ctx context.Context, args []string) (int, error) {
	program := e.Program
	if program == "" {
		exe, err := os.Executable()
		if err != nil {
			return -1, fmt.Errorf("locating installer executable: %w", err)
		}
		program = exe
	}

	cmd := exec.CommandContext(ctx, e.Name(), append([]string{program}, args...)...)
	cmd.Env = append(os.Environ(), EscalatedMarker+"=1")
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, fmt.Errorf("running %s: %w", e.Name(), err)
	}
	return 0, nil
}

// escalationArgs are the flags every elevated child needs: the resolved
// prefix (sudo resets the environment) and the escalation marker.
func (i *Installer) escalationArgs(plan *Plan) []string {
	args := []string{"--prefix", plan.prefix, "--escalated"}
	return append(args, i.opts.ChildArgs...)
}

// WillEscalate reports whether installing plan will re-run the program
// through the escalation helper.
func (i *Installer) WillEscalate(plan *Plan) bool {
	return plan.NeedsEscalation && !i.opts.Escalated && !i.opts.IsRoot() && i.opts.Escalator != nil
}

// EscalatorName names the helper, or "" when escalation is disabled.
func (i *Installer) EscalatorName() string {
	if i.opts.Escalator == nil {
		return ""
	}
	return i.opts.Escalator.Name()
}

// escalate runs the elevated child once and records its outcome. A child
// that fails surfaces as an ExitError carrying its exit code.
func (i *Installer) escalate(ctx context.Context, plan *Plan, result *Result, args []string) error {
	switch {
	case i.opts.Escalated:
		return output.NewPermissionError(plan.Dir+" is not writable even with elevated privileges", nil)
	case i.opts.IsRoot():
		return output.NewPermissionError(plan.Dir+" is not writable (already running as root)", nil)
	case i.opts.Escalator == nil:
		return output.NewPermissionError("insufficient permissions for "+plan.Dir, nil)
	}

	i.log.Debug("re-running with elevated privileges",
		zap.String("helper", i.opts.Escalator.Name()), zap.Strings("args", args))

	code, err := i.opts.Escalator.Run(ctx, args)
	result.Escalated = true
	result.ChildExitCode = code
	if err != nil {
		return output.NewSystemErrorWithCause("privilege escalation failed", err)
	}
	if code != 0 {
		return output.NewChildExitError(
			fmt.Sprintf("elevated installer exited with status %d", code), code)
	}
	return nil
}
