// Package install places the tsdl artifact where a shell can find it.
//
// The platform is chosen once, when the Installer is built, and every
// operation dispatches on it:
//
//   - Unix: $PREFIX/bin (default /usr/local/bin). An unwritable directory
//     falls back to ~/bin under Termux, and otherwise triggers a single
//     re-invocation through a privilege-escalation helper such as sudo.
//   - Windows: %LOCALAPPDATA%\tsdl-tool, a tsdl.cmd wrapper that runs the
//     artifact through bash, and a best-effort user PATH update in the
//     registry.
//
// Typical use:
//
//	inst, err := install.New(install.Options{Env: config.DefaultEnviron()})
//	plan, err := inst.Plan()       // resolve without touching disk
//	result, err := inst.Install(ctx)
//	status, err := inst.Status()
//	removed, err := inst.Uninstall(ctx, false)
//
// Copies are atomic: bytes land in a temporary file in the destination
// directory and are renamed over the target only after the mode is set, so a
// failed run never leaves a partial executable behind.
//
// Errors returned from this package are *output.ExitError values carrying
// the exit code the CLI should use.
package install
