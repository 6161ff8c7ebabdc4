// Package main provides the entry point for the tsdl-install CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/tsdl-install/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// persistentPassthrough lists the persistent flags forwarded to an elevated
// re-invocation when the user set them.
var persistentPassthrough = []string{"json", "verbose", "color", "no-path"}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command. Run without arguments it installs.
func newRootCmd() *cobra.Command {
	var flags installFlags
	cmd := &cobra.Command{
		Use:   "tsdl-install",
		Short: "Install the tsdl tool onto your PATH",
		Long: `tsdl-install copies the tsdl artifact from the current directory into a
directory on your PATH.

  Unix:    $PREFIX/bin (default /usr/local/bin). When that directory is not
           writable, Termux falls back to ~/bin; elsewhere the installer
           re-runs itself through sudo.
  Windows: %LOCALAPPDATA%\tsdl-tool with a tsdl.cmd launcher (runs tsdl via
           bash), and the directory is appended to your user PATH.

Examples:
  tsdl-install                      # install ./tsdl
  tsdl-install --dry-run            # show where it would go
  tsdl-install --source build/tsdl  # install a different artifact
  tsdl-install --prefix ~/.local    # install into ~/.local/bin`,
		Version:       buildVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.source, "source", "", "Artifact to install (default ./tsdl)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show the resolved destination without installing")

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().Bool("verbose", false, "Log installer decisions to stderr")
	cmd.PersistentFlags().String("color", output.ColorAuto, "Color output: auto, always, never")
	cmd.PersistentFlags().String("prefix", "", "Unix install prefix (overrides $PREFIX)")
	cmd.PersistentFlags().Bool("no-path", false, "Do not modify the Windows user PATH")
	cmd.PersistentFlags().Bool("escalated", false, "Internal: set on the elevated re-invocation")
	_ = cmd.PersistentFlags().MarkHidden("escalated")

	lipgloss.SetHasDarkBackground(true)

	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newUninstallCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// lookupFlag finds a flag on the command or, failing that, on the root's
// persistent flags.
func lookupFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return lookupFlag(cmd, "json") == "true"
}

// isVerbose reads the --verbose persistent flag.
func isVerbose(cmd *cobra.Command) bool {
	return lookupFlag(cmd, "verbose") == "true"
}

// useColor resolves --color against TTY detection on stdout.
func useColor(cmd *cobra.Command) bool {
	return output.ResolveColorMode(lookupFlag(cmd, "color"), output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter builds the printer every command writes through.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}
