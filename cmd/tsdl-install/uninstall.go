package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/tsdl-install/internal/install"
	"github.com/gorewood/tsdl-install/internal/output"
)

func newUninstallCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the installed tsdl",
		Long: `Remove the installed tsdl artifact. On Windows this also removes the
tsdl.cmd launcher and withdraws the directory from the user PATH.

Removing from a directory that needs root re-runs through sudo, like install.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUninstall(cmd, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be removed")
	return cmd
}

func runUninstall(cmd *cobra.Command, dryRun bool) error {
	printer := newPrinter(cmd)

	inst, err := newInstaller(cmd, "")
	if err != nil {
		printer.Error(err)
		return err
	}

	if plan, err := inst.Plan(); err == nil && !dryRun && inst.WillEscalate(plan) {
		printer.Stderr("Insufficient permissions for %s. Trying with %s...\n", plan.Dir, inst.EscalatorName())
	}

	result, err := inst.Uninstall(cmd.Context(), dryRun)
	if err != nil {
		// An elevated child that ran has already reported its own failure.
		if result == nil || !result.Escalated || result.ChildExitCode < 0 {
			printer.Error(err)
		}
		return err
	}
	if result.Escalated {
		return nil
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	printUninstallResult(printer, result)
	return nil
}

func printUninstallResult(printer *output.Printer, result *install.UninstallResult) {
	plan := result.Plan
	verb := "Removed"
	if result.DryRun {
		verb = "Would remove"
	}

	if !result.RemovedTarget && !result.RemovedWrapper && !result.PathUpdated {
		printer.Println("tsdl is not installed at " + plan.Target)
		return
	}
	if result.RemovedTarget {
		printer.Println(verb + " " + plan.Target)
	}
	if result.RemovedWrapper {
		printer.Println(verb + " " + plan.Wrapper)
	}
	if result.PathUpdated {
		printer.Println(verb + " " + plan.Dir + " from PATH")
	}
	if result.PathWarning != "" {
		printer.Warn("Could not update PATH automatically: %s", result.PathWarning)
	}
}
