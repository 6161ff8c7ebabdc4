package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/tsdl-install/internal/install"
	"github.com/gorewood/tsdl-install/internal/output"
)

// runInstall copies the artifact to its platform destination.
func runInstall(cmd *cobra.Command, flags installFlags) error {
	printer := newPrinter(cmd)

	inst, err := newInstaller(cmd, flags.source)
	if err != nil {
		printer.Error(err)
		return err
	}

	if flags.dryRun {
		return runInstallDryRun(printer, inst)
	}

	if plan, err := inst.Plan(); err == nil && inst.WillEscalate(plan) {
		printer.Stderr("Insufficient permissions for %s. Trying with %s...\n", plan.Dir, inst.EscalatorName())
	}

	result, err := inst.Install(cmd.Context())
	if err != nil {
		// An elevated child that ran has already reported its own failure.
		if result == nil || !result.Escalated || result.ChildExitCode < 0 {
			printer.Error(err)
		}
		return err
	}

	// The elevated child printed the outcome.
	if result.Escalated {
		return nil
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	printInstallResult(printer, result)
	return nil
}

func printInstallResult(printer *output.Printer, result *install.Result) {
	plan := result.Plan
	if plan.Platform == install.PlatformUnix {
		_ = printer.Success(map[string]any{"message": "tsdl successfully installed to " + plan.Target})
		if plan.Fallback {
			printer.Println("Make sure " + plan.Dir + " is on your PATH.")
		}
		return
	}

	_ = printer.Success(map[string]any{"message": "tsdl installed into " + plan.Dir})
	switch {
	case result.PathWarning != "":
		printer.Warn("Could not update PATH automatically: %s", result.PathWarning)
	case result.PathUpdated:
		printer.Println("Added " + plan.Dir + " to PATH. Restart your session for changes to take effect.")
	}
}

func runInstallDryRun(printer *output.Printer, inst *install.Installer) error {
	plan, err := inst.Plan()
	if err != nil {
		printer.Error(err)
		return err
	}
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"dry_run": true, "plan": plan})
	}

	printer.Section("Install plan")
	printer.KeyValue("Platform", plan.Platform.String())
	printer.KeyValue("Source", plan.Source)
	printer.KeyValue("Target", plan.Target)
	if plan.Wrapper != "" {
		printer.KeyValue("Wrapper", plan.Wrapper)
	}
	if plan.Fallback {
		printer.KeyValue("Fallback", "sandbox home bin")
	}
	if plan.NeedsEscalation {
		printer.KeyValue("Escalation", inst.EscalatorName())
	}
	if plan.Platform == install.PlatformWindows {
		printer.KeyValue("Update PATH", yesNo(plan.UpdatePath))
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
