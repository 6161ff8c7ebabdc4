package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/tsdl-install/internal/install"
	"github.com/gorewood/tsdl-install/internal/output"
)

func newStatusCmd() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show where tsdl installs and whether it is installed",
		Long: `Show the resolved destination and the state of an existing install.

Checks that the artifact is present, executable, identical to the source,
and that its directory is on PATH (the user PATH in the registry on Windows).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, source)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Artifact to compare against (default ./tsdl)")
	return cmd
}

func runStatus(cmd *cobra.Command, source string) error {
	printer := newPrinter(cmd)

	inst, err := newInstaller(cmd, source)
	if err != nil {
		printer.Error(err)
		return err
	}
	status, err := inst.Status()
	if err != nil {
		err = output.NewSystemErrorWithCause("failed to inspect installation", err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(status)
	}
	printStatus(printer, status)
	return nil
}

func printStatus(printer *output.Printer, status *install.Status) {
	plan := status.Plan

	printer.Section("tsdl")
	printer.KeyValue("Platform", plan.Platform.String())
	printer.KeyValue("Target", plan.Target)
	printer.Println()

	printer.Check("Source present", status.SourcePresent, plan.Source)
	printer.Check("Installed", status.Installed, "")
	if status.Installed {
		printer.Check("Executable", status.Executable, "")
		printer.Check("Up to date", status.UpToDate, "")
	}
	if plan.Platform == install.PlatformWindows {
		printer.Check("Launcher", status.WrapperPresent, plan.Wrapper)
	}
	printer.Check("On PATH", status.OnPath, status.PathError)
}
