// Package output provides structured output handling for the tsdl installer.
//
// Every command prints through a Printer, which renders either styled
// human-readable text or a single JSON object per result:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "tsdl successfully installed to /usr/local/bin/tsdl"})
//	printer.Warn("could not update PATH automatically: %v", err)
//	printer.Error(err)
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: installed (or nothing to do)
//	output.ExitUserError   // 1: missing artifact, bad flags
//	output.ExitSystemError // 2: mkdir/copy/chmod failed
//	output.ExitPermission  // 3: destination not writable, no escalation possible
//
// A failed elevated re-invocation passes its own exit code through
// NewChildExitError, so the outer process exits the way the inner one did.
package output
