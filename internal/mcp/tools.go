package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/tsdl-install/internal/install"
)

// TargetInput selects the artifact and prefix to inspect.
type TargetInput struct {
	Source string `json:"source,omitempty" jsonschema:"artifact path (default ./tsdl)"`
	Prefix string `json:"prefix,omitempty" jsonschema:"Unix install prefix (default $PREFIX or /usr/local)"`
}

// PlanOutput is the output for the plan tool.
type PlanOutput struct {
	Platform        string `json:"platform"                   jsonschema:"unix or windows"`
	Source          string `json:"source"                     jsonschema:"artifact that would be copied"`
	Dir             string `json:"dir"                        jsonschema:"destination directory"`
	Target          string `json:"target"                     jsonschema:"destination file"`
	Wrapper         string `json:"wrapper,omitempty"          jsonschema:"tsdl.cmd launcher (Windows only)"`
	Fallback        bool   `json:"fallback,omitempty"         jsonschema:"true when the sandbox ~/bin fallback is used"`
	NeedsEscalation bool   `json:"needs_escalation,omitempty" jsonschema:"true when installing requires sudo"`
	UpdatePath      bool   `json:"update_path,omitempty"      jsonschema:"true when the user PATH would be updated"`
}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	Plan           PlanOutput `json:"plan"                      jsonschema:"resolved destination"`
	SourcePresent  bool       `json:"source_present"            jsonschema:"source artifact exists"`
	Installed      bool       `json:"installed"                 jsonschema:"destination file exists"`
	Executable     bool       `json:"executable"                jsonschema:"destination file is executable"`
	UpToDate       bool       `json:"up_to_date"                jsonschema:"destination matches the source artifact"`
	WrapperPresent bool       `json:"wrapper_present,omitempty" jsonschema:"tsdl.cmd exists with current content"`
	OnPath         bool       `json:"on_path"                   jsonschema:"destination directory is on PATH"`
	PathError      string     `json:"path_error,omitempty"      jsonschema:"why PATH could not be checked"`
}

func handlePlan(factory Factory) mcp.ToolHandlerFor[TargetInput, PlanOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input TargetInput) (*mcp.CallToolResult, PlanOutput, error) {
		inst, err := factory(overrides(input))
		if err != nil {
			return nil, PlanOutput{}, fmt.Errorf("creating installer: %w", err)
		}
		plan, err := inst.Plan()
		if err != nil {
			return nil, PlanOutput{}, fmt.Errorf("resolving plan: %w", err)
		}
		return nil, toPlanOutput(plan), nil
	}
}

func handleStatus(factory Factory) mcp.ToolHandlerFor[TargetInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input TargetInput) (*mcp.CallToolResult, StatusOutput, error) {
		inst, err := factory(overrides(input))
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("creating installer: %w", err)
		}
		status, err := inst.Status()
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("checking status: %w", err)
		}
		return nil, StatusOutput{
			Plan:           toPlanOutput(status.Plan),
			SourcePresent:  status.SourcePresent,
			Installed:      status.Installed,
			Executable:     status.Executable,
			UpToDate:       status.UpToDate,
			WrapperPresent: status.WrapperPresent,
			OnPath:         status.OnPath,
			PathError:      status.PathError,
		}, nil
	}
}

// overrides maps tool input onto installer options.
func overrides(input TargetInput) install.Options {
	return install.Options{Source: input.Source, Prefix: input.Prefix}
}

// toPlanOutput converts an install plan into tool output.
func toPlanOutput(plan *install.Plan) PlanOutput {
	return PlanOutput{
		Platform:        plan.Platform.String(),
		Source:          plan.Source,
		Dir:             plan.Dir,
		Target:          plan.Target,
		Wrapper:         plan.Wrapper,
		Fallback:        plan.Fallback,
		NeedsEscalation: plan.NeedsEscalation,
		UpdatePath:      plan.UpdatePath,
	}
}
