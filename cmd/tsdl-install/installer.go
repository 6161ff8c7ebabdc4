package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gorewood/tsdl-install/internal/config"
	"github.com/gorewood/tsdl-install/internal/install"
	"github.com/gorewood/tsdl-install/internal/logging"
	"github.com/gorewood/tsdl-install/internal/output"
)

// installFlags are the root command's local flags.
type installFlags struct {
	source string
	dryRun bool
}

// installerOptions assembles installer options from flags, the process
// environment layered over .env files, and config.yaml.
//
// Precedence: flags > environment > .env files > config.yaml > defaults.
func installerOptions(cmd *cobra.Command, source string) (install.Options, error) {
	cfg, err := config.Load(config.FilePath())
	if err != nil {
		return install.Options{}, output.NewUserErrorWithCause("invalid config file", err)
	}

	if source == "" {
		source = cfg.Source
	}

	log := logging.New(cmd.ErrOrStderr(), isVerbose(cmd))
	log.Debug("configuration loaded",
		zap.String("config", config.FilePath()),
		zap.String("source", source),
		zap.String("prefix", cfg.Prefix))

	return install.Options{
		Source:         source,
		Prefix:         lookupFlag(cmd, "prefix"),
		ConfigPrefix:   cfg.Prefix,
		Env:            config.DefaultEnviron(),
		SkipPathUpdate: lookupFlag(cmd, "no-path") == "true" || !cfg.PathUpdateEnabled(),
		Escalator: &install.ExecEscalator{
			Helper: cfg.Escalator,
			Stdin:  cmd.InOrStdin(),
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		},
		Escalated: lookupFlag(cmd, "escalated") == "true",
		ChildArgs: passthroughArgs(cmd),
		Logger:    log,
	}, nil
}

// newInstaller builds an installer for a command invocation.
func newInstaller(cmd *cobra.Command, source string) (*install.Installer, error) {
	opts, err := installerOptions(cmd, source)
	if err != nil {
		return nil, err
	}
	return install.New(opts)
}

// passthroughArgs returns the persistent flags the user set explicitly, in
// --name=value form, for the elevated child.
func passthroughArgs(cmd *cobra.Command) []string {
	var args []string
	for _, name := range persistentPassthrough {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.Root().PersistentFlags().Lookup(name)
		}
		if flag != nil && flag.Changed {
			args = append(args, "--"+name+"="+flag.Value.String())
		}
	}
	return args
}
