package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iota-uz/org-rollup/pkg/configuration"
	"github.com/iota-uz/org-rollup/pkg/logging"
)

type rootOptions struct {
	envFiles  []string
	logLevel  string
	logFormat string

	cfg *configuration.Configuration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "org-rollup",
		Short:         "Roll up user and file counts over an org hierarchy",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringSliceVar(&opts.envFiles, "env-file", configuration.DefaultEnvFiles, "Env files to load before reading ORG_ROLLUP_* variables (missing files are skipped)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: silent|error|warn|info|debug (overrides ORG_ROLLUP_LOG_LEVEL)")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format: text|json (overrides ORG_ROLLUP_LOG_FORMAT)")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withCode(exitUsage, err)
	})

	cmd.AddCommand(newReportCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newFindCmd())
	cmd.AddCommand(newDiffCmd())
	return cmd
}

func (o *rootOptions) init(cmd *cobra.Command) error {
	cfg, err := configuration.Load(o.envFiles)
	if err != nil {
		return withCode(exitUsage, err)
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return withCode(exitUsage, err)
	}
	o.cfg = cfg

	logger := cfg.Logger(cmd.ErrOrStderr())
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	return nil
}

func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return withCode(exitUsage, fn(cmd, args))
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitCode(err)
	}
	return exitOK
}

func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
