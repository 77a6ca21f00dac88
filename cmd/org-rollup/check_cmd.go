package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iota-uz/org-rollup/modules/org/domain/hierarchy"
	"github.com/iota-uz/org-rollup/modules/org/services"
	"github.com/iota-uz/org-rollup/pkg/metrics"
)

type checkOutput struct {
	Command     string                 `json:"command"`
	DurationMS  int64                  `json:"duration_ms"`
	Summary     services.Summary       `json:"summary"`
	Diagnostics []hierarchy.Diagnostic `json:"diagnostics"`
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	var (
		strictOrphans     bool
		failOnDiagnostics bool
		metricsTextfile   string
	)

	cmd := &cobra.Command{
		Use:   "check <org-hierarchy-file> <user-data-file>",
		Short: "Load both inputs and print a JSON summary with diagnostics; no report is written",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *root.cfg
			if cmd.Flags().Changed("strict-orphans") {
				cfg.StrictOrphans = strictOrphans
			}
			if cmd.Flags().Changed("metrics-textfile") {
				cfg.MetricsTextfile = metricsTextfile
			}

			start := time.Now()
			r, err := buildRollup(cmd.Context(), &cfg, args[0], args[1])
			if err != nil {
				return err
			}
			if err := metrics.WriteTextfile(cfg.MetricsTextfile, nil); err != nil {
				return withCode(exitIO, err)
			}

			diags := r.Diagnostics()
			if err := writeJSONLine(cmd.OutOrStdout(), checkOutput{
				Command:     "check",
				DurationMS:  time.Since(start).Milliseconds(),
				Summary:     r.Summary(),
				Diagnostics: diags,
			}); err != nil {
				return err
			}
			if failOnDiagnostics && len(diags) > 0 {
				return withCode(exitValidation, fmt.Errorf("%d diagnostic(s) reported", len(diags)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strictOrphans, "strict-orphans", false, "Fail when an org references a parent that was never loaded")
	cmd.Flags().BoolVar(&failOnDiagnostics, "fail-on-diagnostics", false, "Exit with the validation code when any diagnostic is reported")
	cmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write run metrics to this node_exporter textfile")
	return cmd
}
