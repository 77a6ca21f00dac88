package main

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iota-uz/org-rollup/modules/org/presentation/mappers"
	"github.com/iota-uz/org-rollup/modules/org/presentation/writers"
	"github.com/iota-uz/org-rollup/modules/org/services"
	"github.com/iota-uz/org-rollup/pkg/configuration"
	"github.com/iota-uz/org-rollup/pkg/logging"
	"github.com/iota-uz/org-rollup/pkg/metrics"
)

type reportOptions struct {
	format          string
	outputName      string
	metricsTextfile string
	strictOrphans   bool
}

type reportOutput struct {
	Command     string `json:"command"`
	DurationMS  int64  `json:"duration_ms"`
	RunID       string `json:"run_id"`
	Format      string `json:"format"`
	Output      string `json:"output"`
	Nodes       int    `json:"nodes"`
	Diagnostics int    `json:"diagnostics"`
}

func newReportCmd(root *rootOptions) *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report <org-hierarchy-file> <user-data-file> <output-folder>",
		Short: "Write per-org user and file totals into the output folder",
		Args:  usageArgs(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *root.cfg
			flags := cmd.Flags()
			if flags.Changed("format") {
				cfg.ReportFormat = opts.format
			}
			if flags.Changed("output-name") {
				cfg.OutputFileName = opts.outputName
			}
			if flags.Changed("metrics-textfile") {
				cfg.MetricsTextfile = opts.metricsTextfile
			}
			if flags.Changed("strict-orphans") {
				cfg.StrictOrphans = opts.strictOrphans
			}
			if err := cfg.Validate(); err != nil {
				return withCode(exitUsage, err)
			}
			return runReport(cmd.Context(), cmd.OutOrStdout(), &cfg, args[0], args[1], args[2])
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "Report format: text|json|yaml|xlsx (overrides ORG_ROLLUP_REPORT_FORMAT)")
	cmd.Flags().StringVar(&opts.outputName, "output-name", "", "Report file name inside the output folder (overrides ORG_ROLLUP_OUTPUT_FILE_NAME)")
	cmd.Flags().StringVar(&opts.metricsTextfile, "metrics-textfile", "", "Write run metrics to this node_exporter textfile")
	cmd.Flags().BoolVar(&opts.strictOrphans, "strict-orphans", false, "Fail when an org references a parent that was never loaded")
	return cmd
}

func runReport(ctx context.Context, out io.Writer, cfg *configuration.Configuration, orgFile, userFile, outDir string) error {
	start := time.Now()

	w, err := writers.New(cfg.ReportFormat)
	if err != nil {
		return withCode(exitUsage, err)
	}
	if err := requireDir(outDir); err != nil {
		return err
	}

	r, err := buildRollup(ctx, cfg, orgFile, userFile)
	if err != nil {
		return err
	}
	tree := mappers.RollupToTree(r)

	name := cfg.OutputFileName
	if name == configuration.DefaultOutputFileName {
		name = outputName(name, w.Format())
	}
	path := filepath.Join(outDir, name)
	if err := writeReportFile(path, w, tree); err != nil {
		return err
	}
	services.RecordReportWritten(w.Format(), len(tree.Nodes))

	if err := metrics.WriteTextfile(cfg.MetricsTextfile, nil); err != nil {
		return withCode(exitIO, err)
	}

	if l := logging.FromContext(ctx); l != nil {
		l.WithFields(logrus.Fields{
			"run_id": tree.RunID,
			"path":   path,
			"format": w.Format(),
			"nodes":  len(tree.Nodes),
		}).Info("Report written")
	}

	return writeJSONLine(out, reportOutput{
		Command:     "report",
		DurationMS:  time.Since(start).Milliseconds(),
		RunID:       tree.RunID,
		Format:      w.Format(),
		Output:      path,
		Nodes:       len(tree.Nodes),
		Diagnostics: len(r.Diagnostics()),
	})
}
