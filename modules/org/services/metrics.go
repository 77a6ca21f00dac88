package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iota-uz/org-rollup/modules/org/domain/hierarchy"
)

var (
	orgRecordsLoaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "org",
		Subsystem: "rollup",
		Name:      "records_total",
		Help:      "Total number of input records handed to the rollup broken down by entity.",
	}, []string{"entity"})

	orgDiagnostics = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "org",
		Subsystem: "rollup",
		Name:      "diagnostics_total",
		Help:      "Total number of discarded or unlinked records broken down by kind.",
	}, []string{"kind"})

	orgReportNodes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "org",
		Subsystem: "report",
		Name:      "nodes_total",
		Help:      "Total number of org nodes written to reports broken down by format.",
	}, []string{"format"})
)

func recordRecordsLoaded(entity string, n int) {
	orgRecordsLoaded.WithLabelValues(entity).Add(float64(n))
}

func recordDiagnostic(kind hierarchy.DiagnosticKind) {
	if kind == "" {
		kind = "other"
	}
	orgDiagnostics.WithLabelValues(string(kind)).Inc()
}

// RecordReportWritten counts the nodes emitted by a report writer.
func RecordReportWritten(format string, nodes int) {
	if format == "" {
		format = "text"
	}
	orgReportNodes.WithLabelValues(format).Add(float64(nodes))
}
