// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	RowsScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_rows_scored_total",
			Help: "Results rows scored",
		},
	)

	LedgerRowsCopied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_ledger_rows_copied_total",
			Help: "Survey responses copied into the ledger",
		},
	)

	LedgerRowsDuplicate = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_ledger_rows_duplicate_total",
			Help: "Survey responses skipped because the ledger already lists them",
		},
	)

	LedgerBatchRepeats = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_ledger_batch_repeats_total",
			Help: "Organizations named more than once in one survey batch",
		},
	)

	ApplicationsTransferred = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_applications_transferred_total",
			Help: "Raw applications moved to the results sheet",
		},
	)

	ApplicationsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_applications_skipped_total",
			Help: "Raw applications left alone by a transfer, by marker state",
		},
		[]string{"reason"},
	)
)
