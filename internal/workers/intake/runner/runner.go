// Package runner holds what the intake workers share: the workbook, the
// pipeline and the after-run bookkeeping (metrics, stored report, user
// notification).
package runner

import (
	"context"
	"time"

	"intake-workers/internal/common/errors"
	"intake-workers/internal/common/logger"
	"intake-workers/internal/common/notify"
	"intake-workers/internal/common/observability"
	"intake-workers/internal/intake"
	"intake-workers/internal/reports"
	"intake-workers/internal/sheet"
)

// ReportSaver is satisfied by *reports.Store.
type ReportSaver interface {
	Save(ctx context.Context, r *reports.Report) error
}

// Runner is shared by the three workers and the CLI. Reports, Notifier and
// Metrics may be nil.
type Runner struct {
	Workbook sheet.Workbook
	Pipeline *intake.Pipeline
	Reports  ReportSaver
	Notifier notify.Notifier
	Metrics  *observability.Observability

	logger logger.Logger
	now    func() time.Time
}

func New(wb sheet.Workbook, log logger.Logger) *Runner {
	return &Runner{
		Workbook: wb,
		Pipeline: intake.New(log),
		logger:   log,
		now:      time.Now,
	}
}

func (r *Runner) Now() time.Time {
	return r.now()
}

// Succeed records a finished run. Failing to store or deliver the summary
// is logged and does not fail the run.
func (r *Runner) Succeed(ctx context.Context, rep *reports.Report) {
	rep.FinishedAt = r.now().UTC()

	r.Metrics.RecordRun(ctx, rep.Kind, "success", rep.Duration())
	for outcome, n := range rep.Counts {
		r.Metrics.RecordRows(ctx, rep.Kind, outcome, n)
	}

	log := r.logger.WithFields(map[string]interface{}{
		"kind":  rep.Kind,
		"runId": rep.RunID,
	})

	if r.Reports != nil {
		if err := r.Reports.Save(ctx, rep); err != nil {
			log.Warn("run report not stored", map[string]interface{}{
				"error": errors.NewReportStoreFailedError(err),
			})
		}
	}

	r.notify(ctx, log, notify.Message{Kind: rep.Kind, RunID: rep.RunID, Text: rep.Message})
	log.Info("run finished", map[string]interface{}{
		"counts":     rep.Counts,
		"durationMs": rep.Duration().Milliseconds(),
	})
}

// Fail records an aborted run and tells the user why.
func (r *Runner) Fail(ctx context.Context, kind string, started time.Time, err error) {
	r.Metrics.RecordRun(ctx, kind, "failed", r.now().Sub(started))

	stdErr := errors.Normalize(err)
	log := r.logger.WithFields(map[string]interface{}{
		"kind":      kind,
		"errorCode": string(stdErr.Code),
	})
	log.Error("run aborted", map[string]interface{}{"error": err})

	r.notify(ctx, log, notify.Message{Kind: kind, Text: errors.UserMessage(err)})
}

func (r *Runner) notify(ctx context.Context, log logger.Logger, msg notify.Message) {
	if r.Notifier == nil {
		return
	}
	if err := r.Notifier.Notify(ctx, msg); err != nil {
		log.Warn("notification not delivered", map[string]interface{}{"error": err})
	}
}
