// internal/workers/intake/ingest-survey-responses/handler.go
package ingestsurveyresponses

import (
	"context"
	"encoding/json"
	"fmt"

	"intake-workers/internal/common/errors"
	"intake-workers/internal/common/logger"
	"intake-workers/internal/common/metrics"
	"intake-workers/internal/intake"
	"intake-workers/internal/reports"
	"intake-workers/internal/sheet"
	"intake-workers/internal/workers/intake/runner"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "ingest-survey-responses"
)

type Handler struct {
	config     *Config
	run        *runner.Runner
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, run *runner.Runner, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		run:        run,
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := ParseInput(job.Variables)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
	h.errHandler.HandleJobError(ctx, client, job, err)
}

func ParseInput(variables string) (*Input, error) {
	res, err := inputSchema.ValidateJSON(variables)
	if err != nil {
		return nil, errors.NewInvalidJobInputError(err.Error())
	}
	if !res.Valid {
		return nil, errors.NewInvalidJobInputError(res.Error())
	}

	var input Input
	if variables != "" {
		if err := json.Unmarshal([]byte(variables), &input); err != nil {
			return nil, errors.NewInvalidJobInputError(fmt.Sprintf("parse input: %v", err))
		}
	}
	return &input, nil
}

// Execute copies one survey batch into the alumni ledger and, when asked,
// removes the batch afterwards.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	started := h.run.Now()

	source, ledger, err := h.openTables(ctx, input)
	if err != nil {
		h.run.Fail(ctx, reports.KindIngest, started, err)
		return nil, err
	}

	res, err := h.run.Pipeline.Ingest(ctx, source, ledger)
	if err != nil {
		h.run.Fail(ctx, reports.KindIngest, started, err)
		return nil, err
	}
	metrics.LedgerRowsCopied.Add(float64(res.Copied))
	metrics.LedgerRowsDuplicate.Add(float64(res.Duplicates))
	metrics.LedgerBatchRepeats.Add(float64(res.BatchRepeats))

	deleted := false
	if h.deleteSource(input) {
		// The batch is already copied; a leftover source only costs a
		// duplicate-skipping re-run.
		if err := h.run.Workbook.DeleteTable(ctx, source.Name()); err != nil {
			h.logger.Warn("survey batch not deleted", map[string]interface{}{
				"source": source.Name(),
				"error":  err,
			})
		} else {
			deleted = true
		}
	}

	rep := reports.NewReport(reports.KindIngest, started)
	rep.Message = res.Message
	rep.Counts["copied"] = res.Copied
	rep.Counts["duplicates"] = res.Duplicates
	rep.Counts["batchRepeats"] = res.BatchRepeats
	if err := rep.SetDetail(res); err != nil {
		h.logger.Warn("report detail dropped", map[string]interface{}{"error": err})
	}
	h.run.Succeed(ctx, rep)

	return &Output{
		RunID:         rep.RunID,
		Source:        res.Source,
		Cohort:        res.Cohort,
		Copied:        res.Copied,
		Duplicates:    res.Duplicates,
		BatchRepeats:  res.BatchRepeats,
		SourceDeleted: deleted,
		Message:       res.Message,
	}, nil
}

func (h *Handler) openTables(ctx context.Context, input *Input) (sheet.Table, sheet.Table, error) {
	ledgerName := input.LedgerSheet
	if ledgerName == "" {
		ledgerName = h.config.LedgerSheet
	}
	ledger, err := intake.OpenTable(ctx, h.run.Workbook, ledgerName)
	if err != nil {
		return nil, nil, err
	}

	var source sheet.Table
	if input.SourceSheet != "" {
		source, err = intake.OpenTable(ctx, h.run.Workbook, input.SourceSheet)
	} else {
		source, err = intake.OpenTableAt(ctx, h.run.Workbook, h.config.SourcePosition)
	}
	if err != nil {
		return nil, nil, err
	}

	if source.Name() == ledger.Name() {
		return nil, nil, errors.NewInvalidJobInputError(
			fmt.Sprintf("survey batch and ledger are the same sheet: %s", ledger.Name()))
	}
	return source, ledger, nil
}

func (h *Handler) deleteSource(input *Input) bool {
	if input.DeleteSource != nil {
		return *input.DeleteSource
	}
	return h.config.DeleteSource
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.logger.Info("job completed successfully", map[string]interface{}{
		"jobKey": job.Key,
		"copied": output.Copied,
	})
}
