// internal/workers/intake/assign-score/handler.go
package assignscore

import (
	"context"
	"encoding/json"
	"fmt"

	"intake-workers/internal/common/errors"
	"intake-workers/internal/common/logger"
	"intake-workers/internal/common/metrics"
	"intake-workers/internal/intake"
	"intake-workers/internal/reports"
	"intake-workers/internal/workers/intake/runner"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "assign-score"
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

// ParseInput validates and decodes job variables.
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

// Execute scores the selected rows of the results sheet.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	started := h.run.Now()

	name := input.Sheet
	if name == "" {
		name = h.config.ResultsSheet
	}

	table, err := intake.OpenTable(ctx, h.run.Workbook, name)
	if err != nil {
		h.run.Fail(ctx, reports.KindScore, started, err)
		return nil, err
	}

	res, err := h.run.Pipeline.ScoreRows(ctx, table, intake.Selection{
		StartRow: input.StartRow,
		NumRows:  input.NumRows,
	})
	if err != nil {
		h.run.Fail(ctx, reports.KindScore, started, err)
		return nil, err
	}
	metrics.RowsScored.Add(float64(res.RowsScored))

	rep := reports.NewReport(reports.KindScore, started)
	rep.Message = res.Message
	rep.Counts["scored"] = res.RowsScored
	rep.Counts["ignored"] = res.Ignored
	if err := rep.SetDetail(res); err != nil {
		h.logger.Warn("report detail dropped", map[string]interface{}{"error": err})
	}
	h.run.Succeed(ctx, rep)

	return &Output{
		RunID:      rep.RunID,
		Sheet:      res.Sheet,
		RowsScored: res.RowsScored,
		Ignored:    res.Ignored,
		Message:    res.Message,
	}, nil
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
		"jobKey":     job.Key,
		"rowsScored": output.RowsScored,
	})
}
