// internal/workers/intake/ingest-survey-responses/handler_test.go
package ingestsurveyresponses

import (
	"context"
	"testing"
	"time"

	"intake-workers/internal/common/errors"
	"intake-workers/internal/common/logger"
	"intake-workers/internal/intake"
	"intake-workers/internal/sheet"
	"intake-workers/internal/workers/intake/runner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ledgerName = "Alumni Organizations"
	batchName  = "Victoria Spring 2021 Applications"
)

// ==========================
// Test Helper Functions
// ==========================

func newWorkbook() *sheet.MemoryWorkbook {
	wb := sheet.NewMemoryWorkbook()
	wb.AddTable(batchName, 1,
		[]string{intake.SurveyOrganization, intake.SurveyNamePosition},
		[]string{"Acme", "Jane Doe, Executive Director"},
		[]string{"Gamma", "Kim Park"},
	)
	wb.AddTable(ledgerName, 2,
		[]string{"Alumni Organizations"},
		[]string{intake.LedgerOrganization, intake.LedgerCohort, intake.LedgerName},
		[]string{"Acme", "Victoria Spring 2021", "Jane Doe"},
	)
	return wb
}

func newHandler(t *testing.T, wb sheet.Workbook, deleteSource bool) *Handler {
	log := logger.NewTestLogger(t)
	cfg := &Config{
		Timeout:        time.Second,
		LedgerSheet:    ledgerName,
		SourcePosition: 0,
		DeleteSource:   deleteSource,
	}
	return NewHandler(cfg, runner.New(wb, log), log)
}

func boolPtr(b bool) *bool {
	return &b
}

// ==========================
// Input Parsing
// ==========================

func TestParseInput(t *testing.T) {
	input, err := ParseInput(`{"sourceSheet": "Batch", "deleteSource": false}`)
	require.NoError(t, err)
	assert.Equal(t, "Batch", input.SourceSheet)
	require.NotNil(t, input.DeleteSource)
	assert.False(t, *input.DeleteSource)

	_, err = ParseInput(`{"deleteSource": "yes"}`)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidJobInput))
}

// ==========================
// Execute
// ==========================

func TestExecute_SourceByPosition(t *testing.T) {
	wb := newWorkbook()
	h := newHandler(t, wb, false)

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	assert.NotEmpty(t, out.RunID)
	assert.Equal(t, batchName, out.Source)
	assert.Equal(t, "Victoria Spring 2021", out.Cohort)
	assert.Equal(t, 1, out.Copied)
	assert.Equal(t, 1, out.Duplicates)
	assert.False(t, out.SourceDeleted)
	assert.Equal(t, []string{batchName, ledgerName}, wb.Names())
}

func TestExecute_DeletesSourceWhenConfigured(t *testing.T) {
	wb := newWorkbook()
	h := newHandler(t, wb, true)

	out, err := h.Execute(context.Background(), &Input{SourceSheet: batchName})
	require.NoError(t, err)

	assert.True(t, out.SourceDeleted)
	assert.Equal(t, []string{ledgerName}, wb.Names())
}

func TestExecute_InputOverridesDelete(t *testing.T) {
	wb := newWorkbook()
	h := newHandler(t, wb, true)

	out, err := h.Execute(context.Background(), &Input{DeleteSource: boolPtr(false)})
	require.NoError(t, err)

	assert.False(t, out.SourceDeleted)
	assert.Len(t, wb.Names(), 2)
}

func TestExecute_SourceIsLedger(t *testing.T) {
	h := newHandler(t, newWorkbook(), false)

	_, err := h.Execute(context.Background(), &Input{SourceSheet: ledgerName})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidJobInput))
}

func TestExecute_MissingLedger(t *testing.T) {
	wb := sheet.NewMemoryWorkbook()
	wb.AddTable(batchName, 1, []string{intake.SurveyOrganization})
	h := newHandler(t, wb, true)

	_, err := h.Execute(context.Background(), &Input{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSheetNotFound))
	assert.Equal(t, []string{batchName}, wb.Names())
}

func TestExecute_MissingOrganizationColumn(t *testing.T) {
	wb := sheet.NewMemoryWorkbook()
	wb.AddTable(batchName, 1, []string{"Respondent ID"}, []string{"1"})
	wb.AddTable(ledgerName, 1, []string{intake.LedgerOrganization, intake.LedgerCohort})
	h := newHandler(t, wb, true)

	_, err := h.Execute(context.Background(), &Input{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingRequiredColumn))
	assert.Len(t, wb.Names(), 2)
}
