package intake

import (
	"context"
	"testing"

	"intake-workers/internal/common/errors"
	"intake-workers/internal/models"
	"intake-workers/internal/sheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batchLabel = "Victoria Spring 2021 Applications"

func newIngestWorkbook(ledgerRows [][]string, surveyRows ...[]string) (*sheet.MemoryTable, *sheet.MemoryTable) {
	wb := sheet.NewMemoryWorkbook()
	ledger := wb.AddTable("Alumni Organizations", 2,
		append([][]string{{"Alumni Organizations"}, ledgerHeader()}, ledgerRows...)...)
	wb.AddTable("TNP Waitlist", 1, []string{"Org Name"})
	source := wb.AddTable(batchLabel, 1, append([][]string{surveyHeader()}, surveyRows...)...)
	return source, ledger
}

func ledgerKeys(t *testing.T, ledger sheet.Table) []models.LedgerKey {
	t.Helper()
	header, err := ledger.HeaderRow(context.Background())
	require.NoError(t, err)
	schema := newLedgerSchema(sheet.NewHeaderIndex(header))

	rows, err := ledger.Rows(context.Background())
	require.NoError(t, err)
	keys := make([]models.LedgerKey, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, schema.key(r.Values))
	}
	return keys
}

func TestIngest_CopiesNewRowsAndSkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	source, ledger := newIngestWorkbook(
		[][]string{
			ledgerRow("Acme", "Victoria Spring 2021"),
			ledgerRow("Beta", "Fall 2020"),
		},
		surveyRow("Acme", "Jane Doe, Executive Director"),
		surveyRow("Beta", "Sam Lee - Staff"),
		surveyRow("Gamma", "Kim Park"),
	)

	res, err := newTestPipeline(t).Ingest(ctx, source, ledger)
	require.NoError(t, err)

	assert.Equal(t, "Victoria Spring 2021", res.Cohort)
	assert.Equal(t, "2021", res.Year)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Copied)
	assert.Equal(t, 1, res.Duplicates)
	assert.Equal(t, []int{5, 6}, res.AppendedRows)
	assert.Equal(t, "Transfer complete! 2 row(s) have been copied.\n"+
		"There were 1 rows that already exist in the Master Tracker that were not copied over.", res.Message)

	idx := sheet.NewHeaderIndex(ledgerHeader())
	assert.Equal(t, "Beta", ledger.Cell(5, idx.Position(LedgerOrganization)))
	assert.Equal(t, "Victoria Spring 2021", ledger.Cell(5, idx.Position(LedgerCohort)))
	assert.Equal(t, "2021", ledger.Cell(5, idx.Position(LedgerDate)))
	assert.Equal(t, "Sam Lee", ledger.Cell(5, idx.Position(LedgerName)))
	assert.Equal(t, "Staff", ledger.Cell(5, idx.Position(LedgerRole)))
	assert.Equal(t, "contact@Beta.org", ledger.Cell(5, idx.Position(LedgerEmail)))
	assert.Equal(t, "BC", ledger.Cell(5, idx.Position(LedgerLocation)))
	assert.Equal(t, "$0 - $100,000", ledger.Cell(5, idx.Position(LedgerBudget)))
	assert.Equal(t, "Credit Union", ledger.Cell(5, idx.Position(LedgerBanking)))

	assert.Equal(t, "Gamma", ledger.Cell(6, idx.Position(LedgerOrganization)))
	assert.Equal(t, "Kim Park", ledger.Cell(6, idx.Position(LedgerName)))
	assert.Equal(t, "", ledger.Cell(6, idx.Position(LedgerRole)))
}

func TestIngest_RerunCopiesNothing(t *testing.T) {
	ctx := context.Background()
	source, ledger := newIngestWorkbook(nil,
		surveyRow("Acme", "Jane Doe"),
		surveyRow("Beta", "Sam Lee"),
	)
	p := newTestPipeline(t)

	first, err := p.Ingest(ctx, source, ledger)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Copied)
	assert.Equal(t, "Transfer complete! 2 rows have been copied.", first.Message)

	before, err := ledger.Rows(ctx)
	require.NoError(t, err)

	second, err := p.Ingest(ctx, source, ledger)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Copied)
	assert.Equal(t, 2, second.Duplicates)

	after, err := ledger.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestIngest_NeverDuplicatesKeys(t *testing.T) {
	ctx := context.Background()
	source, ledger := newIngestWorkbook(
		[][]string{ledgerRow("Acme", "Victoria Spring 2021")},
		surveyRow("Acme", "Jane"),
		surveyRow("Beta", "Sam"),
		surveyRow("Gamma", "Kim"),
		surveyRow("Delta", "Lou"),
	)
	p := newTestPipeline(t)

	for i := 0; i < 3; i++ {
		_, err := p.Ingest(ctx, source, ledger)
		require.NoError(t, err)
	}

	seen := map[models.LedgerKey]bool{}
	for _, k := range ledgerKeys(t, ledger) {
		assert.False(t, seen[k], "duplicate key %v", k)
		seen[k] = true
	}
	assert.Len(t, seen, 4)
}

func TestIngest_SameOrganizationInOtherCohortIsNew(t *testing.T) {
	source, ledger := newIngestWorkbook(
		[][]string{ledgerRow("Acme", "Fall 2020")},
		surveyRow("Acme", "Jane"),
	)

	res, err := newTestPipeline(t).Ingest(context.Background(), source, ledger)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Copied)
}

func TestIngest_BatchRepeatsAreReported(t *testing.T) {
	source, ledger := newIngestWorkbook(nil,
		surveyRow("Acme", "Jane"),
		surveyRow("Acme", "Sam"),
	)

	res, err := newTestPipeline(t).Ingest(context.Background(), source, ledger)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Copied)
	assert.Equal(t, 0, res.Duplicates)
	assert.Equal(t, 1, res.BatchRepeats)
	assert.Equal(t, []string{"Acme"}, res.RepeatedOrganizations)
}

func TestIngest_UnparseableLabelUsesEmptyCohort(t *testing.T) {
	ctx := context.Background()
	wb := sheet.NewMemoryWorkbook()
	ledger := wb.AddTable("Alumni Organizations", 2,
		[]string{"title"}, ledgerHeader(), ledgerRow("Acme", ""))
	source := wb.AddTable("Form Responses 1", 1, surveyHeader(),
		surveyRow("Acme", "Jane"), surveyRow("Beta", "Sam"))

	res, err := newTestPipeline(t).Ingest(ctx, source, ledger)
	require.NoError(t, err)
	assert.Equal(t, "", res.Cohort)
	assert.Equal(t, "", res.Year)
	assert.Equal(t, 1, res.Copied)
	assert.Equal(t, 1, res.Duplicates)
}

func TestIngest_MissingLedgerColumnAbortsBeforeWrites(t *testing.T) {
	ctx := context.Background()
	wb := sheet.NewMemoryWorkbook()
	ledger := wb.AddTable("Alumni Organizations", 2, []string{"title"}, []string{LedgerOrganization})
	source := wb.AddTable(batchLabel, 1, surveyHeader(), surveyRow("Acme", "Jane"))

	_, err := newTestPipeline(t).Ingest(ctx, source, ledger)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingRequiredColumn))
	assert.Equal(t, "Cohort Name column not found.", errors.UserMessage(err))

	last, err := ledger.LastRow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, last)
}

func TestIngest_MissingSourceOrganizationColumn(t *testing.T) {
	wb := sheet.NewMemoryWorkbook()
	ledger := wb.AddTable("Alumni Organizations", 2, []string{"title"}, ledgerHeader())
	source := wb.AddTable(batchLabel, 1, []string{"Respondent ID"}, []string{"1"})

	_, err := newTestPipeline(t).Ingest(context.Background(), source, ledger)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingRequiredColumn))
}

func TestIngest_OptionalSurveyColumnsDefaultToBlank(t *testing.T) {
	ctx := context.Background()
	wb := sheet.NewMemoryWorkbook()
	ledger := wb.AddTable("Alumni Organizations", 2, []string{"title"}, ledgerHeader())
	source := wb.AddTable("Fall 2022", 1, []string{SurveyOrganization}, []string{"Acme"})

	res, err := newTestPipeline(t).Ingest(ctx, source, ledger)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Copied)

	idx := sheet.NewHeaderIndex(ledgerHeader())
	assert.Equal(t, "Fall 2022", ledger.Cell(3, idx.Position(LedgerCohort)))
	assert.Equal(t, "", ledger.Cell(3, idx.Position(LedgerEmail)))
}
