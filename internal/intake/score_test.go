package intake

import (
	"context"
	"math"
	"testing"
	"time"

	"intake-workers/internal/common/errors"
	"intake-workers/internal/sheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResultsTable(rows ...[]string) (*sheet.MemoryWorkbook, *sheet.MemoryTable) {
	wb := sheet.NewMemoryWorkbook()
	all := append([][]string{resultsHeader()}, rows...)
	return wb, wb.AddTable("Application Results", 1, all...)
}

func TestScoreRows_WritesSubScoresAndFormula(t *testing.T) {
	ctx := context.Background()
	h := resultsHeader()
	_, tbl := newResultsTable(
		row(h, map[string]string{
			ResultsOrganization:        "Acme",
			ResultsPartner:             "Yes",
			ResultsBudget:              "$250,001 - $500,000",
			ResultsFullTime:            "12",
			ResultsPartTime:            "4 part time",
			ResultsVolunteers:          "many",
			ResultsParticipantRoles[0]: "Executive Director",
			ResultsParticipantRoles[1]: "Board Member",
			ResultsTimeCommitment:      "yes",
			ResultsAppForm:             "half",
		}),
		row(h, map[string]string{ResultsOrganization: "Beta"}),
	)

	res, err := newTestPipeline(t).ScoreRows(ctx, tbl, Selection{StartRow: 2, NumRows: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.RowsScored)
	assert.Equal(t, "Scoring complete! 1 row(s) scored.", res.Message)

	idx := sheet.NewHeaderIndex(h)
	assert.Equal(t, "=SUM(V2:AC2)", tbl.Cell(2, idx.Position(ResultsScore)))
	assert.Equal(t, "5", tbl.Cell(2, idx.Position(ResultsPartnerScore)))
	assert.Equal(t, "3", tbl.Cell(2, idx.Position(ResultsBudgetScore)))
	assert.Equal(t, "4", tbl.Cell(2, idx.Position(ResultsFullTimeScore)))
	assert.Equal(t, "2", tbl.Cell(2, idx.Position(ResultsPartTimeScore)))
	assert.Equal(t, "2", tbl.Cell(2, idx.Position(ResultsVolunteerScore)))
	assert.Equal(t, "5", tbl.Cell(2, idx.Position(ResultsTeamScore)))
	assert.Equal(t, "5", tbl.Cell(2, idx.Position(ResultsTimeCommitmentScore)))
	assert.Equal(t, "3", tbl.Cell(2, idx.Position(ResultsAppCompletionScore)))

	// Row 3 was outside the selection.
	assert.Equal(t, "", tbl.Cell(3, idx.Position(ResultsScore)))

	rows, err := tbl.Rows(ctx)
	require.NoError(t, err)
	total, ok := evalSum(tbl.Cell(2, idx.Position(ResultsScore)), rows[0].Values)
	require.True(t, ok)
	assert.Equal(t, res.Rows[0].Total, total)
	assert.Equal(t, 29, total)
}

func TestScoreRows_LiveTotalFollowsManualEdits(t *testing.T) {
	ctx := context.Background()
	h := resultsHeader()
	_, tbl := newResultsTable(row(h, map[string]string{ResultsOrganization: "Acme"}))

	_, err := newTestPipeline(t).ScoreRows(ctx, tbl, Selection{StartRow: 2, NumRows: 1})
	require.NoError(t, err)

	idx := sheet.NewHeaderIndex(h)
	require.NoError(t, tbl.SetCell(ctx, 2, idx.Position(ResultsPartnerScore), "5"))

	rows, err := tbl.Rows(ctx)
	require.NoError(t, err)
	total, ok := evalSum(tbl.Cell(2, idx.Position(ResultsScore)), rows[0].Values)
	require.True(t, ok)
	// partner 5, budget 0, headcounts 2+2+2, team 0, time 1, form 0
	assert.Equal(t, 12, total)
}

func TestScoreRows_IgnoresHeaderAndRowsPastEnd(t *testing.T) {
	h := resultsHeader()
	_, tbl := newResultsTable(row(h, map[string]string{ResultsOrganization: "Acme"}))

	res, err := newTestPipeline(t).ScoreRows(context.Background(), tbl, Selection{StartRow: 1, NumRows: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, res.RowsScored)
	assert.Equal(t, 4, res.Ignored)
	assert.Equal(t, ResultsScore, tbl.Cell(1, 0))
}

func TestScoreRows_MissingSelection(t *testing.T) {
	_, tbl := newResultsTable()

	for _, sel := range []Selection{{}, {StartRow: 2}, {NumRows: 3}} {
		_, err := newTestPipeline(t).ScoreRows(context.Background(), tbl, sel)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeMissingSelection))
		assert.Equal(t, "Please select a range of rows to process.", errors.UserMessage(err))
	}
}

func TestScoreRows_MissingScoreColumnAbortsBeforeWrites(t *testing.T) {
	ctx := context.Background()
	wb := sheet.NewMemoryWorkbook()
	tbl := wb.AddTable("Application Results", 1,
		[]string{ResultsOrganization, ResultsPartnerScore},
		[]string{"Acme", ""},
	)

	_, err := newTestPipeline(t).ScoreRows(ctx, tbl, Selection{StartRow: 2, NumRows: 1})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingRequiredColumn))
	assert.Equal(t, "", tbl.Cell(2, 1))
}

func TestScoreRows_Rescoring(t *testing.T) {
	ctx := context.Background()
	h := resultsHeader()
	_, tbl := newResultsTable(row(h, map[string]string{ResultsOrganization: "Acme", ResultsAppForm: "no"}))
	p := newTestPipeline(t)

	first, err := p.ScoreRows(ctx, tbl, Selection{StartRow: 2, NumRows: 1})
	require.NoError(t, err)
	second, err := p.ScoreRows(ctx, tbl, Selection{StartRow: 2, NumRows: 1})
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
}

func TestScoreRows_HugeSelectionScoresExistingRows(t *testing.T) {
	h := resultsHeader()
	_, tbl := newResultsTable(row(h, map[string]string{ResultsOrganization: "Acme"}))

	res, err := newTestPipeline(t).ScoreRows(context.Background(), tbl, Selection{StartRow: 2, NumRows: math.MaxInt})
	require.NoError(t, err)
	assert.Equal(t, 1, res.RowsScored)
	assert.Equal(t, math.MaxInt-1, res.Ignored)
	assert.Equal(t, "Scoring complete! 1 row(s) scored.", res.Message)
	assert.Equal(t, "=SUM(V2:AC2)", tbl.Cell(2, sheet.NewHeaderIndex(h).Position(ResultsScore)))
}

func TestScoreRows_LargeSelectionFinishesQuickly(t *testing.T) {
	h := resultsHeader()
	_, tbl := newResultsTable(row(h, map[string]string{ResultsOrganization: "Acme"}))

	started := time.Now()
	res, err := newTestPipeline(t).ScoreRows(context.Background(), tbl, Selection{StartRow: 2, NumRows: 1 << 28})
	require.NoError(t, err)
	assert.Less(t, time.Since(started), time.Second)
	assert.Equal(t, 1, res.RowsScored)
	assert.Equal(t, 1<<28-1, res.Ignored)
}

func TestScoreRows_StopsWhenContextCancelled(t *testing.T) {
	h := resultsHeader()
	_, tbl := newResultsTable(
		row(h, map[string]string{ResultsOrganization: "Acme"}),
		row(h, map[string]string{ResultsOrganization: "Beta"}),
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline(t).ScoreRows(ctx, tbl, Selection{StartRow: 2, NumRows: 2})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "", tbl.Cell(2, sheet.NewHeaderIndex(h).Position(ResultsScore)))
}

func TestSelection_Contains(t *testing.T) {
	sel := Selection{StartRow: 3, NumRows: 2}
	assert.False(t, sel.Contains(2))
	assert.True(t, sel.Contains(3))
	assert.True(t, sel.Contains(4))
	assert.False(t, sel.Contains(5))

	huge := Selection{StartRow: 2, NumRows: math.MaxInt}
	assert.True(t, huge.Contains(math.MaxInt))
	assert.False(t, huge.Contains(1))
}

func TestScoreRows_OversizedHeadcountScoresAsLarge(t *testing.T) {
	h := resultsHeader()
	_, tbl := newResultsTable(row(h, map[string]string{
		ResultsOrganization: "Acme",
		ResultsFullTime:     "99999999999999999999",
	}))

	_, err := newTestPipeline(t).ScoreRows(context.Background(), tbl, Selection{StartRow: 2, NumRows: 1})
	require.NoError(t, err)
	assert.Equal(t, "5", tbl.Cell(2, sheet.NewHeaderIndex(h).Position(ResultsFullTimeScore)))
}
