package intake

import (
	"context"
	"strconv"

	"intake-workers/internal/common/errors"
	"intake-workers/internal/models"
	"intake-workers/internal/scoring"
	"intake-workers/internal/sheet"
)

// Selection is a block of rows picked by the reviewer, 1-based like the
// sheet.
type Selection struct {
	StartRow int `json:"startRow"`
	NumRows  int `json:"numRows"`
}

func (s Selection) Empty() bool {
	return s.StartRow < 1 || s.NumRows < 1
}

// Contains reports whether row n falls inside the selection. It never adds
// StartRow and NumRows, so a huge NumRows cannot wrap.
func (s Selection) Contains(n int) bool {
	return n >= s.StartRow && n-s.StartRow < s.NumRows
}

type ScoredRow struct {
	Row          int                   `json:"row"`
	Organization string                `json:"organization"`
	Breakdown    models.ScoreBreakdown `json:"breakdown"`
	Total        int                   `json:"total"`
	TeamRule     string                `json:"teamRule,omitempty"`
}

type ScoreResult struct {
	Sheet      string      `json:"sheet"`
	RowsScored int         `json:"rowsScored"`
	Ignored    int         `json:"ignored"`
	Rows       []ScoredRow `json:"rows"`
	Message    string      `json:"message"`
}

// ScoreRows scores every data row in sel and writes the eight sub-scores
// plus a live sum formula into the Score column of the same row. Header
// rows and rows past the end of the sheet are ignored.
func (p *Pipeline) ScoreRows(ctx context.Context, results sheet.Table, sel Selection) (*ScoreResult, error) {
	if sel.Empty() {
		return nil, errors.NewMissingSelectionError()
	}

	snap, err := readTable(ctx, results)
	if err != nil {
		return nil, err
	}
	required := append([]string{ResultsScore}, SubScoreColumns[:]...)
	if err := requireColumns(results, snap.header, required...); err != nil {
		return nil, err
	}

	schema := newResultsSchema(snap.header)
	subCols := schema.subScoreCols()

	log := p.logger.WithFields(map[string]interface{}{
		"sheet":    results.Name(),
		"startRow": sel.StartRow,
		"numRows":  sel.NumRows,
	})
	log.Info("scoring selected rows", nil)

	out := &ScoreResult{Sheet: results.Name()}
	for _, r := range snap.rows {
		if !sel.Contains(r.Number) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}
		n, values := r.Number, r.Values

		applicant := schema.applicant(values)
		breakdown := scoring.Score(applicant)

		cells := map[int]string{schema.score.Col: sheet.SumFormula(n, subCols)}
		for i, v := range breakdown.Values() {
			cells[subCols[i]] = strconv.Itoa(v)
		}
		if err := results.SetCells(ctx, n, cells); err != nil {
			return out, errors.NewSheetWriteFailedError(results.Name(), n, err)
		}

		scored := ScoredRow{
			Row:          n,
			Organization: applicant.Organization,
			Breakdown:    breakdown,
			Total:        breakdown.Total(),
			TeamRule:     scoring.TeamRule(applicant.ParticipantRoles[:]...),
		}
		out.Rows = append(out.Rows, scored)
		out.RowsScored++

		log.Debug("row scored", map[string]interface{}{
			"row":          n,
			"organization": scored.Organization,
			"total":        scored.Total,
			"teamRule":     scored.TeamRule,
		})
	}

	// Selected rows above the data or past the end of the sheet.
	out.Ignored = max(sel.NumRows-out.RowsScored, 0)
	out.Message = ScoreMessage(out.RowsScored)
	log.Info("scoring complete", map[string]interface{}{
		"rowsScored": out.RowsScored,
		"ignored":    out.Ignored,
	})
	return out, nil
}
