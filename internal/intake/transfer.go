package intake

import (
	"context"

	"intake-workers/internal/common/errors"
	"intake-workers/internal/models"
	"intake-workers/internal/sheet"
)

type TransferredRow struct {
	RawRow       int    `json:"rawRow"`
	ResultRow    int    `json:"resultRow"`
	Organization string `json:"organization"`
}

type TransferResult struct {
	Raw               string           `json:"raw"`
	Results           string           `json:"results"`
	Scanned           int              `json:"scanned"`
	Transferred       int              `json:"transferred"`
	SkippedDone       int              `json:"skippedDone"`
	SkippedInProgress int              `json:"skippedInProgress"`
	Rows              []TransferredRow `json:"rows,omitempty"`
	Message           string           `json:"message"`
}

func (r *TransferResult) Skipped() int {
	return r.SkippedDone + r.SkippedInProgress
}

// TransferUnprocessed appends every unprocessed raw application to the
// results sheet as a Pending row and then marks the raw row done. Rows
// marked done or still being filled in by the form integration are left
// alone, so each raw row is transferred at most once.
func (p *Pipeline) TransferUnprocessed(ctx context.Context, raw, results sheet.Table) (*TransferResult, error) {
	src, err := readTable(ctx, raw)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(raw, src.header, RawProcessed); err != nil {
		return nil, err
	}

	dstHeader, err := readHeader(ctx, results)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(results, dstHeader, ResultsStatus, ResultsOrganization); err != nil {
		return nil, err
	}

	in := newRawSchema(src.header)
	out := newResultsSchema(dstHeader)
	subCols := out.subScoreCols()

	log := p.logger.WithFields(map[string]interface{}{
		"raw":     raw.Name(),
		"results": results.Name(),
	})
	if subCols == nil || !out.score.Resolved() {
		log.Warn("score columns not found, transferred rows get no score formula", nil)
	}

	res := &TransferResult{Raw: raw.Name(), Results: results.Name(), Scanned: len(src.rows)}

	for _, r := range src.rows {
		switch models.ParseProcessedState(in.processed.String(r.Values)) {
		case models.Done:
			res.SkippedDone++
			continue
		case models.InProgress:
			res.SkippedInProgress++
			log.Debug("raw row still loading", map[string]interface{}{"row": r.Number})
			continue
		}

		application := in.result(r.Values)

		last, err := results.LastRow(ctx)
		if err != nil {
			return res, errors.NewSheetReadFailedError(results.Name(), err)
		}
		next := last + 1

		n, err := results.AppendRow(ctx, out.row(application, sheet.SumFormula(next, subCols)))
		if err != nil {
			return res, errors.NewSheetWriteFailedError(results.Name(), next, err)
		}
		if n != next && subCols != nil && out.score.Resolved() {
			if err := results.SetCell(ctx, n, out.score.Col, sheet.SumFormula(n, subCols)); err != nil {
				return res, errors.NewSheetWriteFailedError(results.Name(), n, err)
			}
		}

		if err := raw.SetCell(ctx, r.Number, in.processed.Col, models.MarkerDone); err != nil {
			return res, errors.NewSheetWriteFailedError(raw.Name(), r.Number, err)
		}

		res.Transferred++
		res.Rows = append(res.Rows, TransferredRow{
			RawRow:       r.Number,
			ResultRow:    n,
			Organization: application.Organization,
		})
		log.Debug("application transferred", map[string]interface{}{
			"rawRow":       r.Number,
			"resultRow":    n,
			"organization": application.Organization,
		})
	}

	res.Message = TransferMessage(res.Transferred, res.Skipped())
	log.Info("transfer complete", map[string]interface{}{
		"transferred":       res.Transferred,
		"skippedDone":       res.SkippedDone,
		"skippedInProgress": res.SkippedInProgress,
	})
	return res, nil
}
