package intake

import (
	"context"

	"intake-workers/internal/cohort"
	"intake-workers/internal/common/errors"
	"intake-workers/internal/models"
	"intake-workers/internal/sheet"
)

type IngestResult struct {
	Source     string `json:"source"`
	Ledger     string `json:"ledger"`
	Cohort     string `json:"cohort"`
	Year       string `json:"year"`
	Total      int    `json:"total"`
	Copied     int    `json:"copied"`
	Duplicates int    `json:"duplicates"`
	// BatchRepeats counts rows whose organization already appeared earlier
	// in the same batch. They are copied like any other new row.
	BatchRepeats          int      `json:"batchRepeats"`
	RepeatedOrganizations []string `json:"repeatedOrganizations,omitempty"`
	AppendedRows          []int    `json:"appendedRows,omitempty"`
	Message               string   `json:"message"`
}

// Ingest copies a survey batch into the ledger, skipping organizations the
// ledger already lists for the batch's cohort. The cohort comes from the
// source table's name.
//
// Duplicates are detected against the ledger as it was before the run.
// Rows copied during the run are not added to that set, so a batch that
// names the same organization twice produces two ledger rows; those repeats
// are logged and counted in BatchRepeats.
func (p *Pipeline) Ingest(ctx context.Context, source, ledger sheet.Table) (*IngestResult, error) {
	label := source.Name()
	cohortID := cohort.ParseCohort(label)
	year := cohort.ParseYear(cohortID)

	src, err := readTable(ctx, source)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(source, src.header, SurveyOrganization); err != nil {
		return nil, err
	}

	dst, err := readTable(ctx, ledger)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(ledger, dst.header, LedgerOrganization, LedgerCohort); err != nil {
		return nil, err
	}

	survey := newSurveySchema(src.header)
	book := newLedgerSchema(dst.header)

	existing := make(map[models.LedgerKey]struct{}, len(dst.rows))
	for _, r := range dst.rows {
		existing[book.key(r.Values)] = struct{}{}
	}

	log := p.logger.WithFields(map[string]interface{}{
		"source": label,
		"ledger": ledger.Name(),
		"cohort": cohortID,
	})
	if cohortID == "" {
		log.Warn("batch label names no cohort, rows are keyed with an empty cohort", nil)
	}
	log.Info("ingesting survey batch", map[string]interface{}{
		"sourceRows": len(src.rows),
		"ledgerRows": len(dst.rows),
	})

	out := &IngestResult{
		Source: label,
		Ledger: ledger.Name(),
		Cohort: cohortID,
		Year:   year,
		Total:  len(src.rows),
	}
	seen := make(map[models.LedgerKey]struct{})

	for _, r := range src.rows {
		name, role := cohort.SplitNameRole(survey.namePosition.String(r.Values))
		entry := models.LedgerEntry{
			Organization: survey.organization.String(r.Values),
			Cohort:       cohortID,
			Year:         year,
			ContactName:  name,
			ContactRole:  role,
			Email:        survey.email.String(r.Values),
			Location:     survey.regions.String(r.Values),
			Budget:       survey.budget.String(r.Values),
			Banking:      survey.bank.String(r.Values),
		}
		key := entry.Key()

		if _, dup := existing[key]; dup {
			log.Debug("organization already in ledger", map[string]interface{}{
				"row":          r.Number,
				"organization": entry.Organization,
			})
			continue
		}
		if _, repeat := seen[key]; repeat {
			out.BatchRepeats++
			out.RepeatedOrganizations = append(out.RepeatedOrganizations, entry.Organization)
			log.Warn("organization appears more than once in batch", map[string]interface{}{
				"row":          r.Number,
				"organization": entry.Organization,
			})
		}
		seen[key] = struct{}{}

		n, err := ledger.AppendRow(ctx, book.row(entry))
		if err != nil {
			return out, errors.NewSheetWriteFailedError(ledger.Name(), r.Number, err)
		}
		out.Copied++
		out.AppendedRows = append(out.AppendedRows, n)
	}

	out.Duplicates = out.Total - out.Copied
	out.Message = IngestMessage(out.Copied, out.Duplicates)
	log.Info("ingest complete", map[string]interface{}{
		"copied":       out.Copied,
		"duplicates":   out.Duplicates,
		"batchRepeats": out.BatchRepeats,
	})
	return out, nil
}
