// Package intake moves applications through the tracker: scoring selected
// results rows, ingesting survey batches into the alumni ledger, and
// transferring raw form submissions into the results sheet.
//
// Runs are single pass and not transactional. Each operation aborts before
// its first write when a required column is missing; after that, rows
// already written stay written and a re-run picks up where it stopped.
// Two runs must not target the same ledger at the same time.
package intake

import (
	"context"
	stderrors "errors"
	"fmt"

	"intake-workers/internal/common/errors"
	"intake-workers/internal/common/logger"
	"intake-workers/internal/sheet"
)

type Pipeline struct {
	logger logger.Logger
}

func New(log logger.Logger) *Pipeline {
	return &Pipeline{logger: log}
}

// OpenTable resolves a table by name, mapping store errors onto the error
// taxonomy.
func OpenTable(ctx context.Context, wb sheet.Workbook, name string) (sheet.Table, error) {
	t, err := wb.Table(ctx, name)
	if stderrors.Is(err, sheet.ErrTableNotFound) {
		return nil, errors.NewSheetNotFoundError(name)
	}
	if err != nil {
		return nil, errors.NewSheetReadFailedError(name, err)
	}
	return t, nil
}

// OpenTableAt resolves a table by position.
func OpenTableAt(ctx context.Context, wb sheet.Workbook, position int) (sheet.Table, error) {
	t, err := wb.TableAt(ctx, position)
	if stderrors.Is(err, sheet.ErrTableNotFound) {
		return nil, errors.NewSheetNotFoundError(fmt.Sprintf("#%d", position))
	}
	if err != nil {
		return nil, errors.NewSheetReadFailedError(fmt.Sprintf("#%d", position), err)
	}
	return t, nil
}

type snapshot struct {
	header *sheet.HeaderIndex
	rows   []sheet.Row
}

func readHeader(ctx context.Context, t sheet.Table) (*sheet.HeaderIndex, error) {
	header, err := t.HeaderRow(ctx)
	if err != nil {
		return nil, errors.NewSheetReadFailedError(t.Name(), err)
	}
	return sheet.NewHeaderIndex(header), nil
}

func readTable(ctx context.Context, t sheet.Table) (*snapshot, error) {
	h, err := readHeader(ctx, t)
	if err != nil {
		return nil, err
	}
	rows, err := t.Rows(ctx)
	if err != nil {
		return nil, errors.NewSheetReadFailedError(t.Name(), err)
	}
	return &snapshot{header: h, rows: rows}, nil
}

func requireColumns(t sheet.Table, h *sheet.HeaderIndex, names ...string) error {
	if missing := h.Missing(names...); len(missing) > 0 {
		return errors.NewMissingRequiredColumnError(t.Name(), missing...)
	}
	return nil
}
