// Package sheet is the row-oriented table store the intake pipeline reads
// and writes. Rows are numbered from 1 like a spreadsheet, columns from 0.
// Every table has one header row; rows above it are titles and rows below
// it are data.
package sheet

import (
	"context"
	"errors"
)

var (
	ErrTableNotFound  = errors.New("sheet: table not found")
	ErrRowOutOfRange  = errors.New("sheet: row out of range")
	ErrColumnNegative = errors.New("sheet: column index is negative")
	ErrAppendConflict = errors.New("sheet: concurrent append to the same table")
)

// Row is one data row and its position in the table.
type Row struct {
	Number int
	Values []string
}

// Table is the store interface the pipeline needs from a collaborator.
type Table interface {
	Name() string
	HeaderRowNumber() int
	HeaderRow(ctx context.Context) ([]string, error)
	// Rows returns the data rows below the header, in ascending order.
	Rows(ctx context.Context) ([]Row, error)
	LastRow(ctx context.Context) (int, error)
	// AppendRow writes values after the last row and returns its number.
	AppendRow(ctx context.Context, values []string) (int, error)
	SetCell(ctx context.Context, row, col int, value string) error
	// SetCells writes several cells of one row in a single step.
	SetCells(ctx context.Context, row int, cells map[int]string) error
}

// Workbook resolves tables by name or by position.
type Workbook interface {
	Table(ctx context.Context, name string) (Table, error)
	TableAt(ctx context.Context, position int) (Table, error)
	DeleteTable(ctx context.Context, name string) error
}

func padRow(values []string, width int) []string {
	if len(values) >= width {
		return values
	}
	out := make([]string, width)
	copy(out, values)
	return out
}
