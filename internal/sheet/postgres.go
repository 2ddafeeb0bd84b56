package sheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sheets (
	name       TEXT PRIMARY KEY,
	position   INTEGER NOT NULL,
	header_row INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE IF NOT EXISTS sheet_rows (
	sheet_name TEXT NOT NULL REFERENCES sheets(name) ON DELETE CASCADE,
	row_number INTEGER NOT NULL,
	cells      JSONB NOT NULL DEFAULT '[]'::jsonb,
	PRIMARY KEY (sheet_name, row_number)
);`

const uniqueViolation = "23505"

// PostgresWorkbook stores each table as numbered JSONB rows.
type PostgresWorkbook struct {
	db *sql.DB
}

func NewPostgresWorkbook(db *sql.DB) *PostgresWorkbook {
	return &PostgresWorkbook{db: db}
}

// EnsureSchema creates the sheets and sheet_rows tables when absent.
func (w *PostgresWorkbook) EnsureSchema(ctx context.Context) error {
	if _, err := w.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create sheet schema: %w", err)
	}
	return nil
}

func (w *PostgresWorkbook) Table(ctx context.Context, name string) (Table, error) {
	var t PostgresTable
	err := w.db.QueryRowContext(ctx,
		`SELECT name, header_row FROM sheets WHERE name = $1`, name,
	).Scan(&t.name, &t.headerRow)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup sheet %s: %w", name, err)
	}
	t.db = w.db
	return &t, nil
}

func (w *PostgresWorkbook) TableAt(ctx context.Context, position int) (Table, error) {
	if position < 0 {
		return nil, fmt.Errorf("%w: position %d", ErrTableNotFound, position)
	}
	var t PostgresTable
	err := w.db.QueryRowContext(ctx,
		`SELECT name, header_row FROM sheets ORDER BY position, name OFFSET $1 LIMIT 1`, position,
	).Scan(&t.name, &t.headerRow)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: position %d", ErrTableNotFound, position)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup sheet at %d: %w", position, err)
	}
	t.db = w.db
	return &t, nil
}

func (w *PostgresWorkbook) DeleteTable(ctx context.Context, name string) error {
	res, err := w.db.ExecContext(ctx, `DELETE FROM sheets WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete sheet %s: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return nil
}

// PostgresTable is one row of the sheets table.
type PostgresTable struct {
	db        *sql.DB
	name      string
	headerRow int
}

func (t *PostgresTable) Name() string {
	return t.name
}

func (t *PostgresTable) HeaderRowNumber() int {
	return t.headerRow
}

func (t *PostgresTable) HeaderRow(ctx context.Context) ([]string, error) {
	var raw []byte
	err := t.db.QueryRowContext(ctx,
		`SELECT cells FROM sheet_rows WHERE sheet_name = $1 AND row_number = $2`,
		t.name, t.headerRow,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", t.name, err)
	}
	return decodeCells(raw)
}

func (t *PostgresTable) Rows(ctx context.Context) ([]Row, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT row_number, cells FROM sheet_rows
		 WHERE sheet_name = $1 AND row_number > $2
		 ORDER BY row_number`,
		t.name, t.headerRow,
	)
	if err != nil {
		return nil, fmt.Errorf("read rows of %s: %w", t.name, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			r   Row
			raw []byte
		)
		if err := rows.Scan(&r.Number, &raw); err != nil {
			return nil, fmt.Errorf("scan row of %s: %w", t.name, err)
		}
		if r.Values, err = decodeCells(raw); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", t.name, r.Number, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (t *PostgresTable) LastRow(ctx context.Context) (int, error) {
	var last int
	err := t.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(row_number), 0) FROM sheet_rows WHERE sheet_name = $1`, t.name,
	).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("last row of %s: %w", t.name, err)
	}
	return last, nil
}

func (t *PostgresTable) AppendRow(ctx context.Context, values []string) (int, error) {
	cells, err := json.Marshal(nonNil(values))
	if err != nil {
		return 0, fmt.Errorf("encode row for %s: %w", t.name, err)
	}

	var number int
	err = t.db.QueryRowContext(ctx,
		`INSERT INTO sheet_rows (sheet_name, row_number, cells)
		 SELECT $1, COALESCE(MAX(row_number), 0) + 1, $2::jsonb
		 FROM sheet_rows WHERE sheet_name = $1
		 RETURNING row_number`,
		t.name, string(cells),
	).Scan(&number)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, fmt.Errorf("%w: %s", ErrAppendConflict, t.name)
		}
		return 0, fmt.Errorf("append to %s: %w", t.name, err)
	}
	return number, nil
}

func (t *PostgresTable) SetCell(ctx context.Context, row, col int, value string) error {
	return t.SetCells(ctx, row, map[int]string{col: value})
}

func (t *PostgresTable) SetCells(ctx context.Context, row int, cells map[int]string) error {
	width := 0
	for col := range cells {
		if col < 0 {
			return ErrColumnNegative
		}
		if col+1 > width {
			width = col + 1
		}
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update of %s: %w", t.name, err)
	}
	defer tx.Rollback()

	var raw []byte
	err = tx.QueryRowContext(ctx,
		`SELECT cells FROM sheet_rows WHERE sheet_name = $1 AND row_number = $2 FOR UPDATE`,
		t.name, row,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s row %d", ErrRowOutOfRange, t.name, row)
	}
	if err != nil {
		return fmt.Errorf("read %s row %d: %w", t.name, row, err)
	}

	values, err := decodeCells(raw)
	if err != nil {
		return fmt.Errorf("%s row %d: %w", t.name, row, err)
	}
	values = padRow(values, width)
	for col, v := range cells {
		values[col] = v
	}

	encoded, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode %s row %d: %w", t.name, row, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE sheet_rows SET cells = $3::jsonb WHERE sheet_name = $1 AND row_number = $2`,
		t.name, row, string(encoded),
	); err != nil {
		return fmt.Errorf("update %s row %d: %w", t.name, row, err)
	}
	return tx.Commit()
}

// decodeCells accepts strings, numbers, booleans and nulls so rows loaded
// by other tools still read as text.
func decodeCells(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode cells: %w", err)
	}
	out := make([]string, len(items))
	for i, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out[i] = s
			continue
		}
		out[i] = string(item)
	}
	return out, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
