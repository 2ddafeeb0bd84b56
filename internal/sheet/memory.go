package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// MemoryWorkbook keeps tables in process. It backs the CLI's file mode and
// the tests.
type MemoryWorkbook struct {
	mu     sync.Mutex
	tables []*MemoryTable
}

func NewMemoryWorkbook() *MemoryWorkbook {
	return &MemoryWorkbook{}
}

// AddTable appends a table at the next position. headerRow is the 1-based
// number of the header row within rows.
func (w *MemoryWorkbook) AddTable(name string, headerRow int, rows ...[]string) *MemoryTable {
	w.mu.Lock()
	defer w.mu.Unlock()

	if headerRow < 1 {
		headerRow = 1
	}
	t := &MemoryTable{mu: &w.mu, name: name, headerRow: headerRow}
	for _, r := range rows {
		t.rows = append(t.rows, append([]string(nil), r...))
	}
	w.tables = append(w.tables, t)
	return t
}

func (w *MemoryWorkbook) Table(_ context.Context, name string) (Table, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, t := range w.tables {
		if t.name == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
}

func (w *MemoryWorkbook) TableAt(_ context.Context, position int) (Table, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if position < 0 || position >= len(w.tables) {
		return nil, fmt.Errorf("%w: position %d", ErrTableNotFound, position)
	}
	return w.tables[position], nil
}

func (w *MemoryWorkbook) DeleteTable(_ context.Context, name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, t := range w.tables {
		if t.name == name {
			w.tables = append(w.tables[:i], w.tables[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrTableNotFound, name)
}

// Names lists table names in position order.
func (w *MemoryWorkbook) Names() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	names := make([]string, len(w.tables))
	for i, t := range w.tables {
		names[i] = t.name
	}
	return names
}

// MemoryTable shares its workbook's lock.
type MemoryTable struct {
	mu        *sync.Mutex
	name      string
	headerRow int
	rows      [][]string
}

func (t *MemoryTable) Name() string {
	return t.name
}

func (t *MemoryTable) HeaderRowNumber() int {
	return t.headerRow
}

func (t *MemoryTable) HeaderRow(_ context.Context) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.headerRow > len(t.rows) {
		return []string{}, nil
	}
	return append([]string(nil), t.rows[t.headerRow-1]...), nil
}

func (t *MemoryTable) Rows(_ context.Context) ([]Row, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []Row
	for i := t.headerRow; i < len(t.rows); i++ {
		out = append(out, Row{Number: i + 1, Values: append([]string(nil), t.rows[i]...)})
	}
	return out, nil
}

func (t *MemoryTable) LastRow(_ context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows), nil
}

func (t *MemoryTable) AppendRow(_ context.Context, values []string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, append([]string(nil), values...))
	return len(t.rows), nil
}

func (t *MemoryTable) SetCell(ctx context.Context, row, col int, value string) error {
	return t.SetCells(ctx, row, map[int]string{col: value})
}

func (t *MemoryTable) SetCells(_ context.Context, row int, cells map[int]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if row < 1 || row > len(t.rows) {
		return fmt.Errorf("%w: %s row %d", ErrRowOutOfRange, t.name, row)
	}
	width := 0
	for col := range cells {
		if col < 0 {
			return ErrColumnNegative
		}
		if col+1 > width {
			width = col + 1
		}
	}
	values := padRow(t.rows[row-1], width)
	for col, v := range cells {
		values[col] = v
	}
	t.rows[row-1] = values
	return nil
}

// Cell returns the raw value at row, col, or "".
func (t *MemoryTable) Cell(row, col int) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if row < 1 || row > len(t.rows) || col < 0 || col >= len(t.rows[row-1]) {
		return ""
	}
	return t.rows[row-1][col]
}

type workbookFile struct {
	Sheets []sheetFile `json:"sheets"`
}

type sheetFile struct {
	Name      string     `json:"name"`
	HeaderRow int        `json:"headerRow"`
	Rows      [][]string `json:"rows"`
}

// LoadWorkbookFile reads a workbook saved by SaveFile.
func LoadWorkbookFile(path string) (*MemoryWorkbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", path, err)
	}
	var f workbookFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse workbook %s: %w", path, err)
	}

	w := NewMemoryWorkbook()
	for _, s := range f.Sheets {
		w.AddTable(s.Name, s.HeaderRow, s.Rows...)
	}
	return w, nil
}

// SaveFile writes the workbook as JSON, replacing path atomically.
func (w *MemoryWorkbook) SaveFile(path string) error {
	w.mu.Lock()
	f := workbookFile{Sheets: make([]sheetFile, 0, len(w.tables))}
	for _, t := range w.tables {
		rows := make([][]string, len(t.rows))
		for i, r := range t.rows {
			rows[i] = append([]string(nil), r...)
		}
		f.Sheets = append(f.Sheets, sheetFile{Name: t.name, HeaderRow: t.headerRow, Rows: rows})
	}
	w.mu.Unlock()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode workbook: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".workbook-*.json")
	if err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save workbook: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
