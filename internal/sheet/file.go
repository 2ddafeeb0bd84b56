package sheet

import "context"

// FileWorkbook is a MemoryWorkbook backed by a JSON file. Every write is
// saved before it returns, so a run that stops halfway leaves the file in
// the same state a database would be in.
type FileWorkbook struct {
	*MemoryWorkbook
	path string
}

// OpenFileWorkbook loads path written by SaveFile.
func OpenFileWorkbook(path string) (*FileWorkbook, error) {
	mem, err := LoadWorkbookFile(path)
	if err != nil {
		return nil, err
	}
	return &FileWorkbook{MemoryWorkbook: mem, path: path}, nil
}

func (w *FileWorkbook) Path() string {
	return w.path
}

func (w *FileWorkbook) Table(ctx context.Context, name string) (Table, error) {
	t, err := w.MemoryWorkbook.Table(ctx, name)
	if err != nil {
		return nil, err
	}
	return &fileTable{Table: t, wb: w}, nil
}

func (w *FileWorkbook) TableAt(ctx context.Context, position int) (Table, error) {
	t, err := w.MemoryWorkbook.TableAt(ctx, position)
	if err != nil {
		return nil, err
	}
	return &fileTable{Table: t, wb: w}, nil
}

func (w *FileWorkbook) DeleteTable(ctx context.Context, name string) error {
	if err := w.MemoryWorkbook.DeleteTable(ctx, name); err != nil {
		return err
	}
	return w.SaveFile(w.path)
}

type fileTable struct {
	Table
	wb *FileWorkbook
}

func (t *fileTable) AppendRow(ctx context.Context, values []string) (int, error) {
	n, err := t.Table.AppendRow(ctx, values)
	if err != nil {
		return 0, err
	}
	return n, t.wb.SaveFile(t.wb.path)
}

func (t *fileTable) SetCell(ctx context.Context, row, col int, value string) error {
	return t.SetCells(ctx, row, map[int]string{col: value})
}

func (t *fileTable) SetCells(ctx context.Context, row int, cells map[int]string) error {
	if err := t.Table.SetCells(ctx, row, cells); err != nil {
		return err
	}
	return t.wb.SaveFile(t.wb.path)
}
