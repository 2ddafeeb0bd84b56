package sheet

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// HeaderIndex resolves column names against a header row. It is built once
// per run; lookups are exact string matches and the first occurrence of a
// duplicated header wins.
type HeaderIndex struct {
	header    []string
	positions map[string]int
}

func NewHeaderIndex(header []string) *HeaderIndex {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}
	return &HeaderIndex{header: header, positions: positions}
}

// Position returns the column of name, or -1.
func (h *HeaderIndex) Position(name string) int {
	if pos, ok := h.positions[name]; ok {
		return pos
	}
	return -1
}

// Missing lists the names that do not resolve, in the order given.
func (h *HeaderIndex) Missing(names ...string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := h.positions[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Width is the number of header cells.
func (h *HeaderIndex) Width() int {
	return len(h.header)
}

// Field resolves name once so that per-row reads are index lookups.
func (h *HeaderIndex) Field(name string) Field {
	return Field{Name: name, Col: h.Position(name)}
}

// Field is a resolved column. Col is -1 when the header has no such column;
// reads then return the zero value and writes are dropped.
type Field struct {
	Name string
	Col  int
}

func (f Field) Resolved() bool {
	return f.Col >= 0
}

// String returns the cell value or "".
func (f Field) String(values []string) string {
	if f.Col < 0 || f.Col >= len(values) {
		return ""
	}
	return values[f.Col]
}

// Int returns the leading integer of the cell, or 0.
func (f Field) Int(values []string) int {
	n, ok := ParseInt(f.String(values))
	if !ok {
		return 0
	}
	return n
}

// Put stores v in values when the column is resolved and in range.
func (f Field) Put(values []string, v string) {
	if f.Col < 0 || f.Col >= len(values) {
		return
	}
	values[f.Col] = v
}

// ParseInt reads an optional sign and the digits that follow leading
// whitespace, stopping at the first other character: "12 staff" is 12,
// "3.5" is 3. Values past the int range clamp to math.MaxInt or
// math.MinInt. ok is false when no digits are found.
func ParseInt(s string) (n int, ok bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}
