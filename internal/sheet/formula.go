package sheet

import (
	"fmt"
	"sort"
	"strings"
)

// ColumnLetter converts a 0-based column index to its A1 letters.
func ColumnLetter(col int) string {
	if col < 0 {
		return ""
	}
	var b []byte
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

// SumFormula returns a formula that sums cols on the given row, as a range
// when the columns are contiguous ("=SUM(V5:AC5)") and as a list otherwise.
func SumFormula(row int, cols []int) string {
	if len(cols) == 0 || row < 1 {
		return ""
	}
	sorted := append([]int(nil), cols...)
	sort.Ints(sorted)

	contiguous := true
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			contiguous = false
			break
		}
	}

	if contiguous {
		return fmt.Sprintf("=SUM(%s%d:%s%d)",
			ColumnLetter(sorted[0]), row, ColumnLetter(sorted[len(sorted)-1]), row)
	}

	refs := make([]string, len(sorted))
	for i, c := range sorted {
		refs[i] = fmt.Sprintf("%s%d", ColumnLetter(c), row)
	}
	return "=SUM(" + strings.Join(refs, ",") + ")"
}
