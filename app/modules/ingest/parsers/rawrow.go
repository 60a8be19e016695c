package parsers

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// RawRow is one data line of an uploaded sheet: column label -> cell text as the source held
// it. Labels are matched exactly (case and inner spacing matter). Typed reads go through the
// accessors below, which apply the parse-or-default policy in one place.
type RawRow struct {
	// Line is the 1-based line number in the source sheet, header included.
	Line   int
	cells  map[string]string
	header map[string]bool
}

// NewRawRow builds a row from a label -> value map.
func NewRawRow(line int, cells map[string]string) RawRow {
	if cells == nil {
		cells = map[string]string{}
	}
	return RawRow{Line: line, cells: cells}
}

// Has reports whether the column had a cell on this line.
func (r RawRow) Has(column string) bool {
	_, ok := r.cells[column]
	return ok
}

// Text returns the cell text, or "" when the column is absent.
func (r RawRow) Text(column string) string {
	return r.cells[column]
}

// Int parses the cell as a number rounded to the nearest integer. Missing, empty or
// non-numeric cells yield 0 with defaulted set.
func (r RawRow) Int(column string) (value int, defaulted bool) {
	return parseIntOrDefault(r.cells[column])
}

// Rank is Int that also accepts ordinal labels such as "1st" or "22nd".
func (r RawRow) Rank(column string) (value int, defaulted bool) {
	s := strings.TrimSpace(r.cells[column])
	lower := strings.ToLower(s)
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if len(lower) > len(suffix) && strings.HasSuffix(lower, suffix) {
			s = s[:len(s)-len(suffix)]
			break
		}
	}
	return parseIntOrDefault(s)
}

// InHeader reports whether the sheet's header carried the label, even when this line was too
// short to hold a cell for it. Rows built without a header fall back to Has.
func (r RawRow) InHeader(column string) bool {
	if r.header == nil {
		return r.Has(column)
	}
	return r.header[column]
}

// Columns lists the labels present on this row, sorted.
func (r RawRow) Columns() []string {
	cols := make([]string, 0, len(r.cells))
	for c := range r.cells {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

func parseIntOrDefault(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, true
	}
	return int(math.Round(f)), false
}

// rowsToRawRows turns a grid whose first non-blank line is the header into RawRows. Blank
// lines are skipped; every other line is kept in source order. Cells under an empty header
// label are ignored, and the first occurrence of a duplicated label wins.
func rowsToRawRows(grid [][]string) []RawRow {
	headerIdx := -1
	for i, row := range grid {
		if !isBlank(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return []RawRow{}
	}

	header := make([]string, len(grid[headerIdx]))
	seen := make(map[string]bool, len(header))
	for i, label := range grid[headerIdx] {
		label = strings.TrimSpace(strings.TrimPrefix(label, "\ufeff"))
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		header[i] = label
	}

	rows := make([]RawRow, 0, len(grid)-headerIdx-1)
	for i := headerIdx + 1; i < len(grid); i++ {
		line := grid[i]
		if isBlank(line) {
			continue
		}
		cells := make(map[string]string, len(header))
		for col, label := range header {
			if label == "" || col >= len(line) {
				continue
			}
			cells[label] = line[col]
		}
		row := NewRawRow(i+1, cells)
		row.header = seen
		rows = append(rows, row)
	}
	return rows
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
