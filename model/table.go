package model

import (
	"encoding/csv"
	"strings"
)

// Table is one extracted table as a dense row-major grid of cell text.
type Table struct {
	Index    int        `json:"index"`
	Rows     [][]string `json:"rows"`
	RowCount int        `json:"row_count"`
	ColCount int        `json:"col_count"`
}

// NewTable builds a table from its rows, deriving the counts.
func NewTable(index int, rows [][]string) Table {
	t := Table{Index: index, Rows: rows, RowCount: len(rows)}
	if len(rows) > 0 {
		t.ColCount = len(rows[0])
	}
	return t
}

// Cell returns the cell text at row, col, or "" when out of range.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// ToMarkdown renders the table as a GitHub-flavored markdown pipe grid with
// the first row as the header.
func (t Table) ToMarkdown() string {
	if len(t.Rows) == 0 {
		return ""
	}
	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for _, c := range cells {
			sb.WriteString(" ")
			sb.WriteString(escapeCell(c))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(t.Rows[0])
	sb.WriteString("|")
	for range t.Rows[0] {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, row := range t.Rows[1:] {
		writeRow(row)
	}
	return sb.String()
}

// escapeCell keeps pipe grids intact for cells containing pipes or line
// breaks.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", "<br>")
}

// ToCSV renders the table as RFC 4180 CSV.
func (t Table) ToCSV() (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}
