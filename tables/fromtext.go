package tables

import (
	"strings"

	"github.com/hanjilab/hanji/model"
)

// Config holds text table parsing parameters.
type Config struct {
	// Minimum number of "><" cell junctions at least one line of a group
	// must carry for the group to count as a table.
	MinJunctions int

	// Minimum number of rows for a parsed table to be kept.
	MinRows int
}

// DefaultConfig returns the default parsing configuration.
func DefaultConfig() Config {
	return Config{
		MinJunctions: 2,
		MinRows:      1,
	}
}

// Parser recovers tables from marker lines in flattened text.
type Parser struct {
	cfg Config
}

// NewParser creates a parser with default configuration.
func NewParser() *Parser {
	return NewParserWithConfig(DefaultConfig())
}

// NewParserWithConfig creates a parser with custom configuration.
func NewParserWithConfig(cfg Config) *Parser {
	return &Parser{cfg: cfg}
}

// IsTableText reports whether any line of text qualifies as a table row.
func (p *Parser) IsTableText(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if strings.Count(line, "><") >= p.cfg.MinJunctions {
			return true
		}
	}
	return false
}

// FromText parses tables out of flattened text. Consecutive marker lines
// form one table; groups that never reach MinJunctions junctions or
// MinRows rows are discarded. Returned tables are indexed in document
// order.
func (p *Parser) FromText(text string) []model.Table {
	var (
		found     []model.Table
		rows      [][]string
		qualified bool
	)
	flush := func() {
		if qualified && len(rows) >= p.cfg.MinRows {
			found = append(found, model.NewTable(len(found), normalize(rows)))
		}
		rows, qualified = nil, false
	}
	for _, line := range strings.Split(text, "\n") {
		cells := parseCells(line)
		if len(cells) == 0 {
			flush()
			continue
		}
		rows = append(rows, cells)
		if strings.Count(line, "><") >= p.cfg.MinJunctions {
			qualified = true
		}
	}
	flush()
	return found
}

// parseCells extracts the <...> cell spans of one line. Text outside
// markers is discarded, and a "<" inside an open cell restarts it.
func parseCells(line string) []string {
	var cells []string
	var cur strings.Builder
	open := false
	for _, r := range line {
		switch r {
		case '<':
			open = true
			cur.Reset()
		case '>':
			if open {
				cells = append(cells, strings.TrimSpace(cur.String()))
				open = false
			}
		default:
			if open {
				cur.WriteRune(r)
			}
		}
	}
	return cells
}

// normalize pads short rows so the grid is rectangular.
func normalize(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows
}

var defaultParser = NewParser()

// IsTableText reports whether text contains table marker lines, using the
// default configuration.
func IsTableText(text string) bool {
	return defaultParser.IsTableText(text)
}

// FromText parses tables out of flattened text using the default
// configuration.
func FromText(text string) []model.Table {
	return defaultParser.FromText(text)
}
