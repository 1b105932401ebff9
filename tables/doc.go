// Package tables recovers tabular data from flattened document text.
//
// Structural tables are assembled during record decoding, where cell
// boundaries are known exactly. The fallback extraction strategies lose
// that structure and table contents survive only as marker lines in the
// text flow:
//
//	<이름><직책><연락처>
//	<홍길동><과장><010-1234-5678>
//
// Each <...> span is one cell. This package parses tables back out of
// that flattened form.
//
// # Parsing
//
// [FromText] scans text line by line. Consecutive lines carrying cell
// markers are grouped into one table, and any other line closes the
// current group. A group is kept only when at least one of its lines has
// two or more "><" cell junctions, which filters out prose that merely
// uses angle brackets. Rows within a group may carry different cell
// counts; shorter rows are padded with empty cells so every parsed table
// is rectangular.
//
// # Configuration
//
// Parsing thresholds are controlled by [Config]:
//
//	cfg := tables.DefaultConfig()
//	cfg.MinRows = 2
//	p := tables.NewParserWithConfig(cfg)
//	found := p.FromText(text)
package tables
