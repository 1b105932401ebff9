// Package model provides the output types for extracted document content.
//
// This package defines the user-facing data structures every extraction
// ultimately produces, making them the primary API for consuming extracted
// content. A [Document] is built once per extraction and never mutated
// afterwards; all of its fields are plain values safe to share across
// goroutines.
//
// # Document Structure
//
// The [Document] type carries the flat text, the structured paragraphs and
// tables, document [Metadata], derived [Statistics], and provenance (the
// parsing method that produced it, warnings, and the extraction timestamp):
//
//	doc, _, err := hanji.Open("report.hwp").Document()
//	for _, p := range doc.Paragraphs {
//	    fmt.Println(p.Type, p.Text)
//	}
//
// # Serialization
//
// The JSON shape is stable: snake_case keys, optional metadata fields
// omitted when empty, script ratios with a fixed key set. Identical
// documents marshal to byte-identical JSON.
//
// # Export
//
// [Document.Markdown] renders the whole document as GitHub-flavored
// markdown; [Table.ToMarkdown] and [Table.ToCSV] export single tables.
package model
