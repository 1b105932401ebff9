package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Document is the complete result of one extraction.
type Document struct {
	Text          string      `json:"text"`
	Paragraphs    []Paragraph `json:"paragraphs"`
	Tables        []Table     `json:"tables"`
	Metadata      Metadata    `json:"metadata"`
	Statistics    Statistics  `json:"statistics"`
	ParsingMethod string      `json:"parsing_method"`
	Warnings      []string    `json:"warnings"`
	ExtractedAt   time.Time   `json:"extracted_at"`
}

// Metadata contains document-level properties. Every field is optional;
// absence is not an error.
type Metadata struct {
	Title        string     `json:"title,omitempty"`
	Subject      string     `json:"subject,omitempty"`
	Author       string     `json:"author,omitempty"`
	Keywords     string     `json:"keywords,omitempty"`
	CreatedDate  *time.Time `json:"created_date,omitempty"`
	ModifiedDate *time.Time `json:"modified_date,omitempty"`
	Language     string     `json:"language,omitempty"`
}

// IsZero reports whether no metadata field is set.
func (m Metadata) IsZero() bool {
	return m == Metadata{}
}

// Statistics summarizes the extracted content.
type Statistics struct {
	CharCount      int                `json:"char_count"`
	WordCount      int                `json:"word_count"`
	ParagraphCount int                `json:"paragraph_count"`
	TableCount     int                `json:"table_count"`
	ScriptRatios   map[string]float64 `json:"script_ratios"`
}

// JSON serializes the document with stable formatting. Identical documents
// produce byte-identical output: struct fields keep declaration order and
// encoding/json writes map keys sorted.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Markdown renders the document as GitHub-flavored markdown. Titles and
// headings become heading lines, list items become bullet lines, and tables
// follow the paragraph flow as pipe grids.
func (d *Document) Markdown() string {
	var sb strings.Builder

	if t := d.Metadata.Title; t != "" {
		sb.WriteString("# ")
		sb.WriteString(t)
		sb.WriteString("\n\n")
	}

	for i, p := range d.Paragraphs {
		switch p.Type {
		case ParagraphTitle:
			sb.WriteString("# ")
			sb.WriteString(p.Text)
		case ParagraphHeading:
			sb.WriteString("## ")
			sb.WriteString(p.Text)
		case ParagraphListItem:
			sb.WriteString("- ")
			sb.WriteString(strings.TrimLeft(p.Text, bulletMarkers))
		default:
			sb.WriteString(p.Text)
		}
		// Consecutive list items stay in one markdown list.
		if i+1 < len(d.Paragraphs) && p.Type.isList() && d.Paragraphs[i+1].Type.isList() {
			sb.WriteString("\n")
		} else {
			sb.WriteString("\n\n")
		}
	}

	for _, t := range d.Tables {
		sb.WriteString(t.ToMarkdown())
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}
