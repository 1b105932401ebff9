// build.go assembles the public document model out of a raw parse result.
package hanji

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hanjilab/hanji/hwp"
	"github.com/hanjilab/hanji/layout"
	"github.com/hanjilab/hanji/model"
	"github.com/hanjilab/hanji/tables"
	"github.com/hanjilab/hanji/text"
)

// timeNow stamps documents with their extraction time. A package var so
// tests can pin the clock and assert byte-identical output.
var timeNow = time.Now

// buildDocument aggregates a parse result into the public document model:
// classified paragraphs, tables, metadata, statistics, and provenance.
func buildDocument(res *hwp.ParseResult, warns []Warning) *model.Document {
	doc := &model.Document{
		Text:          res.Text,
		Paragraphs:    buildParagraphs(res.Paragraphs),
		Tables:        buildTables(res),
		Metadata:      buildMetadata(res),
		ParsingMethod: res.Method,
		Warnings:      make([]string, 0, len(warns)),
		ExtractedAt:   timeNow().UTC(),
	}
	for _, w := range warns {
		doc.Warnings = append(doc.Warnings, w.String())
	}
	doc.Statistics = model.Statistics{
		CharCount:      utf8.RuneCountInString(doc.Text),
		WordCount:      len(strings.Fields(doc.Text)),
		ParagraphCount: len(doc.Paragraphs),
		TableCount:     len(doc.Tables),
		ScriptRatios:   text.ScriptRatios(doc.Text),
	}
	return doc
}

// buildParagraphs classifies and tags raw paragraph strings.
func buildParagraphs(paras []string) []model.Paragraph {
	types := layout.ClassifyAll(paras)
	out := make([]model.Paragraph, len(paras))
	for i, p := range paras {
		out[i] = model.Paragraph{
			Index:     i,
			Text:      p,
			Type:      types[i],
			CharCount: utf8.RuneCountInString(p),
			WordCount: len(strings.Fields(p)),
			Tags:      layout.Tag(p),
		}
	}
	return out
}

// buildTables prefers tables the decoder recovered structurally. When a
// strategy yields text only, cell marker lines in the text are parsed
// instead. Never nil, keeping serialized output stable.
func buildTables(res *hwp.ParseResult) []model.Table {
	if len(res.Tables) > 0 {
		out := make([]model.Table, 0, len(res.Tables))
		for i, rows := range res.Tables {
			out = append(out, model.NewTable(i, rows))
		}
		return out
	}
	if out := tables.FromText(res.Text); out != nil {
		return out
	}
	return []model.Table{}
}

// buildMetadata converts decoder metadata into the public shape and adds
// the language hint derived from the text's script ratios.
func buildMetadata(res *hwp.ParseResult) model.Metadata {
	m := model.Metadata{
		Title:    res.Metadata.Title,
		Subject:  res.Metadata.Subject,
		Author:   res.Metadata.Author,
		Keywords: res.Metadata.Keywords,
		Language: text.DominantLanguage(res.Text),
	}
	if !res.Metadata.Created.IsZero() {
		t := res.Metadata.Created.UTC()
		m.CreatedDate = &t
	}
	if !res.Metadata.Modified.IsZero() {
		t := res.Metadata.Modified.UTC()
		m.ModifiedDate = &t
	}
	return m
}
