package hanji

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hanjilab/hanji/format"
	"github.com/hanjilab/hanji/hwp"
	"github.com/hanjilab/hanji/hwpx"
	"github.com/hanjilab/hanji/model"
)

// Logger receives per-strategy progress events during extraction.
type Logger = hwp.Logger

// Extractor provides a fluent interface for extracting content from HWP and
// HWPX documents. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source (exactly one is set by the constructors)
	filename string
	src      io.Reader

	// Document bytes, buffered on first use
	data   []byte
	loaded bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		src:      e.src,
		data:     e.data,
		loaded:   e.loaded,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ensureData buffers the document bytes if not already buffered.
func (e *Extractor) ensureData() error {
	if e.loaded {
		return nil
	}

	if e.src != nil {
		data, err := io.ReadAll(e.src)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		e.data = data
		e.loaded = true
		return nil
	}

	if e.filename == "" {
		return fmt.Errorf("no input specified")
	}
	data, err := os.ReadFile(e.filename)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	e.data = data
	e.loaded = true
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// MinTextLength sets the acceptance bar for the strategy chain: a strategy
// result is accepted outright only when its text is longer than n runes.
// Shorter results stay candidates, and the longest candidate wins after the
// chain is exhausted.
//
// Example:
//
//	text, _, err := hanji.Open("memo.hwp").MinTextLength(50).Text()
func (e *Extractor) MinTextLength(n int) *Extractor {
	newExt := e.clone()
	newExt.options.minTextLength = n
	return newExt
}

// NoiseThreshold sets the noise ratio above which an encoding-recovery
// warning is attached to results. The ratio is the fraction of decoded
// characters dropped as unprintable.
//
// Example:
//
//	text, warnings, err := hanji.Open("doc.hwp").NoiseThreshold(0.05).Text()
func (e *Extractor) NoiseThreshold(ratio float64) *Extractor {
	newExt := e.clone()
	newExt.options.noiseThreshold = ratio
	return newExt
}

// MaxRecords caps the number of records decoded per body section, bounding
// work on pathological inputs. Zero means unlimited.
//
// Example:
//
//	text, _, err := hanji.Open("doc.hwp").MaxRecords(100000).Text()
func (e *Extractor) MaxRecords(n int) *Extractor {
	newExt := e.clone()
	newExt.options.maxRecords = n
	return newExt
}

// MaxDecodeTime bounds the decode work of each strategy. When the budget
// runs out the section decoded so far is kept and the result is marked
// incomplete. Zero means unlimited.
//
// Example:
//
//	text, _, err := hanji.Open("doc.hwp").MaxDecodeTime(2 * time.Second).Text()
func (e *Extractor) MaxDecodeTime(d time.Duration) *Extractor {
	newExt := e.clone()
	newExt.options.maxDecodeTime = d
	return newExt
}

// WithStrategies replaces the extraction strategy chain. Strategies run in
// argument order. The default chain is hwp.DefaultStrategies().
//
// Example:
//
//	text, _, err := hanji.Open("doc.hwp").
//	    WithStrategies(hwp.DefaultStrategies()[0]).
//	    Text()
func (e *Extractor) WithStrategies(strategies ...hwp.Strategy) *Extractor {
	newExt := e.clone()
	newExt.options.strategies = append([]hwp.Strategy(nil), strategies...)
	return newExt
}

// WithLogger routes per-strategy progress events to l. The library is
// silent by default.
//
// Example:
//
//	text, _, err := hanji.Open("doc.hwp").WithLogger(logger).Text()
func (e *Extractor) WithLogger(l Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = l
	return newExt
}

// Format sniffs the document format from its magic bytes and structure.
// The input is buffered but not decoded.
//
// Example:
//
//	f, err := hanji.Open("document.hwp").Format()
func (e *Extractor) Format() (format.Format, error) {
	if e.err != nil {
		return format.Unknown, e.err
	}
	if err := e.ensureData(); err != nil {
		return format.Unknown, err
	}
	return format.DetectFromBytes(e.data), nil
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Text extracts and returns the text content of the document, one line per
// paragraph.
//
// Returns the extracted text, any warnings encountered during processing,
// and an error if extraction failed. Warnings indicate non-fatal issues
// (e.g. noisy decode, truncated section) where extraction succeeded but
// results may be imperfect.
//
// Example:
//
//	text, warnings, err := hanji.Open("document.hwp").Text()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", hanji.FormatWarnings(warnings))
//	}
func (e *Extractor) Text() (string, []Warning, error) {
	res, warns, err := e.extract()
	if err != nil {
		return "", nil, err
	}
	return res.Text, warns, nil
}

// Document extracts content and returns a model.Document: the full text,
// classified and tagged paragraphs, tables, metadata, and statistics.
//
// Example:
//
//	doc, warnings, err := hanji.Open("document.hwp").Document()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Statistics.ParagraphCount)
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	res, warns, err := e.extract()
	if err != nil {
		return nil, nil, err
	}
	return buildDocument(res, warns), warns, nil
}

// Paragraphs extracts and returns the document's paragraphs with their
// classification, counts, and content tags.
//
// Example:
//
//	paras, _, err := hanji.Open("document.hwp").Paragraphs()
//	for _, p := range paras {
//	    fmt.Printf("[%s] %s\n", p.Type, p.Text)
//	}
func (e *Extractor) Paragraphs() ([]model.Paragraph, []Warning, error) {
	res, warns, err := e.extract()
	if err != nil {
		return nil, nil, err
	}
	return buildParagraphs(res.Paragraphs), warns, nil
}

// Tables extracts and returns the document's tables. Structural tables
// recovered by the decoder are preferred; when a strategy yields flat text
// only, tables are recovered from cell marker lines in the text.
//
// Example:
//
//	tables, _, err := hanji.Open("document.hwp").Tables()
//	for _, t := range tables {
//	    fmt.Println(t.ToMarkdown())
//	}
func (e *Extractor) Tables() ([]model.Table, []Warning, error) {
	res, warns, err := e.extract()
	if err != nil {
		return nil, nil, err
	}
	return buildTables(res), warns, nil
}

// Metadata extracts and returns the document properties. Every field is
// optional; a document without a summary stream yields zero metadata and no
// error.
//
// Example:
//
//	meta, _, err := hanji.Open("document.hwp").Metadata()
//	fmt.Println(meta.Title, meta.Author)
func (e *Extractor) Metadata() (*model.Metadata, []Warning, error) {
	res, warns, err := e.extract()
	if err != nil {
		return nil, nil, err
	}
	meta := buildMetadata(res)
	return &meta, warns, nil
}

// Markdown extracts content and returns it as a markdown-formatted string:
// headings become heading lines, list items become bullet lines, and tables
// become pipe grids.
//
// Example:
//
//	md, warnings, err := hanji.Open("document.hwp").Markdown()
func (e *Extractor) Markdown() (string, []Warning, error) {
	doc, warns, err := e.Document()
	if err != nil {
		return "", warns, err
	}
	return doc.Markdown(), warns, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// extract buffers the input, routes it to the HWPX reader or the HWP
// strategy chain, and derives the warnings for the result.
func (e *Extractor) extract() (*hwp.ParseResult, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	if err := e.ensureData(); err != nil {
		return nil, nil, err
	}

	var res *hwp.ParseResult
	var err error
	if bytes.HasPrefix(e.data, zipMagic) {
		res, err = hwpx.Extract(e.data)
		if errors.Is(err, hwpx.ErrNotHWPX) {
			return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
	} else {
		orch := hwp.NewOrchestrator(e.options.strategies)
		res, err = orch.Extract(e.data, e.options.hwpOptions())
	}
	if err != nil {
		return nil, nil, err
	}

	return res, collectWarnings(res, e.options), nil
}
