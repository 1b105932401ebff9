package hwp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/hanjilab/hanji/cfb"
	"github.com/hanjilab/hanji/text"
)

// ParseResult is the output of one extraction strategy: flat text plus
// whatever structure the strategy could recover. All strings are copies;
// nothing references the input buffer.
type ParseResult struct {
	Text       string
	Paragraphs []string
	Tables     [][][]string
	Metadata   Metadata
	Method     string
	NoiseRatio float64
	Complete   bool
}

// Options tunes strategy execution. The zero value decodes without limits
// and accepts the first strategy that yields any text.
type Options struct {
	// MinTextLength is the acceptance bar: a strategy result is accepted
	// outright only when its text is longer than this many runes.
	MinTextLength int

	// MaxRecords caps the records decoded per section scan. Zero means
	// unlimited.
	MaxRecords int

	// MaxDecodeTime bounds one strategy's decode work. Zero means
	// unlimited.
	MaxDecodeTime time.Duration

	// Logger receives per-strategy progress events. Nil is silent.
	Logger Logger
}

func (o Options) limits() Limits {
	l := Limits{MaxRecords: o.MaxRecords}
	if o.MaxDecodeTime > 0 {
		l.Deadline = time.Now().Add(o.MaxDecodeTime)
	}
	return l
}

// Strategy is one rung of the extraction ladder. CanHandle is a cheap
// structural sniff; Extract does the work. Extract errors are absorbed by
// the orchestrator, which moves on to the next strategy.
type Strategy interface {
	Name() string
	CanHandle(data []byte) bool
	Extract(data []byte, opts Options) (*ParseResult, error)
}

// Strategy names as they appear in ParseResult.Method.
const (
	MethodDirect       = "direct body-stream decode"
	MethodConservative = "conservative record decode"
	MethodSegment      = "segment text scan"
	MethodPreview      = "preview text"
)

// DefaultStrategies returns the built-in chain in priority order, highest
// fidelity first.
func DefaultStrategies() []Strategy {
	return []Strategy{
		directStrategy{},
		conservativeStrategy{},
		segmentStrategy{},
		previewStrategy{},
	}
}

var cfbMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

func looksLikeContainer(data []byte) bool {
	return bytes.HasPrefix(data, cfbMagic)
}

// assembleResult cleans decoded paragraphs, drops the ones that were
// nothing but noise, and aggregates the noise ratio over the pre-clean
// text.
func assembleResult(method string, paras []string) *ParseResult {
	cleaned := make([]string, 0, len(paras))
	total, dropped := 0, 0
	for _, p := range paras {
		c, _ := text.Clean(p)
		before := utf8.RuneCountInString(p)
		after := utf8.RuneCountInString(c)
		total += before
		dropped += before - after
		c = strings.TrimSpace(c)
		if c != "" {
			cleaned = append(cleaned, c)
		}
	}

	res := &ParseResult{
		Text:       strings.Join(cleaned, "\n"),
		Paragraphs: cleaned,
		Method:     method,
		Complete:   true,
	}
	if total > 0 {
		res.NoiseRatio = float64(dropped) / float64(total)
	}
	return res
}

func cleanTables(tables [][][]string) [][][]string {
	for _, t := range tables {
		for _, row := range t {
			for i, cell := range row {
				c, _ := text.Clean(cell)
				row[i] = strings.TrimSpace(c)
			}
		}
	}
	return tables
}

// directStrategy is the full-fidelity path: record-parse every body
// section, assemble structural tables, read summary metadata.
type directStrategy struct{}

func (directStrategy) Name() string { return MethodDirect }

func (directStrategy) CanHandle(data []byte) bool { return looksLikeContainer(data) }

func (s directStrategy) Extract(data []byte, opts Options) (*ParseResult, error) {
	doc, err := openDocument(data)
	if err != nil {
		return nil, err
	}
	if err := doc.requireReadableBody(); err != nil {
		return nil, err
	}
	names := doc.sectionNames()
	if len(names) == 0 {
		return nil, errors.New("hwp: no body sections")
	}

	complete := true
	var paras []string
	var tables [][][]string
	limits := opts.limits()
	for _, name := range names {
		buf, ok, err := doc.sectionBytes(name)
		if err != nil {
			continue
		}
		if !ok {
			complete = false
		}
		p, t := decodeSection(buf, limits, true)
		paras = append(paras, p...)
		tables = append(tables, t...)
	}

	res := assembleResult(s.Name(), paras)
	res.Tables = cleanTables(tables)
	res.Metadata = readSummary(doc.container)
	res.Complete = complete
	return res, nil
}

// conservativeStrategy trusts as little as possible: records must look
// sane and only code points from the Hangul and printable ASCII core
// survive. No table assembly; lower yield, but it cannot be fooled into
// emitting binary garbage as text.
type conservativeStrategy struct{}

func (conservativeStrategy) Name() string { return MethodConservative }

func (conservativeStrategy) CanHandle(data []byte) bool { return looksLikeContainer(data) }

func (s conservativeStrategy) Extract(data []byte, opts Options) (*ParseResult, error) {
	doc, err := openDocument(data)
	if err != nil {
		return nil, err
	}
	if err := doc.requireReadableBody(); err != nil {
		return nil, err
	}
	names := doc.sectionNames()
	if len(names) == 0 {
		return nil, errors.New("hwp: no body sections")
	}

	complete := true
	var paras []string
	total, dropped := 0, 0
	limits := opts.limits()
	for _, name := range names {
		buf, ok, err := doc.sectionBytes(name)
		if err != nil {
			continue
		}
		if !ok {
			complete = false
		}
		p, t, d := conservativeDecode(buf, limits)
		paras = append(paras, p...)
		total += t
		dropped += d
	}

	res := &ParseResult{
		Text:       strings.Join(paras, "\n"),
		Paragraphs: paras,
		Method:     s.Name(),
		Complete:   complete,
	}
	if total > 0 {
		res.NoiseRatio = float64(dropped) / float64(total)
	}
	return res, nil
}

// conservativeDecode is an independent record walk with a strict charset:
// Hangul syllables, compatibility jamo, and printable ASCII. It returns the
// paragraphs plus the kept/dropped unit counts for the noise ratio.
func conservativeDecode(buf []byte, limits Limits) ([]string, int, int) {
	sc := NewRecordScanner(buf, limits)
	var paras []string
	var cur []rune
	total, dropped := 0, 0

	flush := func() {
		s := strings.TrimSpace(string(cur))
		cur = cur[:0]
		if s != "" {
			paras = append(paras, s)
		}
	}

	for sc.Scan() {
		rec := sc.Record()
		if !plausibleRecord(rec) {
			continue
		}
		switch rec.Tag {
		case TagParaHeader:
			flush()
		case TagParaText:
			n := len(rec.Data) / 2
			for i := 0; i < n; {
				u := binary.LittleEndian.Uint16(rec.Data[i*2:])
				if u < 0x20 {
					c := controlTable[u]
					if c.Break {
						flush()
					} else if c.Emit != 0 {
						cur = append(cur, c.Emit)
					}
					if c.Units < 1 {
						i++
					} else {
						i += c.Units
					}
					continue
				}
				i++
				total++
				switch {
				case u >= 0xAC00 && u <= 0xD7A3,
					u >= 0x3130 && u <= 0x318F,
					u >= 0x20 && u <= 0x7E:
					cur = append(cur, rune(u))
				default:
					dropped++
				}
			}
		}
	}
	flush()
	return paras, total, dropped
}

// plausibleRecord rejects records a well-formed writer would not produce.
func plausibleRecord(rec Record) bool {
	if rec.Tag < tagBegin || rec.Level > 8 {
		return false
	}
	if rec.Tag == TagParaText && len(rec.Data)%2 != 0 {
		return false
	}
	return true
}

// segmentStrategy distrusts record framing entirely: it scans decompressed
// section bytes for runs of plausible UTF-16LE text. It recovers text from
// streams whose record headers were destroyed, at the cost of all
// structure.
type segmentStrategy struct{}

func (segmentStrategy) Name() string { return MethodSegment }

func (segmentStrategy) CanHandle(data []byte) bool { return looksLikeContainer(data) }

func (s segmentStrategy) Extract(data []byte, opts Options) (*ParseResult, error) {
	doc, err := openDocument(data)
	if err != nil {
		return nil, err
	}
	if err := doc.requireReadableBody(); err != nil {
		return nil, err
	}
	names := doc.sectionNames()
	if len(names) == 0 {
		return nil, errors.New("hwp: no body sections")
	}

	complete := true
	var paras []string
	for _, name := range names {
		buf, ok, err := doc.sectionBytes(name)
		if err != nil {
			continue
		}
		if !ok {
			complete = false
		}
		paras = append(paras, scanSegments(buf)...)
	}

	res := assembleResult(s.Name(), paras)
	res.Metadata = readSummary(doc.container)
	res.Complete = complete
	return res, nil
}

// minSegmentRunes is the shortest run the segment scan keeps. Shorter runs
// are overwhelmingly record-header bytes that happen to decode as text.
const minSegmentRunes = 4

// scanSegments collects runs of consecutive printable UTF-16LE units,
// splitting each run into paragraphs on embedded line breaks.
func scanSegments(buf []byte) []string {
	var paras []string
	var run []rune

	emit := func() {
		if len(run) == 0 {
			return
		}
		for _, line := range strings.FieldsFunc(string(run), isLineBreak) {
			line = strings.TrimSpace(line)
			if utf8.RuneCountInString(line) >= minSegmentRunes {
				paras = append(paras, line)
			}
		}
		run = run[:0]
	}

	n := len(buf) / 2
	for i := 0; i < n; i++ {
		u := binary.LittleEndian.Uint16(buf[i*2:])

		if utf16.IsSurrogate(rune(u)) {
			if i+1 < n {
				r := utf16.DecodeRune(rune(u), rune(binary.LittleEndian.Uint16(buf[(i+1)*2:])))
				if r != utf8.RuneError && text.IsPrintable(r) {
					run = append(run, r)
					i++
					continue
				}
			}
			emit()
			continue
		}

		if r := rune(u); text.IsPrintable(r) {
			run = append(run, r)
			continue
		}
		emit()
	}
	emit()
	return paras
}

// previewStrategy reads the uncompressed preview stream: no structure,
// often truncated by the writing tool, but it survives damage to
// everything else.
type previewStrategy struct{}

func (previewStrategy) Name() string { return MethodPreview }

func (previewStrategy) CanHandle(data []byte) bool { return looksLikeContainer(data) }

func (s previewStrategy) Extract(data []byte, opts Options) (*ParseResult, error) {
	c, err := cfb.Open(data)
	if err != nil {
		return nil, err
	}
	raw, err := c.Stream(previewStreamName)
	if err != nil {
		return nil, err
	}

	decoded, ratio := decodePreview(raw)
	if decoded == "" {
		return nil, errors.New("hwp: empty preview stream")
	}

	var paras []string
	for _, line := range strings.Split(decoded, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paras = append(paras, line)
		}
	}

	return &ParseResult{
		Text:       decoded,
		Paragraphs: paras,
		Method:     s.Name(),
		NoiseRatio: ratio,
		Complete:   true,
	}, nil
}
