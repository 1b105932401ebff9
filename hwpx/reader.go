package hwpx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"

	"github.com/hanjilab/hanji/hwp"
)

// Method identifies hwpx extraction in ParseResult.Method and in the
// parsing_method output field.
const Method = "hwpx xml decode"

// ErrNotHWPX is returned when the input is not an HWPX package: not a zip
// archive, or a zip archive without the package markers.
var ErrNotHWPX = errors.New("hwpx: not an hwpx package")

const (
	mimetypeEntry = "mimetype"
	packageMime   = "application/hwp+zip"
	versionEntry  = "version.xml"
	contentsDir   = "Contents/"
	sectionPrefix = "Contents/section"
	sectionSuffix = ".xml"
)

// metadataEntries are scanned in order; the first value found for a field
// wins.
var metadataEntries = []string{"Contents/content.hpf", "Contents/meta.xml"}

// Reader provides access to one HWPX package.
type Reader struct {
	zr *zip.Reader
}

// Open interprets data as an HWPX package. It fails with an error wrapping
// [ErrNotHWPX] when data is not a zip archive or the archive lacks the
// package markers.
func Open(data []byte) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotHWPX, err)
	}
	r := &Reader{zr: zr}
	if !r.isPackage() {
		return nil, fmt.Errorf("%w: no package markers", ErrNotHWPX)
	}
	return r, nil
}

// Extract opens data as an HWPX package and decodes it in one step.
func Extract(data []byte) (*hwp.ParseResult, error) {
	r, err := Open(data)
	if err != nil {
		return nil, err
	}
	return r.Extract()
}

// Extract decodes body paragraphs, tables and document properties from the
// package. Sections that fail to parse are skipped and mark the result
// incomplete.
func (r *Reader) Extract() (*hwp.ParseResult, error) {
	names := r.sectionNames()
	if len(names) == 0 {
		return nil, errors.New("hwpx: no content sections")
	}

	var paras []string
	var tables [][][]string
	complete := true
	for _, name := range names {
		root, err := r.parseEntry(name)
		if err != nil {
			complete = false
			continue
		}
		paras = append(paras, bodyParagraphs(root)...)
		tables = append(tables, sectionTables(root)...)
	}

	return &hwp.ParseResult{
		Text:       strings.Join(paras, "\n"),
		Paragraphs: paras,
		Tables:     tables,
		Metadata:   r.metadata(),
		Method:     Method,
		Complete:   complete,
	}, nil
}

// isPackage checks the OWPML markers: a declared mime type, or the
// version.xml plus Contents/ layout used by writers that omit the mimetype
// entry.
func (r *Reader) isPackage() bool {
	var hasVersion, hasContents bool
	for _, f := range r.zr.File {
		switch {
		case f.Name == mimetypeEntry:
			if data, err := r.file(mimetypeEntry); err == nil &&
				strings.Contains(string(data), packageMime) {
				return true
			}
		case f.Name == versionEntry:
			hasVersion = true
		case strings.HasPrefix(f.Name, contentsDir):
			hasContents = true
		}
	}
	return hasVersion && hasContents
}

// file reads one archive entry whole.
func (r *Reader) file(name string) ([]byte, error) {
	for _, f := range r.zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("hwpx: no %s entry", name)
}

// sectionNames lists the Contents/section*.xml entries in numeric order.
// Entries with a non-numeric index are not sections and are skipped.
func (r *Reader) sectionNames() []string {
	var names []string
	for _, f := range r.zr.File {
		if sectionIndex(f.Name) < 0 {
			continue
		}
		names = append(names, f.Name)
	}
	sort.Slice(names, func(i, j int) bool {
		return sectionIndex(names[i]) < sectionIndex(names[j])
	})
	return names
}

// sectionIndex extracts the numeric index from a section entry name, or -1
// when the name is not a section entry.
func sectionIndex(name string) int {
	if !strings.HasPrefix(name, sectionPrefix) || !strings.HasSuffix(name, sectionSuffix) {
		return -1
	}
	n, err := strconv.Atoi(name[len(sectionPrefix) : len(name)-len(sectionSuffix)])
	if err != nil || n < 0 {
		return -1
	}
	return n
}

func (r *Reader) parseEntry(name string) (*xmlquery.Node, error) {
	data, err := r.file(name)
	if err != nil {
		return nil, err
	}
	return xmlquery.Parse(bytes.NewReader(data))
}

// bodyParagraphs returns the text of every paragraph in the body flow.
// Paragraphs inside tables belong to their cells, and text runs under a
// table anchored inline in a paragraph belong to that table, so both are
// excluded here.
func bodyParagraphs(root *xmlquery.Node) []string {
	var paras []string
	for _, p := range xmlquery.Find(root, "//hp:p[not(ancestor::hp:tbl)]") {
		text := strings.TrimSpace(runText(p, ".//hp:t[not(ancestor::hp:tbl)]"))
		if text == "" {
			continue
		}
		paras = append(paras, text)
	}
	return paras
}

// sectionTables collects every table grid in the section in document
// order. Rows and cells are direct children, so a nested table contributes
// its own grid without disturbing the enclosing one.
func sectionTables(root *xmlquery.Node) [][][]string {
	var tables [][][]string
	for _, tbl := range xmlquery.Find(root, "//hp:tbl") {
		var grid [][]string
		for _, tr := range xmlquery.Find(tbl, "hp:tr") {
			var row []string
			for _, tc := range xmlquery.Find(tr, "hp:tc") {
				row = append(row, cellText(tc))
			}
			if len(row) > 0 {
				grid = append(grid, row)
			}
		}
		if len(grid) > 0 {
			tables = append(tables, grid)
		}
	}
	return tables
}

// cellText joins a cell's paragraphs with newlines.
func cellText(tc *xmlquery.Node) string {
	var parts []string
	for _, p := range xmlquery.Find(tc, ".//hp:p") {
		parts = append(parts, runText(p, ".//hp:t"))
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// runText concatenates the text runs selected by expr under n.
func runText(n *xmlquery.Node, expr string) string {
	var sb strings.Builder
	for _, t := range xmlquery.Find(n, expr) {
		sb.WriteString(t.InnerText())
	}
	return sb.String()
}

// metadata scans the package manifests for document properties. Manifests
// store Dublin Core style elements under vendor namespaces that vary by
// writer version, so fields are matched by local name.
func (r *Reader) metadata() hwp.Metadata {
	var meta hwp.Metadata
	for _, name := range metadataEntries {
		root, err := r.parseEntry(name)
		if err != nil {
			continue
		}
		collectMeta(root, &meta)
	}
	return meta
}

func collectMeta(root *xmlquery.Node, meta *hwp.Metadata) {
	set := func(dst *string, local string) {
		if *dst != "" {
			return
		}
		if n := findLocal(root, local); n != nil {
			*dst = strings.TrimSpace(n.InnerText())
		}
	}
	set(&meta.Title, "title")
	set(&meta.Subject, "subject")
	set(&meta.Author, "creator")
	set(&meta.Author, "author")
	set(&meta.Keywords, "keywords")
	setTime(&meta.Created, root, "created")
	setTime(&meta.Modified, root, "modified")
}

func setTime(dst *time.Time, root *xmlquery.Node, local string) {
	if !dst.IsZero() {
		return
	}
	if n := findLocal(root, local); n != nil {
		*dst = parseManifestTime(strings.TrimSpace(n.InnerText()))
	}
}

func findLocal(root *xmlquery.Node, local string) *xmlquery.Node {
	return xmlquery.FindOne(root, "//*[local-name()='"+local+"']")
}

// parseManifestTime accepts the timestamp shapes seen in package
// manifests. Unparseable values come back zero.
func parseManifestTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
