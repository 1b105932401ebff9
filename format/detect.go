// Package format provides file format detection for the hanji library.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/hanjilab/hanji/cfb"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// HWP indicates a binary HWP v5 document, stored in a compound file
	// container.
	HWP
	// HWPX indicates an OWPML document, stored in a zip archive.
	HWPX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case HWP:
		return "HWP"
	case HWPX:
		return "HWPX"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case HWP:
		return ".hwp"
	case HWPX:
		return ".hwpx"
	default:
		return ""
	}
}

var (
	// cfbMagic opens every compound file container.
	cfbMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	// zipMagic is the zip local file header signature.
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	// hwpSignature prefixes the FileHeader stream of every HWP v5 document.
	hwpSignature = []byte("HWP Document File")
)

// hwpxMimetype is the package mime type OWPML archives declare.
const hwpxMimetype = "application/hwp+zip"

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hwp":
		return HWP
	case ".hwpx":
		return HWPX
	default:
		return Unknown
	}
}

// DetectFromMagic checks file magic bytes to determine format. A compound
// file signature is reported as HWP without opening the container, so other
// compound-file formats also match. Zip archives come back Unknown because
// the magic alone cannot distinguish HWPX from other zip-based formats.
// Use DetectFromBytes when the full content is available.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, cfbMagic) {
		return HWP
	}
	if bytes.HasPrefix(data, zipMagic) {
		// Could be HWPX or any other zip-based format. Callers should
		// inspect the archive with DetectFromBytes or DetectFromReader.
		return Unknown
	}
	return Unknown
}

// DetectFromBytes inspects the content to determine format. Compound files
// are verified by reading the FileHeader stream and zip archives by their
// mimetype entry or package layout, so a compound file that is not an HWP
// document and a zip that is not an HWPX package both come back Unknown.
func DetectFromBytes(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, cfbMagic):
		if hasHWPHeader(data) {
			return HWP
		}
	case bytes.HasPrefix(data, zipMagic):
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err == nil && isHWPXArchive(zr) {
			return HWPX
		}
	}
	return Unknown
}

// DetectFromReader inspects content read from r to determine format. It
// mirrors DetectFromBytes for callers that have not loaded the file into
// memory.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	switch {
	case bytes.HasPrefix(magic, cfbMagic):
		// Locating the FileHeader stream means walking the allocation
		// table, so the container is read whole.
		data := make([]byte, size)
		if _, err := r.ReadAt(data, 0); err != nil && err != io.EOF {
			return Unknown, err
		}
		if hasHWPHeader(data) {
			return HWP, nil
		}
	case bytes.HasPrefix(magic, zipMagic):
		zr, err := zip.NewReader(r, size)
		if err != nil {
			return Unknown, err
		}
		if isHWPXArchive(zr) {
			return HWPX, nil
		}
	}
	return Unknown, nil
}

// hasHWPHeader opens the compound file and checks its FileHeader stream for
// the HWP document signature.
func hasHWPHeader(data []byte) bool {
	c, err := cfb.Open(data)
	if err != nil {
		return false
	}
	head, err := c.Stream("FileHeader")
	if err != nil {
		return false
	}
	return bytes.HasPrefix(head, hwpSignature)
}

// isHWPXArchive reports whether a zip archive carries OWPML package markers:
// a mimetype entry declaring application/hwp+zip, or the version.xml plus
// Contents/ layout used by writers that omit the mimetype entry.
func isHWPXArchive(zr *zip.Reader) bool {
	var hasVersion, hasContents bool
	for _, f := range zr.File {
		switch {
		case f.Name == "mimetype":
			rc, err := f.Open()
			if err != nil {
				continue
			}
			buf := make([]byte, 64)
			n, _ := rc.Read(buf)
			rc.Close()
			if strings.Contains(string(buf[:n]), hwpxMimetype) {
				return true
			}
		case f.Name == "version.xml":
			hasVersion = true
		case strings.HasPrefix(f.Name, "Contents/"):
			hasContents = true
		}
	}
	return hasVersion && hasContents
}
