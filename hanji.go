// Package hanji provides a fluent API for extracting text, tables, and
// metadata from HWP and HWPX documents.
//
// Basic usage:
//
//	text, warnings, err := hanji.Open("document.hwp").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", hanji.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := hanji.Open("report.hwp").
//	    MinTextLength(200).
//	    MaxDecodeTime(5 * time.Second).
//	    Document()
//
// For advanced use cases, the lower-level hwp, hwpx, and cfb packages are
// also available.
package hanji

import (
	"errors"
	"io"
)

// ErrUnsupportedFormat is returned when the input is a zip archive but not
// an HWPX package. Inputs that are not zip archives at all go through the
// compound-container path, which reports its own format error.
var ErrUnsupportedFormat = errors.New("hanji: unsupported format")

// Open prepares an Extractor reading from the named file. The file is not
// touched until a terminal operation runs.
//
// Example:
//
//	text, warnings, err := hanji.Open("document.hwp").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes creates an Extractor over an in-memory document. The bytes are
// not copied; the caller must not mutate them while the Extractor is in use.
//
// Example:
//
//	data, _ := os.ReadFile("document.hwp")
//	doc, warnings, err := hanji.FromBytes(data).Document()
func FromBytes(data []byte) *Extractor {
	return &Extractor{
		data:    data,
		loaded:  true,
		options: defaultOptions(),
	}
}

// FromReader creates an Extractor that drains r on the first terminal
// operation. The whole document is buffered; HWP containers are not
// streamable.
//
// Example:
//
//	resp, _ := http.Get(url)
//	defer resp.Body.Close()
//	text, warnings, err := hanji.FromReader(resp.Body).Text()
func FromReader(r io.Reader) *Extractor {
	return &Extractor{
		src:     r,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	f := hanji.Must(hanji.Open("document.hwp").Format())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to a terminal operation and panics
// if the error is non-nil. It discards warnings and returns just the value.
// It is intended for use in scripts or tests where error handling would be
// cumbersome.
//
// Example:
//
//	text := hanji.MustText(hanji.Open("document.hwp").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
