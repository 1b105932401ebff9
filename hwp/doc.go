// Package hwp decodes HWP version 5 word-processor documents: compound-file
// containers whose body text lives in compressed, record-structured streams
// of UTF-16LE text interleaved with inline control sequences.
//
// Real-world HWP files are frequently damaged, truncated, or written by
// tools that bend the format, so the package is built around an ordered
// chain of extraction strategies of decreasing fidelity:
//
//  1. direct body-stream decode - full record parse of every body section,
//     including structural tables and summary metadata
//  2. conservative record decode - an independent, stricter record walk
//     that keeps only unambiguously well-formed text
//  3. segment text scan - scans decompressed bytes for plausible UTF-16LE
//     runs without trusting record structure at all
//  4. preview text - the plain-text preview stream, tried in several
//     encodings
//
// # Extraction
//
// The [Orchestrator] owns the fallback policy: it runs each strategy in
// order and accepts the first result whose text clears the configured
// minimum length, falling back to the longest candidate otherwise:
//
//	orc := hwp.NewOrchestrator(hwp.DefaultStrategies())
//	res, err := orc.Extract(data, hwp.Options{MinTextLength: 500})
//
// The accepted strategy's name is recorded in [ParseResult.Method]. Only two
// errors escape Extract: a container-format error from [cfb.Open] when the
// input is not a compound file at all, and [ErrAllStrategiesExhausted] when
// every strategy produced empty text.
//
// # Records
//
// The [RecordScanner] walks the tag/level/size framed records of a
// decompressed body stream. It is forward-only and forgiving: a record
// whose declared size runs past the end of the buffer ends the sequence
// silently, and the records before it still count. Truncated trailing
// records are common in real-world files.
package hwp
