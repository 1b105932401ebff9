// Package filters provides stream decompression for HWP body sections.
//
// HWP compresses section streams with headerless (raw) deflate. Real-world
// files are frequently truncated or lightly corrupted, so the functions here
// never fail outright: they return the bytes recovered before the failure
// point together with a completeness flag.
//
// # Raw deflate
//
//	decoded, complete := filters.InflateRaw(data)
//
// Multiple concatenated deflate chunks are inflated in order; truncation in
// one chunk short-circuits only the chunks after it.
//
// # Fallback ladder
//
//	decoded, complete := filters.Inflate(data)
//
// Inflate tries raw deflate first, then zlib-wrapped data, and finally
// passes the input through unchanged on the assumption it was stored
// uncompressed. This matches the compression variations observed across
// HWP producers.
package filters
