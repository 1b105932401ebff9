// Package cfb reads sector-based compound binary containers (the OLE2 /
// Compound File Binary format used by HWP v5 documents).
//
// A compound file is a miniature filesystem: a header, a sector allocation
// table (FAT), a directory of named storages and streams, and the sector
// chains that hold stream data. Small streams live in a nested "mini stream"
// with its own allocation table and 64-byte sectors.
//
// # Opening
//
// [Open] validates the signature and the allocation structures before
// returning a [Container]:
//
//	c, err := cfb.Open(data)
//	if err != nil {
//	    // errors.Is(err, cfb.ErrFormat)
//	}
//
// # Streams
//
// Streams are addressed by slash-separated path, matching the directory
// hierarchy:
//
//	body, err := c.Stream("BodyText/Section0")
//
// Reads are side-effect free; a Container may serve any number of stream
// reads. Damaged stream chains are truncated rather than failed, since the
// downstream decoders are built to work with partial data. Structural damage
// to the header, FAT, or directory is reported from Open as [ErrFormat].
package cfb
