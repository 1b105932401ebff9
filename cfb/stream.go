package cfb

import "fmt"

// Stream returns a copy of the named stream's bytes. The name is the
// slash-joined directory path, e.g. "FileHeader" or "BodyText/Section0".
//
// Streams smaller than the header's mini-stream cutoff are resolved through
// the mini FAT; everything else reads straight sector chains. A damaged
// chain yields a short result rather than an error.
func (c *Container) Stream(name string) ([]byte, error) {
	i, ok := c.byPath[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStreamNotFound, name)
	}
	e := c.entries[i]

	var out []byte
	if e.Size < uint64(c.miniCutoff) {
		out = c.readMiniChain(e.start, e.Size)
	} else {
		out = c.readChain(e.start, e.Size)
	}
	return out, nil
}

// HasStream reports whether a stream exists at the given path.
func (c *Container) HasStream(name string) bool {
	_, ok := c.byPath[name]
	return ok
}
