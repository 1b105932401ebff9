package cfb

import (
	"encoding/binary"
	"fmt"
	"sort"
	"unicode/utf16"
)

// EntryType classifies a directory entry.
type EntryType byte

const (
	// TypeStorage entries are directories; they hold no data themselves.
	TypeStorage EntryType = 1
	// TypeStream entries name a run of stream data.
	TypeStream EntryType = 2
	// TypeRoot is the root storage; its data chain backs the mini stream.
	TypeRoot EntryType = 5
)

const noEntry = 0xFFFFFFFF

// DirEntry describes one named entry in the container directory.
type DirEntry struct {
	// Name is the entry's own name. HWP uses names starting with control
	// characters for some well-known streams ("\x05HwpSummaryInformation").
	Name string

	// Path is the slash-joined path from the root storage, e.g.
	// "BodyText/Section0". The root entry itself has an empty path.
	Path string

	Type EntryType
	Size uint64

	start              uint32
	left, right, child uint32
}

// loadDirectory walks the directory chain, decodes all entries, and builds
// slash-separated paths by traversing the sibling/child tree from the root.
// The tree pointers in real-world HWP files are not always a valid red-black
// tree, so the walk treats them as a plain graph with a cycle guard.
func (c *Container) loadDirectory(first uint32) error {
	raw := c.directoryBytes(first)
	if raw == nil {
		return fmt.Errorf("%w: directory chain unreadable", ErrFormat)
	}

	count := len(raw) / dirEntrySize
	if count == 0 {
		return fmt.Errorf("%w: empty directory", ErrFormat)
	}

	c.entries = make([]DirEntry, 0, count)
	for i := 0; i < count; i++ {
		c.entries = append(c.entries, parseDirEntry(raw[i*dirEntrySize:(i+1)*dirEntrySize], c.sectorSize))
	}
	if c.entries[0].Type != TypeRoot {
		return fmt.Errorf("%w: first directory entry is not the root storage", ErrFormat)
	}

	c.assignPaths(c.entries[0].child, "", make(map[uint32]bool))

	for i := range c.entries {
		if c.entries[i].Type == TypeStream && c.entries[i].Path != "" {
			c.byPath[c.entries[i].Path] = i
		}
	}
	return nil
}

// directoryBytes follows the directory sector chain. Unlike stream chains,
// damage here is fatal: without a directory there is nothing to read.
func (c *Container) directoryBytes(first uint32) []byte {
	var out []byte
	sect := first
	for steps := uint32(0); sect != secEndOfChain; steps++ {
		if steps > c.sectorCount() {
			return nil // cycle
		}
		buf := c.sector(sect)
		if buf == nil {
			return nil
		}
		out = append(out, buf...)
		if sect >= uint32(len(c.fat)) {
			return nil
		}
		sect = c.fat[sect]
	}
	return out
}

func parseDirEntry(b []byte, sectorSize int) DirEntry {
	nameLen := int(binary.LittleEndian.Uint16(b[64:66]))
	if nameLen > 64 {
		nameLen = 64
	}
	units := nameLen/2 - 1
	if units < 0 {
		units = 0
	}
	u16s := make([]uint16, units)
	for i := range u16s {
		u16s[i] = binary.LittleEndian.Uint16(b[i*2 : i*2+2])
	}

	size := uint64(binary.LittleEndian.Uint32(b[120:124]))
	if sectorSize > 512 {
		// Version 4 files carry a full 64-bit stream size.
		size |= uint64(binary.LittleEndian.Uint32(b[124:128])) << 32
	}

	return DirEntry{
		Name:  string(utf16.Decode(u16s)),
		Type:  EntryType(b[66]),
		Size:  size,
		start: binary.LittleEndian.Uint32(b[116:120]),
		left:  binary.LittleEndian.Uint32(b[68:72]),
		right: binary.LittleEndian.Uint32(b[72:76]),
		child: binary.LittleEndian.Uint32(b[76:80]),
	}
}

// assignPaths resolves the subtree rooted at id, giving every reachable
// entry its slash-joined path under prefix.
func (c *Container) assignPaths(id uint32, prefix string, seen map[uint32]bool) {
	if id == noEntry || id >= uint32(len(c.entries)) || seen[id] {
		return
	}
	seen[id] = true

	e := &c.entries[id]
	c.assignPaths(e.left, prefix, seen)

	path := e.Name
	if prefix != "" {
		path = prefix + "/" + e.Name
	}
	e.Path = path
	if e.Type == TypeStorage {
		c.assignPaths(e.child, path, seen)
	}

	c.assignPaths(e.right, prefix, seen)
}

// Streams returns the paths of all stream entries, sorted. Storages are not
// included.
func (c *Container) Streams() []string {
	out := make([]string, 0, len(c.byPath))
	for p := range c.byPath {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Entry returns the directory entry for a stream path.
func (c *Container) Entry(path string) (DirEntry, bool) {
	i, ok := c.byPath[path]
	if !ok {
		return DirEntry{}, false
	}
	return c.entries[i], true
}
