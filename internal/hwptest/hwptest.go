// Package hwptest builds synthetic HWP documents for tests: compound-file
// containers, body-text record streams, summary-information property sets,
// and preview text in the encodings the extractor must survive.
//
// The builders are deterministic and panic on misuse (a fixture that cannot
// be built is a bug in the test, not a runtime condition). Containers use a
// fixed geometry so tests can patch known offsets to simulate damage:
// 512-byte sectors, sector 0 is the allocation table, the directory starts
// at sector 1.
package hwptest

import (
	"encoding/binary"
	"sort"
	"strings"
	"unicode/utf16"
)

const (
	sectorSize     = 512
	miniSectorSize = 64
	miniCutoff     = 4096

	fatSector  = 0xFFFFFFFD
	endOfChain = 0xFFFFFFFE
	freeSector = 0xFFFFFFFF
	noEntry    = 0xFFFFFFFF
)

var containerSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// node is one name in the container's storage tree.
type node struct {
	stream   bool
	data     []byte
	children map[string]*node
}

// dirEntry mirrors one 128-byte directory slot while the layout is planned.
type dirEntry struct {
	name  string
	typ   byte
	right uint32
	child uint32
	start uint32
	size  uint32
	data  []byte
	mini  bool
}

// BuildContainer serializes the given streams into a compound file. Keys are
// slash-joined paths; intermediate storages are created as needed. Streams
// under 4096 bytes land in the mini stream, everything else in main sectors.
//
// The whole fixture must fit one FAT sector (128 sectors, roughly 60 KiB of
// stream data); larger fixtures panic.
func BuildContainer(streams map[string][]byte) []byte {
	root := &node{children: map[string]*node{}}
	paths := make([]string, 0, len(streams))
	for p := range streams {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		insert(root, p, streams[p])
	}

	entries := []*dirEntry{{name: "Root Entry", typ: 5, right: noEntry, child: noEntry, start: endOfChain}}
	entries[0].child = addChildren(root, &entries)

	// Small streams share the mini stream; each gets a sequential mini
	// FAT chain.
	var miniData []byte
	var miniFAT []uint32
	for _, e := range entries[1:] {
		if e.typ != 2 {
			continue
		}
		e.size = uint32(len(e.data))
		if len(e.data) == 0 {
			e.start = endOfChain
			continue
		}
		if len(e.data) >= miniCutoff {
			continue
		}
		e.mini = true
		e.start = uint32(len(miniFAT))
		n := (len(e.data) + miniSectorSize - 1) / miniSectorSize
		for i := 0; i < n-1; i++ {
			miniFAT = append(miniFAT, uint32(len(miniFAT))+1)
		}
		miniFAT = append(miniFAT, endOfChain)
		miniData = append(miniData, e.data...)
		miniData = append(miniData, make([]byte, n*miniSectorSize-len(e.data))...)
	}
	if len(miniFAT) > sectorSize/4 {
		panic("hwptest: mini stream exceeds one mini FAT sector")
	}

	dirSectors := (len(entries) + 3) / 4
	miniFATSectors := 0
	if len(miniFAT) > 0 {
		miniFATSectors = 1
	}
	miniDataSectors := (len(miniData) + sectorSize - 1) / sectorSize

	firstDir := uint32(1)
	firstMiniFAT := firstDir + uint32(dirSectors)
	firstMiniData := firstMiniFAT + uint32(miniFATSectors)
	next := firstMiniData + uint32(miniDataSectors)

	if len(miniData) > 0 {
		entries[0].start = firstMiniData
		entries[0].size = uint32(len(miniData))
	}

	for _, e := range entries[1:] {
		if e.typ != 2 || e.mini || len(e.data) == 0 {
			continue
		}
		e.start = next
		next += uint32((len(e.data) + sectorSize - 1) / sectorSize)
	}

	total := next
	if total > sectorSize/4 {
		panic("hwptest: fixture exceeds one FAT sector")
	}

	fat := make([]uint32, sectorSize/4)
	for i := range fat {
		fat[i] = freeSector
	}
	fat[0] = fatSector
	chain := func(start uint32, sectors int) {
		for i := 0; i < sectors-1; i++ {
			fat[start+uint32(i)] = start + uint32(i) + 1
		}
		fat[start+uint32(sectors)-1] = endOfChain
	}
	chain(firstDir, dirSectors)
	if miniFATSectors > 0 {
		fat[firstMiniFAT] = endOfChain
	}
	if miniDataSectors > 0 {
		chain(firstMiniData, miniDataSectors)
	}
	for _, e := range entries[1:] {
		if e.typ == 2 && !e.mini && len(e.data) > 0 {
			chain(e.start, (len(e.data)+sectorSize-1)/sectorSize)
		}
	}

	out := make([]byte, 0, headerBytes+int(total)*sectorSize)
	out = append(out, header(firstDir, firstMiniFAT, miniFATSectors)...)
	for _, f := range fat {
		out = binary.LittleEndian.AppendUint32(out, f)
	}
	for i := 0; i < dirSectors*4; i++ {
		if i < len(entries) {
			out = append(out, encodeEntry(entries[i])...)
		} else {
			out = append(out, encodeEntry(nil)...)
		}
	}
	if miniFATSectors > 0 {
		sec := make([]byte, sectorSize)
		for i, m := range miniFAT {
			binary.LittleEndian.PutUint32(sec[i*4:], m)
		}
		for i := len(miniFAT); i < sectorSize/4; i++ {
			binary.LittleEndian.PutUint32(sec[i*4:], freeSector)
		}
		out = append(out, sec...)
	}
	out = append(out, pad(miniData, sectorSize)...)
	for _, e := range entries[1:] {
		if e.typ == 2 && !e.mini && len(e.data) > 0 {
			out = append(out, pad(e.data, sectorSize)...)
		}
	}
	return out
}

const headerBytes = 512

func header(firstDir, firstMiniFAT uint32, miniFATSectors int) []byte {
	h := make([]byte, headerBytes)
	copy(h, containerSignature)
	binary.LittleEndian.PutUint16(h[24:], 0x003E)
	binary.LittleEndian.PutUint16(h[26:], 3)
	binary.LittleEndian.PutUint16(h[28:], 0xFFFE)
	binary.LittleEndian.PutUint16(h[30:], 9)
	binary.LittleEndian.PutUint16(h[32:], 6)
	binary.LittleEndian.PutUint32(h[44:], 1)
	binary.LittleEndian.PutUint32(h[48:], firstDir)
	binary.LittleEndian.PutUint32(h[56:], miniCutoff)
	if miniFATSectors > 0 {
		binary.LittleEndian.PutUint32(h[60:], firstMiniFAT)
		binary.LittleEndian.PutUint32(h[64:], uint32(miniFATSectors))
	} else {
		binary.LittleEndian.PutUint32(h[60:], endOfChain)
	}
	binary.LittleEndian.PutUint32(h[68:], endOfChain)
	binary.LittleEndian.PutUint32(h[76:], 0)
	for i := 1; i < 109; i++ {
		binary.LittleEndian.PutUint32(h[76+i*4:], freeSector)
	}
	return h
}

func insert(root *node, path string, data []byte) {
	parts := strings.Split(path, "/")
	cur := root
	for _, name := range parts[:len(parts)-1] {
		child, ok := cur.children[name]
		if !ok {
			child = &node{children: map[string]*node{}}
			cur.children[name] = child
		}
		if child.stream {
			panic("hwptest: stream and storage share the name " + name)
		}
		cur = child
	}
	cur.children[parts[len(parts)-1]] = &node{stream: true, data: data}
}

// addChildren allocates directory slots for every child of parent, wires the
// sibling chain through right pointers, and recurses into storages. It
// returns the index of the first child, or noEntry for an empty storage.
func addChildren(parent *node, entries *[]*dirEntry) uint32 {
	names := make([]string, 0, len(parent.children))
	for n := range parent.children {
		names = append(names, n)
	}
	if len(names) == 0 {
		return noEntry
	}
	sort.Strings(names)

	base := uint32(len(*entries))
	for _, nm := range names {
		c := parent.children[nm]
		e := &dirEntry{name: nm, right: noEntry, child: noEntry}
		if c.stream {
			e.typ = 2
			e.data = c.data
		} else {
			e.typ = 1
		}
		*entries = append(*entries, e)
	}
	for i := 0; i < len(names)-1; i++ {
		(*entries)[base+uint32(i)].right = base + uint32(i) + 1
	}
	for i, nm := range names {
		c := parent.children[nm]
		if !c.stream {
			(*entries)[base+uint32(i)].child = addChildren(c, entries)
		}
	}
	return base
}

func encodeEntry(e *dirEntry) []byte {
	b := make([]byte, 128)
	if e == nil {
		binary.LittleEndian.PutUint32(b[68:], noEntry)
		binary.LittleEndian.PutUint32(b[72:], noEntry)
		binary.LittleEndian.PutUint32(b[76:], noEntry)
		return b
	}
	u := utf16.Encode([]rune(e.name))
	if len(u) > 31 {
		panic("hwptest: entry name too long: " + e.name)
	}
	for i, cu := range u {
		binary.LittleEndian.PutUint16(b[i*2:], cu)
	}
	binary.LittleEndian.PutUint16(b[64:], uint16((len(u)+1)*2))
	b[66] = e.typ
	b[67] = 1
	binary.LittleEndian.PutUint32(b[68:], noEntry)
	binary.LittleEndian.PutUint32(b[72:], e.right)
	binary.LittleEndian.PutUint32(b[76:], e.child)
	binary.LittleEndian.PutUint32(b[116:], e.start)
	binary.LittleEndian.PutUint32(b[120:], e.size)
	return b
}

func pad(data []byte, unit int) []byte {
	if rem := len(data) % unit; rem != 0 {
		return append(data, make([]byte, unit-rem)...)
	}
	return data
}
