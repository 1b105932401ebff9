package hwp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hanjilab/hanji/cfb"
	"github.com/hanjilab/hanji/internal/filters"
)

// fileHeaderMagic opens the FileHeader stream of every HWP v5 document.
var fileHeaderMagic = []byte("HWP Document File")

var (
	errPasswordProtected = errors.New("hwp: password-protected document")
	errDistribution      = errors.New("hwp: distribution document stores body text obfuscated")
)

// fileHeader is the decoded FileHeader stream: a fixed 256-byte block with
// the signature, the format version, and the document property flags.
type fileHeader struct {
	version      uint32
	compressed   bool
	password     bool
	distribution bool
}

func parseFileHeader(b []byte) (fileHeader, error) {
	if len(b) < 40 {
		return fileHeader{}, fmt.Errorf("hwp: file header too short (%d bytes)", len(b))
	}
	if !bytes.HasPrefix(b, fileHeaderMagic) {
		return fileHeader{}, errors.New("hwp: missing document signature")
	}
	flags := binary.LittleEndian.Uint32(b[36:40])
	return fileHeader{
		version:      binary.LittleEndian.Uint32(b[32:36]),
		compressed:   flags&0x1 != 0,
		password:     flags&0x2 != 0,
		distribution: flags&0x4 != 0,
	}, nil
}

// document is an opened container plus its decoded file header, the shared
// starting point of every container-reading strategy.
type document struct {
	container *cfb.Container
	header    fileHeader
}

func openDocument(data []byte) (*document, error) {
	c, err := cfb.Open(data)
	if err != nil {
		return nil, err
	}
	hb, err := c.Stream("FileHeader")
	if err != nil {
		return nil, err
	}
	h, err := parseFileHeader(hb)
	if err != nil {
		return nil, err
	}
	return &document{container: c, header: h}, nil
}

// requireReadableBody fails for documents whose body streams cannot be
// decoded without credentials.
func (d *document) requireReadableBody() error {
	if d.header.password {
		return errPasswordProtected
	}
	if d.header.distribution {
		return errDistribution
	}
	return nil
}

const sectionPrefix = "BodyText/Section"

// sectionNames lists the body-text sections in numeric order. Streams with
// a non-numeric suffix are not sections and are skipped.
func (d *document) sectionNames() []string {
	var names []string
	for _, p := range d.container.Streams() {
		if !strings.HasPrefix(p, sectionPrefix) {
			continue
		}
		if _, err := strconv.Atoi(p[len(sectionPrefix):]); err != nil {
			continue
		}
		names = append(names, p)
	}
	sort.Slice(names, func(i, j int) bool {
		return sectionIndex(names[i]) < sectionIndex(names[j])
	})
	return names
}

func sectionIndex(name string) int {
	n, _ := strconv.Atoi(name[len(sectionPrefix):])
	return n
}

// sectionBytes reads one body section and inflates it when the header says
// the document is compressed. The bool reports whether the bytes are the
// complete stream; truncated decompression still yields the usable prefix.
func (d *document) sectionBytes(name string) ([]byte, bool, error) {
	raw, err := d.container.Stream(name)
	if err != nil {
		return nil, false, err
	}
	if !d.header.compressed {
		return raw, true, nil
	}
	buf, complete := filters.Inflate(raw)
	return buf, complete, nil
}
