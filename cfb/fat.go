package cfb

import (
	"encoding/binary"
	"fmt"
)

// loadFAT assembles the sector allocation table from the DIFAT entries in
// the header plus any chained DIFAT sectors. Every FAT sector index must be
// inside the file; anything else is structural damage and fails Open.
func (c *Container) loadFAT(numFAT, firstDIFAT, numDIFAT uint32) error {
	fatSectors := make([]uint32, 0, numFAT)

	for i := 0; i < difatInHeader; i++ {
		s := binary.LittleEndian.Uint32(c.data[76+i*4 : 80+i*4])
		if s == secFree || s == secEndOfChain {
			continue
		}
		fatSectors = append(fatSectors, s)
	}

	// DIFAT overflow sectors each hold more FAT sector indices, with the
	// final entry linking to the next DIFAT sector.
	perSector := c.sectorSize/4 - 1
	sect := firstDIFAT
	for steps := uint32(0); sect != secEndOfChain && sect != secFree && steps < numDIFAT+1; steps++ {
		buf := c.sector(sect)
		if buf == nil {
			return fmt.Errorf("%w: DIFAT sector %d out of range", ErrFormat, sect)
		}
		for i := 0; i < perSector; i++ {
			s := binary.LittleEndian.Uint32(buf[i*4 : i*4+4])
			if s == secFree || s == secEndOfChain {
				continue
			}
			fatSectors = append(fatSectors, s)
		}
		sect = binary.LittleEndian.Uint32(buf[len(buf)-4:])
	}

	entriesPerSector := c.sectorSize / 4
	c.fat = make([]uint32, 0, len(fatSectors)*entriesPerSector)
	for _, s := range fatSectors {
		buf := c.sector(s)
		if buf == nil {
			return fmt.Errorf("%w: FAT sector %d out of range", ErrFormat, s)
		}
		for i := 0; i < entriesPerSector; i++ {
			c.fat = append(c.fat, binary.LittleEndian.Uint32(buf[i*4:i*4+4]))
		}
	}

	if len(c.fat) == 0 {
		return fmt.Errorf("%w: empty allocation table", ErrFormat)
	}
	return nil
}

// loadMiniFAT reads the mini sector allocation table. A file with no small
// streams legitimately has none.
func (c *Container) loadMiniFAT(first, num uint32) error {
	if first == secEndOfChain || first == secFree || num == 0 {
		return nil
	}

	entriesPerSector := c.sectorSize / 4
	c.miniFAT = make([]uint32, 0, num*uint32(entriesPerSector))

	sect := first
	for steps := uint32(0); sect != secEndOfChain && steps < num+1; steps++ {
		buf := c.sector(sect)
		if buf == nil {
			return fmt.Errorf("%w: mini FAT sector %d out of range", ErrFormat, sect)
		}
		for i := 0; i < entriesPerSector; i++ {
			c.miniFAT = append(c.miniFAT, binary.LittleEndian.Uint32(buf[i*4:i*4+4]))
		}
		if sect >= uint32(len(c.fat)) {
			return fmt.Errorf("%w: mini FAT chain leaves the allocation table", ErrFormat)
		}
		sect = c.fat[sect]
	}
	return nil
}
