// Package elfheader reads the handful of ELF32 header fields needed to find
// the file offset of a kernel's first loadable segment.
//
// Only e_phoff, e_phentsize, e_phnum and the p_type/p_offset of program
// headers are read, directly from the raw little-endian bytes.
package elfheader

import (
	"bytes"
	"encoding/binary"
)

// elfMagicStr is the ELF magic number string literal.
const elfMagicStr = "\x7fELF"

// elfMagic is the ELF magic number bytes.
var elfMagic = []byte(elfMagicStr)

// ELF32 header layout.
const (
	// MinHeaderSize is the size of an ELF32 file header.
	MinHeaderSize = 52

	phoffOffset     = 0x1C
	phentsizeOffset = 0x2A
	phnumOffset     = 0x2C

	pTypeOffset   = 0
	pOffsetOffset = 4
)

// PTLoad is the program header type of a loadable segment.
const PTLoad uint32 = 1

// ProgramHeaderTable describes the location of the program header table.
type ProgramHeaderTable struct {
	Offset    uint32 // e_phoff
	EntrySize uint16 // e_phentsize
	Count     uint16 // e_phnum
}

// IsELF reports whether data is long enough to hold an ELF32 header and
// starts with the ELF magic.
func IsELF(data []byte) bool {
	return len(data) >= MinHeaderSize && bytes.HasPrefix(data, elfMagic)
}

// ReadProgramHeaderTable extracts e_phoff, e_phentsize and e_phnum.
// Returns ErrNotELF if IsELF is false.
func ReadProgramHeaderTable(data []byte) (ProgramHeaderTable, error) {
	if !IsELF(data) {
		return ProgramHeaderTable{}, ErrNotELF
	}
	le := binary.LittleEndian
	return ProgramHeaderTable{
		Offset:    le.Uint32(data[phoffOffset:]),
		EntrySize: le.Uint16(data[phentsizeOffset:]),
		Count:     le.Uint16(data[phnumOffset:]),
	}, nil
}

// FirstLoadOffset returns p_offset of the first PT_LOAD program header.
//
// Entries are visited in table order. Iteration stops without error at the
// first entry whose type field would extend past the end of data, and also
// when a PT_LOAD entry is too short to hold its p_offset field.
// Returns ErrNotELF for non-ELF data and ErrNoLoadSegment when nothing was found.
func FirstLoadOffset(data []byte) (uint32, error) {
	table, err := ReadProgramHeaderTable(data)
	if err != nil {
		return 0, err
	}

	size := uint64(len(data))
	for i := uint64(0); i < uint64(table.Count); i++ {
		start := uint64(table.Offset) + i*uint64(table.EntrySize)
		if start+pTypeOffset+4 > size {
			break
		}
		pType := binary.LittleEndian.Uint32(data[start+pTypeOffset:])
		if pType != PTLoad {
			continue
		}
		if start+pOffsetOffset+4 > size {
			break
		}
		return binary.LittleEndian.Uint32(data[start+pOffsetOffset:]), nil
	}

	return 0, ErrNoLoadSegment
}
