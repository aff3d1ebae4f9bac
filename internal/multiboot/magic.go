// Package multiboot locates the multiboot (v1) header magic in a kernel image.
// GRUB only scans the leading ScanLimit bytes of a kernel for the magic, so the
// search here is bounded the same way.
package multiboot

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
)

const (
	// Magic is the multiboot header magic value.
	Magic uint32 = 0x1BADB002

	// ScanLimit is the number of leading bytes a bootloader inspects.
	ScanLimit = 8192

	// SnapshotSize is the number of leading bytes captured by HeaderSnapshot.
	SnapshotSize = 64

	// NotFound is returned by FindMagic when the magic is absent.
	NotFound = -1
)

// magicBytes is the little-endian encoding of Magic.
var magicBytes = binary.LittleEndian.AppendUint32(nil, Magic)

// MagicBytes returns a copy of the on-disk encoding of Magic.
func MagicBytes() []byte {
	return bytes.Clone(magicBytes)
}

// FindMagic returns the offset of the first occurrence of the magic within the
// first ScanLimit bytes of data, or NotFound.
func FindMagic(data []byte) int {
	window := data
	if len(window) > ScanLimit {
		window = window[:ScanLimit]
	}
	return bytes.Index(window, magicBytes)
}

// WithinScanLimit reports whether offset denotes a header the bootloader will see.
func WithinScanLimit(offset int) bool {
	return offset >= 0 && offset < ScanLimit
}

// HeaderSnapshot returns the first SnapshotSize bytes of data (or all of it when
// shorter) as lowercase hex without separators.
func HeaderSnapshot(data []byte) string {
	if len(data) > SnapshotSize {
		data = data[:SnapshotSize]
	}
	return hex.EncodeToString(data)
}
