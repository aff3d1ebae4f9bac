package elfheader

import "errors"

// Static errors
var (
	// ErrNotELF indicates the data is too short for an ELF32 header or does
	// not start with the ELF magic.
	ErrNotELF = errors.New("file is not an ELF32 image")

	// ErrNoLoadSegment indicates no PT_LOAD entry was found before the
	// program header table ended or ran past the end of the file.
	ErrNoLoadSegment = errors.New("no PT_LOAD program header found")
)
