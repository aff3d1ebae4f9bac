// Package safefileio provides file I/O for the diagnostic log with protection
// against the log path being swapped for a symlink or a non-regular file.
package safefileio

import "errors"

var (
	// ErrInvalidFilePath indicates that the specified file path is invalid.
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrIsSymlink indicates that the specified path is a symbolic link, which is not allowed.
	ErrIsSymlink = errors.New("path is a symbolic link")

	// ErrShortWrite indicates that fewer bytes than requested were written.
	ErrShortWrite = errors.New("short write")
)
