package safefileio

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// FileSystem is an interface that abstracts file system operations
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
}

// File is an interface that abstracts file operations
type File interface {
	Write(b []byte) (n int, err error)
	Close() error
	Stat() (os.FileInfo, error)
}

// osFS implements FileSystem using the local disk
var defaultFS FileSystem = osFS{}

type osFS struct{}

func (osFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	// #nosec G304 - The opened file is validated before any write
	return os.OpenFile(name, flag, perm)
}

// SafeAppendFile appends content to filePath with a single write, creating the
// file with perm if it does not exist. The final path component must not be a
// symlink and must be a regular file. Existing content is never truncated.
func SafeAppendFile(filePath string, content []byte, perm os.FileMode) error {
	return safeAppendFileWithFS(filePath, content, perm, defaultFS)
}

// safeAppendFileWithFS is the internal implementation that accepts a FileSystem for testing
func safeAppendFileWithFS(filePath string, content []byte, perm os.FileMode, fs FileSystem) (err error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}

	file, err := fs.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND|syscall.O_NOFOLLOW, perm)
	if err != nil {
		if isNoFollowError(err) {
			return fmt.Errorf("%w: %s", ErrIsSymlink, absPath)
		}
		return fmt.Errorf("failed to open file: %w", err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	if err := validateFile(file, absPath); err != nil {
		return err
	}

	n, err := file.Write(content)
	if err != nil {
		return fmt.Errorf("failed to write to %s: %w", absPath, err)
	}
	if n != len(content) {
		return fmt.Errorf("%w: wrote %d of %d bytes to %s", ErrShortWrite, n, len(content), absPath)
	}

	return nil
}

// validateFile checks that the opened file is a regular file (not a device, pipe, etc.)
func validateFile(file File, filePath string) error {
	fileInfo, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}

	if !fileInfo.Mode().IsRegular() {
		return fmt.Errorf("%w: not a regular file: %s", ErrInvalidFilePath, filePath)
	}

	return nil
}
