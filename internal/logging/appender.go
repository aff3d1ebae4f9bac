// Package logging writes multiboot check records to the NDJSON debug log and
// configures the operational slog logger.
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/isseis/go-multiboot-check/internal/diagnostic"
	"github.com/isseis/go-multiboot-check/internal/safefileio"
)

// Common errors
var (
	ErrEmptyLogPath = errors.New("log file path cannot be empty")

	// File permissions constants
	logDirPerm  os.FileMode = 0o750
	logFilePerm os.FileMode = 0o600
)

// Appender appends diagnostic records to an NDJSON log file.
// The file is opened, written once and closed on every Append.
type Appender struct {
	path       string
	mkdirAll   func(string, os.FileMode) error
	appendFile func(string, []byte, os.FileMode) error
}

// NewAppender creates an Appender for the log file at path.
func NewAppender(path string) (*Appender, error) {
	if path == "" {
		return nil, ErrEmptyLogPath
	}
	return &Appender{
		path:       path,
		mkdirAll:   os.MkdirAll,
		appendFile: safefileio.SafeAppendFile,
	}, nil
}

// Path returns the log file path.
func (a *Appender) Path() string {
	return a.path
}

// Append writes rec as one newline-terminated line, creating the parent
// directory first if needed.
func (a *Appender) Append(rec diagnostic.Record) error {
	line, err := rec.MarshalLine()
	if err != nil {
		return err
	}

	dir := filepath.Dir(a.path)
	if err := a.mkdirAll(dir, logDirPerm); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	if err := a.appendFile(a.path, line, logFilePerm); err != nil {
		return fmt.Errorf("failed to append to log file %s: %w", a.path, err)
	}

	return nil
}
