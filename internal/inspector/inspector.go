// Package inspector checks a kernel image for a multiboot header the
// bootloader can see and builds the diagnostic record describing it.
package inspector

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/isseis/go-multiboot-check/internal/diagnostic"
	"github.com/isseis/go-multiboot-check/internal/elfheader"
	"github.com/isseis/go-multiboot-check/internal/multiboot"
)

// ErrFileNotFound indicates the path does not name a regular file.
var ErrFileNotFound = errors.New("file not found")

// Inspector loads and analyses kernel images.
type Inspector struct {
	logger   *slog.Logger
	stat     func(string) (os.FileInfo, error)
	readFile func(string) ([]byte, error)
	now      func() time.Time
}

// New creates an Inspector. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inspector{
		logger:   logger,
		stat:     os.Stat,
		readFile: os.ReadFile,
		now:      time.Now,
	}
}

// Inspect reads the whole file at path and returns its diagnostic record.
// Returns an error wrapping ErrFileNotFound when path is not a regular file
// (symlinks are followed). Read failures are returned as-is, wrapped.
func (i *Inspector) Inspect(path string) (diagnostic.Record, error) {
	info, err := i.stat(path)
	if err != nil {
		return diagnostic.Record{}, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return diagnostic.Record{}, fmt.Errorf("%w: %s is not a regular file", ErrFileNotFound, path)
	}

	// #nosec G304 - inspecting the operator-supplied binary is the purpose of the tool
	data, err := i.readFile(path)
	if err != nil {
		return diagnostic.Record{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	i.logger.Debug("Loaded binary image", "path", path, "size", len(data))

	rec := Analyze(path, data, i.now())
	i.logger.Debug("Multiboot check completed",
		"path", path,
		"header_within_8k", rec.Data.HeaderWithin8K,
		"hypothesis", string(rec.HypothesisID))

	return rec, nil
}

// Analyze builds the diagnostic record for an image already in memory.
func Analyze(path string, data []byte, now time.Time) diagnostic.Record {
	findings := diagnostic.Findings{
		BinPath:     path,
		FileSize:    int64(len(data)),
		MagicOffset: multiboot.FindMagic(data),
		ScanLimit:   multiboot.ScanLimit,
		HeaderHex:   multiboot.HeaderSnapshot(data),
	}

	// ErrNotELF and ErrNoLoadSegment leave the field absent.
	if offset, err := elfheader.FirstLoadOffset(data); err == nil {
		findings.FirstPTLoad = offset
		findings.HasFirstLoad = true
	}

	return diagnostic.NewRecord(findings, now)
}
