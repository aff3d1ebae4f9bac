// Package main provides the check_multiboot command.
// It verifies that a kernel image's multiboot header lies within the first
// 8KB scanned by GRUB, appends a diagnostic record to the debug log and
// prints the verdict.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/isseis/go-multiboot-check/internal/config"
	"github.com/isseis/go-multiboot-check/internal/diagnostic"
	"github.com/isseis/go-multiboot-check/internal/inspector"
	"github.com/isseis/go-multiboot-check/internal/logging"
	"github.com/isseis/go-multiboot-check/internal/report"
	"github.com/isseis/go-multiboot-check/internal/terminal"
)

const toolName = "check_multiboot"

var (
	errNoFileProvided = errors.New("a kernel binary path must be provided as a positional argument")
	toolDir           = config.ToolDir
	inspectorFactory  = func(logger *slog.Logger) recordInspector {
		return inspector.New(logger)
	}
)

type recordInspector interface {
	Inspect(path string) (diagnostic.Record, error)
}

type checkOptions struct {
	binPath   string
	overrides config.Overrides
	prefs     terminal.PreferenceOptions
	debug     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		printUsage(fs, stderr)
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	level := slog.LevelWarn
	if opts.debug {
		level = slog.LevelDebug
	}
	logger := logging.NewLogger(logging.LoggerConfig{Level: level, Writer: stderr})

	dir, err := toolDir()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	cfg, err := config.Resolve(dir, opts.overrides)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger.Debug("Configuration resolved",
		"tool_dir", cfg.ToolDir,
		"config_file", cfg.ConfigPath,
		"log_file", cfg.LogFile,
		"strict", cfg.Strict)

	rec, err := inspectorFactory(logger).Inspect(opts.binPath)
	if err != nil {
		if errors.Is(err, inspector.ErrFileNotFound) {
			_, _ = fmt.Fprintf(stderr, "File not found: %s\n", opts.binPath)
			logger.Debug("Inspection aborted", "error", err)
			return 1
		}
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	appender, err := logging.NewAppender(cfg.LogFile)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := appender.Append(rec); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger.Debug("Diagnostic record appended", "log_file", appender.Path())

	printer := report.NewPrinter(stdout, stderr, opts.prefs)
	if err := printer.Verdict(rec); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if !rec.Passed() && cfg.Strict {
		return 1
	}
	return 0
}

func parseArgs(args []string, stderr io.Writer) (*checkOptions, *flag.FlagSet, error) {
	opts := &checkOptions{}

	fs := flag.NewFlagSet(toolName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(fs, stderr) }
	fs.StringVar(&opts.overrides.ConfigPath, "config", "", "Path to a TOML config file (default: "+config.DefaultConfigFileName+" next to the executable)")
	fs.StringVar(&opts.overrides.LogFile, "log-file", "", "NDJSON debug log to append to (default: .cursor/debug.log next to the executable)")
	fs.BoolVar(&opts.overrides.Strict, "strict", false, "Exit with status 1 when the header is not within the first 8KB")
	fs.BoolVar(&opts.prefs.ForceColor, "color", false, "Force colored verdict output")
	fs.BoolVar(&opts.prefs.DisableColor, "no-color", false, "Disable colored verdict output")
	fs.BoolVar(&opts.debug, "debug", false, "Write debug logs to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}

	if fs.NArg() == 0 {
		return nil, fs, errNoFileProvided
	}
	opts.binPath = fs.Arg(0)

	return opts, fs, nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	if fs == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "Usage: %s [flags] <myos.bin>\n", toolName)
	fs.PrintDefaults()
}
