// Package config resolves the settings of check_multiboot: the tool's own
// directory, the optional TOML config file next to it, and the final debug
// log path. Command-line overrides take precedence over the file, and the
// file over built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultConfigFileName is looked up in the tool directory when no
	// explicit config file is given.
	DefaultConfigFileName = "check_multiboot.toml"

	// DefaultLogDirName is the log directory relative to the tool directory.
	DefaultLogDirName = ".cursor"

	// DefaultLogFileName is the log file name inside DefaultLogDirName.
	DefaultLogFileName = "debug.log"
)

// Error definitions for the config package
var (
	// ErrConfigNotFound is returned when an explicitly requested config file does not exist
	ErrConfigNotFound = errors.New("config file not found")

	// ErrEmptyLogFile is returned when the config file sets log_file to an empty string
	ErrEmptyLogFile = errors.New("log_file must not be empty")
)

// ParseError indicates the config file is not valid TOML or uses unknown keys.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid config file %s: %v", e.Path, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// FileConfig is the on-disk TOML schema.
type FileConfig struct {
	// LogFile is the NDJSON log path, relative to the config file's directory
	// unless absolute.
	LogFile *string `toml:"log_file"`

	// Strict makes a failed header check exit with status 1.
	Strict bool `toml:"strict"`
}

// Overrides holds settings given on the command line.
type Overrides struct {
	ConfigPath string // explicit config file; empty means the default lookup
	LogFile    string // empty means not overridden
	Strict     bool
}

// Config holds the resolved settings used by one run.
type Config struct {
	ToolDir    string
	ConfigPath string // empty when no config file was loaded
	LogFile    string
	Strict     bool
}

// executable is replaced in tests.
var executable = os.Executable

// ToolDir returns the directory containing the running executable, with
// symlinks resolved.
func ToolDir() (string, error) {
	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path %s: %w", exe, err)
	}
	return filepath.Dir(resolved), nil
}

// DefaultLogPath returns <toolDir>/.cursor/debug.log.
func DefaultLogPath(toolDir string) string {
	return filepath.Join(toolDir, DefaultLogDirName, DefaultLogFileName)
}

// LoadFile reads and decodes a TOML config file.
// Returns ErrConfigNotFound if the file does not exist.
func LoadFile(path string) (*FileConfig, error) {
	// #nosec G304 - path is chosen by the operator running the tool
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}

	if cfg.LogFile != nil && *cfg.LogFile == "" {
		return nil, &ParseError{Path: path, Cause: ErrEmptyLogFile}
	}

	return &cfg, nil
}

// Resolve builds the run configuration for a tool installed in toolDir.
// A missing default config file is ignored; a missing explicit one is an error.
func Resolve(toolDir string, overrides Overrides) (*Config, error) {
	cfg := &Config{
		ToolDir: toolDir,
		LogFile: DefaultLogPath(toolDir),
	}

	configPath := overrides.ConfigPath
	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(toolDir, DefaultConfigFileName)
	}

	fileCfg, err := LoadFile(configPath)
	switch {
	case err == nil:
		cfg.ConfigPath = configPath
		applyFile(cfg, fileCfg, filepath.Dir(configPath))
	case errors.Is(err, ErrConfigNotFound) && !explicit:
		// no config file installed next to the tool
	default:
		return nil, err
	}

	if overrides.LogFile != "" {
		cfg.LogFile = overrides.LogFile
	}
	if overrides.Strict {
		cfg.Strict = true
	}

	return cfg, nil
}

func applyFile(cfg *Config, fileCfg *FileConfig, baseDir string) {
	if fileCfg.LogFile != nil {
		logFile := *fileCfg.LogFile
		if !filepath.IsAbs(logFile) {
			logFile = filepath.Join(baseDir, logFile)
		}
		cfg.LogFile = logFile
	}
	cfg.Strict = fileCfg.Strict
}
