// Package terminal decides whether verdict output written to a given stream
// should be coloured, based on whether the stream is a terminal, whether the
// process runs under CI, and the user's colour preferences.
package terminal

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"TRAVIS",                 // Travis CI
	"CIRCLECI",               // Circle CI
	"JENKINS_URL",            // Jenkins
	"BUILD_NUMBER",           // Jenkins/TeamCity/etc
	"GITLAB_CI",              // GitLab CI
	"BUILDKITE",              // Buildkite
	"TF_BUILD",               // Azure DevOps
}

// fdWriter is implemented by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// isTerminalFd is replaced in tests.
var isTerminalFd = func(fd uintptr) bool {
	return term.IsTerminal(int(fd)) // #nosec G115 - file descriptors fit in int
}

// IsTerminal reports whether w is a file connected to a terminal.
// Buffers, pipes wrapped in other writers and similar report false.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return isTerminalFd(f.Fd())
}

// IsCIEnvironment checks if the current environment is a CI/CD system
func IsCIEnvironment() bool {
	for _, envVar := range ciEnvVars {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		// CI=false or CI=0 should not be considered a CI environment
		if envVar == "CI" {
			return !isFalsy(value)
		}
		return true
	}
	return false
}

func isFalsy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "false", "0", "no":
		return true
	default:
		return false
	}
}

// isTruthy checks if a string value should be considered "true"
// Supports: "1", "true", "yes" (case insensitive)
func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
