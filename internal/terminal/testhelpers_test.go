//go:build test

package terminal

import (
	"os"
	"testing"
)

// setupCleanEnv clears every colour and CI variable the package reads, then
// sets only the ones given. t.Setenv restores the original values afterwards.
func setupCleanEnv(t *testing.T, envVars map[string]string) {
	t.Helper()

	vars := append([]string{"NO_COLOR", "CLICOLOR", "CLICOLOR_FORCE", "TERM"}, ciEnvVars...)
	for _, v := range vars {
		t.Setenv(v, "")
		// NO_COLOR is checked for existence, so an empty value is not enough.
		_ = os.Unsetenv(v)
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}
}

// fakeTTY is a writer that claims a file descriptor.
type fakeTTY struct {
	fd uintptr
}

func (f fakeTTY) Write(p []byte) (int, error) { return len(p), nil }
func (f fakeTTY) Fd() uintptr                 { return f.fd }

// stubTerminal makes isTerminalFd report result for every descriptor.
func stubTerminal(t *testing.T, result bool) {
	t.Helper()
	original := isTerminalFd
	t.Cleanup(func() { isTerminalFd = original })
	isTerminalFd = func(uintptr) bool { return result }
}
