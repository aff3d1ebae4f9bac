package terminal

import (
	"io"
	"os"
	"strings"
)

// colorTerminals lists TERM values (or prefixes) that are known to support
// basic terminal colors.
var colorTerminals = []string{
	"xterm",
	"screen",
	"tmux",
	"rxvt",
	"vt100",
	"vt220",
	"ansi",
	"linux",
	"cygwin",
	"putty",
}

// PreferenceOptions contains command-line options for terminal preferences
type PreferenceOptions struct {
	ForceColor   bool // Force color output regardless of environment
	DisableColor bool // Disable color output regardless of environment
}

// termSupportsColor checks the TERM environment variable. Unknown terminals
// are treated as colourless.
func termSupportsColor() bool {
	t := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if t == "" || t == "dumb" {
		return false
	}
	for _, colorTerm := range colorTerminals {
		if t == colorTerm || strings.HasPrefix(t, colorTerm+"-") {
			return true
		}
	}
	return false
}

// explicitPreference returns the colour choice made by flags, CLICOLOR_FORCE
// or NO_COLOR, and whether such a choice exists.
func explicitPreference(opts PreferenceOptions) (enabled, explicit bool) {
	// Priority 1: Command line arguments
	if opts.ForceColor {
		return true, true
	}
	if opts.DisableColor {
		return false, true
	}

	// Priority 2: CLICOLOR_FORCE=1 (CLICOLOR_FORCE=0 is not a preference)
	if isTruthy(os.Getenv("CLICOLOR_FORCE")) {
		return true, true
	}

	// Priority 3: NO_COLOR with any value, even empty
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false, true
	}

	return false, false
}

// ColorEnabled reports whether output written to w should be coloured.
//
// Priority order:
//  1. -color / -no-color
//  2. CLICOLOR_FORCE=1
//  3. NO_COLOR
//  4. w must be a terminal, outside CI, with a colour-capable TERM
//  5. CLICOLOR, which only applies to terminals
func ColorEnabled(w io.Writer, opts PreferenceOptions) bool {
	if enabled, explicit := explicitPreference(opts); explicit {
		return enabled
	}

	if !IsTerminal(w) || IsCIEnvironment() || !termSupportsColor() {
		return false
	}

	if cliColor := os.Getenv("CLICOLOR"); cliColor != "" {
		return isTruthy(cliColor)
	}

	return true
}
