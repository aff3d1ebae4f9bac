// Package report prints the human-readable verdict of a multiboot check.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/isseis/go-multiboot-check/internal/diagnostic"
	"github.com/isseis/go-multiboot-check/internal/multiboot"
	"github.com/isseis/go-multiboot-check/internal/terminal"
)

// Printer writes the success line to stdout and the failure line to stderr.
type Printer struct {
	stdout io.Writer
	stderr io.Writer
	ok     *color.Color
	fail   *color.Color
}

// NewPrinter creates a Printer. Colour is decided per stream.
func NewPrinter(stdout, stderr io.Writer, prefs terminal.PreferenceOptions) *Printer {
	return &Printer{
		stdout: stdout,
		stderr: stderr,
		ok:     newTag(color.FgGreen, terminal.ColorEnabled(stdout, prefs)),
		fail:   newTag(color.FgRed, terminal.ColorEnabled(stderr, prefs)),
	}
}

func newTag(fg color.Attribute, enabled bool) *color.Color {
	c := color.New(fg, color.Bold)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Verdict prints the outcome of rec.
func (p *Printer) Verdict(rec diagnostic.Record) error {
	if rec.Passed() {
		_, err := fmt.Fprintf(p.stdout, "%s Multiboot header at file offset %d (within 8KB)\n",
			p.ok.Sprint("[OK]"), *rec.Data.MagicFileOffset)
		return err
	}

	offset := multiboot.NotFound
	if rec.Data.MagicFileOffset != nil {
		offset = *rec.Data.MagicFileOffset
	}
	_, err := fmt.Fprintf(p.stderr, "%s Multiboot header not in first 8KB; magic_offset= %d\n",
		p.fail.Sprint("[FAIL]"), offset)
	return err
}
