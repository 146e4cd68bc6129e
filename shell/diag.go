package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Diag renders the shell's diagnostics: command failures, unknown commands,
// typo suggestions. Messages are word-wrapped to the terminal width so long
// paths don't shear mid-word.
type Diag struct {
	w      io.Writer
	width  int
	styled bool

	errStyle  lipgloss.Style
	hintStyle lipgloss.Style
}

// NewDiag creates a diagnostics renderer writing to w.
func NewDiag(w io.Writer, width int, styled bool) *Diag {
	if width <= 0 {
		width = 80
	}
	return &Diag{
		w:         w,
		width:     width,
		styled:    styled,
		errStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		hintStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// Errorf reports a command-level failure.
func (d *Diag) Errorf(format string, args ...interface{}) {
	msg := wordwrap.String(fmt.Sprintf(format, args...), d.width)
	if d.styled {
		msg = d.errStyle.Render(msg)
	}
	fmt.Fprintln(d.w, "den: "+msg)
}

// CommandNotFound reports an unknown command together with any typo
// suggestions ranked by the discovery package.
func (d *Diag) CommandNotFound(name string, suggestions []string) {
	msg := fmt.Sprintf("command not found: %s", name)
	if d.styled {
		msg = d.errStyle.Render(msg)
	}
	fmt.Fprintln(d.w, "den: "+msg)

	if len(suggestions) == 0 {
		return
	}
	hint := "did you mean: " + strings.Join(suggestions, ", ") + "?"
	hint = wordwrap.String(hint, d.width)
	if d.styled {
		hint = d.hintStyle.Render(hint)
	}
	fmt.Fprintln(d.w, hint)
}
