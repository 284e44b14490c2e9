//go:build unix

package picker

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keisukeshimizu/wt/internal/errors"
	"github.com/keisukeshimizu/wt/internal/style"
)

// TUI is the full-screen terminal picker
type TUI struct {
	style *style.Style
}

// New returns the terminal picker, styled for the error stream
func New(st *style.Style) Picker {
	return &TUI{style: st}
}

// Pick implements Picker. Keys are read from the controlling terminal and
// the interface is drawn on standard error.
func (t *TUI) Pick(candidates []Candidate, opts Options) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, nil
	}

	m := newModel(candidates, opts, t.style)
	program := tea.NewProgram(m,
		tea.WithInputTTY(),
		tea.WithOutput(os.Stderr),
		tea.WithAltScreen(),
	)

	final, err := program.Run()
	if err != nil {
		return Result{}, errors.E(errors.Op("picker.Pick"), errors.KindEnvironment, "interactive selection failed", err)
	}

	return final.(*model).result(), nil
}
