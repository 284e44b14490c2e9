// Package style renders human-facing output. Terminal capability and the
// color override variables are read once per process into an Env value
// that is threaded to every formatting site.
package style

import (
	"io"
	"os"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Env is a snapshot of the environment that decides whether output is
// colored.
type Env struct {
	NoColor       bool   // NO_COLOR is set
	ClicolorForce bool   // CLICOLOR_FORCE is set
	Clicolor      string // value of CLICOLOR
	Term          string // value of TERM
	ColorTerm     string // value of COLORTERM
	StdoutTTY     bool
	StderrTTY     bool
}

// CaptureEnv reads the process environment. Call it once at startup.
func CaptureEnv() Env {
	_, noColor := os.LookupEnv("NO_COLOR")
	_, force := os.LookupEnv("CLICOLOR_FORCE")

	return Env{
		NoColor:       noColor,
		ClicolorForce: force,
		Clicolor:      os.Getenv("CLICOLOR"),
		Term:          os.Getenv("TERM"),
		ColorTerm:     os.Getenv("COLORTERM"),
		StdoutTTY:     isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		StderrTTY:     isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
	}
}

// ColorEnabled resolves whether a stream with the given terminal status
// should be colored. Later rules override earlier ones.
func (e Env) ColorEnabled(tty bool) bool {
	enabled := tty
	if e.NoColor {
		enabled = false
	}
	if e.ClicolorForce {
		enabled = true
	}
	if e.Clicolor == "0" {
		enabled = false
	}
	if e.Term == "dumb" {
		enabled = false
	}
	return enabled
}

// Profile returns the color profile used when color is enabled.
func (e Env) Profile() termenv.Profile {
	switch e.ColorTerm {
	case "truecolor", "24bit":
		return termenv.TrueColor
	}
	return termenv.ANSI256
}

// Stdout returns the style for the standard output stream.
func (e Env) Stdout(w io.Writer, theme string) *Style {
	return New(w, e.ColorEnabled(e.StdoutTTY), e.Profile(), theme)
}

// Stderr returns the style for the error stream.
func (e Env) Stderr(w io.Writer, theme string) *Style {
	return New(w, e.ColorEnabled(e.StderrTTY), e.Profile(), theme)
}

// Style applies the themed palette to text.
type Style struct {
	renderer *lipgloss.Renderer
	flavor   catppuccin.Flavor
	enabled  bool
}

// New creates a Style rendering for w.
func New(w io.Writer, enabled bool, profile termenv.Profile, theme string) *Style {
	renderer := lipgloss.NewRenderer(w)
	if enabled {
		renderer.SetColorProfile(profile)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return &Style{
		renderer: renderer,
		flavor:   FlavorFromName(theme),
		enabled:  enabled,
	}
}

// Plain returns a Style that never emits escape sequences.
func Plain() *Style {
	return New(io.Discard, false, termenv.Ascii, "")
}

// FlavorFromName maps a theme name to a catppuccin flavor, defaulting to mocha.
func FlavorFromName(name string) catppuccin.Flavor {
	switch name {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	default:
		return catppuccin.Mocha
	}
}

// Enabled reports whether escape sequences are emitted.
func (s *Style) Enabled() bool {
	return s.enabled
}

// Flavor returns the palette in use.
func (s *Style) Flavor() catppuccin.Flavor {
	return s.flavor
}

// Renderer returns the lipgloss renderer bound to the output stream.
func (s *Style) Renderer() *lipgloss.Renderer {
	return s.renderer
}

func (s *Style) render(st lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return st.Render(text)
}

func (s *Style) fg(hex string) lipgloss.Style {
	return s.renderer.NewStyle().Foreground(lipgloss.Color(hex))
}

func (s *Style) Green(text string) string {
	return s.render(s.fg(s.flavor.Green().Hex), text)
}

func (s *Style) Red(text string) string {
	return s.render(s.fg(s.flavor.Red().Hex), text)
}

func (s *Style) Cyan(text string) string {
	return s.render(s.fg(s.flavor.Sky().Hex), text)
}

func (s *Style) Yellow(text string) string {
	return s.render(s.fg(s.flavor.Yellow().Hex), text)
}

func (s *Style) Dim(text string) string {
	return s.render(s.fg(s.flavor.Overlay0().Hex), text)
}

func (s *Style) Bold(text string) string {
	return s.render(s.renderer.NewStyle().Bold(true), text)
}
