package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// listHeight is the number of candidate rows that fit on screen
func (m *model) listHeight() int {
	// query line and status line
	rows := m.height - 2
	if m.opts.Preview != nil {
		rows /= 2
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(m.fit(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.fit(m.status()))
	b.WriteString("\n")

	rows := m.listHeight()
	for i := m.offset; i < m.offset+rows; i++ {
		if i < len(m.matches) {
			b.WriteString(m.fit(m.row(i)))
		}
		b.WriteString("\n")
	}

	if m.opts.Preview != nil {
		b.WriteString(m.style.Dim(strings.Repeat("─", m.width)))
		b.WriteString("\n")

		lines := strings.Split(strings.TrimRight(m.preview(), "\n"), "\n")
		space := m.height - rows - 3
		for i := 0; i < space && i < len(lines); i++ {
			b.WriteString(m.fit(lines[i]))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m *model) status() string {
	text := fmt.Sprintf("  %d/%d", len(m.matches), len(m.candidates))
	if m.opts.Mode == Multi {
		text += fmt.Sprintf(" (%d marked, tab to mark)", len(m.marks))
	}
	return m.style.Dim(text)
}

func (m *model) row(i int) string {
	match := m.matches[i]

	pointer := "  "
	if i == m.cursor {
		pointer = m.style.Cyan("> ")
	}

	mark := ""
	if m.opts.Mode == Multi {
		mark = "  "
		if m.isMarked(match.index) {
			mark = m.style.Yellow("● ")
		}
	}

	return pointer + mark + m.highlight(m.candidates[match.index].Label(), match.positions)
}

// highlight emphasises the matched byte positions of label
func (m *model) highlight(label string, positions []int) string {
	if len(positions) == 0 || !m.style.Enabled() {
		return label
	}

	hit := make(map[int]bool, len(positions))
	for _, p := range positions {
		hit[p] = true
	}

	var b strings.Builder
	for i, r := range label {
		if hit[i] {
			b.WriteString(m.style.Green(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fit truncates a possibly styled line to the terminal width
func (m *model) fit(line string) string {
	if ansi.StringWidth(line) <= m.width {
		return line
	}
	return ansi.Truncate(line, m.width, ellipsis)
}
