package picker

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/keisukeshimizu/wt/internal/style"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// model is the bubbletea model behind the terminal picker
type model struct {
	candidates []Candidate
	opts       Options
	style      *style.Style

	input   textinput.Model
	matches []match
	cursor  int // index into matches
	offset  int // first visible match

	// marks holds candidate indices in the order they were marked
	marks []int

	previews map[string]string

	width  int
	height int

	aborted  bool
	accepted bool
}

func newModel(candidates []Candidate, opts Options, st *style.Style) *model {
	if st == nil {
		st = style.Plain()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	if opts.Prompt != "" {
		ti.Prompt = opts.Prompt + "> "
	}
	ti.Placeholder = "type to filter"
	ti.Focus()

	m := &model{
		candidates: candidates,
		opts:       opts,
		style:      st,
		input:      ti,
		previews:   make(map[string]string),
		width:      defaultWidth,
		height:     defaultHeight,
	}
	m.refilter()
	return m
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.accepted = true
			return m, tea.Quit
		case "up", "ctrl+p":
			m.move(-1)
			return m, nil
		case "down", "ctrl+n":
			m.move(1)
			return m, nil
		case "tab":
			if m.opts.Mode == Multi {
				m.toggleMark()
				m.move(1)
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return m, cmd
}

// result converts the final state into a Result
func (m *model) result() Result {
	if m.aborted || !m.accepted {
		return Result{Aborted: true}
	}

	if len(m.marks) > 0 {
		selected := make([]Candidate, 0, len(m.marks))
		for _, idx := range m.marks {
			selected = append(selected, m.candidates[idx])
		}
		return Result{Selected: selected}
	}

	if current, ok := m.current(); ok {
		return Result{Selected: []Candidate{m.candidates[current]}}
	}
	return Result{}
}

func (m *model) refilter() {
	m.matches = filter(m.candidates, m.input.Value())
	m.cursor = 0
	m.offset = 0
}

// current returns the candidate index under the cursor
func (m *model) current() (int, bool) {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return 0, false
	}
	return m.matches[m.cursor].index, true
}

func (m *model) move(delta int) {
	if len(m.matches) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.matches) {
		m.cursor = len(m.matches) - 1
	}
	m.ensureCursorVisible()
}

func (m *model) ensureCursorVisible() {
	visible := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m *model) toggleMark() {
	idx, ok := m.current()
	if !ok {
		return
	}
	for i, marked := range m.marks {
		if marked == idx {
			m.marks = append(m.marks[:i], m.marks[i+1:]...)
			return
		}
	}
	m.marks = append(m.marks, idx)
}

func (m *model) isMarked(idx int) bool {
	for _, marked := range m.marks {
		if marked == idx {
			return true
		}
	}
	return false
}

// preview returns the highlighted preview for the current candidate,
// computing it at most once per payload
func (m *model) preview() string {
	if m.opts.Preview == nil {
		return ""
	}
	idx, ok := m.current()
	if !ok {
		return ""
	}

	payload := m.candidates[idx].Payload()
	if text, ok := m.previews[payload]; ok {
		return text
	}
	text := highlightDiff(m.opts.Preview(payload), m.style)
	m.previews[payload] = text
	return text
}
