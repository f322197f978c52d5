// Package tui implements the interactive terminal board.
package tui

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/board"
	"taskboard/internal/service"
)

// focus is the widget receiving key presses.
type focus int

const (
	focusList focus = iota
	focusTitle
	focusNewCategory
)

const (
	titleLimit    = 200
	categoryLimit = 60
)

// Model is the bubbletea model. All task data lives in the Board; the
// model only holds widget state and renders Board snapshots.
type Model struct {
	ctx      context.Context
	board    *board.Board
	keys     keyMap
	renderer *lipgloss.Renderer
	styles   styles

	title       textinput.Model
	newCategory textinput.Model
	focus       focus
	cursor      int

	pending int // remote calls in flight
	status  string
	err     error
	width   int
}

// New creates a Model over b. Remote calls use ctx; r renders colors and
// may be nil for the default renderer.
func New(ctx context.Context, b *board.Board, r *lipgloss.Renderer) *Model {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "What needs doing?"
	title.CharLimit = titleLimit

	newCategory := textinput.New()
	newCategory.Prompt = ""
	newCategory.Placeholder = "optional"
	newCategory.CharLimit = categoryLimit

	return &Model{
		ctx:         ctx,
		board:       b,
		keys:        newKeyMap(),
		renderer:    r,
		styles:      newStyles(r),
		title:       title,
		newCategory: newCategory,
	}
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(ctx context.Context, b *board.Board, out io.Writer) error {
	m := New(ctx, b, lipgloss.NewRenderer(out))
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(out), tea.WithAltScreen())
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// --- Messages ---

// loadedMsg reports the initial fetch of tasks and categories.
type loadedMsg struct{ err error }

// doneMsg reports a finished board operation.
type doneMsg struct {
	op  string
	err error
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.pending++
	return func() tea.Msg {
		return loadedMsg{err: m.board.Load(m.ctx)}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case loadedMsg:
		m.pending--
		m.err = msg.err
		m.clampCursor()
		return m, nil
	case doneMsg:
		return m.handleDone(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleDone(msg doneMsg) (tea.Model, tea.Cmd) {
	m.pending--
	applied := msg.err == nil || errors.Is(msg.err, board.ErrIncomplete)
	switch {
	case msg.err == nil:
		m.err = nil
		m.status = msg.op + ": ok"
	case applied:
		m.err = nil
		m.status = msg.op + ": " + msg.err.Error()
	default:
		m.err = msg.err
		m.status = ""
	}

	var cmd tea.Cmd
	switch msg.op {
	case "add":
		m.syncInputs()
	case "save":
		m.syncInputs()
		if applied {
			cmd = m.setFocus(focusList)
		}
	}
	m.clampCursor()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.forceQuit) {
		return m, tea.Quit
	}
	if m.focus == focusList {
		return m.handleListKey(msg)
	}
	return m.handleFormKey(msg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		m.cursor--
		m.clampCursor()
	case key.Matches(msg, m.keys.down):
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, m.keys.toggle):
		if t, ok := m.selected(); ok {
			return m, m.run("toggle", func(ctx context.Context) error {
				return m.board.Toggle(ctx, t.ID)
			})
		}
	case key.Matches(msg, m.keys.edit):
		if t, ok := m.selected(); ok {
			if err := m.board.StartEdit(t.ID); err != nil {
				m.err = err
				return m, nil
			}
			m.syncInputs()
			return m, m.setFocus(focusTitle)
		}
	case key.Matches(msg, m.keys.del):
		if t, ok := m.selected(); ok {
			return m, m.run("delete", func(ctx context.Context) error {
				return m.board.Delete(ctx, t.ID)
			})
		}
	case key.Matches(msg, m.keys.cancel):
		m.cancelEdit()
	case key.Matches(msg, m.keys.refresh):
		return m, m.run("refresh", m.board.Load)
	case key.Matches(msg, m.keys.compose):
		return m, m.setFocus(focusTitle)
	case key.Matches(msg, m.keys.category):
		m.cycleCategory(1)
	case key.Matches(msg, m.keys.filter):
		m.cycleFilter()
	case key.Matches(msg, m.keys.clearFilter):
		m.board.ClearFilter()
		m.clampCursor()
	case key.Matches(msg, m.keys.nextField):
		return m, m.setFocus(focusTitle)
	}
	return m, nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.submit):
		op := "add"
		if m.board.State().Mode.IsEditing() {
			op = "save"
		}
		return m, m.run(op, m.board.Submit)
	case key.Matches(msg, m.keys.cancel):
		m.cancelEdit()
		return m, m.setFocus(focusList)
	case key.Matches(msg, m.keys.nextField):
		to := focusNewCategory
		if m.focus == focusNewCategory {
			to = focusList
		}
		return m, m.setFocus(to)
	case key.Matches(msg, m.keys.prevCat):
		m.cycleCategory(-1)
		return m, nil
	case key.Matches(msg, m.keys.nextCat):
		m.cycleCategory(1)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
		m.board.SetDraftTitle(m.title.Value())
	case focusNewCategory:
		m.newCategory, cmd = m.newCategory.Update(msg)
		m.board.SetNewCategory(m.newCategory.Value())
	}
	return m, cmd
}

// run executes fn against the board off the UI goroutine.
func (m *Model) run(op string, fn func(context.Context) error) tea.Cmd {
	m.pending++
	m.status = op + "..."
	return func() tea.Msg {
		return doneMsg{op: op, err: fn(m.ctx)}
	}
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.title.Blur()
	m.newCategory.Blur()
	switch f {
	case focusTitle:
		return m.title.Focus()
	case focusNewCategory:
		return m.newCategory.Focus()
	}
	return nil
}

func (m *Model) cancelEdit() {
	if !m.board.State().Mode.IsEditing() {
		return
	}
	m.board.CancelEdit()
	m.syncInputs()
	m.status = "edit cancelled"
}

// syncInputs copies the draft into the text inputs.
func (m *Model) syncInputs() {
	d := m.board.State().Draft
	m.title.SetValue(d.Title)
	m.title.CursorEnd()
	m.newCategory.SetValue(d.NewCategory)
	m.newCategory.CursorEnd()
}

// cycleCategory moves the draft's category selection through
// none, then each category in order.
func (m *Model) cycleCategory(step int) {
	st := m.board.State()
	ids := make([]int64, 0, len(st.Categories)+1)
	ids = append(ids, 0)
	for _, c := range st.Categories {
		ids = append(ids, c.ID)
	}
	m.board.SelectCategory(ids[next(ids, st.Draft.CategoryID, step)])
}

// cycleFilter moves the filter through all, then each category name.
func (m *Model) cycleFilter() {
	st := m.board.State()
	names := make([]string, 0, len(st.Categories)+1)
	names = append(names, "")
	for _, c := range st.Categories {
		names = append(names, c.Name)
	}
	m.board.SetFilter(names[next(names, st.Filter, 1)])
	m.cursor = 0
	m.clampCursor()
}

// next returns the index step positions after cur in values, wrapping.
// An unknown cur starts from the first value.
func next[T comparable](values []T, cur T, step int) int {
	i := 0
	for j, v := range values {
		if v == cur {
			i = j
			break
		}
	}
	n := len(values)
	return ((i+step)%n + n) % n
}

func (m *Model) selected() (service.Task, bool) {
	visible := m.board.State().Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return service.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.board.State().Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
