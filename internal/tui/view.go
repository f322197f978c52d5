package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/board"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

const (
	appTitle     = "TaskBoard"
	labelWidth   = 14
	defaultWidth = 80
	chartMargin  = 4
	noCategory   = "(none)"
)

type styles struct {
	header   lipgloss.Style
	label    lipgloss.Style
	active   lipgloss.Style
	cursor   lipgloss.Style
	done     lipgloss.Style
	dim      lipgloss.Style
	editing  lipgloss.Style
	errorMsg lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1),
		label:    r.NewStyle().Bold(true).Width(labelWidth),
		active:   r.NewStyle().Bold(true).Width(labelWidth).Foreground(lipgloss.Color("62")),
		cursor:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("62")),
		done:     r.NewStyle().Foreground(output.CompletedColor),
		dim:      r.NewStyle().Foreground(lipgloss.Color("241")),
		editing:  r.NewStyle().Foreground(output.PendingColor).Bold(true),
		errorMsg: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	st := m.board.State()

	var b strings.Builder
	b.WriteString(m.styles.header.Render(appTitle))
	b.WriteString("\n\n")
	m.viewForm(&b, st)
	b.WriteString("\n")
	m.viewList(&b, st)
	b.WriteString("\n")
	b.WriteString(output.RenderChart(m.renderer, st.ChartTitle(), st.Summary(), m.chartWidth()))
	b.WriteString("\n\n")
	m.viewStatus(&b)
	return b.String()
}

func (m *Model) viewForm(b *strings.Builder, st board.State) {
	heading := "New task"
	if id, ok := st.Mode.TaskID(); ok {
		heading = m.styles.editing.Render(fmt.Sprintf("Editing #%d", id))
	}
	b.WriteString(heading + "\n")

	b.WriteString(m.fieldLabel("Title", m.focus == focusTitle))
	b.WriteString(m.title.View() + "\n")

	b.WriteString(m.fieldLabel("Category", m.focus != focusList))
	b.WriteString("< " + categoryName(st.Categories, st.Draft.CategoryID) + " >\n")

	b.WriteString(m.fieldLabel("New category", m.focus == focusNewCategory))
	b.WriteString(m.newCategory.View() + "\n")
}

func (m *Model) fieldLabel(name string, active bool) string {
	if active {
		return m.styles.active.Render(name)
	}
	return m.styles.label.Render(name)
}

func (m *Model) viewList(b *strings.Builder, st board.State) {
	filter := "All"
	if st.Filter != "" {
		filter = st.Filter
	}
	b.WriteString(m.styles.label.Render("Filter") + filter + "\n")

	visible := st.Visible()
	if len(visible) == 0 {
		b.WriteString(m.styles.dim.Render(output.NoTasks) + "\n")
		return
	}

	editID, editing := st.Mode.TaskID()
	for i, t := range visible {
		prefix := "  "
		if i == m.cursor && m.focus == focusList {
			prefix = m.styles.cursor.Render("> ")
		}

		mark := output.CompletedMark(t.Completed)
		if t.Completed {
			mark = m.styles.done.Render(mark)
		}

		line := fmt.Sprintf("%s%s %s  %s", prefix, mark, output.TaskTitle(t.Title),
			m.styles.dim.Render("("+output.CategoryLabel(t)+")"))
		if editing && t.ID == editID {
			line += " " + m.styles.editing.Render("*")
		}
		b.WriteString(line + "\n")
	}
}

func (m *Model) viewStatus(b *strings.Builder) {
	switch {
	case m.err != nil:
		b.WriteString(m.styles.errorMsg.Render("error: "+m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString(m.styles.dim.Render(m.status) + "\n")
	}
	if m.pending > 0 {
		b.WriteString(m.styles.dim.Render("working...") + "\n")
	}

	bindings := m.keys.listHelp()
	if m.focus != focusList {
		bindings = m.keys.formHelp()
	}
	b.WriteString(m.styles.dim.Render(helpLine(bindings)))
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+":"+h.Desc)
	}
	return strings.Join(parts, "  ")
}

func (m *Model) chartWidth() int {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	w -= chartMargin
	if w > output.ChartWidth {
		w = output.ChartWidth
	}
	if w < 1 {
		w = 1
	}
	return w
}

func categoryName(categories []service.Category, id int64) string {
	if id == 0 {
		return noCategory
	}
	if c, ok := service.FindCategory(categories, id); ok {
		return c.Name
	}
	return fmt.Sprintf("#%d", id)
}
