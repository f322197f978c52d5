package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up          key.Binding
	down        key.Binding
	toggle      key.Binding
	edit        key.Binding
	del         key.Binding
	cancel      key.Binding
	refresh     key.Binding
	compose     key.Binding
	category    key.Binding
	prevCat     key.Binding
	nextCat     key.Binding
	filter      key.Binding
	clearFilter key.Binding
	nextField   key.Binding
	submit      key.Binding
	quit        key.Binding
	forceQuit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "toggle")),
		edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		del:         key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		compose:     key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		category:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		prevCat:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "category")),
		nextCat:     key.NewBinding(key.WithKeys("down")),
		filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		clearFilter: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "all")),
		nextField:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		forceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// listHelp is shown while the task list has focus.
func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.toggle, k.edit, k.del, k.compose, k.category, k.filter, k.clearFilter, k.refresh, k.quit}
}

// formHelp is shown while an input has focus.
func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.submit, k.nextField, k.prevCat, k.cancel}
}
