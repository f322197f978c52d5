// Package board holds the TaskBoard state, its derived views and the
// orchestration of remote calls that keep it in sync with the server.
package board

import (
	"slices"

	"taskboard/internal/service"
)

// EditMode is either Idle or Editing(taskID).
type EditMode struct {
	taskID  int64
	editing bool
}

// Idle is the mode in which submitting the form creates a task.
func Idle() EditMode { return EditMode{} }

// Editing is the mode in which submitting the form saves the given task.
func Editing(taskID int64) EditMode { return EditMode{taskID: taskID, editing: true} }

// IsEditing reports whether a task is being edited.
func (m EditMode) IsEditing() bool { return m.editing }

// TaskID returns the task under edit.
func (m EditMode) TaskID() (int64, bool) { return m.taskID, m.editing }

func (m EditMode) String() string {
	if !m.editing {
		return "idle"
	}
	return "editing"
}

// Draft is the form content.
type Draft struct {
	Title       string
	CategoryID  int64 // selected existing category, 0 for none
	NewCategory string
}

// State is an immutable snapshot of the board. Transitions return a new
// State and never write to slices shared with the receiver.
type State struct {
	Draft      Draft
	Tasks      []service.Task
	Categories []service.Category
	Mode       EditMode
	Filter     string // active category name, "" for all
}

// WithTasks replaces the task collection.
func (s State) WithTasks(tasks []service.Task) State {
	s.Tasks = slices.Clone(tasks)
	return s
}

// WithCategories replaces the category collection.
func (s State) WithCategories(categories []service.Category) State {
	s.Categories = slices.Clone(categories)
	return s
}

// WithDraftTitle sets the draft title.
func (s State) WithDraftTitle(title string) State {
	s.Draft.Title = title
	return s
}

// WithDraftCategory selects an existing category (0 clears the selection).
func (s State) WithDraftCategory(id int64) State {
	s.Draft.CategoryID = id
	return s
}

// WithNewCategory sets the new-category name.
func (s State) WithNewCategory(name string) State {
	s.Draft.NewCategory = name
	return s
}

// StartEdit enters Editing for t and pre-populates the draft from it.
// Any previous edit is replaced.
func (s State) StartEdit(t service.Task) State {
	s.Mode = Editing(t.ID)
	s.Draft = Draft{Title: t.Title, CategoryID: t.CategoryID}
	return s
}

// CancelEdit returns to Idle and clears the draft.
func (s State) CancelEdit() State {
	s.Mode = Idle()
	s.Draft = Draft{}
	return s
}

// ClearDraft empties the title and the category selection.
// The new-category field is left alone.
func (s State) ClearDraft() State {
	s.Draft.Title = ""
	s.Draft.CategoryID = 0
	return s
}

// PatchCompleted sets Completed on the task with the given ID only.
func (s State) PatchCompleted(id int64, completed bool) State {
	return s.patch(id, func(t *service.Task) { t.Completed = completed })
}

// PatchTitle sets Title on the task with the given ID only.
func (s State) PatchTitle(id int64, title string) State {
	return s.patch(id, func(t *service.Task) { t.Title = title })
}

// WithFilter sets the category filter; "" clears it.
func (s State) WithFilter(name string) State {
	s.Filter = name
	return s
}

// FindTask returns the task with the given ID.
func (s State) FindTask(id int64) (service.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// FindCategoryByName returns the first category with the given name.
func (s State) FindCategoryByName(name string) (service.Category, bool) {
	for _, c := range s.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return service.Category{}, false
}

func (s State) patch(id int64, fn func(*service.Task)) State {
	tasks := slices.Clone(s.Tasks)
	for i := range tasks {
		if tasks[i].ID == id {
			fn(&tasks[i])
		}
	}
	s.Tasks = tasks
	return s
}
