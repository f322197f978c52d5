package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"taskboard/internal/service"
)

var (
	// ErrEmptyTitle is returned when the draft title is blank. No request is made.
	ErrEmptyTitle = errors.New("title required")

	// ErrNotEditing is returned by SaveEdit outside of Editing.
	ErrNotEditing = errors.New("no task is being edited")

	// ErrTaskNotFound is returned when an ID is not in the local task list.
	ErrTaskNotFound = errors.New("task not found")

	// ErrIncomplete wraps failures of follow-up steps (refreshes, the
	// category association) after the main mutation succeeded.
	ErrIncomplete = errors.New("completed with errors")
)

// Board keeps a State in sync with a remote service.
//
// Each operation issues its own remote calls; only the state swap is
// serialized, so a slow call never blocks readers. Mutations are not
// coordinated with each other.
type Board struct {
	svc service.Service
	log *log.Logger

	mu    sync.RWMutex
	state State
}

// New creates a Board with an empty Idle state.
// A nil logger discards output.
func New(svc service.Service, logger *log.Logger) *Board {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Board{svc: svc, log: logger}
}

// State returns the current snapshot.
func (b *Board) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// update applies fn to the latest state.
func (b *Board) update(fn func(State) State) State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = fn(b.state)
	return b.state
}

// Load fetches tasks and categories, as done once on start.
func (b *Board) Load(ctx context.Context) error {
	return errors.Join(b.FetchTasks(ctx), b.FetchCategories(ctx))
}

// FetchTasks replaces the task list. On failure the previous list is kept.
func (b *Board) FetchTasks(ctx context.Context) error {
	if err := b.fetchTasks(ctx); err != nil {
		b.log.Error("fetch tasks failed", "err", err)
		return fmt.Errorf("fetch tasks: %w", err)
	}
	return nil
}

// FetchCategories replaces the category list. On failure the previous list is kept.
func (b *Board) FetchCategories(ctx context.Context) error {
	if err := b.fetchCategories(ctx); err != nil {
		b.log.Error("fetch categories failed", "err", err)
		return fmt.Errorf("fetch categories: %w", err)
	}
	return nil
}

func (b *Board) fetchTasks(ctx context.Context) error {
	tasks, err := b.svc.ListTasks(ctx)
	if err != nil {
		return err
	}
	b.update(func(s State) State { return s.WithTasks(tasks) })
	return nil
}

func (b *Board) fetchCategories(ctx context.Context) error {
	categories, err := b.svc.ListCategories(ctx)
	if err != nil {
		return err
	}
	b.update(func(s State) State { return s.WithCategories(categories) })
	return nil
}

// SetDraftTitle sets the form title.
func (b *Board) SetDraftTitle(title string) {
	b.update(func(s State) State { return s.WithDraftTitle(title) })
}

// SelectCategory selects an existing category for the draft; 0 clears it.
func (b *Board) SelectCategory(id int64) {
	b.update(func(s State) State { return s.WithDraftCategory(id) })
}

// SetNewCategory sets the new-category name for the draft.
func (b *Board) SetNewCategory(name string) {
	b.update(func(s State) State { return s.WithNewCategory(name) })
}

// SetFilter filters the visible list by exact category name; "" shows all.
func (b *Board) SetFilter(category string) {
	b.update(func(s State) State { return s.WithFilter(category) })
}

// ClearFilter shows all tasks.
func (b *Board) ClearFilter() {
	b.SetFilter("")
}

// Submit saves the edit while Editing and creates a task otherwise.
func (b *Board) Submit(ctx context.Context) error {
	if b.State().Mode.IsEditing() {
		return b.SaveEdit(ctx)
	}
	return b.Create(ctx)
}

// Create creates a task from the draft.
//
// A non-blank new-category name is created first and overrides the selected
// category; if that fails no task is created. After the task is created the
// draft title and selection are cleared and the task list is refreshed.
func (b *Board) Create(ctx context.Context) error {
	st := b.State()
	title := strings.TrimSpace(st.Draft.Title)
	if title == "" {
		return ErrEmptyTitle
	}

	categoryID := st.Draft.CategoryID
	var steps []step

	if name := strings.TrimSpace(st.Draft.NewCategory); name != "" {
		steps = append(steps,
			step{name: "create category", abort: true, run: func(ctx context.Context) error {
				id, err := b.adoptNewCategory(ctx, name)
				categoryID = id
				return err
			}},
			step{name: "refresh categories", run: b.fetchCategories},
		)
	}

	steps = append(steps,
		step{name: "create task", abort: true, run: func(ctx context.Context) error {
			created, err := b.svc.CreateTask(ctx, service.NewTask{Title: title, CategoryID: categoryID})
			if err == nil {
				b.log.Debug("task created", "id", created.ID, "category", categoryID)
			}
			return err
		}},
		step{name: "reset draft", run: func(context.Context) error {
			b.update(State.ClearDraft)
			return nil
		}},
		step{name: "refresh tasks", run: b.fetchTasks},
	)

	return b.runSteps(ctx, "create", steps)
}

// adoptNewCategory creates a category and makes it the draft's selection,
// so a retry after a later failure does not create it twice.
func (b *Board) adoptNewCategory(ctx context.Context, name string) (int64, error) {
	cat, err := b.svc.CreateCategory(ctx, name)
	if err != nil {
		return 0, err
	}
	b.update(func(s State) State {
		return s.WithNewCategory("").WithDraftCategory(cat.ID)
	})
	return cat.ID, nil
}

// StartEdit enters Editing for the task with the given ID.
// It makes no remote call.
func (b *Board) StartEdit(id int64) error {
	t, ok := b.State().FindTask(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	b.update(func(s State) State { return s.StartEdit(t) })
	return nil
}

// CancelEdit leaves Editing without touching remote state.
func (b *Board) CancelEdit() {
	b.update(State.CancelEdit)
}

// SaveEdit updates the edited task's title, then its category.
//
// A failed title update aborts and leaves the board in Editing. A failed
// category update is reported but the title change stays applied. Once
// both were attempted the board returns to Idle and the list is refreshed.
func (b *Board) SaveEdit(ctx context.Context) error {
	st := b.State()
	id, ok := st.Mode.TaskID()
	if !ok {
		return ErrNotEditing
	}
	title := strings.TrimSpace(st.Draft.Title)
	if title == "" {
		return ErrEmptyTitle
	}

	categoryID := st.Draft.CategoryID
	assign := categoryID != 0
	var steps []step

	if name := strings.TrimSpace(st.Draft.NewCategory); name != "" {
		assign = true
		steps = append(steps,
			step{name: "create category", abort: true, run: func(ctx context.Context) error {
				newID, err := b.adoptNewCategory(ctx, name)
				categoryID = newID
				return err
			}},
			step{name: "refresh categories", run: b.fetchCategories},
		)
	}

	steps = append(steps, step{name: "edit title", abort: true, run: func(ctx context.Context) error {
		updated, err := b.svc.EditTaskTitle(ctx, id, title)
		if err != nil {
			return err
		}
		b.update(func(s State) State { return s.PatchTitle(id, updated.Title) })
		return nil
	}})

	// categoryID is only final once the create step has run.
	if assign {
		steps = append(steps, step{name: "update category", run: func(ctx context.Context) error {
			return b.svc.UpdateTaskCategory(ctx, id, categoryID)
		}})
	}

	steps = append(steps,
		step{name: "finish edit", run: func(context.Context) error {
			b.update(State.CancelEdit)
			return nil
		}},
		step{name: "refresh tasks", run: b.fetchTasks},
	)

	return b.runSteps(ctx, "edit", steps)
}

// Delete deletes a task and refreshes the list. There is no confirmation.
func (b *Board) Delete(ctx context.Context, id int64) error {
	return b.runSteps(ctx, "delete", []step{
		{name: "delete task", abort: true, run: func(ctx context.Context) error {
			return b.svc.DeleteTask(ctx, id)
		}},
		{name: "refresh tasks", run: b.fetchTasks},
	})
}

// Toggle flips a task's completion server-side and patches only that task.
// When the server answers with a non-success status the list is re-fetched.
func (b *Board) Toggle(ctx context.Context, id int64) error {
	updated, err := b.svc.ToggleTask(ctx, id)
	if err != nil {
		b.log.Error("toggle failed", "id", id, "err", err)
		if service.IsStatus(err) {
			if ferr := b.fetchTasks(ctx); ferr != nil {
				b.log.Error("fetch tasks failed", "err", ferr)
			}
		}
		return fmt.Errorf("toggle task: %w", err)
	}

	b.update(func(s State) State { return s.PatchCompleted(id, updated.Completed) })
	return nil
}

// CreateCategory creates a category on its own and refreshes the category list.
func (b *Board) CreateCategory(ctx context.Context, name string) (service.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return service.Category{}, errors.New("category name required")
	}

	var created service.Category
	err := b.runSteps(ctx, "create category", []step{
		{name: "create category", abort: true, run: func(ctx context.Context) error {
			var err error
			created, err = b.svc.CreateCategory(ctx, name)
			return err
		}},
		{name: "refresh categories", run: b.fetchCategories},
	})
	return created, err
}
