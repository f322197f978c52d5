// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"taskboard/internal/service"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = &service.StatusError{Code: 404, Message: "not found"}

// ErrTransport simulates a network failure (no HTTP response at all).
var ErrTransport = errors.New("connection refused")

// FakeService is an in-memory implementation of service.Service for testing.
// Every call is recorded by method name in Calls, in order.
type FakeService struct {
	mu         sync.RWMutex
	tasks      []service.Task
	categories []service.Category
	nextTaskID int64
	nextCatID  int64
	calls      []string

	// Error injection for testing
	ListTasksErr          error
	CreateTaskErr         error
	DeleteTaskErr         error
	ToggleTaskErr         error
	EditTaskTitleErr      error
	UpdateTaskCategoryErr error
	ListCategoriesErr     error
	CreateCategoryErr     error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextTaskID: 1,
		nextCatID:  1,
	}
}

// AddCategory seeds a category and returns it.
func (f *FakeService) AddCategory(name string) service.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := service.Category{ID: f.nextCatID, Name: name}
	f.nextCatID++
	f.categories = append(f.categories, c)
	return c
}

// AddTask seeds a task and returns it. categoryName may be empty.
func (f *FakeService) AddTask(title string, completed bool, categoryName string) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{ID: f.nextTaskID, Title: title, Completed: completed}
	f.nextTaskID++
	for _, c := range f.categories {
		if c.Name == categoryName {
			t.CategoryID = c.ID
			t.CategoryName = c.Name
			break
		}
	}
	f.tasks = append(f.tasks, t)
	return t
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// Categories returns a copy of the stored categories.
func (f *FakeService) Categories() []service.Category {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Category, len(f.categories))
	copy(result, f.categories)
	return result
}

// Calls returns the method names invoked so far.
func (f *FakeService) Calls() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]string, len(f.calls))
	copy(result, f.calls)
	return result
}

// CallCount returns how often method was invoked.
func (f *FakeService) CallCount(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == method {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log.
func (f *FakeService) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FakeService) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, method)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.record("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, task service.NewTask) (service.Task, error) {
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	t := service.Task{ID: f.nextTaskID, Title: task.Title}
	f.nextTaskID++
	if task.CategoryID != 0 {
		c, ok := service.FindCategory(f.categories, task.CategoryID)
		if !ok {
			return service.Task{}, &service.StatusError{Code: 400, Message: "unknown category"}
		}
		t.CategoryID = c.ID
		t.CategoryName = c.Name
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int64) error {
	f.record("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ToggleTask implements service.Service.
func (f *FakeService) ToggleTask(ctx context.Context, id int64) (service.Task, error) {
	f.record("ToggleTask")
	if f.ToggleTaskErr != nil {
		return service.Task{}, f.ToggleTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = !f.tasks[i].Completed
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// EditTaskTitle implements service.Service.
func (f *FakeService) EditTaskTitle(ctx context.Context, id int64, title string) (service.Task, error) {
	f.record("EditTaskTitle")
	if f.EditTaskTitleErr != nil {
		return service.Task{}, f.EditTaskTitleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Title = title
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// UpdateTaskCategory implements service.Service.
func (f *FakeService) UpdateTaskCategory(ctx context.Context, id, categoryID int64) error {
	f.record("UpdateTaskCategory")
	if f.UpdateTaskCategoryErr != nil {
		return f.UpdateTaskCategoryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := service.FindCategory(f.categories, categoryID)
	if !ok {
		return ErrNotFound
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].CategoryID = c.ID
			f.tasks[i].CategoryName = c.Name
			return nil
		}
	}
	return ErrNotFound
}

// ListCategories implements service.Service.
func (f *FakeService) ListCategories(ctx context.Context) ([]service.Category, error) {
	f.record("ListCategories")
	if f.ListCategoriesErr != nil {
		return nil, f.ListCategoriesErr
	}
	return f.Categories(), nil
}

// CreateCategory implements service.Service.
func (f *FakeService) CreateCategory(ctx context.Context, name string) (service.Category, error) {
	f.record("CreateCategory")
	if f.CreateCategoryErr != nil {
		return service.Category{}, f.CreateCategoryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	c := service.Category{ID: f.nextCatID, Name: name}
	f.nextCatID++
	f.categories = append(f.categories, c)
	return c, nil
}
