// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for remote task and category operations.
// All HTTP calls go through this interface.
// Commands, the board and the TUI never import the HTTP backend directly.
type Service interface {
	// ListTasks returns the full task collection in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns it as stored by the server.
	CreateTask(ctx context.Context, task NewTask) (Task, error)

	// DeleteTask deletes a task by ID.
	DeleteTask(ctx context.Context, id int64) error

	// ToggleTask flips the completed flag server-side and returns the updated task.
	ToggleTask(ctx context.Context, id int64) (Task, error)

	// EditTaskTitle replaces a task's title and returns the updated task.
	EditTaskTitle(ctx context.Context, id int64, title string) (Task, error)

	// UpdateTaskCategory associates a task with a category.
	// This is a separate call from EditTaskTitle; the two are not atomic.
	UpdateTaskCategory(ctx context.Context, id, categoryID int64) error

	// ListCategories returns the full category collection.
	ListCategories(ctx context.Context) ([]Category, error)

	// CreateCategory creates a category and returns it with its server-assigned ID.
	CreateCategory(ctx context.Context, name string) (Category, error)
}
