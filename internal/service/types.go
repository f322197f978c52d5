// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"errors"
	"fmt"
)

// Task represents a single task item.
type Task struct {
	ID           int64
	Title        string
	Completed    bool
	CategoryID   int64 // 0 when uncategorized
	CategoryName string
}

// HasCategory reports whether the task references a category.
func (t Task) HasCategory() bool {
	return t.CategoryID != 0
}

// Category represents a task category.
type Category struct {
	ID   int64
	Name string
}

// NewTask holds the fields sent when creating a task.
// New tasks always start out pending.
type NewTask struct {
	Title      string
	CategoryID int64 // 0 for no category
}

// StatusError is returned when the remote service answers with a non-success status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Message)
}

// IsStatus reports whether err carries a non-success HTTP response.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// FindCategory returns the category with the given ID.
func FindCategory(categories []Category, id int64) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
