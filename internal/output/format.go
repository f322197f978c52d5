// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"taskboard/internal/service"
)

const (
	// MaxTitleWidth is the display width at which task titles are truncated.
	MaxTitleWidth = 60

	// Uncategorized is shown for tasks without a category.
	Uncategorized = "Uncategorized"

	// NoTasks is printed when the visible list is empty.
	NoTasks = "no tasks found"
)

// FormatTask formats a task line.
// Format: "{ID:>4}  [x] {TITLE}  ({CATEGORY})\n"
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s  (%s)\n", task.ID, CompletedMark(task.Completed), TaskTitle(task.Title), CategoryLabel(task))
}

// FormatCategory formats a category line.
// Format: "{ID:>4}  {NAME}\n"
func FormatCategory(w io.Writer, category service.Category) {
	fmt.Fprintf(w, "%4d  %s\n", category.ID, normalizeName(category.Name))
}

// CompletedMark returns "[x]" for completed tasks and "[ ]" otherwise.
func CompletedMark(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// CategoryLabel returns the task's category name or "Uncategorized".
func CategoryLabel(task service.Task) string {
	if strings.TrimSpace(task.CategoryName) == "" {
		return Uncategorized
	}
	return task.CategoryName
}

// TaskTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
// - Titles wider than MaxTitleWidth are truncated with an ellipsis
func TaskTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return runewidth.Truncate(title, MaxTitleWidth, "…")
}

// normalizeName normalizes a category name for display.
// Empty or whitespace-only names become "(unnamed)".
func normalizeName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(unnamed)"
	}
	return name
}
