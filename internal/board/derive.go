package board

import "taskboard/internal/service"

// Chart headings.
const (
	OverallTitle = "Overall Task Completion"
	statusSuffix = " - Task Status"
)

// Summary counts completed and pending tasks.
type Summary struct {
	Completed int
	Pending   int
}

// Total returns Completed + Pending.
func (s Summary) Total() int {
	return s.Completed + s.Pending
}

// FilterTasks returns tasks whose CategoryName equals category exactly,
// or all tasks when category is empty.
func FilterTasks(tasks []service.Task, category string) []service.Task {
	if category == "" {
		return tasks
	}
	result := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.CategoryName == category {
			result = append(result, t)
		}
	}
	return result
}

// Summarize counts completed tasks; the rest are pending.
func Summarize(tasks []service.Task) Summary {
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return Summary{Completed: completed, Pending: len(tasks) - completed}
}

// ChartTitle returns the summary heading for a filter.
func ChartTitle(filter string) string {
	if filter == "" {
		return OverallTitle
	}
	return filter + statusSuffix
}

// Visible returns the filtered task list.
func (s State) Visible() []service.Task {
	return FilterTasks(s.Tasks, s.Filter)
}

// Summary returns the completion counts of the visible tasks.
func (s State) Summary() Summary {
	return Summarize(s.Visible())
}

// ChartTitle returns the heading for the current filter.
func (s State) ChartTitle() string {
	return ChartTitle(s.Filter)
}
