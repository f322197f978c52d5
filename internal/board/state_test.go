package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/service"
)

func scenarioTasks() []service.Task {
	return []service.Task{
		{ID: 1, Title: "Buy milk", Completed: false, CategoryID: 10, CategoryName: "Errands"},
		{ID: 2, Title: "Pay rent", Completed: true, CategoryID: 20, CategoryName: "Finance"},
	}
}

func TestScenario_FilterErrands(t *testing.T) {
	s := State{}.WithTasks(scenarioTasks()).WithFilter("Errands")

	visible := s.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, int64(1), visible[0].ID)
	assert.Equal(t, Summary{Completed: 0, Pending: 1}, s.Summary())
	assert.Equal(t, "Errands - Task Status", s.ChartTitle())
}

func TestScenario_NoFilter(t *testing.T) {
	s := State{}.WithTasks(scenarioTasks())

	assert.Equal(t, scenarioTasks(), s.Visible())
	assert.Equal(t, Summary{Completed: 1, Pending: 1}, s.Summary())
	assert.Equal(t, OverallTitle, s.ChartTitle())
}

func TestFilterTasks_Properties(t *testing.T) {
	lists := [][]service.Task{
		nil,
		{},
		scenarioTasks(),
		{
			{ID: 1, CategoryName: "A", Completed: true},
			{ID: 2, CategoryName: "a"},
			{ID: 3, CategoryName: "A "},
			{ID: 4},
			{ID: 5, CategoryName: "A"},
		},
	}
	filters := []string{"", "A", "Errands", "Finance", "missing"}

	for _, l := range lists {
		for _, f := range filters {
			got := FilterTasks(l, f)
			if f == "" {
				assert.Equal(t, l, got)
			} else {
				for _, task := range got {
					assert.Equal(t, f, task.CategoryName)
				}
				want := 0
				for _, task := range l {
					if task.CategoryName == f {
						want++
					}
				}
				assert.Len(t, got, want)
			}

			sum := Summarize(got)
			assert.Equal(t, len(got), sum.Completed+sum.Pending)
			assert.Equal(t, len(got), sum.Total())
		}
	}
}

func TestFilterTasks_ExactMatchOnly(t *testing.T) {
	tasks := []service.Task{{ID: 1, CategoryName: "Home"}, {ID: 2, CategoryName: "home"}, {ID: 3, CategoryName: "Homework"}}
	got := FilterTasks(tasks, "Home")
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
	assert.Equal(t, Summary{}, State{}.WithFilter("Errands").Summary())
}

func TestPatchCompleted_OnlyTarget(t *testing.T) {
	before := State{}.WithTasks(scenarioTasks())
	after := before.PatchCompleted(1, true)

	assert.True(t, after.Tasks[0].Completed)
	want := scenarioTasks()[0]
	want.Completed = true
	assert.Equal(t, want, after.Tasks[0])
	assert.Equal(t, scenarioTasks()[1], after.Tasks[1])

	// previous snapshot is untouched
	assert.False(t, before.Tasks[0].Completed)
}

func TestPatchTitle_UnknownIDIsNoop(t *testing.T) {
	s := State{}.WithTasks(scenarioTasks()).PatchTitle(99, "x")
	assert.Equal(t, scenarioTasks(), s.Tasks)
}

func TestWithTasks_Copies(t *testing.T) {
	tasks := scenarioTasks()
	s := State{}.WithTasks(tasks)
	tasks[0].Title = "changed"
	assert.Equal(t, "Buy milk", s.Tasks[0].Title)
}

func TestEditModeTransitions(t *testing.T) {
	s := State{}.WithTasks(scenarioTasks()).WithNewCategory("Stale")
	assert.False(t, s.Mode.IsEditing())
	assert.Equal(t, "idle", s.Mode.String())

	s = s.StartEdit(scenarioTasks()[1])
	id, ok := s.Mode.TaskID()
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)
	assert.Equal(t, Draft{Title: "Pay rent", CategoryID: 20}, s.Draft)

	// only one task can be under edit
	s = s.StartEdit(scenarioTasks()[0])
	id, _ = s.Mode.TaskID()
	assert.Equal(t, int64(1), id)

	s = s.CancelEdit()
	assert.Equal(t, Idle(), s.Mode)
	assert.Equal(t, Draft{}, s.Draft)
}

func TestClearDraft_KeepsNewCategory(t *testing.T) {
	s := State{}.WithDraftTitle("a").WithDraftCategory(3).WithNewCategory("b").ClearDraft()
	assert.Equal(t, Draft{NewCategory: "b"}, s.Draft)
}

func TestFindCategoryByName(t *testing.T) {
	s := State{}.WithCategories([]service.Category{{ID: 1, Name: "Home"}, {ID: 2, Name: "Work"}})
	c, ok := s.FindCategoryByName("Work")
	require.True(t, ok)
	assert.Equal(t, int64(2), c.ID)

	_, ok = s.FindCategoryByName("work")
	assert.False(t, ok)
}
