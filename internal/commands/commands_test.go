package commands_test

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	ctx := context.Background()
	if svc == nil {
		code = cmd.Run(ctx, cfg, nil, args, &outBuf, &errBuf)
	} else {
		code = cmd.Run(ctx, cfg, svc, args, &outBuf, &errBuf)
	}
	return outBuf.String(), errBuf.String(), code
}

// parseFlags registers cmd's flags on a fresh FlagSet and parses args.
func parseFlags(t *testing.T, cmd commands.Command, args ...string) {
	t.Helper()

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
}

// scenario seeds the two-task board used across the list tests.
func scenario() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddCategory("Errands")
	svc.AddCategory("Work")
	svc.AddTask("Buy milk", false, "Errands")
	svc.AddTask("Write report", true, "Work")
	return svc
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskboard 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
	for _, c := range commands.DefaultRegistry.All() {
		if !strings.Contains(stdout, "taskboard "+c.Name()) {
			t.Errorf("help output should mention %q", c.Name())
		}
	}
}

// Tests for list command
func TestListCommand_All(t *testing.T) {
	svc := scenario()

	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "list_all", stdout)
}

func TestListCommand_CategoryFilter(t *testing.T) {
	svc := scenario()

	cmd := &commands.ListCmd{}
	cmd.SetCategory("Errands")
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "list_errands", stdout)
}

func TestListCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ListCmd{}
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.HasPrefix(stdout, "no tasks found\n\n") {
		t.Errorf("expected empty notice, got %q", stdout)
	}
	if !strings.Contains(stdout, "Completed 0 (0%)") {
		t.Errorf("expected zero summary, got %q", stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

func TestListCommand_BackendError(t *testing.T) {
	svc := scenario()
	svc.ListTasksErr = testutil.ErrTransport

	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.HasPrefix(stderr, "error: backend error:") {
		t.Errorf("expected backend error, got %q", stderr)
	}
}

func TestListCommand_UnexpectedArg(t *testing.T) {
	cmd := &commands.ListCmd{}
	_, stderr, code := runCommand(t, cmd, scenario(), []string{"Errands"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unexpected argument: Errands\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for summary command
func TestSummaryCommand(t *testing.T) {
	svc := scenario()

	cmd := &commands.SummaryCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "summary_all", stdout)
}

func TestSummaryCommand_Filtered(t *testing.T) {
	svc := scenario()

	cmd := &commands.SummaryCmd{}
	cmd.SetCategory("Work")
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.HasPrefix(stdout, "Work - Task Status\n") {
		t.Errorf("expected filtered heading, got %q", stdout)
	}
	if !strings.Contains(stdout, "Completed 1 (100%)") {
		t.Errorf("expected one completed task, got %q", stdout)
	}
}

// Tests for add command
func TestAddCommand_Success(t *testing.T) {
	svc := scenario()

	cmd := &commands.AddCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"Call", "mom"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}

	tasks := svc.Tasks()
	last := tasks[len(tasks)-1]
	if last.Title != "Call mom" {
		t.Errorf("expected title 'Call mom', got %q", last.Title)
	}
	if last.HasCategory() {
		t.Errorf("expected uncategorized task, got %q", last.CategoryName)
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	stdout, _, code := runCommand(t, cmd, svc, []string{"Test"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
}

func TestAddCommand_NoTitle(t *testing.T) {
	for _, args := range [][]string{nil, {"  "}} {
		svc := testutil.NewFakeService()

		cmd := &commands.AddCmd{}
		_, stderr, code := runCommand(t, cmd, svc, args, false)

		if code != exitcode.UserError {
			t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
		}
		if stderr != "error: title required\n" {
			t.Errorf("expected title required error, got %q", stderr)
		}
		if n := len(svc.Calls()); n != 0 {
			t.Errorf("expected no remote calls, got %v", svc.Calls())
		}
	}
}

func TestAddCommand_CategoryByName(t *testing.T) {
	svc := scenario()

	cmd := &commands.AddCmd{}
	cmd.SetCategory("Work")
	_, stderr, code := runCommand(t, cmd, svc, []string{"Slides"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	tasks := svc.Tasks()
	if got := tasks[len(tasks)-1].CategoryName; got != "Work" {
		t.Errorf("expected category Work, got %q", got)
	}
}

func TestAddCommand_CategoryByID(t *testing.T) {
	svc := scenario()

	cmd := &commands.CreateCmd{}
	parseFlags(t, cmd, "--category", "1")
	_, stderr, code := runCommand(t, cmd, svc, []string{"Stamps"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	tasks := svc.Tasks()
	if got := tasks[len(tasks)-1].CategoryName; got != "Errands" {
		t.Errorf("expected category Errands, got %q", got)
	}
}

func TestAddCommand_UnknownCategory(t *testing.T) {
	svc := scenario()

	cmd := &commands.AddCmd{}
	cmd.SetCategory("Garden")
	_, stderr, code := runCommand(t, cmd, svc, []string{"Weed"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: category not found: Garden\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if n := svc.CallCount("CreateTask"); n != 0 {
		t.Errorf("expected no task created, got %d calls", n)
	}
}

func TestAddCommand_NewCategory(t *testing.T) {
	svc := scenario()

	cmd := &commands.AddCmd{}
	cmd.SetCategory("Work")
	cmd.SetNewCategory("Garden")
	_, stderr, code := runCommand(t, cmd, svc, []string{"Weed"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}

	calls := svc.Calls()
	catIdx, taskIdx := -1, -1
	for i, c := range calls {
		switch c {
		case "CreateCategory":
			catIdx = i
		case "CreateTask":
			taskIdx = i
		}
	}
	if catIdx < 0 || taskIdx < catIdx {
		t.Errorf("expected CreateCategory before CreateTask, got %v", calls)
	}

	tasks := svc.Tasks()
	if got := tasks[len(tasks)-1].CategoryName; got != "Garden" {
		t.Errorf("expected new category to win, got %q", got)
	}
}

func TestAddCommand_NewCategoryFails(t *testing.T) {
	svc := scenario()
	svc.CreateCategoryErr = testutil.ErrTransport

	cmd := &commands.AddCmd{}
	cmd.SetNewCategory("Garden")
	_, stderr, code := runCommand(t, cmd, svc, []string{"Weed"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.Contains(stderr, "create category") {
		t.Errorf("expected failing step in error, got %q", stderr)
	}
	if n := svc.CallCount("CreateTask"); n != 0 {
		t.Errorf("expected no task created, got %d calls", n)
	}
}

func TestAddCommand_RefreshFailureWarns(t *testing.T) {
	svc := scenario()
	svc.ListTasksErr = testutil.ErrTransport

	cmd := &commands.AddCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"Weed"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if !strings.HasPrefix(stderr, "warning: ") {
		t.Errorf("expected warning, got %q", stderr)
	}
}

// Tests for edit command
func TestEditCommand_Title(t *testing.T) {
	svc := scenario()

	cmd := &commands.EditCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"#1", "Buy", "oat", "milk"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if got := svc.Tasks()[0]; got.Title != "Buy oat milk" || got.CategoryName != "Errands" {
		t.Errorf("unexpected task after edit: %+v", got)
	}
}

func TestEditCommand_MoveCategory(t *testing.T) {
	svc := scenario()

	cmd := &commands.EditCmd{}
	cmd.SetCategory("Work")
	_, stderr, code := runCommand(t, cmd, svc, []string{"1", "Buy milk"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if got := svc.Tasks()[0].CategoryName; got != "Work" {
		t.Errorf("expected category Work, got %q", got)
	}
}

func TestEditCommand_NewCategoryOnUncategorizedTask(t *testing.T) {
	svc := scenario()
	svc.AddTask("Call mom", false, "")

	cmd := &commands.EditCmd{}
	parseFlags(t, cmd, "--new-category", "Family")
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"3", "Call", "mom"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if n := svc.CallCount("UpdateTaskCategory"); n != 1 {
		t.Errorf("expected 1 UpdateTaskCategory call, got %d (%v)", n, svc.Calls())
	}

	cats := svc.Categories()
	if len(cats) != 3 || cats[2].Name != "Family" {
		t.Fatalf("expected category Family to be created, got %+v", cats)
	}
	got := svc.Tasks()[2]
	if got.CategoryID != cats[2].ID || got.CategoryName != "Family" {
		t.Errorf("expected task in Family, got %+v", got)
	}
}

func TestEditCommand_CategoryFailureKeepsTitle(t *testing.T) {
	svc := scenario()
	svc.UpdateTaskCategoryErr = testutil.ErrTransport

	cmd := &commands.EditCmd{}
	cmd.SetCategory("Work")
	_, stderr, code := runCommand(t, cmd, svc, []string{"1", "Renamed"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "warning: ") || !strings.Contains(stderr, "update category") {
		t.Errorf("expected category warning, got %q", stderr)
	}
	if got := svc.Tasks()[0]; got.Title != "Renamed" || got.CategoryName != "Errands" {
		t.Errorf("unexpected task after edit: %+v", got)
	}
}

func TestEditCommand_NoTitle(t *testing.T) {
	svc := scenario()

	cmd := &commands.EditCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: title required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if n := len(svc.Calls()); n != 0 {
		t.Errorf("expected no remote calls, got %v", svc.Calls())
	}
}

func TestEditCommand_UnknownTask(t *testing.T) {
	svc := scenario()

	cmd := &commands.EditCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"9", "x"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task not found: 9\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if n := svc.CallCount("EditTaskTitle"); n != 0 {
		t.Errorf("expected no edit call, got %d", n)
	}
}

// Tests for toggle command
func TestToggleCommand_Success(t *testing.T) {
	svc := scenario()

	cmd := &commands.ToggleCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "   1  [x] Buy milk  (Errands)\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}

	tasks := svc.Tasks()
	if !tasks[0].Completed {
		t.Error("expected task 1 completed")
	}
	if !tasks[1].Completed {
		t.Error("expected task 2 unchanged")
	}
}

func TestToggleCommand_NoRef(t *testing.T) {
	cmd := &commands.ToggleCmd{}
	_, stderr, code := runCommand(t, cmd, scenario(), nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task reference required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestToggleCommand_InvalidRef(t *testing.T) {
	cmd := &commands.ToggleCmd{}
	_, stderr, code := runCommand(t, cmd, scenario(), []string{"abc"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid task reference: abc\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestToggleCommand_ServerRejects(t *testing.T) {
	svc := scenario()
	svc.ToggleTaskErr = testutil.ErrNotFound

	cmd := &commands.ToggleCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.HasPrefix(stderr, "error: backend error:") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	// One fetch to resolve the ref, one to reconcile after the rejection.
	if n := svc.CallCount("ListTasks"); n != 2 {
		t.Errorf("expected 2 ListTasks calls, got %d", n)
	}
}

// Tests for rm command
func TestRmCommand_Success(t *testing.T) {
	svc := scenario()

	cmd := &commands.RmCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"#2"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].ID != 1 {
		t.Errorf("expected only task 1 left, got %+v", tasks)
	}
}

func TestRmCommand_UnknownTask(t *testing.T) {
	svc := scenario()

	cmd := &commands.RmCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"7"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task not found: 7\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if n := svc.CallCount("DeleteTask"); n != 0 {
		t.Errorf("expected no delete call, got %d", n)
	}
}

func TestRmCommand_BackendError(t *testing.T) {
	svc := scenario()
	svc.DeleteTaskErr = testutil.ErrTransport

	cmd := &commands.RmCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.HasPrefix(stderr, "error: backend error:") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(svc.Tasks()) != 2 {
		t.Error("expected tasks unchanged")
	}
}

// Tests for categories commands
func TestCategoriesCommand(t *testing.T) {
	svc := scenario()

	cmd := &commands.CategoriesCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "   1  Errands\n   2  Work\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestCategoriesCommand_Empty(t *testing.T) {
	cmd := &commands.CategoriesCmd{}
	stdout, _, code := runCommand(t, cmd, testutil.NewFakeService(), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no categories found\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestAddCategoryCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCategoryCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"Home", "Office"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	cats := svc.Categories()
	if len(cats) != 1 || cats[0].Name != "Home Office" {
		t.Errorf("unexpected categories %+v", cats)
	}
}

func TestAddCategoryCommand_NoName(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCategoryCmd{}
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: category name required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if n := len(svc.Calls()); n != 0 {
		t.Errorf("expected no remote calls, got %v", svc.Calls())
	}
}

func TestRegistry_Aliases(t *testing.T) {
	for alias, name := range map[string]string{
		"done":   "toggle",
		"delete": "rm",
		"rename": "edit",
	} {
		cmd, ok := commands.DefaultRegistry.Find(alias)
		if !ok {
			t.Errorf("alias %q not registered", alias)
			continue
		}
		if cmd.Name() != name {
			t.Errorf("alias %q resolves to %q, want %q", alias, cmd.Name(), name)
		}
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.ToggleCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&commands.ToggleCmd{}); err == nil {
		t.Error("expected error registering a duplicate")
	}
}
