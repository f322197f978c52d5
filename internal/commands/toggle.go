package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd flips a task between pending and completed.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string       { return "toggle" }
func (c *ToggleCmd) Aliases() []string  { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string   { return "Mark a task completed or pending" }
func (c *ToggleCmd) Usage() string      { return "taskboard toggle <ref>" }
func (c *ToggleCmd) NeedsService() bool { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, rest, err := ParseTaskRef(args)
	if err != nil {
		return refError(errOut, err)
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}

	b := newBoard(cfg, svc, errOut)
	if err := b.FetchTasks(ctx); err != nil {
		return reportError(errOut, err)
	}
	if _, err := lookupTask(b.State(), id); err != nil {
		return reportError(errOut, err)
	}

	if err := b.Toggle(ctx, id); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		t, _ := b.State().FindTask(id)
		output.FormatTask(out, t)
	}
	return exitcode.Success
}
