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
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	category string
}

// SetCategory sets the category filter (for testing).
func (c *ListCmd) SetCategory(name string) {
	c.category = name
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return nil }
func (c *ListCmd) Synopsis() string   { return "List tasks with a completion summary" }
func (c *ListCmd) Usage() string      { return "taskboard list [--category <name>]" }
func (c *ListCmd) NeedsService() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.category, "c", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	b := newBoard(cfg, svc, errOut)
	if err := b.FetchTasks(ctx); err != nil {
		return reportError(errOut, err)
	}
	b.SetFilter(c.category)

	st := b.State()
	visible := st.Visible()
	if len(visible) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, output.NoTasks)
		}
	}
	for _, t := range visible {
		output.FormatTask(out, t)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out)
		output.FormatSummary(out, st.ChartTitle(), st.Summary())
	}
	return exitcode.Success
}
