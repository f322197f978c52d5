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
	Register(&SummaryCmd{})
}

// SummaryCmd prints only the completion chart.
type SummaryCmd struct {
	category string
}

// SetCategory sets the category filter (for testing).
func (c *SummaryCmd) SetCategory(name string) {
	c.category = name
}

func (c *SummaryCmd) Name() string       { return "summary" }
func (c *SummaryCmd) Aliases() []string  { return nil }
func (c *SummaryCmd) Synopsis() string   { return "Show completed vs. pending tasks" }
func (c *SummaryCmd) Usage() string      { return "taskboard summary [--category <name>]" }
func (c *SummaryCmd) NeedsService() bool { return true }

func (c *SummaryCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.category, "c", "", "")
}

func (c *SummaryCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
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
	output.FormatSummary(out, st.ChartTitle(), st.Summary())
	return exitcode.Success
}
