package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskboard help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskboard                                          List all tasks and the completion summary
  taskboard list [common flags] [--category <name>]  List tasks in one category
  taskboard add [common flags] [--category <id|name>] [--new-category <name>] <title...>
  taskboard create [common flags] [--category <id|name>] [--new-category <name>] <title...>
  taskboard edit [common flags] [--category <id|name>] [--new-category <name>] <ref> <title...>
  taskboard toggle [common flags] <ref>              (alias: done)
  taskboard rm [common flags] <ref>                  (alias: delete)
  taskboard summary [common flags] [--category <name>]
  taskboard categories [common flags]
  taskboard addcategory [common flags] <name...>
  taskboard tui [common flags]
  taskboard help
  taskboard version

A task <ref> is the ID shown by list, optionally prefixed with '#'.

Common flags:
  --config <dir>   Override config directory
  --api <url>      Override the API base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
