package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&AddCmd{})
	Register(&CreateCmd{})
}

// categoryFlags are shared by the commands that assign a category.
type categoryFlags struct {
	category    string
	newCategory string
}

func (f *categoryFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.category, "category", "", "")
	fs.StringVar(&f.category, "c", "", "")
	fs.StringVar(&f.newCategory, "new-category", "", "")
	fs.StringVar(&f.newCategory, "n", "", "")
}

// AddCmd implements the add command.
type AddCmd struct {
	flags categoryFlags
}

// SetCategory sets the existing category by ID or name (for testing).
func (c *AddCmd) SetCategory(ref string) {
	c.flags.category = ref
}

// SetNewCategory sets the category to create first (for testing).
func (c *AddCmd) SetNewCategory(name string) {
	c.flags.newCategory = name
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskboard add [--category <id|name>] [--new-category <name>] <title...>"
}
func (c *AddCmd) NeedsService() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	c.flags.register(fs)
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runAdd(ctx, cfg, svc, c.flags, args, out, errOut)
}

// CreateCmd is an alias for AddCmd.
type CreateCmd struct {
	flags categoryFlags
}

func (c *CreateCmd) Name() string      { return "create" }
func (c *CreateCmd) Aliases() []string { return nil }
func (c *CreateCmd) Synopsis() string  { return "Create a task (alias for add)" }
func (c *CreateCmd) Usage() string {
	return "taskboard create [--category <id|name>] [--new-category <name>] <title...>"
}
func (c *CreateCmd) NeedsService() bool { return true }

func (c *CreateCmd) RegisterFlags(fs *flag.FlagSet) {
	c.flags.register(fs)
}

func (c *CreateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runAdd(ctx, cfg, svc, c.flags, args, out, errOut)
}

// runAdd is the shared implementation for add and create commands.
func runAdd(ctx context.Context, cfg *config.Config, svc service.Service, flags categoryFlags, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	b := newBoard(cfg, svc, errOut)

	var categoryID int64
	if flags.category != "" {
		if err := b.FetchCategories(ctx); err != nil {
			return reportError(errOut, err)
		}
		id, err := resolveCategory(b.State(), flags.category)
		if err != nil {
			return reportError(errOut, err)
		}
		categoryID = id
	}

	b.SetDraftTitle(title)
	b.SelectCategory(categoryID)
	b.SetNewCategory(flags.newCategory)

	return finish(cfg, out, errOut, b.Create(ctx))
}
