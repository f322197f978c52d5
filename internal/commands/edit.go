package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd renames a task and optionally moves it to another category.
type EditCmd struct {
	flags categoryFlags
}

// SetCategory sets the existing category by ID or name (for testing).
func (c *EditCmd) SetCategory(ref string) {
	c.flags.category = ref
}

// SetNewCategory sets the category to create first (for testing).
func (c *EditCmd) SetNewCategory(name string) {
	c.flags.newCategory = name
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"rename"} }
func (c *EditCmd) Synopsis() string  { return "Change a task's title and category" }
func (c *EditCmd) Usage() string {
	return "taskboard edit [--category <id|name>] [--new-category <name>] <ref> <title...>"
}
func (c *EditCmd) NeedsService() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.flags.register(fs)
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, rest, err := ParseTaskRef(args)
	if err != nil {
		return refError(errOut, err)
	}

	title := strings.Join(rest, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	b := newBoard(cfg, svc, errOut)
	if err := b.FetchTasks(ctx); err != nil {
		return reportError(errOut, err)
	}
	if err := b.StartEdit(id); err != nil {
		return reportError(errOut, err)
	}

	if c.flags.category != "" {
		if err := b.FetchCategories(ctx); err != nil {
			return reportError(errOut, err)
		}
		categoryID, err := resolveCategory(b.State(), c.flags.category)
		if err != nil {
			return reportError(errOut, err)
		}
		b.SelectCategory(categoryID)
	}

	b.SetDraftTitle(title)
	b.SetNewCategory(c.flags.newCategory)

	return finish(cfg, out, errOut, b.SaveEdit(ctx))
}

// refError reports a task reference parse error.
func refError(errOut io.Writer, err error) int {
	if errors.Is(err, ErrTaskRefRequired) {
		fmt.Fprintln(errOut, "error: task reference required")
	} else {
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.UserError
}
