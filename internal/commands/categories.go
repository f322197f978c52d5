package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

func init() {
	Register(&CategoriesCmd{})
	Register(&AddCategoryCmd{})
}

// CategoriesCmd lists categories.
type CategoriesCmd struct{}

func (c *CategoriesCmd) Name() string       { return "categories" }
func (c *CategoriesCmd) Aliases() []string  { return nil }
func (c *CategoriesCmd) Synopsis() string   { return "List categories" }
func (c *CategoriesCmd) Usage() string      { return "taskboard categories" }
func (c *CategoriesCmd) NeedsService() bool { return true }

func (c *CategoriesCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CategoriesCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	b := newBoard(cfg, svc, errOut)
	if err := b.FetchCategories(ctx); err != nil {
		return reportError(errOut, err)
	}

	categories := b.State().Categories
	if len(categories) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no categories found")
	}
	for _, cat := range categories {
		output.FormatCategory(out, cat)
	}
	return exitcode.Success
}

// AddCategoryCmd creates a category without a task.
type AddCategoryCmd struct{}

func (c *AddCategoryCmd) Name() string       { return "addcategory" }
func (c *AddCategoryCmd) Aliases() []string  { return []string{"createcategory"} }
func (c *AddCategoryCmd) Synopsis() string   { return "Create a category" }
func (c *AddCategoryCmd) Usage() string      { return "taskboard addcategory <name...>" }
func (c *AddCategoryCmd) NeedsService() bool { return true }

func (c *AddCategoryCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCategoryCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: category name required")
		return exitcode.UserError
	}

	b := newBoard(cfg, svc, errOut)
	_, err := b.CreateCategory(ctx, name)
	return finish(cfg, out, errOut, err)
}
