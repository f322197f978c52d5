package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/internal/tui"
)

// LogFile is the TUI log file inside the config directory.
const LogFile = "tui.log"

func init() {
	Register(&TUICmd{})
}

// logRedirector is implemented by services that log on their own.
type logRedirector interface {
	SetLogOutput(w io.Writer)
}

// TUICmd runs the interactive board.
type TUICmd struct{}

func (c *TUICmd) Name() string       { return "tui" }
func (c *TUICmd) Aliases() []string  { return []string{"board"} }
func (c *TUICmd) Synopsis() string   { return "Open the interactive task board" }
func (c *TUICmd) Usage() string      { return "taskboard tui" }
func (c *TUICmd) NeedsService() bool { return true }

func (c *TUICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TUICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// The screen belongs to the program, so logs go to a file.
	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	f, err := os.OpenFile(filepath.Join(cfg.Dir, LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(errOut, "error: open log file: %v\n", err)
		return exitcode.ConfigError
	}
	defer f.Close()

	if r, ok := svc.(logRedirector); ok {
		r.SetLogOutput(f)
	}

	b := board.New(svc, logging.FromConfig(cfg, f))
	if err := tui.Run(ctx, b, out); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
