package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/app"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage or validation.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks failures caused by how the command was called.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usage(format string, a ...any) error {
	return usageError{fmt.Errorf(format, a...)}
}

// usageArgs tags cobra's argument validation failures as usage errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// Execute runs the command line of the current process.
func Execute() int {
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Run dispatches args and returns an exit code.
func Run(args []string, in io.Reader, out, errOut io.Writer) int {
	r := &runner{in: in, out: out, errOut: errOut}
	r.theme, _ = ui.ThemeByName("")

	root := r.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return exitOK
	}
	r.theme.Fail(errOut, err.Error())
	return exitCode(err)
}

func exitCode(err error) int {
	var ue usageError
	switch {
	case errors.As(err, &ue),
		errors.Is(err, app.ErrEmptyDraft),
		errors.Is(err, app.ErrEditCompleted),
		errors.Is(err, app.ErrNotFound):
		return exitUsage
	}
	return exitError
}

// runner carries flags and streams for one invocation.
type runner struct {
	in          io.Reader
	out, errOut io.Writer

	dir      string
	themeArg string
	levelArg string

	cfg   config.Config
	theme ui.Theme
}

func (r *runner) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "A single-screen todo list",
		Long: `todo keeps a short list of tasks in a local SQLite file.
Run it without a subcommand for the interactive screen.`,
		Args:              usageArgs(cobra.NoArgs),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return r.configure() },
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := r.open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()
			return tui.Run(cmd.Context(), e.ctrl, r.theme)
		},
	}
	// unknown commands fail the NoArgs check above; unknown flags land here
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	pf := root.PersistentFlags()
	pf.StringVar(&r.dir, "dir", "", "data directory (default: user config dir/tada)")
	pf.StringVar(&r.themeArg, "theme", "", "color theme: "+strings.Join(ui.Names, ", "))
	pf.StringVar(&r.levelArg, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		r.lsCmd(),
		r.addCmd(),
		r.editCmd(),
		r.doneCmd(),
		r.rmCmd(),
		r.exportCmd(),
		r.importCmd(),
		r.configCmd(),
	)
	return root
}

// configure resolves the data directory, config file and flag overrides.
func (r *runner) configure() error {
	if r.dir == "" {
		d, err := config.DefaultDir()
		if err != nil {
			return err
		}
		r.dir = d
	}

	cfg, err := config.Load(filepath.Join(r.dir, config.FileName))
	if err != nil {
		return err
	}
	if r.themeArg != "" {
		cfg.Theme = r.themeArg
	}
	if r.levelArg != "" {
		cfg.LogLevel = r.levelArg
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	r.cfg = cfg
	r.theme, _ = ui.ThemeByName(cfg.Theme)
	return nil
}

// env is the open store, logger and controller for one command.
type env struct {
	store *sqlitestore.Store
	ctrl  *app.Controller
	log   *slog.Logger
	logf  io.Closer
}

func (r *runner) open(ctx context.Context) (*env, error) {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	level, _ := logging.ParseLevel(r.cfg.LogLevel)
	log, logf, err := logging.OpenFile(filepath.Join(r.dir, logging.FileName), level)
	if err != nil {
		return nil, err
	}

	s, err := sqlitestore.Open(filepath.Join(r.dir, sqlitestore.FileName))
	if err != nil {
		log.Error("failed to open database", "error", err)
		_ = logf.Close()
		return nil, err
	}
	return &env{store: s, ctrl: app.New(s, log), log: log, logf: logf}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Error("failed to close database", "error", err)
	}
	_ = e.logf.Close()
}

// do runs a controller command to completion. A nil command means the
// controller refused the action; its warning is returned.
func (e *env) do(cmd tea.Cmd) error {
	if cmd == nil {
		return e.ctrl.Warning()
	}
	return e.ctrl.Apply(cmd())
}

// load initializes the schema and fills the controller.
func (e *env) load(ctx context.Context) error {
	return e.do(e.ctrl.Load(ctx))
}
