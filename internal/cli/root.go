package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/amirbrooks/tman/internal/config"
	"github.com/amirbrooks/tman/internal/store"
)

// Exit codes
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitNotFound = 3
	ExitConflict = 4
	ExitInternal = 10
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Root       string
	ConfigFile string
	JSON       bool
	Verbose    bool
}

// app is the state shared by every command once flags are parsed.
type app struct {
	opts   *RootOptions
	cfg    *config.Config
	logger *log.Logger
}

// usageError marks bad flags, arguments, or configuration.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// Run executes the CLI with args (without the program name) and returns the
// process exit code.
func Run(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.NewWithOptions(stderr, log.Options{
		Level:  log.WarnLevel,
		Prefix: "tman",
	})
	cmd := NewRootCommand(logger)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	code := exitCode(err)
	if err != nil {
		logger.Debug("command failed", "err", err, "exit", code)
		fmt.Fprintf(stderr, "tman: %v\n", err)
	}
	return code
}

// NewRootCommand creates the tman command tree. Diagnostics go to logger.
func NewRootCommand(logger *log.Logger) *cobra.Command {
	a := &app{opts: &RootOptions{}, logger: logger}

	cmd := &cobra.Command{
		Use:           "tman",
		Short:         "Terminal TODO manager",
		Long:          "tman keeps a personal list of named todos with notes, tags, and due dates.",
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})

	cmd.PersistentFlags().StringVar(&a.opts.Root, "root", "", "store directory (default ~/.tman)")
	cmd.PersistentFlags().StringVar(&a.opts.ConfigFile, "config", "", "config file (default $XDG_CONFIG_HOME/tman/config.toml)")
	cmd.PersistentFlags().BoolVar(&a.opts.JSON, "json", false, "write results as JSON")
	cmd.PersistentFlags().BoolVarP(&a.opts.Verbose, "verbose", "v", false, "debug logging on stderr")

	cmd.AddCommand(
		newAddCommand(a),
		newListCommand(a),
		newShowCommand(a),
		newCompleteCommand(a),
		newUncompleteCommand(a),
		newAddNoteCommand(a),
		newEditNoteCommand(a),
		newRemoveNoteCommand(a),
		newAddTagCommand(a),
		newRemoveTagCommand(a),
		newAddDueDateCommand(a),
		newChangeDueDateCommand(a),
		newRemoveDueDateCommand(a),
		newDeleteCommand(a),
		newClearCommand(a),
		newDropCommand(a),
		newExportCommand(a),
	)
	return cmd
}

// setup resolves configuration and applies the configured log level.
func (a *app) setup() error {
	cfg, err := config.Load(config.Overrides{
		ConfigFile: a.opts.ConfigFile,
		Root:       a.opts.Root,
		Verbose:    a.opts.Verbose,
	})
	if err != nil {
		return &usageError{err}
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return &usageError{err}
	}
	a.logger.SetLevel(level)
	a.cfg = cfg
	a.logger.Debug("config resolved", "root", cfg.Root, "file", cfg.File, "export_dir", cfg.ExportDir)
	return nil
}

// withWorkspace opens the configured store for the duration of fn.
func (a *app) withWorkspace(fn func(ws *store.Workspace) error) error {
	ws, err := store.Open(a.cfg.Root, store.OpenOptions{LockTimeout: a.cfg.LockTimeout.Duration})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			a.logger.Warn("closing store", "err", cerr)
		}
	}()
	return fn(ws)
}

func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &usageError{err}
		}
		return nil
	}
}

func exitCode(err error) int {
	var ue *usageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &ue),
		errors.Is(err, store.ErrInvalid),
		errors.Is(err, store.ErrInvalidDate),
		errors.Is(err, store.ErrInvalidStatus):
		return ExitUsage
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrTagNotFound):
		return ExitNotFound
	case errors.Is(err, store.ErrAlreadyExists),
		errors.Is(err, store.ErrNoteAlreadyExists),
		errors.Is(err, store.ErrTagAlreadyExists):
		return ExitConflict
	default:
		return ExitInternal
	}
}
