// Copyright (c) 2026 topsecret Team
// topsecret - classified file viewer
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, its flags and the services every
// subcommand shares.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/audit"
	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/config"
	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/control"
	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/files"
	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/i18n"
	"github.com/UVA-CS-SDE-Sp26/ts-1-2-15/internal/logging"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// app holds the services shared by the commands of one invocation.
type app struct {
	cfgFile string
	verbose bool
	copy    bool
	// args are the raw command-line arguments, kept for flag error reporting.
	args []string

	cfg   config.Config
	ctrl  *control.Controller
	audit audit.Store

	stdout   io.Writer
	stderr   io.Writer
	copyFunc func(string) error
	// openAudit is replaceable in tests.
	openAudit func(ctx context.Context, dbType, dsn string) (audit.Store, error)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:   stdout,
		stderr:   stderr,
		copyFunc: clipboard.WriteAll,
		openAudit: func(ctx context.Context, dbType, dsn string) (audit.Store, error) {
			return audit.Open(ctx, dbType, dsn)
		},
	}
}

// setup loads configuration and builds the controller. It runs before every
// command.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd, a.cfgFile)
	if err != nil {
		// Localization is not configured yet; use the default language.
		i18n.Init("en")
		return &userError{msg: i18n.T("error.config", err)}
	}
	a.cfg = cfg

	logging.Configure(a.stderr, cfg.LogLevel)
	if a.verbose {
		logging.SetDebug(true)
	}
	i18n.Init(cfg.Language)
	if !i18n.Supported(cfg.Language) {
		logging.Warnf("%s", i18n.T("error.unknown_language", cfg.Language, strings.Join(i18n.AvailableLocales(), ", ")))
	}
	logging.Debugf("config: data_dir=%s key_path=%s language=%s audit=%t", cfg.DataDir, cfg.KeyPath, i18n.GetLang(), cfg.Audit.Enabled)

	a.audit = audit.Nop{}
	if cfg.Audit.Enabled {
		store, err := a.openAudit(cmd.Context(), cfg.Audit.Type, cfg.Audit.Dsn)
		if err != nil {
			logging.Warnf("%s", i18n.T("error.audit_open", err))
		} else {
			logging.Infof("access history: %s store opened", cfg.Audit.Type)
			a.audit = store
		}
	}

	a.ctrl = control.New(files.NewStore(cfg.DataDir), control.WithAudit(a.audit))
	return nil
}

func (a *app) teardown() {
	if a.audit == nil {
		return
	}
	if err := a.audit.Close(); err != nil {
		logging.Errorf("closing audit store: %v", err)
	}
	a.audit = nil
}

// NewRootCmd builds the command tree writing to stdout and stderr.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp(os.Stdout, os.Stderr))
}

func newRootCmd(a *app) *cobra.Command {
	// Localize help text with whatever language the environment asks for.
	// The configured language takes over once setup has run.
	i18n.Init(os.Getenv("TOPSECRET_LANGUAGE"))

	cmd := &cobra.Command{
		Use:           "topsecret [NN] [KEY_PATH]",
		Short:         i18n.T("cli.short"),
		Long:          i18n.T("cli.long"),
		Version:       compositeVersion(),
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRoot(cmd.Context(), args)
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetFlagErrorFunc(a.flagError)

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/topsecret/topsecret.yaml or ./topsecret.yaml)")
	pf.String("data-dir", "data", "directory holding the classified files")
	pf.String("key", "ciphers/key.txt", "default cipher key file")
	pf.String("lang", "en", `output language ("en", "de")`)
	pf.String("log-level", "warn", "diagnostic log level (debug, info, warn, error)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug diagnostics on stderr")
	cmd.Flags().BoolVar(&a.copy, "copy", false, "also copy the deciphered text to the clipboard")

	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		if c != cmd {
			defaultHelp(c, args)
			return
		}
		fmt.Fprintln(c.OutOrStdout(), c.Long)
		fmt.Fprintln(c.OutOrStdout())
		printUsage(c.OutOrStdout())
		fmt.Fprintln(c.OutOrStdout())
		fmt.Fprintln(c.OutOrStdout(), "Flags:")
		fmt.Fprint(c.OutOrStdout(), c.Flags().FlagUsages())
		if c.HasAvailableSubCommands() {
			fmt.Fprintln(c.OutOrStdout())
			fmt.Fprintln(c.OutOrStdout(), "Commands:")
			for _, sub := range c.Commands() {
				if sub.IsAvailableCommand() {
					fmt.Fprintf(c.OutOrStdout(), "  %-10s %s\n", sub.Name(), sub.Short)
				}
			}
		}
	})

	cmd.AddCommand(newBrowseCmd(a))
	cmd.AddCommand(newHistoryCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	return cmd
}

// printUsage writes the positional usage summary.
func printUsage(w io.Writer) {
	for _, id := range []string{"usage.title", "usage.list", "usage.show", "usage.show_key", "usage.help"} {
		fmt.Fprintln(w, i18n.T(id))
	}
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return execute(ctx, newApp(os.Stdout, os.Stderr), os.Args[1:])
}

func execute(ctx context.Context, a *app, args []string) int {
	cmd := newRootCmd(a)
	defer a.teardown()

	a.args = args
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("cli.error_prefix", err.Error()))
	var ue *userError
	if errors.As(err, &ue) && ue.usage {
		printUsage(cmd.OutOrStdout())
	}
	return 1
}
