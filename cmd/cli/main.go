package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/ledger/infra/initializer"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/shell"
	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type options struct {
	envFile string
	noColor bool
	verbose bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "ledger",
		Short:        "Interactive checking-account ledger",
		Long:         "Runs the menu-driven ledger: customers, accounts, deposits, withdrawals and statements, all kept in memory.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, in, out, errOut)
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.Flags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "environment file to load")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every operation")
	return cmd
}

func run(ctx context.Context, opts *options, in io.Reader, out, errOut io.Writer) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	if !opts.verbose {
		cfg.Log.Level = int(log.WarnLevel)
	}

	deps, cleanup, err := initializer.InitializeDependencies(cfg, errOut)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer cleanup()

	a, err := app.New(deps, cfg)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	sh := shell.New(a.Ledger, in, out,
		shell.WithColor(!opts.noColor && isTerminal(out)),
		shell.WithLogger(deps.Logger),
	)
	if err := sh.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
