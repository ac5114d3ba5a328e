package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/delegator/internal/app"
	"github.com/dshills/delegator/internal/delegate/eventname"
)

type rootFlags struct {
	opts    app.Options
	logFile string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:           "delegator",
		Short:         "Delegate DOM events through a container and trace the walk",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&f.opts.ConfigPath, "config", "c", "", "Path to configuration file (toml, yaml or json)")
	pf.StringVar(&f.opts.HTMLPath, "html", "", "HTML document to load")
	pf.StringVar(&f.opts.Container, "container", "", "Id of the container element (default: document root)")
	pf.StringVar(&f.opts.Script, "script", "", "Lua listener script")
	pf.StringVar(&f.opts.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	pf.StringVar(&f.opts.LogLevel, "log-level", "", "Log level: trace|debug|info|warn|error|off")
	pf.StringSliceVar(&f.opts.Events, "bind", nil, "Event names to bind (repeatable, comma separated)")

	root.AddCommand(
		newFireCmd(f, stdout, stderr),
		newTUICmd(f),
		newEventsCmd(stdout),
	)
	return root
}

func newFireCmd(f *rootFlags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "fire <event:id>...",
		Short: "Trigger events and print one line per delegate step",
		Example: "  delegator fire --html page.html --container a --bind click click:a-a-a\n" +
			"  delegator fire -c delegator.toml --script listeners.lua focus:input",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := f.opts
			opts.Stdout = stdout
			opts.Stderr = stderr
			a, err := app.New(opts)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Fire(args)
		},
	}
}

func newTUICmd(f *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Drive the document with the mouse and keyboard in the terminal",
		Long: "Elements with a data-box=\"x y w h\" attribute are drawn as boxes.\n" +
			"Clicks, hovers, wheel and keys become native events. Esc or Ctrl-C quits.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := f.opts
			opts.Stdout = io.Discard
			opts.Stderr = io.Discard
			if f.logFile != "" {
				lf, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer lf.Close()
				opts.Stdout = lf
				opts.Stderr = lf
			}

			a, err := app.New(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to init terminal: %w", err)
			}
			defer screen.Fini()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := a.RunTUI(ctx, screen); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "Write logs and the delegation trace to this file")
	return cmd
}

func newEventsCmd(stdout io.Writer) *cobra.Command {
	var capturedOnly bool
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the default event names and which are bound in the capture phase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := eventname.Defaults()
			if capturedOnly {
				names = eventname.Captured()
			}
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "EVENT\tPHASE")
			for _, name := range names {
				phase := "bubble"
				if eventname.MustCapture(name) {
					phase = "capture"
				}
				fmt.Fprintf(tw, "%s\t%s\n", name, phase)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&capturedOnly, "captured", false, "Only list events bound in the capture phase")
	return cmd
}
