package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/meenmo/ycurve/cmd/curvectl/internal/job"
	"github.com/meenmo/ycurve/cmd/curvectl/internal/printer"
	"github.com/meenmo/ycurve/interp"
	"github.com/meenmo/ycurve/market"
	"github.com/meenmo/ycurve/registry"
	"github.com/meenmo/ycurve/service"
)

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "curvectl",
		Short: "Bootstrap and query yield curves",
		Long: `curvectl builds discount curves from market quotes and answers
discount factor, zero rate and forward rate queries against them.

A job file lists the curves to build, in dependency order, and the
queries to run once they are built. Results are written as JSON.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newRunCmd(&logLevel), newInterpolationsCmd(), newIndicesCmd())
	return root
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func newRunCmd(logLevel *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build the curves of a job file and run its queries",
		Example: `  curvectl run -f job.yaml
  cat job.yaml | curvectl run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := printer.New(cmd.ErrOrStderr())

			logger, err := newLogger(cmd.ErrOrStderr(), *logLevel)
			if err != nil {
				return p.Error("Invalid flag", err)
			}

			in := cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return p.Error("Cannot open job file", err)
				}
				defer f.Close()
				in = f
			}

			j, err := job.Decode(in)
			if err != nil {
				return p.Error("Invalid job", err)
			}

			svc, err := service.New(registry.New(), j.Config, logger)
			if err != nil {
				return p.Error("Invalid job", err)
			}
			report := job.Report{}
			for _, spec := range j.Curves {
				res, err := job.BuildCurve(svc, spec)
				if err != nil {
					return p.Error(fmt.Sprintf("Failed to build curve %q", spec.Handle), err)
				}
				for _, w := range res.Warnings {
					p.Warning("%s: %s", res.Handle, w)
				}
				p.Success("Built %s (%d pillars)", res.Display, len(res.Pillars))
				report.Curves = append(report.Curves, res)
			}
			for _, q := range j.Queries {
				res, err := job.RunQuery(svc, q)
				if err != nil {
					return p.Error(fmt.Sprintf("Query on %q failed", q.Handle), err)
				}
				report.Queries = append(report.Queries, res)
			}

			report.Handles = svc.Store().Handles()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "job file (YAML or JSON); stdin when empty or -")
	return cmd
}

func newInterpolationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interpolations",
		Short: "List the supported interpolation methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, m := range interp.Methods() {
				fmt.Fprintln(cmd.OutOrStdout(), m.String())
			}
			return nil
		},
	}
}

func newIndicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indices",
		Short: "List the built-in reference rate indices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, name := range market.Names() {
				kind := "term"
				if market.IsOvernight(name) {
					kind = "overnight"
				}
				fmt.Fprintf(w, "%-10s %s\n", name, kind)
			}
			return nil
		},
	}
}
