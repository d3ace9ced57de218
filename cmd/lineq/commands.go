package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/graeme-hill/lineq-go/lib"
)

func newRootCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:          "lineq",
		Short:        "Solve linear equations in one variable",
		Long:         `Interprets equations such as 2x+3=7 and prints the solution. With no subcommand it starts an interactive prompt.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, o)
		},
	}
	o.addFlags(cmd)

	cmd.AddCommand(
		newReplCmd(o),
		newSolveCmd(o),
		newBatchCmd(o),
		newMigrateCmd(o),
		newHistoryCmd(o),
	)
	return cmd
}

func newReplCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read equations from stdin until 'exit'",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, o)
		},
	}
}

func newSolveCmd(o *options) *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "solve EQUATION...",
		Short: "Solve each equation given as an argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := o.setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()
			if err := e.openHistory(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, equation := range args {
				t, err := e.interpreter.Trace(equation)
				e.record(cmd.Context(), equation, t.Solution, err)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s: error: %v\n", equation, err)
					continue
				}
				if trace {
					writeTrace(out, t, e.interpreter.Variable())
				}
				fmt.Fprintf(out, "%s: %s\n", equation, describe(t.Solution, e.interpreter.Variable()))
			}
			if failed > 0 {
				return errors.Errorf("%d of %d equations failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "print the output of every pipeline stage")
	return cmd
}

func newBatchCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "batch DIR",
		Short: "Solve every equation in the *.eq files of a directory and print a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := o.setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()
			if err := e.openHistory(cmd.Context()); err != nil {
				return err
			}

			batches, err := lib.ReadBatchesFromDir(args[0], e.interpreter)
			if err != nil {
				return err
			}
			for _, b := range batches {
				for _, entry := range b.Entries {
					e.record(cmd.Context(), entry.Equation, entry.Solution, entry.Err)
				}
			}
			return lib.RenderReport(cmd.OutOrStdout(), batches)
		},
	}
}

func newMigrateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply history store migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := o.setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()
			if e.cfg.Database == "" {
				return errors.New("--database is required")
			}
			if err := e.openHistory(cmd.Context()); err != nil {
				return err
			}

			migrations, err := lib.ReadMigrationsDir(e.cfg.Migrations)
			if err != nil {
				return err
			}
			if err := lib.RunMigrations(cmd.Context(), e.history.DB(), migrations); err != nil {
				return err
			}
			e.logger.Infof("applied migrations from %s", e.cfg.Migrations)
			return nil
		},
	}
}

func newHistoryCmd(o *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently interpreted equations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := o.setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()
			if e.cfg.Database == "" {
				return errors.New("--database is required")
			}
			if err := e.openHistory(cmd.Context()); err != nil {
				return err
			}

			entries, err := e.history.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tWHEN\tEQUATION\tOUTCOME\tVALUE")
			for _, h := range entries {
				value := h.Value
				if h.Error != "" {
					value = h.Error
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", h.ID, h.CreatedAt.Format("2006-01-02 15:04:05"), h.Equation, h.Outcome, value)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries to show")
	return cmd
}
