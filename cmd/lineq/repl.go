package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/graeme-hill/lineq-go/lib"
)

const exitCommand = "exit"

func runRepl(cmd *cobra.Command, o *options) error {
	e, err := o.setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	if err := e.openHistory(cmd.Context()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Linear equation interpreter (one variable)")
	fmt.Fprintf(out, "Type '%s' to quit\n", exitCommand)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, exitCommand) {
			return nil
		}
		if line == "" {
			continue
		}

		t, err := e.interpreter.Trace(line)
		e.record(cmd.Context(), line, t.Solution, err)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "Solution: %s\n", describe(t.Solution, e.interpreter.Variable()))
	}
}

func describe(solution lib.Solution, variable rune) string {
	if solution.Kind == lib.SolutionUnique {
		return fmt.Sprintf("%c = %s", variable, solution)
	}
	return solution.String()
}

func writeTrace(w io.Writer, t lib.Trace, variable rune) {
	fmt.Fprintf(w, "Tokens: %q\n", t.TokenStrings())
	fmt.Fprintf(w, "Parsed equation: %s\n", t.Sides)
	fmt.Fprintf(w, "Normalized equation: %s (%s)\n", t.Canonical, t.Canonical.Equation(variable))
	fmt.Fprintf(w, "Solution: %s\n", t.Solution)
	fmt.Fprintf(w, "Verification: %s\n", t.Verification)
}
