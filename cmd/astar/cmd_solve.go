package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	astar "github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/render"
)

func newSolveCmd(flags *globalFlags) *cobra.Command {
	var (
		maxSteps int
		timeout  time.Duration
		noColor  bool
		quiet    bool
		tracing  bool
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run the search to completion and print the grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := flags.logger(cmd.ErrOrStderr(), "solve")
			if err != nil {
				return err
			}
			defer closeLog()

			if tracing {
				shutdown, err := setupTracing(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				defer shutdown()
			}

			sc, grid, err := flags.grid()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			begin := time.Now()
			result, solveErr := astar.FindPath(ctx, grid, astar.WithLogger(logger), astar.WithMaxSteps(maxSteps))
			elapsed := time.Since(begin)

			out := cmd.OutOrStdout()
			if !quiet {
				color := !noColor && isTerminal(out)
				fmt.Fprint(out, render.Text(grid.Snapshot(), render.Options{Color: color}))
				fmt.Fprintln(out, render.Legend(color))
			}
			if solveErr != nil {
				fmt.Fprintf(out, "%s: no result after %d expansions (%s)\n", sc.Name, result.ExpandedNodes, elapsed.Round(time.Microsecond))
				return solveErr
			}
			fmt.Fprintf(out, "%s: cost %d, %d cells, %d expansions (%s)\n",
				sc.Name, result.TotalCost, result.Path.Len(), result.ExpandedNodes, elapsed.Round(time.Microsecond))
			return nil
		},
	}
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "stop after this many expansions (0 = unbounded)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up after this long (0 = no limit)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colours even on a terminal")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the summary line")
	cmd.Flags().BoolVar(&tracing, "trace", false, "print the search span to stderr")
	return cmd
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
