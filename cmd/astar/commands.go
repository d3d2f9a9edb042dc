package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	astar "github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/logging"
	"github.com/pdrpinto/astar/v2/scenario"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logLevel  string
	logFormat string
	logFile   string

	scenarioPath string
	seed         int64
	width        int
	height       int
	density      float64
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:   "astar",
		Short: "Step-by-step A* pathfinding on a grid",
		Long: `astar searches a grid from a start cell to a target cell, one expansion
at a time. The layout comes from a scenario file (YAML or an ASCII map) or is
generated randomly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "text", "log format (text, json)")
	pf.StringVar(&flags.logFile, "log-file", "", "append logs to this file instead of stderr")
	pf.StringVarP(&flags.scenarioPath, "scenario", "s", "", "scenario file; a random layout is generated when empty")
	pf.Int64Var(&flags.seed, "seed", 1, "seed for the random layout")
	pf.IntVar(&flags.width, "width", 40, "width of the random layout")
	pf.IntVar(&flags.height, "height", 24, "height of the random layout")
	pf.Float64Var(&flags.density, "density", 0.25, "wall density of the random layout")

	rootCmd.AddCommand(
		newSolveCmd(flags),
		newPlayCmd(flags),
		newServeCmd(flags),
	)
	return rootCmd
}

// logger builds the logger for a command. fallback receives the output when
// no --log-file is set; a nil fallback discards it.
func (f *globalFlags) logger(fallback io.Writer, component string) (logging.Logger, func(), error) {
	level, err := logging.ParseLevel(f.logLevel)
	if err != nil {
		return nil, nil, err
	}
	out, closeFn := fallback, func() {}
	if f.logFile != "" {
		file, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closeFn = file, func() { _ = file.Close() }
	}
	if out == nil {
		return logging.NoOpLogger{}, closeFn, nil
	}
	return logging.New(logging.Config{Level: level, Format: f.logFormat, Output: out, Component: component}), closeFn, nil
}

func (f *globalFlags) scenario() (*scenario.Scenario, error) {
	if f.scenarioPath != "" {
		return scenario.Load(f.scenarioPath)
	}
	options := scenario.DefaultRandomOptions()
	options.Width, options.Height = f.width, f.height
	options.Density = f.density
	options.Seed = f.seed
	return scenario.Random(options)
}

func (f *globalFlags) grid() (*scenario.Scenario, *astar.Grid, error) {
	sc, err := f.scenario()
	if err != nil {
		return nil, nil, err
	}
	grid, err := sc.Grid()
	if err != nil {
		return nil, nil, err
	}
	return sc, grid, nil
}
