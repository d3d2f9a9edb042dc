package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	astar "github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/internal/tui"
)

func newPlayCmd(flags *globalFlags) *cobra.Command {
	var (
		paused  bool
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Animate the search in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Logs would tear the screen, so they only go to --log-file.
			logger, closeLog, err := flags.logger(nil, "play")
			if err != nil {
				return err
			}
			defer closeLog()

			sc, grid, err := flags.grid()
			if err != nil {
				return err
			}
			engine := astar.NewSyncEngine(astar.NewEngine(astar.WithLogger(logger)), grid)
			model := tui.New(engine, tui.Config{
				Tick:   sc.Tick,
				Title:  fmt.Sprintf("%s (%dx%d)", sc.Name, sc.Width, sc.Height),
				Color:  !noColor && isTerminal(os.Stdout),
				Paused: paused,
			})
			if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("failed to run the terminal UI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&paused, "paused", false, "start paused; step with n")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colours")
	return cmd
}
