package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	astar "github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/internal/server"
	"github.com/pdrpinto/astar/v2/scenario"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var (
		addr  string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search to a browser and stream it over a websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch && flags.scenarioPath == "" {
				return errors.New("--watch needs --scenario")
			}
			logger, closeLog, err := flags.logger(cmd.ErrOrStderr(), "serve")
			if err != nil {
				return err
			}
			defer closeLog()

			sc, grid, err := flags.grid()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			engine := astar.NewEngine(astar.WithLogger(logger), astar.WithMetrics(astar.NewMetrics(reg)))

			random := scenario.DefaultRandomOptions()
			random.Width, random.Height, random.Density = flags.width, flags.height, flags.density
			srv := server.New(astar.NewSyncEngine(engine, grid), server.Config{
				Tick:     sc.Tick,
				Logger:   logger,
				Gatherer: reg,
				Random:   random,
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := server.Listen(addr)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "GUI: http://%s\n", ln.Addr().String())

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return srv.Serve(gctx, ln) })
			if watch {
				g.Go(func() error {
					return scenario.Watch(gctx, flags.scenarioPath, logger, func(s *scenario.Scenario) {
						grid, err := s.Grid()
						if err != nil {
							logger.Warn("reloaded scenario rejected", "error", err)
							return
						}
						if err := srv.Replace(grid); err != nil {
							logger.Warn("failed to replace layout", "error", err)
						}
					})
				})
			}
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address; a free port is used if it is taken")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the scenario file when it changes")
	return cmd
}
