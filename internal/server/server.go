// Package server exposes a SyncEngine over HTTP: a JSON API for stepping and
// editing the layout, a websocket that streams one frame per tick, and the
// Prometheus metrics of the engine.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	astar "github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/logging"
	"github.com/pdrpinto/astar/v2/scenario"
)

//go:embed static/index.html
var static embed.FS

// Config configures a Server.
type Config struct {
	// Tick is the cadence of websocket streams.
	Tick time.Duration
	// Logger receives request and stream events.
	Logger logging.Logger
	// Gatherer backs /metrics; nil serves the default registry.
	Gatherer prometheus.Gatherer
	// Random holds the defaults for /init.
	Random scenario.RandomOptions
}

// Server serves one shared engine.
type Server struct {
	engine  *astar.SyncEngine
	config  Config
	logger  logging.Logger
	session string
	router  *gin.Engine
}

// New builds the server and its routes.
func New(engine *astar.SyncEngine, config Config) *Server {
	if config.Tick <= 0 {
		config.Tick = scenario.DefaultTick
	}
	if config.Logger == nil {
		config.Logger = logging.NoOpLogger{}
	}
	if config.Gatherer == nil {
		config.Gatherer = prometheus.DefaultGatherer
	}
	if config.Random.Width == 0 {
		config.Random = scenario.DefaultRandomOptions()
	}
	s := &Server{
		engine:  engine,
		config:  config,
		session: uuid.NewString(),
	}
	s.logger = logging.With(config.Logger, "session", s.session)
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware("astar"), s.requestLogger())

	router.GET("/", s.handleIndex)
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{})))
	router.GET("/init", s.handleInit)
	router.GET("/next", s.handleNext)
	router.GET("/ws", s.handleStream)

	api := router.Group("/api")
	api.GET("/state", s.handleState)
	api.POST("/step", s.handleNext)
	api.POST("/reset", s.handleReset)
	api.POST("/walls", s.handleToggleWall)
	api.POST("/start", s.handleMoveEndpoint(s.engine.MoveStart))
	api.POST("/target", s.handleMoveEndpoint(s.engine.MoveTarget))
	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()
		s.logger.Debug("request", "method", c.Request.Method, "path", c.Request.URL.Path,
			"status", c.Writer.Status(), "duration", time.Since(begin))
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Replace swaps in a reloaded layout.
func (s *Server) Replace(grid *astar.Grid) error {
	if err := s.engine.Replace(grid); err != nil {
		return err
	}
	s.logger.Info("layout replaced", "width", grid.Width(), "height", grid.Height())
	return nil
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.router, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("serving", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Listen tries addr first and falls back to a free loopback port.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err == nil {
		return ln, nil
	}
	ln, fallbackErr := net.Listen("tcp", "127.0.0.1:0")
	if fallbackErr != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}
