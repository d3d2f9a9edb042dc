package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	astar "github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/scenario"
)

type coordRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

func (r coordRequest) position() astar.Position { return astar.Position{X: *r.X, Y: *r.Y} }

func (s *Server) handleIndex(c *gin.Context) {
	page, err := static.ReadFile("static/index.html")
	if err != nil {
		c.String(http.StatusInternalServerError, "index.html not found")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// handleInit generates a random layout. Query parameters override the
// configured defaults: w, h, clusters, steps, density, seed.
func (s *Server) handleInit(c *gin.Context) {
	options := s.config.Random
	options.Seed = time.Now().UnixNano()
	if v, err := strconv.Atoi(c.Query("w")); err == nil && v > 4 {
		options.Width = v
	}
	if v, err := strconv.Atoi(c.Query("h")); err == nil && v > 4 {
		options.Height = v
	}
	if v, err := strconv.Atoi(c.Query("clusters")); err == nil && v > 0 {
		options.Clusters = v
	}
	if v, err := strconv.Atoi(c.Query("steps")); err == nil && v > 0 {
		options.Steps = v
	}
	if v, err := strconv.ParseFloat(c.Query("density"), 64); err == nil && v >= 0 && v <= 1 {
		options.Density = v
	}
	if v, err := strconv.ParseInt(c.Query("seed"), 10, 64); err == nil {
		options.Seed = v
	}

	sc, err := scenario.Random(options)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	grid, err := sc.Grid()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.Replace(grid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "w": options.Width, "h": options.Height, "seed": options.Seed})
}

// handleNext performs one step and returns the resulting frame. Exhaustion is
// a normal outcome and is reported in the frame.
func (s *Server) handleNext(c *gin.Context) {
	result := s.engine.Step()
	if result.Err != nil && !errors.Is(result.Err, astar.ErrNoPathFound) {
		c.JSON(statusFor(result.Err), gin.H{"error": result.Err.Error()})
		return
	}
	f := s.frame()
	if result.Err != nil {
		f.Error = result.Err.Error()
	}
	c.JSON(http.StatusOK, f)
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.frame())
}

func (s *Server) handleReset(c *gin.Context) {
	s.engine.Reset()
	c.JSON(http.StatusOK, s.frame())
}

func (s *Server) handleToggleWall(c *gin.Context) {
	var req coordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := s.engine.ToggleWall(req.position()); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.frame())
}

func (s *Server) handleMoveEndpoint(move func(astar.Position) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req coordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := move(req.position()); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, s.frame())
	}
}

func (s *Server) frame() frame {
	view, snap := s.engine.State()
	return newFrame(s.session, view, snap)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, astar.ErrIndexOutOfBounds), errors.Is(err, astar.ErrInvalidReconfiguration):
		return http.StatusBadRequest
	case errors.Is(err, astar.ErrNotInitialized):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
