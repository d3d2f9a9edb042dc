package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	astar "github.com/pdrpinto/astar/v2"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// control is a message the page sends over the websocket.
type control struct {
	Action string `json:"action"` // pause, resume, reset, step
}

// handleStream steps the engine once per tick and pushes every frame. The
// stream idles once the run is done until the client resets it.
func (s *Server) handleStream(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error("failed to upgrade the websocket", "error", err)
		return
	}
	defer ws.Close()

	stream := uuid.NewString()
	logger := s.logger
	logger.Info("stream connected", "stream", stream)

	controls := make(chan control)
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			var msg control
			if err := ws.ReadJSON(&msg); err != nil {
				logger.Info("stream disconnected", "stream", stream, "error", err.Error())
				return
			}
			select {
			case controls <- msg:
			case <-c.Request.Context().Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(s.config.Tick)
	defer ticker.Stop()

	paused := false
	if err := ws.WriteJSON(s.frame()); err != nil {
		return
	}
	for {
		var f frame
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case msg := <-controls:
			switch msg.Action {
			case "pause":
				paused = true
				continue
			case "resume":
				paused = false
				continue
			case "reset":
				s.engine.Reset()
				f = s.frame()
			case "step":
				f = s.stepFrame()
			default:
				continue
			}
		case <-ticker.C:
			if paused || s.engine.Phase() != astar.PhaseReady {
				continue
			}
			f = s.stepFrame()
		}
		if err := ws.WriteJSON(f); err != nil {
			logger.Warn("failed to write frame", "stream", stream, "error", err)
			return
		}
	}
}

func (s *Server) stepFrame() frame {
	result := s.engine.Step()
	f := s.frame()
	if result.Err != nil && !errors.Is(result.Err, astar.ErrNoPathFound) {
		f.Error = result.Err.Error()
	}
	return f
}
