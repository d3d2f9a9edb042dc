package server

import (
	astar "github.com/pdrpinto/astar/v2"
)

type point = [2]int

// frame is one rendered step as the browser page consumes it.
type frame struct {
	Session string  `json:"session"`
	RunID   string  `json:"runId"`
	Phase   string  `json:"phase"`
	Step    int     `json:"step"`
	W       int     `json:"w"`
	H       int     `json:"h"`
	Walls   []point `json:"walls"`
	Open    []point `json:"open,omitempty"`
	Closed  []point `json:"closed,omitempty"`
	Current point   `json:"current"`
	Start   point   `json:"start"`
	Goal    point   `json:"goal"`
	Done    bool    `json:"done"`
	Found   bool    `json:"found"`
	Cost    int     `json:"cost,omitempty"`
	Path    []point `json:"path,omitempty"`
	Error   string  `json:"error,omitempty"`
}

func toPoint(p astar.Position) point { return point{p.X, p.Y} }

func toPoints(ps []astar.Position) []point {
	if len(ps) == 0 {
		return nil
	}
	res := make([]point, 0, len(ps))
	for _, p := range ps {
		res = append(res, toPoint(p))
	}
	return res
}

func newFrame(session string, view *astar.View, snap astar.StepSnapshot) frame {
	f := frame{
		Session: session,
		RunID:   snap.RunID,
		Phase:   snap.Phase,
		Step:    snap.StepIndex,
		W:       view.Width(),
		H:       view.Height(),
		Walls:   []point{},
		Open:    toPoints(snap.Open),
		Closed:  toPoints(snap.Closed),
		Current: toPoint(snap.Current),
		Start:   toPoint(view.Start()),
		Goal:    toPoint(view.Target()),
		Done:    snap.Done,
		Found:   snap.Found,
	}
	for y := 0; y < view.Height(); y++ {
		for x := 0; x < view.Width(); x++ {
			if c, _ := view.Cell(astar.Position{X: x, Y: y}); c.State == astar.StateWall {
				f.Walls = append(f.Walls, point{x, y})
			}
		}
	}
	if snap.Path != nil {
		f.Path = toPoints(snap.Path.Positions)
		f.Cost = snap.Path.Cost
	}
	return f
}
