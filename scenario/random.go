package scenario

import (
	"fmt"
	"math/rand"
)

// RandomOptions tunes Random.
type RandomOptions struct {
	Width    int
	Height   int
	Clusters int
	Steps    int
	Density  float64
	Seed     int64
}

// DefaultRandomOptions matches the layout the web driver starts with.
func DefaultRandomOptions() RandomOptions {
	return RandomOptions{Width: 40, Height: 24, Clusters: 8, Steps: 200, Density: 0.25, Seed: 1}
}

// Random places start and target at distinct random cells and grows wall
// clusters by random walks around them. Clusters is capped at the cell count
// and Steps at four times the cell count.
func Random(options RandomOptions) (*Scenario, error) {
	if options.Width < 1 || options.Height < 1 || options.Width*options.Height < 2 {
		return nil, fmt.Errorf("%w: random grid %dx%d needs room for two endpoints", ErrInvalidScenario, options.Width, options.Height)
	}
	if options.Width > MaxDimension || options.Height > MaxDimension {
		return nil, fmt.Errorf("%w: random grid %dx%d exceeds %d", ErrInvalidScenario, options.Width, options.Height, MaxDimension)
	}
	// Walks longer than this only revisit cells.
	cells := options.Width * options.Height
	options.Clusters = min(options.Clusters, cells)
	options.Steps = min(options.Steps, 4*cells)

	r := rand.New(rand.NewSource(options.Seed))
	start, target := Coord{}, Coord{}
	for {
		start = Coord{X: r.Intn(options.Width), Y: r.Intn(options.Height)}
		target = Coord{X: r.Intn(options.Width), Y: r.Intn(options.Height)}
		if start != target {
			break
		}
	}
	s := &Scenario{
		Name:   "random",
		Width:  options.Width,
		Height: options.Height,
		Start:  start,
		Target: target,
		Walls:  genWalls(r, options, start, target),
		Tick:   DefaultTick,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// clustered random walls via random walks
func genWalls(r *rand.Rand, options RandomOptions, start, goal Coord) []Coord {
	seen := map[Coord]bool{}
	var walls []Coord
	dirs := []Coord{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for c := 0; c < options.Clusters; c++ {
		p := Coord{X: r.Intn(options.Width), Y: r.Intn(options.Height)}
		for s := 0; s < options.Steps; s++ {
			if r.Float64() < options.Density && p != start && p != goal && !seen[p] {
				seen[p] = true
				walls = append(walls, p)
			}
			d := dirs[r.Intn(len(dirs))]
			np := Coord{X: p.X + d.X, Y: p.Y + d.Y}
			if np.X >= 0 && np.X < options.Width && np.Y >= 0 && np.Y < options.Height {
				p = np
			}
		}
	}
	return walls
}
