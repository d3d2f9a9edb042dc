// Package scenario loads grid layouts for the drivers: dimensions, endpoints,
// walls and the tick cadence, from YAML files or ASCII maps.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	astar "github.com/pdrpinto/astar/v2"
)

const (
	// MaxDimension bounds width and height; grids are dense.
	MaxDimension = 1024

	// DefaultTick is the cadence a driver steps the engine at.
	DefaultTick = 50 * time.Millisecond
)

// ErrInvalidScenario wraps every validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

var validate = validator.New()

// Coord is a cell coordinate as written in scenario files.
type Coord struct {
	X int `yaml:"x" json:"x" validate:"gte=0"`
	Y int `yaml:"y" json:"y" validate:"gte=0"`
}

// Position converts to the engine's coordinate type.
func (c Coord) Position() astar.Position { return astar.Position{X: c.X, Y: c.Y} }

// Scenario describes one grid layout.
type Scenario struct {
	Name   string        `yaml:"name" json:"name"`
	Width  int           `yaml:"width" json:"width" validate:"required,gte=1,lte=1024"`
	Height int           `yaml:"height" json:"height" validate:"required,gte=1,lte=1024"`
	Start  Coord         `yaml:"start" json:"start"`
	Target Coord         `yaml:"target" json:"target"`
	Walls  []Coord       `yaml:"walls,omitempty" json:"walls,omitempty" validate:"dive"`
	Map    string        `yaml:"map,omitempty" json:"-"`
	Tick   time.Duration `yaml:"tick,omitempty" json:"tick,omitempty" validate:"gte=0"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML. When the document carries a map, the map defines the
// dimensions, endpoints and walls.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if strings.TrimSpace(s.Map) != "" {
		fromMap, err := ParseMap(s.Map)
		if err != nil {
			return nil, err
		}
		fromMap.Name, fromMap.Tick, fromMap.Map = s.Name, s.Tick, s.Map
		s = *fromMap
	}
	if s.Tick == 0 {
		s.Tick = DefaultTick
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks field ranges, then that every coordinate is inside the
// grid and no wall sits on an endpoint.
func (s *Scenario) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	inside := func(c Coord) bool { return c.X < s.Width && c.Y < s.Height }
	if !inside(s.Start) {
		return fmt.Errorf("%w: start %v outside %dx%d", ErrInvalidScenario, s.Start.Position(), s.Width, s.Height)
	}
	if !inside(s.Target) {
		return fmt.Errorf("%w: target %v outside %dx%d", ErrInvalidScenario, s.Target.Position(), s.Width, s.Height)
	}
	for _, w := range s.Walls {
		if !inside(w) {
			return fmt.Errorf("%w: wall %v outside %dx%d", ErrInvalidScenario, w.Position(), s.Width, s.Height)
		}
		if w == s.Start || w == s.Target {
			return fmt.Errorf("%w: wall %v on an endpoint", ErrInvalidScenario, w.Position())
		}
	}
	return nil
}

// Grid builds a fresh grid for the scenario.
func (s *Scenario) Grid() (*astar.Grid, error) {
	grid, err := astar.NewGrid(s.Width, s.Height, s.Start.Position(), s.Target.Position())
	if err != nil {
		return nil, err
	}
	for _, w := range s.Walls {
		if err := grid.SetWall(w.Position()); err != nil {
			return nil, err
		}
	}
	return grid, nil
}

// Marshal encodes the scenario as YAML with explicit walls.
func (s *Scenario) Marshal() ([]byte, error) {
	out := *s
	out.Map = ""
	return yaml.Marshal(&out)
}
