package scenario

import (
	"fmt"
	"strings"
)

// Map glyphs. Any other non-space rune is an empty cell.
const (
	GlyphStart  = 'S'
	GlyphTarget = 'T'
	GlyphWall   = '#'
	GlyphEmpty  = '.'
)

// ParseMap reads a rectangular ASCII map, one row per line, top row y=0.
// Exactly one S and one T are required.
func ParseMap(text string) (*Scenario, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty map", ErrInvalidScenario)
	}

	s := &Scenario{Width: len([]rune(rows[0])), Height: len(rows)}
	var starts, targets int
	for y, row := range rows {
		cells := []rune(row)
		if len(cells) != s.Width {
			return nil, fmt.Errorf("%w: map row %d has %d cells, want %d", ErrInvalidScenario, y, len(cells), s.Width)
		}
		for x, r := range cells {
			switch r {
			case GlyphStart:
				s.Start = Coord{X: x, Y: y}
				starts++
			case GlyphTarget:
				s.Target = Coord{X: x, Y: y}
				targets++
			case GlyphWall:
				s.Walls = append(s.Walls, Coord{X: x, Y: y})
			}
		}
	}
	if starts != 1 || targets != 1 {
		return nil, fmt.Errorf("%w: map needs exactly one %c and one %c, found %d and %d",
			ErrInvalidScenario, GlyphStart, GlyphTarget, starts, targets)
	}
	return s, nil
}

// FormatMap renders the scenario layout in the ParseMap format.
func (s *Scenario) FormatMap() string {
	rows := make([][]rune, s.Height)
	for y := range rows {
		rows[y] = []rune(strings.Repeat(string(GlyphEmpty), s.Width))
	}
	for _, w := range s.Walls {
		rows[w.Y][w.X] = GlyphWall
	}
	rows[s.Target.Y][s.Target.X] = GlyphTarget
	rows[s.Start.Y][s.Start.X] = GlyphStart

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
