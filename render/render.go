// Package render draws grid views as text, optionally styled with lipgloss.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	astar "github.com/pdrpinto/astar/v2"
)

// GlyphCurrent marks the cell expanded by the latest step.
const GlyphCurrent = '@'

var glyphs = map[astar.CellState]rune{
	astar.StateNone:   '.',
	astar.StateStart:  'S',
	astar.StateTarget: 'T',
	astar.StateOpen:   'o',
	astar.StateClosed: 'x',
	astar.StatePath:   '*',
	astar.StateWall:   '#',
}

var styles = map[astar.CellState]lipgloss.Style{
	astar.StateNone:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	astar.StateStart:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
	astar.StateTarget: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	astar.StateOpen:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	astar.StateClosed: lipgloss.NewStyle().Foreground(lipgloss.Color("166")),
	astar.StatePath:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
	astar.StateWall:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")),
}

var currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true)

// Options controls Text.
type Options struct {
	// Color styles each glyph; leave false for plain output.
	Color bool
	// Current, when set, is drawn with GlyphCurrent unless it is an endpoint.
	Current *astar.Position
}

// Glyph returns the character used for a state.
func Glyph(state astar.CellState) rune {
	if g, ok := glyphs[state]; ok {
		return g
	}
	return '?'
}

// Text renders view row by row, top row first, cells separated by a space.
func Text(view *astar.View, options Options) string {
	var b strings.Builder
	for y := 0; y < view.Height(); y++ {
		for x := 0; x < view.Width(); x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			pos := astar.Position{X: x, Y: y}
			cell, _ := view.Cell(pos)
			b.WriteString(cellString(cell, options))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func cellString(cell astar.Cell, options Options) string {
	glyph, style := Glyph(cell.State), styles[cell.State]
	if options.Current != nil && *options.Current == cell.Pos && !cell.State.IsEndpoint() && cell.State != astar.StatePath {
		glyph, style = GlyphCurrent, currentStyle
	}
	if !options.Color {
		return string(glyph)
	}
	return style.Render(string(glyph))
}

// Legend lists every glyph with its state name.
func Legend(color bool) string {
	order := []astar.CellState{
		astar.StateStart, astar.StateTarget, astar.StateWall,
		astar.StateOpen, astar.StateClosed, astar.StatePath,
	}
	parts := make([]string, 0, len(order)+1)
	for _, state := range order {
		glyph := string(Glyph(state))
		if color {
			glyph = styles[state].Render(glyph)
		}
		parts = append(parts, glyph+" "+state.String())
	}
	current := string(GlyphCurrent)
	if color {
		current = currentStyle.Render(current)
	}
	parts = append(parts, current+" current")
	return strings.Join(parts, "  ")
}
