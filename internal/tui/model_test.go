package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	astar "github.com/pdrpinto/astar/v2"
)

func newModel(t *testing.T, width, height int, walls ...astar.Position) Model {
	t.Helper()
	grid, err := astar.NewGrid(width, height, astar.Position{X: 0, Y: 0}, astar.Position{X: width - 1, Y: height - 1})
	require.NoError(t, err)
	for _, w := range walls {
		require.NoError(t, grid.SetWall(w))
	}
	return New(astar.NewSyncEngine(astar.NewEngine(), grid), Config{Title: "test"})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestTicksRunToCompletion(t *testing.T) {
	m := newModel(t, 4, 1)
	require.NotNil(t, m.Init())

	var cmd tea.Cmd
	for i := 0; i < 10 && !m.Done(); i++ {
		m, cmd = update(t, m, tickMsg{generation: m.generation})
	}
	require.True(t, m.Done())
	assert.Nil(t, cmd)
	require.NotNil(t, m.Path())
	assert.Equal(t, 30, m.Path().Cost)
	assert.Contains(t, m.View(), "path found: cost 30")
}

func TestSingleStepPauses(t *testing.T) {
	m := newModel(t, 5, 5)

	m, cmd := update(t, m, runes("n"))
	assert.Nil(t, cmd)
	assert.True(t, m.paused)
	assert.Equal(t, 1, m.engine.Snapshot().StepIndex)

	// A tick scheduled before the pause is ignored.
	m, cmd = update(t, m, tickMsg{generation: 0})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.engine.Snapshot().StepIndex)
	assert.Contains(t, m.View(), "paused: step 1")
}

func TestPauseToggle(t *testing.T) {
	m := newModel(t, 5, 5)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.paused)
	assert.Nil(t, cmd)

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.paused)
	assert.NotNil(t, cmd)
}

func TestResetRestartsRun(t *testing.T) {
	m := newModel(t, 5, 5)
	m, _ = update(t, m, runes("n"))
	m, _ = update(t, m, runes("n"))
	require.Equal(t, 2, m.engine.Snapshot().StepIndex)

	m, _ = update(t, m, runes("r"))
	assert.Equal(t, 0, m.engine.Snapshot().StepIndex)
	assert.False(t, m.Done())
	assert.Nil(t, m.current)
}

func TestNoPathReported(t *testing.T) {
	m := newModel(t, 3, 3,
		astar.Position{X: 1, Y: 0}, astar.Position{X: 1, Y: 1}, astar.Position{X: 1, Y: 2})

	for i := 0; i < 20 && !m.Done(); i++ {
		m, _ = update(t, m, runes("n"))
	}
	require.True(t, m.Done())
	assert.ErrorIs(t, m.Err(), astar.ErrNoPathFound)
	assert.Contains(t, m.View(), "no path after")
}

func TestQuit(t *testing.T) {
	m := newModel(t, 2, 2)
	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
