// Package tui animates a search in the terminal. The model steps the engine
// once per tick, so the frontier can be watched growing cell by cell.
//
// The model is meant for the bubbletea event loop only.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	astar "github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/render"
)

// Config configures the model.
type Config struct {
	// Tick is the delay between two steps.
	Tick time.Duration
	// Title is shown above the grid.
	Title string
	// Color enables lipgloss styling of the grid.
	Color bool
	// Paused starts the model without ticking.
	Paused bool
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type tickMsg struct {
	generation int
}

// Model is the bubbletea model driving a SyncEngine.
type Model struct {
	engine *astar.SyncEngine
	config Config
	keys   keyMap
	help   help.Model

	// generation invalidates ticks scheduled before a pause or reset.
	generation int
	paused     bool
	done       bool
	current    *astar.Position
	path       *astar.Path
	err        error
	started    time.Time
	elapsed    time.Duration
}

// New creates a model around engine. The engine must already be initialized.
func New(engine *astar.SyncEngine, config Config) Model {
	if config.Tick <= 0 {
		config.Tick = 50 * time.Millisecond
	}
	return Model{
		engine: engine,
		config: config,
		keys:   defaultKeyMap(),
		help:   help.New(),
		paused: config.Paused,
	}
}

// Init starts ticking unless the model was created paused.
func (m Model) Init() tea.Cmd {
	if m.paused {
		return nil
	}
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	generation := m.generation
	return tea.Tick(m.config.Tick, func(time.Time) tea.Msg {
		return tickMsg{generation: generation}
	})
}

// Update handles key presses and ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			if m.done {
				return m, nil
			}
			m.paused = !m.paused
			m.generation++
			if m.paused {
				return m, nil
			}
			return m, m.tick()
		case key.Matches(msg, m.keys.Step):
			m.paused = true
			m.generation++
			m.step()
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			m.engine.Reset()
			m.generation++
			m.done, m.current, m.path, m.err = false, nil, nil, nil
			m.started, m.elapsed = time.Time{}, 0
			if m.paused {
				return m, nil
			}
			return m, m.tick()
		case key.Matches(msg, m.keys.Color):
			m.config.Color = !m.config.Color
			return m, nil
		}
	case tickMsg:
		if msg.generation != m.generation || m.paused || m.done {
			return m, nil
		}
		m.step()
		if m.done {
			return m, nil
		}
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *Model) step() {
	if m.done {
		return
	}
	if m.started.IsZero() {
		m.started = time.Now()
	}
	result := m.engine.Step()
	m.current = &result.Current
	switch {
	case result.Err != nil:
		m.err = result.Err
		m.done = true
	case result.Path != nil:
		m.path = result.Path
		m.done = true
	}
	if m.done {
		m.elapsed = time.Since(m.started)
	}
}

// Done reports whether the run reached a final outcome.
func (m Model) Done() bool { return m.done }

// Err is the error that ended the run, if any.
func (m Model) Err() error { return m.err }

// Path is the path found, if any.
func (m Model) Path() *astar.Path { return m.path }

// View renders the title, the grid, a status line and the key help.
func (m Model) View() string {
	var b strings.Builder
	if m.config.Title != "" {
		b.WriteString(titleStyle.Render(m.config.Title))
		b.WriteString("\n\n")
	}
	b.WriteString(render.Text(m.engine.View(), render.Options{Color: m.config.Color, Current: m.current}))
	b.WriteByte('\n')
	b.WriteString(m.status())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteByte('\n')
	return b.String()
}

func (m Model) status() string {
	snapshot := m.engine.Snapshot()
	switch {
	case m.err != nil && errors.Is(m.err, astar.ErrNoPathFound):
		return errorStyle.Render(fmt.Sprintf("no path after %d steps (%s)", snapshot.StepIndex, m.elapsed.Round(time.Millisecond)))
	case m.err != nil:
		return errorStyle.Render("error: " + m.err.Error())
	case m.path != nil:
		return statusStyle.Render(fmt.Sprintf("path found: cost %d, %d cells, %d steps (%s)",
			m.path.Cost, m.path.Len(), snapshot.StepIndex, m.elapsed.Round(time.Millisecond)))
	}
	state := "running"
	if m.paused {
		state = "paused"
	}
	return statusStyle.Render(fmt.Sprintf("%s: step %d, open %d, closed %d",
		state, snapshot.StepIndex, len(snapshot.Open), len(snapshot.Closed)))
}
