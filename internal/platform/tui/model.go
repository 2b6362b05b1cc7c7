package tui

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/game"
)

// helpRows is kept free below the game for the full help view.
const helpRows = 2

// Options configures a terminal session.
type Options struct {
	TickInterval  time.Duration
	ScreenshotDir string // Where ctrl+s writes PNG frames
	Logger        *log.Logger
}

// Model is the Bubble Tea model for running the game.
// Input is collected between ticks and handed to the controller as one batch.
type Model struct {
	ctrl    *game.Controller
	canvas  *Canvas
	styles  *StyleCache
	mapper  *KeyMapper
	keys    KeyMap
	help    help.Model
	opts    Options
	pending []core.Event
}

// NewModel creates a model that steps ctrl and shows what it draws on canvas.
// The controller must have been created with canvas as its renderer.
func NewModel(ctrl *game.Controller, canvas *Canvas, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	keys := DefaultKeyMap()
	return Model{
		ctrl:   ctrl,
		canvas: canvas,
		styles: NewStyleCache(),
		mapper: NewKeyMapper(keys),
		keys:   keys,
		help:   help.New(),
		opts:   opts,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.TickInterval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.pending = append(m.pending, m.mapper.MapMouse(msg)...)
		return m, nil

	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width, msg.Height-helpRows)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.opts.Logger.Warn("screenshot failed", "err", err)
		} else {
			m.opts.Logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}
	m.pending = append(m.pending, m.mapper.MapKey(msg)...)
	return m, nil
}

// handleTick runs one simulation tick with the input gathered since the last one.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.ctrl.Step(m.pending)
	m.pending = nil
	if !m.ctrl.Running() {
		return m, tea.Quit
	}
	return m, tickCmd(m.opts.TickInterval)
}

// saveScreenshot writes the current frame as a PNG at full resolution.
func (m Model) saveScreenshot() (string, error) {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("flappy_%s.png", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := png.Encode(f, m.canvas.Frame()); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the last presented frame and the help line.
func (m Model) View() string {
	if !m.ctrl.Running() {
		return ""
	}
	return m.styles.RenderScreen(m.canvas.Screen()) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program and blocks until the controller stops
// or ctx is cancelled.
func Run(ctx context.Context, ctrl *game.Controller, canvas *Canvas, opts Options) error {
	p := tea.NewProgram(
		NewModel(ctrl, canvas, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if ctx.Err() != nil {
		ctrl.Quit()
		return ctx.Err()
	}
	return err
}
