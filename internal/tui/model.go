// Package tui provides the Bubble Tea aim trainer interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/tuiaim/internal/engine"
	"github.com/verte-zerg/tuiaim/internal/model"
	"github.com/verte-zerg/tuiaim/internal/store"
)

const (
	frameTime  = time.Second / 60
	hudRows    = 1
	footerRows = 1
)

type tickMsg struct {
	gen int
}

// Options configures the host around a session.
type Options struct {
	Crosshair model.Crosshair
	Store     *store.Store
	Logger    *log.Logger
	// Checkpoint is the store slot written on suspend.
	Checkpoint string
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Model implements the Bubble Tea aim trainer UI. It owns the session and
// drives it with 60Hz ticks and mouse clicks.
type Model struct {
	session    *engine.Session
	crosshair  model.Crosshair
	store      *store.Store
	logger     *log.Logger
	checkpoint string
	clock      func() time.Time

	width  int
	height int

	mouseCol int
	mouseRow int
	hasMouse bool

	modeIndex   int
	tickGen     int
	snap        engine.Snapshot
	showResults bool
	results     table.Model
	help        help.Model
	status      string
	suspended   bool
}

// NewModel wraps session. A session restored in the playing phase resumes on Init.
func NewModel(session *engine.Session, opts Options) *Model {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Checkpoint == "" {
		opts.Checkpoint = store.DefaultSlot
	}
	m := &Model{
		session:    session,
		crosshair:  opts.Crosshair,
		store:      opts.Store,
		logger:     opts.Logger,
		checkpoint: opts.Checkpoint,
		clock:      opts.Clock,
		help:       help.New(),
	}
	for i, mode := range model.Modes {
		if mode == session.Mode() {
			m.modeIndex = i
		}
	}
	m.snap = session.Snapshot()
	if session.Phase() == model.PhaseFinished {
		m.finish()
	}
	return m
}

// Suspended reports whether the session was checkpointed before exit.
func (m *Model) Suspended() bool {
	return m.suspended
}

// Session returns the wrapped session.
func (m *Model) Session() *engine.Session {
	return m.session
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.session.Phase() == model.PhasePlaying {
		return m.tick()
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			if m.session.Phase() == model.PhasePlaying {
				m.session.Stop()
			}
			return m, tea.Quit
		}
		switch {
		case m.session.Phase() == model.PhasePlaying:
			return m, m.handlePlayingKey(msg)
		case m.showResults:
			return m, m.handleResultsKey(msg)
		default:
			return m, m.handleMenuKey(msg)
		}
	}
	return m, nil
}

// tick schedules the next frame. Ticks carry a generation so frames queued by
// an earlier session are dropped.
func (m *Model) tick() tea.Cmd {
	m.tickGen++
	gen := m.tickGen
	return tea.Tick(frameTime, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if msg.gen != m.tickGen || m.session.Phase() != model.PhasePlaying {
		return nil
	}
	m.snap = m.session.Step(m.clock())
	if m.session.Phase() != model.PhasePlaying {
		m.finish()
		return nil
	}
	return m.tick()
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	m.mouseCol = msg.X
	m.mouseRow = msg.Y - hudRows
	m.hasMouse = true
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if m.session.Phase() != model.PhasePlaying {
		return nil
	}
	c := m.canvas()
	if c == nil || !c.inside(m.mouseCol, m.mouseRow) {
		return nil
	}
	x, y := c.toSurface(m.mouseCol, m.mouseRow)
	m.session.Click(x, y, m.clock())
	m.snap = m.session.Snapshot()
	if m.session.Phase() != model.PhasePlaying {
		m.finish()
	}
	return nil
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Start):
		return m.start()
	case key.Matches(msg, keys.NextMode):
		m.modeIndex = (m.modeIndex + 1) % len(model.Modes)
	case key.Matches(msg, keys.PrevMode):
		m.modeIndex = (m.modeIndex + len(model.Modes) - 1) % len(model.Modes)
	case key.Matches(msg, keys.Difficulty):
		m.session.SetDifficulty(nextDifficulty(m.session.Difficulty(), msg.String()))
	}
	return nil
}

func (m *Model) handlePlayingKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Stop):
		m.session.Stop()
		m.snap = m.session.Snapshot()
		m.finish()
	case key.Matches(msg, keys.Suspend):
		return m.suspend()
	}
	return nil
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Start):
		return m.start()
	case key.Matches(msg, keys.Menu):
		m.showResults = false
		return nil
	}
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return cmd
}

func nextDifficulty(current model.Difficulty, pressed string) model.Difficulty {
	switch pressed {
	case "1":
		return model.DifficultyEasy
	case "2":
		return model.DifficultyMedium
	case "3":
		return model.DifficultyHard
	}
	return model.Difficulties[(current.Index()+1)%len(model.Difficulties)]
}

func (m *Model) start() tea.Cmd {
	mode := model.Modes[m.modeIndex]
	if !m.session.Start(mode, m.session.Difficulty(), m.clock()) {
		return nil
	}
	m.snap = m.session.Snapshot()
	m.showResults = false
	m.status = ""
	return m.tick()
}

func (m *Model) finish() {
	m.showResults = true
	m.results = buildResultsTable(m.session.Mode(), m.session.Difficulty(), m.session.Stats())
}

// suspend writes the running session to the checkpoint store and quits.
// Without a store, or when the write fails, the session keeps running.
func (m *Model) suspend() tea.Cmd {
	if m.store == nil {
		m.status = "suspend unavailable: no checkpoint store"
		m.logger.Warn("suspend requested without a checkpoint store")
		return nil
	}
	snap := m.session.Snapshot()
	payload, err := engine.EncodeSnapshot(snap)
	if err != nil {
		m.status = "suspend failed"
		m.logger.Error("failed to encode session", "err", err)
		return nil
	}
	cp := store.Checkpoint{
		Name:       m.checkpoint,
		SavedAt:    m.clock(),
		Mode:       snap.Mode,
		Difficulty: snap.Difficulty,
		Lives:      snap.Lives,
		Hits:       snap.Stats.Hits,
		Elapsed:    snap.Stats.Elapsed,
		Payload:    payload,
	}
	if err := m.store.Save(context.Background(), cp); err != nil {
		m.status = "suspend failed"
		m.logger.Error("failed to save checkpoint", "slot", m.checkpoint, "err", err)
		return nil
	}
	m.suspended = true
	return tea.Quit
}

// canvas returns the play area sized to the window, or nil before the first resize.
func (m *Model) canvas() *canvas {
	rows := m.height - hudRows - footerRows
	if m.width <= 0 || rows <= 0 {
		return nil
	}
	return newCanvas(m.width, rows, m.snap.Surface)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	switch {
	case m.session.Phase() == model.PhasePlaying:
		return m.viewPlaying()
	case m.showResults:
		return m.viewResults()
	default:
		return m.viewMenu()
	}
}

func (m *Model) viewPlaying() string {
	c := m.canvas()
	if c == nil {
		return m.renderHUD()
	}
	c.drawTargets(m.snap.Targets)
	if m.hasMouse && c.inside(m.mouseCol, m.mouseRow) {
		drawCrosshair(c, m.mouseCol, m.mouseRow, m.crosshair)
	}
	footer := m.help.View(keys.playing())
	if m.status != "" {
		footer = m.status + "  " + footer
	}
	return strings.Join([]string{
		m.renderHUD(),
		c.render(),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footerStyle.Render(footer)),
	}, "\n")
}

func (m *Model) viewMenu() string {
	modes := make([]string, 0, len(model.Modes))
	for i, mode := range model.Modes {
		label := string(mode)
		if i == m.modeIndex {
			modes = append(modes, activeStyle.Render(label))
		} else {
			modes = append(modes, mutedStyle.Render(label))
		}
	}
	difficulties := make([]string, 0, len(model.Difficulties))
	for _, d := range model.Difficulties {
		if d == m.session.Difficulty() {
			difficulties = append(difficulties, activeStyle.Render(string(d)))
		} else {
			difficulties = append(difficulties, mutedStyle.Render(string(d)))
		}
	}
	selected := model.Modes[m.modeIndex]
	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("tuiaim"),
		"",
		strings.Join(modes, "  "),
		mutedStyle.Render(ModeSummary(selected)),
		"",
		strings.Join(difficulties, "  "),
		"",
		footerStyle.Render(m.help.View(keys.menu())),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewResults() string {
	title := fmt.Sprintf("Session over · %s · %s", m.session.Mode(), m.session.Difficulty())
	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(title),
		"",
		m.results.View(),
		"",
		footerStyle.Render(m.help.View(keys.results())),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
