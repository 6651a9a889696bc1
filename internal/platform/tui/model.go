package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/terragen/internal/generator"
	"github.com/vovakirdan/terragen/internal/render"
	"github.com/vovakirdan/terragen/internal/storage"
	"github.com/vovakirdan/terragen/internal/terrain"
)

// Viewer pacing bounds.
const (
	DefaultDelay = 150 * time.Millisecond
	maxDelay     = 2 * time.Second
)

// WatchConfig configures a generation viewer.
type WatchConfig struct {
	SeedText string
	Params   terrain.Params

	// MaxGenerations caps main loop rounds. 0 means no cap.
	MaxGenerations int

	// Delay is the pause between displayed snapshots.
	Delay time.Duration

	// Renderer draws the grid. nil uses render.Plain.
	Renderer render.Renderer

	// Store, if set, lets the user save the finished run.
	Store *storage.Store

	// ExportDir receives ctrl+s text exports. Empty uses ~/.terragen/exports.
	ExportDir string

	Logger *log.Logger
	Theme  *Theme

	// Context bounds the generator. Cancelling it stops generation even if
	// the viewer is never told to quit. nil means context.Background().
	Context context.Context
}

// lastWatchID numbers viewers so a session ignores messages from one it
// has already left.
var lastWatchID atomic.Int64

// snapshotMsg carries one generator snapshot to the model.
type snapshotMsg struct {
	id       int
	snapshot generator.Snapshot
}

// doneMsg is sent once the generator returns.
type doneMsg struct {
	id     int
	result *generator.Result
	err    error
}

// WatchModel is the Bubble Tea model that shows a terrain while it evolves.
// Generation runs in a command; every snapshot is handed over a channel and
// the generator waits until the viewer has taken it, so the display sets the
// pace.
type WatchModel struct {
	id       int
	cfg      WatchConfig
	renderer render.Renderer
	theme    Theme
	keys     WatchKeyMap
	help     help.Model

	ctx       context.Context
	cancel    context.CancelFunc
	snapshots chan generator.Snapshot

	latest  *generator.Snapshot
	result  *generator.Result
	err     error
	delay   time.Duration
	paused  bool
	pending bool // A tick arrived while paused
	savedID int64
	status  string

	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewWatchModel creates a viewer for one seed.
func NewWatchModel(cfg WatchConfig) WatchModel {
	r := cfg.Renderer
	if r == nil {
		r = render.Plain{}
	}
	theme := NewTheme(nil)
	if cfg.Theme != nil {
		theme = *cfg.Theme
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}

	parent := cfg.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	h := help.New()
	h.ShowAll = false

	return WatchModel{
		id:        int(lastWatchID.Add(1)),
		cfg:       cfg,
		renderer:  r,
		theme:     theme,
		keys:      DefaultWatchKeyMap(),
		help:      h,
		ctx:       ctx,
		cancel:    cancel,
		snapshots: make(chan generator.Snapshot),
		delay:     cfg.Delay,
	}
}

// Init starts generation and waits for the first snapshot.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.runCmd(), m.waitForSnapshot())
}

// runCmd drives the generator until it settles, aborts or is cancelled.
func (m WatchModel) runCmd() tea.Cmd {
	id := m.id
	cfg := m.cfg
	ctx := m.ctx
	snapshots := m.snapshots

	return func() tea.Msg {
		defer close(snapshots)

		g, err := generator.New(cfg.Params, generator.Options{
			MaxGenerations: cfg.MaxGenerations,
			Logger:         cfg.Logger,
			Observer: func(s generator.Snapshot) {
				select {
				case snapshots <- s:
				case <-ctx.Done():
				}
			},
		})
		if err != nil {
			return doneMsg{id: id, err: err}
		}

		res, err := g.Run(ctx, cfg.SeedText)
		return doneMsg{id: id, result: res, err: err}
	}
}

// waitForSnapshot blocks until the next snapshot or the end of generation.
func (m WatchModel) waitForSnapshot() tea.Cmd {
	id := m.id
	snapshots := m.snapshots
	return func() tea.Msg {
		s, ok := <-snapshots
		if !ok {
			return nil
		}
		return snapshotMsg{id: id, snapshot: s}
	}
}

// Update handles messages and updates the model state.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case snapshotMsg:
		if msg.id != m.id {
			return m, nil
		}
		s := msg.snapshot
		m.latest = &s
		return m, tickCmd(m.id, m.delay)

	case TickMsg:
		if msg.ID != m.id {
			return m, nil
		}
		if m.paused {
			m.pending = true
			return m, nil
		}
		return m, m.waitForSnapshot()

	case doneMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.result = msg.result
		m.err = msg.err
		if m.result != nil && m.latest == nil {
			m.latest = &generator.Snapshot{
				State:      m.result.State,
				Generation: m.result.Generations + 1,
				Terrain:    m.result.Terrain,
			}
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.cancel()
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if !m.paused && m.pending {
			m.pending = false
			return m, m.waitForSnapshot()
		}
		return m, nil

	case key.Matches(msg, m.keys.Faster):
		m.delay /= 2
		if m.delay < time.Millisecond {
			m.delay = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Slower):
		switch {
		case m.delay == 0:
			m.delay = 10 * time.Millisecond
		case m.delay*2 > maxDelay:
			m.delay = maxDelay
		default:
			m.delay *= 2
		}
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.saveRun()
		return m, nil

	case key.Matches(msg, m.keys.Export):
		m.exportText()
		return m, nil
	}

	return m, nil
}

// handleResize processes window resize events.
func (m WatchModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	return m, nil
}

// saveRun records the finished run in the history store.
func (m *WatchModel) saveRun() {
	switch {
	case m.cfg.Store == nil:
		m.status = "no history database attached"
	case m.result == nil:
		m.status = "still generating"
	case m.savedID != 0:
		m.status = fmt.Sprintf("already saved as run #%d", m.savedID)
	default:
		id, err := m.cfg.Store.SaveRun(storage.RunFromResult(m.result))
		if err != nil {
			m.status = err.Error()
			return
		}
		m.savedID = id
		m.status = fmt.Sprintf("saved as run #%d", id)
	}
}

// exportText writes the current grid and stats as plain text.
func (m *WatchModel) exportText() {
	if m.latest == nil {
		return
	}

	dir := m.cfg.ExportDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.status = err.Error()
			return
		}
		dir = filepath.Join(home, ".terragen", "exports")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.status = err.Error()
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%d_gen%d_%s.txt", m.latest.Terrain.Seed, m.latest.Generation, timestamp)
	path := filepath.Join(dir, filename)

	doc := render.Document(render.Plain{}, m.latest.Terrain) + "\nseed: " + m.cfg.SeedText + "\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "exported " + path
}

// View renders the current state to a string for display.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n\n")

	if m.latest == nil {
		b.WriteString(m.theme.Label.Render("randomizing..."))
	} else {
		b.WriteString(render.Document(m.renderer, m.latest.Terrain))
		b.WriteString("\n")
		fmt.Fprintf(&b, "generation: %d", m.latest.Generation)
	}
	b.WriteString("\n")

	if m.err != nil && !errors.Is(m.err, context.Canceled) {
		b.WriteString(m.theme.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.theme.Status.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m WatchModel) header() string {
	state := generator.Initializing
	if m.latest != nil {
		state = m.latest.State
	}

	stateLabel := state.String()
	if m.paused && !state.Done() {
		stateLabel += " (paused)"
	}

	parts := []string{
		m.theme.Title.Render("TERRAGEN"),
		m.theme.Label.Render("seed:") + " " + m.theme.Value.Render(fmt.Sprintf("%q", m.cfg.SeedText)),
		m.theme.Label.Render("state:") + " " + m.theme.stateStyle(state.Done(), state == generator.Settled).Render(stateLabel),
		m.theme.Label.Render("delay:") + " " + m.theme.Value.Render(m.delay.String()),
	}
	return strings.Join(parts, "  ")
}

// Result returns the finished run, or nil while generating.
func (m WatchModel) Result() *generator.Result {
	return m.result
}

// Err returns the error the generator stopped with, if any.
func (m WatchModel) Err() error {
	return m.err
}

// IsQuitting returns true if user requested to quit entirely.
func (m WatchModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user asked for another seed.
func (m WatchModel) BackToMenu() bool {
	return m.backToMenu
}

// RunWatch starts the viewer in the current terminal and returns the
// finished run, or nil if the user quit before generation ended.
func RunWatch(cfg WatchConfig) (*generator.Result, error) {
	model := NewWatchModel(cfg)
	defer model.cancel()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(WatchModel)
	if !ok {
		return nil, nil
	}
	return m.Result(), nil
}
