package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/terragen/internal/render"
	"github.com/vovakirdan/terragen/internal/storage"
)

// History layout constants
const (
	minWidthForPreview = 100 // Minimum width to show the preview beside the table
	maxRuns            = 100 // Max runs to load
)

// HistoryView selects which runs the browser lists.
type HistoryView int

const (
	ViewRecent HistoryView = iota
	ViewBest
)

func (v HistoryView) String() string {
	if v == ViewBest {
		return "BEST RUNS"
	}
	return "RECENT RUNS"
}

// HistoryModel is the Bubble Tea model for browsing saved runs.
type HistoryModel struct {
	store    *storage.Store
	renderer render.Renderer
	theme    Theme
	view     HistoryView
	runs     []storage.Run
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	preview  *storage.Run
	err      error
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a new history browser.
func NewHistoryModel(store *storage.Store, r render.Renderer, width, height int) HistoryModel {
	if r == nil {
		r = render.Plain{}
	}

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:    store,
		renderer: r,
		theme:    NewTheme(nil),
		keys:     DefaultHistoryKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}

	m.table = m.createTable()
	m.loadRuns()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Seed", Width: 16},
		{Title: "Size", Width: 8},
		{Title: "Gens", Width: 6},
		{Title: "State", Width: 8},
		{Title: "Linear", Width: 7},
		{Title: "Date", Width: 13},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads runs for the current view.
func (m *HistoryModel) loadRuns() {
	m.err = nil
	if m.store == nil {
		m.runs = nil
		m.updateTableRows()
		return
	}

	var runs []storage.Run
	var err error
	if m.view == ViewBest {
		runs, err = m.store.BestRuns(maxRuns)
	} else {
		runs, err = m.store.RecentRuns(maxRuns)
	}
	if err != nil {
		m.err = err
		runs = nil
	}
	m.runs = runs
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *HistoryModel) updateTableRows() {
	m.table.SetRows(RunRows(m.runs))

	// Reset cursor to top
	m.table.GotoTop()
}

// RunRows formats runs as table rows.
func RunRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		seed := r.SeedText
		if len(seed) > 15 {
			seed = seed[:14] + "."
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			seed,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			fmt.Sprintf("%d", r.Generations),
			r.State,
			fmt.Sprintf("%d", r.LinearGround),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.preview = nil
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if m.view == ViewRecent {
				m.view = ViewBest
			} else {
				m.view = ViewRecent
			}
			m.preview = nil
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if r := m.selected(); r != nil {
				m.preview = r
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if r := m.selected(); r != nil && m.store != nil {
				if err := m.store.DeleteRun(r.ID); err != nil {
					m.err = err
					return m, nil
				}
				m.preview = nil
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetRows(RunRows(m.runs))
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selected returns the run under the table cursor.
func (m HistoryModel) selected() *storage.Run {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return nil
	}
	r := m.runs[i]
	return &r
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.theme.Title.Render(centerText(m.view.String(), m.width)))
	b.WriteString("\n\n")

	tableRendered := m.theme.Border.Render(m.renderTableContent())
	switch {
	case m.preview == nil:
		b.WriteString(tableRendered)
	case m.width >= minWidthForPreview:
		// Wide layout: table + preview
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", m.renderPreview()))
	default:
		// Narrow layout: preview replaces the table
		b.WriteString(m.renderPreview())
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.theme.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}

	// Help bar
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs saved yet.\nGenerate with --save to record one!")
	}

	return m.table.View()
}

// renderPreview renders the selected run's terrain.
func (m HistoryModel) renderPreview() string {
	r := m.preview
	t, err := r.Terrain()
	if err != nil {
		return m.theme.Error.Render(err.Error())
	}

	title := m.theme.Label.Render(fmt.Sprintf("run #%d", r.ID)) + " " + m.theme.Value.Render(fmt.Sprintf("%q", r.SeedText))
	return m.theme.Border.Render(title + "\n" + render.Document(m.renderer, t))
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// RunHistory runs the history browser.
func RunHistory(store *storage.Store, r render.Renderer, width, height int) error {
	model := NewHistoryModel(store, r, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
