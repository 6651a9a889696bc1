package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/terragen/internal/storage"
)

// recentSeeds is how many saved seeds the prompt offers.
const recentSeeds = 5

// PromptModel asks for a seed. Previously saved seeds can be recalled with
// up and down.
type PromptModel struct {
	input    textinput.Model
	theme    Theme
	recent   []string
	cursor   int // -1 while typing
	width    int
	height   int
	quitting bool
	seed     *string // Set when the user submits
}

// NewPromptModel creates a seed prompt. store may be nil.
func NewPromptModel(store *storage.Store, theme Theme, width, height int) PromptModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type anything"
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	return PromptModel{
		input:  ti,
		theme:  theme,
		recent: loadRecentSeeds(store),
		cursor: -1,
		width:  width,
		height: height,
	}
}

// loadRecentSeeds returns distinct seed texts of the latest saved runs.
func loadRecentSeeds(store *storage.Store) []string {
	if store == nil {
		return nil
	}
	runs, err := store.RecentRuns(4 * recentSeeds)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var seeds []string
	for _, r := range runs {
		if seen[r.SeedText] {
			continue
		}
		seen[r.SeedText] = true
		seeds = append(seeds, r.SeedText)
		if len(seeds) == recentSeeds {
			break
		}
	}
	return seeds
}

// Init initializes the prompt.
func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the prompt.
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			seed := m.input.Value()
			m.seed = &seed
			return m, nil

		case tea.KeyUp:
			if m.cursor < len(m.recent)-1 {
				m.cursor++
				m.input.SetValue(m.recent[m.cursor])
				m.input.CursorEnd()
			}
			return m, nil

		case tea.KeyDown:
			if m.cursor > 0 {
				m.cursor--
				m.input.SetValue(m.recent[m.cursor])
			} else {
				m.cursor = -1
				m.input.SetValue("")
			}
			m.input.CursorEnd()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m PromptModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("  T E R R A G E N  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.Label.Render("Enter a seed and watch its terrain settle"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.input.View(), m.width))
	b.WriteString("\n")

	if len(m.recent) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.Label.Render("recent seeds"), m.width))
		b.WriteString("\n")
		for i, s := range m.recent {
			line := "  " + s
			style := m.theme.Subtle
			if i == m.cursor {
				line = "> " + s
				style = m.theme.Prompt
			}
			b.WriteString(centerText(style.Render(line), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Help.Render("Enter: Generate  |  Up/Down: Recent  |  Esc: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Seed returns the submitted seed, or nil if none yet.
func (m PromptModel) Seed() *string {
	return m.seed
}

// IsQuitting returns true if user requested to quit.
func (m PromptModel) IsQuitting() bool {
	return m.quitting
}
