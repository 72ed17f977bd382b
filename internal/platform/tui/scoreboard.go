package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-scorched/internal/achievements"
	"github.com/vovakirdan/tui-scorched/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show section sidebar
	sidebarWidth       = 20  // Width of section sidebar
	maxRuns            = 100 // Max runs to load
)

// Scoreboard sections.
const (
	sectionTopRuns = iota
	sectionRecent
	sectionAchievements
	sectionLifetime
)

var sectionTitles = []string{"Top Runs", "Recent Runs", "Achievements", "Lifetime"}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Back        key.Binding
	Quit        key.Binding
	NextSection key.Binding
	PrevSection key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSection, k.PrevSection, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSection, k.PrevSection},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev section"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next section"),
		),
		NextSection: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next section"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev section"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the run history screen.
type ScoreboardModel struct {
	section     int // Currently selected section index
	store       *storage.Store
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show section sidebar
}

// NewScoreboardModel creates a new run history model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	keys := DefaultScoreboardKeyMap()
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		section:     sectionTopRuns,
		store:       store,
		keys:        keys,
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.loadSection()

	return m
}

// createTable creates a new table sized for the current section.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.sectionColumns()),
		table.WithFocused(true),
		table.WithHeight(m.height-8), // Leave room for header, help, and margins
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

// sectionColumns returns the column layout for the current section.
func (m *ScoreboardModel) sectionColumns() []table.Column {
	switch m.section {
	case sectionAchievements:
		return []table.Column{
			{Title: "Achievement", Width: 16},
			{Title: "Description", Width: 34},
			{Title: "Unlocked", Width: 14},
		}
	case sectionLifetime:
		return []table.Column{
			{Title: "Stat", Width: 22},
			{Title: "Value", Width: 14},
		}
	default:
		return []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Round", Width: 6},
			{Title: "Mode", Width: 9},
			{Title: "Diff", Width: 7},
			{Title: "Hits", Width: 5},
			{Title: "Tokens", Width: 7},
			{Title: "Date", Width: 14},
		}
	}
}

// loadSection rebuilds the table for the selected section.
func (m *ScoreboardModel) loadSection() {
	m.table = m.createTable()

	var rows []table.Row
	switch m.section {
	case sectionAchievements:
		rows = m.achievementRows()
	case sectionLifetime:
		rows = m.lifetimeRows()
	default:
		rows = m.runRows()
	}

	m.table.SetRows(rows)
	m.table.GotoTop()
}

// runRows loads the top or recent runs.
func (m *ScoreboardModel) runRows() []table.Row {
	if m.store == nil {
		return nil
	}

	var (
		runs []storage.RunRecord
		err  error
	)
	if m.section == sectionRecent {
		runs, err = m.store.RecentRuns(maxRuns)
	} else {
		runs, err = m.store.TopRuns(maxRuns)
	}
	if err != nil {
		return nil
	}

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.BestRound),
			r.Mode,
			r.Difficulty,
			fmt.Sprintf("%d", r.HitsOnEnemy),
			fmt.Sprintf("%d", r.TokensEarned),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// achievementRows lists the full catalog with unlock dates.
func (m *ScoreboardModel) achievementRows() []table.Row {
	unlocked := map[string]bool{}
	when := map[string]string{}
	if m.store != nil {
		if got, err := m.store.Achievements(); err == nil {
			for id, ts := range got {
				unlocked[id] = true
				when[id] = ts.Format("Jan 02 2006")
			}
		}
	}

	catalog := achievements.Catalog()
	rows := make([]table.Row, len(catalog))
	for i, a := range catalog {
		status := "locked"
		if unlocked[a.ID] {
			status = when[a.ID]
		}
		rows[i] = table.Row{a.Title, a.Description, status}
	}
	return rows
}

// lifetimeRows shows aggregate stats across all runs.
func (m *ScoreboardModel) lifetimeRows() []table.Row {
	if m.store == nil {
		return nil
	}
	lt, err := m.store.Lifetime()
	if err != nil {
		return nil
	}

	return []table.Row{
		{"Runs played", fmt.Sprintf("%d", lt.Runs)},
		{"Rounds won", fmt.Sprintf("%d", lt.RoundsWon)},
		{"Best round", fmt.Sprintf("%d", lt.BestRound)},
		{"Shots fired", fmt.Sprintf("%d", lt.ShotsFired)},
		{"Hits on enemy", fmt.Sprintf("%d", lt.HitsOnEnemy)},
		{"Direct hits", fmt.Sprintf("%d", lt.DirectHits)},
		{"Damage dealt", fmt.Sprintf("%.0f", lt.DamageDealt)},
		{"Tokens earned", fmt.Sprintf("%d", lt.TokensEarned)},
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextSection), key.Matches(msg, m.keys.Right):
			m.section = (m.section + 1) % len(sectionTitles)
			m.loadSection()
			return m, nil

		case key.Matches(msg, m.keys.PrevSection), key.Matches(msg, m.keys.Left):
			m.section--
			if m.section < 0 {
				m.section = len(sectionTitles) - 1
			}
			m.loadSection()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.loadSection()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("RUN HISTORY - %s", sectionTitles[m.section])

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		// Wide layout: sidebar + table
		b.WriteString(m.renderWideLayout())
	} else {
		// Narrow layout: section tabs + table
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the board with a sidebar for section selection.
func (m ScoreboardModel) renderWideLayout() string {
	// Sidebar (section list)
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Sections\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, title := range sectionTitles {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.section {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + title))
		sidebar.WriteString("\n")
	}

	sidebarRendered := sidebarStyle.Render(sidebar.String())

	// Table
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableRendered := tableStyle.Render(m.renderTableContent())

	// Join horizontally
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

// renderNarrowLayout renders the board with section tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	// Section tabs (horizontal)
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(sectionTitles))
	for i, title := range sectionTitles {
		if i == m.section {
			tabs[i] = activeTabStyle.Render(title)
		} else {
			tabs[i] = tabStyle.Render(" " + title + " ")
		}
	}

	// Wrap tabs if needed
	tabLine := strings.Join(tabs, " ")
	if len(tabLine) > m.width-4 {
		// Just show current section with arrows
		tabLine = fmt.Sprintf("< %s >", sectionTitles[m.section])
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	// Table
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.table.Rows()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nSurvive a round to make history!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the run history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
