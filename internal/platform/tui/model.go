package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-scorched/internal/achievements"
	"github.com/vovakirdan/tui-scorched/internal/core"
	"github.com/vovakirdan/tui-scorched/internal/registry"
	"github.com/vovakirdan/tui-scorched/internal/scorched"
	"github.com/vovakirdan/tui-scorched/internal/storage"
)

// RunProvider is implemented by games built on the artillery simulation.
// The platform uses it to attach achievement tracking and persist run stats.
type RunProvider interface {
	Run() *scorched.Run
}

// Notifier lets the platform surface transient messages on a game's HUD.
type Notifier interface {
	Notify(msg string)
}

// Model is the Bubble Tea model for running games.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	tracker    *achievements.Tracker
	keys       *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	runSaved   bool // Whether the run has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	tracker := achievements.NewTracker(store, nil)
	if n, ok := game.(Notifier); ok {
		tracker.OnUnlock = func(a achievements.Achievement) {
			n.Notify("Achievement: " + a.Title)
		}
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		tracker:    tracker,
		keys:       NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	m.attachRun()
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// attachRun subscribes the achievement tracker to the game's current run.
// Each Reset builds a fresh run with a fresh bus, so this follows every Reset.
func (m Model) attachRun() {
	if rp, ok := m.game.(RunProvider); ok && rp.Run() != nil {
		m.tracker.Attach(rp.Run().Bus())
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		// Quitting mid-run still counts the run.
		if rp, ok := m.game.(RunProvider); ok && rp.Run() != nil && !rp.Run().Over() {
			rp.Run().QuitRun()
			m.saveRun()
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	// Update screen size
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Reinitialize game with new dimensions if needed
	// Note: This resets the game - could be improved to preserve state
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.attachRun()
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.attachRun()
		m.gameState = m.game.State()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveRun persists the finished run's stats. Best effort; the UI continues
// regardless of storage errors.
func (m Model) saveRun() {
	if m.store == nil {
		return
	}
	rp, ok := m.game.(RunProvider)
	if !ok || rp.Run() == nil {
		return
	}

	run := rp.Run()
	st := run.Stats()
	//nolint:errcheck // Best-effort save
	m.store.SaveRun(storage.RunRecord{
		Seed:         run.Seed(),
		Difficulty:   run.Difficulty().String(),
		Mode:         run.Mode().String(),
		RoundsWon:    st.RoundsWon,
		BestRound:    st.BestRound,
		ShotsFired:   st.ShotsFired,
		HitsOnEnemy:  st.HitsOnEnemy,
		DirectHits:   st.DirectHits,
		DamageDealt:  st.DamageDealt,
		DamageTaken:  st.DamageTaken,
		TokensEarned: st.TokensEarned,
	})
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".scorched", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
