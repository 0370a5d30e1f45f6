package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gameforge/internal/core"
	"gameforge/internal/preset"
	"gameforge/internal/registry"
	"gameforge/internal/session"
)

// Model is the Bubble Tea model for running a single starter scene.
type Model struct {
	scene       registry.Scene
	screen      *core.Screen
	recorder    *session.Recorder
	config      core.RuntimeConfig
	inputFrame  core.InputFrame
	keyMapper   *KeyMapper
	sceneState  core.SceneState
	description string // free text that picked the genre, may be empty
	player      string
	playSession *session.Session
	sessionDone bool // whether the current run has been finished and recorded
	quitting    bool
}

// NewModel creates a new Bubble Tea model for the given scene.
// The description is the free text that selected the genre; it travels
// with the recorded session. The recorder may be nil to skip recording.
func NewModel(scene registry.Scene, recorder *session.Recorder, cfg core.RuntimeConfig, description, player string) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		scene:       scene,
		screen:      core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:    recorder,
		config:      cfg,
		inputFrame:  core.NewInputFrame(),
		keyMapper:   NewKeyMapper(),
		description: description,
		player:      player,
	}
}

// Init initializes the model and starts the scene.
func (m Model) Init() tea.Cmd {
	// Initialize the scene
	m.scene.Reset(m.config)
	// Note: sceneState and playSession are set on the first tick
	// (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
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

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		// Quitting mid-run still records the session with its score so far.
		if !m.sessionDone {
			//nolint:errcheck // Best-effort save on the way out
			m.recorder.Finish(m.playSession, m.sceneState.Score)
			m.sessionDone = true
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

	// Reinitialize scene with new dimensions if needed
	// Note: This resets the run - could be improved to preserve state
	if !m.sceneState.GameOver {
		m.scene.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Open the session on the first tick. Init cannot do it because
	// assignments to a value receiver are lost.
	if m.playSession == nil {
		m.playSession = m.recorder.Start(preset.Genre(m.scene.ID()), m.description, m.player)
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.sceneState.GameOver {
		// Reset seed for new run, and open a fresh session for it
		m.config.Seed = time.Now().UnixNano()
		m.scene.Reset(m.config)
		m.sceneState = m.scene.State()
		m.playSession = m.recorder.Start(preset.Genre(m.scene.ID()), m.description, m.player)
		m.sessionDone = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Run scene simulation
	result := m.scene.Step(m.inputFrame)
	m.sceneState = result.State

	// Finish the session on game over (once)
	if m.sceneState.GameOver && !m.sessionDone {
		//nolint:errcheck // Best-effort save, play continues regardless
		m.recorder.Finish(m.playSession, m.sceneState.Score)
		m.sessionDone = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.scene.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".gameforge", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.scene.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, play continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render scene to screen buffer
	m.scene.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given scene.
func Run(scene registry.Scene, recorder *session.Recorder, cfg core.RuntimeConfig, description, player string) error {
	model := NewModel(scene, recorder, cfg, description, player)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse (for future use)
	)

	_, err := p.Run()
	return err
}
