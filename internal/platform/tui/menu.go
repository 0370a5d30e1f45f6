package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gameforge/internal/core"
	"gameforge/internal/preset"
	"gameforge/internal/registry"
)

// MenuItem represents a selectable starter scene in the menu.
type MenuItem struct {
	SceneID string
	Title   string
}

// MenuModel is the Bubble Tea model for the genre picker menu.
// Besides picking from the list, the player can open a describe prompt
// and type what they want to play; the keyword detector picks the genre.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	input          textinput.Model
	describing     bool      // True while the describe prompt is open
	description    string    // Text that picked the selection, if any
	quitting       bool
	selected       *MenuItem // Set when user selects a scene
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	scenes := registry.List()
	items := make([]MenuItem, 0, len(scenes))

	for _, s := range scenes {
		items = append(items, MenuItem{
			SceneID: s.ID,
			Title:   s.Title,
		})
	}

	ti := textinput.New()
	ti.Placeholder = "a calm game about catching fireflies"
	ti.CharLimit = 120
	ti.Width = 44

	return MenuModel{
		items:     items,
		cursor:    0,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		input:     ti,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	// The text input owns cursor blink and similar messages while open.
	if m.describing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.describing {
		return m.handleDescribeKey(msg)
	}

	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start scene
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard

	case MenuActionDescribe:
		m.describing = true
		return m, m.input.Focus()
	}

	return m, nil
}

// handleDescribeKey processes input while the describe prompt is open.
func (m MenuModel) handleDescribeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.describing = false
		m.input.Blur()
		m.input.Reset()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			m.describing = false
			m.input.Blur()
			return m, nil
		}

		genre := preset.Detect(text)
		for i, item := range m.items {
			if item.SceneID == string(genre) {
				m.cursor = i
				m.description = text
				m.selected = &m.items[i]
				return m, tea.Quit // Exit menu to start scene
			}
		}
		// Detected genre has no registered scene; back to the list
		m.describing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	title := "  G A M E F O R G E  "
	titleLine := centerText(title, m.width)
	b.WriteString("\n")
	b.WriteString(titleLine)
	b.WriteString("\n\n")

	// Subtitle
	subtitle := "Pick a genre, or describe the game you want"
	subtitleLine := centerText(subtitle, m.width)
	b.WriteString(subtitleLine)
	b.WriteString("\n\n")

	// Scene list
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-24s%s", cursor, item.Title, item.SceneID)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	// Preset summary for the hovered genre
	if len(m.items) > 0 {
		p := preset.ForGenre(preset.Genre(m.items[m.cursor].SceneID))
		summary := fmt.Sprintf("speed %g  jump %g  fire %g/s  health %d  shake %s",
			p.Player.Speed, p.Player.JumpHeight, p.Player.FireRate,
			p.Player.Health, p.Polish.Shake)
		b.WriteString("\n")
		b.WriteString(centerText(summary, m.width))
		b.WriteString("\n")
	}

	// Describe prompt
	if m.describing {
		b.WriteString("\n")
		b.WriteString(centerText("Describe it and the forge picks the genre:", m.width))
		b.WriteString("\n")
		pad := (m.width - m.input.Width) / 2
		if pad < 0 {
			pad = 0
		}
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(centerText("Enter: Forge  |  Esc: Cancel", m.width))
		b.WriteString("\n")
		return b.String()
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  /: Describe  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Description returns the free text that picked the selection, if the
// describe prompt was used.
func (m MenuModel) Description() string {
	return m.description
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	SceneID         string
	Description     string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.SceneID = m.Selected().SceneID
		result.Description = m.Description()
	} else {
		result.Quit = true
	}

	return result, nil
}
