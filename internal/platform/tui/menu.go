package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// presets in the order the difficulty item cycles through them.
var presets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

// Main menu entries.
const (
	itemCampaign = iota
	itemEndless
	itemSelectLevel
	itemDifficulty
	itemScores
	itemQuit
	itemCount
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))

// Selection holds what the player picked in the menu.
type Selection struct {
	Mode       match3.Mode
	StartLevel string // Campaign level ID, empty = first level
	Preset     config.DifficultyPreset
}

// GameID returns the registry ID for the selected mode.
func (s Selection) GameID() string {
	if s.Mode == match3.ModeEndless {
		return match3.IDEndless
	}
	return match3.IDCampaign
}

// MenuModel is the Bubble Tea model for the mode and level picker.
type MenuModel struct {
	levels         []levels.Level
	cleared        map[string]bool
	highScore      int
	cursor         int
	levelCursor    int
	inLevelSelect  bool
	preset         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *Selection
	openScoreboard bool
}

// NewMenuModel creates a new menu model. store may be nil.
func NewMenuModel(store *storage.Store, list []levels.Level, preset config.DifficultyPreset, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		levels:    list,
		cleared:   make(map[string]bool),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		preset:    1,
	}
	for i, p := range presets {
		if p == preset {
			m.preset = i
		}
	}

	if store != nil {
		if ids, err := store.ClearedLevels(match3.IDCampaign); err == nil {
			for _, id := range ids {
				m.cleared[id] = true
			}
		}
		if hs, err := store.HighScore(match3.IDCampaign); err == nil {
			m.highScore = hs
		}
	}
	return m
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

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)
	if action == MenuActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleMainKey(action)
}

func (m MenuModel) handleMainKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < itemCount-1 {
			m.cursor++
		}
	case MenuActionLeft:
		if m.cursor == itemDifficulty {
			m.preset = (m.preset + len(presets) - 1) % len(presets)
		}
	case MenuActionRight:
		if m.cursor == itemDifficulty {
			m.preset = (m.preset + 1) % len(presets)
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	case MenuActionSelect:
		return m.selectItem()
	}

	return m, nil
}

func (m MenuModel) selectItem() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case itemCampaign:
		m.selected = &Selection{Mode: match3.ModeCampaign, Preset: presets[m.preset]}
		return m, tea.Quit
	case itemEndless:
		m.selected = &Selection{Mode: match3.ModeEndless, Preset: presets[m.preset]}
		return m, tea.Quit
	case itemSelectLevel:
		if len(m.levels) > 0 {
			m.inLevelSelect = true
			m.levelCursor = 0
		}
	case itemDifficulty:
		m.preset = (m.preset + 1) % len(presets)
	case itemScores:
		m.openScoreboard = true
		return m, tea.Quit
	case itemQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.selected = &Selection{
			Mode:       match3.ModeCampaign,
			StartLevel: m.levels[m.levelCursor].ID,
			Preset:     presets[m.preset],
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewMain()
}

func (m MenuModel) viewMain() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("M A T C H - 3"), m.width))
	b.WriteString("\n\n")
	if m.highScore > 0 {
		b.WriteString(centerText(fmt.Sprintf("Campaign best: %d", m.highScore), m.width))
		b.WriteString("\n\n")
	}

	items := [itemCount]string{
		itemCampaign:    fmt.Sprintf("Campaign (%d levels)", len(m.levels)),
		itemEndless:     "Endless Mode",
		itemSelectLevel: "Select Level...",
		itemDifficulty:  fmt.Sprintf("Difficulty: < %s >", presets[m.preset]),
		itemScores:      "High Scores",
		itemQuit:        "Quit",
	}
	for i, item := range items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	for i, l := range m.levels {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		mark := " "
		if m.cleared[l.ID] {
			mark = "*"
		}

		line := fmt.Sprintf("%s%s%2d. %-16s %dx%d  Goal %d in %d moves",
			cursor, mark, i+1, l.Title(), l.Width, l.Height, l.TargetScore, l.MoveLimit)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("*: cleared  |  Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *Selection {
	return m.selected
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

// Preset returns the difficulty preset currently shown.
func (m MenuModel) Preset() config.DifficultyPreset {
	return presets[m.preset]
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       *Selection
	Preset          config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, list []levels.Level, preset config.DifficultyPreset, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, list, preset, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Preset: preset}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Preset: preset, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
		Preset: m.Preset(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting():
		result.Quit = true
	case m.Selected() != nil:
		result.Selection = m.Selected()
	default:
		result.Quit = true
	}

	return result, nil
}
