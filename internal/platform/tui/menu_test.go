package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var menuLevels = []levels.Level{
	{ID: "01-one", Name: "One", Width: 5, Height: 5, TileKinds: 4, TargetScore: 100, MoveLimit: 10},
	{ID: "02-two", Name: "Two", Width: 6, Height: 6, TileKinds: 5, TargetScore: 300, MoveLimit: 12},
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sendMenu(m MenuModel, msgs ...tea.KeyMsg) MenuModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestMenuSelectsModes(t *testing.T) {
	tests := []struct {
		name   string
		keys   []tea.KeyMsg
		mode   match3.Mode
		gameID string
	}{
		{"campaign", []tea.KeyMsg{keyEnter}, match3.ModeCampaign, match3.IDCampaign},
		{"endless", []tea.KeyMsg{keyDown, keyEnter}, match3.ModeEndless, match3.IDEndless},
		{"up clamps", []tea.KeyMsg{keyUp, keyUp, keyEnter}, match3.ModeCampaign, match3.IDCampaign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMenuModel(nil, menuLevels, config.DifficultyNormal, core.DefaultConfig())
			m = sendMenu(m, tt.keys...)

			sel := m.Selected()
			if sel == nil {
				t.Fatal("no selection")
			}
			if sel.Mode != tt.mode {
				t.Errorf("mode = %q, want %q", sel.Mode, tt.mode)
			}
			if sel.GameID() != tt.gameID {
				t.Errorf("GameID() = %q, want %q", sel.GameID(), tt.gameID)
			}
			if sel.StartLevel != "" {
				t.Errorf("StartLevel = %q, want empty", sel.StartLevel)
			}
			if sel.Preset != config.DifficultyNormal {
				t.Errorf("preset = %q, want normal", sel.Preset)
			}
		})
	}
}

func TestMenuCyclesDifficulty(t *testing.T) {
	m := NewMenuModel(nil, menuLevels, config.DifficultyHard, core.DefaultConfig())
	if m.Preset() != config.DifficultyHard {
		t.Fatalf("initial preset = %q, want hard", m.Preset())
	}

	// Left/Right only act on the difficulty row
	m = sendMenu(m, keyRight)
	if m.Preset() != config.DifficultyHard {
		t.Errorf("Right on campaign row changed preset to %q", m.Preset())
	}

	m = sendMenu(m, keyDown, keyDown, keyDown, keyRight)
	if m.Preset() != config.DifficultyFixed {
		t.Errorf("preset = %q, want fixed", m.Preset())
	}
	m = sendMenu(m, keyRight)
	if m.Preset() != config.DifficultyEasy {
		t.Errorf("preset = %q, want easy after wrap", m.Preset())
	}
	m = sendMenu(m, keyLeft)
	if m.Preset() != config.DifficultyFixed {
		t.Errorf("preset = %q, want fixed after wrap back", m.Preset())
	}
	if !strings.Contains(m.View(), "Difficulty: < fixed >") {
		t.Error("view should show the current preset")
	}

	// The chosen preset travels with the selection
	m = sendMenu(m, keyUp, keyUp, keyEnter)
	if sel := m.Selected(); sel == nil || sel.Preset != config.DifficultyFixed {
		t.Errorf("selection = %+v, want endless with fixed preset", sel)
	}
}

func TestMenuLevelSelect(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(storage.RunRecord{
		GameID: match3.IDCampaign, Level: "01-one", Score: 120, Outcome: storage.OutcomeCleared,
	}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	m := NewMenuModel(store, menuLevels, config.DifficultyNormal, core.RuntimeConfig{ScreenW: 100, ScreenH: 30})
	if !strings.Contains(m.View(), "Campaign best: 120") {
		t.Error("main view should show the campaign best")
	}

	m = sendMenu(m, keyDown, keyDown, keyEnter)
	view := m.View()
	if !strings.Contains(view, "SELECT LEVEL") {
		t.Fatal("expected level select view")
	}
	if !strings.Contains(view, "* 1. One") {
		t.Error("cleared level should be marked")
	}
	if !strings.Contains(view, "  2. Two") {
		t.Error("uncleared level should not be marked")
	}

	// Esc goes back without selecting
	m = sendMenu(m, keyEsc)
	if m.Selected() != nil {
		t.Fatal("Esc should not select")
	}
	if strings.Contains(m.View(), "SELECT LEVEL") {
		t.Fatal("Esc should return to the main menu")
	}

	m = sendMenu(m, keyEnter, keyDown, keyDown, keyEnter)
	sel := m.Selected()
	if sel == nil {
		t.Fatal("no selection")
	}
	if sel.Mode != match3.ModeCampaign || sel.StartLevel != "02-two" {
		t.Errorf("selection = %+v, want campaign from 02-two", sel)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, menuLevels, config.DifficultyNormal, core.DefaultConfig())
	m = sendMenu(m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("Tab should open the scoreboard")
	}

	m = NewMenuModel(nil, menuLevels, config.DifficultyNormal, core.DefaultConfig())
	m = sendMenu(m, keyDown, keyDown, keyDown, keyDown, keyEnter)
	if !m.WantsScoreboard() {
		t.Error("High Scores item should open the scoreboard")
	}

	m = NewMenuModel(nil, menuLevels, config.DifficultyNormal, core.DefaultConfig())
	m = sendMenu(m, keyDown, keyDown, keyDown, keyDown, keyDown, keyDown, keyEnter)
	if !m.IsQuitting() {
		t.Error("Quit item should quit")
	}
	if m.View() != "" {
		t.Error("quitting menu should render nothing")
	}
}

func TestMenuResize(t *testing.T) {
	m := NewMenuModel(nil, menuLevels, config.DifficultyNormal, core.DefaultConfig())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(MenuModel)

	cfg := m.Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("config size = %dx%d, want 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"abc", 9, "   abc"},
		{"abc", 3, "abc"},
		{"abcdef", 4, "abcdef"},
	}
	for _, tt := range tests {
		if got := centerText(tt.text, tt.width); got != tt.want {
			t.Errorf("centerText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
