package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	list, err := levels.Campaign()
	if err != nil {
		t.Fatalf("levels.Campaign() failed: %v", err)
	}
	server := DefaultSSHServerConfig()
	server.Levels = list
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
	return NewSessionModel(openTestStore(t), server, cfg, "tester", log.New(io.Discard))
}

func sendSession(m SessionModel, msgs ...tea.Msg) SessionModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}
	return m
}

func TestSessionStartsSelectedMode(t *testing.T) {
	tests := []struct {
		name   string
		keys   []tea.Msg
		gameID string
	}{
		{"campaign", []tea.Msg{keyEnter}, match3.IDCampaign},
		{"endless", []tea.Msg{keyDown, keyEnter}, match3.IDEndless},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sendSession(newTestSession(t), tt.keys...)
			if !m.inGame || m.gameModel == nil {
				t.Fatal("session should be in a game")
			}
			if got := m.gameModel.game.ID(); got != tt.gameID {
				t.Errorf("game = %q, want %q", got, tt.gameID)
			}
			if !m.gameModel.inSession {
				t.Error("session games must return to the menu on Back")
			}
			if m.View() == "" {
				t.Error("game view should not be empty")
			}
		})
	}
}

func TestSessionScoreboardStaysInMenu(t *testing.T) {
	m := sendSession(newTestSession(t), tea.KeyMsg{Type: tea.KeyTab})
	if m.inGame || m.quitting {
		t.Fatal("scoreboard request should keep the session in the menu")
	}
	if m.menu.WantsScoreboard() {
		t.Error("menu should be rebuilt")
	}
}

func TestSessionQuit(t *testing.T) {
	m := sendSession(newTestSession(t), keyEnter, runeKey('q'))
	if !m.quitting {
		t.Error("q in game should end the session")
	}
	if m.View() != "" {
		t.Error("quitting session should render nothing")
	}
}

func TestSessionKeepsPreset(t *testing.T) {
	m := sendSession(newTestSession(t), keyDown, keyDown, keyDown, keyRight, tea.KeyMsg{Type: tea.KeyTab})
	if m.preset != presets[2] {
		t.Errorf("preset = %q, want %q", m.preset, presets[2])
	}
	if m.menu.Preset() != presets[2] {
		t.Errorf("rebuilt menu preset = %q, want %q", m.menu.Preset(), presets[2])
	}
}
