package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// fakeGame records what the model feeds it.
type fakeGame struct {
	id      string
	state   core.GameState
	resets  int
	steps   int
	lastIn  core.InputFrame
	resized [2]int
}

func (g *fakeGame) ID() string              { return g.id }
func (g *fakeGame) Title() string           { return "Fake" }
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState   { return g.state }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.lastIn = in.Clone()
	return core.StepResult{State: g.state}
}

// reportingGame adds run reports and resizing.
type reportingGame struct {
	fakeGame
	pending   []core.RunSummary
	inFlight  bool
	abandoned int
}

func (g *reportingGame) DrainRuns() []core.RunSummary {
	runs := g.pending
	g.pending = nil
	return runs
}

func (g *reportingGame) Abandon() {
	if !g.inFlight {
		return
	}
	g.abandoned++
	g.inFlight = false
	g.pending = append(g.pending, core.RunSummary{Level: "01", Score: 30, Moves: 2, Outcome: core.OutcomeAbandoned})
}

func (g *reportingGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func newTestModel(game registry.Game, store *storage.Store) Model {
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 30, Seed: 1})
	m.Init()
	return m
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelTickPassesInput(t *testing.T) {
	game := &fakeGame{id: "fake"}
	m := newTestModel(game, nil)

	m = update(m, runeKey('?'))
	m = update(m, tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(m, TickMsg{})

	if game.steps != 1 {
		t.Fatalf("steps = %d, want 1", game.steps)
	}
	if !game.lastIn.Has(core.ActionHint) {
		t.Error("step should see the hint")
	}
	if p, ok := game.lastIn.Click(); !ok || p != (core.Point{X: 3, Y: 4}) {
		t.Errorf("click = %v %v, want (3,4)", p, ok)
	}

	// Input is cleared between ticks
	update(m, TickMsg{})
	if !game.lastIn.Empty() {
		t.Error("second tick should get an empty frame")
	}
}

func TestModelSavesDrainedRuns(t *testing.T) {
	store := openTestStore(t)
	game := &reportingGame{fakeGame: fakeGame{id: "match3"}}
	m := newTestModel(game, store)

	game.pending = []core.RunSummary{
		{Level: "01", Seed: 5, Score: 120, Moves: 7, BestChain: 3, Outcome: core.OutcomeCleared},
	}
	m = update(m, TickMsg{})
	update(m, TickMsg{})

	runs, err := store.TopRuns("match3", "", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1 (runs must be saved once)", len(runs))
	}
	r := runs[0]
	if r.Level != "01" || r.Score != 120 || r.BestChain != 3 || r.Outcome != storage.OutcomeCleared {
		t.Errorf("saved run = %+v", r)
	}
}

func TestModelQuitAbandonsRun(t *testing.T) {
	store := openTestStore(t)
	game := &reportingGame{fakeGame: fakeGame{id: "match3"}, inFlight: true}
	m := newTestModel(game, store)

	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)
	if !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if game.abandoned != 1 {
		t.Errorf("abandoned = %d, want 1", game.abandoned)
	}

	runs, err := store.TopRuns("match3", "01", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Outcome != storage.OutcomeAbandoned {
		t.Errorf("runs = %+v, want one abandoned run", runs)
	}
}

func TestModelFallsBackToScore(t *testing.T) {
	store := openTestStore(t)
	game := &fakeGame{id: "plain"}
	m := newTestModel(game, store)

	game.state = core.GameState{Score: 75, GameOver: true}
	m = update(m, TickMsg{})
	update(m, TickMsg{})

	scores, err := store.TopScores("plain", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 75 {
		t.Errorf("scores = %+v, want a single 75", scores)
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	game := &fakeGame{id: "fake"}
	m := newTestModel(game, nil)
	if game.resets != 1 {
		t.Fatalf("resets after Init = %d, want 1", game.resets)
	}

	// Restart is ignored while playing
	m = update(m, runeKey('r'))
	m = update(m, TickMsg{})
	if game.resets != 1 {
		t.Errorf("restart while playing reset the game")
	}

	game.state = core.GameState{GameOver: true}
	m = update(m, TickMsg{})
	m = update(m, runeKey('r'))
	m = update(m, TickMsg{})
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if m.State().GameOver {
		t.Error("state should be fresh after restart")
	}
}

func TestModelResize(t *testing.T) {
	plain := &fakeGame{id: "plain"}
	m := newTestModel(plain, nil)
	update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if plain.resets != 2 {
		t.Errorf("game without Resize should be reset, resets = %d", plain.resets)
	}

	game := &reportingGame{fakeGame: fakeGame{id: "match3"}}
	m = newTestModel(game, nil)
	update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.resized != [2]int{100, 30} {
		t.Errorf("resized = %v, want [100 30]", game.resized)
	}
	if game.resets != 1 {
		t.Errorf("resizable game should not be reset, resets = %d", game.resets)
	}
}

func TestModelBackToMenuInSession(t *testing.T) {
	game := &fakeGame{id: "fake"}
	m := newTestModel(game, nil)
	m.inSession = true

	// Back while playing is a game action
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("Back while playing should not leave")
	}

	game.state = core.GameState{GameOver: true}
	m = update(m, TickMsg{})
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Fatal("Back after game over should return to the menu")
	}
	if m.IsQuitting() {
		t.Error("returning to the menu is not quitting")
	}
	if m.View() != "" {
		t.Error("model should render nothing once left")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(&fakeGame{id: "fake"}, nil)
	if got := m.View(); !strings.Contains(got, "fake") {
		t.Errorf("View() = %q, want the game's text", got)
	}
}
