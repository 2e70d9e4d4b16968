package match3

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

func replayEngine(t *testing.T) (*engine.Engine, *engine.Recorder) {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Width, cfg.Height = 5, 5
	cfg.ShuffleWhenStuck = false

	rec := &engine.Recorder{}
	eng, err := engine.NewWithLayout(cfg, singleBoard, engine.WithPublisher(rec), engine.WithSpawner(checkerSpawner))
	if err != nil {
		t.Fatalf("NewWithLayout: %v", err)
	}
	return eng, rec
}

func frameKinds(frames []replayFrame) []frameKind {
	kinds := make([]frameKind, len(frames))
	for i, f := range frames {
		kinds[i] = f.kind
	}
	return kinds
}

func equalKinds(a, b []frameKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildFramesProductiveSwap(t *testing.T) {
	eng, rec := replayEngine(t)
	before := eng.Board().Types()

	if _, err := eng.RequestSwap(engine.C(2, 1), engine.C(2, 2)); err != nil {
		t.Fatalf("RequestSwap: %v", err)
	}
	after := eng.Board().Types()
	frames := buildFrames(before, rec.Drain(), after)

	want := []frameKind{frameSwap, frameClear, frameSettle}
	if got := frameKinds(frames); !equalKinds(got, want) {
		t.Fatalf("frame kinds = %v, want %v", got, want)
	}

	swap := frames[0]
	if swap.types[1][2] != engine.Blue || swap.types[2][2] != engine.Red {
		t.Errorf("swap frame did not exchange the tiles")
	}
	if !swap.marks[engine.C(2, 1)] || !swap.marks[engine.C(2, 2)] {
		t.Errorf("swap frame marks = %v", swap.marks)
	}

	cleared := frames[1]
	if len(cleared.marks) != 4 {
		t.Errorf("clear frame marks %d cells, want 4", len(cleared.marks))
	}
	for x := range 4 {
		if !cleared.marks[engine.C(x, 2)] {
			t.Errorf("clear frame misses (%d,2)", x)
		}
	}
	if cleared.pass != 1 || cleared.mult != 1 {
		t.Errorf("clear frame pass/mult = %d/%d, want 1/1", cleared.pass, cleared.mult)
	}

	if !equalTypes(frames[len(frames)-1].types, after) {
		t.Error("last frame differs from the final board")
	}
	if len(frames[2].marks) != 4 {
		t.Errorf("settle frame marks %d spawned cells, want 4", len(frames[2].marks))
	}
}

func TestBuildFramesRevertedSwap(t *testing.T) {
	eng, rec := replayEngine(t)
	before := eng.Board().Types()

	if _, err := eng.RequestSwap(engine.C(0, 0), engine.C(1, 0)); err == nil {
		t.Fatal("expected an invalid swap")
	}
	frames := buildFrames(before, rec.Drain(), eng.Board().Types())

	want := []frameKind{frameSwap, frameSwap}
	if got := frameKinds(frames); !equalKinds(got, want) {
		t.Fatalf("frame kinds = %v, want %v", got, want)
	}
	if frames[0].types[0][0] != engine.Blue {
		t.Error("first frame should show the tiles exchanged")
	}
	if !equalTypes(frames[1].types, before) {
		t.Error("revert frame should restore the board")
	}
}

func TestBuildFramesWithoutEvents(t *testing.T) {
	before := [][]engine.TileType{{engine.Red, engine.Green}}
	after := [][]engine.TileType{{engine.Green, engine.Red}}

	frames := buildFrames(before, nil, after)
	if len(frames) != 1 || !equalTypes(frames[0].types, after) {
		t.Errorf("frames = %+v, want a single frame of the final board", frames)
	}
}

func TestReplayTiming(t *testing.T) {
	r := replay{
		frames:    make([]replayFrame, 3),
		stepTicks: 2,
	}
	for i := range 6 {
		if !r.active() {
			t.Fatalf("replay ended after %d ticks, want 6", i)
		}
		r.advance()
	}
	if r.active() {
		t.Error("replay should be over after 6 ticks")
	}
	if _, ok := r.current(); ok {
		t.Error("finished replay should have no current frame")
	}

	if off := newReplay(nil, nil, nil, 0); off.active() {
		t.Error("zero step ticks should disable the replay")
	}
}
