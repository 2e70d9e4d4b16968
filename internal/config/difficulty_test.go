package config

import "testing"

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:     ScalingConfig{ExtraKinds: 2},
	})

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0},
		{250, 0.25},
		{1000, 1},
		{5000, 1},
	}
	for _, tc := range tests {
		if got := d.Level(tc.score, 0); got != tc.want {
			t.Errorf("Level(%d) = %v, want %v", tc.score, got, tc.want)
		}
	}

	d.SetInitialLevel(0.5)
	if got := d.Level(500, 0); got != 0.75 {
		t.Errorf("Level from 0.5 at half progress = %v, want 0.75", got)
	}
	d.SetInitialLevel(3)
	if got := d.Level(0, 0); got != 1 {
		t.Errorf("initial level should clamp to 1, got %v", got)
	}
}

func TestDifficultyMovesProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "moves", MaxAt: 40},
	})
	if got := d.Level(99999, 10); got != 0.25 {
		t.Errorf("moves progression ignores score, Level = %v, want 0.25", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.3,
		Progression:  ProgressionConfig{Type: "none", MaxAt: 10},
	})
	if d.IsEnabled() {
		t.Error("progression type none should disable the manager")
	}
	if got := d.Level(100, 100); got != 0.3 {
		t.Errorf("disabled Level = %v, want initial 0.3", got)
	}

	d = NewDifficultyManager(DefaultMatch3Config().Difficulty)
	d.SetEnabled(false)
	if d.IsEnabled() {
		t.Error("SetEnabled(false) should disable progression")
	}
}

func TestDifficultyTileKinds(t *testing.T) {
	d := NewDifficultyManager(DefaultMatch3Config().Difficulty)

	tests := []struct {
		base, score, want int
	}{
		{6, 0, 6},
		{6, 10000, 7},
		{6, 20000, 8},
		{6, 90000, 8},
		{7, 20000, 8}, // clamped to the palette size
	}
	for _, tc := range tests {
		if got := d.TileKinds(tc.base, tc.score, 0); got != tc.want {
			t.Errorf("TileKinds(%d, %d) = %d, want %d", tc.base, tc.score, got, tc.want)
		}
	}

	// Below the engine minimum is lifted
	if got := d.TileKinds(1, 0, 0); got != 3 {
		t.Errorf("TileKinds(1) = %d, want 3", got)
	}
}
