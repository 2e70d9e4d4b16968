package autoplay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/games/match3/autoplay"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    autoplay.Strategy
		wantErr bool
	}{
		{"", autoplay.StrategyFirst, false},
		{"first", autoplay.StrategyFirst, false},
		{"Random", autoplay.StrategyRandom, false},
		{"last", autoplay.StrategyLast, false},
		{"greedy", "", true},
	}
	for _, tt := range tests {
		got, err := autoplay.ParseStrategy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRunPlaysRequestedMoves(t *testing.T) {
	for _, st := range []autoplay.Strategy{autoplay.StrategyFirst, autoplay.StrategyRandom, autoplay.StrategyLast} {
		t.Run(string(st), func(t *testing.T) {
			stats, err := autoplay.Run(autoplay.Options{
				Config:   engine.DefaultConfig(),
				Seed:     3,
				Moves:    25,
				Strategy: st,
			})
			require.NoError(t, err)

			assert.Equal(t, 25, stats.Moves)
			assert.False(t, stats.Stuck, "shuffling keeps the board playable")
			assert.Equal(t, 25, stats.Events["SwapPerformed"])
			assert.Equal(t, 25, stats.Events["BoardStable"])
			assert.Zero(t, stats.Events["SwapReverted"])
			assert.Zero(t, stats.Events["InvalidMove"])

			// Every move clears at least one run of three
			assert.GreaterOrEqual(t, stats.TilesCleared, 3*25)
			assert.GreaterOrEqual(t, stats.Score, 3*25*10)
			assert.Equal(t, stats.TilesCleared, stats.Events["TileRemoved"])
			assert.Equal(t, stats.TilesCleared, stats.Events["TileSpawned"])

			total := 0
			for _, d := range stats.DepthKeys() {
				assert.GreaterOrEqual(t, d, 1)
				total += stats.Depths[d]
			}
			assert.Equal(t, 25, total)
			assert.GreaterOrEqual(t, stats.AverageDepth(), 1.0)
			assert.Equal(t, stats.DepthKeys()[len(stats.DepthKeys())-1], stats.MaxDepth)

			require.Len(t, stats.FinalBoard, 8)
			if stats.Truncated == 0 {
				b, err := engine.NewBoardFromLayout(stats.FinalBoard)
				require.NoError(t, err)
				assert.False(t, engine.HasMatch(b, 3), "final board holds a run")
			}
		})
	}
}

func TestRunIsDeterministic(t *testing.T) {
	opts := autoplay.Options{
		Config:   engine.DefaultConfig(),
		Seed:     42,
		Moves:    40,
		Strategy: autoplay.StrategyRandom,
	}

	a, err := autoplay.Run(opts)
	require.NoError(t, err)
	b, err := autoplay.Run(opts)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRunStopsWhenStuck(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Width, cfg.Height = 4, 4
	cfg.TileKinds = 4
	cfg.ShuffleWhenStuck = false

	stats, err := autoplay.Run(autoplay.Options{
		Config: cfg,
		Layout: []string{"RGBY", "GBYR", "BYRG", "YRGB"},
		Moves:  5,
	})
	require.NoError(t, err)

	assert.True(t, stats.Stuck)
	assert.Zero(t, stats.Moves)
	assert.Zero(t, stats.Score)
	assert.Equal(t, []string{"RGBY", "GBYR", "BYRG", "YRGB"}, stats.FinalBoard)
	assert.Zero(t, stats.AverageDepth())
}

func TestRunRejectsBadConfig(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Width = 2

	_, err := autoplay.Run(autoplay.Options{Config: cfg, Moves: 1})
	require.Error(t, err)
	assert.Equal(t, engine.KindConfiguration, engine.KindOf(err))
}
