// Package autoplay plays match-3 boards without a terminal. It drives the
// engine through its public API only and reports cascade statistics, which
// makes it useful for tuning configs and levels.
package autoplay

import (
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// Strategy picks one of the available moves.
type Strategy string

const (
	// StrategyFirst always plays the first move in row-major order.
	StrategyFirst Strategy = "first"
	// StrategyRandom plays a uniformly chosen move.
	StrategyRandom Strategy = "random"
	// StrategyLast plays the last move in row-major order, which favours
	// the bottom of the board and so tends to start longer cascades.
	StrategyLast Strategy = "last"
)

// ParseStrategy parses a strategy name. Empty input selects first.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(s)); st {
	case "":
		return StrategyFirst, nil
	case StrategyFirst, StrategyRandom, StrategyLast:
		return st, nil
	default:
		return "", fmt.Errorf("autoplay: unknown strategy %q (use first, random or last)", s)
	}
}

// Options configures one autoplay run.
type Options struct {
	Config   engine.Config
	Layout   []string // Optional starting board
	Seed     int64
	Moves    int // Moves to play
	Strategy Strategy
	Logger   *log.Logger
}

// Stats summarizes an autoplay run.
type Stats struct {
	Moves        int
	Score        int
	TilesCleared int
	MaxDepth     int
	Depths       map[int]int // Cascade depth -> number of moves
	Shuffles     int
	Truncated    int
	Events       map[string]int
	Stuck        bool // Stopped early because no move was left
	FinalBoard   []string
}

// AverageDepth returns the mean cascade depth per move.
func (s Stats) AverageDepth() float64 {
	if s.Moves == 0 {
		return 0
	}
	total := 0
	for depth, n := range s.Depths {
		total += depth * n
	}
	return float64(total) / float64(s.Moves)
}

// DepthKeys returns the cascade depths seen, ascending.
func (s Stats) DepthKeys() []int {
	keys := make([]int, 0, len(s.Depths))
	for d := range s.Depths {
		keys = append(keys, d)
	}
	sort.Ints(keys)
	return keys
}

// EventNames returns the event names seen, sorted.
func (s Stats) EventNames() []string {
	names := make([]string, 0, len(s.Events))
	for n := range s.Events {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Run plays opts.Moves moves and returns what happened. Runs with the same
// options produce the same stats.
func Run(opts Options) (Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	stats := Stats{
		Depths: make(map[int]int),
		Events: make(map[string]int),
	}

	bus := engine.NewBus()
	bus.Subscribe(func(ev engine.Event) {
		stats.Events[eventName(ev)]++
		switch e := ev.(type) {
		case engine.TileRemovedEvent:
			stats.TilesCleared++
		case engine.BoardShuffledEvent:
			stats.Shuffles++
		case engine.BoardStableEvent:
			stats.Depths[e.CascadeDepth]++
			if e.Truncated {
				stats.Truncated++
			}
		}
	})

	engOpts := []engine.Option{
		engine.WithSeed(opts.Seed),
		engine.WithPublisher(bus),
		engine.WithLogger(logger),
	}
	var (
		eng *engine.Engine
		err error
	)
	if len(opts.Layout) > 0 {
		eng, err = engine.NewWithLayout(opts.Config, opts.Layout, engOpts...)
	} else {
		eng, err = engine.New(opts.Config, engOpts...)
	}
	if err != nil {
		return stats, fmt.Errorf("autoplay: %w", err)
	}

	// Separate source so the choice of moves does not disturb refills
	pick := rand.New(rand.NewSource(opts.Seed ^ 0x5eed))
	minLen := opts.Config.MinMatchLength

	for stats.Moves < opts.Moves {
		moves := engine.FindMoves(eng.Board(), minLen)
		if len(moves) == 0 {
			stats.Stuck = true
			logger.Info("no moves left", "after", stats.Moves)
			break
		}

		s := choose(opts.Strategy, moves, pick)
		res, err := eng.RequestSwap(s.A, s.B)
		if err != nil {
			return stats, fmt.Errorf("autoplay: move %d %s: %w", stats.Moves+1, s, err)
		}

		stats.Moves++
		if res.CascadeDepth > stats.MaxDepth {
			stats.MaxDepth = res.CascadeDepth
		}
		logger.Debug("move", "n", stats.Moves, "swap", s.String(), "depth", res.CascadeDepth, "delta", res.ScoreDelta)
	}

	stats.Score = eng.Score()
	stats.FinalBoard = eng.Board().Rows()
	return stats, nil
}

func choose(st Strategy, moves []engine.Swap, rng *rand.Rand) engine.Swap {
	switch st {
	case StrategyRandom:
		return moves[rng.Intn(len(moves))]
	case StrategyLast:
		return moves[len(moves)-1]
	default:
		return moves[0]
	}
}

// eventName turns engine.SwapPerformedEvent into "SwapPerformed".
func eventName(ev engine.Event) string {
	name := fmt.Sprintf("%T", ev)
	name = name[strings.LastIndex(name, ".")+1:]
	return strings.TrimSuffix(name, "Event")
}
