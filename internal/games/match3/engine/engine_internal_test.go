package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokenInvariantIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 5, 5
	rec := &Recorder{}
	e, err := NewWithLayout(cfg, []string{
		"GBYGB",
		"BYRBY",
		"RRBRG",
		"GBYGB",
		"BYGBY",
	}, WithPublisher(rec))
	require.NoError(t, err)

	e.board.slots[24].Pos = C(0, 0)

	_, err = e.RequestSwap(C(2, 1), C(2, 2))

	require.ErrorIs(t, err, ErrBoardState)
	assert.Equal(t, "swap", err.(*Error).Context["stage"])
	assert.Equal(t, PhaseFailed, e.Phase())
	assert.Same(t, err, e.Err())
	require.Len(t, rec.Events, 2)
	assert.IsType(t, SwapPerformedEvent{}, rec.Events[0])
	assert.IsType(t, ErrorReportedEvent{}, rec.Events[1])

	// the session stays stopped
	_, again := e.RequestSwap(C(0, 0), C(1, 0))
	assert.Same(t, err, again)
	assert.Same(t, err, e.Shuffle())
	assert.Len(t, rec.Events, 2)
}

func TestLenientModeSkipsChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 3, 3
	cfg.StrictInvariants = false
	e, err := NewWithLayout(cfg, []string{"RGB", "GBY", "BYR"})
	require.NoError(t, err)

	e.board.slots[8].Pos = C(0, 0)

	assert.NoError(t, e.checkInvariants("test"))
	assert.Nil(t, e.Err())
}

func TestPhaseNames(t *testing.T) {
	assert.Equal(t, "validating_swap", PhaseValidatingSwap.String())
	assert.Equal(t, "failed", PhaseFailed.String())
	assert.Equal(t, "unknown", Phase(99).String())
}
