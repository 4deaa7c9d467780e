package pinball

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
)

const (
	testW = 640.0
	testH = 600.0
	eps   = 1e-9
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// newTestTable returns a 640x600 table. With the default config the funnel
// base is at y=440 between x=224 and x=416, and the ball spawns at
// (320, 206.67).
func newTestTable(t *testing.T) *Table {
	t.Helper()
	tb := NewTable(config.DefaultPinballConfig(), 1)
	if err := tb.Resize(testW, testH); err != nil {
		t.Fatalf("Resize(%v, %v) error = %v", testW, testH, err)
	}
	return tb
}

// place puts the ball in play at pos with velocity vel.
func place(tb *Table, pos, vel core.Vec2) {
	tb.phase = PhasePlaying
	tb.ballLost = false
	tb.ball.Pos = pos
	tb.ball.Vel = vel
}
