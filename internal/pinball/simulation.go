package pinball

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pinball/internal/config"
)

// Simulation runs a Table on its own goroutine.
//
// The physics tick is the only writer of table state. Input handlers on
// other goroutines set atomic flags that the next tick consumes, and
// renderers read the latest published Snapshot without locking. Resize is
// the one operation that mutates the table from outside the tick, so it
// takes the same mutex.
type Simulation struct {
	mu    sync.Mutex // guards table, tick and the game records
	table *Table
	tick  uint64

	gameStart uint64 // tick before the current game's first step
	gamesOver uint64
	lastGame  GameRecord

	snap atomic.Pointer[Snapshot]

	// Level-triggered inputs.
	flipLeft  atomic.Bool
	flipRight atomic.Bool

	// Edge-triggered inputs, cleared when consumed.
	startReq  atomic.Bool
	launchReq atomic.Bool
	resetReq  atomic.Bool

	logger *log.Logger
}

// NewSimulation creates a simulation with a fresh table. A nil logger
// discards output.
func NewSimulation(cfg config.PinballConfig, seed int64, logger *log.Logger) *Simulation {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Simulation{
		table:  NewTable(cfg, seed),
		logger: logger,
	}
	s.publishLocked()
	return s
}

// SetFlipper presses or releases a flipper button.
func (s *Simulation) SetFlipper(side Side, active bool) {
	if side == Right {
		s.flipRight.Store(active)
	} else {
		s.flipLeft.Store(active)
	}
}

// Start requests a new game or the next ball on the following tick.
func (s *Simulation) Start() { s.startReq.Store(true) }

// Launch requests a kick of the ball in play on the following tick.
func (s *Simulation) Launch() { s.launchReq.Store(true) }

// Reset requests a return to the ready state on the following tick.
func (s *Simulation) Reset() { s.resetReq.Store(true) }

// Resize lays the table out for a new container size and publishes the
// result immediately. ErrInvalidSize leaves the previous layout in place.
func (s *Simulation) Resize(width, height float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.table.Resize(width, height); err != nil {
		s.logger.Warn("resize rejected", "width", width, "height", height, "err", err)
		return err
	}
	s.logger.Debug("table resized", "width", width, "height", height)
	s.publishLocked()
	return nil
}

// Snapshot returns the most recently published state. It never returns nil.
func (s *Simulation) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Tick consumes pending inputs, advances the table by one step and
// publishes a new snapshot.
func (s *Simulation) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table
	if s.resetReq.Swap(false) {
		t.Reset()
		s.logger.Debug("table reset")
	}
	newGame := t.Phase() != PhasePlaying
	if s.startReq.Swap(false) && t.Start() {
		if newGame {
			s.gameStart = s.tick
		}
		s.logger.Debug("ball launched", "lives", t.Lives(), "vx", t.ball.Vel.X, "vy", t.ball.Vel.Y)
	}
	if s.launchReq.Swap(false) && t.Launch() {
		s.logger.Debug("ball kicked", "vx", t.ball.Vel.X, "vy", t.ball.Vel.Y)
	}
	t.SetFlipper(Left, s.flipLeft.Load())
	t.SetFlipper(Right, s.flipRight.Load())

	res := t.Step()
	s.tick++
	if res.GameOver {
		s.gamesOver++
		s.lastGame = GameRecord{Score: t.Score(), Ticks: s.tick - s.gameStart}
	}
	s.logStep(res)
	s.publishLocked()
}

// Run ticks at the given period until ctx is done.
func (s *Simulation) Run(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

func (s *Simulation) logStep(res StepResult) {
	if !res.Simulated || !res.Collisions.Any() {
		return
	}
	c := res.Collisions
	if n := len(c.Targets) + len(c.Bumpers); n > 0 {
		s.logger.Debug("obstacle hit", "targets", len(c.Targets), "bumpers", len(c.Bumpers), "points", c.Points)
	}
	if c.BallLost {
		s.logger.Debug("ball lost", "lives", s.table.Lives(), "score", s.table.Score())
	}
	if res.GameOver {
		s.logger.Info("game over", "score", s.table.Score(), "ticks", s.tick)
	}
}

// publishLocked stores a fresh snapshot. Callers hold mu.
func (s *Simulation) publishLocked() {
	snap := s.table.snapshot(s.tick)
	snap.GamesOver = s.gamesOver
	snap.LastGame = s.lastGame
	s.snap.Store(snap)
}
