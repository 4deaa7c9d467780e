// Package pinball implements the table simulation: ball physics, flippers,
// obstacles, the game state machine and a concurrent tick loop that
// publishes immutable snapshots for renderers.
package pinball

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-pinball/internal/config"
)

// Phase is the game state machine state.
type Phase int

const (
	PhaseReady Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name written by MarshalText.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, c := range []Phase{PhaseReady, PhasePlaying, PhaseGameOver} {
		if c.String() == string(text) {
			*p = c
			return nil
		}
	}
	return fmt.Errorf("pinball: unknown phase %q", text)
}

// StepResult describes what happened during one Step.
type StepResult struct {
	Simulated  bool // ball physics ran this step
	Collisions Collisions
	GameOver   bool // the last ball drained this step
}

// Table is the complete mutable game world. It is not safe for concurrent
// use; Simulation serializes access to it.
type Table struct {
	cfg    config.PinballConfig
	engine Engine
	rng    *rand.Rand

	layout    Layout
	obstacles Obstacles
	ball      Ball
	left      *Flipper
	right     *Flipper

	phase    Phase
	score    int
	lives    int
	ballLost bool
}

// NewTable creates a table in the ready state. It has no layout until the
// first successful Resize.
func NewTable(cfg config.PinballConfig, seed int64) *Table {
	geom := GeometryFromConfig(cfg.Flipper)
	return &Table{
		cfg:    cfg,
		engine: NewEngine(cfg.Physics, cfg.Flipper),
		rng:    rand.New(rand.NewSource(seed)),
		ball:   Ball{Radius: cfg.Physics.BallRadius},
		left:   NewFlipper(Left, geom, Layout{}.LeftPivot),
		right:  NewFlipper(Right, geom, Layout{}.RightPivot),
		phase:  PhaseReady,
		lives:  cfg.Gameplay.Lives,
	}
}

// Resize recomputes the layout for a new container size, rebuilds the
// obstacles and respawns the ball. Phase, score and lives are kept. On
// ErrInvalidSize the table is left untouched.
func (t *Table) Resize(width, height float64) error {
	l, err := NewLayout(width, height, t.cfg.Table, t.cfg.Flipper.Length)
	if err != nil {
		return err
	}
	t.layout = l
	t.obstacles = BuildObstacles(l, t.cfg.Table)
	t.left.moveTo(l.LeftPivot)
	t.right.moveTo(l.RightPivot)
	t.respawn()
	return nil
}

// Start begins a new game from ready or game over, or serves the next ball
// after one was lost. It reports whether anything happened.
func (t *Table) Start() bool {
	if !t.layout.Valid() {
		return false
	}
	switch {
	case t.phase == PhaseReady || t.phase == PhaseGameOver:
		t.score = 0
		t.lives = t.cfg.Gameplay.Lives
		t.respawn()
		t.phase = PhasePlaying
		t.Launch()
		return true
	case t.phase == PhasePlaying && t.ballLost && t.lives > 0:
		t.respawn()
		t.Launch()
		return true
	}
	return false
}

// Launch gives the ball a random upward velocity. It does nothing unless a
// ball is in play.
func (t *Table) Launch() bool {
	if t.phase != PhasePlaying || t.ballLost {
		return false
	}
	g := t.cfg.Gameplay
	t.ball.Vel.X = (t.rng.Float64() - 0.5) * g.LaunchSpreadX
	t.ball.Vel.Y = -t.rng.Float64()*g.LaunchRangeUp - g.LaunchMinUp
	return true
}

// Reset returns to the ready state with a fresh score and lives.
func (t *Table) Reset() {
	t.phase = PhaseReady
	t.score = 0
	t.lives = t.cfg.Gameplay.Lives
	t.respawn()
}

// SetFlipper records whether a flipper button is held.
func (t *Table) SetFlipper(side Side, active bool) {
	t.flipper(side).SetActive(active)
}

// Step advances the table by one physics tick. Ball physics runs only while
// a ball is in play; flippers move every step.
func (t *Table) Step() StepResult {
	var res StepResult
	if t.phase == PhasePlaying && !t.ballLost {
		t.engine.Integrate(&t.ball)
		res.Collisions = t.engine.ResolveCollisions(t)
		res.Simulated = true
		if t.ballLost && t.lives == 0 {
			t.phase = PhaseGameOver
			res.GameOver = true
		}
	}
	t.left.Advance()
	t.right.Advance()
	return res
}

// respawn puts the ball back at the spawn point at rest.
func (t *Table) respawn() {
	t.ball.Pos = t.layout.Spawn
	t.ball.Vel.X, t.ball.Vel.Y = 0, 0
	t.ballLost = false
}

func (t *Table) flipper(side Side) *Flipper {
	if side == Right {
		return t.right
	}
	return t.left
}

func (t *Table) Phase() Phase { return t.phase }
func (t *Table) Score() int { return t.score }
func (t *Table) Lives() int { return t.lives }
func (t *Table) BallLost() bool { return t.ballLost }
func (t *Table) Ball() Ball { return t.ball }
func (t *Table) Layout() Layout { return t.layout }
func (t *Table) Obstacles() Obstacles { return t.obstacles }
func (t *Table) Flipper(side Side) *Flipper {
	return t.flipper(side)
}
