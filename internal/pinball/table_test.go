package pinball

import (
	"testing"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
)

func TestNewTable(t *testing.T) {
	tb := NewTable(config.DefaultPinballConfig(), 1)

	if tb.Phase() != PhaseReady {
		t.Errorf("Phase() = %v, expected ready", tb.Phase())
	}
	if tb.Lives() != 3 || tb.Score() != 0 {
		t.Errorf("lives/score = %d/%d, expected 3/0", tb.Lives(), tb.Score())
	}
	if tb.Start() {
		t.Error("Start() = true before the first resize, expected no-op")
	}
}

func TestStartFromReady(t *testing.T) {
	tb := newTestTable(t)
	tb.score = 99
	tb.lives = 1

	if !tb.Start() {
		t.Fatal("Start() = false, expected true")
	}

	if tb.Phase() != PhasePlaying {
		t.Errorf("Phase() = %v, expected playing", tb.Phase())
	}
	if tb.Score() != 0 || tb.Lives() != 3 {
		t.Errorf("score/lives = %d/%d, expected 0/3", tb.Score(), tb.Lives())
	}
	v := tb.Ball().Vel
	if v == (core.Vec2{}) {
		t.Fatal("ball was not launched")
	}
	if v.X < -4 || v.X >= 4 {
		t.Errorf("launch vx = %v, expected in [-4, 4)", v.X)
	}
	if v.Y > -3 || v.Y <= -9 {
		t.Errorf("launch vy = %v, expected in (-9, -3]", v.Y)
	}
}

func TestStartWhilePlayingIsNoop(t *testing.T) {
	tb := newTestTable(t)
	tb.Start()
	vel := tb.Ball().Vel

	if tb.Start() {
		t.Error("Start() = true with a ball in play, expected no-op")
	}
	if tb.Ball().Vel != vel {
		t.Error("ball relaunched while in play")
	}
}

func TestStartServesNextBall(t *testing.T) {
	tb := newTestTable(t)
	tb.Start()
	tb.score = 700
	tb.lives = 2
	tb.ballLost = true
	tb.ball.Pos = core.V(320, 480)

	if !tb.Start() {
		t.Fatal("Start() = false after losing a ball, expected true")
	}
	if tb.BallLost() {
		t.Error("BallLost() = true, expected cleared")
	}
	if tb.Score() != 700 || tb.Lives() != 2 {
		t.Errorf("score/lives = %d/%d, expected 700/2 kept", tb.Score(), tb.Lives())
	}
	if tb.Ball().Pos != tb.Layout().Spawn {
		t.Errorf("ball at %v, expected spawn %v", tb.Ball().Pos, tb.Layout().Spawn)
	}
	if tb.Ball().Vel.Y >= 0 {
		t.Errorf("Vel.Y = %v, expected upward launch", tb.Ball().Vel.Y)
	}
}

func TestLaunchGuard(t *testing.T) {
	tests := []struct {
		name     string
		phase    Phase
		lost     bool
		expected bool
	}{
		{"ready", PhaseReady, false, false},
		{"game over", PhaseGameOver, true, false},
		{"ball lost", PhasePlaying, true, false},
		{"in play", PhasePlaying, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tb := newTestTable(t)
			tb.phase = tc.phase
			tb.ballLost = tc.lost

			if got := tb.Launch(); got != tc.expected {
				t.Errorf("Launch() = %v, expected %v", got, tc.expected)
			}
			if moved := tb.Ball().Vel != (core.Vec2{}); moved != tc.expected {
				t.Errorf("velocity changed = %v, expected %v", moved, tc.expected)
			}
		})
	}
}

func TestReset(t *testing.T) {
	for _, phase := range []Phase{PhaseReady, PhasePlaying, PhaseGameOver} {
		t.Run(phase.String(), func(t *testing.T) {
			tb := newTestTable(t)
			tb.phase = phase
			tb.score = 450
			tb.lives = 1
			tb.ballLost = true
			tb.ball.Vel = core.V(3, 3)

			tb.Reset()

			if tb.Phase() != PhaseReady || tb.Score() != 0 || tb.Lives() != 3 {
				t.Errorf("after Reset: %v score=%d lives=%d, expected ready 0 3", tb.Phase(), tb.Score(), tb.Lives())
			}
			if tb.BallLost() {
				t.Error("BallLost() = true after Reset")
			}
			if tb.Ball().Vel != (core.Vec2{}) {
				t.Errorf("ball velocity = %v after Reset, expected zero", tb.Ball().Vel)
			}
		})
	}
}

func TestStepGatesPhysics(t *testing.T) {
	tb := newTestTable(t)
	spawn := tb.Ball().Pos

	for i := 0; i < 10; i++ {
		res := tb.Step()
		if res.Simulated {
			t.Fatal("physics ran in the ready state")
		}
	}
	if tb.Ball().Pos != spawn {
		t.Errorf("ball moved to %v while ready", tb.Ball().Pos)
	}

	// Flippers move regardless of phase.
	before := tb.Flipper(Left).Angle()
	tb.SetFlipper(Left, true)
	tb.Step()
	if tb.Flipper(Left).Angle() >= before {
		t.Errorf("left flipper angle %v, expected below %v after a step while ready", tb.Flipper(Left).Angle(), before)
	}
}

func TestLastBallEndsGame(t *testing.T) {
	tb := newTestTable(t)
	tb.Start()
	tb.lives = 1
	tb.ball.Pos = core.V(320, 479)
	tb.ball.Vel = core.Vec2{}

	res := tb.Step()

	if !res.GameOver {
		t.Error("StepResult.GameOver = false, expected true")
	}
	if tb.Phase() != PhaseGameOver {
		t.Errorf("Phase() = %v, expected gameover", tb.Phase())
	}
	if tb.Lives() != 0 || !tb.BallLost() {
		t.Errorf("lives/lost = %d/%v, expected 0/true", tb.Lives(), tb.BallLost())
	}

	// Another ball cannot be served; a new game starts instead.
	tb.score = 800
	if !tb.Start() {
		t.Fatal("Start() = false after game over")
	}
	if tb.Phase() != PhasePlaying || tb.Score() != 0 || tb.Lives() != 3 {
		t.Errorf("after restart: %v score=%d lives=%d", tb.Phase(), tb.Score(), tb.Lives())
	}
}

func TestScoreMonotoneAndLivesFloor(t *testing.T) {
	tb := newTestTable(t)
	tb.Start()

	prevScore, prevLives := tb.Score(), tb.Lives()
	for i := 0; i < 20000; i++ {
		tb.SetFlipper(Left, i%13 < 4)
		tb.SetFlipper(Right, i%17 < 5)
		tb.Step()

		if tb.Phase() == PhaseGameOver {
			break
		}
		if tb.Score() < prevScore {
			t.Fatalf("step %d: score dropped from %d to %d", i, prevScore, tb.Score())
		}
		if tb.Lives() > prevLives || tb.Lives() < 0 {
			t.Fatalf("step %d: lives went from %d to %d", i, prevLives, tb.Lives())
		}
		for _, side := range []Side{Left, Right} {
			f := tb.Flipper(side)
			lo, hi := f.AngleRange()
			if f.Angle() < lo || f.Angle() > hi {
				t.Fatalf("step %d: %v flipper angle %v outside [%v, %v]", i, side, f.Angle(), lo, hi)
			}
		}
		prevScore, prevLives = tb.Score(), tb.Lives()

		if tb.BallLost() {
			tb.Start()
		}
	}
	if tb.Lives() < 0 {
		t.Errorf("Lives() = %d, expected >= 0", tb.Lives())
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseReady:    "ready",
		PhasePlaying:  "playing",
		PhaseGameOver: "gameover",
		Phase(42):     "unknown",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, expected %q", int(p), got, want)
		}
	}
}
