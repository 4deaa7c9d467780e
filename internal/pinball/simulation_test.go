package pinball

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
)

func newTestSimulation(t *testing.T) *Simulation {
	t.Helper()
	sim := NewSimulation(config.DefaultPinballConfig(), 7, nil)
	if err := sim.Resize(testW, testH); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	return sim
}

func TestNewSimulationPublishes(t *testing.T) {
	sim := NewSimulation(config.DefaultPinballConfig(), 7, nil)

	snap := sim.Snapshot()
	if snap == nil {
		t.Fatal("Snapshot() = nil before the first tick")
	}
	if snap.Phase != PhaseReady || snap.Lives != 3 {
		t.Errorf("snapshot = %v lives=%d, expected ready with 3 lives", snap.Phase, snap.Lives)
	}
	if snap.Layout.Valid() {
		t.Error("layout valid before any resize")
	}
}

func TestInputsApplyOnNextTick(t *testing.T) {
	sim := newTestSimulation(t)

	sim.Start()
	if sim.Snapshot().Phase != PhaseReady {
		t.Fatal("Start() took effect before a tick")
	}

	sim.Tick()
	snap := sim.Snapshot()
	if snap.Phase != PhasePlaying {
		t.Fatalf("Phase = %v after tick, expected playing", snap.Phase)
	}
	if snap.Tick != 1 {
		t.Errorf("Tick = %d, expected 1", snap.Tick)
	}

	// The start edge was consumed; reset goes back to ready.
	sim.Reset()
	sim.Tick()
	if sim.Snapshot().Phase != PhaseReady {
		t.Errorf("Phase = %v after reset, expected ready", sim.Snapshot().Phase)
	}
	sim.Tick()
	if sim.Snapshot().Phase != PhaseReady {
		t.Error("a consumed start request fired again")
	}
}

func TestFlipperInput(t *testing.T) {
	sim := newTestSimulation(t)
	rest := sim.Snapshot().Flipper(Right).Angle

	sim.SetFlipper(Right, true)
	sim.Tick()

	f := sim.Snapshot().Flipper(Right)
	if !f.Active {
		t.Error("right flipper not active after tick")
	}
	if f.Angle <= rest {
		t.Errorf("right flipper angle = %v, expected above rest %v", f.Angle, rest)
	}
	if sim.Snapshot().Flipper(Left).Active {
		t.Error("left flipper activated by right input")
	}

	sim.SetFlipper(Right, false)
	for i := 0; i < 5; i++ {
		sim.Tick()
	}
	if got := sim.Snapshot().Flipper(Right).Angle; !near(got, rest) {
		t.Errorf("released angle = %v, expected rest %v", got, rest)
	}
}

func TestLaunchKicksBallInPlay(t *testing.T) {
	sim := newTestSimulation(t)

	sim.Launch()
	sim.Tick()
	if sim.Snapshot().Ball.Vel.Y != 0 {
		t.Error("Launch() moved the ball before the game started")
	}

	sim.Start()
	sim.Tick()
	sim.Launch()
	sim.Tick()
	if sim.Snapshot().Ball.Vel.Y >= 0 {
		t.Errorf("Vel.Y = %v, expected an upward kick", sim.Snapshot().Ball.Vel.Y)
	}
}

func TestSimulationResize(t *testing.T) {
	sim := newTestSimulation(t)
	before := sim.Snapshot()

	if err := sim.Resize(0, 100); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("Resize(0, 100) error = %v, expected ErrInvalidSize", err)
	}
	if sim.Snapshot() != before {
		t.Error("rejected resize published a new snapshot")
	}

	if err := sim.Resize(800, 480); err != nil {
		t.Fatalf("Resize(800, 480) error = %v", err)
	}
	if got := sim.Snapshot().Layout.Width; got != 800 {
		t.Errorf("published layout width = %v, expected 800", got)
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	sim := newTestSimulation(t)
	sim.Start()
	sim.Tick()

	old := sim.Snapshot()
	tick, ball, score := old.Tick, old.Ball, old.Score
	targets := append([]TargetState(nil), old.Targets...)

	for i := 0; i < 200; i++ {
		sim.Tick()
	}

	if old.Tick != tick || old.Ball != ball || old.Score != score {
		t.Error("published snapshot changed after later ticks")
	}
	for i := range targets {
		if old.Targets[i] != targets[i] {
			t.Errorf("target %d changed in a published snapshot", i)
		}
	}
	if sim.Snapshot().Tick != tick+200 {
		t.Errorf("Tick = %d, expected %d", sim.Snapshot().Tick, tick+200)
	}
}

// TestConcurrentAccess exercises the tick loop against concurrent readers,
// input writers and resizes. Run with -race.
func TestConcurrentAccess(t *testing.T) {
	sim := newTestSimulation(t)
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sim.Run(ctx, time.Millisecond)
	}()

	errs := make(chan error, 4)

	wg.Add(1)
	go func() { // render reader
		defer wg.Done()
		var last uint64
		for ctx.Err() == nil {
			s := sim.Snapshot()
			if s.Tick < last {
				errs <- errors.New("snapshot tick went backwards")
				return
			}
			last = s.Tick
			_ = len(s.Targets) + len(s.Bumpers)
			time.Sleep(200 * time.Microsecond)
		}
	}()

	wg.Add(1)
	go func() { // input handler
		defer wg.Done()
		for i := 0; ctx.Err() == nil; i++ {
			sim.SetFlipper(Side(i%2), i%3 == 0)
			if i%50 == 0 {
				sim.Start()
			}
			if i%500 == 0 {
				sim.Launch()
			}
			time.Sleep(100 * time.Microsecond)
		}
	}()

	wg.Add(1)
	go func() { // resizer
		defer wg.Done()
		sizes := [][2]float64{{640, 600}, {800, 480}, {-1, 10}}
		for i := 0; ctx.Err() == nil; i++ {
			sz := sizes[i%len(sizes)]
			_ = sim.Resize(sz[0], sz[1])
			time.Sleep(5 * time.Millisecond)
		}
	}()

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
	if sim.Snapshot().Tick == 0 {
		t.Error("tick loop never ran")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	sim := newTestSimulation(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		sim.Run(ctx, time.Millisecond)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	tick := sim.Snapshot().Tick
	time.Sleep(10 * time.Millisecond)
	if sim.Snapshot().Tick != tick {
		t.Error("ticks continued after Run returned")
	}
}

func TestFinishedGameSurvivesRestart(t *testing.T) {
	sim := newTestSimulation(t)

	sim.Start()
	sim.Tick()
	sim.table.lives = 1
	sim.table.score = 450
	sim.table.ball.Pos = core.V(320, 479)
	sim.table.ball.Vel = core.Vec2{}
	sim.Tick()

	snap := sim.Snapshot()
	if snap.Phase != PhaseGameOver {
		t.Fatalf("Phase = %v, expected gameover", snap.Phase)
	}
	want := GameRecord{Score: 450, Ticks: 2}
	if snap.GamesOver != 1 || snap.LastGame != want {
		t.Fatalf("games over = %d last = %+v, expected 1 %+v", snap.GamesOver, snap.LastGame, want)
	}

	// A new game starting on the very next tick keeps the record.
	sim.Start()
	sim.Tick()
	snap = sim.Snapshot()
	if snap.Phase != PhasePlaying || snap.Score != 0 {
		t.Fatalf("after restart: %v score=%d, expected a fresh game", snap.Phase, snap.Score)
	}
	if snap.GamesOver != 1 || snap.LastGame != want {
		t.Errorf("restart changed the record to %d %+v", snap.GamesOver, snap.LastGame)
	}
}

func TestServingNextBallKeepsGameClock(t *testing.T) {
	sim := newTestSimulation(t)

	sim.Start()
	sim.Tick()
	for range 4 {
		sim.Tick()
	}
	// Drain the first ball and serve the next one.
	sim.table.ball.Pos = core.V(320, 479)
	sim.table.ball.Vel = core.Vec2{}
	sim.Tick()
	if !sim.Snapshot().BallLost {
		t.Fatal("ball should be lost")
	}
	sim.Start()
	sim.Tick()

	sim.table.lives = 1
	sim.table.ball.Pos = core.V(320, 479)
	sim.table.ball.Vel = core.Vec2{}
	sim.Tick()

	if got := sim.Snapshot().LastGame.Ticks; got != 8 {
		t.Errorf("LastGame.Ticks = %d, expected 8 counted from the first serve", got)
	}
}
