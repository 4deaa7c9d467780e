package pinball

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
)

func TestTarget(t *testing.T) {
	tg := &Target{Box: core.Box{X: 100, Y: 100, W: 20, H: 10}, Points: 100, BounceStrength: 8, Color: core.ColorRed}

	if tg.Overlaps(core.V(94, 105), 6) {
		t.Error("ball touching the left edge should not overlap")
	}
	if !tg.Overlaps(core.V(95, 105), 6) {
		t.Error("ball crossing the left edge should overlap")
	}

	if got := tg.DisplayColor(); got != core.ColorRed {
		t.Errorf("DisplayColor() = %v before hit, expected red", got)
	}
	if pts := tg.Hit(); pts != 100 {
		t.Errorf("Hit() = %d, expected 100", pts)
	}
	if !tg.IsHit() || tg.DisplayColor() != core.ColorYellow {
		t.Error("target should be lit yellow after a hit")
	}

	dir := tg.BounceDirection(core.V(110, 120))
	if !near(dir.X, 0) || !near(dir.Y, 1) {
		t.Errorf("BounceDirection() = %v, expected (0, 1)", dir)
	}
	if dir := tg.BounceDirection(core.V(110, 105)); dir != (core.Vec2{}) {
		t.Errorf("BounceDirection() at center = %v, expected zero", dir)
	}
}

func TestBumper(t *testing.T) {
	b := &Bumper{Center: core.V(50, 50), Radius: 15, Points: 50, BounceStrength: 8, Color: core.ColorGreen}

	if b.Overlaps(core.V(71, 50), 6) {
		t.Error("touching circles should not overlap")
	}
	if !b.Overlaps(core.V(70, 50), 6) {
		t.Error("crossing circles should overlap")
	}
	if pts := b.Hit(); pts != 50 {
		t.Errorf("Hit() = %d, expected 50", pts)
	}
	if b.DisplayColor() != core.ColorWhite {
		t.Errorf("DisplayColor() = %v after hit, expected white", b.DisplayColor())
	}

	dir := b.BounceDirection(core.V(53, 46))
	if !near(dir.X, 0.6) || !near(dir.Y, -0.8) {
		t.Errorf("BounceDirection() = %v, expected (0.6, -0.8)", dir)
	}
}

func TestObstaclesImplementInterface(t *testing.T) {
	var _ Obstacle = (*Target)(nil)
	var _ Obstacle = (*Bumper)(nil)
}

func TestBuildObstacles(t *testing.T) {
	cfg := config.DefaultPinballConfig()
	l, err := NewLayout(testW, testH, cfg.Table, cfg.Flipper.Length)
	if err != nil {
		t.Fatal(err)
	}

	obs := BuildObstacles(l, cfg.Table)

	wantTargets := []core.Box{
		{X: 140, Y: 76, W: 25, H: 12},
		{X: 440, Y: 76, W: 25, H: 12},
		{X: 290, Y: 132, W: 35, H: 15},
	}
	for i, want := range wantTargets {
		got := obs.Targets[i].Box
		if !near(got.X, want.X) || !near(got.Y, want.Y) || got.W != want.W || got.H != want.H {
			t.Errorf("target %d box = %+v, expected %+v", i, got, want)
		}
	}
	if obs.Targets[0].BounceStrength != 8 || obs.Targets[2].BounceStrength != 12 {
		t.Errorf("target strengths = %v, %v, expected 8, 12",
			obs.Targets[0].BounceStrength, obs.Targets[2].BounceStrength)
	}

	wantBumpers := []struct {
		center core.Vec2
		radius float64
		color  core.Color
	}{
		{core.V(200, 244), 15, core.ColorGreen},
		{core.V(440, 244), 15, core.ColorGreen},
		{core.V(320, 300), 18, core.ColorMagenta},
	}
	for i, want := range wantBumpers {
		got := obs.Bumpers[i]
		if !near(got.Center.X, want.center.X) || !near(got.Center.Y, want.center.Y) {
			t.Errorf("bumper %d center = %v, expected %v", i, got.Center, want.center)
		}
		if got.Radius != want.radius || got.Color != want.color {
			t.Errorf("bumper %d = r%v %v, expected r%v %v", i, got.Radius, got.Color, want.radius, want.color)
		}
	}

	// Pure: a second build is equal but shares nothing.
	again := BuildObstacles(l, cfg.Table)
	if !reflect.DeepEqual(obs, again) {
		t.Error("BuildObstacles is not deterministic")
	}
	again.Targets[0].Hit()
	if obs.Targets[0].IsHit() {
		t.Error("rebuilt obstacles share state with the previous build")
	}
}

func TestBuildObstaclesDefaultStrength(t *testing.T) {
	cfg := config.DefaultPinballConfig()
	cfg.Table.Targets = []config.TargetSpec{{X: 0.5, Y: 0.5, Width: 10, Height: 10, Points: 1, Color: "nope"}}
	l, _ := NewLayout(testW, testH, cfg.Table, cfg.Flipper.Length)

	obs := BuildObstacles(l, cfg.Table)

	if obs.Targets[0].BounceStrength != config.DefaultTargetStrength {
		t.Errorf("BounceStrength = %v, expected %v", obs.Targets[0].BounceStrength, config.DefaultTargetStrength)
	}
	if obs.Targets[0].Color != core.ColorRed {
		t.Errorf("Color = %v, expected red fallback", obs.Targets[0].Color)
	}
}
