// Package config provides YAML-based configuration loading and difficulty
// presets for the pinball table.
package config

import (
	"errors"
	"fmt"
	"time"
)

// PinballConfig contains all tunables of the pinball table.
type PinballConfig struct {
	Physics  PhysicsConfig  `yaml:"physics"`
	Flipper  FlipperConfig  `yaml:"flipper"`
	Table    TableConfig    `yaml:"table"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Timing   TimingConfig   `yaml:"timing"`
	Controls ControlsConfig `yaml:"controls"`
	Render   RenderConfig   `yaml:"render"`
}

// PhysicsConfig defines ball motion parameters. Velocities are in playfield
// pixels per physics tick.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`
	Friction      float64 `yaml:"friction"`       // velocity multiplier per tick
	BounceDamping float64 `yaml:"bounce_damping"` // energy kept on a flipper hit
	BallRadius    float64 `yaml:"ball_radius"`
}

// FlipperConfig defines flipper geometry and its hit response.
type FlipperConfig struct {
	Length         float64 `yaml:"length"`
	Width          float64 `yaml:"width"`
	RestAngleDeg   float64 `yaml:"rest_angle_deg"`   // left flipper; right is mirrored
	ActiveAngleDeg float64 `yaml:"active_angle_deg"` // left flipper; right is mirrored
	RotationSpeed  float64 `yaml:"rotation_speed"`   // radians per tick
	OutwardBias    float64 `yaml:"outward_bias"`
	LiftBias       float64 `yaml:"lift_bias"`
	ActiveBoostX   float64 `yaml:"active_boost_x"`
	ActiveBoostY   float64 `yaml:"active_boost_y"`
}

// TableConfig defines the enclosure and obstacle placement. Obstacle
// positions are fractions of the field size so the table scales with the
// window.
type TableConfig struct {
	BorderMargin      float64      `yaml:"border_margin"`
	FunnelWidthFactor float64      `yaml:"funnel_width_factor"` // multiple of flipper length
	FunnelHeightRatio float64      `yaml:"funnel_height_ratio"` // fraction of field height
	SpawnYRatio       float64      `yaml:"spawn_y_ratio"`
	Targets           []TargetSpec `yaml:"targets"`
	Bumpers           []BumperSpec `yaml:"bumpers"`
}

// TargetSpec places a rectangular target. X and Y locate the top-left corner.
type TargetSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Points   int     `yaml:"points"`
	Strength float64 `yaml:"strength"`
	Color    string  `yaml:"color"`
}

// BumperSpec places a round bumper. X and Y locate the center.
type BumperSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Radius   float64 `yaml:"radius"`
	Points   int     `yaml:"points"`
	Strength float64 `yaml:"strength"`
	Color    string  `yaml:"color"`
}

// GameplayConfig defines lives and launch velocity ranges.
// A launch picks vx in [-LaunchSpreadX/2, LaunchSpreadX/2) and
// vy in (-(LaunchMinUp+LaunchRangeUp), -LaunchMinUp].
type GameplayConfig struct {
	Lives         int     `yaml:"lives"`
	LaunchSpreadX float64 `yaml:"launch_spread_x"`
	LaunchMinUp   float64 `yaml:"launch_min_up"`
	LaunchRangeUp float64 `yaml:"launch_range_up"`
}

// TimingConfig defines the periods of the physics and render ticks.
type TimingConfig struct {
	PhysicsPeriodMs int `yaml:"physics_period_ms"`
	RenderPeriodMs  int `yaml:"render_period_ms"`
}

// PhysicsPeriod returns the physics tick period.
func (t TimingConfig) PhysicsPeriod() time.Duration {
	return time.Duration(t.PhysicsPeriodMs) * time.Millisecond
}

// RenderPeriod returns the render tick period.
func (t TimingConfig) RenderPeriod() time.Duration {
	return time.Duration(t.RenderPeriodMs) * time.Millisecond
}

// ControlsConfig tunes keyboard handling.
type ControlsConfig struct {
	// Terminals report key presses only, so a flipper stays up this long
	// after its last press. Key auto-repeat refreshes it while held.
	FlipperHoldMs int `yaml:"flipper_hold_ms"`
}

// RenderConfig maps playfield pixels to terminal cells.
type RenderConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// Validate reports the first impossible value in the config.
func (c PinballConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Physics.BallRadius > 0, "physics.ball_radius must be positive, got %v", c.Physics.BallRadius)
	check(c.Physics.Friction > 0 && c.Physics.Friction <= 1, "physics.friction must be in (0, 1], got %v", c.Physics.Friction)
	check(c.Physics.BounceDamping >= 0, "physics.bounce_damping must not be negative, got %v", c.Physics.BounceDamping)
	check(c.Flipper.Length > 0, "flipper.length must be positive, got %v", c.Flipper.Length)
	check(c.Flipper.Width > 0, "flipper.width must be positive, got %v", c.Flipper.Width)
	check(c.Flipper.RotationSpeed > 0, "flipper.rotation_speed must be positive, got %v", c.Flipper.RotationSpeed)
	check(c.Table.BorderMargin >= 0, "table.border_margin must not be negative, got %v", c.Table.BorderMargin)
	check(c.Table.FunnelHeightRatio > 0 && c.Table.FunnelHeightRatio < 1,
		"table.funnel_height_ratio must be in (0, 1), got %v", c.Table.FunnelHeightRatio)
	check(c.Gameplay.Lives > 0, "gameplay.lives must be positive, got %d", c.Gameplay.Lives)
	check(c.Timing.PhysicsPeriodMs > 0, "timing.physics_period_ms must be positive, got %d", c.Timing.PhysicsPeriodMs)
	check(c.Timing.RenderPeriodMs > 0, "timing.render_period_ms must be positive, got %d", c.Timing.RenderPeriodMs)
	check(c.Render.CellWidth > 0 && c.Render.CellHeight > 0,
		"render cell size must be positive, got %vx%v", c.Render.CellWidth, c.Render.CellHeight)

	for i, t := range c.Table.Targets {
		check(t.Width > 0 && t.Height > 0, "table.targets[%d]: size must be positive", i)
		check(t.Points >= 0, "table.targets[%d]: points must not be negative", i)
	}
	for i, b := range c.Table.Bumpers {
		check(b.Radius > 0, "table.bumpers[%d]: radius must be positive", i)
		check(b.Points >= 0, "table.bumpers[%d]: points must not be negative", i)
	}

	return errors.Join(errs...)
}
