package config

import (
	_ "embed"
)

//go:embed defaults/pinball.yaml
var defaultPinballYAML []byte

// DefaultTargetStrength is the bounce strength of a target that does not set
// its own.
const DefaultTargetStrength = 8.0

// DefaultPinballConfig returns the default table configuration.
func DefaultPinballConfig() PinballConfig {
	return PinballConfig{
		Physics: PhysicsConfig{
			Gravity:       0.1,
			Friction:      0.99,
			BounceDamping: 0.8,
			BallRadius:    6,
		},
		Flipper: FlipperConfig{
			Length:         60,
			Width:          10,
			RestAngleDeg:   30,
			ActiveAngleDeg: -30,
			RotationSpeed:  0.4,
			OutwardBias:    2,
			LiftBias:       3,
			ActiveBoostX:   3,
			ActiveBoostY:   4,
		},
		Table: TableConfig{
			BorderMargin:      20,
			FunnelWidthFactor: 3.2,
			FunnelHeightRatio: 0.25,
			SpawnYRatio:       1.0 / 3.0,
			Targets: []TargetSpec{
				{X: 0.2, Y: 0.1, Width: 25, Height: 12, Points: 100, Strength: DefaultTargetStrength, Color: "red"},
				{X: 0.7, Y: 0.1, Width: 25, Height: 12, Points: 100, Strength: DefaultTargetStrength, Color: "red"},
				{X: 0.45, Y: 0.2, Width: 35, Height: 15, Points: 500, Strength: 12, Color: "blue"},
			},
			Bumpers: []BumperSpec{
				{X: 0.3, Y: 0.4, Radius: 15, Points: 50, Strength: 8, Color: "green"},
				{X: 0.7, Y: 0.4, Radius: 15, Points: 50, Strength: 8, Color: "green"},
				{X: 0.5, Y: 0.5, Radius: 18, Points: 100, Strength: 12, Color: "magenta"},
			},
		},
		Gameplay: GameplayConfig{
			Lives:         3,
			LaunchSpreadX: 8,
			LaunchMinUp:   3,
			LaunchRangeUp: 6,
		},
		Timing: TimingConfig{
			PhysicsPeriodMs: 16,
			RenderPeriodMs:  50,
		},
		Controls: ControlsConfig{
			FlipperHoldMs: 220,
		},
		Render: RenderConfig{
			CellWidth:  8,
			CellHeight: 16,
		},
	}
}
