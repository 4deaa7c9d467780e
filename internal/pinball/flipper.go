package pinball

import (
	"math"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
)

// Side identifies one of the two flippers.
type Side int

const (
	Left Side = iota
	Right
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// FlipperGeometry is fixed for the lifetime of a flipper. Angles are those of
// the left flipper in radians; the right flipper uses their negation.
type FlipperGeometry struct {
	Length        float64
	Width         float64
	RestAngle     float64
	ActiveAngle   float64
	RotationSpeed float64
}

// GeometryFromConfig converts the YAML flipper section to radians.
func GeometryFromConfig(c config.FlipperConfig) FlipperGeometry {
	return FlipperGeometry{
		Length:        c.Length,
		Width:         c.Width,
		RestAngle:     c.RestAngleDeg * math.Pi / 180,
		ActiveAngle:   c.ActiveAngleDeg * math.Pi / 180,
		RotationSpeed: c.RotationSpeed,
	}
}

// Flipper is a paddle rotating about a pivot at the funnel base.
type Flipper struct {
	side   Side
	geom   FlipperGeometry
	pivot  core.Vec2
	angle  float64
	active bool
}

// NewFlipper creates a flipper at rest.
func NewFlipper(side Side, geom FlipperGeometry, pivot core.Vec2) *Flipper {
	f := &Flipper{side: side, geom: geom, pivot: pivot}
	f.angle = f.restAngle()
	return f
}

func (f *Flipper) restAngle() float64 {
	if f.side == Right {
		return -f.geom.RestAngle
	}
	return f.geom.RestAngle
}

func (f *Flipper) activeAngle() float64 {
	if f.side == Right {
		return -f.geom.ActiveAngle
	}
	return f.geom.ActiveAngle
}

// Advance rotates the flipper one step toward its active extreme while
// active, or back toward rest otherwise. The angle never passes either
// extreme.
func (f *Flipper) Advance() {
	target := f.restAngle()
	if f.active {
		target = f.activeAngle()
	}
	if f.angle < target {
		f.angle = math.Min(f.angle+f.geom.RotationSpeed, target)
	} else {
		f.angle = math.Max(f.angle-f.geom.RotationSpeed, target)
	}
}

// AngleRange returns the inclusive bounds the angle stays within.
func (f *Flipper) AngleRange() (lo, hi float64) {
	a, b := f.restAngle(), f.activeAngle()
	return math.Min(a, b), math.Max(a, b)
}

// Endpoint returns the tip of the flipper. The right flipper points the
// other way, so its direction is offset by pi.
func (f *Flipper) Endpoint() core.Vec2 {
	theta := f.angle
	if f.side == Right {
		theta += math.Pi
	}
	return f.pivot.Add(core.FromAngle(theta).Scale(f.geom.Length))
}

func (f *Flipper) Side() Side { return f.side }
func (f *Flipper) Pivot() core.Vec2 { return f.pivot }
func (f *Flipper) Angle() float64 { return f.angle }
func (f *Flipper) Active() bool { return f.active }
func (f *Flipper) Geometry() FlipperGeometry { return f.geom }

// SetActive records whether the flipper button is held.
func (f *Flipper) SetActive(active bool) {
	f.active = active
}

// moveTo places the pivot after a layout change. The angle is kept.
func (f *Flipper) moveTo(pivot core.Vec2) {
	f.pivot = pivot
}
