package pinball

import (
	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
)

// Obstacle is anything on the playfield that scores and repels the ball.
// The impulse applied on a hit is BounceDirection scaled by Strength.
type Obstacle interface {
	Overlaps(center core.Vec2, radius float64) bool
	Hit() int
	BounceDirection(center core.Vec2) core.Vec2
	Strength() float64
}

// Target is a rectangular drop target. Once hit it stays lit until the
// table is rebuilt.
type Target struct {
	Box            core.Box
	Points         int
	BounceStrength float64
	Color          core.Color
	hit            bool
}

// Overlaps reports whether a ball strictly overlaps the target.
func (t *Target) Overlaps(center core.Vec2, radius float64) bool {
	return core.CircleBoxOverlap(center, radius, t.Box)
}

// Hit lights the target and returns its points.
func (t *Target) Hit() int {
	t.hit = true
	return t.Points
}

// BounceDirection points from the target center toward the ball.
// A ball exactly at the center gets no push.
func (t *Target) BounceDirection(center core.Vec2) core.Vec2 {
	return center.Sub(t.Box.Center()).Normalize()
}

func (t *Target) Strength() float64 { return t.BounceStrength }

// IsHit reports whether the target has been hit since the table was built.
func (t *Target) IsHit() bool { return t.hit }

// DisplayColor is the configured color, or yellow once hit.
func (t *Target) DisplayColor() core.Color {
	if t.hit {
		return core.ColorYellow
	}
	return t.Color
}

// Bumper is a round kicker.
type Bumper struct {
	Center         core.Vec2
	Radius         float64
	Points         int
	BounceStrength float64
	Color          core.Color
	hit            bool
}

// Overlaps reports whether a ball strictly overlaps the bumper.
func (b *Bumper) Overlaps(center core.Vec2, radius float64) bool {
	return core.CirclesOverlap(center, radius, b.Center, b.Radius)
}

// Hit highlights the bumper and returns its points.
func (b *Bumper) Hit() int {
	b.hit = true
	return b.Points
}

// BounceDirection points from the bumper center toward the ball.
func (b *Bumper) BounceDirection(center core.Vec2) core.Vec2 {
	return center.Sub(b.Center).Normalize()
}

func (b *Bumper) Strength() float64 { return b.BounceStrength }

// IsHit reports whether the bumper has been hit since the table was built.
func (b *Bumper) IsHit() bool { return b.hit }

// DisplayColor is the configured color, or white once hit.
func (b *Bumper) DisplayColor() core.Color {
	if b.hit {
		return core.ColorWhite
	}
	return b.Color
}

// Obstacles holds everything placed on the field, in collision order.
type Obstacles struct {
	Targets []*Target
	Bumpers []*Bumper
}

// BuildObstacles places the configured obstacles on a layout. It depends only
// on its inputs, so rebuilding after a resize yields fresh, unlit obstacles.
func BuildObstacles(l Layout, table config.TableConfig) Obstacles {
	at := func(fx, fy float64) core.Vec2 {
		return core.V(l.Margin+fx*l.FieldW, l.Margin+fy*l.FieldH)
	}

	obs := Obstacles{
		Targets: make([]*Target, 0, len(table.Targets)),
		Bumpers: make([]*Bumper, 0, len(table.Bumpers)),
	}
	for _, ts := range table.Targets {
		pos := at(ts.X, ts.Y)
		strength := ts.Strength
		if strength == 0 {
			strength = config.DefaultTargetStrength
		}
		obs.Targets = append(obs.Targets, &Target{
			Box:            core.Box{X: pos.X, Y: pos.Y, W: ts.Width, H: ts.Height},
			Points:         ts.Points,
			BounceStrength: strength,
			Color:          parseColor(ts.Color, core.ColorRed),
		})
	}
	for _, bs := range table.Bumpers {
		obs.Bumpers = append(obs.Bumpers, &Bumper{
			Center:         at(bs.X, bs.Y),
			Radius:         bs.Radius,
			Points:         bs.Points,
			BounceStrength: bs.Strength,
			Color:          parseColor(bs.Color, core.ColorGreen),
		})
	}
	return obs
}

func parseColor(name string, fallback core.Color) core.Color {
	if c, ok := core.ParseColor(name); ok {
		return c
	}
	return fallback
}
