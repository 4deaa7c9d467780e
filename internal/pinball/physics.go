package pinball

import (
	"math"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
)

// FlipperHitBonus is scored for every tick the ball is in contact with a
// flipper.
const FlipperHitBonus = 10

// wallKick is added to the deflected vertical speed on a funnel wall hit.
const wallKick = 1.0

// Ball is the only moving body on the table.
type Ball struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
}

// Collisions reports which checks fired during one ResolveCollisions call.
type Collisions struct {
	TopBorder bool
	Targets   []int // indices into Obstacles.Targets
	Bumpers   []int // indices into Obstacles.Bumpers
	Wall      *Side // funnel wall that deflected the ball, if any
	Floor     bool
	BallLost  bool
	Flippers  []Side
	Points    int // total score added
}

// Any reports whether anything was hit.
func (c Collisions) Any() bool {
	return c.TopBorder || len(c.Targets) > 0 || len(c.Bumpers) > 0 ||
		c.Wall != nil || c.Floor || c.BallLost || len(c.Flippers) > 0
}

// Engine applies motion and collision response. It holds only constants;
// all mutable state lives on the Table.
type Engine struct {
	phys config.PhysicsConfig
	flip config.FlipperConfig
}

// NewEngine creates an engine from the physics and flipper sections.
func NewEngine(phys config.PhysicsConfig, flip config.FlipperConfig) Engine {
	return Engine{phys: phys, flip: flip}
}

// Integrate advances the ball by one tick: move, apply gravity, then
// friction.
func (e Engine) Integrate(b *Ball) {
	b.Pos = b.Pos.Add(b.Vel)
	b.Vel.Y += e.phys.Gravity
	b.Vel = b.Vel.Scale(e.phys.Friction)
}

// ResolveCollisions runs every collision check against the table in a fixed
// order: top border, targets, bumpers, funnel walls or floor, ball loss,
// flippers. Later checks see the velocity left by earlier ones.
func (e Engine) ResolveCollisions(t *Table) Collisions {
	var c Collisions
	b := &t.ball
	l := t.layout

	if b.Pos.Y < l.Margin+b.Radius {
		b.Vel.Y = math.Abs(b.Vel.Y)
		c.TopBorder = true
	}

	for i, tg := range t.obstacles.Targets {
		if pts, ok := e.collideObstacle(b, tg); ok {
			c.Targets = append(c.Targets, i)
			c.Points += pts
		}
	}
	for i, bp := range t.obstacles.Bumpers {
		if pts, ok := e.collideObstacle(b, bp); ok {
			c.Bumpers = append(c.Bumpers, i)
			c.Points += pts
		}
	}

	if side, ok := e.collideFunnelWalls(b, l); ok {
		c.Wall = &side
	} else if b.Pos.Y >= l.FunnelY()+e.flip.Length-b.Radius {
		b.Pos.Y = l.FunnelY() - b.Radius
		b.Vel.Y = -math.Abs(b.Vel.Y)
		c.Floor = true
	}

	if !t.ballLost && b.Pos.Y > l.FunnelY()+e.flip.Length/2 {
		t.ballLost = true
		if t.lives > 0 {
			t.lives--
		}
		c.BallLost = true
	}

	for _, f := range []*Flipper{t.left, t.right} {
		if e.collideFlipper(b, f) {
			c.Flippers = append(c.Flippers, f.Side())
			c.Points += FlipperHitBonus
		}
	}

	t.score += c.Points
	return c
}

func (e Engine) collideObstacle(b *Ball, o Obstacle) (int, bool) {
	if !o.Overlaps(b.Pos, b.Radius) {
		return 0, false
	}
	pts := o.Hit()
	b.Vel = b.Vel.Add(o.BounceDirection(b.Pos).Scale(o.Strength()))
	return pts, true
}

// collideFunnelWalls deflects the ball off the first funnel wall it touches.
// A wall counts as touched when both the true segment distance and the
// distance to the per-axis clamped point are below the ball radius.
func (e Engine) collideFunnelWalls(b *Ball, l Layout) (Side, bool) {
	walls := [...]struct {
		side   Side
		lo, hi core.Vec2
	}{
		{Left, l.FunnelLeft, l.TopLeft},
		{Right, l.FunnelRight, l.TopRight},
	}

	for _, w := range walls {
		if core.DistancePointToSegment(b.Pos, w.lo, w.hi) >= b.Radius {
			continue
		}
		if b.Pos.Dist(core.ClosestAxisPoint(b.Pos, w.lo, w.hi)) >= b.Radius {
			continue
		}

		if w.side == Left {
			b.Vel.X = math.Abs(b.Vel.Y)
		} else {
			b.Vel.X = -math.Abs(b.Vel.Y)
		}
		if b.Vel.Y < 0 {
			b.Vel.Y = math.Abs(b.Vel.X) + wallKick
		} else {
			b.Vel.Y = -math.Abs(b.Vel.X) - wallKick
		}
		return w.side, true
	}
	return 0, false
}

// collideFlipper throws the ball up and toward the table center when it
// touches the flipper, with an extra kick while the flipper is swinging.
func (e Engine) collideFlipper(b *Ball, f *Flipper) bool {
	reach := b.Radius + f.Geometry().Width/2
	if core.DistancePointToSegment(b.Pos, f.Pivot(), f.Endpoint()) >= reach {
		return false
	}

	d := e.phys.BounceDamping
	vx := math.Abs(b.Vel.X)*d + e.flip.OutwardBias
	vy := -math.Abs(b.Vel.Y)*d - e.flip.LiftBias
	if f.Active() {
		vx += e.flip.ActiveBoostX
		vy -= e.flip.ActiveBoostY
	}
	if f.Side() == Right {
		vx = -vx
	}
	b.Vel = core.V(vx, vy)
	return true
}
