package pinball

import "github.com/vovakirdan/tui-pinball/internal/core"

// Snapshot is an immutable copy of the table published after every physics
// tick. Readers may hold on to it for as long as they like; nothing in it is
// shared with the live table.
type Snapshot struct {
	Tick     uint64          `json:"tick"`
	Phase    Phase           `json:"phase"`
	Score    int             `json:"score"`
	Lives    int             `json:"lives"`
	BallLost bool            `json:"ball_lost"`
	Ball     BallState       `json:"ball"`
	Flippers [2]FlipperState `json:"flippers"` // indexed by Side
	Targets  []TargetState   `json:"targets"`
	Bumpers  []BumperState   `json:"bumpers"`
	Layout   Layout          `json:"layout"`

	// GamesOver counts the games that have ended since the simulation was
	// created; LastGame is the most recent of them.
	GamesOver uint64     `json:"games_over"`
	LastGame  GameRecord `json:"last_game"`
}

// GameRecord is the result of a finished game.
type GameRecord struct {
	Score int    `json:"score"`
	Ticks uint64 `json:"ticks"` // physics ticks from the first serve to the last drain
}

// BallState is the ball as seen by a renderer.
type BallState struct {
	Pos    core.Vec2 `json:"pos"`
	Vel    core.Vec2 `json:"vel"`
	Radius float64   `json:"radius"`
}

// FlipperState is a flipper as seen by a renderer.
type FlipperState struct {
	Pivot  core.Vec2 `json:"pivot"`
	End    core.Vec2 `json:"end"`
	Angle  float64   `json:"angle"`
	Active bool      `json:"active"`
	Width  float64   `json:"width"`
}

// TargetState is a target as seen by a renderer.
type TargetState struct {
	Box    core.Box   `json:"box"`
	Points int        `json:"points"`
	Hit    bool       `json:"hit"`
	Color  core.Color `json:"color"`
}

// BumperState is a bumper as seen by a renderer.
type BumperState struct {
	Center core.Vec2  `json:"center"`
	Radius float64    `json:"radius"`
	Points int        `json:"points"`
	Hit    bool       `json:"hit"`
	Color  core.Color `json:"color"`
}

// Flipper returns the state of one flipper.
func (s *Snapshot) Flipper(side Side) FlipperState {
	return s.Flippers[side]
}

// snapshot copies the table into a new Snapshot.
func (t *Table) snapshot(tick uint64) *Snapshot {
	s := &Snapshot{
		Tick:     tick,
		Phase:    t.phase,
		Score:    t.score,
		Lives:    t.lives,
		BallLost: t.ballLost,
		Ball:     BallState{Pos: t.ball.Pos, Vel: t.ball.Vel, Radius: t.ball.Radius},
		Layout:   t.layout,
		Targets:  make([]TargetState, len(t.obstacles.Targets)),
		Bumpers:  make([]BumperState, len(t.obstacles.Bumpers)),
	}
	for _, f := range []*Flipper{t.left, t.right} {
		s.Flippers[f.Side()] = FlipperState{
			Pivot:  f.Pivot(),
			End:    f.Endpoint(),
			Angle:  f.Angle(),
			Active: f.Active(),
			Width:  f.Geometry().Width,
		}
	}
	for i, tg := range t.obstacles.Targets {
		s.Targets[i] = TargetState{Box: tg.Box, Points: tg.Points, Hit: tg.IsHit(), Color: tg.DisplayColor()}
	}
	for i, b := range t.obstacles.Bumpers {
		s.Bumpers[i] = BumperState{Center: b.Center, Radius: b.Radius, Points: b.Points, Hit: b.IsHit(), Color: b.DisplayColor()}
	}
	return s
}
