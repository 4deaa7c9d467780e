package pinball

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
)

// Renderer draws snapshots onto a character screen. Each cell covers
// CellWidth x CellHeight playfield pixels.
type Renderer struct {
	cellW float64
	cellH float64
}

// NewRenderer creates a renderer for the given cell size.
func NewRenderer(rc config.RenderConfig) Renderer {
	return Renderer{cellW: rc.CellWidth, cellH: rc.CellHeight}
}

// WorldSize converts a screen size in cells to a playfield size in pixels.
func (r Renderer) WorldSize(cols, rows int) (float64, float64) {
	return float64(cols) * r.cellW, float64(rows) * r.cellH
}

// cell maps a playfield point to the cell containing it.
func (r Renderer) cell(p core.Vec2) (int, int) {
	return int(math.Floor(p.X / r.cellW)), int(math.Floor(p.Y / r.cellH))
}

// Render draws the whole frame: walls, obstacles, flippers, ball, HUD and
// any phase overlay.
func (r Renderer) Render(dst *core.Screen, s *Snapshot) {
	dst.Clear()

	if !s.Layout.Valid() {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorRed)
		return
	}

	r.renderWalls(dst, s.Layout)
	r.renderTargets(dst, s.Targets)
	r.renderBumpers(dst, s.Bumpers)
	r.renderFlippers(dst, s)
	if !s.BallLost {
		x, y := r.cell(s.Ball.Pos)
		dst.SetColored(x, y, '●', core.ColorWhite)
	}
	r.renderHUD(dst, s)
	r.renderOverlay(dst, s)
}

// renderWalls draws the top rail, both funnel walls and the drain line.
func (r Renderer) renderWalls(dst *core.Screen, l Layout) {
	x0, y0 := r.cell(l.TopLeft)
	x1, _ := r.cell(l.TopRight)
	dst.DrawLine(x0, y0, x1, y0, '═', core.ColorGray)

	fx, fy := r.cell(l.FunnelLeft)
	dst.DrawLine(x0, y0+1, fx, fy, '\\', core.ColorGray)
	fx, fy = r.cell(l.FunnelRight)
	dst.DrawLine(x1, y0+1, fx, fy, '/', core.ColorGray)

	// The drain sits just below the flipper pivots.
	lx, py := r.cell(l.LeftPivot)
	rx, _ := r.cell(l.RightPivot)
	for x := lx; x <= rx; x += 2 {
		dst.SetColored(x, py+2, '·', core.ColorRed)
	}
}

func (r Renderer) renderTargets(dst *core.Screen, targets []TargetState) {
	for _, t := range targets {
		x0, y0 := r.cell(core.V(t.Box.X, t.Box.Y))
		x1 := int(math.Ceil((t.Box.X+t.Box.W)/r.cellW)) - 1
		y1 := int(math.Ceil((t.Box.Y+t.Box.H)/r.cellH)) - 1
		dst.DrawRect(core.NewRect(x0, y0, max(x1-x0+1, 1), max(y1-y0+1, 1)), '█', t.Color)
	}
}

// renderBumpers fills the cells whose centers fall inside each bumper, and
// always the cell holding the bumper center.
func (r Renderer) renderBumpers(dst *core.Screen, bumpers []BumperState) {
	for _, b := range bumpers {
		cx, cy := r.cell(b.Center)
		rx := int(math.Ceil(b.Radius / r.cellW))
		ry := int(math.Ceil(b.Radius / r.cellH))
		for y := cy - ry; y <= cy+ry; y++ {
			for x := cx - rx; x <= cx+rx; x++ {
				mid := core.V((float64(x)+0.5)*r.cellW, (float64(y)+0.5)*r.cellH)
				if mid.Dist(b.Center) <= b.Radius {
					dst.SetColored(x, y, 'O', b.Color)
				}
			}
		}
		dst.SetColored(cx, cy, 'O', b.Color)
	}
}

func (r Renderer) renderFlippers(dst *core.Screen, s *Snapshot) {
	for _, f := range s.Flippers {
		color := core.ColorCyan
		if f.Active {
			color = core.ColorYellow
		}
		px, py := r.cell(f.Pivot)
		ex, ey := r.cell(f.End)
		dst.DrawLine(px, py, ex, ey, '▬', color)
	}
}

// renderHUD draws score, remaining balls and the ball velocity on the top
// row, inside the border margin.
func (r Renderer) renderHUD(dst *core.Screen, s *Snapshot) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("SCORE %06d", s.Score), core.ColorYellow)

	balls := "BALLS " + strings.Repeat("●", s.Lives)
	dst.DrawTextCentered(0, balls, core.ColorWhite)

	vel := fmt.Sprintf("V %+5.1f %+5.1f", s.Ball.Vel.X, s.Ball.Vel.Y)
	dst.DrawTextColored(dst.Width()-len(vel)-1, 0, vel, core.ColorGray)
}

func (r Renderer) renderOverlay(dst *core.Screen, s *Snapshot) {
	switch {
	case s.Phase == PhaseReady:
		drawCenteredBox(dst, "PINBALL", "Press SPACE to start")
	case s.Phase == PhaseGameOver:
		drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Final score: %d | SPACE to play again", s.Score))
	case s.Phase == PhasePlaying && s.BallLost:
		drawCenteredBox(dst, "BALL LOST", "Press SPACE for the next ball")
	}
}

// drawCenteredBox draws a framed two-line message in the middle of the
// screen.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	tw, sw := len([]rune(title)), len([]rune(subtitle))
	boxW := max(tw, sw) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextColored(box.X+(boxW-tw)/2, box.Y+1, title, core.ColorYellow)
	dst.DrawTextColored(box.X+(boxW-sw)/2, box.Y+3, subtitle, core.ColorDefault)
}
