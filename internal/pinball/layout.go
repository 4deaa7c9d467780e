package pinball

import (
	"errors"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
)

// ErrInvalidSize is returned for a container too small to hold a field.
var ErrInvalidSize = errors.New("pinball: invalid playfield size")

// Layout is the table geometry derived from the container size. The funnel
// narrows from the top corners down to its base points, where the flipper
// pivots sit.
type Layout struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
	FieldW float64 `json:"field_w"`
	FieldH float64 `json:"field_h"`

	TopLeft     core.Vec2 `json:"top_left"`
	TopRight    core.Vec2 `json:"top_right"`
	FunnelLeft  core.Vec2 `json:"funnel_left"`
	FunnelRight core.Vec2 `json:"funnel_right"`
	LeftPivot   core.Vec2 `json:"left_pivot"`
	RightPivot  core.Vec2 `json:"right_pivot"`
	Spawn       core.Vec2 `json:"spawn"`
}

// NewLayout computes the layout for a width x height container. It fails with
// ErrInvalidSize when either dimension, or the field left inside the
// margins, is not positive.
func NewLayout(width, height float64, table config.TableConfig, flipperLength float64) (Layout, error) {
	if !(width > 0) || !(height > 0) {
		return Layout{}, ErrInvalidSize
	}
	m := table.BorderMargin
	fieldW := width - 2*m
	fieldH := height - 2*m
	if !(fieldW > 0) || !(fieldH > 0) {
		return Layout{}, ErrInvalidSize
	}

	funnelW := table.FunnelWidthFactor * flipperLength
	funnelH := table.FunnelHeightRatio * fieldH
	funnelY := m + fieldH - funnelH
	centerX := m + fieldW/2

	return Layout{
		Width:       width,
		Height:      height,
		Margin:      m,
		FieldW:      fieldW,
		FieldH:      fieldH,
		TopLeft:     core.V(m, m),
		TopRight:    core.V(m+fieldW, m),
		FunnelLeft:  core.V(m+(fieldW-funnelW)/2, funnelY),
		FunnelRight: core.V(m+(fieldW+funnelW)/2, funnelY),
		LeftPivot:   core.V(centerX-funnelW/2, funnelY),
		RightPivot:  core.V(centerX+funnelW/2, funnelY),
		Spawn:       core.V(centerX, m+fieldH*table.SpawnYRatio),
	}, nil
}

// FunnelY is the height of the funnel base and the flipper pivots.
func (l Layout) FunnelY() float64 {
	return l.FunnelLeft.Y
}

// Valid reports whether the layout came from a successful NewLayout.
func (l Layout) Valid() bool {
	return l.FieldW > 0 && l.FieldH > 0
}
