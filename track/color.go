package track

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/liftoff/cuelist"
	"github.com/robmorgan/liftoff/effect"
)

// KeyColor is the output key of a ColorTrack.
const KeyColor = "color"

// ColorTrack blends between two colors across a progress range and writes hex strings.
type ColorTrack struct {
	*Base

	renderer Renderer
	from, to colorful.Color
	last     outputs
}

// NewColorTrack creates a color track. from and to are hex colors like "#0b1d3a".
func NewColorTrack(id string, r Renderer, from, to string, start, end float64, curve effect.Curve) (*ColorTrack, error) {
	c0, err := colorful.Hex(from)
	if err != nil {
		return nil, err
	}
	c1, err := colorful.Hex(to)
	if err != nil {
		return nil, err
	}

	t := &ColorTrack{renderer: r, from: c0, to: c1, last: outputs{}}

	base, err := NewBase(id, []cuelist.Cue{cuelist.NewContinuous(id, start, end, curve)}, Handlers{OnUpdate: t.update})
	if err != nil {
		return nil, err
	}
	t.Base = base
	t.onReset = t.last.clear
	t.onDiscard = t.last.clear

	return t, nil
}

// ColorAt blends the two colors in Lab space by v.
func (t *ColorTrack) ColorAt(v float64) string {
	return t.from.BlendLab(t.to, v).Clamped().Hex()
}

func (t *ColorTrack) update(ctx Context, values []float64) error {
	c := t.ColorAt(values[0])
	if t.last.changed(KeyColor, c) {
		ctx.SetOutput(t.renderer, t.ID(), KeyColor, c)
	}
	return nil
}
