package track

import (
	"fmt"

	"github.com/robmorgan/liftoff/cuelist"
	"github.com/robmorgan/liftoff/effect"
)

// Output keys written by a VisibilityTrack.
const (
	KeyActive  = "active"
	KeyOpacity = "opacity"
	KeyLabel   = "label"
)

// Visibility describes when an element is shown. The element fades in over FadeIn after Start
// and fades out over FadeOut before End.
type Visibility struct {
	Start   float64
	End     float64
	FadeIn  float64
	FadeOut float64

	InCurve  effect.Curve
	OutCurve effect.Curve

	// Peak opacity, zero means 1.
	Peak float64

	// Target is the renderer slot to write, defaults to the track id. Tracks sharing a
	// Target should share a Resource.
	Target   string
	Resource Resource

	// Label is written alongside active so a shared slot shows who owns it.
	Label string
}

// VisibilityTrack shows and hides an element over a window.
type VisibilityTrack struct {
	*Base

	renderer Renderer
	spec     Visibility
	cues     []cuelist.Cue
	fadeIn   int
	fadeOut  int
	last     outputs
}

// NewVisibilityTrack creates a visibility track writing to r.
func NewVisibilityTrack(id string, r Renderer, v Visibility) (*VisibilityTrack, error) {
	if v.Target == "" {
		v.Target = id
	}
	if v.Peak == 0 {
		v.Peak = 1
	}

	cues := []cuelist.Cue{cuelist.NewWindow(id+"/window", v.Start, v.End)}
	t := &VisibilityTrack{renderer: r, spec: v, fadeIn: -1, fadeOut: -1, last: outputs{}}

	if v.FadeIn < 0 || v.FadeOut < 0 || v.FadeIn+v.FadeOut > v.End-v.Start {
		return nil, fmt.Errorf("track %s: %w", id, cuelist.InvalidCueRange{
			Cue: id, Kind: cuelist.Window, Start: v.Start, End: v.End, Reason: "fades do not fit inside the window",
		})
	}
	if v.FadeIn > 0 {
		t.fadeIn = len(cues)
		cues = append(cues, cuelist.NewContinuous(id+"/in", v.Start, v.Start+v.FadeIn, v.InCurve))
	}
	if v.FadeOut > 0 {
		t.fadeOut = len(cues)
		cues = append(cues, cuelist.NewContinuous(id+"/out", v.End-v.FadeOut, v.End, v.OutCurve))
	}

	base, err := NewBase(id, cues, Handlers{
		OnExit:   t.exit,
		OnEnter:  t.enter,
		OnUpdate: t.update,
		OnTick:   t.tick,
	})
	if err != nil {
		return nil, err
	}
	t.Base = base
	t.cues = cues
	t.onReset = t.last.clear
	t.onDiscard = t.last.clear

	return t, nil
}

// Claims wants the shared resource while the window is open.
func (t *VisibilityTrack) Claims(f Frame) []Resource {
	if t.spec.Resource == "" || !t.inside(f.Progress) {
		return nil
	}
	return []Resource{t.spec.Resource}
}

// OpacityAt is the opacity at progress p.
func (t *VisibilityTrack) OpacityAt(p float64) float64 {
	if !t.inside(p) {
		return 0
	}
	cues := t.cues
	o := t.spec.Peak
	if t.fadeIn >= 0 {
		o *= cuelist.ContinuousValue(cues[t.fadeIn], t.spec.InCurve, p)
	}
	if t.fadeOut >= 0 {
		o *= 1 - cuelist.ContinuousValue(cues[t.fadeOut], t.spec.OutCurve, p)
	}
	return o
}

func (t *VisibilityTrack) inside(p float64) bool {
	return p >= t.spec.Start && p <= t.spec.End
}

func (t *VisibilityTrack) write(ctx Context, key string, value interface{}) {
	if !ctx.CanWrite(t.spec.Resource) {
		// someone else holds the slot, so our view of it is stale
		t.last.clear()
		return
	}
	if t.last.changed(key, value) {
		ctx.SetOutput(t.renderer, t.spec.Target, key, value)
	}
}

func (t *VisibilityTrack) exit(ctx Context, _ []int) error {
	t.write(ctx, KeyActive, false)
	t.write(ctx, KeyOpacity, 0.0)
	return nil
}

func (t *VisibilityTrack) enter(ctx Context, _ []int) error {
	if t.spec.Label != "" {
		t.write(ctx, KeyLabel, t.spec.Label)
	}
	t.write(ctx, KeyActive, true)
	return nil
}

func (t *VisibilityTrack) update(ctx Context, _ []float64) error {
	if t.inside(ctx.Frame.Progress) {
		t.write(ctx, KeyOpacity, t.OpacityAt(ctx.Frame.Progress))
	}
	return nil
}

// tick restores the full state after the track wins back a shared slot, and covers windows
// without fades, which have no continuous cue.
func (t *VisibilityTrack) tick(ctx Context) error {
	if !t.inside(ctx.Frame.Progress) {
		return nil
	}
	if t.spec.Label != "" {
		t.write(ctx, KeyLabel, t.spec.Label)
	}
	t.write(ctx, KeyActive, true)
	t.write(ctx, KeyOpacity, t.OpacityAt(ctx.Frame.Progress))
	return nil
}
