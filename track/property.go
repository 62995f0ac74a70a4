package track

import (
	"errors"
	"fmt"
	"sort"

	"github.com/robmorgan/liftoff/cuelist"
	"github.com/robmorgan/liftoff/effect"
	"github.com/robmorgan/liftoff/engine/scale"
)

// ErrUnknownProperty is returned when a segment animates a property with no initial value.
var ErrUnknownProperty = errors.New("segment animates a property without an initial value")

// Segment tweens properties toward To between Start and End. Each property starts from
// whatever value it had when the segment begins.
type Segment struct {
	Start float64
	End   float64
	Curve effect.Curve
	To    map[string]float64
}

// PropertyTrack animates named scalar properties through a timeline of segments. When
// segments on the same property overlap, the one that started last takes over from the value
// the property had at its start. Every output is a pure function of progress.
type PropertyTrack struct {
	*Base

	renderer Renderer
	target   string
	initial  map[string]float64
	keys     []string
	segments []Segment
	cues     []cuelist.Cue
	from     []map[string]float64
	last     outputs
}

// NewPropertyTrack creates a property track writing to r under id.
func NewPropertyTrack(id string, r Renderer, initial map[string]float64, segments ...Segment) (*PropertyTrack, error) {
	segs := append([]Segment(nil), segments...)
	sort.SliceStable(segs, func(i, j int) bool {
		return segs[i].Start < segs[j].Start
	})

	keys := make([]string, 0, len(initial))
	for k := range initial {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cues := make([]cuelist.Cue, 0, len(segs))
	for i, s := range segs {
		for k := range s.To {
			if _, ok := initial[k]; !ok {
				return nil, fmt.Errorf("track %s segment %d: %w: %q", id, i, ErrUnknownProperty, k)
			}
		}
		cues = append(cues, cuelist.NewContinuous(fmt.Sprintf("%s/%d", id, i), s.Start, s.End, s.Curve))
	}

	t := &PropertyTrack{
		renderer: r,
		target:   id,
		initial:  initial,
		keys:     keys,
		segments: segs,
		cues:     cues,
		last:     outputs{},
	}

	base, err := NewBase(id, cues, Handlers{OnUpdate: t.update})
	if err != nil {
		return nil, err
	}
	t.Base = base
	t.onReset = t.last.clear
	t.onDiscard = t.last.clear

	t.from = make([]map[string]float64, len(segs))
	for i, s := range segs {
		t.from[i] = make(map[string]float64, len(s.To))
		for k := range s.To {
			t.from[i][k] = t.valueAt(k, s.Start, i)
		}
	}

	return t, nil
}

// Keys lists the animated properties in sorted order.
func (t *PropertyTrack) Keys() []string {
	return t.keys
}

// ValueAt returns every property at progress p.
func (t *PropertyTrack) ValueAt(p float64) map[string]float64 {
	out := make(map[string]float64, len(t.keys))
	for _, k := range t.keys {
		out[k] = t.valueAt(k, p, len(t.segments))
	}
	return out
}

// valueAt resolves key at p considering only the first n segments.
func (t *PropertyTrack) valueAt(key string, p float64, n int) float64 {
	active := -1
	for i := 0; i < n; i++ {
		s := t.segments[i]
		if s.Start > p {
			break
		}
		if _, ok := s.To[key]; ok {
			active = i
		}
	}
	if active < 0 {
		return t.initial[key]
	}

	s := t.segments[active]
	return scale.Lerp(t.from[active][key], s.To[key], cuelist.ContinuousValue(t.cues[active], s.Curve, p))
}

func (t *PropertyTrack) update(ctx Context, _ []float64) error {
	for _, k := range t.keys {
		v := t.valueAt(k, ctx.Frame.Progress, len(t.segments))
		if t.last.changed(k, v) {
			ctx.SetOutput(t.renderer, t.target, k, v)
		}
	}
	return nil
}
