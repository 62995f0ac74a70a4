package cuelist

import (
	"github.com/robmorgan/liftoff/effect"
	"github.com/robmorgan/liftoff/engine/scale"
)

// Evaluation is what a gate reports for one progress sample.
type Evaluation struct {
	// Fired is set on the sample a OneShot triggers.
	Fired bool
	// Entered and Exited are Window edges.
	Entered bool
	Exited  bool
	// Active is true while progress is inside the cue range. A OneShot is active from firing
	// until it re-arms.
	Active bool
	// Value is the eased value of a Continuous cue, 1 or 0 for the others.
	Value float64
}

// Gate holds the edge-detection state for a single cue.
//
// A OneShot gate starts armed, fires on the first sample at or above its threshold and stays
// disarmed until progress falls below threshold minus the re-arm distance. A Window gate
// remembers whether the previous sample was inside so enter and exit strictly alternate.
// Continuous gates are stateless.
type Gate struct {
	cue    Cue
	curve  effect.Curve
	armed  bool
	active bool
}

// NewGate creates a gate for c in its initial state. c should already be validated.
func NewGate(c Cue) *Gate {
	g := &Gate{cue: c, curve: c.Curve}
	if g.curve == nil {
		g.curve = effect.Linear
	}
	g.Reset()
	return g
}

// Cue returns the cue the gate evaluates.
func (g *Gate) Cue() Cue {
	return g.cue
}

// Reset restores the initial state without reporting any edge.
func (g *Gate) Reset() {
	g.armed = true
	g.active = false
}

// Evaluate advances the gate to progress p.
func (g *Gate) Evaluate(p float64) Evaluation {
	switch g.cue.Kind {
	case OneShot:
		return g.evaluateOneShot(p)
	case Window:
		return g.evaluateWindow(p)
	default:
		return g.evaluateContinuous(p)
	}
}

func (g *Gate) evaluateOneShot(p float64) Evaluation {
	at := g.cue.Start

	if !g.armed && p < at-g.cue.Rearm() {
		g.armed = true
	}

	ev := Evaluation{}
	if g.armed && p >= at {
		g.armed = false
		ev.Fired = true
	}

	ev.Active = !g.armed
	if ev.Active {
		ev.Value = 1
	}
	return ev
}

func (g *Gate) evaluateWindow(p float64) Evaluation {
	inside := p >= g.cue.Start && p <= g.cue.End

	ev := Evaluation{Active: inside}
	if inside && !g.active {
		ev.Entered = true
	} else if !inside && g.active {
		ev.Exited = true
	}
	g.active = inside

	if inside {
		ev.Value = 1
	}
	return ev
}

func (g *Gate) evaluateContinuous(p float64) Evaluation {
	return Evaluation{
		Active: p >= g.cue.Start && p <= g.cue.End,
		Value:  ContinuousValue(g.cue, g.curve, p),
	}
}

// ContinuousValue is the pure mapping of progress p through a continuous cue: 0 before the
// range, curve(1) after it.
func ContinuousValue(c Cue, curve effect.Curve, p float64) float64 {
	if curve == nil {
		curve = effect.Linear
	}
	t := scale.ToUnitClamp(c.Start, c.End)(p)
	return curve(t)
}
