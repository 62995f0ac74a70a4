package cuelist

import (
	"errors"
	"fmt"
	"math"

	"github.com/robmorgan/liftoff/effect"
)

// DefaultHysteresis is the distance below a one-shot threshold that progress must fall before
// the cue can fire again.
const DefaultHysteresis = 0.02

// Kind is the trigger behavior of a cue.
type Kind int

const (
	// OneShot fires once when progress crosses a threshold upward.
	OneShot Kind = iota
	// Window is active while progress is inside [Start,End] and reports enter/exit edges.
	Window
	// Continuous maps progress inside [Start,End] through a curve to a value in [0,1].
	Continuous
)

func (k Kind) String() string {
	switch k {
	case OneShot:
		return "oneshot"
	case Window:
		return "window"
	case Continuous:
		return "continuous"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ErrInvalidCueRange matches every InvalidCueRange with errors.Is.
var ErrInvalidCueRange = errors.New("invalid cue range")

// InvalidCueRange describes a cue that can never evaluate sensibly. It is returned when a cue
// is registered, never while evaluating.
type InvalidCueRange struct {
	Cue    string
	Kind   Kind
	Start  float64
	End    float64
	Reason string
}

func (e InvalidCueRange) Error() string {
	if e.Kind == OneShot {
		return fmt.Sprintf("%s: %s cue %q at %.4f: %s", ErrInvalidCueRange, e.Kind, e.Cue, e.Start, e.Reason)
	}
	return fmt.Sprintf("%s: %s cue %q [%.4f, %.4f]: %s", ErrInvalidCueRange, e.Kind, e.Cue, e.Start, e.End, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidCueRange) match.
func (e InvalidCueRange) Is(target error) bool {
	return target == ErrInvalidCueRange
}

// Cue is a progress-triggered event. For OneShot cues Start is the threshold and End is unused.
type Cue struct {
	// The name or label associated with the cue
	Name string

	Kind  Kind
	Start float64
	End   float64

	// Hysteresis for OneShot cues. Zero means DefaultHysteresis.
	Hysteresis float64

	// RearmDistance is an extra minimum distance below the threshold before a OneShot re-arms.
	// The larger of Hysteresis and RearmDistance wins.
	RearmDistance float64

	// Curve shapes Continuous cues. Nil means linear.
	Curve effect.Curve
}

// NewOneShot creates a cue that fires when progress reaches at.
func NewOneShot(name string, at float64) Cue {
	return Cue{Name: name, Kind: OneShot, Start: at, End: at}
}

// NewWindow creates a cue active while start <= progress <= end.
func NewWindow(name string, start, end float64) Cue {
	return Cue{Name: name, Kind: Window, Start: start, End: end}
}

// NewContinuous creates a cue whose value follows curve across [start,end].
func NewContinuous(name string, start, end float64, curve effect.Curve) Cue {
	return Cue{Name: name, Kind: Continuous, Start: start, End: end, Curve: curve}
}

// WithHysteresis returns a copy of c with hysteresis h.
func (c Cue) WithHysteresis(h float64) Cue {
	c.Hysteresis = h
	return c
}

// WithRearmDistance returns a copy of c with a minimum re-arm distance d.
func (c Cue) WithRearmDistance(d float64) Cue {
	c.RearmDistance = d
	return c
}

// Rearm is how far below the threshold progress must drop before a OneShot can fire again.
func (c Cue) Rearm() float64 {
	h := c.Hysteresis
	if h == 0 {
		h = DefaultHysteresis
	}
	return max(h, c.RearmDistance)
}

// Validate reports an InvalidCueRange when the cue bounds cannot be evaluated.
func (c Cue) Validate() error {
	invalid := func(reason string) error {
		return InvalidCueRange{Cue: c.Name, Kind: c.Kind, Start: c.Start, End: c.End, Reason: reason}
	}

	if !finite(c.Start) || !finite(c.End) {
		return invalid("bounds must be finite")
	}
	if c.Hysteresis < 0 || c.RearmDistance < 0 || !finite(c.Hysteresis) || !finite(c.RearmDistance) {
		return invalid("hysteresis and re-arm distance must be non-negative")
	}

	switch c.Kind {
	case OneShot:
		if c.Start < 0 || c.Start > 1 {
			return invalid("threshold outside [0,1]")
		}
	case Window, Continuous:
		if c.Start >= c.End {
			return invalid("start must be before end")
		}
		if c.Start < 0 || c.End > 1 {
			return invalid("range outside [0,1]")
		}
	default:
		return invalid("unknown kind")
	}

	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
