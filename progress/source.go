package progress

import (
	"math"
	"time"

	"github.com/robmorgan/liftoff/engine/scale"
	"k8s.io/utils/clock"
)

const (
	// DefaultDecay is the weight a new velocity reading gets in the moving average.
	DefaultDecay = 0.2

	// DefaultMinFrameDelta floors the time between samples so two reads in the same
	// instant cannot divide by zero.
	DefaultMinFrameDelta = time.Millisecond
)

// Reader reports the host's scroll position. extent is the scrollable length; a value <= 0
// means layout is not ready yet.
type Reader interface {
	ScrollPosition() (offset, extent float64)
}

// ReaderFunc adapts a plain function to a Reader.
type ReaderFunc func() (offset, extent float64)

// ScrollPosition calls f.
func (f ReaderFunc) ScrollPosition() (float64, float64) {
	return f()
}

// Sample is one normalized reading.
type Sample struct {
	// Progress is offset/extent clamped to [0,1].
	Progress float64
	// Velocity is the smoothed offset change in units per second.
	Velocity float64
	// Offset is the raw offset the sample was taken from.
	Offset float64
	// Stale is set when the reading was degenerate and the previous sample was repeated.
	Stale bool
	At    time.Time
}

// Option configures a Source.
type Option func(*Source)

// WithClock sets the clock used to time velocity samples.
func WithClock(c clock.PassiveClock) Option {
	return func(s *Source) {
		s.clock = c
	}
}

// WithDecay sets the moving-average weight, clamped to (0,1].
func WithDecay(alpha float64) Option {
	return func(s *Source) {
		if alpha > 0 {
			s.decay = scale.Clamp(alpha, 0, 1)
		}
	}
}

// WithMinFrameDelta sets the floor applied to the time between samples.
func WithMinFrameDelta(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.minFrameDelta = d
		}
	}
}

// Source turns scroll readings into progress samples. It is not safe for concurrent use; the
// sequencer samples it once per tick.
type Source struct {
	reader        Reader
	clock         clock.PassiveClock
	decay         float64
	minFrameDelta time.Duration

	last   Sample
	primed bool
	stale  int
}

// NewSource creates a Source polling r.
func NewSource(r Reader, opts ...Option) *Source {
	s := &Source{
		reader:        r,
		clock:         clock.RealClock{},
		decay:         DefaultDecay,
		minFrameDelta: DefaultMinFrameDelta,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample reads the scroll position once and returns the normalized sample. A degenerate
// reading returns the previous sample marked stale.
func (s *Source) Sample() Sample {
	offset, extent := s.reader.ScrollPosition()
	if extent <= 0 || !finite(offset) || !finite(extent) {
		s.stale++
		out := s.last
		out.Stale = true
		return out
	}

	now := s.clock.Now()
	velocity := 0.0
	if s.primed {
		dt := now.Sub(s.last.At)
		if dt < s.minFrameDelta {
			dt = s.minFrameDelta
		}
		raw := (offset - s.last.Offset) / dt.Seconds()
		velocity = s.last.Velocity + s.decay*(raw-s.last.Velocity)
	}

	s.last = Sample{
		Progress: scale.Unit(offset / extent),
		Velocity: velocity,
		Offset:   offset,
		At:       now,
	}
	s.primed = true

	return s.last
}

// Last returns the most recent valid sample without reading the host.
func (s *Source) Last() Sample {
	return s.last
}

// StaleCount is the number of degenerate readings seen since creation or the last Reset.
func (s *Source) StaleCount() int {
	return s.stale
}

// Reset forgets all history.
func (s *Source) Reset() {
	s.last = Sample{}
	s.primed = false
	s.stale = 0
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
