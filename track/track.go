package track

import (
	"time"
)

// Renderer receives visual outputs. value is a float64, bool or string. Implementations must
// return quickly; the sequencer never waits on them.
type Renderer interface {
	SetOutput(trackID, key string, value interface{})
}

// Sound receives audio cues. Both methods are fire-and-forget.
type Sound interface {
	Trigger(soundID string)
	SetContinuous(soundID string, level float64)
}

// Frame is what a track sees on each tick. Every track in a tick receives the same Frame.
type Frame struct {
	Progress float64
	Velocity float64
	// Elapsed is the time since the sequencer started or was last reset.
	Elapsed time.Duration
	// Seq counts ticks since the last reset, starting at 1.
	Seq uint64
}

// Resource names an output slot that more than one track may want to write. The composing
// application creates resources and hands them to the tracks that share them.
type Resource string

// Owners is the read-only view of who holds each resource for the current tick.
type Owners interface {
	Owner(r Resource) (trackID string, ok bool)
}

// Track is an independently authored unit of choreography. Tick must only touch the
// track's own state and its injected adapters.
type Track interface {
	ID() string
	// Validate reports an invalid cue range before the track is registered.
	Validate() error
	Tick(f Frame, owners Owners) error
	// Reset returns the track to its initial state without calling any adapter.
	Reset()
}

// Claimer is implemented by tracks that write shared resources. Claims must be a pure
// function of the frame; the sequencer calls it in registration order before ticking and the
// first claimant of a resource owns it for that tick.
type Claimer interface {
	Claims(f Frame) []Resource
}

// Context is passed to handlers. Adapter calls made through it are held until every handler
// of the tick has succeeded, so a failing tick leaves the outputs untouched.
type Context struct {
	Frame   Frame
	TrackID string
	Owners  Owners

	pending *[]func()
}

// SetOutput queues r.SetOutput for the end of the tick.
func (c Context) SetOutput(r Renderer, trackID, key string, value interface{}) {
	c.queue(func() { r.SetOutput(trackID, key, value) })
}

// Trigger queues s.Trigger for the end of the tick.
func (c Context) Trigger(s Sound, soundID string) {
	c.queue(func() { s.Trigger(soundID) })
}

// SetContinuous queues s.SetContinuous for the end of the tick.
func (c Context) SetContinuous(s Sound, soundID string, level float64) {
	c.queue(func() { s.SetContinuous(soundID, level) })
}

// queue applies fn right away when the context is not tied to a tick.
func (c Context) queue(fn func()) {
	if c.pending == nil {
		fn()
		return
	}
	*c.pending = append(*c.pending, fn)
}

// Owns reports whether the track holds r this tick. The empty resource is always owned.
func (c Context) Owns(r Resource) bool {
	if r == "" {
		return true
	}
	if c.Owners == nil {
		return false
	}
	owner, ok := c.Owners.Owner(r)
	return ok && owner == c.TrackID
}

// CanWrite reports whether the track may write r: it owns it, or nobody claimed it this tick
// and the track is settling its final state.
func (c Context) CanWrite(r Resource) bool {
	if c.Owns(r) {
		return true
	}
	if c.Owners == nil {
		return true
	}
	_, claimed := c.Owners.Owner(r)
	return !claimed
}
