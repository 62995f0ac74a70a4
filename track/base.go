package track

import (
	"fmt"

	"github.com/robmorgan/liftoff/cuelist"
)

// Handlers are the callbacks of a track. Each one is called at most once per tick, with the
// indexes of every cue that produced the edge in that tick. A handler error stops the
// remaining handlers for that tick.
type Handlers struct {
	OnExit    func(ctx Context, cues []int) error
	OnEnter   func(ctx Context, cues []int) error
	OnOneShot func(ctx Context, cues []int) error
	// OnUpdate receives one value per cue whenever the track has a continuous cue.
	OnUpdate func(ctx Context, values []float64) error
	// OnTick runs last on every tick.
	OnTick func(ctx Context) error
}

// Base owns a track's gates and dispatches their edges to handlers.
type Base struct {
	id       string
	cues     *cuelist.CueList
	handlers Handlers

	continuous bool
	onReset    func()

	// onDiscard runs when a tick fails, so change caches forget writes that were dropped.
	onDiscard func()
}

// NewBase validates cues and creates the gates for a track.
func NewBase(id string, cues []cuelist.Cue, h Handlers) (*Base, error) {
	if id == "" {
		return nil, fmt.Errorf("track id must not be empty")
	}

	cl, err := cuelist.NewCueList(id, cues...)
	if err != nil {
		return nil, fmt.Errorf("track %s: %w", id, err)
	}

	b := &Base{id: id, cues: cl, handlers: h}
	for _, c := range cues {
		if c.Kind == cuelist.Continuous {
			b.continuous = true
		}
	}

	return b, nil
}

// ID returns the track id.
func (b *Base) ID() string {
	return b.id
}

// Cues returns the track's cue list.
func (b *Base) Cues() *cuelist.CueList {
	return b.cues
}

// Validate re-checks every cue.
func (b *Base) Validate() error {
	if err := b.cues.Validate(); err != nil {
		return fmt.Errorf("track %s: %w", b.id, err)
	}
	return nil
}

// Reset restores the gates and any archetype state. No handler is called.
func (b *Base) Reset() {
	b.cues.Reset()
	if b.onReset != nil {
		b.onReset()
	}
}

// Tick evaluates the gates at f.Progress and calls handlers in order: exit, enter, one-shot,
// update, tick. Exits go first so a slot handed between windows is released before it is
// taken. Adapter calls queued on the Context are applied only if every handler succeeds.
func (b *Base) Tick(f Frame, owners Owners) error {
	var pending []func()
	ctx := Context{Frame: f, TrackID: b.id, Owners: owners, pending: &pending}

	ok := false
	defer func() {
		if !ok && b.onDiscard != nil {
			b.onDiscard()
		}
	}()

	if err := b.dispatch(ctx, b.cues.Evaluate(f.Progress)); err != nil {
		return err
	}
	ok = true

	for _, fn := range pending {
		fn()
	}
	return nil
}

func (b *Base) dispatch(ctx Context, r cuelist.Result) error {
	h := b.handlers

	if len(r.Exited) > 0 && h.OnExit != nil {
		if err := h.OnExit(ctx, r.Exited); err != nil {
			return fmt.Errorf("track %s exit: %w", b.id, err)
		}
	}
	if len(r.Entered) > 0 && h.OnEnter != nil {
		if err := h.OnEnter(ctx, r.Entered); err != nil {
			return fmt.Errorf("track %s enter: %w", b.id, err)
		}
	}
	if len(r.Fired) > 0 && h.OnOneShot != nil {
		if err := h.OnOneShot(ctx, r.Fired); err != nil {
			return fmt.Errorf("track %s one-shot: %w", b.id, err)
		}
	}
	if b.continuous && h.OnUpdate != nil {
		if err := h.OnUpdate(ctx, r.Values); err != nil {
			return fmt.Errorf("track %s update: %w", b.id, err)
		}
	}
	if h.OnTick != nil {
		if err := h.OnTick(ctx); err != nil {
			return fmt.Errorf("track %s tick: %w", b.id, err)
		}
	}

	return nil
}

// outputs remembers the last value written per key so archetypes only emit changes.
type outputs map[string]interface{}

func (o outputs) changed(key string, value interface{}) bool {
	prev, ok := o[key]
	if ok && prev == value {
		return false
	}
	o[key] = value
	return true
}

func (o outputs) clear() {
	for k := range o {
		delete(o, k)
	}
}
