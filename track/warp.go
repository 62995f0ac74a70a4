package track

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/robmorgan/liftoff/engine/scale"
)

// KeyIntensity is the output key of a WarpTrack.
const KeyIntensity = "intensity"

// Warp tuning. Zero fields take the defaults.
type Warp struct {
	// FullSpeed is the scroll velocity that maps to full intensity.
	FullSpeed float64
	// FPS is the tick rate the spring is stepped at.
	FPS int
	// Frequency and Damping shape the spring.
	Frequency float64
	Damping   float64
	// Resolution rounds the output so tiny spring oscillations are not written.
	Resolution float64
}

// DefaultWarp matches a particle field that streaks at 2500 px/s.
var DefaultWarp = Warp{FullSpeed: 2500, FPS: 60, Frequency: 6, Damping: 1, Resolution: 0.001}

// WarpTrack turns scroll speed into a smoothed streak intensity in [0,1].
type WarpTrack struct {
	*Base

	renderer Renderer
	warp     Warp
	spring   harmonica.Spring
	pos      float64
	vel      float64
	last     outputs
}

// NewWarpTrack creates a warp track.
func NewWarpTrack(id string, r Renderer, w Warp) (*WarpTrack, error) {
	if w.FullSpeed <= 0 {
		w.FullSpeed = DefaultWarp.FullSpeed
	}
	if w.FPS <= 0 {
		w.FPS = DefaultWarp.FPS
	}
	if w.Frequency <= 0 {
		w.Frequency = DefaultWarp.Frequency
	}
	if w.Damping <= 0 {
		w.Damping = DefaultWarp.Damping
	}
	if w.Resolution <= 0 {
		w.Resolution = DefaultWarp.Resolution
	}

	t := &WarpTrack{
		renderer: r,
		warp:     w,
		spring:   harmonica.NewSpring(harmonica.FPS(w.FPS), w.Frequency, w.Damping),
		last:     outputs{},
	}

	base, err := NewBase(id, nil, Handlers{OnTick: t.tick})
	if err != nil {
		return nil, err
	}
	t.Base = base
	t.onReset = func() {
		t.pos, t.vel = 0, 0
		t.last.clear()
	}
	t.onDiscard = t.last.clear

	return t, nil
}

// Target is the unsmoothed intensity for a velocity.
func (t *WarpTrack) Target(velocity float64) float64 {
	return scale.Unit(math.Abs(velocity) / t.warp.FullSpeed)
}

// Intensity is the current smoothed value.
func (t *WarpTrack) Intensity() float64 {
	return scale.Unit(t.pos)
}

func (t *WarpTrack) tick(ctx Context) error {
	t.pos, t.vel = t.spring.Update(t.pos, t.vel, t.Target(ctx.Frame.Velocity))

	v := math.Round(t.Intensity()/t.warp.Resolution) * t.warp.Resolution
	if t.last.changed(KeyIntensity, v) {
		ctx.SetOutput(t.renderer, t.ID(), KeyIntensity, v)
	}
	return nil
}
