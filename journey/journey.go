// Package journey choreographs the space journey: a rocket launch from Earth, a deep space
// transit past company asteroids, a Moon landing among project satellites, a hop to Mars and
// the return home. Progress is the fraction of the page scrolled.
package journey

import (
	"fmt"
	"time"

	"github.com/robmorgan/liftoff/effect"
	"github.com/robmorgan/liftoff/profile"
	"github.com/robmorgan/liftoff/sequencer"
	"github.com/robmorgan/liftoff/track"
)

// Shared renderer slots.
const (
	AlertSlot track.Resource = "hud-alert"
	PanelSlot track.Resource = "panel"
	FlareSlot track.Resource = "lens-flare"
)

// WhooshSpacing staggers the whooshes of neighbouring asteroids.
const WhooshSpacing = 55 * time.Millisecond

// Viewport is the scene size positions are computed from.
type Viewport struct {
	Width  float64
	Height float64
}

// DefaultViewport is a common laptop window.
var DefaultViewport = Viewport{Width: 1440, Height: 900}

// Deps are the outputs the journey drives.
type Deps struct {
	Renderer   track.Renderer
	Sound      track.Sound
	Viewport   Viewport
	Warp       track.Warp
	Hysteresis float64
}

// Companies are shown as asteroids in the order they pass the rocket.
var Companies = []string{"Reliance", "Byju's", "Quikr", "Netset Solutions", "Dabster Tech"}

// Phases label the HUD. Earth Approach is shown past the last one.
var Phases = []track.Phase{
	{Below: 0.22, Label: "Launch Sequence"},
	{Below: 0.42, Label: "Stage Separation"},
	{Below: 0.72, Label: "Deep Space Transit"},
	{Below: 0.78, Label: "Lunar Approach"},
	{Below: 0.90, Label: "Moon Surface"},
	{Below: 0.97, Label: "Mars Approach"},
	{Below: 0.99, Label: "Mars Surface"},
}

// FinalPhase is the label once the rocket heads home.
const FinalPhase = "Earth Approach"

// Animated properties, named after the fixture channels they drive.
const (
	posX    = profile.ChannelTypeX
	posY    = profile.ChannelTypeY
	rotate  = profile.ChannelTypeRotate
	opacity = profile.ChannelTypeOpacity
	size    = profile.ChannelTypeScale
)

var whooshAt = []float64{0.44, 0.47, 0.50, 0.53, 0.56}

// WhooshID names the whoosh played as the i-th asteroid passes.
func WhooshID(i int) string {
	return fmt.Sprintf("whoosh-%d", i)
}

// WhooshDelays returns the playback delay of each whoosh.
func WhooshDelays() map[string]time.Duration {
	out := make(map[string]time.Duration, len(whooshAt))
	for i := range whooshAt {
		out[WhooshID(i)] = time.Duration(i) * WhooshSpacing
	}
	return out
}

var (
	linear      = effect.MustLookup("none")
	power1In    = effect.MustLookup("power1.in")
	power1Out   = effect.MustLookup("power1.out")
	power1InOut = effect.MustLookup("power1.inOut")
	power2In    = effect.MustLookup("power2.in")
	power2Out   = effect.MustLookup("power2.out")
	power2InOut = effect.MustLookup("power2.inOut")
	power3In    = effect.MustLookup("power3.in")
	power3Out   = effect.MustLookup("power3.out")
	power4Out   = effect.MustLookup("power4.out")
	sineInOut   = effect.MustLookup("sine.inOut")
)

type builder struct {
	deps   Deps
	tracks []track.Track
	err    error
}

func (b *builder) add(t track.Track, err error) {
	if b.err != nil {
		return
	}
	if err != nil {
		b.err = err
		return
	}
	b.tracks = append(b.tracks, t)
}

// Build returns the journey's tracks in registration order. Order matters: the first track
// registered wins a shared slot.
func Build(d Deps) ([]track.Track, error) {
	if d.Viewport.Width <= 0 || d.Viewport.Height <= 0 {
		d.Viewport = DefaultViewport
	}

	b := &builder{deps: d}
	b.craft()
	b.planets()
	b.asteroids()
	b.satellites()
	b.effects()
	b.cockpit()
	b.overlays()
	b.sound()

	if b.err != nil {
		return nil, fmt.Errorf("building journey: %w", b.err)
	}
	return b.tracks, nil
}

// Install builds the journey and registers it with seq.
func Install(seq *sequencer.Sequencer, d Deps) error {
	tracks, err := Build(d)
	if err != nil {
		return err
	}
	for _, t := range tracks {
		if err := seq.Register(t); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) craft() {
	r, h := b.deps.Renderer, b.deps.Viewport.Height
	parked := -(0.5*h - 170)

	b.add(track.NewPropertyTrack("rocket", r, map[string]float64{posX: 0, posY: 0, rotate: 0},
		track.Segment{Start: 0.18, End: 0.22, Curve: power3In, To: map[string]float64{posY: -80}},
		track.Segment{Start: 0.22, End: 0.42, Curve: power1InOut, To: map[string]float64{posY: -0.85 * h, posX: 25}},
		track.Segment{Start: 0.42, End: 0.55, Curve: power1Out, To: map[string]float64{posY: -h, posX: -8}},
		track.Segment{Start: 0.55, End: 0.72, Curve: linear, To: map[string]float64{posY: -1.05 * h, posX: 0}},
		track.Segment{Start: 0.72, End: 0.78, Curve: power4Out, To: map[string]float64{posY: parked, posX: 400, rotate: 3}},
		track.Segment{Start: 0.88, End: 0.91, Curve: power2InOut, To: map[string]float64{rotate: 180}},
		track.Segment{Start: 0.90, End: 0.94, Curve: power3In, To: map[string]float64{posY: parked - 0.35*h, posX: 80}},
		track.Segment{Start: 0.92, End: 0.95, Curve: linear, To: map[string]float64{posY: -1.05 * h, posX: 0}},
		track.Segment{Start: 0.95, End: 0.97, Curve: power4Out, To: map[string]float64{posY: parked, posX: -380}},
		track.Segment{Start: 0.99, End: 1, Curve: power3Out, To: map[string]float64{posY: -0.10 * h, posX: -30, rotate: 180}},
	))

	b.add(track.NewPropertyTrack("exhaust", r, map[string]float64{opacity: 0, size: 0.2},
		track.Segment{Start: 0, End: 0.05, Curve: linear, To: map[string]float64{opacity: 0.22, size: 0.45}},
		track.Segment{Start: 0.18, End: 0.22, Curve: power4Out, To: map[string]float64{opacity: 1, size: 3.2}},
		track.Segment{Start: 0.22, End: 0.42, Curve: linear, To: map[string]float64{size: 3.8}},
		track.Segment{Start: 0.72, End: 0.75, Curve: linear, To: map[string]float64{opacity: 1, size: 2.8}},
		track.Segment{Start: 0.75, End: 0.78, Curve: power2In, To: map[string]float64{opacity: 0, size: 0.3}},
		track.Segment{Start: 0.895, End: 0.915, Curve: power4Out, To: map[string]float64{opacity: 1, size: 3.0}},
		track.Segment{Start: 0.95, End: 0.96, Curve: linear, To: map[string]float64{opacity: 1, size: 2.4}},
		track.Segment{Start: 0.96, End: 0.97, Curve: power2In, To: map[string]float64{opacity: 0, size: 0.3}},
		track.Segment{Start: 0.986, End: 0.996, Curve: power4Out, To: map[string]float64{opacity: 1, size: 3.0}},
		track.Segment{Start: 0.99, End: 0.998, Curve: power2In, To: map[string]float64{opacity: 0}},
	))

	// The booster waits below the rocket until stage separation.
	dock := -0.55 * h
	b.add(track.NewPropertyTrack("booster", r, map[string]float64{posX: 0, posY: dock, rotate: 0, opacity: 0},
		track.Segment{Start: 0.38, End: 0.385, Curve: linear, To: map[string]float64{opacity: 1}},
		track.Segment{Start: 0.38, End: 0.43, Curve: power2InOut, To: map[string]float64{rotate: 180}},
		track.Segment{Start: 0.42, End: 0.55, Curve: power1In, To: map[string]float64{posY: dock + 0.38*h, posX: -50}},
		track.Segment{Start: 0.62, End: 0.68, Curve: power4Out, To: map[string]float64{posY: dock + 0.68*h, posX: -14}},
		track.Segment{Start: 0.67, End: 0.70, Curve: power4Out, To: map[string]float64{posY: dock + 0.76*h}},
	))

	b.add(track.NewVisibilityTrack("stage-flash", r, track.Visibility{
		Start: 0.38, End: 0.41, FadeIn: 0.005, FadeOut: 0.02, InCurve: power4Out, OutCurve: power3In,
	}))
}

func (b *builder) planets() {
	r := b.deps.Renderer

	b.add(track.NewPropertyTrack("earth", r, map[string]float64{opacity: 1, size: 1},
		track.Segment{Start: 0.05, End: 0.18, Curve: sineInOut, To: map[string]float64{size: 1.012}},
		track.Segment{Start: 0.22, End: 0.42, Curve: power2In, To: map[string]float64{size: 0.28, opacity: 0.35}},
		track.Segment{Start: 0.42, End: 0.52, Curve: power2Out, To: map[string]float64{size: 0.06, opacity: 0}},
		track.Segment{Start: 0.99, End: 1, Curve: power2Out, To: map[string]float64{size: 1.2, opacity: 1}},
	))

	b.add(track.NewPropertyTrack("moon", r, map[string]float64{opacity: 0, size: 0.05},
		track.Segment{Start: 0.55, End: 0.72, Curve: power2Out, To: map[string]float64{size: 0.5, opacity: 1}},
		track.Segment{Start: 0.72, End: 0.78, Curve: power2Out, To: map[string]float64{size: 1, opacity: 1}},
		track.Segment{Start: 0.88, End: 0.97, Curve: power2In, To: map[string]float64{size: 0.1, opacity: 0}},
	))

	b.add(track.NewPropertyTrack("mars", r, map[string]float64{opacity: 0, size: 0.05},
		track.Segment{Start: 0.92, End: 0.95, Curve: power2Out, To: map[string]float64{size: 0.48, opacity: 1}},
		track.Segment{Start: 0.95, End: 0.97, Curve: power2Out, To: map[string]float64{size: 1, opacity: 1}},
		track.Segment{Start: 0.98, End: 1, Curve: power2In, To: map[string]float64{size: 0.06, opacity: 0}},
	))
}

// asteroid is one company drifting past the rocket: it slides in, drifts, then leaves.
type asteroid struct {
	start          float64
	in, drift, out track.Vec3
	driftEnd       float64
}

func (b *builder) asteroids() {
	r := b.deps.Renderer
	w, h := b.deps.Viewport.Width, b.deps.Viewport.Height

	paths := []asteroid{
		{start: 0.44, in: track.Vec3{X: 0.35 * w}, drift: track.Vec3{X: 0.72 * w, Y: 45}, out: track.Vec3{X: 0.88 * w, Y: 45}, driftEnd: 0.62},
		{start: 0.47, in: track.Vec3{X: -0.32 * w}, drift: track.Vec3{X: -0.70 * w, Y: -28}, out: track.Vec3{X: -0.85 * w, Y: -28}, driftEnd: 0.64},
		{start: 0.50, in: track.Vec3{X: 0.28 * w}, drift: track.Vec3{X: 0.62 * w, Y: -50}, out: track.Vec3{X: 0.78 * w, Y: -50}, driftEnd: 0.66},
		{start: 0.53, in: track.Vec3{Y: 0.26 * h}, drift: track.Vec3{X: -0.10 * w, Y: 0.80 * h}, out: track.Vec3{X: -0.10 * w, Y: 0.96 * h}, driftEnd: 0.68},
		{start: 0.56, in: track.Vec3{X: -0.30 * w}, drift: track.Vec3{X: -0.68 * w, Y: 40}, out: track.Vec3{X: -0.82 * w, Y: 40}, driftEnd: 0.71},
	}

	for i, a := range paths {
		id := fmt.Sprintf("asteroid-%d", i)
		b.add(track.NewPositionTrack(id, r, track.Vec3{},
			track.Waypoint{Start: a.start, End: a.start + 0.07, Curve: power1Out, To: a.in},
			track.Waypoint{Start: a.start + 0.07, End: a.driftEnd, Curve: linear, To: a.drift},
			track.Waypoint{Start: a.driftEnd, End: a.driftEnd + 0.05, Curve: power1In, To: a.out},
		))
		b.add(track.NewVisibilityTrack(id+"-visibility", r, track.Visibility{
			Start:    a.start,
			End:      a.driftEnd + 0.05,
			FadeIn:   0.07,
			FadeOut:  0.049,
			InCurve:  power1Out,
			OutCurve: power1In,
			Target:   id,
			Label:    Companies[i],
		}))
	}
}

func (b *builder) satellites() {
	for i := 0; i < 4; i++ {
		b.add(track.NewVisibilityTrack(fmt.Sprintf("satellite-%d", i), b.deps.Renderer, track.Visibility{
			Start:    0.72 + float64(i)*0.015,
			End:      0.92,
			FadeIn:   0.05,
			FadeOut:  0.04,
			InCurve:  power2Out,
			OutCurve: power2In,
		}))
	}
}

func (b *builder) effects() {
	r := b.deps.Renderer

	b.add(track.NewVisibilityTrack("warp-streaks", r, track.Visibility{
		Start: 0.20, End: 0.40, FadeIn: 0.03, FadeOut: 0.05, InCurve: power2Out, OutCurve: power2In,
	}))
	b.add(track.NewVisibilityTrack("nebula", r, track.Visibility{
		Start: 0.42, End: 0.70, FadeIn: 0.06, FadeOut: 0.05, InCurve: power2Out, OutCurve: power2In,
	}))

	flares := []struct {
		id                        string
		start, end, in, out, peak float64
	}{
		{"lens-flare-launch", 0.18, 0.28, 0.02, 0.04, 0.7},
		{"lens-flare-moon", 0.72, 0.81, 0.02, 0.03, 0.5},
		{"lens-flare-mars", 0.95, 0.985, 0.01, 0.015, 0.4},
	}
	for _, f := range flares {
		b.add(track.NewVisibilityTrack(f.id, r, track.Visibility{
			Start:    f.start,
			End:      f.end,
			FadeIn:   f.in,
			FadeOut:  f.out,
			InCurve:  power4Out,
			OutCurve: power2In,
			Peak:     f.peak,
			Target:   string(FlareSlot),
			Resource: FlareSlot,
		}))
	}

	b.add(track.NewColorTrack("sky", r, "#0b1a3a", "#020308", 0.18, 0.45, power2In))
	b.add(track.NewWarpTrack("particles", r, b.deps.Warp))
}

func (b *builder) cockpit() {
	r := b.deps.Renderer

	b.add(track.NewVisibilityTrack("cockpit-frame", r, track.Visibility{
		Start: 0.18, End: 1, FadeIn: 0.05, FadeOut: 0.04, InCurve: power2Out, OutCurve: power2In,
	}))

	// Both alerts share one HUD slot; the work alert is registered first so it keeps the slot
	// while the two overlap.
	b.add(track.NewVisibilityTrack("work-alert", r, track.Visibility{
		Start: 0.44, End: 0.74, FadeIn: 0.03, FadeOut: 0.03, InCurve: power2Out, OutCurve: power2In,
		Target: string(AlertSlot), Resource: AlertSlot, Label: "Incoming: work experience",
	}))
	b.add(track.NewVisibilityTrack("project-alert", r, track.Visibility{
		Start: 0.72, End: 0.85, FadeIn: 0.03, FadeOut: 0.03, InCurve: power2Out, OutCurve: power2In,
		Target: string(AlertSlot), Resource: AlertSlot, Label: "Incoming: projects",
	}))

	b.add(track.NewPhaseLabelTrack("phase", r, Phases, FinalPhase))
	b.add(track.NewMissionClockTrack("mission-clock", r))
}

func (b *builder) overlays() {
	r := b.deps.Renderer

	panels := []struct {
		id              string
		start, end      float64
		fadeIn, fadeOut float64
	}{
		{"earth-panel", 0, 0.18, 0, 0.04},
		{"mars-panel", 0.97, 0.995, 0.01, 0.005},
		{"contact-panel", 0.99, 1, 0.009, 0},
	}
	for _, p := range panels {
		b.add(track.NewVisibilityTrack(p.id, r, track.Visibility{
			Start:    p.start,
			End:      p.end,
			FadeIn:   p.fadeIn,
			FadeOut:  p.fadeOut,
			InCurve:  power2Out,
			OutCurve: power2In,
			Target:   string(PanelSlot),
			Resource: PanelSlot,
			Label:    p.id,
		}))
	}
}

func (b *builder) sound() {
	s, h := b.deps.Sound, b.deps.Hysteresis

	b.add(track.NewAmbientTrack("ambient-drone", s, "ambient", 0.19, 0.24, power2Out, 1))
	b.add(track.NewOneShotAudioTrack("transmission", s, track.AudioCue{
		At: 0.44, SoundID: "transmission", Hysteresis: h, RearmDistance: 0.02,
	}))

	cues := make([]track.AudioCue, 0, len(whooshAt))
	for i, at := range whooshAt {
		cues = append(cues, track.AudioCue{At: at, SoundID: WhooshID(i), Hysteresis: h, RearmDistance: 0.02})
	}
	b.add(track.NewOneShotAudioTrack("whooshes", s, cues...))
}
