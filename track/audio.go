package track

import (
	"github.com/robmorgan/liftoff/cuelist"
	"github.com/robmorgan/liftoff/effect"
	"github.com/robmorgan/liftoff/engine/scale"
)

// AudioCue triggers SoundID when progress reaches At.
type AudioCue struct {
	At      float64
	SoundID string

	// Hysteresis overrides cuelist.DefaultHysteresis when non-zero.
	Hysteresis float64
	// RearmDistance is the minimum drop below At before the sound can play again.
	RearmDistance float64
}

// OneShotAudioTrack plays sounds once per upward crossing of their threshold.
type OneShotAudioTrack struct {
	*Base

	sound  Sound
	sounds []string
}

// NewOneShotAudioTrack creates an audio track playing through s.
func NewOneShotAudioTrack(id string, s Sound, cues ...AudioCue) (*OneShotAudioTrack, error) {
	t := &OneShotAudioTrack{sound: s}

	cc := make([]cuelist.Cue, 0, len(cues))
	for _, c := range cues {
		cc = append(cc, cuelist.NewOneShot(c.SoundID, c.At).
			WithHysteresis(c.Hysteresis).
			WithRearmDistance(c.RearmDistance))
		t.sounds = append(t.sounds, c.SoundID)
	}

	base, err := NewBase(id, cc, Handlers{OnOneShot: t.play})
	if err != nil {
		return nil, err
	}
	t.Base = base

	return t, nil
}

func (t *OneShotAudioTrack) play(ctx Context, cues []int) error {
	for _, i := range cues {
		ctx.Trigger(t.sound, t.sounds[i])
	}
	return nil
}

// AmbientTrack drives a continuous sound level across a progress range.
type AmbientTrack struct {
	*Base

	sound   Sound
	soundID string
	level   float64
	last    float64
	primed  bool
}

// NewAmbientTrack fades soundID up to level between start and end.
func NewAmbientTrack(id string, s Sound, soundID string, start, end float64, curve effect.Curve, level float64) (*AmbientTrack, error) {
	t := &AmbientTrack{sound: s, soundID: soundID, level: scale.Unit(level)}

	base, err := NewBase(id, []cuelist.Cue{cuelist.NewContinuous(soundID, start, end, curve)}, Handlers{OnUpdate: t.update})
	if err != nil {
		return nil, err
	}
	t.Base = base
	t.onReset = func() {
		t.primed = false
	}
	t.onDiscard = t.onReset

	return t, nil
}

func (t *AmbientTrack) update(ctx Context, values []float64) error {
	level := t.level * scale.Unit(values[0])
	if t.primed && level == t.last {
		return nil
	}
	ctx.SetContinuous(t.sound, t.soundID, level)
	t.last = level
	t.primed = true
	return nil
}
