// Package sound renders the journey's sound cues with a small software synthesizer.
package sound

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/robmorgan/liftoff/logger"
)

// DefaultSampleRate is used when NewSynth is given none.
const DefaultSampleRate = beep.SampleRate(44100)

// Sound ids understood by Trigger and SetContinuous.
const (
	// Transmission is the three note chime of an incoming message.
	Transmission = "transmission"
	// Ambient is the continuous drone.
	Ambient = "ambient"
	// WhooshPrefix starts the id of every whoosh, e.g. "whoosh-2".
	WhooshPrefix = "whoosh"
)

// Player plays streamers on an output device.
type Player interface {
	Play(s ...beep.Streamer)
}

// Speaker plays through the system audio device.
type Speaker struct{}

// InitSpeaker opens the audio device with a 100ms buffer.
func InitSpeaker(sr beep.SampleRate) (Speaker, error) {
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return Speaker{}, err
	}
	return Speaker{}, nil
}

// Play implements Player.
func (Speaker) Play(s ...beep.Streamer) {
	speaker.Play(s...)
}

// Option configures a Synth.
type Option func(*Synth)

// WithVolume sets the master volume in base-2 steps, 0 is unity gain.
func WithVolume(v float64) Option {
	return func(s *Synth) {
		s.volume = v
	}
}

// WithDelay delays a sound by d every time it is triggered.
func WithDelay(id string, d time.Duration) Option {
	return func(s *Synth) {
		s.delays[id] = d
	}
}

// WithSeed fixes the noise source so renders are reproducible.
func WithSeed(seed int64) Option {
	return func(s *Synth) {
		s.seed = seed
	}
}

// WithLogger overrides the project logger.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Synth) {
		s.log = l
	}
}

// Synth implements track.Sound.
type Synth struct {
	lock   sync.Mutex
	sr     beep.SampleRate
	player Player
	log    *logrus.Logger
	volume float64
	delays map[string]time.Duration
	seed   int64
	muted  atomic.Bool
	drone  *drone
	played int
}

// NewSynth creates a synth that plays through player. A zero sample rate means
// DefaultSampleRate.
func NewSynth(sr beep.SampleRate, player Player, opts ...Option) *Synth {
	if sr <= 0 {
		sr = DefaultSampleRate
	}
	s := &Synth{
		sr:     sr,
		player: player,
		log:    logger.GetProjectLogger(),
		delays: map[string]time.Duration{},
		seed:   1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Trigger plays a one-shot sound. Muted triggers are dropped rather than queued.
func (s *Synth) Trigger(id string) {
	if s.muted.Load() {
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	var voice beep.Streamer
	switch {
	case id == Transmission:
		voice = chime(s.sr)
	case strings.HasPrefix(id, WhooshPrefix):
		s.seed++
		voice = newWhoosh(s.sr, s.seed)
	default:
		s.log.WithField("sound", id).Debug("Unknown sound")
		return
	}

	if d := s.delays[id]; d > 0 {
		voice = beep.Seq(beep.Silence(s.sr.N(d)), voice)
	}
	s.play(voice)
}

// SetContinuous sets the level of a looping sound, starting it on first use.
func (s *Synth) SetContinuous(id string, level float64) {
	if id != Ambient {
		s.log.WithField("sound", id).Debug("Unknown continuous sound")
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.drone == nil {
		if level <= 0 {
			return
		}
		s.drone = newDrone(s.sr)
		s.play(gate{Streamer: s.drone, muted: &s.muted})
	}
	s.drone.setTarget(level)
}

// ToggleMute flips the mute state and returns the new one.
func (s *Synth) ToggleMute() bool {
	for {
		old := s.muted.Load()
		if s.muted.CompareAndSwap(old, !old) {
			s.log.WithField("muted", !old).Info("Sound toggled")
			return !old
		}
	}
}

// SetMuted mutes or unmutes every sound.
func (s *Synth) SetMuted(m bool) {
	s.muted.Store(m)
}

// Muted reports the mute state.
func (s *Synth) Muted() bool {
	return s.muted.Load()
}

// Played returns how many streamers were handed to the player.
func (s *Synth) Played() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.played
}

func (s *Synth) play(voice beep.Streamer) {
	s.played++
	if s.player == nil {
		return
	}
	s.player.Play(&effects.Volume{Streamer: voice, Base: 2, Volume: s.volume})
}
