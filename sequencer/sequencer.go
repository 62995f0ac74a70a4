package sequencer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	commonerrors "github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/liftoff/engine"
	"github.com/robmorgan/liftoff/logger"
	"github.com/robmorgan/liftoff/progress"
	"github.com/robmorgan/liftoff/track"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

var (
	// ErrDuplicateTrack is returned when a track id is registered twice.
	ErrDuplicateTrack = errors.New("track already registered")

	// ErrTrackTick wraps a failure contained to one track for one tick.
	ErrTrackTick = errors.New("track tick failed")
)

// Logger receives contained track failures.
type Logger interface {
	Warn(message string, err error)
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger sets the sink for contained track failures.
func WithLogger(l Logger) Option {
	return func(s *Sequencer) {
		s.warn = l
	}
}

// WithClock sets the clock used for elapsed time and the frame loop.
func WithClock(c clock.WithTicker) Option {
	return func(s *Sequencer) {
		s.clock = c
	}
}

// WithFPS sets the frame rate used by Start.
func WithFPS(fps int) Option {
	return func(s *Sequencer) {
		s.fps = fps
	}
}

// Stats summarizes what the sequencer has done since the last reset.
type Stats struct {
	Ticks    uint64
	Tracks   int
	Stale    int
	Failures map[string]int
}

// Sequencer samples progress once per tick and fans the frame out to every registered track in
// registration order. A failing track is logged and skipped for that tick only.
type Sequencer struct {
	lock sync.Mutex

	source *progress.Source
	tracks []track.Track
	ids    map[string]struct{}
	owners *owners

	warn      Logger
	clock     clock.WithTicker
	fps       int
	startedAt time.Time
	seq       uint64
	frame     track.Frame
	failures  map[string]int

	loop *engine.Loop
}

// New creates a sequencer reading from source.
func New(source *progress.Source, opts ...Option) *Sequencer {
	s := &Sequencer{
		source:   source,
		ids:      map[string]struct{}{},
		owners:   newOwners(),
		clock:    clock.RealClock{},
		fps:      engine.DefaultTickRate,
		failures: map[string]int{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.warn == nil {
		s.warn = logger.NewWarner(nil)
	}
	return s
}

// Register validates t and appends it to the tick order.
func (s *Sequencer) Register(t track.Track) error {
	if err := t.Validate(); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.ids[t.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTrack, t.ID())
	}
	s.ids[t.ID()] = struct{}{}
	s.tracks = append(s.tracks, t)

	logger := logger.GetProjectLogger()
	logger.WithFields(logrus.Fields{"track_id": t.ID(), "position": len(s.tracks)}).Debug("Track registered")

	return nil
}

// Unregister removes a track and its state. It reports whether the track was registered.
func (s *Sequencer) Unregister(id string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.ids[id]; !ok {
		return false
	}
	delete(s.ids, id)
	delete(s.failures, id)
	for i, t := range s.tracks {
		if t.ID() == id {
			s.tracks = append(s.tracks[:i:i], s.tracks[i+1:]...)
			break
		}
	}
	return true
}

// Tracks lists the registered track ids in tick order.
func (s *Sequencer) Tracks() []string {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]string, 0, len(s.tracks))
	for _, t := range s.tracks {
		out = append(out, t.ID())
	}
	return out
}

// Tick samples progress and advances every track. It returns the frame the tracks saw.
func (s *Sequencer) Tick() track.Frame {
	s.lock.Lock()
	defer s.lock.Unlock()

	sample := s.source.Sample()
	now := s.clock.Now()
	if s.seq == 0 {
		s.startedAt = now
	}
	s.seq++

	f := track.Frame{
		Progress: sample.Progress,
		Velocity: sample.Velocity,
		Elapsed:  now.Sub(s.startedAt),
		Seq:      s.seq,
	}

	failed := s.claim(f)

	for _, t := range s.tracks {
		err, ok := failed[t.ID()]
		if !ok {
			err = s.tickTrack(t, f)
		}
		if err != nil {
			s.failures[t.ID()]++
			s.warn.Warn(fmt.Sprintf("track %s skipped for tick %d", t.ID(), f.Seq), err)
		}
	}

	s.frame = f
	return f
}

// claim rebuilds the owner table in registration order. Tracks whose Claims panicked are
// returned so they can be skipped.
func (s *Sequencer) claim(f track.Frame) map[string]error {
	s.owners.reset()

	var failed map[string]error
	for _, t := range s.tracks {
		c, ok := t.(track.Claimer)
		if !ok {
			continue
		}
		resources, err := safeClaims(c, t.ID(), f)
		if err != nil {
			if failed == nil {
				failed = map[string]error{}
			}
			failed[t.ID()] = err
			continue
		}
		for _, r := range resources {
			s.owners.claim(r, t.ID())
		}
	}
	return failed
}

func safeClaims(c track.Claimer, id string, f track.Frame) (resources []track.Resource, err error) {
	defer commonerrors.Recover(func(cause error) {
		err = fmt.Errorf("%w: %s claims panicked: %w", ErrTrackTick, id, cause)
	})
	return c.Claims(f), nil
}

func (s *Sequencer) tickTrack(t track.Track, f track.Frame) (err error) {
	defer commonerrors.Recover(func(cause error) {
		err = fmt.Errorf("%w: %s panicked: %w", ErrTrackTick, t.ID(), cause)
	})

	if tickErr := t.Tick(f, s.owners); tickErr != nil {
		return fmt.Errorf("%w: %w", ErrTrackTick, tickErr)
	}
	return nil
}

// Frame returns the frame of the most recent tick.
func (s *Sequencer) Frame() track.Frame {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.frame
}

// Owner reports which track held r on the most recent tick.
func (s *Sequencer) Owner(r track.Resource) (string, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.owners.Owner(r)
}

// Reset rewinds progress history and every track to its initial state. No track callback or
// adapter is invoked. Calling it twice is the same as calling it once.
func (s *Sequencer) Reset() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.source.Reset()
	for _, t := range s.tracks {
		s.resetTrack(t)
	}
	s.owners.reset()
	s.seq = 0
	s.frame = track.Frame{}
	s.failures = map[string]int{}
}

func (s *Sequencer) resetTrack(t track.Track) {
	defer commonerrors.Recover(func(cause error) {
		s.warn.Warn(fmt.Sprintf("track %s failed to reset", t.ID()), cause)
	})
	t.Reset()
}

// Stats returns counters since the last reset.
func (s *Sequencer) Stats() Stats {
	s.lock.Lock()
	defer s.lock.Unlock()

	failures := make(map[string]int, len(s.failures))
	for k, v := range s.failures {
		failures[k] = v
	}
	return Stats{
		Ticks:    s.seq,
		Tracks:   len(s.tracks),
		Stale:    s.source.StaleCount(),
		Failures: failures,
	}
}

// Start drives Tick from a frame loop until ctx is done or Stop is called. Starting twice is a
// no-op.
func (s *Sequencer) Start(ctx context.Context) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.loop != nil && s.loop.Running() {
		return
	}
	s.loop = engine.New(s.clock, s.fps, func(float64) {
		s.Tick()
	})
	s.loop.Start(ctx)

	logger := logger.GetProjectLogger()
	logger.WithFields(logrus.Fields{"fps": s.fps, "tracks": len(s.tracks)}).Info("Sequencer started")
}

// Stop detaches the frame loop and waits for an in-flight tick. It is safe to call at any time
// and more than once.
func (s *Sequencer) Stop() {
	s.lock.Lock()
	loop := s.loop
	s.loop = nil
	s.lock.Unlock()

	if loop == nil {
		return
	}
	loop.Stop()

	logger := logger.GetProjectLogger()
	logger.Info("Sequencer stopped")
}

// Running reports whether the frame loop is active.
func (s *Sequencer) Running() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.loop != nil && s.loop.Running()
}
