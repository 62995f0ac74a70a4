package sequencer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/robmorgan/liftoff/cuelist"
	"github.com/robmorgan/liftoff/progress"
	"github.com/robmorgan/liftoff/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

type scroll struct {
	lock           sync.Mutex
	offset, extent float64
}

func (s *scroll) ScrollPosition() (float64, float64) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.offset, s.extent
}

func (s *scroll) set(p float64) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.offset = p * s.extent
}

type warnings struct {
	lock     sync.Mutex
	messages []string
	errs     []error
}

func (w *warnings) Warn(message string, err error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.messages = append(w.messages, message)
	w.errs = append(w.errs, err)
}

func (w *warnings) count() int {
	w.lock.Lock()
	defer w.lock.Unlock()
	return len(w.messages)
}

// brokenTrack fails every tick, either by panicking or by returning an error.
type brokenTrack struct {
	id     string
	panics bool
	resets int
}

func (b *brokenTrack) ID() string      { return b.id }
func (b *brokenTrack) Validate() error { return nil }
func (b *brokenTrack) Reset()          { b.resets++ }

func (b *brokenTrack) Tick(track.Frame, track.Owners) error {
	if b.panics {
		panic("renderer exploded")
	}
	return errors.New("renderer unavailable")
}

func newTestSequencer(t *testing.T) (*Sequencer, *scroll, *warnings, *testingclock.FakeClock) {
	t.Helper()

	fc := testingclock.NewFakeClock(time.Unix(0, 0))
	sc := &scroll{extent: 1000}
	w := &warnings{}
	src := progress.NewSource(sc, progress.WithClock(fc))
	return New(src, WithLogger(w), WithClock(fc), WithFPS(40)), sc, w, fc
}

func TestTrackIsolation(t *testing.T) {
	t.Parallel()

	for _, panics := range []bool{true, false} {
		panics := panics
		t.Run(fmt.Sprintf("panics=%v", panics), func(t *testing.T) {
			t.Parallel()

			seq, sc, w, _ := newTestSequencer(t)
			rec := track.NewRecorder()

			first, err := track.NewPropertyTrack("first", rec, map[string]float64{"v": 0},
				track.Segment{Start: 0, End: 1, To: map[string]float64{"v": 1}})
			require.NoError(t, err)
			third, err := track.NewPropertyTrack("third", rec, map[string]float64{"v": 1},
				track.Segment{Start: 0, End: 1, To: map[string]float64{"v": 0}})
			require.NoError(t, err)

			require.NoError(t, seq.Register(first))
			require.NoError(t, seq.Register(&brokenTrack{id: "second", panics: panics}))
			require.NoError(t, seq.Register(third))

			for i := 0; i < 100; i++ {
				p := float64(i) / 99
				sc.set(p)
				seq.Tick()

				v1, _ := rec.Value("first", "v")
				v3, _ := rec.Value("third", "v")
				require.InDelta(t, p, v1.(float64), 1e-9)
				require.InDelta(t, 1-p, v3.(float64), 1e-9)
				require.Equal(t, i+1, w.count())
			}

			assert.Equal(t, 100, seq.Stats().Failures["second"])
			assert.Zero(t, seq.Stats().Failures["first"])
			for _, err := range w.errs {
				assert.ErrorIs(t, err, ErrTrackTick)
			}
			assert.Contains(t, w.messages[0], "second")
		})
	}
}

func TestPanickingClaimsAreContained(t *testing.T) {
	t.Parallel()

	seq, _, w, _ := newTestSequencer(t)
	require.NoError(t, seq.Register(&panickyClaimer{brokenTrack: brokenTrack{id: "claimer"}}))

	seq.Tick()
	seq.Tick()
	assert.Equal(t, 2, w.count())
}

type panickyClaimer struct {
	brokenTrack
}

func (p *panickyClaimer) Claims(track.Frame) []track.Resource {
	panic("claims exploded")
}

func TestFirstRegisteredTrackWinsSharedSlot(t *testing.T) {
	t.Parallel()

	const slot = track.Resource("hud-alert")

	newAlert := func(id string, rec track.Renderer) track.Track {
		vt, err := track.NewVisibilityTrack(id, rec, track.Visibility{
			Start: 0.4, End: 0.8, Target: string(slot), Resource: slot, Label: id,
		})
		require.NoError(t, err)
		return vt
	}

	testCases := []struct {
		order    []string
		expected string
	}{
		{[]string{"work", "project"}, "work"},
		{[]string{"project", "work"}, "project"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.expected, func(t *testing.T) {
			t.Parallel()

			seq, sc, _, _ := newTestSequencer(t)
			rec := track.NewRecorder()
			for _, id := range testCase.order {
				require.NoError(t, seq.Register(newAlert(id, rec)))
			}

			for _, p := range []float64{0.1, 0.5, 0.6, 0.7} {
				sc.set(p)
				seq.Tick()

				if p >= 0.4 {
					label, ok := rec.Value(string(slot), track.KeyLabel)
					require.True(t, ok)
					require.Equal(t, testCase.expected, label)

					owner, ok := seq.Owner(slot)
					require.True(t, ok)
					require.Equal(t, testCase.expected, owner)
				}
			}
		})
	}
}

func TestResetReplaysOneShots(t *testing.T) {
	t.Parallel()

	seq, sc, _, _ := newTestSequencer(t)
	rec := track.NewRecorder()

	calls := 0
	counting := func(track.Context, []int) error {
		calls++
		return nil
	}
	b, err := track.NewBase("counter", []cuelist.Cue{
		cuelist.NewOneShot("launch", 0.5),
		cuelist.NewWindow("alert", 0.4, 0.6),
	}, track.Handlers{OnEnter: counting, OnExit: counting, OnOneShot: counting})
	require.NoError(t, err)
	require.NoError(t, seq.Register(b))

	sfx, err := track.NewOneShotAudioTrack("sfx", rec, track.AudioCue{At: 0.5, SoundID: "chime"})
	require.NoError(t, err)
	require.NoError(t, seq.Register(sfx))

	sweep := func() {
		for i := 0; i <= 10; i++ {
			sc.set(float64(i) / 10)
			seq.Tick()
		}
	}

	sweep()
	_, triggers := rec.Drain()
	require.Equal(t, []string{"chime"}, triggers)
	require.Equal(t, 3, calls)

	// holding at the end does not fire again
	for i := 0; i < 5; i++ {
		seq.Tick()
	}
	_, triggers = rec.Drain()
	require.Empty(t, triggers)
	require.Equal(t, 3, calls)

	before := calls
	seq.Reset()
	seq.Reset()
	assert.Equal(t, before, calls)
	writes, triggers := rec.Drain()
	assert.Empty(t, writes)
	assert.Empty(t, triggers)
	assert.Equal(t, uint64(0), seq.Stats().Ticks)

	sweep()
	_, triggers = rec.Drain()
	assert.Equal(t, []string{"chime"}, triggers)
	assert.Equal(t, before+3, calls)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	seq, _, _, _ := newTestSequencer(t)

	require.NoError(t, seq.Register(&brokenTrack{id: "a"}))
	require.ErrorIs(t, seq.Register(&brokenTrack{id: "a"}), ErrDuplicateTrack)
	require.NoError(t, seq.Register(&brokenTrack{id: "b"}))
	assert.Equal(t, []string{"a", "b"}, seq.Tracks())

	require.ErrorIs(t, seq.Register(&invalidTrack{brokenTrack{id: "c"}}), cuelist.ErrInvalidCueRange)
	assert.Equal(t, []string{"a", "b"}, seq.Tracks())

	assert.True(t, seq.Unregister("a"))
	assert.False(t, seq.Unregister("a"))
	assert.Equal(t, []string{"b"}, seq.Tracks())
	require.NoError(t, seq.Register(&brokenTrack{id: "a"}))
	assert.Equal(t, []string{"b", "a"}, seq.Tracks())
}

type invalidTrack struct {
	brokenTrack
}

func (i *invalidTrack) Validate() error {
	return cuelist.NewContinuous("bad", 0.5, 0.5, nil).Validate()
}

func TestFrameCarriesElapsedAndVelocity(t *testing.T) {
	t.Parallel()

	seq, sc, _, fc := newTestSequencer(t)

	sc.set(0)
	f := seq.Tick()
	assert.Equal(t, uint64(1), f.Seq)
	assert.Zero(t, f.Elapsed)

	fc.Step(time.Second)
	sc.set(0.5)
	f = seq.Tick()
	assert.Equal(t, time.Second, f.Elapsed)
	assert.Equal(t, 0.5, f.Progress)
	assert.Greater(t, f.Velocity, 0.0)
	assert.Equal(t, f, seq.Frame())
}

func TestStaleTicksRepeatProgress(t *testing.T) {
	t.Parallel()

	seq, sc, _, _ := newTestSequencer(t)
	sc.set(0.3)
	seq.Tick()

	sc.lock.Lock()
	sc.extent = 0
	sc.lock.Unlock()

	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0.3, seq.Tick().Progress, 1e-9)
	}
	assert.Equal(t, 3, seq.Stats().Stale)
}

func TestStartStop(t *testing.T) {
	t.Parallel()

	seq, sc, _, fc := newTestSequencer(t)
	sc.set(0.25)

	seq.Stop()
	seq.Start(context.Background())
	seq.Start(context.Background())
	require.True(t, seq.Running())

	require.Eventually(t, fc.HasWaiters, time.Second, time.Millisecond)
	fc.Step(25 * time.Millisecond)
	require.Eventually(t, func() bool { return seq.Stats().Ticks == 1 }, time.Second, time.Millisecond)

	seq.Stop()
	seq.Stop()
	assert.False(t, seq.Running())

	// manual ticks still work after the loop is detached
	seq.Tick()
	assert.Equal(t, uint64(2), seq.Stats().Ticks)
}

func TestStartAfterContextEnds(t *testing.T) {
	t.Parallel()

	seq, sc, _, fc := newTestSequencer(t)
	sc.set(0.5)

	ctx, cancel := context.WithCancel(context.Background())
	seq.Start(ctx)
	cancel()
	require.Eventually(t, func() bool { return !seq.Running() }, time.Second, time.Millisecond)

	seq.Start(context.Background())
	defer seq.Stop()
	require.True(t, seq.Running())

	require.Eventually(t, func() bool {
		fc.Step(25 * time.Millisecond)
		return seq.Stats().Ticks >= 1
	}, time.Second, time.Millisecond)
}
