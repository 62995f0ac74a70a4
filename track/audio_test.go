package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneShotAudioTrack(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	at, err := NewOneShotAudioTrack("sfx", rec,
		AudioCue{At: 0.44, SoundID: "transmission", RearmDistance: 0.02},
		AudioCue{At: 0.44, SoundID: "whoosh-0", RearmDistance: 0.02},
		AudioCue{At: 0.47, SoundID: "whoosh-1", RearmDistance: 0.1},
	)
	require.NoError(t, err)

	for _, p := range []float64{0.1, 0.45, 0.46, 0.48, 0.41, 0.5, 0.3, 0.5} {
		require.NoError(t, at.Tick(Frame{Progress: p}, nil))
	}

	_, triggers := rec.Drain()
	assert.Equal(t, []string{
		"transmission", "whoosh-0",
		"whoosh-1",
		// 0.41 re-arms the first two but not whoosh-1
		"transmission", "whoosh-0",
		"transmission", "whoosh-0", "whoosh-1",
	}, triggers)
}

func TestOneShotAudioTrackReset(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	at, err := NewOneShotAudioTrack("sfx", rec, AudioCue{At: 0.5, SoundID: "chime"})
	require.NoError(t, err)

	require.NoError(t, at.Tick(Frame{Progress: 1}, nil))
	at.Reset()
	_, triggers := rec.Drain()
	require.Equal(t, []string{"chime"}, triggers)

	require.NoError(t, at.Tick(Frame{Progress: 1}, nil))
	_, triggers = rec.Drain()
	assert.Equal(t, []string{"chime"}, triggers)
}

func TestAmbientTrack(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	amb, err := NewAmbientTrack("drone", rec, "ambient", 0.19, 0.29, nil, 0.5)
	require.NoError(t, err)

	require.NoError(t, amb.Tick(Frame{Progress: 0.1}, nil))
	assert.Equal(t, 0.0, rec.Level("ambient"))

	require.NoError(t, amb.Tick(Frame{Progress: 0.24}, nil))
	assert.InDelta(t, 0.25, rec.Level("ambient"), 1e-9)

	require.NoError(t, amb.Tick(Frame{Progress: 0.9}, nil))
	assert.InDelta(t, 0.5, rec.Level("ambient"), 1e-9)
}
