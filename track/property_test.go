package track

import (
	"testing"

	"github.com/fogleman/ease"
	"github.com/robmorgan/liftoff/cuelist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyTrackValues(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	pt, err := NewPropertyTrack("earth", rec, map[string]float64{"scale": 1, "opacity": 1},
		Segment{Start: 0.2, End: 0.4, To: map[string]float64{"scale": 0.5}},
		Segment{Start: 0.4, End: 0.6, To: map[string]float64{"scale": 0.1, "opacity": 0}},
	)
	require.NoError(t, err)

	testCases := []struct {
		progress float64
		scale    float64
		opacity  float64
	}{
		{0, 1, 1},
		{0.3, 0.75, 1},
		{0.4, 0.5, 1},
		{0.5, 0.3, 0.5},
		{0.9, 0.1, 0},
		{0.3, 0.75, 1},
	}

	for _, testCase := range testCases {
		v := pt.ValueAt(testCase.progress)
		assert.InDelta(t, testCase.scale, v["scale"], 1e-9, "scale at %v", testCase.progress)
		assert.InDelta(t, testCase.opacity, v["opacity"], 1e-9, "opacity at %v", testCase.progress)
	}
}

func TestPropertyTrackOverlapTakesOver(t *testing.T) {
	t.Parallel()

	pt, err := NewPropertyTrack("rocket", NewRecorder(), map[string]float64{"y": 0},
		Segment{Start: 0.0, End: 0.4, To: map[string]float64{"y": 100}},
		Segment{Start: 0.2, End: 0.6, To: map[string]float64{"y": 0}},
	)
	require.NoError(t, err)

	// the second segment starts from y=50, where the first had reached
	assert.InDelta(t, 50, pt.ValueAt(0.2)["y"], 1e-9)
	assert.InDelta(t, 25, pt.ValueAt(0.4)["y"], 1e-9)
	assert.InDelta(t, 0, pt.ValueAt(0.6)["y"], 1e-9)
}

func TestPropertyTrackEmitsChangesOnly(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	pt, err := NewPropertyTrack("moon", rec, map[string]float64{"scale": 0},
		Segment{Start: 0.5, End: 0.7, Curve: ease.OutCubic, To: map[string]float64{"scale": 1}},
	)
	require.NoError(t, err)

	require.NoError(t, pt.Tick(Frame{Progress: 0.1}, nil))
	require.NoError(t, pt.Tick(Frame{Progress: 0.2}, nil))
	writes, _ := rec.Drain()
	require.Len(t, writes, 1)
	assert.Equal(t, Output{TrackID: "moon", Key: "scale", Value: 0.0}, writes[0])

	require.NoError(t, pt.Tick(Frame{Progress: 0.9}, nil))
	v, ok := rec.Value("moon", "scale")
	require.True(t, ok)
	assert.InDelta(t, 1.0, v.(float64), 1e-9)

	// reset forgets what was written, so the next tick writes again
	pt.Reset()
	rec.Drain()
	require.NoError(t, pt.Tick(Frame{Progress: 0.9}, nil))
	writes, _ = rec.Drain()
	assert.Len(t, writes, 1)
}

func TestPropertyTrackErrors(t *testing.T) {
	t.Parallel()

	_, err := NewPropertyTrack("bad", NewRecorder(), map[string]float64{"x": 0},
		Segment{Start: 0.2, End: 0.4, To: map[string]float64{"y": 1}})
	require.ErrorIs(t, err, ErrUnknownProperty)

	_, err = NewPropertyTrack("bad", NewRecorder(), map[string]float64{"x": 0},
		Segment{Start: 0.4, End: 0.4, To: map[string]float64{"x": 1}})
	require.ErrorIs(t, err, cuelist.ErrInvalidCueRange)
}

func TestPositionTrack(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	pos, err := NewPositionTrack("rocket", rec, Vec3{},
		Waypoint{Start: 0.18, End: 0.22, To: Vec3{Y: -80}},
		Waypoint{Start: 0.22, End: 0.42, To: Vec3{X: 70, Y: -440}},
		Waypoint{Start: 0.5, End: 0.6, To: Vec3{X: 0, Y: -500, Z: 10}},
	)
	require.NoError(t, err)

	assert.Equal(t, Vec3{}, pos.PositionAt(0.1))
	assert.InDelta(t, -80, pos.PositionAt(0.22).Y, 1e-9)
	// holds between waypoints
	assert.Equal(t, pos.PositionAt(0.42), pos.PositionAt(0.45))
	assert.InDelta(t, 10, pos.PositionAt(1).Z, 1e-9)

	require.NoError(t, pos.Tick(Frame{Progress: 0.3}, nil))
	assert.ElementsMatch(t, []string{"rocket"}, rec.Slots())
	assert.Len(t, rec.Snapshot("rocket"), 3)
}

func TestPositionTrackRejectsOverlap(t *testing.T) {
	t.Parallel()

	_, err := NewPositionTrack("rocket", NewRecorder(), Vec3{},
		Waypoint{Start: 0.1, End: 0.3, To: Vec3{Y: 1}},
		Waypoint{Start: 0.2, End: 0.4, To: Vec3{Y: 2}},
	)
	require.ErrorIs(t, err, ErrOverlappingWaypoints)
}
