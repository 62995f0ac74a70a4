package track

import (
	"errors"
	"fmt"

	"github.com/robmorgan/liftoff/effect"
)

// ErrOverlappingWaypoints is returned when a waypoint starts before the previous one ends.
var ErrOverlappingWaypoints = errors.New("waypoints must be chained end to end")

// Output keys written by a PositionTrack.
const (
	KeyX = "x"
	KeyY = "y"
	KeyZ = "z"
)

// Vec3 is a position in the host's scene units.
type Vec3 struct {
	X, Y, Z float64
}

// Waypoint moves the track to To between Start and End.
type Waypoint struct {
	Start float64
	End   float64
	Curve effect.Curve
	To    Vec3
}

// PositionTrack moves an object through chained waypoints. Between waypoints the object holds
// its last position.
type PositionTrack struct {
	*PropertyTrack
}

// NewPositionTrack creates a position track starting at origin.
func NewPositionTrack(id string, r Renderer, origin Vec3, waypoints ...Waypoint) (*PositionTrack, error) {
	segments := make([]Segment, 0, len(waypoints))
	for i, w := range waypoints {
		if i > 0 && w.Start < waypoints[i-1].End {
			return nil, fmt.Errorf("track %s waypoint %d starts at %.4f before %.4f: %w",
				id, i, w.Start, waypoints[i-1].End, ErrOverlappingWaypoints)
		}
		segments = append(segments, Segment{
			Start: w.Start,
			End:   w.End,
			Curve: w.Curve,
			To:    map[string]float64{KeyX: w.To.X, KeyY: w.To.Y, KeyZ: w.To.Z},
		})
	}

	pt, err := NewPropertyTrack(id, r, map[string]float64{KeyX: origin.X, KeyY: origin.Y, KeyZ: origin.Z}, segments...)
	if err != nil {
		return nil, err
	}

	return &PositionTrack{PropertyTrack: pt}, nil
}

// PositionAt returns the position at progress p.
func (t *PositionTrack) PositionAt(p float64) Vec3 {
	v := t.ValueAt(p)
	return Vec3{X: v[KeyX], Y: v[KeyY], Z: v[KeyZ]}
}
