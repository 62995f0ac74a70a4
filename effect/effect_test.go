package effect

import (
	"testing"

	"github.com/fogleman/ease"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurvesHitEndpoints(t *testing.T) {
	t.Parallel()

	for _, name := range Names() {
		c := MustLookup(name)
		assert.InDelta(t, 0.0, c(0), 1e-9, name)
		assert.InDelta(t, 1.0, c(1), 1e-9, name)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		at       float64
		expected float64
	}{
		{"", 0.5, 0.5},
		{"none", 0.25, 0.25},
		{"power2.out", 0.5, ease.OutCubic(0.5)},
		{"POWER2.OUT", 0.5, ease.OutCubic(0.5)},
		{"sine.inOut", 0.5, 0.5},
	}

	for _, testCase := range testCases {
		c, err := Lookup(testCase.name)
		require.NoError(t, err)
		assert.InDelta(t, testCase.expected, c(testCase.at), 1e-9, testCase.name)
	}
}

func TestLookupUnknown(t *testing.T) {
	t.Parallel()

	_, err := Lookup("bounce.sideways")
	require.ErrorIs(t, err, ErrUnknownCurve)
	assert.Panics(t, func() { MustLookup("bounce.sideways") })
}

func TestInvert(t *testing.T) {
	t.Parallel()

	r := Invert(nil)
	assert.Equal(t, 1.0, r(0))
	assert.Equal(t, 0.0, r(1))
	assert.Equal(t, 0.75, r(0.25))

	// power1.in(0.25) is 0.0625; played backwards it would be 0.5625
	in := Invert(MustLookup("power1.in"))
	assert.InDelta(t, 0.9375, in(0.25), 1e-9)
}
