package scale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		t, lo, hi, expected float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{2, 1, 0, 1},
		{0.25, 1, 0, 0.25},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, Clamp(testCase.t, testCase.lo, testCase.hi))
	}

	assert.Equal(t, 255, Clamp(300, 0, 255))
}

func TestUnitHandlesNaN(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, Unit(math.NaN()))
	assert.Equal(t, 1.0, Unit(math.Inf(1)))
	assert.Equal(t, 0.0, Unit(math.Inf(-1)))
}

func TestToUnitClamp(t *testing.T) {
	t.Parallel()

	f := ToUnitClamp(200, 400)
	assert.Equal(t, 0.0, f(100))
	assert.Equal(t, 0.5, f(300))
	assert.Equal(t, 1.0, f(500))

	degenerate := ToUnitClamp(10, 10)
	assert.Equal(t, 0.0, degenerate(10))
}

func TestLerp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
	assert.Equal(t, -10.0, Lerp(0, -20, 0.5))
}
