package cuelist

import (
	"testing"

	"github.com/fogleman/ease"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneShotHysteresis(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		samples  []float64
		expected int
	}{
		{"jitter above threshold", []float64{0.3, 0.49, 0.51, 0.52, 0.51}, 1},
		{"dip below hysteresis band", []float64{0.3, 0.49, 0.51, 0.47, 0.51}, 2},
		{"dip inside hysteresis band", []float64{0.3, 0.51, 0.485, 0.51}, 1},
		{"never reached", []float64{0.1, 0.2, 0.49}, 0},
		{"joined past threshold", []float64{0.8, 0.9}, 1},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			g := NewGate(NewOneShot("chime", 0.5))
			fired := 0
			for _, p := range testCase.samples {
				if g.Evaluate(p).Fired {
					fired++
				}
			}
			assert.Equal(t, testCase.expected, fired)
		})
	}
}

func TestOneShotRearmDistance(t *testing.T) {
	t.Parallel()

	g := NewGate(NewOneShot("whoosh", 0.5).WithRearmDistance(0.1))

	require.True(t, g.Evaluate(0.5).Fired)
	require.False(t, g.Evaluate(0.45).Fired)
	require.False(t, g.Evaluate(0.5).Fired)
	g.Evaluate(0.39)
	require.True(t, g.Evaluate(0.5).Fired)
}

func TestWindowReentry(t *testing.T) {
	t.Parallel()

	g := NewGate(NewWindow("alert", 0.4, 0.6))

	var edges []string
	for _, p := range []float64{0.2, 0.45, 0.55, 0.65, 0.5, 0.3} {
		ev := g.Evaluate(p)
		if ev.Entered {
			edges = append(edges, "enter")
		}
		if ev.Exited {
			edges = append(edges, "exit")
		}
	}

	assert.Equal(t, []string{"enter", "exit", "enter", "exit"}, edges)
}

func TestWindowBoundsAreInclusive(t *testing.T) {
	t.Parallel()

	g := NewGate(NewWindow("alert", 0.4, 0.6))
	assert.True(t, g.Evaluate(0.4).Entered)
	assert.False(t, g.Evaluate(0.6).Exited)
	assert.True(t, g.Evaluate(0.61).Exited)
}

func TestContinuousIsDeterministic(t *testing.T) {
	t.Parallel()

	g := NewGate(NewContinuous("earth-scale", 0.2, 0.4, nil))

	testCases := []struct {
		progress float64
		expected float64
	}{
		{0.2, 0},
		{0.4, 1},
		{0.1, 0},
		{0.5, 1},
		{0.3, 0.5},
	}

	// evaluate twice in different orders, the answer must not depend on history
	for pass := 0; pass < 2; pass++ {
		for i := range testCases {
			testCase := testCases[i]
			if pass == 1 {
				testCase = testCases[len(testCases)-1-i]
			}
			assert.InDelta(t, testCase.expected, g.Evaluate(testCase.progress).Value, 1e-9)
		}
	}
}

func TestContinuousCurve(t *testing.T) {
	t.Parallel()

	g := NewGate(NewContinuous("exhaust", 0, 1, ease.InQuad))
	assert.InDelta(t, 0.25, g.Evaluate(0.5).Value, 1e-9)
}

func TestGateResetIsSilent(t *testing.T) {
	t.Parallel()

	oneShot := NewGate(NewOneShot("chime", 0.5))
	window := NewGate(NewWindow("alert", 0.4, 0.6))

	require.True(t, oneShot.Evaluate(0.55).Fired)
	require.True(t, window.Evaluate(0.55).Entered)

	oneShot.Reset()
	window.Reset()
	oneShot.Reset()

	// a fresh sweep behaves like the first one
	assert.False(t, oneShot.Evaluate(0).Fired)
	assert.True(t, oneShot.Evaluate(0.6).Fired)
	assert.False(t, window.Evaluate(0.3).Exited)
	assert.True(t, window.Evaluate(0.5).Entered)
}
