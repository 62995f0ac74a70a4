package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDMX(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		value, min, max float64
		expected        byte
	}{
		{0, 0, 1, 0},
		{1, 0, 1, 255},
		{0.5, 0, 1, 128},
		{2, 0, 1, 255},
		{-1, 0, 1, 0},
		{0, -300, 300, 128},
		{1.5, 0, 1.5, 255},
	}

	for _, testCase := range testCases {
		require.Equal(t, testCase.expected, ToDMX(testCase.value, testCase.min, testCase.max), "%v in [%v,%v]", testCase.value, testCase.min, testCase.max)
	}
}

func TestFromDMX(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, -80.0, FromDMX(ToDMX(-80, -300, 300), -300, 300), 600.0/255)
	assert.Equal(t, 1.0, FromDMX(255, 0, 1))
}
