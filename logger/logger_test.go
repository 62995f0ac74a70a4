package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFallsBackToInfo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, logrus.InfoLevel, New("").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("loud").GetLevel())
	assert.Equal(t, logrus.DebugLevel, New("debug").GetLevel())
}

func TestGetProjectLoggerIsShared(t *testing.T) {
	t.Parallel()

	require.Same(t, GetProjectLogger(), GetProjectLogger())
}

func TestWarnerWritesError(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	l := New("warn")
	l.SetOutput(buf)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	w := NewWarner(l)
	w.Warn("track tick failed", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "level=warning")
	assert.Contains(t, out, `msg="track tick failed"`)
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "component=sequencer")
}
