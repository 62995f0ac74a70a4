package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robmorgan/liftoff/config"
)

func TestRenderTimeline(t *testing.T) {
	t.Parallel()

	out, err := renderTimeline(config.NewConfig(), 0.25)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header, separators and one row per step
	assert.Len(t, lines, 5+4)
	assert.Contains(t, out, "LAUNCH SEQUENCE")
	assert.Contains(t, out, "DEEP SPACE TRANSIT")
	assert.Contains(t, out, "EARTH APPROACH")
	assert.Contains(t, out, "contact-panel")
	assert.Contains(t, out, "work-alert")
}

func TestRenderTimelineRejectsBadStep(t *testing.T) {
	t.Parallel()

	_, err := renderTimeline(config.NewConfig(), 0)
	assert.Error(t, err)
}

func TestDumpCommand(t *testing.T) {
	t.Parallel()

	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"dump", "--step", "0.5", "--env-file", "testdata/missing.env"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "PROGRESS")
	assert.Contains(t, buf.String(), "EARTH APPROACH")
}
