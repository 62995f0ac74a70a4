package oscbridge

import (
	"errors"
	"testing"

	"github.com/hypebeast/go-osc/osc"
	"github.com/robmorgan/liftoff/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	messages []*osc.Message
	err      error
}

func (c *captured) Send(packet osc.Packet) error {
	if msg, ok := packet.(*osc.Message); ok {
		c.messages = append(c.messages, msg)
	}
	return c.err
}

func TestOutputAddresses(t *testing.T) {
	t.Parallel()

	c := &captured{}
	out := NewOutput(c, "journey/")

	out.SetOutput("earth", "opacity", 0.5)
	out.SetOutput("hud", "phase", "LAUNCH SEQUENCE")
	out.SetOutput("hud-alert", "active", true)
	out.Trigger("transmission")
	out.SetContinuous("ambient", 0.25)

	require.Len(t, c.messages, 5)
	assert.Equal(t, "/journey/earth/opacity", c.messages[0].Address)
	assert.Equal(t, []interface{}{float32(0.5)}, c.messages[0].Arguments)
	assert.Equal(t, []interface{}{"LAUNCH SEQUENCE"}, c.messages[1].Arguments)
	assert.Equal(t, []interface{}{true}, c.messages[2].Arguments)
	assert.Equal(t, "/journey/sound/transmission/trigger", c.messages[3].Address)
	assert.Empty(t, c.messages[3].Arguments)
	assert.Equal(t, "/journey/sound/ambient/level", c.messages[4].Address)
}

func TestOutputIgnoresSendErrors(t *testing.T) {
	t.Parallel()

	c := &captured{err: errors.New("network unreachable")}
	out := NewOutput(c, "")

	assert.NotPanics(t, func() { out.SetOutput("earth", "opacity", 1.0) })
	assert.Equal(t, "/liftoff/earth/opacity", c.messages[0].Address)
}

func TestScrollInput(t *testing.T) {
	t.Parallel()

	resets := 0
	in := NewScrollInput("/liftoff", func() { resets++ })

	offset, extent := in.ScrollPosition()
	assert.Zero(t, offset)
	assert.Zero(t, extent)

	in.Dispatch(osc.NewMessage("/liftoff/scroll", float32(250), float32(1000)))
	offset, extent = in.ScrollPosition()
	assert.Equal(t, 250.0, offset)
	assert.Equal(t, 1000.0, extent)

	in.Dispatch(osc.NewMessage("/liftoff/scroll", int32(500), int64(1000)))
	src := progress.NewSource(in)
	assert.Equal(t, 0.5, src.Sample().Progress)

	in.Dispatch(osc.NewMessage("/liftoff/scroll", "far", float32(1)))
	in.Dispatch(osc.NewMessage("/liftoff/scroll", float32(1)))
	in.Dispatch(osc.NewMessage("/other/scroll", float32(1), float32(1)))
	offset, _ = in.ScrollPosition()
	assert.Equal(t, 500.0, offset)

	in.Dispatch(osc.NewMessage("/liftoff/reset"))
	assert.Equal(t, 1, resets)

	accepted, rejected := in.Counts()
	assert.Equal(t, 3, accepted)
	assert.Equal(t, 2, rejected)
}

func TestScrollInputBundle(t *testing.T) {
	t.Parallel()

	in := NewScrollInput("", nil)

	bundle := &osc.Bundle{
		Messages: []*osc.Message{osc.NewMessage("/liftoff/scroll", float64(10), float64(100))},
		Bundles: []*osc.Bundle{{
			Messages: []*osc.Message{osc.NewMessage("/liftoff/scroll", float64(20), float64(100))},
		}},
	}
	in.Dispatch(bundle)

	offset, _ := in.ScrollPosition()
	assert.Equal(t, 20.0, offset)
}
