package oscbridge

import (
	"fmt"
	"strings"

	"github.com/hypebeast/go-osc/osc"
	"github.com/robmorgan/liftoff/logger"
	"github.com/sirupsen/logrus"
)

// Sender sends OSC packets. *osc.Client implements it.
type Sender interface {
	Send(packet osc.Packet) error
}

// Output forwards renderer and sound calls as OSC messages:
//
//	<prefix>/<track>/<key> value
//	<prefix>/sound/<id>/trigger
//	<prefix>/sound/<id>/level level
type Output struct {
	sender Sender
	prefix string
	log    *logrus.Entry
}

// NewOutput creates an OSC output. An empty prefix is "/liftoff".
func NewOutput(sender Sender, prefix string) *Output {
	if prefix == "" {
		prefix = "/liftoff"
	}
	return &Output{
		sender: sender,
		prefix: "/" + strings.Trim(prefix, "/"),
		log:    logger.GetProjectLogger().WithField("component", "osc"),
	}
}

// NewClientOutput creates an output that sends to host:port over UDP.
func NewClientOutput(host string, port int, prefix string) *Output {
	return NewOutput(osc.NewClient(host, port), prefix)
}

// SetOutput implements track.Renderer.
func (o *Output) SetOutput(trackID, key string, value interface{}) {
	msg := osc.NewMessage(fmt.Sprintf("%s/%s/%s", o.prefix, trackID, key))
	switch v := value.(type) {
	case float64:
		msg.Append(float32(v))
	case bool:
		msg.Append(v)
	case string:
		msg.Append(v)
	default:
		msg.Append(fmt.Sprint(v))
	}
	o.send(msg)
}

// Trigger implements track.Sound.
func (o *Output) Trigger(soundID string) {
	o.send(osc.NewMessage(fmt.Sprintf("%s/sound/%s/trigger", o.prefix, soundID)))
}

// SetContinuous implements track.Sound.
func (o *Output) SetContinuous(soundID string, level float64) {
	o.send(osc.NewMessage(fmt.Sprintf("%s/sound/%s/level", o.prefix, soundID), float32(level)))
}

func (o *Output) send(msg *osc.Message) {
	if err := o.sender.Send(msg); err != nil {
		o.log.WithField("address", msg.Address).WithError(err).Debug("Failed to send OSC message")
	}
}
