package fixture

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/liftoff/config"
	"github.com/robmorgan/liftoff/profile"
	"github.com/robmorgan/liftoff/utils"
)

var (
	// ErrUnknownChannel is returned when a fixture has no channel for an output key.
	ErrUnknownChannel = errors.New("fixture has no channel for key")
	// ErrUnsupportedValue is returned for values that cannot be turned into DMX.
	ErrUnsupportedValue = errors.New("unsupported output value")
)

// Channel represents a channel on the fixture
type Channel struct {
	Type    string
	Address int
	Range   profile.Range
	Value   byte
}

// Fixture is a patched output layer. Its name matches the renderer target tracks write to.
type Fixture struct {
	Name     string
	Universe int
	// The DMX starting address
	Address int

	// The fixture channels keyed by channel type
	Channels map[string]*Channel

	needsUpdate bool
}

// NewFixture resolves a patched layer against its profile.
func NewFixture(p config.PatchedLayer, prof profile.Profile) *Fixture {
	chans := make(map[string]*Channel, len(prof.Channels))
	for typ, offset := range prof.Channels {
		chans[typ] = &Channel{
			Type:    typ,
			Address: p.Address + offset - 1,
			Range:   prof.Range(typ),
		}
	}

	return &Fixture{
		Name:     p.Name,
		Universe: p.Universe,
		Address:  p.Address,
		Channels: chans,
	}
}

// GetChannelCount returns the number of channels
func (f *Fixture) GetChannelCount() int {
	return len(f.Channels)
}

// ChannelTypes lists the channel types in sorted order.
func (f *Fixture) ChannelTypes() []string {
	out := make([]string, 0, len(f.Channels))
	for k := range f.Channels {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// NeedsUpdate reports whether a channel changed since HasUpdated.
func (f *Fixture) NeedsUpdate() bool {
	return f.needsUpdate
}

// HasUpdated clears the update flag.
func (f *Fixture) HasUpdated() {
	f.needsUpdate = false
}

// Set converts an output value into channel levels and returns the DMX writes it needs.
func (f *Fixture) Set(key string, value interface{}) ([]dmxOperation, error) {
	switch v := value.(type) {
	case float64:
		return f.setLevel(key, v)
	case bool:
		level := 0.0
		if v {
			level = 1
		}
		return f.setLevel(key, level)
	case string:
		if key != profile.ChannelTypeColor {
			return nil, fmt.Errorf("%w: string for %s.%s", ErrUnsupportedValue, f.Name, key)
		}
		return f.setColor(v)
	}
	return nil, fmt.Errorf("%w: %T for %s.%s", ErrUnsupportedValue, value, f.Name, key)
}

func (f *Fixture) setLevel(key string, v float64) ([]dmxOperation, error) {
	ch, ok := f.Channels[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownChannel, f.Name, key)
	}

	lo, hi := ch.Range.Bounds()
	ch.Value = utils.ToDMX(v, lo, hi)
	f.needsUpdate = true

	return []dmxOperation{{universe: f.Universe, channel: ch.Address, value: int(ch.Value)}}, nil
}

func (f *Fixture) setColor(hex string) ([]dmxOperation, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}

	r, g, b := c.Clamped().RGB255()
	var ops []dmxOperation
	for typ, level := range map[string]uint8{
		profile.ChannelTypeRed:   r,
		profile.ChannelTypeGreen: g,
		profile.ChannelTypeBlue:  b,
	} {
		ch, ok := f.Channels[typ]
		if !ok {
			continue
		}
		ch.Value = level
		ops = append(ops, dmxOperation{universe: f.Universe, channel: ch.Address, value: int(level)})
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownChannel, f.Name, profile.ChannelTypeColor)
	}

	f.needsUpdate = true
	return ops, nil
}
