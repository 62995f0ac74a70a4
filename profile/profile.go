package profile

// Channel types are the output keys tracks write. A profile maps each key it supports to a
// channel offset from the patched start address.
const (
	ChannelTypeOpacity   = "opacity"
	ChannelTypeScale     = "scale"
	ChannelTypeActive    = "active"
	ChannelTypeIntensity = "intensity"

	ChannelTypeX      = "x"
	ChannelTypeY      = "y"
	ChannelTypeZ      = "z"
	ChannelTypeRotate = "rotate"

	// ChannelTypeColor is split across the red, green and blue channels.
	ChannelTypeColor = "color"
	ChannelTypeRed   = "color:red"
	ChannelTypeGreen = "color:green"
	ChannelTypeBlue  = "color:blue"
)

// Range is the span of output values that maps onto 0-255. The zero Range is [0,1].
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Bounds returns the range, defaulting to [0,1].
func (r Range) Bounds() (float64, float64) {
	if r.Min == 0 && r.Max == 0 {
		return 0, 1
	}
	return r.Min, r.Max
}

// Profile holds info for an output profile including the channel mappings.
type Profile struct {
	Name string `yaml:"name"`

	// The channel offsets, starting at 1
	Channels map[string]int `yaml:"channels"`

	// Ranges for channels whose values are not in [0,1]
	Ranges map[string]Range `yaml:"ranges,omitempty"`
}

// ChannelCount is the number of DMX channels the profile uses.
func (p Profile) ChannelCount() int {
	n := 0
	for _, offset := range p.Channels {
		n = max(n, offset)
	}
	return n
}

// Range returns the value range of a channel type.
func (p Profile) Range(channelType string) Range {
	return p.Ranges[channelType]
}
