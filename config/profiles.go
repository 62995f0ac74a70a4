package config

import "github.com/robmorgan/liftoff/profile"

func initializeProfiles() map[string]profile.Profile {
	out := map[string]profile.Profile{
		"layer": {
			Name: "Fading layer",
			Channels: map[string]int{
				profile.ChannelTypeOpacity: 1,
				profile.ChannelTypeScale:   2,
			},
			Ranges: map[string]profile.Range{
				profile.ChannelTypeScale: {Min: 0, Max: 1.5},
			},
		},
		"overlay": {
			Name: "Switched overlay",
			Channels: map[string]int{
				profile.ChannelTypeActive:  1,
				profile.ChannelTypeOpacity: 2,
			},
		},
		"mover": {
			Name: "Positioned object",
			Channels: map[string]int{
				profile.ChannelTypeX:       1,
				profile.ChannelTypeY:       2,
				profile.ChannelTypeRotate:  3,
				profile.ChannelTypeOpacity: 4,
			},
			Ranges: map[string]profile.Range{
				profile.ChannelTypeX:      {Min: -300, Max: 300},
				profile.ChannelTypeY:      {Min: -1000, Max: 200},
				profile.ChannelTypeRotate: {Min: -180, Max: 180},
			},
		},
		"rgb": {
			Name: "RGB wash",
			Channels: map[string]int{
				profile.ChannelTypeRed:   1,
				profile.ChannelTypeGreen: 2,
				profile.ChannelTypeBlue:  3,
			},
		},
		"dimmer": {
			Name: "Single dimmer",
			Channels: map[string]int{
				profile.ChannelTypeIntensity: 1,
			},
		},
	}

	return out
}
