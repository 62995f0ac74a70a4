package config

// PatchedLayer stores config info for a DMX output layer. Name is the renderer target a track
// writes to.
type PatchedLayer struct {
	Name     string `yaml:"name"`
	Address  int    `yaml:"address"`
	Universe int    `yaml:"universe"`
	Profile  string `yaml:"profile"`
}

// PatchLayers returns the default patch for the journey.
func PatchLayers() []PatchedLayer {
	s := make([]PatchedLayer, 0)

	s = append(s, patchPlanets()...)
	s = append(s, patchCraft()...)
	s = append(s, patchEffects()...)
	s = append(s, patchHUD()...)

	return s
}

func patchPlanets() []PatchedLayer {
	return []PatchedLayer{
		{Name: "earth", Address: 1, Universe: 1, Profile: "layer"},
		{Name: "moon", Address: 3, Universe: 1, Profile: "layer"},
		{Name: "mars", Address: 5, Universe: 1, Profile: "layer"},
	}
}

func patchCraft() []PatchedLayer {
	return []PatchedLayer{
		{Name: "rocket", Address: 11, Universe: 1, Profile: "mover"},
		{Name: "exhaust", Address: 15, Universe: 1, Profile: "layer"},
		{Name: "booster", Address: 17, Universe: 1, Profile: "mover"},
	}
}

func patchEffects() []PatchedLayer {
	return []PatchedLayer{
		{Name: "warp-streaks", Address: 31, Universe: 1, Profile: "overlay"},
		{Name: "nebula", Address: 33, Universe: 1, Profile: "overlay"},
		{Name: "lens-flare", Address: 35, Universe: 1, Profile: "overlay"},
		{Name: "stage-flash", Address: 37, Universe: 1, Profile: "overlay"},
		{Name: "sky", Address: 41, Universe: 1, Profile: "rgb"},
		{Name: "particles", Address: 44, Universe: 1, Profile: "dimmer"},
	}
}

func patchHUD() []PatchedLayer {
	return []PatchedLayer{
		{Name: "cockpit-frame", Address: 51, Universe: 1, Profile: "overlay"},
		{Name: "hud-alert", Address: 53, Universe: 1, Profile: "overlay"},
		{Name: "panel", Address: 55, Universe: 1, Profile: "overlay"},
	}
}
