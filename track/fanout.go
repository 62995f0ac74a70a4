package track

// Renderers sends every write to each renderer in order.
type Renderers []Renderer

func (rs Renderers) SetOutput(trackID, key string, value interface{}) {
	for _, r := range rs {
		r.SetOutput(trackID, key, value)
	}
}

// Sounds sends every sound event to each output in order.
type Sounds []Sound

func (ss Sounds) Trigger(soundID string) {
	for _, s := range ss {
		s.Trigger(soundID)
	}
}

func (ss Sounds) SetContinuous(soundID string, level float64) {
	for _, s := range ss {
		s.SetContinuous(soundID, level)
	}
}
