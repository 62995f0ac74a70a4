package sound

import (
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
)

// tone is a sine note with a linear attack and an exponential decay.
type tone struct {
	sr      beep.SampleRate
	freq    float64
	peak    float64
	attack  int
	decayTo int
	length  int
	pos     int
}

func newTone(sr beep.SampleRate, freq, peak float64) *tone {
	return &tone{
		sr:      sr,
		freq:    freq,
		peak:    peak,
		attack:  sr.N(80 * time.Millisecond),
		decayTo: sr.N(700 * time.Millisecond),
		length:  sr.N(800 * time.Millisecond),
	}
}

func (t *tone) gain() float64 {
	switch {
	case t.pos < t.attack:
		return t.peak * float64(t.pos) / float64(t.attack)
	case t.pos < t.decayTo:
		// exponential ramp from peak to 0.001
		k := float64(t.pos-t.attack) / float64(t.decayTo-t.attack)
		return t.peak * math.Pow(0.001/t.peak, k)
	}
	return 0.001
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.length {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.length {
			return i, true
		}
		v := t.gain() * math.Sin(2*math.Pi*t.freq*float64(t.pos)/float64(t.sr))
		samples[i] = [2]float64{v, v}
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error {
	return nil
}

// chime is an ascending C-E-G arpeggio.
func chime(sr beep.SampleRate) beep.Streamer {
	notes := []struct {
		freq   float64
		offset time.Duration
	}{
		{261.6, 0},
		{329.6, 220 * time.Millisecond},
		{392, 440 * time.Millisecond},
	}

	var length time.Duration
	voices := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		voices = append(voices, beep.Seq(beep.Silence(sr.N(n.offset)), newTone(sr, n.freq, 0.10)))
		length = n.offset + 800*time.Millisecond
	}
	return beep.Take(sr.N(length), beep.Mix(voices...))
}

// whoosh is white noise through a band-pass filter sweeping down from 900Hz to 180Hz.
type whoosh struct {
	sr     beep.SampleRate
	rng    *rand.Rand
	length int
	pos    int

	// state-variable filter
	low, band float64
}

func newWhoosh(sr beep.SampleRate, seed int64) *whoosh {
	return &whoosh{sr: sr, rng: rand.New(rand.NewSource(seed)), length: sr.N(700 * time.Millisecond)}
}

func (w *whoosh) Stream(samples [][2]float64) (n int, ok bool) {
	if w.pos >= w.length {
		return 0, false
	}

	const q = 1 / 1.2
	for i := range samples {
		if w.pos >= w.length {
			return i, true
		}
		k := float64(w.pos) / float64(w.length)
		cutoff := 900 * math.Pow(180.0/900, k)
		f := 2 * math.Sin(math.Pi*cutoff/float64(w.sr))

		in := w.rng.Float64()*2 - 1
		w.low += f * w.band
		high := in - w.low - q*w.band
		w.band += f * high

		v := 0.055 * (1 - k) * w.band
		samples[i] = [2]float64{v, v}
		w.pos++
	}
	return len(samples), true
}

func (w *whoosh) Err() error {
	return nil
}

// drone is an endless A-minor pad whose level follows a target set from another goroutine.
type drone struct {
	sr     beep.SampleRate
	pos    int
	level  float64
	target atomic.Uint64
	ramp   float64
}

var droneVoices = []struct {
	freq     float64
	gain     float64
	triangle bool
}{
	{110, 0.50, false},
	{113, 0.35, false},
	{165, 0.18, false},
	{220, 0.09, true},
	{329, 0.035, false},
}

const (
	droneGain     = 0.022
	droneLFOHz    = 0.042
	droneLFODepth = 0.006
)

func newDrone(sr beep.SampleRate) *drone {
	// reach the target in about 2.5s
	return &drone{sr: sr, ramp: 1 / float64(sr.N(2500*time.Millisecond))}
}

func (d *drone) setTarget(level float64) {
	d.target.Store(math.Float64bits(level))
}

func (d *drone) Stream(samples [][2]float64) (n int, ok bool) {
	target := math.Float64frombits(d.target.Load())
	sr := float64(d.sr)

	for i := range samples {
		switch {
		case d.level < target:
			d.level = math.Min(target, d.level+d.ramp)
		case d.level > target:
			d.level = math.Max(target, d.level-d.ramp)
		}

		t := float64(d.pos) / sr
		v := 0.0
		for _, voice := range droneVoices {
			phase := voice.freq * t
			if voice.triangle {
				v += voice.gain * (4*math.Abs(phase-math.Floor(phase+0.5)) - 1)
			} else {
				v += voice.gain * math.Sin(2*math.Pi*phase)
			}
		}
		gain := d.level * (droneGain + droneLFODepth*math.Sin(2*math.Pi*droneLFOHz*t))
		samples[i] = [2]float64{v * gain, v * gain}
		d.pos++
	}
	return len(samples), true
}

func (d *drone) Err() error {
	return nil
}

// gate silences a streamer while muted without pausing it.
type gate struct {
	beep.Streamer
	muted *atomic.Bool
}

func (g gate) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.Streamer.Stream(samples)
	if g.muted.Load() {
		for i := range samples[:n] {
			samples[i] = [2]float64{}
		}
	}
	return n, ok
}
