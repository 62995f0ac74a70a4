package track

import (
	"sort"
	"sync"
)

// Output is a single renderer write.
type Output struct {
	TrackID string
	Key     string
	Value   interface{}
}

// Recorder is an in-memory Renderer and Sound. It keeps the latest value of every slot plus a
// journal of writes and triggers that can be drained. It is safe for concurrent use.
type Recorder struct {
	lock     sync.Mutex
	slots    map[string]map[string]interface{}
	levels   map[string]float64
	journal  []Output
	triggers []string
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		slots:  map[string]map[string]interface{}{},
		levels: map[string]float64{},
	}
}

// SetOutput implements Renderer.
func (r *Recorder) SetOutput(trackID, key string, value interface{}) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.slots[trackID] == nil {
		r.slots[trackID] = map[string]interface{}{}
	}
	r.slots[trackID][key] = value
	r.journal = append(r.journal, Output{TrackID: trackID, Key: key, Value: value})
}

// Trigger implements Sound.
func (r *Recorder) Trigger(soundID string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.triggers = append(r.triggers, soundID)
}

// SetContinuous implements Sound.
func (r *Recorder) SetContinuous(soundID string, level float64) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.levels[soundID] = level
}

// Value returns the latest value written to a slot.
func (r *Recorder) Value(trackID, key string) (interface{}, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	v, ok := r.slots[trackID][key]
	return v, ok
}

// Level returns the latest continuous level of a sound.
func (r *Recorder) Level(soundID string) float64 {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.levels[soundID]
}

// Slots lists every written track id in sorted order.
func (r *Recorder) Slots() []string {
	r.lock.Lock()
	defer r.lock.Unlock()

	out := make([]string, 0, len(r.slots))
	for k := range r.slots {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Snapshot copies the latest values of a track's slot.
func (r *Recorder) Snapshot(trackID string) map[string]interface{} {
	r.lock.Lock()
	defer r.lock.Unlock()

	out := make(map[string]interface{}, len(r.slots[trackID]))
	for k, v := range r.slots[trackID] {
		out[k] = v
	}
	return out
}

// Drain returns and clears the journal of writes and triggers. Latest slot values are kept.
func (r *Recorder) Drain() ([]Output, []string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	writes, triggers := r.journal, r.triggers
	r.journal, r.triggers = nil, nil
	return writes, triggers
}
