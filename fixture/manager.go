package fixture

import (
	"fmt"
	"sort"
	"sync"

	"github.com/robmorgan/liftoff/config"
	"github.com/robmorgan/liftoff/logger"
	"github.com/sirupsen/logrus"
)

// Manager is a renderer that turns track outputs into DMX levels for the patched layers.
type Manager struct {
	lock      sync.Mutex
	fixtures  map[string]*Fixture
	dmxState  *DMXState
	unpatched map[string]int
}

// NewManager patches every layer in cfg.
func NewManager(cfg config.Config) (*Manager, error) {
	m := &Manager{
		fixtures:  map[string]*Fixture{},
		dmxState:  NewDMXState(),
		unpatched: map[string]int{},
	}

	for _, p := range cfg.Patch {
		prof, ok := cfg.Profiles[p.Profile]
		if !ok {
			return nil, fmt.Errorf("layer %s uses unknown profile %q", p.Name, p.Profile)
		}
		if _, dup := m.fixtures[p.Name]; dup {
			return nil, fmt.Errorf("layer %s patched twice", p.Name)
		}
		if end := p.Address + prof.ChannelCount() - 1; end > UniverseSize {
			return nil, fmt.Errorf("layer %s ends at channel %d past the universe", p.Name, end)
		}
		m.fixtures[p.Name] = NewFixture(p, prof)
	}

	return m, nil
}

// GetByName returns a patched fixture or nil.
func (m *Manager) GetByName(name string) *Fixture {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.fixtures[name]
}

// Names lists the patched layers in sorted order.
func (m *Manager) Names() []string {
	m.lock.Lock()
	defer m.lock.Unlock()

	out := make([]string, 0, len(m.fixtures))
	for k := range m.fixtures {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// GetDMXState returns the current dmx state
func (m *Manager) GetDMXState() *DMXState {
	return m.dmxState
}

// SetOutput implements track.Renderer. Outputs for layers or keys that are not patched are
// counted and dropped.
func (m *Manager) SetOutput(trackID, key string, value interface{}) {
	m.lock.Lock()
	defer m.lock.Unlock()

	f, ok := m.fixtures[trackID]
	if !ok {
		m.unpatched[trackID+"."+key]++
		return
	}

	ops, err := f.Set(key, value)
	if err != nil {
		m.unpatched[trackID+"."+key]++
		logger := logger.GetProjectLogger()
		logger.WithFields(logrus.Fields{"layer": trackID, "key": key}).WithError(err).Trace("Output not patched")
		return
	}

	if err := m.dmxState.set(ops...); err != nil {
		logger := logger.GetProjectLogger()
		logger.WithFields(logrus.Fields{"layer": trackID, "key": key}).WithError(err).Warn("Failed to set DMX")
	}
}

// Unpatched counts the dropped outputs per "layer.key".
func (m *Manager) Unpatched() map[string]int {
	m.lock.Lock()
	defer m.lock.Unlock()

	out := make(map[string]int, len(m.unpatched))
	for k, v := range m.unpatched {
		out[k] = v
	}
	return out
}
