package fixture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robmorgan/liftoff/logger"
	"github.com/sirupsen/logrus"
)

// UniverseSize is the number of channels in a DMX512 universe.
const UniverseSize = 512

// DMXState holds the DMX512 values for each channel
type DMXState struct {
	universes map[int][]byte
	lock      sync.Mutex
}

type dmxOperation struct {
	universe, channel, value int
}

// NewDMXState creates an empty state.
func NewDMXState() *DMXState {
	return &DMXState{universes: map[int][]byte{}}
}

// GetValue returns the level of a channel, 0 for unknown channels.
func (s *DMXState) GetValue(universe, channel int) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	if channel < 1 || channel > UniverseSize || s.universes[universe] == nil {
		return 0
	}
	return int(s.universes[universe][channel-1])
}

func (s *DMXState) set(ops ...dmxOperation) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, op := range ops {
		if op.channel < 1 || op.channel > UniverseSize {
			return fmt.Errorf("dmx channel (%d) not in range, op=%v", op.channel, op)
		}

		s.initializeUniverse(op.universe)
		s.universes[op.universe][op.channel-1] = byte(op.value)
	}

	return nil
}

func (s *DMXState) initializeUniverse(universe int) {
	if s.universes[universe] == nil {
		s.universes[universe] = make([]byte, UniverseSize)
	}
}

// Snapshot copies every universe so it can be sent without holding the lock.
func (s *DMXState) Snapshot() map[int][]byte {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make(map[int][]byte, len(s.universes))
	for k, v := range s.universes {
		out[k] = append([]byte(nil), v...)
	}
	return out
}

// OLAClient sends a universe to the OLA daemon.
type OLAClient interface {
	SendDmx(universe int, values []byte) (status bool, err error)
}

// SendDMXWorker sends OLA the current dmxState across all universes until ctx is done.
func SendDMXWorker(ctx context.Context, client OLAClient, tick time.Duration, state *DMXState, wg *sync.WaitGroup) error {
	defer wg.Done()
	defer closeClient(client)

	logger := logger.GetProjectLogger()

	t := time.NewTimer(tick)
	defer t.Stop()
	logger.WithField("tick", tick).Debug("SendDMXWorker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("SendDMXWorker shutdown")
			return ctx.Err()
		case <-t.C:
			for k, v := range state.Snapshot() {
				if _, err := client.SendDmx(k, v); err != nil {
					logger.WithFields(logrus.Fields{"universe": k}).WithError(err).Warn("Failed to send DMX")
				}
			}
			t.Reset(tick)
		}
	}
}

func closeClient(client OLAClient) {
	switch c := client.(type) {
	case interface{ Close() }:
		c.Close()
	case interface{ Close() error }:
		_ = c.Close()
	}
}
