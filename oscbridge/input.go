package oscbridge

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/hypebeast/go-osc/osc"
	"github.com/robmorgan/liftoff/logger"
	"github.com/sirupsen/logrus"
)

// ScrollInput is an OSC dispatcher that tracks the latest scroll position sent by a host and
// serves it to the progress source. It accepts
//
//	<prefix>/scroll offset extent
//	<prefix>/reset
//
// Offsets and extents may be sent as float32, float64, int32 or int64.
type ScrollInput struct {
	prefix  string
	onReset func()

	lock     sync.Mutex
	offset   float64
	extent   float64
	messages int
	rejected int
}

// NewScrollInput creates an input. onReset may be nil.
func NewScrollInput(prefix string, onReset func()) *ScrollInput {
	if prefix == "" {
		prefix = "/liftoff"
	}
	return &ScrollInput{prefix: "/" + strings.Trim(prefix, "/"), onReset: onReset}
}

// ScrollPosition implements progress.Reader. Until the first scroll message the extent is 0,
// so the sequencer sees a stale layout.
func (s *ScrollInput) ScrollPosition() (float64, float64) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.offset, s.extent
}

// Counts returns the accepted and rejected message counts.
func (s *ScrollInput) Counts() (accepted, rejected int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.messages, s.rejected
}

// Dispatch implements osc.Dispatcher.
func (s *ScrollInput) Dispatch(packet osc.Packet) {
	switch packet := packet.(type) {
	case *osc.Message:
		s.handle(packet)
	case *osc.Bundle:
		for _, m := range packet.Messages {
			s.handle(m)
		}
		for _, b := range packet.Bundles {
			s.Dispatch(b)
		}
	}
}

func (s *ScrollInput) handle(msg *osc.Message) {
	switch msg.Address {
	case s.prefix + "/scroll":
		offset, extent, err := scrollArgs(msg.Arguments)
		s.lock.Lock()
		if err != nil {
			s.rejected++
			s.lock.Unlock()
			logger.GetProjectLogger().WithFields(logrus.Fields{"address": msg.Address}).WithError(err).Debug("Rejected scroll message")
			return
		}
		s.offset, s.extent = offset, extent
		s.messages++
		s.lock.Unlock()
	case s.prefix + "/reset":
		s.lock.Lock()
		s.messages++
		s.lock.Unlock()
		if s.onReset != nil {
			s.onReset()
		}
	}
}

func scrollArgs(args []interface{}) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("want 2 arguments, got %d", len(args))
	}
	offset, err := number(args[0])
	if err != nil {
		return 0, 0, err
	}
	extent, err := number(args[1])
	if err != nil {
		return 0, 0, err
	}
	return offset, extent, nil
}

func number(arg interface{}) (float64, error) {
	switch v := arg.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("argument %v (%T) is not a number", arg, arg)
}

// Serve listens for OSC on addr until ctx is done.
func Serve(ctx context.Context, addr string, d osc.Dispatcher) error {
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	logger.GetProjectLogger().WithField("addr", conn.LocalAddr().String()).Info("Listening for OSC")

	server := &osc.Server{Addr: addr, Dispatcher: d}
	err = server.Serve(conn)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
