package engine

import (
	"context"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// DefaultTickRate is the number of frames per second when none is given.
const DefaultTickRate = 60

// FPS returns the interval between frames at n frames per second.
func FPS(n int) time.Duration {
	if n <= 0 {
		n = DefaultTickRate
	}
	return time.Second / time.Duration(n)
}

// Loop calls onUpdate once per frame from a single goroutine, so updates never overlap.
type Loop struct {
	onUpdate func(delta float64)
	tickRate int
	clock    clock.WithTicker

	lock   sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a frame loop. delta is the time since the previous frame in seconds.
func New(c clock.WithTicker, tickRate int, onUpdate func(delta float64)) *Loop {
	if c == nil {
		c = clock.RealClock{}
	}
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &Loop{
		onUpdate: onUpdate,
		tickRate: tickRate,
		clock:    c,
	}
}

func (l *Loop) startLoop(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer l.detach(done)

	ticker := l.clock.NewTicker(FPS(l.tickRate))
	defer ticker.Stop()

	last := l.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C():
			// DT in seconds
			delta := now.Sub(last).Seconds()
			last = now
			l.onUpdate(delta)
		}
	}
}

// detach forgets the loop that owns done, unless Stop or a restart already replaced it.
func (l *Loop) detach(done chan struct{}) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.done != done {
		return
	}
	l.cancel()
	l.cancel, l.done = nil, nil
}

// GetTickRate returns the frames per second.
func (l *Loop) GetTickRate() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.tickRate
}

// SetTickRate changes the frame rate, restarting the loop if it is running.
func (l *Loop) SetTickRate(ctx context.Context, tickRate int) {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}

	running := l.Running()
	l.Stop()

	l.lock.Lock()
	l.tickRate = tickRate
	l.lock.Unlock()

	if running {
		l.Start(ctx)
	}
}

// Start runs the loop until ctx is done or Stop is called. Starting a running loop is a no-op.
func (l *Loop) Start(ctx context.Context) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	go l.startLoop(ctx, l.done)
}

// Stop halts the loop and waits for the current frame to finish. It is safe to call more than
// once and must not be called from inside onUpdate.
func (l *Loop) Stop() {
	l.lock.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.lock.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the loop goroutine is live. It turns false once Stop is called or
// the context passed to Start is done.
func (l *Loop) Running() bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.cancel != nil
}
