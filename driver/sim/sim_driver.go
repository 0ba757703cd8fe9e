//go:build !tinygo && !baremetal

package sim

import (
	"errors"
	"sync"
	"time"

	"github.com/careyk007/splitwire/transport"
)

// ErrReadFault is returned by the central port for samples marked with
// FailSample.
var ErrReadFault = errors.New("simulated line read fault")

// Line implements a simulated one-wire data line for host-side testing.
// Both ends run against a virtual microsecond clock instead of wall time:
// the peripheral port records level transitions as it drives the line, and
// the central port samples the recorded waveform at its own virtual time.
// Waits advance the respective clock; nothing sleeps for real.
//
// Deliver replays falling edges into the central's edge callback, running
// each transaction synchronously the way a GPIO interrupt would. Because
// the central's clock only moves inside its own handler, transactions must
// be delivered between transmissions; edges that fall behind the central's
// clock are missed, exactly like edges raised while a real interrupt is
// disabled.
type Line struct {
	mu sync.Mutex

	changes  []change
	txTime   time.Duration
	rxTime   time.Duration
	lastEdge time.Duration

	edgeCb      func()
	edgeEnabled bool

	sampleCount int
	failSamples map[int]struct{}
}

type change struct {
	at    time.Duration
	level bool
}

func NewLine() *Line {
	return &Line{
		lastEdge:    -1,
		failSamples: make(map[int]struct{}),
	}
}

// Peripheral returns the driving end of the line.
func (l *Line) Peripheral() transport.LineDriver { return &peripheralPort{l} }

// Central returns the sampling end of the line.
func (l *Line) Central() transport.LineDriver { return &centralPort{l} }

// Deliver replays recorded falling edges into the central's edge callback.
// Each edge at or after the central's current virtual time fires one
// synchronous callback while the edge interrupt is enabled. It returns the
// number of callbacks fired.
func (l *Line) Deliver() int {
	fired := 0
	for {
		l.mu.Lock()
		from := l.rxTime
		if from <= l.lastEdge {
			from = l.lastEdge + time.Nanosecond
		}
		edge, ok := l.nextFallingEdgeLocked(from)
		cb := l.edgeCb
		enabled := l.edgeEnabled
		if !ok || cb == nil || !enabled {
			l.mu.Unlock()
			return fired
		}
		l.rxTime = edge
		l.lastEdge = edge
		l.mu.Unlock()

		// The callback reacquires the lock through the central port.
		cb()
		fired++
	}
}

// LevelAt reports the line level at virtual time t. The line idles high.
func (l *Line) LevelAt(t time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.levelAtLocked(t)
}

// FailSample marks the n-th central-port sample (0-based, counted across
// the line's lifetime) to fail with ErrReadFault.
func (l *Line) FailSample(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failSamples[n] = struct{}{}
}

// Samples returns how many samples the central port has taken so far.
func (l *Line) Samples() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sampleCount
}

func (l *Line) levelAtLocked(t time.Duration) bool {
	level := true
	for _, c := range l.changes {
		if c.at > t {
			break
		}
		level = c.level
	}
	return level
}

func (l *Line) recordLevelLocked(level bool) {
	last := true
	if n := len(l.changes); n > 0 {
		last = l.changes[n-1].level
	}
	if level == last {
		return
	}
	l.changes = append(l.changes, change{at: l.txTime, level: level})
}

func (l *Line) nextFallingEdgeLocked(from time.Duration) (time.Duration, bool) {
	for _, c := range l.changes {
		if !c.level && c.at >= from {
			return c.at, true
		}
	}
	return 0, false
}

// peripheralPort is the driving end. Edge-interrupt operations are accepted
// and ignored; the peripheral never watches the line.
type peripheralPort struct {
	l *Line
}

func (p *peripheralPort) Configure(mode transport.LineMode) error {
	if mode == transport.LineModeOutput {
		return p.SetLevel(true)
	}
	return nil
}

func (p *peripheralPort) SetLevel(high bool) error {
	p.l.mu.Lock()
	defer p.l.mu.Unlock()
	p.l.recordLevelLocked(high)
	return nil
}

func (p *peripheralPort) ReadLevel() (bool, error) {
	p.l.mu.Lock()
	defer p.l.mu.Unlock()
	return p.l.levelAtLocked(p.l.txTime), nil
}

func (p *peripheralPort) SetEdgeCallback(func()) error { return nil }
func (p *peripheralPort) EnableEdgeInterrupt() error   { return nil }
func (p *peripheralPort) DisableEdgeInterrupt() error  { return nil }

func (p *peripheralPort) Wait(d time.Duration) {
	p.l.mu.Lock()
	defer p.l.mu.Unlock()
	p.l.txTime += d
}

// centralPort is the sampling end. Driving it is accepted and ignored; the
// central never drives the line.
type centralPort struct {
	l *Line
}

func (c *centralPort) Configure(transport.LineMode) error { return nil }

func (c *centralPort) SetLevel(bool) error { return nil }

func (c *centralPort) ReadLevel() (bool, error) {
	c.l.mu.Lock()
	defer c.l.mu.Unlock()

	n := c.l.sampleCount
	c.l.sampleCount++

	if _, fail := c.l.failSamples[n]; fail {
		return false, ErrReadFault
	}
	return c.l.levelAtLocked(c.l.rxTime), nil
}

func (c *centralPort) SetEdgeCallback(fn func()) error {
	c.l.mu.Lock()
	defer c.l.mu.Unlock()
	c.l.edgeCb = fn
	return nil
}

func (c *centralPort) EnableEdgeInterrupt() error {
	c.l.mu.Lock()
	defer c.l.mu.Unlock()
	c.l.edgeEnabled = true
	return nil
}

func (c *centralPort) DisableEdgeInterrupt() error {
	c.l.mu.Lock()
	defer c.l.mu.Unlock()
	c.l.edgeEnabled = false
	return nil
}

func (c *centralPort) Wait(d time.Duration) {
	c.l.mu.Lock()
	defer c.l.mu.Unlock()
	c.l.rxTime += d
}
