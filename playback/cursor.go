// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"math"
	"sync/atomic"

	"github.com/ik5/audloop/audio"
)

// Direction is the way the playhead moves through the buffer.
type Direction int32

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Playhead is one published state: a buffer, whether it is ready to play,
// and the read position inside it. The buffer and ready flag never change
// after publication; only the position moves. Every publish creates a new
// Playhead, so a reader holding one always sees a buffer together with the
// readiness and position that belong to it.
type Playhead struct {
	buf   *audio.Buffer
	ready bool
	pos   atomic.Int64
}

func newPlayhead(buf *audio.Buffer, ready bool, pos int) *Playhead {
	h := &Playhead{buf: buf, ready: ready}
	h.pos.Store(int64(pos))
	return h
}

// Buffer returns the published buffer, possibly nil. Its samples are
// read-only.
func (h *Playhead) Buffer() *audio.Buffer { return h.buf }

// Ready reports whether the buffer may be played.
func (h *Playhead) Ready() bool { return h.ready }

// Frames returns the frame count of the buffer, 0 when there is none.
func (h *Playhead) Frames() int {
	if h.buf == nil {
		return 0
	}
	return h.buf.Frames()
}

// Position returns the read position in frames, in [0, Frames()].
func (h *Playhead) Position() int { return int(h.pos.Load()) }

// Advance moves the position from from to to. It fails when the position
// changed in between, which lets a concurrent Seek win over a stale tick.
func (h *Playhead) Advance(from, to int) bool {
	return h.pos.CompareAndSwap(int64(from), int64(to))
}

// Cursor is the playback state read on every real-time tick. Commands from
// the control side and publishes from the coordinator only perform atomic
// stores, so the reader never waits on either.
type Cursor struct {
	head      atomic.Pointer[Playhead]
	paused    atomic.Bool
	direction atomic.Int32
	gain      atomic.Uint32 // float32 bits of the linear gain
}

// NewCursor returns a cursor with nothing loaded, playing forward at unity
// gain.
func NewCursor() *Cursor {
	c := &Cursor{}
	c.head.Store(newPlayhead(nil, false, 0))
	c.gain.Store(math.Float32bits(1))
	return c
}

// Acquire returns the current Playhead. The real-time consumer calls it once
// per callback and works on that snapshot.
func (c *Cursor) Acquire() *Playhead { return c.head.Load() }

func (c *Cursor) Ready() bool   { return c.Acquire().Ready() }
func (c *Cursor) Frames() int   { return c.Acquire().Frames() }
func (c *Cursor) Position() int { return c.Acquire().Position() }

// publish installs a new state in one atomic step.
func (c *Cursor) publish(buf *audio.Buffer, ready bool, pos int) *Playhead {
	h := newPlayhead(buf, ready, pos)
	c.head.Store(h)
	return h
}

func (c *Cursor) Pause()       { c.paused.Store(true) }
func (c *Cursor) Resume()      { c.paused.Store(false) }
func (c *Cursor) Paused() bool { return c.paused.Load() }

// SetDirection changes direction immediately without moving the position.
func (c *Cursor) SetDirection(d Direction) { c.direction.Store(int32(d)) }

func (c *Cursor) Direction() Direction { return Direction(c.direction.Load()) }

// Seek moves the position to round(fraction * frames). fraction is clamped
// to [0, 1]; NaN seeks to the start.
func (c *Cursor) Seek(fraction float64) {
	if math.IsNaN(fraction) || fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	h := c.Acquire()
	h.pos.Store(int64(math.Round(fraction * float64(h.Frames()))))
}

// Rewind moves the position back to the first frame.
func (c *Cursor) Rewind() { c.Acquire().pos.Store(0) }

// SetGain sets the gain from a decibel value as 10^(dB/20).
func (c *Cursor) SetGain(dB float64) {
	c.gain.Store(math.Float32bits(float32(math.Pow(10, dB/20))))
}

// Gain returns the linear gain factor.
func (c *Cursor) Gain() float32 { return math.Float32frombits(c.gain.Load()) }
