// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"github.com/gopxl/beep/v2"
)

// BoundaryNotifier is told when playback runs off either end of the buffer.
// ReachedBoundary is called from the real-time goroutine and must not block.
type BoundaryNotifier interface {
	ReachedBoundary()
}

// Streamer plays a Cursor as an endless beep.Streamer. The clip loops; each
// time it wraps the notifier hears about it.
//
// Stream takes one Playhead snapshot per call and does not lock or allocate.
type Streamer struct {
	cursor *Cursor
	notify BoundaryNotifier
}

var _ beep.Streamer = (*Streamer)(nil)

// NewStreamer returns a streamer over c. notify may be nil.
func NewStreamer(c *Cursor, notify BoundaryNotifier) *Streamer {
	return &Streamer{cursor: c, notify: notify}
}

func (s *Streamer) Stream(samples [][2]float64) (int, bool) {
	h := s.cursor.Acquire()
	frames := h.Frames()

	if !h.Ready() || frames == 0 || s.cursor.Paused() {
		clear(samples)
		return len(samples), true
	}

	data := h.Buffer().Samples()
	channels := h.Buffer().Channels()
	gain := float64(s.cursor.Gain())
	backward := s.cursor.Direction() == Backward

	start := h.Position()
	pos := min(max(start, 0), frames)
	wrapped := false

	for i := range samples {
		if backward {
			if pos <= 0 {
				pos = frames
				wrapped = true
			}
			pos--
		} else if pos >= frames {
			pos = 0
			wrapped = true
		}

		off := pos * channels
		left := float64(data[off])
		right := left
		if channels == 2 {
			right = float64(data[off+1])
		}
		samples[i][0] = left * gain
		samples[i][1] = right * gain

		if !backward {
			pos++
		}
	}

	h.Advance(start, pos)

	if wrapped && s.notify != nil {
		s.notify.ReachedBoundary()
	}

	return len(samples), true
}

func (s *Streamer) Err() error { return nil }
