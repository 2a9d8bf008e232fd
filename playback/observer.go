// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/playlist"
)

// Result describes how a load request settled.
type Result struct {
	Seq  uint64
	Path string
	// Buffer is what was published. On failure it is the empty buffer, or
	// the retained previous one under RetainOnFailure. Nil for requests
	// that never ran.
	Buffer *audio.Buffer
	Err    error
}

// Frames of the published buffer.
func (r Result) Frames() int {
	if r.Buffer == nil {
		return 0
	}
	return r.Buffer.Frames()
}

// Channels of the published buffer.
func (r Result) Channels() int {
	if r.Buffer == nil {
		return 0
	}
	return r.Buffer.Channels()
}

// Samples is a read-only view of the published samples, for waveform
// displays.
func (r Result) Samples() []float32 {
	if r.Buffer == nil {
		return nil
	}
	return r.Buffer.Samples()
}

// Observer receives playback events. Calls arrive from the coordinator's
// worker or the session goroutine, never from the real-time consumer, and
// should return promptly.
type Observer interface {
	// Published follows every load that ran, successful or not.
	Published(Result)
	// Superseded reports a request that was replaced or dropped at
	// shutdown before it ran. Result.Err says which.
	Superseded(Result)
	// Advanced reports the entry chosen when a clip end moved the playlist on.
	Advanced(index int, entry playlist.Entry)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnPublished  func(Result)
	OnSuperseded func(Result)
	OnAdvanced   func(int, playlist.Entry)
}

func (o ObserverFuncs) Published(r Result) {
	if o.OnPublished != nil {
		o.OnPublished(r)
	}
}

func (o ObserverFuncs) Superseded(r Result) {
	if o.OnSuperseded != nil {
		o.OnSuperseded(r)
	}
}

func (o ObserverFuncs) Advanced(i int, e playlist.Entry) {
	if o.OnAdvanced != nil {
		o.OnAdvanced(i, e)
	}
}
