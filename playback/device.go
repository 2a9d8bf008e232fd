// SPDX-License-Identifier: EPL-2.0

package playback

import "sync/atomic"

// Device is what the coordinator needs to know about the audio output.
type Device interface {
	// SampleRate is the rate buffers are converted to.
	SampleRate() int
	// Active reports whether the output stream is running. Loads are only
	// accepted while it is.
	Active() bool
}

// FixedDevice is a Device with a fixed rate and a switchable active flag.
// The CLI flips it on once the speaker is initialized.
type FixedDevice struct {
	rate   int
	active atomic.Bool
}

func NewFixedDevice(sampleRate int, active bool) *FixedDevice {
	d := &FixedDevice{rate: sampleRate}
	d.active.Store(active)
	return d
}

func (d *FixedDevice) SampleRate() int       { return d.rate }
func (d *FixedDevice) Active() bool          { return d.active.Load() }
func (d *FixedDevice) SetActive(active bool) { d.active.Store(active) }
