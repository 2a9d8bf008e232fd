// SPDX-License-Identifier: EPL-2.0

//go:build (linux && cgo) || windows || darwin

package main

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/ik5/audloop/playback"
)

// audioAvailable reports whether this build can open a sound device.
const audioAvailable = true

// openSpeaker initializes the output device at rate with the given buffer.
func openSpeaker(rate int, buffer time.Duration) (*playback.FixedDevice, error) {
	sr := beep.SampleRate(rate)
	if err := speaker.Init(sr, sr.N(buffer)); err != nil {
		return nil, fmt.Errorf("initializing speaker at %d Hz: %w", rate, err)
	}
	return playback.NewFixedDevice(rate, true), nil
}

func startOutput(st beep.Streamer) {
	speaker.Play(st)
}

func closeSpeaker(dev *playback.FixedDevice) {
	dev.SetActive(false)
	speaker.Clear()
	speaker.Close()
}
