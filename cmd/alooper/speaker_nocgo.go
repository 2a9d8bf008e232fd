// SPDX-License-Identifier: EPL-2.0

//go:build !((linux && cgo) || windows || darwin)

package main

import (
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/ik5/audloop/playback"
)

// audioAvailable is false without cgo: the native sound libraries cannot be
// linked, so play fails early and export still works.
const audioAvailable = false

func openSpeaker(int, time.Duration) (*playback.FixedDevice, error) {
	return nil, errAudioUnavailable
}

func startOutput(beep.Streamer) {}

func closeSpeaker(dev *playback.FixedDevice) {
	if dev != nil {
		dev.SetActive(false)
	}
}
