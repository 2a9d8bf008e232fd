// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"fmt"

	"github.com/ik5/audloop/audio"
)

// Example_adapt converts a stereo clip to the device sample rate.
func Example_adapt() {
	samples := make([]float32, 88200*2) // 2 seconds of stereo at 44.1kHz
	buf, err := audio.NewBuffer(samples, 2, 44100)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	out, err := audio.Adapt(buf, 48000)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Frames: %d\n", out.Frames())
	fmt.Printf("Channels: %d\n", out.Channels())
	fmt.Printf("Sample rate: %d Hz\n", out.SampleRate())
	fmt.Printf("Input released: %v\n", buf.Empty())
	// Output:
	// Frames: 96000
	// Channels: 2
	// Sample rate: 48000 Hz
	// Input released: true
}

// Example_identity shows that matching rates skip conversion entirely.
func Example_identity() {
	buf, _ := audio.NewBuffer(make([]float32, 1000), 1, 48000)

	out, _ := audio.Adapt(buf, 48000)

	fmt.Printf("Same buffer: %v\n", out == buf)
	// Output:
	// Same buffer: true
}

// Example_errorHandling shows a degenerate rate being rejected.
func Example_errorHandling() {
	buf, _ := audio.NewBuffer(make([]float32, 1000), 1, 44100)

	_, err := audio.Adapt(buf, 0)

	fmt.Printf("Resample failure: %v\n", errors.Is(err, audio.ErrResample))
	fmt.Printf("Input kept: %d frames\n", buf.Frames())
	// Output:
	// Resample failure: true
	// Input kept: 1000 frames
}
