// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV16 writes samples as a 16-bit PCM WAV file at path. samples are
// interleaved over channels and clipped to [-1, 1].
func WriteWAV16(path string, sampleRate, channels int, samples []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating fixture: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)

	data := make([]int, len(samples))
	for i, s := range samples {
		v := math.Max(-1, math.Min(1, float64(s)))
		data[i] = int(math.Round(v * 32767))
	}

	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding fixture: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finishing fixture: %w", err)
	}

	return f.Close()
}

// SineSamples returns frames frames of an interleaved sine at freq Hz with
// amplitude 0.5 on every channel.
func SineSamples(sampleRate, channels, frames int, freq float64) []float32 {
	out := make([]float32, frames*channels)
	for i := range frames {
		v := float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
		for c := range channels {
			out[i*channels+c] = v
		}
	}
	return out
}
