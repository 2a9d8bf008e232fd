// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"runtime"
)

// DefaultMaxSamples caps a single allocation at the largest length a
// 32-bit frame index can address.
const DefaultMaxSamples = 1<<31 - 1

// Buffer is a fully decoded, interleaved float32 clip held in memory.
//
// A Buffer has a single owner at a time. Whoever hands it on (the loader to
// the adapter, the adapter to the coordinator) stops using it; the adapter
// calls Release on its input once the converted copy is complete. Once a
// buffer has been published for playback it is treated as read-only and is
// never released explicitly.
type Buffer struct {
	samples    []float32
	channels   int
	frames     int
	sampleRate int
}

// NewBuffer wraps samples as a buffer. channels must be 1 or 2 and
// len(samples) must be a whole number of frames.
func NewBuffer(samples []float32, channels, sampleRate int) (*Buffer, error) {
	if channels < 1 || channels > 2 || len(samples)%channels != 0 {
		return nil, fmt.Errorf("%d channels, %d samples: %w", channels, len(samples), ErrInvalidChannels)
	}

	return &Buffer{
		samples:    samples,
		channels:   channels,
		frames:     len(samples) / channels,
		sampleRate: sampleRate,
	}, nil
}

// EmptyBuffer returns a zero-frame buffer. Playing it yields silence.
func EmptyBuffer(sampleRate int) *Buffer {
	return &Buffer{channels: 1, sampleRate: sampleRate}
}

func (b *Buffer) Channels() int   { return b.channels }
func (b *Buffer) Frames() int     { return b.frames }
func (b *Buffer) SampleRate() int { return b.sampleRate }

// Empty reports whether the buffer holds no frames.
func (b *Buffer) Empty() bool { return b == nil || b.frames == 0 }

// Samples returns the interleaved sample storage. Callers must not modify it.
func (b *Buffer) Samples() []float32 { return b.samples }

// Frame returns the samples of frame i.
func (b *Buffer) Frame(i int) []float32 {
	off := i * b.channels
	return b.samples[off : off+b.channels]
}

// Release drops the buffer's storage. The handle reports zero frames afterwards.
func (b *Buffer) Release() {
	b.samples = nil
	b.frames = 0
}

// allocSamples allocates n float32 values, turning oversized or impossible
// requests into ErrAllocation instead of a runtime panic.
func allocSamples(n, limit int) (s []float32, err error) {
	if limit <= 0 {
		limit = DefaultMaxSamples
	}
	if n < 0 || n > limit {
		return nil, fmt.Errorf("%d samples exceeds limit %d: %w", n, limit, ErrAllocation)
	}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); !ok {
				panic(r)
			}
			s = nil
			err = fmt.Errorf("%d samples: %v: %w", n, r, ErrAllocation)
		}
	}()

	return make([]float32, n), nil
}

// AllocSamples is allocSamples for other packages decoding into memory.
func AllocSamples(n, limit int) ([]float32, error) {
	return allocSamples(n, limit)
}
