// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
)

// Adapt converts buf to targetRate.
//
// When the rates already match, buf itself is returned. Otherwise a new
// buffer of round(frames*targetRate/srcRate) frames is built and buf is
// released once the new one is complete. On error the result is nil and buf
// is left untouched, so the caller still owns it.
func Adapt(buf *Buffer, targetRate int) (*Buffer, error) {
	return AdaptLimit(buf, targetRate, DefaultMaxSamples)
}

// AdaptLimit is Adapt with a cap on the number of output samples.
func AdaptLimit(buf *Buffer, targetRate, maxSamples int) (*Buffer, error) {
	if buf == nil {
		return nil, fmt.Errorf("nil buffer: %w", ErrResample)
	}
	if buf.sampleRate == targetRate && targetRate > 0 {
		return buf, nil
	}
	if buf.sampleRate <= 0 || targetRate <= 0 {
		return nil, fmt.Errorf("%d Hz -> %d Hz: %w", buf.sampleRate, targetRate, ErrResample)
	}

	r := NewResampler(buf.sampleRate, targetRate, buf.channels)
	frames := r.OutputFrames(buf.frames)
	if frames <= 0 {
		return nil, fmt.Errorf("%d frames at %d Hz -> %d Hz yields no output: %w",
			buf.frames, buf.sampleRate, targetRate, ErrResample)
	}

	samples, err := allocSamples(frames*buf.channels, maxSamples)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResample, err)
	}

	if err := r.Process(samples, buf.samples); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResample, err)
	}

	out := &Buffer{
		samples:    samples,
		channels:   buf.channels,
		frames:     frames,
		sampleRate: targetRate,
	}
	buf.Release()

	return out, nil
}
