// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"github.com/ik5/audloop/utils"
)

// Resampler converts an in-memory buffer to another sample rate using cubic
// interpolation. Works on interleaved samples; preserves channel count.
// A one-pole low-pass runs over the input when downsampling.
type Resampler struct {
	srcRate  float64
	dstRate  float64
	ratio    float64 // srcRate / dstRate - how many source frames per output frame
	channels int

	useFilter   bool
	filterAlpha float32
}

func NewResampler(srcRate, dstRate, channels int) *Resampler {
	ratio := float64(srcRate) / float64(dstRate)

	// Simple one-pole low-pass with the cutoff near the destination Nyquist.
	useFilter := ratio > 1.0
	var filterAlpha float32
	if useFilter {
		filterAlpha = 0.5
	}

	return &Resampler{
		srcRate:     float64(srcRate),
		dstRate:     float64(dstRate),
		ratio:       ratio,
		channels:    channels,
		useFilter:   useFilter,
		filterAlpha: filterAlpha,
	}
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }

// OutputFrames is the rounded frame count for srcFrames input frames.
func (r *Resampler) OutputFrames(srcFrames int) int {
	return int(float64(srcFrames)/r.ratio + 0.5)
}

// Process interpolates src (srcFrames interleaved frames) into dst.
// len(dst) must be a multiple of the channel count; every dst frame is written.
func (r *Resampler) Process(dst, src []float32) error {
	if len(dst)%r.channels != 0 || len(src)%r.channels != 0 {
		return ErrInvalidDstSize
	}

	srcFrames := len(src) / r.channels
	dstFrames := len(dst) / r.channels
	if srcFrames == 0 {
		clear(dst)
		return nil
	}

	ch := r.channels
	last := srcFrames - 1

	// at returns the (filtered) sample of channel c at frame i, clamping to the edges.
	at := func(i, c int) float32 {
		if i < 0 {
			i = 0
		} else if i > last {
			i = last
		}
		return src[i*ch+c]
	}

	var filtered []float32
	if r.useFilter {
		filtered = make([]float32, len(src))
		for c := range ch {
			// Seed with the first sample to avoid a warm-up transient.
			state := src[c]
			for i := range srcFrames {
				state = r.filterAlpha*src[i*ch+c] + (1-r.filterAlpha)*state
				filtered[i*ch+c] = state
			}
		}
		at = func(i, c int) float32 {
			if i < 0 {
				i = 0
			} else if i > last {
				i = last
			}
			return filtered[i*ch+c]
		}
	}

	for f := range dstFrames {
		pos := float64(f) * r.ratio
		i := int(pos)
		alpha := float32(pos - float64(i))

		for c := range ch {
			dst[f*ch+c] = utils.CatmullRom(at(i-1, c), at(i, c), at(i+1, c), at(i+2, c), alpha)
		}
	}

	return nil
}
