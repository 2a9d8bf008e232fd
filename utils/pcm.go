// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// PCMScale returns 2^(bits-1), the magnitude of the most negative signed
// sample at that bit depth. Depths outside 8..32 are treated as 16-bit.
func PCMScale(bits int) float32 {
	if bits < 8 || bits > 32 {
		bits = 16
	}
	return float32(uint64(1) << (bits - 1))
}

// PCMToFloat maps a signed integer sample onto [-1, 1).
func PCMToFloat(v, bits int) float32 {
	return float32(v) / PCMScale(bits)
}

// FloatToPCM maps x onto a signed integer sample, rounding to nearest.
// x is clamped to [-1, 1] and the result to the symmetric range
// [-(2^(bits-1)-1), 2^(bits-1)-1].
func FloatToPCM(x float32, bits int) int {
	if math.IsNaN(float64(x)) {
		return 0
	}
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	peak := float64(PCMScale(bits)) - 1
	return int(math.Round(float64(x) * peak))
}
