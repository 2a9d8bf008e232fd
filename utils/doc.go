// SPDX-License-Identifier: EPL-2.0

// Package utils holds the per-sample arithmetic shared by the decoders, the
// resampler and the WAV exporter.
package utils
