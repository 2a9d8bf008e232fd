// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC audio through github.com/gopxl/beep/v2/flac.
//
// beep streams stereo float64 pairs; the source converts them to interleaved
// float32 and drops the duplicated channel for mono files. Files with more
// than two channels are rejected with audio.ErrUnsupportedChannelLayout.
package flac
