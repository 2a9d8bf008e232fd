// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio using github.com/jfreymuth/oggvorbis.
//
// Samples come out as interleaved float32 in [-1.0, 1.0] with the file's own
// channel count and rate. Seekable inputs report their length through
// audio.FrameCounter.
package vorbis
