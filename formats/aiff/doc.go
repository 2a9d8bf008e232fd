// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into an audio.Source.
//
// Decoding is delegated to github.com/go-audio/aiff. Signed PCM at 8, 16, 24
// and 32 bits is accepted and normalized to float32 in [-1.0, 1.0]. The
// source also reports its total frame count so callers can size a buffer
// before reading:
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not AIFF
//	}
//	frames := src.(audio.FrameCounter).Frames()
package aiff
