// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 audio using github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo, so the source reports two channels
// even for mono files. When the input is seekable the source knows its frame
// count up front and implements audio.FrameCounter; otherwise Frames
// returns 0 and the caller reads until io.EOF.
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
package mp3
