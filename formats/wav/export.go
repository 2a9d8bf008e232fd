// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/utils"
)

// Encoding selects the sample format written by Export.
type Encoding int

const (
	// Float32 writes 32-bit IEEE float samples (WAVE format tag 3).
	Float32 Encoding = iota
	// PCM16 writes 16-bit signed integer samples.
	PCM16
	// PCM24 writes 24-bit signed integer samples.
	PCM24
)

func (e Encoding) String() string {
	switch e {
	case Float32:
		return "float32"
	case PCM16:
		return "pcm16"
	case PCM24:
		return "pcm24"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// Export writes every frame of buf as a WAV file declared at sampleRate,
// over the buffer's channel count.
func Export(w io.WriteSeeker, buf *audio.Buffer, sampleRate int, enc Encoding) error {
	if buf == nil {
		return ErrNoBuffer
	}
	return ExportRange(w, buf, 0, buf.Frames(), sampleRate, enc)
}

// ExportRange writes frames [from, to) of buf.
func ExportRange(w io.WriteSeeker, buf *audio.Buffer, from, to, sampleRate int, enc Encoding) error {
	if buf == nil || buf.Channels() == 0 {
		return ErrNoBuffer
	}
	if from < 0 || to > buf.Frames() || from > to {
		return fmt.Errorf("[%d, %d) of %d frames: %w", from, to, buf.Frames(), ErrInvalidRange)
	}
	if from == to {
		return ErrNoBuffer
	}

	var bitDepth, tag int
	switch enc {
	case Float32:
		bitDepth, tag = 32, formatIEEEFloat
	case PCM16:
		bitDepth, tag = 16, formatPCM
	case PCM24:
		bitDepth, tag = 24, formatPCM
	default:
		return fmt.Errorf("%v: %w", enc, ErrUnsupportedEncoding)
	}

	channels := buf.Channels()
	encoder := wav.NewEncoder(w, sampleRate, bitDepth, channels, tag)

	// Write in chunks to bound the int staging buffer.
	const chunkFrames = 8192
	samples := buf.Samples()[from*channels : to*channels]
	staging := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, min(len(samples), chunkFrames*channels)),
		SourceBitDepth: bitDepth,
	}

	for i := 0; i < len(samples); i += chunkFrames * channels {
		chunk := samples[i:min(i+chunkFrames*channels, len(samples))]
		staging.Data = staging.Data[:len(chunk)]

		for j, s := range chunk {
			if enc == Float32 {
				// The encoder writes 32-bit values verbatim, so pass the IEEE bits through.
				staging.Data[j] = int(int32(math.Float32bits(s)))
			} else {
				staging.Data[j] = utils.FloatToPCM(s, bitDepth)
			}
		}

		if err := encoder.Write(staging); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
