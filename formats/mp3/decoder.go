// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audloop/audio"
)

// go-mp3 always emits 16-bit little-endian stereo, so one frame is 4 bytes.
const bytesPerFrame = 4

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
	Length() int64
}

type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int
	frames     int
	buf        []byte
	// pending holds a trailing odd byte from the previous Read.
	pending []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Frames() int     { return s.frames }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 } // return sample capacity, not bytes

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// Each sample is 2 bytes, so we need len(dst) * 2 bytes
	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	off := copy(s.buf, s.pending)
	s.pending = s.pending[:0]

	n, err := s.dec.Read(s.buf[off:])
	n += off
	if n < 2 {
		s.pending = append(s.pending, s.buf[:n]...)
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	samples := n / 2
	if n%2 == 1 {
		s.pending = append(s.pending, s.buf[n-1])
	}

	for i := range samples {
		low := uint16(s.buf[2*i])
		high := uint16(s.buf[2*i+1])
		val := int16(low | (high << 8))
		dst[i] = float32(val) / 32768.0
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// Length is -1 when r cannot seek; the frame count then stays unknown.
	frames := 0
	if l := dec.Length(); l > 0 {
		frames = int(l / bytesPerFrame)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   2,
		frames:     frames,
		buf:        make([]byte, 8192),
	}, nil
}
