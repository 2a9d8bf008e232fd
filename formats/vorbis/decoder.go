// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/audloop/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Length() int64
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	frames     int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Frames() int     { return s.frames }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

// ReadSamples fills dst with interleaved samples. oggvorbis counts in values
// (frames * channels) and always returns whole frames, so dst is trimmed to a
// multiple of the channel count.
func (s *source) ReadSamples(dst []float32) (int, error) {
	usable := len(dst) - len(dst)%s.channels
	if usable == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:usable])
	if n == 0 && err == nil {
		return 0, nil
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if dec.Channels() < 1 {
		return nil, fmt.Errorf("%d channels: %w", dec.Channels(), audio.ErrInvalidChannels)
	}

	// Length is per-channel samples, which is frames; 0 means unknown.
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		frames:     int(dec.Length()),
	}, nil
}
