// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	beepflac "github.com/gopxl/beep/v2/flac"
	"github.com/ik5/audloop/audio"
)

// streamer is the part of beep.StreamSeekCloser the source reads from.
type streamer interface {
	Stream(samples [][2]float64) (n int, ok bool)
	Err() error
	Len() int
	Close() error
}

// source adapts a beep streamer, which always yields stereo pairs, to the
// interleaved audio.Source contract. Mono files keep one channel.
type source struct {
	st         streamer
	sampleRate int
	channels   int
	frames     int
	pairs      [][2]float64
	done       bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Frames() int     { return s.frames }
func (s *source) Close() error    { return s.st.Close() }
func (s *source) BufSize() int {
	if cap(s.pairs) > 0 {
		return cap(s.pairs) * s.channels
	}
	return 4096
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) / s.channels
	if want == 0 {
		return 0, nil
	}
	if s.done {
		return 0, io.EOF
	}

	if cap(s.pairs) < want {
		s.pairs = make([][2]float64, want)
	}
	s.pairs = s.pairs[:want]

	n, ok := s.st.Stream(s.pairs)
	if !ok || n < want {
		s.done = true
	}

	for i := range n {
		if s.channels == 1 {
			dst[i] = float32(s.pairs[i][0])
			continue
		}
		dst[2*i] = float32(s.pairs[i][0])
		dst[2*i+1] = float32(s.pairs[i][1])
	}

	if err := s.st.Err(); err != nil {
		return n * s.channels, fmt.Errorf("%w", err)
	}
	if s.done {
		return n * s.channels, io.EOF
	}

	return n * s.channels, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	st, format, err := beepflac.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	return newSource(st, format)
}

func newSource(st streamer, format beep.Format) (*source, error) {
	if format.NumChannels < 1 || format.NumChannels > 2 {
		_ = st.Close()
		return nil, fmt.Errorf("%d channels: %w", format.NumChannels, audio.ErrUnsupportedChannelLayout)
	}

	return &source{
		st:         st,
		sampleRate: int(format.SampleRate),
		channels:   format.NumChannels,
		frames:     st.Len(),
	}, nil
}
