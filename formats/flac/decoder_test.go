// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/ik5/audloop/audio"
)

// mockStreamer plays back fixed stereo pairs.
type mockStreamer struct {
	pairs  [][2]float64
	pos    int
	err    error
	closed bool
}

func (m *mockStreamer) Stream(samples [][2]float64) (int, bool) {
	if m.pos >= len(m.pairs) {
		return 0, false
	}
	n := copy(samples, m.pairs[m.pos:])
	m.pos += n
	return n, true
}

func (m *mockStreamer) Err() error   { return m.err }
func (m *mockStreamer) Len() int     { return len(m.pairs) }
func (m *mockStreamer) Close() error { m.closed = true; return nil }

func format(channels int) beep.Format {
	return beep.Format{SampleRate: 44100, NumChannels: channels, Precision: 2}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("not flac at all")))
	if !errors.Is(err, ErrNotFlacFile) {
		t.Errorf("Decode() error = %v, want ErrNotFlacFile", err)
	}
}

func TestNewSource_Metadata(t *testing.T) {
	t.Parallel()

	src, err := newSource(&mockStreamer{pairs: make([][2]float64, 10)}, format(2))
	if err != nil {
		t.Fatalf("newSource() error = %v", err)
	}

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.Frames() != 10 {
		t.Errorf("Frames() = %d, want 10", src.Frames())
	}
}

func TestNewSource_RejectsSurround(t *testing.T) {
	t.Parallel()

	st := &mockStreamer{}
	_, err := newSource(st, format(6))
	if !errors.Is(err, audio.ErrUnsupportedChannelLayout) {
		t.Errorf("newSource() error = %v, want ErrUnsupportedChannelLayout", err)
	}
	if !st.closed {
		t.Error("streamer not closed after rejection")
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	pairs := [][2]float64{{0.1, 0.1}, {0.2, 0.2}, {0.3, 0.3}}

	tests := []struct {
		name     string
		channels int
		want     []float32
	}{
		{"mono", 1, []float32{0.1, 0.2, 0.3}},
		{"stereo", 2, []float32{0.1, 0.1, 0.2, 0.2, 0.3, 0.3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := newSource(&mockStreamer{pairs: pairs}, format(tt.channels))
			if err != nil {
				t.Fatalf("newSource() error = %v", err)
			}

			buf := make([]float32, 16)
			n, err := src.ReadSamples(buf)
			if err != io.EOF {
				t.Errorf("ReadSamples() error = %v, want io.EOF", err)
			}
			if n != len(tt.want) {
				t.Fatalf("ReadSamples() n = %d, want %d", n, len(tt.want))
			}
			for i, w := range tt.want {
				if buf[i] != w {
					t.Errorf("sample %d = %v, want %v", i, buf[i], w)
				}
			}

			if n, err := src.ReadSamples(buf); n != 0 || err != io.EOF {
				t.Errorf("ReadSamples() after end = %d, %v, want 0, io.EOF", n, err)
			}
		})
	}
}

func TestSource_ReadSamples_StreamError(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken frame")
	src, err := newSource(&mockStreamer{pairs: make([][2]float64, 4), err: errBroken}, format(2))
	if err != nil {
		t.Fatalf("newSource() error = %v", err)
	}

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, errBroken) {
		t.Errorf("ReadSamples() error = %v, want %v", err, errBroken)
	}
}

func TestSource_Close(t *testing.T) {
	t.Parallel()

	st := &mockStreamer{}
	src, _ := newSource(st, format(1))
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !st.closed {
		t.Error("Close() did not close the streamer")
	}
}
