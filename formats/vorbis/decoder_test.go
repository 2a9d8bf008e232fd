// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"io"
	"testing"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing. Like the
// real reader it counts values, not frames.
type mockOggVorbisReader struct {
	sampleRate   int
	channels     int
	samples      []float32
	offset       int
	returnErrors bool
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }
func (m *mockOggVorbisReader) Length() int64   { return int64(len(m.samples) / m.channels) }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(buf, m.samples[m.offset:])
	n -= n % m.channels
	m.offset += n

	return n, nil
}

func newMockSource(channels int, samples []float32) *source {
	r := &mockOggVorbisReader{sampleRate: 48000, channels: channels, samples: samples}
	return &source{
		dec:        r,
		sampleRate: r.sampleRate,
		channels:   channels,
		frames:     int(r.Length()),
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := map[string][]byte{
		"text":  []byte("This is not Ogg Vorbis data"),
		"empty": {},
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newMockSource(2, make([]float32, 100))

	if src.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.Frames() != 50 {
		t.Errorf("Frames() = %d, want 50", src.Frames())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  []float32
		bufLen   int
		wantN    int
	}{
		{"mono", 1, []float32{0.1, 0.2, 0.3}, 8, 3},
		{"stereo", 2, []float32{0.1, -0.1, 0.2, -0.2}, 8, 4},
		{"stereo odd dst", 2, []float32{0.1, -0.1, 0.2, -0.2}, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newMockSource(tt.channels, tt.samples)
			buf := make([]float32, tt.bufLen)

			n, err := src.ReadSamples(buf)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != tt.wantN {
				t.Fatalf("ReadSamples() n = %d, want %d", n, tt.wantN)
			}
			for i := range n {
				if buf[i] != tt.samples[i] {
					t.Errorf("sample %d = %v, want %v", i, buf[i], tt.samples[i])
				}
			}
		})
	}
}

func TestSource_ReadSamples_EOF(t *testing.T) {
	t.Parallel()

	src := newMockSource(1, []float32{0.5})
	buf := make([]float32, 4)

	if n, _ := src.ReadSamples(buf); n != 1 {
		t.Fatalf("first ReadSamples() n = %d, want 1", n)
	}
	if n, err := src.ReadSamples(buf); n != 0 || err != io.EOF {
		t.Errorf("second ReadSamples() = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestSource_ReadSamples_TooSmallDst(t *testing.T) {
	t.Parallel()

	src := newMockSource(2, []float32{0.1, 0.2})
	if n, err := src.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples() = %d, %v, want 0, nil", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newMockSource(1, []float32{0.1})
	src.dec.(*mockOggVorbisReader).returnErrors = true

	if _, err := src.ReadSamples(make([]float32, 4)); err != io.ErrUnexpectedEOF {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]float32, 48000*2)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src := newMockSource(2, samples)
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
