// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestMockSource_ReadsAllFrames(t *testing.T) {
	t.Parallel()

	src := NewRampSource(8000, 2, 5)
	buf := make([]float32, 4)

	var got []float32
	for {
		n, err := src.ReadSamples(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if len(got) != 10 {
		t.Fatalf("read %d samples, want 10", len(got))
	}
	if got[8] != 4 || got[9] != 4 {
		t.Errorf("last frame = %v, want [4 4]", got[8:])
	}
}

func TestMockSource_WithFailure(t *testing.T) {
	t.Parallel()

	src := NewSilentSource(8000, 1, 100).WithFailure(10)
	buf := make([]float32, 64)

	n, err := src.ReadSamples(buf)
	if n != 10 || err != nil {
		t.Fatalf("ReadSamples() = %d, %v, want 10, nil", n, err)
	}
	if _, err := src.ReadSamples(buf); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestWriteWAV16(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fixture.wav")
	if err := WriteWAV16(path, 22050, 3, SineSamples(22050, 3, 100, 440)); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("fixture is not a valid WAV file")
	}
	if dec.NumChans != 3 || dec.SampleRate != 22050 || dec.BitDepth != 16 {
		t.Errorf("header = %d ch, %d Hz, %d bit, want 3 ch, 22050 Hz, 16 bit",
			dec.NumChans, dec.SampleRate, dec.BitDepth)
	}
}
