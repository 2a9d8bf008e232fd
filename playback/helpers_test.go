// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/playlist"
)

var errLoadFailed = errors.New("simulated load failure")

// fakeLoader builds buffers from the path: "name:frames:channels". Paths
// starting with "fail" fail. While gate is non-nil every load waits for a
// value from it.
type fakeLoader struct {
	gate chan struct{}

	mu     sync.Mutex
	loaded []string

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeLoader) Load(path string, rate int) (*audio.Buffer, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxInFlight.Load()
		if n <= m || f.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}

	if f.gate != nil {
		<-f.gate
	}

	f.mu.Lock()
	f.loaded = append(f.loaded, path)
	f.mu.Unlock()

	if strings.HasPrefix(path, "fail") {
		return nil, errLoadFailed
	}

	frames, channels := parseFake(path)
	return filledBuffer(frames, channels, rate), nil
}

func (f *fakeLoader) Loaded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.loaded...)
}

func parseFake(path string) (frames, channels int) {
	frames, channels = 100, 2
	parts := strings.Split(path, ":")
	if len(parts) == 3 {
		frames = atoi(parts[1])
		channels = atoi(parts[2])
	}
	return frames, channels
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// filledBuffer returns a buffer whose every sample equals its frame count,
// so a reader can tell whether samples and metadata belong together.
func filledBuffer(frames, channels, rate int) *audio.Buffer {
	samples := make([]float32, frames*channels)
	for i := range samples {
		samples[i] = float32(frames)
	}
	buf, err := audio.NewBuffer(samples, channels, rate)
	if err != nil {
		panic(err)
	}
	return buf
}

// rampBuffer returns a buffer whose frame i holds i on every channel.
func rampBuffer(frames, channels int) *audio.Buffer {
	samples := make([]float32, frames*channels)
	for i := range frames {
		for c := range channels {
			samples[i*channels+c] = float32(i)
		}
	}
	buf, _ := audio.NewBuffer(samples, channels, 48000)
	return buf
}

// recorder is an Observer that keeps everything it hears.
type recorder struct {
	mu         sync.Mutex
	published  []Result
	superseded []Result
	advanced   []int
}

func (r *recorder) observer() ObserverFuncs {
	return ObserverFuncs{
		OnPublished: func(res Result) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.published = append(r.published, res)
		},
		OnSuperseded: func(res Result) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.superseded = append(r.superseded, res)
		},
		OnAdvanced: func(i int, _ playlist.Entry) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.advanced = append(r.advanced, i)
		},
	}
}

func (r *recorder) Published() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Result(nil), r.published...)
}

func (r *recorder) Superseded() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Result(nil), r.superseded...)
}

func (r *recorder) Advanced() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.advanced...)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// eventually polls cond until it holds or a second passes.
func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}
