// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/ik5/audloop/audio"
)

const (
	// minChunk is the smallest read handed to a source, in samples.
	minChunk = 4096
	// maxEmptyReads bounds how many (0, nil) reads are tolerated in a row.
	maxEmptyReads = 64
	// maxSamplesPerByte bounds how much of a reported frame count is
	// preallocated, relative to the file size. Compressed formats that
	// decode to more than this grow on demand.
	maxSamplesPerByte = 32
)

// Options tunes a Loader. The zero value is usable.
type Options struct {
	// MaxSamples caps any single sample allocation. Zero means
	// audio.DefaultMaxSamples.
	MaxSamples int
	// Logger receives diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// Loader decodes whole files into memory and adapts them to the device rate.
// It has no side effects besides logging, so it is safe to run on any
// goroutine. A Loader may be used concurrently.
type Loader struct {
	reg        *audio.Registry
	maxSamples int
	log        *slog.Logger
}

// New returns a Loader that picks decoders from reg by file extension.
func New(reg *audio.Registry, opts Options) *Loader {
	maxSamples := opts.MaxSamples
	if maxSamples <= 0 {
		maxSamples = audio.DefaultMaxSamples
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Loader{
		reg:        reg,
		maxSamples: maxSamples,
		log:        log,
	}
}

// Supported reports whether a decoder is registered for path's extension.
func (l *Loader) Supported(path string) bool {
	_, ok := l.reg.ForPath(path)
	return ok
}

// Load opens path, decodes every frame and converts the result to
// deviceRate.
//
// Errors wrap audio.ErrOpen, audio.ErrUnsupportedChannelLayout,
// audio.ErrAllocation or audio.ErrResample. A successful result always
// holds at least one frame.
func (l *Loader) Load(path string, deviceRate int) (*audio.Buffer, error) {
	dec, ok := l.reg.ForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w %q: %w", audio.ErrOpen, path, ErrNoDecoder)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrOpen, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", audio.ErrOpen, path, err)
	}
	defer src.Close()

	channels := src.Channels()
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%q has %d channels: %w", path, channels, audio.ErrUnsupportedChannelLayout)
	}

	rate := src.SampleRate()
	if rate <= 0 {
		return nil, fmt.Errorf("%w %q: invalid sample rate %d", audio.ErrOpen, path, rate)
	}

	reported := 0
	if fc, ok := src.(audio.FrameCounter); ok {
		reported = fc.Frames()
	}

	var fileSize int64
	if fi, err := f.Stat(); err == nil {
		fileSize = fi.Size()
	}

	samples, err := l.decodeAll(path, src, channels, reported, fileSize)
	if err != nil {
		return nil, err
	}

	buf, err := audio.NewBuffer(samples, channels, rate)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", audio.ErrOpen, path, err)
	}

	l.log.Debug("decoded file",
		"path", path,
		"frames", buf.Frames(),
		"reported_frames", reported,
		"channels", channels,
		"sample_rate", rate,
	)

	out, err := audio.AdaptLimit(buf, deviceRate, l.maxSamples)
	if err != nil {
		buf.Release()
		return nil, fmt.Errorf("%q: %w", path, err)
	}

	return out, nil
}

// decodeAll reads src to the end. Storage is sized from the reported frame
// count when there is one and grown when the source delivers more; a short
// read truncates to what actually arrived.
func (l *Loader) decodeAll(path string, src audio.Source, channels, reported int, fileSize int64) ([]float32, error) {
	chunk := max(src.BufSize(), minChunk)
	chunk -= chunk % channels

	samples, err := audio.AllocSamples(l.initialSize(reported, channels, chunk, fileSize), l.maxSamples)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}

	var spill []float32
	filled, empty := 0, 0
	for {
		// Once the reported size is used up, read into a scratch chunk so an
		// accurate header never pays for a grow.
		dst := samples[filled:min(filled+chunk, len(samples))]
		if len(dst) == 0 {
			if spill == nil {
				spill = make([]float32, chunk)
			}
			dst = spill
		}

		n, err := src.ReadSamples(dst)
		if n > 0 && len(samples) == filled {
			grown, gerr := l.grow(samples, filled+n, channels)
			if gerr != nil {
				return nil, fmt.Errorf("%q: %w", path, gerr)
			}
			samples = grown
			copy(samples[filled:], spill[:n])
		}
		filled += n

		if err == io.EOF {
			break
		}
		if err != nil {
			if filled < channels {
				return nil, fmt.Errorf("%w %q: %w", audio.ErrOpen, path, err)
			}
			// Keep what decoded cleanly, like a short read.
			l.log.Warn("decode stopped early", "path", path, "frames", filled/channels, "error", err)
			break
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, fmt.Errorf("%w %q: %w", audio.ErrOpen, path, io.ErrNoProgress)
			}
			continue
		}
		empty = 0
	}

	frames := filled / channels
	if frames == 0 {
		return nil, fmt.Errorf("%w %q: %w", audio.ErrOpen, path, ErrNoFrames)
	}

	if reported > 0 && frames != reported {
		l.log.Debug("frame count differs from header", "path", path, "reported", reported, "read", frames)
	}

	return slices.Clip(samples[:frames*channels]), nil
}

// initialSize is the first allocation for decodeAll, in samples. A header
// can claim any frame count, so the reported size is capped by what the file
// could hold and by the sample limit; anything beyond that is grown into.
func (l *Loader) initialSize(reported, channels, chunk int, fileSize int64) int {
	size := int64(reported) * int64(channels)
	if fileSize > 0 {
		size = min(size, fileSize*maxSamplesPerByte)
	}
	size = min(size, int64(l.maxSamples))
	size -= size % int64(channels)
	if size <= 0 {
		return chunk
	}
	return int(size)
}

// grow doubles the sample storage to hold at least need samples, bounded by
// the configured limit rounded down to whole frames.
func (l *Loader) grow(samples []float32, need, channels int) ([]float32, error) {
	limit := l.maxSamples - l.maxSamples%channels
	if need > limit {
		return nil, fmt.Errorf("more than %d samples: %w", limit, audio.ErrAllocation)
	}

	size := min(max(2*len(samples), need), limit)
	grown, err := audio.AllocSamples(size, l.maxSamples)
	if err != nil {
		return nil, err
	}
	copy(grown, samples)

	return grown, nil
}
