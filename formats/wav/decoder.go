// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/utils"
)

const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE

	// extensibleFmtSize is the smallest fmt chunk that carries a SubFormat.
	extensibleFmtSize = 40
)

// pcmReader is the part of wav.Decoder the source needs, so tests can fake it.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        pcmReader
	format     *goaudio.Format
	sampleRate int
	channels   int
	bitDepth   int
	float      bool
	frames     int
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Frames() int     { return s.frames }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	if s.float {
		for i := range n {
			dst[i] = math.Float32frombits(uint32(int32(s.intBuf.Data[i])))
		}
	} else {
		for i := range n {
			v := s.intBuf.Data[i]
			if s.bitDepth == 8 {
				// 8-bit WAV is unsigned with a 128 midpoint.
				v -= 128
			}
			dst[i] = utils.PCMToFloat(v, s.bitDepth)
		}
	}

	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}
	if n < len(dst) || err == io.EOF {
		return n, io.EOF
	}

	return n, nil
}

// Decoder reads RIFF/WAVE files: PCM at 8, 16, 24 or 32 bits, and 32-bit
// IEEE float.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	tag := dec.WavAudioFormat
	if tag == formatExtensible {
		sub, err := subFormat(rs)
		if err != nil {
			return nil, err
		}
		tag = sub

		// subFormat walked the chunks itself; start over from the top.
		dec = wav.NewDecoder(rs)
		dec.ReadInfo()
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
	}

	switch tag {
	case formatPCM:
		switch dec.BitDepth {
		case 8, 16, 24, 32:
		default:
			return nil, fmt.Errorf("%d-bit PCM: %w", dec.BitDepth, ErrUnsupportedEncoding)
		}
	case formatIEEEFloat:
		if dec.BitDepth != 32 {
			return nil, fmt.Errorf("%d-bit float: %w", dec.BitDepth, ErrUnsupportedEncoding)
		}
	default:
		return nil, fmt.Errorf("format tag %#x: %w", tag, ErrUnsupportedEncoding)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedWavLayout
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	frameSize := int64(format.NumChannels) * int64(dec.BitDepth/8)
	remaining, err := bytesLeft(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	// Streamed writers leave the data size at 0 or 0xFFFFFFFF, and a
	// truncated file claims more than it holds. Either way the PCM runs to
	// the end of the file.
	size := dec.PCMLen()
	if size <= 0 || size > remaining {
		size = remaining
		dec.PCMChunk.R = io.LimitReader(rs, remaining)
	}
	frames := int(size / frameSize)

	return &source{
		dec:        dec,
		format:     format,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
		float:      tag == formatIEEEFloat,
		frames:     frames,
	}, nil
}

// bytesLeft reports how much of rs lies past the current offset, leaving the
// offset where it was.
func bytesLeft(rs io.Seeker) (int64, error) {
	cur, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := rs.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end - cur, nil
}

// extensibleFmt is the fixed part of a WAVE_FORMAT_EXTENSIBLE fmt chunk up to
// the first two bytes of the SubFormat GUID, which hold the real format tag.
type extensibleFmt struct {
	FormatTag     uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	ExtraSize     uint16
	ValidBits     uint16
	ChannelMask   uint32
	SubFormat     uint16
}

// subFormat returns the format tag carried in the SubFormat GUID of an
// extensible fmt chunk. rs is rewound to the start on return.
func subFormat(rs io.ReadSeeker) (tag uint16, err error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	defer func() {
		if _, serr := rs.Seek(0, io.SeekStart); serr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrNotWavFile, serr)
		}
	}()

	p := riff.New(rs)
	if err := p.ParseHeaders(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	for {
		chunk, err := p.NextChunk()
		if err != nil {
			return 0, fmt.Errorf("%w: no fmt chunk: %w", ErrUnsupportedWavLayout, err)
		}
		if chunk.ID != riff.FmtID {
			chunk.Drain()
			continue
		}
		if chunk.Size < extensibleFmtSize {
			return 0, fmt.Errorf("%w: extensible fmt chunk of %d bytes", ErrUnsupportedWavLayout, chunk.Size)
		}

		var ext extensibleFmt
		if err := chunk.ReadLE(&ext); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
		}
		return ext.SubFormat, nil
	}
}
