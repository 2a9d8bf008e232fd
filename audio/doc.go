// SPDX-License-Identifier: EPL-2.0

// Package audio provides the in-memory audio primitives used by the looper.
//
// This package contains:
//   - Source interface for streaming decoder output
//   - Registry mapping file extensions to decoders
//   - Buffer, a fully decoded interleaved clip with single-owner semantics
//   - Adapt, converting a Buffer to the playback device's sample rate
//   - the sentinel errors of the load path
//
// # Source Interface
//
// Format decoders stream interleaved float32 samples through Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Sources that know their length up front also implement FrameCounter,
// which lets the loader size the Buffer before decoding.
//
// # Buffers
//
// A Buffer holds channels (1 or 2) interleaved samples per frame:
//
//	buf, err := audio.NewBuffer(samples, 2, 44100)
//	fmt.Println(buf.Frames(), buf.Channels(), buf.SampleRate())
//
// Ownership moves with the pointer. The adapter releases its input once the
// converted copy is complete; a published buffer is read-only.
//
// # Sample Rate Adaptation
//
// Adapt returns the input unchanged when the rates match, and otherwise a
// new buffer of round(frames*target/source) frames built with Catmull-Rom
// interpolation:
//
//	out, err := audio.Adapt(buf, 48000)
//	if errors.Is(err, audio.ErrResample) {
//	    // buf is still valid and still owned by the caller
//	}
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// # Error Handling
//
// Load path failures are reported with ErrOpen, ErrUnsupportedChannelLayout,
// ErrAllocation and ErrResample. They are always wrapped, so test with
// errors.Is.
package audio
