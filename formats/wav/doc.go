// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and export.
//
// Decoding and encoding are built on github.com/go-audio/wav.
//
// # Supported Formats
//
// The decoder accepts:
//   - PCM 8, 16, 24 and 32-bit
//   - IEEE float 32-bit
//   - any channel count and sample rate (the loader rejects more than two channels)
//
// The source also reports the frame count from the data chunk size, so
// callers can size their storage before reading.
//
// # Decoding WAV Files
//
//	file, _ := os.Open("loop.wav")
//	source, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// # Exporting Buffers
//
// Export writes an in-memory audio.Buffer at a caller-chosen sample rate,
// either as 32-bit float or 16-bit PCM:
//
//	out, _ := os.Create("take.wav")
//	err := wav.Export(out, buf, 48000, wav.Float32)
//
// ExportRange writes only frames [from, to).
//
// # Error Handling
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE file
//   - ErrUnsupportedEncoding: a sample format other than PCM or 32-bit float
//   - ErrUnsupportedWavLayout: missing format or data chunk
//   - ErrInvalidRange, ErrNoBuffer: bad export arguments
package wav
