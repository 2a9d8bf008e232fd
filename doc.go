// SPDX-License-Identifier: EPL-2.0

// Package audloop is the core of a looping audio player.
//
// A file is decoded fully into memory, adapted to the playback device's
// sample rate and handed to a real-time consumer without ever blocking it.
// When the clip ends the player can move on through a saved playlist.
//
// The work is split across subpackages:
//
//   - audio: streaming Source/Decoder contracts, the in-memory Buffer and
//     the sample-rate adapter
//   - formats/...: decoders for WAV, AIFF, MP3, Ogg Vorbis and FLAC, plus the
//     WAV export writer
//   - loader: open, validate, decode and adapt a file
//   - playback: the cursor read by the audio callback, the swap coordinator
//     that publishes new buffers, and the session that ties both to a playlist
//   - playlist: the ordered play list and its [PlayList]/[File] store
//
// This package only wires the decoders together:
//
//	reg := audloop.DefaultRegistry()
//	l := loader.New(reg, loader.Options{})
//	buf, err := l.Load("loop.wav", 48000)
package audloop
