// SPDX-License-Identifier: EPL-2.0

// Package playback is the looping engine: a Cursor read by the real-time
// audio callback, a Coordinator that loads files off that path and swaps
// them in, and a Session that couples both to a playlist.
//
// # Threads
//
// Three kinds of goroutine touch the state:
//
//	audio callback   Streamer.Stream -> Cursor.Acquire, Playhead.Advance
//	control          Session.Open, Cursor.Seek, Cursor.SetGain, ...
//	worker           Coordinator: Loader.Load -> publish
//
// The callback never takes a lock and never allocates. Every publish builds
// a new Playhead (buffer, ready flag, position) and stores it with a single
// atomic pointer write, so one Acquire always yields a buffer together with
// its own frame count and readiness.
//
// # Loading
//
//	s := playback.NewSession(ldr, dev, playback.SessionOptions{})
//	s.Run(ctx)
//	defer s.Close()
//
//	seq, err := s.Open("loop.wav")
//	res, err := s.Wait(ctx, seq)
//
// While a load runs the cursor reports not ready and the callback outputs
// silence. Requests made meanwhile coalesce into a single pending slot:
// the newest wins and the replaced one is reported to Observer.Superseded.
//
// A failed load publishes an empty buffer under DiscardOnFailure, or keeps
// the previous clip under RetainOnFailure.
package playback
