// SPDX-License-Identifier: EPL-2.0

package main

import "errors"

var (
	errAudioUnavailable = errors.New("audio output is not available in this build (requires cgo)")
	errNothingToPlay    = errors.New("nothing to play: give files or --playlist")
	errUnknownPlaylist  = errors.New("no such playlist")
	errConflictingFlags = errors.New("--pcm16 and --pcm24 are mutually exclusive")
)
