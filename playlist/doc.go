// SPDX-License-Identifier: EPL-2.0

// Package playlist holds the play list model and its on-disk store.
//
// A Playlist is the ordered list of entries plus the state that decides
// what plays next: the current index, whether playlist mode is on, a forced
// reload flag set after the list changes, and the index currently being
// loaded.
//
// A Store keeps named playlists in one text file, by default
// $XDG_CONFIG_HOME/alooper.conf:
//
//	[PlayList] drums
//	[File] /samples/kick.wav
//	[File] /samples/snare.wav
//	[PlayList] pads
//	[File] pad.flac
package playlist
