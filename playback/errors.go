// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var (
	// ErrDeviceInactive indicates a load was requested while the output device is not running
	ErrDeviceInactive = errors.New("audio device is not active")

	// ErrClosed indicates the coordinator or session has been shut down
	ErrClosed = errors.New("playback is closed")

	// ErrSuperseded indicates a pending load was replaced by a newer request before it started
	ErrSuperseded = errors.New("load request superseded")

	// ErrUnknownPolicy indicates an unrecognized failure policy name
	ErrUnknownPolicy = errors.New("unknown failure policy")
)
