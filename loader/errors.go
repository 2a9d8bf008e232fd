// SPDX-License-Identifier: EPL-2.0

package loader

import "errors"

var (
	// ErrNoDecoder indicates no decoder is registered for the file extension
	ErrNoDecoder = errors.New("no decoder for file extension")

	// ErrNoFrames indicates the file decoded to zero frames
	ErrNoFrames = errors.New("file contains no audio frames")
)
