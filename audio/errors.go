// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidChannels is returned by NewBuffer for layouts other than mono or stereo,
	// or when the sample count is not a whole number of frames.
	ErrInvalidChannels = errors.New("buffer must be mono or stereo with whole frames")

	// ErrOpen covers files that cannot be opened, have no decoder, or fail to parse.
	ErrOpen = errors.New("could not open audio file")

	// ErrUnsupportedChannelLayout is returned for files with more than two channels.
	ErrUnsupportedChannelLayout = errors.New("only two channels maximum are supported")

	// ErrAllocation is returned when sample storage cannot be allocated.
	ErrAllocation = errors.New("could not allocate sample storage")

	// ErrResample is returned when a buffer cannot be converted to the target rate.
	ErrResample = errors.New("could not resample audio")
)
