// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedEncoding  = errors.New("unsupported WAV sample encoding")
	ErrInvalidRange         = errors.New("invalid frame range")
	ErrNoBuffer             = errors.New("nothing to export")
)
