// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

// ErrNotFlacFile indicates the input could not be parsed as FLAC
var ErrNotFlacFile = errors.New("not a FLAC file")
