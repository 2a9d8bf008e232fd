// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"

	"github.com/ik5/audloop/audio"
)

// StaticDecoder ignores its input and hands out a source built by New, or
// fails with Err. It lets tests register arbitrary sources under a file
// extension.
type StaticDecoder struct {
	New func() *MockSource
	Err error
}

func (d StaticDecoder) Decode(io.Reader) (audio.Source, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	return d.New(), nil
}
