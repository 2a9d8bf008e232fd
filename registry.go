// SPDX-License-Identifier: EPL-2.0

package audloop

import (
	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/formats/aiff"
	"github.com/ik5/audloop/formats/flac"
	"github.com/ik5/audloop/formats/mp3"
	"github.com/ik5/audloop/formats/vorbis"
	"github.com/ik5/audloop/formats/wav"
)

// DefaultRegistry returns a registry with every bundled decoder registered
// under the file extensions it handles.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("flac", flac.Decoder{})

	return reg
}

// IsSupported reports whether path has an extension one of the bundled
// decoders understands. The check is case-insensitive.
func IsSupported(path string) bool {
	_, ok := defaultRegistry.ForPath(path)
	return ok
}

var defaultRegistry = DefaultRegistry()
