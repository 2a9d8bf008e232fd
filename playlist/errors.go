// SPDX-License-Identifier: EPL-2.0

package playlist

import "errors"

var (
	// ErrNameExists indicates a save would reuse an existing playlist name
	ErrNameExists = errors.New("playlist name already exists")

	// ErrEmptyName indicates a playlist was saved without a name
	ErrEmptyName = errors.New("playlist name is empty")
)
